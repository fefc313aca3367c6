package routes

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/shopkart-io/shopkart-backend-go/handlers"
	customMiddleware "github.com/shopkart-io/shopkart-backend-go/middleware"
	"github.com/shopkart-io/shopkart-backend-go/store"
)

// SetupRoutes wires every endpoint. Routes under /api expect a Bearer token
// unless noted; admin routes additionally require the account's admin flag.
func SetupRoutes(e *echo.Echo, orders *handlers.OrderHandler, products *handlers.ProductHandler, users *handlers.UserHandler, userStore store.UserStore) {
	auth := customMiddleware.Auth
	admin := customMiddleware.AdminOnly(userStore)

	e.GET("/health", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
	})
	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))

	api := e.Group("/api")

	// Users
	api.POST("/users", users.Register)
	api.POST("/users/login", users.Login)
	api.GET("/users/profile", users.GetProfile, auth)
	api.PUT("/users/profile", users.UpdateProfile, auth)

	// Products
	api.GET("/products", products.GetProducts)
	api.GET("/products/:id", products.GetProduct)
	api.POST("/products", products.CreateProduct, auth, admin)
	api.POST("/products/:id/reviews", products.CreateReview, auth)

	// Orders
	api.POST("/orders", orders.CreateOrder, auth)
	api.GET("/orders", orders.GetOrders, auth, admin)
	api.GET("/orders/myorders", orders.GetMyOrders, auth)
	api.GET("/orders/:id", orders.GetOrder, auth)
	api.PUT("/orders/:id/pay", orders.PayOrder, auth)
	api.PUT("/orders/:id/deliver", orders.DeliverOrder, auth, admin)
	api.PUT("/orders/:id/shipped", orders.ShipOrder, auth, admin)
	api.PUT("/orders/:id/updateCourier", orders.UpdateCourier, auth, admin)
}
