package main

import (
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"go.uber.org/zap"

	"github.com/shopkart-io/shopkart-backend-go/config"
	"github.com/shopkart-io/shopkart-backend-go/database"
	"github.com/shopkart-io/shopkart-backend-go/handlers"
	"github.com/shopkart-io/shopkart-backend-go/logger"
	"github.com/shopkart-io/shopkart-backend-go/metrics"
	"github.com/shopkart-io/shopkart-backend-go/routes"
	"github.com/shopkart-io/shopkart-backend-go/store"
)

func main() {
	config.LoadEnv()
	logger.Init(config.GetEnv("APP_ENV", "development"))
	defer logger.Sync()

	e := echo.New()
	e.HideBanner = true
	e.Validator = handlers.NewRequestValidator()

	e.Use(logger.RequestLogger())
	e.Use(middleware.Recover())
	e.Use(middleware.CORS())
	e.Use(metrics.Middleware())

	db, err := database.Connect()
	if err != nil {
		logger.L().Fatal("failed to connect to database", zap.Error(err))
	}
	logger.L().Info("connected to MongoDB", zap.String("database", db.Name()))

	userStore := store.NewMongoUserStore(db)
	orderStore := store.NewMongoOrderStore(db)
	productStore := store.NewMongoProductStore(db)

	orderHandler := handlers.NewOrderHandler(orderStore, userStore)
	productHandler := handlers.NewProductHandler(productStore, userStore)
	userHandler := handlers.NewUserHandler(userStore)

	routes.SetupRoutes(e, orderHandler, productHandler, userHandler, userStore)

	port := config.GetEnv("PORT", "5000")
	logger.L().Info("server starting", zap.String("port", port))
	if err := e.Start(":" + port); err != nil {
		logger.L().Fatal("server stopped", zap.Error(err))
	}
}
