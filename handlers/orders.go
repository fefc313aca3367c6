package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"

	"github.com/shopkart-io/shopkart-backend-go/logger"
	"github.com/shopkart-io/shopkart-backend-go/metrics"
	"github.com/shopkart-io/shopkart-backend-go/models"
	"github.com/shopkart-io/shopkart-backend-go/store"
	"github.com/shopkart-io/shopkart-backend-go/utils"
)

type OrderHandler struct {
	orders store.OrderStore
	users  store.UserStore
}

func NewOrderHandler(orders store.OrderStore, users store.UserStore) *OrderHandler {
	return &OrderHandler{orders: orders, users: users}
}

type CreateOrderRequest struct {
	OrderItems      []OrderItemRequest     `json:"orderItems" validate:"dive"`
	ShippingAddress ShippingAddressRequest `json:"shippingAddress" validate:"required"`
	PaymentMethod   string                 `json:"paymentMethod" validate:"required"`
	ItemsPrice      float64                `json:"itemsPrice" validate:"gte=0"`
	TaxPrice        float64                `json:"taxPrice" validate:"gte=0"`
	ShippingPrice   float64                `json:"shippingPrice" validate:"gte=0"`
	TotalPrice      float64                `json:"totalPrice" validate:"gte=0"`
}

type OrderItemRequest struct {
	Product primitive.ObjectID `json:"product" validate:"required"`
	Name    string             `json:"name" validate:"required"`
	Qty     int                `json:"qty" validate:"gt=0"`
	Price   float64            `json:"price" validate:"gte=0"`
	Image   string             `json:"image"`
}

type ShippingAddressRequest struct {
	Address    string `json:"address" validate:"required"`
	City       string `json:"city" validate:"required"`
	PostalCode string `json:"postalCode" validate:"required"`
	Country    string `json:"country" validate:"required"`
}

type PayOrderRequest struct {
	ID     string `json:"id"`
	Status string `json:"status"`
	Payer  struct {
		EmailAddress string `json:"email_address"`
	} `json:"payer"`
}

type CourierDetailsRequest struct {
	AWBNumber   string `json:"awb_number"`
	CourierName string `json:"courier_name"`
	Label       string `json:"label"`
	OrderID     string `json:"order_id"`
	ShipmentID  string `json:"shipment_id"`
	Status      string `json:"status"`
}

// userSummary is the owner info attached to order reads, mirroring what the
// order screens render next to the shipping block.
type userSummary struct {
	ID    primitive.ObjectID `json:"id"`
	Name  string             `json:"name"`
	Email string             `json:"email,omitempty"`
}

type orderWithUser struct {
	*models.Order
	User userSummary `json:"user"`
}

// CreateOrder persists a new order owned by the authenticated user. Orders
// with no line items are rejected before anything is written. Duplicate
// submissions create duplicate orders; there is no idempotency key.
func (h *OrderHandler) CreateOrder(c echo.Context) error {
	userID, ok := utils.UserIDFrom(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, map[string]string{"error": "User not authenticated"})
	}

	var req CreateOrderRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid request format"})
	}
	if len(req.OrderItems) == 0 {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "No order items"})
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	items := make([]models.OrderItem, 0, len(req.OrderItems))
	for _, item := range req.OrderItems {
		items = append(items, models.OrderItem{
			ProductID: item.Product,
			Name:      item.Name,
			Qty:       item.Qty,
			Price:     item.Price,
			Image:     item.Image,
		})
	}

	addr := models.ShippingAddress{
		Address:    req.ShippingAddress.Address,
		City:       req.ShippingAddress.City,
		PostalCode: req.ShippingAddress.PostalCode,
		Country:    req.ShippingAddress.Country,
	}

	order, err := models.NewOrder(userID, items, addr, req.PaymentMethod,
		req.ItemsPrice, req.TaxPrice, req.ShippingPrice, req.TotalPrice)
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "No order items"})
	}

	if err := h.orders.Create(c.Request().Context(), order); err != nil {
		logger.L().Error("failed to create order", zap.Error(err))
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Failed to create order"})
	}

	metrics.OrdersCreated.Inc()
	return c.JSON(http.StatusCreated, order)
}

// GetOrder returns a single order enriched with the owner's name and email.
func (h *OrderHandler) GetOrder(c echo.Context) error {
	order, err := h.loadOrder(c)
	if err != nil {
		return h.orderError(c, err)
	}

	resp := orderWithUser{Order: order, User: userSummary{ID: order.UserID}}
	if owner, err := h.users.GetByID(c.Request().Context(), order.UserID); err == nil {
		resp.User.Name = owner.Name
		resp.User.Email = owner.Email
	}

	return c.JSON(http.StatusOK, resp)
}

// GetMyOrders lists every order owned by the calling user.
func (h *OrderHandler) GetMyOrders(c echo.Context) error {
	userID, ok := utils.UserIDFrom(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, map[string]string{"error": "User not authenticated"})
	}

	orders, err := h.orders.ListByUser(c.Request().Context(), userID)
	if err != nil {
		logger.L().Error("failed to list orders", zap.Error(err))
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Failed to fetch orders"})
	}
	if orders == nil {
		orders = []models.Order{}
	}

	return c.JSON(http.StatusOK, orders)
}

// GetOrders lists every order in the system for the admin dashboard, each
// enriched with the owner's id and name.
func (h *OrderHandler) GetOrders(c echo.Context) error {
	orders, err := h.orders.ListAll(c.Request().Context())
	if err != nil {
		logger.L().Error("failed to list orders", zap.Error(err))
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Failed to fetch orders"})
	}

	resp := make([]orderWithUser, 0, len(orders))
	for i := range orders {
		entry := orderWithUser{Order: &orders[i], User: userSummary{ID: orders[i].UserID}}
		if owner, err := h.users.GetByID(c.Request().Context(), orders[i].UserID); err == nil {
			entry.User.Name = owner.Name
		}
		resp = append(resp, entry)
	}

	return c.JSON(http.StatusOK, resp)
}

// PayOrder records the payment confirmation payload against the order. The
// payload is taken on trust from the caller; there is no server-side
// verification against the payment provider. Calling it again overwrites the
// previous confirmation, the paid flag stays set.
func (h *OrderHandler) PayOrder(c echo.Context) error {
	order, err := h.loadOrder(c)
	if err != nil {
		return h.orderError(c, err)
	}

	var req PayOrderRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid request format"})
	}

	order.MarkPaid(models.PaymentResult{
		ID:         req.ID,
		Status:     req.Status,
		UpdateTime: req.Payer.EmailAddress,
	}, time.Now())

	if err := h.orders.Save(c.Request().Context(), order); err != nil {
		return h.orderError(c, err)
	}

	metrics.OrdersPaid.Inc()
	return c.JSON(http.StatusOK, order)
}

// DeliverOrder marks the order delivered. Delivery does not require the
// order to have been paid or shipped.
func (h *OrderHandler) DeliverOrder(c echo.Context) error {
	order, err := h.loadOrder(c)
	if err != nil {
		return h.orderError(c, err)
	}

	order.MarkDelivered(time.Now())

	if err := h.orders.Save(c.Request().Context(), order); err != nil {
		return h.orderError(c, err)
	}

	metrics.OrdersDelivered.Inc()
	return c.JSON(http.StatusOK, order)
}

// ShipOrder marks the order shipped.
func (h *OrderHandler) ShipOrder(c echo.Context) error {
	order, err := h.loadOrder(c)
	if err != nil {
		return h.orderError(c, err)
	}

	order.MarkShipped(time.Now())

	if err := h.orders.Save(c.Request().Context(), order); err != nil {
		return h.orderError(c, err)
	}

	metrics.OrdersShipped.Inc()
	return c.JSON(http.StatusOK, order)
}

// UpdateCourier replaces the order's courier tracking details with the
// supplied payload. All six fields are written as one unit; fields omitted
// from the request clear whatever was stored before.
func (h *OrderHandler) UpdateCourier(c echo.Context) error {
	order, err := h.loadOrder(c)
	if err != nil {
		return h.orderError(c, err)
	}

	var req CourierDetailsRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid request format"})
	}

	order.SetCourierDetails(models.CourierDetails{
		AWBNumber:   req.AWBNumber,
		CourierName: req.CourierName,
		Label:       req.Label,
		OrderID:     req.OrderID,
		ShipmentID:  req.ShipmentID,
		Status:      req.Status,
	}, time.Now())

	if err := h.orders.Save(c.Request().Context(), order); err != nil {
		return h.orderError(c, err)
	}

	return c.JSON(http.StatusOK, order)
}

var errInvalidOrderID = errors.New("invalid order id")

// loadOrder resolves the :id path param and fetches the order. Failures are
// reported as domain errors for orderError to translate.
func (h *OrderHandler) loadOrder(c echo.Context) (*models.Order, error) {
	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		return nil, errInvalidOrderID
	}
	return h.orders.GetByID(c.Request().Context(), id)
}

// orderError maps a domain error onto the wire: bad ids are 400, missing
// orders 404, anything else a logged 500.
func (h *OrderHandler) orderError(c echo.Context, err error) error {
	switch {
	case errors.Is(err, errInvalidOrderID):
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid order ID"})
	case errors.Is(err, store.ErrNotFound):
		return c.JSON(http.StatusNotFound, map[string]string{"error": "Order not found"})
	default:
		logger.L().Error("order operation failed", zap.Error(err))
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Failed to process order"})
	}
}
