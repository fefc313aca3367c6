package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"

	"github.com/shopkart-io/shopkart-backend-go/logger"
	"github.com/shopkart-io/shopkart-backend-go/models"
	"github.com/shopkart-io/shopkart-backend-go/store"
	"github.com/shopkart-io/shopkart-backend-go/utils"
)

type ProductHandler struct {
	products store.ProductStore
	users    store.UserStore
}

func NewProductHandler(products store.ProductStore, users store.UserStore) *ProductHandler {
	return &ProductHandler{products: products, users: users}
}

// GetProducts lists the whole catalog.
func (h *ProductHandler) GetProducts(c echo.Context) error {
	products, err := h.products.ListAll(c.Request().Context())
	if err != nil {
		logger.L().Error("failed to list products", zap.Error(err))
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Failed to fetch products"})
	}
	if products == nil {
		products = []models.Product{}
	}

	return c.JSON(http.StatusOK, products)
}

// GetProduct fetches one product by id.
func (h *ProductHandler) GetProduct(c echo.Context) error {
	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid product ID"})
	}

	product, err := h.products.GetByID(c.Request().Context(), id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return c.JSON(http.StatusNotFound, map[string]string{"error": "Product not found"})
		}
		logger.L().Error("failed to fetch product", zap.Error(err))
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Failed to fetch product"})
	}

	return c.JSON(http.StatusOK, product)
}

type CreateProductRequest struct {
	Name         string  `json:"name" validate:"required"`
	Image        string  `json:"image"`
	Brand        string  `json:"brand"`
	Category     string  `json:"category"`
	Description  string  `json:"description"`
	Price        float64 `json:"price" validate:"gte=0"`
	CountInStock int     `json:"countInStock" validate:"gte=0"`
}

// CreateProduct adds a catalog entry. Admin only.
func (h *ProductHandler) CreateProduct(c echo.Context) error {
	userID, ok := utils.UserIDFrom(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, map[string]string{"error": "User not authenticated"})
	}

	var req CreateProductRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid request format"})
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	now := time.Now()
	product := &models.Product{
		ID:           primitive.NewObjectID(),
		UserID:       userID,
		Name:         req.Name,
		Image:        req.Image,
		Brand:        req.Brand,
		Category:     req.Category,
		Description:  req.Description,
		Price:        req.Price,
		CountInStock: req.CountInStock,
		Reviews:      []models.Review{},
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := h.products.Create(c.Request().Context(), product); err != nil {
		logger.L().Error("failed to create product", zap.Error(err))
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Failed to create product"})
	}

	return c.JSON(http.StatusCreated, product)
}

type CreateReviewRequest struct {
	Rating  float64 `json:"rating" validate:"gte=1,lte=5"`
	Comment string  `json:"comment"`
}

// CreateReview attaches a review to a product. One review per user; the
// aggregate rating is recomputed on write.
func (h *ProductHandler) CreateReview(c echo.Context) error {
	userID, ok := utils.UserIDFrom(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, map[string]string{"error": "User not authenticated"})
	}

	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid product ID"})
	}

	var req CreateReviewRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid request format"})
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	ctx := c.Request().Context()
	product, err := h.products.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return c.JSON(http.StatusNotFound, map[string]string{"error": "Product not found"})
		}
		logger.L().Error("failed to fetch product", zap.Error(err))
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Failed to fetch product"})
	}

	if product.Reviewed(userID) {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Product already reviewed"})
	}

	reviewerName := ""
	if reviewer, err := h.users.GetByID(ctx, userID); err == nil {
		reviewerName = reviewer.Name
	}

	product.AddReview(models.Review{
		ID:        primitive.NewObjectID(),
		UserID:    userID,
		Name:      reviewerName,
		Rating:    req.Rating,
		Comment:   req.Comment,
		CreatedAt: time.Now(),
	}, time.Now())

	if err := h.products.Save(ctx, product); err != nil {
		logger.L().Error("failed to save review", zap.Error(err))
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Failed to save review"})
	}

	return c.JSON(http.StatusCreated, map[string]string{"message": "Review added"})
}
