package store

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/shopkart-io/shopkart-backend-go/models"
)

// ErrNotFound is returned when no record matches the given id or filter.
var ErrNotFound = errors.New("not found")

// OrderStore persists orders. Save replaces the whole document, so each
// transition is a single read-modify-write with last-write-wins semantics;
// there is no optimistic concurrency control.
type OrderStore interface {
	Create(ctx context.Context, order *models.Order) error
	GetByID(ctx context.Context, id primitive.ObjectID) (*models.Order, error)
	Save(ctx context.Context, order *models.Order) error
	ListByUser(ctx context.Context, userID primitive.ObjectID) ([]models.Order, error)
	ListAll(ctx context.Context) ([]models.Order, error)
}

type UserStore interface {
	Create(ctx context.Context, user *models.User) error
	GetByID(ctx context.Context, id primitive.ObjectID) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	Save(ctx context.Context, user *models.User) error
}

type ProductStore interface {
	Create(ctx context.Context, product *models.Product) error
	GetByID(ctx context.Context, id primitive.ObjectID) (*models.Product, error)
	Save(ctx context.Context, product *models.Product) error
	ListAll(ctx context.Context) ([]models.Product, error)
}
