package handlers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"

	"github.com/labstack/echo/v4"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/shopkart-io/shopkart-backend-go/models"
	"github.com/shopkart-io/shopkart-backend-go/store"
)

// In-memory stores standing in for Mongo in handler tests.

type fakeOrderStore struct {
	orders      map[primitive.ObjectID]*models.Order
	createCalls int
}

func newFakeOrderStore() *fakeOrderStore {
	return &fakeOrderStore{orders: make(map[primitive.ObjectID]*models.Order)}
}

func (f *fakeOrderStore) Create(_ context.Context, order *models.Order) error {
	f.createCalls++
	cp := *order
	f.orders[order.ID] = &cp
	return nil
}

func (f *fakeOrderStore) GetByID(_ context.Context, id primitive.ObjectID) (*models.Order, error) {
	order, ok := f.orders[id]
	if !ok {
		return nil, store.ErrNotFound
	}
	cp := *order
	return &cp, nil
}

func (f *fakeOrderStore) Save(_ context.Context, order *models.Order) error {
	if _, ok := f.orders[order.ID]; !ok {
		return store.ErrNotFound
	}
	cp := *order
	f.orders[order.ID] = &cp
	return nil
}

func (f *fakeOrderStore) ListByUser(_ context.Context, userID primitive.ObjectID) ([]models.Order, error) {
	var out []models.Order
	for _, order := range f.orders {
		if order.UserID == userID {
			out = append(out, *order)
		}
	}
	return out, nil
}

func (f *fakeOrderStore) ListAll(_ context.Context) ([]models.Order, error) {
	var out []models.Order
	for _, order := range f.orders {
		out = append(out, *order)
	}
	return out, nil
}

type fakeUserStore struct {
	users map[primitive.ObjectID]*models.User
}

func newFakeUserStore() *fakeUserStore {
	return &fakeUserStore{users: make(map[primitive.ObjectID]*models.User)}
}

func (f *fakeUserStore) Create(_ context.Context, user *models.User) error {
	cp := *user
	f.users[user.ID] = &cp
	return nil
}

func (f *fakeUserStore) GetByID(_ context.Context, id primitive.ObjectID) (*models.User, error) {
	user, ok := f.users[id]
	if !ok {
		return nil, store.ErrNotFound
	}
	cp := *user
	return &cp, nil
}

func (f *fakeUserStore) GetByEmail(_ context.Context, email string) (*models.User, error) {
	for _, user := range f.users {
		if user.Email == email {
			cp := *user
			return &cp, nil
		}
	}
	return nil, store.ErrNotFound
}

func (f *fakeUserStore) Save(_ context.Context, user *models.User) error {
	if _, ok := f.users[user.ID]; !ok {
		return store.ErrNotFound
	}
	cp := *user
	f.users[user.ID] = &cp
	return nil
}

type fakeProductStore struct {
	products map[primitive.ObjectID]*models.Product
}

func newFakeProductStore() *fakeProductStore {
	return &fakeProductStore{products: make(map[primitive.ObjectID]*models.Product)}
}

func (f *fakeProductStore) Create(_ context.Context, product *models.Product) error {
	cp := *product
	f.products[product.ID] = &cp
	return nil
}

func (f *fakeProductStore) GetByID(_ context.Context, id primitive.ObjectID) (*models.Product, error) {
	product, ok := f.products[id]
	if !ok {
		return nil, store.ErrNotFound
	}
	cp := *product
	return &cp, nil
}

func (f *fakeProductStore) Save(_ context.Context, product *models.Product) error {
	if _, ok := f.products[product.ID]; !ok {
		return store.ErrNotFound
	}
	cp := *product
	f.products[product.ID] = &cp
	return nil
}

func (f *fakeProductStore) ListAll(_ context.Context) ([]models.Product, error) {
	var out []models.Product
	for _, product := range f.products {
		out = append(out, *product)
	}
	return out, nil
}

func newTestEcho() *echo.Echo {
	e := echo.New()
	e.Validator = NewRequestValidator()
	return e
}

// newTestContext builds an echo context carrying a JSON body and recorder.
func newTestContext(e *echo.Echo, method, target, body string) (echo.Context, *httptest.ResponseRecorder) {
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, target, nil)
	} else {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}
