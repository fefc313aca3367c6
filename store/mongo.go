package store

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/shopkart-io/shopkart-backend-go/models"
)

type mongoOrderStore struct {
	col *mongo.Collection
}

// NewMongoOrderStore returns an OrderStore backed by the "orders" collection.
func NewMongoOrderStore(db *mongo.Database) OrderStore {
	return &mongoOrderStore{col: db.Collection("orders")}
}

func (s *mongoOrderStore) Create(ctx context.Context, order *models.Order) error {
	_, err := s.col.InsertOne(ctx, order)
	return err
}

func (s *mongoOrderStore) GetByID(ctx context.Context, id primitive.ObjectID) (*models.Order, error) {
	var order models.Order
	err := s.col.FindOne(ctx, bson.M{"_id": id}).Decode(&order)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &order, nil
}

func (s *mongoOrderStore) Save(ctx context.Context, order *models.Order) error {
	res, err := s.col.ReplaceOne(ctx, bson.M{"_id": order.ID}, order)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *mongoOrderStore) ListByUser(ctx context.Context, userID primitive.ObjectID) ([]models.Order, error) {
	return s.list(ctx, bson.M{"user": userID})
}

func (s *mongoOrderStore) ListAll(ctx context.Context) ([]models.Order, error) {
	return s.list(ctx, bson.M{})
}

func (s *mongoOrderStore) list(ctx context.Context, filter bson.M) ([]models.Order, error) {
	cursor, err := s.col.Find(ctx, filter)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var orders []models.Order
	if err := cursor.All(ctx, &orders); err != nil {
		return nil, err
	}
	return orders, nil
}

type mongoUserStore struct {
	col *mongo.Collection
}

// NewMongoUserStore returns a UserStore backed by the "users" collection.
func NewMongoUserStore(db *mongo.Database) UserStore {
	return &mongoUserStore{col: db.Collection("users")}
}

func (s *mongoUserStore) Create(ctx context.Context, user *models.User) error {
	_, err := s.col.InsertOne(ctx, user)
	return err
}

func (s *mongoUserStore) GetByID(ctx context.Context, id primitive.ObjectID) (*models.User, error) {
	return s.get(ctx, bson.M{"_id": id})
}

func (s *mongoUserStore) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	return s.get(ctx, bson.M{"email": email})
}

func (s *mongoUserStore) get(ctx context.Context, filter bson.M) (*models.User, error) {
	var user models.User
	err := s.col.FindOne(ctx, filter).Decode(&user)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &user, nil
}

func (s *mongoUserStore) Save(ctx context.Context, user *models.User) error {
	res, err := s.col.ReplaceOne(ctx, bson.M{"_id": user.ID}, user)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

type mongoProductStore struct {
	col *mongo.Collection
}

// NewMongoProductStore returns a ProductStore backed by the "products" collection.
func NewMongoProductStore(db *mongo.Database) ProductStore {
	return &mongoProductStore{col: db.Collection("products")}
}

func (s *mongoProductStore) Create(ctx context.Context, product *models.Product) error {
	_, err := s.col.InsertOne(ctx, product)
	return err
}

func (s *mongoProductStore) GetByID(ctx context.Context, id primitive.ObjectID) (*models.Product, error) {
	var product models.Product
	err := s.col.FindOne(ctx, bson.M{"_id": id}).Decode(&product)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &product, nil
}

func (s *mongoProductStore) Save(ctx context.Context, product *models.Product) error {
	res, err := s.col.ReplaceOne(ctx, bson.M{"_id": product.ID}, product)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *mongoProductStore) ListAll(ctx context.Context) ([]models.Product, error) {
	cursor, err := s.col.Find(ctx, bson.M{})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var products []models.Product
	if err := cursor.All(ctx, &products); err != nil {
		return nil, err
	}
	return products, nil
}
