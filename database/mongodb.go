package database

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/shopkart-io/shopkart-backend-go/config"
)

// Connect dials MongoDB using MONGODB_URI and returns a handle to the
// storefront database. The connection is verified with a ping before use.
func Connect() (*mongo.Database, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	uri := config.GetEnv("MONGODB_URI", "mongodb://localhost:27017")
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, err
	}

	if err := client.Ping(ctx, nil); err != nil {
		return nil, err
	}

	name := config.GetEnv("MONGODB_DB", "shopkart")
	return client.Database(name), nil
}
