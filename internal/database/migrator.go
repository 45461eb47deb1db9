package database

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// index is one index the application expects to exist.
type index struct {
	collection string
	model      mongo.IndexModel
}

// indexes backs the two filtered reads: orders by owner email and the
// catalog sorted by price.
var indexes = []index{
	{
		collection: OrdersCollection,
		model: mongo.IndexModel{
			Keys:    bson.D{{Key: "email", Value: 1}},
			Options: options.Index().SetName("orders_email"),
		},
	},
	{
		collection: ServicesCollection,
		model: mongo.IndexModel{
			Keys:    bson.D{{Key: "price", Value: 1}},
			Options: options.Index().SetName("services_price"),
		},
	},
}

// Migrate creates the expected indexes. Creating an index that already
// exists with the same definition is a no-op on the server.
func Migrate(ctx context.Context, logger *zerolog.Logger, db *Database) error {
	for _, idx := range indexes {
		name, err := db.DB.Collection(idx.collection).Indexes().CreateOne(ctx, idx.model)
		if err != nil {
			return fmt.Errorf("creating index on %s: %w", idx.collection, err)
		}

		logger.Info().
			Str("collection", idx.collection).
			Str("index", name).
			Msg("database index ensured")
	}

	return nil
}
