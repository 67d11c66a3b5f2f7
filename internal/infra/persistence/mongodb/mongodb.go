// Package mongodb contains the concrete implementation of the persistence
// layer using the official MongoDB driver.
package mongodb

import (
	"context"
	"log/slog"

	"github.com/pkg/errors"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/fx"

	"github.com/shilwantharshal/mini-user-management/config"
	"github.com/shilwantharshal/mini-user-management/internal/domain/lifecycle"
	"github.com/shilwantharshal/mini-user-management/internal/infra/persistence/model"
)

// Params defines the dependencies for the MongoDB connection.
type Params struct {
	fx.In
	fx.Lifecycle

	Config *config.Config
	Logger *slog.Logger
}

// New connects to MongoDB, verifies the connection, and ensures the
// collection indexes the domain relies on. A missing connection URI or
// database name is a fatal startup error.
func New(params Params) (*mongo.Database, error) {
	if params.Config.Mongo.URI == "" {
		return nil, errors.New("mongo uri must be provided")
	}
	if params.Config.Mongo.Database == "" {
		return nil, errors.New("mongo database must be provided")
	}

	ctx, cancel := context.WithTimeout(context.Background(), lifecycle.DefaultTimeout)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(params.Config.Mongo.URI))
	if err != nil {
		return nil, errors.Wrap(err, "failed to connect to mongodb")
	}

	if err := client.Ping(ctx, nil); err != nil {
		return nil, errors.Wrap(err, "failed to ping mongodb")
	}

	db := client.Database(params.Config.Mongo.Database)

	// The unique index on email is the hard enforcement of account
	// uniqueness: two concurrent signups can both pass the read check,
	// and the second insert must fail here.
	if err := ensureIndexes(ctx, db); err != nil {
		return nil, err
	}

	params.Append(fx.Hook{
		OnStop: func(ctx context.Context) error {
			params.Logger.Info("Disconnecting from MongoDB")

			return errors.Wrap(client.Disconnect(ctx), "failed to disconnect from mongodb")
		},
	})

	params.Logger.Info("Connected to MongoDB", slog.String("database", params.Config.Mongo.Database))

	return db, nil
}

func ensureIndexes(ctx context.Context, db *mongo.Database) error {
	_, err := db.Collection(model.CollectionUsers).Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "email", Value: 1}},
		Options: options.Index().SetUnique(true),
	})

	return errors.Wrap(err, "failed to ensure unique email index")
}
