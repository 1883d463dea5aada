// Package mongo contains the concrete implementation of the persistence
// layer on top of the MongoDB document store.
package mongo

import (
	"context"
	"log/slog"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
	"go.uber.org/fx"

	"civicreport/config"
	"civicreport/internal/domain/lifecycle"
	"civicreport/internal/errors"
)

// Collection names.
const (
	accountsCollection = "citizens"
	issuesCollection   = "issues"
	mediaCollection    = "multimedia"
)

// Params defines the required parameters
type Params struct {
	fx.In
	fx.Lifecycle

	Config *config.Config
	Logger *slog.Logger
}

// New creates the MongoDB database handle and wires connect/disconnect into
// the application lifecycle. Index bootstrap runs on start so the uniqueness
// guarantees exist before the first exchange request.
func New(params Params) (*mongo.Database, error) {
	if params.Config.Mongo == nil {
		return nil, errors.New("mongo configuration is missing")
	}

	clientOpts := options.Client().
		ApplyURI(params.Config.Mongo.URI).
		SetConnectTimeout(params.Config.Mongo.ConnectTimeout).
		SetServerSelectionTimeout(params.Config.Mongo.ConnectTimeout)

	client, err := mongo.Connect(context.Background(), clientOpts)
	if err != nil {
		return nil, errors.Wrap(err, "failed to create MongoDB client")
	}

	db := client.Database(params.Config.Mongo.Database)

	params.Append(fx.Hook{
		OnStart: func(startCtx context.Context) error {
			ctx, cancel := context.WithTimeout(startCtx, lifecycle.DefaultTimeout)
			defer cancel()

			if err := client.Ping(ctx, readpref.Primary()); err != nil {
				return errors.Wrap(err, "failed to ping MongoDB")
			}

			if err := ensureIndexes(ctx, db); err != nil {
				return errors.Wrap(err, "failed to ensure MongoDB indexes")
			}

			params.Logger.Info("Connected to MongoDB", slog.String("database", params.Config.Mongo.Database))

			return nil
		},
		OnStop: func(stopCtx context.Context) error {
			ctx, cancel := context.WithTimeout(stopCtx, lifecycle.DefaultTimeout)
			defer cancel()

			return errors.WithStack(client.Disconnect(ctx))
		},
	})

	return db, nil
}

// ensureIndexes creates the unique index on email and the unique sparse
// index on externalId. Sparse keeps multiple documents without an external
// id legal while still forbidding duplicates of a present one.
func ensureIndexes(ctx context.Context, db *mongo.Database) error {
	accountIndexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "email", Value: 1}},
			Options: options.Index().SetUnique(true).SetName("email_1"),
		},
		{
			Keys:    bson.D{{Key: "externalId", Value: 1}},
			Options: options.Index().SetUnique(true).SetSparse(true).SetName("externalId_1"),
		},
	}
	if _, err := db.Collection(accountsCollection).Indexes().CreateMany(ctx, accountIndexes); err != nil {
		return errors.Wrap(err, "create citizen indexes")
	}

	issueIndexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "title", Value: 1}},
			Options: options.Index().SetUnique(true).SetName("title_1"),
		},
	}
	if _, err := db.Collection(issuesCollection).Indexes().CreateMany(ctx, issueIndexes); err != nil {
		return errors.Wrap(err, "create issue indexes")
	}

	return nil
}

// opCtx bounds a single store operation with the configured timeout.
func opCtx(ctx context.Context, cfg *config.Config) (context.Context, context.CancelFunc) {
	timeout := 5 * time.Second
	if cfg.Mongo != nil && cfg.Mongo.OperationTimeout > 0 {
		timeout = cfg.Mongo.OperationTimeout
	}

	return context.WithTimeout(ctx, timeout)
}
