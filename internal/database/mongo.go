package database

import (
	"context"
	"log/slog"
	"time"

	"ecommerce-api/internal/logger"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.opentelemetry.io/contrib/instrumentation/go.mongodb.org/mongo-driver/mongo/otelmongo"
)

const pingTimeout = 5 * time.Second

type Mongo struct {
	Client   *mongo.Client
	Database *mongo.Database
}

// Connect builds a client for uri and selects dbName. Only an unusable URI
// is returned as an error: a failed ping is logged and the client is still
// handed back, since the driver keeps trying to reach the deployment and
// requests will fail until it does.
func Connect(ctx context.Context, uri, dbName string) (*Mongo, error) {
	opts := options.Client().
		ApplyURI(uri).
		SetMonitor(otelmongo.NewMonitor())

	client, err := mongo.Connect(ctx, opts)
	if err != nil {
		logger.Error(ctx, "Failed to connect to MongoDB", slog.String("error", err.Error()))
		return nil, err
	}

	pingCtx, cancel := context.WithTimeout(ctx, pingTimeout)
	defer cancel()
	if pingErr := client.Ping(pingCtx, nil); pingErr != nil {
		logger.Error(ctx, "MongoDB ping failed", slog.String("error", pingErr.Error()))
	} else {
		logger.Info(ctx, "Connected to MongoDB successfully", slog.String("database", dbName))
	}

	return &Mongo{
		Client:   client,
		Database: client.Database(dbName),
	}, nil
}

func (m *Mongo) Close(ctx context.Context) error {
	return m.Client.Disconnect(ctx)
}
