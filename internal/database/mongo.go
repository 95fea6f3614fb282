package database

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"harumnesia/internal/logger"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
	"go.opentelemetry.io/contrib/instrumentation/go.mongodb.org/mongo-driver/mongo/otelmongo"
)

type Mongo struct {
	Client   *mongo.Client
	Database *mongo.Database
}

var (
	instance *Mongo
	once     sync.Once
	initErr  error
)

// Instance connects once per process and returns the shared handle.
func Instance(globalCtx context.Context, uri, dbName string) (*Mongo, error) {
	once.Do(func() {
		instance, initErr = Connect(globalCtx, uri, dbName)
	})

	return instance, initErr
}

// Connect dials MongoDB with the otelmongo command monitor and verifies
// the connection with a ping.
func Connect(ctx context.Context, uri, dbName string) (*Mongo, error) {
	log := logger.Instance()

	opts := options.Client().
		ApplyURI(uri).
		SetServerSelectionTimeout(10 * time.Second).
		SetMonitor(otelmongo.NewMonitor())

	client, err := mongo.Connect(ctx, opts)
	if err != nil {
		log.Error("Failed to connect to MongoDB", slog.String("error", err.Error()))
		return nil, err
	}

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx, readpref.Primary()); err != nil {
		log.Error("MongoDB ping failed", slog.String("error", err.Error()))
		_ = client.Disconnect(context.Background())
		return nil, err
	}

	log.Info("Connected to MongoDB successfully", slog.String("database", dbName))

	return &Mongo{
		Client:   client,
		Database: client.Database(dbName),
	}, nil
}

func (m *Mongo) Ping(ctx context.Context) error {
	return m.Client.Ping(ctx, readpref.Primary())
}

func (m *Mongo) Disconnect(ctx context.Context) {
	if m == nil || m.Client == nil {
		return
	}
	if err := m.Client.Disconnect(ctx); err != nil {
		logger.Instance().Error("Error disconnecting MongoDB", slog.String("error", err.Error()))
		return
	}
	logger.Instance().Info("MongoDB connection closed")
}
