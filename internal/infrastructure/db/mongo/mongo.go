package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

// defaultTimeout bounds the initial connect as well as every repository
// operation in this package.
const defaultTimeout = 10 * time.Second

// Config holds the settings for the MongoDB connection.
type Config struct {
	URI      string
	Database string
	// Timeout bounds the initial connect and ping. Zero means defaultTimeout.
	Timeout time.Duration
}

// Connect dials MongoDB, verifies the server is reachable with a primary
// ping, and returns the client together with the configured database handle.
func Connect(ctx context.Context, cfg Config) (*mongo.Client, *mongo.Database, error) {
	if cfg.URI == "" {
		return nil, nil, errors.New("mongo: empty connection URI")
	}
	if cfg.Database == "" {
		return nil, nil, errors.New("mongo: empty database name")
	}

	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	dialCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	client, err := mongo.Connect(dialCtx, options.Client().ApplyURI(cfg.URI))
	if err != nil {
		return nil, nil, fmt.Errorf("mongo connect: %w", err)
	}
	if err := client.Ping(dialCtx, readpref.Primary()); err != nil {
		_ = client.Disconnect(dialCtx)
		return nil, nil, fmt.Errorf("mongo ping: %w", err)
	}

	return client, client.Database(cfg.Database), nil
}
