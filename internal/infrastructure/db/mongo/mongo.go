package mongo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

const (
	connectTimeout = 10 * time.Second
	// defaultTimeout bounds every repository operation in this package.
	defaultTimeout = 10 * time.Second
	maxPoolSize    = 50
)

// Connect opens a client for the clinic database and verifies the primary is
// reachable before returning. Retryable writes stay enabled: the slot-claim
// insert and the status CAS both rely on single-document atomicity, which
// retries preserve. The caller owns the client and must Disconnect it on
// shutdown.
func Connect(ctx context.Context, uri, database string) (*mongo.Client, *mongo.Database, error) {
	ctx, cancel := context.WithTimeout(ctx, connectTimeout)
	defer cancel()

	opts := options.Client().
		ApplyURI(uri).
		SetMaxPoolSize(maxPoolSize).
		SetRetryWrites(true)

	client, err := mongo.Connect(ctx, opts)
	if err != nil {
		return nil, nil, fmt.Errorf("mongo connect %s: %w", database, err)
	}

	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		_ = client.Disconnect(ctx)
		return nil, nil, fmt.Errorf("mongo ping %s: %w", database, err)
	}

	return client, client.Database(database), nil
}
