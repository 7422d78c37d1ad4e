package record

import (
	"context"
	"database/sql"
	"fmt"

	_ "github.com/jackc/pgx/v5/stdlib" // register pgx as a database/sql driver
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type Driver string

const (
	DriverMemory   Driver = "memory"
	DriverPostgres Driver = "postgres"
	DriverMongo    Driver = "mongo"
)

// StoreOptions selects and configures a Store backend.
type StoreOptions struct {
	Driver          Driver
	DatabaseURL     string
	MongoURI        string
	MongoDatabase   string
	MongoCollection string
}

// OpenStore connects the configured backend. The returned close func releases
// the underlying connection and is never nil.
func OpenStore(ctx context.Context, opts StoreOptions) (Store, func(context.Context) error, error) {
	noop := func(context.Context) error { return nil }

	switch opts.Driver {
	case DriverMemory, "":
		return NewInMemoryRepository(nil), noop, nil
	case DriverPostgres:
		if opts.DatabaseURL == "" {
			return nil, noop, fmt.Errorf("DATABASE_URL is not set")
		}
		db, err := sql.Open("pgx", opts.DatabaseURL)
		if err != nil {
			return nil, noop, err
		}
		if err := db.PingContext(ctx); err != nil {
			_ = db.Close()
			return nil, noop, fmt.Errorf("ping postgres: %w", err)
		}
		repo := NewPostgresRepository(db)
		if err := repo.EnsureSchema(ctx); err != nil {
			_ = db.Close()
			return nil, noop, err
		}
		return repo, func(context.Context) error { return db.Close() }, nil
	case DriverMongo:
		if opts.MongoURI == "" {
			return nil, noop, fmt.Errorf("MONGO_URI is not set")
		}
		client, err := mongo.Connect(ctx, options.Client().ApplyURI(opts.MongoURI))
		if err != nil {
			return nil, noop, err
		}
		if err := client.Ping(ctx, nil); err != nil {
			_ = client.Disconnect(ctx)
			return nil, noop, fmt.Errorf("ping mongo: %w", err)
		}
		coll := client.Database(opts.MongoDatabase).Collection(opts.MongoCollection)
		return NewMongoRepository(coll), client.Disconnect, nil
	default:
		return nil, noop, fmt.Errorf("unknown store driver %s", opts.Driver)
	}
}
