package mongodb

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/phrazzld/anime-api/internal/redact"
	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
	"go.mongodb.org/mongo-driver/v2/mongo/readpref"
)

// ErrNotInitialized is returned when the database is requested before Connect succeeded.
var ErrNotInitialized = errors.New("database connection not initialized")

// MinServerVersion is the oldest server release supporting the update
// pipelines DocumentStore.ReplaceByID issues.
var MinServerVersion = [2]int32{4, 2}

// DefaultConnectTimeout bounds the initial connection and ping.
const DefaultConnectTimeout = 10 * time.Second

// Gateway holds the single live connection of the process.
type Gateway struct {
	mu             sync.Mutex
	client         *mongo.Client
	db             *mongo.Database
	connectTimeout time.Duration
	logger         *slog.Logger
}

// NewGateway creates an unconnected gateway.
func NewGateway(logger *slog.Logger, connectTimeout time.Duration) *Gateway {
	if logger == nil {
		logger = slog.Default()
	}
	if connectTimeout <= 0 {
		connectTimeout = DefaultConnectTimeout
	}

	return &Gateway{
		connectTimeout: connectTimeout,
		logger:         logger.With(slog.String("component", "mongodb_gateway")),
	}
}

// Connect opens the connection and verifies it with a ping. Calling it again
// after a successful connect returns the open database without reconnecting.
func (g *Gateway) Connect(ctx context.Context, uri, dbName string) (*mongo.Database, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.db != nil {
		return g.db, nil
	}
	if uri == "" || dbName == "" {
		return nil, errors.New("database uri and name are required")
	}

	opts := options.Client().
		ApplyURI(uri).
		SetConnectTimeout(g.connectTimeout).
		SetServerSelectionTimeout(g.connectTimeout)

	client, err := mongo.Connect(opts)
	if err != nil {
		return nil, fmt.Errorf("failed to create mongodb client: %s", redact.Error(err))
	}

	pingCtx, cancel := context.WithTimeout(ctx, g.connectTimeout)
	defer cancel()

	if err := client.Ping(pingCtx, readpref.Primary()); err != nil {
		if discErr := client.Disconnect(context.Background()); discErr != nil {
			g.logger.Warn("failed to release client after ping failure",
				slog.String("error", redact.Error(discErr)))
		}
		return nil, fmt.Errorf("failed to ping mongodb: %s", redact.Error(err))
	}

	if err := checkServerVersion(pingCtx, client); err != nil {
		if discErr := client.Disconnect(context.Background()); discErr != nil {
			g.logger.Warn("failed to release client after version check failure",
				slog.String("error", redact.Error(discErr)))
		}
		return nil, err
	}

	g.client = client
	g.db = client.Database(dbName)
	g.logger.Info("database connection established", slog.String("database", dbName))

	return g.db, nil
}

// Database returns the connected database.
func (g *Gateway) Database() (*mongo.Database, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.db == nil {
		return nil, ErrNotInitialized
	}
	return g.db, nil
}

// Collection returns a handle on the named collection of the connected database.
func (g *Gateway) Collection(name string) (*mongo.Collection, error) {
	db, err := g.Database()
	if err != nil {
		return nil, err
	}
	return db.Collection(name), nil
}

// Close disconnects the client. It is safe to call on an unconnected gateway.
func (g *Gateway) Close(ctx context.Context) error {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.client == nil {
		return nil
	}

	err := g.client.Disconnect(ctx)
	g.client = nil
	g.db = nil
	if err != nil {
		return fmt.Errorf("failed to disconnect from mongodb: %w", err)
	}

	g.logger.Info("database connection closed")
	return nil
}

func checkServerVersion(ctx context.Context, client *mongo.Client) error {
	var info struct {
		Version      string  `bson:"version"`
		VersionArray []int32 `bson:"versionArray"`
	}
	err := client.Database("admin").RunCommand(ctx, bson.D{{Key: "buildInfo", Value: 1}}).Decode(&info)
	if err != nil {
		return fmt.Errorf("failed to read mongodb server version: %s", redact.Error(err))
	}
	if !supportsServerVersion(info.VersionArray) {
		return fmt.Errorf("mongodb server %q is older than %d.%d", info.Version, MinServerVersion[0], MinServerVersion[1])
	}
	return nil
}

// supportsServerVersion reports whether a buildInfo versionArray is at least
// MinServerVersion.
func supportsServerVersion(version []int32) bool {
	for i, want := range MinServerVersion {
		var got int32
		if i < len(version) {
			got = version[i]
		}
		if got != want {
			return got > want
		}
	}
	return true
}
