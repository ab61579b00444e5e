package testutils

import (
	"context"
	"testing"
	"time"

	"github.com/phrazzld/anime-api/internal/ciutil"
	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
	"go.mongodb.org/mongo-driver/v2/mongo/readpref"
)

// DatabaseTimeout bounds connecting to and cleaning up the test database.
const DatabaseTimeout = 5 * time.Second

// TestDatabaseURI returns the configured test database URI or skips the test.
func TestDatabaseURI(t testing.TB) string {
	t.Helper()

	uri := ciutil.GetTestDatabaseURI(nil)
	if uri == "" {
		msg := ciutil.EnvTestDatabaseURI + " not set, skipping MongoDB integration test"
		if ciutil.IsCI() {
			msg += " (configure a MongoDB service for this CI job to run it)"
		}
		t.Skip(msg)
	}
	return uri
}

// UniqueDatabaseName returns a database name no other test run uses.
func UniqueDatabaseName(prefix string) string {
	return prefix + "_" + bson.NewObjectID().Hex()
}

// RequireTestDatabase connects to the test database server and returns a
// freshly named database. The database is dropped and the client disconnected
// when the test ends.
func RequireTestDatabase(t testing.TB) *mongo.Database {
	t.Helper()
	uri := TestDatabaseURI(t)

	client, err := mongo.Connect(options.Client().
		ApplyURI(uri).
		SetServerSelectionTimeout(DatabaseTimeout))
	if err != nil {
		t.Fatalf("failed to create test database client: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), DatabaseTimeout)
	defer cancel()
	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		_ = client.Disconnect(context.Background())
		t.Fatalf("test database unreachable: %v", err)
	}

	db := client.Database(UniqueDatabaseName("anime_api_test"))
	t.Cleanup(func() {
		ctx, cancel := context.WithTimeout(context.Background(), DatabaseTimeout)
		defer cancel()
		if err := db.Drop(ctx); err != nil {
			t.Logf("failed to drop test database %s: %v", db.Name(), err)
		}
		_ = client.Disconnect(ctx)
	})

	return db
}
