package mongodb

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/phrazzld/anime-api/internal/testutils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGateway_BeforeConnect(t *testing.T) {
	t.Parallel()

	g := NewGateway(nil, 0)

	db, err := g.Database()
	assert.Nil(t, db)
	assert.True(t, errors.Is(err, ErrNotInitialized))

	coll, err := g.Collection("anime")
	assert.Nil(t, coll)
	assert.True(t, errors.Is(err, ErrNotInitialized))

	assert.NoError(t, g.Close(context.Background()), "closing an unconnected gateway is a no-op")
}

func TestSupportsServerVersion(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		version []int32
		want    bool
	}{
		{name: "minimum", version: []int32{4, 2, 0, 0}, want: true},
		{name: "newer minor", version: []int32{4, 4, 29, 0}, want: true},
		{name: "newer major", version: []int32{7, 0, 2, 0}, want: true},
		{name: "older minor", version: []int32{4, 0, 28, 0}, want: false},
		{name: "older major", version: []int32{3, 6, 23, 0}, want: false},
		{name: "missing", version: nil, want: false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, supportsServerVersion(tc.version))
		})
	}
}

func TestGateway_ConnectRequiresURIAndName(t *testing.T) {
	t.Parallel()

	g := NewGateway(nil, time.Second)

	_, err := g.Connect(context.Background(), "", "catalog")
	assert.Error(t, err)

	_, err = g.Connect(context.Background(), "mongodb://localhost:27017", "")
	assert.Error(t, err)

	_, err = g.Database()
	assert.True(t, errors.Is(err, ErrNotInitialized), "failed connect must leave the gateway uninitialized")
}

func TestGateway_ConnectRejectsMalformedURI(t *testing.T) {
	t.Parallel()

	g := NewGateway(nil, time.Second)

	_, err := g.Connect(context.Background(), "not-a-mongodb-uri", "catalog")
	require.Error(t, err)

	_, err = g.Database()
	assert.True(t, errors.Is(err, ErrNotInitialized))
}

func TestGateway_ConnectIsIdempotent(t *testing.T) {
	uri := testutils.TestDatabaseURI(t)
	name := testutils.UniqueDatabaseName("anime_api_gateway")

	g := NewGateway(nil, testutils.DatabaseTimeout)
	ctx := context.Background()
	t.Cleanup(func() { _ = g.Close(ctx) })

	first, err := g.Connect(ctx, uri, name)
	require.NoError(t, err)

	second, err := g.Connect(ctx, "mongodb://ignored:1", "ignored")
	require.NoError(t, err)
	assert.Same(t, first, second, "second connect must return the open handle")

	db, err := g.Database()
	require.NoError(t, err)
	assert.Equal(t, name, db.Name())
}
