package main

import (
	"context"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStartHTTPServerShutsDownOnCancel(t *testing.T) {
	ta := newTestApp(t, nil)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() {
		done <- ta.app.startHTTPServer(ctx, chi.NewRouter())
	}()

	time.Sleep(50 * time.Millisecond)
	cancel()

	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("server did not shut down")
	}

	assert.Contains(t, ta.logs.String(), "Server shutdown completed")
	assert.Contains(t, ta.logs.String(), "Application shutdown completed")
}

func TestStartHTTPServerListenFailure(t *testing.T) {
	ta := newTestApp(t, nil)
	ta.app.config.Server.Port = -1

	err := ta.app.startHTTPServer(context.Background(), chi.NewRouter())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "listen failed")
}
