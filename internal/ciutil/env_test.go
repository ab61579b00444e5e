package ciutil

import (
	"bytes"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
)

func clearCIEnv(t *testing.T) {
	t.Helper()
	for _, v := range []string{EnvCI, EnvGitHubActions, EnvGitLabCI, EnvJenkinsURL, EnvCircleCI} {
		t.Setenv(v, "")
	}
}

func TestIsCI(t *testing.T) {
	clearCIEnv(t)
	assert.False(t, IsCI())

	t.Setenv(EnvGitHubActions, "true")
	assert.True(t, IsCI())
}

func TestGetEnvWithFallbacks(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewJSONHandler(&buf, nil))

	t.Setenv("ANIME_PRIMARY", "")
	t.Setenv("ANIME_FALLBACK", "")
	assert.Equal(t, "default", GetEnvWithFallbacks([]string{"ANIME_PRIMARY", "ANIME_FALLBACK"}, "default", logger))
	assert.Empty(t, buf.String())

	t.Setenv("ANIME_FALLBACK", "mongodb://admin:hunter2@db:27017")
	assert.Equal(t, "mongodb://admin:hunter2@db:27017",
		GetEnvWithFallbacks([]string{"ANIME_PRIMARY", "ANIME_FALLBACK"}, "default", logger))
	assert.Contains(t, buf.String(), "Using fallback environment variable")
	assert.NotContains(t, buf.String(), "hunter2")

	buf.Reset()
	t.Setenv("ANIME_PRIMARY", "primary")
	assert.Equal(t, "primary", GetEnvWithFallbacks([]string{"ANIME_PRIMARY", "ANIME_FALLBACK"}, "default", logger))
	assert.Empty(t, buf.String())
}

func TestGetTestDatabaseURI(t *testing.T) {
	t.Setenv(EnvTestDatabaseURI, "")
	t.Setenv(EnvMongoDBURI, "")
	assert.Empty(t, GetTestDatabaseURI(nil))

	t.Setenv(EnvMongoDBURI, "mongodb://localhost:27017")
	assert.Equal(t, "mongodb://localhost:27017", GetTestDatabaseURI(nil))

	t.Setenv(EnvTestDatabaseURI, "mongodb://test:27017")
	assert.Equal(t, "mongodb://test:27017", GetTestDatabaseURI(nil))
}
