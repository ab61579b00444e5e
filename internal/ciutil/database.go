package ciutil

import "log/slog"

// GetTestDatabaseURI returns the MongoDB URI integration tests should use.
// ANIME_TEST_DATABASE_URI is preferred; MONGODB_URI is accepted as a fallback.
// It returns an empty string when neither is set.
func GetTestDatabaseURI(logger *slog.Logger) string {
	uri := GetEnvWithFallbacks([]string{EnvTestDatabaseURI, EnvMongoDBURI}, "", logger)
	if uri == "" && logger != nil {
		logger.Info("No test database URI environment variables found", "ci", IsCI())
	}
	return uri
}
