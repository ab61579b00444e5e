// Package ciutil provides utilities for CI and environment-specific functionality.
//
// It centralizes CI detection and the environment variables integration tests
// use to find a MongoDB instance, so test helpers behave the same on developer
// machines and in CI.
package ciutil
