// Package testutils provides helpers shared by integration tests.
//
// Tests that need MongoDB call RequireTestDatabase, which skips the test when no
// test database is configured and otherwise hands out an isolated database that
// is dropped when the test ends.
package testutils
