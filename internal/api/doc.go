// Package api holds the HTTP concerns shared by every resource: the mapping from
// internal errors to status codes and client-safe messages, the process-wide
// fallback error handler and the health, not-found and method-not-allowed
// handlers.
package api
