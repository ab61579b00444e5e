// Package mongodb owns the process-wide MongoDB connection and implements
// store.DocumentStore on top of it.
//
// The Gateway is connected once at startup, before the HTTP server accepts
// traffic, and closed on shutdown. Request handlers never connect lazily: asking
// for the database before Connect returns ErrNotInitialized.
//
// Replacements are single pipeline updates, so the server must be MongoDB 4.2
// or later. Connect refuses older servers.
package mongodb
