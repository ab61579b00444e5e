// Package apidoc generates the Swagger 2.0 document describing the service.
//
// The document is derived from the same payload structs the validators use, so
// field names, required fields and constraints cannot drift from what the API
// enforces.
package apidoc
