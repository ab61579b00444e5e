// Package resource implements the five CRUD operations shared by every
// collection the service exposes. A Descriptor names a resource and its payload
// type; a Handler binds a descriptor to a document store and serves
// list, get, create, replace and delete under the descriptor's path.
package resource
