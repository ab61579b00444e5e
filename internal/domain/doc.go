// Package domain defines the catalog's resource records (anime, manga, users and
// watchlist items), the identifier codec shared by every resource, and the
// sentinel errors used to classify failures across the application.
//
// The *Fields types carry the client-writable part of each record together with
// their validation rules; the record types add the server-assigned identifier and
// timestamps.
package domain
