// Package auth implements the authorization gate guarding mutating routes.
//
// A Gate is selected once at startup. The enforcing gate verifies bearer tokens
// issued by an OpenID Connect provider (signature against the issuer's published
// keys, issuer, audience and expiry) and requires a configured write scope. The
// pass-through gate admits every request; it is used when authorization is
// disabled or not configured.
package auth
