// Package validation turns an untyped JSON object into a typed, normalized
// payload or a single error listing every invalid field.
//
// A Schema is built once per resource from its field struct. Field types drive
// decoding and coercion (numeric strings become numbers, strings are trimmed),
// and `validate` struct tags drive the constraints. Every failure is collected
// before returning so clients see all violations in one round trip.
package validation
