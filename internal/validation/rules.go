package validation

import (
	"reflect"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/phrazzld/anime-api/internal/domain"
)

// newValidator returns a validator reporting json field names and knowing the
// catalog-specific rules:
//
//	maxyear   integer not later than next year
//	objectid  24-character hex identifier
func newValidator(now func() time.Time) *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())

	v.RegisterTagNameFunc(func(sf reflect.StructField) string {
		return jsonName(sf)
	})

	// Registration only fails on empty tags or nil funcs.
	_ = v.RegisterValidation("maxyear", func(fl validator.FieldLevel) bool {
		return fl.Field().Int() <= int64(domain.MaxReleaseYear(now()))
	})
	_ = v.RegisterValidation("objectid", func(fl validator.FieldLevel) bool {
		_, err := domain.ParseID(fl.Field().String())
		return err == nil
	})

	return v
}
