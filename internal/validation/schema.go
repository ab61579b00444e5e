package validation

import (
	"errors"
	"fmt"
	"maps"
	"reflect"
	"slices"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/go-viper/mapstructure/v2"
	"github.com/phrazzld/anime-api/internal/domain"
)

// Schema validates raw payloads into values of the field struct P.
type Schema[P any] struct {
	fields   []field
	byName   map[string]int
	defaults map[string]any
	validate *validator.Validate
	now      func() time.Time
}

// Normalizer is implemented by payloads that canonicalize accepted values.
// Normalize runs only after every rule has passed.
type Normalizer interface {
	Normalize()
}

type field struct {
	name  string
	index int
	typ   reflect.Type
}

// Option customizes a Schema.
type Option func(*options)

type options struct {
	now func() time.Time
}

// WithClock sets the clock used by date-relative rules such as maxyear.
func WithClock(now func() time.Time) Option {
	return func(o *options) {
		o.now = now
	}
}

// NewSchema builds the schema for P. Defaults are applied to keys absent from
// the payload before decoding. P must be a struct whose exported fields carry
// json tags.
func NewSchema[P any](defaults map[string]any, opts ...Option) *Schema[P] {
	o := options{now: time.Now}
	for _, opt := range opts {
		opt(&o)
	}

	t := reflect.TypeFor[P]()
	if t.Kind() != reflect.Struct {
		// ALLOW-PANIC: schemas are built at startup from static types
		panic(fmt.Sprintf("validation: schema type %s is not a struct", t))
	}

	s := &Schema[P]{
		byName:   make(map[string]int),
		defaults: maps.Clone(defaults),
		now:      o.now,
	}
	for i := range t.NumField() {
		sf := t.Field(i)
		name := jsonName(sf)
		if !sf.IsExported() || name == "" {
			continue
		}
		s.byName[name] = len(s.fields)
		s.fields = append(s.fields, field{name: name, index: i, typ: sf.Type})
	}

	s.validate = newValidator(s.now)
	return s
}

// FieldNames returns the accepted payload keys in declaration order.
func (s *Schema[P]) FieldNames() []string {
	names := make([]string, len(s.fields))
	for i, f := range s.fields {
		names[i] = f.name
	}
	return names
}

// Validate decodes raw into a P. raw is not modified. On failure the returned
// error is an *Error naming every invalid field.
func (s *Schema[P]) Validate(raw map[string]any) (P, error) {
	var payload P

	input := make(map[string]any, len(raw)+len(s.defaults))
	for k, v := range raw {
		if v != nil {
			input[k] = v
		}
	}
	for k, v := range s.defaults {
		if _, ok := input[k]; !ok {
			input[k] = v
		}
	}

	out := reflect.ValueOf(&payload).Elem()
	typeErrs := make(map[string]FieldError)
	for _, f := range s.fields {
		value, ok := input[f.name]
		if !ok {
			continue
		}
		if fe := decodeField(f, value, out.Field(f.index)); fe != nil {
			typeErrs[f.name] = *fe
		}
	}

	ruleErrs, err := s.checkRules(payload)
	if err != nil {
		return payload, err
	}

	var report []FieldError
	for _, f := range s.fields {
		if fe, ok := typeErrs[f.name]; ok {
			report = append(report, fe)
			continue
		}
		report = append(report, ruleErrs[f.name]...)
	}

	var unknown []string
	for k := range raw {
		if _, ok := s.byName[k]; !ok {
			unknown = append(unknown, k)
		}
	}
	slices.Sort(unknown)
	for _, k := range unknown {
		report = append(report, FieldError{Field: k, Rule: RuleUnknown, Message: "is not allowed"})
	}

	if len(report) > 0 {
		var zero P
		return zero, &Error{Fields: report}
	}
	if n, ok := any(&payload).(Normalizer); ok {
		n.Normalize()
	}
	return payload, nil
}

// decodeField decodes one raw value into dst, coercing where allowed.
func decodeField(f field, value any, dst reflect.Value) *FieldError {
	var mismatch *typeMismatch
	hook := mapstructure.DecodeHookFuncType(func(_ reflect.Type, to reflect.Type, data any) (any, error) {
		v, err := coerce(to, data)
		if err != nil && mismatch == nil {
			mismatch, _ = err.(*typeMismatch)
		}
		return v, err
	})

	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		DecodeHook: hook,
		Result:     dst.Addr().Interface(),
	})
	if err != nil {
		return &FieldError{Field: f.name, Rule: RuleType, Message: "has an invalid type"}
	}
	if err := dec.Decode(value); err == nil {
		return nil
	}

	message := "has an invalid type"
	if mismatch != nil {
		message = mismatch.Error()
		if elem := indirect(f.typ); elem.Kind() == reflect.Slice && mismatch.want != "array" {
			message = "must be an array of " + mismatch.want + "s"
		}
	}
	return &FieldError{Field: f.name, Rule: RuleType, Message: message}
}

// checkRules runs the validate tags and groups failures by top-level field.
func (s *Schema[P]) checkRules(payload P) (map[string][]FieldError, error) {
	err := s.validate.Struct(payload)
	if err == nil {
		return nil, nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return nil, fmt.Errorf("validating %T: %w", payload, err)
	}

	grouped := make(map[string][]FieldError)
	for _, fe := range verrs {
		path := fe.Namespace()
		if _, rest, ok := strings.Cut(path, "."); ok {
			path = rest
		}
		base, _, _ := strings.Cut(path, "[")
		grouped[base] = append(grouped[base], FieldError{
			Field:   path,
			Rule:    fe.Tag(),
			Message: s.describe(fe),
		})
	}
	return grouped, nil
}

func (s *Schema[P]) describe(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "min":
		if fe.Kind() == reflect.Slice {
			return fmt.Sprintf("must contain at least %s item(s)", fe.Param())
		}
		return fmt.Sprintf("must be at least %s characters long", fe.Param())
	case "max":
		if fe.Kind() == reflect.Slice {
			return fmt.Sprintf("must contain at most %s item(s)", fe.Param())
		}
		return fmt.Sprintf("must be at most %s characters long", fe.Param())
	case "gte":
		return fmt.Sprintf("must be greater than or equal to %s", fe.Param())
	case "lte":
		return fmt.Sprintf("must be less than or equal to %s", fe.Param())
	case "oneof":
		return "must be one of: " + strings.Join(strings.Fields(fe.Param()), ", ")
	case "email":
		return "must be a valid email address"
	case "url":
		return "must be a valid URL"
	case "maxyear":
		return fmt.Sprintf("must be less than or equal to %d", domain.MaxReleaseYear(s.now()))
	case "objectid":
		return fmt.Sprintf("must be a %d-character hex identifier", domain.IDLength)
	default:
		return "is invalid"
	}
}

func indirect(t reflect.Type) reflect.Type {
	for t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	return t
}

func jsonName(sf reflect.StructField) string {
	name, _, _ := strings.Cut(sf.Tag.Get("json"), ",")
	if name == "-" {
		return ""
	}
	return name
}
