package apidoc

import (
	"reflect"
	"slices"
	"strconv"
	"strings"

	"github.com/go-openapi/spec"
)

const objectIDPattern = "^[0-9a-fA-F]{24}$"

func objectIDSchema() *spec.Schema {
	return spec.StringProperty().WithPattern(objectIDPattern)
}

func errorSchema() spec.Schema {
	field := new(spec.Schema).Typed("object", "").
		SetProperty("field", *spec.StringProperty()).
		SetProperty("rule", *spec.StringProperty()).
		SetProperty("message", *spec.StringProperty())

	return *new(spec.Schema).Typed("object", "").
		SetProperty("message", *spec.StringProperty()).
		SetProperty("details", *spec.ArrayProperty(field)).
		SetProperty("trace_id", *spec.StringProperty()).
		WithRequired("message")
}

// recordSchema extends a payload schema with the server-managed fields.
func recordSchema(input *spec.Schema) *spec.Schema {
	record := *input
	record.Properties = make(spec.SchemaProperties, len(input.Properties)+3)
	for name, prop := range input.Properties {
		prop.Default = nil
		record.Properties[name] = prop
	}
	record.Properties["id"] = *objectIDSchema()
	record.Properties["createdAt"] = *spec.DateTimeProperty()
	record.Properties["updatedAt"] = *spec.DateTimeProperty()

	var defaulted []string
	for name, prop := range input.Properties {
		if prop.Default != nil {
			defaulted = append(defaulted, name)
		}
	}
	slices.Sort(defaulted)

	record.Required = slices.Concat(input.Required, defaulted, []string{"id", "createdAt", "updatedAt"})
	return &record
}

// payloadSchema reflects a payload struct. Field names come from json tags,
// constraints from validate tags. Fields with a default are optional.
func payloadSchema(t reflect.Type, defaults map[string]any) *spec.Schema {
	s := new(spec.Schema).Typed("object", "")
	s.AdditionalProperties = &spec.SchemaOrBool{Allows: false}

	for i := range t.NumField() {
		sf := t.Field(i)
		name, _, _ := strings.Cut(sf.Tag.Get("json"), ",")
		if !sf.IsExported() || name == "" || name == "-" {
			continue
		}

		prop := typeSchema(sf.Type)
		required := applyRules(prop, sf.Tag.Get("validate"))

		if def, ok := defaults[name]; ok {
			prop.WithDefault(def)
			required = false
		}
		if required {
			s.Required = append(s.Required, name)
		}
		s.SetProperty(name, *prop)
	}

	return s
}

func typeSchema(t reflect.Type) *spec.Schema {
	for t.Kind() == reflect.Pointer {
		t = t.Elem()
	}

	switch t.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return spec.Int64Property()
	case reflect.Float32, reflect.Float64:
		return spec.Float64Property()
	case reflect.Bool:
		return spec.BoolProperty()
	case reflect.Slice, reflect.Array:
		return spec.ArrayProperty(typeSchema(t.Elem()))
	default:
		return spec.StringProperty()
	}
}

// applyRules maps validate tags onto schema constraints and reports whether
// the field is required. Rules after "dive" apply to array items.
func applyRules(s *spec.Schema, tag string) bool {
	if tag == "" {
		return false
	}

	rules := strings.Split(tag, ",")
	required := slices.Contains(rules, "required") && !slices.Contains(rules, "omitempty")

	if i := slices.Index(rules, "dive"); i >= 0 {
		if s.Items != nil && s.Items.Schema != nil {
			applyRules(s.Items.Schema, strings.Join(rules[i+1:], ","))
		}
		rules = rules[:i]
	}

	for _, rule := range rules {
		key, param, _ := strings.Cut(rule, "=")
		switch key {
		case "required":
			if s.Type.Contains("string") {
				s.WithMinLength(1)
			}
		case "min", "gte":
			setLowerBound(s, param)
		case "max", "lte":
			setUpperBound(s, param)
		case "oneof":
			values := strings.Fields(param)
			enum := make([]any, len(values))
			for i, v := range values {
				enum[i] = v
			}
			s.WithEnum(enum...)
		case "email":
			s.Format = "email"
		case "url":
			s.Format = "uri"
		case "objectid":
			s.WithPattern(objectIDPattern)
		case "maxyear":
			s.WithDescription("No later than the year after the current year")
		}
	}

	return required
}

func setLowerBound(s *spec.Schema, param string) {
	n, err := strconv.ParseFloat(param, 64)
	if err != nil {
		return
	}
	switch {
	case s.Type.Contains("string"):
		s.WithMinLength(int64(n))
	case s.Type.Contains("array"):
		s.WithMinItems(int64(n))
	default:
		s.WithMinimum(n, false)
	}
}

func setUpperBound(s *spec.Schema, param string) {
	n, err := strconv.ParseFloat(param, 64)
	if err != nil {
		return
	}
	switch {
	case s.Type.Contains("string"):
		s.WithMaxLength(int64(n))
	case s.Type.Contains("array"):
		s.WithMaxItems(int64(n))
	default:
		s.WithMaximum(n, false)
	}
}
