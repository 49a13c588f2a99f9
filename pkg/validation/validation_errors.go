package validation

import (
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

// FieldError is a single violated constraint, addressed by JSON field path
type FieldError struct {
	Field  string `json:"field"`
	Reason string `json:"reason"`
}

// Error is returned when a payload does not satisfy its schema. Fields are
// ordered by their position in the schema.
type Error struct {
	Fields []FieldError
}

func (e *Error) Error() string {
	parts := make([]string, len(e.Fields))
	for i, f := range e.Fields {
		parts[i] = f.Field + ": " + f.Reason
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

// Has reports whether any error references field
func (e *Error) Has(field string) bool {
	for _, f := range e.Fields {
		if f.Field == field || strings.HasPrefix(f.Field, field+".") {
			return true
		}
	}
	return false
}

// formatSingleError formats a single validation error to a user-friendly message
func formatSingleError(e validator.FieldError, label string) string {
	switch e.Tag() {
	case "required", "not_blank":
		return fmt.Sprintf("%s is required", label)

	case "email":
		return "Valid email is required"

	case "oneof":
		return fmt.Sprintf("Invalid enum value. Expected %s, received '%v'", formatOneOfOptions(e.Param()), e.Value())

	default:
		return fmt.Sprintf("%s is invalid (%s)", label, e.Tag())
	}
}

// formatOneOfOptions renders "a b c" as "'a' | 'b' | 'c'"
func formatOneOfOptions(param string) string {
	options := strings.Fields(param)
	for i, opt := range options {
		options[i] = "'" + opt + "'"
	}
	return strings.Join(options, " | ")
}

// typeName describes a decoded JSON value the way a client would name it
func typeName(v any) string {
	switch v.(type) {
	case nil:
		return "null"
	case string:
		return "string"
	case bool:
		return "boolean"
	case float64, float32, int, int64, int32:
		return "number"
	case []any:
		return "array"
	case map[string]any:
		return "object"
	}
	return fmt.Sprintf("%T", v)
}

// fieldLabel returns the label tag of the struct field, or its JSON name
func fieldLabel(t reflect.Type, structField, jsonName string) string {
	if f, ok := t.FieldByName(structField); ok {
		if label := f.Tag.Get("label"); label != "" {
			return label
		}
	}
	return jsonName
}

// fieldOrder maps JSON names to their position in the struct
func fieldOrder(t reflect.Type) map[string]int {
	order := make(map[string]int, t.NumField())
	for i := 0; i < t.NumField(); i++ {
		name := strings.SplitN(t.Field(i).Tag.Get("json"), ",", 2)[0]
		order[name] = i
	}
	return order
}
