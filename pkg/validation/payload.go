package validation

import (
	"encoding/json"
	"fmt"
)

// DecodeObject parses a JSON request body that must hold a single object.
// Anything else is reported as a validation error on the root field "".
func DecodeObject(body []byte) (map[string]any, error) {
	var v any
	if err := json.Unmarshal(body, &v); err != nil {
		return nil, &Error{Fields: []FieldError{{Field: "", Reason: "Invalid JSON: " + err.Error()}}}
	}
	obj, ok := v.(map[string]any)
	if !ok {
		return nil, &Error{Fields: []FieldError{{Field: "", Reason: fmt.Sprintf("Expected object, received %s", typeName(v))}}}
	}
	return obj, nil
}
