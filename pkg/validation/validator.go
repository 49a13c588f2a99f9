package validation

import (
	"errors"
	"fmt"
	"reflect"
	"sort"
	"strings"

	"sparknest-backend/internal/domain"

	"github.com/go-playground/validator/v10"
)

var (
	contactType = reflect.TypeOf(domain.ContactSubmission{})
	projectType = reflect.TypeOf(domain.ProjectSubmission{})
)

// FormValidator turns untyped form payloads into validated submissions.
// It holds no per-call state and is safe for concurrent use.
type FormValidator struct {
	validate *validator.Validate
}

// NewFormValidator creates a validator with the custom rules registered
func NewFormValidator() *FormValidator {
	v := validator.New()
	RegisterValidators(v)
	return &FormValidator{validate: v}
}

// ValidateContact checks payload against the contact schema
func (v *FormValidator) ValidateContact(payload map[string]any) (*domain.ContactSubmission, error) {
	d := decoder{payload: payload}
	sub := &domain.ContactSubmission{
		Name:     d.str("name"),
		Email:    d.str("email"),
		Phone:    d.str("phone"),
		Subject:  d.str("subject"),
		Message:  d.str("message"),
		FormType: domain.FormKind(d.str("formType")),
	}
	if err := v.check(sub, contactType, d.errs); err != nil {
		return nil, err
	}
	return sub, nil
}

// ValidateProject checks payload against the project schema
func (v *FormValidator) ValidateProject(payload map[string]any) (*domain.ProjectSubmission, error) {
	d := decoder{payload: payload}
	sub := &domain.ProjectSubmission{
		Name:           d.str("name"),
		Email:          d.str("email"),
		Company:        d.str("company"),
		Phone:          d.str("phone"),
		ProjectType:    domain.ProjectType(d.str("projectType")),
		Budget:         d.str("budget"),
		Timeline:       d.str("timeline"),
		Description:    d.str("description"),
		Features:       d.strs("features"),
		AdditionalInfo: d.str("additionalInfo"),
	}
	if err := v.check(sub, projectType, d.errs); err != nil {
		return nil, err
	}
	return sub, nil
}

// check runs the struct rules and merges them with the decoding errors.
// Fields that already failed decoding are not reported twice.
func (v *FormValidator) check(sub any, t reflect.Type, typeErrs []FieldError) error {
	fields := append([]FieldError(nil), typeErrs...)

	failed := make(map[string]bool, len(typeErrs))
	for _, fe := range typeErrs {
		failed[rootField(fe.Field)] = true
	}

	if err := v.validate.Struct(sub); err != nil {
		var verrs validator.ValidationErrors
		if !errors.As(err, &verrs) {
			return fmt.Errorf("validate %s: %w", t.Name(), err)
		}
		for _, fe := range verrs {
			name := fe.Field()
			if failed[name] {
				continue
			}
			failed[name] = true
			fields = append(fields, FieldError{
				Field:  name,
				Reason: formatSingleError(fe, fieldLabel(t, fe.StructField(), name)),
			})
		}
	}

	if len(fields) == 0 {
		return nil
	}

	order := fieldOrder(t)
	sort.SliceStable(fields, func(i, j int) bool {
		return order[rootField(fields[i].Field)] < order[rootField(fields[j].Field)]
	})
	return &Error{Fields: fields}
}

func rootField(path string) string {
	root, _, _ := strings.Cut(path, ".")
	return root
}

// decoder pulls typed values out of a decoded JSON object, recording a
// FieldError for every value of the wrong type.
type decoder struct {
	payload map[string]any
	errs    []FieldError
}

func (d *decoder) str(field string) string {
	raw, ok := d.payload[field]
	if !ok {
		return ""
	}
	s, ok := raw.(string)
	if !ok {
		d.typeErr(field, "string", raw)
		return ""
	}
	return s
}

func (d *decoder) strs(field string) []string {
	raw, ok := d.payload[field]
	if !ok {
		return []string{}
	}

	switch items := raw.(type) {
	case []string:
		return append([]string{}, items...)
	case []any:
		out := make([]string, 0, len(items))
		valid := true
		for i, item := range items {
			s, ok := item.(string)
			if !ok {
				d.typeErr(fmt.Sprintf("%s.%d", field, i), "string", item)
				valid = false
				continue
			}
			out = append(out, s)
		}
		if !valid {
			return []string{}
		}
		return out
	default:
		d.typeErr(field, "array", raw)
		return []string{}
	}
}

func (d *decoder) typeErr(field, expected string, got any) {
	d.errs = append(d.errs, FieldError{
		Field:  field,
		Reason: fmt.Sprintf("Expected %s, received %s", expected, typeName(got)),
	})
}
