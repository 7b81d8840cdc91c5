// Package validation collects field-level input problems into a Violations map.
package validation

import (
	"errors"
	"reflect"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
)

type Violations map[string]string

func (v Violations) Empty() bool { return len(v) == 0 }

// Error lets a non-empty Violations travel as an error.
func (v Violations) Error() string {
	parts := make([]string, 0, len(v))
	for field, code := range v {
		parts = append(parts, field+": "+code)
	}
	return "validation failed: " + strings.Join(parts, ", ")
}

// Basic validators
func Required(field, value string, v Violations) {
	if strings.TrimSpace(value) == "" {
		v[field] = "required"
	}
}

func NonNegativeFloat(field string, val float64, v Violations) {
	if val < 0 {
		v[field] = "must_not_be_negative"
	}
}

var (
	validate     *validator.Validate
	validateOnce sync.Once
)

func instance() *validator.Validate {
	validateOnce.Do(func() {
		validate = validator.New(validator.WithRequiredStructEnabled())
		// report json names so violations line up with request bodies
		validate.RegisterTagNameFunc(func(f reflect.StructField) string {
			name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
			if name == "-" {
				return ""
			}
			if name == "" {
				return f.Name
			}
			return name
		})
	})
	return validate
}

// Struct runs the `validate` struct tags of s and merges failures into v.
func Struct(s any, v Violations) {
	err := instance().Struct(s)
	if err == nil {
		return
	}
	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		v["_"] = "invalid"
		return
	}
	for _, fe := range fieldErrs {
		v[fe.Field()] = code(fe.Tag())
	}
}

func code(tag string) string {
	switch tag {
	case "required":
		return "required"
	case "gt":
		return "must_be_positive"
	case "gte":
		return "must_not_be_negative"
	case "oneof":
		return "invalid_choice"
	default:
		return "invalid"
	}
}
