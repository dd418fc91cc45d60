package services

import (
	"crm-app/types"
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator"
	"golang.org/x/exp/slices"
)

var validate = validator.New()

// validateStruct runs the struct tags and converts failures into
// types.ValidationErrors keyed by the json-style field name.
func validateStruct(v interface{}) error {
	err := validate.Struct(v)
	if err == nil {
		return nil
	}
	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return types.NewValidationError("", "%s", err.Error())
	}

	out := make(types.ValidationErrors, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		out = append(out, &types.ValidationError{
			Field:   toSnake(fe.Field()),
			Message: describeTag(fe),
		})
	}
	return out
}

func describeTag(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "oneof":
		return fmt.Sprintf("must be one of [%s]", fe.Param())
	case "email":
		return "must be a valid email"
	default:
		return fmt.Sprintf("failed %q check", fe.Tag())
	}
}

func toSnake(name string) string {
	var b strings.Builder
	for i, r := range name {
		if r >= 'A' && r <= 'Z' {
			if i > 0 && !(name[i-1] >= 'A' && name[i-1] <= 'Z') {
				b.WriteByte('_')
			}
			r += 'a' - 'A'
		}
		b.WriteRune(r)
	}
	return b.String()
}

// oneOf is the explicit form of the oneof tag, for values checked outside a
// struct.
func oneOf(field, value string, allowed []string) error {
	if slices.Contains(allowed, value) {
		return nil
	}
	return types.NewValidationError(field, "must be one of [%s]", strings.Join(allowed, " "))
}

func optionalString(s string) *string {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	return &s
}
