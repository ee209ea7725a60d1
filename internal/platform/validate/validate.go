// Package validate wraps go-playground/validator so that struct validation
// failures surface as apperr InvalidData errors named after the JSON field.
package validate

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/meditrack/meditrack/internal/platform/apperr"
)

// Validator validates tagged structs. It is safe for concurrent use.
type Validator struct {
	v *validator.Validate
}

// New returns a Validator that reports JSON field names and understands the
// extra "notblank" tag.
func New() *Validator {
	v := validator.New()
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "-" || name == "" {
			return f.Name
		}
		return name
	})
	if err := v.RegisterValidation("notblank", notBlank); err != nil {
		panic(fmt.Sprintf("validate: register notblank: %v", err))
	}
	return &Validator{v: v}
}

func notBlank(fl validator.FieldLevel) bool {
	return strings.TrimSpace(fl.Field().String()) != ""
}

// Struct validates s and converts the first failure into an InvalidData
// error carrying the offending field.
func (val *Validator) Struct(s interface{}) error {
	err := val.v.Struct(s)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return apperr.InvalidData("", err.Error())
	}
	fe := verrs[0]
	return apperr.InvalidData(fe.Field(), message(fe))
}

// Validate implements echo.Validator.
func (val *Validator) Validate(i interface{}) error { return val.Struct(i) }

func message(fe validator.FieldError) string {
	field := fe.Field()
	switch fe.Tag() {
	case "required", "notblank":
		return field + " cannot be null or empty"
	case "min":
		return fmt.Sprintf("%s must be at least %s", field, fe.Param())
	case "max":
		return fmt.Sprintf("%s must be at most %s", field, fe.Param())
	case "gte":
		return fmt.Sprintf("%s must be non-negative", field)
	case "email":
		return "Invalid email format"
	case "oneof":
		return fmt.Sprintf("%s must be one of [%s]", field, fe.Param())
	default:
		return fmt.Sprintf("%s failed %q validation", field, fe.Tag())
	}
}
