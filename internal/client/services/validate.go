package services

import (
	"errors"
	"reflect"
	"strings"

	"github.com/Zhanerrke588595/it-events/internal/common"
	"github.com/go-playground/validator/v10"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	// report json names, which are what users see in forms
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
		if name == "" || name == "-" {
			return f.Name
		}
		return name
	})
	return v
}

// validateInput checks validate tags on in. Missing required fields take
// precedence over malformed ones.
func validateInput(in any) error {
	err := validate.Struct(in)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}

	var required, invalid []string
	for _, fe := range verrs {
		if fe.Tag() == "required" {
			required = append(required, fe.Field())
		} else {
			invalid = append(invalid, fe.Field())
		}
	}
	if len(required) > 0 {
		return common.NewValidationError("", required...)
	}
	return common.NewValidationError("Invalid value", invalid...)
}
