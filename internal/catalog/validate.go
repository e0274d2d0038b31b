package catalog

import (
	"errors"
	"fmt"
	"reflect"
	"slices"
	"strings"

	"github.com/go-playground/validator/v10"
)

// validate is safe for concurrent use and caches struct metadata.
var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	// unit and tax_bracket check against Units and TaxBrackets.
	must(v.RegisterValidation("unit", func(fl validator.FieldLevel) bool {
		return slices.Contains(Units, Unit(fl.Field().String()))
	}))
	must(v.RegisterValidation("tax_bracket", func(fl validator.FieldLevel) bool {
		return slices.Contains(TaxBrackets, TaxBracket(fl.Field().String()))
	}))
	return v
}

func must(err error) {
	if err != nil {
		panic(err)
	}
}

// ValidateInput checks a create payload.
func ValidateInput(in ProductInput) error {
	if strings.TrimSpace(in.Name) == "" {
		return &ValidationError{Field: "name", Message: "is required"}
	}
	return toValidationError(validate.Struct(in))
}

// ValidatePatch checks an update payload.
func ValidatePatch(pp ProductPatch) error {
	if pp.Name != nil && strings.TrimSpace(*pp.Name) == "" {
		return &ValidationError{Field: "name", Message: "must not be empty"}
	}
	return toValidationError(validate.Struct(pp))
}

func toValidationError(err error) error {
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return &ValidationError{Message: err.Error()}
	}

	fe := verrs[0]
	return &ValidationError{Field: fe.Field(), Message: describe(fe)}
}

func describe(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "oneof":
		return fmt.Sprintf("must be one of [%s]", fe.Param())
	case "unit":
		return fmt.Sprintf("must be one of [%s]", join(Units))
	case "tax_bracket":
		return fmt.Sprintf("must be one of [%s]", join(TaxBrackets))
	case "gte":
		return fmt.Sprintf("must be greater than or equal to %s", fe.Param())
	case "min":
		return fmt.Sprintf("must be at least %s characters long", fe.Param())
	default:
		return fmt.Sprintf("failed on the %q rule", fe.Tag())
	}
}

func join[T ~string](values []T) string {
	parts := make([]string, len(values))
	for i, v := range values {
		parts[i] = string(v)
	}
	return strings.Join(parts, " ")
}
