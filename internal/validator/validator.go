package validator

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"
)

// FieldError is one failed validation rule.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ValidationErrors aggregates field errors and satisfies error so services
// can return it directly.
type ValidationErrors []FieldError

func (v ValidationErrors) Error() string {
	if len(v) == 0 {
		return "validation failed"
	}
	msgs := make([]string, len(v))
	for i, fe := range v {
		msgs[i] = fmt.Sprintf("%s: %s", fe.Field, fe.Message)
	}
	return strings.Join(msgs, "; ")
}

var mobilePattern = regexp.MustCompile(`^\d{10}$`)

// Validator wraps go-playground validation with the domain rules.
type Validator struct {
	validate *validator.Validate
}

// New creates a validator with the custom academic rules registered.
func New() *Validator {
	validate := validator.New()

	// Semesters are roman numerals I through VIII everywhere.
	_ = validate.RegisterValidation("semester", func(fl validator.FieldLevel) bool {
		switch fl.Field().String() {
		case "I", "II", "III", "IV", "V", "VI", "VII", "VIII":
			return true
		}
		return false
	})

	// Indian 10-digit mobile numbers.
	_ = validate.RegisterValidation("mobile10", func(fl validator.FieldLevel) bool {
		return mobilePattern.MatchString(fl.Field().String())
	})

	return &Validator{validate: validate}
}

// Validate runs struct validation and converts failures into field errors.
func (v *Validator) Validate(s interface{}) ValidationErrors {
	err := v.validate.Struct(s)
	if err == nil {
		return nil
	}

	var out ValidationErrors
	if verrs, ok := err.(validator.ValidationErrors); ok {
		for _, fe := range verrs {
			out = append(out, FieldError{
				Field:   fe.Field(),
				Message: messageFor(fe),
			})
		}
		return out
	}
	return ValidationErrors{{Field: "", Message: err.Error()}}
}

func messageFor(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "email":
		return "must be a valid email address"
	case "semester":
		return "must be a roman numeral I through VIII"
	case "mobile10":
		return "must be a 10-digit mobile number"
	case "min":
		return fmt.Sprintf("must be at least %s", fe.Param())
	case "max":
		return fmt.Sprintf("must be at most %s", fe.Param())
	case "oneof":
		return fmt.Sprintf("must be one of: %s", fe.Param())
	default:
		return fmt.Sprintf("failed %s validation", fe.Tag())
	}
}
