package types

import (
	"fmt"
	"math"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	// Report fields by their JSON names so messages match the wire format.
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	_ = v.RegisterValidation("generation_type", func(fl validator.FieldLevel) bool {
		return GenerationType(fl.Field().String()).Valid()
	})
	_ = v.RegisterValidation("tone", func(fl validator.FieldLevel) bool {
		return Tone(fl.Field().String()).Valid()
	})
	_ = v.RegisterValidation("half_step", func(fl validator.FieldLevel) bool {
		doubled := fl.Field().Float() * 2
		return doubled == math.Trunc(doubled)
	})
	return v
}

// Validator returns the shared validator with the custom rules registered
// (generation_type, tone, half_step).
func Validator() *validator.Validate {
	return validate
}

// ValidationMessage flattens validator errors into one readable line such as
// "name is required; quality_rating must be >= 1".
func ValidationMessage(err error) string {
	validationErrors, ok := err.(validator.ValidationErrors)
	if !ok {
		return err.Error()
	}

	msgs := make([]string, 0, len(validationErrors))
	for _, fe := range validationErrors {
		msgs = append(msgs, fieldMessage(fe))
	}
	return strings.Join(msgs, "; ")
}

func fieldMessage(fe validator.FieldError) string {
	field := fe.Field()
	switch fe.Tag() {
	case "required":
		return field + " is required"
	case "email":
		return field + " must be a valid email address"
	case "min":
		return fmt.Sprintf("%s must be at least %s characters", field, fe.Param())
	case "max":
		return fmt.Sprintf("%s must be at most %s characters", field, fe.Param())
	case "gte":
		return fmt.Sprintf("%s must be >= %s", field, fe.Param())
	case "lte":
		return fmt.Sprintf("%s must be <= %s", field, fe.Param())
	case "gt":
		return fmt.Sprintf("%s must be > %s", field, fe.Param())
	case "half_step":
		return field + " must be a multiple of 0.5"
	case "generation_type":
		return field + " must be one of cold_email, cold_dm, application"
	case "tone":
		return field + " must be one of professional, friendly, enthusiastic, casual"
	default:
		return fmt.Sprintf("%s failed %s validation", field, fe.Tag())
	}
}
