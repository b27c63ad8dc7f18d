package router

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	apperrors "useraccounts/internal/errors"
)

// CustomValidator wraps validator for Echo and reports failures as one
// message per field.
type CustomValidator struct {
	validator *validator.Validate
}

// NewValidator builds a validator that names fields by their JSON keys.
func NewValidator() *CustomValidator {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" || name == "" {
			return fld.Name
		}
		return name
	})
	return &CustomValidator{validator: v}
}

// Validate implements echo.Validator interface.
func (cv *CustomValidator) Validate(i interface{}) error {
	err := cv.validator.Struct(i)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return err
	}

	messages := make([]string, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		messages = append(messages, fieldMessage(fe))
	}
	return apperrors.NewValidationError(messages...)
}

func fieldMessage(fe validator.FieldError) string {
	value := fmt.Sprintf("%v", fe.Value())
	if fe.Field() == "password" {
		value = "[redacted]"
	}
	return fmt.Sprintf("%s has wrong value %s, %s", fe.Field(), value, constraint(fe))
}

func constraint(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", fe.Field())
	case "min":
		return fmt.Sprintf("The min length of %s is %s characters", fe.Field(), fe.Param())
	case "max":
		return fmt.Sprintf("The max length of %s is %s characters", fe.Field(), fe.Param())
	case "len":
		return fmt.Sprintf("The length of %s is %s characters", fe.Field(), fe.Param())
	case "email":
		return fmt.Sprintf("%s must be an email", fe.Field())
	default:
		return fmt.Sprintf("%s failed on %s", fe.Field(), fe.Tag())
	}
}
