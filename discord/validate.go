package discord

import (
	"errors"
	"reflect"
	"regexp"
	"strconv"
	"strings"
	"sync"
	"unicode/utf8"

	"github.com/go-playground/validator/v10"
	"github.com/go-playground/validator/v10/non-standard/validators"
)

var roleConnectionKeyRegex = regexp.MustCompile(`^[a-z0-9_]+$`)

var (
	validate     *validator.Validate
	validateOnce sync.Once
)

func getValidator() *validator.Validate {
	validateOnce.Do(func() {
		validate = validator.New()

		validate.RegisterTagNameFunc(func(field reflect.StructField) string {
			name, _, _ := strings.Cut(field.Tag.Get("json"), ",")
			if name == "-" || name == "" {
				return field.Name
			}

			return name
		})

		_ = validate.RegisterValidation("notblank", validators.NotBlank)
		_ = validate.RegisterValidation("snakekey", func(fl validator.FieldLevel) bool {
			return roleConnectionKeyRegex.MatchString(fl.Field().String())
		})
	})

	return validate
}

// validateParams runs struct tag validation and returns the first failure as a *ValidationError.
func validateParams(v any) error {
	err := getValidator().Struct(v)
	if err == nil {
		return nil
	}

	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) || len(validationErrors) == 0 {
		return err
	}

	fieldError := validationErrors[0]

	return &ValidationError{
		Field:   fieldError.Field(),
		Message: describeFieldError(fieldError),
	}
}

func describeFieldError(fe validator.FieldError) string {
	isString := fe.Kind() == reflect.String

	switch fe.Tag() {
	case "required", "notblank":
		return "may not be blank"
	case "min", "gte":
		if isString {
			return "must be at least " + fe.Param() + " characters"
		}

		return "must be at least " + fe.Param()
	case "max", "lte":
		if isString {
			return "may not be longer than " + fe.Param() + " characters"
		}

		return "may not be greater than " + fe.Param()
	case "snakekey":
		return "may only contain lowercase letters, digits and underscores"
	default:
		return "failed " + fe.Tag() + " validation"
	}
}

// validateLength checks a string argument without going through struct tags.
// A min above zero also rejects whitespace-only values.
func validateLength(field, value string, minLength, maxLength int) error {
	if minLength > 0 && strings.TrimSpace(value) == "" {
		return &ValidationError{Field: field, Message: "may not be blank"}
	}

	length := utf8.RuneCountInString(value)

	if length < minLength {
		return &ValidationError{Field: field, Message: "must be at least " + strconv.Itoa(minLength) + " characters"}
	}

	if length > maxLength {
		return &ValidationError{Field: field, Message: "may not be longer than " + strconv.Itoa(maxLength) + " characters"}
	}

	return nil
}
