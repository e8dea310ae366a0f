package dto

import (
	"errors"
	"fmt"
	"reflect"
	"slices"
	"strings"
	"sync"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
)

// tagNameParts is the number of parts kept when splitting a struct tag by comma.
const tagNameParts = 2

// Validation errors.
var (
	// ErrValidation indicates a validation failure occurred.
	ErrValidation = errors.New("validation failed")

	// ErrBinding indicates JSON or query binding failed.
	ErrBinding = errors.New("binding failed")
)

var (
	validate     *validator.Validate
	validateOnce sync.Once
)

// Validator returns the shared validator. Field names in errors are the
// json (or, for query structs, form) names clients send.
func Validator() *validator.Validate {
	validateOnce.Do(func() {
		validate = validator.New()

		validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
			for _, key := range []string{"json", "form"} {
				name := strings.SplitN(fld.Tag.Get(key), ",", tagNameParts)[0]
				if name == "-" {
					return ""
				}

				if name != "" {
					return name
				}
			}

			return fld.Name
		})

		_ = validate.RegisterValidation("notblank", validateNotBlank)
	})

	return validate
}

// Validatable is implemented by requests with rules beyond struct tags.
type Validatable interface {
	Validate() error
}

// Validate checks struct tags, then Validate() when v implements Validatable.
func Validate(v any) error {
	if err := Validator().Struct(v); err != nil {
		return fmt.Errorf("%w: %w", ErrValidation, err)
	}

	if validatable, ok := v.(Validatable); ok {
		if err := validatable.Validate(); err != nil {
			return fmt.Errorf("%w: %w", ErrValidation, err)
		}
	}

	return nil
}

// BindAndValidate binds the JSON body into v and validates it.
func BindAndValidate(c *gin.Context, v any) error {
	if err := c.ShouldBindJSON(v); err != nil {
		return fmt.Errorf("%w: %w", ErrBinding, err)
	}

	return Validate(v)
}

// BindQueryAndValidate binds query parameters into v and validates it.
func BindQueryAndValidate(c *gin.Context, v any) error {
	if err := c.ShouldBindQuery(v); err != nil {
		return fmt.Errorf("%w: %w", ErrBinding, err)
	}

	return Validate(v)
}

// FieldErrors maps field names to messages.
type FieldErrors map[string]string

// String renders the errors sorted by field, e.g. "name: this field is required".
func (f FieldErrors) String() string {
	fields := make([]string, 0, len(f))
	for field := range f {
		fields = append(fields, field)
	}

	slices.Sort(fields)

	parts := make([]string, 0, len(fields))
	for _, field := range fields {
		parts = append(parts, field+": "+f[field])
	}

	return strings.Join(parts, "; ")
}

// ValidationErrors extracts field-level messages from a validator error.
func ValidationErrors(err error) FieldErrors {
	fieldErrors := FieldErrors{}

	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		for _, fieldErr := range validationErrs {
			fieldErrors[fieldErr.Field()] = validationMessage(fieldErr)
		}
	}

	return fieldErrors
}

// IsValidationError reports whether err carries validator field errors.
func IsValidationError(err error) bool {
	var validationErrs validator.ValidationErrors
	return errors.As(err, &validationErrs)
}

var validationMessages = map[string]string{
	"required": "this field is required",
	"email":    "must be a valid email address",
	"url":      "must be a valid URL",
	"notblank": "must not be blank",
	"gte":      "must be greater than or equal to {param}",
	"lte":      "must be less than or equal to {param}",
	"oneof":    "must be one of: {param}",
}

func validationMessage(fe validator.FieldError) string {
	tag := fe.Tag()
	param := fe.Param()

	if tag == "min" || tag == "max" {
		return minMaxMessage(tag, param, fe.Kind())
	}

	if msg, ok := validationMessages[tag]; ok {
		return strings.ReplaceAll(msg, "{param}", param)
	}

	return "failed validation: " + tag
}

func minMaxMessage(tag, param string, kind reflect.Kind) string {
	suffix := ""
	if kind == reflect.String {
		suffix = " characters"
	}

	if tag == "min" {
		return "must be at least " + param + suffix
	}

	return "must be at most " + param + suffix
}

// validateNotBlank rejects strings that are empty after trimming whitespace.
func validateNotBlank(fl validator.FieldLevel) bool {
	return strings.TrimSpace(fl.Field().String()) != ""
}
