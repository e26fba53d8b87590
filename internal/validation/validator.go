// Bookrec - Book Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/bookrec

package validation

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
	"github.com/go-playground/validator/v10/non-standard/validators"
)

var (
	validate     *validator.Validate
	validateOnce sync.Once
)

// ValidationError describes one field that failed validation.
type ValidationError struct {
	field   string
	tag     string
	param   string
	value   any
	message string
}

// Field returns the parameter name that failed validation.
func (e *ValidationError) Field() string { return e.field }

// Tag returns the validation tag that failed.
func (e *ValidationError) Tag() string { return e.tag }

// Param returns the tag parameter ("100" for "max=100").
func (e *ValidationError) Param() string { return e.param }

// Value returns the rejected value.
func (e *ValidationError) Value() any { return e.value }

// Error returns a human-readable message.
func (e *ValidationError) Error() string { return e.message }

// RequestValidationError collects every failed field of one struct.
type RequestValidationError struct {
	errors []ValidationError
}

// Errors returns the individual field errors.
func (ve *RequestValidationError) Errors() []ValidationError {
	return ve.errors
}

// Error joins all field messages.
func (ve *RequestValidationError) Error() string {
	if len(ve.errors) == 0 {
		return "validation failed"
	}
	messages := make([]string, len(ve.errors))
	for i := range ve.errors {
		messages[i] = ve.errors[i].message
	}
	return strings.Join(messages, "; ")
}

// APIError mirrors models.APIError without importing it.
type APIError struct {
	Code    string
	Message string
	Details map[string]any
}

// ToAPIError converts the collected errors to a VALIDATION_ERROR.
func (ve *RequestValidationError) ToAPIError() *APIError {
	switch len(ve.errors) {
	case 0:
		return &APIError{Code: "VALIDATION_ERROR", Message: "Validation failed"}
	case 1:
		e := ve.errors[0]
		return &APIError{
			Code:    "VALIDATION_ERROR",
			Message: e.message,
			Details: map[string]any{"field": e.field, "tag": e.tag, "value": e.value},
		}
	}

	fields := make([]map[string]any, len(ve.errors))
	for i := range ve.errors {
		e := &ve.errors[i]
		fields[i] = map[string]any{"field": e.field, "tag": e.tag, "message": e.message}
	}
	return &APIError{
		Code:    "VALIDATION_ERROR",
		Message: ve.Error(),
		Details: map[string]any{"fields": fields},
	}
}

// GetValidator returns the shared validator instance.
func GetValidator() *validator.Validate {
	validateOnce.Do(func() {
		validate = validator.New(validator.WithRequiredStructEnabled())
		validate.RegisterTagNameFunc(fieldName)
		if err := validate.RegisterValidation("notblank", validators.NotBlank); err != nil {
			panic(fmt.Sprintf("register notblank validator: %v", err))
		}
	})
	return validate
}

// fieldName reports the name a caller knows a field by: its query
// parameter, config key or JSON key, in that order.
//
//nolint:gocritic // reflect.StructField is passed by value per validator API
func fieldName(f reflect.StructField) string {
	for _, tag := range []string{"query", "koanf", "json"} {
		name, _, _ := strings.Cut(f.Tag.Get(tag), ",")
		if name == "-" {
			continue
		}
		if name != "" {
			return name
		}
	}
	return f.Name
}

// ValidateStruct validates s, returning nil or a *RequestValidationError.
func ValidateStruct(s any) *RequestValidationError {
	err := GetValidator().Struct(s)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return &RequestValidationError{
			errors: []ValidationError{{field: "unknown", tag: "unknown", message: err.Error()}},
		}
	}

	out := make([]ValidationError, len(fieldErrs))
	for i, fe := range fieldErrs {
		out[i] = ValidationError{
			field:   fe.Field(),
			tag:     fe.Tag(),
			param:   fe.Param(),
			value:   fe.Value(),
			message: translateError(fe),
		}
	}
	return &RequestValidationError{errors: out}
}

var errorMessageTemplates = map[string]string{
	"required": "%s is required",
	"notblank": "%s must not be blank",
	"dir":      "%s must be an existing directory",
	"file":     "%s must be an existing file",
	"hostname": "%s must be a valid hostname",
	"ip":       "%s must be a valid IP address",
}

var errorMessageWithParam = map[string]string{
	"oneof": "%s must be one of: %s",
	"gte":   "%s must be greater than or equal to %s",
	"lte":   "%s must be less than or equal to %s",
	"gt":    "%s must be greater than %s",
	"lt":    "%s must be less than %s",
}

func translateError(fe validator.FieldError) string {
	field, tag, param := fe.Field(), fe.Tag(), fe.Param()

	if template, ok := errorMessageTemplates[tag]; ok {
		return fmt.Sprintf(template, field)
	}
	if template, ok := errorMessageWithParam[tag]; ok {
		return fmt.Sprintf(template, field, param)
	}

	isString := fe.Kind() == reflect.String
	switch tag {
	case "min":
		if isString {
			return fmt.Sprintf("%s must be at least %s characters", field, param)
		}
		return fmt.Sprintf("%s must be at least %s", field, param)
	case "max":
		if isString {
			return fmt.Sprintf("%s must be at most %s characters", field, param)
		}
		return fmt.Sprintf("%s must be at most %s", field, param)
	default:
		return fmt.Sprintf("%s failed %s validation", field, tag)
	}
}
