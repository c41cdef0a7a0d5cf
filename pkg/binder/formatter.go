package binder

import (
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gorilla/schema"
	"github.com/segmentio/encoding/json"
)

const (
	gte      = "gte"
	langcode = "langcode"
	lte      = "lte"
	mx       = "max"
	mn       = "min"
	oneof    = "oneof"
	required = "required"
)

func formatUnmarshalTypeError(err *json.UnmarshalTypeError) string {
	return fmt.Sprintf("%q should be of type %s", strings.Trim(err.Field, "."), err.Type)
}

func formatSchemaConversionError(err schema.ConversionError) string {
	return fmt.Sprintf("%q should be of type %s", err.Key, err.Type)
}

func formatValidationError(err validator.FieldError) string {
	field := err.Field()

	switch err.Tag() {
	case gte:
		return fmt.Sprintf("%q must be greater than or equal to %s", field, err.Param())
	case langcode:
		return fmt.Sprintf("%q must be a 2-letter language code", field)
	case lte:
		return fmt.Sprintf("%q must be less than or equal to %s", field, err.Param())
	case mx:
		if err.Kind() == reflect.String {
			return fmt.Sprintf("%q length must be less than or equal to %s characters", field, err.Param())
		}
		return fmt.Sprintf("%q must be less than or equal to %s", field, err.Param())
	case mn:
		if err.Kind() == reflect.String {
			return fmt.Sprintf("%q length must be greater than or equal to %s characters", field, err.Param())
		}
		return fmt.Sprintf("%q must be greater than or equal to %s", field, err.Param())
	case oneof:
		valids := []string{}
		for _, p := range strings.Fields(err.Param()) {
			valids = append(valids, fmt.Sprintf("%q", p))
		}
		return fmt.Sprintf("%q must be one of the following: %s", field, strings.Join(valids, ", "))
	case required:
		return fmt.Sprintf("%q is required", field)
	}

	return fmt.Sprintf("%q is invalid", field)
}
