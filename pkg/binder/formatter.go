package binder

import (
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gorilla/schema"
	"github.com/segmentio/encoding/json"
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
	case "date":
		return fmt.Sprintf("%q should be in the format of YYYY-MM-DD", field)
	case "datetime8601":
		return fmt.Sprintf("%q should be an ISO-8601 timestamp", field)
	case "url":
		return fmt.Sprintf("%q is not a valid URL", field)
	case "gt":
		return fmt.Sprintf("%q must be greater than %s", field, err.Param())
	case "gte":
		return fmt.Sprintf("%q must be greater than or equal to %s", field, err.Param())
	case "gtefield":
		return fmt.Sprintf("%q must be greater than or equal to %s", field, err.Param())
	case "max":
		if isNumericKind(err.Kind()) {
			return fmt.Sprintf("%q must be less than or equal to %s", field, err.Param())
		}
		return fmt.Sprintf("%q length must be less than or equal to %s %s", field, err.Param(), pluralize("character", err.Param()))
	case "min":
		if isNumericKind(err.Kind()) {
			return fmt.Sprintf("%q must be greater than or equal to %s", field, err.Param())
		}
		return fmt.Sprintf("%q length must be greater than or equal to %s %s", field, err.Param(), pluralize("character", err.Param()))
	case "ne":
		return fmt.Sprintf("%q can't be %q", field, err.Param())
	case "oneof":
		valids := []string{}
		for _, p := range strings.Fields(err.Param()) {
			valids = append(valids, fmt.Sprintf("%q", p))
		}
		return fmt.Sprintf("%q must be one of the following: %s", field, strings.Join(valids, ", "))
	case "required":
		return fmt.Sprintf("%q is required", field)
	default:
		return fmt.Sprintf("%q is invalid", field)
	}
}

func isNumericKind(kind reflect.Kind) bool {
	switch kind {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64,
		reflect.Float32, reflect.Float64:
		return true
	default:
		return false
	}
}

func pluralize(resource, param string) string {
	if param == "1" {
		return resource
	}
	return resource + "s"
}
