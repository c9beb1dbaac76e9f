package binder

import (
	"net/url"
	"regexp"
	"time"

	"github.com/go-playground/validator/v10"
)

var (
	dateRE = regexp.MustCompile(`^\d{4}-(0[0-9]|1[0-2])-(0[0-9]|1[0-9]|2[0-9]|3[0-1])$`)
)

// dateValidator ensures the value matches the format YYYY-MM-DD or the empty
// string. The empty string is allowed so this validator can be used to clear
// out values; add `ne=` to the validate tag if the value is also required.
func dateValidator(fl validator.FieldLevel) bool {
	value := fl.Field().String()
	if value == "" {
		return true
	}
	return dateRE.MatchString(value)
}

// datetimeValidator ensures the value is an RFC 3339 / ISO-8601 timestamp or
// the empty string. Session start and end times are persisted verbatim as
// these strings.
func datetimeValidator(fl validator.FieldLevel) bool {
	value := fl.Field().String()
	if value == "" {
		return true
	}
	_, err := time.Parse(time.RFC3339, value)
	return err == nil
}

// urlValidator ensures the value parses as an absolute URL or is the empty
// string, for the same clearing reason as dateValidator.
func urlValidator(fl validator.FieldLevel) bool {
	value := fl.Field().String()
	if value == "" {
		return true
	}
	u, err := url.Parse(value)
	return err == nil && u.Scheme != "" && u.Host != ""
}
