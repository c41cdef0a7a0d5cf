package binder

import (
	"regexp"

	"github.com/go-playground/validator/v10"
)

var langCodeRE = regexp.MustCompile(`^[a-z]{2}$`)

// langCodeValidator ensures the value is a lowercase 2-letter language code or
// the empty string. The empty string is allowed so the validator can be used
// on optional fields; add `required` to the validate tag to disallow it.
func langCodeValidator(fl validator.FieldLevel) bool {
	value := fl.Field().String()
	if value == "" {
		return true
	}
	return langCodeRE.MatchString(value)
}
