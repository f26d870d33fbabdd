// Package validation holds the field rules shared by the relay endpoints and the form controller.
package validation

import (
	"errors"
	"regexp"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
)

// Field messages shown next to an offending input.
const (
	MsgInvalidEmail    = "Please enter a valid email address"
	MsgNameRequired    = "Name is required"
	MsgMessageRequired = "Message is required"
)

// ErrInvalid is returned by Struct when a request fails its validate tags.
var ErrInvalid = errors.New("validation failed")

// emailPattern is the browser-side email rule: something@something.something, no whitespace.
var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// IsEmail reports whether s looks like an email address.
func IsEmail(s string) bool {
	return emailPattern.MatchString(s)
}

// IsPresent reports whether s has any non-whitespace content.
func IsPresent(s string) bool {
	return strings.TrimSpace(s) != ""
}

// RequiredMessage builds "<Field> is required" from a form field name.
func RequiredMessage(field string) string {
	if field == "" {
		return "This field is required"
	}
	return strings.ToUpper(field[:1]) + field[1:] + " is required"
}

var (
	validate     *validator.Validate
	validateOnce sync.Once
)

func instance() *validator.Validate {
	validateOnce.Do(func() {
		validate = validator.New(validator.WithRequiredStructEnabled())
	})
	return validate
}

// Struct runs the validate tags of v. Failures are wrapped in ErrInvalid
// and keep the underlying validator.ValidationErrors for inspection.
func Struct(v any) error {
	if err := instance().Struct(v); err != nil {
		return errors.Join(ErrInvalid, err)
	}
	return nil
}

// FailedFields lists the struct field names that failed validation.
func FailedFields(err error) []string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return nil
	}
	fields := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		fields = append(fields, fe.Field())
	}
	return fields
}
