// internal/app/system/inputval/inputval.go

// Package inputval validates request payloads. Struct validation runs
// through go-playground/validator with a custom "phone" rule; the
// standalone helpers cover the couple of fields handlers check outside
// struct binding.
package inputval

import (
	"net/mail"
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"
)

var validate = func() *validator.Validate {
	v := validator.New()
	_ = v.RegisterValidation("phone", func(fl validator.FieldLevel) bool {
		return IsValidPhone(fl.Field().String())
	})
	return v
}()

// phoneRe accepts international-format numbers with optional +country
// code and spaces/dashes between digit groups, 7-15 digits total.
var phoneRe = regexp.MustCompile(`^\+?[0-9][0-9 \-]{5,18}[0-9]$`)

// Struct validates a request DTO against its `validate` tags.
func Struct(v any) error {
	return validate.Struct(v)
}

// IsValidPhone reports whether s looks like a dialable phone number.
func IsValidPhone(s string) bool {
	s = strings.TrimSpace(s)
	if !phoneRe.MatchString(s) {
		return false
	}
	digits := 0
	for _, r := range s {
		if r >= '0' && r <= '9' {
			digits++
		}
	}
	return digits >= 7 && digits <= 15
}

// IsValidEmail reports whether s is a plain RFC 5322 address (display
// names are rejected).
func IsValidEmail(s string) bool {
	s = strings.TrimSpace(s)
	if s == "" {
		return false
	}
	addr, err := mail.ParseAddress(s)
	if err != nil {
		return false
	}
	return addr.Address == s
}
