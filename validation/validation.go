package validation

import (
	"regexp"
	"strings"
	"unicode"
)

type Violations map[string]string

func (v Violations) Empty() bool { return len(v) == 0 }

var (
	nameRe  = regexp.MustCompile(`^[a-zA-Z ]{2,50}$`)
	emailRe = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
)

const passwordSpecials = "@$!%*?&"

// Basic validators
func Required(field, value string, v Violations) {
	if strings.TrimSpace(value) == "" {
		v[field] = "required"
	}
}

func PositiveFloat(field string, val float64, v Violations) {
	if val <= 0 {
		v[field] = "must_be_positive"
	}
}

// PersonName enforces 2-50 letters and spaces.
func PersonName(field, value string, v Violations) {
	if !nameRe.MatchString(strings.TrimSpace(value)) {
		v[field] = "invalid_name"
	}
}

func Email(field, value string, v Violations) {
	if !emailRe.MatchString(strings.TrimSpace(value)) {
		v[field] = "invalid_email"
	}
}

// Password requires at least 8 characters with an upper, a lower, a digit and
// one of @$!%*?&; no other characters are allowed.
func Password(field, value string, v Violations) {
	if len(value) < 8 {
		v[field] = "too_weak"
		return
	}
	var upper, lower, digit, special bool
	for _, r := range value {
		switch {
		case unicode.IsUpper(r):
			upper = true
		case unicode.IsLower(r):
			lower = true
		case unicode.IsDigit(r):
			digit = true
		case strings.ContainsRune(passwordSpecials, r):
			special = true
		default:
			v[field] = "invalid_character"
			return
		}
	}
	if !upper || !lower || !digit || !special {
		v[field] = "too_weak"
	}
}
