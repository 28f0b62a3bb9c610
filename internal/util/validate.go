package util

import (
	"fmt"
	"regexp"
	"strings"
)

var (
	emailRegex  = regexp.MustCompile(`^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`)
	mobileRegex = regexp.MustCompile(`^[6-9]\d{9}$`)
	digitsOnly  = regexp.MustCompile(`\D`)
)

// NormalizeEmail lowercases and trims an email address
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// ValidateEmail checks an address against the standard local@domain.tld shape
func ValidateEmail(email string) error {
	if !emailRegex.MatchString(strings.TrimSpace(email)) {
		return fmt.Errorf("invalid email format")
	}
	return nil
}

// NormalizePhone strips formatting from a phone number and reduces it to the
// bare 10-digit mobile form. A leading "91" country code (12-digit form) or a
// leading trunk "0" (11-digit form) is dropped.
func NormalizePhone(phone string) string {
	digits := digitsOnly.ReplaceAllString(phone, "")
	if len(digits) == 12 && strings.HasPrefix(digits, "91") {
		digits = digits[2:]
	}
	if len(digits) == 11 && strings.HasPrefix(digits, "0") {
		digits = digits[1:]
	}
	return digits
}

// ValidatePhone checks that a normalized phone number is a valid Indian
// mobile number: 10 digits, first digit 6-9.
func ValidatePhone(phone string) error {
	if !mobileRegex.MatchString(phone) {
		return fmt.Errorf("invalid phone number format")
	}
	return nil
}
