// utils/validator.go - Input validation
package utils

import (
	"regexp"
	"strings"
)

var (
	emailRegex = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)
	// Old-format NICs are nine digits plus V/X; new-format are twelve digits.
	nicRegex   = regexp.MustCompile(`^([0-9]{9}[VvXx]|[0-9]{12})$`)
	phoneRegex = regexp.MustCompile(`^\+?[0-9]{9,12}$`)
)

// ValidateEmail checks if email is valid
func ValidateEmail(email string) bool {
	return emailRegex.MatchString(email)
}

// ValidateNIC checks a national identity card number.
func ValidateNIC(nic string) bool {
	return nicRegex.MatchString(strings.TrimSpace(nic))
}

// ValidatePhone checks a contact number.
func ValidatePhone(phone string) bool {
	return phoneRegex.MatchString(strings.TrimSpace(phone))
}

// ValidatePassword checks password strength
func ValidatePassword(password string) (bool, string) {
	if len(password) < 8 {
		return false, "Password must be at least 8 characters"
	}

	return true, ""
}

// SanitizeInput removes potentially harmful characters
func SanitizeInput(input string) string {
	input = strings.TrimSpace(input)
	input = strings.ReplaceAll(input, "\x00", "")

	return input
}
