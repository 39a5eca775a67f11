package utils

import (
	"regexp"
	"strings"
)

const MinPasswordLength = 6

var (
	phonePattern = regexp.MustCompile(`^\+?[1-9]\d{1,14}$`)
	emailPattern = regexp.MustCompile(`^\S+@\S+\.\S+$`)
)

// ValidatePhone checks for an international number, ignoring spaces, dashes
// and parentheses.
func ValidatePhone(phone string) bool {
	cleaned := strings.NewReplacer(" ", "", "-", "", "(", "", ")", "").Replace(phone)
	return phonePattern.MatchString(cleaned)
}

func ValidateEmail(email string) bool {
	return emailPattern.MatchString(strings.TrimSpace(email))
}

// ValidatePassword returns a user-facing message, or "" when the password is acceptable.
func ValidatePassword(password string) string {
	if password == "" {
		return "Password is required"
	}
	if len(password) < MinPasswordLength {
		return "Password must be at least 6 characters"
	}
	return ""
}
