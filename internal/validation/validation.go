package validation

import (
	"regexp"
	"strings"
	"unicode/utf8"
)

// MaxMessageLength bounds a single chat message, in runes.
const MaxMessageLength = 2000

// MaxNameLength bounds the display name, in runes.
const MaxNameLength = 50

// PhonePattern defines the valid normalized phone format: optional +, 10-15 digits.
var PhonePattern = regexp.MustCompile(`^\+?[0-9]{10,15}$`)

// OTPPattern defines a six digit one-time code.
var OTPPattern = regexp.MustCompile(`^[0-9]{6}$`)

var phoneSeparators = strings.NewReplacer(" ", "", "-", "", "(", "", ")", "", ".", "")

// NormalizePhone strips common separators so "+91 98765-43210" and
// "+919876543210" identify the same user.
func NormalizePhone(phone string) string {
	return phoneSeparators.Replace(strings.TrimSpace(phone))
}

// ValidatePhone checks a normalized phone number.
func ValidatePhone(phone string) (bool, string) {
	if phone == "" {
		return false, "Phone number is required"
	}
	if !PhonePattern.MatchString(phone) {
		return false, "Please enter a valid phone number"
	}
	return true, ""
}

// ValidateOTP checks that code is exactly six digits.
func ValidateOTP(code string) (bool, string) {
	if !OTPPattern.MatchString(code) {
		return false, "Please enter a valid 6-digit OTP"
	}
	return true, ""
}

// ValidateName checks the optional display name.
func ValidateName(name string) (bool, string) {
	if utf8.RuneCountInString(name) > MaxNameLength {
		return false, "Name is too long"
	}
	return true, ""
}

// ValidateMessage checks a chat message after trimming.
func ValidateMessage(text string) (bool, string) {
	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return false, "Message is empty"
	}
	if utf8.RuneCountInString(trimmed) > MaxMessageLength {
		return false, "Message is too long"
	}
	return true, ""
}
