package forms

import (
	"strings"
	"unicode"
)

// DigitsOnly drops every character that is not an ASCII digit.
func DigitsOnly(value string) string {
	return strings.Map(func(r rune) rune {
		if r >= '0' && r <= '9' {
			return r
		}
		return -1
	}, value)
}

// FormatCardNumber groups the first 16 digits of value in blocks of four. Fewer than four digits are
// returned unchanged.
func FormatCardNumber(value string) string {
	digits := DigitsOnly(value)
	if len(digits) < 4 {
		return digits
	}
	if len(digits) > 16 {
		digits = digits[:16]
	}

	parts := make([]string, 0, 4)
	for i := 0; i < len(digits); i += 4 {
		end := min(i+4, len(digits))
		parts = append(parts, digits[i:end])
	}

	return strings.Join(parts, " ")
}

// FormatExpiryDate turns up to four digits into MM/YY.
func FormatExpiryDate(value string) string {
	digits := DigitsOnly(value)
	if len(digits) > 4 {
		digits = digits[:4]
	}
	if len(digits) <= 2 {
		return digits
	}
	return digits[:2] + "/" + digits[2:]
}

// CardLast4 returns the last four digits of a card number, for display only.
func CardLast4(value string) string {
	digits := DigitsOnly(value)
	if len(digits) < 4 {
		return digits
	}
	return digits[len(digits)-4:]
}

// Squash trims value and collapses inner runs of whitespace.
func Squash(value string) string {
	return strings.Join(strings.FieldsFunc(value, unicode.IsSpace), " ")
}
