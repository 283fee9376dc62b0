package utils

import (
	"regexp"
	"strings"
)

var phoneRegex = regexp.MustCompile(`^\+?[1-9]\d{1,14}$`)

func IsValidPhone(phone string) bool {
	// Remove all non-digit characters except +
	cleaned := regexp.MustCompile(`[^\d+]`).ReplaceAllString(phone, "")

	// Basic E.164 format validation
	return phoneRegex.MatchString(cleaned)
}

func FormatPhone(phone, countryCode string) string {
	cleaned := regexp.MustCompile(`[^\d]`).ReplaceAllString(phone, "")

	if !strings.HasPrefix(cleaned, strings.TrimPrefix(countryCode, "+")) {
		cleaned = strings.TrimPrefix(countryCode, "+") + cleaned
	}

	return "+" + cleaned
}

func NormalizePhone(phone string) string {
	normalized := regexp.MustCompile(`[^\d+]`).ReplaceAllString(phone, "")

	if !strings.HasPrefix(normalized, "+") {
		normalized = "+" + normalized
	}

	return normalized
}

func MaskPhone(phone string) string {
	if len(phone) < 4 {
		return phone
	}

	return strings.Repeat("*", len(phone)-4) + phone[len(phone)-4:]
}
