package utils

import (
	"strings"

	"github.com/microcosm-cc/bluemonday"
)

var sanitizer = bluemonday.UGCPolicy()

// Sanitize cleans HTML content to prevent XSS attacks.
func Sanitize(input string) string {
	return sanitizer.Sanitize(input)
}

// SanitizeAndTrim cleans HTML content and strips surrounding whitespace.
// Post and reply text goes through this before it is stored or broadcast.
func SanitizeAndTrim(input string) string {
	return strings.TrimSpace(Sanitize(input))
}
