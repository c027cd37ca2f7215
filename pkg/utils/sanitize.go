package utils

import (
	"html"
	"regexp"
	"strings"
)

// EscapeSQLWildcards escapes SQL LIKE/ILIKE wildcard characters so user input
// used in search queries cannot inject pattern characters.
func EscapeSQLWildcards(input string) string {
	// Escape backslash first, it is the escape character
	input = strings.ReplaceAll(input, "\\", "\\\\")
	input = strings.ReplaceAll(input, "%", "\\%")
	input = strings.ReplaceAll(input, "_", "\\_")
	return input
}

// SanitizeSearchQuery prepares a search string for safe ILIKE usage and wraps
// it with % for partial matching.
func SanitizeSearchQuery(input string) string {
	input = strings.TrimSpace(input)
	if len(input) > 100 {
		input = input[:100]
	}
	input = EscapeSQLWildcards(input)
	return "%" + input + "%"
}

// SanitizeHTML escapes HTML entities in user-generated content.
func SanitizeHTML(input string) string {
	return html.EscapeString(input)
}

var htmlTagPattern = regexp.MustCompile(`<[^>]*>`)

// StripHTML removes HTML tags entirely. Used for excerpts and search snippets.
func StripHTML(input string) string {
	return htmlTagPattern.ReplaceAllString(input, "")
}

var usernamePattern = regexp.MustCompile(`^[a-zA-Z0-9_-]{3,30}$`)

// ValidateUsername checks if username contains only allowed characters.
func ValidateUsername(username string) bool {
	return usernamePattern.MatchString(username)
}

// TruncateString safely truncates a string to max length.
func TruncateString(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen]
}
