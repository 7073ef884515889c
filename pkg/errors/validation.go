package errors

import (
	"net/url"
	"strings"
	"unicode"

	"github.com/andybalholm/cascadia"
)

// ValidateURL validates a page URL for safety.
// Only http and https pages can be opened in a tab.
func ValidateURL(rawURL string) error {
	if rawURL == "" {
		return New(ErrCodeInvalidInput, "URL cannot be empty")
	}
	if !strings.HasPrefix(rawURL, "http://") && !strings.HasPrefix(rawURL, "https://") {
		return New(ErrCodeInvalidInput, "URL must use http or https scheme")
	}
	u, err := url.Parse(rawURL)
	if err != nil || u.Host == "" {
		return New(ErrCodeInvalidInput, "malformed URL: %q", rawURL)
	}
	return nil
}

// ValidatePath validates a local file path (page snapshots, logos, output
// directories).
//
// Validation rules:
//   - Path cannot be empty
//   - Maximum length of 1024 characters
//   - No null bytes or control characters
func ValidatePath(path string) error {
	if path == "" {
		return New(ErrCodeInvalidPath, "path cannot be empty")
	}

	const maxPathLength = 1024
	if len(path) > maxPathLength {
		return New(ErrCodeInvalidPath, "path too long (max %d characters)", maxPathLength)
	}

	for _, r := range path {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidPath, "path contains invalid characters")
		}
	}
	return nil
}

// ValidateSelector checks that s compiles as a CSS selector group.
func ValidateSelector(s string) error {
	if strings.TrimSpace(s) == "" {
		return New(ErrCodeInvalidSelector, "selector cannot be empty")
	}
	if _, err := cascadia.ParseGroup(s); err != nil {
		return Wrap(ErrCodeInvalidSelector, err, "invalid selector %q", s)
	}
	return nil
}
