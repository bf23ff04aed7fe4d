// Package validate provides shared validation functions.
package validate

import (
	"fmt"
	"strings"
	"unicode"

	"github.com/hay-kot/criterio"
	"golang.org/x/text/language"
)

// Key validates a resource key name. Keys must be non-empty after trimming,
// carry no surrounding whitespace or control characters, and must not
// contain "/" since that separates file and key in full resource paths.
func Key(name string) error {
	if strings.TrimSpace(name) == "" {
		return fmt.Errorf("key is required")
	}
	if strings.TrimSpace(name) != name {
		return fmt.Errorf("key %q has leading or trailing whitespace", name)
	}
	if strings.Contains(name, "/") {
		return fmt.Errorf("key %q must not contain '/'", name)
	}
	for _, r := range name {
		if unicode.IsControl(r) {
			return fmt.Errorf("key %q contains control characters", name)
		}
	}
	return nil
}

// KeyField returns a criterio validator for key names.
func KeyField(field, name string) error {
	return criterio.Run(field, name, Key)
}

// Language validates that a language identifier is a well-formed BCP 47 tag
// and has no path separators.
func Language(lang string) error {
	if strings.TrimSpace(lang) == "" {
		return fmt.Errorf("language is required")
	}
	if strings.ContainsAny(lang, `/\`) {
		return fmt.Errorf("language %q must not contain path separators", lang)
	}
	if _, err := language.Parse(lang); err != nil {
		return fmt.Errorf("language %q is not a valid tag: %w", lang, err)
	}
	return nil
}
