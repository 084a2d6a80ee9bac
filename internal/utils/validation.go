package utils

import (
	"fmt"
	"strings"
	"unicode/utf8"
)

// ValidationError represents a validation error
type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// ValidateName checks that a display name is present and reasonably short
func ValidateName(name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return ValidationError{Field: "name", Message: "name is required"}
	}
	if utf8.RuneCountInString(name) > 40 {
		return ValidationError{Field: "name", Message: "name must be at most 40 characters"}
	}
	return nil
}

// ValidateWord checks that a learned word is a non-empty single token
func ValidateWord(word string) error {
	word = strings.TrimSpace(word)
	if word == "" {
		return ValidationError{Field: "word", Message: "word is required"}
	}
	if utf8.RuneCountInString(word) > 64 {
		return ValidationError{Field: "word", Message: "word must be at most 64 characters"}
	}
	return nil
}

// NormalizeWord trims and lower-cases a word for set membership checks
func NormalizeWord(word string) string {
	return strings.ToLower(strings.TrimSpace(word))
}
