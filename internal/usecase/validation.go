package usecase

import (
	"fmt"
	"regexp"
	"strings"
)

type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// An optional +, a digit, then at least six digits, spaces, dashes or parentheses.
// Digits and spaces match in any script (NBSP, thin space, fullwidth digits).
var phonePattern = regexp.MustCompile(`\+?\p{Nd}[\p{Nd}\p{Zs}\s\-\(\)]{6,}`)

// ValidateContact checks that the free-form "name, phone" text carries
// something shaped like a phone number anywhere in it.
func ValidateContact(contact string) []ValidationError {
	var errors []ValidationError

	contact = strings.TrimSpace(contact)
	if contact == "" {
		errors = append(errors, ValidationError{"contact", "is required"})
	} else if !phonePattern.MatchString(contact) {
		errors = append(errors, ValidationError{"contact", "must contain a phone number"})
	}

	return errors
}
