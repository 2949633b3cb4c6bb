// Package validation provides reusable jellydator/validation rules and the bridge
// from validation failures to the domain ErrInvalidInput sentinel.
package validation

import (
	"fmt"
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"

	validation "github.com/jellydator/validation"

	apperrors "github.com/allisson/whistleblower/internal/errors"
)

var (
	emailRegex  = regexp.MustCompile(`^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`)
	slugRegex   = regexp.MustCompile(`^[a-z0-9-]+$`)
	tokenRegex  = regexp.MustCompile(`^[A-Z]+-[0-9]{4}-[A-Z]+$`)
	hexKeyRegex = regexp.MustCompile(`^[0-9a-fA-F]{64}$`)
)

// WrapValidationError wraps a validation error as ErrInvalidInput.
func WrapValidationError(err error) error {
	if err == nil {
		return nil
	}
	return apperrors.Wrap(apperrors.ErrInvalidInput, err.Error())
}

// PasswordStrength validates password length and character classes.
type PasswordStrength struct {
	MinLength      int
	RequireUpper   bool
	RequireLower   bool
	RequireNumber  bool
	RequireSpecial bool
}

// Validate implements validation.Rule.
func (p PasswordStrength) Validate(value any) error {
	s, ok := value.(string)
	if !ok {
		return validation.NewError("validation_password_strength", "password must be a string")
	}

	if utf8.RuneCountInString(s) < p.MinLength {
		return validation.NewError(
			"validation_password_min_length",
			fmt.Sprintf("password must be at least %d characters", p.MinLength),
		)
	}

	if p.RequireUpper && !containsRune(s, unicode.IsUpper) {
		return validation.NewError(
			"validation_password_uppercase",
			"password must contain at least one uppercase letter",
		)
	}

	if p.RequireLower && !containsRune(s, unicode.IsLower) {
		return validation.NewError(
			"validation_password_lowercase",
			"password must contain at least one lowercase letter",
		)
	}

	if p.RequireNumber && !containsRune(s, unicode.IsNumber) {
		return validation.NewError("validation_password_number", "password must contain at least one number")
	}

	if p.RequireSpecial && !containsRune(s, func(r rune) bool { return unicode.IsPunct(r) || unicode.IsSymbol(r) }) {
		return validation.NewError(
			"validation_password_special",
			"password must contain at least one special character",
		)
	}

	return nil
}

func containsRune(s string, pred func(rune) bool) bool {
	for _, r := range s {
		if pred(r) {
			return true
		}
	}
	return false
}

// Email validates an e-mail address format.
var Email = validation.NewStringRuleWithError(
	func(s string) bool {
		return emailRegex.MatchString(strings.TrimSpace(s))
	},
	validation.NewError("validation_email_format", "must be a valid email address"),
)

// NotBlank rejects strings that are empty after trimming.
var NotBlank = validation.NewStringRuleWithError(
	func(s string) bool {
		return strings.TrimSpace(s) != ""
	},
	validation.NewError("validation_not_blank", "must not be blank"),
)

// Slug accepts lowercase letters, digits and dashes.
var Slug = validation.NewStringRuleWithError(
	slugRegex.MatchString,
	validation.NewError("validation_slug", "must contain only lowercase letters, digits and dashes"),
)

// MelderToken accepts ANIMAL-NNNN-COLOR after case folding and trimming.
var MelderToken = validation.NewStringRuleWithError(
	func(s string) bool {
		return tokenRegex.MatchString(strings.ToUpper(strings.TrimSpace(s)))
	},
	validation.NewError("validation_melder_token", "must have the form WORD-1234-WORD"),
)

// HexKey accepts a 32-byte key as 64 hex characters.
var HexKey = validation.NewStringRuleWithError(
	hexKeyRegex.MatchString,
	validation.NewError("validation_hex_key", "must be 64 hexadecimal characters"),
)
