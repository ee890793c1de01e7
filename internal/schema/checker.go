package schema

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/asaskevich/govalidator"

	"github.com/thenoetrevino/tablero/internal/models"
)

// checker accumulates violations instead of stopping at the first one.
type checker struct {
	entity     string
	violations []FieldViolation
}

func newChecker(entity string) *checker {
	return &checker{entity: entity}
}

func (c *checker) fail(field, format string, args ...any) {
	c.violations = append(c.violations, FieldViolation{
		Field:   field,
		Message: fmt.Sprintf(format, args...),
	})
}

func (c *checker) required(field, value string) bool {
	if value == "" {
		c.fail(field, "is required")
		return false
	}
	return true
}

// text enforces length bounds and rejects surrounding whitespace. Values are
// never trimmed for the caller.
func (c *checker) text(field, value string, minLen, maxLen int) {
	if strings.TrimSpace(value) != value {
		c.fail(field, "must not have leading or trailing whitespace")
	}
	n := utf8.RuneCountInString(value)
	if n < minLen {
		c.fail(field, "length must be at least %d characters long", minLen)
	}
	if maxLen > 0 && n > maxLen {
		c.fail(field, "length must be less than or equal to %d characters long", maxLen)
	}
}

// password bounds the length in bytes; bcrypt rejects anything past
// PasswordMaxBytes.
func (c *checker) password(field, value string) {
	if len(value) < models.PasswordMinLength {
		c.fail(field, "length must be at least %d characters long", models.PasswordMinLength)
	}
	if len(value) > models.PasswordMaxBytes {
		c.fail(field, "length must be at most %d bytes", models.PasswordMaxBytes)
	}
}

func (c *checker) objectID(field, value string) {
	if !govalidator.IsMongoID(value) {
		c.fail(field, "fails to match the Object Id pattern")
	}
}

func (c *checker) objectIDs(field string, values []string) {
	for i, v := range values {
		c.objectID(fmt.Sprintf("%s[%d]", field, i), v)
	}
}

func (c *checker) email(field, value string) {
	if !govalidator.IsEmail(value) {
		c.fail(field, "must be a valid email")
	}
}

func (c *checker) err() error {
	if len(c.violations) == 0 {
		return nil
	}
	return &ValidationError{Entity: c.entity, Violations: c.violations}
}
