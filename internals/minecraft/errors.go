package minecraft

import (
	"fmt"
	"strconv"
)

// MissingFieldError is returned when a mandatory manifest field is absent.
// Field names the missing field (like "mainClass" or "downloads.client").
type MissingFieldError struct {
	// Object is "version" or "library"
	Object string
	Field  string
}

func (e *MissingFieldError) Error() string {
	return fmt.Sprintf("missing %s %s", e.Object, e.Field)
}

// InvalidFieldError is returned when a manifest field has the wrong shape
type InvalidFieldError struct {
	Field  string
	Reason string
}

func (e *InvalidFieldError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

func quote(s string) string {
	return strconv.Quote(s)
}
