package events

import (
	"errors"
	"fmt"
	"strings"
)

var ErrNotFound = errors.New("event not found")

type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

func (e FieldError) Error() string {
	if e.Field == "" {
		return e.Message
	}
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Message)
}

// ValidationErrors carries every failing field of a create or update request,
// not just the first, so a client can present a complete correction list.
type ValidationErrors []FieldError

func (e ValidationErrors) Error() string {
	if len(e) == 0 {
		return "validation failed"
	}
	parts := make([]string, 0, len(e))
	for _, fieldErr := range e {
		parts = append(parts, fieldErr.Error())
	}
	return strings.Join(parts, "; ")
}

// Fields returns the failures keyed by field name for problem+json payloads.
func (e ValidationErrors) Fields() map[string]interface{} {
	if len(e) == 0 {
		return nil
	}
	fields := make(map[string]interface{}, len(e))
	for _, fieldErr := range e {
		fields[fieldErr.Field] = fieldErr.Message
	}
	return fields
}

type FilterError struct {
	Field   string
	Message string
}

func (e FilterError) Error() string {
	if e.Field == "" {
		return e.Message
	}
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Message)
}
