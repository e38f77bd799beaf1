package validation

import (
	"encoding/json"
	"errors"
	"strings"
)

// FieldIssue points at one offending input field.
type FieldIssue struct {
	Path    string `json:"path"`
	Message string `json:"message"`
}

// ValidationError lists every rule a payload violated.
type ValidationError struct {
	Issues []FieldIssue
}

func (e *ValidationError) Error() string {
	parts := make([]string, 0, len(e.Issues))
	for _, issue := range e.Issues {
		parts = append(parts, issue.Path+": "+issue.Message)
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

// HasPath reports whether any issue points at the given field.
func (e *ValidationError) HasPath(path string) bool {
	for _, issue := range e.Issues {
		if issue.Path == path {
			return true
		}
	}
	return false
}

func newError(path, message string) *ValidationError {
	return &ValidationError{Issues: []FieldIssue{{Path: path, Message: message}}}
}

// FromDecodeError turns a JSON type mismatch into a field-level validation error.
func FromDecodeError(err error) (*ValidationError, bool) {
	var typeErr *json.UnmarshalTypeError
	if !errors.As(err, &typeErr) || typeErr.Field == "" {
		return nil, false
	}
	return newError(typeErr.Field, "Expected "+describeKind(typeErr.Type.Kind().String())), true
}

func describeKind(kind string) string {
	switch kind {
	case "int", "int64":
		return "an integer"
	case "slice":
		return "an array"
	default:
		return "a " + kind
	}
}
