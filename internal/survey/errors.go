package survey

import (
	"fmt"
	"strings"
)

type ViolationCode string

const (
	CodeMissingField       ViolationCode = "MISSING_FIELD"
	CodeInvalidCategory    ViolationCode = "INVALID_CATEGORY"
	CodeOutOfRange         ViolationCode = "OUT_OF_RANGE"
	CodeMissingRetailField ViolationCode = "MISSING_RETAIL_FIELD"
	CodeInvalidFormat      ViolationCode = "INVALID_FORMAT"
)

// Violation is a single rejected field.
type Violation struct {
	Field   string        `json:"field"`
	Code    ViolationCode `json:"code"`
	Message string        `json:"message"`
	Min     int           `json:"min,omitempty"`
	Max     int           `json:"max,omitempty"`
}

// ValidationError carries every violation found in a response, in check order.
type ValidationError struct {
	Violations []Violation `json:"violations"`
}

func (e *ValidationError) Error() string {
	msgs := make([]string, len(e.Violations))
	for i, v := range e.Violations {
		msgs[i] = v.Message
	}
	return strings.Join(msgs, "; ")
}

// Has reports whether any violation names field.
func (e *ValidationError) Has(field string) bool {
	for _, v := range e.Violations {
		if v.Field == field {
			return true
		}
	}
	return false
}

// Codes returns the violation codes recorded for field.
func (e *ValidationError) Codes(field string) []ViolationCode {
	var out []ViolationCode
	for _, v := range e.Violations {
		if v.Field == field {
			out = append(out, v.Code)
		}
	}
	return out
}

// MalformedRequestError means the body is not a structured JSON object of
// the expected shape.
type MalformedRequestError struct {
	Reason string
}

func (e *MalformedRequestError) Error() string {
	return fmt.Sprintf("malformed request: %s", e.Reason)
}
