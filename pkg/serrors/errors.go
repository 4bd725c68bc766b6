package serrors

import (
	"fmt"

	"github.com/go-playground/validator/v10"
)

// Error is a coded error suitable for API envelopes.
type Error struct {
	Code    string
	Message string
	Field   string
}

func (e *Error) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("%s: %s (%s)", e.Code, e.Message, e.Field)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func NewError(code, message, field string) *Error {
	return &Error{Code: code, Message: message, Field: field}
}

// ValidationErrors maps struct field names to human-readable messages.
type ValidationErrors map[string]string

// ProcessValidatorErrors flattens go-playground validator errors into
// per-field messages. msgFor may return "" to fall back to a generic message.
func ProcessValidatorErrors(errs validator.ValidationErrors, msgFor func(field, tag string) string) ValidationErrors {
	out := make(ValidationErrors, len(errs))
	for _, fe := range errs {
		msg := ""
		if msgFor != nil {
			msg = msgFor(fe.Field(), fe.Tag())
		}
		if msg == "" {
			msg = fmt.Sprintf("%s failed validation on %q", fe.Field(), fe.Tag())
		}
		out[fe.Field()] = msg
	}
	return out
}
