package services

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/stocktakehq/stocktake/pkg/serrors"
)

// ErrNotAMember rejects assignment to a user outside the tenant.
var ErrNotAMember = errors.New("user is not a member of the tenant")

// ValidationError carries per-field messages to the caller; never retried.
type ValidationError struct {
	Fields serrors.ValidationErrors
}

func (e *ValidationError) Error() string {
	if len(e.Fields) == 0 {
		return "validation failed"
	}
	keys := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, fmt.Sprintf("%s: %s", k, e.Fields[k]))
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

func NewValidationError(fields serrors.ValidationErrors) *ValidationError {
	return &ValidationError{Fields: fields}
}
