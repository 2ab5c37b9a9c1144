package errs

import (
	"errors"
	"net/http"
	"strings"
)

var ErrValidationFailed = errors.New("validation failed")

// FieldError describes one rejected field of a record.
type FieldError struct {
	Field  string `json:"field"`
	Reason string `json:"reason"`
}

// NewValidationError builds a 422 error listing every failing field.
func NewValidationError(entity string, fields []FieldError) *ApiErr {
	reasons := make([]string, 0, len(fields))
	for _, f := range fields {
		reasons = append(reasons, f.Field+" "+f.Reason)
	}

	apiErr := &ApiErr{
		StatusCode: http.StatusUnprocessableEntity,
		err:        ErrValidationFailed,
		Details:    entity + ": " + strings.Join(reasons, ", "),
		Fields:     fields,
	}
	if len(fields) == 1 {
		apiErr.Field = fields[0].Field
	}
	return apiErr
}

func IsValidationError(err error) bool {
	return errors.Is(err, ErrValidationFailed)
}

// FieldErrors returns the per-field reasons carried by err, if any.
func FieldErrors(err error) []FieldError {
	var apiErr *ApiErr
	if errors.As(err, &apiErr) {
		return apiErr.Fields
	}
	return nil
}

// HasFieldError reports whether err rejected the named field.
func HasFieldError(err error, field string) bool {
	for _, f := range FieldErrors(err) {
		if f.Field == field {
			return true
		}
	}
	return false
}
