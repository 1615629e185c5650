// Package planerr defines the typed errors raised by the planning
// pipeline. The HTTP layer maps them onto RFC 9457 problem responses:
// everything here is a 400-class failure the caller can fix by
// correcting input, anything else is treated as unexpected.
package planerr

import "fmt"

// ValidationError reports invalid request semantics: a bad timezone, a bad
// date string, too few paycheck dates, or an unrecognized pay cadence.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return e.Reason
	}
	return fmt.Sprintf("%s: %s", e.Field, e.Reason)
}

// Validation builds a ValidationError for the given field.
func Validation(field, format string, args ...interface{}) *ValidationError {
	return &ValidationError{Field: field, Reason: fmt.Sprintf(format, args...)}
}

// MalformedInstallmentError reports an installment whose numeric fields
// could not be coerced. Upstream validation should prevent this; the
// normalizer raises it rather than trusting callers.
type MalformedInstallmentError struct {
	Index  int
	Field  string
	Reason string
}

func (e *MalformedInstallmentError) Error() string {
	return fmt.Sprintf("installment %d: malformed %s: %s", e.Index, e.Field, e.Reason)
}

// UnresolvableShiftError reports a due date that could not be moved to a
// valid business day within the bounded search horizon. It indicates a
// pathological skip-date configuration.
type UnresolvableShiftError struct {
	Date    string
	Horizon int
}

func (e *UnresolvableShiftError) Error() string {
	return fmt.Sprintf("no business day found within %d days of %s", e.Horizon, e.Date)
}

// InvalidTimezoneError reports an IANA timezone identifier that could not
// be loaded. Calendar generation aborts rather than emit a partial or
// floating-time document.
type InvalidTimezoneError struct {
	TZ string
}

func (e *InvalidTimezoneError) Error() string {
	return fmt.Sprintf("invalid timezone %q", e.TZ)
}
