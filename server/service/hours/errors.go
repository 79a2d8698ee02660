package hours

import "fmt"

// Validation failure fields that are not tied to a single column.
const (
	FieldInterval = "interval"
	FieldOverlap  = "overlap"
)

// FormatError reports malformed clock or day text supplied by the caller.
type FormatError struct {
	Input  string
	Reason string
}

func (e *FormatError) Error() string {
	return fmt.Sprintf("invalid format %q: %s", e.Input, e.Reason)
}

// RangeError reports a value outside its declared numeric domain. It marks
// a caller contract violation, distinct from domain-rule ValidationError.
type RangeError struct {
	Param string
	Value int32
	Min   int32
	Max   int32
}

func (e *RangeError) Error() string {
	return fmt.Sprintf("invalid %s %d: must be between %d and %d", e.Param, e.Value, e.Min, e.Max)
}

// ValidationError reports a domain-rule violation and always names the
// field or rule that failed.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation failed on %s: %s", e.Field, e.Message)
}
