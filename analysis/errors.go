package analysis

import (
	"errors"
	"fmt"
)

// ErrInvalidMetric is matched by every InvalidMetricError.
var ErrInvalidMetric = errors.New("invalid metric")

// InvalidMetricError reports a supplied metric outside its declared range.
type InvalidMetricError struct {
	Field  string
	Value  float64
	Reason string
}

func (e *InvalidMetricError) Error() string {
	return fmt.Sprintf("invalid metric %s=%v: %s", e.Field, e.Value, e.Reason)
}

// Is makes errors.Is(err, ErrInvalidMetric) succeed.
func (e *InvalidMetricError) Is(target error) bool {
	return target == ErrInvalidMetric
}

func invalid(field string, value float64, reason string) error {
	return &InvalidMetricError{Field: field, Value: value, Reason: reason}
}
