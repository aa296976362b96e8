package pipeline

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrEmptyInput is returned when a stage receives no rows, so callers
	// can show an explicit "no data" state.
	ErrEmptyInput = errors.New("no rows to aggregate")

	// ErrUndefinedAggregate is matched by every *UndefinedAggregateError.
	ErrUndefinedAggregate = errors.New("undefined aggregate")
)

// UndefinedAggregateError lists the groups for which a metric has no valid
// values.
type UndefinedAggregateError struct {
	Metric string
	Groups []Key
}

func (e *UndefinedAggregateError) Error() string {
	groups := make([]string, len(e.Groups))
	for i, g := range e.Groups {
		groups[i] = g.String()
	}
	return fmt.Sprintf("%s undefined for %d group(s): %s", e.Metric, len(e.Groups), strings.Join(groups, ", "))
}

func (e *UndefinedAggregateError) Is(target error) bool {
	return target == ErrUndefinedAggregate
}
