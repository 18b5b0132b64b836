package placement

import (
	"github.com/redstonehub/laurel/internal/domain/model"
	"github.com/redstonehub/laurel/internal/domain/validation"
)

// Result is the outcome of an operation gated by the placement rules:
// either OK with the written record, or rejected with a reason and nothing
// written.
type Result struct {
	OK     bool             `json:"ok"`
	Record *model.HofRecord `json:"record,omitempty"`
	Reason string           `json:"reason,omitempty"`
}

// Accept wraps a written record.
func Accept(r model.HofRecord) Result { return Result{OK: true, Record: &r} }

// Reject wraps a rejection reason.
func Reject(reason string) Result { return Result{Reason: reason} }

// FromError converts a validation error into a rejection. Other errors are
// returned unchanged for the caller to propagate.
func FromError(err error) (Result, error) {
	if reason, ok := validation.Reason(err); ok {
		return Reject(reason), nil
	}
	return Result{}, err
}
