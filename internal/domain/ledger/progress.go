// Package ledger records vendor orders and the supplier-facing shared orders.
package ledger

import "github.com/vendorhub/backend/internal/domain/shared"

// Progress is an order's lifecycle stage. It only moves forward.
type Progress int

const (
	ProgressNew        Progress = 1
	ProgressProcessing Progress = 2
	ProgressCompleted  Progress = 3
)

// IsValid returns true for the three known stages
func (p Progress) IsValid() bool {
	return p >= ProgressNew && p <= ProgressCompleted
}

// IsCompleted returns true for the terminal stage
func (p Progress) IsCompleted() bool {
	return p == ProgressCompleted
}

// CanTransitionTo allows exactly one step forward
func (p Progress) CanTransitionTo(next Progress) bool {
	return p.IsValid() && next == p+1 && next.IsValid()
}

// Next returns the following stage, or ErrInvalidState from completed
func (p Progress) Next() (Progress, error) {
	next := p + 1
	if !p.CanTransitionTo(next) {
		return p, shared.NewDomainError(shared.CodeInvalidState, "Order is already "+p.String())
	}
	return next, nil
}

func (p Progress) String() string {
	switch p {
	case ProgressNew:
		return "new"
	case ProgressProcessing:
		return "processing"
	case ProgressCompleted:
		return "completed"
	default:
		return "unknown"
	}
}
