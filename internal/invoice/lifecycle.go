package invoice

import (
	"context"
	"fmt"

	"github.com/qmuntal/stateless"
)

// Status is the invoice lifecycle state.
type Status string

const (
	StatusDraft     Status = "draft"
	StatusFinalized Status = "finalized"
)

// Trigger names a lifecycle transition.
type Trigger string

const TriggerFinalize Trigger = "finalize"

// Lifecycle is the draft -> finalized machine. Finalized is terminal.
type Lifecycle struct {
	machine *stateless.StateMachine
}

// NewLifecycle returns a machine positioned at current.
func NewLifecycle(current Status) *Lifecycle {
	m := stateless.NewStateMachine(current)
	m.Configure(StatusDraft).
		Permit(TriggerFinalize, StatusFinalized)
	m.Configure(StatusFinalized)
	return &Lifecycle{machine: m}
}

// State returns the current status.
func (l *Lifecycle) State() Status {
	return l.machine.MustState().(Status)
}

// Finalize fires the finalize trigger. Any status other than draft yields
// ErrAlreadyFinalized.
func (l *Lifecycle) Finalize(ctx context.Context) (Status, error) {
	if err := l.machine.FireCtx(ctx, TriggerFinalize); err != nil {
		return l.State(), fmt.Errorf("%w: status %s", ErrAlreadyFinalized, l.State())
	}
	return l.State(), nil
}

// Actions lists the triggers available from status, for API consumers.
func Actions(status Status) []Trigger {
	if Finalizable(context.Background(), status) {
		return []Trigger{TriggerFinalize}
	}
	return []Trigger{}
}

// Finalizable reports whether the finalize trigger is accepted from status.
func Finalizable(ctx context.Context, status Status) bool {
	_, err := NewLifecycle(status).Finalize(ctx)
	return err == nil
}
