package invoice

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLifecycleDraftFinalizes(t *testing.T) {
	l := NewLifecycle(StatusDraft)
	next, err := l.Finalize(context.Background())
	require.NoError(t, err)
	require.Equal(t, StatusFinalized, next)
	require.Equal(t, StatusFinalized, l.State())
}

func TestLifecycleFinalizedIsTerminal(t *testing.T) {
	l := NewLifecycle(StatusFinalized)
	next, err := l.Finalize(context.Background())
	require.ErrorIs(t, err, ErrAlreadyFinalized)
	require.Equal(t, StatusFinalized, next)
}

func TestActions(t *testing.T) {
	require.Equal(t, []Trigger{TriggerFinalize}, Actions(StatusDraft))
	require.Empty(t, Actions(StatusFinalized))
}
