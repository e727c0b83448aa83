package tui

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/jask/contentdeck/internal/api"
)

func TestPanelEmptyAllowedNeverSubmits(t *testing.T) {
	t.Parallel()

	p := newTransitionPanel(api.AllowedTransitions{ContentID: "c1", FromState: "RETIRED", Allowed: nil})
	require.False(t, p.hasTargets())
	require.Equal(t, "", p.selected())

	next, fire := p.submit()
	require.False(t, fire)
	require.Equal(t, panelIdle, next.state)

	// cursor movement on an empty set is inert too
	require.Equal(t, p, p.moveCursor(1))
	require.Contains(t, p.render(), "No transitions available.")
}

func TestPanelSingleFlightGuard(t *testing.T) {
	t.Parallel()

	p := newTransitionPanel(api.AllowedTransitions{
		ContentID: "abc123", FromState: "APPROVED", RiskTier: 1,
		Allowed: []string{"PUBLISHED", "RETIRED"},
	})
	require.Equal(t, "PUBLISHED", p.selected())

	p, fire := p.submit()
	require.True(t, fire)
	require.Equal(t, panelSubmitting, p.state)

	// a second submit while in flight must not fire
	p2, fire := p.submit()
	require.False(t, fire)
	require.Equal(t, panelSubmitting, p2.state)

	// and the selection cannot change mid-flight
	require.Equal(t, p, p.moveCursor(1))
}

func TestPanelSuccessHoldsOutcome(t *testing.T) {
	t.Parallel()

	p := newTransitionPanel(api.AllowedTransitions{
		ContentID: "abc123", FromState: "APPROVED", RiskTier: 1,
		Allowed: []string{"PUBLISHED", "RETIRED"},
	})
	p, _ = p.submit()
	p = p.succeed(api.TransitionOutcome{ContentID: "abc123", FromState: "APPROVED", ToState: "PUBLISHED", RiskTier: 1})
	require.Equal(t, panelSucceeded, p.state)
	require.Contains(t, p.render(), "Transitioned: APPROVED → PUBLISHED")
}

func TestPanelFailureIsRetryableWithoutReselect(t *testing.T) {
	t.Parallel()

	p := newTransitionPanel(api.AllowedTransitions{
		ContentID: "abc123", FromState: "APPROVED",
		Allowed: []string{"PUBLISHED", "RETIRED"},
	})
	p = p.moveCursor(1)
	require.Equal(t, "RETIRED", p.selected())

	p, fire := p.submit()
	require.True(t, fire)
	p = p.fail("invalid transition")
	require.Equal(t, panelFailed, p.state)
	require.Equal(t, "invalid transition", p.detail)
	require.Contains(t, p.render(), "invalid transition")

	// retry with the selection preserved
	p, fire = p.submit()
	require.True(t, fire)
	require.Equal(t, "RETIRED", p.selected())
	require.Equal(t, "", p.detail)
}

func TestPanelSelectionChangeResetsOutcome(t *testing.T) {
	t.Parallel()

	p := newTransitionPanel(api.AllowedTransitions{
		ContentID: "abc123", FromState: "APPROVED",
		Allowed: []string{"PUBLISHED", "RETIRED"},
	})
	p, _ = p.submit()
	p = p.fail("invalid transition")

	p = p.moveCursor(1)
	require.Equal(t, panelIdle, p.state)
	require.Equal(t, "", p.detail)

	// moving past the end clamps without resetting anything
	p = p.moveCursor(5)
	require.Equal(t, "RETIRED", p.selected())
}
