package tui

import (
	"fmt"
	"strings"

	"github.com/jask/contentdeck/internal/api"
)

// panelState is the transition controller's state machine: Idle until the
// operator submits, Submitting while exactly one request is in flight, then
// Succeeded or Failed until the next selection change or retry.
type panelState string

const (
	panelIdle       panelState = "idle"
	panelSubmitting panelState = "submitting"
	panelSucceeded  panelState = "succeeded"
	panelFailed     panelState = "failed"
)

// transitionPanel gates transition submission for one content item. It is a
// value type: every event returns the next panel, which keeps the guard logic
// trivial to test without a running program.
type transitionPanel struct {
	contentID string
	fromState string
	riskTier  int
	allowed   []string
	cursor    int
	state     panelState
	outcome   api.TransitionOutcome
	detail    string
}

// newTransitionPanel builds a panel from the backend-declared allowed set. An
// empty set means the record is terminal or suppressed: no target is ever
// selectable and submit stays a no-op.
func newTransitionPanel(allowed api.AllowedTransitions) transitionPanel {
	return transitionPanel{
		contentID: allowed.ContentID,
		fromState: allowed.FromState,
		riskTier:  allowed.RiskTier,
		allowed:   allowed.Allowed,
		state:     panelIdle,
	}
}

func (p transitionPanel) hasTargets() bool { return len(p.allowed) > 0 }

// selected returns the currently selected target state, or "" when there is
// nothing to select.
func (p transitionPanel) selected() string {
	if !p.hasTargets() || p.cursor < 0 || p.cursor >= len(p.allowed) {
		return ""
	}
	return p.allowed[p.cursor]
}

// moveCursor changes the selection. Any previous outcome or error is
// discarded: a selection change returns the panel to Idle. Moving is refused
// while a submission is in flight.
func (p transitionPanel) moveCursor(delta int) transitionPanel {
	if !p.hasTargets() || p.state == panelSubmitting {
		return p
	}
	next := p.cursor + delta
	if next < 0 {
		next = 0
	}
	if next >= len(p.allowed) {
		next = len(p.allowed) - 1
	}
	if next != p.cursor {
		p.cursor = next
		p.state = panelIdle
		p.outcome = api.TransitionOutcome{}
		p.detail = ""
	}
	return p
}

// submit applies the single-flight guard. It reports whether a request should
// actually be issued: false when no target is selected or one is already in
// flight. Retrying after a failure needs no re-selection.
func (p transitionPanel) submit() (transitionPanel, bool) {
	if p.selected() == "" || p.state == panelSubmitting {
		return p, false
	}
	p.state = panelSubmitting
	p.detail = ""
	return p, true
}

// succeed records the backend's outcome for display.
func (p transitionPanel) succeed(outcome api.TransitionOutcome) transitionPanel {
	p.state = panelSucceeded
	p.outcome = outcome
	p.detail = ""
	return p
}

// fail records the error detail and returns to a retryable state with the
// selection preserved.
func (p transitionPanel) fail(detail string) transitionPanel {
	p.state = panelFailed
	p.detail = detail
	return p
}

func (p transitionPanel) render() string {
	out := headerStyle.Render("Transition") + "\n"
	if !p.hasTargets() {
		out += faintStyle.Render("No transitions available.") + "\n"
		return out
	}
	for i, s := range p.allowed {
		marker := " "
		if i == p.cursor {
			marker = "▶"
		}
		out += fmt.Sprintf("%s %s\n", marker, stateBadge(s))
	}
	switch p.state {
	case panelSubmitting:
		out += faintStyle.Render("submitting...") + "\n"
	case panelSucceeded:
		out += okStyle.Render(fmt.Sprintf("Transitioned: %s → %s", p.outcome.FromState, p.outcome.ToState)) + "\n"
	case panelFailed:
		out += errorStyle.Render(strings.TrimSpace(p.detail)) + "\n"
	}
	return out
}
