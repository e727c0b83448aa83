package api

// Lifecycle states as the backend declares them. The state field stays an open
// string everywhere for forward compatibility; these constants only cover the
// states the backend ships today.
const (
	StateIngested        = "INGESTED"
	StateClassified      = "CLASSIFIED"
	StateSelected        = "SELECTED"
	StateResearched      = "RESEARCHED"
	StateDrafted         = "DRAFTED"
	StateValidated       = "VALIDATED"
	StatePendingApproval = "PENDING_APPROVAL"
	StateReadyToPublish  = "READY_TO_PUBLISH"
	StatePublished       = "PUBLISHED"
	StateDeferred        = "DEFERRED"
	StateRetired         = "RETIRED"
)

// ContentItem is a transient per-request copy of a backend content record.
type ContentItem struct {
	ID        string `json:"id"`
	Title     string `json:"title"`
	State     string `json:"state"`
	RiskTier  int    `json:"risk_tier"`
	CreatedAt string `json:"created_at"`
	UpdatedAt string `json:"updated_at"`
}

// ContentListPage is one page of a list query. Items arrive in server-defined
// order; Total counts all matching items independent of the page.
type ContentListPage struct {
	Items  []ContentItem `json:"items"`
	Limit  int           `json:"limit"`
	Offset int           `json:"offset"`
	Total  int           `json:"total"`
}

// AllowedTransitions is the backend-declared set of legal next states for an
// item. Always re-fetched; the client never computes it.
type AllowedTransitions struct {
	ContentID string   `json:"content_id"`
	FromState string   `json:"from_state"`
	RiskTier  int      `json:"risk_tier"`
	Allowed   []string `json:"allowed"`
}

// ContentEvent is one entry in an item's append-only audit log. Payload is
// recorded verbatim; ordering is a backend concern.
type ContentEvent struct {
	ID         string         `json:"id"`
	EntityType string         `json:"entity_type"`
	EntityID   string         `json:"entity_id"`
	EventType  string         `json:"event_type"`
	ActorType  string         `json:"actor_type"`
	ActorID    *string        `json:"actor_id,omitempty"`
	Payload    map[string]any `json:"payload"`
	CreatedAt  string         `json:"created_at"`
}

// TransitionRequest names the requested target state. Reason and ActorType are
// optional annotations the backend records on the resulting event.
type TransitionRequest struct {
	ToState   string `json:"to_state"`
	Reason    string `json:"reason,omitempty"`
	ActorType string `json:"actor_type,omitempty"`
}

// TransitionOutcome is the backend's answer to a transition.
type TransitionOutcome struct {
	ContentID string `json:"content_id"`
	FromState string `json:"from_state"`
	ToState   string `json:"to_state"`
	RiskTier  int    `json:"risk_tier"`
}

// CreateContentRequest creates a new record. RiskTier is clamped to 1..3 by
// the backend.
type CreateContentRequest struct {
	Title    string `json:"title"`
	RiskTier int    `json:"risk_tier"`
}

// Health is the backend liveness response.
type Health struct {
	OK      bool   `json:"ok"`
	Version string `json:"version"`
}
