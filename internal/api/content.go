package api

import (
	"context"
	"net/http"
	"net/url"
)

// ListContent fetches one page of content records.
func (c *Client) ListContent(ctx context.Context, q ListQuery) (ContentListPage, error) {
	var page ContentListPage
	if err := c.call(ctx, http.MethodGet, "/content?"+q.Encode(), nil, &page); err != nil {
		return ContentListPage{}, err
	}
	return page, nil
}

// GetContent fetches a single record by id.
func (c *Client) GetContent(ctx context.Context, id string) (ContentItem, error) {
	var item ContentItem
	if err := c.call(ctx, http.MethodGet, "/content/"+url.PathEscape(id), nil, &item); err != nil {
		return ContentItem{}, err
	}
	return item, nil
}

// GetAllowed fetches the backend-declared legal next states for an item. An
// unknown id surfaces through the generic HTTP error path.
func (c *Client) GetAllowed(ctx context.Context, id string) (AllowedTransitions, error) {
	var allowed AllowedTransitions
	if err := c.call(ctx, http.MethodGet, "/content/"+url.PathEscape(id)+"/allowed", nil, &allowed); err != nil {
		return AllowedTransitions{}, err
	}
	return allowed, nil
}

// GetEvents fetches an item's audit trail, oldest-to-newest as the server
// chooses. A freshly created item legitimately has no events.
func (c *Client) GetEvents(ctx context.Context, id string) ([]ContentEvent, error) {
	var events []ContentEvent
	if err := c.call(ctx, http.MethodGet, "/content/"+url.PathEscape(id)+"/events", nil, &events); err != nil {
		return nil, err
	}
	return events, nil
}

// Transition submits a state change. The backend is the sole authority on
// legality; the client sends whatever target it is given and surfaces a
// rejection as a normal error.
func (c *Client) Transition(ctx context.Context, id string, req TransitionRequest) (TransitionOutcome, error) {
	var outcome TransitionOutcome
	if err := c.call(ctx, http.MethodPost, "/content/"+url.PathEscape(id)+"/transition", req, &outcome); err != nil {
		return TransitionOutcome{}, err
	}
	return outcome, nil
}

// CreateContent creates a new record in its initial state.
func (c *Client) CreateContent(ctx context.Context, req CreateContentRequest) (ContentItem, error) {
	var item ContentItem
	if err := c.call(ctx, http.MethodPost, "/content", req, &item); err != nil {
		return ContentItem{}, err
	}
	return item, nil
}

// WorkflowStates fetches the full state vocabulary the backend knows about.
func (c *Client) WorkflowStates(ctx context.Context) ([]string, error) {
	var resp struct {
		States []string `json:"states"`
	}
	if err := c.call(ctx, http.MethodGet, "/workflow/states", nil, &resp); err != nil {
		return nil, err
	}
	return resp.States, nil
}

// Health checks backend liveness.
func (c *Client) Health(ctx context.Context) (Health, error) {
	var h Health
	if err := c.call(ctx, http.MethodGet, "/healthz", nil, &h); err != nil {
		return Health{}, err
	}
	return h, nil
}
