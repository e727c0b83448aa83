package api

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"
)

// fakeBackend serves the content endpoints over a fixed 45-item tenant.
func fakeBackend(t *testing.T) *httptest.Server {
	t.Helper()

	items := make([]ContentItem, 45)
	for i := range items {
		items[i] = ContentItem{
			ID:        fmt.Sprintf("id-%02d", i),
			Title:     fmt.Sprintf("Post %02d", i),
			State:     StateIngested,
			RiskTier:  1 + i%3,
			CreatedAt: "2026-08-01T10:00:00Z",
			UpdatedAt: "2026-08-01T10:00:00Z",
		}
	}

	mux := http.NewServeMux()
	mux.HandleFunc("GET /content", func(w http.ResponseWriter, r *http.Request) {
		limit, _ := parseInt(r.URL.Query().Get("limit"))
		offset, _ := parseInt(r.URL.Query().Get("offset"))
		end := offset + limit
		if end > len(items) {
			end = len(items)
		}
		page := ContentListPage{Items: items[offset:end], Limit: limit, Offset: offset, Total: len(items)}
		writeJSON(w, page)
	})
	mux.HandleFunc("GET /content/{id}", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, items[0])
	})
	mux.HandleFunc("GET /content/{id}/allowed", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, AllowedTransitions{
			ContentID: r.PathValue("id"),
			FromState: "APPROVED",
			RiskTier:  1,
			Allowed:   []string{StatePublished, StateRetired},
		})
	})
	mux.HandleFunc("GET /content/{id}/events", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, []ContentEvent{})
	})
	mux.HandleFunc("POST /content/{id}/transition", func(w http.ResponseWriter, r *http.Request) {
		var req TransitionRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		writeJSON(w, TransitionOutcome{
			ContentID: r.PathValue("id"),
			FromState: "APPROVED",
			ToState:   req.ToState,
			RiskTier:  1,
		})
	})
	mux.HandleFunc("POST /content", func(w http.ResponseWriter, r *http.Request) {
		var req CreateContentRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		writeJSON(w, ContentItem{ID: "new-1", Title: req.Title, State: StateIngested, RiskTier: req.RiskTier})
	})
	mux.HandleFunc("GET /workflow/states", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, map[string]any{"states": []string{StateIngested, StateClassified, StateDeferred, StateRetired}})
	})

	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(v)
}

func parseInt(s string) (int, error) {
	var n int
	_, err := fmt.Sscanf(s, "%d", &n)
	return n, err
}

func TestListContentScenario(t *testing.T) {
	t.Parallel()

	srv := fakeBackend(t)
	c := New(Config{BaseURL: srv.URL})

	page, err := c.ListContent(context.Background(), ListQuery{Limit: 20, Offset: 0, Sort: "created_at_desc"})
	require.NoError(t, err)
	require.Equal(t, 45, page.Total)
	require.Len(t, page.Items, 20)
	require.True(t, page.CanNext())
	require.False(t, page.CanPrev())
	require.Equal(t, 20, page.NextOffset())
}

func TestGetAllowedAndTransition(t *testing.T) {
	t.Parallel()

	srv := fakeBackend(t)
	c := New(Config{BaseURL: srv.URL})
	ctx := context.Background()

	allowed, err := c.GetAllowed(ctx, "abc123")
	require.NoError(t, err)
	require.Equal(t, "abc123", allowed.ContentID)
	require.Equal(t, "APPROVED", allowed.FromState)
	require.Equal(t, []string{"PUBLISHED", "RETIRED"}, allowed.Allowed)

	outcome, err := c.Transition(ctx, "abc123", TransitionRequest{ToState: "PUBLISHED"})
	require.NoError(t, err)
	require.Equal(t, TransitionOutcome{ContentID: "abc123", FromState: "APPROVED", ToState: "PUBLISHED", RiskTier: 1}, outcome)
}

func TestGetEventsEmptyIsValid(t *testing.T) {
	t.Parallel()

	srv := fakeBackend(t)
	c := New(Config{BaseURL: srv.URL})

	events, err := c.GetEvents(context.Background(), "fresh")
	require.NoError(t, err)
	require.Len(t, events, 0)
}

func TestGetEventsDecodesActorAndPayload(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`[
			{"id":"e2","entity_type":"content","entity_id":"c1","event_type":"transitioned","actor_type":"user","actor_id":"u9","payload":{"to":"PUBLISHED"},"created_at":"2026-08-02T09:00:00Z"},
			{"id":"e1","entity_type":"content","entity_id":"c1","event_type":"created","actor_type":"system","payload":{},"created_at":"2026-08-01T10:00:00Z"}
		]`))
	}))
	defer srv.Close()

	c := New(Config{BaseURL: srv.URL})
	events, err := c.GetEvents(context.Background(), "c1")
	require.NoError(t, err)
	require.Len(t, events, 2)

	// order is the server's; the client must not reorder
	require.Equal(t, "e2", events[0].ID)
	require.NotNil(t, events[0].ActorID)
	require.Equal(t, "u9", *events[0].ActorID)
	require.Equal(t, "PUBLISHED", events[0].Payload["to"])
	require.Nil(t, events[1].ActorID)
}

func TestGetAllowedUnknownIDSurfacesHTTPError(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte(`{"detail":"content not found"}`))
	}))
	defer srv.Close()

	c := New(Config{BaseURL: srv.URL})
	_, err := c.GetAllowed(context.Background(), "missing")
	require.Error(t, err)

	apiErr, ok := err.(*Error)
	require.True(t, ok)
	require.Equal(t, http.StatusNotFound, apiErr.Status)
	require.Equal(t, "content not found", apiErr.Detail)
}

func TestCreateContentAndWorkflowStates(t *testing.T) {
	t.Parallel()

	srv := fakeBackend(t)
	c := New(Config{BaseURL: srv.URL})
	ctx := context.Background()

	item, err := c.CreateContent(ctx, CreateContentRequest{Title: "Launch notes", RiskTier: 2})
	require.NoError(t, err)
	require.Equal(t, "Launch notes", item.Title)
	require.Equal(t, StateIngested, item.State)
	require.Equal(t, 2, item.RiskTier)

	states, err := c.WorkflowStates(ctx)
	require.NoError(t, err)
	require.Contains(t, states, StateIngested)
	require.Contains(t, states, StateRetired)
}
