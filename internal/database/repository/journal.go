package repository

import (
	"context"
	"database/sql"
	"time"
)

// JournalEntry records one transition this operator submitted, successful or
// not. It is a local record of operator actions, never a copy of server state.
type JournalEntry struct {
	ID        string
	ContentID string
	Tenant    string
	FromState string
	ToState   string
	RiskTier  int
	Succeeded bool
	Detail    string
	CreatedAt time.Time
}

// JournalRepo handles the transition journal.
type JournalRepo struct {
	db *sql.DB
}

func NewJournalRepo(db *sql.DB) *JournalRepo { return &JournalRepo{db: db} }

func (r *JournalRepo) Insert(ctx context.Context, e JournalEntry) error {
	_, err := r.db.ExecContext(ctx, `
	INSERT INTO transition_journal(
	 id, content_id, tenant, from_state, to_state, risk_tier, succeeded, detail, created_at)
	VALUES(?, ?, ?, ?, ?, ?, ?, ?, ?);
	`,
		e.ID, e.ContentID, e.Tenant, e.FromState, e.ToState, e.RiskTier, e.Succeeded, e.Detail, e.CreatedAt)
	return err
}

// List returns the newest entries first, at most limit rows.
func (r *JournalRepo) List(ctx context.Context, limit int) ([]JournalEntry, error) {
	if limit <= 0 {
		limit = 50
	}
	rows, err := r.db.QueryContext(ctx, `
	SELECT id, content_id, tenant, from_state, to_state, risk_tier, succeeded, detail, created_at
	FROM transition_journal
	ORDER BY created_at DESC, id DESC
	LIMIT ?;
	`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []JournalEntry
	for rows.Next() {
		var e JournalEntry
		if err := rows.Scan(&e.ID, &e.ContentID, &e.Tenant, &e.FromState, &e.ToState, &e.RiskTier, &e.Succeeded, &e.Detail, &e.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	return out, rows.Err()
}
