package service

import (
	"context"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/jask/contentdeck/internal/api"
	"github.com/jask/contentdeck/internal/database"
	"github.com/jask/contentdeck/internal/database/repository"
)

// JournalService records the transitions this operator submits. A journal
// write failure is logged and dropped: the transition's result has already
// been decided by the backend and must still reach the screen.
type JournalService struct {
	Journal *repository.JournalRepo
	Tenant  string
	Logger  *zap.Logger
}

func NewJournalService(repo *repository.JournalRepo, tenant string, logger *zap.Logger) *JournalService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &JournalService{Journal: repo, Tenant: tenant, Logger: logger}
}

// RecordOutcome journals a transition the backend accepted.
func (s *JournalService) RecordOutcome(ctx context.Context, outcome api.TransitionOutcome) {
	if s == nil || s.Journal == nil {
		return
	}
	err := s.Journal.Insert(ctx, repository.JournalEntry{
		ID:        uuid.NewString(),
		ContentID: outcome.ContentID,
		Tenant:    s.Tenant,
		FromState: outcome.FromState,
		ToState:   outcome.ToState,
		RiskTier:  outcome.RiskTier,
		Succeeded: true,
		CreatedAt: database.Now(),
	})
	if err != nil {
		s.Logger.Warn("journal write failed", zap.String("content_id", outcome.ContentID), zap.Error(err))
	}
}

// RecordFailure journals a transition the backend rejected.
func (s *JournalService) RecordFailure(ctx context.Context, contentID, fromState, toState, detail string) {
	if s == nil || s.Journal == nil {
		return
	}
	err := s.Journal.Insert(ctx, repository.JournalEntry{
		ID:        uuid.NewString(),
		ContentID: contentID,
		Tenant:    s.Tenant,
		FromState: fromState,
		ToState:   toState,
		Succeeded: false,
		Detail:    detail,
		CreatedAt: database.Now(),
	})
	if err != nil {
		s.Logger.Warn("journal write failed", zap.String("content_id", contentID), zap.Error(err))
	}
}

// Recent returns the newest journal entries.
func (s *JournalService) Recent(ctx context.Context, limit int) ([]repository.JournalEntry, error) {
	if s == nil || s.Journal == nil {
		return nil, nil
	}
	return s.Journal.List(ctx, limit)
}
