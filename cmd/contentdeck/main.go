package main

import (
	"context"
	"log"
	"os"
	"path/filepath"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"github.com/jask/contentdeck/internal/api"
	"github.com/jask/contentdeck/internal/config"
	"github.com/jask/contentdeck/internal/database"
	"github.com/jask/contentdeck/internal/database/repository"
	"github.com/jask/contentdeck/internal/logging"
	"github.com/jask/contentdeck/internal/service"
	"github.com/jask/contentdeck/internal/tui"
)

func main() {
	ctx := context.Background()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	logger, err := logging.New(cfg.Log)
	if err != nil {
		log.Fatalf("logging: %v", err)
	}
	defer func() { _ = logger.Sync() }()

	client := api.New(api.Config{
		BaseURL: cfg.API.BaseURL,
		Tenant:  cfg.API.Tenant,
		Timeout: time.Duration(cfg.API.TimeoutSeconds) * time.Second,
	}, api.WithLogger(logger))

	journal := openJournal(cfg, logger)

	app := tui.New(ctx, cfg, client, journal, logger)
	p := tea.NewProgram(app, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		log.Fatalf("tui: %v", err)
	}
}

// openJournal sets up the local transition journal. The journal is an
// operator convenience; any setup failure disables it rather than blocking
// the console.
func openJournal(cfg config.Config, logger *zap.Logger) *service.JournalService {
	if err := os.MkdirAll(filepath.Dir(cfg.Journal.Path), 0o755); err != nil {
		logger.Warn("journal disabled: mkdir", zap.Error(err))
		return nil
	}
	db, err := database.Open(cfg.Journal.Path)
	if err != nil {
		logger.Warn("journal disabled: open", zap.Error(err))
		return nil
	}
	if err := database.Migrate(db); err != nil {
		logger.Warn("journal disabled: migrate", zap.Error(err))
		_ = db.Close()
		return nil
	}
	return service.NewJournalService(repository.NewJournalRepo(db), cfg.API.Tenant, logger)
}
