package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"usersadmin/internal/api"
	"usersadmin/internal/config"
	"usersadmin/internal/logging"
	"usersadmin/internal/session"
	"usersadmin/internal/telemetry"
	"usersadmin/internal/ui"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg := config.MustLoad()

	store, err := openSession(cfg.Session.Dir)
	if err != nil {
		return err
	}

	level, err := config.ParseLevel(cfg.Logging.Level)
	if err != nil {
		return err
	}
	logger, err := logging.Configure(cfg.Logging.FilePath, filepath.Dir(store.Path()), level)
	if err != nil {
		fmt.Fprintf(os.Stderr, "warning: %v (logging disabled)\n", err)
	}
	defer logger.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	tp, err := telemetry.NewProvider(ctx, cfg.Telemetry.Endpoint, cfg.Telemetry.ServiceName)
	if err != nil {
		logger.Warn("telemetry disabled", "error", err)
	}
	defer func() {
		shutdownCtx, done := context.WithTimeout(context.Background(), 5*time.Second)
		defer done()
		if err := tp.Shutdown(shutdownCtx); err != nil {
			logger.Warn("telemetry shutdown", "error", err)
		}
	}()

	client, err := api.New(cfg.API.BaseURL, store,
		api.WithTimeout(cfg.API.Timeout),
		api.WithPaths(cfg.API.ListPath, cfg.API.ProfilePath),
		api.WithLogger(logger.Logger),
	)
	if err != nil {
		return err
	}

	logger.Info("starting", "api", cfg.API.BaseURL, "session", store.Path(), "log", logger.Path)
	model := ui.NewAppModel(ui.Options{
		API:           client,
		Session:       store,
		Logger:        logger.Logger,
		PageSize:      cfg.UI.PageSize,
		ToastDuration: cfg.UI.ToastDuration,
		Context:       ctx,
	})
	p := tea.NewProgram(model.AsTeaModel(), tea.WithAltScreen(), tea.WithContext(ctx))
	if _, err := p.Run(); err != nil {
		return err
	}
	logger.Info("exiting")
	return nil
}

func openSession(dir string) (*session.Store, error) {
	if dir != "" {
		return session.NewStoreAt(filepath.Join(dir, session.FileName)), nil
	}
	return session.NewStore()
}
