package app

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"rockbottom/internal/alerting"
	"rockbottom/internal/config"
	"rockbottom/internal/service"
	"rockbottom/internal/session"
	"rockbottom/internal/storage"
)

// App aggregates configuration and shared dependencies for the CLI commands.
type App struct {
	Config *config.Config
	Logger zerolog.Logger
}

// NewApp constructs a new application handle.
func NewApp(cfg *config.Config, logger zerolog.Logger) *App {
	return &App{Config: cfg, Logger: logger.With().Str("component", "app").Logger()}
}

// openStore selects and opens the persistence backend. The choice is made
// once per invocation: remote PostgreSQL when a DSN is configured, the local
// blob file otherwise.
func (a *App) openStore(ctx context.Context) (storage.PurchaseStore, func(), error) {
	if a.Config.RemoteBacked() {
		pool, err := storage.NewPool(ctx, a.Config.Database)
		if err != nil {
			return nil, nil, err
		}
		store := storage.NewPostgresStore(pool, a.Config.Session.UserID)
		return store, store.Close, nil
	}

	store, err := storage.OpenLocalStore(a.Config.LocalStore.Path)
	if err != nil {
		return nil, nil, err
	}
	return store, store.Close, nil
}

func (a *App) newNotifier() alerting.Notifier {
	if !a.Config.Alerting.Enabled {
		return nil
	}
	if a.Config.Alerting.Telegram.Enabled {
		cfg := a.Config.Alerting.Telegram
		return alerting.NewTelegramNotifier(cfg.BotToken, cfg.ChatID, cfg.APIBase, 10*time.Second, a.Logger)
	}
	return nil
}

func (a *App) newRecorder(store storage.PurchaseStore) *service.Recorder {
	auth := session.NewStatic(a.Config.Session.UserID)
	return service.New(store, auth, a.newNotifier(), a.Logger)
}

// backendName describes the active persistence backend for display.
func (a *App) backendName() string {
	if a.Config.RemoteBacked() {
		return "postgres"
	}
	return "local blob (" + a.Config.LocalStore.Path + ")"
}

// AddOptions carry the raw purchase submission from the CLI flags.
type AddOptions struct {
	Name     string
	Price    string
	Quantity string
	Unit     string
	Store    string
	Target   string
}

// ListOptions configure the list command.
type ListOptions struct {
	Limit int
	Item  string
}

// PreviewOptions configure the preview command.
type PreviewOptions struct {
	Price    string
	Quantity string
}

// ExportOptions hold parameters for exporting an item's price history.
type ExportOptions struct {
	Item      string
	PNGPath   string
	CSVPath   string
	MaxPoints int
}
