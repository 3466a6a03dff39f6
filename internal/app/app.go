package app

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"go.uber.org/zap"
	"golang.org/x/term"

	"github.com/five82/booktrack/internal/books"
	"github.com/five82/booktrack/internal/config"
	"github.com/five82/booktrack/internal/logging"
	"github.com/five82/booktrack/internal/prefs"
	"github.com/five82/booktrack/internal/request"
	"github.com/five82/booktrack/internal/ui"
)

// ErrNoTerminal is returned by Run when stdout is not an interactive terminal.
var ErrNoTerminal = errors.New("booktrack needs an interactive terminal; try `booktrack list` instead")

// Options configure the booktrack application.
type Options struct {
	ConfigPath string // empty uses ~/.config/booktrack/config.toml
	EnvFile    string // empty uses .env in the working directory
	PrefsPath  string // empty uses default ~/.config/booktrack/prefs.toml
	BaseURL    string // overrides config and environment when set
	Route      string // initial TUI route
}

// runtime is everything a command needs once configuration is resolved.
type runtime struct {
	cfg    config.Config
	log    *zap.Logger
	client *books.Client
	flush  func()
}

func (r *runtime) Close() {
	if r.flush != nil {
		r.flush()
	}
}

// managerOptions configures a request manager the same way the TUI screens do.
func (r *runtime) managerOptions() []request.Option {
	return []request.Option{
		request.WithLogger(r.log),
		request.WithAlertDuration(r.cfg.AlertDuration),
	}
}

// setup resolves configuration (file, then .env and environment, then
// flags), opens the log file and builds the API client.
func setup(opts Options) (*runtime, error) {
	cfg, err := config.Load(opts.ConfigPath)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}

	envFile := opts.EnvFile
	if strings.TrimSpace(envFile) == "" {
		envFile = ".env"
	}
	if err := config.ApplyEnv(&cfg, envFile); err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	if base := strings.TrimSpace(opts.BaseURL); base != "" {
		cfg.BaseURL = strings.TrimRight(base, "/")
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	logger, flush, err := logging.New(cfg)
	if err != nil {
		return nil, fmt.Errorf("init logging: %w", err)
	}

	client, err := books.NewClient(cfg.BaseURL,
		books.WithTimeout(cfg.RequestTimeout),
		books.WithLogger(logger),
	)
	if err != nil {
		flush()
		return nil, fmt.Errorf("init api client: %w", err)
	}

	return &runtime{cfg: cfg, log: logger, client: client, flush: flush}, nil
}

// Run boots the booktrack TUI until the user quits or the context is
// cancelled.
func Run(ctx context.Context, opts Options) error {
	if !term.IsTerminal(int(os.Stdout.Fd())) {
		return ErrNoTerminal
	}

	rt, err := setup(opts)
	if err != nil {
		return err
	}
	defer rt.Close()

	userPrefs := prefs.Load(opts.PrefsPath)
	rt.log.Info("starting tui",
		zap.String("base_url", rt.client.BaseURL()),
		zap.String("route", opts.Route),
		zap.String("theme", userPrefs.Theme))

	uiOpts := ui.Options{
		Context:          ctx,
		API:              rt.client,
		BaseURL:          rt.client.BaseURL(),
		Logger:           rt.log,
		ThemeName:        userPrefs.Theme,
		PrefsPath:        opts.PrefsPath,
		Route:            opts.Route,
		AlertDuration:    rt.cfg.AlertDuration,
		PlaceholderImage: rt.cfg.PlaceholderImage,
	}
	if err := ui.Run(uiOpts); err != nil {
		rt.log.Error("tui exited with error", zap.Error(err))
		return fmt.Errorf("run tui: %w", err)
	}
	rt.log.Info("tui stopped")
	return nil
}
