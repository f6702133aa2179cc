package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/healthtoday/healthtoday/internal/api"
	"github.com/healthtoday/healthtoday/internal/auth"
	"github.com/healthtoday/healthtoday/internal/clicks"
	"github.com/healthtoday/healthtoday/internal/duckdb"
	"github.com/healthtoday/healthtoday/internal/httpserver"
	"github.com/healthtoday/healthtoday/internal/tui"
	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	tea "github.com/charmbracelet/bubbletea"
)

// Build variables - set by ldflags during build.
var (
	version   = "dev"
	commit    = "unknown"
	buildTime = "unknown"
	goVersion = "unknown"
)

func main() {
	var configPath string
	var showVersion bool

	flag.StringVar(&configPath, "config", "", "config file (default is $HOME/.config/healthtoday/config.yml)")
	flag.BoolVar(&showVersion, "version", false, "print version information")
	flag.Parse()

	if showVersion {
		fmt.Printf("HealthToday - Terminal Health Companion\n")
		fmt.Printf("  Version:    %s\n", version)
		fmt.Printf("  Commit:     %s\n", commit)
		fmt.Printf("  Built:      %s\n", buildTime)
		fmt.Printf("  Go version: %s\n", goVersion)
		return
	}

	cfg, err := loadConfig(configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		os.Exit(1)
	}

	if err := run(cfg); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run(cfg appConfig) error {
	logger, closeLog := newRuntimeLogger(cfg.LogLevel)
	defer closeLog()
	logger.Info().Str("config", cfg.ConfigPath).Str("db", cfg.DBPath).Msg("starting")

	store, err := duckdb.NewStore(cfg.DBPath, cfg.QueryTimeout)
	if err != nil {
		return fmt.Errorf("failed to initialize DuckDB: %w", err)
	}
	defer store.Close()

	// Expired cached responses are purged on the same TTL they are served for.
	cleaner := duckdb.NewRetentionCleaner(store, duckdb.RetentionConfig{
		MaxAge: cfg.CacheTTL,
		Logger: logger.With().Str("component", "retention").Logger(),
	})
	if cleaner != nil {
		defer cleaner.Stop()
	}

	if cfg.ExerciseAPIKey == "" {
		logger.Warn().Msg("exercise-api-key not set; exercise tab will fail to load")
	}
	if cfg.NutritionAPIKey == "" {
		logger.Warn().Msg("nutrition-api-key not set; nutrition search will fail")
	}

	content := api.New(cfg.apiConfig(),
		api.WithCache(store),
		api.WithLogger(logger.With().Str("component", "api").Logger()),
	)
	session := auth.NewService(store, auth.WithLogger(logger.With().Str("component", "auth").Logger()))
	tracker := clicks.New()

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGTERM)
	defer cancel()

	if cfg.APIEnabled {
		apiServer := httpserver.NewServer(cfg.APIAddr, store, tracker, logger.With().Str("component", "httpserver").Logger())
		if err := apiServer.Start(); err != nil {
			return fmt.Errorf("failed to start API server: %w", err)
		}
		defer apiServer.Stop()
	}

	dashboard := tui.NewDashboardModel(tui.DashboardDeps{
		Ctx:                ctx,
		Session:            session,
		Clicks:             tracker,
		Exercises:          content,
		News:               content,
		Nutrition:          content,
		Log:                logger.With().Str("component", "tui").Logger(),
		ExercisePageSize:   cfg.ExercisePageSize,
		NewsPageSize:       cfg.NewsPageSize,
		ReverseScrollWheel: cfg.ReverseScrollWheel,
	})
	app := tui.NewApp(
		tui.NewWelcomePage(),
		tui.NewLoginPage(ctx, session, logger),
		tui.NewRegisterPage(ctx, session, logger),
		tui.NewDashboardView(dashboard),
	)

	return runTUI(ctx, cancel, app, logger)
}

// runTUI runs the program until the user quits or ctx is cancelled. Leaving
// the TUI cancels ctx so in-flight fetches stop.
func runTUI(ctx context.Context, cancel context.CancelFunc, app tea.Model, logger zerolog.Logger) error {
	p := tea.NewProgram(app, tea.WithAltScreen(), tea.WithMouseCellMotion())

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		defer cancel()
		if _, err := p.Run(); err != nil {
			if strings.Contains(err.Error(), "TTY") || strings.Contains(err.Error(), "/dev/tty") {
				return errors.New("TUI requires a real terminal")
			}
			return fmt.Errorf("error running TUI: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()
		p.Quit()
		return nil
	})

	err := g.Wait()
	if err != nil {
		logger.Error().Err(err).Msg("exited with error")
	} else {
		logger.Info().Msg("exited")
	}
	return err
}
