package cli

import (
	"context"
	"io"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/matzehuels/stc/pkg/buildinfo"
	"github.com/matzehuels/stc/pkg/errors"
	"github.com/matzehuels/stc/pkg/host"
	"github.com/matzehuels/stc/pkg/httputil"
	"github.com/matzehuels/stc/pkg/panel"
	"github.com/matzehuels/stc/pkg/selection"
	"github.com/matzehuels/stc/pkg/storage"
)

// =============================================================================
// Constants
// =============================================================================

// appName is the application name used for directories and display.
const appName = "stc"

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// =============================================================================
// CLI - Central CLI State
// =============================================================================

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger

	configPath string
	cfg        *Config
}

// New creates a new CLI instance with a default logger.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{Logger: newLogger(w, level)}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:   appName,
		Short: "stc captures community posts and composes testimonial graphics",
		Long: `stc highlights testimonial and member posts on a community page, captures the
ones you pick, and composes them into a single square PNG graphic.`,
		Version:       buildinfo.Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return c.setup(cmd)
		},
	}

	root.SetVersionTemplate(buildinfo.Template())
	root.PersistentFlags().StringVar(&c.configPath, "config", "", "config file (default $XDG_CONFIG_HOME/stc/config.toml)")

	root.AddCommand(c.captureCommand())
	root.AddCommand(c.pickCommand())
	root.AddCommand(c.itemsCommand())
	root.AddCommand(c.composeCommand())
	root.AddCommand(c.serveCommand())
	root.AddCommand(c.cacheCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// setup loads the configuration and attaches the logger to the command context.
func (c *CLI) setup(cmd *cobra.Command) error {
	cfg, err := loadConfig(c.configPath)
	if err != nil {
		return err
	}
	c.cfg = cfg

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	cmd.SetContext(withLogger(ctx, c.Logger))

	if c.Logger.GetLevel() <= log.DebugLevel {
		registerLogHooks(c.Logger)
	}
	return nil
}

func (c *CLI) config() *Config {
	if c.cfg == nil {
		c.cfg = DefaultConfig()
	}
	return c.cfg
}

// =============================================================================
// Factories
// =============================================================================

// workspace bundles what every capture or compose command needs: the store,
// the typed selection repository, and a browser driven by a control panel.
type workspace struct {
	store   storage.Store
	repo    *selection.Repository
	browser *host.Browser
	panel   *panel.Panel
}

func (w *workspace) Close() error {
	return w.store.Close()
}

// openStore opens the configured backend. Ephemeral stores live in memory.
func (c *CLI) openStore(ctx context.Context, ephemeral bool) (storage.Store, error) {
	if ephemeral {
		return storage.NewMemoryStore(), nil
	}
	sc := c.config().Storage
	cfg := storage.Config{
		Backend: sc.Backend,
		Dir:     sc.Dir,
		Redis: storage.RedisOptions{
			Addr:     sc.RedisAddr,
			Password: sc.RedisPassword,
			DB:       sc.RedisDB,
		},
		Mongo: storage.MongoOptions{
			URI:      sc.MongoURI,
			Database: sc.MongoDatabase,
		},
	}
	if cfg.Dir == "" && (cfg.Backend == "" || cfg.Backend == storage.BackendFile) {
		dir, err := dataDir()
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeStorage, err, "resolve data dir")
		}
		cfg.Dir = filepath.Join(dir, "storage")
	}
	store, err := storage.Open(ctx, cfg)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeStorage, err, "open storage")
	}
	loggerFromContext(ctx).Debug("storage opened", "backend", backendName(cfg.Backend))
	return store, nil
}

// newFetcher returns a page fetcher backed by the on-disk snapshot cache.
// When the cache cannot be created pages are always fetched fresh.
func (c *CLI) newFetcher() *httputil.Fetcher {
	dir, err := pagesDir()
	if err != nil {
		return httputil.NewFetcher(nil)
	}
	cache, err := httputil.NewCache(dir, c.config().Pages.TTL.Duration)
	if err != nil {
		c.Logger.Warn("page cache disabled", "error", err)
		return httputil.NewFetcher(nil)
	}
	return httputil.NewFetcher(cache)
}

// openWorkspace opens storage and starts a browser whose lifecycle worker is
// already active.
func (c *CLI) openWorkspace(ctx context.Context, ephemeral bool) (*workspace, error) {
	store, err := c.openStore(ctx, ephemeral)
	if err != nil {
		return nil, err
	}
	repo := selection.NewRepository(store)
	logger := loggerFromContext(ctx)

	b, _, err := host.Start(ctx, host.Options{
		Repo:      repo,
		Fetcher:   c.newFetcher(),
		Selectors: c.config().Selectors,
		Canvas:    c.config().Canvas,
		Logger:    logger,
	})
	if err != nil {
		store.Close()
		return nil, err
	}
	return &workspace{
		store:   store,
		repo:    repo,
		browser: b,
		panel:   panel.New(b, logger),
	}, nil
}

func backendName(b string) string {
	if b == "" {
		return storage.BackendFile
	}
	return b
}

// =============================================================================
// Paths
// =============================================================================

// cacheDir returns the cache directory using XDG standard (~/.cache/stc/).
func cacheDir() (string, error) {
	return xdgDir("XDG_CACHE_HOME", ".cache")
}

// configDir returns the config directory using XDG standard (~/.config/stc/).
func configDir() (string, error) {
	return xdgDir("XDG_CONFIG_HOME", ".config")
}

// dataDir returns the data directory using XDG standard (~/.local/share/stc/).
func dataDir() (string, error) {
	return xdgDir("XDG_DATA_HOME", filepath.Join(".local", "share"))
}

func xdgDir(env, fallback string) (string, error) {
	if base := os.Getenv(env); base != "" {
		return filepath.Join(base, appName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, fallback, appName), nil
}
