package cli

import (
	"context"
	"io"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/matzehuels/giftring/pkg/buildinfo"
	"github.com/matzehuels/giftring/pkg/cache"
	"github.com/matzehuels/giftring/pkg/pipeline"
)

// =============================================================================
// Constants
// =============================================================================

const (
	// appName is the application name used for directories and display.
	appName = "giftring"

	// spinnerThreshold is the attempt budget above which generate shows a
	// spinner while searching.
	spinnerThreshold = 5000
)

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

	// ConfigPath overrides the default config file location.
	ConfigPath string

	config *Config
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
		Short: "giftring draws gift-exchange assignments with a chosen cycle shape",
		Long: `giftring assigns every participant exactly one gift recipient. The result
is a set of closed giving cycles whose shape you choose: one big ring, rings
of an exact size, or rings above or below a size. Banned pairings are
avoided where possible and forced pairings are always kept.`,
		Version:      buildinfo.Version,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cmd.SetContext(withLogger(cmd.Context(), c.Logger))
			return nil
		},
	}

	root.SetVersionTemplate(buildinfo.Template())
	root.PersistentFlags().StringVar(&c.ConfigPath, "config", "", "config file (default $XDG_CONFIG_HOME/giftring/config.toml)")

	root.AddCommand(c.generateCommand())
	root.AddCommand(c.checkCommand())
	root.AddCommand(c.cyclesCommand())
	root.AddCommand(c.serveCommand())
	root.AddCommand(c.cacheCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// loadedConfig reads the config file once per process.
func (c *CLI) loadedConfig() (*Config, error) {
	if c.config != nil {
		return c.config, nil
	}
	path := c.ConfigPath
	if path == "" {
		p, err := configPath()
		if err != nil {
			return nil, err
		}
		path = p
	}
	cfg, err := loadConfig(path)
	if err != nil {
		return nil, err
	}
	c.Logger.Debug("loaded config", "path", path, "cache", cfg.Cache.Backend)
	c.config = &cfg
	return c.config, nil
}

// =============================================================================
// Runner Factory
// =============================================================================

// newRunner creates a pipeline runner using the configured cache backend.
// The caller must close the runner's cache.
func (c *CLI) newRunner(ctx context.Context, noCache bool) (*pipeline.Runner, error) {
	cfg, err := c.loadedConfig()
	if err != nil {
		return nil, err
	}
	store, err := newCache(ctx, cfg.Cache, noCache)
	if err != nil {
		return nil, err
	}
	runner := pipeline.NewRunner(store, keyerFor(cfg.Cache), c.Logger)
	runner.TTL = cfg.Cache.TTL
	return runner, nil
}

func newCache(ctx context.Context, cfg CacheConfig, noCache bool) (cache.Cache, error) {
	if noCache {
		return cache.NewNullCache(), nil
	}
	opts := cfg.cacheConfig()
	if opts.Backend == "" || opts.Backend == cache.BackendFile {
		dir, err := cacheDir()
		if err != nil {
			return cache.NewNullCache(), nil
		}
		opts.Dir = dir
	}
	return cache.Open(ctx, opts)
}

func keyerFor(cfg CacheConfig) cache.Keyer {
	if cfg.Namespace == "" {
		return nil
	}
	return cache.NewScopedKeyer(nil, cfg.Namespace+":")
}

// =============================================================================
// Paths
// =============================================================================

// cacheDir returns the cache directory using XDG standard (~/.cache/giftring/).
func cacheDir() (string, error) {
	if cacheHome := os.Getenv("XDG_CACHE_HOME"); cacheHome != "" {
		return filepath.Join(cacheHome, appName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".cache", appName), nil
}

// configPath returns the config file path using XDG standard
// (~/.config/giftring/config.toml).
func configPath() (string, error) {
	if configHome := os.Getenv("XDG_CONFIG_HOME"); configHome != "" {
		return filepath.Join(configHome, appName, "config.toml"), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", appName, "config.toml"), nil
}
