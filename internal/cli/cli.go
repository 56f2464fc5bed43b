// Package cli implements the anchorage command-line interface.
package cli

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/matzehuels/anchorage/pkg/buildinfo"
	"github.com/matzehuels/anchorage/pkg/cache"
	"github.com/matzehuels/anchorage/pkg/observability"
	"github.com/matzehuels/anchorage/pkg/store"
)

// =============================================================================
// Constants
// =============================================================================

const (
	// appName is the application name used for directories and display.
	appName = "anchorage"

	// defaultRecordTTL bounds how long stored placements live on disk.
	defaultRecordTTL = 7 * 24 * time.Hour
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
}

// New creates a new CLI instance with a default logger.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{Logger: newLogger(w, level)}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// EnableTrace routes observability hooks to the logger.
func (c *CLI) EnableTrace() {
	hooks := observability.NewLogHooks(c.Logger)
	observability.SetResolverHooks(hooks)
	observability.SetCacheHooks(hooks)
	observability.SetHTTPHooks(hooks)
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:          appName,
		Short:        "Anchorage places menus and tooltips next to the element that opened them",
		Long:         `Anchorage computes where a floating element (menu, tooltip, dropdown) goes relative to its trigger so it stays attached and, where possible, fully visible. It resolves scenario files, watches them for changes, serves placements over HTTP and ships an interactive terminal demo.`,
		Version:      buildinfo.Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			cmd.SetContext(withLogger(cmd.Context(), c.Logger))
		},
	}

	root.SetVersionTemplate(buildinfo.Template())

	// Register all subcommands
	root.AddCommand(c.resolveCommand())
	root.AddCommand(c.watchCommand())
	root.AddCommand(c.initCommand())
	root.AddCommand(c.serveCommand())
	root.AddCommand(c.demoCommand())
	root.AddCommand(c.cacheCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// =============================================================================
// Store Factory
// =============================================================================

// backendFlags selects where placements are stored. Redis wins over SQLite,
// SQLite over the file cache. noCache overrides all of them: a long-running
// command keeps records in memory, a one-shot command stores nothing.
type backendFlags struct {
	redis       string
	sqlite      string
	noCache     bool
	longRunning bool // set by serve
}

// register adds the backend flags to cmd. Defaults come from
// ANCHORAGE_REDIS and ANCHORAGE_SQLITE.
func (b *backendFlags) register(cmd *cobra.Command) {
	noCacheUsage := "validate and report the placement without storing it"
	if b.longRunning {
		noCacheUsage = "keep placements in memory only"
	}
	cmd.Flags().StringVar(&b.redis, "redis", os.Getenv("ANCHORAGE_REDIS"), "Redis address (host:port)")
	cmd.Flags().StringVar(&b.sqlite, "sqlite", os.Getenv("ANCHORAGE_SQLITE"), "SQLite database file")
	cmd.Flags().BoolVar(&b.noCache, "no-cache", false, noCacheUsage)
}

// newStore opens the placement store used by resolve --save and serve.
func (c *CLI) newStore(ctx context.Context, b backendFlags) (*store.Store, error) {
	backend, err := newCache(ctx, b)
	if err != nil {
		return nil, err
	}
	return store.New(backend, defaultRecordTTL), nil
}

func newCache(ctx context.Context, b backendFlags) (cache.Cache, error) {
	switch {
	case b.noCache && b.longRunning:
		return cache.NewMemoryCache(), nil
	case b.noCache:
		return cache.NewNullCache(), nil
	case b.redis != "":
		sp := newSpinnerWithContext(ctx, "Connecting to Redis at "+b.redis)
		sp.Start()
		rc, err := cache.NewRedisCache(ctx, cache.RedisConfig{Addr: b.redis, Prefix: appName + ":"})
		if err != nil {
			sp.StopWithError("Redis unavailable")
			return nil, err
		}
		sp.StopWithSuccess("Connected to Redis")
		return rc, nil
	case b.sqlite != "":
		return cache.NewSQLiteCache(b.sqlite)
	}
	dir, err := cacheDir()
	if err != nil {
		return cache.NewMemoryCache(), nil
	}
	return cache.NewFileCache(dir)
}

// =============================================================================
// Paths
// =============================================================================

// cacheDir returns the cache directory using XDG standard (~/.cache/anchorage/).
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
