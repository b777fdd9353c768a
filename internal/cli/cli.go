package cli

import (
	"context"
	"io"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/matzehuels/railfill/pkg/buildinfo"
	"github.com/matzehuels/railfill/pkg/cache"
	"github.com/matzehuels/railfill/pkg/pipeline"
)

// =============================================================================
// Constants
// =============================================================================

const (
	// appName names the binary and its cache directory.
	appName = "railfill"

	// redisURLEnv names the environment variable read when --redis is empty.
	redisURLEnv = "RAILFILL_REDIS_URL"
)

// Levels accepted by [New].
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// =============================================================================
// CLI
// =============================================================================

// CLI carries what every subcommand shares.
type CLI struct {
	Logger *log.Logger
}

// New returns a CLI logging to w at level.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{Logger: newLogger(w, level)}
}

func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// RootCommand assembles the command tree.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:          appName,
		Short:        "Railfill generates infill rods for railing frames",
		Long:         `Railfill fills a railing frame with straight rods across one or more layers, evaluates the arrangement and prints a bill of materials.`,
		Version:      buildinfo.Version,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cmd.SetContext(withLogger(cmd.Context(), c.Logger))
			return nil
		},
	}

	root.SetVersionTemplate(buildinfo.Template())

	root.AddCommand(c.generateCommand())
	root.AddCommand(c.holesCommand())
	root.AddCommand(c.cacheCommand())
	root.AddCommand(c.serveCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// =============================================================================
// Runner
// =============================================================================

// cacheOptions selects the result cache backend and key namespace.
type cacheOptions struct {
	noCache   bool
	redisURL  string
	namespace string
}

func (o *cacheOptions) register(cmd *cobra.Command) {
	cmd.Flags().BoolVar(&o.noCache, "no-cache", false, "disable the result cache")
	cmd.Flags().StringVar(&o.redisURL, "redis", "", "cache results in Redis at this URL (default $"+redisURLEnv+", else the file cache)")
	cmd.Flags().StringVar(&o.namespace, "cache-namespace", "", "prefix for cache keys, to keep deployments sharing a backend apart")
}

// keyer returns the default keyer, scoped when a namespace is set.
func (o cacheOptions) keyer() cache.Keyer {
	if o.namespace == "" {
		return cache.NewDefaultKeyer()
	}
	return cache.NewScopedKeyer(nil, o.namespace+":")
}

// newRunner wires the selected cache into a pipeline runner.
func (c *CLI) newRunner(ctx context.Context, opts cacheOptions) (*pipeline.Runner, error) {
	store, err := newCache(ctx, opts)
	if err != nil {
		return nil, err
	}
	return pipeline.NewRunner(store, opts.keyer(), c.Logger), nil
}

func newCache(ctx context.Context, opts cacheOptions) (cache.Cache, error) {
	if opts.noCache {
		return cache.NewNullCache(), nil
	}
	url := opts.redisURL
	if url == "" {
		url = os.Getenv(redisURLEnv)
	}
	if url != "" {
		return cache.NewRedisCache(ctx, url)
	}
	dir, err := cacheDir()
	if err != nil {
		return cache.NewNullCache(), nil
	}
	return cache.NewFileCache(dir)
}

// =============================================================================
// Paths
// =============================================================================

// cacheDir is $XDG_CACHE_HOME/railfill, falling back to ~/.cache/railfill.
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
