package cli

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/spf13/cobra"

	"github.com/matzehuels/railfill/pkg/cache"
)

func (c *CLI) cacheCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cache",
		Short: "Inspect or empty the result cache",
		Long: `Seeded runs that complete are cached for a week, keyed by frame and
parameters. Unseeded runs are never cached.`,
	}
	cmd.AddCommand(c.cacheClearCommand(), c.cachePathCommand())
	return cmd
}

func (c *CLI) cacheClearCommand() *cobra.Command {
	var redisURL string
	cmd := &cobra.Command{
		Use:   "clear",
		Short: "Delete every cached result",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if redisURL == "" {
				redisURL = os.Getenv(redisURLEnv)
			}
			if redisURL != "" {
				return clearRedis(cmd.Context(), redisURL)
			}
			return clearFiles(cmd.Context())
		},
	}
	cmd.Flags().StringVar(&redisURL, "redis", "", "clear the Redis cache at this URL instead of the file cache (default $"+redisURLEnv+")")
	return cmd
}

func clearRedis(ctx context.Context, url string) error {
	rc, err := cache.NewRedisCache(ctx, url)
	if err != nil {
		return err
	}
	defer rc.Close()
	if err := rc.Clear(ctx); err != nil {
		return err
	}
	printSuccess("Cleared cached results")
	printDetail("Redis: %s", url)
	return nil
}

func clearFiles(ctx context.Context) error {
	dir, err := cacheDir()
	if err != nil {
		return fmt.Errorf("locate cache: %w", err)
	}
	if _, err := os.Stat(dir); errors.Is(err, fs.ErrNotExist) {
		printInfo("Cache is empty")
		return nil
	}
	fc, err := cache.NewFileCache(dir)
	if err != nil {
		return err
	}
	n := fc.Len()
	if err := fc.Clear(ctx); err != nil {
		return err
	}
	printSuccess("Cleared %d cached results", n)
	printDetail("Directory: %s", dir)
	return nil
}

func (c *CLI) cachePathCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "path",
		Short: "Print the file cache directory",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			dir, err := cacheDir()
			if err != nil {
				return fmt.Errorf("locate cache: %w", err)
			}
			fmt.Fprintln(stdout, dir)
			return nil
		},
	}
}
