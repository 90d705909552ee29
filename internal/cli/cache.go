package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/matzehuels/timelane/pkg/cache"
)

func (c *CLI) cacheCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cache",
		Short: "Manage the layout cache",
	}
	cmd.AddCommand(c.cacheClearCommand())
	cmd.AddCommand(c.cachePathCommand())
	return cmd
}

func (c *CLI) cacheClearCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "clear",
		Short: "Remove all cached layouts",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := c.loadConfig()
			if err != nil {
				return err
			}
			store, err := cache.Open(cmd.Context(), cfg.CacheSettings())
			if err != nil {
				return fmt.Errorf("open cache: %w", err)
			}
			defer store.Close()

			clearer, ok := store.(cache.Clearer)
			if !ok {
				printInfo("Backend %s keeps nothing to clear", cfg.CacheSettings().Backend)
				return nil
			}
			n, err := clearer.Clear(cmd.Context())
			if err != nil {
				return fmt.Errorf("clear cache: %w", err)
			}
			printSuccess("Removed %d cached layouts", n)
			return nil
		},
	}
}

func (c *CLI) cachePathCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "path",
		Short: "Print where layouts are cached",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := c.loadConfig()
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), cacheLocation(cfg.CacheSettings()))
			return nil
		},
	}
}

// cacheLocation describes a backend's storage location.
func cacheLocation(s cache.Settings) string {
	switch s.Backend {
	case cache.BackendNone:
		return "none"
	case cache.BackendRedis:
		return fmt.Sprintf("redis://%s/%d (prefix %s)", s.RedisAddr, s.RedisDB, cache.RedisPrefix)
	case cache.BackendMongo:
		return fmt.Sprintf("%s (%s.%s)", s.MongoURI, s.MongoDatabase, s.MongoCollection)
	}
	return s.Dir
}
