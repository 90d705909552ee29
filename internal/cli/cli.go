// Package cli implements the timelane command-line interface.
//
// Commands:
//   - layout: compute a layout document from an item document
//   - inspect: summarise a layout document row by row
//   - serve: run the HTTP API
//   - cache: clear the layout cache or print its location
//   - config: print the effective configuration or its path
//
// All commands accept --verbose (-v) for debug logging and --config to
// select a configuration file.
package cli

import (
	"context"
	"fmt"
	"io"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/matzehuels/timelane/pkg/buildinfo"
	"github.com/matzehuels/timelane/pkg/cache"
	"github.com/matzehuels/timelane/pkg/config"
	"github.com/matzehuels/timelane/pkg/pipeline"
)

const appName = "timelane"

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// CLI holds shared state for all commands.
type CLI struct {
	Logger     *log.Logger
	configPath string
}

// New creates a CLI that logs to w at level.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{Logger: newLogger(w, level)}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// RootCommand creates the root command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:          appName,
		Short:        "Timelane lays out timelines into rows and label lanes",
		Long:         `Timelane packs timed items into rows, places floating labels for short events between rows, and audits the result for overlaps. The output is a layout document any renderer can draw.`,
		Version:      buildinfo.Version,
		SilenceUsage: true,
	}
	root.SetVersionTemplate(buildinfo.Template())
	root.PersistentFlags().StringVar(&c.configPath, "config", "", "config file (default: "+config.DefaultPath()+")")

	root.AddCommand(c.layoutCommand())
	root.AddCommand(c.inspectCommand())
	root.AddCommand(c.serveCommand())
	root.AddCommand(c.cacheCommand())
	root.AddCommand(c.configCommand())
	root.AddCommand(c.completionCommand())

	return root
}

func (c *CLI) loadConfig() (*config.Config, error) {
	cfg, err := config.Load(c.configPath)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	return cfg, nil
}

// newRunner creates a pipeline runner over the configured cache backend.
func (c *CLI) newRunner(ctx context.Context, cfg *config.Config, noCache bool) (*pipeline.Runner, error) {
	if noCache {
		return pipeline.NewRunner(cache.NewNullCache(), nil, c.Logger), nil
	}
	store, err := cache.Open(ctx, cfg.CacheSettings())
	if err != nil {
		return nil, fmt.Errorf("open cache: %w", err)
	}
	c.Logger.Debug("cache ready", "backend", cfg.Cache.Backend)
	return pipeline.NewRunner(store, nil, c.Logger), nil
}
