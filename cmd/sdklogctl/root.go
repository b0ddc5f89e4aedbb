package main

import (
	"context"
	"time"

	"github.com/lixenwraith/sdklog"
	"github.com/spf13/cobra"
)

// rootOptions are the flags shared by every subcommand
type rootOptions struct {
	configFile string
	overrides  []string
	directory  string
	timeout    time.Duration
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}

	rootCmd := &cobra.Command{
		Use:   "sdklogctl",
		Short: "Inspect and exercise an sdklog file ring",
		Long: `sdklogctl opens the log directory described by a TOML configuration
([sdklog] table) and appends records, prints the ring newest file first,
merges it into an external file, or floods it to observe rotation and drops.`,
		SilenceUsage: true,
	}

	rootCmd.PersistentFlags().StringVarP(&opts.configFile, "config", "c", "", "TOML config file with an [sdklog] table")
	rootCmd.PersistentFlags().StringArrayVar(&opts.overrides, "set", nil, "config override as key=value, repeatable")
	rootCmd.PersistentFlags().StringVarP(&opts.directory, "dir", "d", "", "log directory, overrides the configured one")
	rootCmd.PersistentFlags().DurationVar(&opts.timeout, "timeout", 10*time.Second, "wait limit for file operations")

	rootCmd.AddCommand(
		newEmitCmd(opts),
		newShowCmd(opts),
		newExportCmd(opts),
		newStressCmd(opts),
	)
	return rootCmd
}

// loadConfig resolves file, overrides and flags into a configuration
func (o *rootOptions) loadConfig() (*sdklog.Config, error) {
	cfg := sdklog.DefaultConfig()
	if o.configFile != "" {
		loaded, err := sdklog.NewConfigFromFile(o.configFile)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	}

	if err := cfg.ApplyOverride(o.overrides...); err != nil {
		return nil, err
	}
	if o.directory != "" {
		cfg.Directory = o.directory
	}
	return cfg, nil
}

// openLogger builds a logger whose console output goes to the command's streams
func (o *rootOptions) openLogger(cmd *cobra.Command, mutate func(*sdklog.Config)) (*sdklog.Logger, error) {
	cfg, err := o.loadConfig()
	if err != nil {
		return nil, err
	}
	if mutate != nil {
		mutate(cfg)
	}
	return sdklog.New(cfg, sdklog.WithConsoleWriters(cmd.OutOrStdout(), cmd.ErrOrStderr()))
}

func (o *rootOptions) context(cmd *cobra.Command) (context.Context, context.CancelFunc) {
	parent := cmd.Context()
	if parent == nil {
		parent = context.Background()
	}
	return context.WithTimeout(parent, o.timeout)
}
