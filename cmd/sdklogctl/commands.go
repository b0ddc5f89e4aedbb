package main

import (
	"errors"
	"fmt"

	"github.com/lixenwraith/sdklog"
	"github.com/spf13/cobra"
)

func newEmitCmd(opts *rootOptions) *cobra.Command {
	var (
		levelName string
		source    string
		cause     string
	)

	cmd := &cobra.Command{
		Use:   "emit <message>",
		Short: "Append one record to the configured sinks",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			level, err := sdklog.ParseLevel(levelName)
			if err != nil {
				return err
			}
			if level == sdklog.LevelOff {
				return fmt.Errorf("cannot emit a record at level OFF")
			}

			logger, err := opts.openLogger(cmd, nil)
			if err != nil {
				return err
			}

			var causeErr error
			if cause != "" {
				causeErr = errors.New(cause)
			}
			logger.Log(source, level, args[0], causeErr)
			return logger.Shutdown(opts.timeout)
		},
	}

	cmd.Flags().StringVarP(&levelName, "level", "l", "info", "record level: fatal, error, warning, info, debug")
	cmd.Flags().StringVarP(&source, "source", "s", "sdklogctl", "record source tag")
	cmd.Flags().StringVar(&cause, "cause", "", "cause message written as the stacktrace")
	return cmd
}

func newShowCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Print the file ring, newest file first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			logger, err := opts.openLogger(cmd, quietConsole)
			if err != nil {
				return err
			}
			defer logger.Shutdown(opts.timeout)

			ctx, cancel := opts.context(cmd)
			defer cancel()

			logs, err := logger.GetLogs(ctx).Wait(ctx)
			if err != nil {
				return err
			}
			_, err = fmt.Fprint(cmd.OutOrStdout(), logs)
			return err
		},
	}
}

func newExportCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "export <dest>",
		Short: "Append the file ring to an external file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			logger, err := opts.openLogger(cmd, quietConsole)
			if err != nil {
				return err
			}
			defer logger.Shutdown(opts.timeout)

			ctx, cancel := opts.context(cmd)
			defer cancel()

			dest, err := logger.CopyLogs(ctx, args[0]).Wait(ctx)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "exported to %s\n", dest)
			return nil
		},
	}
}

// quietConsole disables the console sink for commands that only read the ring
func quietConsole(cfg *sdklog.Config) {
	cfg.ConsoleLevel = sdklog.LevelOff
	if cfg.FileLevel == sdklog.LevelOff {
		cfg.FileLevel = sdklog.LevelInfo
	}
}
