package main

import (
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/ironsheep/image-editor/internal/editor"
	"github.com/ironsheep/image-editor/internal/server"
)

// Version information - set by ldflags during build
var (
	Version   = "dev"
	BuildTime = "unknown"
	GitCommit = "unknown"
)

const logLevelEnv = "IMAGE_EDITOR_LOG_LEVEL"

func main() {
	if err := newRootCmd().Execute(); err != nil && !errors.Is(err, errReported) {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var logLevel string

	root := &cobra.Command{
		Use:   "image-editor",
		Short: "Stateful raster image editor",
		Long: "image-editor applies crop, rotate, flip, text and shape operations to raster images,\n" +
			"either as one-shot commands or as an MCP server over stdin/stdout.\n\n" +
			"Logs go to stderr. Set " + logLevelEnv + " or --log-level to debug, info, warn or error.",
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			if !cmd.Flags().Changed("log-level") {
				if env := os.Getenv(logLevelEnv); env != "" {
					logLevel = env
				}
			}
			setupLogging(logLevel)
		},
	}
	root.PersistentFlags().StringVar(&logLevel, "log-level", "warn", "log level: debug, info, warn or error")

	root.AddCommand(newExecCmd(), newServeCmd(), newVersionCmd())
	return root
}

func newServeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the MCP server on stdin/stdout",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			editor.Logger().Info("starting MCP server", "version", Version, "built", BuildTime, "commit", GitCommit)
			return server.New(Version).Run()
		},
	}
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "image-editor %s\n", Version)
			fmt.Fprintf(out, "  Build time: %s\n", BuildTime)
			fmt.Fprintf(out, "  Git commit: %s\n", GitCommit)
		},
	}
}

// setupLogging installs a text handler on stderr; stdout carries results.
// An unknown level falls back to warn.
func setupLogging(level string) {
	lvl := slog.LevelWarn
	bad := lvl.UnmarshalText([]byte(strings.TrimSpace(level))) != nil
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: lvl}))
	editor.SetLogger(logger)
	if bad {
		logger.Warn("unknown log level, using warn", "level", level)
	}
}
