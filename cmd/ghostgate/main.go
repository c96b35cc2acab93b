// ghostgate is a CLI shell around the context-budget engine: it resolves
// the same layered configuration a host session would, and exposes the
// status, registry, and pruning surfaces for inspection from a terminal.
package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/citizenadam/GhostGate/internal/engine"
	"github.com/citizenadam/GhostGate/internal/hostfs"
)

// Set via ldflags at build time.
var version = "dev"

var (
	flagWorkDir string
	flagDebug   bool
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:          "ghostgate",
	Short:        "Context-budget engine for coding-agent sessions",
	Long:         "GhostGate decides which tool schemas a coding agent's model sees and shrinks oversized tool results before they re-enter the conversation.",
	SilenceUsage: true,
	PersistentPreRunE: func(_ *cobra.Command, _ []string) error {
		// .env is optional; absence is the normal case.
		_ = godotenv.Load()
		initLogging()
		if flagWorkDir == "" {
			wd, err := os.Getwd()
			if err != nil {
				return fmt.Errorf("resolve working directory: %w", err)
			}
			flagWorkDir = wd
		}
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&flagWorkDir, "workdir", "C", "", "Working directory for config and registry resolution (default: cwd)")
	rootCmd.PersistentFlags().BoolVarP(&flagDebug, "debug", "d", false, "Enable debug logging")

	rootCmd.Version = version
	rootCmd.SetVersionTemplate(fmt.Sprintf("ghostgate version %s\n", version))

	rootCmd.AddCommand(newStatusCmd())
	rootCmd.AddCommand(newMetricsCmd())
	rootCmd.AddCommand(newConfigCmd())
	rootCmd.AddCommand(newRegistryCmd())
	rootCmd.AddCommand(newSearchCmd())
	rootCmd.AddCommand(newPruneCmd())
}

// initLogging mirrors the host's console behavior: pretty console output on
// a TTY, JSON lines when piped.
func initLogging() {
	level := zerolog.WarnLevel
	if flagDebug {
		level = zerolog.DebugLevel
	}
	zerolog.SetGlobalLevel(level)

	if term.IsTerminal(int(os.Stderr.Fd())) {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
	}
}

// newEngine bootstraps a one-shot session the way a host would. The
// telemetry path is always supplied; recording stays off unless the
// resolved configuration has debug enabled.
func newEngine() *engine.Engine {
	return engine.New(flagWorkDir, os.Getenv, hostfs.OS{},
		engine.WithTelemetryPath(filepath.Join(flagWorkDir, ".ghostgate", "telemetry.jsonl")))
}
