// flappy is a Flappy Bird clone for the terminal, with an in-game store
// backed by a hosted commerce service.
//
// Usage:
//
//	flappy play              - Play in the terminal
//	flappy serve             - Start SSH server for remote play
//	flappy scores            - Show the score history
//	flappy catalog           - List store items
//	flappy purchases         - List the player's purchases
//	flappy login             - Print the sign-in link
//	flappy config            - Print the effective configuration
//
// Global flags:
//
//	--fps <rate>        - Set tick rate (default: 60)
//	--seed <value>      - Set RNG seed for reproducible gameplay
//	--db <path>         - Set database path (default: ~/.flappy/flappy.db)
//	--config <path>     - Use a custom config YAML
//	--log-file <path>   - Write logs to a file
//	--log-level <level> - debug, info, warn or error
package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-flappy/internal/config"
)

var (
	// Global flags
	flagFPS      int
	flagSeed     int64
	flagDBPath   string
	flagConfig   string
	flagLogFile  string
	flagLogLevel string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "flappy",
	Short: "Flappy Bird in your terminal",
	Long: `Flappy Bird for the terminal: fly through the pipes, beat your best
score and visit the store.

Available commands:
  play       - Play locally
  serve      - Start SSH server for remote play
  scores     - View the score history
  catalog    - List store items
  purchases  - List your purchases
  login      - Print the sign-in link
  config     - Print the effective configuration

Commerce credentials come from the config file or from the
ONCADE_API_KEY, ONCADE_GAME_ID and ONCADE_API_URL environment variables.

Examples:
  flappy play
  flappy play --seed 42
  flappy serve --ssh :2222
  flappy scores`,
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 60, "Tick rate (frames per second)")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "~/.flappy/flappy.db", "Path to scores database")
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to custom config YAML")
	rootCmd.PersistentFlags().StringVar(&flagLogFile, "log-file", "", "Write logs to this file")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "info", "Log level: debug, info, warn, error")

	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(scoresCmd)
	rootCmd.AddCommand(catalogCmd)
	rootCmd.AddCommand(purchasesCmd)
	rootCmd.AddCommand(loginCmd)
	rootCmd.AddCommand(configCmd)
}

// loadConfig loads the game configuration from --config or the default
// search path.
func loadConfig() (config.FlappyConfig, error) {
	cfg, err := config.Load(flagConfig)
	if err != nil {
		return cfg, fmt.Errorf("cannot load config: %w", err)
	}
	return cfg, nil
}

// newLogger builds the logger for a command. fallback receives logs when
// --log-file is not set; the returned closer releases the log file.
func newLogger(prefix string, fallback io.Writer) (*log.Logger, func(), error) {
	level, err := log.ParseLevel(flagLogLevel)
	if err != nil {
		return nil, nil, fmt.Errorf("invalid --log-level %q: %w", flagLogLevel, err)
	}

	out, closer := fallback, func() {}
	if flagLogFile != "" {
		path, err := config.ExpandHome(flagLogFile)
		if err != nil {
			return nil, nil, err
		}
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return nil, nil, fmt.Errorf("cannot create log directory: %w", err)
		}
		f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
		if err != nil {
			return nil, nil, fmt.Errorf("cannot open log file: %w", err)
		}
		out = f
		closer = func() { f.Close() } //nolint:errcheck // Best-effort close on exit
	}

	logger := log.NewWithOptions(out, log.Options{
		ReportTimestamp: true,
		Prefix:          prefix,
		Level:           level,
	})
	return logger, closer, nil
}
