package main

import (
	"fmt"
	"io"
	"os"
	"os/user"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/tui-flappy/internal/core"
	"github.com/vovakirdan/tui-flappy/internal/platform/tui"
	"github.com/vovakirdan/tui-flappy/internal/storage"
)

var flagPlayer string

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Play in the terminal",
	Long: `Start the game on the main menu.

Controls:
  Space/Up   - Flap (starts the game from the menu)
  R          - Play again (after game over)
  M/Esc      - Quit to the main menu
  S          - Open the store (main menu)
  T          - Tip the developer (main menu)
  L          - Print the sign-in link (main menu)
  Ctrl+S     - Save a screenshot
  Q/Ctrl+C   - Quit

In the store:
  Up/Down    - Select an item
  Enter      - Buy the selected item
  Wheel      - Scroll
  Esc        - Close

Checkout links are shown under the playfield and copied to the clipboard.

Examples:
  flappy play
  flappy play --seed 42 --fps 30
  flappy play --config ./my-flappy.yaml`,
	Args: cobra.NoArgs,
	RunE: runPlay,
}

func init() {
	playCmd.Flags().StringVar(&flagPlayer, "player", "", "Name recorded in the score history (default: login name)")
}

func runPlay(_ *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	// The game owns the terminal, so logs only go to --log-file.
	logger, closeLog, err := newLogger("flappy", io.Discard)
	if err != nil {
		return err
	}
	defer closeLog()

	width, height := 80, 24 // Defaults
	if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
		width = w
		height = h
	}

	rt := core.RuntimeConfig{
		ScreenW:  width,
		ScreenH:  height,
		TickRate: flagFPS,
		Seed:     flagSeed,
	}

	opts := tui.Options{
		Config:  cfg,
		Runtime: rt,
		Player:  playerName(),
		Logger:  logger,
	}

	// Continue without storage - game still works
	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not open scores database: %v\n", err)
	} else {
		defer store.Close() //nolint:errcheck // Best-effort close on exit
		opts.History = store
		opts.Scores = store
	}

	if err := tui.Run(opts); err != nil {
		return fmt.Errorf("error running game: %w", err)
	}
	return nil
}

func playerName() string {
	if flagPlayer != "" {
		return flagPlayer
	}
	if u, err := user.Current(); err == nil && u.Username != "" {
		return u.Username
	}
	return "local"
}
