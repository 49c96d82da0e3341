// flappywindow runs the game in a desktop window, or in a browser canvas
// when built for GOOS=js GOARCH=wasm.
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-flappy/internal/config"
	"github.com/vovakirdan/tui-flappy/internal/platform/window"
)

func main() {
	configPath := flag.String("config", "", "Path to custom config YAML")
	seed := flag.Int64("seed", 0, "RNG seed (0 = random)")
	debug := flag.Bool("debug", false, "Enable debug logging")
	flag.Parse()

	logger := log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: true,
		Prefix:          "flappy",
	})
	if *debug {
		logger.SetLevel(log.DebugLevel)
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	scores, closeScores := openScores(logger)
	defer closeScores()

	opts := window.Options{
		Config:   cfg,
		Seed:     *seed,
		Scores:   scores,
		Logger:   logger,
		Navigate: navigator(logger),
	}
	if err := window.Run(opts); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
