//go:build !js

package main

import (
	"fmt"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-flappy/internal/config"
	"github.com/vovakirdan/tui-flappy/internal/highscore"
	"github.com/vovakirdan/tui-flappy/internal/storage"
)

// openScores keeps the high score in the same database as the terminal game.
func openScores(logger *log.Logger) (highscore.KV, func()) {
	store, err := storage.Open(config.UserPath("flappy.db"))
	if err != nil {
		logger.Warn("could not open scores database", "error", err)
		return nil, func() {}
	}
	return store, func() { store.Close() } //nolint:errcheck // Best-effort close on exit
}

// navigator prints links; a desktop window has no page to redirect.
func navigator(logger *log.Logger) func(string) {
	return func(url string) {
		logger.Info("open in your browser", "url", url)
		fmt.Println(url)
	}
}
