//go:build js

package main

import (
	"syscall/js"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-flappy/internal/highscore"
)

// openScores keeps the high score in the browser's localStorage.
func openScores(logger *log.Logger) (highscore.KV, func()) {
	ls, err := highscore.NewLocalStorage()
	if err != nil {
		logger.Warn("localStorage unavailable, high score will not persist", "error", err)
		return nil, func() {}
	}
	return ls, func() {}
}

// navigator sends the page to checkout, tip and login URLs.
func navigator(_ *log.Logger) func(string) {
	return func(url string) {
		js.Global().Get("window").Get("location").Set("href", url)
	}
}
