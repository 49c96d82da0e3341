package commerce

import (
	"context"
	"sync"
	"time"

	"github.com/charmbracelet/log"
)

// ScoreSubmitter reports scores in the background. Failures are logged and
// never reach the game loop.
type ScoreSubmitter struct {
	client  Client
	timeout time.Duration
	logger  *log.Logger
	wg      sync.WaitGroup
}

// NewScoreSubmitter wraps client. A nil logger falls back to log.Default().
func NewScoreSubmitter(client Client, timeout time.Duration, logger *log.Logger) *ScoreSubmitter {
	if logger == nil {
		logger = log.Default()
	}
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &ScoreSubmitter{client: client, timeout: timeout, logger: logger}
}

// SubmitScore starts a background report of score and returns immediately.
func (s *ScoreSubmitter) SubmitScore(score int) {
	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		ctx, cancel := context.WithTimeout(context.Background(), s.timeout)
		defer cancel()
		if err := s.client.SubmitScore(ctx, score); err != nil {
			s.logger.Debug("score submission failed", "score", score, "error", err)
		}
	}()
}

// Wait blocks until every pending submission has finished.
func (s *ScoreSubmitter) Wait() {
	s.wg.Wait()
}
