// Package flappy implements a Flappy Bird-style game: a bird that must
// navigate through gaps in vertical pipes, a persisted high score and the
// menu around it. Session owns all game state; platforms drive it one step
// at a time and render what it exposes.
package flappy

import (
	"math/rand"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-flappy/internal/config"
	"github.com/vovakirdan/tui-flappy/internal/core"
	"github.com/vovakirdan/tui-flappy/internal/engine"
	"github.com/vovakirdan/tui-flappy/internal/highscore"
)

// Session is one player's game: the world, the bird, the pipes, the
// scoreboard and the state machine tying them together.
type Session struct {
	cfg    config.FlappyConfig
	dt     float64
	rng    *rand.Rand
	hook   ScoreHook
	scores *highscore.Store
	logger *log.Logger

	world     *engine.World
	ground    *engine.Body
	player    *Player
	obstacles *Obstacles
	board     *Scoreboard

	state     State
	hud       HUD
	newRecord bool
	ready     bool // Idle after a restart: the next flap starts a game
	suspended bool
	frame     int
}

// Option customizes a Session.
type Option func(*Session)

// WithScoreHook reports every score change to hook.
func WithScoreHook(hook ScoreHook) Option {
	return func(s *Session) {
		if hook != nil {
			s.hook = hook
		}
	}
}

// WithLogger sets the session logger.
func WithLogger(logger *log.Logger) Option {
	return func(s *Session) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// NewSession creates a session on the main menu. scores must already be
// loaded; nil keeps the high score in memory only.
func NewSession(cfg config.FlappyConfig, rt core.RuntimeConfig, scores *highscore.Store, opts ...Option) *Session {
	s := &Session{
		cfg:    cfg,
		dt:     rt.TickSeconds(),
		rng:    rand.New(rand.NewSource(rt.Seed)),
		hook:   NopScoreHook{},
		scores: scores,
		logger: log.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.scores == nil {
		s.scores = highscore.New(highscore.NewMemoryKV(), s.logger)
	}

	s.world = engine.NewWorld(cfg.World.Width, cfg.World.Height, cfg.World.Gravity)
	s.ground = s.world.Add(KeyGround, cfg.World.Width/2, cfg.World.GroundY, cfg.World.Width, cfg.World.GroundHeight)
	s.obstacles = NewObstacles(cfg.Obstacles, s.world, s.rng)
	s.board = NewScoreboard(cfg.Scoring, cfg.World.Width/2)

	s.prepare(true)
	return s
}

// prepare tears down the current playthrough and builds a fresh bird in the
// idle pose. menu controls whether the main menu entries are shown.
func (s *Session) prepare(menu bool) {
	s.obstacles.Clear()
	s.board.Reset()
	s.obstacles.SetPalette(s.board.Palette())

	if s.player != nil {
		s.player.Destroy()
	}
	s.player = NewPlayer(s.cfg.Player, s.world, BirdColor(s.rng.Intn(3)))

	bird := s.player.Body()
	s.world.Collider(bird, s.ground, s.onCrash)
	s.world.Collider(bird, s.obstacles.PipeGroup(), s.onCrash)
	s.world.Overlap(bird, s.obstacles.GapGroup(), s.onGapPassed)

	s.ground.Play(AnimGroundMoving)
	s.world.Resume()

	s.hud = HUD{
		IdleMessage: true,
		StoreButton: menu,
		TipButton:   menu,
	}
	s.newRecord = false
	s.ready = !menu
	s.state = StateIdle
}

// Start begins a playthrough. Only valid from Idle.
func (s *Session) Start() bool {
	if s.state != StateIdle {
		return false
	}

	s.obstacles.Clear()
	s.board.Reset()
	s.board.Show()
	s.obstacles.SetPalette(s.board.Palette())

	s.hud.IdleMessage = false
	s.hud.StoreButton = false
	s.hud.TipButton = false

	s.player.Launch()
	s.state = StatePlaying
	s.ready = false
	s.obstacles.Spawn()

	s.logger.Debug("game started", "bird", s.player.Color())
	return true
}

// TriggerGameOver ends the playthrough. Only valid from Playing.
func (s *Session) TriggerGameOver() bool {
	if s.state != StatePlaying {
		return false
	}

	s.world.Pause()
	s.player.Stop()
	s.ground.Play(AnimGroundStop)

	score := s.board.Score()
	s.newRecord = false
	if s.scores.IsNew(score) {
		if err := s.scores.Save(score); err != nil {
			s.logger.Warn("cannot save high score", "score", score, "error", err)
		}
		s.newRecord = true
	}

	s.hud = HUD{
		GameOverBanner: true,
		NewRecordText:  s.newRecord,
		HighScoreText:  true,
		RestartButton:  true,
		MenuButton:     true,
	}
	s.state = StateGameOver

	s.logger.Debug("game over", "score", score, "high_score", s.scores.Best(), "new_record", s.newRecord)
	return true
}

// Restart prepares a new playthrough without going through the menu.
// Only valid from GameOver. The session waits in Idle for the next flap.
func (s *Session) Restart() bool {
	if s.state != StateGameOver {
		return false
	}
	s.prepare(false)
	return true
}

// ReturnToMenu abandons the playthrough and shows the main menu. Valid from
// GameOver and Playing.
func (s *Session) ReturnToMenu() bool {
	if s.state != StateGameOver && s.state != StatePlaying {
		return false
	}
	s.prepare(true)
	return true
}

// Flap handles the flap input. From Idle it starts the game first; after
// game over it does nothing.
func (s *Session) Flap() bool {
	if s.suspended || s.state == StateGameOver {
		return false
	}
	if s.state == StateIdle {
		s.Start()
	}
	s.player.Flap()
	return true
}

// Step applies one frame of input and advances the simulation.
func (s *Session) Step(in core.InputFrame) core.StepResult {
	if !s.suspended {
		switch {
		case in.Has(core.ActionRestart):
			s.Restart()
		case in.Has(core.ActionMenu):
			s.ReturnToMenu()
		case in.Has(core.ActionFlap):
			s.Flap()
		}
	}

	s.Tick()

	return core.StepResult{State: s.GameState()}
}

// Tick advances the simulation by one step. It does nothing while the
// session is suspended.
func (s *Session) Tick() {
	if s.suspended {
		return
	}
	s.frame++

	if s.state == StatePlaying {
		s.player.Tick()
		s.obstacles.Sweep()
		s.obstacles.Tick()
	}

	s.world.Step(s.dt)
}

func (s *Session) onCrash(_, _ *engine.Body) {
	s.TriggerGameOver()
}

func (s *Session) onGapPassed(_, gap *engine.Body) {
	if s.state != StatePlaying {
		return
	}
	gap.Destroy()

	if s.board.Increment() {
		s.obstacles.SetPalette(s.board.Palette())
	}
	s.hook.SubmitScore(s.board.Score())
}

// Suspend stops the simulation, typically while the store is open.
func (s *Session) Suspend() {
	s.suspended = true
}

// Resume restarts a suspended simulation.
func (s *Session) Resume() {
	s.suspended = false
}

// Suspended reports whether the simulation is suspended.
func (s *Session) Suspended() bool {
	return s.suspended
}

// GameState returns the summary the platform needs after each step.
func (s *Session) GameState() core.GameState {
	return core.GameState{
		Score:     s.board.Score(),
		HighScore: s.scores.Best(),
		GameOver:  s.state == StateGameOver,
		NewRecord: s.newRecord,
		Paused:    s.suspended,
	}
}

// State returns the current phase.
func (s *Session) State() State { return s.state }

// Ready reports whether the session is idle after a restart.
func (s *Session) Ready() bool { return s.ready }

// Score returns the current score.
func (s *Session) Score() int { return s.board.Score() }

// HighScore returns the best known score.
func (s *Session) HighScore() int { return s.scores.Best() }

// NewRecord reports whether the last game over set a new high score.
func (s *Session) NewRecord() bool { return s.newRecord }

// Night reports whether the night background is showing.
func (s *Session) Night() bool { return s.board.Night() }

// Palette returns the current pipe palette.
func (s *Session) Palette() Palette { return s.board.Palette() }

// Bird returns the current bird skin.
func (s *Session) Bird() BirdColor { return s.player.Color() }

// Player returns the bird body.
func (s *Session) Player() *engine.Body { return s.player.Body() }

// Ground returns the ground body.
func (s *Session) Ground() *engine.Body { return s.ground }

// Pipes returns the live pipe bodies.
func (s *Session) Pipes() []*engine.Body { return s.obstacles.Pipes() }

// Gaps returns the live gap sensors.
func (s *Session) Gaps() []*engine.Body { return s.obstacles.Gaps() }

// Glyphs returns the scoreboard digits.
func (s *Session) Glyphs() []Glyph { return s.board.Glyphs() }

// HUD returns the visibility of the menu and game-over elements.
func (s *Session) HUD() HUD { return s.hud }

// Frame returns the number of simulated steps.
func (s *Session) Frame() int { return s.frame }

// Config returns the game configuration.
func (s *Session) Config() config.FlappyConfig { return s.cfg }
