package flappy

import (
	"io"
	"strings"
	"testing"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-flappy/internal/config"
	"github.com/vovakirdan/tui-flappy/internal/core"
	"github.com/vovakirdan/tui-flappy/internal/engine"
	"github.com/vovakirdan/tui-flappy/internal/highscore"
)

type recordingHook struct {
	scores []int
}

func (h *recordingHook) SubmitScore(score int) {
	h.scores = append(h.scores, score)
}

func newTestSession(t *testing.T, kv highscore.KV, opts ...Option) *Session {
	t.Helper()
	logger := log.New(io.Discard)
	scores := highscore.New(kv, logger)
	scores.Load()
	rt := core.RuntimeConfig{ScreenW: 80, ScreenH: 24, TickRate: 60, Seed: 42}
	opts = append([]Option{WithLogger(logger)}, opts...)
	return NewSession(config.DefaultFlappyConfig(), rt, scores, opts...)
}

// passGaps scores n points as if the bird flew through n gaps.
func passGaps(s *Session, n int) {
	for i := 0; i < n; i++ {
		gap := s.obstacles.GapGroup().Create(KeyGap, 0, 0, 1, 1)
		s.onGapPassed(s.Player(), gap)
	}
}

func TestNewSessionShowsMenu(t *testing.T) {
	s := newTestSession(t, highscore.NewMemoryKV())

	if s.State() != StateIdle {
		t.Fatalf("State() = %v, expected Idle", s.State())
	}
	hud := s.HUD()
	if !hud.IdleMessage || !hud.StoreButton || !hud.TipButton {
		t.Errorf("menu HUD = %+v", hud)
	}
	if hud.GameOverBanner || hud.RestartButton || hud.MenuButton {
		t.Errorf("game over elements visible on menu: %+v", hud)
	}
	if s.Ready() {
		t.Error("fresh session should not be in the ready state")
	}
	if len(s.Pipes()) != 0 || len(s.Gaps()) != 0 {
		t.Error("no obstacles expected before start")
	}
	if s.Player().AllowGravity {
		t.Error("idle bird should not fall")
	}
}

func TestStart(t *testing.T) {
	s := newTestSession(t, highscore.NewMemoryKV())

	if !s.Start() {
		t.Fatal("Start() from Idle should succeed")
	}
	if s.State() != StatePlaying {
		t.Fatalf("State() = %v, expected Playing", s.State())
	}
	if len(s.Pipes()) != 2 || len(s.Gaps()) != 1 {
		t.Errorf("expected one pair on start, got %d pipes and %d gaps", len(s.Pipes()), len(s.Gaps()))
	}
	if s.Score() != 0 {
		t.Errorf("Score() = %d, expected 0", s.Score())
	}

	glyphs := s.Glyphs()
	if len(glyphs) != 1 || glyphs[0] != (Glyph{Digit: 0, X: 144, Y: 30}) {
		t.Errorf("Glyphs() = %+v, expected a single 0", glyphs)
	}

	hud := s.HUD()
	if hud.IdleMessage || hud.StoreButton || hud.TipButton {
		t.Errorf("menu still visible while playing: %+v", hud)
	}

	bird := s.Player()
	if bird.Pos != (engine.Vec{X: 60, Y: 265}) || bird.Vel != (engine.Vec{}) || bird.Angle != 0 {
		t.Errorf("bird not reset: pos %v vel %v angle %v", bird.Pos, bird.Vel, bird.Angle)
	}
	if !bird.AllowGravity {
		t.Error("bird should fall while playing")
	}

	if s.Start() {
		t.Error("Start() while Playing should be ignored")
	}
}

func TestInvalidTransitionsAreIgnored(t *testing.T) {
	s := newTestSession(t, highscore.NewMemoryKV())

	if s.TriggerGameOver() || s.Restart() || s.ReturnToMenu() {
		t.Error("only Start is valid from Idle")
	}
	if s.State() != StateIdle {
		t.Fatalf("State() = %v after ignored calls", s.State())
	}

	s.Start()
	if s.Restart() {
		t.Error("Restart() from Playing should be ignored")
	}

	s.TriggerGameOver()
	if s.Start() || s.TriggerGameOver() || s.Flap() {
		t.Error("Start, TriggerGameOver and Flap are not valid after game over")
	}
	if s.State() != StateGameOver {
		t.Errorf("State() = %v, expected GameOver", s.State())
	}
}

func TestFirstFlapScenario(t *testing.T) {
	hook := &recordingHook{}
	s := newTestSession(t, highscore.NewMemoryKV(), WithScoreHook(hook))

	if !s.Flap() {
		t.Fatal("first flap should be accepted")
	}
	if s.State() != StatePlaying {
		t.Fatalf("State() = %v, expected Playing", s.State())
	}
	if len(s.Pipes()) != 2 || len(s.Gaps()) != 1 {
		t.Fatalf("first pair not spawned: %d pipes, %d gaps", len(s.Pipes()), len(s.Gaps()))
	}

	bird := s.Player()
	if bird.Vel.Y != -400 || bird.Angle != -15 || s.player.Grace() != 5 {
		t.Errorf("flap not applied: vy %v angle %v grace %d", bird.Vel.Y, bird.Angle, s.player.Grace())
	}

	// Put the first gap sensor on the bird and step once.
	gap := s.Gaps()[0]
	gap.SetPosition(bird.Pos.X, bird.Pos.Y)
	s.Tick()

	if s.Score() != 1 {
		t.Fatalf("Score() = %d, expected 1", s.Score())
	}
	if len(hook.scores) != 1 || hook.scores[0] != 1 {
		t.Errorf("hook saw %v, expected [1]", hook.scores)
	}
	if gap.Alive() || len(s.Gaps()) != 0 {
		t.Error("passed gap should be destroyed")
	}
	if s.State() != StatePlaying {
		t.Errorf("State() = %v, expected Playing", s.State())
	}
}

func TestFallingOntoGroundEndsGame(t *testing.T) {
	s := newTestSession(t, highscore.NewMemoryKV())
	s.Start()

	for i := 0; i < 1000 && s.State() == StatePlaying; i++ {
		s.Tick()
	}
	if s.State() != StateGameOver {
		t.Fatalf("State() = %v, expected GameOver after falling", s.State())
	}

	hud := s.HUD()
	if !hud.GameOverBanner || !hud.HighScoreText || !hud.RestartButton || !hud.MenuButton {
		t.Errorf("game over HUD = %+v", hud)
	}
	if hud.StoreButton || hud.NewRecordText {
		t.Errorf("unexpected HUD elements: %+v", hud)
	}
	if s.NewRecord() {
		t.Error("a score of 0 is never a record")
	}
	if s.Player().Anim() != s.Bird().StopAnim() {
		t.Errorf("bird anim = %q, expected %q", s.Player().Anim(), s.Bird().StopAnim())
	}
	if s.Ground().Anim() != AnimGroundStop {
		t.Errorf("ground anim = %q", s.Ground().Anim())
	}

	// The world is paused: nothing moves any more.
	pos := s.Player().Pos
	for i := 0; i < 10; i++ {
		s.Tick()
	}
	if s.Player().Pos != pos {
		t.Error("bird moved after game over")
	}
}

func TestHighScoreRecordSequence(t *testing.T) {
	kv := highscore.NewMemoryKV()
	kv.Set(highscore.Key, "5")
	s := newTestSession(t, kv)

	if s.HighScore() != 5 {
		t.Fatalf("HighScore() = %d, expected 5", s.HighScore())
	}

	s.Start()
	passGaps(s, 7)
	s.TriggerGameOver()

	if !s.NewRecord() || !s.HUD().NewRecordText {
		t.Error("7 over 5 should be a new record")
	}
	if s.HighScore() != 7 {
		t.Errorf("HighScore() = %d, expected 7", s.HighScore())
	}
	if v, _, _ := kv.Get(highscore.Key); v != "7" {
		t.Errorf("stored high score = %q, expected 7", v)
	}

	s.Restart()
	s.Start()
	passGaps(s, 3)
	s.TriggerGameOver()

	if s.NewRecord() || s.HUD().NewRecordText {
		t.Error("3 after 7 must not be a record")
	}
	if s.HighScore() != 7 {
		t.Errorf("HighScore() = %d, expected 7", s.HighScore())
	}
}

func TestThemeToggle(t *testing.T) {
	s := newTestSession(t, highscore.NewMemoryKV())
	s.Start()

	passGaps(s, 9)
	if s.Night() || s.Palette() != PaletteGreen {
		t.Fatal("theme changed before 10 points")
	}

	passGaps(s, 1)
	if !s.Night() || s.Palette() != PaletteRed {
		t.Fatal("theme should switch at 10 points")
	}

	s.obstacles.Spawn()
	pipes := s.Pipes()
	last := pipes[len(pipes)-1]
	if last.Name != PaletteRed.PipeKey(false) {
		t.Errorf("new pipe key = %q, expected the red palette", last.Name)
	}

	passGaps(s, 10)
	if s.Night() || s.Palette() != PaletteGreen {
		t.Error("theme should switch back at 20 points")
	}
}

func TestScoringIgnoredOutsidePlaying(t *testing.T) {
	hook := &recordingHook{}
	s := newTestSession(t, highscore.NewMemoryKV(), WithScoreHook(hook))

	passGaps(s, 1)
	if s.Score() != 0 {
		t.Error("scoring while Idle should be ignored")
	}

	s.Start()
	s.TriggerGameOver()
	passGaps(s, 1)
	if s.Score() != 0 || len(hook.scores) != 0 {
		t.Error("scoring after game over should be ignored")
	}
}

func TestRestartWaitsInReadyIdle(t *testing.T) {
	s := newTestSession(t, highscore.NewMemoryKV())
	s.Start()
	passGaps(s, 4)
	oldBird := s.Player()
	s.TriggerGameOver()

	if !s.Restart() {
		t.Fatal("Restart() from GameOver should succeed")
	}
	if s.State() != StateIdle || !s.Ready() {
		t.Fatalf("State() = %v ready=%v, expected ready Idle", s.State(), s.Ready())
	}

	hud := s.HUD()
	if !hud.IdleMessage || hud.StoreButton || hud.TipButton || hud.GameOverBanner {
		t.Errorf("HUD after restart = %+v", hud)
	}
	if oldBird.Alive() {
		t.Error("old bird should be destroyed")
	}
	if s.Player() == oldBird || !s.Player().Alive() {
		t.Error("a fresh bird should be created")
	}
	if s.Player().AllowGravity {
		t.Error("restarted bird should wait in the idle pose")
	}
	if s.Score() != 0 || len(s.Pipes()) != 0 || len(s.Glyphs()) != 0 {
		t.Error("playthrough state not cleared")
	}

	s.Flap()
	if s.State() != StatePlaying || s.Score() != 0 {
		t.Errorf("flap after restart: state %v score %d", s.State(), s.Score())
	}
}

func TestReturnToMenu(t *testing.T) {
	tests := []struct {
		name  string
		setup func(*Session)
	}{
		{"from playing", func(s *Session) { s.Start() }},
		{"from game over", func(s *Session) { s.Start(); s.TriggerGameOver() }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := newTestSession(t, highscore.NewMemoryKV())
			tt.setup(s)
			passGaps(s, 2)

			if !s.ReturnToMenu() {
				t.Fatal("ReturnToMenu() should succeed")
			}
			if s.State() != StateIdle || s.Ready() {
				t.Errorf("State() = %v ready=%v, expected menu Idle", s.State(), s.Ready())
			}
			hud := s.HUD()
			if !hud.StoreButton || !hud.TipButton || !hud.IdleMessage {
				t.Errorf("menu HUD = %+v", hud)
			}
			if s.Score() != 0 || len(s.Pipes()) != 0 || len(s.Gaps()) != 0 {
				t.Error("playthrough not torn down")
			}
		})
	}
}

func TestStepInputs(t *testing.T) {
	s := newTestSession(t, highscore.NewMemoryKV())

	in := core.NewInputFrame()
	in.Set(core.ActionFlap)
	s.Step(in)
	if s.State() != StatePlaying {
		t.Fatalf("flap input: State() = %v", s.State())
	}

	s.TriggerGameOver()
	in.Clear()
	in.Set(core.ActionRestart)
	res := s.Step(in)
	if s.State() != StateIdle || res.State.GameOver {
		t.Errorf("restart input: State() = %v", s.State())
	}

	s.Start()
	in.Clear()
	in.Set(core.ActionMenu)
	s.Step(in)
	if s.State() != StateIdle || !s.HUD().StoreButton {
		t.Errorf("menu input: State() = %v HUD %+v", s.State(), s.HUD())
	}
}

func TestSuspendStopsSimulation(t *testing.T) {
	s := newTestSession(t, highscore.NewMemoryKV())
	s.Start()
	s.Tick()

	s.Suspend()
	pos := s.Player().Pos
	frame := s.Frame()
	for i := 0; i < 10; i++ {
		s.Tick()
	}
	if s.Player().Pos != pos || s.Frame() != frame {
		t.Error("suspended session kept stepping")
	}
	if s.Flap() {
		t.Error("flap should be ignored while suspended")
	}
	if !s.GameState().Paused {
		t.Error("GameState().Paused should report the suspension")
	}

	s.Resume()
	s.Tick()
	if s.Player().Pos == pos {
		t.Error("resumed session should step")
	}
}

func TestSessionDeterminism(t *testing.T) {
	run := func() (int, State, engine.Vec, int) {
		s := newTestSession(t, highscore.NewMemoryKV())
		for i := 0; i < 600; i++ {
			in := core.NewInputFrame()
			if i%20 == 0 {
				in.Set(core.ActionFlap)
			}
			s.Step(in)
		}
		return s.Score(), s.State(), s.Player().Pos, len(s.Pipes())
	}

	score1, state1, pos1, pipes1 := run()
	score2, state2, pos2, pipes2 := run()
	if score1 != score2 || state1 != state2 || pos1 != pos2 || pipes1 != pipes2 {
		t.Errorf("runs differ: (%d %v %v %d) vs (%d %v %v %d)",
			score1, state1, pos1, pipes1, score2, state2, pos2, pipes2)
	}
}

func TestRender(t *testing.T) {
	s := newTestSession(t, highscore.NewMemoryKV())
	screen := core.NewScreen(80, 24)

	s.Render(screen)
	out := screen.String()
	if !strings.Contains(out, "GET READY") || !strings.Contains(out, "[S] Store") {
		t.Errorf("menu render missing prompts:\n%s", out)
	}

	s.Start()
	s.Tick()
	s.Render(screen)
	out = screen.String()
	if !strings.ContainsRune(out, GrassChar) {
		t.Error("ground not drawn")
	}
	if strings.Contains(out, "[S] Store") {
		t.Error("store entry drawn while playing")
	}

	s.TriggerGameOver()
	s.Render(screen)
	out = screen.String()
	if !strings.Contains(out, "GAME OVER") || !strings.Contains(out, "High Score: 0") {
		t.Errorf("game over render missing text:\n%s", out)
	}
}
