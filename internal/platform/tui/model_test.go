package tui

import (
	"bytes"
	"context"
	"image"
	"image/color"
	"io"
	"path/filepath"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-flappy/internal/commerce"
	"github.com/vovakirdan/tui-flappy/internal/config"
	"github.com/vovakirdan/tui-flappy/internal/core"
	"github.com/vovakirdan/tui-flappy/internal/games/flappy"
	"github.com/vovakirdan/tui-flappy/internal/highscore"
	"github.com/vovakirdan/tui-flappy/internal/shop"
	"github.com/vovakirdan/tui-flappy/internal/storage"
)

type fakeClient struct {
	items       []commerce.Item
	purchaseURL string
	tipURL      string
	tipErr      error
}

func (f *fakeClient) Initialize(context.Context) (bool, error) { return true, nil }
func (f *fakeClient) SessionInfo(context.Context) (commerce.SessionInfo, error) {
	return commerce.SessionInfo{IsValid: true}, nil
}
func (f *fakeClient) LoginURL(commerce.LoginParams) (string, error) { return "https://login", nil }
func (f *fakeClient) StoreCatalog(context.Context) ([]commerce.Item, error) {
	return f.items, nil
}
func (f *fakeClient) PurchaseURL(context.Context, commerce.PurchaseRequest) (string, error) {
	return f.purchaseURL, nil
}
func (f *fakeClient) PurchaseHistory(context.Context) ([]commerce.Purchase, error) { return nil, nil }
func (f *fakeClient) TipURL(context.Context, string) (string, error)               { return f.tipURL, f.tipErr }
func (f *fakeClient) SubmitScore(context.Context, int) error                       { return nil }

func newTestModel(t *testing.T, client commerce.Client, clipboard io.Writer) Model {
	t.Helper()
	return NewModel(Options{
		Config:    config.DefaultFlappyConfig(),
		Runtime:   core.RuntimeConfig{ScreenW: 80, ScreenH: 24, TickRate: 60, Seed: 42},
		Client:    client,
		Logger:    log.New(io.Discard),
		Clipboard: clipboard,
	})
}

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

// send feeds msg to the model and returns the updated model and command.
func send(t *testing.T, m Model, msg tea.Msg) (Model, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(msg)
	model, ok := next.(Model)
	if !ok {
		t.Fatalf("Update returned %T", next)
	}
	return model, cmd
}

func TestKeyMapMapKey(t *testing.T) {
	keys := DefaultKeyMap()
	tests := []struct {
		msg      tea.KeyMsg
		expected core.Action
	}{
		{tea.KeyMsg{Type: tea.KeySpace, Runes: []rune(" ")}, core.ActionFlap},
		{tea.KeyMsg{Type: tea.KeyUp}, core.ActionFlap},
		{runes("r"), core.ActionRestart},
		{runes("m"), core.ActionMenu},
		{runes("s"), core.ActionStore},
		{runes("t"), core.ActionTip},
		{runes("l"), core.ActionLogin},
		{runes("q"), core.ActionQuit},
		{tea.KeyMsg{Type: tea.KeyCtrlC}, core.ActionQuit},
		{runes("z"), core.ActionNone},
	}

	for _, tt := range tests {
		t.Run(tt.msg.String(), func(t *testing.T) {
			if got := keys.MapKey(tt.msg); got != tt.expected {
				t.Errorf("MapKey(%q) = %v, expected %v", tt.msg.String(), got, tt.expected)
			}
		})
	}
}

func TestModelFlapStartsGame(t *testing.T) {
	m := newTestModel(t, &fakeClient{}, nil)

	m, _ = send(t, m, tea.KeyMsg{Type: tea.KeySpace, Runes: []rune(" ")})
	m, cmd := send(t, m, TickMsg{})
	if cmd == nil {
		t.Error("tick should schedule the next tick")
	}
	if m.Session().State() != flappy.StatePlaying {
		t.Errorf("State() = %v, expected Playing", m.Session().State())
	}
}

func TestModelStoreOpenAndClose(t *testing.T) {
	client := &fakeClient{items: []commerce.Item{{ID: "a", Name: "Golden Wings", Price: 199}}}
	m := newTestModel(t, client, nil)

	m, cmd := send(t, m, runes("s"))
	if !m.Overlay().IsOpen() {
		t.Fatal("store should open from the main menu")
	}
	if !m.Session().Suspended() {
		t.Error("game should be suspended while the store is open")
	}
	if cmd == nil {
		t.Fatal("opening the store should fetch the catalog")
	}
	if !strings.Contains(m.View(), shop.TextLoading) {
		t.Error("loading text should show before the catalog arrives")
	}

	m, _ = send(t, m, cmd())
	if m.Overlay().Status() != shop.StatusReady {
		t.Fatalf("Status() = %v, expected Ready", m.Overlay().Status())
	}
	view := m.View()
	for _, want := range []string{"Golden Wings", "$1.99", "[ BUY ]"} {
		if !strings.Contains(view, want) {
			t.Errorf("store view missing %q", want)
		}
	}

	m, _ = send(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	if m.Overlay().IsOpen() {
		t.Error("esc should close the store")
	}
	if m.Session().Suspended() {
		t.Error("closing the store should resume the game")
	}
}

func TestModelStoreOnlyFromMenu(t *testing.T) {
	m := newTestModel(t, &fakeClient{}, nil)

	m, _ = send(t, m, tea.KeyMsg{Type: tea.KeySpace, Runes: []rune(" ")})
	m, _ = send(t, m, TickMsg{})

	m, cmd := send(t, m, runes("s"))
	if m.Overlay().IsOpen() || cmd != nil {
		t.Error("store should not open while playing")
	}
}

func TestModelPurchaseCopiesLink(t *testing.T) {
	client := &fakeClient{
		items:       []commerce.Item{{ID: "a", Name: "Hat", Price: 100}},
		purchaseURL: "https://checkout/a",
	}
	var clipboard bytes.Buffer
	m := newTestModel(t, client, &clipboard)

	m, cmd := send(t, m, runes("s"))
	m, _ = send(t, m, cmd())
	m, cmd = send(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	if cmd == nil {
		t.Fatal("enter should request a purchase url")
	}
	m, _ = send(t, m, cmd())

	if m.Link() != "https://checkout/a" {
		t.Errorf("Link() = %q", m.Link())
	}
	if !strings.Contains(clipboard.String(), "]52;") {
		t.Errorf("expected an OSC 52 sequence, got %q", clipboard.String())
	}
	if !m.Overlay().IsOpen() {
		t.Error("store should stay open after a purchase request")
	}
}

func TestModelTipWithoutLogin(t *testing.T) {
	m := newTestModel(t, &fakeClient{tipErr: commerce.ErrNoTipURL}, nil)

	m, cmd := send(t, m, runes("t"))
	if cmd == nil {
		t.Fatal("tip should request a tip url from the menu")
	}
	m, _ = send(t, m, cmd())

	if m.Link() != "" {
		t.Errorf("Link() = %q, expected none", m.Link())
	}
	if !strings.Contains(m.View(), shop.NoticeLoginToTip) {
		t.Error("expected the log in notice")
	}
}

func TestModelSessionLabel(t *testing.T) {
	m := newTestModel(t, &fakeClient{}, nil)

	m, _ = send(t, m, shop.SessionResult{Err: commerce.ErrNotConfigured})
	if !strings.Contains(m.View(), "offline") {
		t.Error("expected offline label")
	}
}

func TestModelDoesNotRecordZeroScores(t *testing.T) {
	store, err := storage.Open(filepath.Join(t.TempDir(), "scores.db"))
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	defer store.Close()

	kv := highscore.NewMemoryKV()
	m := NewModel(Options{
		Config:  config.DefaultFlappyConfig(),
		Runtime: core.RuntimeConfig{ScreenW: 80, ScreenH: 24, TickRate: 60, Seed: 42},
		History: store,
		Scores:  kv,
		Client:  &fakeClient{},
		Logger:  log.New(io.Discard),
	})

	m, _ = send(t, m, tea.KeyMsg{Type: tea.KeySpace, Runes: []rune(" ")})
	for i := 0; i < 1000 && m.Session().State() != flappy.StateGameOver; i++ {
		m, _ = send(t, m, TickMsg{})
	}
	if m.Session().State() != flappy.StateGameOver {
		t.Fatal("bird should crash without input")
	}
	m, _ = send(t, m, TickMsg{})

	scores, err := store.TopScores(10)
	if err != nil {
		t.Fatalf("TopScores() error = %v", err)
	}
	if len(scores) != 0 {
		t.Errorf("expected no history for a zero score, got %d entries", len(scores))
	}
	if _, ok, _ := kv.Get(highscore.Key); ok {
		t.Error("zero score should not be stored as a high score")
	}
}

func TestStoreSize(t *testing.T) {
	cfg := config.DefaultFlappyConfig().Store
	w, h := storeSize(cfg, 80, 22)

	if w != 76 {
		t.Errorf("width = %v, expected 76", w)
	}
	px := (cfg.ItemHeight + cfg.Padding) / cardStride
	rows := 20 - storeListTop - 1
	if want := cfg.TopMargin + cfg.BottomMargin + float64(rows)*px; h != want {
		t.Errorf("height = %v, expected %v", h, want)
	}
}

func TestQuantize(t *testing.T) {
	solid := image.NewRGBA(image.Rect(0, 0, 8, 8))
	for y := 0; y < 8; y++ {
		for x := 0; x < 8; x++ {
			solid.Set(x, y, color.RGBA{R: 0xcc, A: 0xff})
		}
	}

	cells := quantize(solid, thumbCols, thumbRows)
	if len(cells) != thumbRows || len(cells[0]) != thumbCols {
		t.Fatalf("grid = %dx%d", len(cells[0]), len(cells))
	}
	for _, row := range cells {
		for _, c := range row {
			if c != core.ColorRed {
				t.Errorf("cell = %v, expected red", c)
			}
		}
	}

	clear := image.NewRGBA(image.Rect(0, 0, 8, 8))
	if got := quantize(clear, 2, 2)[1][1]; got != core.ColorDefault {
		t.Errorf("transparent cell = %v, expected default", got)
	}
}
