package tui

import (
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/aymanbagabas/go-osc52/v2"
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-flappy/internal/commerce"
	"github.com/vovakirdan/tui-flappy/internal/config"
	"github.com/vovakirdan/tui-flappy/internal/core"
	"github.com/vovakirdan/tui-flappy/internal/games/flappy"
	"github.com/vovakirdan/tui-flappy/internal/highscore"
	"github.com/vovakirdan/tui-flappy/internal/shop"
	"github.com/vovakirdan/tui-flappy/internal/storage"
)

// footerRows is the space below the playfield: status line and key help.
const footerRows = 2

// Notices for failures that have no dedicated text in the shop package.
const (
	noticePurchaseFailed = "Purchase is unavailable right now"
	noticeLinkCopied     = "Link copied to clipboard"
)

var (
	statusStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
	scoreStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("11")).Bold(true)
	noticeStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("14"))
	linkStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("12")).Underline(true)
)

// Options configures a Model.
type Options struct {
	Config  config.FlappyConfig
	Runtime core.RuntimeConfig
	// History records finished games; nil disables it.
	History *storage.Store
	// Scores persists the high score; nil keeps it in memory.
	Scores highscore.KV
	// Client talks to the commerce service; nil builds one from Config.
	Client commerce.Client
	// Player names the history entries.
	Player string
	Logger *log.Logger
	// Clipboard receives OSC 52 sequences for checkout links; nil disables copying.
	Clipboard io.Writer
}

// Model is the Bubble Tea model for the game and its store.
type Model struct {
	session   *flappy.Session
	overlay   *shop.Overlay
	client    commerce.Client
	submitter *commerce.ScoreSubmitter
	history   *storage.Store
	logger    *log.Logger
	clipboard io.Writer

	cfg        config.FlappyConfig
	config     core.RuntimeConfig
	screen     *core.Screen
	keys       KeyMap
	help       help.Model
	inputFrame core.InputFrame
	gameState  core.GameState
	player     string
	notice     *shop.Notice
	link       string // Last checkout, tip or login URL handed to the player
	account    string // Session label from the startup check
	frame      int
	quitting   bool
	scoreSaved bool // Whether score has been saved for current game over
	now        func() time.Time
}

// NewModel creates a new Bubble Tea model on the main menu.
func NewModel(opts Options) Model {
	cfg := opts.Runtime
	// Use time-based seed if not specified
	if cfg.Seed == 0 {
		cfg.Seed = time.Now().UnixNano()
	}

	logger := opts.Logger
	if logger == nil {
		logger = log.Default()
	}
	client := opts.Client
	if client == nil {
		client = commerce.New(opts.Config.Commerce, logger)
	}
	kv := opts.Scores
	if kv == nil {
		kv = highscore.NewMemoryKV()
	}
	player := opts.Player
	if player == "" {
		player = "local"
	}

	scores := highscore.New(kv, logger)
	scores.Load()

	m := Model{
		client:     client,
		history:    opts.History,
		logger:     logger,
		clipboard:  opts.Clipboard,
		cfg:        opts.Config,
		config:     cfg,
		screen:     core.NewScreen(cfg.ScreenW, core.Max(1, cfg.ScreenH-footerRows)),
		keys:       DefaultKeyMap(),
		help:       help.New(),
		inputFrame: core.NewInputFrame(),
		player:     player,
		notice:     &shop.Notice{},
		now:        time.Now,
	}

	sessionOpts := []flappy.Option{flappy.WithLogger(logger)}
	if opts.Config.Commerce.Enabled() {
		m.submitter = commerce.NewScoreSubmitter(client, opts.Config.Commerce.Timeout, logger)
		sessionOpts = append(sessionOpts, flappy.WithScoreHook(m.submitter))
	}
	m.session = flappy.NewSession(opts.Config, cfg, scores, sessionOpts...)
	m.gameState = m.session.GameState()

	w, h := storeSize(opts.Config.Store, cfg.ScreenW, m.screen.Height())
	images := shop.NewImageLoader(&http.Client{Timeout: opts.Config.Commerce.Timeout}, opts.Config.Store.ThumbSize, logger)
	m.overlay = shop.New(opts.Config.Store, client, w, h,
		shop.WithLogger(logger),
		shop.WithImages(images),
		shop.WithRedirect(commerce.RedirectURL(opts.Config.Commerce.RedirectOrigin, commerce.PathPurchaseDone)),
		shop.WithTimeout(opts.Config.Commerce.Timeout),
	)

	m.help.Width = cfg.ScreenW
	return m
}

// Init starts the tick loop and checks the player's commerce session.
func (m Model) Init() tea.Cmd {
	return tea.Batch(
		tickCmd(m.config.TickRate),
		runJob(shop.SessionJob(m.client, m.cfg.Commerce.Timeout)),
	)
}

// runJob wraps a background job as a command whose message is its result.
func runJob[T any](job func() T) tea.Cmd {
	if job == nil {
		return nil
	}
	return func() tea.Msg {
		return job()
	}
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.MouseMsg:
		return m.handleMouse(msg)

	case tea.WindowSizeMsg:
		return m.handleResize(msg)

	case TickMsg:
		return m.handleTick()

	case shop.CatalogResult:
		var cmds []tea.Cmd
		for _, job := range m.overlay.HandleCatalog(msg) {
			cmds = append(cmds, runJob(job))
		}
		return m, tea.Batch(cmds...)

	case shop.ImageResult:
		m.overlay.HandleImage(msg)
		return m, nil

	case shop.PurchaseResult:
		if url, ok := m.overlay.HandlePurchase(msg); ok {
			m.navigate(url)
		} else {
			m.notify(noticePurchaseFailed)
		}
		return m, nil

	case shop.TipResult:
		if msg.Err != nil {
			m.logger.Debug("tip unavailable", "error", msg.Err)
			m.notify(shop.TipNotice(msg.Err))
			return m, nil
		}
		m.navigate(msg.URL)
		return m, nil

	case shop.SessionResult:
		if msg.Err != nil {
			m.logger.Debug("session check failed", "error", msg.Err)
		}
		m.account = shop.SessionLabel(msg)
		return m, nil
	}

	return m, nil
}

// handleKey processes keyboard input.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, m.keys.Screenshot) {
		m.saveScreenshot()
		return m, nil
	}

	if m.overlay.IsOpen() {
		return m.handleStoreKey(msg)
	}

	switch action := m.keys.MapKey(msg); action {
	case core.ActionNone:
	case core.ActionQuit:
		return m.quit()
	case core.ActionStore:
		return m.openStore()
	case core.ActionTip:
		return m.tip()
	case core.ActionLogin:
		m.login()
	default:
		m.inputFrame.Set(action)
	}
	return m, nil
}

// handleStoreKey processes keyboard input while the store is open.
func (m Model) handleStoreKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m.quit()
	case key.Matches(msg, m.keys.Close):
		m.overlay.Close()
	case key.Matches(msg, m.keys.Up):
		m.overlay.SelectPrev()
	case key.Matches(msg, m.keys.Down):
		m.overlay.SelectNext()
	case key.Matches(msg, m.keys.Buy):
		if job, ok := m.overlay.BuySelected(); ok {
			return m, runJob(job)
		}
	}
	return m, nil
}

// handleMouse scrolls and drags the store list; outside the store a left
// click flaps.
func (m Model) handleMouse(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	if !m.overlay.IsOpen() {
		if msg.Action == tea.MouseActionPress && msg.Button == tea.MouseButtonLeft {
			m.inputFrame.Set(core.ActionFlap)
		}
		return m, nil
	}

	step := m.cfg.Store.WheelStep
	switch {
	case msg.Button == tea.MouseButtonWheelUp:
		m.overlay.Wheel(step)
	case msg.Button == tea.MouseButtonWheelDown:
		m.overlay.Wheel(-step)
	case msg.Action == tea.MouseActionPress && msg.Button == tea.MouseButtonLeft:
		m.overlay.Press(m.rowToWorld(msg.Y))
	case msg.Action == tea.MouseActionMotion:
		m.overlay.Move(m.rowToWorld(msg.Y))
	case msg.Action == tea.MouseActionRelease:
		m.overlay.Release()
	}
	return m, nil
}

// rowToWorld converts a terminal row to an overlay y in world pixels.
func (m Model) rowToWorld(row int) float64 {
	panel := panelRect(m.screen.Width(), m.screen.Height())
	px := (m.cfg.Store.ItemHeight + m.cfg.Store.Padding) / cardStride
	return m.cfg.Store.TopMargin + float64(row-panel.Y-storeListTop)*px
}

// handleResize processes window resize events.
func (m Model) handleResize(msg tea.WindowSizeMsg) (tea.Model, tea.Cmd) {
	m.config.ScreenW = msg.Width
	m.config.ScreenH = msg.Height
	m.screen.Resize(msg.Width, core.Max(1, msg.Height-footerRows))
	m.overlay.SetSize(storeSize(m.cfg.Store, m.screen.Width(), m.screen.Height()))
	m.help.Width = msg.Width
	return m, nil
}

// handleTick processes simulation ticks.
func (m Model) handleTick() (tea.Model, tea.Cmd) {
	result := m.session.Step(m.inputFrame)
	m.gameState = result.State
	m.frame++

	// Save score on game over (once)
	if m.gameState.GameOver && !m.scoreSaved {
		if m.history != nil && m.gameState.Score > 0 {
			if _, err := m.history.SaveScore(m.player, m.gameState.Score); err != nil {
				m.logger.Warn("cannot record score", "player", m.player, "score", m.gameState.Score, "error", err)
			}
		}
		m.scoreSaved = true
	}
	if !m.gameState.GameOver {
		m.scoreSaved = false
	}

	// Clear input for next frame
	m.inputFrame.Clear()

	return m, tickCmd(m.config.TickRate)
}

func (m Model) quit() (tea.Model, tea.Cmd) {
	m.quitting = true
	if m.submitter != nil {
		m.submitter.Wait()
	}
	return m, tea.Quit
}

// openStore shows the store from the main menu and starts the catalog fetch.
func (m Model) openStore() (tea.Model, tea.Cmd) {
	if !m.session.HUD().StoreButton {
		return m, nil
	}
	job, ok := m.overlay.Open(m.session)
	if !ok {
		return m, nil
	}
	return m, runJob(job)
}

// tip asks for the tip page from the main menu.
func (m Model) tip() (tea.Model, tea.Cmd) {
	if !m.session.HUD().TipButton {
		return m, nil
	}
	redirect := commerce.RedirectURL(m.cfg.Commerce.RedirectOrigin, commerce.PathTipDone)
	return m, runJob(shop.TipJob(m.client, redirect, m.cfg.Commerce.Timeout))
}

// login hands out the sign-in page from the main menu.
func (m *Model) login() {
	if !m.session.HUD().StoreButton {
		return
	}
	url, err := m.client.LoginURL(commerce.LoginParams{
		RedirectURL: commerce.RedirectURL(m.cfg.Commerce.RedirectOrigin, commerce.PathLoginDone),
	})
	if err != nil {
		m.logger.Debug("login unavailable", "error", err)
		m.notify(shop.NoticeLoginFailed)
		return
	}
	m.navigate(url)
}

// navigate hands a URL to the player. A terminal cannot open pages, so the
// link is shown under the playfield and copied with OSC 52.
func (m *Model) navigate(url string) {
	m.link = url
	m.logger.Info("link ready", "url", url)
	if m.clipboard == nil {
		return
	}
	if _, err := osc52.New(url).WriteTo(m.clipboard); err != nil {
		m.logger.Debug("cannot copy link", "error", err)
		return
	}
	m.notify(noticeLinkCopied)
}

func (m *Model) notify(text string) {
	m.notice.Show(text, m.now(), m.cfg.Store.NoticeTime)
}

// saveScreenshot saves the current screen to a file.
func (m *Model) saveScreenshot() {
	m.render()

	dir := config.UserPath("screenshots")
	if dir == "" {
		return
	}
	//nolint:errcheck // Best-effort directory creation
	os.MkdirAll(dir, 0o755)

	timestamp := time.Now().Format("20060102_150405")
	path := filepath.Join(dir, fmt.Sprintf("flappy_%s.txt", timestamp))

	//nolint:errcheck // Best-effort save, game continues regardless
	os.WriteFile(path, []byte(m.screen.String()), 0o600)
}

// render draws the game, and the store over it when open.
func (m Model) render() {
	m.session.Render(m.screen)
	if m.overlay.IsOpen() {
		dim(m.screen)
		storeView{overlay: m.overlay, cfg: m.cfg.Store, frame: m.frame}.render(m.screen)
	}
}

// View renders the current state to a string for display.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	m.render()
	return lipgloss.JoinVertical(lipgloss.Left,
		RenderScreen(m.screen),
		m.statusLine(),
		m.helpView(),
	)
}

func (m Model) statusLine() string {
	left := scoreStyle.Render(fmt.Sprintf("Score %d", m.gameState.Score)) +
		statusStyle.Render(fmt.Sprintf("  Best %d", m.gameState.HighScore))

	var right string
	switch {
	case m.notice.Text(m.now()) != "":
		right = noticeStyle.Render(m.notice.Text(m.now()))
	case m.link != "":
		right = linkStyle.Render(m.link)
	case m.account != "":
		right = statusStyle.Render(m.account)
	}

	gap := m.config.ScreenW - lipgloss.Width(left) - lipgloss.Width(right)
	if gap < 1 {
		gap = 1
	}
	return lipgloss.NewStyle().MaxWidth(m.config.ScreenW).Render(left + fmt.Sprintf("%*s", gap, "") + right)
}

func (m Model) helpView() string {
	if m.overlay.IsOpen() {
		return m.help.View(storeHelp{keys: m.keys})
	}
	hud := m.session.HUD()
	return m.help.View(gameHelp{keys: m.keys, menu: hud.StoreButton, over: hud.GameOverBanner})
}

// Session returns the game session.
func (m Model) Session() *flappy.Session { return m.session }

// Overlay returns the store overlay.
func (m Model) Overlay() *shop.Overlay { return m.overlay }

// Link returns the last URL handed to the player.
func (m Model) Link() string { return m.link }

// Run starts the Bubble Tea program for a local player.
func Run(opts Options) error {
	if opts.Clipboard == nil {
		opts.Clipboard = os.Stderr
	}
	model := NewModel(opts)

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(), // Wheel and drag in the store
	)

	_, err := p.Run()
	return err
}
