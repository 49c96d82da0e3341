// Package window runs the game in a desktop window or a browser canvas with
// Ebitengine. Input is read once per frame; commerce requests run on
// goroutines and their results are applied at the start of the next frame.
package window

import (
	"math/rand"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/hajimehoshi/ebiten/v2"

	"github.com/vovakirdan/tui-flappy/internal/commerce"
	"github.com/vovakirdan/tui-flappy/internal/config"
	"github.com/vovakirdan/tui-flappy/internal/core"
	"github.com/vovakirdan/tui-flappy/internal/games/flappy"
	"github.com/vovakirdan/tui-flappy/internal/highscore"
	"github.com/vovakirdan/tui-flappy/internal/shop"
)

// Options configures a Game.
type Options struct {
	Config config.FlappyConfig
	// Seed for obstacle placement and bird colors; 0 uses the clock.
	Seed int64
	// Scores persists the high score; nil keeps it in memory.
	Scores highscore.KV
	// Client talks to the commerce service; nil builds one from Config.
	Client commerce.Client
	Logger *log.Logger
	// Navigate sends the player to a checkout, tip or login page. nil logs
	// the URL instead.
	Navigate func(url string)
}

// Game implements ebiten.Game.
type Game struct {
	cfg      config.FlappyConfig
	session  *flappy.Session
	overlay  *shop.Overlay
	client   commerce.Client
	logger   *log.Logger
	navigate func(string)

	results chan func() // Finished background work, applied on the game loop
	input   core.InputFrame
	thumbs  map[string]*ebiten.Image
	birds   map[flappy.BirdColor]*ebiten.Image
	notice  shop.Notice
	account string
}

// New creates a game on the main menu.
func New(opts Options) *Game {
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
	seed := opts.Seed
	if seed == 0 {
		seed = rand.Int63()
	}

	g := &Game{
		cfg:      opts.Config,
		client:   client,
		logger:   logger,
		navigate: opts.Navigate,
		results:  make(chan func(), 64),
		input:    core.NewInputFrame(),
		thumbs:   make(map[string]*ebiten.Image),
		birds:    make(map[flappy.BirdColor]*ebiten.Image),
	}
	if g.navigate == nil {
		g.navigate = func(url string) {
			logger.Info("open in your browser", "url", url)
		}
	}

	scores := highscore.New(kv, logger)
	scores.Load()

	rt := core.RuntimeConfig{TickRate: ebiten.DefaultTPS, Seed: seed}
	sessionOpts := []flappy.Option{flappy.WithLogger(logger)}
	if opts.Config.Commerce.Enabled() {
		sessionOpts = append(sessionOpts,
			flappy.WithScoreHook(commerce.NewScoreSubmitter(client, opts.Config.Commerce.Timeout, logger)))
	}
	g.session = flappy.NewSession(opts.Config, rt, scores, sessionOpts...)

	images := shop.NewImageLoader(&http.Client{Timeout: opts.Config.Commerce.Timeout}, opts.Config.Store.ThumbSize, logger)
	g.overlay = shop.New(opts.Config.Store, client, opts.Config.World.Width, opts.Config.World.Height,
		shop.WithLogger(logger),
		shop.WithImages(images),
		shop.WithRedirect(commerce.RedirectURL(opts.Config.Commerce.RedirectOrigin, commerce.PathPurchaseDone)),
		shop.WithTimeout(opts.Config.Commerce.Timeout),
	)

	job := shop.SessionJob(client, opts.Config.Commerce.Timeout)
	g.spawn(func() func() {
		res := job()
		return func() {
			if res.Err != nil {
				g.logger.Debug("session check failed", "error", res.Err)
			}
			g.account = shop.SessionLabel(res)
		}
	})
	return g
}

// spawn runs work off the game loop. The returned callback is applied by
// the next Update.
func (g *Game) spawn(work func() func()) {
	go func() {
		g.results <- work()
	}()
}

// drain applies every finished job.
func (g *Game) drain() {
	for {
		select {
		case apply := <-g.results:
			apply()
		default:
			return
		}
	}
}

// Update advances the game by one frame.
func (g *Game) Update() error {
	g.drain()

	if g.overlay.IsOpen() {
		g.updateStore()
	} else {
		g.updateGame()
	}

	g.session.Step(g.input)
	g.input.Clear()
	return nil
}

// dispatch routes an action that is not a plain simulation input.
func (g *Game) dispatch(a core.Action) {
	switch a {
	case core.ActionStore:
		g.openStore()
	case core.ActionTip:
		g.tip()
	case core.ActionLogin:
		g.login()
	case core.ActionNone, core.ActionQuit:
	default:
		g.input.Set(a)
	}
}

func (g *Game) openStore() {
	if !g.session.HUD().StoreButton {
		return
	}
	job, ok := g.overlay.Open(g.session)
	if !ok {
		return
	}
	g.spawn(func() func() {
		res := job()
		return func() { g.handleCatalog(res) }
	})
}

func (g *Game) handleCatalog(res shop.CatalogResult) {
	for _, job := range g.overlay.HandleCatalog(res) {
		g.spawn(func() func() {
			res := job()
			return func() { g.overlay.HandleImage(res) }
		})
	}
}

func (g *Game) buy(i int) {
	job, ok := g.overlay.Buy(i)
	if !ok {
		return
	}
	g.spawn(func() func() {
		res := job()
		return func() {
			if url, ok := g.overlay.HandlePurchase(res); ok {
				g.navigate(url)
			}
		}
	})
}

func (g *Game) tip() {
	if !g.session.HUD().TipButton {
		return
	}
	job := shop.TipJob(g.client, commerce.RedirectURL(g.cfg.Commerce.RedirectOrigin, commerce.PathTipDone), g.cfg.Commerce.Timeout)
	g.spawn(func() func() {
		res := job()
		return func() {
			if res.Err != nil {
				g.logger.Debug("tip unavailable", "error", res.Err)
				g.notify(shop.TipNotice(res.Err))
				return
			}
			g.navigate(res.URL)
		}
	})
}

func (g *Game) login() {
	if !g.session.HUD().StoreButton {
		return
	}
	url, err := g.client.LoginURL(commerce.LoginParams{
		RedirectURL: commerce.RedirectURL(g.cfg.Commerce.RedirectOrigin, commerce.PathLoginDone),
	})
	if err != nil {
		g.logger.Debug("login unavailable", "error", err)
		g.notify(shop.NoticeLoginFailed)
		return
	}
	g.navigate(url)
}

func (g *Game) notify(text string) {
	g.notice.Show(text, time.Now(), g.cfg.Store.NoticeTime)
}

// Layout fixes the logical screen to the world size; Ebitengine scales it
// to the window.
func (g *Game) Layout(_, _ int) (int, int) {
	return int(g.cfg.World.Width), int(g.cfg.World.Height)
}

// Run opens a window and blocks until it is closed.
func Run(opts Options) error {
	g := New(opts)
	ebiten.SetWindowSize(int(opts.Config.World.Width)*2, int(opts.Config.World.Height)*2)
	ebiten.SetWindowTitle("Flappy Bird")
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	return ebiten.RunGame(g)
}
