// Package shop implements the in-game store: a modal list of catalog items
// that suspends the game while open. Network work is handed to the platform
// as jobs; their results come back through the Handle methods on the game
// loop.
package shop

import (
	"context"
	"image"
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-flappy/internal/commerce"
	"github.com/vovakirdan/tui-flappy/internal/config"
)

// Status texts shown in place of the item list.
const (
	TextLoading = "Loading store items..."
	TextEmpty   = "No items available in the store."
	TextFailed  = "Error loading store items. Please try again later."
)

// State is whether the overlay is showing.
type State int

const (
	StateClosed State = iota
	StateOpen
)

// Status is the progress of the catalog fetch.
type Status int

const (
	StatusLoading Status = iota
	StatusReady
	StatusEmpty
	StatusFailed
)

// ThumbState is the progress of one item's thumbnail.
type ThumbState int

const (
	ThumbNone ThumbState = iota // Item has no image
	ThumbLoading
	ThumbReady
	ThumbFailed
)

// Thumb is one item's thumbnail.
type Thumb struct {
	State ThumbState
	Image image.Image
}

// Suspender is the simulation the overlay pauses while open.
type Suspender interface {
	Suspend()
	Resume()
}

// CatalogResult carries a finished catalog fetch.
type CatalogResult struct {
	Gen   int
	Items []commerce.Item
	Err   error
}

// ImageResult carries a finished thumbnail download.
type ImageResult struct {
	Gen    int
	ItemID string
	Image  image.Image
	Err    error
}

// PurchaseResult carries a finished purchase URL request.
type PurchaseResult struct {
	ItemID string
	URL    string
	Err    error
}

// Jobs run off the game loop; their results go back to the overlay.
type (
	CatalogJob  func() CatalogResult
	ImageJob    func() ImageResult
	PurchaseJob func() PurchaseResult
)

// Overlay is the store modal.
type Overlay struct {
	cfg      config.StoreConfig
	client   commerce.Client
	images   *ImageLoader
	logger   *log.Logger
	timeout  time.Duration
	redirect string
	width    float64
	height   float64

	game     Suspender
	state    State
	status   Status
	gen      int // Incremented on every open; results from older opens are dropped
	items    []commerce.Item
	thumbs   map[string]Thumb
	scroll   Scroll
	selected int
}

// Option customizes an Overlay.
type Option func(*Overlay)

// WithLogger sets the overlay logger.
func WithLogger(logger *log.Logger) Option {
	return func(o *Overlay) {
		if logger != nil {
			o.logger = logger
		}
	}
}

// WithImages enables thumbnails.
func WithImages(images *ImageLoader) Option {
	return func(o *Overlay) {
		o.images = images
	}
}

// WithRedirect sets the URL the checkout page returns to.
func WithRedirect(url string) Option {
	return func(o *Overlay) {
		o.redirect = url
	}
}

// WithTimeout bounds every network job.
func WithTimeout(d time.Duration) Option {
	return func(o *Overlay) {
		if d > 0 {
			o.timeout = d
		}
	}
}

// New creates a closed overlay covering a screen of width x height world
// pixels.
func New(cfg config.StoreConfig, client commerce.Client, width, height float64, opts ...Option) *Overlay {
	o := &Overlay{
		cfg:     cfg,
		client:  client,
		logger:  log.Default(),
		timeout: 10 * time.Second,
		width:   width,
		height:  height,
		thumbs:  make(map[string]Thumb),
	}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// SetSize changes the screen size the overlay covers and re-clamps the
// scroll offset.
func (o *Overlay) SetSize(width, height float64) {
	o.width, o.height = width, height
	o.scroll.SetBounds(o.ContentHeight(), o.ViewportHeight())
}

// Open shows the overlay, suspends game and returns the catalog fetch to
// run. Only valid while closed.
func (o *Overlay) Open(game Suspender) (CatalogJob, bool) {
	if o.state != StateClosed {
		return nil, false
	}

	o.gen++
	o.game = game
	o.state = StateOpen
	o.status = StatusLoading
	o.items = nil
	o.thumbs = make(map[string]Thumb)
	o.scroll.Reset()
	o.selected = 0
	if game != nil {
		game.Suspend()
	}

	gen, client, timeout := o.gen, o.client, o.timeout
	return func() CatalogResult {
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()
		items, err := client.StoreCatalog(ctx)
		return CatalogResult{Gen: gen, Items: items, Err: err}
	}, true
}

// HandleCatalog applies a catalog result and returns the thumbnail
// downloads to run. Results for a closed or reopened overlay are ignored.
func (o *Overlay) HandleCatalog(res CatalogResult) []ImageJob {
	if o.state != StateOpen || res.Gen != o.gen {
		return nil
	}

	if res.Err != nil {
		o.logger.Error("cannot load store items", "error", res.Err)
		o.status = StatusFailed
		return nil
	}
	if len(res.Items) == 0 {
		o.status = StatusEmpty
		return nil
	}

	o.status = StatusReady
	o.items = res.Items
	o.scroll.SetBounds(o.ContentHeight(), o.ViewportHeight())

	var jobs []ImageJob
	for _, item := range o.items {
		if item.ImageURL == "" || o.images == nil {
			continue
		}
		if img, ok := o.images.Cached(item.ID); ok {
			o.thumbs[item.ID] = Thumb{State: ThumbReady, Image: img}
			continue
		}
		o.thumbs[item.ID] = Thumb{State: ThumbLoading}

		gen, id, url, loader, timeout := o.gen, item.ID, item.ImageURL, o.images, o.timeout
		jobs = append(jobs, func() ImageResult {
			ctx, cancel := context.WithTimeout(context.Background(), timeout)
			defer cancel()
			img, err := loader.Load(ctx, id, url)
			return ImageResult{Gen: gen, ItemID: id, Image: img, Err: err}
		})
	}
	return jobs
}

// HandleImage applies one thumbnail result. Other items are untouched.
func (o *Overlay) HandleImage(res ImageResult) {
	if o.state != StateOpen || res.Gen != o.gen {
		return
	}
	if res.Err != nil {
		o.logger.Warn("cannot load item image", "item", res.ItemID, "error", res.Err)
		o.thumbs[res.ItemID] = Thumb{State: ThumbFailed}
		return
	}
	o.thumbs[res.ItemID] = Thumb{State: ThumbReady, Image: res.Image}
}

// Close hides the overlay, drops its contents and resumes the game. Only
// valid while open.
func (o *Overlay) Close() bool {
	if o.state != StateOpen {
		return false
	}
	o.state = StateClosed
	o.items = nil
	o.thumbs = make(map[string]Thumb)
	o.scroll.Reset()
	o.selected = 0
	if o.game != nil {
		o.game.Resume()
		o.game = nil
	}
	return true
}

// Buy returns the purchase URL request for item i.
func (o *Overlay) Buy(i int) (PurchaseJob, bool) {
	if o.state != StateOpen || o.status != StatusReady || i < 0 || i >= len(o.items) {
		return nil, false
	}
	o.selected = i

	id, client, redirect, timeout := o.items[i].ID, o.client, o.redirect, o.timeout
	return func() PurchaseResult {
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()
		url, err := client.PurchaseURL(ctx, commerce.PurchaseRequest{ItemID: id, RedirectURL: redirect})
		return PurchaseResult{ItemID: id, URL: url, Err: err}
	}, true
}

// BuySelected buys the highlighted item.
func (o *Overlay) BuySelected() (PurchaseJob, bool) {
	return o.Buy(o.selected)
}

// HandlePurchase returns the checkout URL to navigate to. Failures are
// logged and leave the overlay as it is.
func (o *Overlay) HandlePurchase(res PurchaseResult) (string, bool) {
	if res.Err != nil {
		o.logger.Error("cannot get purchase url", "item", res.ItemID, "error", res.Err)
		return "", false
	}
	if res.URL == "" {
		return "", false
	}
	return res.URL, true
}

// SelectNext moves the highlight down and scrolls it into view.
func (o *Overlay) SelectNext() {
	if o.selected < len(o.items)-1 {
		o.selected++
		o.ensureVisible(o.selected)
	}
}

// SelectPrev moves the highlight up and scrolls it into view.
func (o *Overlay) SelectPrev() {
	if o.selected > 0 {
		o.selected--
		o.ensureVisible(o.selected)
	}
}

func (o *Overlay) ensureVisible(i int) {
	top := float64(i) * o.stride()
	bottom := top + o.cfg.ItemHeight
	switch {
	case top+o.scroll.Offset() < 0:
		o.scroll.ScrollTo(-top)
	case bottom+o.scroll.Offset() > o.ViewportHeight():
		o.scroll.ScrollTo(o.ViewportHeight() - bottom)
	}
}

// Press starts a drag inside the list.
func (o *Overlay) Press(y float64) {
	if o.state == StateOpen && o.status == StatusReady {
		o.scroll.Press(y)
	}
}

// Move follows an active drag.
func (o *Overlay) Move(y float64) {
	o.scroll.Move(y)
}

// Release ends a drag.
func (o *Overlay) Release() {
	o.scroll.Release()
}

// Wheel scrolls by dy.
func (o *Overlay) Wheel(dy float64) {
	if o.state == StateOpen && o.status == StatusReady {
		o.scroll.Wheel(dy)
	}
}

// StatusText returns the message shown instead of the list, if any.
func (o *Overlay) StatusText() string {
	switch o.status {
	case StatusLoading:
		return TextLoading
	case StatusEmpty:
		return TextEmpty
	case StatusFailed:
		return TextFailed
	default:
		return ""
	}
}

// ItemName returns the display name of an item.
func ItemName(item commerce.Item) string {
	if item.Name == "" {
		return "Item"
	}
	return item.Name
}

// State returns whether the overlay is open.
func (o *Overlay) State() State { return o.state }

// IsOpen reports whether the overlay is open.
func (o *Overlay) IsOpen() bool { return o.state == StateOpen }

// Status returns the catalog fetch progress.
func (o *Overlay) Status() Status { return o.status }

// Items returns the loaded catalog.
func (o *Overlay) Items() []commerce.Item { return o.items }

// Thumb returns the thumbnail state of an item.
func (o *Overlay) Thumb(itemID string) Thumb { return o.thumbs[itemID] }

// Selected returns the highlighted item index.
func (o *Overlay) Selected() int { return o.selected }

// Scroll returns the list scroll state.
func (o *Overlay) Scroll() *Scroll { return &o.scroll }
