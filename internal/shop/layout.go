package shop

// Layout of the overlay in world pixels.

// Close button centre and half extents.
const (
	closeInsetX = 40
	closeY      = 30
	closeHalfW  = 18
	closeHalfH  = 15
	buyHalfW    = 28
	buyHeight   = 26
)

// HitKind is what a pointer landed on.
type HitKind int

const (
	HitNone HitKind = iota
	HitClose
	HitBuy
	HitItem
)

// Hit is the result of HitTest. Index is set for HitBuy and HitItem.
type Hit struct {
	Kind  HitKind
	Index int
}

func (o *Overlay) stride() float64 {
	return o.cfg.ItemHeight + o.cfg.Padding
}

// ContentHeight is the height of the whole item stack.
func (o *Overlay) ContentHeight() float64 {
	if len(o.items) == 0 {
		return 0
	}
	return float64(len(o.items))*o.stride() - o.cfg.Padding
}

// ViewportTop is the y of the top of the list area.
func (o *Overlay) ViewportTop() float64 {
	return o.cfg.TopMargin
}

// ViewportHeight is the visible height of the list area.
func (o *Overlay) ViewportHeight() float64 {
	return o.height - o.cfg.TopMargin - o.cfg.BottomMargin
}

// ItemWidth is the width of an item card.
func (o *Overlay) ItemWidth() float64 {
	return o.width * 0.95
}

// ItemLeft is the x of the left edge of item cards.
func (o *Overlay) ItemLeft() float64 {
	return (o.width - o.ItemWidth()) / 2
}

// ItemTop is the on-screen y of the top of item i, scroll included.
func (o *Overlay) ItemTop(i int) float64 {
	return o.ViewportTop() + o.scroll.Offset() + float64(i)*o.stride()
}

// ItemHeight is the height of an item card.
func (o *Overlay) ItemHeight() float64 {
	return o.cfg.ItemHeight
}

// CloseButton returns the centre of the close button.
func (o *Overlay) CloseButton() (x, y float64) {
	return o.width - closeInsetX, closeY
}

// BuyButton returns the top-left corner and size of item i's buy button.
func (o *Overlay) BuyButton(i int) (x, y, w, h float64) {
	top := o.ItemTop(i)
	return o.width/2 - buyHalfW, top + o.cfg.ItemHeight - buyHeight - 4, 2 * buyHalfW, buyHeight
}

// Visible reports whether any part of item i is inside the list area.
func (o *Overlay) Visible(i int) bool {
	top := o.ItemTop(i)
	return top+o.cfg.ItemHeight > o.ViewportTop() && top < o.ViewportTop()+o.ViewportHeight()
}

// HitTest maps a pointer position to the element under it. Items outside
// the list area cannot be hit.
func (o *Overlay) HitTest(x, y float64) Hit {
	if o.state != StateOpen {
		return Hit{Kind: HitNone}
	}

	cx, cy := o.CloseButton()
	if x >= cx-closeHalfW && x <= cx+closeHalfW && y >= cy-closeHalfH && y <= cy+closeHalfH {
		return Hit{Kind: HitClose}
	}

	if o.status != StatusReady || y < o.ViewportTop() || y > o.ViewportTop()+o.ViewportHeight() {
		return Hit{Kind: HitNone}
	}
	if x < o.ItemLeft() || x > o.ItemLeft()+o.ItemWidth() {
		return Hit{Kind: HitNone}
	}

	for i := range o.items {
		top := o.ItemTop(i)
		if y < top || y > top+o.cfg.ItemHeight {
			continue
		}
		bx, by, bw, bh := o.BuyButton(i)
		if x >= bx && x <= bx+bw && y >= by && y <= by+bh {
			return Hit{Kind: HitBuy, Index: i}
		}
		return Hit{Kind: HitItem, Index: i}
	}
	return Hit{Kind: HitNone}
}
