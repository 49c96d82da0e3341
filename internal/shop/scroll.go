package shop

import "github.com/vovakirdan/tui-flappy/internal/core"

// MinScroll returns the lowest offset that still shows the end of the
// content, or 0 when the content fits the viewport.
func MinScroll(contentHeight, viewportHeight float64) float64 {
	if contentHeight <= viewportHeight {
		return 0
	}
	return -(contentHeight - viewportHeight)
}

// Scroll is the vertical offset of the item list. The offset is always in
// [Min(), 0]; 0 shows the first item at the top.
type Scroll struct {
	offset float64
	min    float64

	dragging    bool
	startY      float64
	startOffset float64
}

// SetBounds recomputes the lower limit and re-clamps the offset.
func (s *Scroll) SetBounds(contentHeight, viewportHeight float64) {
	s.min = MinScroll(contentHeight, viewportHeight)
	s.offset = core.ClampF(s.offset, s.min, 0)
}

// Press starts a drag at pointer y.
func (s *Scroll) Press(y float64) {
	s.dragging = true
	s.startY = y
	s.startOffset = s.offset
}

// Move follows the pointer while a drag is active.
func (s *Scroll) Move(y float64) {
	if !s.dragging {
		return
	}
	s.offset = core.ClampF(s.startOffset+(y-s.startY), s.min, 0)
}

// Release ends the drag.
func (s *Scroll) Release() {
	s.dragging = false
}

// Wheel moves the offset by dy without a drag.
func (s *Scroll) Wheel(dy float64) {
	s.offset = core.ClampF(s.offset+dy, s.min, 0)
}

// ScrollTo sets the offset directly.
func (s *Scroll) ScrollTo(offset float64) {
	s.offset = core.ClampF(offset, s.min, 0)
}

// Reset returns to the top and drops any drag.
func (s *Scroll) Reset() {
	*s = Scroll{}
}

// Offset returns the current offset.
func (s *Scroll) Offset() float64 { return s.offset }

// Min returns the lower limit.
func (s *Scroll) Min() float64 { return s.min }

// Dragging reports whether a drag is active.
func (s *Scroll) Dragging() bool { return s.dragging }
