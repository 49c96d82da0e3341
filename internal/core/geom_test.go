package core

import "testing"

func TestRectFIntersects(t *testing.T) {
	tests := []struct {
		name     string
		a, b     RectF
		expected bool
	}{
		{
			name:     "overlapping boxes",
			a:        RectF{X: 0, Y: 0, W: 10, H: 10},
			b:        RectF{X: 5, Y: 5, W: 10, H: 10},
			expected: true,
		},
		{
			name:     "non-overlapping horizontal",
			a:        RectF{X: 0, Y: 0, W: 10, H: 10},
			b:        RectF{X: 15, Y: 0, W: 10, H: 10},
			expected: false,
		},
		{
			name:     "non-overlapping vertical",
			a:        RectF{X: 0, Y: 0, W: 10, H: 10},
			b:        RectF{X: 0, Y: 15, W: 10, H: 10},
			expected: false,
		},
		{
			name:     "touching edges",
			a:        RectF{X: 0, Y: 0, W: 10, H: 10},
			b:        RectF{X: 10, Y: 0, W: 10, H: 10},
			expected: false,
		},
		{
			name:     "contained box",
			a:        RectF{X: 0, Y: 0, W: 20, H: 20},
			b:        RectF{X: 5, Y: 5, W: 2, H: 2},
			expected: true,
		},
		{
			name:     "thin sensor crossing",
			a:        RectAround(60, 265, 34, 24),
			b:        RectAround(70, 260, 2, 98),
			expected: true,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := tc.a.Intersects(tc.b); got != tc.expected {
				t.Errorf("Intersects() = %v, expected %v", got, tc.expected)
			}
			if got := tc.b.Intersects(tc.a); got != tc.expected {
				t.Errorf("Intersects() (reversed) = %v, expected %v", got, tc.expected)
			}
		})
	}
}

func TestRectAround(t *testing.T) {
	r := RectAround(60, 265, 34, 24)
	if r.X != 43 || r.Y != 253 {
		t.Errorf("RectAround origin = (%v, %v), expected (43, 253)", r.X, r.Y)
	}
	if r.Right() != 77 || r.Bottom() != 277 {
		t.Errorf("RectAround edges = (%v, %v), expected (77, 277)", r.Right(), r.Bottom())
	}
}

func TestRectContains(t *testing.T) {
	r := NewRect(10, 10, 20, 15)

	tests := []struct {
		name     string
		x, y     int
		expected bool
	}{
		{"inside", 15, 15, true},
		{"top-left corner", 10, 10, true},
		{"bottom-right edge (exclusive)", 30, 25, false},
		{"outside left", 5, 15, false},
		{"outside bottom", 15, 30, false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := r.Contains(tc.x, tc.y); got != tc.expected {
				t.Errorf("Contains(%d, %d) = %v, expected %v", tc.x, tc.y, got, tc.expected)
			}
		})
	}
}

func TestClamp(t *testing.T) {
	tests := []struct {
		val, min, max, expected int
	}{
		{5, 0, 10, 5},
		{-5, 0, 10, 0},
		{15, 0, 10, 10},
		{0, 0, 10, 0},
		{10, 0, 10, 10},
	}

	for _, tc := range tests {
		if got := Clamp(tc.val, tc.min, tc.max); got != tc.expected {
			t.Errorf("Clamp(%d, %d, %d) = %d, expected %d", tc.val, tc.min, tc.max, got, tc.expected)
		}
	}
}

func TestClampF(t *testing.T) {
	tests := []struct {
		val, min, max, expected float64
	}{
		{5.5, 0.0, 10.0, 5.5},
		{-5.5, 0.0, 10.0, 0.0},
		{15.5, 0.0, 10.0, 10.0},
		{-400, -150, 0, -150},
	}

	for _, tc := range tests {
		if got := ClampF(tc.val, tc.min, tc.max); got != tc.expected {
			t.Errorf("ClampF(%f, %f, %f) = %f, expected %f", tc.val, tc.min, tc.max, got, tc.expected)
		}
	}
}

func TestRuntimeConfigTickSeconds(t *testing.T) {
	if got := (RuntimeConfig{TickRate: 60}).TickSeconds(); got != 1.0/60.0 {
		t.Errorf("TickSeconds() = %f, expected 1/60", got)
	}
	if got := (RuntimeConfig{}).TickSeconds(); got != 1.0/60.0 {
		t.Errorf("TickSeconds() with zero rate = %f, expected 1/60", got)
	}
}
