package tui

import (
	"image"

	"github.com/lucasb-eyer/go-colorful"

	"github.com/vovakirdan/tui-flappy/internal/core"
)

// thumbColor pairs a screen color with its usual terminal RGB value.
type thumbColor struct {
	color core.Color
	rgb   colorful.Color
}

var thumbPalette = []thumbColor{
	{core.ColorBlack, hex("#000000")},
	{core.ColorRed, hex("#cc0000")},
	{core.ColorGreen, hex("#4e9a06")},
	{core.ColorYellow, hex("#c4a000")},
	{core.ColorBlue, hex("#3465a4")},
	{core.ColorMagenta, hex("#75507b")},
	{core.ColorCyan, hex("#06989a")},
	{core.ColorWhite, hex("#d3d7cf")},
	{core.ColorBrightRed, hex("#ef2929")},
	{core.ColorBrightGreen, hex("#8ae234")},
	{core.ColorBrightYellow, hex("#fce94f")},
	{core.ColorBrightBlue, hex("#729fcf")},
	{core.ColorBrightMagenta, hex("#ad7fa8")},
	{core.ColorBrightCyan, hex("#34e2e2")},
	{core.ColorBrightWhite, hex("#eeeeec")},
	{core.ColorOrange, hex("#ff8700")},
	{core.ColorGray, hex("#8a8a8a")},
}

func hex(s string) colorful.Color {
	c, err := colorful.Hex(s)
	if err != nil {
		panic(err)
	}
	return c
}

// nearestColor returns the palette entry closest to c in Lab space.
func nearestColor(c colorful.Color) core.Color {
	best, bestDist := core.ColorDefault, -1.0
	for _, p := range thumbPalette {
		d := c.DistanceLab(p.rgb)
		if bestDist < 0 || d < bestDist {
			best, bestDist = p.color, d
		}
	}
	return best
}

// quantize averages img over a cols x rows grid and maps every cell to the
// nearest screen color. Transparent cells come back as ColorDefault.
func quantize(img image.Image, cols, rows int) [][]core.Color {
	out := make([][]core.Color, rows)
	b := img.Bounds()
	if cols <= 0 || rows <= 0 || b.Empty() {
		for y := range out {
			out[y] = make([]core.Color, cols)
		}
		return out
	}

	for cy := range rows {
		out[cy] = make([]core.Color, cols)
		y0 := b.Min.Y + cy*b.Dy()/rows
		y1 := b.Min.Y + (cy+1)*b.Dy()/rows
		for cx := range cols {
			x0 := b.Min.X + cx*b.Dx()/cols
			x1 := b.Min.X + (cx+1)*b.Dx()/cols

			var r, g, bl, a, n uint64
			for y := y0; y < y1; y++ {
				for x := x0; x < x1; x++ {
					pr, pg, pb, pa := img.At(x, y).RGBA()
					r, g, bl, a = r+uint64(pr), g+uint64(pg), bl+uint64(pb), a+uint64(pa)
					n++
				}
			}
			if n == 0 || a/n < 0x4000 {
				continue
			}
			// Premultiplied sums: divide by alpha to recover the color.
			avg := colorful.Color{
				R: float64(r) / float64(a),
				G: float64(g) / float64(a),
				B: float64(bl) / float64(a),
			}
			out[cy][cx] = nearestColor(avg.Clamped())
		}
	}
	return out
}
