package canvas

import (
	"image"
	"image/color"

	"cpw-router/pkg/colorutil"
	"cpw-router/pkg/geometry"
)

var (
	dieColor      = color.RGBA{R: 70, G: 70, B: 90, A: 255}
	fiducialColor = colorutil.Yellow
	compColor     = color.RGBA{R: 90, G: 160, B: 220, A: 255}
	importedColor = color.RGBA{R: 160, G: 140, B: 90, A: 255}
	pinColor      = colorutil.Green
	anchorColor   = colorutil.Magenta
	groundColor   = color.RGBA{R: 60, G: 60, B: 60, A: 255}
)

func fillBackground(output *image.RGBA) {
	for i := 0; i < len(output.Pix); i += 4 {
		output.Pix[i] = 20
		output.Pix[i+1] = 20
		output.Pix[i+2] = 24
		output.Pix[i+3] = 255
	}
}

func setPixel(output *image.RGBA, x, y int, c color.RGBA) {
	if x < 0 || y < 0 || x >= output.Rect.Dx() || y >= output.Rect.Dy() {
		return
	}
	output.SetRGBA(x, y, c)
}

// drawLine draws a 1px line between raster coordinates using Bresenham.
func drawLine(output *image.RGBA, x0, y0, x1, y1 int, c color.RGBA) {
	dx := abs(x1 - x0)
	dy := -abs(y1 - y0)
	sx := 1
	if x0 > x1 {
		sx = -1
	}
	sy := 1
	if y0 > y1 {
		sy = -1
	}
	err := dx + dy

	for {
		setPixel(output, x0, y0, c)
		if x0 == x1 && y0 == y1 {
			return
		}
		e2 := 2 * err
		if e2 >= dy {
			err += dy
			x0 += sx
		}
		if e2 <= dx {
			err += dx
			y0 += sy
		}
	}
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

func (fc *FloorplanCanvas) drawSegmentMM(output *image.RGBA, a, b geometry.Point2D, c color.RGBA) {
	x0, y0 := fc.toScreen(a)
	x1, y1 := fc.toScreen(b)
	drawLine(output, x0, y0, x1, y1, c)
}

func (fc *FloorplanCanvas) drawRectMM(output *image.RGBA, r geometry.Rect, c color.RGBA) {
	corners := r.Corners()
	for i := range corners {
		fc.drawSegmentMM(output, corners[i], corners[(i+1)%len(corners)], c)
	}
}

func (fc *FloorplanCanvas) drawPolylineMM(output *image.RGBA, points []geometry.Point2D, c color.RGBA) {
	for i := 0; i+1 < len(points); i++ {
		fc.drawSegmentMM(output, points[i], points[i+1], c)
	}
}

// drawCrossMM draws a small cross marker, size in pixels.
func (fc *FloorplanCanvas) drawCrossMM(output *image.RGBA, p geometry.Point2D, size int, c color.RGBA) {
	x, y := fc.toScreen(p)
	drawLine(output, x-size, y, x+size, y, c)
	drawLine(output, x, y-size, x, y+size, c)
}

func (fc *FloorplanCanvas) drawDie(output *image.RGBA) {
	fc.drawRectMM(output, fc.scene.DieOutline, dieColor)
	for _, f := range fc.scene.Fiducials {
		fc.drawCrossMM(output, f, 4, fiducialColor)
	}
}

func (fc *FloorplanCanvas) drawComponent(output *image.RGBA, comp SceneComponent) {
	c := compColor
	if comp.Imported {
		c = importedColor
	}

	if len(comp.Footprint) >= 3 {
		fc.drawPolylineMM(output, comp.Footprint, c)
		fc.drawSegmentMM(output, comp.Footprint[len(comp.Footprint)-1], comp.Footprint[0], c)
	} else {
		fc.drawRectMM(output, comp.Bounds, c)
	}

	for _, pin := range comp.Pins {
		fc.drawCrossMM(output, pin.Position, 3, pinColor)
		// Tick along the outward normal.
		tick := pin.Position.Add(pin.Normal.Normalize().Scale(3.0 / fc.zoom))
		fc.drawSegmentMM(output, pin.Position, tick, pinColor)
	}

	x, y := fc.toScreen(comp.Bounds.Min())
	drawText(output, x, y+8, comp.ID, colorutil.White)
}

func (fc *FloorplanCanvas) drawRoute(output *image.RGBA, r SceneRoute) {
	c := r.Color
	if c.A == 0 {
		c = colorutil.Cyan
	}

	if fc.showGroundCut {
		for _, strip := range r.Elements.GroundCut {
			quad := strip.Quad()
			for i := range quad {
				fc.drawSegmentMM(output, quad[i], quad[(i+1)%len(quad)], groundColor)
			}
		}
	}

	fc.drawPolylineMM(output, r.Path, c)

	if r.Selected {
		for _, p := range r.Path {
			fc.drawCrossMM(output, p, 3, colorutil.White)
		}
	}
}

func (fc *FloorplanCanvas) drawAnchor(output *image.RGBA, p geometry.Point2D) {
	fc.drawCrossMM(output, p, 5, anchorColor)
}

// digitPatterns contains 3x5 pixel patterns for digits 0-9.
var digitPatterns = [10][5]uint8{
	{0b111, 0b101, 0b101, 0b101, 0b111}, // 0
	{0b010, 0b110, 0b010, 0b010, 0b111}, // 1
	{0b111, 0b001, 0b111, 0b100, 0b111}, // 2
	{0b111, 0b001, 0b111, 0b001, 0b111}, // 3
	{0b101, 0b101, 0b111, 0b001, 0b001}, // 4
	{0b111, 0b100, 0b111, 0b001, 0b111}, // 5
	{0b111, 0b100, 0b111, 0b101, 0b111}, // 6
	{0b111, 0b001, 0b001, 0b001, 0b001}, // 7
	{0b111, 0b101, 0b111, 0b101, 0b111}, // 8
	{0b111, 0b101, 0b111, 0b001, 0b111}, // 9
}

// letterPatterns contains 3x5 pixel patterns for letters and symbols
// used in component designators.
var letterPatterns = map[rune][5]uint8{
	'A': {0b010, 0b101, 0b111, 0b101, 0b101},
	'B': {0b110, 0b101, 0b110, 0b101, 0b110},
	'C': {0b011, 0b100, 0b100, 0b100, 0b011},
	'D': {0b110, 0b101, 0b101, 0b101, 0b110},
	'E': {0b111, 0b100, 0b110, 0b100, 0b111},
	'F': {0b111, 0b100, 0b110, 0b100, 0b100},
	'G': {0b011, 0b100, 0b101, 0b101, 0b011},
	'H': {0b101, 0b101, 0b111, 0b101, 0b101},
	'I': {0b111, 0b010, 0b010, 0b010, 0b111},
	'J': {0b001, 0b001, 0b001, 0b101, 0b010},
	'K': {0b101, 0b101, 0b110, 0b101, 0b101},
	'L': {0b100, 0b100, 0b100, 0b100, 0b111},
	'M': {0b101, 0b111, 0b101, 0b101, 0b101},
	'N': {0b101, 0b111, 0b111, 0b101, 0b101},
	'O': {0b010, 0b101, 0b101, 0b101, 0b010},
	'P': {0b110, 0b101, 0b110, 0b100, 0b100},
	'Q': {0b010, 0b101, 0b101, 0b111, 0b011},
	'R': {0b110, 0b101, 0b110, 0b101, 0b101},
	'S': {0b011, 0b100, 0b010, 0b001, 0b110},
	'T': {0b111, 0b010, 0b010, 0b010, 0b010},
	'U': {0b101, 0b101, 0b101, 0b101, 0b111},
	'V': {0b101, 0b101, 0b101, 0b101, 0b010},
	'W': {0b101, 0b101, 0b101, 0b111, 0b101},
	'X': {0b101, 0b101, 0b010, 0b101, 0b101},
	'Y': {0b101, 0b101, 0b010, 0b010, 0b010},
	'Z': {0b111, 0b001, 0b010, 0b100, 0b111},
	'_': {0b000, 0b000, 0b000, 0b000, 0b111},
	'-': {0b000, 0b000, 0b111, 0b000, 0b000},
	'.': {0b000, 0b000, 0b000, 0b000, 0b010},
	' ': {0b000, 0b000, 0b000, 0b000, 0b000},
}

func charPattern(ch rune) [5]uint8 {
	if ch >= '0' && ch <= '9' {
		return digitPatterns[ch-'0']
	}
	if ch >= 'a' && ch <= 'z' {
		ch = ch - 'a' + 'A'
	}
	if pattern, ok := letterPatterns[ch]; ok {
		return pattern
	}
	return [5]uint8{}
}

// drawText renders a short label with the built-in 3x5 font.
func drawText(output *image.RGBA, x, y int, text string, c color.RGBA) {
	cx := x
	for _, ch := range text {
		pattern := charPattern(ch)
		for row := 0; row < 5; row++ {
			for col := 0; col < 3; col++ {
				if pattern[row]&(1<<(2-col)) != 0 {
					setPixel(output, cx+col, y+row, c)
				}
			}
		}
		cx += 4
	}
}
