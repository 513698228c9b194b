// internal/pdf/canvas.go
package pdf

import (
	"bytes"
	"time"

	"github.com/go-pdf/fpdf"
)

// A4 canvas in millimetres.
const (
	pageWidth  = 210.0
	pageHeight = 297.0
	marginX    = 15.0
	lineHeight = 5.0
)

// Cursor is an explicit drawing position threaded through layout code.
// There is no automatic page flow: every section computes its own offsets.
type Cursor struct {
	X float64
	Y float64
}

func (c Cursor) Down(dy float64) Cursor  { return Cursor{c.X, c.Y + dy} }
func (c Cursor) Right(dx float64) Cursor { return Cursor{c.X + dx, c.Y} }
func (c Cursor) At(x float64) Cursor     { return Cursor{x, c.Y} }

// RowHeight computes a table row height from its wrapped line count:
// max(min, lines*lineHeight + padding).
func RowHeight(min float64, lines int, padding float64) float64 {
	h := float64(lines)*lineHeight + padding
	if h < min {
		return min
	}
	return h
}

// canvas wraps fpdf with the small primitive set the renderers use.
// All text goes through the cp1252 translator so French accents survive
// the core Helvetica font.
type canvas struct {
	pdf *fpdf.Fpdf
	tr  func(string) string
}

func newCanvas(now time.Time) *canvas {
	p := fpdf.New("P", "mm", "A4", "")
	// Pin the creation date so fixed-clock renders are byte-identical.
	p.SetCreationDate(now)
	p.SetAutoPageBreak(false, 0)
	p.AddPage()
	return &canvas{pdf: p, tr: p.UnicodeTranslatorFromDescriptor("")}
}

func (c *canvas) font(style string, size float64) {
	c.pdf.SetFont("Helvetica", style, size)
}

func (c *canvas) textColor(r, g, b int) {
	c.pdf.SetTextColor(r, g, b)
}

// text draws a single run at the cursor baseline.
func (c *canvas) text(cur Cursor, s string) {
	c.pdf.Text(cur.X, cur.Y, c.tr(s))
}

// textRight right-aligns a run so it ends at cur.X.
func (c *canvas) textRight(cur Cursor, s string) {
	t := c.tr(s)
	c.pdf.Text(cur.X-c.pdf.GetStringWidth(t), cur.Y, t)
}

// wrapText draws s wrapped to width, advancing the cursor one line height
// per wrapped line. Returns the advanced cursor and the line count.
func (c *canvas) wrapText(cur Cursor, s string, width float64) (Cursor, int) {
	lines := c.pdf.SplitText(c.tr(s), width)
	for _, l := range lines {
		c.pdf.Text(cur.X, cur.Y, l)
		cur = cur.Down(lineHeight)
	}
	return cur, len(lines)
}

// lineCount measures how many lines s wraps to at width under the current
// font, without drawing. Used to compute row heights before drawing rows.
func (c *canvas) lineCount(s string, width float64) int {
	return len(c.pdf.SplitText(c.tr(s), width))
}

func (c *canvas) fillRect(x, y, w, h float64, r, g, b int) {
	c.pdf.SetFillColor(r, g, b)
	c.pdf.Rect(x, y, w, h, "F")
}

func (c *canvas) strokeRect(x, y, w, h float64, r, g, b int) {
	c.pdf.SetDrawColor(r, g, b)
	c.pdf.SetLineWidth(0.3)
	c.pdf.Rect(x, y, w, h, "D")
}

func (c *canvas) roundedRect(x, y, w, h, radius float64, r, g, b int, style string) {
	c.pdf.SetFillColor(r, g, b)
	c.pdf.SetDrawColor(r, g, b)
	c.pdf.SetLineWidth(0.3)
	c.pdf.RoundedRect(x, y, w, h, radius, "1234", style)
}

func (c *canvas) line(x1, y1, x2, y2 float64, r, g, b int) {
	c.pdf.SetDrawColor(r, g, b)
	c.pdf.SetLineWidth(0.3)
	c.pdf.Line(x1, y1, x2, y2)
}

// bullet draws the filled-circle glyph used for detail lists.
func (c *canvas) bullet(cur Cursor, r, g, b int) {
	c.pdf.SetFillColor(r, g, b)
	c.pdf.Circle(cur.X, cur.Y-1.2, 0.8, "F")
}

// checkmark draws a filled circle with two short strokes forming a tick.
func (c *canvas) checkmark(x, y, radius float64) {
	c.pdf.SetFillColor(46, 125, 50)
	c.pdf.Circle(x, y, radius, "F")
	c.pdf.SetDrawColor(255, 255, 255)
	c.pdf.SetLineWidth(0.6)
	c.pdf.Line(x-radius*0.45, y, x-radius*0.1, y+radius*0.4)
	c.pdf.Line(x-radius*0.1, y+radius*0.4, x+radius*0.5, y-radius*0.35)
}

// image embeds registered raster data under a rounded-corner clip mask.
func (c *canvas) image(name string, data []byte, imgType string, x, y, w, h, radius float64) {
	opts := fpdf.ImageOptions{ImageType: imgType}
	c.pdf.RegisterImageOptionsReader(name, opts, bytes.NewReader(data))
	c.pdf.ClipRoundedRect(x, y, w, h, radius, false)
	c.pdf.ImageOptions(name, x, y, w, h, false, opts, 0, "")
	c.pdf.ClipEnd()
}

func (c *canvas) output() ([]byte, error) {
	var buf bytes.Buffer
	if err := c.pdf.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
