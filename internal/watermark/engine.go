// Package watermark stamps disclosed photographs with a traceable mark: a
// visible corner label carrying the transaction id, and an invisible
// bit-plane embedding of the full id for forensic extraction.
package watermark

import (
	"bytes"
	"image"
	"image/color"
	"image/draw"
	"image/jpeg"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"

	dErrors "fotogate/pkg/domain-errors"

	// Decoders for the supported source formats. JPEG doubles as the
	// output encoder.
	_ "image/png"

	_ "golang.org/x/image/bmp"
)

// Position anchors the visible label to one of the four image corners.
type Position string

const (
	PositionBottomRight Position = "bottom-right"
	PositionBottomLeft  Position = "bottom-left"
	PositionTopRight    Position = "top-right"
	PositionTopLeft     Position = "top-left"
)

// Config is the read-only watermark configuration, fixed at startup and shared
// safely across concurrent requests.
type Config struct {
	// Caption is the first label line; the second line is the short
	// transaction id.
	Caption string
	// Position selects the label corner. Unknown values fall back to
	// bottom-right.
	Position Position
	// Margin is the distance in pixels between the label box and the
	// image edge.
	Margin int
	// Padding is the space between the box edge and the text.
	Padding int
	// JPEGQuality is the re-encode quality for stamped output.
	JPEGQuality int
}

// DefaultConfig returns the stock watermark settings.
func DefaultConfig() Config {
	return Config{
		Caption:     "FOTOGATE AUDIT",
		Position:    PositionBottomRight,
		Margin:      10,
		Padding:     5,
		JPEGQuality: 95,
	}
}

// Engine applies watermarks using one immutable Config.
type Engine struct {
	cfg  Config
	face font.Face
}

// New builds an Engine, filling unset Config fields with defaults.
func New(cfg Config) *Engine {
	def := DefaultConfig()
	if cfg.Caption == "" {
		cfg.Caption = def.Caption
	}
	if cfg.Position == "" {
		cfg.Position = def.Position
	}
	if cfg.Margin <= 0 {
		cfg.Margin = def.Margin
	}
	if cfg.Padding <= 0 {
		cfg.Padding = def.Padding
	}
	if cfg.JPEGQuality <= 0 || cfg.JPEGQuality > 100 {
		cfg.JPEGQuality = def.JPEGQuality
	}
	return &Engine{cfg: cfg, face: basicfont.Face7x13}
}

// Stamp renders the visible label over the image and returns it re-encoded as
// JPEG at the configured quality. The output keeps the source pixel
// dimensions; any source transparency is flattened onto white.
func (e *Engine) Stamp(img []byte, transactionID string) ([]byte, error) {
	src, _, err := image.Decode(bytes.NewReader(img))
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "watermark stamp: decode image")
	}

	bounds := src.Bounds()

	// Work on RGBA so the source gains an alpha channel if it had none.
	base := image.NewRGBA(bounds)
	draw.Draw(base, bounds, src, bounds.Min, draw.Src)

	e.drawLabel(base, labelLines(e.cfg.Caption, transactionID))

	// Flatten any remaining transparency onto a white background before the
	// lossy re-encode.
	flat := image.NewRGBA(bounds)
	draw.Draw(flat, bounds, image.NewUniform(color.White), image.Point{}, draw.Src)
	draw.Draw(flat, bounds, base, bounds.Min, draw.Over)

	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, flat, &jpeg.Options{Quality: e.cfg.JPEGQuality}); err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "watermark stamp: encode image")
	}
	return buf.Bytes(), nil
}

// labelLines builds the two label lines: the caption and the short
// transaction id.
func labelLines(caption, transactionID string) []string {
	short := transactionID
	if len(short) > 8 {
		short = short[:8]
	}
	return []string{caption, short}
}

// drawLabel composites white text on a semi-transparent dark box onto dst at
// the configured corner.
func (e *Engine) drawLabel(dst *image.RGBA, lines []string) {
	bounds := dst.Bounds()
	metrics := e.face.Metrics()
	ascent := metrics.Ascent.Ceil()
	lineHeight := metrics.Height.Ceil()

	textWidth := 0
	for _, line := range lines {
		if w := font.MeasureString(e.face, line).Ceil(); w > textWidth {
			textWidth = w
		}
	}
	textHeight := lineHeight * len(lines)

	boxWidth := textWidth + 2*e.cfg.Padding
	boxHeight := textHeight + 2*e.cfg.Padding

	x0, y0 := e.anchor(bounds, boxWidth, boxHeight)
	box := image.Rect(x0, y0, x0+boxWidth, y0+boxHeight).Intersect(bounds)

	overlay := image.NewRGBA(bounds)
	draw.Draw(overlay, box, image.NewUniform(color.RGBA{0, 0, 0, 128}), image.Point{}, draw.Src)

	drawer := &font.Drawer{
		Dst:  overlay,
		Src:  image.NewUniform(color.RGBA{255, 255, 255, 255}),
		Face: e.face,
	}
	for i, line := range lines {
		drawer.Dot = fixed.P(x0+e.cfg.Padding, y0+e.cfg.Padding+ascent+i*lineHeight)
		drawer.DrawString(line)
	}

	draw.Draw(dst, bounds, overlay, bounds.Min, draw.Over)
}

// anchor resolves the top-left corner of the label box, clamped so the box
// never starts outside the image.
func (e *Engine) anchor(bounds image.Rectangle, boxWidth, boxHeight int) (int, int) {
	var x, y int
	switch e.cfg.Position {
	case PositionTopLeft:
		x, y = bounds.Min.X+e.cfg.Margin, bounds.Min.Y+e.cfg.Margin
	case PositionTopRight:
		x, y = bounds.Max.X-boxWidth-e.cfg.Margin, bounds.Min.Y+e.cfg.Margin
	case PositionBottomLeft:
		x, y = bounds.Min.X+e.cfg.Margin, bounds.Max.Y-boxHeight-e.cfg.Margin
	default: // bottom-right
		x, y = bounds.Max.X-boxWidth-e.cfg.Margin, bounds.Max.Y-boxHeight-e.cfg.Margin
	}
	if x < bounds.Min.X {
		x = bounds.Min.X
	}
	if y < bounds.Min.Y {
		y = bounds.Min.Y
	}
	return x, y
}
