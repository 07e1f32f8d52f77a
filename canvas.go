package letterart

import (
	"errors"
	"fmt"
	"image"
	"image/draw"
	"os"

	"github.com/golang/freetype"
	"github.com/golang/freetype/truetype"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
)

const (
	// DefaultCellPitch is the edge length in pixels of one letter cell
	// on an output canvas.
	DefaultCellPitch = 12

	// DefaultFontScale is the letter size relative to the cell pitch
	// when rendering with a TrueType font.
	DefaultFontScale = 0.4

	// glyphInset offsets the letter from the cell's left edge and the
	// baseline from its bottom edge.
	glyphInset = 2
)

// glyphMask is a pitch×pitch coverage bitmap for one pre-rendered
// letter. A set bit is a foreground pixel.
type glyphMask struct {
	size int
	bits []bool
}

func newGlyphMask(size int) glyphMask {
	return glyphMask{
		size: size,
		bits: make([]bool, size*size),
	}
}

// getBit checks if a specific bit is set in the mask
func (g glyphMask) getBit(x, y int) bool {
	if x < 0 || x >= g.size || y < 0 || y >= g.size {
		return false
	}
	return g.bits[y*g.size+x]
}

// setBit sets a specific bit in the mask
func (g glyphMask) setBit(x, y int, value bool) {
	if x < 0 || x >= g.size || y < 0 || y >= g.size {
		return
	}
	g.bits[y*g.size+x] = value
}

// dilate returns a copy of the mask with every set bit grown into its
// four neighbors, thickening the stroke by roughly one pixel.
func (g glyphMask) dilate() glyphMask {
	out := newGlyphMask(g.size)
	for y := 0; y < g.size; y++ {
		for x := 0; x < g.size; x++ {
			if !g.getBit(x, y) {
				continue
			}
			out.setBit(x, y, true)
			out.setBit(x-1, y, true)
			out.setBit(x+1, y, true)
			out.setBit(x, y-1, true)
			out.setBit(x, y+1, true)
		}
	}
	return out
}

// CanvasRenderer stamps glyph grids onto black RGBA canvases at a
// fixed cell pitch, producing the frames baked into output video.
// Every alphabet letter is rasterized once at construction time into a
// coverage mask; rendering a frame is then pure bitmap stamping with
// the cell's color.
type CanvasRenderer struct {
	pitch     int
	fontScale float64
	thickness int
	fontFile  string
	masks     map[string]glyphMask
}

// CanvasOption is a functional option for configuring a CanvasRenderer.
type CanvasOption func(*CanvasRenderer)

// NewCanvasRenderer creates a renderer for the given alphabet.
// Defaults: cell pitch 12, font scale 0.4, stroke thickness 1, and a
// built-in fixed-width face. The letter masks are pre-rendered here,
// so configuration errors surface before any frame is processed.
func NewCanvasRenderer(alphabet Alphabet, opts ...CanvasOption) (*CanvasRenderer, error) {
	r := &CanvasRenderer{
		pitch:     DefaultCellPitch,
		fontScale: DefaultFontScale,
		thickness: 1,
	}
	for _, opt := range opts {
		opt(r)
	}

	if alphabet.Len() == 0 {
		return nil, errors.New("alphabet must contain at least one character")
	}
	if r.pitch < 1 {
		return nil, fmt.Errorf("cell pitch must be positive, got %d", r.pitch)
	}
	if r.fontScale <= 0 {
		return nil, fmt.Errorf("font scale must be positive, got %g", r.fontScale)
	}
	if r.thickness < 1 {
		return nil, fmt.Errorf("thickness must be at least 1, got %d", r.thickness)
	}

	face, err := r.newFace()
	if err != nil {
		return nil, err
	}
	defer face.Close()

	r.masks = make(map[string]glyphMask, alphabet.Len())
	for i := 0; i < alphabet.Len(); i++ {
		letter := alphabet.At(i)
		if _, ok := r.masks[letter]; ok {
			continue
		}
		mask := renderGlyphMask(face, letter, r.pitch)
		for t := 1; t < r.thickness; t++ {
			mask = mask.dilate()
		}
		r.masks[letter] = mask
	}
	return r, nil
}

// WithCellPitch sets the edge length in pixels of one letter cell.
func WithCellPitch(pitch int) CanvasOption {
	return func(r *CanvasRenderer) {
		r.pitch = pitch
	}
}

// WithFontScale sets the letter size relative to the cell pitch. Only
// TrueType faces honor it; the built-in face has fixed metrics.
func WithFontScale(scale float64) CanvasOption {
	return func(r *CanvasRenderer) {
		r.fontScale = scale
	}
}

// WithThickness sets the stroke thickness in pixels.
func WithThickness(n int) CanvasOption {
	return func(r *CanvasRenderer) {
		r.thickness = n
	}
}

// WithFontFile renders letters with the TrueType font at the given
// path instead of the built-in face.
func WithFontFile(path string) CanvasOption {
	return func(r *CanvasRenderer) {
		r.fontFile = path
	}
}

// Pitch returns the cell edge length in pixels.
func (r *CanvasRenderer) Pitch() int {
	return r.pitch
}

// FrameSize returns the canvas pixel dimensions for a grid with the
// given cell dimensions.
func (r *CanvasRenderer) FrameSize(gridW, gridH int) (int, int) {
	return gridW * r.pitch, gridH * r.pitch
}

// newFace opens the configured font face. The TrueType point size is
// the font scale times twice the pitch, which at 72 DPI makes the
// default scale fill a default cell about as far as the built-in face
// does.
func (r *CanvasRenderer) newFace() (font.Face, error) {
	if r.fontFile == "" {
		return basicfont.Face7x13, nil
	}
	data, err := os.ReadFile(r.fontFile)
	if err != nil {
		return nil, fmt.Errorf("read font %s: %w", r.fontFile, err)
	}
	ttf, err := freetype.ParseFont(data)
	if err != nil {
		return nil, fmt.Errorf("parse font %s: %w", r.fontFile, err)
	}
	return truetype.NewFace(ttf, &truetype.Options{
		Size:    r.fontScale * float64(r.pitch) * 2,
		DPI:     72,
		Hinting: font.HintingFull,
	}), nil
}

// renderGlyphMask renders a single letter into a pitch×pitch coverage
// mask. The letter is drawn into an alpha image and thresholded at 25%
// coverage; anti-aliased edge pixels below that are dropped, which
// keeps thin strokes from smearing once they are stamped in flat
// color.
func renderGlyphMask(face font.Face, letter string, pitch int) glyphMask {
	img := image.NewAlpha(image.Rect(0, 0, pitch, pitch))
	drawer := font.Drawer{
		Dst:  img,
		Src:  image.White,
		Face: face,
		Dot:  fixed.P(glyphInset, pitch-glyphInset),
	}
	drawer.DrawString(letter)

	mask := newGlyphMask(pitch)
	for y := 0; y < pitch; y++ {
		for x := 0; x < pitch; x++ {
			if img.AlphaAt(x, y).A > 64 {
				mask.setBit(x, y, true)
			}
		}
	}
	return mask
}

// Render stamps one glyph grid onto a fresh black canvas of
// gridWidth*pitch × gridHeight*pitch pixels. Visible cells are stamped
// with their letter mask in the cell's color; blank cells stay black.
func (r *CanvasRenderer) Render(g GlyphGrid) *image.RGBA {
	w, h := r.FrameSize(g.Width(), g.Height())
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.Draw(img, img.Bounds(), image.Black, image.Point{}, draw.Src)

	for y := 0; y < g.Height(); y++ {
		for x := 0; x < g.Width(); x++ {
			gl := g.At(x, y)
			if gl.Blank() {
				continue
			}
			mask, ok := r.masks[gl.Char]
			if !ok {
				continue
			}
			r.stamp(img, mask, x*r.pitch, y*r.pitch, gl.Color)
		}
	}
	return img
}

// stamp draws a letter mask at the given canvas position in the given
// color.
func (r *CanvasRenderer) stamp(img *image.RGBA, mask glyphMask, x0, y0 int, c RGB) {
	col := c.toColor()
	for y := 0; y < mask.size; y++ {
		for x := 0; x < mask.size; x++ {
			if mask.getBit(x, y) {
				img.SetRGBA(x0+x, y0+y, col)
			}
		}
	}
}
