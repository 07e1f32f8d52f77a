package letterart

import (
	"bytes"
	"fmt"
	"io"
)

const (
	escHome       = "\x1b[H"
	escClear      = "\x1b[2J"
	escReset      = "\x1b[0m"
	escHideCursor = "\x1b[?25l"
	escShowCursor = "\x1b[?12l\x1b[?25h"
)

// TermRenderer writes glyph grids to a terminal as 24-bit ANSI color
// text. Each frame is assembled in an internal buffer and written in a
// single call, which keeps partially drawn frames off the screen.
type TermRenderer struct {
	w        io.Writer
	homeEach bool
	buf      bytes.Buffer
}

// TermOption is a functional option for configuring a TermRenderer.
type TermOption func(*TermRenderer)

// NewTermRenderer creates a renderer that writes frames to w. By
// default every frame is preceded by a cursor-home escape so frames
// overdraw each other in place.
func NewTermRenderer(w io.Writer, opts ...TermOption) *TermRenderer {
	r := &TermRenderer{
		w:        w,
		homeEach: true,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// WithCursorHome controls the cursor-home escape before each frame.
// One-shot renders of still images disable it so the output scrolls
// like normal text.
func WithCursorHome(home bool) TermOption {
	return func(r *TermRenderer) {
		r.homeEach = home
	}
}

// RenderFrame writes one frame. Every visible cell is emitted as a
// truecolor foreground escape followed by its letter; blank cells are
// a single space. Each row is terminated by a color reset and a
// newline.
func (r *TermRenderer) RenderFrame(g GlyphGrid) error {
	r.buf.Reset()
	if r.homeEach {
		r.buf.WriteString(escHome)
	}
	for y := 0; y < g.Height(); y++ {
		for x := 0; x < g.Width(); x++ {
			gl := g.At(x, y)
			if gl.Blank() {
				r.buf.WriteByte(' ')
				continue
			}
			fmt.Fprintf(&r.buf, "\x1b[38;2;%d;%d;%dm%s",
				gl.Color.R, gl.Color.G, gl.Color.B, gl.Char)
		}
		r.buf.WriteString(escReset)
		r.buf.WriteByte('\n')
	}
	_, err := r.w.Write(r.buf.Bytes())
	return err
}

// Clear erases the screen and homes the cursor. Streaming calls it
// once up front so rows from whatever ran before do not linger beside
// the first frame.
func (r *TermRenderer) Clear() error {
	_, err := io.WriteString(r.w, escClear+escHome)
	return err
}

// ShowCursor shows or hides the terminal cursor.
func (r *TermRenderer) ShowCursor(show bool) error {
	seq := escHideCursor
	if show {
		seq = escShowCursor
	}
	_, err := io.WriteString(r.w, seq)
	return err
}
