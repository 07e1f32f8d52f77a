package letterart

import "fmt"

// CycleMode selects how the Mapper walks the alphabet while visiting
// cells.
type CycleMode int

const (
	// CycleGlobal advances a single running counter for every cell
	// visited in raster order. Suppressed cells consume a letter
	// position just like visible ones, so the letter sequence skips
	// over silhouette gaps.
	CycleGlobal CycleMode = iota

	// CycleRow restarts the alphabet at each row: the letter for a
	// cell is its column index modulo the alphabet length, independent
	// of suppression, row, and frame.
	CycleRow
)

// String returns the mode's CLI spelling.
func (m CycleMode) String() string {
	switch m {
	case CycleGlobal:
		return "global"
	case CycleRow:
		return "row"
	default:
		return fmt.Sprintf("CycleMode(%d)", int(m))
	}
}

// ParseCycleMode parses the CLI spelling of a cycle mode.
func ParseCycleMode(s string) (CycleMode, error) {
	switch s {
	case "global":
		return CycleGlobal, nil
	case "row":
		return CycleRow, nil
	default:
		return 0, fmt.Errorf("unknown cycle mode %q (want global or row)", s)
	}
}

// Glyph is one output cell: a letter and the color to draw it in. A
// suppressed background cell has an empty Char and renders as empty
// space.
type Glyph struct {
	Char  string
	Color RGB
}

// Blank reports whether the glyph is a suppressed background cell.
func (g Glyph) Blank() bool {
	return g.Char == ""
}

// GlyphGrid is a width×height grid of output glyphs, stored row-major.
// The zero value of a cell is a blank glyph.
type GlyphGrid struct {
	w, h  int
	cells []Glyph
}

// NewGlyphGrid creates an all-blank GlyphGrid with the given
// dimensions.
func NewGlyphGrid(w, h int) GlyphGrid {
	return GlyphGrid{
		w:     w,
		h:     h,
		cells: make([]Glyph, w*h),
	}
}

// Width returns the number of cells per row.
func (g GlyphGrid) Width() int { return g.w }

// Height returns the number of rows.
func (g GlyphGrid) Height() int { return g.h }

// At returns the glyph at (x, y).
func (g GlyphGrid) At(x, y int) Glyph {
	return g.cells[y*g.w+x]
}

func (g GlyphGrid) set(x, y int, gl Glyph) {
	g.cells[y*g.w+x] = gl
}

// Mapper converts cell grids into glyph grids by cycling through an
// alphabet. It owns the global cycling counter, so one Mapper handles
// one stream of frames; concurrent use requires separate Mappers.
type Mapper struct {
	alphabet  Alphabet
	mode      CycleMode
	threshold *Threshold
	carryover bool
	counter   int
}

// MapperOption is a functional option for configuring a Mapper.
type MapperOption func(*Mapper)

// NewMapper creates a Mapper for the given alphabet and cycle mode.
// By default no threshold is applied (every cell emits a letter) and
// the global counter restarts at every frame. The alphabet must have
// at least one letter, as every alphabet built with NewAlphabet does;
// NewMapper panics on an empty one rather than letting MapFrame fail
// on its first cell.
func NewMapper(alphabet Alphabet, mode CycleMode, opts ...MapperOption) *Mapper {
	if alphabet.Len() == 0 {
		panic("letterart: mapper needs a non-empty alphabet")
	}
	m := &Mapper{
		alphabet: alphabet,
		mode:     mode,
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// WithThreshold enables silhouette suppression: cells at or below the
// threshold on all three channels become blank.
func WithThreshold(t Threshold) MapperOption {
	return func(m *Mapper) {
		m.threshold = &t
	}
}

// WithCarryover controls whether the global counter persists across
// frames. Carrying it over makes the letter sequence continuous for
// the lifetime of the Mapper, the behavior live streaming wants;
// without it each frame starts again at the first letter, the behavior
// file output wants. It has no effect in CycleRow mode.
func WithCarryover(carry bool) MapperOption {
	return func(m *Mapper) {
		m.carryover = carry
	}
}

// MapFrame maps one cell grid to a glyph grid of the same dimensions,
// visiting cells in raster order. Cell colors pass through unmodified.
func (m *Mapper) MapFrame(grid *CellGrid) GlyphGrid {
	if m.mode == CycleGlobal && !m.carryover {
		m.counter = 0
	}
	out := NewGlyphGrid(grid.Width(), grid.Height())
	for y := 0; y < grid.Height(); y++ {
		for x := 0; x < grid.Width(); x++ {
			c := grid.At(x, y)
			suppressed := m.threshold != nil && m.threshold.Covers(c)
			switch m.mode {
			case CycleRow:
				if !suppressed {
					out.set(x, y, Glyph{Char: m.alphabet.At(x), Color: c})
				}
			default:
				if !suppressed {
					out.set(x, y, Glyph{Char: m.alphabet.At(m.counter), Color: c})
				}
				// Suppressed cells advance the counter too.
				m.counter++
			}
		}
	}
	return out
}

// ResetCycle rewinds the global counter to the start of the alphabet.
func (m *Mapper) ResetCycle() {
	m.counter = 0
}
