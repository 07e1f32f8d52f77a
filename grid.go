package letterart

import (
	"fmt"
	"image"
	"math"

	"github.com/disintegration/imaging"
)

// CellGrid is a downscaled frame: a width×height grid holding one
// sampled color per output cell, stored row-major.
type CellGrid struct {
	w, h int
	px   []RGB
}

// NewCellGrid creates an all-black CellGrid with the given dimensions.
func NewCellGrid(w, h int) *CellGrid {
	return &CellGrid{
		w:  w,
		h:  h,
		px: make([]RGB, w*h),
	}
}

// Width returns the number of cells per row.
func (g *CellGrid) Width() int { return g.w }

// Height returns the number of rows.
func (g *CellGrid) Height() int { return g.h }

// At returns the color of the cell at (x, y).
func (g *CellGrid) At(x, y int) RGB {
	return g.px[y*g.w+x]
}

// Set sets the color of the cell at (x, y).
func (g *CellGrid) Set(x, y int, c RGB) {
	g.px[y*g.w+x] = c
}

// ScaledDims computes the cell grid dimensions for a source of the
// given size under downscale factor f. Each dimension is the floor of
// the scaled size, clamped so the grid is never smaller than 1×1.
func ScaledDims(w, h int, f float64) (int, int) {
	sw := int(math.Floor(float64(w) * f))
	sh := int(math.Floor(float64(h) * f))
	if sw < 1 {
		sw = 1
	}
	if sh < 1 {
		sh = 1
	}
	return sw, sh
}

// GridFromImage samples every pixel of an already-downscaled image
// into a CellGrid, one image pixel per cell.
func GridFromImage(img image.Image) *CellGrid {
	bounds := img.Bounds()
	grid := NewCellGrid(bounds.Dx(), bounds.Dy())
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			grid.Set(x-bounds.Min.X, y-bounds.Min.Y, rgbFromColor(img.At(x, y)))
		}
	}
	return grid
}

// DownscaleImage resizes the image by factor f using a box filter, so
// each cell color is the area average of the source pixels it covers,
// and returns the resulting CellGrid. A non-positive factor is a
// configuration error.
func DownscaleImage(img image.Image, f float64) (*CellGrid, error) {
	if f <= 0 {
		return nil, fmt.Errorf("downscale factor must be positive, got %g", f)
	}
	bounds := img.Bounds()
	w, h := ScaledDims(bounds.Dx(), bounds.Dy(), f)
	return GridFromImage(imaging.Resize(img, w, h, imaging.Box)), nil
}
