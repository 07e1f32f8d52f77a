// Package video adapts OpenCV video decode and encode to the letterart
// pipeline and drives the two video modes: live terminal streaming and
// baking letter-art frames into an output file.
package video

import (
	"errors"
	"fmt"
	"image"
	"io"
	"log/slog"

	"gocv.io/x/gocv"

	"github.com/letterart/letterart"
)

// Source reads a video file sequentially and hands out frames already
// downscaled to cell grids. It holds OpenCV resources and must be
// closed by the caller.
type Source struct {
	cap       *gocv.VideoCapture
	path      string
	width     int
	height    int
	fps       float64
	total     int
	delivered int
	frame     gocv.Mat
	scaled    gocv.Mat
}

// Open opens the video file at the given path. Failure to open is
// terminal; there is no retry.
func Open(path string) (*Source, error) {
	cap, err := gocv.VideoCaptureFile(path)
	if err != nil {
		return nil, fmt.Errorf("open video %s: %w", path, err)
	}
	return &Source{
		cap:    cap,
		path:   path,
		width:  int(cap.Get(gocv.VideoCaptureFrameWidth)),
		height: int(cap.Get(gocv.VideoCaptureFrameHeight)),
		fps:    cap.Get(gocv.VideoCaptureFPS),
		total:  int(cap.Get(gocv.VideoCaptureFrameCount)),
		frame:  gocv.NewMat(),
		scaled: gocv.NewMat(),
	}, nil
}

// Width returns the native frame width in pixels.
func (s *Source) Width() int { return s.width }

// Height returns the native frame height in pixels.
func (s *Source) Height() int { return s.height }

// FPS returns the container frame rate, or 25 when the container does
// not report one.
func (s *Source) FPS() float64 {
	if s.fps > 0 {
		return s.fps
	}
	return 25
}

// FrameCount returns the frame total reported by the container, which
// may be 0 when unknown.
func (s *Source) FrameCount() int { return s.total }

// Delivered returns the number of frames read so far.
func (s *Source) Delivered() int { return s.delivered }

// Next reads the next frame, downscales it to w×h cells with an area
// average, and returns it as a cell grid in RGB order. It returns
// false when the stream ends; a frame that fails to decode mid-stream
// also ends the stream.
func (s *Source) Next(w, h int) (*letterart.CellGrid, bool) {
	if ok := s.cap.Read(&s.frame); !ok || s.frame.Empty() {
		return nil, false
	}
	gocv.Resize(s.frame, &s.scaled, image.Pt(w, h), 0, 0, gocv.InterpolationArea)

	grid := letterart.NewCellGrid(w, h)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			grid.Set(x, y, rgbFromVecb(s.scaled.GetVecbAt(y, x)))
		}
	}
	s.delivered++
	return grid, true
}

// Close releases the capture and its scratch mats.
func (s *Source) Close() error {
	return errors.Join(
		s.frame.Close(),
		s.scaled.Close(),
		s.cap.Close(),
	)
}

// closeLogged closes c at the end of a pipeline run, logging a failed
// close instead of dropping it.
func closeLogged(c io.Closer, logger *slog.Logger, msg string) {
	if err := c.Close(); err != nil {
		logger.Warn(msg, "error", err)
	}
}

// rgbFromVecb converts a gocv.Vecb, which holds channels in BGR order,
// to an RGB color.
func rgbFromVecb(v gocv.Vecb) letterart.RGB {
	return letterart.RGB{
		R: v[2],
		G: v[1],
		B: v[0],
	}
}
