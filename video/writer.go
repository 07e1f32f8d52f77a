package video

import (
	"fmt"
	"image"

	"gocv.io/x/gocv"
)

// fourCC selects the mp4 codec for output files.
const fourCC = "mp4v"

// Writer encodes RGBA canvases into an output video file.
type Writer struct {
	vw     *gocv.VideoWriter
	path   string
	frames int
}

// NewWriter creates the output video at path with the given frame rate
// and pixel dimensions. Every frame written afterwards must match
// those dimensions.
func NewWriter(path string, fps float64, width, height int) (*Writer, error) {
	vw, err := gocv.VideoWriterFile(path, fourCC, fps, width, height, true)
	if err != nil {
		return nil, fmt.Errorf("create video %s: %w", path, err)
	}
	// Codec failures surface through IsOpened rather than the
	// constructor error.
	if !vw.IsOpened() {
		vw.Close()
		return nil, fmt.Errorf("create video %s: no %s encoder available", path, fourCC)
	}
	return &Writer{vw: vw, path: path}, nil
}

// WriteFrame encodes one canvas.
func (w *Writer) WriteFrame(img *image.RGBA) error {
	mat, err := gocv.ImageToMatRGB(img)
	if err != nil {
		return fmt.Errorf("convert frame %d: %w", w.frames, err)
	}
	defer mat.Close()

	if err := w.vw.Write(mat); err != nil {
		return fmt.Errorf("write frame %d to %s: %w", w.frames, w.path, err)
	}
	w.frames++
	return nil
}

// Frames returns the number of frames written so far.
func (w *Writer) Frames() int { return w.frames }

// Close flushes the encoder and closes the output file.
func (w *Writer) Close() error {
	return w.vw.Close()
}
