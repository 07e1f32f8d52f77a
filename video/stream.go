package video

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/letterart/letterart"
)

// StreamConfig configures live terminal playback.
type StreamConfig struct {
	// Alphabet is the letter sequence to cycle. Required.
	Alphabet letterart.Alphabet

	// Downscale is the cell grid scaling factor. It must be positive
	// unless MaxCols and MaxRows are set, in which case 0 derives the
	// factor from the source dimensions so the grid fits.
	Downscale float64

	// MaxCols and MaxRows bound the cell grid when Downscale is 0.
	MaxCols int
	MaxRows int

	// FPS overrides the display rate. 0 plays at the source rate.
	FPS float64

	// Threshold, when set, suppresses near-background cells.
	Threshold *letterart.Threshold

	// Mode selects the letter cycling order.
	Mode letterart.CycleMode

	// RestartEachFrame rewinds the global cycle at every frame instead
	// of carrying it across the whole stream.
	RestartEachFrame bool

	// HideCursor hides the terminal cursor for the duration of the
	// stream.
	HideCursor bool

	// Output receives the ANSI frames. Required.
	Output io.Writer

	// Logger receives diagnostics. Nil uses slog.Default().
	Logger *slog.Logger
}

// Stream plays the video at path to cfg.Output as live letter-art.
// Frames are rendered in place at the display rate until the video
// ends or the context is cancelled; cancellation is a normal exit, and
// the source is released either way.
func Stream(ctx context.Context, path string, cfg StreamConfig) error {
	if cfg.Alphabet.Len() == 0 {
		return errors.New("alphabet must contain at least one character")
	}
	if cfg.Downscale <= 0 && (cfg.MaxCols <= 0 || cfg.MaxRows <= 0) {
		return fmt.Errorf("downscale factor must be positive, got %g", cfg.Downscale)
	}
	if cfg.Output == nil {
		return errors.New("stream requires an output writer")
	}
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	src, err := Open(path)
	if err != nil {
		return err
	}
	defer closeLogged(src, logger, "close video source")

	downscale := cfg.Downscale
	if downscale <= 0 {
		downscale = fitFactor(src.Width(), src.Height(), cfg.MaxCols, cfg.MaxRows)
	}
	gridW, gridH := letterart.ScaledDims(src.Width(), src.Height(), downscale)

	fps := cfg.FPS
	if fps <= 0 {
		fps = src.FPS()
	}
	interval := time.Duration(float64(time.Second) / fps)

	logger.Info("streaming video",
		"path", path,
		"source", fmt.Sprintf("%dx%d", src.Width(), src.Height()),
		"grid", fmt.Sprintf("%dx%d", gridW, gridH),
		"fps", fps,
	)

	opts := []letterart.MapperOption{
		letterart.WithCarryover(!cfg.RestartEachFrame),
	}
	if cfg.Threshold != nil {
		opts = append(opts, letterart.WithThreshold(*cfg.Threshold))
	}
	mapper := letterart.NewMapper(cfg.Alphabet, cfg.Mode, opts...)

	term := letterart.NewTermRenderer(cfg.Output)
	if cfg.HideCursor {
		term.ShowCursor(false)
		defer term.ShowCursor(true)
	}
	if err := term.Clear(); err != nil {
		return err
	}

	for {
		select {
		case <-ctx.Done():
			logger.Info("stream interrupted")
			return nil
		default:
		}

		delay := time.After(interval)
		grid, ok := src.Next(gridW, gridH)
		if !ok {
			break
		}
		if err := term.RenderFrame(mapper.MapFrame(grid)); err != nil {
			return fmt.Errorf("render frame %d: %w", src.Delivered(), err)
		}

		select {
		case <-ctx.Done():
			logger.Info("stream interrupted")
			return nil
		case <-delay:
		}
	}

	if total := src.FrameCount(); total > 0 && src.Delivered() < total {
		logger.Warn("stream ended before the reported frame count",
			"delivered", src.Delivered(),
			"reported", total,
		)
	}
	return nil
}

// fitFactor returns the largest downscale factor that keeps the cell
// grid for a w×h source within cols×rows, capped at 1 so video is
// never upscaled to fill a terminal.
func fitFactor(w, h, cols, rows int) float64 {
	fx := float64(cols) / float64(w)
	fy := float64(rows) / float64(h)
	f := fx
	if fy < fx {
		f = fy
	}
	if f > 1 {
		return 1
	}
	return f
}
