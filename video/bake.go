package video

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/letterart/letterart"
)

// BakeConfig configures rendering a video file into a letter-art
// video file.
type BakeConfig struct {
	// Alphabet is the letter sequence to cycle. Required.
	Alphabet letterart.Alphabet

	// Downscale is the cell grid scaling factor. Must be positive.
	Downscale float64

	// Threshold, when set, suppresses near-background cells.
	Threshold *letterart.Threshold

	// Mode selects the letter cycling order.
	Mode letterart.CycleMode

	// Carryover carries the global cycle across frames instead of
	// restarting it at each frame.
	Carryover bool

	// CellPitch is the output pixel size of one letter cell. 0 uses
	// the default pitch.
	CellPitch int

	// FontScale is the letter size relative to the cell pitch. 0 uses
	// the default scale.
	FontScale float64

	// Thickness is the stroke thickness in pixels. 0 uses 1.
	Thickness int

	// FontFile, when set, renders letters with this TrueType font.
	FontFile string

	// FPS overrides the output frame rate. 0 keeps the source rate.
	FPS float64

	// Logger receives progress diagnostics. Nil uses slog.Default().
	Logger *slog.Logger
}

// Bake reads the video at inPath, renders every frame as letter-art on
// a black canvas, and encodes the result to outPath. The output file
// is flushed and closed on every exit path, including cancellation, so
// an interrupted bake leaves a playable truncated video rather than a
// corrupt one.
func Bake(ctx context.Context, inPath, outPath string, cfg BakeConfig) (err error) {
	if cfg.Alphabet.Len() == 0 {
		return errors.New("alphabet must contain at least one character")
	}
	if cfg.Downscale <= 0 {
		return fmt.Errorf("downscale factor must be positive, got %g", cfg.Downscale)
	}
	if outPath == "" {
		return errors.New("bake requires an output path")
	}
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	var copts []letterart.CanvasOption
	if cfg.CellPitch > 0 {
		copts = append(copts, letterart.WithCellPitch(cfg.CellPitch))
	}
	if cfg.FontScale > 0 {
		copts = append(copts, letterart.WithFontScale(cfg.FontScale))
	}
	if cfg.Thickness > 0 {
		copts = append(copts, letterart.WithThickness(cfg.Thickness))
	}
	if cfg.FontFile != "" {
		copts = append(copts, letterart.WithFontFile(cfg.FontFile))
	}
	canvas, err := letterart.NewCanvasRenderer(cfg.Alphabet, copts...)
	if err != nil {
		return err
	}

	src, err := Open(inPath)
	if err != nil {
		return err
	}
	defer closeLogged(src, logger, "close video source")

	gridW, gridH := letterart.ScaledDims(src.Width(), src.Height(), cfg.Downscale)
	outW, outH := canvas.FrameSize(gridW, gridH)

	fps := cfg.FPS
	if fps <= 0 {
		fps = src.FPS()
	}

	out, err := NewWriter(outPath, fps, outW, outH)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := out.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("close output %s: %w", outPath, cerr)
		}
	}()

	opts := []letterart.MapperOption{
		letterart.WithCarryover(cfg.Carryover),
	}
	if cfg.Threshold != nil {
		opts = append(opts, letterart.WithThreshold(*cfg.Threshold))
	}
	mapper := letterart.NewMapper(cfg.Alphabet, cfg.Mode, opts...)

	total := src.FrameCount()
	logger.Info("baking video",
		"path", inPath,
		"source", fmt.Sprintf("%dx%d", src.Width(), src.Height()),
		"grid", fmt.Sprintf("%dx%d", gridW, gridH),
		"output", fmt.Sprintf("%dx%d", outW, outH),
		"fps", fps,
		"frames", total,
	)

	for {
		select {
		case <-ctx.Done():
			logger.Warn("bake interrupted", "frames", out.Frames())
			return nil
		default:
		}

		grid, ok := src.Next(gridW, gridH)
		if !ok {
			break
		}
		if err := out.WriteFrame(canvas.Render(mapper.MapFrame(grid))); err != nil {
			return err
		}
		if out.Frames()%10 == 0 {
			logger.Info("processing", "frame", out.Frames(), "total", total)
		}
	}

	if total > 0 && src.Delivered() < total {
		logger.Warn("input ended before the reported frame count",
			"delivered", src.Delivered(),
			"reported", total,
		)
	}
	logger.Info("wrote video", "path", outPath, "frames", out.Frames())
	return nil
}
