package letterart

import (
	"context"
	"errors"
	"fmt"
	"image"
	"image/draw"
	"image/gif"
	"io"
	"time"

	"github.com/disintegration/imaging"
)

// GIFConfig configures animated GIF playback.
type GIFConfig struct {
	// Downscale is the cell grid scaling factor. Must be positive.
	Downscale float64

	// Mapper converts each composed frame to glyphs. Playback respects
	// whatever cycle mode and carryover it was built with.
	Mapper *Mapper

	// Adjust is applied to each composed frame before downscaling.
	Adjust Adjust

	// HideCursor hides the terminal cursor for the duration of
	// playback.
	HideCursor bool
}

// PlayGIF draws each frame of a GIF to w as letter-art, respecting
// frame delays, disposal methods, and the file's loop count. Frames
// are composed onto a persistent screen first, so partial frames and
// transparency render the way a GIF viewer would show them.
// Cancelling the context ends playback between frames and returns nil.
func PlayGIF(ctx context.Context, w io.Writer, g *gif.GIF, cfg GIFConfig) error {
	if len(g.Image) == 0 {
		return errors.New("gif has no frames")
	}
	if cfg.Downscale <= 0 {
		return fmt.Errorf("downscale factor must be positive, got %g", cfg.Downscale)
	}
	if cfg.Mapper == nil {
		return errors.New("gif playback requires a mapper")
	}

	bounds := g.Image[0].Bounds()
	gridW, gridH := ScaledDims(bounds.Dx(), bounds.Dy(), cfg.Downscale)
	term := NewTermRenderer(w)
	if cfg.HideCursor {
		term.ShowCursor(false)
		defer term.ShowCursor(true)
	}
	if err := term.Clear(); err != nil {
		return err
	}

	render := func(screen *image.RGBA) error {
		img := cfg.Adjust.Apply(screen)
		grid := GridFromImage(imaging.Resize(img, gridW, gridH, imaging.Box))
		return term.RenderFrame(cfg.Mapper.MapFrame(grid))
	}

	// LoopCount 0 loops forever and a negative count plays a single
	// pass. A positive count plays exactly that many passes, not the
	// count+1 that image/gif documents for browser playback.
	passes := g.LoopCount
	if passes < 0 {
		passes = 1
	}

	var screen *image.RGBA
	for c := 0; passes == 0 || c < passes; c++ {
		for i := 0; i < len(g.Image); i++ {
			select {
			case <-ctx.Done():
				return nil
			default:
			}
			// Delay and Disposal are always populated by DecodeAll but
			// may be short on hand-built GIFs.
			var delayCs int
			if i < len(g.Delay) {
				delayCs = g.Delay[i]
			}
			var disposal byte
			if i < len(g.Disposal) {
				disposal = g.Disposal[i]
			}
			delay := time.After(time.Duration(delayCs) * time.Second / 100)
			frame := g.Image[i]

			// The first frame of each pass redraws the screen from
			// scratch.
			if i == 0 {
				screen = image.NewRGBA(bounds)
				draw.Draw(screen, bounds, image.Black, image.Point{}, draw.Src)
			}

			switch disposal {
			// Dispose previous: draw the frame, then restore the
			// screen it covered.
			case gif.DisposalPrevious:
				previous := image.NewRGBA(screen.Bounds())
				copy(previous.Pix, screen.Pix)
				draw.Draw(screen, frame.Bounds(), frame, frame.Bounds().Min, draw.Over)
				if err := render(screen); err != nil {
					return err
				}
				screen = previous
			// Dispose background: draw the frame, then clear its
			// rectangle back to the background.
			case gif.DisposalBackground:
				draw.Draw(screen, frame.Bounds(), frame, frame.Bounds().Min, draw.Over)
				if err := render(screen); err != nil {
					return err
				}
				draw.Draw(screen, frame.Bounds(), image.Black, image.Point{}, draw.Src)
			// Dispose none or undefined: draw over what is there.
			default:
				draw.Draw(screen, frame.Bounds(), frame, frame.Bounds().Min, draw.Over)
				if err := render(screen); err != nil {
					return err
				}
			}

			select {
			case <-ctx.Done():
				return nil
			case <-delay:
			}
		}
	}
	return nil
}
