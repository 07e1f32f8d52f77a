package letterart

import (
	"bytes"
	"context"
	"image"
	"image/color"
	"image/gif"
	"strings"
	"testing"
)

func filledFrame(t *testing.T, rect image.Rectangle, c color.Color) *image.Paletted {
	t.Helper()
	p := image.NewPaletted(rect, color.Palette{c})
	for i := range p.Pix {
		p.Pix[i] = 0
	}
	return p
}

func testGIFConfig(t *testing.T) GIFConfig {
	t.Helper()
	return GIFConfig{
		Downscale: 1,
		Mapper:    NewMapper(mustAlphabet(t, "X"), CycleGlobal, WithCarryover(true)),
	}
}

func TestPlayGIFRendersEachFrame(t *testing.T) {
	t.Parallel()

	white := color.RGBA{R: 255, G: 255, B: 255, A: 255}
	red := color.RGBA{R: 255, A: 255}
	g := &gif.GIF{
		Image: []*image.Paletted{
			filledFrame(t, image.Rect(0, 0, 2, 2), white),
			filledFrame(t, image.Rect(0, 0, 2, 2), red),
		},
		Delay:     []int{0, 0},
		Disposal:  []byte{gif.DisposalNone, gif.DisposalNone},
		LoopCount: -1,
	}

	var buf bytes.Buffer
	if err := PlayGIF(context.Background(), &buf, g, testGIFConfig(t)); err != nil {
		t.Fatalf("PlayGIF failed: %v", err)
	}

	// Two 2-row frames, one pass.
	if got := strings.Count(buf.String(), "\x1b[0m\n"); got != 4 {
		t.Errorf("Expected 4 rendered rows, got %d", got)
	}
	if !strings.Contains(buf.String(), "\x1b[38;2;255;0;0mX") {
		t.Error("Expected the second frame's red cells in the output")
	}
}

func TestPlayGIFLoopCount(t *testing.T) {
	t.Parallel()

	white := color.RGBA{R: 255, G: 255, B: 255, A: 255}
	g := &gif.GIF{
		Image: []*image.Paletted{
			filledFrame(t, image.Rect(0, 0, 2, 2), white),
		},
		Delay:     []int{0},
		LoopCount: 3,
	}

	var buf bytes.Buffer
	if err := PlayGIF(context.Background(), &buf, g, testGIFConfig(t)); err != nil {
		t.Fatalf("PlayGIF failed: %v", err)
	}
	// A positive loop count plays exactly that many passes.
	if got := strings.Count(buf.String(), "\x1b[0m\n"); got != 6 {
		t.Errorf("Expected 6 rendered rows over 3 passes, got %d", got)
	}
}

func TestPlayGIFDisposalNoneComposesOverPrevious(t *testing.T) {
	t.Parallel()

	white := color.RGBA{R: 255, G: 255, B: 255, A: 255}
	black := color.RGBA{A: 255}
	g := &gif.GIF{
		Image: []*image.Paletted{
			filledFrame(t, image.Rect(0, 0, 2, 2), white),
			// A 1x1 patch: the other three cells must survive from
			// the first frame.
			filledFrame(t, image.Rect(0, 0, 1, 1), black),
		},
		Delay:     []int{0, 0},
		Disposal:  []byte{gif.DisposalNone, gif.DisposalNone},
		LoopCount: -1,
	}

	var buf bytes.Buffer
	if err := PlayGIF(context.Background(), &buf, g, testGIFConfig(t)); err != nil {
		t.Fatalf("PlayGIF failed: %v", err)
	}
	wantRow := "\x1b[38;2;0;0;0mX\x1b[38;2;255;255;255mX\x1b[0m\n"
	if !strings.Contains(buf.String(), wantRow) {
		t.Errorf("Expected the patched row %q in the output", wantRow)
	}
}

func TestPlayGIFDisposalPreviousRestores(t *testing.T) {
	t.Parallel()

	white := color.RGBA{R: 255, G: 255, B: 255, A: 255}
	red := color.RGBA{R: 255, A: 255}
	g := &gif.GIF{
		Image: []*image.Paletted{
			filledFrame(t, image.Rect(0, 0, 2, 2), white),
			// A 1x1 patch that must vanish again once its frame has
			// been shown.
			filledFrame(t, image.Rect(0, 0, 1, 1), red),
			filledFrame(t, image.Rect(0, 0, 2, 2), color.Transparent),
		},
		Delay:     []int{0, 0, 0},
		Disposal:  []byte{gif.DisposalNone, gif.DisposalPrevious, gif.DisposalNone},
		LoopCount: -1,
	}

	var buf bytes.Buffer
	if err := PlayGIF(context.Background(), &buf, g, testGIFConfig(t)); err != nil {
		t.Fatalf("PlayGIF failed: %v", err)
	}

	patched := "\x1b[38;2;255;0;0mX\x1b[38;2;255;255;255mX\x1b[0m\n"
	if got := strings.Count(buf.String(), patched); got != 1 {
		t.Errorf("Expected the patch row exactly once, got %d", got)
	}
	whiteRow := "\x1b[38;2;255;255;255mX\x1b[38;2;255;255;255mX\x1b[0m\n"
	if !strings.HasSuffix(buf.String(), "\x1b[H"+whiteRow+whiteRow) {
		t.Error("Expected the screen restored to all white after the patch frame")
	}
}

func TestPlayGIFDisposalBackgroundClears(t *testing.T) {
	t.Parallel()

	white := color.RGBA{R: 255, G: 255, B: 255, A: 255}
	g := &gif.GIF{
		Image: []*image.Paletted{
			filledFrame(t, image.Rect(0, 0, 2, 2), white),
			// Fully transparent frame: with the first frame disposed
			// to background, everything shows black.
			filledFrame(t, image.Rect(0, 0, 2, 2), color.Transparent),
		},
		Delay:     []int{0, 0},
		Disposal:  []byte{gif.DisposalBackground, gif.DisposalNone},
		LoopCount: -1,
	}

	var buf bytes.Buffer
	if err := PlayGIF(context.Background(), &buf, g, testGIFConfig(t)); err != nil {
		t.Fatalf("PlayGIF failed: %v", err)
	}
	wantRow := "\x1b[38;2;0;0;0mX\x1b[38;2;0;0;0mX\x1b[0m\n"
	if !strings.Contains(buf.String(), wantRow) {
		t.Errorf("Expected a black row %q after background disposal", wantRow)
	}
}

func TestPlayGIFHonorsContext(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	white := color.RGBA{R: 255, G: 255, B: 255, A: 255}
	g := &gif.GIF{
		Image:     []*image.Paletted{filledFrame(t, image.Rect(0, 0, 2, 2), white)},
		Delay:     []int{0},
		LoopCount: 0,
	}

	var buf bytes.Buffer
	if err := PlayGIF(ctx, &buf, g, testGIFConfig(t)); err != nil {
		t.Fatalf("Expected cancellation to end playback cleanly, got %v", err)
	}
	if strings.Contains(buf.String(), "\x1b[0m") {
		t.Error("Expected no frames rendered after cancellation")
	}
}

func TestPlayGIFValidation(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	white := color.RGBA{R: 255, G: 255, B: 255, A: 255}
	frame := filledFrame(t, image.Rect(0, 0, 1, 1), white)

	if err := PlayGIF(context.Background(), &buf, &gif.GIF{}, testGIFConfig(t)); err == nil {
		t.Error("Expected an error for a GIF with no frames")
	}

	cfg := testGIFConfig(t)
	cfg.Downscale = 0
	g := &gif.GIF{Image: []*image.Paletted{frame}, Delay: []int{0}, LoopCount: -1}
	if err := PlayGIF(context.Background(), &buf, g, cfg); err == nil {
		t.Error("Expected an error for a zero downscale factor")
	}

	cfg = testGIFConfig(t)
	cfg.Mapper = nil
	if err := PlayGIF(context.Background(), &buf, g, cfg); err == nil {
		t.Error("Expected an error for a missing mapper")
	}
}
