package letterart

import (
	"image/color"
	"testing"
)

func TestThresholdCovers(t *testing.T) {
	t.Parallel()

	th := Threshold{R: 10, G: 10, B: 10}
	cases := []struct {
		c    RGB
		want bool
	}{
		{RGB{0, 0, 0}, true},
		{RGB{10, 10, 10}, true},
		{RGB{10, 10, 11}, false},
		{RGB{11, 0, 0}, false},
		{RGB{255, 255, 255}, false},
	}
	for _, c := range cases {
		if got := th.Covers(c.c); got != c.want {
			t.Errorf("Covers(%v): expected %v, got %v", c.c, c.want, got)
		}
	}
}

func TestParseThreshold(t *testing.T) {
	t.Parallel()

	th, err := ParseThreshold("10,20,30")
	if err != nil {
		t.Fatalf("ParseThreshold failed: %v", err)
	}
	if th != (Threshold{R: 10, G: 20, B: 30}) {
		t.Errorf("Expected (10, 20, 30), got %v", th)
	}

	// Spaces around components are fine.
	th, err = ParseThreshold("30, 30, 30")
	if err != nil {
		t.Fatalf("ParseThreshold with spaces failed: %v", err)
	}
	if th != (Threshold{R: 30, G: 30, B: 30}) {
		t.Errorf("Expected (30, 30, 30), got %v", th)
	}
}

func TestParseThresholdRejectsMalformed(t *testing.T) {
	t.Parallel()

	for _, s := range []string{"", "10", "10,20", "10,20,30,40", "a,b,c", "256,0,0", "-1,0,0"} {
		if _, err := ParseThreshold(s); err == nil {
			t.Errorf("Expected an error for %q", s)
		}
	}
}

func TestRGBColorConversion(t *testing.T) {
	t.Parallel()

	c := RGB{R: 1, G: 2, B: 3}
	got := c.toColor()
	if got != (color.RGBA{R: 1, G: 2, B: 3, A: 255}) {
		t.Errorf("Expected an opaque (1, 2, 3), got %v", got)
	}
	if back := rgbFromColor(got); back != c {
		t.Errorf("Expected %v back, got %v", c, back)
	}
}
