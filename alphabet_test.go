package letterart

import "testing"

func TestNewAlphabet(t *testing.T) {
	t.Parallel()

	a, err := NewAlphabet("DIONELA")
	if err != nil {
		t.Fatalf("NewAlphabet failed: %v", err)
	}
	if a.Len() != 7 {
		t.Errorf("Expected 7 letters, got %d", a.Len())
	}
	if a.At(0) != "D" {
		t.Errorf("Expected 'D' at 0, got %q", a.At(0))
	}
	if a.At(6) != "A" {
		t.Errorf("Expected 'A' at 6, got %q", a.At(6))
	}
}

func TestNewAlphabetEmpty(t *testing.T) {
	t.Parallel()

	if _, err := NewAlphabet(""); err == nil {
		t.Error("Expected an error for an empty alphabet")
	}
}

func TestAlphabetIndexWrapsAround(t *testing.T) {
	t.Parallel()

	a := mustAlphabet(t, "AB")
	if a.At(2) != "A" {
		t.Errorf("Expected 'A' at 2, got %q", a.At(2))
	}
	if a.At(7) != "B" {
		t.Errorf("Expected 'B' at 7, got %q", a.At(7))
	}
}

func TestAlphabetGraphemeClusters(t *testing.T) {
	t.Parallel()

	// A combining sequence and a ZWJ emoji each count as one letter.
	a := mustAlphabet(t, "Xe\u0301\U0001F469\u200D\U0001F680")
	if a.Len() != 3 {
		t.Fatalf("Expected 3 letters, got %d", a.Len())
	}
	if a.At(1) != "e\u0301" {
		t.Errorf("Expected the combining sequence at 1, got %q", a.At(1))
	}
	if a.At(2) != "\U0001F469\u200D\U0001F680" {
		t.Errorf("Expected the ZWJ emoji at 2, got %q", a.At(2))
	}
}

func TestAlphabetString(t *testing.T) {
	t.Parallel()

	a := mustAlphabet(t, "DIONELA")
	if a.String() != "DIONELA" {
		t.Errorf("Expected 'DIONELA', got %q", a.String())
	}
}
