package video

import (
	"bytes"
	"errors"
	"log/slog"
	"strings"
	"testing"
)

type fakeCloser struct {
	err error
}

func (c fakeCloser) Close() error { return c.err }

func TestCloseLogged(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, nil))

	closeLogged(fakeCloser{err: errors.New("device busy")}, logger, "close video source")
	out := buf.String()
	if !strings.Contains(out, "level=WARN") {
		t.Errorf("Expected a warning for a failed close, got %q", out)
	}
	if !strings.Contains(out, "close video source") || !strings.Contains(out, "device busy") {
		t.Errorf("Expected the close error in the log, got %q", out)
	}

	buf.Reset()
	closeLogged(fakeCloser{}, logger, "close video source")
	if buf.Len() != 0 {
		t.Errorf("Expected no log for a clean close, got %q", buf.String())
	}
}
