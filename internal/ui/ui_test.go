package ui

import (
	"bytes"
	"os"
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss"
)

func TestPanelAlignsWideRunes(t *testing.T) {
	var out bytes.Buffer
	SetOutput(&out, nil)
	defer SetOutput(os.Stdout, os.Stderr)
	SetTheme("classic")

	Panel([]string{"Geneva — Chamonix", C(fgGreen, "€ 180")})
	lines := strings.Split(strings.TrimRight(out.String(), "\n"), "\n")
	if len(lines) != 4 {
		t.Fatalf("expected 4 lines, got %d:\n%s", len(lines), out.String())
	}
	if !strings.HasPrefix(lines[0], "┌") || !strings.HasSuffix(lines[3], "┘") {
		t.Fatalf("expected classic corners, got:\n%s", out.String())
	}
	for i, ln := range lines {
		if lipgloss.Width(ln) != lipgloss.Width(lines[0]) {
			t.Errorf("line %d: expected width %d, got %d", i, lipgloss.Width(lines[0]), lipgloss.Width(ln))
		}
	}
}

func TestProgressBar(t *testing.T) {
	tests := []struct {
		done, total, width int
		want               string
	}{
		{0, 4, 8, "░░░░░░░░   0%"},
		{2, 4, 8, "████░░░░  50%"},
		{4, 4, 8, "████████ 100%"},
		{1, 0, 2, "█████ 100%"},
	}
	for _, tt := range tests {
		if got := ProgressBar(tt.done, tt.total, tt.width); got != tt.want {
			t.Errorf("ProgressBar(%d,%d,%d): expected %q, got %q", tt.done, tt.total, tt.width, tt.want, got)
		}
	}
}

func TestColorDisabledForNonTTY(t *testing.T) {
	var out bytes.Buffer
	SetOutput(&out, nil)
	defer SetOutput(os.Stdout, os.Stderr)
	SetColorForcing(false, false)
	if got := C(fgRed, "x"); got != "x" {
		t.Fatalf("expected plain text for a buffer, got %q", got)
	}
}
