package popup

import (
	"strings"
	"testing"

	"github.com/charmbracelet/x/ansi"
)

func TestCompose_ReplacesOverlaySpan(t *testing.T) {
	base := strings.Join([]string{
		"aaaaaaaaaa",
		"bbbbbbbbbb",
		"cccccccccc",
	}, "\n")
	overlay := "\n  XY\n"

	got := Compose(base, overlay, 10)

	want := strings.Join([]string{
		"aaaaaaaaaa",
		"bbXYbbbbbb",
		"cccccccccc",
	}, "\n")
	if got != want {
		t.Errorf("Compose() =\n%s\nwant\n%s", got, want)
	}
}

func TestCompose_PadsShortBaseLines(t *testing.T) {
	got := Compose("ab", "    Z", 6)

	if got != "ab  Z " {
		t.Errorf("Compose() = %q, want %q", got, "ab  Z ")
	}
}

func TestCompose_OverlayLongerThanBase(t *testing.T) {
	got := Compose("aaaa", "XX\nYY", 4)

	if got != "XXaa" {
		t.Errorf("Compose() = %q, want %q", got, "XXaa")
	}
}

func TestCenter(t *testing.T) {
	got := Center("ab\ncd", 6, 6)

	lines := strings.Split(got, "\n")
	if len(lines) != 4 {
		t.Fatalf("Center() produced %d lines, want 4: %q", len(lines), got)
	}
	if lines[2] != "  ab" || lines[3] != "  cd" {
		t.Errorf("Center() box lines = %q, %q", lines[2], lines[3])
	}
}

func TestRenderBordered_ContainsContent(t *testing.T) {
	got := ansi.Strip(RenderBordered("Jump to frame", 40, 12))

	if !strings.Contains(got, "Jump to frame") {
		t.Errorf("RenderBordered() missing content: %q", got)
	}
	if !strings.Contains(got, "╭") {
		t.Errorf("RenderBordered() missing border: %q", got)
	}
}
