package domain

import (
	"strings"
	"testing"
)

func TestDetectImageFormat(t *testing.T) {
	jpegData := []byte{0xFF, 0xD8, 0xFF, 0xE0, 0x00}
	if format := DetectImageFormat(jpegData); format != ImageFormatJPEG {
		t.Errorf("expected jpeg, got %q", format)
	}

	pngData := []byte{0x89, 0x50, 0x4E, 0x47, 0x0D, 0x0A}
	if format := DetectImageFormat(pngData); format != ImageFormatPNG {
		t.Errorf("expected png, got %q", format)
	}

	gifData := []byte("GIF89a.....")
	if format := DetectImageFormat(gifData); format != ImageFormatUnknown {
		t.Errorf("expected unknown, got %q", format)
	}

	if format := DetectImageFormat(nil); format != ImageFormatUnknown {
		t.Errorf("expected unknown for empty input, got %q", format)
	}
}

func TestReflowCaption(t *testing.T) {
	lines := ReflowCaption(strings.Repeat("a", 65), 30)
	if len(lines) != 3 {
		t.Fatalf("expected 3 lines, got %d", len(lines))
	}
	if len(lines[0]) != 30 || len(lines[1]) != 30 || len(lines[2]) != 5 {
		t.Errorf("unexpected line widths: %d %d %d", len(lines[0]), len(lines[1]), len(lines[2]))
	}

	if lines := ReflowCaption("", 30); lines != nil {
		t.Errorf("expected no lines for empty text, got %v", lines)
	}

	lines = ReflowCaption("白い灯台と曇り空の下の海", 5)
	if len(lines) != 3 {
		t.Errorf("expected rune-boundary splits, got %v", lines)
	}
}

func TestBoundWords(t *testing.T) {
	bounded := BoundWords("one two three four five", 3)
	if bounded != "one two three" {
		t.Errorf("unexpected bounded text: %q", bounded)
	}

	short := "a lighthouse at dusk"
	if got := BoundWords(short, 200); got != short {
		t.Errorf("short text should be untouched, got %q", got)
	}
}
