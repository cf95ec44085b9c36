package folio

import (
	"image/color"
	"testing"
)

func TestColorFromHex(t *testing.T) {
	c := ColorFromHex(0xff8000)
	if c.R != 1 || !approx(c.G, 128.0/255, 1e-9) || c.B != 0 || c.A != 1 {
		t.Errorf("ColorFromHex = %+v", c)
	}
	for _, hex := range []uint32{0x000000, 0x336699, 0xffffff, 0x0a0b0c} {
		if got := ColorFromHex(hex).Hex(); got != hex {
			t.Errorf("Hex(%06x) = %06x", hex, got)
		}
	}
}

func TestColorHexClamps(t *testing.T) {
	if got := (Color{R: 2, G: -1, B: 0.5}).Hex(); got != 0xff0080 {
		t.Errorf("Hex = %06x, want ff0080", got)
	}
}

func TestColorRGBAPremultiplies(t *testing.T) {
	got := Color{1, 0.5, 0, 0.5}.RGBA()
	want := color.RGBA{128, 64, 0, 128}
	if got != want {
		t.Errorf("RGBA = %v, want %v", got, want)
	}
}

func TestRectContains(t *testing.T) {
	r := Rect{X: 10, Y: 20, Width: 100, Height: 50}
	tests := []struct {
		x, y float64
		want bool
	}{
		{50, 40, true},
		{10, 20, true}, // top-left edge
		{110, 70, true},
		{9.9, 40, false},
		{50, 70.1, false},
	}
	for _, tt := range tests {
		if got := r.Contains(tt.x, tt.y); got != tt.want {
			t.Errorf("Contains(%v, %v) = %v, want %v", tt.x, tt.y, got, tt.want)
		}
	}
}

func TestEventTypeString(t *testing.T) {
	if EventHoverEnter.String() != "hover-enter" || EventModalHidden.String() != "modal-hidden" {
		t.Error("unexpected event names")
	}
	if EventType(99).String() != "unknown" {
		t.Error("out-of-range event should be unknown")
	}
}
