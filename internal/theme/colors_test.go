package theme

import (
	"testing"

	"github.com/gdamore/tcell/v2"
)

func TestHexToColor(t *testing.T) {
	tests := []struct {
		input    string
		expected tcell.Color
	}{
		{"#9ece6a", tcell.NewRGBColor(0x9e, 0xce, 0x6a)},
		{"9ece6a", tcell.NewRGBColor(0x9e, 0xce, 0x6a)},
		{"#f70", tcell.NewRGBColor(0xff, 0x77, 0x00)},
		{"#12345", tcell.ColorDefault},
		{"#gggggg", tcell.ColorDefault},
		{"", tcell.ColorDefault},
	}

	for _, tt := range tests {
		if got := HexToColor(tt.input); got != tt.expected {
			t.Errorf("HexToColor(%q) = %v, want %v", tt.input, got, tt.expected)
		}
	}
}

func TestParseColorString(t *testing.T) {
	tests := []struct {
		input    string
		expected tcell.Color
	}{
		{"#f7768e", tcell.NewRGBColor(0xf7, 0x76, 0x8e)},
		{"  #f7768e  ", tcell.NewRGBColor(0xf7, 0x76, 0x8e)},
		{"rgb(247, 118, 142)", tcell.NewRGBColor(247, 118, 142)},
		{"rgb(300, 0, 0)", tcell.ColorDefault},
		{"rgb(1, 2)", tcell.ColorDefault},
		{"rgb(a, b, c)", tcell.ColorDefault},
		{"crimson", tcell.ColorDefault},
	}

	for _, tt := range tests {
		if got := ParseColorString(tt.input); got != tt.expected {
			t.Errorf("ParseColorString(%q) = %v, want %v", tt.input, got, tt.expected)
		}
	}
}
