package theme

import (
	"github.com/gdamore/tcell/v2"
)

// Colors holds all the color definitions for the theme
type Colors struct {
	// Tree view colors
	TreeNormalText     tcell.Color
	TreeSelectedItem   tcell.Color
	TreeSelectedBg     tcell.Color
	TreePlaceholder    tcell.Color
	TreeLeafArrow      tcell.Color
	TreeExpandedArrow  tcell.Color
	TreeCollapsedArrow tcell.Color

	// Change classification colors
	ChangeAdded    tcell.Color
	ChangeModified tcell.Color
	ChangeRemoved  tcell.Color

	// Filter bar colors
	FilterLabel tcell.Color
	FilterText  tcell.Color
	FilterCount tcell.Color

	// Status line colors
	StatusMode    tcell.Color
	StatusMessage tcell.Color
	StatusDetail  tcell.Color

	// Header colors
	HeaderTitle tcell.Color
}

// Theme represents a complete color theme
type Theme struct {
	Name   string
	Colors Colors
}

// Default returns a default theme using terminal defaults
func Default() *Theme {
	return &Theme{
		Name: "default",
		Colors: Colors{
			// Use tcell default for most elements
			TreeNormalText:     tcell.ColorDefault,
			TreeSelectedItem:   tcell.ColorDefault,
			TreeSelectedBg:     tcell.ColorDefault,
			TreePlaceholder:    tcell.ColorDefault,
			TreeLeafArrow:      tcell.ColorDefault,
			TreeExpandedArrow:  tcell.ColorDefault,
			TreeCollapsedArrow: tcell.ColorDefault,
			ChangeAdded:        tcell.ColorGreen,
			ChangeModified:     tcell.ColorYellow,
			ChangeRemoved:      tcell.ColorRed,
			FilterLabel:        tcell.ColorDefault,
			FilterText:         tcell.ColorDefault,
			FilterCount:        tcell.ColorDefault,
			StatusMode:         tcell.ColorDefault,
			StatusMessage:      tcell.ColorDefault,
			StatusDetail:       tcell.ColorDefault,
			HeaderTitle:        tcell.ColorDefault,
		},
	}
}

// TokyoNight returns the Tokyo Night theme
func TokyoNight() *Theme {
	return &Theme{
		Name: "tokyo-night",
		Colors: Colors{
			// Tokyo Night palette
			TreeNormalText:     HexToColor("#c0caf5"), // Light gray-blue
			TreeSelectedItem:   HexToColor("#c0caf5"), // Light gray-blue
			TreeSelectedBg:     HexToColor("#283457"), // Selection blue
			TreePlaceholder:    HexToColor("#565f89"), // Comment gray
			TreeLeafArrow:      HexToColor("#7dcfff"), // Cyan
			TreeExpandedArrow:  HexToColor("#7dcfff"), // Cyan
			TreeCollapsedArrow: HexToColor("#7dcfff"), // Cyan
			ChangeAdded:        HexToColor("#9ece6a"), // Green
			ChangeModified:     HexToColor("#e0af68"), // Yellow
			ChangeRemoved:      HexToColor("#f7768e"), // Red
			FilterLabel:        HexToColor("#bb9af7"), // Magenta
			FilterText:         HexToColor("#c0caf5"), // Light gray-blue
			FilterCount:        HexToColor("#9ece6a"), // Green
			StatusMode:         HexToColor("#bb9af7"), // Magenta
			StatusMessage:      HexToColor("#9ece6a"), // Green
			StatusDetail:       HexToColor("#7aa2f7"), // Blue
			HeaderTitle:        HexToColor("#bb9af7"), // Magenta
		},
	}
}
