package ui

import (
	"fmt"

	"github.com/gdamore/tcell/v2"
	"github.com/pstuifzand/tui-diffview/internal/config"
	"github.com/pstuifzand/tui-diffview/internal/theme"
)

// Screen manages the tcell screen and rendering
type Screen struct {
	tcellScreen tcell.Screen
	width       int
	height      int
	Theme       *theme.Theme
}

// NewScreen creates a new Screen instance with the configured theme
func NewScreen() (*Screen, error) {
	// Load config to get the theme name
	cfg, err := config.Load()
	if err != nil {
		// If config fails to load, use Default as fallback
		return NewScreenWithTheme(theme.Default())
	}

	// Load the theme based on config
	// Try to load from TOML files first, fall back to built-in Default
	t := theme.LoadThemeOrDefault(cfg.Theme)
	return NewScreenWithTheme(t)
}

// NewScreenWithTheme creates a new Screen instance with a specific theme
func NewScreenWithTheme(t *theme.Theme) (*Screen, error) {
	tcellScreen, err := tcell.NewScreen()
	if err != nil {
		return nil, fmt.Errorf("failed to create screen: %w", err)
	}

	if err := tcellScreen.Init(); err != nil {
		return nil, fmt.Errorf("failed to init screen: %w", err)
	}

	width, height := tcellScreen.Size()
	return &Screen{
		tcellScreen: tcellScreen,
		width:       width,
		height:      height,
		Theme:       t,
	}, nil
}

// Close closes the screen
func (s *Screen) Close() error {
	s.tcellScreen.Fini()
	return nil
}

// Clear clears the entire screen
func (s *Screen) Clear() {
	s.tcellScreen.Clear()
}

// SetCell sets a cell at the given position
func (s *Screen) SetCell(x, y int, r rune, style tcell.Style) {
	if x >= 0 && x < s.width && y >= 0 && y < s.height {
		s.tcellScreen.SetContent(x, y, r, nil, style)
	}
}

// DrawString draws a string at the given position with the given style
func (s *Screen) DrawString(x, y int, text string, style tcell.Style) {
	col := x
	for _, r := range text {
		s.SetCell(col, y, r, style)
		col += RuneWidth(r)
	}
}

// DrawStringLimited draws a string, truncating it if it exceeds maxWidth
func (s *Screen) DrawStringLimited(x, y int, text string, maxWidth int, style tcell.Style) {
	if maxWidth <= 0 {
		return
	}
	s.DrawString(x, y, TruncateToWidth(text, maxWidth), style)
}

// PollEvent polls for the next event (key press, mouse, etc.)
func (s *Screen) PollEvent() tcell.Event {
	return s.tcellScreen.PollEvent()
}

// Show shows the screen
func (s *Screen) Show() {
	s.tcellScreen.Show()
}

// Size returns the width and height of the screen
func (s *Screen) Size() (int, int) {
	w, h := s.tcellScreen.Size()
	s.width = w
	s.height = h
	return w, h
}

// GetWidth returns the width of the screen
func (s *Screen) GetWidth() int {
	s.width, _ = s.tcellScreen.Size()
	return s.width
}

// GetHeight returns the height of the screen
func (s *Screen) GetHeight() int {
	_, s.height = s.tcellScreen.Size()
	return s.height
}

// Theme-aware style methods

// TreeNormalStyle returns the style for normal tree rows
func (s *Screen) TreeNormalStyle() tcell.Style {
	return theme.ColorToStyle(s.Theme.Colors.TreeNormalText)
}

// TreeSelectedStyle returns the style for the selected tree row
func (s *Screen) TreeSelectedStyle() tcell.Style {
	return theme.ColorPairToStyle(s.Theme.Colors.TreeSelectedItem, s.Theme.Colors.TreeSelectedBg).Bold(true)
}

// TreePlaceholderStyle returns the style for unchanged ancestor rows
func (s *Screen) TreePlaceholderStyle() tcell.Style {
	return theme.ColorToStyle(s.Theme.Colors.TreePlaceholder).Dim(true)
}

// TreeLeafArrowStyle returns the style for leaf node arrows
func (s *Screen) TreeLeafArrowStyle() tcell.Style {
	return theme.ColorToStyle(s.Theme.Colors.TreeLeafArrow)
}

// TreeExpandedArrowStyle returns the style for expanded node arrows
func (s *Screen) TreeExpandedArrowStyle() tcell.Style {
	return theme.ColorToStyle(s.Theme.Colors.TreeExpandedArrow)
}

// TreeCollapsedArrowStyle returns the style for collapsed node arrows
func (s *Screen) TreeCollapsedArrowStyle() tcell.Style {
	return theme.ColorToStyle(s.Theme.Colors.TreeCollapsedArrow)
}

// ChangeAddedStyle returns the style for added entries
func (s *Screen) ChangeAddedStyle() tcell.Style {
	return theme.ColorToStyle(s.Theme.Colors.ChangeAdded)
}

// ChangeModifiedStyle returns the style for modified entries
func (s *Screen) ChangeModifiedStyle() tcell.Style {
	return theme.ColorToStyle(s.Theme.Colors.ChangeModified)
}

// ChangeRemovedStyle returns the style for removed entries
func (s *Screen) ChangeRemovedStyle() tcell.Style {
	return theme.ColorToStyle(s.Theme.Colors.ChangeRemoved)
}

// FilterLabelStyle returns the style for the filter label
func (s *Screen) FilterLabelStyle() tcell.Style {
	return theme.ColorToStyle(s.Theme.Colors.FilterLabel)
}

// FilterTextStyle returns the style for filter text
func (s *Screen) FilterTextStyle() tcell.Style {
	return theme.ColorToStyle(s.Theme.Colors.FilterText)
}

// FilterCountStyle returns the style for the filter match count
func (s *Screen) FilterCountStyle() tcell.Style {
	return theme.ColorToStyle(s.Theme.Colors.FilterCount)
}

// StatusModeStyle returns the style for the mode indicator
func (s *Screen) StatusModeStyle() tcell.Style {
	return theme.ColorToStyle(s.Theme.Colors.StatusMode).Bold(true)
}

// StatusMessageStyle returns the style for status messages
func (s *Screen) StatusMessageStyle() tcell.Style {
	return theme.ColorToStyle(s.Theme.Colors.StatusMessage)
}

// StatusDetailStyle returns the style for the detail line
func (s *Screen) StatusDetailStyle() tcell.Style {
	return theme.ColorToStyle(s.Theme.Colors.StatusDetail)
}

// HeaderStyle returns the style for the header title
func (s *Screen) HeaderStyle() tcell.Style {
	return theme.ColorToStyle(s.Theme.Colors.HeaderTitle).Bold(true)
}
