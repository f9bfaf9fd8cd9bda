package theme

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/pelletier/go-toml/v2"
)

// ThemeConfig represents the raw TOML theme configuration
type ThemeConfig struct {
	Name   string `toml:"name"`
	Colors struct {
		TreeNormalText     string `toml:"tree_normal_text"`
		TreeSelectedItem   string `toml:"tree_selected_item"`
		TreeSelectedBg     string `toml:"tree_selected_bg"`
		TreePlaceholder    string `toml:"tree_placeholder"`
		TreeLeafArrow      string `toml:"tree_leaf_arrow"`
		TreeExpandedArrow  string `toml:"tree_expanded_arrow"`
		TreeCollapsedArrow string `toml:"tree_collapsed_arrow"`
		ChangeAdded        string `toml:"change_added"`
		ChangeModified     string `toml:"change_modified"`
		ChangeRemoved      string `toml:"change_removed"`
		FilterLabel        string `toml:"filter_label"`
		FilterText         string `toml:"filter_text"`
		FilterCount        string `toml:"filter_count"`
		StatusMode         string `toml:"status_mode"`
		StatusMessage      string `toml:"status_message"`
		StatusDetail       string `toml:"status_detail"`
		HeaderTitle        string `toml:"header_title"`
	} `toml:"colors"`
}

// getThemePaths returns the search paths for theme files
func getThemePaths() []string {
	paths := []string{}

	// User config directory
	if home, err := os.UserHomeDir(); err == nil {
		paths = append(paths, filepath.Join(home, ".config", "tui-diffview", "themes"))
	}

	// User local share directory
	if home, err := os.UserHomeDir(); err == nil {
		paths = append(paths, filepath.Join(home, ".local", "share", "tui-diffview", "themes"))
	}

	return paths
}

// findThemeFile searches for a theme file in standard locations
func findThemeFile(themeName string) (string, error) {
	filename := themeName + ".toml"

	for _, dir := range getThemePaths() {
		path := filepath.Join(dir, filename)
		if _, err := os.Stat(path); err == nil {
			return path, nil
		}
	}

	return "", fmt.Errorf("theme file not found: %s", filename)
}

// LoadThemeFromFile loads a theme from a TOML file
func LoadThemeFromFile(filePath string) (*Theme, error) {
	data, err := os.ReadFile(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to read theme file: %w", err)
	}

	var config ThemeConfig
	err = toml.Unmarshal(data, &config)
	if err != nil {
		return nil, fmt.Errorf("failed to parse theme file: %w", err)
	}

	return configToTheme(config), nil
}

// LoadTheme loads a theme by name, searching standard theme directories
func LoadTheme(themeName string) (*Theme, error) {
	filePath, err := findThemeFile(themeName)
	if err != nil {
		return nil, err
	}

	return LoadThemeFromFile(filePath)
}

// configToTheme converts a ThemeConfig to a Theme, with fallback to Tokyo Night for missing colors
func configToTheme(config ThemeConfig) *Theme {
	// Start with Tokyo Night as base
	tokyoNight := TokyoNight()

	// Override with config values
	if config.Colors.TreeNormalText != "" {
		tokyoNight.Colors.TreeNormalText = ParseColorString(config.Colors.TreeNormalText)
	}
	if config.Colors.TreeSelectedItem != "" {
		tokyoNight.Colors.TreeSelectedItem = ParseColorString(config.Colors.TreeSelectedItem)
	}
	if config.Colors.TreeSelectedBg != "" {
		tokyoNight.Colors.TreeSelectedBg = ParseColorString(config.Colors.TreeSelectedBg)
	}
	if config.Colors.TreePlaceholder != "" {
		tokyoNight.Colors.TreePlaceholder = ParseColorString(config.Colors.TreePlaceholder)
	}
	if config.Colors.TreeLeafArrow != "" {
		tokyoNight.Colors.TreeLeafArrow = ParseColorString(config.Colors.TreeLeafArrow)
	}
	if config.Colors.TreeExpandedArrow != "" {
		tokyoNight.Colors.TreeExpandedArrow = ParseColorString(config.Colors.TreeExpandedArrow)
	}
	if config.Colors.TreeCollapsedArrow != "" {
		tokyoNight.Colors.TreeCollapsedArrow = ParseColorString(config.Colors.TreeCollapsedArrow)
	}
	if config.Colors.ChangeAdded != "" {
		tokyoNight.Colors.ChangeAdded = ParseColorString(config.Colors.ChangeAdded)
	}
	if config.Colors.ChangeModified != "" {
		tokyoNight.Colors.ChangeModified = ParseColorString(config.Colors.ChangeModified)
	}
	if config.Colors.ChangeRemoved != "" {
		tokyoNight.Colors.ChangeRemoved = ParseColorString(config.Colors.ChangeRemoved)
	}
	if config.Colors.FilterLabel != "" {
		tokyoNight.Colors.FilterLabel = ParseColorString(config.Colors.FilterLabel)
	}
	if config.Colors.FilterText != "" {
		tokyoNight.Colors.FilterText = ParseColorString(config.Colors.FilterText)
	}
	if config.Colors.FilterCount != "" {
		tokyoNight.Colors.FilterCount = ParseColorString(config.Colors.FilterCount)
	}
	if config.Colors.StatusMode != "" {
		tokyoNight.Colors.StatusMode = ParseColorString(config.Colors.StatusMode)
	}
	if config.Colors.StatusMessage != "" {
		tokyoNight.Colors.StatusMessage = ParseColorString(config.Colors.StatusMessage)
	}
	if config.Colors.StatusDetail != "" {
		tokyoNight.Colors.StatusDetail = ParseColorString(config.Colors.StatusDetail)
	}
	if config.Colors.HeaderTitle != "" {
		tokyoNight.Colors.HeaderTitle = ParseColorString(config.Colors.HeaderTitle)
	}

	if config.Name != "" {
		tokyoNight.Name = config.Name
	}

	return tokyoNight
}

// LoadThemeOrDefault loads a theme by name, or returns Tokyo Night if not found
func LoadThemeOrDefault(themeName string) *Theme {
	if themeName == "default" {
		return Default()
	}

	theme, err := LoadTheme(themeName)
	if err != nil {
		// Fall back to Tokyo Night
		return TokyoNight()
	}

	return theme
}
