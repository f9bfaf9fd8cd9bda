package app

import (
	"github.com/pstuifzand/tui-diffview/internal/config"
	"github.com/pstuifzand/tui-diffview/internal/difftree"
	"github.com/pstuifzand/tui-diffview/internal/theme"
	"github.com/pstuifzand/tui-diffview/internal/tree"
)

func themeFromConfig(cfg *config.Config) *theme.Theme {
	return theme.LoadThemeOrDefault(cfg.Theme)
}

func displayModeFromConfig(cfg *config.Config) tree.DisplayMode {
	switch cfg.DisplayMode {
	case "simplified":
		return tree.ModeSimplified
	case "flat":
		return tree.ModeFlat
	default:
		return tree.ModeTree
	}
}

func sortSpecFromConfig(cfg *config.Config) difftree.SortSpec {
	spec := difftree.SortSpec{
		Descending:   cfg.SortReverse,
		FoldersFirst: cfg.FoldersFirst,
	}
	switch cfg.SortColumn {
	case "change":
		spec.Column = difftree.ColumnChange
	case "size":
		spec.Column = difftree.ColumnSize
	default:
		spec.Column = difftree.ColumnName
	}
	return spec
}
