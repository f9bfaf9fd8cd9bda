package app

import (
	"fmt"
	"log"
	"time"

	"github.com/davecgh/go-spew/spew"
	"github.com/gdamore/tcell/v2"
	"github.com/pstuifzand/tui-diffview/internal/config"
	"github.com/pstuifzand/tui-diffview/internal/difftree"
	"github.com/pstuifzand/tui-diffview/internal/tree"
	"github.com/pstuifzand/tui-diffview/internal/ui"
)

// App is the main application controller
type App struct {
	screen      *ui.Screen
	cfg         *config.Config
	view        *ui.DiffView
	title       string
	statusMsg   string
	statusTime  time.Time
	quit        bool
	debugMode   bool
	filtering   bool
	filterInput string
}

// NewApp creates a new App instance displaying the given diff tree
func NewApp(cfg *config.Config, t *difftree.Tree, title string) (*App, error) {
	screen, err := ui.NewScreenWithTheme(themeFromConfig(cfg))
	if err != nil {
		return nil, fmt.Errorf("failed to create screen: %w", err)
	}

	view := ui.NewDiffView(t)
	view.SetMode(displayModeFromConfig(cfg))
	view.SetSortSpec(sortSpecFromConfig(cfg))

	return &App{
		screen:     screen,
		cfg:        cfg,
		view:       view,
		title:      title,
		statusMsg:  "Ready",
		statusTime: time.Now(),
	}, nil
}

// Run starts the main event loop
func (a *App) Run() error {
	defer a.Close()

	// Create a channel for events
	eventChan := make(chan tcell.Event)

	// Start event polling goroutine
	go func() {
		for {
			event := a.screen.PollEvent()
			eventChan <- event
			if event == nil {
				break
			}
		}
	}()

	// Create a ticker for rendering
	ticker := time.NewTicker(50 * time.Millisecond) // ~20 FPS
	defer ticker.Stop()

	for !a.quit {
		select {
		case ev := <-eventChan:
			if ev != nil {
				a.handleRawEvent(ev)
			}
		case <-ticker.C:
			a.render()
		}
	}

	return nil
}

// Close closes the application
func (a *App) Close() error {
	if a.screen != nil {
		return a.screen.Close()
	}
	return nil
}

// render renders the current state to the screen
func (a *App) render() {
	a.screen.Clear()

	height := a.screen.GetHeight()

	// Draw header: archive names and active display mode
	header := fmt.Sprintf(" %s [%s] ", a.title, a.view.Mode())
	a.screen.DrawString(0, 0, header, a.screen.HeaderStyle())

	// Draw column headers
	a.view.RenderHeader(a.screen, 1)

	// Draw the diff rows
	treeStartY := 2
	a.view.Render(a.screen, treeStartY)

	// Draw filter bar while typing a filter
	if a.filtering {
		a.renderFilterBar(height - 2)
	}

	a.renderStatusLine(height - 1)

	a.screen.Show()
}

func (a *App) renderFilterBar(y int) {
	a.screen.DrawString(0, y, "Filter: ", a.screen.FilterLabelStyle())
	x := ui.StringWidth("Filter: ")
	a.screen.DrawString(x, y, a.filterInput, a.screen.FilterTextStyle())

	count := fmt.Sprintf(" (%d rows)", a.view.RowCount())
	a.screen.DrawString(x+ui.StringWidth(a.filterInput), y, count, a.screen.FilterCountStyle())
}

func (a *App) renderStatusLine(y int) {
	spec := a.view.SortSpec()
	direction := "asc"
	if spec.Descending {
		direction = "desc"
	}
	mode := fmt.Sprintf("-- %s | sort:%s %s --", a.view.Mode(), spec.Column, direction)
	a.screen.DrawString(0, y, mode, a.screen.StatusModeStyle())

	x := ui.StringWidth(mode) + 1

	// Recent status messages win over the selection detail
	if a.statusMsg != "Ready" && time.Since(a.statusTime) <= 3*time.Second {
		a.screen.DrawString(x, y, a.statusMsg, a.screen.StatusMessageStyle())
		return
	}

	if detail := a.view.DetailLine(); detail != "" {
		maxWidth := a.screen.GetWidth() - x
		a.screen.DrawStringLimited(x, y, ui.TruncateToWidthWithEllipsis(detail, maxWidth), maxWidth, a.screen.StatusDetailStyle())
	}
}

// handleRawEvent processes raw input events
func (a *App) handleRawEvent(ev tcell.Event) {
	keyEv, ok := ev.(*tcell.EventKey)
	if !ok {
		return
	}

	// Filter input mode captures all keys
	if a.filtering {
		a.handleFilterKey(keyEv)
		return
	}

	a.handleKeypress(keyEv)
}

// handleFilterKey handles a keypress while typing a filter
func (a *App) handleFilterKey(ev *tcell.EventKey) {
	switch ev.Key() {
	case tcell.KeyEscape:
		a.filtering = false
		a.filterInput = ""
		a.view.SetFilter("")
	case tcell.KeyEnter:
		a.filtering = false
	case tcell.KeyBackspace, tcell.KeyBackspace2:
		if len(a.filterInput) > 0 {
			runes := []rune(a.filterInput)
			a.filterInput = string(runes[:len(runes)-1])
			a.view.SetFilter(a.filterInput)
		}
	default:
		if r := ev.Rune(); r != 0 {
			a.filterInput += string(r)
			a.view.SetFilter(a.filterInput)
		}
	}
}

// handleKeypress handles a single keypress in normal mode
func (a *App) handleKeypress(ev *tcell.EventKey) {
	// Debug mode: show key information
	if a.debugMode {
		a.SetStatus(fmt.Sprintf("Key: %v | Rune: %q | Modifiers: %v", ev.Key(), ev.Rune(), ev.Modifiers()))
	}

	pageSize := max(a.screen.GetHeight()-4, 1)

	// Handle special keys first
	switch ev.Key() {
	case tcell.KeyDown:
		a.view.SelectNext()
		return
	case tcell.KeyUp:
		a.view.SelectPrev()
		return
	case tcell.KeyLeft, tcell.KeyRight, tcell.KeyEnter:
		a.view.ToggleCollapse()
		return
	case tcell.KeyPgDn, tcell.KeyCtrlF:
		a.view.ScrollPageDown(pageSize)
		return
	case tcell.KeyPgUp, tcell.KeyCtrlB:
		a.view.ScrollPageUp(pageSize)
		return
	case tcell.KeyEscape:
		if a.view.Filter() != "" {
			a.view.SetFilter("")
			a.SetStatus("Filter cleared")
		}
		return
	}

	// Handle rune (character) keys
	switch ev.Rune() {
	case 'q':
		a.quit = true
	case 'j':
		a.view.SelectNext()
	case 'k':
		a.view.SelectPrev()
	case 'g':
		a.view.SelectFirst()
	case 'G':
		a.view.SelectLast()
	case ' ', 'h', 'l':
		a.view.ToggleCollapse()
	case 'e':
		a.view.ExpandAll()
		a.SetStatus("Expanded all")
	case 'E':
		a.view.CollapseAll()
		a.SetStatus("Collapsed all")
	case 'm':
		a.view.CycleMode()
		a.SetStatus("Mode: " + a.view.Mode().String())
	case '1':
		a.view.SetMode(tree.ModeTree)
	case '2':
		a.view.SetMode(tree.ModeSimplified)
	case '3':
		a.view.SetMode(tree.ModeFlat)
	case 'n':
		a.view.SetSortColumn(difftree.ColumnName)
	case 'c':
		a.view.SetSortColumn(difftree.ColumnChange)
	case 's':
		a.view.SetSortColumn(difftree.ColumnSize)
	case 'f':
		a.view.ToggleFoldersFirst()
		if a.view.SortSpec().FoldersFirst {
			a.SetStatus("Folders first on")
		} else {
			a.SetStatus("Folders first off")
		}
	case '/':
		a.filtering = true
		a.filterInput = a.view.Filter()
	case 'D':
		a.dumpSelected()
	}
}

// dumpSelected logs the full payload of the selected row for debugging
func (a *App) dumpSelected() {
	node := a.view.Selected()
	if node == nil {
		return
	}
	log.Printf("selected %s:\n%s", node.Path, spew.Sdump(node.Data))
	a.SetStatus("Dumped " + node.Path + " to log")
}

// SetStatus sets the status message
func (a *App) SetStatus(msg string) {
	a.statusMsg = msg
	a.statusTime = time.Now()
}

// Quit signals the app to quit
func (a *App) Quit() {
	a.quit = true
}

// SetDebugMode enables or disables debug mode
func (a *App) SetDebugMode(debug bool) {
	a.debugMode = debug
}

// View returns the diff view, mainly for tests
func (a *App) View() *ui.DiffView {
	return a.view
}
