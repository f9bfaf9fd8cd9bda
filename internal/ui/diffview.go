package ui

import (
	"fmt"

	"github.com/gdamore/tcell/v2"
	"github.com/lithammer/fuzzysearch/fuzzy"
	"github.com/pstuifzand/tui-diffview/internal/difftree"
	"github.com/pstuifzand/tui-diffview/internal/model"
	"github.com/pstuifzand/tui-diffview/internal/tree"
)

// displayRow is one visible row: the node shown, the visible parent it is
// displayed under, and its indentation depth
type displayRow struct {
	Node   *difftree.Node
	Parent *difftree.Node
	Depth  int
}

// DiffView displays a diff result tree in the active display mode with
// sorting, collapsing and fuzzy path filtering
type DiffView struct {
	tree           *difftree.Tree
	rows           []displayRow
	selectedIdx    int
	viewportOffset int
	collapsed      map[string]bool
	sortSpec       difftree.SortSpec
	filter         string
}

// NewDiffView creates a view over the given diff tree
func NewDiffView(t *difftree.Tree) *DiffView {
	dv := &DiffView{
		tree:      t,
		collapsed: make(map[string]bool),
	}
	t.SetListener(dv)
	dv.rebuildRows()
	return dv
}

// SetTree replaces the displayed tree, resetting selection and collapse state
func (dv *DiffView) SetTree(t *difftree.Tree) {
	dv.tree = t
	dv.collapsed = make(map[string]bool)
	dv.selectedIdx = 0
	dv.viewportOffset = 0
	t.SetListener(dv)
	dv.rebuildRows()
}

// Tree returns the displayed tree
func (dv *DiffView) Tree() *difftree.Tree {
	return dv.tree
}

// Structural change notifications from the tree. Rebuilding the row list
// keeps all of them correct, at the cost of doing more work than a
// minimal update would.

func (dv *DiffView) RowsInserted(parentPath string, first, last int) {
	dv.rebuildRows()
}

func (dv *DiffView) RowsRemoved(parentPath string, first, last int) {
	dv.rebuildRows()
}

func (dv *DiffView) LayoutChanged(parentPath string) {
	dv.rebuildRows()
}

func (dv *DiffView) ModelReset() {
	dv.selectedIdx = 0
	dv.viewportOffset = 0
	dv.rebuildRows()
}

// rebuildRows recomputes the visible row list for the active display mode
func (dv *DiffView) rebuildRows() {
	dv.rows = dv.rows[:0]

	if dv.tree.Mode() == tree.ModeFlat {
		dv.buildFlatRows()
	} else {
		dv.buildTreeRows(dv.tree.Root(), nil, 0)
	}

	// Keep the selection in range after the row list changed
	if dv.selectedIdx >= len(dv.rows) {
		dv.selectedIdx = len(dv.rows) - 1
	}
	if dv.selectedIdx < 0 {
		dv.selectedIdx = 0
	}
}

// buildFlatRows lists the flat projection in a single level, filtered and
// sorted
func (dv *DiffView) buildFlatRows() {
	flattened := dv.tree.Flattened()

	nodes := make([]*difftree.Node, 0, len(flattened))
	for _, node := range flattened {
		if dv.filter != "" && !fuzzy.MatchFold(dv.filter, node.Path) {
			continue
		}
		nodes = append(nodes, node)
	}

	dv.tree.SortSiblings(nil, nodes, dv.sortSpec)

	for _, node := range nodes {
		dv.rows = append(dv.rows, displayRow{Node: node})
	}
}

// buildTreeRows appends the visible rows below parent depth-first,
// skipping the children of collapsed rows
func (dv *DiffView) buildTreeRows(parent, visibleParent *difftree.Node, depth int) {
	count := dv.tree.RowCount(parent)
	children := make([]*difftree.Node, 0, count)
	for i := 0; i < count; i++ {
		if child := dv.tree.ChildAt(parent, i); child != nil {
			children = append(children, child)
		}
	}

	dv.tree.SortSiblings(visibleParent, children, dv.sortSpec)

	for _, child := range children {
		dv.rows = append(dv.rows, displayRow{Node: child, Parent: visibleParent, Depth: depth})
		if len(child.Children) > 0 && !dv.collapsed[child.Path] {
			dv.buildTreeRows(child, child, depth+1)
		}
	}
}

// Rows returns the visible rows
func (dv *DiffView) Rows() []displayRow {
	return dv.rows
}

// RowCount returns the number of visible rows
func (dv *DiffView) RowCount() int {
	return len(dv.rows)
}

// Selected returns the node on the selected row, or nil when the view is
// empty
func (dv *DiffView) Selected() *difftree.Node {
	if dv.selectedIdx < 0 || dv.selectedIdx >= len(dv.rows) {
		return nil
	}
	return dv.rows[dv.selectedIdx].Node
}

// SelectedPath returns the full path of the selected row, or ""
func (dv *DiffView) SelectedPath() string {
	if node := dv.Selected(); node != nil {
		return node.Path
	}
	return ""
}

// SelectNext moves the selection down one row
func (dv *DiffView) SelectNext() {
	if dv.selectedIdx < len(dv.rows)-1 {
		dv.selectedIdx++
	}
}

// SelectPrev moves the selection up one row
func (dv *DiffView) SelectPrev() {
	if dv.selectedIdx > 0 {
		dv.selectedIdx--
	}
}

// SelectFirst moves the selection to the first row
func (dv *DiffView) SelectFirst() {
	dv.selectedIdx = 0
}

// SelectLast moves the selection to the last row
func (dv *DiffView) SelectLast() {
	if len(dv.rows) > 0 {
		dv.selectedIdx = len(dv.rows) - 1
	}
}

// ScrollPageDown moves the selection down by pageSize rows
func (dv *DiffView) ScrollPageDown(pageSize int) {
	dv.selectedIdx += pageSize
	if dv.selectedIdx >= len(dv.rows) {
		dv.selectedIdx = len(dv.rows) - 1
	}
	if dv.selectedIdx < 0 {
		dv.selectedIdx = 0
	}
}

// ScrollPageUp moves the selection up by pageSize rows
func (dv *DiffView) ScrollPageUp(pageSize int) {
	dv.selectedIdx -= pageSize
	if dv.selectedIdx < 0 {
		dv.selectedIdx = 0
	}
}

// ToggleCollapse collapses or expands the selected row's children. Collapse
// state has no effect in flat mode.
func (dv *DiffView) ToggleCollapse() {
	node := dv.Selected()
	if node == nil || len(node.Children) == 0 {
		return
	}
	if dv.collapsed[node.Path] {
		delete(dv.collapsed, node.Path)
	} else {
		dv.collapsed[node.Path] = true
	}
	dv.rebuildRows()
}

// ExpandAll expands every collapsed row
func (dv *DiffView) ExpandAll() {
	dv.collapsed = make(map[string]bool)
	dv.rebuildRows()
}

// CollapseAll collapses every row that has children
func (dv *DiffView) CollapseAll() {
	dv.collapsed = make(map[string]bool)
	dv.tree.Walk(func(node *difftree.Node) {
		if !node.IsRoot() && len(node.Children) > 0 {
			dv.collapsed[node.Path] = true
		}
	})
	dv.rebuildRows()
}

// SetMode switches the display mode
func (dv *DiffView) SetMode(mode tree.DisplayMode) {
	dv.tree.SetMode(mode)
}

// CycleMode advances to the next display mode: tree, simplified, flat
func (dv *DiffView) CycleMode() {
	switch dv.tree.Mode() {
	case tree.ModeTree:
		dv.SetMode(tree.ModeSimplified)
	case tree.ModeSimplified:
		dv.SetMode(tree.ModeFlat)
	default:
		dv.SetMode(tree.ModeTree)
	}
}

// Mode returns the active display mode
func (dv *DiffView) Mode() tree.DisplayMode {
	return dv.tree.Mode()
}

// SetFilter sets the fuzzy path filter. Filtering applies in flat mode
// only; an empty string clears it.
func (dv *DiffView) SetFilter(filter string) {
	dv.filter = filter
	dv.rebuildRows()
}

// Filter returns the active filter string
func (dv *DiffView) Filter() string {
	return dv.filter
}

// SortSpec returns the active sort settings
func (dv *DiffView) SortSpec() difftree.SortSpec {
	return dv.sortSpec
}

// SetSortColumn sorts by the given column; selecting the active column
// again flips the direction
func (dv *DiffView) SetSortColumn(column difftree.Column) {
	if dv.sortSpec.Column == column {
		dv.sortSpec.Descending = !dv.sortSpec.Descending
	} else {
		dv.sortSpec.Column = column
		dv.sortSpec.Descending = false
	}
	dv.rebuildRows()
}

// ToggleFoldersFirst flips the folders-first partition
func (dv *DiffView) ToggleFoldersFirst() {
	dv.sortSpec.FoldersFirst = !dv.sortSpec.FoldersFirst
	dv.rebuildRows()
}

// SetSortSpec replaces the sort settings entirely
func (dv *DiffView) SetSortSpec(spec difftree.SortSpec) {
	dv.sortSpec = spec
	dv.rebuildRows()
}

// DetailLine describes the selected row for the status area
func (dv *DiffView) DetailLine() string {
	node := dv.Selected()
	if node == nil || node.Data == nil {
		return ""
	}
	return fmt.Sprintf("%s: %s", node.Path, node.Data.Describe())
}

// Column layout: the size and change columns have fixed widths on the
// right, the name column takes the rest.
const (
	changeColWidth = 6
	sizeColWidth   = 12
)

// RenderHeader draws the column header line
func (dv *DiffView) RenderHeader(screen *Screen, y int) {
	style := screen.HeaderStyle()
	screenWidth := screen.GetWidth()

	nameWidth := max(screenWidth-changeColWidth-sizeColWidth, 0)

	screen.DrawStringLimited(0, y, "Name", nameWidth, style)
	screen.DrawStringLimited(nameWidth, y, "Change", changeColWidth, style)
	screen.DrawString(nameWidth+changeColWidth+sizeColWidth-StringWidth("Size"), y, "Size", style)
}

// Render draws the visible rows starting at startY, reserving one line at
// the bottom for the status bar
func (dv *DiffView) Render(screen *Screen, startY int) {
	screenWidth := screen.GetWidth()
	screenHeight := screen.GetHeight()

	viewportHeight := max(screenHeight-startY-1, 1)

	// Ensure viewport offset keeps selected row visible
	if dv.selectedIdx < dv.viewportOffset {
		dv.viewportOffset = dv.selectedIdx
	} else if dv.selectedIdx >= dv.viewportOffset+viewportHeight {
		dv.viewportOffset = dv.selectedIdx - viewportHeight + 1
	}

	// Clamp viewport offset
	maxOffset := max(len(dv.rows)-viewportHeight, 0)
	if dv.viewportOffset > maxOffset {
		dv.viewportOffset = maxOffset
	}
	if dv.viewportOffset < 0 {
		dv.viewportOffset = 0
	}

	nameWidth := max(screenWidth-changeColWidth-sizeColWidth, 0)

	screenY := startY
	for i := dv.viewportOffset; i < len(dv.rows) && screenY < screenHeight-1; i++ {
		dv.renderRow(screen, dv.rows[i], i, screenY, nameWidth)
		screenY++
	}

	// Clear remaining lines
	for y := screenY; y < screenHeight-1; y++ {
		for x := 0; x < screenWidth; x++ {
			screen.SetCell(x, y, ' ', tcell.StyleDefault)
		}
	}
}

func (dv *DiffView) renderRow(screen *Screen, row displayRow, idx, y, nameWidth int) {
	selected := idx == dv.selectedIdx

	style := screen.TreeNormalStyle()
	if row.Node.Data != nil && row.Node.Data.IsPlaceholder() {
		style = screen.TreePlaceholderStyle()
	}
	if selected {
		style = screen.TreeSelectedStyle()
	}

	x := row.Depth * 2

	// Flat mode has no hierarchy, so no arrows either
	if dv.tree.Mode() != tree.ModeFlat {
		arrowStyle := screen.TreeLeafArrowStyle()
		arrow := " "
		if len(row.Node.Children) > 0 {
			if dv.collapsed[row.Node.Path] {
				arrow = "▶"
				arrowStyle = screen.TreeCollapsedArrowStyle()
			} else {
				arrow = "▼"
				arrowStyle = screen.TreeExpandedArrowStyle()
			}
		}
		if selected {
			arrowStyle = style
		}
		screen.DrawString(x, y, arrow, arrowStyle)
		x += 2
	}

	name := dv.tree.DisplayName(row.Parent, row.Node)
	screen.DrawStringLimited(x, y, TruncateToWidthWithEllipsis(name, nameWidth-x), nameWidth-x, style)

	// Pad the rest of the name column so the selection bar spans the row
	for px := x + StringWidth(TruncateToWidthWithEllipsis(name, nameWidth-x)); px < nameWidth; px++ {
		screen.SetCell(px, y, ' ', style)
	}

	changeStyle := dv.changeStyle(screen, row.Node)
	if selected {
		changeStyle = style
	}

	badge := ""
	sizeText := ""
	if row.Node.Data != nil {
		badge = row.Node.Data.ChangeType.Short()
		sizeText = model.PrettyBytes(row.Node.Data.SizeDelta)
	}

	screen.DrawStringLimited(nameWidth, y, badge, changeColWidth, changeStyle)
	for px := nameWidth + StringWidth(badge); px < nameWidth+changeColWidth; px++ {
		screen.SetCell(px, y, ' ', style)
	}

	// Size is right-aligned in its column
	sizeX := nameWidth + changeColWidth + sizeColWidth - StringWidth(sizeText)
	for px := nameWidth + changeColWidth; px < sizeX; px++ {
		screen.SetCell(px, y, ' ', style)
	}
	screen.DrawString(sizeX, y, sizeText, style)
}

// changeStyle returns the color for a row's change classification
func (dv *DiffView) changeStyle(screen *Screen, node *difftree.Node) tcell.Style {
	if node.Data == nil {
		return screen.TreeNormalStyle()
	}
	switch node.Data.ChangeType {
	case model.ChangeAdded:
		return screen.ChangeAddedStyle()
	case model.ChangeModified:
		return screen.ChangeModifiedStyle()
	case model.ChangeRemoved:
		return screen.ChangeRemovedStyle()
	}
	return screen.TreeNormalStyle()
}
