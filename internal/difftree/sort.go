package difftree

import (
	"sort"
	"strings"

	"github.com/pstuifzand/tui-diffview/internal/model"
	"github.com/pstuifzand/tui-diffview/internal/tree"
)

// Column identifies which of the three visible columns a sort uses.
type Column int

const (
	ColumnName Column = iota
	ColumnChange
	ColumnSize
)

func (c Column) String() string {
	switch c {
	case ColumnName:
		return "name"
	case ColumnChange:
		return "change"
	case ColumnSize:
		return "size"
	}
	return "unknown"
}

// SortSpec describes how sibling rows are ordered.
type SortSpec struct {
	Column       Column
	Descending   bool
	FoldersFirst bool
}

// SortSiblings orders the rows displayed below the given visible parent
// (nil for top-level rows) in place. With FoldersFirst set, rows having
// children stay in their own partition at the top regardless of the
// sort direction.
func (t *Tree) SortSiblings(parent *Node, rows []*Node, spec SortSpec) {
	sort.SliceStable(rows, func(i, j int) bool {
		return t.less(parent, rows[i], rows[j], spec)
	})
}

func (t *Tree) less(parent, a, b *Node, spec SortSpec) bool {
	if spec.FoldersFirst {
		fa := len(a.Children) > 0
		fb := len(b.Children) > 0
		if fa != fb {
			// Descending only reverses keys within a partition, never
			// the partitions themselves
			return fa
		}
	}

	cmp := t.compare(parent, a, b, spec.Column)
	if spec.Descending {
		return cmp > 0
	}
	return cmp < 0
}

func (t *Tree) compare(parent, a, b *Node, column Column) int {
	switch column {
	case ColumnChange:
		return changeRank(a) - changeRank(b)
	case ColumnSize:
		switch {
		case a.Data.SizeDelta < b.Data.SizeDelta:
			return -1
		case a.Data.SizeDelta > b.Data.SizeDelta:
			return 1
		}
		return 0
	default:
		return strings.Compare(t.nameKey(parent, a), t.nameKey(parent, b))
	}
}

// changeRank orders rows by change severity via the explicit table in
// model; placeholder rows rank together with modified ones.
func changeRank(n *Node) int {
	if n.Data == nil {
		return model.ChangeNone.SortRank()
	}
	return n.Data.ChangeType.SortRank()
}

// nameKey is the comparison key for the name column: the full path in
// flat mode, the first path segment below the visible parent in
// simplified mode, and the node's own segment otherwise.
func (t *Tree) nameKey(parent, node *Node) string {
	switch t.Mode() {
	case tree.ModeFlat:
		return node.Path
	case tree.ModeSimplified:
		rel := relativePath(parent, node)
		if i := strings.IndexByte(rel, '/'); i >= 0 {
			return rel[:i]
		}
		return rel
	default:
		return node.Subpath
	}
}
