// Package difftree binds parsed diff payloads to the generic path tree:
// it decides which rows appear in the flat projection, which chains may
// collapse in the simplified projection, and rolls byte deltas up the
// ancestor chain as records are inserted.
package difftree

import (
	"fmt"
	"log"
	"strings"

	"github.com/pstuifzand/tui-diffview/internal/model"
	"github.com/pstuifzand/tui-diffview/internal/tree"
)

// Node is a path tree node carrying a diff payload.
type Node = tree.Node[model.DiffData]

// Tree is the diff result tree. Every displayed node has a payload:
// ancestors created as a side effect of a deeper insert carry an
// unchanged-directory placeholder until a real record arrives for them.
type Tree struct {
	*tree.Tree[model.DiffData]
}

// New creates an empty diff tree.
func New() *Tree {
	t := &Tree{}
	t.Tree = tree.New(tree.Hooks[model.DiffData]{
		FlatFilter:     flatFilter,
		SimplifyFilter: simplifyFilter,
		Merge:          mergeData,
		ProcessNew:     processNew,
	})
	return t
}

// AddItem inserts one parsed diff record. This is the parser sink.
func (t *Tree) AddItem(path string, data *model.DiffData) {
	t.Insert(path, data)
}

// flatFilter keeps placeholder ancestors out of the flat projection.
// The node's payload might not have been set yet.
func flatFilter(node *Node) bool {
	return node.Data != nil && node.Data.ChangeType != model.ChangeNone
}

// simplifyFilter allows collapsing only for unchanged nodes, so every
// reported change keeps its own row in simplified mode.
func simplifyFilter(node *Node) bool {
	return node.Data == nil || node.Data.ChangeType == model.ChangeNone
}

// processNew gives fresh ancestor nodes a placeholder payload and applies
// a new leaf's byte delta to its ancestors. Runs exactly once per node.
func processNew(node *Node) {
	if node.Data == nil {
		node.Data = model.NewPlaceholder()
	}
	if node.Data.SizeDelta != 0 {
		addSizeToAncestors(node, node.Data.SizeDelta)
	}
}

// mergeData merges a payload into an existing node. The first real
// payload replaces a placeholder but keeps the byte delta already
// accumulated from descendants; once a node has a real payload, later
// ones are logged and dropped so earlier aggregation is not lost.
func mergeData(node *Node, data *model.DiffData) {
	if data == nil {
		return
	}

	if node.Data != nil && !node.Data.IsPlaceholder() {
		log.Printf("difftree: duplicate payload for %s ignored", node.Path)
		return
	}

	var accumulated int64
	if node.Data != nil {
		accumulated = node.Data.SizeDelta
	}

	merged := *data
	merged.SizeDelta += accumulated
	node.Data = &merged

	if data.SizeDelta != 0 {
		addSizeToAncestors(node, data.SizeDelta)
	}
}

// addSizeToAncestors accumulates delta into every ancestor up to, but not
// including, the tree root.
func addSizeToAncestors(node *Node, delta int64) {
	for p := node.Parent(); p != nil && !p.IsRoot(); p = p.Parent() {
		if p.Data == nil {
			panic(fmt.Sprintf("difftree: node %s without data", p.Path))
		}
		p.Data.SizeDelta += delta
	}
}

// DisplayName returns the name shown for a row under the active mode:
// the full path in flat mode, the path below the visible parent in
// simplified mode, or the node's own segment in tree mode.
func (t *Tree) DisplayName(parent, node *Node) string {
	switch t.Mode() {
	case tree.ModeFlat:
		return node.Path
	case tree.ModeSimplified:
		return relativePath(parent, node)
	default:
		return node.Subpath
	}
}

func relativePath(parent, node *Node) string {
	if parent == nil {
		return node.Path
	}
	return strings.TrimPrefix(node.Path, parent.Path+"/")
}
