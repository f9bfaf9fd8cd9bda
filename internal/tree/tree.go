// Package tree implements an ordered tree keyed by filesystem path
// segments, with three switchable display projections: the full tree, a
// simplified tree that collapses single-child chains, and a flat list.
//
// The tree owns its nodes through the parent's Children slice; a node's
// parent pointer is a non-owning back-reference. A parallel flattened
// slice is maintained on every mutation so flat-mode row lookups are O(1).
package tree

import "strings"

// DisplayMode selects how the tree is projected into rows.
type DisplayMode int

const (
	// ModeTree shows every node at its natural depth.
	ModeTree DisplayMode = iota

	// ModeSimplified combines nodes having a single child with that child.
	ModeSimplified

	// ModeFlat shows matching nodes as a single list in insertion order.
	ModeFlat
)

func (m DisplayMode) String() string {
	switch m {
	case ModeTree:
		return "tree"
	case ModeSimplified:
		return "simplified"
	case ModeFlat:
		return "flat"
	}
	return "unknown"
}

// Node is a single entry in the path tree.
//
// Do not edit Children directly; structural changes go through the Tree
// so the flat index and listener stay consistent.
type Node[T any] struct {
	// Path is the full path from the tree root, slash separated.
	// The synthetic root has the empty path.
	Path string

	// Subpath is the single path segment below the parent.
	Subpath string

	// Data is the payload. Ancestor nodes created only as a side effect
	// of a deeper insert start without one.
	Data *T

	// Children holds the ordered child nodes.
	Children []*Node[T]

	parent *Node[T]
	inFlat bool
}

// Parent returns the parent node, or nil for the root.
func (n *Node[T]) Parent() *Node[T] {
	return n.parent
}

// IsRoot reports whether this is the synthetic root node.
func (n *Node[T]) IsRoot() bool {
	return n.parent == nil && n.Path == ""
}

// get finds the direct child with the given subpath.
func (n *Node[T]) get(subpath string) (int, *Node[T], bool) {
	for i, child := range n.Children {
		if child.Subpath == subpath {
			return i, child, true
		}
	}
	return -1, nil, false
}

// Attach adds a child node directly. The subpath must be unique among the
// siblings; attaching a duplicate is a contract violation and panics.
// Inserting through the tree checks for an existing child first, so this
// only fires on misuse.
func (n *Node[T]) Attach(child *Node[T]) {
	if _, _, ok := n.get(child.Subpath); ok {
		panic("tree: subpath " + child.Subpath + " already exists below " + n.Path)
	}
	n.attach(child)
}

func (n *Node[T]) attach(child *Node[T]) {
	child.parent = n
	n.Children = append(n.Children, child)
}

// removeChildAt unlinks the child at index i.
func (n *Node[T]) removeChildAt(i int) {
	child := n.Children[i]
	n.Children = append(n.Children[:i], n.Children[i+1:]...)
	child.parent = nil
}

// row returns the node's index among its siblings, -1 for the root.
func (n *Node[T]) row() int {
	if n.parent == nil {
		return -1
	}
	for i, child := range n.parent.Children {
		if child == n {
			return i
		}
	}
	return -1
}

// Listener receives structural change notifications. Flat-mode row events
// carry an empty parent path. A reactive view can rebuild on these; a
// batch consumer can ignore them entirely.
type Listener interface {
	RowsInserted(parentPath string, first, last int)
	RowsRemoved(parentPath string, first, last int)
	LayoutChanged(parentPath string)
	ModelReset()
}

// Hooks customize per-payload behavior of a Tree. Any field may be nil.
type Hooks[T any] struct {
	// FlatFilter reports whether a node appears in the flat projection.
	// Nil includes every node. The node's data may not be set yet.
	FlatFilter func(*Node[T]) bool

	// SimplifyFilter reports whether a node may be elided in simplified
	// mode when it has exactly one child. Nil allows every node.
	SimplifyFilter func(*Node[T]) bool

	// Merge folds new data into an existing node. Nil keeps the first
	// non-nil data and ignores the rest.
	Merge func(node *Node[T], data *T)

	// ProcessNew runs once after a node is created and attached. It may
	// set default data or update ancestors.
	ProcessNew func(node *Node[T])
}

// Tree is a mutable path tree with mode-dependent row indexing.
// It is not safe for concurrent mutation; build it fully before sharing.
type Tree[T any] struct {
	root      *Node[T]
	mode      DisplayMode
	flattened []*Node[T]
	hooks     Hooks[T]
	listener  Listener
}

// New creates an empty tree in ModeTree.
func New[T any](hooks Hooks[T]) *Tree[T] {
	return &Tree[T]{
		root:  &Node[T]{},
		hooks: hooks,
	}
}

// SetListener installs the structural change listener. Pass nil to detach.
func (t *Tree[T]) SetListener(l Listener) {
	t.listener = l
}

// Root returns the synthetic root node. It is never displayed.
func (t *Tree[T]) Root() *Node[T] {
	return t.root
}

// Mode returns the active display mode.
func (t *Tree[T]) Mode() DisplayMode {
	return t.mode
}

// SetMode switches the display projection. Row numbering changes
// completely, so listeners get a full reset.
func (t *Tree[T]) SetMode(mode DisplayMode) {
	if mode == t.mode {
		return
	}
	t.mode = mode
	if t.listener != nil {
		t.listener.ModelReset()
	}
}

// SplitPath splits a slash-separated path into segments. Leading and
// trailing slashes are ignored; the empty path has no segments.
func SplitPath(path string) []string {
	path = strings.Trim(path, "/")
	if path == "" {
		return nil
	}
	return strings.Split(path, "/")
}

func joinPath(parentPath, segment string) string {
	if parentPath == "" {
		return segment
	}
	return parentPath + "/" + segment
}

// Insert walks the path from the root, creating any missing ancestor
// nodes without data, and attaches data to the terminal node. Inserting
// an existing path merges data into the existing node; inserting an
// existing path with nil data is a no-op.
func (t *Tree[T]) Insert(path string, data *T) *Node[T] {
	parts := SplitPath(path)
	node := t.root
	for i, part := range parts {
		if i == len(parts)-1 {
			node = t.addChild(node, part, data)
		} else {
			node = t.addChild(node, part, nil)
		}
	}
	return node
}

// addChild finds or creates the child of parent with the given segment.
func (t *Tree[T]) addChild(parent *Node[T], segment string, data *T) *Node[T] {
	if _, child, ok := parent.get(segment); ok {
		t.mergeData(child, data)
		return child
	}

	child := &Node[T]{
		Path:    joinPath(parent.Path, segment),
		Subpath: segment,
		Data:    data,
	}

	// Index bookkeeping differs between flat and tree projections.
	if t.mode == ModeFlat {
		if t.includeFlat(child) {
			i := len(t.flattened)
			t.flattened = append(t.flattened, child)
			child.inFlat = true
			if t.listener != nil {
				t.listener.RowsInserted("", i, i)
			}
		}
		parent.attach(child)
	} else {
		i := len(parent.Children)
		if t.mode == ModeSimplified && len(parent.Children) == 1 {
			// The parent row was merged with its single child; adding a
			// second child changes the visible layout instead of
			// appending a row.
			parent.attach(child)
			if t.listener != nil {
				t.listener.LayoutChanged(parent.Path)
			}
		} else {
			parent.attach(child)
			if t.listener != nil {
				t.listener.RowsInserted(parent.Path, i, i)
			}
		}
		if t.includeFlat(child) {
			t.flattened = append(t.flattened, child)
			child.inFlat = true
		}
	}

	if t.hooks.ProcessNew != nil {
		t.hooks.ProcessNew(child)
	}

	return child
}

// mergeData applies data to an existing node and keeps the flat index in
// step: a node whose payload now passes the flat filter joins the flat
// projection once.
func (t *Tree[T]) mergeData(node *Node[T], data *T) {
	if data == nil {
		return
	}

	if t.hooks.Merge != nil {
		t.hooks.Merge(node, data)
	} else if node.Data == nil {
		node.Data = data
	}

	if !node.inFlat && t.includeFlat(node) {
		i := len(t.flattened)
		t.flattened = append(t.flattened, node)
		node.inFlat = true
		if t.mode == ModeFlat && t.listener != nil {
			t.listener.RowsInserted("", i, i)
		}
	}
}

func (t *Tree[T]) includeFlat(node *Node[T]) bool {
	if t.hooks.FlatFilter == nil {
		return true
	}
	return t.hooks.FlatFilter(node)
}

func (t *Tree[T]) simplifiable(node *Node[T]) bool {
	if t.hooks.SimplifyFilter == nil {
		return true
	}
	return t.hooks.SimplifyFilter(node)
}

// Lookup returns the node at the given path, or nil.
func (t *Tree[T]) Lookup(path string) *Node[T] {
	node := t.root
	for _, part := range SplitPath(path) {
		_, child, ok := node.get(part)
		if !ok {
			return nil
		}
		node = child
	}
	return node
}

// Remove deletes the node at the given path together with its subtree and
// reports whether anything was removed. Removing a nonexistent path is a
// no-op. The same deletion order applies in every mode: all descendants
// leave the flat index before the node itself is unlinked.
func (t *Tree[T]) Remove(path string) bool {
	parts := SplitPath(path)
	if len(parts) == 0 {
		return false
	}

	parent := t.root
	for _, part := range parts[:len(parts)-1] {
		_, child, ok := parent.get(part)
		if !ok {
			return false
		}
		parent = child
	}

	i, node, ok := parent.get(parts[len(parts)-1])
	if !ok {
		return false
	}

	var drop func(n *Node[T])
	drop = func(n *Node[T]) {
		for _, child := range n.Children {
			drop(child)
		}
		t.dropFlat(n)
	}
	drop(node)

	parent.removeChildAt(i)
	if t.mode != ModeFlat && t.listener != nil {
		t.listener.RowsRemoved(parent.Path, i, i)
	}
	return true
}

func (t *Tree[T]) dropFlat(node *Node[T]) {
	if !node.inFlat {
		return
	}
	for fi, item := range t.flattened {
		if item == node {
			t.flattened = append(t.flattened[:fi], t.flattened[fi+1:]...)
			node.inFlat = false
			if t.mode == ModeFlat && t.listener != nil {
				t.listener.RowsRemoved("", fi, fi)
			}
			return
		}
	}
}

// Flattened returns the flat projection in insertion order. The slice is
// owned by the tree; callers must not modify it.
func (t *Tree[T]) Flattened() []*Node[T] {
	return t.flattened
}

// RowCount returns the number of visible rows below parent under the
// active mode. A nil parent means the top level.
func (t *Tree[T]) RowCount(parent *Node[T]) int {
	if t.mode == ModeFlat {
		if parent == nil {
			return len(t.flattened)
		}
		return 0
	}

	if parent == nil {
		parent = t.root
	}
	return len(parent.Children)
}

// ChildAt returns the node displayed at the given row below parent, or
// nil when the row is out of range. In simplified mode the returned node
// is the end of any collapsed single-child chain.
func (t *Tree[T]) ChildAt(parent *Node[T], row int) *Node[T] {
	if t.mode == ModeFlat {
		if parent != nil || row < 0 || row >= len(t.flattened) {
			return nil
		}
		return t.flattened[row]
	}

	if parent == nil {
		parent = t.root
	}
	if row < 0 || row >= len(parent.Children) {
		return nil
	}

	node := parent.Children[row]
	if t.mode == ModeSimplified {
		for len(node.Children) == 1 && t.simplifiable(node) {
			node = node.Children[0]
		}
	}
	return node
}

// VisibleParent returns the node a row is displayed under, or nil for a
// top-level row. In flat mode every row is top level; in simplified mode
// elided ancestors are skipped.
func (t *Tree[T]) VisibleParent(node *Node[T]) *Node[T] {
	if t.mode == ModeFlat {
		return nil
	}

	parent := node.parent
	if t.mode == ModeSimplified {
		for parent != t.root && len(parent.Children) == 1 && t.simplifiable(parent) {
			parent = parent.parent
		}
	}

	if parent == t.root {
		return nil
	}
	return parent
}

// RowOf resolves a path to its current row under the active mode. The
// returned node is the one displayed in that row, which in simplified
// mode may be a descendant of the requested path. ok is false when the
// path does not exist or is not visible.
func (t *Tree[T]) RowOf(path string) (row int, node *Node[T], ok bool) {
	target := t.Lookup(path)
	if target == nil || target.IsRoot() {
		return -1, nil, false
	}

	if t.mode == ModeFlat {
		for i, item := range t.flattened {
			if item == target {
				return i, item, true
			}
		}
		return -1, nil, false
	}

	if t.mode == ModeTree {
		return target.row(), target, true
	}

	// Simplified: the row belongs to the head of the collapsed chain the
	// node is part of; the displayed node is the chain's tail.
	head := target
	for head.parent != t.root && len(head.parent.Children) == 1 && t.simplifiable(head.parent) {
		head = head.parent
	}
	display := head
	for len(display.Children) == 1 && t.simplifiable(display) {
		display = display.Children[0]
	}
	return head.row(), display, true
}

// Walk visits every node except the root in depth-first order.
func (t *Tree[T]) Walk(fn func(*Node[T])) {
	var walk func(n *Node[T])
	walk = func(n *Node[T]) {
		for _, child := range n.Children {
			fn(child)
			walk(child)
		}
	}
	walk(t.root)
}
