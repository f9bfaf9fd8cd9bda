// Package model contains the data types attached to diff tree nodes
package model

// ChangeType is the reduced classification of a change reported by the
// backup tool. Richer change facts (mode, owner, changed link, the
// added/removed variants) collapse into this set; the details stay in
// the optional DiffData fields.
type ChangeType int

const (
	ChangeNone ChangeType = iota
	ChangeAdded
	ChangeModified
	ChangeRemoved
)

// changeOrder is the explicit total order used when sorting by change.
// Unchanged placeholder rows sort alongside modified ones, not separately.
var changeOrder = map[ChangeType]int{
	ChangeAdded:    1,
	ChangeModified: 2,
	ChangeNone:     2,
	ChangeRemoved:  3,
}

// SortRank returns the position of the change type in the sort order
func (c ChangeType) SortRank() int {
	return changeOrder[c]
}

// Short returns a one-letter badge for the change type
func (c ChangeType) Short() string {
	switch c {
	case ChangeAdded:
		return "A"
	case ChangeRemoved:
		return "D"
	case ChangeModified:
		return "M"
	}
	return ""
}

func (c ChangeType) String() string {
	switch c {
	case ChangeNone:
		return "unchanged"
	case ChangeAdded:
		return "added"
	case ChangeModified:
		return "modified"
	case ChangeRemoved:
		return "removed"
	}
	return "unknown"
}

// FileType is the kind of filesystem entry a change refers to
type FileType int

const (
	File FileType = iota
	Directory
	Link
)

func (f FileType) String() string {
	switch f {
	case File:
		return "file"
	case Directory:
		return "directory"
	case Link:
		return "link"
	}
	return "unknown"
}

// ModeChange records a permission change, e.g. "-rw-rw-rw-" -> "-rw-r--r--"
type ModeChange struct {
	Old string
	New string
}

// OwnerChange records a user/group ownership change
type OwnerChange struct {
	OldUser  string
	OldGroup string
	NewUser  string
	NewGroup string
}

// ContentDelta records how many bytes a modification added and removed,
// when the backup tool could compare chunk ids.
type ContentDelta struct {
	Added   int64
	Removed int64
}

// DiffData is the merged per-path summary of all change facts for one
// entry in an archive diff.
type DiffData struct {
	FileType   FileType
	ChangeType ChangeType

	// SizeDelta is the signed byte delta. Positive means growth. On
	// directories it accumulates the deltas of all descendants.
	SizeDelta int64

	ModeChange   *ModeChange
	OwnerChange  *OwnerChange
	ContentDelta *ContentDelta
}

// NewPlaceholder returns the payload for an ancestor node that was only
// created because a deeper path needed it. It reports no change until a
// real payload is merged in.
func NewPlaceholder() *DiffData {
	return &DiffData{FileType: Directory, ChangeType: ChangeNone}
}

// IsPlaceholder reports whether the payload carries no real change fact yet
func (d *DiffData) IsPlaceholder() bool {
	return d.ChangeType == ChangeNone
}
