package model

import (
	"testing"
)

func TestSortRank(t *testing.T) {
	if ChangeAdded.SortRank() >= ChangeModified.SortRank() {
		t.Errorf("added should rank before modified")
	}
	if ChangeModified.SortRank() >= ChangeRemoved.SortRank() {
		t.Errorf("modified should rank before removed")
	}
	if ChangeNone.SortRank() != ChangeModified.SortRank() {
		t.Errorf("unchanged should rank alongside modified")
	}
}

func TestShort(t *testing.T) {
	tests := []struct {
		change   ChangeType
		expected string
	}{
		{ChangeAdded, "A"},
		{ChangeRemoved, "D"},
		{ChangeModified, "M"},
		{ChangeNone, ""},
	}

	for _, tt := range tests {
		if got := tt.change.Short(); got != tt.expected {
			t.Errorf("Short(%v) = %q, want %q", tt.change, got, tt.expected)
		}
	}
}

func TestPrettyBytes(t *testing.T) {
	tests := []struct {
		n        int64
		expected string
	}{
		{0, "0 B"},
		{20, "20 B"},
		{999, "999 B"},
		{1000, "1.0 kB"},
		{77800, "77.8 kB"},
		{1500000, "1.5 MB"},
		{2000000000, "2.0 GB"},
		{1000000000000, "1.0 TB"},
		{-20, "-20 B"},
		{-77800, "-77.8 kB"},
	}

	for _, tt := range tests {
		if got := PrettyBytes(tt.n); got != tt.expected {
			t.Errorf("PrettyBytes(%d) = %q, want %q", tt.n, got, tt.expected)
		}
	}
}

func TestIsPlaceholder(t *testing.T) {
	if !NewPlaceholder().IsPlaceholder() {
		t.Errorf("NewPlaceholder should be a placeholder")
	}

	d := &DiffData{FileType: File, ChangeType: ChangeAdded}
	if d.IsPlaceholder() {
		t.Errorf("added file should not be a placeholder")
	}
}

func TestDescribe(t *testing.T) {
	tests := []struct {
		name     string
		data     DiffData
		expected string
	}{
		{
			name:     "added directory",
			data:     DiffData{FileType: Directory, ChangeType: ChangeAdded},
			expected: "directory added",
		},
		{
			name: "modified file with content delta",
			data: DiffData{
				FileType:     File,
				ChangeType:   ChangeModified,
				ContentDelta: &ContentDelta{Added: 77800, Removed: 77800},
			},
			expected: "file modified, added 77.8 kB, deleted 77.8 kB",
		},
		{
			name: "mode and owner change",
			data: DiffData{
				FileType:    File,
				ChangeType:  ChangeModified,
				ModeChange:  &ModeChange{Old: "-rw-rw-rw-", New: "-rw-r--r--"},
				OwnerChange: &OwnerChange{OldUser: "user", OldGroup: "user", NewUser: "root", NewGroup: "root"},
			},
			expected: "file modified, -rw-rw-rw- -> -rw-r--r--, user:user -> root:root",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.data.Describe(); got != tt.expected {
				t.Errorf("Describe() = %q, want %q", got, tt.expected)
			}
		})
	}
}
