package borg

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pstuifzand/tui-diffview/internal/model"
)

func int64p(v int64) *int64 {
	return &v
}

func TestParseRecords(t *testing.T) {
	tests := []struct {
		name     string
		record   Record
		expected model.DiffData
	}{
		{
			name: "changed link",
			record: Record{
				Path:    "some/changed/link",
				Changes: []Change{{Type: "changed link"}},
			},
			expected: model.DiffData{
				FileType:   model.Link,
				ChangeType: model.ChangeModified,
			},
		},
		{
			name: "modified with chunk counts",
			record: Record{
				Path:    "some/changed/file",
				Changes: []Change{{Type: "modified", Added: int64p(77800), Removed: int64p(77800)}},
			},
			expected: model.DiffData{
				FileType:     model.File,
				ChangeType:   model.ChangeModified,
				ContentDelta: &model.ContentDelta{Added: 77800, Removed: 77800},
			},
		},
		{
			name: "modified without chunk counts",
			record: Record{
				Path:    "some/changed/file",
				Changes: []Change{{Type: "modified"}},
			},
			expected: model.DiffData{
				FileType:   model.File,
				ChangeType: model.ChangeModified,
			},
		},
		{
			name: "modified with mode change",
			record: Record{
				Path: "some/changed/file",
				Changes: []Change{
					{Type: "modified", Added: int64p(77800), Removed: int64p(77800)},
					{Type: "mode", OldMode: "-rw-rw-rw-", NewMode: "-rw-r--r--"},
				},
			},
			expected: model.DiffData{
				FileType:     model.File,
				ChangeType:   model.ChangeModified,
				ContentDelta: &model.ContentDelta{Added: 77800, Removed: 77800},
				ModeChange:   &model.ModeChange{Old: "-rw-rw-rw-", New: "-rw-r--r--"},
			},
		},
		{
			name: "mode change only",
			record: Record{
				Path:    "some/changed/file",
				Changes: []Change{{Type: "mode", OldMode: "-rw-rw-rw-", NewMode: "-rw-r--r--"}},
			},
			expected: model.DiffData{
				FileType:   model.File,
				ChangeType: model.ChangeModified,
				ModeChange: &model.ModeChange{Old: "-rw-rw-rw-", New: "-rw-r--r--"},
			},
		},
		{
			name: "added directory",
			record: Record{
				Path:    "some/changed/dir",
				Changes: []Change{{Type: "added directory"}},
			},
			expected: model.DiffData{
				FileType:   model.Directory,
				ChangeType: model.ChangeAdded,
			},
		},
		{
			name: "removed directory",
			record: Record{
				Path:    "some/changed/dir",
				Changes: []Change{{Type: "removed directory"}},
			},
			expected: model.DiffData{
				FileType:   model.Directory,
				ChangeType: model.ChangeRemoved,
			},
		},
		{
			name: "added file with size",
			record: Record{
				Path:    "some/new/file",
				Changes: []Change{{Type: "added", Size: int64p(20)}},
			},
			expected: model.DiffData{
				FileType:   model.File,
				ChangeType: model.ChangeAdded,
				SizeDelta:  20,
			},
		},
		{
			name: "removed file with size",
			record: Record{
				Path:    "some/old/file",
				Changes: []Change{{Type: "removed", Size: int64p(20)}},
			},
			expected: model.DiffData{
				FileType:   model.File,
				ChangeType: model.ChangeRemoved,
				SizeDelta:  -20,
			},
		},
		{
			name: "owner change",
			record: Record{
				Path: "home/user/arrays/test.txt",
				Changes: []Change{{
					Type:    "owner",
					OldUser: "user", NewUser: "nfsnobody",
					OldGroup: "user", NewGroup: "nfsnobody",
				}},
			},
			expected: model.DiffData{
				FileType:   model.File,
				ChangeType: model.ChangeModified,
				OwnerChange: &model.OwnerChange{
					OldUser: "user", OldGroup: "user",
					NewUser: "nfsnobody", NewGroup: "nfsnobody",
				},
			},
		},
		{
			name: "owner change does not downgrade added file",
			record: Record{
				Path: "some/new/file",
				Changes: []Change{
					{Type: "added", Size: int64p(20)},
					{Type: "owner", OldUser: "a", NewUser: "b", OldGroup: "a", NewGroup: "b"},
				},
			},
			expected: model.DiffData{
				FileType:   model.File,
				ChangeType: model.ChangeAdded,
				SizeDelta:  20,
				OwnerChange: &model.OwnerChange{
					OldUser: "a", OldGroup: "a",
					NewUser: "b", NewGroup: "b",
				},
			},
		},
		{
			name: "all changes combined",
			record: Record{
				Path: "home/user/arrays/test.txt",
				Changes: []Change{
					{Type: "modified", Added: int64p(77800), Removed: int64p(77800)},
					{Type: "mode", OldMode: "-rw-rw-rw-", NewMode: "-rw-r--r--"},
					{Type: "owner", OldUser: "user", NewUser: "nfsnobody", OldGroup: "user", NewGroup: "nfsnobody"},
				},
			},
			expected: model.DiffData{
				FileType:     model.File,
				ChangeType:   model.ChangeModified,
				ContentDelta: &model.ContentDelta{Added: 77800, Removed: 77800},
				ModeChange:   &model.ModeChange{Old: "-rw-rw-rw-", New: "-rw-r--r--"},
				OwnerChange: &model.OwnerChange{
					OldUser: "user", OldGroup: "user",
					NewUser: "nfsnobody", NewGroup: "nfsnobody",
				},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sink := &captureSink{}
			err := ParseRecords([]Record{tt.record}, sink)

			require.NoError(t, err)
			require.Len(t, sink.paths, 1)
			assert.Equal(t, tt.record.Path, sink.paths[0])
			assert.Equal(t, &tt.expected, sink.data[0])
		})
	}
}

func TestParseRecordsUnknownChangeType(t *testing.T) {
	sink := &captureSink{}
	err := ParseRecords([]Record{{
		Path:    "some/file",
		Changes: []Change{{Type: "recompressed"}},
	}}, sink)

	var parseErr *ParseError
	require.ErrorAs(t, err, &parseErr)
	assert.Equal(t, "recompressed", parseErr.Input)
	assert.Empty(t, sink.paths)
}

func TestParseJSONLines(t *testing.T) {
	lines := []string{
		`{"path": "some/changed/file", "changes": [{"type": "modified", "added": 77800, "removed": 77800}]}`,
		``,
		`{"path": "some/changed/dir", "changes": [{"type": "added directory"}]}`,
	}

	sink := &captureSink{}
	err := ParseJSONLines(lines, sink)

	require.NoError(t, err)
	assert.Equal(t, []string{"some/changed/file", "some/changed/dir"}, sink.paths)
}

func TestParseJSONLinesInvalid(t *testing.T) {
	sink := &captureSink{}
	err := ParseJSONLines([]string{`{"path": `}, sink)

	var parseErr *ParseError
	require.ErrorAs(t, err, &parseErr)
}

func TestParseJSONSingleRecordObject(t *testing.T) {
	// One record pretty-printed across several lines
	input := `{
  "path": "some/changed/file",
  "changes": [
    {"type": "modified", "added": 100, "removed": 200}
  ]
}`

	sink := &captureSink{}
	err := ParseJSON(strings.NewReader(input), sink)

	require.NoError(t, err)
	require.Len(t, sink.paths, 1)
	assert.Equal(t, "some/changed/file", sink.paths[0])
	assert.Equal(t, int64(-100), sink.data[0].SizeDelta)
}

func TestParseJSONEmptyInput(t *testing.T) {
	sink := &captureSink{}
	err := ParseJSON(strings.NewReader("  \n "), sink)

	require.NoError(t, err)
	assert.Empty(t, sink.paths)
}

// The textual grammar and the JSON records describe the same changes, so
// parsing either form of the same diff must produce the same payloads.
func TestTextAndJSONAgree(t *testing.T) {
	textLines := []string{
		"added directory    some/dir",
		"added          20 B some/dir/new",
		"removed        20 B some/dir/old",
		"changed link       some/link",
		" +77.8 kB  -77.8 kB [-rw-rw-rw- -> -rw-r--r--] some/file",
	}
	jsonLines := []string{
		`{"path": "some/dir", "changes": [{"type": "added directory"}]}`,
		`{"path": "some/dir/new", "changes": [{"type": "added", "size": 20}]}`,
		`{"path": "some/dir/old", "changes": [{"type": "removed", "size": 20}]}`,
		`{"path": "some/link", "changes": [{"type": "changed link"}]}`,
		`{"path": "some/file", "changes": [{"type": "modified", "added": 77800, "removed": 77800}, {"type": "mode", "old_mode": "-rw-rw-rw-", "new_mode": "-rw-r--r--"}]}`,
	}

	textSink := &captureSink{}
	require.NoError(t, ParseTextLines(textLines, textSink))

	jsonSink := &captureSink{}
	require.NoError(t, ParseJSONLines(jsonLines, jsonSink))

	assert.Equal(t, textSink.paths, jsonSink.paths)
	assert.Equal(t, textSink.data, jsonSink.data)
}

// RecordFor must reconstruct records that parse back to the same payload.
func TestRecordForRoundTrip(t *testing.T) {
	textLines := []string{
		"added directory    some/dir",
		"added          20 B some/dir/new",
		"removed       1.5 MB some/dir/old",
		"added link         some/link",
		"removed link       some/other-link",
		"changed link       some/changed-link",
		" +77.8 kB  -77.8 kB some/file",
		"[-rw-rw-rw- -> -rw-r--r--] some/mode-file",
		"[user:user -> root:root] some/owner-file",
	}

	original := &captureSink{}
	require.NoError(t, ParseTextLines(textLines, original))

	records := make([]Record, len(original.paths))
	for i, path := range original.paths {
		records[i] = RecordFor(path, original.data[i])
	}

	reparsed := &captureSink{}
	require.NoError(t, ParseRecords(records, reparsed))

	assert.Equal(t, original.paths, reparsed.paths)
	assert.Equal(t, original.data, reparsed.data)
}
