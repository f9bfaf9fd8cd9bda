package borg

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/pstuifzand/tui-diffview/internal/model"
)

// Record is one JSON-lines diff record: a path and its change facts.
type Record struct {
	Path    string   `json:"path"`
	Changes []Change `json:"changes"`
}

// Change is a single change fact. Which fields are set depends on Type.
type Change struct {
	Type string `json:"type"`

	// modified with comparable chunk ids
	Added   *int64 `json:"added,omitempty"`
	Removed *int64 `json:"removed,omitempty"`

	// added/removed file
	Size *int64 `json:"size,omitempty"`

	// mode
	OldMode string `json:"old_mode,omitempty"`
	NewMode string `json:"new_mode,omitempty"`

	// owner
	OldUser  string `json:"old_user,omitempty"`
	OldGroup string `json:"old_group,omitempty"`
	NewUser  string `json:"new_user,omitempty"`
	NewGroup string `json:"new_group,omitempty"`
}

// ParseRecords merges the change facts of each record and delivers the
// resulting payloads to the sink.
func ParseRecords(records []Record, sink Sink) error {
	for _, rec := range records {
		data, err := payloadFromRecord(rec)
		if err != nil {
			return err
		}
		sink.AddItem(rec.Path, data)
	}
	return nil
}

// ParseJSONLines parses newline-delimited JSON diff output. Empty lines
// are skipped.
func ParseJSONLines(lines []string, sink Sink) error {
	for _, line := range lines {
		if strings.TrimSpace(line) == "" {
			continue
		}

		var rec Record
		if err := json.Unmarshal([]byte(line), &rec); err != nil {
			return &ParseError{Input: line, Reason: "invalid json record"}
		}
		if err := ParseRecords([]Record{rec}, sink); err != nil {
			return err
		}
	}
	return nil
}

// ParseJSON reads JSON diff output from r. The input is either
// newline-delimited records or, for a batch of one, a single record
// object that may span multiple lines.
func ParseJSON(r io.Reader, sink Sink) error {
	raw, err := io.ReadAll(r)
	if err != nil {
		return fmt.Errorf("failed to read diff output: %w", err)
	}

	trimmed := strings.TrimSpace(string(raw))
	if trimmed == "" {
		return nil
	}

	// Framed records never span lines, so multi-line input may instead be
	// one pretty-printed record object. Try that reading first and fall
	// through to record-per-line when it does not parse.
	if strings.ContainsRune(trimmed, '\n') {
		var rec Record
		if err := json.Unmarshal([]byte(trimmed), &rec); err == nil {
			return ParseRecords([]Record{rec}, sink)
		}
	}

	return ParseJSONLines(strings.Split(trimmed, "\n"), sink)
}

// payloadFromRecord folds a record's change facts into one payload. When
// several facts co-occur the add/remove classification wins over
// modified; mode and owner facts never downgrade an add/remove.
func payloadFromRecord(rec Record) (*model.DiffData, error) {
	data := &model.DiffData{FileType: model.File}

	for _, change := range rec.Changes {
		switch change.Type {
		case "modified":
			data.ChangeType = model.ChangeModified
			if change.Added != nil && change.Removed != nil {
				data.SizeDelta = *change.Added - *change.Removed
				data.ContentDelta = &model.ContentDelta{
					Added:   *change.Added,
					Removed: *change.Removed,
				}
			}
			// without added/removed the chunk ids could not be compared
			// and all we know is that the contents changed

		case "changed link":
			data.ChangeType = model.ChangeModified
			data.FileType = model.Link

		case "added", "removed", "added link", "removed link",
			"added directory", "removed directory":
			if strings.Contains(change.Type, "directory") {
				data.FileType = model.Directory
			} else if strings.Contains(change.Type, "link") {
				data.FileType = model.Link
			}

			var size int64
			if change.Size != nil {
				size = *change.Size
			}

			if strings.HasPrefix(change.Type, "added") {
				data.ChangeType = model.ChangeAdded
				data.SizeDelta = size
			} else {
				data.ChangeType = model.ChangeRemoved
				data.SizeDelta = -size
			}

		case "mode":
			// can occur along with other changes
			data.ChangeType = maxChange(data.ChangeType, model.ChangeModified)
			data.ModeChange = &model.ModeChange{
				Old: change.OldMode,
				New: change.NewMode,
			}

		case "owner":
			// can occur along with other changes
			data.ChangeType = maxChange(data.ChangeType, model.ChangeModified)
			data.OwnerChange = &model.OwnerChange{
				OldUser:  change.OldUser,
				OldGroup: change.OldGroup,
				NewUser:  change.NewUser,
				NewGroup: change.NewGroup,
			}

		default:
			return nil, &ParseError{Input: change.Type, Reason: "unknown change type"}
		}
	}

	return data, nil
}

// maxChange keeps a terminal add/remove classification when a mode or
// owner fact follows it in the same record.
func maxChange(current, next model.ChangeType) model.ChangeType {
	if current == model.ChangeAdded || current == model.ChangeRemoved {
		return current
	}
	return next
}

// RecordFor reconstructs the change facts of a payload, for re-encoding
// parsed textual output as JSON lines.
func RecordFor(path string, data *model.DiffData) Record {
	rec := Record{Path: path, Changes: []Change{}}

	switch data.ChangeType {
	case model.ChangeAdded, model.ChangeRemoved:
		verb := "added"
		size := data.SizeDelta
		if data.ChangeType == model.ChangeRemoved {
			verb = "removed"
			size = -size
		}

		switch data.FileType {
		case model.Directory:
			rec.Changes = append(rec.Changes, Change{Type: verb + " directory"})
		case model.Link:
			rec.Changes = append(rec.Changes, Change{Type: verb + " link"})
		default:
			rec.Changes = append(rec.Changes, Change{Type: verb, Size: &size})
		}

	case model.ChangeModified:
		if data.FileType == model.Link && data.ModeChange == nil && data.ContentDelta == nil {
			rec.Changes = append(rec.Changes, Change{Type: "changed link"})
		} else if data.ContentDelta != nil {
			added, removed := data.ContentDelta.Added, data.ContentDelta.Removed
			rec.Changes = append(rec.Changes, Change{Type: "modified", Added: &added, Removed: &removed})
		} else if data.ModeChange == nil && data.OwnerChange == nil {
			rec.Changes = append(rec.Changes, Change{Type: "modified"})
		}
	}

	if data.ModeChange != nil {
		rec.Changes = append(rec.Changes, Change{
			Type:    "mode",
			OldMode: data.ModeChange.Old,
			NewMode: data.ModeChange.New,
		})
	}
	if data.OwnerChange != nil {
		rec.Changes = append(rec.Changes, Change{
			Type:     "owner",
			OldUser:  data.OwnerChange.OldUser,
			OldGroup: data.OwnerChange.OldGroup,
			NewUser:  data.OwnerChange.NewUser,
			NewGroup: data.OwnerChange.NewGroup,
		})
	}

	return rec
}
