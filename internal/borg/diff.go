// Package borg parses the output of a borg-style `diff` command, in both
// its textual and its JSON-lines form, into per-path change payloads.
//
// Parsing is all-or-nothing per batch: the first malformed line or
// unknown change type aborts with a *ParseError echoing the offending
// input, and nothing further is delivered to the sink. Callers parse
// into a fresh tree and publish it only on success.
package borg

import (
	"bufio"
	"fmt"
	"io"
	"regexp"
	"strconv"
	"strings"

	"github.com/pstuifzand/tui-diffview/internal/model"
)

// Sink receives parsed (path, payload) pairs, one per diff record.
type Sink interface {
	AddItem(path string, data *model.DiffData)
}

// ParseError reports malformed diff output. Input holds the raw line,
// record or token that failed.
type ParseError struct {
	Input  string
	Reason string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("%s: %q", e.Reason, e.Input)
}

// SizeToBytes converts a size with one of the tool's unit suffixes into a
// byte count. Units are decimal: kB = 10^3, MB = 10^6 and so on. The
// result is truncated, matching the precision the tool printed with.
func SizeToBytes(value, unit string) (int64, error) {
	var mult float64
	switch unit {
	case "B":
		mult = 1
	case "kB", "KB":
		mult = 1e3
	case "MB":
		mult = 1e6
	case "GB":
		mult = 1e9
	case "TB":
		mult = 1e12
	default:
		return 0, &ParseError{Input: unit, Reason: "unknown size unit"}
	}

	v, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return 0, &ParseError{Input: value, Reason: "invalid size value"}
	}
	return int64(v * mult), nil
}

// The textual grammar, one line per changed path:
//
//	added directory     home/user/Documents/newfolder
//	removed         0 B home/user/Documents/testdir/file1
//	added          20 B home/user/Documents/testdir/file4
//	changed link        home/user/Documents/testlink
//	 +77.8 kB  -77.8 kB [-rw-rw-rw- -> -rw-r--r--] home/user/file.txt
//	[user:user -> nfsnobody:nfsnobody] home/user/arrays/test.txt
//
// Exactly one top-level alternative applies: added/removed, changed
// link, or a combination of modified/owner/mode clauses.
const (
	patternAddRemove = `(?P<a_r>added|removed) (?P<ar_type>directory|link|\s+(?P<size>[\d.]+) (?P<size_unit>\w+))\s*`
	patternLink      = `changed link\s*`
	patternModified  = `\s*\+?(?P<added>[\d.]+) (?P<added_unit>\w+)\s*-?(?P<removed>[\d.]+) (?P<removed_unit>\w+)`
	patternMode      = `\[(?P<old_mode>[\w-]{10}) -> (?P<new_mode>[\w-]{10})\]`
	patternOwner     = `\[(?P<old_user>[\w ]+):(?P<old_group>[\w ]+) -> (?P<new_user>[\w ]+):(?P<new_group>[\w ]+)\]`
	patternPath      = `(?P<path>.*)`
)

var reChangedLine = regexp.MustCompile(
	`^((` + patternAddRemove + ` )|((?P<cl>` + patternLink + ` )|` +
		`((?P<modified>` + patternModified + `\s+)?)(?P<owner>` + patternOwner + `\s+)?(?P<mode>` + patternMode + `\s+)?))` +
		patternPath + `$`)

// submatches maps named groups of a match to their captured text.
func submatches(re *regexp.Regexp, m []string) map[string]string {
	groups := make(map[string]string)
	for i, name := range re.SubexpNames() {
		if name != "" && m[i] != "" {
			groups[name] = m[i]
		}
	}
	return groups
}

// ParseTextLines parses textual diff output and delivers one payload per
// line to the sink. Empty lines are skipped.
func ParseTextLines(lines []string, sink Sink) error {
	for _, line := range lines {
		if strings.TrimSpace(line) == "" {
			continue
		}

		path, data, err := parseTextLine(line)
		if err != nil {
			return err
		}
		sink.AddItem(path, data)
	}
	return nil
}

// ParseText reads textual diff output line by line from r.
func ParseText(r io.Reader, sink Sink) error {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		line := scanner.Text()
		if strings.TrimSpace(line) == "" {
			continue
		}

		path, data, err := parseTextLine(line)
		if err != nil {
			return err
		}
		sink.AddItem(path, data)
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("failed to read diff output: %w", err)
	}
	return nil
}

func parseTextLine(line string) (string, *model.DiffData, error) {
	m := reChangedLine.FindStringSubmatch(line)
	if m == nil {
		return "", nil, &ParseError{Input: line, Reason: "unrecognized diff line"}
	}
	groups := submatches(reChangedLine, m)

	data := &model.DiffData{FileType: model.File}

	switch {
	case groups["a_r"] != "":
		switch groups["ar_type"] {
		case "directory":
			data.FileType = model.Directory
		case "link":
			data.FileType = model.Link
		default:
			// regular file with a reported size
			size, err := SizeToBytes(groups["size"], groups["size_unit"])
			if err != nil {
				return "", nil, err
			}
			data.SizeDelta = size
		}

		if groups["a_r"] == "added" {
			data.ChangeType = model.ChangeAdded
		} else {
			data.ChangeType = model.ChangeRemoved
			data.SizeDelta = -data.SizeDelta
		}

	case groups["cl"] != "" || groups["modified"] != "" || groups["owner"] != "" || groups["mode"] != "":
		data.ChangeType = model.ChangeModified

		if groups["owner"] != "" {
			data.OwnerChange = &model.OwnerChange{
				OldUser:  groups["old_user"],
				OldGroup: groups["old_group"],
				NewUser:  groups["new_user"],
				NewGroup: groups["new_group"],
			}
		}

		if groups["cl"] != "" {
			// links have no separate permission clause
			data.FileType = model.Link
		} else {
			if groups["modified"] != "" {
				added, err := SizeToBytes(groups["added"], groups["added_unit"])
				if err != nil {
					return "", nil, err
				}
				removed, err := SizeToBytes(groups["removed"], groups["removed_unit"])
				if err != nil {
					return "", nil, err
				}
				data.ContentDelta = &model.ContentDelta{Added: added, Removed: removed}
				data.SizeDelta = added - removed
			}

			if groups["mode"] != "" {
				data.ModeChange = &model.ModeChange{
					Old: groups["old_mode"],
					New: groups["new_mode"],
				}
			}
		}

	default:
		return "", nil, &ParseError{Input: line, Reason: "unrecognized diff line"}
	}

	path := strings.TrimSpace(groups["path"])
	if path == "" {
		return "", nil, &ParseError{Input: line, Reason: "diff line without path"}
	}

	return path, data, nil
}
