package app

import (
	"fmt"
	"io"
	"os"

	"golang.org/x/sync/errgroup"

	"github.com/pstuifzand/tui-diffview/internal/borg"
	"github.com/pstuifzand/tui-diffview/internal/difftree"
	"github.com/pstuifzand/tui-diffview/internal/model"
)

// parsedItem is one captured diff record
type parsedItem struct {
	path string
	data *model.DiffData
}

// captureSink collects parsed records instead of inserting them directly,
// so a parse failure leaves no half-built tree behind
type captureSink struct {
	items []parsedItem
}

func (s *captureSink) AddItem(path string, data *model.DiffData) {
	s.items = append(s.items, parsedItem{path: path, data: data})
}

// LoadFiles parses diff output files into a tree. Files are parsed
// concurrently; their records are inserted in argument order. Any parse
// error fails the whole load and no tree is returned.
func LoadFiles(paths []string, jsonInput bool) (*difftree.Tree, error) {
	sinks := make([]*captureSink, len(paths))

	var g errgroup.Group
	for i, path := range paths {
		i, path := i, path
		g.Go(func() error {
			f, err := os.Open(path)
			if err != nil {
				return fmt.Errorf("failed to open diff file: %w", err)
			}
			defer f.Close()

			sink := &captureSink{}
			if err := parseInto(f, jsonInput, sink); err != nil {
				return fmt.Errorf("%s: %w", path, err)
			}
			sinks[i] = sink
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	t := difftree.New()
	for _, sink := range sinks {
		for _, item := range sink.items {
			t.AddItem(item.path, item.data)
		}
	}
	return t, nil
}

// LoadReader parses diff output from a single reader, usually stdin
func LoadReader(r io.Reader, jsonInput bool) (*difftree.Tree, error) {
	sink := &captureSink{}
	if err := parseInto(r, jsonInput, sink); err != nil {
		return nil, err
	}

	t := difftree.New()
	for _, item := range sink.items {
		t.AddItem(item.path, item.data)
	}
	return t, nil
}

func parseInto(r io.Reader, jsonInput bool, sink borg.Sink) error {
	if jsonInput {
		return borg.ParseJSON(r, sink)
	}
	return borg.ParseText(r, sink)
}
