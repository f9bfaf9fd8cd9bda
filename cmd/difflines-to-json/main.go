package main

import (
	"bufio"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/pstuifzand/tui-diffview/internal/borg"
	"github.com/pstuifzand/tui-diffview/internal/model"
)

func main() {
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, `Usage: difflines-to-json [options] [input.txt ...]

Converts textual borg diff output to the JSON-lines format, one record
per changed path.

Options:
`)
		flag.PrintDefaults()
		fmt.Fprintf(os.Stderr, `
Arguments:
  input.txt    Textual diff output files to convert. Each file is written
               next to its input with a .json extension. Without
               arguments, reads stdin and writes stdout.

Examples:
  # Convert stdin to stdout
  borg diff repo::old repo::new | difflines-to-json

  # Convert several captured diffs in parallel
  difflines-to-json january.txt february.txt
`)
	}

	flag.Parse()

	args := flag.Args()
	if len(args) == 0 {
		if err := convert(os.Stdin, os.Stdout); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		return
	}

	var g errgroup.Group
	for _, inputPath := range args {
		inputPath := inputPath
		g.Go(func() error {
			return convertFile(inputPath)
		})
	}
	if err := g.Wait(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// convertFile converts one textual diff file to <name>.json
func convertFile(inputPath string) error {
	inputFile, err := os.Open(inputPath)
	if err != nil {
		return fmt.Errorf("failed to open input file: %w", err)
	}
	defer inputFile.Close()

	outputPath := strings.TrimSuffix(inputPath, ".txt") + ".json"
	outputFile, err := os.Create(outputPath)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	defer outputFile.Close()

	if err := convert(inputFile, outputFile); err != nil {
		return fmt.Errorf("%s: %w", inputPath, err)
	}
	return nil
}

// recordWriter emits one JSON record per parsed line
type recordWriter struct {
	enc *json.Encoder
	err error
}

func (w *recordWriter) AddItem(path string, data *model.DiffData) {
	if w.err != nil {
		return
	}
	w.err = w.enc.Encode(borg.RecordFor(path, data))
}

// convert parses textual diff output from r and writes JSON lines to w
func convert(r io.Reader, w io.Writer) error {
	bw := bufio.NewWriter(w)
	sink := &recordWriter{enc: json.NewEncoder(bw)}

	if err := borg.ParseText(r, sink); err != nil {
		return err
	}
	if sink.err != nil {
		return fmt.Errorf("failed to write record: %w", sink.err)
	}
	return bw.Flush()
}
