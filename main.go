package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/pstuifzand/tui-diffview/internal/app"
	"github.com/pstuifzand/tui-diffview/internal/config"
	"github.com/pstuifzand/tui-diffview/internal/difftree"
)

func main() {
	logFile, err := os.Create("tui-diffview.log")
	if err != nil {
		log.Fatal(err)
	}
	defer logFile.Close()
	log.SetOutput(logFile)
	log.SetFlags(log.LstdFlags | log.Lshortfile)

	debug := flag.Bool("debug", false, "Enable debug mode (shows key events in status)")
	jsonInput := flag.Bool("json", false, "Read borg diff --json-lines output instead of textual output")
	mode := flag.String("mode", "", "Initial display mode: tree, simplified or flat")
	themeName := flag.String("theme", "", "Theme name, overrides the configured theme")
	title := flag.String("title", "", "Title shown in the header, e.g. the compared archive names")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	if *mode != "" {
		cfg.DisplayMode = *mode
	}
	if *themeName != "" {
		cfg.Theme = *themeName
	}

	args := flag.Args()

	tree, header, err := loadTree(args, *jsonInput)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	if *title != "" {
		header = *title
	}

	application, err := app.NewApp(cfg, tree, header)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	if *debug {
		application.SetDebugMode(true)
	}

	if err := application.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "Runtime error: %v\n", err)
		os.Exit(1)
	}

	// Print the selected path so it can be piped into other tools
	if path := application.View().SelectedPath(); path != "" {
		fmt.Println(path)
	}
}

// loadTree builds the diff tree from the given files, or from stdin when
// no files are named
func loadTree(paths []string, jsonInput bool) (t *difftree.Tree, header string, err error) {
	if len(paths) == 0 {
		tree, err := app.LoadReader(os.Stdin, jsonInput)
		return tree, "stdin", err
	}

	tree, err := app.LoadFiles(paths, jsonInput)
	if err != nil {
		return nil, "", err
	}

	names := make([]string, len(paths))
	for i, p := range paths {
		names[i] = filepath.Base(p)
	}
	return tree, strings.Join(names, ", "), nil
}
