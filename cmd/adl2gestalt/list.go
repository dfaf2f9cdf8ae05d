package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"

	"github.com/gestalt-tools/adl2gestalt/scanner"
)

func listFilesFor(name, folder string, recursive bool) ([]string, error) {
	if name == "list-medm" {
		return scanner.ListMEDMFiles(folder, recursive)
	}
	return scanner.ListGestaltFiles(folder, recursive)
}

func listMEDM(args []string) error {
	return listCommand("list-medm", "MEDM", args)
}

func listGestalt(args []string) error {
	return listCommand("list-gestalt", "Gestalt", args)
}

func listCommand(name, label string, args []string) error {
	fs := flag.NewFlagSet(name, flag.ExitOnError)
	count := fs.Bool("count", false, "Show only the file count")
	recursive := fs.Bool("recursive", true, "Search subdirectories")

	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, `Usage: adl2gestalt %s <folder> [options]

List all %s files in a folder.

Options:
`, name, label)
		fs.PrintDefaults()
	}

	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() < 1 {
		fs.Usage()
		return fmt.Errorf("folder required")
	}

	folder := fs.Arg(0)
	files, err := listFilesFor(name, folder, *recursive)
	if err != nil {
		return err
	}

	if *count {
		fmt.Printf("Found %d %s files\n", len(files), label)
		return nil
	}
	if len(files) == 0 {
		fmt.Printf("No %s files found\n", label)
		return nil
	}

	fmt.Printf("%s files in %s:\n", label, folder)
	for _, f := range files {
		if rel, err := filepath.Rel(folder, f); err == nil {
			f = rel
		}
		fmt.Printf("  %s\n", f)
	}
	fmt.Printf("\nTotal: %d files\n", len(files))
	return nil
}
