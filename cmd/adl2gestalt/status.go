package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"

	"github.com/gestalt-tools/adl2gestalt/scanner"
)

func status(args []string) error {
	fs := flag.NewFlagSet("status", flag.ExitOnError)
	verbose := fs.Bool("v", false, "Show per-file status lists")
	recursive := fs.Bool("recursive", true, "Search subdirectories")

	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, `Usage: adl2gestalt status <medm-dir> <gestalt-dir> [options]

Show conversion status for every MEDM file in a screen library.
Exits non-zero when outdated or pending files remain.

Options:
`)
		fs.PrintDefaults()
	}

	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() < 2 {
		fs.Usage()
		return fmt.Errorf("MEDM and Gestalt directories required")
	}

	medmDir := fs.Arg(0)
	gestaltDir := fs.Arg(1)

	summary, err := scanner.Scan(medmDir, gestaltDir, *recursive)
	if err != nil {
		return err
	}

	fmt.Println("Conversion Status Summary")
	fmt.Println("========================================")
	fmt.Printf("MEDM folder:      %s\n", medmDir)
	fmt.Printf("Gestalt folder:   %s\n", gestaltDir)
	fmt.Printf("Total MEDM files: %d\n", summary.TotalMEDM)
	fmt.Printf("  Up to date: %d\n", len(summary.UpToDate))
	fmt.Printf("  Outdated:   %d\n", len(summary.Outdated))
	fmt.Printf("  Pending:    %d\n", len(summary.NeedsConversion))

	if *verbose {
		printFileList("Up to date files:", summary.UpToDate, medmDir)
		printFileList("Outdated files (MEDM newer than Gestalt):", summary.Outdated, medmDir)
		printFileList("Pending conversion:", summary.NeedsConversion, medmDir)
	}

	if len(summary.Outdated) > 0 || len(summary.NeedsConversion) > 0 {
		return fmt.Errorf("%d file(s) need conversion", len(summary.Outdated)+len(summary.NeedsConversion))
	}
	return nil
}

func printFileList(header string, files []string, root string) {
	if len(files) == 0 {
		return
	}
	fmt.Println()
	fmt.Println(header)
	for _, f := range files {
		if rel, err := filepath.Rel(root, f); err == nil {
			f = rel
		}
		fmt.Printf("  %s\n", f)
	}
}
