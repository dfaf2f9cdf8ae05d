package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/gestalt-tools/adl2gestalt/catalog"
	"github.com/gestalt-tools/adl2gestalt/config"
	"github.com/gestalt-tools/adl2gestalt/gestalt"
	"github.com/gestalt-tools/adl2gestalt/scanner"
)

func convert(args []string) error {
	fs := flag.NewFlagSet("convert", flag.ExitOnError)
	output := fs.String("o", "", "Output file or directory")
	batch := fs.Bool("batch", false, "Convert an entire directory")
	recursive := fs.Bool("recursive", true, "Search subdirectories in batch mode")
	force := fs.Bool("force", false, "Overwrite existing output files")
	quiet := fs.Bool("quiet", false, "Suppress non-error output")
	verbose := fs.Bool("verbose", false, "Verbose output")
	configPath := fs.String("config", "", "Configuration file (default adl2gestalt.toml)")

	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, `Usage: adl2gestalt convert <input> [options]

Convert MEDM ADL files to Gestalt YAML.

Options:
`)
		fs.PrintDefaults()
		fmt.Fprintf(os.Stderr, `
Examples:
  # Single file, output next to the input
  adl2gestalt convert screen.adl

  # Single file to an explicit path
  adl2gestalt convert screen.adl -o out/screen.yml

  # Whole screen library, mirroring the directory tree
  adl2gestalt convert screens/ -batch -o converted/
`)
	}

	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() < 1 {
		fs.Usage()
		return fmt.Errorf("input file or directory required")
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		return err
	}

	input := fs.Arg(0)
	conv := gestalt.NewConverter()
	conv.Log = newLogger(*verbose, *quiet)
	conv.IncludeColors = cfg.IncludeColors
	conv.IncludeWidgets = cfg.IncludeWidgets

	info, err := os.Stat(input)
	if err != nil {
		return fmt.Errorf("stat input: %w", err)
	}

	if !info.IsDir() {
		return convertOne(conv, input, *output, *force, *quiet)
	}

	if !*batch {
		return fmt.Errorf("input is a directory, use -batch for batch conversion")
	}
	return convertBatch(conv, cfg, input, *output, *recursive, *force, *quiet, *verbose)
}

func convertOne(conv *gestalt.Converter, input, output string, force, quiet bool) error {
	if !strings.EqualFold(filepath.Ext(input), ".adl") {
		return fmt.Errorf("input file must have .adl extension: %s", input)
	}

	if output != "" && !force {
		if info, err := os.Stat(output); err == nil && !info.IsDir() {
			return fmt.Errorf("output file exists: %s (use -force to overwrite)", output)
		}
	}

	written, err := conv.ConvertFile(input, output)
	if err != nil {
		return err
	}
	if !quiet {
		fmt.Printf("Converted %s -> %s\n", input, written)
	}
	return nil
}

func convertBatch(conv *gestalt.Converter, cfg config.Config, input, output string, recursive, force, quiet, verbose bool) error {
	outputDir := output
	if outputDir == "" {
		outputDir = cfg.OutputDir
	}
	if outputDir == "" {
		outputDir = input
	}

	files, err := scanner.ListMEDMFiles(input, recursive)
	if err != nil {
		return err
	}
	if len(files) == 0 {
		if !quiet {
			fmt.Println("No MEDM files found")
		}
		return nil
	}
	if !quiet {
		fmt.Printf("Found %d MEDM files to convert\n", len(files))
	}

	var store *catalog.Store
	var runID string
	if cfg.CatalogPath != "" {
		store, err = catalog.Open(cfg.CatalogPath)
		if err != nil {
			return err
		}
		defer store.Close()
		runID, err = store.BeginRun()
		if err != nil {
			return err
		}
	}

	record := func(source, out, outcome, message string) {
		if store == nil {
			return
		}
		if err := store.RecordConversion(runID, source, out, outcome, message); err != nil {
			fmt.Fprintf(os.Stderr, "catalog: %v\n", err)
		}
	}

	converted, failed := 0, 0
	for _, f := range files {
		outPath := scanner.GestaltPathFor(f, input, outputDir)

		if !force {
			if _, err := os.Stat(outPath); err == nil {
				if verbose {
					fmt.Printf("Skipping existing: %s\n", outPath)
				}
				record(f, outPath, catalog.OutcomeSkipped, "output exists")
				continue
			}
		}

		if _, err := conv.ConvertFile(f, outPath); err != nil {
			failed++
			record(f, outPath, catalog.OutcomeFailed, err.Error())
			if !quiet {
				fmt.Fprintf(os.Stderr, "Failed: %s: %v\n", f, err)
			}
			continue
		}
		converted++
		record(f, outPath, catalog.OutcomeConverted, "")
		if verbose {
			fmt.Printf("Converted: %s -> %s\n", f, outPath)
		}
	}

	if store != nil {
		if err := store.FinishRun(runID, converted, failed); err != nil {
			fmt.Fprintf(os.Stderr, "catalog: %v\n", err)
		}
	}

	if !quiet {
		fmt.Printf("\nConversion summary: %d converted, %d failed\n", converted, failed)
	}
	if failed > 0 {
		return fmt.Errorf("%d conversion(s) failed", failed)
	}
	return nil
}
