package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/gestalt-tools/adl2gestalt/config"
	"github.com/gestalt-tools/adl2gestalt/runner"
	"github.com/gestalt-tools/adl2gestalt/scanner"
)

func validate(args []string) error {
	fs := flag.NewFlagSet("validate", flag.ExitOnError)
	format := fs.String("format", "", "Only test one output format (qt, bob, dm)")
	structural := fs.Bool("structural", false, "Structural checks only, skip the Gestalt engine")
	configPath := fs.String("config", "", "Configuration file (default adl2gestalt.toml)")

	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, `Usage: adl2gestalt validate <file|dir> [options]

Validate converted Gestalt files, optionally generating each output
format through the external Gestalt engine.

Options:
`)
		fs.PrintDefaults()
	}

	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() < 1 {
		fs.Usage()
		return fmt.Errorf("file or directory required")
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		return err
	}

	input := fs.Arg(0)
	info, err := os.Stat(input)
	if err != nil {
		return fmt.Errorf("stat input: %w", err)
	}

	files := []string{input}
	if info.IsDir() {
		files, err = scanner.ListGestaltFiles(input, true)
		if err != nil {
			return err
		}
	}

	r := runner.New(cfg.GestaltCommand)
	failed := 0
	for _, f := range files {
		if err := validateOne(r, f, *format, *structural); err != nil {
			failed++
			fmt.Fprintf(os.Stderr, "FAIL %s: %v\n", f, err)
			continue
		}
		fmt.Printf("OK   %s\n", f)
	}
	if failed > 0 {
		return fmt.Errorf("%d file(s) failed validation", failed)
	}
	return nil
}

func validateOne(r *runner.Runner, path, format string, structural bool) error {
	if err := runner.Validate(path); err != nil {
		return err
	}
	if structural {
		return nil
	}
	if format != "" {
		return r.Run(path, format, "", "")
	}
	failures, err := r.TestConversion(path)
	if err != nil {
		return err
	}
	for _, fmtName := range runner.Formats {
		if ferr, ok := failures[fmtName]; ok {
			return fmt.Errorf("%s: %w", fmtName, ferr)
		}
	}
	return nil
}
