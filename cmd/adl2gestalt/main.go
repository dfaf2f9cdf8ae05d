package main

import (
	"fmt"
	"os"

	"github.com/rs/zerolog"
)

const version = "0.1.0"

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	command := os.Args[1]
	args := os.Args[2:]

	switch command {
	case "convert":
		if err := convert(args); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	case "status":
		if err := status(args); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	case "list-medm":
		if err := listMEDM(args); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	case "list-gestalt":
		if err := listGestalt(args); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	case "validate":
		if err := validate(args); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	case "help", "-h", "--help":
		printUsage()
	case "version", "-v", "--version":
		fmt.Println("adl2gestalt version " + version)
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n\n", command)
		printUsage()
		os.Exit(1)
	}
}

// newLogger builds the diagnostic logger shared by the subcommands.
// Skip diagnostics from the lowering engine land here.
func newLogger(verbose, quiet bool) zerolog.Logger {
	level := zerolog.WarnLevel
	if verbose {
		level = zerolog.DebugLevel
	}
	if quiet {
		level = zerolog.ErrorLevel
	}
	writer := zerolog.ConsoleWriter{Out: os.Stderr}
	return zerolog.New(writer).With().Timestamp().Logger().Level(level)
}

func printUsage() {
	fmt.Println(`adl2gestalt - MEDM ADL to Gestalt display converter

Usage: adl2gestalt <command> [options]

Commands:
  convert       Convert ADL files to Gestalt YAML
  status        Show conversion status for a screen library
  list-medm     List MEDM files in a folder
  list-gestalt  List Gestalt files in a folder
  validate      Validate converted files with the Gestalt engine
  version       Show version
  help          Show this help

Run 'adl2gestalt <command> -h' for command options.`)
}
