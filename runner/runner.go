// Package runner invokes the downstream Gestalt rendering engine as an
// out-of-process batch step for validating and previewing converted
// documents. The conversion core has no dependency on the engine being
// installed; everything here degrades to an error message.
package runner

import (
	"bytes"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
)

// Formats the Gestalt engine can generate from one document.
var Formats = []string{"qt", "bob", "dm"}

// Runner wraps one external gestalt executable.
type Runner struct {
	// Command is the gestalt executable name or path.
	Command string
}

// New returns a Runner for the given executable; an empty command
// defaults to "gestalt" on PATH.
func New(command string) *Runner {
	if command == "" {
		command = "gestalt"
	}
	return &Runner{Command: command}
}

// Validate performs structural checks on an emitted document without
// invoking the engine: the file must exist, be non-empty, and contain
// a Form root.
func Validate(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read gestalt file: %w", err)
	}
	if len(bytes.TrimSpace(data)) == 0 {
		return fmt.Errorf("empty gestalt file: %s", path)
	}
	if !bytes.Contains(data, []byte("!Form")) {
		return fmt.Errorf("no Form root in %s", path)
	}
	return nil
}

// Run feeds a Gestalt document through the engine for one output
// format. outputFile and dataFile are optional.
func (r *Runner) Run(gestaltFile, format, outputFile, dataFile string) error {
	if _, err := exec.LookPath(r.Command); err != nil {
		return fmt.Errorf("gestalt executable not found: %w", err)
	}

	args := []string{"-t", format}
	if outputFile != "" {
		args = append(args, "-o", outputFile)
	}
	if dataFile != "" {
		args = append(args, "-i", dataFile)
	}
	args = append(args, gestaltFile)

	cmd := exec.Command(r.Command, args...)
	cmd.Dir = filepath.Dir(gestaltFile)
	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		msg := strings.TrimSpace(stderr.String())
		if msg == "" {
			msg = err.Error()
		}
		return fmt.Errorf("gestalt %s generation failed: %s", format, msg)
	}
	return nil
}

// TestConversion validates a document and tries every output format
// into a temporary directory, returning per-format errors keyed by
// format name. A nil map means everything succeeded.
func (r *Runner) TestConversion(gestaltFile string) (map[string]error, error) {
	if err := Validate(gestaltFile); err != nil {
		return nil, err
	}

	tmp, err := os.MkdirTemp("", "adl2gestalt-validate-")
	if err != nil {
		return nil, fmt.Errorf("create temp dir: %w", err)
	}
	defer os.RemoveAll(tmp)

	failures := make(map[string]error)
	for _, format := range Formats {
		out := filepath.Join(tmp, "test_output."+format)
		if err := r.Run(gestaltFile, format, out, ""); err != nil {
			failures[format] = err
		}
	}
	if len(failures) == 0 {
		return nil, nil
	}
	return failures, nil
}
