// Package config loads the optional adl2gestalt.toml run
// configuration. Flags given on the command line override anything
// read here.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/pelletier/go-toml/v2"
)

// DefaultFile is the configuration file looked up in the working
// directory when no explicit path is given.
const DefaultFile = "adl2gestalt.toml"

// Config holds batch conversion defaults.
type Config struct {
	// OutputDir is the default destination for converted documents.
	OutputDir string `toml:"output_dir"`

	// GestaltCommand is the external renderer executable used by the
	// validate subcommand.
	GestaltCommand string `toml:"gestalt_command"`

	// CatalogPath enables the SQLite conversion history when set.
	CatalogPath string `toml:"catalog_path"`

	// IncludeColors and IncludeWidgets name the shared definition
	// files referenced by every emitted document.
	IncludeColors  string `toml:"include_colors"`
	IncludeWidgets string `toml:"include_widgets"`

	// Recursive and Force are the batch-mode defaults.
	Recursive bool `toml:"recursive"`
	Force     bool `toml:"force"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		GestaltCommand: "gestalt",
		IncludeColors:  "colors.yml",
		IncludeWidgets: "widgets.yml",
		Recursive:      true,
	}
}

// Load reads a TOML configuration file, overlaying the defaults. A
// missing file is not an error when path is the default location.
func Load(path string) (Config, error) {
	cfg := Default()

	explicit := path != ""
	if !explicit {
		path = DefaultFile
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if !explicit && errors.Is(err, fs.ErrNotExist) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("read config: %w", err)
	}

	if err := toml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parse config %s: %w", path, err)
	}
	return cfg, nil
}
