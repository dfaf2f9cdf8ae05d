// Package scanner discovers MEDM and Gestalt files on disk and
// computes conversion staleness from file timestamps.
package scanner

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"
)

// Conversion status values reported by Status.
const (
	StatusConverted       = "converted"
	StatusNeedsConversion = "needs_conversion"
)

// FileStatus describes one MEDM file's conversion state.
type FileStatus struct {
	MEDMFile        string
	GestaltFile     string
	Exists          bool
	UpToDate        bool
	MEDMModified    time.Time
	GestaltModified time.Time
	Status          string
}

// Summary aggregates conversion state across a directory tree.
type Summary struct {
	TotalMEDM       int
	Converted       []string
	UpToDate        []string
	Outdated        []string
	NeedsConversion []string
}

// ListMEDMFiles finds .adl files under dir, sorted. With recursive
// false only the directory itself is searched.
func ListMEDMFiles(dir string, recursive bool) ([]string, error) {
	return listByExt(dir, recursive, ".adl")
}

// ListGestaltFiles finds .yml and .yaml files under dir, sorted.
func ListGestaltFiles(dir string, recursive bool) ([]string, error) {
	return listByExt(dir, recursive, ".yml", ".yaml")
}

func listByExt(dir string, recursive bool, exts ...string) ([]string, error) {
	info, err := os.Stat(dir)
	if err != nil {
		return nil, fmt.Errorf("folder does not exist: %s", dir)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("not a directory: %s", dir)
	}

	var files []string
	match := func(name string) bool {
		ext := strings.ToLower(filepath.Ext(name))
		for _, e := range exts {
			if ext == e {
				return true
			}
		}
		return false
	}

	if recursive {
		err = filepath.WalkDir(dir, func(path string, d fs.DirEntry, walkErr error) error {
			if walkErr != nil {
				return walkErr
			}
			if !d.IsDir() && match(d.Name()) {
				files = append(files, path)
			}
			return nil
		})
		if err != nil {
			return nil, fmt.Errorf("walk %s: %w", dir, err)
		}
	} else {
		entries, err := os.ReadDir(dir)
		if err != nil {
			return nil, fmt.Errorf("read %s: %w", dir, err)
		}
		for _, e := range entries {
			if !e.IsDir() && match(e.Name()) {
				files = append(files, filepath.Join(dir, e.Name()))
			}
		}
	}

	sort.Strings(files)
	return files, nil
}

// GestaltPathFor maps an MEDM file to its expected Gestalt output
// path, mirroring the directory structure under gestaltRoot and
// swapping the extension for .yml. An MEDM file outside medmRoot maps
// by base name only.
func GestaltPathFor(medmFile, medmRoot, gestaltRoot string) string {
	rel, err := filepath.Rel(medmRoot, medmFile)
	if err != nil || strings.HasPrefix(rel, "..") {
		rel = filepath.Base(medmFile)
	}
	rel = strings.TrimSuffix(rel, filepath.Ext(rel)) + ".yml"
	return filepath.Join(gestaltRoot, rel)
}

// Status reports whether an MEDM file has been converted into
// gestaltDir and whether that output is current. The output is
// up to date when its modification time is not older than the input's.
func Status(medmFile, gestaltDir string) FileStatus {
	base := strings.TrimSuffix(filepath.Base(medmFile), filepath.Ext(medmFile)) + ".yml"
	gestaltFile := filepath.Join(gestaltDir, base)

	st := FileStatus{
		MEDMFile:    medmFile,
		GestaltFile: gestaltFile,
		Status:      StatusNeedsConversion,
	}

	if info, err := os.Stat(medmFile); err == nil {
		st.MEDMModified = info.ModTime()
	}
	if info, err := os.Stat(gestaltFile); err == nil {
		st.Exists = true
		st.GestaltModified = info.ModTime()
		st.Status = StatusConverted
		if !st.MEDMModified.IsZero() {
			st.UpToDate = !st.GestaltModified.Before(st.MEDMModified)
		}
	}
	return st
}

// Scan builds the conversion summary for every MEDM file under
// medmRoot against outputs under gestaltRoot.
func Scan(medmRoot, gestaltRoot string, recursive bool) (*Summary, error) {
	medmFiles, err := ListMEDMFiles(medmRoot, recursive)
	if err != nil {
		return nil, err
	}

	s := &Summary{TotalMEDM: len(medmFiles)}
	for _, f := range medmFiles {
		expected := GestaltPathFor(f, medmRoot, gestaltRoot)
		st := Status(f, filepath.Dir(expected))
		if st.Status == StatusConverted {
			s.Converted = append(s.Converted, f)
			if st.UpToDate {
				s.UpToDate = append(s.UpToDate, f)
			} else {
				s.Outdated = append(s.Outdated, f)
			}
		} else {
			s.NeedsConversion = append(s.NeedsConversion, f)
		}
	}
	return s, nil
}
