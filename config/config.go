// Package config implements project layout detection and the .tabkit.yaml
// pipeline file.
//
// A tabkit project is a directory with a data/raw/ subdirectory holding
// the input file and a data/output/ subdirectory receiving results. All
// paths live on the Project value; nothing in this package keeps global
// state.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// inputExtensions are the tabular file types tabkit can read, in
// auto-detection preference order.
var inputExtensions = []string{".csv", ".tsv", ".txt", ".xlsx", ".xls"}

// Project holds the resolved directory layout for one pipeline run.
type Project struct {
	// Root is the absolute project root directory.
	Root string
	// DataDir is Root/data.
	DataDir string
	// RawDir is Root/data/raw, where input files live.
	RawDir string
	// OutputDir is Root/data/output, where results are written.
	OutputDir string
	// InputFile is the absolute path of the detected or configured
	// input file. Empty until DetectInput or an explicit override.
	InputFile string
}

// NewProject resolves the project layout rooted at dir.
func NewProject(dir string) (*Project, error) {
	root, err := filepath.Abs(dir)
	if err != nil {
		return nil, err
	}
	dataDir := filepath.Join(root, "data")
	return &Project{
		Root:      root,
		DataDir:   dataDir,
		RawDir:    filepath.Join(dataDir, "raw"),
		OutputDir: filepath.Join(dataDir, "output"),
	}, nil
}

// EnsureDirs creates the data directories if they do not exist.
func (p *Project) EnsureDirs() error {
	for _, dir := range []string{p.DataDir, p.RawDir, p.OutputDir} {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("creating %s: %w", dir, err)
		}
	}
	return nil
}

// DetectInput locates the input file. An explicit path wins; otherwise
// the first tabular file in data/raw/ is used, then one in the project
// root. Candidates with the same extension sort by name for determinism.
func (p *Project) DetectInput(explicit string) error {
	if explicit != "" {
		path := explicit
		if !filepath.IsAbs(path) {
			path = filepath.Join(p.Root, path)
		}
		if _, err := os.Stat(path); err != nil {
			return fmt.Errorf("input file %s: %w", explicit, err)
		}
		p.InputFile = path
		return nil
	}
	for _, dir := range []string{p.RawDir, p.Root} {
		if path := findTabularFile(dir); path != "" {
			p.InputFile = path
			return nil
		}
	}
	return fmt.Errorf("no input file found in %s or %s (expected one of %s)",
		p.RawDir, p.Root, strings.Join(inputExtensions, ", "))
}

// OutputPath returns the output file path for the detected input:
// data/output/<name>_processed<ext>.
func (p *Project) OutputPath() string {
	base := filepath.Base(p.InputFile)
	ext := filepath.Ext(base)
	name := strings.TrimSuffix(base, ext)
	if ext == "" || !isInputExtension(ext) {
		ext = ".csv"
	}
	return filepath.Join(p.OutputDir, name+"_processed"+ext)
}

// findTabularFile returns the first readable tabular file in dir,
// preferring extensions in inputExtensions order, then name order.
func findTabularFile(dir string) string {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return ""
	}
	byExt := make(map[string][]string)
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		name := entry.Name()
		if strings.HasPrefix(name, ".") {
			continue
		}
		ext := strings.ToLower(filepath.Ext(name))
		if isInputExtension(ext) {
			byExt[ext] = append(byExt[ext], name)
		}
	}
	for _, ext := range inputExtensions {
		names := byExt[ext]
		if len(names) == 0 {
			continue
		}
		sort.Strings(names)
		return filepath.Join(dir, names[0])
	}
	return ""
}

func isInputExtension(ext string) bool {
	for _, e := range inputExtensions {
		if strings.EqualFold(ext, e) {
			return true
		}
	}
	return false
}
