// Package config — .tabkit.yaml pipeline file support.
//
// When a .tabkit.yaml file exists in the project root, tabkit uses it
// as the sole source of truth for the pipeline: input file, step list,
// column selections and provider settings. Command-line flags override
// individual fields.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// ---------------------------------------------------------------------------
// YAML schema
// ---------------------------------------------------------------------------

// TabkitFile is the top-level .tabkit.yaml structure.
type TabkitFile struct {
	// Input is the input file path relative to the project root.
	// Empty enables auto-detection from data/raw/.
	Input string `yaml:"input,omitempty"`
	// Output is the output file path relative to the project root.
	// Empty derives data/output/<name>_processed<ext>.
	Output string `yaml:"output,omitempty"`
	// Steps is the ordered pipeline step list. Empty means all steps:
	// headers, dedup, dates, translate.
	Steps []string `yaml:"steps,omitempty"`
	// DedupColumns restricts duplicate detection to the named columns.
	DedupColumns []string `yaml:"dedup_columns,omitempty"`
	// Translate configures the translation step.
	Translate TranslateConfig `yaml:"translate,omitempty"`
	// CSV configures output encoding.
	CSV CSVConfig `yaml:"csv,omitempty"`
}

// TranslateConfig is the translate section of .tabkit.yaml.
type TranslateConfig struct {
	// Columns are the columns to translate.
	Columns []string `yaml:"columns,omitempty"`
	// TargetLang is the target language code (default "en").
	TargetLang string `yaml:"target_lang,omitempty"`
	// SourceLang is the source language code (default "auto").
	SourceLang string `yaml:"source_lang,omitempty"`
	// Provider: "google", "libretranslate", "mymemory" or "deepl".
	Provider string `yaml:"provider,omitempty"`
	// Endpoint overrides the provider's default API endpoint.
	Endpoint string `yaml:"endpoint,omitempty"`
	// Workers bounds the per-column worker pool (0 = auto).
	Workers int `yaml:"workers,omitempty"`
	// ColumnConcurrency > 1 translates that many columns at once.
	ColumnConcurrency int `yaml:"column_concurrency,omitempty"`
}

// CSVConfig is the csv section of .tabkit.yaml.
type CSVConfig struct {
	// BOM prepends a UTF-8 byte-order mark to written CSV files
	// (Excel compatibility).
	BOM bool `yaml:"bom,omitempty"`
	// Delimiter is the output field separator (default ",").
	Delimiter string `yaml:"delimiter,omitempty"`
}

// TabkitFileName is the default config file name.
const TabkitFileName = ".tabkit.yaml"

// ---------------------------------------------------------------------------
// Loading
// ---------------------------------------------------------------------------

// LoadTabkitFile loads and validates .tabkit.yaml from the given
// directory. Returns nil if no .tabkit.yaml exists.
func LoadTabkitFile(rootDir string) (*TabkitFile, error) {
	path := filepath.Join(rootDir, TabkitFileName)
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}

	var tf TabkitFile
	if err := yaml.Unmarshal(data, &tf); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}

	// Defaults
	if tf.Translate.TargetLang == "" {
		tf.Translate.TargetLang = "en"
	}
	if tf.Translate.SourceLang == "" {
		tf.Translate.SourceLang = "auto"
	}
	if tf.Translate.Provider == "" {
		tf.Translate.Provider = "google"
	}
	if tf.CSV.Delimiter == "" {
		tf.CSV.Delimiter = ","
	}

	if len(tf.CSV.Delimiter) != 1 {
		return nil, fmt.Errorf("%s: csv.delimiter must be a single character, got %q", path, tf.CSV.Delimiter)
	}
	for _, s := range tf.Steps {
		switch s {
		case "headers", "dedup", "dates", "translate":
		default:
			return nil, fmt.Errorf("%s: unknown step %q (valid: headers, dedup, dates, translate)", path, s)
		}
	}
	if hasStep(tf.Steps, "translate") && len(tf.Translate.Columns) == 0 {
		return nil, fmt.Errorf("%s: translate step enabled but translate.columns is empty", path)
	}

	return &tf, nil
}

// Save writes the config back to rootDir/.tabkit.yaml.
func (tf *TabkitFile) Save(rootDir string) error {
	data, err := yaml.Marshal(tf)
	if err != nil {
		return err
	}
	path := filepath.Join(rootDir, TabkitFileName)
	return os.WriteFile(path, data, 0o644)
}

// hasStep reports whether the step list names the given step. An empty
// list means all steps.
func hasStep(steps []string, step string) bool {
	if len(steps) == 0 {
		return true
	}
	for _, s := range steps {
		if strings.EqualFold(s, step) {
			return true
		}
	}
	return false
}
