// Package pipeline sequences cleaning and translation steps over a table.
package pipeline

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/datapipe-tools/tabkit/cleaning"
	"github.com/datapipe-tools/tabkit/datemeta"
	"github.com/datapipe-tools/tabkit/table"
	"github.com/datapipe-tools/tabkit/translate"
)

// Step names accepted in .tabkit.yaml and on the command line.
const (
	StepHeaders   = "headers"
	StepDedup     = "dedup"
	StepDates     = "dates"
	StepTranslate = "translate"
)

// DefaultSteps is the full pipeline in its canonical order.
var DefaultSteps = []string{StepHeaders, StepDedup, StepDates, StepTranslate}

// ErrEmptyDataset is returned before any step runs when the table has no
// headers or no data rows. Fatal: there is nothing to clean.
var ErrEmptyDataset = errors.New("pipeline: dataset is empty")

// Options configures one pipeline run.
type Options struct {
	// Steps to apply, in order. Empty means DefaultSteps.
	Steps []string
	// DedupColumns restricts duplicate detection to the named columns
	// (matched case-insensitively). Empty means all columns.
	DedupColumns []string
	// TranslateColumns are the columns to translate. Required when the
	// translate step is enabled.
	TranslateColumns []string
	// Translate configures the per-column translation runs.
	Translate translate.Options
	// ColumnConcurrency > 1 translates that many columns at once. Each
	// column still gets its own caches and worker pool.
	ColumnConcurrency int
	// OnLog emits step-level log messages.
	OnLog func(format string, args ...any)
}

func (o *Options) log(format string, args ...any) {
	if o.OnLog != nil {
		o.OnLog(format, args...)
	}
}

func (o *Options) steps() []string {
	if len(o.Steps) == 0 {
		return DefaultSteps
	}
	return o.Steps
}

// Result reports what a run did to the table.
type Result struct {
	// Table is the transformed dataset.
	Table *table.Table
	// DuplicatesRemoved is the number of rows dropped by the dedup step.
	DuplicatesRemoved int
	// ColumnStats holds per-column translation tallies, keyed by the
	// source column name.
	ColumnStats map[string]translate.Stats
}

// ValidateSteps checks that every step name is known.
func ValidateSteps(steps []string) error {
	known := map[string]bool{
		StepHeaders:   true,
		StepDedup:     true,
		StepDates:     true,
		StepTranslate: true,
	}
	var bad []string
	for _, s := range steps {
		if !known[s] {
			bad = append(bad, s)
		}
	}
	if len(bad) > 0 {
		return fmt.Errorf("unknown pipeline steps: %s", strings.Join(bad, ", "))
	}
	return nil
}

// Run applies the configured steps to the table in order and returns the
// result. The input table is not modified.
func Run(ctx context.Context, t *table.Table, opts Options) (*Result, error) {
	if t == nil || t.IsEmpty() {
		return nil, ErrEmptyDataset
	}
	steps := opts.steps()
	if err := ValidateSteps(steps); err != nil {
		return nil, err
	}

	res := &Result{Table: t.Clone()}

	for _, step := range steps {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		var err error
		switch step {
		case StepHeaders:
			opts.log("normalizing headers")
			res.Table = cleaning.NormalizeHeaders(res.Table)
		case StepDedup:
			var removed int
			res.Table, removed, err = cleaning.RemoveDuplicates(res.Table, opts.DedupColumns)
			if err == nil {
				res.DuplicatesRemoved = removed
				opts.log("removed %d duplicate rows", removed)
			}
		case StepDates:
			opts.log("deriving date metadata")
			res.Table, err = datemeta.Derive(res.Table)
		case StepTranslate:
			err = runTranslate(ctx, res, &opts)
		}
		if err != nil {
			return nil, fmt.Errorf("step %s: %w", step, err)
		}
	}
	return res, nil
}

// runTranslate translates every selected column and appends the results
// as new columns. Output column order follows the selection order even
// when columns are translated concurrently.
func runTranslate(ctx context.Context, res *Result, opts *Options) error {
	if len(opts.TranslateColumns) == 0 {
		return errors.New("no translation columns selected")
	}
	names, invalid := cleaning.MatchColumns(res.Table, opts.TranslateColumns)
	if len(invalid) > 0 {
		return fmt.Errorf("columns not found: %s", strings.Join(invalid, ", "))
	}

	res.ColumnStats = make(map[string]translate.Stats, len(names))
	outputs := make([][]string, len(names))

	g, gctx := errgroup.WithContext(ctx)
	limit := opts.ColumnConcurrency
	if limit < 1 {
		limit = 1
	}
	g.SetLimit(limit)

	var mu sync.Mutex // guards ColumnStats
	for i, name := range names {
		i, name := i, name
		idx := res.Table.ColumnIndex(name)
		g.Go(func() error {
			opts.log("translating column %q", name)
			out, stats, err := translate.TranslateColumn(gctx, res.Table.Column(idx), opts.Translate)
			if err != nil {
				return fmt.Errorf("column %q: %w", name, err)
			}
			outputs[i] = out
			mu.Lock()
			res.ColumnStats[name] = stats
			mu.Unlock()
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	for i, name := range names {
		if err := res.Table.AddColumn(translate.OutputPrefix+name, outputs[i]); err != nil {
			return err
		}
	}
	return nil
}
