// Package translate implements column translation for tabular data.
//
// Translating a column cell-by-cell is wasteful: real datasets repeat the
// same value across many rows and contain near-duplicate variants of the
// same text. The pipeline instead collects the distinct trimmed values,
// vectorizes them with TF-IDF over unigrams and bigrams, partitions them
// into similarity groups, and translates one representative per group via
// an external machine-translation provider. Results propagate to every
// group member and every row, so a 10,000-row column with 40 distinct
// values costs at most 40 provider calls — usually fewer.
//
// All derived state (unique-text set, vectors, groups, caches) lives for
// one column run and is discarded afterwards.
package translate

import (
	"context"
	"runtime"
	"strings"
	"sync"
	"time"
	"unicode/utf8"

	"github.com/datapipe-tools/tabkit/langmeta"
)

// ---------------------------------------------------------------------------
// Statuses and sentinels
// ---------------------------------------------------------------------------

// Per-group outcome statuses.
const (
	StatusCached     = "cached"
	StatusSkipped    = "skipped"
	StatusTranslated = "translated"
	StatusError      = "error"
)

// FailedSentinel is written for every member of a group whose translation
// failed. The failure is contained to the group; other groups and the
// column as a whole proceed.
const FailedSentinel = "NA"

// OutputPrefix derives the translated column's name from the source
// column's name.
const OutputPrefix = "T_"

// workerCeiling caps the worker pool regardless of CPU count, to avoid
// overwhelming rate-limited provider APIs.
const workerCeiling = 10

// minDetectLength is the exclusive length bound below which language
// detection is skipped (very short strings detect unreliably).
const minDetectLength = 3

// langUnknown marks a failed detection in the language cache so the
// detector is not re-asked about the same text.
const langUnknown = "unknown"

// ---------------------------------------------------------------------------
// Options
// ---------------------------------------------------------------------------

// Options controls one column translation run.
type Options struct {
	// Provider performs the external translation calls. Required.
	Provider Provider
	// Detector reports source languages so already-in-target texts can be
	// skipped. Optional; nil disables the skip optimization.
	Detector Detector
	// TargetLang is the target language code (e.g. "en").
	TargetLang string
	// SourceLang is the source language code, or "auto" (the default).
	SourceLang string
	// MaxWorkers bounds the worker pool. 0 means min(NumCPU, 10); values
	// above the provider-safety ceiling of 10 are clamped.
	MaxWorkers int
	// CallTimeout bounds each external call. 0 leaves timing to the
	// provider's own HTTP timeout.
	CallTimeout time.Duration
	// OnProgress is called after each group completes with (done, total).
	OnProgress func(done, total int)
	// OnLog emits log messages during the run.
	OnLog func(format string, args ...any)
	// Verbose enables detailed logging.
	Verbose bool
}

func (o *Options) log(format string, args ...any) {
	if o.OnLog != nil {
		o.OnLog(format, args...)
	}
}

func (o *Options) effectiveSource() string {
	if o.SourceLang == "" {
		return SourceAuto
	}
	return o.SourceLang
}

func (o *Options) effectiveWorkers() int {
	w := o.MaxWorkers
	if w <= 0 {
		w = runtime.NumCPU()
	}
	if w > workerCeiling {
		w = workerCeiling
	}
	if w < 1 {
		w = 1
	}
	return w
}

// Stats tallies the outcome of one column run. Group counts, not row
// counts: one group that covered twelve rows still counts once.
type Stats struct {
	// Rows is the input column length.
	Rows int
	// UniqueTexts is the number of distinct non-empty trimmed values.
	UniqueTexts int
	// Groups is the number of similarity groups dispatched.
	Groups int
	// Grouped is the number of texts that rode along with another group
	// member instead of costing their own provider call.
	Grouped int
	// Cached, Skipped, Translated and Errors count groups by status.
	Cached     int
	Skipped    int
	Translated int
	Errors     int
}

// ---------------------------------------------------------------------------
// Column orchestration
// ---------------------------------------------------------------------------

// columnRun bundles the per-column shared state: both caches live exactly
// as long as one TranslateColumn call.
type columnRun struct {
	opts         *Options
	translations *keyedCache
	languages    *keyedCache
}

// TranslateColumn translates one column of raw cell values and returns an
// output column of the same length. Rows that are empty after trimming
// map to ""; rows whose group failed map to FailedSentinel; all other
// rows receive their text's translation. Exact-duplicate inputs always
// receive identical outputs.
//
// Only context cancellation propagates as an error; per-group provider
// and detection failures are contained in the output and Stats.
func TranslateColumn(ctx context.Context, column []string, opts Options) ([]string, Stats, error) {
	stats := Stats{Rows: len(column)}
	out := make([]string, len(column))

	// Distinct trimmed values in first-seen order, with row memberships.
	var unique []string
	rowsOf := make(map[string][]int)
	for i, cell := range column {
		text := strings.TrimSpace(cell)
		if text == "" {
			continue
		}
		if _, seen := rowsOf[text]; !seen {
			unique = append(unique, text)
		}
		rowsOf[text] = append(rowsOf[text], i)
	}
	stats.UniqueTexts = len(unique)
	if len(unique) == 0 {
		// Nothing to translate; no vectorization, no provider calls.
		return out, stats, nil
	}

	opts.log("vectorizing %d unique texts", len(unique))
	var groups []Group
	vectors, err := Vectorize(unique)
	if err != nil {
		// Degenerate input: every text becomes its own group.
		opts.log("vectorization failed (%v), falling back to singleton groups", err)
		groups = SingletonGroups(unique)
	} else {
		groups = GroupSimilar(unique, vectors, SimilarityThreshold)
	}
	stats.Groups = len(groups)
	for _, g := range groups {
		stats.Grouped += len(g) - 1
	}
	opts.log("grouped %d texts into %d groups (threshold %.2f)", len(unique), len(groups), SimilarityThreshold)

	run := &columnRun{
		opts:         &opts,
		translations: newKeyedCache(),
		languages:    newKeyedCache(),
	}

	workers := opts.effectiveWorkers()
	if opts.Verbose {
		opts.log("translating %d groups with %d workers", len(groups), workers)
	}

	sem := make(chan struct{}, workers)
	var wg sync.WaitGroup
	var mu sync.Mutex // guards stats tallies and the progress counter
	done := 0

	for _, g := range groups {
		if ctx.Err() != nil {
			break
		}
		sem <- struct{}{}
		wg.Add(1)

		go func(g Group) {
			defer func() {
				<-sem
				wg.Done()
			}()

			result, status := run.translateGroup(ctx, g)

			// Row memberships partition across groups, so each output
			// index is written by exactly one goroutine.
			for text, translated := range result {
				for _, idx := range rowsOf[text] {
					out[idx] = translated
				}
			}

			mu.Lock()
			switch status {
			case StatusCached:
				stats.Cached++
			case StatusSkipped:
				stats.Skipped++
			case StatusTranslated:
				stats.Translated++
			case StatusError:
				stats.Errors++
			}
			done++
			if opts.OnProgress != nil {
				opts.OnProgress(done, len(groups))
			}
			mu.Unlock()
		}(g)
	}

	wg.Wait()
	if err := ctx.Err(); err != nil {
		return out, stats, err
	}
	return out, stats, nil
}

// ---------------------------------------------------------------------------
// Group translation
// ---------------------------------------------------------------------------

// translateGroup resolves one group to a text→translation mapping plus a
// status. The whole check-cache / detect / call-provider / populate-cache
// sequence runs under the representative's cache key, so concurrent
// groups sharing a representative trigger at most one external call.
func (r *columnRun) translateGroup(ctx context.Context, g Group) (map[string]string, string) {
	result := make(map[string]string, len(g))
	rep := strings.TrimSpace(g.Representative())

	status := StatusTranslated
	value, hit, err := r.translations.getOrCompute(rep, func() (string, error) {
		if utf8.RuneCountInString(rep) > minDetectLength {
			if lang, ok := r.detectLanguage(rep); ok && lang == langmeta.Base(r.opts.TargetLang) {
				// Already in the target language: the text is its own
				// translation.
				status = StatusSkipped
				return rep, nil
			}
		}
		callCtx, cancel := r.callContext(ctx)
		defer cancel()
		return r.opts.Provider.Translate(callCtx, rep, r.opts.effectiveSource(), r.opts.TargetLang)
	})
	if err != nil {
		r.opts.log("group %q failed: %v", rep, err)
		for _, text := range g {
			result[text] = FailedSentinel
		}
		return result, StatusError
	}

	if hit {
		status = StatusCached
	} else if status == StatusTranslated {
		// A fresh provider result covers every member: later groups whose
		// representative is one of these texts hit the cache.
		for _, text := range g {
			r.translations.put(strings.TrimSpace(text), value)
		}
	}

	for _, text := range g {
		result[text] = value
	}
	return result, status
}

// detectLanguage returns the cached-or-detected language of text. A
// detection failure is cached as unknown and reported as no answer, so
// the translation proceeds normally.
func (r *columnRun) detectLanguage(text string) (string, bool) {
	if r.opts.Detector == nil {
		return "", false
	}
	lang, _, _ := r.languages.getOrCompute(text, func() (string, error) {
		detected, err := r.opts.Detector.Detect(text)
		if err != nil {
			return langUnknown, nil
		}
		return detected, nil
	})
	if lang == langUnknown {
		return "", false
	}
	return lang, true
}

// callContext derives the per-call context, applying the configured
// timeout when set.
func (r *columnRun) callContext(ctx context.Context) (context.Context, context.CancelFunc) {
	if r.opts.CallTimeout > 0 {
		return context.WithTimeout(ctx, r.opts.CallTimeout)
	}
	return context.WithCancel(ctx)
}
