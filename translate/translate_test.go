// Package translate contains tests for the translation engine.
package translate

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"testing"
)

// ---------------------------------------------------------------------------
// Fakes
// ---------------------------------------------------------------------------

// fakeProvider prefixes texts and counts calls.
type fakeProvider struct {
	mu    sync.Mutex
	calls int
	fail  bool
}

func (p *fakeProvider) Name() string { return "fake" }

func (p *fakeProvider) Translate(ctx context.Context, text, sourceLang, targetLang string) (string, error) {
	p.mu.Lock()
	p.calls++
	p.mu.Unlock()
	if p.fail {
		return "", &ProviderError{Provider: "fake", Status: 500, Err: errors.New("boom")}
	}
	return "T:" + text, nil
}

func (p *fakeProvider) callCount() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.calls
}

// fakeDetector maps exact texts to languages; everything else is
// indeterminate.
type fakeDetector struct {
	langs map[string]string
}

func (d *fakeDetector) Detect(text string) (string, error) {
	if lang, ok := d.langs[text]; ok {
		return lang, nil
	}
	return "", ErrIndeterminate
}

func testOptions(p Provider) Options {
	return Options{
		Provider:   p,
		TargetLang: "en",
		MaxWorkers: 2,
	}
}

// ---------------------------------------------------------------------------
// TranslateColumn
// ---------------------------------------------------------------------------

func TestTranslateColumnPreservesLengthAndBlanks(t *testing.T) {
	p := &fakeProvider{}
	column := []string{"vino tinto", "", "   ", "vino tinto", "agua con gas"}

	out, stats, err := TranslateColumn(context.Background(), column, testOptions(p))
	if err != nil {
		t.Fatalf("TranslateColumn: %v", err)
	}
	if len(out) != len(column) {
		t.Fatalf("output length %d, want %d", len(out), len(column))
	}
	if out[1] != "" || out[2] != "" {
		t.Fatalf("blank rows = %q, %q, want empty", out[1], out[2])
	}
	if out[0] == "" || out[0] != out[3] {
		t.Fatalf("duplicate inputs got different outputs: %q vs %q", out[0], out[3])
	}
	if stats.Rows != 5 || stats.UniqueTexts != 2 {
		t.Fatalf("stats = %+v, want Rows=5 UniqueTexts=2", stats)
	}
}

func TestTranslateColumnAllEmptyMakesNoCalls(t *testing.T) {
	p := &fakeProvider{}
	column := []string{"", "  ", "\t"}

	out, stats, err := TranslateColumn(context.Background(), column, testOptions(p))
	if err != nil {
		t.Fatalf("TranslateColumn: %v", err)
	}
	for i, v := range out {
		if v != "" {
			t.Fatalf("out[%d] = %q, want empty", i, v)
		}
	}
	if p.callCount() != 0 {
		t.Fatalf("provider called %d times, want 0", p.callCount())
	}
	if stats.Groups != 0 || stats.UniqueTexts != 0 {
		t.Fatalf("stats = %+v, want zero groups", stats)
	}
}

func TestTranslateColumnOneCallPerGroup(t *testing.T) {
	p := &fakeProvider{}
	// Three clearly distinct texts: three groups, three calls, even with
	// two workers racing.
	column := []string{
		"merlot from chile",
		"sparkling mineral water",
		"aged scottish whisky",
		"merlot from chile",
		"sparkling mineral water",
	}

	out, stats, err := TranslateColumn(context.Background(), column, testOptions(p))
	if err != nil {
		t.Fatalf("TranslateColumn: %v", err)
	}
	if p.callCount() != 3 {
		t.Fatalf("provider called %d times, want 3", p.callCount())
	}
	if stats.Groups != 3 || stats.Translated != 3 {
		t.Fatalf("stats = %+v, want 3 translated groups", stats)
	}
	if out[0] != out[3] || out[1] != out[4] {
		t.Fatal("repeated values diverged across rows")
	}
}

func TestTranslateColumnGroupsNearDuplicates(t *testing.T) {
	p := &fakeProvider{}
	// The two long variants share almost all terms; the third is
	// unrelated. Expect fewer calls than unique texts.
	column := []string{
		"fresh fruity red wine from rioja region",
		"fresh fruity red wine from rioja",
		"completely different thing altogether",
	}

	out, stats, err := TranslateColumn(context.Background(), column, testOptions(p))
	if err != nil {
		t.Fatalf("TranslateColumn: %v", err)
	}
	if stats.Groups >= stats.UniqueTexts {
		t.Fatalf("stats = %+v, want grouping to merge near-duplicates", stats)
	}
	if p.callCount() != stats.Groups {
		t.Fatalf("calls = %d, groups = %d, want one call per group", p.callCount(), stats.Groups)
	}
	// Members of the same group share the representative's translation.
	if out[0] != out[1] {
		t.Fatalf("grouped texts translated differently: %q vs %q", out[0], out[1])
	}
	if !strings.HasPrefix(out[0], "T:") || !strings.HasPrefix(out[2], "T:") {
		t.Fatalf("unexpected outputs: %q, %q", out[0], out[2])
	}
}

func TestTranslateColumnProviderFailureWritesSentinel(t *testing.T) {
	p := &fakeProvider{fail: true}
	column := []string{"vino tinto", "vino tinto", ""}

	out, stats, err := TranslateColumn(context.Background(), column, testOptions(p))
	if err != nil {
		t.Fatalf("provider failures must not abort the column: %v", err)
	}
	if out[0] != FailedSentinel || out[1] != FailedSentinel {
		t.Fatalf("failed rows = %q, %q, want %q", out[0], out[1], FailedSentinel)
	}
	if out[2] != "" {
		t.Fatalf("blank row = %q, want empty", out[2])
	}
	if stats.Errors == 0 || stats.Translated != 0 {
		t.Fatalf("stats = %+v, want errors only", stats)
	}
}

func TestTranslateColumnSkipsTargetLanguage(t *testing.T) {
	p := &fakeProvider{}
	opts := testOptions(p)
	opts.Detector = &fakeDetector{langs: map[string]string{
		"already english text": "en",
		"texto en español":     "es",
	}}
	column := []string{"already english text", "texto en español"}

	out, stats, err := TranslateColumn(context.Background(), column, opts)
	if err != nil {
		t.Fatalf("TranslateColumn: %v", err)
	}
	if out[0] != "already english text" {
		t.Fatalf("target-language text = %q, want unchanged", out[0])
	}
	if out[1] != "T:texto en español" {
		t.Fatalf("foreign text = %q, want translated", out[1])
	}
	if stats.Skipped != 1 || stats.Translated != 1 {
		t.Fatalf("stats = %+v, want 1 skipped + 1 translated", stats)
	}
	if p.callCount() != 1 {
		t.Fatalf("provider called %d times, want 1", p.callCount())
	}
}

func TestTranslateColumnRegionalTargetStillSkips(t *testing.T) {
	p := &fakeProvider{}
	opts := testOptions(p)
	opts.TargetLang = "pt-BR"
	opts.Detector = &fakeDetector{langs: map[string]string{"texto em português": "pt"}}

	out, _, err := TranslateColumn(context.Background(), []string{"texto em português"}, opts)
	if err != nil {
		t.Fatalf("TranslateColumn: %v", err)
	}
	if out[0] != "texto em português" {
		t.Fatalf("out = %q, want skip for base-language match", out[0])
	}
	if p.callCount() != 0 {
		t.Fatalf("provider called %d times, want 0", p.callCount())
	}
}

func TestTranslateColumnShortTextsSkipDetection(t *testing.T) {
	p := &fakeProvider{}
	opts := testOptions(p)
	// Detector would claim target language, but 3-rune texts never reach it.
	opts.Detector = &fakeDetector{langs: map[string]string{"two": "en", "uno": "en"}}

	out, stats, err := TranslateColumn(context.Background(), []string{"two", "uno"}, opts)
	if err != nil {
		t.Fatalf("TranslateColumn: %v", err)
	}
	if stats.Skipped != 0 {
		t.Fatalf("stats = %+v, want no skips for short texts", stats)
	}
	for i, v := range out {
		if !strings.HasPrefix(v, "T:") {
			t.Fatalf("out[%d] = %q, want translated", i, v)
		}
	}
}

func TestTranslateColumnDetectorFailureIsNonFatal(t *testing.T) {
	p := &fakeProvider{}
	opts := testOptions(p)
	opts.Detector = &fakeDetector{} // always indeterminate

	out, stats, err := TranslateColumn(context.Background(), []string{"texto largo sin idioma"}, opts)
	if err != nil {
		t.Fatalf("TranslateColumn: %v", err)
	}
	if out[0] != "T:texto largo sin idioma" {
		t.Fatalf("out = %q, want translation despite detection failure", out[0])
	}
	if stats.Errors != 0 {
		t.Fatalf("stats = %+v, detection failure must not count as error", stats)
	}
}

func TestTranslateColumnCancelledContext(t *testing.T) {
	p := &fakeProvider{}
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	out, _, err := TranslateColumn(ctx, []string{"vino tinto", "agua mineral"}, testOptions(p))
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("err = %v, want context.Canceled", err)
	}
	if len(out) != 2 {
		t.Fatalf("output length %d, want 2 even on cancellation", len(out))
	}
}

func TestTranslateColumnProgressCoversAllGroups(t *testing.T) {
	p := &fakeProvider{}
	opts := testOptions(p)

	var mu sync.Mutex
	var last, total int
	opts.OnProgress = func(done, n int) {
		mu.Lock()
		defer mu.Unlock()
		if done > last {
			last = done
		}
		total = n
	}

	_, stats, err := TranslateColumn(context.Background(), []string{
		"merlot from chile", "sparkling mineral water", "aged scottish whisky",
	}, opts)
	if err != nil {
		t.Fatalf("TranslateColumn: %v", err)
	}
	if last != stats.Groups || total != stats.Groups {
		t.Fatalf("progress reached %d/%d, want %d/%d", last, total, stats.Groups, stats.Groups)
	}
}

func TestEffectiveWorkersClamp(t *testing.T) {
	tests := []struct {
		in   int
		want int
	}{
		{in: 50, want: workerCeiling},
		{in: 3, want: 3},
	}
	for _, tc := range tests {
		o := Options{MaxWorkers: tc.in}
		if got := o.effectiveWorkers(); got != tc.want {
			t.Fatalf("effectiveWorkers(%d) = %d, want %d", tc.in, got, tc.want)
		}
	}
	if got := (&Options{}).effectiveWorkers(); got < 1 || got > workerCeiling {
		t.Fatalf("default workers = %d, want within [1, %d]", got, workerCeiling)
	}
}

func TestProviderErrorFormat(t *testing.T) {
	err := &ProviderError{Provider: "fake", Status: 429, Err: errors.New("rate limited")}
	msg := err.Error()
	if !strings.Contains(msg, "fake") || !strings.Contains(msg, "429") {
		t.Fatalf("Error() = %q, want provider and status", msg)
	}
	if fmt.Sprintf("%v", errors.Unwrap(err)) != "rate limited" {
		t.Fatalf("Unwrap lost the cause: %v", errors.Unwrap(err))
	}
}
