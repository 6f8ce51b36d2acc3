// tabkit — tabular data cleaning pipeline with machine translation support.
package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/datapipe-tools/tabkit/config"
	"github.com/datapipe-tools/tabkit/i18n"
	"github.com/datapipe-tools/tabkit/langmeta"
	"github.com/datapipe-tools/tabkit/lockfile"
	"github.com/datapipe-tools/tabkit/pipeline"
	"github.com/datapipe-tools/tabkit/settings"
	"github.com/datapipe-tools/tabkit/table"
	"github.com/datapipe-tools/tabkit/translate"
)

// Version information (set via -ldflags during build)
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

// ANSI colors
const (
	colorReset  = "\033[0m"
	colorRed    = "\033[0;31m"
	colorGreen  = "\033[0;32m"
	colorYellow = "\033[1;33m"
	colorBlue   = "\033[0;34m"
)

func logInfo(format string, args ...any) {
	fmt.Fprintf(os.Stderr, colorBlue+"[INFO]"+colorReset+" "+format+"\n", args...)
}

func logSuccess(format string, args ...any) {
	fmt.Fprintf(os.Stderr, colorGreen+"[OK]"+colorReset+" "+format+"\n", args...)
}

func logWarning(format string, args ...any) {
	fmt.Fprintf(os.Stderr, colorYellow+"[WARN]"+colorReset+" "+format+"\n", args...)
}

func logError(format string, args ...any) {
	fmt.Fprintf(os.Stderr, colorRed+"[ERROR]"+colorReset+" "+format+"\n", args...)
}

// ---------------------------------------------------------------------------
// Global flag
// ---------------------------------------------------------------------------

var rootDir string

// ---------------------------------------------------------------------------
// Root command
// ---------------------------------------------------------------------------

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "tabkit",
		Short: "Tabular data cleaning pipeline with column translation",
		Long: `tabkit — tabular data cleaning pipeline with column translation.

Reads CSV/TSV/Excel files (with encoding and delimiter auto-detection),
normalizes headers, removes duplicate rows, derives date metadata, and
translates selected text columns. Translation groups near-duplicate values
by TF-IDF similarity so each group costs a single provider call.

Commands:
  run         Run the configured pipeline (all steps by default)
  headers     Normalize column headers only
  dedup       Remove duplicate rows only
  dates       Derive Year/Month/Day/Quarter from the date column only
  translate   Translate selected columns only
  auth        Manage provider API keys

Translation providers:
  google          Google Translate web endpoint — no key needed
  libretranslate  LibreTranslate — key optional (self-hosted: none)
  mymemory        MyMemory — no key needed, strict rate limits
  deepl           DeepL API Free/Pro — API key required`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	// Global persistent flag — inherited by all subcommands
	root.PersistentFlags().StringVar(&rootDir, "root", ".", "Project root directory")

	root.AddCommand(
		newRunCmd(),
		newHeadersCmd(),
		newDedupCmd(),
		newDatesCmd(),
		newTranslateCmd(),
		newAuthCmd(),
		newVersionCmd(),
	)

	return root
}

func main() {
	i18n.Init("")
	if err := newRootCmd().Execute(); err != nil {
		logError("%v", err)
		os.Exit(1)
	}
}

// ---------------------------------------------------------------------------
// version (display version information)
// ---------------------------------------------------------------------------

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Long:  `Display version, commit hash, and build date.`,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Printf("tabkit version %s\n", version)
			fmt.Printf("  commit:    %s\n", commit)
			fmt.Printf("  built:     %s\n", date)
		},
	}
}

// ---------------------------------------------------------------------------
// Pipeline commands (run + single-step shortcuts)
// ---------------------------------------------------------------------------

type runArgs struct {
	input, output string
	steps         []string
	dedupColumns  []string
	columns       []string

	targetLang, sourceLang string
	provider, apiKey       string
	baseURL, proxy         string
	workers                int
	columnConcurrency      int
	maxRetries             int
	timeout                time.Duration

	bom       bool
	delimiter string
	verbose   bool
}

// addPipelineFlags registers the flags shared by run and the single-step
// commands.
func addPipelineFlags(cmd *cobra.Command, a *runArgs) {
	cmd.Flags().StringVar(&a.input, "input", "", "Input file (default: auto-detect in data/raw/)")
	cmd.Flags().StringVar(&a.output, "output", "", "Output file (default: data/output/<name>_processed<ext>)")
	cmd.Flags().BoolVar(&a.bom, "bom", false, "Write a UTF-8 BOM (Excel compatibility)")
	cmd.Flags().StringVar(&a.delimiter, "delimiter", "", "Output CSV delimiter (default ',')")
	cmd.Flags().BoolVar(&a.verbose, "verbose", false, "Enable detailed logging")
}

// addTranslateFlags registers the translation flags shared by run and
// translate.
func addTranslateFlags(cmd *cobra.Command, a *runArgs) {
	cmd.Flags().StringSliceVar(&a.columns, "columns", nil, "Columns to translate (comma-separated)")
	cmd.Flags().StringVar(&a.targetLang, "target-lang", "", "Target language code (default en)")
	cmd.Flags().StringVar(&a.sourceLang, "source-lang", "", "Source language code (default auto)")
	cmd.Flags().StringVar(&a.provider, "provider", "", "Translation provider: google, libretranslate, mymemory, deepl")
	cmd.Flags().StringVar(&a.apiKey, "api-key", "", "API key (or TABKIT_API_KEY env var)")
	cmd.Flags().StringVar(&a.baseURL, "base-url", "", "Custom provider endpoint")
	cmd.Flags().IntVar(&a.workers, "workers", 0, "Worker pool size per column (0 = auto, capped at 10)")
	cmd.Flags().IntVar(&a.columnConcurrency, "column-concurrency", 1, "Columns translated at once")
	cmd.Flags().DurationVar(&a.timeout, "timeout", 0, "Per-request timeout (0 = provider default)")
	cmd.Flags().StringVar(&a.proxy, "proxy", "", "HTTP/HTTPS proxy URL")
	cmd.Flags().IntVar(&a.maxRetries, "max-retries", 3, "Maximum retries on rate limit (429)")

	_ = cmd.RegisterFlagCompletionFunc("provider", func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
		return []string{
			"google\tGoogle Translate — no key needed",
			"libretranslate\tLibreTranslate — key optional",
			"mymemory\tMyMemory — no key, strict rate limits",
			"deepl\tDeepL — API key required",
		}, cobra.ShellCompDirectiveNoFileComp
	})
}

func newRunCmd() *cobra.Command {
	var a runArgs

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Run the configured pipeline",
		Long: `Run the cleaning pipeline: headers, dedup, dates, translate.

The step list, column selections and provider settings come from
.tabkit.yaml when present; flags override individual fields.

Examples:
  # Full pipeline from .tabkit.yaml
  tabkit run

  # Explicit steps and columns, no config file needed
  tabkit run --steps headers,dedup,translate --columns Description,Notes --target-lang en

  # Translate via DeepL with a stored key
  tabkit run --provider deepl --columns Description`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runPipeline(a)
		},
	}

	cmd.Flags().StringSliceVar(&a.steps, "steps", nil, "Pipeline steps in order (default: headers,dedup,dates,translate)")
	cmd.Flags().StringSliceVar(&a.dedupColumns, "dedup-columns", nil, "Columns compared for duplicates (default: all)")
	addPipelineFlags(cmd, &a)
	addTranslateFlags(cmd, &a)

	return cmd
}

func newHeadersCmd() *cobra.Command {
	var a runArgs
	cmd := &cobra.Command{
		Use:   "headers",
		Short: "Normalize column headers",
		Long:  `Trim excess whitespace from column headers and convert them to title case.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			a.steps = []string{pipeline.StepHeaders}
			return runPipeline(a)
		},
	}
	addPipelineFlags(cmd, &a)
	return cmd
}

func newDedupCmd() *cobra.Command {
	var a runArgs
	cmd := &cobra.Command{
		Use:   "dedup",
		Short: "Remove duplicate rows",
		Long: `Remove exact-duplicate rows, keeping the first occurrence.

By default whole rows are compared; --dedup-columns restricts the
comparison to the named columns (matched case-insensitively).`,
		RunE: func(cmd *cobra.Command, args []string) error {
			a.steps = []string{pipeline.StepDedup}
			return runPipeline(a)
		},
	}
	cmd.Flags().StringSliceVar(&a.dedupColumns, "dedup-columns", nil, "Columns compared for duplicates (default: all)")
	addPipelineFlags(cmd, &a)
	return cmd
}

func newDatesCmd() *cobra.Command {
	var a runArgs
	cmd := &cobra.Command{
		Use:   "dates",
		Short: "Derive date metadata columns",
		Long: `Locate the date column and insert Year, Month, Day, and Quarter
columns directly after it. Dates are parsed day-first; cells that fail
to parse get blank metadata.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			a.steps = []string{pipeline.StepDates}
			return runPipeline(a)
		},
	}
	addPipelineFlags(cmd, &a)
	return cmd
}

func newTranslateCmd() *cobra.Command {
	var a runArgs

	cmd := &cobra.Command{
		Use:   "translate",
		Short: "Translate selected columns",
		Long: `Translate selected text columns and append the results as new
T_-prefixed columns.

Distinct values are grouped by TF-IDF cosine similarity; each group costs
a single provider call whose result is applied to every member. Values
already in the target language are detected and skipped.

Examples:
  # Google Translate (no key needed)
  tabkit translate --columns Description --target-lang en

  # DeepL with a stored key, two columns at once
  tabkit translate --provider deepl --columns Description,Notes --column-concurrency 2

  # Self-hosted LibreTranslate
  tabkit translate --provider libretranslate --base-url http://localhost:5000 --columns Notes`,
		RunE: func(cmd *cobra.Command, args []string) error {
			a.steps = []string{pipeline.StepTranslate}
			return runPipeline(a)
		},
	}

	addPipelineFlags(cmd, &a)
	addTranslateFlags(cmd, &a)

	return cmd
}

// ---------------------------------------------------------------------------
// Pipeline execution
// ---------------------------------------------------------------------------

func runPipeline(a runArgs) error {
	proj, err := config.NewProject(rootDir)
	if err != nil {
		return err
	}
	if err := proj.EnsureDirs(); err != nil {
		return err
	}

	// .tabkit.yaml provides defaults; flags override field by field.
	tf, err := config.LoadTabkitFile(proj.Root)
	if err != nil {
		return err
	}
	a = mergeConfig(a, tf)

	if err := proj.DetectInput(a.input); err != nil {
		return err
	}

	lock, err := lockfile.Acquire(proj.Root)
	if err != nil {
		return err
	}
	defer lock.Release()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	logInfo(i18n.T("Reading %s"), proj.InputFile)
	t, err := readTable(proj.InputFile)
	if err != nil {
		return err
	}

	opts := pipeline.Options{
		Steps:        a.steps,
		DedupColumns: a.dedupColumns,
		OnLog: func(format string, args ...any) {
			if a.verbose {
				logInfo(format, args...)
			}
		},
	}

	if stepEnabled(a.steps, pipeline.StepTranslate) {
		topts, err := buildTranslateOptions(a)
		if err != nil {
			return err
		}
		opts.TranslateColumns = a.columns
		opts.Translate = topts
		opts.ColumnConcurrency = a.columnConcurrency
	}

	res, err := pipeline.Run(ctx, t, opts)
	if err != nil {
		return err
	}

	reportResult(a, res)

	outPath := a.output
	if outPath == "" {
		outPath = proj.OutputPath()
	} else if !filepath.IsAbs(outPath) {
		outPath = filepath.Join(proj.Root, outPath)
	}

	logInfo(i18n.T("Writing %s"), outPath)
	if err := writeTable(outPath, res.Table, a); err != nil {
		return err
	}
	logSuccess(i18n.T("Pipeline finished"))
	return nil
}

// mergeConfig folds .tabkit.yaml values into the arguments for every
// field the user did not set on the command line.
func mergeConfig(a runArgs, tf *config.TabkitFile) runArgs {
	if tf == nil {
		return a
	}
	if a.input == "" {
		a.input = tf.Input
	}
	if a.output == "" {
		a.output = tf.Output
	}
	if len(a.steps) == 0 {
		a.steps = tf.Steps
	}
	if len(a.dedupColumns) == 0 {
		a.dedupColumns = tf.DedupColumns
	}
	if len(a.columns) == 0 {
		a.columns = tf.Translate.Columns
	}
	if a.targetLang == "" {
		a.targetLang = tf.Translate.TargetLang
	}
	if a.sourceLang == "" {
		a.sourceLang = tf.Translate.SourceLang
	}
	if a.provider == "" {
		a.provider = tf.Translate.Provider
	}
	if a.baseURL == "" {
		a.baseURL = tf.Translate.Endpoint
	}
	if a.workers == 0 {
		a.workers = tf.Translate.Workers
	}
	if a.columnConcurrency <= 1 && tf.Translate.ColumnConcurrency > 1 {
		a.columnConcurrency = tf.Translate.ColumnConcurrency
	}
	if !a.bom {
		a.bom = tf.CSV.BOM
	}
	if a.delimiter == "" {
		a.delimiter = tf.CSV.Delimiter
	}
	return a
}

func stepEnabled(steps []string, step string) bool {
	if len(steps) == 0 {
		return true
	}
	for _, s := range steps {
		if s == step {
			return true
		}
	}
	return false
}

func buildTranslateOptions(a runArgs) (translate.Options, error) {
	if a.targetLang == "" {
		a.targetLang = "en"
	}
	if a.provider == "" {
		a.provider = translate.ProviderGoogle
	}

	prov, err := resolveProvider(a)
	if err != nil {
		return translate.Options{}, err
	}

	logInfo(i18n.T("Translating to %s via %s"), langmeta.DisplayName(a.targetLang), prov.Name())

	return translate.Options{
		Provider:    prov,
		Detector:    translate.NewLinguaDetector(),
		TargetLang:  a.targetLang,
		SourceLang:  a.sourceLang,
		MaxWorkers:  a.workers,
		CallTimeout: a.timeout,
		Verbose:     a.verbose,
		OnProgress: func(done, total int) {
			if a.verbose {
				logInfo("progress: %d/%d groups", done, total)
			}
		},
		OnLog: func(format string, args ...any) {
			if a.verbose {
				logInfo(format, args...)
			}
		},
	}, nil
}

// resolveProvider builds the HTTP provider from flags, .tabkit.yaml and
// the credential store (flag > TABKIT_API_KEY > store).
func resolveProvider(a runArgs) (translate.Provider, error) {
	defaults := translate.DefaultProviders()
	cfg, ok := defaults[strings.ToLower(a.provider)]
	if !ok {
		return nil, fmt.Errorf("unknown provider %q (valid: google, libretranslate, mymemory, deepl)", a.provider)
	}

	cfg.APIKey = settings.ResolveAPIKey(a.apiKey, cfg.ID)
	if a.baseURL != "" {
		cfg.BaseURL = a.baseURL
	} else if stored := settings.GetBaseURL(cfg.ID); stored != "" {
		cfg.BaseURL = stored
	}
	if a.proxy != "" {
		cfg.Proxy = a.proxy
	}
	if a.timeout > 0 {
		cfg.Timeout = a.timeout
	}
	if a.maxRetries > 0 {
		cfg.MaxRetries = a.maxRetries
	}

	if cfg.ID == translate.ProviderDeepL && cfg.APIKey == "" {
		return nil, errors.New("provider 'deepl' requires an API key\n\n" +
			"Store one with:\n" +
			"  tabkit auth login --provider deepl\n\n" +
			"Or pass it directly:\n" +
			"  --api-key YOUR_KEY or export TABKIT_API_KEY=YOUR_KEY")
	}

	return translate.NewHTTPProvider(cfg), nil
}

func reportResult(a runArgs, res *pipeline.Result) {
	if stepEnabled(a.steps, pipeline.StepDedup) {
		logSuccess(i18n.N("Removed %d duplicate row", "Removed %d duplicate rows", res.DuplicatesRemoved), res.DuplicatesRemoved)
	}
	for name, stats := range res.ColumnStats {
		logSuccess(i18n.T("Column %q: %d unique texts in %d groups (%d translated, %d cached, %d skipped, %d failed)"),
			name, stats.UniqueTexts, stats.Groups, stats.Translated, stats.Cached, stats.Skipped, stats.Errors)
		if stats.Errors > 0 {
			logWarning(i18n.T("Failed groups were filled with %q"), translate.FailedSentinel)
		}
	}
}

// ---------------------------------------------------------------------------
// Table I/O dispatch
// ---------------------------------------------------------------------------

func readTable(path string) (*table.Table, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".xlsx", ".xls":
		return table.ReadExcel(path)
	default:
		return table.ReadCSV(path)
	}
}

func writeTable(path string, t *table.Table, a runArgs) error {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".xlsx", ".xls":
		return table.WriteExcel(path, t)
	default:
		opts := table.WriteOptions{BOM: a.bom}
		if a.delimiter != "" {
			opts.Comma = rune(a.delimiter[0])
		}
		return table.WriteCSV(path, t, opts)
	}
}

// ---------------------------------------------------------------------------
// auth (API key management)
// ---------------------------------------------------------------------------

func newAuthCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "auth",
		Short: "Manage provider API keys",
		Long: `Manage API keys for translation providers.

API key providers:
  deepl           DeepL API Free/Pro — key required
  libretranslate  LibreTranslate — key optional (public instance needs one)

No auth required:
  google          Google Translate web endpoint
  mymemory        MyMemory public API

Examples:
  tabkit auth login --provider deepl        Store a DeepL API key
  tabkit auth login --provider libretranslate --base-url http://localhost:5000
  tabkit auth logout --provider deepl       Remove the DeepL key
  tabkit auth logout                        Remove all credentials
  tabkit auth list                          Show stored credentials`,
	}

	cmd.AddCommand(
		newAuthLoginCmd(),
		newAuthLogoutCmd(),
		newAuthListCmd(),
	)

	return cmd
}

// allProviders is the ordered list for auth output and completion.
var allProviders = []struct {
	id   string
	name string
	desc string
	auth string // "api-key" or "none"
}{
	{translate.ProviderGoogle, "Google Translate", "free web endpoint, no key", "none"},
	{translate.ProviderLibreTranslate, "LibreTranslate", "key optional, self-hostable", "api-key"},
	{translate.ProviderMyMemory, "MyMemory", "no key, strict rate limits", "none"},
	{translate.ProviderDeepL, "DeepL", "API key required", "api-key"},
}

func providerCompletion(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	completions := make([]string, 0, len(allProviders))
	for _, p := range allProviders {
		if p.auth == "none" {
			continue
		}
		completions = append(completions, fmt.Sprintf("%s\t%s", p.id, p.name))
	}
	return completions, cobra.ShellCompDirectiveNoFileComp
}

func newAuthLoginCmd() *cobra.Command {
	var provider, apiKey, baseURL string

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Store an API key for a provider",
		Long: `Store an API key (and optionally a custom endpoint) for a provider.

The key is written to the credential store with 0600 permissions:
  ` + settings.FilePath() + `

If --api-key is not given, the key is read from stdin.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			switch provider {
			case translate.ProviderDeepL, translate.ProviderLibreTranslate:
			case "":
				return errors.New("--provider is required (deepl or libretranslate)")
			default:
				return fmt.Errorf("provider %q does not use an API key", provider)
			}

			if baseURL != "" {
				if err := settings.SetBaseURL(provider, baseURL); err != nil {
					return err
				}
				logSuccess(i18n.T("Endpoint saved for %s"), provider)
			}

			key := apiKey
			if key == "" {
				fmt.Fprintf(os.Stderr, "Enter API key for %s (leave empty to keep current): ", provider)
				line, err := bufio.NewReader(os.Stdin).ReadString('\n')
				if err != nil && line == "" {
					return fmt.Errorf("reading API key: %w", err)
				}
				key = strings.TrimSpace(line)
			}
			if key == "" {
				return nil
			}

			if err := settings.SetAPIKey(provider, key); err != nil {
				return err
			}
			logSuccess(i18n.T("API key saved for %s"), provider)
			return nil
		},
	}

	cmd.Flags().StringVar(&provider, "provider", "", "Provider to configure: deepl, libretranslate")
	cmd.Flags().StringVar(&apiKey, "api-key", "", "API key (read from stdin if omitted)")
	cmd.Flags().StringVar(&baseURL, "base-url", "", "Custom endpoint to store alongside the key")
	_ = cmd.RegisterFlagCompletionFunc("provider", providerCompletion)

	return cmd
}

func newAuthLogoutCmd() *cobra.Command {
	var provider string

	cmd := &cobra.Command{
		Use:   "logout",
		Short: "Remove stored credentials",
		Long: `Remove stored credentials for one or all providers.

If --provider is not specified, credentials for ALL providers are removed.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if provider != "" {
				if err := settings.Remove(provider); err != nil {
					return err
				}
				logSuccess(i18n.T("API key removed for %s"), provider)
				return nil
			}
			if err := settings.RemoveAll(); err != nil {
				return err
			}
			logSuccess(i18n.T("All stored credentials removed"))
			return nil
		},
	}

	cmd.Flags().StringVar(&provider, "provider", "", "Provider to logout (default: all)")
	_ = cmd.RegisterFlagCompletionFunc("provider", providerCompletion)

	return cmd
}

func newAuthListCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "Show stored credentials and status",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(os.Stderr, "\n%sStored Credentials%s\n", colorBlue, colorReset)
			fmt.Fprintln(os.Stderr, strings.Repeat("─", 60))

			store := settings.Load()
			if len(store) == 0 {
				fmt.Fprintf(os.Stderr, "  %s\n", i18n.T("No credentials stored"))
			}
			for _, p := range allProviders {
				entry := store[p.id]
				switch {
				case entry != nil && entry.Key != "":
					status := fmt.Sprintf("%sconfigured%s (key: %s)", colorGreen, colorReset, settings.MaskKey(entry.Key))
					if entry.BaseURL != "" {
						status += fmt.Sprintf("\n  %14s endpoint: %s", "", entry.BaseURL)
					}
					fmt.Fprintf(os.Stderr, "  %-14s %s\n", p.id, status)
				case entry != nil && entry.BaseURL != "":
					fmt.Fprintf(os.Stderr, "  %-14s %sconfigured%s (no key)\n  %14s endpoint: %s\n",
						p.id, colorGreen, colorReset, "", entry.BaseURL)
				case p.auth == "none":
					fmt.Fprintf(os.Stderr, "  %-14s %s\n", p.id, p.desc)
				default:
					fmt.Fprintf(os.Stderr, "  %-14s %snot configured%s\n", p.id, colorRed, colorReset)
				}
			}

			fmt.Fprintf(os.Stderr, "\n  %sEnvironment Variables%s\n", colorYellow, colorReset)
			if envKey := os.Getenv(settings.EnvAPIKey); envKey != "" {
				fmt.Fprintf(os.Stderr, "  %s: %s%s%s (overrides stored keys)\n",
					settings.EnvAPIKey, colorGreen, settings.MaskKey(envKey), colorReset)
			} else {
				fmt.Fprintf(os.Stderr, "  %s: %snot set%s\n", settings.EnvAPIKey, colorRed, colorReset)
			}
			fmt.Fprintln(os.Stderr)
		},
	}
}
