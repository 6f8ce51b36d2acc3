package translate

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"math"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"golang.org/x/time/rate"
)

// ---------------------------------------------------------------------------
// Provider IDs
// ---------------------------------------------------------------------------

const (
	ProviderGoogle         = "google"
	ProviderLibreTranslate = "libretranslate"
	ProviderMyMemory       = "mymemory"
	ProviderDeepL          = "deepl"
)

// SourceAuto asks the provider to detect the source language itself.
const SourceAuto = "auto"

// Provider performs a single text translation against an external
// machine-translation service.
type Provider interface {
	// Name returns the provider's display name.
	Name() string
	// Translate translates text from sourceLang (or SourceAuto) to
	// targetLang. Language codes are ISO 639-1.
	Translate(ctx context.Context, text, sourceLang, targetLang string) (string, error)
}

// ProviderError is returned when a translation call fails after retries.
// Callers contain it per group: it must never abort a column.
type ProviderError struct {
	// Provider is the provider ID.
	Provider string
	// Status is the last HTTP status code, 0 for transport errors.
	Status int
	// Err is the underlying cause.
	Err error
}

func (e *ProviderError) Error() string {
	if e.Status != 0 {
		return fmt.Sprintf("%s: translation failed with status %d: %v", e.Provider, e.Status, e.Err)
	}
	return fmt.Sprintf("%s: translation failed: %v", e.Provider, e.Err)
}

func (e *ProviderError) Unwrap() error { return e.Err }

// ---------------------------------------------------------------------------
// Provider configuration
// ---------------------------------------------------------------------------

// ProviderConfig holds the settings for an HTTP translation service.
type ProviderConfig struct {
	// ID is the provider identifier (google, libretranslate, ...).
	ID string
	// Name is the display name.
	Name string
	// BaseURL is the API base URL.
	BaseURL string
	// APIKey authenticates the request (empty for keyless services).
	APIKey string
	// Proxy is an optional HTTP/HTTPS proxy URL.
	Proxy string
	// Timeout is the per-request timeout.
	Timeout time.Duration
	// MaxRetries is the retry budget for transient failures. Default: 3.
	MaxRetries int
	// RequestsPerSecond throttles outgoing calls (0 = no throttle).
	RequestsPerSecond float64
}

// DefaultProviders returns the pre-configured provider definitions.
func DefaultProviders() map[string]ProviderConfig {
	return map[string]ProviderConfig{
		ProviderGoogle: {
			ID:                ProviderGoogle,
			Name:              "Google Translate",
			BaseURL:           "https://translate.googleapis.com",
			Timeout:           30 * time.Second,
			RequestsPerSecond: 5,
		},
		ProviderLibreTranslate: {
			ID:      ProviderLibreTranslate,
			Name:    "LibreTranslate",
			BaseURL: "https://libretranslate.com",
			Timeout: 30 * time.Second,
		},
		ProviderMyMemory: {
			ID:                ProviderMyMemory,
			Name:              "MyMemory",
			BaseURL:           "https://api.mymemory.translated.net",
			Timeout:           30 * time.Second,
			RequestsPerSecond: 1,
		},
		ProviderDeepL: {
			ID:      ProviderDeepL,
			Name:    "DeepL",
			BaseURL: "https://api-free.deepl.com",
			Timeout: 30 * time.Second,
		},
	}
}

// ---------------------------------------------------------------------------
// Rate limit state (global pause shared by parallel workers)
// ---------------------------------------------------------------------------

type rateLimitState struct {
	mu       sync.Mutex
	paused   int32 // atomic: 1 = paused
	pauseEnd time.Time
}

func (r *rateLimitState) isPaused() bool {
	return atomic.LoadInt32(&r.paused) == 1
}

func (r *rateLimitState) pause(duration time.Duration) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.pauseEnd = time.Now().Add(duration)
	atomic.StoreInt32(&r.paused, 1)
}

func (r *rateLimitState) unpause() {
	atomic.StoreInt32(&r.paused, 0)
}

// waitIfPaused blocks until the rate limit pause is over.
func (r *rateLimitState) waitIfPaused(ctx context.Context) error {
	for r.isPaused() {
		r.mu.Lock()
		remaining := time.Until(r.pauseEnd)
		r.mu.Unlock()
		if remaining <= 0 {
			r.unpause()
			return nil
		}
		wait := remaining
		if wait > 100*time.Millisecond {
			wait = 100 * time.Millisecond
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(wait):
		}
	}
	return nil
}

// parseRetryDelay extracts the wait time from a 429 response's
// Retry-After header, defaulting to 60s plus a small buffer.
func parseRetryDelay(resp *http.Response) time.Duration {
	const defaultDelay = 65 * time.Second
	if resp == nil {
		return defaultDelay
	}
	if v := resp.Header.Get("Retry-After"); v != "" {
		if secs, err := strconv.Atoi(v); err == nil && secs > 0 {
			return time.Duration(secs)*time.Second + 5*time.Second
		}
	}
	return defaultDelay
}

// ---------------------------------------------------------------------------
// HTTP client with proxy support
// ---------------------------------------------------------------------------

func makeHTTPClient(proxyURL string, timeout time.Duration) *http.Client {
	transport := http.DefaultTransport.(*http.Transport).Clone()

	if proxyURL != "" {
		parsed, err := url.Parse(proxyURL)
		if err == nil {
			transport.Proxy = http.ProxyURL(parsed)
		}
	} else {
		transport.Proxy = http.ProxyFromEnvironment
	}

	return &http.Client{
		Transport: transport,
		Timeout:   timeout,
	}
}

// ---------------------------------------------------------------------------
// HTTPProvider
// ---------------------------------------------------------------------------

// HTTPProvider implements Provider against one of the known HTTP
// translation APIs. It retries transient failures with exponential
// backoff and honors 429 responses by pausing all workers that share its
// rateLimitState.
type HTTPProvider struct {
	cfg     ProviderConfig
	client  *http.Client
	limiter *rate.Limiter
	rl      *rateLimitState
}

// NewHTTPProvider creates a provider from its configuration.
func NewHTTPProvider(cfg ProviderConfig) *HTTPProvider {
	if cfg.Timeout == 0 {
		cfg.Timeout = 30 * time.Second
	}
	if cfg.MaxRetries == 0 {
		cfg.MaxRetries = 3
	}
	var limiter *rate.Limiter
	if cfg.RequestsPerSecond > 0 {
		limiter = rate.NewLimiter(rate.Limit(cfg.RequestsPerSecond), 1)
	}
	return &HTTPProvider{
		cfg:     cfg,
		client:  makeHTTPClient(cfg.Proxy, cfg.Timeout),
		rl:      &rateLimitState{},
		limiter: limiter,
	}
}

// Name returns the provider's display name.
func (p *HTTPProvider) Name() string {
	if p.cfg.Name != "" {
		return p.cfg.Name
	}
	return p.cfg.ID
}

// Translate performs one translation call, with retries.
func (p *HTTPProvider) Translate(ctx context.Context, text, sourceLang, targetLang string) (string, error) {
	var lastErr error
	var lastStatus int

	for attempt := 0; attempt <= p.cfg.MaxRetries; attempt++ {
		// Wait out a global pause set by another worker's 429.
		if err := p.rl.waitIfPaused(ctx); err != nil {
			return "", &ProviderError{Provider: p.cfg.ID, Err: err}
		}
		if p.limiter != nil {
			if err := p.limiter.Wait(ctx); err != nil {
				return "", &ProviderError{Provider: p.cfg.ID, Err: err}
			}
		}

		// Request bodies are single-use; build fresh per attempt.
		req, err := p.buildRequest(ctx, text, sourceLang, targetLang)
		if err != nil {
			return "", &ProviderError{Provider: p.cfg.ID, Err: err}
		}

		resp, err := p.client.Do(req)
		if err != nil {
			lastErr = err
			lastStatus = 0
			if attempt < p.cfg.MaxRetries {
				if err := backoff(ctx, attempt); err != nil {
					return "", &ProviderError{Provider: p.cfg.ID, Err: err}
				}
				continue
			}
			break
		}

		body, _ := io.ReadAll(resp.Body)
		resp.Body.Close()

		if resp.StatusCode == http.StatusTooManyRequests {
			delay := parseRetryDelay(resp)
			p.rl.pause(delay)
			lastErr = fmt.Errorf("rate limited")
			lastStatus = resp.StatusCode
			if attempt < p.cfg.MaxRetries {
				select {
				case <-ctx.Done():
					return "", &ProviderError{Provider: p.cfg.ID, Err: ctx.Err()}
				case <-time.After(delay):
				}
				p.rl.unpause()
				continue
			}
			break
		}

		if resp.StatusCode != http.StatusOK {
			lastErr = fmt.Errorf("%s", truncate(string(body), 300))
			lastStatus = resp.StatusCode
			if attempt < p.cfg.MaxRetries && resp.StatusCode >= 500 {
				if err := backoff(ctx, attempt); err != nil {
					return "", &ProviderError{Provider: p.cfg.ID, Err: err}
				}
				continue
			}
			break
		}

		translated, err := p.parseResponse(body)
		if err != nil {
			return "", &ProviderError{Provider: p.cfg.ID, Status: resp.StatusCode, Err: err}
		}
		return translated, nil
	}

	return "", &ProviderError{Provider: p.cfg.ID, Status: lastStatus, Err: lastErr}
}

// backoff sleeps 2^attempt seconds or until the context is done.
func backoff(ctx context.Context, attempt int) error {
	wait := time.Duration(math.Pow(2, float64(attempt))) * time.Second
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-time.After(wait):
		return nil
	}
}

// ---------------------------------------------------------------------------
// Request builders and response parsers per provider
// ---------------------------------------------------------------------------

func (p *HTTPProvider) buildRequest(ctx context.Context, text, sourceLang, targetLang string) (*http.Request, error) {
	base := strings.TrimRight(p.cfg.BaseURL, "/")
	if sourceLang == "" {
		sourceLang = SourceAuto
	}

	switch p.cfg.ID {
	case ProviderLibreTranslate:
		payload := struct {
			Q      string `json:"q"`
			Source string `json:"source"`
			Target string `json:"target"`
			Format string `json:"format"`
			APIKey string `json:"api_key,omitempty"`
		}{Q: text, Source: sourceLang, Target: targetLang, Format: "text", APIKey: p.cfg.APIKey}
		body, err := json.Marshal(payload)
		if err != nil {
			return nil, err
		}
		req, err := http.NewRequestWithContext(ctx, http.MethodPost, base+"/translate", strings.NewReader(string(body)))
		if err != nil {
			return nil, err
		}
		req.Header.Set("Content-Type", "application/json")
		return req, nil

	case ProviderMyMemory:
		// MyMemory has no auto-detection; an unqualified source defaults
		// to English.
		src := sourceLang
		if src == SourceAuto {
			src = "en"
		}
		q := url.Values{}
		q.Set("q", text)
		q.Set("langpair", src+"|"+targetLang)
		if p.cfg.APIKey != "" {
			q.Set("key", p.cfg.APIKey)
		}
		return http.NewRequestWithContext(ctx, http.MethodGet, base+"/get?"+q.Encode(), nil)

	case ProviderDeepL:
		form := url.Values{}
		form.Set("text", text)
		form.Set("target_lang", strings.ToUpper(targetLang))
		if sourceLang != SourceAuto {
			form.Set("source_lang", strings.ToUpper(sourceLang))
		}
		req, err := http.NewRequestWithContext(ctx, http.MethodPost, base+"/v2/translate", strings.NewReader(form.Encode()))
		if err != nil {
			return nil, err
		}
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
		req.Header.Set("Authorization", "DeepL-Auth-Key "+p.cfg.APIKey)
		return req, nil

	default: // ProviderGoogle and unknown IDs with a compatible endpoint
		q := url.Values{}
		q.Set("client", "gtx")
		q.Set("sl", sourceLang)
		q.Set("tl", targetLang)
		q.Set("dt", "t")
		q.Set("q", text)
		return http.NewRequestWithContext(ctx, http.MethodGet, base+"/translate_a/single?"+q.Encode(), nil)
	}
}

func (p *HTTPProvider) parseResponse(body []byte) (string, error) {
	switch p.cfg.ID {
	case ProviderLibreTranslate:
		var resp struct {
			TranslatedText string `json:"translatedText"`
			Error          string `json:"error"`
		}
		if err := json.Unmarshal(body, &resp); err != nil {
			return "", fmt.Errorf("invalid JSON response: %w", err)
		}
		if resp.Error != "" {
			return "", fmt.Errorf("API error: %s", resp.Error)
		}
		return resp.TranslatedText, nil

	case ProviderMyMemory:
		var resp struct {
			ResponseData struct {
				TranslatedText string `json:"translatedText"`
			} `json:"responseData"`
			ResponseStatus json.Number `json:"responseStatus"`
		}
		if err := json.Unmarshal(body, &resp); err != nil {
			return "", fmt.Errorf("invalid JSON response: %w", err)
		}
		if s, _ := resp.ResponseStatus.Int64(); s != 0 && s != 200 {
			return "", fmt.Errorf("API error: status %d", s)
		}
		return resp.ResponseData.TranslatedText, nil

	case ProviderDeepL:
		var resp struct {
			Translations []struct {
				Text string `json:"text"`
			} `json:"translations"`
			Message string `json:"message"`
		}
		if err := json.Unmarshal(body, &resp); err != nil {
			return "", fmt.Errorf("invalid JSON response: %w", err)
		}
		if len(resp.Translations) == 0 {
			if resp.Message != "" {
				return "", fmt.Errorf("API error: %s", resp.Message)
			}
			return "", fmt.Errorf("empty translations array")
		}
		return resp.Translations[0].Text, nil

	default:
		// Google "gtx" responses nest translated segments as
		// [[["segment", "source", ...], ...], ...].
		var raw []json.RawMessage
		if err := json.Unmarshal(body, &raw); err != nil {
			return "", fmt.Errorf("invalid JSON response: %w", err)
		}
		if len(raw) == 0 {
			return "", fmt.Errorf("empty response")
		}
		var segments [][]json.RawMessage
		if err := json.Unmarshal(raw[0], &segments); err != nil {
			return "", fmt.Errorf("unexpected response shape: %w", err)
		}
		var b strings.Builder
		for _, seg := range segments {
			if len(seg) == 0 {
				continue
			}
			var piece string
			if err := json.Unmarshal(seg[0], &piece); err != nil {
				continue
			}
			b.WriteString(piece)
		}
		if b.Len() == 0 {
			return "", fmt.Errorf("no translated segments in response")
		}
		return b.String(), nil
	}
}

// truncate shortens a string for error messages.
func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max] + "..."
}
