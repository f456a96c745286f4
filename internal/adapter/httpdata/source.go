// Package httpdata fetches verb artifacts (the index and per-verb
// documents) from a static origin over HTTP.
package httpdata

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"golang.org/x/time/rate"

	"github.com/nkalandadze/zmna-backend/internal/config"
	"github.com/nkalandadze/zmna-backend/internal/domain"
)

// Source fetches verb data from the artifact origin. Retry scheduling
// lives in the cache layer; the source reports each attempt's outcome.
type Source struct {
	baseURL    string
	httpClient *http.Client
	limiter    *rate.Limiter
	log        *slog.Logger
}

// NewSource creates a Source for the configured artifact origin. The
// outbound request rate is capped so a warmup burst cannot hammer the
// origin.
func NewSource(cfg config.SourceConfig, logger *slog.Logger) *Source {
	return &Source{
		baseURL:    cfg.BaseURL,
		httpClient: &http.Client{Timeout: cfg.FetchTimeout},
		limiter:    rate.NewLimiter(rate.Limit(cfg.RatePerSecond), cfg.RateBurst),
		log:        logger.With("adapter", "httpdata"),
	}
}

// NewSourceWithURL creates a Source with a custom base URL (for testing).
func NewSourceWithURL(baseURL string, logger *slog.Logger) *Source {
	return &Source{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: 10 * time.Second},
		limiter:    rate.NewLimiter(rate.Limit(100), 100),
		log:        logger.With("adapter", "httpdata"),
	}
}

// FetchDocument fetches data/verb_{id}.json and normalizes it to the
// canonical shape. Returns nil, nil if the origin has no document for the
// id (HTTP 404), a permanent miss rather than an error.
func (s *Source) FetchDocument(ctx context.Context, id int) (*domain.VerbDocument, error) {
	body, status, err := s.get(ctx, fmt.Sprintf("%s/verb_%s.json", s.baseURL, domain.Key(id)))
	if err != nil {
		return nil, fmt.Errorf("httpdata: verb %d: %w", id, err)
	}
	if status == http.StatusNotFound {
		s.log.DebugContext(ctx, "no lazily-loaded data", slog.Int("verb_id", id))
		return nil, nil
	}
	if status != http.StatusOK {
		return nil, fmt.Errorf("httpdata: verb %d: unexpected status %d", id, status)
	}

	doc, err := domain.DecodeDocument(body)
	if err != nil {
		return nil, fmt.Errorf("httpdata: verb %d: %w", id, err)
	}
	if doc.ID == 0 {
		doc.ID = id
	}

	s.log.DebugContext(ctx, "document fetched",
		slog.Int("verb_id", id),
		slog.Int("bytes", len(body)),
		slog.Bool("multi_preverb", doc.IsMultiPreverb()),
	)

	return doc, nil
}

// FetchIndex fetches data/verbs-index.json.
func (s *Source) FetchIndex(ctx context.Context) (*domain.VerbIndex, error) {
	body, status, err := s.get(ctx, s.baseURL+"/verbs-index.json")
	if err != nil {
		return nil, fmt.Errorf("httpdata: index: %w", err)
	}
	if status != http.StatusOK {
		return nil, fmt.Errorf("httpdata: index: unexpected status %d", status)
	}

	var index domain.VerbIndex
	if err := json.Unmarshal(body, &index); err != nil {
		return nil, fmt.Errorf("httpdata: decode index: %w", err)
	}

	s.log.InfoContext(ctx, "index fetched", slog.Int("verbs", len(index.Verbs)))

	return &index, nil
}

// Ping checks that the origin answers for the index artifact. Used by
// the readiness probe.
func (s *Source) Ping(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodHead, s.baseURL+"/verbs-index.json", nil)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("ping origin: %w", err)
	}
	resp.Body.Close()

	if resp.StatusCode >= http.StatusInternalServerError {
		return fmt.Errorf("ping origin: status %d", resp.StatusCode)
	}
	return nil
}

// get performs one rate-limited GET and returns body + status. Non-2xx
// statuses are returned to the caller, not turned into errors here, so
// FetchDocument can give 404 its permanent-miss meaning.
func (s *Source) get(ctx context.Context, url string) ([]byte, int, error) {
	if err := s.limiter.Wait(ctx); err != nil {
		return nil, 0, fmt.Errorf("rate limiter: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, 0, fmt.Errorf("create request: %w", err)
	}

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return nil, 0, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return nil, resp.StatusCode, nil
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, resp.StatusCode, fmt.Errorf("read body: %w", err)
	}

	return body, resp.StatusCode, nil
}
