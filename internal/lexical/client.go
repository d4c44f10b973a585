package lexical

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"prefixle/internal/domain"

	"github.com/samber/lo"
	"go.uber.org/zap"
)

// Fallback totals when the service cannot be reached
const (
	FallbackPossibleWords     = 20
	FallbackMaxPossiblePoints = 60
)

const (
	defaultBaseURL    = "https://api.datamuse.com"
	defaultProperTag  = "prop"
	defaultPluralTag  = "pl"
	maxPrefixResults  = 1000
	maxExactResults   = 1
	metadataFlags     = "spf"
	errorBodySnippet  = 512
	httpClientTimeout = 30 * time.Second
)

// Config describes the lookup service
type Config struct {
	BaseURL       string
	ProperNounTag string
	PluralTag     string
}

// Client queries a Datamuse-compatible /words endpoint
type Client struct {
	baseURL    string
	properTag  string
	pluralTag  string
	httpClient *http.Client
	limiter    *Limiter
	logger     *zap.Logger
}

// entry mirrors one element of the service response
type entry struct {
	Word         string   `json:"word"`
	NumSyllables int      `json:"numSyllables"`
	Tags         []string `json:"tags"`
}

// NewClient creates a lookup client. Per-attempt timeouts come from the limiter.
func NewClient(cfg Config, limiter *Limiter, logger *zap.Logger) *Client {
	if cfg.BaseURL == "" {
		cfg.BaseURL = defaultBaseURL
	}
	if cfg.ProperNounTag == "" {
		cfg.ProperNounTag = defaultProperTag
	}
	if cfg.PluralTag == "" {
		cfg.PluralTag = defaultPluralTag
	}
	return &Client{
		baseURL:    strings.TrimRight(cfg.BaseURL, "/"),
		properTag:  cfg.ProperNounTag,
		pluralTag:  cfg.PluralTag,
		httpClient: &http.Client{Timeout: httpClientTimeout},
		limiter:    limiter,
		logger:     logger,
	}
}

// EstimatePuzzleTotals counts the words a puzzle admits and their total points.
// Any failure yields the fixed fallback totals.
func (c *Client) EstimatePuzzleTotals(ctx context.Context, prefix string, syllables int) domain.PuzzleTotals {
	results, err := c.query(ctx, prefix+"*", maxPrefixResults)
	if err != nil {
		c.logger.Warn("Failed to estimate puzzle totals, using fallback",
			zap.String("prefix", prefix),
			zap.Int("syllables", syllables),
			zap.Error(err),
		)
		return domain.PuzzleTotals{
			PossibleWords:     FallbackPossibleWords,
			MaxPossiblePoints: FallbackMaxPossiblePoints,
		}
	}

	eligible := lo.Filter(results, func(r domain.LookupResult, _ int) bool {
		return !r.HasTag(c.properTag) &&
			!r.HasTag(c.pluralTag) &&
			r.NumSyllables == syllables &&
			!domain.IsLikelyPlural(r.Spelling)
	})

	maxPoints := lo.SumBy(eligible, func(r domain.LookupResult) int {
		return domain.PointsForFrequency(r.Frequency())
	})
	totals := domain.PuzzleTotals{
		PossibleWords:     len(eligible),
		MaxPossiblePoints: maxPoints,
	}

	c.logger.Info("Estimated puzzle totals",
		zap.String("prefix", prefix),
		zap.Int("syllables", syllables),
		zap.Int("candidates", len(results)),
		zap.Int("possible_words", totals.PossibleWords),
		zap.Int("max_points", totals.MaxPossiblePoints),
	)
	return totals
}

// LookupExact checks that word exists with the given syllable count and is
// neither a proper noun nor a plural. Failures are reported as invalid.
func (c *Client) LookupExact(ctx context.Context, word string, syllables int) (domain.LookupResult, bool) {
	results, err := c.query(ctx, word, maxExactResults)
	if err != nil {
		c.logger.Warn("Word lookup failed", zap.String("word", word), zap.Error(err))
		return domain.LookupResult{}, false
	}
	if len(results) == 0 {
		return domain.LookupResult{}, false
	}

	r := results[0]
	valid := r.Spelling == word &&
		r.NumSyllables == syllables &&
		!r.HasTag(c.properTag) &&
		word == strings.ToLower(word) &&
		!r.HasTag(c.pluralTag)
	if !valid {
		c.logger.Debug("Word rejected by lookup",
			zap.String("word", word),
			zap.String("spelling", r.Spelling),
			zap.Int("num_syllables", r.NumSyllables),
			zap.Int("want_syllables", syllables),
		)
		return r, false
	}
	return r, true
}

// query fetches entries matching a spelling pattern
func (c *Client) query(ctx context.Context, spelling string, limit int) ([]domain.LookupResult, error) {
	params := url.Values{}
	params.Set("sp", spelling)
	params.Set("md", metadataFlags)
	params.Set("max", strconv.Itoa(limit))
	endpoint := c.baseURL + "/words?" + params.Encode()

	var body []byte
	err := c.limiter.Call(ctx, "lookup "+spelling, func(ctx context.Context) error {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
		if err != nil {
			return fmt.Errorf("failed to create request: %w", err)
		}
		req.Header.Set("Accept", "application/json")

		resp, err := c.httpClient.Do(req)
		if err != nil {
			return fmt.Errorf("request failed: %w", err)
		}
		defer resp.Body.Close()

		if resp.StatusCode != http.StatusOK {
			snippet, _ := io.ReadAll(io.LimitReader(resp.Body, errorBodySnippet))
			return fmt.Errorf("lookup service returned status %d: %s", resp.StatusCode, strings.TrimSpace(string(snippet)))
		}

		data, err := io.ReadAll(resp.Body)
		if err != nil {
			return fmt.Errorf("failed to read response body: %w", err)
		}
		body = data
		return nil
	})
	if err != nil {
		return nil, err
	}

	var entries []entry
	if err := json.Unmarshal(body, &entries); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}

	return lo.Map(entries, func(e entry, _ int) domain.LookupResult {
		return domain.NewLookupResult(e.Word, e.NumSyllables, e.Tags)
	}), nil
}
