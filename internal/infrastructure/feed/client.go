package feed

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	sonic "github.com/bytedance/sonic"
	crerr "github.com/cockroachdb/errors"
	"github.com/riskibarqy/fixture-reconciler/internal/domain/fixturematch"
	"github.com/riskibarqy/fixture-reconciler/internal/platform/logging"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

const (
	maxResponseBytes = 16 << 20
	defaultTimeout   = 10 * time.Second
)

// ErrTransient marks failures worth retrying: transport errors, 429 and 5xx.
var ErrTransient = crerr.New("feed transient failure")

type ClientConfig struct {
	HTTPClient *http.Client
	BaseURL    string
	Token      string
	Timeout    time.Duration
	MaxRetries int
	Logger     *logging.Logger
	// Backoff returns the wait before retry number attempt+1. Defaults to
	// (attempt+1) seconds.
	Backoff func(attempt int) time.Duration
}

// Client reads schedule fixtures and event candidates from a remote feed:
//
//	GET {base}/competitions/{code}/seasons/{season}/fixtures
//	GET {base}/competitions/{code}/seasons/{season}/matches
//
// Both answer {"data": [...]}; a 404 means the competition season is unknown.
type Client struct {
	httpClient *http.Client
	baseURL    string
	token      string
	maxRetries int
	logger     *logging.Logger
	backoff    func(attempt int) time.Duration
}

func NewClient(cfg ClientConfig) (*Client, error) {
	baseURL := strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/")
	if baseURL == "" {
		return nil, crerr.New("feed base url is required")
	}
	if _, err := url.ParseRequestURI(baseURL); err != nil {
		return nil, crerr.Wrapf(err, "parse feed base url")
	}

	logger := cfg.Logger
	if logger == nil {
		logger = logging.Default()
	}

	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{
			Timeout:   cfg.Timeout,
			Transport: otelhttp.NewTransport(http.DefaultTransport),
		}
	}
	if httpClient.Timeout <= 0 {
		httpClient.Timeout = defaultTimeout
	}

	backoff := cfg.Backoff
	if backoff == nil {
		backoff = func(attempt int) time.Duration { return time.Duration(attempt+1) * time.Second }
	}

	return &Client{
		httpClient: httpClient,
		baseURL:    baseURL,
		token:      strings.TrimSpace(cfg.Token),
		maxRetries: max(cfg.MaxRetries, 0),
		logger:     logger,
		backoff:    backoff,
	}, nil
}

func (c *Client) ListFixtures(ctx context.Context, competitionCode, season string) ([]fixturematch.Fixture, error) {
	var payload struct {
		Data []fixtureItem `json:"data"`
	}
	if err := c.getJSON(ctx, c.seasonPath(competitionCode, season, "fixtures"), &payload); err != nil {
		return nil, err
	}

	out := make([]fixturematch.Fixture, 0, len(payload.Data))
	for _, item := range payload.Data {
		out = append(out, fixturematch.Fixture{
			HomeTeamName: item.HomeTeamName,
			AwayTeamName: item.AwayTeamName,
			FixtureDate:  item.FixtureDate,
		})
	}
	return out, nil
}

func (c *Client) ListCandidates(ctx context.Context, competitionCode, season string) ([]fixturematch.CandidateMatch, error) {
	var payload struct {
		Data []matchItem `json:"data"`
	}
	if err := c.getJSON(ctx, c.seasonPath(competitionCode, season, "matches"), &payload); err != nil {
		return nil, err
	}

	out := make([]fixturematch.CandidateMatch, 0, len(payload.Data))
	for _, item := range payload.Data {
		out = append(out, fixturematch.CandidateMatch{
			ID:           item.ID,
			HomeTeamName: item.HomeTeamName,
			AwayTeamName: item.AwayTeamName,
			MatchDate:    item.MatchDate,
		})
	}
	return out, nil
}

type fixtureItem struct {
	HomeTeamName string `json:"homeTeamName"`
	AwayTeamName string `json:"awayTeamName"`
	FixtureDate  string `json:"fixtureDate"`
}

type matchItem struct {
	ID           int64  `json:"id"`
	HomeTeamName string `json:"homeTeamName"`
	AwayTeamName string `json:"awayTeamName"`
	MatchDate    string `json:"matchDate"`
}

func (c *Client) seasonPath(competitionCode, season, resource string) string {
	return fmt.Sprintf("/competitions/%s/seasons/%s/%s",
		url.PathEscape(strings.ToUpper(strings.TrimSpace(competitionCode))),
		url.PathEscape(strings.TrimSpace(season)),
		resource,
	)
}

func (c *Client) getJSON(ctx context.Context, path string, target any) error {
	raw, err := c.executeRequest(ctx, c.baseURL+path)
	if err != nil {
		return err
	}
	if err := sonic.Unmarshal(raw, target); err != nil {
		return crerr.Wrapf(err, "decode feed payload %s", path)
	}
	return nil
}

func (c *Client) executeRequest(ctx context.Context, fullURL string) ([]byte, error) {
	var lastErr error
	for attempt := 0; attempt <= c.maxRetries; attempt++ {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, fullURL, nil)
		if err != nil {
			return nil, crerr.Wrap(err, "build feed request")
		}
		req.Header.Set("Accept", "application/json")
		if c.token != "" {
			req.Header.Set("Authorization", "Bearer "+c.token)
		}

		resp, err := c.httpClient.Do(req)
		if err != nil {
			if ctxErr := ctx.Err(); ctxErr != nil {
				return nil, ctxErr
			}
			lastErr = fmt.Errorf("%w: send feed request: %s", ErrTransient, c.sanitize(err.Error()))
		} else {
			raw, readErr := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
			_ = resp.Body.Close()
			switch {
			case readErr != nil:
				lastErr = fmt.Errorf("%w: read feed response: %v", ErrTransient, readErr)
			case resp.StatusCode >= 200 && resp.StatusCode < 300:
				return raw, nil
			case resp.StatusCode == http.StatusNotFound:
				return nil, crerr.Wrapf(fixturematch.ErrSourceNotFound, "feed %s", redactURL(fullURL))
			case isRetryableStatus(resp.StatusCode):
				lastErr = fmt.Errorf("%w: feed status=%d body=%s", ErrTransient, resp.StatusCode, c.sanitize(abbreviateBody(raw)))
			default:
				return nil, crerr.Newf("feed status=%d body=%s", resp.StatusCode, c.sanitize(abbreviateBody(raw)))
			}
		}

		if attempt == c.maxRetries {
			break
		}
		timer := time.NewTimer(c.backoff(attempt))
		select {
		case <-ctx.Done():
			timer.Stop()
			return nil, ctx.Err()
		case <-timer.C:
		}
	}

	c.logger.WarnContext(ctx, "feed request failed",
		"url", redactURL(fullURL),
		"attempts", c.maxRetries+1,
		"error", lastErr,
	)
	return nil, lastErr
}

func (c *Client) sanitize(value string) string {
	if c.token == "" {
		return value
	}
	return strings.ReplaceAll(value, c.token, "REDACTED")
}

func isRetryableStatus(code int) bool {
	return code == http.StatusTooManyRequests || code >= http.StatusInternalServerError
}

func redactURL(rawURL string) string {
	parsed, err := url.Parse(rawURL)
	if err != nil {
		return rawURL
	}
	parsed.User = nil
	parsed.RawQuery = ""
	return parsed.String()
}

func abbreviateBody(body []byte) string {
	text := strings.TrimSpace(string(body))
	if len(text) <= 240 {
		return text
	}
	return text[:240] + "..."
}
