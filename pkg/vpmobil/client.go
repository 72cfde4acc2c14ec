package vpmobil

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"vplanctl/pkg/logging"
	"vplanctl/pkg/vplan"
	"vplanctl/pkg/xmltree"
)

var (
	baseURL    = "https://www.stundenplan24.de"
	retryDelay = time.Second
)

const maxAttempts = 3

var (
	// ErrUnauthorized covers 401 and 403. A 403 is also what a misconfigured
	// proxy in front of stundenplan24.de answers with.
	ErrUnauthorized = errors.New("access denied (check username and password, or the proxy base URL)")
	// ErrNoPlan is returned when no plan file exists for the requested day.
	ErrNoPlan = errors.New("no plan published for this date")
)

// Credentials are the school's VpMobil login.
type Credentials struct {
	Username string
	Password string
}

// Client handles HTTP requests to the VpMobil endpoints of stundenplan24.de
type Client struct {
	httpClient *http.Client
	baseURL    string
	cacheTTL   time.Duration
	logger     *logging.Logger
}

// NewClient creates a new client without caching
func NewClient() *Client {
	return &Client{
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
		logger: logging.NopLogger(),
	}
}

// WithBaseURL points the client at a proxy instead of stundenplan24.de.
func (c *Client) WithBaseURL(u string) *Client {
	c.baseURL = strings.TrimRight(u, "/")
	return c
}

// WithCache keeps raw feeds on disk for ttl; zero disables the cache.
func (c *Client) WithCache(ttl time.Duration) *Client {
	c.cacheTTL = ttl
	return c
}

// WithLogger sets the logger used for fetch diagnostics.
func (c *Client) WithLogger(l *logging.Logger) *Client {
	if l != nil {
		c.logger = l
	}
	return c
}

// URL returns the feed location for a school. A zero date selects the
// current plan (Klassen.xml), any other date the archived PlanKl file.
func (c *Client) URL(school string, date time.Time) string {
	root := c.baseURL
	if root == "" {
		root = baseURL
	}
	file := "Klassen.xml"
	if !date.IsZero() {
		file = fmt.Sprintf("PlanKl%s.xml", date.Format("20060102"))
	}
	return fmt.Sprintf("%s/%s/mobil/mobdaten/%s", root, strings.TrimSpace(school), file)
}

// FetchClasses downloads the current plan (Klassen.xml).
func (c *Client) FetchClasses(ctx context.Context, school string, creds Credentials) (*xmltree.Node, error) {
	return c.FetchPlan(ctx, school, creds, time.Time{})
}

// FetchDay downloads the plan published for a specific day.
func (c *Client) FetchDay(ctx context.Context, school string, creds Credentials, date time.Time) (*xmltree.Node, error) {
	return c.FetchPlan(ctx, school, creds, date)
}

// Extract fetches the feed and extracts the plan for one class.
// A class that is not in the feed yields a plan with StatusNotFound.
func (c *Client) Extract(ctx context.Context, school string, creds Credentials, date time.Time, q vplan.Query) (*vplan.Plan, error) {
	tree, err := c.FetchPlan(ctx, school, creds, date)
	if err != nil {
		return nil, err
	}

	plan, err := vplan.Extract(tree, q)
	if err != nil {
		return nil, err
	}
	c.logger.Debug("plan extracted", "class", q.Class, "status", plan.Status.String(), "lessons", len(plan.Lessons))
	return plan, nil
}

// FetchPlan downloads and converts the class feed.
func (c *Client) FetchPlan(ctx context.Context, school string, creds Credentials, date time.Time) (*xmltree.Node, error) {
	body, err := c.FetchRaw(ctx, school, creds, date)
	if err != nil {
		return nil, err
	}

	tree, err := xmltree.Parse(bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to read plan for school %s: %w", school, err)
	}
	return tree, nil
}

// FetchRaw returns the feed bytes, from the disk cache when it is fresh.
func (c *Client) FetchRaw(ctx context.Context, school string, creds Credentials, date time.Time) ([]byte, error) {
	url := c.URL(school, date)
	log := c.logger.With("url", url)

	if c.cacheTTL > 0 {
		if body, ok := readCache(url, c.cacheTTL); ok {
			log.Debug("serving plan from cache")
			return body, nil
		}
	}

	resp, err := c.getWithRetries(ctx, url, creds)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden:
		return nil, fmt.Errorf("%w: %s", ErrUnauthorized, resp.Status)
	case resp.StatusCode == http.StatusNotFound:
		return nil, ErrNoPlan
	case resp.StatusCode != http.StatusOK:
		return nil, fmt.Errorf("error fetching data: %s", resp.Status)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}
	log.Debug("fetched plan", "bytes", len(body))

	if c.cacheTTL > 0 {
		if err := writeCache(url, body); err != nil {
			log.Warn("could not write cache", "error", err)
		}
	}
	return body, nil
}

// getWithRetries attempts the request up to maxAttempts times for
// 502/503/504 and transport errors.
func (c *Client) getWithRetries(ctx context.Context, url string, creds Credentials) (*http.Response, error) {
	var lastErr error

	for attempt := 0; attempt < maxAttempts; attempt++ {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
		if err != nil {
			return nil, err
		}
		req.SetBasicAuth(creds.Username, creds.Password)
		req.Header.Set("X-Requested-With", "XMLHttpRequest")
		req.Header.Set("User-Agent", "vplanctl/1.0")

		resp, err := c.httpClient.Do(req)
		switch {
		case err != nil:
			lastErr = err
		case resp.StatusCode == http.StatusBadGateway || resp.StatusCode == http.StatusServiceUnavailable || resp.StatusCode == http.StatusGatewayTimeout:
			resp.Body.Close()
			lastErr = fmt.Errorf("transient status code: %d", resp.StatusCode)
		default:
			return resp, nil
		}

		if ctx.Err() != nil {
			return nil, fmt.Errorf("error fetching data: %w", ctx.Err())
		}
		if attempt < maxAttempts-1 {
			c.logger.Warn("fetch failed, retrying", "attempt", attempt+1, "error", lastErr)
			select {
			case <-ctx.Done():
				return nil, fmt.Errorf("error fetching data: %w", ctx.Err())
			case <-time.After(time.Duration(attempt+1) * retryDelay):
			}
		}
	}

	return nil, fmt.Errorf("error fetching data: failed after %d attempts: %w", maxAttempts, lastErr)
}
