// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package lawapi is the HTTP client for the law query and law mutation
// services.
package lawapi

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/time/rate"

	"github.com/pdiddy/law-monitor/internal/httputil"
	"github.com/pdiddy/law-monitor/pkg/types"
)

const defaultTimeout = 30 * time.Second

// maxErrorBody bounds how much of an error response ends up in messages.
const maxErrorBody = 512

// Pagination is the paging block of a date-range response.
type Pagination struct {
	TotalItems int `json:"total_items"`
}

// LawPage is the date-range response of the law query service.
type LawPage struct {
	Laws       []types.Law `json:"law_data"`
	Pagination Pagination  `json:"pagination"`
}

// StatusError reports a non-success HTTP status from the service.
type StatusError struct {
	Endpoint string
	Code     int
	Body     string
}

func (e *StatusError) Error() string {
	if e.Body == "" {
		return fmt.Sprintf("%s: HTTP %d", e.Endpoint, e.Code)
	}
	return fmt.Sprintf("%s: HTTP %d: %s", e.Endpoint, e.Code, e.Body)
}

// Client talks to the law services over HTTP/JSON.
type Client struct {
	baseURL    string
	token      string
	userAgent  string
	maxRetries int
	http       *http.Client
	limiter    *rate.Limiter
	metrics    *Metrics
}

// New builds a Client from cfg. A nil httpClient gets one with cfg.Timeout;
// a nil metrics disables instrumentation.
func New(cfg types.APIConfig, httpClient *http.Client, metrics *Metrics) (*Client, error) {
	if cfg.BaseURL == "" {
		return nil, fmt.Errorf("law service base URL is not configured")
	}
	if _, err := url.Parse(cfg.BaseURL); err != nil {
		return nil, fmt.Errorf("parsing base URL: %w", err)
	}
	if httpClient == nil {
		timeout := cfg.Timeout
		if timeout <= 0 {
			timeout = defaultTimeout
		}
		httpClient = &http.Client{Timeout: timeout}
	}

	c := &Client{
		baseURL:    strings.TrimRight(cfg.BaseURL, "/"),
		token:      cfg.Token,
		userAgent:  cfg.UserAgent,
		maxRetries: cfg.MaxRetries,
		http:       httpClient,
		metrics:    metrics,
	}
	if cfg.RequestsPerSecond > 0 {
		burst := cfg.Burst
		if burst <= 0 {
			burst = 1
		}
		c.limiter = rate.NewLimiter(rate.Limit(cfg.RequestsPerSecond), burst)
	}
	return c, nil
}

// GetLawsByDateRange returns the laws whose bucket date falls in
// [start, end]. An empty start asks for the whole history up to end.
func (c *Client) GetLawsByDateRange(ctx context.Context, start, end string) (LawPage, error) {
	params := url.Values{}
	if start != "" {
		params.Set("start_date", start)
	}
	if end != "" {
		params.Set("end_date", end)
	}

	var page LawPage
	if err := c.getJSON(ctx, "laws", "/laws", params, &page); err != nil {
		return LawPage{}, err
	}
	return page, nil
}

// GetAllDatesWithLaws returns every date that has at least one law.
func (c *Client) GetAllDatesWithLaws(ctx context.Context) ([]string, error) {
	var dates []string
	if err := c.getJSON(ctx, "dates", "/laws/dates", nil, &dates); err != nil {
		return nil, err
	}
	return dates, nil
}

// SearchLawsByTitle runs a free-text title search.
func (c *Client) SearchLawsByTitle(ctx context.Context, title string) ([]types.Law, error) {
	return c.search(ctx, "title", url.Values{"q": {title}})
}

// SearchLawsByEurovoc returns laws tagged with any of the descriptors.
func (c *Client) SearchLawsByEurovoc(ctx context.Context, descriptors []string) ([]types.Law, error) {
	return c.search(ctx, "eurovoc", url.Values{"descriptor": descriptors})
}

// SearchLawsByDocumentType returns laws of one document type.
func (c *Client) SearchLawsByDocumentType(ctx context.Context, docType string) ([]types.Law, error) {
	return c.search(ctx, "document-type", url.Values{"value": {docType}})
}

// SearchLawsByJournalSeries returns laws published in one journal series.
func (c *Client) SearchLawsByJournalSeries(ctx context.Context, series string) ([]types.Law, error) {
	return c.search(ctx, "journal-series", url.Values{"value": {series}})
}

// SearchLawsByDepartment returns laws assigned to one department.
func (c *Client) SearchLawsByDepartment(ctx context.Context, department string) ([]types.Law, error) {
	return c.search(ctx, "department", url.Values{"value": {department}})
}

func (c *Client) search(ctx context.Context, kind string, params url.Values) ([]types.Law, error) {
	var laws []types.Law
	if err := c.getJSON(ctx, "search_"+strings.ReplaceAll(kind, "-", "_"), "/laws/search/"+kind, params, &laws); err != nil {
		return nil, err
	}
	return laws, nil
}

// DownloadLawsCSV returns the CSV export for the given scope.
func (c *Client) DownloadLawsCSV(ctx context.Context, scope types.CSVScope) (string, error) {
	resp, err := c.do(ctx, "export_csv", http.MethodGet, "/laws/export.csv", url.Values{"scope": {string(scope)}}, nil)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("reading CSV export: %w", err)
	}
	return string(data), nil
}

// UpdateLawCategory sets the review category of one law.
func (c *Client) UpdateLawCategory(ctx context.Context, lawID string, category types.Category) error {
	body, err := json.Marshal(map[string]string{"category": string(category)})
	if err != nil {
		return fmt.Errorf("encoding category update: %w", err)
	}
	resp, err := c.do(ctx, "update_category", http.MethodPut, "/laws/"+url.PathEscape(lawID)+"/category", nil, body)
	if err != nil {
		return err
	}
	io.Copy(io.Discard, resp.Body)
	resp.Body.Close()
	return nil
}

func (c *Client) getJSON(ctx context.Context, endpoint, path string, params url.Values, out any) error {
	resp, err := c.do(ctx, endpoint, http.MethodGet, path, params, nil)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("parsing %s response: %w", endpoint, err)
	}
	return nil
}

// do sends one request and returns the response only for 2xx statuses.
func (c *Client) do(ctx context.Context, endpoint, method, path string, params url.Values, body []byte) (resp *http.Response, err error) {
	start := time.Now()
	defer func() { c.metrics.observe(endpoint, start, err) }()

	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			return nil, fmt.Errorf("%s: waiting for rate limiter: %w", endpoint, err)
		}
	}

	reqURL := c.baseURL + path
	if len(params) > 0 {
		reqURL += "?" + params.Encode()
	}

	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}
	req, err := http.NewRequestWithContext(ctx, method, reqURL, reader)
	if err != nil {
		return nil, fmt.Errorf("creating %s request: %w", endpoint, err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.userAgent != "" {
		req.Header.Set("User-Agent", c.userAgent)
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}
	req.Header.Set("X-Request-ID", uuid.NewString())

	resp, err = httputil.DoWithRetry(ctx, c.http, req, c.maxRetries)
	if err != nil {
		return nil, fmt.Errorf("%s request: %w", endpoint, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		data, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		resp.Body.Close()
		return nil, &StatusError{Endpoint: endpoint, Code: resp.StatusCode, Body: strings.TrimSpace(string(data))}
	}
	return resp, nil
}
