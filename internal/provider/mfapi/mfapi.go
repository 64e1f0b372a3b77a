package mfapi

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/newthinker/navscope/internal/core"
	"github.com/newthinker/navscope/internal/provider"
)

const (
	DefaultBaseURL = "https://api.mfapi.in"
	userAgent      = "navscope"
)

// Client implements provider.Provider and provider.CatalogSource on top of
// the mfapi.in JSON API. One scheme payload carries both metadata and
// history, so payloads are kept for the life of the client.
type Client struct {
	client  *http.Client
	baseURL string

	mu       sync.Mutex
	payloads map[string]*schemeResponse
}

// New creates a new mfapi client
func New(baseURL string, timeout time.Duration) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	if timeout <= 0 {
		timeout = 15 * time.Second
	}
	return &Client{
		client: &http.Client{
			Timeout: timeout,
		},
		baseURL:  strings.TrimSuffix(baseURL, "/"),
		payloads: make(map[string]*schemeResponse),
	}
}

func (c *Client) Name() string {
	return "mfapi"
}

// SchemeDetails fetches descriptive fields for a scheme
func (c *Client) SchemeDetails(ctx context.Context, code string) (*core.FundMetadata, error) {
	resp, err := c.scheme(ctx, code)
	if err != nil {
		return nil, err
	}

	m := resp.Meta
	return &core.FundMetadata{
		Code:      code,
		Name:      strings.TrimSpace(m.SchemeName),
		FundHouse: strings.TrimSpace(m.FundHouse),
		Category:  strings.TrimSpace(m.SchemeCategory),
		Type:      strings.TrimSpace(m.SchemeType),
	}, nil
}

// SchemeHistory fetches the raw NAV history, newest first as served
func (c *Client) SchemeHistory(ctx context.Context, code string) ([]core.RawPoint, error) {
	resp, err := c.scheme(ctx, code)
	if err != nil {
		return nil, err
	}

	points := make([]core.RawPoint, 0, len(resp.Data))
	for _, d := range resp.Data {
		points = append(points, core.RawPoint{Date: d.Date, NAV: d.NAV})
	}
	return points, nil
}

// Schemes fetches the full scheme list
func (c *Client) Schemes(ctx context.Context) ([]core.Scheme, error) {
	var entries []catalogEntry
	if err := c.get(ctx, c.baseURL+"/mf", &entries); err != nil {
		return nil, err
	}

	schemes := make([]core.Scheme, 0, len(entries))
	for _, e := range entries {
		code := e.SchemeCode.String()
		name := strings.TrimSpace(e.SchemeName)
		if code == "" || name == "" {
			continue
		}
		schemes = append(schemes, core.Scheme{Code: code, Name: name})
	}
	return schemes, nil
}

func (c *Client) scheme(ctx context.Context, code string) (*schemeResponse, error) {
	code, err := provider.ValidateCode(code)
	if err != nil {
		return nil, err
	}

	c.mu.Lock()
	cached, ok := c.payloads[code]
	c.mu.Unlock()
	if ok {
		return cached, nil
	}

	var resp schemeResponse
	if err := c.get(ctx, fmt.Sprintf("%s/mf/%s", c.baseURL, code), &resp); err != nil {
		return nil, err
	}
	if resp.Meta.SchemeName == "" && len(resp.Data) == 0 {
		return nil, core.WrapError(core.ErrSchemeNotFound, fmt.Errorf("code %s", code))
	}

	c.mu.Lock()
	c.payloads[code] = &resp
	c.mu.Unlock()
	return &resp, nil
}

func (c *Client) get(ctx context.Context, url string, v any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return fmt.Errorf("building request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", userAgent)

	resp, err := c.client.Do(req)
	if err != nil {
		return core.WrapError(core.ErrProviderFailed, fmt.Errorf("fetching %s: %w", url, err))
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return core.WrapError(core.ErrSchemeNotFound, fmt.Errorf("%s", url))
	case resp.StatusCode != http.StatusOK:
		return core.WrapError(core.ErrProviderFailed, fmt.Errorf("unexpected status: %d", resp.StatusCode))
	}

	if err := json.NewDecoder(resp.Body).Decode(v); err != nil {
		return core.WrapError(core.ErrProviderFailed, fmt.Errorf("decoding response: %w", err))
	}
	return nil
}

// mfapi response types
type schemeResponse struct {
	Meta   schemeMeta `json:"meta"`
	Data   []navPoint `json:"data"`
	Status string     `json:"status"`
}

type schemeMeta struct {
	FundHouse      string      `json:"fund_house"`
	SchemeType     string      `json:"scheme_type"`
	SchemeCategory string      `json:"scheme_category"`
	SchemeCode     json.Number `json:"scheme_code"`
	SchemeName     string      `json:"scheme_name"`
}

type navPoint struct {
	Date string `json:"date"` // dd-mm-yyyy
	NAV  string `json:"nav"`
}

type catalogEntry struct {
	SchemeCode json.Number `json:"schemeCode"`
	SchemeName string      `json:"schemeName"`
}
