// Package hcp provides a rate-limited REST client for the Housecall Pro API.
package hcp

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/rotisserie/eris"
	"golang.org/x/time/rate"

	"github.com/hackeyzlife02/elfsight-hcp-webhook/internal/resilience"
)

// Default base URL for the Housecall Pro public API.
const defaultBaseURL = "https://api.housecallpro.com"

// Client defines the HCP API operations used by the lead pipeline.
type Client interface {
	FindCustomersByPhone(ctx context.Context, phone string) ([]Customer, error)
	FindCustomersByEmail(ctx context.Context, email string) ([]Customer, error)
	GetCustomer(ctx context.Context, customerID string) (*Customer, error)
	GetCustomerAddresses(ctx context.Context, customerID string) ([]Address, error)
	CreateCustomer(ctx context.Context, req CustomerRequest) (*Customer, error)
	CreateAddress(ctx context.Context, customerID string, addr Address) (*Address, error)
	CreateLead(ctx context.Context, req LeadRequest) (*Lead, error)
}

// Option configures the httpClient.
type Option func(*httpClient)

// WithBaseURL overrides the default base URL.
func WithBaseURL(u string) Option {
	return func(c *httpClient) {
		c.baseURL = u
	}
}

// WithHTTPClient sets a custom *http.Client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *httpClient) {
		c.http = hc
	}
}

// WithRateDelay enforces a minimum delay between API calls. The limiter is
// shared by every operation on this client, so concurrent webhook requests
// queue behind it instead of blowing the HCP quota.
func WithRateDelay(d time.Duration) Option {
	return func(c *httpClient) {
		if d > 0 {
			c.limiter = rate.NewLimiter(rate.Every(d), 1)
		}
	}
}

// WithRetry overrides the default retry configuration.
func WithRetry(cfg resilience.RetryConfig) Option {
	return func(c *httpClient) {
		c.retry = cfg
	}
}

// httpClient implements Client using net/http.
type httpClient struct {
	apiKey  string
	baseURL string
	http    *http.Client
	limiter *rate.Limiter
	retry   resilience.RetryConfig
}

// NewClient creates a new HCP client.
func NewClient(apiKey string, opts ...Option) Client {
	c := &httpClient{
		apiKey:  apiKey,
		baseURL: defaultBaseURL,
		http: &http.Client{
			Timeout: 30 * time.Second,
			Transport: &http.Transport{
				MaxIdleConnsPerHost: 10,
				IdleConnTimeout:     90 * time.Second,
			},
		},
		retry: resilience.DefaultRetryConfig(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *httpClient) FindCustomersByPhone(ctx context.Context, phone string) ([]Customer, error) {
	customers, err := c.searchCustomers(ctx, phone)
	if err != nil {
		return nil, eris.Wrap(err, "hcp: find customers by phone")
	}
	return customers, nil
}

func (c *httpClient) FindCustomersByEmail(ctx context.Context, email string) ([]Customer, error) {
	customers, err := c.searchCustomers(ctx, email)
	if err != nil {
		return nil, eris.Wrap(err, "hcp: find customers by email")
	}
	return customers, nil
}

func (c *httpClient) searchCustomers(ctx context.Context, q string) ([]Customer, error) {
	var resp customersResponse
	if err := c.get(ctx, "/customers?q="+url.QueryEscape(q), &resp); err != nil {
		return nil, err
	}
	return resp.Customers, nil
}

func (c *httpClient) GetCustomer(ctx context.Context, customerID string) (*Customer, error) {
	var resp Customer
	if err := c.get(ctx, "/customers/"+customerID, &resp); err != nil {
		return nil, eris.Wrap(err, fmt.Sprintf("hcp: get customer %s", customerID))
	}
	return &resp, nil
}

func (c *httpClient) GetCustomerAddresses(ctx context.Context, customerID string) ([]Address, error) {
	var resp addressesResponse
	if err := c.get(ctx, "/customers/"+customerID+"/addresses", &resp); err != nil {
		return nil, eris.Wrap(err, fmt.Sprintf("hcp: get addresses for %s", customerID))
	}
	return resp.Addresses, nil
}

func (c *httpClient) CreateCustomer(ctx context.Context, req CustomerRequest) (*Customer, error) {
	var resp Customer
	if err := c.post(ctx, "/customers", req, &resp); err != nil {
		return nil, eris.Wrap(err, "hcp: create customer")
	}
	if resp.ID == "" {
		return nil, eris.New("hcp: create customer returned no id")
	}
	return &resp, nil
}

func (c *httpClient) CreateAddress(ctx context.Context, customerID string, addr Address) (*Address, error) {
	var resp Address
	if err := c.post(ctx, "/customers/"+customerID+"/addresses", addr, &resp); err != nil {
		return nil, eris.Wrap(err, fmt.Sprintf("hcp: create address for %s", customerID))
	}
	if resp.ID == "" {
		return nil, eris.New("hcp: create address returned no id")
	}
	return &resp, nil
}

func (c *httpClient) CreateLead(ctx context.Context, req LeadRequest) (*Lead, error) {
	var resp Lead
	if err := c.post(ctx, "/leads", req, &resp); err != nil {
		return nil, eris.Wrap(err, "hcp: create lead")
	}
	if resp.ID == "" {
		return nil, eris.New("hcp: create lead returned no id")
	}
	return &resp, nil
}

func (c *httpClient) post(ctx context.Context, path string, body any, out any) error {
	buf, err := json.Marshal(body)
	if err != nil {
		return eris.Wrap(err, "marshal request")
	}
	return c.doRetry(ctx, http.MethodPost, path, buf, out)
}

func (c *httpClient) get(ctx context.Context, path string, out any) error {
	return c.doRetry(ctx, http.MethodGet, path, nil, out)
}

// doRetry runs one request under the shared rate limiter and the retry
// policy. Only transient failures (429, 5xx, network) are retried; a 429
// Retry-After header overrides the backoff schedule.
func (c *httpClient) doRetry(ctx context.Context, method, path string, body []byte, out any) error {
	cfg := c.retry
	if cfg.OnRetry == nil {
		cfg.OnRetry = resilience.RetryLogger(method + " " + path)
	}
	return resilience.Do(ctx, cfg, func(ctx context.Context) error {
		if c.limiter != nil {
			if err := c.limiter.Wait(ctx); err != nil {
				return eris.Wrap(err, "rate limit wait")
			}
		}
		return c.do(ctx, method, path, body, out)
	})
}

func (c *httpClient) do(ctx context.Context, method, path string, body []byte, out any) error {
	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return eris.Wrap(err, "create request")
	}
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return eris.Wrap(err, "execute request")
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return eris.Wrap(err, "read response body")
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		apiErr := &APIError{StatusCode: resp.StatusCode, Message: string(data)}
		if resilience.IsTransientHTTPStatus(resp.StatusCode) {
			te := resilience.NewTransientError(apiErr, resp.StatusCode)
			if secs, err := strconv.Atoi(resp.Header.Get("Retry-After")); err == nil && secs > 0 {
				te.RetryAfter = time.Duration(secs) * time.Second
			}
			return te
		}
		return apiErr
	}

	if out == nil {
		return nil
	}
	if err := json.Unmarshal(data, out); err != nil {
		return eris.Wrap(err, "decode response")
	}

	return nil
}
