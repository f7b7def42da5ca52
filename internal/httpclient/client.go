// Package httpclient provides the polite HTTP client shared by the remote
// catalogue sources: request pacing, a stable User-Agent, scheme validation
// and a redirect cap. The origins are small academic sites, so politeness
// beats throughput.
package httpclient

import (
	"context"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/qbanex/basq/errors"
	"golang.org/x/time/rate"
)

// Client wraps http.Client with pacing and request hygiene.
type Client struct {
	*http.Client
	limiter        *rate.Limiter
	userAgent      string
	allowedSchemes []string
	maxRedirects   int
}

// Options configures a Client.
type Options struct {
	Timeout time.Duration
	// RequestsPerMinute caps the request rate across all sources sharing
	// the client. Zero or less disables pacing.
	RequestsPerMinute int
	UserAgent         string
}

// New creates a paced HTTP client.
func New(opts Options) *Client {
	client := &Client{
		Client:         &http.Client{Timeout: opts.Timeout},
		userAgent:      opts.UserAgent,
		allowedSchemes: []string{"http", "https"},
		maxRedirects:   10,
	}
	if opts.RequestsPerMinute > 0 {
		client.limiter = rate.NewLimiter(rate.Limit(float64(opts.RequestsPerMinute)/60.0), 1)
	}

	client.CheckRedirect = func(req *http.Request, via []*http.Request) error {
		if len(via) >= client.maxRedirects {
			return errors.Newf("stopped after %d redirects", client.maxRedirects)
		}
		if err := client.validateURL(req.URL); err != nil {
			return errors.Wrap(err, "redirect blocked")
		}
		return nil
	}
	return client
}

// WrapClient wraps an existing http.Client without pacing, for tests that
// talk to an httptest server.
func WrapClient(client *http.Client) *Client {
	return &Client{
		Client:         client,
		allowedSchemes: []string{"http", "https"},
		maxRedirects:   10,
	}
}

// Do paces, tags and executes a request.
func (c *Client) Do(req *http.Request) (*http.Response, error) {
	if err := c.validateURL(req.URL); err != nil {
		return nil, err
	}
	if c.limiter != nil {
		if err := c.limiter.Wait(req.Context()); err != nil {
			return nil, errors.Wrap(err, "waiting for request slot")
		}
	}
	if c.userAgent != "" && req.Header.Get("User-Agent") == "" {
		req.Header.Set("User-Agent", c.userAgent)
	}
	return c.Client.Do(req)
}

// Get issues a GET carrying the context.
func (c *Client) Get(ctx context.Context, rawURL string) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, errors.Wrapf(err, "building request for %s", rawURL)
	}
	return c.Do(req)
}

// PostForm issues a form-encoded POST carrying the context.
func (c *Client) PostForm(ctx context.Context, rawURL string, form url.Values) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, rawURL,
		strings.NewReader(form.Encode()))
	if err != nil {
		return nil, errors.Wrapf(err, "building request for %s", rawURL)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return c.Do(req)
}

func (c *Client) validateURL(u *url.URL) error {
	scheme := strings.ToLower(u.Scheme)
	for _, allowed := range c.allowedSchemes {
		if scheme == allowed {
			return nil
		}
	}
	return errors.Newf("scheme %q not allowed (allowed: %v)", scheme, c.allowedSchemes)
}

// Body reads and closes a response body.
func Body(resp *http.Response) ([]byte, error) {
	defer resp.Body.Close()
	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, errors.Wrap(err, "reading response body")
	}
	return data, nil
}
