// Package fetch downloads HTML pages for extraction.
package fetch

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/temoto/robotstxt"
	"golang.org/x/net/html/charset"
	"golang.org/x/time/rate"
)

var (
	ErrUnsupportedScheme      = errors.New("unsupported url scheme")
	ErrUnsupportedContentType = errors.New("unsupported content type")
	ErrBodyTooLarge           = errors.New("response body too large")
	ErrDisallowed             = errors.New("disallowed by robots.txt")
)

// StatusError is returned for responses outside the 2xx range.
type StatusError struct {
	Code int
	URL  string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("unexpected status %d %s from %s", e.Code, http.StatusText(e.Code), e.URL)
}

// Temporary reports whether a later attempt may succeed.
func (e *StatusError) Temporary() bool {
	return e.Code >= 500 || e.Code == http.StatusTooManyRequests
}

// Client wraps http.Client with timeouts, bounded retries on transient
// errors, charset decoding and optional robots.txt checks.
type Client struct {
	HTTPClient *http.Client
	UserAgent  string
	// MaxAttempts includes the initial attempt. Minimum 1.
	MaxAttempts int
	// PerRequestTimeout bounds each attempt; 0 leaves it to ctx.
	PerRequestTimeout time.Duration
	// MaxBodySize caps the raw response body in bytes; 0 means no cap.
	MaxBodySize int64
	// RespectRobots enables robots.txt checks, once per host.
	RespectRobots bool
	// Backoff is the minimum delay between attempts. Zero means 200ms.
	Backoff time.Duration

	mu     sync.Mutex
	robots map[string]*robotstxt.RobotsData
}

func (c *Client) httpClient() *http.Client {
	if c.HTTPClient != nil {
		return c.HTTPClient
	}
	return http.DefaultClient
}

// Get downloads rawURL and returns its body decoded to UTF-8.
func (c *Client) Get(ctx context.Context, rawURL string) (string, error) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return "", fmt.Errorf("parse url: %w", err)
	}
	if !isHTTPScheme(u) {
		return "", fmt.Errorf("%w: %q", ErrUnsupportedScheme, u.Scheme)
	}
	if c.RespectRobots && !c.allowed(ctx, u) {
		return "", fmt.Errorf("%w: %s", ErrDisallowed, rawURL)
	}

	attempts := c.MaxAttempts
	if attempts <= 0 {
		attempts = 1
	}
	backoff := c.Backoff
	if backoff <= 0 {
		backoff = 200 * time.Millisecond
	}
	pace := rate.NewLimiter(rate.Every(backoff), 1)

	var lastErr error
	for i := 0; i < attempts; i++ {
		if err := pace.Wait(ctx); err != nil {
			if lastErr != nil {
				return "", lastErr
			}
			return "", err
		}
		body, err := c.tryOnce(ctx, u.String())
		if err == nil {
			return body, nil
		}
		lastErr = err
		if !isTransient(ctx, err) {
			break
		}
	}
	return "", lastErr
}

func (c *Client) tryOnce(ctx context.Context, rawURL string) (string, error) {
	if c.PerRequestTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.PerRequestTimeout)
		defer cancel()
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return "", fmt.Errorf("new request: %w", err)
	}
	if c.UserAgent != "" {
		req.Header.Set("User-Agent", c.UserAgent)
	}
	req.Header.Set("Accept", "text/html,application/xhtml+xml;q=0.9,*/*;q=0.1")

	resp, err := c.httpClient().Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", &StatusError{Code: resp.StatusCode, URL: rawURL}
	}
	contentType := resp.Header.Get("Content-Type")
	if !isAllowedHTMLContentType(contentType) {
		return "", fmt.Errorf("%w: %s", ErrUnsupportedContentType, contentType)
	}

	var body io.Reader = resp.Body
	if c.MaxBodySize > 0 {
		body = io.LimitReader(body, c.MaxBodySize+1)
	}
	raw, err := io.ReadAll(body)
	if err != nil {
		return "", fmt.Errorf("read body: %w", err)
	}
	if c.MaxBodySize > 0 && int64(len(raw)) > c.MaxBodySize {
		return "", fmt.Errorf("%w: more than %d bytes", ErrBodyTooLarge, c.MaxBodySize)
	}

	decoded, err := charset.NewReader(bytes.NewReader(raw), contentType)
	if err != nil {
		return "", fmt.Errorf("decode body: %w", err)
	}
	b, err := io.ReadAll(decoded)
	if err != nil {
		return "", fmt.Errorf("decode body: %w", err)
	}
	return string(b), nil
}

// isTransient treats 5xx, 429 and per-attempt deadlines as transient. Once
// the caller's context is done nothing is.
func isTransient(ctx context.Context, err error) bool {
	if ctx.Err() != nil {
		return false
	}
	var se *StatusError
	if errors.As(err, &se) {
		return se.Temporary()
	}
	return errors.Is(err, context.DeadlineExceeded)
}

func isHTTPScheme(u *url.URL) bool {
	scheme := strings.ToLower(u.Scheme)
	return scheme == "http" || scheme == "https"
}

// isAllowedHTMLContentType accepts text/html, application/xhtml+xml and a
// missing header.
func isAllowedHTMLContentType(ct string) bool {
	ct = strings.ToLower(strings.TrimSpace(ct))
	return ct == "" || strings.HasPrefix(ct, "text/html") || strings.HasPrefix(ct, "application/xhtml+xml")
}
