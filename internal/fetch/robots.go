package fetch

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"github.com/temoto/robotstxt"
)

// allowed reports whether robots.txt of u's host lets c.UserAgent fetch u.
// Any failure to obtain the rules allows the fetch.
func (c *Client) allowed(ctx context.Context, u *url.URL) bool {
	data, err := c.robotsFor(ctx, u)
	if err != nil {
		return true
	}
	agent := c.UserAgent
	if agent == "" {
		agent = "*"
	}
	path := u.EscapedPath()
	if path == "" {
		path = "/"
	}
	return data.TestAgent(path, agent)
}

func (c *Client) robotsFor(ctx context.Context, u *url.URL) (*robotstxt.RobotsData, error) {
	c.mu.Lock()
	if data, ok := c.robots[u.Host]; ok {
		c.mu.Unlock()
		return data, nil
	}
	c.mu.Unlock()

	robotsURL := fmt.Sprintf("%s://%s/robots.txt", u.Scheme, u.Host)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, robotsURL, nil)
	if err != nil {
		return nil, err
	}
	if c.UserAgent != "" {
		req.Header.Set("User-Agent", c.UserAgent)
	}
	resp, err := c.httpClient().Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	if resp.StatusCode >= 500 {
		return nil, &StatusError{Code: resp.StatusCode, URL: robotsURL}
	}

	data, err := robotstxt.FromResponse(resp)
	if err != nil {
		return nil, err
	}

	c.mu.Lock()
	if c.robots == nil {
		c.robots = make(map[string]*robotstxt.RobotsData)
	}
	c.robots[u.Host] = data
	c.mu.Unlock()
	return data, nil
}
