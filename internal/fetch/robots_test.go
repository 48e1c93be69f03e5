package fetch

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func robotsServer(t *testing.T, status int, rules string, robotsCalls *int32) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/robots.txt" {
			atomic.AddInt32(robotsCalls, 1)
			w.WriteHeader(status)
			_, _ = w.Write([]byte(rules))
			return
		}
		w.Header().Set("Content-Type", "text/html")
		_, _ = w.Write([]byte("<p>page</p>"))
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestRobotsDisallow(t *testing.T) {
	var robotsCalls int32
	srv := robotsServer(t, http.StatusOK, "User-agent: *\nDisallow: /private\n", &robotsCalls)

	c := newClient()
	c.RespectRobots = true

	body, err := c.Get(context.Background(), srv.URL+"/public/page")
	require.NoError(t, err)
	assert.Equal(t, "<p>page</p>", body)

	_, err = c.Get(context.Background(), srv.URL+"/private/page")
	assert.True(t, errors.Is(err, ErrDisallowed), "got %v", err)

	assert.Equal(t, int32(1), atomic.LoadInt32(&robotsCalls), "robots.txt is fetched once per host")
}

func TestRobotsIgnoredByDefault(t *testing.T) {
	var robotsCalls int32
	srv := robotsServer(t, http.StatusOK, "User-agent: *\nDisallow: /\n", &robotsCalls)

	_, err := newClient().Get(context.Background(), srv.URL+"/page")
	assert.NoError(t, err)
	assert.Equal(t, int32(0), atomic.LoadInt32(&robotsCalls))
}

func TestRobotsFailOpen(t *testing.T) {
	for _, status := range []int{http.StatusNotFound, http.StatusInternalServerError} {
		var robotsCalls int32
		srv := robotsServer(t, status, "User-agent: *\nDisallow: /\n", &robotsCalls)

		c := newClient()
		c.RespectRobots = true
		_, err := c.Get(context.Background(), srv.URL+"/page")
		assert.NoError(t, err, "robots.txt status %d", status)
	}
}
