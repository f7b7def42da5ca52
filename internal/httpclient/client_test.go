package httpclient

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/time/rate"
)

func TestClientSetsUserAgent(t *testing.T) {
	var got string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = r.Header.Get("User-Agent")
		w.Write([]byte("ok"))
	}))
	defer server.Close()

	client := New(Options{Timeout: 5 * time.Second, UserAgent: "basq/test"})
	resp, err := client.Get(context.Background(), server.URL)
	require.NoError(t, err)

	body, err := Body(resp)
	require.NoError(t, err)
	assert.Equal(t, "ok", string(body))
	assert.Equal(t, "basq/test", got)
}

func TestClientPacingConfiguration(t *testing.T) {
	unpaced := New(Options{Timeout: time.Second})
	assert.Nil(t, unpaced.limiter)

	paced := New(Options{Timeout: time.Second, RequestsPerMinute: 30})
	require.NotNil(t, paced.limiter)
	assert.Equal(t, rate.Limit(0.5), paced.limiter.Limit())

	assert.Nil(t, WrapClient(&http.Client{}).limiter)
}

func TestClientRejectsScheme(t *testing.T) {
	client := New(Options{Timeout: time.Second})
	_, err := client.Get(context.Background(), "ftp://example.org/data")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not allowed")
}

func TestClientRedirectCap(t *testing.T) {
	var server *httptest.Server
	server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, server.URL, http.StatusFound)
	}))
	defer server.Close()

	client := WrapClient(server.Client())
	_, err := client.Get(context.Background(), server.URL)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "stopped after")
}

func TestClientPostForm(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.NoError(t, r.ParseForm())
		assert.Equal(t, "application/x-www-form-urlencoded", r.Header.Get("Content-Type"))
		w.Write([]byte(r.Form.Get("basis")))
	}))
	defer server.Close()

	client := WrapClient(server.Client())
	resp, err := client.PostForm(context.Background(), server.URL,
		url.Values{"basis": {"cc-pvdz"}})
	require.NoError(t, err)

	body, err := Body(resp)
	require.NoError(t, err)
	assert.Equal(t, "cc-pvdz", string(body))
}

func TestClientHonoursContext(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-r.Context().Done()
	}))
	defer server.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	client := WrapClient(server.Client())
	_, err := client.Get(ctx, server.URL)
	assert.Error(t, err)
}
