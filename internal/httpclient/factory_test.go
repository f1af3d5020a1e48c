package httpclient

import (
	"fmt"
	"net"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewSecureClient_BlocksPrivateDial(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))
	defer ts.Close()

	client := NewSecureClient(DefaultConfig())

	resp, err := client.Get(ts.URL)
	if resp != nil {
		CloseBody(resp)
	}
	require.Error(t, err)
	assert.Contains(t, err.Error(), "ssrf protection")
}

func TestNewSecureClient_AllowPrivateHosts(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, "ok")
	}))
	defer ts.Close()

	cfg := DefaultConfig()
	cfg.AllowPrivateHosts = true
	client := NewSecureClient(cfg)

	resp, err := client.Get(ts.URL)
	require.NoError(t, err)
	defer CloseBody(resp)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestNewSecureClient_BoundsRedirects(t *testing.T) {
	var ts *httptest.Server
	ts = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, ts.URL+r.URL.Path+"x", http.StatusFound)
	}))
	defer ts.Close()

	cfg := DefaultConfig()
	cfg.AllowPrivateHosts = true
	cfg.MaxRedirects = 3
	client := NewSecureClient(cfg)

	resp, err := client.Get(ts.URL)
	if resp != nil {
		CloseBody(resp)
	}
	require.Error(t, err)
	assert.Contains(t, err.Error(), "stopped after 3 redirects")
}

func TestNewSecureClient_NoFollowRedirects(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, "/elsewhere", http.StatusMovedPermanently)
	}))
	defer ts.Close()

	cfg := DefaultConfig()
	cfg.AllowPrivateHosts = true
	cfg.FollowRedirects = false
	client := NewSecureClient(cfg)

	resp, err := client.Get(ts.URL)
	require.NoError(t, err)
	defer CloseBody(resp)
	assert.Equal(t, http.StatusMovedPermanently, resp.StatusCode)
}

func TestNewSecureClient_Timeout(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Timeout = 250 * time.Millisecond
	client := NewSecureClient(cfg)
	assert.Equal(t, 250*time.Millisecond, client.Timeout)
}

func TestIsPrivateIP(t *testing.T) {
	private := []string{
		"127.0.0.1",
		"10.0.0.5",
		"172.16.0.1",
		"192.168.1.1",
		"169.254.169.254",
		"0.0.0.0",
		"::1",
		"fe80::1",
		"fd00::1",
	}
	for _, s := range private {
		ip := net.ParseIP(s)
		require.NotNil(t, ip, s)
		assert.True(t, isPrivateIP(ip), "expected %s to be private", s)
	}

	public := []string{"8.8.8.8", "1.1.1.1", "93.184.216.34", "2606:4700::1111"}
	for _, s := range public {
		ip := net.ParseIP(s)
		require.NotNil(t, ip, s)
		assert.False(t, isPrivateIP(ip), "expected %s to be public", s)
	}
}

func TestValidateRedirectURL(t *testing.T) {
	blocked, err := url.Parse("http://192.168.1.1/admin")
	require.NoError(t, err)
	assert.Error(t, validateRedirectURL(blocked))

	// Hostnames are deferred to dial-time validation.
	byName, err := url.Parse("https://example.com/")
	require.NoError(t, err)
	assert.NoError(t, validateRedirectURL(byName))
}

func TestCloseBody_NilSafe(t *testing.T) {
	CloseBody(nil)
	CloseBody(&http.Response{})
}
