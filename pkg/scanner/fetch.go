package scanner

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/CodeMonkeyCybersecurity/wpcompass/internal/httpclient"
	"github.com/CodeMonkeyCybersecurity/wpcompass/internal/ratelimit"
)

// fetcher is the one place scan requests leave the process. Every
// request carries the shared user-agent, an explicit per-call timeout,
// and waits for the politeness limiter. There are no retries: a
// timeout or non-2xx response is terminal for that branch.
type fetcher struct {
	client    *http.Client
	userAgent string
	limiter   *ratelimit.Limiter
}

// maxBodyBytes caps response bodies so a misbehaving endpoint cannot
// exhaust memory. 10 MiB comfortably covers real sitemaps and homepages.
const maxBodyBytes = 10 << 20

func (f *fetcher) newRequest(ctx context.Context, method, url string) (*http.Request, error) {
	if f.limiter != nil {
		if err := f.limiter.Wait(ctx); err != nil {
			return nil, err
		}
	}
	req, err := http.NewRequestWithContext(ctx, method, url, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", f.userAgent)
	req.Header.Set("Accept", "text/html,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8")
	return req, nil
}

// head issues a HEAD request and discards the body. The returned
// response is safe to inspect for status, headers, and final URL.
func (f *fetcher) head(ctx context.Context, url string, timeout time.Duration) (*http.Response, error) {
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	req, err := f.newRequest(ctx, http.MethodHead, url)
	if err != nil {
		return nil, err
	}
	resp, err := f.client.Do(req)
	if err != nil {
		return nil, err
	}
	httpclient.CloseBody(resp)
	return resp, nil
}

// get fetches url and returns status, headers, and the fully buffered
// body. Reading happens inside the per-call timeout so callers never
// touch a live network stream.
func (f *fetcher) get(ctx context.Context, url string, timeout time.Duration) (int, http.Header, []byte, error) {
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	req, err := f.newRequest(ctx, http.MethodGet, url)
	if err != nil {
		return 0, nil, nil, err
	}
	resp, err := f.client.Do(req)
	if err != nil {
		return 0, nil, nil, err
	}
	defer httpclient.CloseBody(resp)

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return resp.StatusCode, resp.Header, nil, err
	}
	return resp.StatusCode, resp.Header, body, nil
}

// getBody fetches url and returns the body, failing on non-2xx status.
func (f *fetcher) getBody(ctx context.Context, url string, timeout time.Duration) ([]byte, error) {
	status, _, body, err := f.get(ctx, url, timeout)
	if err != nil {
		return nil, err
	}
	if status < 200 || status >= 300 {
		return nil, fmt.Errorf("HTTP %d", status)
	}
	return body, nil
}

// fetchXML fetches url and returns its body only when the response is
// 2xx and the payload looks like XML. Any other outcome means "not
// found here" so the caller can try the next well-known path.
func (f *fetcher) fetchXML(ctx context.Context, url string, timeout time.Duration) ([]byte, bool) {
	body, err := f.getBody(ctx, url, timeout)
	if err != nil {
		return nil, false
	}
	if !bytes.Contains(body, []byte("<")) {
		return nil, false
	}
	return body, true
}
