package engine

import (
	"context"
	"fmt"
	"io"
	"time"

	fhttp "github.com/bogdanfinn/fhttp"
	tls_client "github.com/bogdanfinn/tls-client"
	"github.com/bogdanfinn/tls-client/profiles"
)

// BrowserClient wraps tls-client with a Chrome TLS fingerprint.
// Requests appear as Chrome 131 to TLS fingerprinting (JA3 hash). Redirects are
// not followed so callers can see login redirects.
type BrowserClient struct {
	client tls_client.HttpClient
}

// Response is a fully read HTTP response.
type Response struct {
	Status int
	Header fhttp.Header
	Body   []byte
}

// Location returns the redirect target, if any.
func (r *Response) Location() string {
	if r == nil || r.Header == nil {
		return ""
	}
	return r.Header.Get("Location")
}

// NewBrowserClient creates a client that impersonates Chrome 131.
// A zero timeout means 15 seconds.
func NewBrowserClient(timeout time.Duration) (*BrowserClient, error) {
	if timeout <= 0 {
		timeout = 15 * time.Second
	}
	opts := []tls_client.HttpClientOption{
		tls_client.WithTimeoutSeconds(int(timeout.Seconds())),
		tls_client.WithClientProfile(profiles.Chrome_131),
		tls_client.WithNotFollowRedirects(),
		tls_client.WithCookieJar(tls_client.NewCookieJar()),
	}
	client, err := tls_client.NewHttpClient(nil, opts...)
	if err != nil {
		return nil, fmt.Errorf("tls-client init: %w", err)
	}
	return &BrowserClient{client: client}, nil
}

// headerOrder is Chrome's header order; fingerprinting checks it.
var headerOrder = []string{
	"accept",
	"accept-language",
	"accept-encoding",
	"csrf-token",
	"referer",
	"cookie",
	"user-agent",
}

// Do executes a request with the Chrome TLS fingerprint and reads the whole body.
func (bc *BrowserClient) Do(ctx context.Context, method, url string, headers map[string]string, body io.Reader) (*Response, error) {
	req, err := fhttp.NewRequestWithContext(ctx, method, url, body)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	req.Header[fhttp.HeaderOrderKey] = headerOrder

	resp, err := bc.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("tls request: %w", err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read body: %w", err)
	}
	return &Response{Status: resp.StatusCode, Header: resp.Header, Body: data}, nil
}
