// Package linkedin acquires LinkedIn pages with a member session cookie and turns
// them into dom.Documents for the profile extractor.
package linkedin

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"time"

	"github.com/anatolykoptev/go_profile/internal/engine"
	"github.com/anatolykoptev/go_profile/internal/engine/dom"
	"golang.org/x/net/html"
	"golang.org/x/time/rate"
)

// ErrAuthRequired means the session cookie is missing, expired or was rejected.
var ErrAuthRequired = errors.New("linkedin: authenticated session required")

// DefaultMaxPageBytes caps a single page body.
const DefaultMaxPageBytes = 8 << 20

// Doer sends one HTTP request. *engine.BrowserClient implements it.
type Doer interface {
	Do(ctx context.Context, method, url string, headers map[string]string, body io.Reader) (*engine.Response, error)
}

// Options configures a Fetcher.
type Options struct {
	BaseURL       string
	SessionCookie string
	Subpages      []string
	RatePerMin    int // 0 = unlimited
	Timeout       time.Duration
	Retry         engine.RetryConfig
	MaxPageBytes  int // 0 = DefaultMaxPageBytes
}

// Fetcher loads profile and search pages. It is safe for concurrent use; the rate
// limiter is shared by all callers.
type Fetcher struct {
	client   Doer
	opts     Options
	limiter  *rate.Limiter
	headerFn func() map[string]string
}

// NewFetcher builds a Fetcher around client.
func NewFetcher(client Doer, opts Options) *Fetcher {
	if opts.BaseURL == "" {
		opts.BaseURL = DefaultBaseURL
	}
	opts.BaseURL = strings.TrimRight(opts.BaseURL, "/")
	if opts.Timeout <= 0 {
		opts.Timeout = 20 * time.Second
	}
	if opts.MaxPageBytes <= 0 {
		opts.MaxPageBytes = DefaultMaxPageBytes
	}

	limit := rate.Inf
	if opts.RatePerMin > 0 {
		limit = rate.Every(time.Minute / time.Duration(opts.RatePerMin))
	}
	return &Fetcher{
		client:   client,
		opts:     opts,
		limiter:  rate.NewLimiter(limit, 1),
		headerFn: engine.ChromeHeaders,
	}
}

// FromConfig builds a Fetcher from the engine configuration, or returns nil when
// network acquisition is disabled.
func FromConfig(c *engine.Config) *Fetcher {
	if !c.FetchEnabled() {
		return nil
	}
	return NewFetcher(c.BrowserClient, Options{
		BaseURL:       c.LinkedInBaseURL,
		SessionCookie: c.SessionCookie,
		Subpages:      c.Subpages,
		RatePerMin:    c.FetchRatePerMin,
		Timeout:       c.FetchTimeout,
		Retry:         engine.DefaultRetryConfig,
	})
}

// BaseURL is the origin profile URLs are built against.
func (f *Fetcher) BaseURL() string { return f.opts.BaseURL }

// WithSessionCookie returns a Fetcher that authenticates with cookie instead of the
// configured one. The copy shares the rate limiter. An empty cookie returns f.
func (f *Fetcher) WithSessionCookie(cookie string) *Fetcher {
	if cookie == "" {
		return f
	}
	cp := *f
	cp.opts.SessionCookie = cookie
	return &cp
}

// FetchProfile loads the main profile page and every configured sub-page.
// The main page must load; a sub-page that fails is logged and left out, so its
// section is reported absent. Auth failures and cancellation abort the whole fetch.
func (f *Fetcher) FetchProfile(ctx context.Context, profileURL string) (*dom.Document, error) {
	root, err := f.FetchPage(ctx, profileURL)
	if err != nil {
		return nil, err
	}
	doc := dom.NewDocument(profileURL, root)

	for _, sub := range f.opts.Subpages {
		page, err := f.FetchPage(ctx, PageURL(profileURL, sub))
		if err != nil {
			if errors.Is(err, ErrAuthRequired) || ctx.Err() != nil {
				return nil, err
			}
			slog.Warn("linkedin: sub-page unavailable",
				slog.String("url", profileURL), slog.String("page", sub), slog.Any("error", err))
			continue
		}
		doc.WithPage(sub, page)
	}
	return doc, nil
}

// FetchSearch loads the content search results page for keyword.
func (f *Fetcher) FetchSearch(ctx context.Context, keyword string) (*dom.Document, error) {
	u := SearchURL(f.opts.BaseURL, keyword)
	root, err := f.FetchPage(ctx, u)
	if err != nil {
		return nil, err
	}
	return dom.NewDocument(u, root), nil
}

// FetchPage GETs one page with the session cookie, retrying transient failures.
func (f *Fetcher) FetchPage(ctx context.Context, pageURL string) (*html.Node, error) {
	if f.opts.SessionCookie == "" {
		return nil, fmt.Errorf("%w: no session cookie configured", ErrAuthRequired)
	}
	ctx, cancel := context.WithTimeout(ctx, f.opts.Timeout)
	defer cancel()

	headers := make(map[string]string)
	for k, v := range f.headerFn() {
		headers[k] = v
	}
	headers["accept"] = "text/html,application/xhtml+xml,application/xml;q=0.9"
	headers["referer"] = f.opts.BaseURL + "/feed/"
	headers["cookie"] = "li_at=" + f.opts.SessionCookie

	root, err := engine.RetryDo(ctx, f.opts.Retry, func() (*html.Node, error) {
		if err := f.limiter.Wait(ctx); err != nil {
			return nil, err
		}
		engine.IncrFetchRequests()
		resp, err := f.client.Do(ctx, "GET", pageURL, headers, nil)
		if err != nil {
			return nil, err
		}
		return f.parseResponse(pageURL, resp)
	})
	if err != nil {
		engine.IncrFetchErrors()
		return nil, fmt.Errorf("fetch %s: %w", pageURL, err)
	}
	return root, nil
}

func (f *Fetcher) parseResponse(pageURL string, resp *engine.Response) (*html.Node, error) {
	switch {
	case resp.Status >= 300 && resp.Status < 400:
		if loc := resp.Location(); isAuthRedirect(loc) {
			return nil, fmt.Errorf("%w: redirected to %s", ErrAuthRequired, loc)
		}
		return nil, &engine.StatusError{StatusCode: resp.Status, URL: pageURL}
	case resp.Status == 401 || resp.Status == 403 || resp.Status == 999:
		return nil, fmt.Errorf("%w: status %d", ErrAuthRequired, resp.Status)
	case resp.Status != 200:
		return nil, &engine.StatusError{StatusCode: resp.Status, URL: pageURL}
	}

	body := resp.Body
	if len(body) > f.opts.MaxPageBytes {
		slog.Warn("linkedin: page truncated",
			slog.String("url", pageURL),
			slog.Int("bytes", len(body)),
			slog.Int("limit", f.opts.MaxPageBytes))
		body = body[:f.opts.MaxPageBytes]
	}
	root, err := dom.Parse(bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", pageURL, err)
	}
	if isLoginPage(root) {
		return nil, fmt.Errorf("%w: login form served for %s", ErrAuthRequired, pageURL)
	}
	return root, nil
}

// authPaths are the redirect targets LinkedIn uses for signed-out or challenged sessions.
var authPaths = []string{"/authwall", "/login", "/uas/login", "/checkpoint", "/signup"}

func isAuthRedirect(location string) bool {
	loc := strings.ToLower(location)
	for _, p := range authPaths {
		if strings.Contains(loc, p) {
			return true
		}
	}
	return false
}

// isLoginPage detects a sign-in form served with status 200 in place of the page.
func isLoginPage(root *html.Node) bool {
	return dom.SelectFirst(root, `input[name="session_key"], form.login__form`) != nil
}
