package engine

import (
	"time"
)

// Config holds all engine configuration, injected from main.
type Config struct {
	LinkedInBaseURL      string
	SessionCookie        string        // li_at value; empty = profile fetching disabled
	Subpages             []string      // profile sub-paths fetched after the main page
	FetchTimeout         time.Duration
	FetchRatePerMin      int
	CacheMaxEntries      int
	CacheCleanupInterval time.Duration
	StorePath            string
	BrowserClient        *BrowserClient // nil = network acquisition disabled
}

// DefaultSubpages are the profile sub-pages that carry full section lists.
var DefaultSubpages = []string{
	"details/experience/",
	"details/education/",
	"details/interests/",
	"overlay/contact-info/",
}

var cfg Config

// Cfg exposes the engine configuration for sub-packages (linkedin, store).
// Always points to the current cfg value.
var Cfg = &cfg

// Init initializes the engine with the given configuration.
func Init(c Config) {
	if c.LinkedInBaseURL == "" {
		c.LinkedInBaseURL = "https://www.linkedin.com"
	}
	subpages := c.Subpages[:0:0]
	for _, p := range c.Subpages {
		if p != "" {
			subpages = append(subpages, p)
		}
	}
	c.Subpages = subpages
	if len(c.Subpages) == 0 {
		c.Subpages = DefaultSubpages
	}
	cfg = c
	Cfg = &cfg
}

// FetchEnabled reports whether pages can be fetched over the network. A request may
// still supply its own session cookie when none is configured.
func (c *Config) FetchEnabled() bool {
	return c.BrowserClient != nil
}
