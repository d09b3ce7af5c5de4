// go_profile: LinkedIn profile and post extraction MCP server.
//
// Exposes linkedin_profile, linkedin_posts and linkedin_profile_history.
// Profiles are fetched with a member session cookie or parsed from captured HTML.
package main

import (
	"errors"
	"log/slog"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"time"

	"github.com/anatolykoptev/go-kit/env"
	"github.com/anatolykoptev/go-mcpserver"
	"github.com/anatolykoptev/go_profile/internal/engine"
	"github.com/anatolykoptev/go_profile/internal/engine/linkedin"
	"github.com/anatolykoptev/go_profile/internal/engine/profile"
	"github.com/anatolykoptev/go_profile/internal/engine/store"
	"github.com/anatolykoptev/go_profile/internal/profileserver"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

var (
	version = "dev"
	mcpPort = env.Str("MCP_PORT", "8893")
)

func main() {
	extractor := newExtractor()
	initEngine(extractor.Vocabulary())

	slog.Info("starting go_profile",
		slog.String("port", mcpPort),
		slog.Bool("fetch", engine.Cfg.SessionCookie != ""),
	)

	snapshots := openStore(engine.Cfg.StorePath)
	if snapshots != nil {
		defer snapshots.Close()
	}

	server := mcp.NewServer(&mcp.Implementation{
		Name:    "go_profile",
		Version: version,
	}, nil)

	n := profileserver.RegisterTools(server, profileserver.Deps{
		Extractor: extractor,
		Fetcher:   linkedin.FromConfig(engine.Cfg),
		Store:     snapshots,
		BaseURL:   engine.Cfg.LinkedInBaseURL,
	})
	slog.Info("tools registered", slog.Int("count", n))

	if err := mcpserver.Run(server, mcpserver.Config{
		Name:         "go_profile",
		Version:      version,
		Port:         mcpPort,
		WriteTimeout: 300 * time.Second,
		Metrics:      engine.FormatMetrics,
	}); err != nil {
		slog.Error("server failed", slog.Any("error", err))
	}
}

// initEngine fetches the sub-pages the vocabulary reads from unless PROFILE_SUBPAGES
// overrides them.
func initEngine(vocab profile.Vocabulary) {
	subpages := slices.DeleteFunc(env.List("PROFILE_SUBPAGES", ""), func(p string) bool {
		return strings.TrimSpace(p) == ""
	})
	if len(subpages) == 0 {
		subpages = vocab.Subpages()
	}

	c := engine.Config{
		LinkedInBaseURL:      env.Str("LINKEDIN_BASE_URL", "https://www.linkedin.com"),
		SessionCookie:        env.Str("LINKEDIN_SESSION_COOKIE", ""),
		Subpages:             subpages,
		FetchTimeout:         env.Duration("FETCH_TIMEOUT", 20*time.Second),
		FetchRatePerMin:      env.Int("FETCH_RATE_PER_MIN", 20),
		CacheMaxEntries:      env.Int("CACHE_MAX_ENTRIES", 500),
		CacheCleanupInterval: env.Duration("CACHE_CLEANUP_INTERVAL", 300*time.Second),
		StorePath:            env.Str("STORE_PATH", defaultStorePath()),
	}

	bc, err := engine.NewBrowserClient(c.FetchTimeout)
	if err != nil {
		slog.Error("browser client init failed, fetching disabled", slog.Any("error", err))
	} else {
		c.BrowserClient = bc
		slog.Info("browser client initialized")
	}

	engine.Init(c)

	cacheTTL := env.Duration("CACHE_TTL", engine.CacheTTL)
	engine.InitCache(env.Str("REDIS_URL", ""), cacheTTL, c.CacheMaxEntries, c.CacheCleanupInterval)
}

func newExtractor() *profile.Extractor {
	opts := []profile.Option{
		profile.WithFaultHook(func(k profile.Kind) { engine.CountItemFault(k.String()) }),
		profile.WithWaitTimeout(env.Duration("EXTRACT_WAIT_TIMEOUT", profile.DefaultWaitTimeout)),
	}
	if path := env.Str("VOCABULARY_FILE", ""); path != "" {
		v, err := profile.LoadVocabulary(path)
		switch {
		case err == nil:
			opts = append(opts, profile.WithVocabulary(v))
			slog.Info("vocabulary loaded", slog.String("path", path))
		case errors.Is(err, profile.ErrVocabularyNotFound):
			slog.Warn("vocabulary file not found, using defaults", slog.String("path", path))
		default:
			slog.Warn("vocabulary file invalid, using defaults", slog.String("path", path), slog.Any("error", err))
		}
	}
	return profile.NewExtractor(opts...)
}

func openStore(path string) *store.Store {
	if path == "" {
		return nil
	}
	s, err := store.Open(path)
	if err != nil {
		slog.Warn("snapshot store init failed, history disabled", slog.Any("error", err))
		return nil
	}
	slog.Info("snapshot store initialized", slog.String("path", path))
	return s
}

func defaultStorePath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".go_profile", "snapshots.db")
}
