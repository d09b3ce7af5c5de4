// Package profileserver exposes profile and post extraction as MCP tools.
package profileserver

import (
	"errors"

	"github.com/anatolykoptev/go_profile/internal/engine/linkedin"
	"github.com/anatolykoptev/go_profile/internal/engine/profile"
	"github.com/anatolykoptev/go_profile/internal/engine/store"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// errFetchDisabled is returned when a tool needs the network but no fetcher is configured.
var errFetchDisabled = errors.New("network fetching is disabled; pass html instead")

// Deps are the collaborators shared by all tools. Fetcher and Store may be nil.
type Deps struct {
	Extractor *profile.Extractor
	Fetcher   *linkedin.Fetcher
	Store     *store.Store
	BaseURL   string
}

// Tools holds the handlers behind the registered MCP tools.
type Tools struct {
	d Deps
}

// NewTools builds handlers over d.
func NewTools(d Deps) *Tools {
	if d.Extractor == nil {
		d.Extractor = profile.NewExtractor()
	}
	if d.BaseURL == "" && d.Fetcher != nil {
		d.BaseURL = d.Fetcher.BaseURL()
	}
	return &Tools{d: d}
}

// RegisterTools registers linkedin_profile, linkedin_posts and, when a store is
// configured, linkedin_profile_history. It returns the number of tools registered.
func RegisterTools(server *mcp.Server, d Deps) int {
	t := NewTools(d)
	registerProfile(server, t)
	registerPosts(server, t)
	if t.d.Store == nil {
		return 2
	}
	registerHistory(server, t)
	return 3
}
