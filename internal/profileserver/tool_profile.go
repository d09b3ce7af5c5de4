package profileserver

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/anatolykoptev/go_profile/internal/engine"
	"github.com/anatolykoptev/go_profile/internal/engine/dom"
	"github.com/anatolykoptev/go_profile/internal/engine/linkedin"
	"github.com/anatolykoptev/go_profile/internal/engine/profile"
	"github.com/anatolykoptev/go_profile/internal/toolutil"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

func registerProfile(server *mcp.Server, t *Tools) {
	mcp.AddTool(server, &mcp.Tool{
		Name:        "linkedin_profile",
		Description: "Extract a LinkedIn profile into structured JSON: basic_info (name, headline, location, about, open_to_work, company, job_title), contact_info, experiences, educations, interests and accomplishments. Fetches the profile with the configured session cookie, or parses captured HTML passed in html/pages. Items that fail to parse appear as {ordinal, error} in their list.",
		Annotations: &mcp.ToolAnnotations{ReadOnlyHint: true},
	}, func(ctx context.Context, req *mcp.CallToolRequest, input ProfileInput) (*mcp.CallToolResult, ProfileOutput, error) {
		out, err := t.Profile(ctx, input)
		return nil, out, err
	})
}

// Profile runs the linkedin_profile tool.
func (t *Tools) Profile(ctx context.Context, in ProfileInput) (ProfileOutput, error) {
	target := strings.TrimSpace(in.URL)
	if target == "" {
		target = strings.TrimSpace(in.Username)
	}
	if target == "" && in.HTML == "" {
		return ProfileOutput{}, errors.New("url or username is required")
	}

	var profileURL string
	if target != "" {
		u, err := linkedin.ProfileURL(t.d.BaseURL, target)
		if err != nil {
			return ProfileOutput{}, err
		}
		profileURL = u
	}

	var (
		snap   *profile.Snapshot
		cached bool
	)
	err := engine.TrackOperation(ctx, "linkedin_profile", func(ctx context.Context) error {
		if in.HTML != "" {
			doc, err := capturedDocument(profileURL, in.HTML, in.Pages)
			if err != nil {
				return err
			}
			snap, err = t.d.Extractor.ExtractProfile(doc)
			return err
		}

		if t.d.Fetcher == nil {
			return errFetchDisabled
		}
		key := engine.CacheKey("profile", profileURL)
		if !in.Refresh {
			if s, ok := toolutil.CacheLoadJSON[profile.Snapshot](ctx, key); ok {
				s.URL = profileURL
				snap, cached = &s, true
				return nil
			}
		}
		doc, err := t.d.Fetcher.WithSessionCookie(in.SessionCookie).FetchProfile(ctx, profileURL)
		if err != nil {
			return err
		}
		snap, err = t.d.Extractor.ExtractProfile(doc)
		if err != nil {
			return err
		}
		toolutil.CacheStoreJSON(ctx, key, snap)
		return nil
	})
	if err != nil {
		return ProfileOutput{}, err
	}

	out := ProfileOutput{URL: profileURL, Cached: cached, FaultCount: snap.FaultCount()}
	if !cached {
		engine.IncrProfileExtractions()
		out.SnapshotID = t.record(ctx, profileURL, snap)
	}
	if out.Profile, err = toolutil.ToMap(snap); err != nil {
		return ProfileOutput{}, fmt.Errorf("encode profile: %w", err)
	}
	return out, nil
}

// record saves a fresh snapshot to the history store. Store failures are logged, not
// returned: the extraction itself succeeded.
func (t *Tools) record(ctx context.Context, profileURL string, snap *profile.Snapshot) int64 {
	if t.d.Store == nil || profileURL == "" {
		return 0
	}
	rec, created, err := t.d.Store.Save(ctx, profileURL, snap)
	if err != nil {
		slog.Warn("profile: snapshot not stored", slog.String("url", profileURL), slog.Any("error", err))
		return 0
	}
	if created {
		engine.IncrSnapshotsStored()
	}
	return rec.ID
}

// capturedDocument assembles a Document from caller-supplied HTML.
func capturedDocument(url, mainHTML string, pages map[string]string) (*dom.Document, error) {
	root, err := dom.ParseString(mainHTML)
	if err != nil {
		return nil, fmt.Errorf("parse html: %w", err)
	}
	doc := dom.NewDocument(url, root)
	for path, src := range pages {
		page, err := dom.ParseString(src)
		if err != nil {
			return nil, fmt.Errorf("parse page %s: %w", path, err)
		}
		doc.WithPage(path, page)
	}
	return doc, nil
}
