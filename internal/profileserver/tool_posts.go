package profileserver

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/anatolykoptev/go_profile/internal/engine"
	"github.com/anatolykoptev/go_profile/internal/engine/dom"
	"github.com/anatolykoptev/go_profile/internal/toolutil"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

func registerPosts(server *mcp.Server, t *Tools) {
	mcp.AddTool(server, &mcp.Tool{
		Name:        "linkedin_posts",
		Description: "Search LinkedIn content for a keyword and return the posts on the results page: author name, profile_url, recent_activity_url, content (plain and markdown) and post_url. A post that fails to parse appears as {post_number, error}.",
		Annotations: &mcp.ToolAnnotations{ReadOnlyHint: true},
	}, func(ctx context.Context, req *mcp.CallToolRequest, input PostsInput) (*mcp.CallToolResult, PostsOutput, error) {
		out, err := t.Posts(ctx, input)
		return nil, out, err
	})
}

// Posts runs the linkedin_posts tool.
func (t *Tools) Posts(ctx context.Context, in PostsInput) (PostsOutput, error) {
	keyword := strings.TrimSpace(in.Keyword)
	if keyword == "" {
		return PostsOutput{}, errors.New("keyword is required")
	}
	if in.MaxPosts < 0 {
		return PostsOutput{}, errors.New("max_posts must not be negative")
	}

	var results []map[string]any
	err := engine.TrackOperation(ctx, "linkedin_posts", func(ctx context.Context) error {
		var doc *dom.Document
		if in.HTML != "" {
			root, err := dom.ParseString(in.HTML)
			if err != nil {
				return fmt.Errorf("parse html: %w", err)
			}
			doc = dom.NewDocument("", root)
		} else {
			if t.d.Fetcher == nil {
				return errFetchDisabled
			}
			var err error
			doc, err = t.d.Fetcher.WithSessionCookie(in.SessionCookie).FetchSearch(ctx, keyword)
			if err != nil {
				return err
			}
		}

		entries, err := t.d.Extractor.ExtractPosts(doc, in.MaxPosts)
		if err != nil {
			return err
		}
		results = make([]map[string]any, 0, len(entries))
		for _, e := range entries {
			if e.Failed() {
				results = append(results, map[string]any{"post_number": e.Ordinal, "error": e.Fault.Error})
				continue
			}
			m, err := toolutil.ToMap(e.Record)
			if err != nil {
				return fmt.Errorf("encode post %d: %w", e.Ordinal, err)
			}
			results = append(results, m)
		}
		return nil
	})
	if err != nil {
		return PostsOutput{}, err
	}

	engine.IncrPostExtractions()
	return PostsOutput{
		Status:    "success",
		Keyword:   keyword,
		PostCount: len(results),
		Results:   results,
	}, nil
}
