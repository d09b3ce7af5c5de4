package profileserver

import (
	"context"
	"errors"
	"strings"

	"github.com/anatolykoptev/go_profile/internal/engine/linkedin"
	"github.com/anatolykoptev/go_profile/internal/toolutil"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

func registerHistory(server *mcp.Server, t *Tools) {
	mcp.AddTool(server, &mcp.Tool{
		Name:        "linkedin_profile_history",
		Description: "List stored snapshots of a LinkedIn profile, newest first, with name, headline, company, job_title and fault count per snapshot. Set include_profile to get each full profile mapping.",
		Annotations: &mcp.ToolAnnotations{ReadOnlyHint: true},
	}, func(ctx context.Context, req *mcp.CallToolRequest, input HistoryInput) (*mcp.CallToolResult, HistoryOutput, error) {
		out, err := t.History(ctx, input)
		return nil, out, err
	})
}

// History runs the linkedin_profile_history tool.
func (t *Tools) History(ctx context.Context, in HistoryInput) (HistoryOutput, error) {
	if t.d.Store == nil {
		return HistoryOutput{}, errors.New("snapshot store is not configured")
	}
	target := strings.TrimSpace(in.URL)
	if target == "" {
		target = strings.TrimSpace(in.Username)
	}
	if target == "" {
		return HistoryOutput{}, errors.New("url or username is required")
	}
	profileURL, err := linkedin.ProfileURL(t.d.BaseURL, target)
	if err != nil {
		return HistoryOutput{}, err
	}

	recs, err := t.d.Store.List(ctx, profileURL, in.Limit, in.IncludeProfile)
	if err != nil {
		return HistoryOutput{}, err
	}
	out := HistoryOutput{URL: profileURL, Total: len(recs), Snapshots: make([]HistoryEntry, 0, len(recs))}
	for _, r := range recs {
		e := HistoryEntry{
			ID:         r.ID,
			CapturedAt: r.CapturedAt,
			Name:       r.Name,
			Headline:   r.Headline,
			Company:    r.Company,
			JobTitle:   r.JobTitle,
			FaultCount: r.FaultCount,
		}
		if in.IncludeProfile && len(r.Profile) > 0 {
			snap, err := r.Snapshot()
			if err != nil {
				return HistoryOutput{}, err
			}
			if e.Profile, err = toolutil.ToMap(snap); err != nil {
				return HistoryOutput{}, err
			}
		}
		out.Snapshots = append(out.Snapshots, e)
	}
	return out, nil
}
