package profileserver

// ProfileInput is the input for the linkedin_profile tool.
type ProfileInput struct {
	URL           string            `json:"url,omitempty" jsonschema:"LinkedIn profile URL (https://www.linkedin.com/in/<slug>/)"`
	Username      string            `json:"username,omitempty" jsonschema:"Profile slug, used when url is empty"`
	HTML          string            `json:"html,omitempty" jsonschema:"Already captured main profile page HTML. Skips network fetch and cache"`
	Pages         map[string]string `json:"pages,omitempty" jsonschema:"Captured sub-page HTML keyed by path, e.g. details/experience/"`
	SessionCookie string            `json:"session_cookie,omitempty" jsonschema:"li_at cookie for this request, overrides the server cookie"`
	Refresh       bool              `json:"refresh,omitempty" jsonschema:"Bypass the cache and fetch again"`
}

// ProfileOutput is the result of linkedin_profile.
type ProfileOutput struct {
	URL        string         `json:"url,omitempty"`
	Cached     bool           `json:"cached"`
	FaultCount int            `json:"fault_count"`
	SnapshotID int64          `json:"snapshot_id,omitempty"`
	Profile    map[string]any `json:"profile"`
}

// PostsInput is the input for the linkedin_posts tool.
type PostsInput struct {
	Keyword       string `json:"keyword" jsonschema:"Search keyword for LinkedIn content search"`
	MaxPosts      int    `json:"max_posts,omitempty" jsonschema:"Maximum number of posts to return (0 = all on the page)"`
	HTML          string `json:"html,omitempty" jsonschema:"Already captured search results HTML. Skips network fetch"`
	SessionCookie string `json:"session_cookie,omitempty" jsonschema:"li_at cookie for this request, overrides the server cookie"`
}

// PostsOutput is the result of linkedin_posts. Failed posts appear in results as
// {post_number, error}.
type PostsOutput struct {
	Status    string           `json:"status"`
	Keyword   string           `json:"keyword"`
	PostCount int              `json:"post_count"`
	Results   []map[string]any `json:"results"`
}

// HistoryInput is the input for the linkedin_profile_history tool.
type HistoryInput struct {
	URL            string `json:"url,omitempty" jsonschema:"LinkedIn profile URL"`
	Username       string `json:"username,omitempty" jsonschema:"Profile slug, used when url is empty"`
	Limit          int    `json:"limit,omitempty" jsonschema:"Maximum snapshots to return (default 20, max 100)"`
	IncludeProfile bool   `json:"include_profile,omitempty" jsonschema:"Include the full profile mapping of each snapshot"`
}

// HistoryEntry summarizes one stored snapshot.
type HistoryEntry struct {
	ID         int64          `json:"id"`
	CapturedAt string         `json:"captured_at"`
	Name       string         `json:"name,omitempty"`
	Headline   string         `json:"headline,omitempty"`
	Company    string         `json:"company,omitempty"`
	JobTitle   string         `json:"job_title,omitempty"`
	FaultCount int            `json:"fault_count"`
	Profile    map[string]any `json:"profile,omitempty"`
}

// HistoryOutput is the result of linkedin_profile_history.
type HistoryOutput struct {
	URL       string         `json:"url"`
	Total     int            `json:"total"`
	Snapshots []HistoryEntry `json:"snapshots"`
}
