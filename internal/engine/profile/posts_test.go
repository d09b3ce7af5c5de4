package profile

import (
	"strings"
	"testing"

	"github.com/anatolykoptev/go_profile/internal/engine/dom"
)

const searchPage = `<html><body><main><ul>
<li><div class="feed-shared-update-v2" data-urn="urn:li:activity:7100000000000000001">
  <a class="update-components-actor__container-link" href="/in/johnsmith?miniProfileUrn=abc">
    <span class="update-components-actor__title">John Smith</span>
  </a>
  <div class="update-components-text"><span>Hiring <strong>Go</strong> engineers</span></div>
</div></li>
<li><div class="feed-shared-update-v2">
  <a class="update-components-actor__container-link" href="https://www.linkedin.com/in/ann/">
    <span class="update-components-actor__title">Ann Lee</span>
  </a>
  <div class="update-components-text">Second post</div>
</div></li>
<li><div class="feed-shared-update-v2"><div>ad slot</div></div></li>
</ul></main></body></html>`

func TestExtractPosts(t *testing.T) {
	doc := dom.NewDocument("https://www.linkedin.com/search/results/content/?keywords=go", parse(t, searchPage))

	posts, err := NewExtractor().ExtractPosts(doc, 0)
	if err != nil {
		t.Fatalf("ExtractPosts() error = %v", err)
	}
	if len(posts) != 3 {
		t.Fatalf("len(posts) = %d, want 3", len(posts))
	}

	first := posts[0].Record
	if !strings.Contains(first.ContentMarkdown, "**Go**") {
		t.Errorf("ContentMarkdown = %q, want bold Go", first.ContentMarkdown)
	}
	first.ContentMarkdown = ""
	want := Post{
		PostNumber:        1,
		Name:              "John Smith",
		ProfileURL:        "https://www.linkedin.com/in/johnsmith",
		RecentActivityURL: "https://www.linkedin.com/in/johnsmith/recent-activity/all/",
		Content:           "Hiring Go engineers",
		PostURL:           "https://www.linkedin.com/feed/update/urn:li:activity:7100000000000000001",
	}
	if first != want {
		t.Errorf("first = %+v, want %+v", first, want)
	}

	second := posts[1].Record
	if second.PostURL != "https://www.linkedin.com/in/ann/" {
		t.Errorf("second PostURL = %q", second.PostURL)
	}
	if second.RecentActivityURL != "https://www.linkedin.com/in/ann/recent-activity/all/" {
		t.Errorf("second RecentActivityURL = %q", second.RecentActivityURL)
	}

	third := posts[2]
	if !third.Failed() {
		t.Fatal("ad slot should be a fault")
	}
	if third.Fault.Ordinal != 3 || third.Fault.Kind != KindPost {
		t.Errorf("fault = %+v, want ordinal 3 of kind %v", third.Fault, KindPost)
	}
}

func TestExtractPostsLimit(t *testing.T) {
	doc := dom.NewDocument("https://www.linkedin.com/search/results/content/", parse(t, searchPage))

	posts, err := NewExtractor().ExtractPosts(doc, 1)
	if err != nil {
		t.Fatalf("ExtractPosts() error = %v", err)
	}
	if len(posts) != 1 {
		t.Fatalf("len(posts) = %d, want 1", len(posts))
	}
	if got := posts[0].Record.Name; got != "John Smith" {
		t.Errorf("Name = %q, want John Smith", got)
	}
}

func TestExtractPostsNoCards(t *testing.T) {
	doc := dom.NewDocument("https://www.linkedin.com/search/results/content/", parse(t, `<main><p>No results</p></main>`))

	posts, err := NewExtractor().ExtractPosts(doc, 10)
	if err != nil {
		t.Fatalf("ExtractPosts() error = %v", err)
	}
	if posts == nil || len(posts) != 0 {
		t.Errorf("posts = %v, want empty non-nil", posts)
	}
}
