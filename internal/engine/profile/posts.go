package profile

import (
	"fmt"
	"log/slog"
	"strings"

	htmltomarkdown "github.com/JohannesKaufmann/html-to-markdown/v2"
	"github.com/anatolykoptev/go_profile/internal/engine/dom"
	"golang.org/x/net/html"
)

const activityURNPrefix = "urn:li:activity:"

// ExtractPosts reads the post cards of a content search results page.
// limit <= 0 keeps every card. Like ExtractProfile, only an unreadable document is an error.
func (x *Extractor) ExtractPosts(doc *dom.Document, limit int) ([]Entry[Post], error) {
	if err := checkDocument(doc); err != nil {
		return nil, err
	}

	cards := dom.TopLevel(doc.Root(), x.vocab.PostItem)
	if limit > 0 && len(cards) > limit {
		cards = cards[:limit]
	}

	out := make([]Entry[Post], 0, len(cards))
	for i, card := range cards {
		ordinal := i + 1
		out = append(out, isolate(x, KindPost, ordinal, func() (Post, error) {
			return x.post(card, ordinal)
		}))
	}
	x.log.Debug("profile: posts extracted", slog.Int("count", len(out)), slog.Int("faults", len(Faults(out))))
	return out, nil
}

func (x *Extractor) post(card *html.Node, ordinal int) (Post, error) {
	p := Post{PostNumber: ordinal}

	if n := dom.FindFirst(card, x.vocab.PostActor); n != nil {
		p.Name = dom.Text(n)
	}

	if a := dom.FindFirst(card, dom.Matcher{Tag: "a", AttrKey: "href", AttrContains: "/in/"}); a != nil {
		p.ProfileURL = x.absURL(stripQuery(dom.AttrOr(a, "href")))
		p.RecentActivityURL = strings.TrimRight(p.ProfileURL, "/") + "/recent-activity/all/"
	}

	if n := dom.FindFirst(card, x.vocab.PostContent); n != nil {
		p.Content = dom.Text(n)
		p.ContentMarkdown = contentMarkdown(n)
	}

	p.PostURL = x.postURL(card)

	if p.Name == "" && p.Content == "" && p.PostURL == "" {
		return Post{}, itemError("post card has no author, content or link")
	}
	return p, nil
}

// postURL prefers the activity URN on the card and falls back to the actor link.
func (x *Extractor) postURL(card *html.Node) string {
	if urn, ok := dom.Attr(card, x.vocab.PostURNAttr); ok && strings.Contains(urn, activityURNPrefix) {
		parts := strings.Split(urn, activityURNPrefix)
		return fmt.Sprintf("%s/feed/update/%s%s", x.vocab.BaseURL, activityURNPrefix, parts[len(parts)-1])
	}
	if a := dom.FindFirst(card, x.vocab.PostActorLink); a != nil {
		if href, ok := dom.Attr(a, "href"); ok && href != "" {
			return x.absURL(href)
		}
	}
	return ""
}

// contentMarkdown renders the content node as Markdown, or "" when conversion fails.
func contentMarkdown(n *html.Node) string {
	raw, err := dom.Render(n)
	if err != nil {
		return ""
	}
	md, err := htmltomarkdown.ConvertString(raw)
	if err != nil {
		return ""
	}
	return strings.TrimSpace(md)
}

// absURL resolves a site-relative link against the vocabulary's base URL.
func (x *Extractor) absURL(href string) string {
	if strings.HasPrefix(href, "/") {
		return x.vocab.BaseURL + href
	}
	return href
}
