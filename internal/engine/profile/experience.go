package profile

import (
	"strings"

	"github.com/anatolykoptev/go_profile/internal/engine/dom"
	"golang.org/x/net/html"
)

// entryParts are the structural pieces shared by experience and education items:
// the organization logo link, the summary cluster and the optional detail node.
type entryParts struct {
	orgURL string
	texts  []string
	detail *html.Node
}

// splitEntry walks item → entity → [logo, details] → [summary, detail?] → cluster.
// Every step that is missing is an item fault.
func splitEntry(item *html.Node, v Vocabulary) (entryParts, error) {
	entity := item
	if !v.Entity.IsZero() && !v.Entity.Match(item) {
		entity = dom.FindFirst(item, v.Entity)
	}
	if entity == nil {
		return entryParts{}, itemError("entity container %s not found", v.Entity)
	}

	kids := dom.Children(entity)
	if len(kids) < 2 {
		return entryParts{}, itemError("expected logo and details nodes, found %d child node(s)", len(kids))
	}
	logo, details := kids[0], kids[1]

	parts := entryParts{orgURL: firstHref(logo)}

	detailKids := dom.Children(details)
	if len(detailKids) == 0 {
		return entryParts{}, itemError("details node is empty")
	}
	summary := detailKids[0]
	if len(detailKids) > 1 {
		parts.detail = detailKids[1]
	}

	cluster := dom.FirstChild(summary)
	if cluster == nil {
		return entryParts{}, itemError("summary node has no cluster")
	}
	parts.texts = clusterTexts(cluster, v)
	if len(parts.texts) == 0 {
		return entryParts{}, itemError("cluster has no sub-nodes")
	}
	return parts, nil
}

// firstHref returns the first anchor target under n (n included) without its query string.
func firstHref(n *html.Node) string {
	a := n
	if !dom.Tag("a").Match(n) {
		a = dom.FindFirst(n, dom.Tag("a"))
	}
	href, ok := dom.Attr(a, "href")
	if !ok {
		return ""
	}
	return stripQuery(href)
}

func stripQuery(href string) string {
	href, _, _ = strings.Cut(strings.TrimSpace(href), "?")
	return href
}

func (x *Extractor) extractExperiences(doc *dom.Document) []Entry[Experience] {
	items := x.sectionItems(doc, KindExperience, x.vocab.Experience, x.vocab.ListItem)
	out := make([]Entry[Experience], 0, len(items))
	for i, item := range items {
		ordinal := i + 1
		out = append(out, isolate(x, KindExperience, ordinal, func() (Experience, error) {
			return x.experience(item, ordinal)
		}))
	}
	return out
}

func (x *Extractor) experience(item *html.Node, ordinal int) (Experience, error) {
	parts, err := splitEntry(item, x.vocab)
	if err != nil {
		return Experience{}, err
	}
	c := ResolveCluster(parts.texts, x.vocab.Separator)

	exp := Experience{
		Ordinal:     ordinal,
		Institution: Institution{Name: c.Organization, URL: parts.orgURL},
		Title:       c.Title,
		DateRange:   ParseDateRange(c.Dates, x.vocab.Separator),
		Location:    c.Location,
		Description: ResolveDescription(parts.detail, x.vocab),
	}
	if parts.detail != nil {
		if nested := nestedItems(parts.detail, x.vocab); len(nested) > 1 {
			exp.Positions = x.positions(nested)
		}
	}
	return exp, nil
}

// positions reads the roles listed under one employer. Each nested item's cluster is
// [title, dates, location?].
func (x *Extractor) positions(items []*html.Node) []Position {
	out := make([]Position, 0, len(items))
	for _, it := range items {
		holder := dom.FindFirst(it, dom.Tag("a"))
		if holder == nil {
			holder = dom.FirstChild(it)
		}
		texts := clusterTexts(holder, x.vocab)
		if len(texts) == 0 {
			continue
		}
		p := Position{Title: texts[0]}
		if len(texts) > 1 {
			p.DateRange = ParseDateRange(texts[1], x.vocab.Separator)
		}
		if len(texts) > 2 {
			p.Location = texts[2]
		}
		out = append(out, p)
	}
	return out
}
