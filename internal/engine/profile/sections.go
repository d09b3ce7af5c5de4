package profile

import (
	"github.com/anatolykoptev/go_profile/internal/engine/dom"
	"golang.org/x/net/html"
)

func (x *Extractor) extractInterests(doc *dom.Document) []Entry[Interest] {
	match := append(dom.Any{}, x.vocab.InterestItem...)
	match = append(match, x.vocab.ListItem...)

	items := x.sectionItems(doc, KindInterest, x.vocab.Interests, match)
	out := make([]Entry[Interest], 0, len(items))
	for i, item := range items {
		out = append(out, isolate(x, KindInterest, i+1, func() (Interest, error) {
			return x.interest(item)
		}))
	}
	return out
}

// interest takes the heading of a card, or the first cluster line of a details-page item.
func (x *Extractor) interest(item *html.Node) (Interest, error) {
	var title string
	if h := dom.FindFirst(item, x.vocab.InterestTitle); h != nil {
		title = dom.Text(h)
	} else if parts, err := splitEntry(item, x.vocab); err == nil {
		title = parts.texts[0]
	} else {
		title = leafText(item, x.vocab)
	}
	if title == "" {
		return Interest{}, itemError("interest has no title")
	}
	return Interest{Title: title}, nil
}

// extractAccomplishments emits one record per listed title, numbered across all
// category blocks. A block missing its heading or list takes one faulted slot.
func (x *Extractor) extractAccomplishments(doc *dom.Document) []Entry[Accomplishment] {
	root, err := x.locateSection(doc, x.vocab.Accomplishments)
	if err != nil {
		return []Entry[Accomplishment]{}
	}

	var out []Entry[Accomplishment]
	for _, block := range dom.TopLevel(root, x.vocab.AccomplishmentBlock) {
		header := dom.FindFirst(block, x.vocab.AccomplishmentTitle)
		list := dom.FindFirst(block, dom.Tag("ul"))
		if header == nil || list == nil {
			out = append(out, isolate(x, KindAccomplishment, len(out)+1, func() (Accomplishment, error) {
				return Accomplishment{}, itemError("accomplishment block has no category heading or title list")
			}))
			continue
		}
		category := dom.Text(header)
		for _, li := range dom.TopLevel(list, dom.Tag("li")) {
			out = append(out, isolate(x, KindAccomplishment, len(out)+1, func() (Accomplishment, error) {
				title := dom.Text(li)
				if title == "" {
					return Accomplishment{}, itemError("accomplishment title is empty")
				}
				return Accomplishment{Category: category, Title: title}, nil
			}))
		}
	}
	if out == nil {
		return []Entry[Accomplishment]{}
	}
	return out
}
