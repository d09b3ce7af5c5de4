package profile

import (
	"regexp"
	"strings"

	"github.com/anatolykoptev/go_profile/internal/engine/dom"
	"golang.org/x/net/html"
)

var yearRe = regexp.MustCompile(`\b(19|20)\d{2}\b`)

// looksLikeDates reports whether a line is a bare date range such as "2015 - 2019".
// It lets a two-line cluster without a degree keep its dates.
func looksLikeDates(s string) bool {
	if !yearRe.MatchString(s) {
		return false
	}
	for _, tok := range strings.Fields(s) {
		if hyphens[tok] {
			return true
		}
	}
	return len(strings.Fields(s)) <= 2
}

func (x *Extractor) extractEducations(doc *dom.Document) []Entry[Education] {
	items := x.sectionItems(doc, KindEducation, x.vocab.Education, x.vocab.ListItem)
	out := make([]Entry[Education], 0, len(items))
	for i, item := range items {
		out = append(out, isolate(x, KindEducation, i+1, func() (Education, error) {
			return x.education(item)
		}))
	}
	return out
}

// education maps the cluster [institution, degree?, dates?].
func (x *Extractor) education(item *html.Node) (Education, error) {
	parts, err := splitEntry(item, x.vocab)
	if err != nil {
		return Education{}, err
	}
	texts := parts.texts
	if texts[0] == "" {
		return Education{}, itemError("institution name is empty")
	}

	edu := Education{
		Institution: Institution{Name: texts[0], URL: parts.orgURL},
		Description: ResolveDescription(parts.detail, x.vocab),
	}
	switch {
	case len(texts) == 2 && looksLikeDates(texts[1]):
		edu.DateRange = ParseDateRange(texts[1], x.vocab.Separator)
	case len(texts) >= 2:
		edu.Degree = texts[1]
	}
	if len(texts) > 2 {
		edu.DateRange = ParseDateRange(texts[2], x.vocab.Separator)
	}
	return edu, nil
}
