package profile

import (
	"strings"

	"github.com/anatolykoptev/go_profile/internal/engine/dom"
	"golang.org/x/net/html"
)

// contactField names the ContactInfo field a sub-section populates.
type contactField int

const (
	fieldNone contactField = iota
	fieldEmail
	fieldPhone
	fieldProfile
	fieldWebsites
	fieldTwitter
	fieldAddress
)

// contactRules maps header substrings to fields. Order matters: the first rule whose
// label occurs in the lowercased header wins.
var contactRules = []struct {
	labels []string
	field  contactField
}{
	{[]string{"email"}, fieldEmail},
	{[]string{"phone"}, fieldPhone},
	{[]string{"your profile", "linkedin"}, fieldProfile},
	{[]string{"website"}, fieldWebsites},
	{[]string{"twitter"}, fieldTwitter},
	{[]string{"address"}, fieldAddress},
}

// classifyContactHeader returns the field a contact header selects, or fieldNone.
func classifyContactHeader(header string) contactField {
	h := strings.ToLower(header)
	for _, r := range contactRules {
		for _, l := range r.labels {
			if strings.Contains(h, l) {
				return r.field
			}
		}
	}
	return fieldNone
}

// extractContactInfo returns nil when the contact overlay is not present.
func (x *Extractor) extractContactInfo(doc *dom.Document) *ContactInfo {
	root, err := x.locateSection(doc, x.vocab.Contact)
	if err != nil {
		return nil
	}

	info := &ContactInfo{}
	for i, sec := range dom.TopLevel(root, x.vocab.ContactSection) {
		// Faults here are logged and counted; ContactInfo has no list to carry them.
		isolate(x, KindContact, i+1, func() (struct{}, error) {
			return struct{}{}, x.contactSection(sec, info)
		})
	}
	return info
}

func (x *Extractor) contactSection(sec *html.Node, info *ContactInfo) error {
	header := dom.FindFirst(sec, x.vocab.ContactHeader)
	if header == nil {
		header = dom.FindFirst(sec, dom.Tag("h3"))
	}
	if header == nil {
		return itemError("contact section has no header")
	}

	switch classifyContactHeader(dom.Text(header)) {
	case fieldEmail:
		for _, a := range dom.FindAll(sec, dom.Tag("a")) {
			href := strings.TrimSpace(dom.AttrOr(a, "href"))
			if strings.HasPrefix(strings.ToLower(href), "mailto:") {
				info.Email = strings.TrimSpace(href[len("mailto:"):])
				break
			}
		}
	case fieldPhone:
		if li := dom.FindFirst(sec, dom.Tag("li")); li != nil {
			info.Phone = leafText(li, x.vocab)
		} else {
			info.Phone = valueText(sec, header)
		}
	case fieldProfile:
		info.ProfileURL = hrefOrText(sec, header)
	case fieldWebsites:
		seen := make(map[string]bool)
		for _, a := range dom.FindAll(sec, dom.Tag("a")) {
			href := strings.TrimSpace(dom.AttrOr(a, "href"))
			if href != "" && !seen[href] {
				seen[href] = true
				info.Websites = append(info.Websites, href)
			}
		}
	case fieldTwitter:
		info.Twitter = hrefOrText(sec, header)
	case fieldAddress:
		info.Address = valueText(sec, header)
	}
	return nil
}

// valueText is the section's text without its header.
func valueText(sec, header *html.Node) string {
	return strings.TrimSpace(strings.TrimPrefix(dom.Text(sec), dom.Text(header)))
}

func hrefOrText(sec, header *html.Node) string {
	if a := dom.FindFirst(sec, dom.Tag("a")); a != nil {
		if href := strings.TrimSpace(dom.AttrOr(a, "href")); href != "" {
			return href
		}
	}
	return valueText(sec, header)
}
