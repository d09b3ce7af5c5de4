package profile

import (
	"strings"

	"github.com/anatolykoptev/go_profile/internal/engine/dom"
)

func (x *Extractor) extractBasicInfo(doc *dom.Document) BasicInfo {
	e := isolate(x, KindBasic, 1, func() (BasicInfo, error) {
		return x.basicInfo(doc), nil
	})
	return e.Record
}

func (x *Extractor) basicInfo(doc *dom.Document) BasicInfo {
	root := doc.Root()
	info := BasicInfo{
		Name:     dom.Text(dom.SelectFirst(root, x.vocab.Name)),
		Headline: dom.Text(dom.SelectFirst(root, x.vocab.Headline)),
		Location: dom.Text(dom.SelectFirst(root, x.vocab.Location)),
		About:    x.about(doc),
	}
	if pic := dom.SelectFirst(root, x.vocab.ProfilePicture); pic != nil && x.vocab.OpenToWorkMarker != "" {
		info.OpenToWork = strings.Contains(dom.AttrOr(pic, "title"), x.vocab.OpenToWorkMarker)
	}
	return info
}

// about returns the text of the about section without its heading. The section repeats
// text for screen readers, so visible spans are preferred; the first one is the heading.
func (x *Extractor) about(doc *dom.Document) string {
	sec, err := x.locateSection(doc, x.vocab.About)
	if err != nil {
		return ""
	}
	if !x.vocab.VisibleText.IsZero() {
		spans := dom.FindAll(sec, x.vocab.VisibleText)
		if len(spans) > 1 {
			parts := make([]string, 0, len(spans)-1)
			for _, s := range spans[1:] {
				if t := dom.Text(s); t != "" {
					parts = append(parts, t)
				}
			}
			return strings.Join(parts, "\n")
		}
	}
	text := dom.Text(sec)
	if h := dom.FindFirst(sec, dom.Tag("h2")); h != nil {
		text = strings.TrimSpace(strings.TrimPrefix(text, dom.Text(h)))
	}
	return text
}
