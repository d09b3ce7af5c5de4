package profile

import (
	"errors"
	"fmt"
	"os"
	"slices"

	"github.com/anatolykoptev/go_profile/internal/engine/dom"
	"gopkg.in/yaml.v3"
)

// ErrVocabularyNotFound is returned when the vocabulary file does not exist.
var ErrVocabularyNotFound = errors.New("vocabulary file not found")

// Section says where a section's item list lives. Lookup tries Path (a sub-page of the
// profile), then AnchorID on the main page, then Selector, then a bounded wait for Wait.
type Section struct {
	Path     string      `yaml:"path,omitempty"`
	AnchorID string      `yaml:"anchor_id,omitempty"`
	Selector string      `yaml:"selector,omitempty"`
	Wait     dom.Matcher `yaml:"wait,omitempty"`
}

// Vocabulary is the site-specific markup the extractors consume.
// None of it is hardcoded in extraction logic.
type Vocabulary struct {
	Experience      Section `yaml:"experience"`
	Education       Section `yaml:"education"`
	Interests       Section `yaml:"interests"`
	Accomplishments Section `yaml:"accomplishments"`
	Contact         Section `yaml:"contact"`
	About           Section `yaml:"about"`

	ListItem      dom.Any     `yaml:"list_item"`
	ListContainer string      `yaml:"list_container"`
	Entity        dom.Matcher `yaml:"entity"`
	VisibleText   dom.Matcher `yaml:"visible_text"`
	Separator     string      `yaml:"separator"`

	InterestItem        dom.Any     `yaml:"interest_item"`
	InterestTitle       dom.Matcher `yaml:"interest_title"`
	AccomplishmentBlock dom.Any     `yaml:"accomplishment_block"`
	AccomplishmentTitle dom.Matcher `yaml:"accomplishment_title"`

	ContactSection dom.Any     `yaml:"contact_section"`
	ContactHeader  dom.Matcher `yaml:"contact_header"`

	Name             string `yaml:"name"`
	Headline         string `yaml:"headline"`
	Location         string `yaml:"location"`
	ProfilePicture   string `yaml:"profile_picture"`
	OpenToWorkMarker string `yaml:"open_to_work_marker"`

	BaseURL       string      `yaml:"base_url"`
	PostItem      dom.Matcher `yaml:"post_item"`
	PostActor     dom.Matcher `yaml:"post_actor"`
	PostActorLink dom.Matcher `yaml:"post_actor_link"`
	PostContent   dom.Matcher `yaml:"post_content"`
	PostURNAttr   string      `yaml:"post_urn_attr"`
}

// DefaultVocabulary describes LinkedIn's profile markup.
func DefaultVocabulary() Vocabulary {
	return Vocabulary{
		Experience: Section{Path: "details/experience/", AnchorID: "experience"},
		Education:  Section{Path: "details/education/", AnchorID: "education"},
		Interests: Section{
			Path:     "details/interests/",
			AnchorID: "interests",
			Selector: "section.pv-interests-section",
		},
		Accomplishments: Section{Selector: "section.pv-accomplishments-section"},
		Contact: Section{
			Path: "overlay/contact-info/",
			Wait: dom.Class("pv-contact-info__contact-type"),
		},
		About: Section{AnchorID: "about"},

		ListItem: dom.Any{
			dom.Class("pvs-list__paged-list-item"),
			dom.Class("artdeco-list__item"),
		},
		ListContainer: "pvs-list__container",
		Entity:        dom.Matcher{AttrKey: "data-view-name", AttrContains: "profile-component-entity"},
		VisibleText:   dom.Matcher{Tag: "span", AttrKey: "aria-hidden", AttrContains: "true"},
		Separator:     "·",

		InterestItem:  dom.Any{dom.Class("pv-interest-entity")},
		InterestTitle: dom.Tag("h3"),
		AccomplishmentBlock: dom.Any{
			dom.Class("pv-accomplishments-block__content"),
		},
		AccomplishmentTitle: dom.Tag("h3"),

		ContactSection: dom.Any{dom.Class("pv-contact-info__contact-type")},
		ContactHeader:  dom.Class("pv-contact-info__header"),

		Name:             "h1",
		Headline:         "div.text-body-medium",
		Location:         "span.text-body-small.inline.t-black--light.break-words",
		ProfilePicture:   "img.pv-top-card-profile-picture__image--show",
		OpenToWorkMarker: "#OPEN_TO_WORK",

		BaseURL:       "https://www.linkedin.com",
		PostItem:      dom.Matcher{Tag: "div", Class: "feed-shared-update-v2"},
		PostActor:     dom.Matcher{Tag: "span", Class: "update-components-actor__title"},
		PostActorLink: dom.Matcher{Tag: "a", Class: "update-components-actor__container-link"},
		PostContent:   dom.Matcher{Tag: "div", Class: "update-components-text"},
		PostURNAttr:   "data-urn",
	}
}

// Subpages lists the profile sub-pages the sections read from, in section order.
func (v Vocabulary) Subpages() []string {
	var out []string
	for _, sec := range []Section{v.Experience, v.Education, v.Interests, v.Accomplishments, v.Contact, v.About} {
		if sec.Path != "" && !slices.Contains(out, sec.Path) {
			out = append(out, sec.Path)
		}
	}
	return out
}

// LoadVocabulary reads a YAML vocabulary file and lays it over DefaultVocabulary,
// so the file only needs the keys that differ.
func LoadVocabulary(path string) (Vocabulary, error) {
	v := DefaultVocabulary()
	data, err := os.ReadFile(path) //nolint:gosec // operator-supplied config path
	if err != nil {
		if os.IsNotExist(err) {
			return v, ErrVocabularyNotFound
		}
		return v, fmt.Errorf("read vocabulary: %w", err)
	}
	if err := yaml.Unmarshal(data, &v); err != nil {
		return DefaultVocabulary(), fmt.Errorf("parse vocabulary %s: %w", path, err)
	}
	if v.Separator == "" {
		v.Separator = DefaultVocabulary().Separator
	}
	return v, nil
}
