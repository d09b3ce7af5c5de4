// Package profile turns a materialized LinkedIn profile document into typed records.
//
// Extraction is a synchronous, read-only walk of a dom.Document. Each section extractor
// isolates its items: a malformed item becomes a Fault in its list slot and the rest of
// the section is still extracted. Only an unreadable root document fails the whole call.
package profile

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/anatolykoptev/go_profile/internal/engine/dom"
	"golang.org/x/net/html"
)

// DefaultWaitTimeout bounds each wait for lazily attached content.
const DefaultWaitTimeout = 5 * time.Second

// Extractor holds only immutable configuration and is safe for concurrent use.
type Extractor struct {
	vocab   Vocabulary
	log     *slog.Logger
	onFault func(Kind)
	wait    time.Duration
}

// Option configures an Extractor.
type Option func(*Extractor)

// WithVocabulary replaces the default LinkedIn vocabulary.
func WithVocabulary(v Vocabulary) Option {
	return func(x *Extractor) { x.vocab = v }
}

// WithLogger sets the logger for fault diagnostics.
func WithLogger(l *slog.Logger) Option {
	return func(x *Extractor) {
		if l != nil {
			x.log = l
		}
	}
}

// WithFaultHook registers a callback invoked once per item fault.
func WithFaultHook(fn func(Kind)) Option {
	return func(x *Extractor) { x.onFault = fn }
}

// WithWaitTimeout bounds waits for lazily attached nodes.
func WithWaitTimeout(d time.Duration) Option {
	return func(x *Extractor) { x.wait = d }
}

// NewExtractor builds an Extractor with the default vocabulary.
func NewExtractor(opts ...Option) *Extractor {
	x := &Extractor{
		vocab: DefaultVocabulary(),
		log:   slog.Default(),
		wait:  DefaultWaitTimeout,
	}
	for _, o := range opts {
		o(x)
	}
	return x
}

// Vocabulary returns the markup vocabulary in use.
func (x *Extractor) Vocabulary() Vocabulary { return x.vocab }

// ExtractProfile reads every section of doc into a Snapshot.
// The only error is ErrDocumentUnavailable; item failures are embedded in the lists.
func (x *Extractor) ExtractProfile(doc *dom.Document) (*Snapshot, error) {
	if err := checkDocument(doc); err != nil {
		return nil, err
	}

	basic := x.extractBasicInfo(doc)
	experiences := x.extractExperiences(doc)
	snap := &Snapshot{
		URL:             doc.URL,
		BasicInfo:       basic,
		Contact:         x.extractContactInfo(doc),
		Experiences:     experiences,
		Educations:      x.extractEducations(doc),
		Interests:       x.extractInterests(doc),
		Accomplishments: x.extractAccomplishments(doc),
	}
	snap.derivePrimary()

	x.log.Debug("profile: extracted",
		slog.String("url", doc.URL),
		slog.Int("experiences", len(snap.Experiences)),
		slog.Int("educations", len(snap.Educations)),
		slog.Int("interests", len(snap.Interests)),
		slog.Int("accomplishments", len(snap.Accomplishments)),
		slog.Int("faults", snap.FaultCount()),
	)
	return snap, nil
}

func checkDocument(doc *dom.Document) error {
	if doc == nil || doc.Root() == nil {
		return fmt.Errorf("%w: no document", ErrDocumentUnavailable)
	}
	if !dom.HasElements(doc.Root()) {
		return fmt.Errorf("%w: document has no element content", ErrDocumentUnavailable)
	}
	return nil
}

// locateSection finds the node enclosing a section's items.
func (x *Extractor) locateSection(doc *dom.Document, sec Section) (*html.Node, error) {
	if sec.Path != "" {
		if page := doc.Page(sec.Path); page != nil {
			if main := dom.FindFirst(page, dom.Tag("main")); main != nil {
				return main, nil
			}
			return page, nil
		}
	}
	root := doc.Root()
	if sec.AnchorID != "" {
		if anchor := dom.FindFirst(root, idMatcher(sec.AnchorID)); anchor != nil {
			if s := dom.Closest(anchor, dom.Tag("section")); s != nil {
				return s, nil
			}
			if anchor.Parent != nil {
				return anchor.Parent, nil
			}
			return anchor, nil
		}
	}
	if sec.Selector != "" {
		if n := dom.SelectFirst(root, sec.Selector); n != nil {
			return n, nil
		}
	}
	if !sec.Wait.IsZero() {
		if n := doc.WaitForNode(sec.Wait, x.wait); n != nil && n.Parent != nil {
			return n.Parent, nil
		}
	}
	return nil, ErrSectionAbsent
}

// idMatcher matches an element whose id is exactly id.
type idMatcher string

func (m idMatcher) Match(n *html.Node) bool {
	if n == nil || n.Type != html.ElementNode {
		return false
	}
	v, ok := dom.Attr(n, "id")
	return ok && v == string(m)
}

// sectionItems locates a section and enumerates its top-level list items.
// A missing section yields no items.
func (x *Extractor) sectionItems(doc *dom.Document, kind Kind, sec Section, items dom.Predicate) []*html.Node {
	root, err := x.locateSection(doc, sec)
	if err != nil {
		x.log.Debug("profile: section absent", slog.String("section", kind.String()))
		return nil
	}
	return dom.TopLevel(root, items)
}
