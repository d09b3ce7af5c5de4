package dom

import (
	"sort"
	"strings"
	"time"

	"golang.org/x/net/html"
)

// WaitFunc waits up to timeout for an element matching m to be attached.
// Implementations must return (nil) once the timeout elapses.
type WaitFunc func(m Predicate, timeout time.Duration) *html.Node

// Document is a materialized page snapshot plus any sub-pages acquired with it.
// It is handed over fully built; extraction only reads it.
type Document struct {
	URL   string
	root  *html.Node
	pages map[string]*html.Node
	wait  WaitFunc
}

// NewDocument wraps a parsed tree. root may be nil, meaning the page could not be read.
func NewDocument(url string, root *html.Node) *Document {
	return &Document{URL: url, root: root, pages: make(map[string]*html.Node)}
}

// WithPage attaches a sub-page tree under a relative path such as "details/experience/".
func (d *Document) WithPage(path string, root *html.Node) *Document {
	if root != nil {
		d.pages[normPath(path)] = root
	}
	return d
}

// WithWait overrides the bounded wait primitive.
func (d *Document) WithWait(fn WaitFunc) *Document {
	d.wait = fn
	return d
}

// Root returns the main page tree, or nil.
func (d *Document) Root() *html.Node {
	if d == nil {
		return nil
	}
	return d.root
}

// Page returns the tree acquired for a sub-path, or nil when it was not acquired.
func (d *Document) Page(path string) *html.Node {
	if d == nil {
		return nil
	}
	return d.pages[normPath(path)]
}

// Pages lists the acquired sub-paths in sorted order.
func (d *Document) Pages() []string {
	if d == nil {
		return nil
	}
	paths := make([]string, 0, len(d.pages))
	for p := range d.pages {
		paths = append(paths, p)
	}
	sort.Strings(paths)
	return paths
}

// WaitForNode returns the first element matching m, waiting at most timeout.
// Without a WaitFunc the snapshot is static, so the root and then every page
// (sorted by path) are searched once and the call returns immediately.
func (d *Document) WaitForNode(m Predicate, timeout time.Duration) *html.Node {
	if d == nil {
		return nil
	}
	if d.wait != nil {
		return d.wait(m, timeout)
	}
	if n := FindFirst(d.root, m); n != nil {
		return n
	}
	for _, p := range d.Pages() {
		if n := FindFirst(d.pages[p], m); n != nil {
			return n
		}
	}
	return nil
}

func normPath(p string) string {
	p = strings.Trim(strings.TrimSpace(p), "/")
	if p == "" {
		return ""
	}
	return p + "/"
}
