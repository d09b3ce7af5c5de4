// Package dom is a read-only access layer over golang.org/x/net/html trees.
// Nothing here mutates a node; a miss is reported as nil, never as an error.
package dom

import (
	"fmt"
	"io"
	"strings"

	"golang.org/x/net/html"
)

// Predicate decides whether a node is wanted.
type Predicate interface {
	Match(n *html.Node) bool
}

// Matcher selects element nodes by tag, class membership and attribute substring.
// Empty fields match anything. AttrKey with an empty AttrContains only requires
// the attribute to be present.
type Matcher struct {
	Tag          string `yaml:"tag,omitempty"`
	Class        string `yaml:"class,omitempty"`
	AttrKey      string `yaml:"attr,omitempty"`
	AttrContains string `yaml:"contains,omitempty"`
}

// Tag matches any element with the given tag name.
func Tag(name string) Matcher { return Matcher{Tag: name} }

// Class matches any element carrying the given class.
func Class(name string) Matcher { return Matcher{Class: name} }

// IsZero reports whether m matches every element.
func (m Matcher) IsZero() bool {
	return m == Matcher{}
}

// Match reports whether n is an element satisfying every populated part of m.
func (m Matcher) Match(n *html.Node) bool {
	if n == nil || n.Type != html.ElementNode {
		return false
	}
	if m.Tag != "" && !strings.EqualFold(n.Data, m.Tag) {
		return false
	}
	if m.Class != "" && !HasClass(n, m.Class) {
		return false
	}
	if m.AttrKey != "" {
		v, ok := Attr(n, m.AttrKey)
		if !ok || !strings.Contains(v, m.AttrContains) {
			return false
		}
	}
	return true
}

func (m Matcher) String() string {
	var sb strings.Builder
	sb.WriteString(m.Tag)
	if m.Class != "" {
		sb.WriteString("." + m.Class)
	}
	if m.AttrKey != "" {
		fmt.Fprintf(&sb, "[%s*=%q]", m.AttrKey, m.AttrContains)
	}
	if sb.Len() == 0 {
		return "*"
	}
	return sb.String()
}

// Any matches when at least one of its matchers does. It models a class name with
// permitted variants.
type Any []Matcher

func (a Any) Match(n *html.Node) bool {
	for _, m := range a {
		if m.Match(n) {
			return true
		}
	}
	return false
}

// Parse reads an HTML document into a tree.
func Parse(r io.Reader) (*html.Node, error) {
	doc, err := html.Parse(r)
	if err != nil {
		return nil, fmt.Errorf("parse html: %w", err)
	}
	return doc, nil
}

// ParseString is Parse for in-memory markup.
func ParseString(s string) (*html.Node, error) {
	return Parse(strings.NewReader(s))
}

// Attr returns the value of an attribute on a node.
func Attr(n *html.Node, key string) (string, bool) {
	if n == nil {
		return "", false
	}
	for _, a := range n.Attr {
		if a.Key == key {
			return a.Val, true
		}
	}
	return "", false
}

// AttrOr returns the attribute value, or "" when absent.
func AttrOr(n *html.Node, key string) string {
	v, _ := Attr(n, key)
	return v
}

// Classes splits the class attribute into its members.
func Classes(n *html.Node) []string {
	return strings.Fields(AttrOr(n, "class"))
}

// HasClass checks class-list membership (exact member, not substring).
func HasClass(n *html.Node, className string) bool {
	for _, c := range Classes(n) {
		if c == className {
			return true
		}
	}
	return false
}

// Children returns the direct element children of n in document order.
func Children(n *html.Node) []*html.Node {
	if n == nil {
		return nil
	}
	var out []*html.Node
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if c.Type == html.ElementNode {
			out = append(out, c)
		}
	}
	return out
}

// FirstChild returns the first element child of n, or nil.
func FirstChild(n *html.Node) *html.Node {
	if n == nil {
		return nil
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if c.Type == html.ElementNode {
			return c
		}
	}
	return nil
}

// FindAll returns every descendant of root matching m, depth-first in document order.
// root itself is not considered.
func FindAll(root *html.Node, m Predicate) []*html.Node {
	var results []*html.Node
	walk(root, func(n *html.Node) bool {
		if m.Match(n) {
			results = append(results, n)
		}
		return true
	})
	return results
}

// FindFirst returns the first descendant of root matching m, or nil.
func FindFirst(root *html.Node, m Predicate) *html.Node {
	var found *html.Node
	walk(root, func(n *html.Node) bool {
		if m.Match(n) {
			found = n
			return false
		}
		return true
	})
	return found
}

// Closest returns n or its nearest ancestor matching m, or nil.
func Closest(n *html.Node, m Predicate) *html.Node {
	for p := n; p != nil; p = p.Parent {
		if m.Match(p) {
			return p
		}
	}
	return nil
}

// walk visits the descendants of root in document order until visit returns false.
func walk(root *html.Node, visit func(*html.Node) bool) bool {
	if root == nil {
		return true
	}
	for c := root.FirstChild; c != nil; c = c.NextSibling {
		if !visit(c) {
			return false
		}
		if !walk(c, visit) {
			return false
		}
	}
	return true
}

// Text returns the concatenated descendant text of n with surrounding whitespace trimmed.
// Script and style contents are skipped.
func Text(n *html.Node) string {
	if n == nil {
		return ""
	}
	var sb strings.Builder
	textInto(&sb, n)
	return strings.TrimSpace(sb.String())
}

func textInto(sb *strings.Builder, n *html.Node) {
	switch n.Type {
	case html.TextNode:
		sb.WriteString(n.Data)
		return
	case html.ElementNode:
		if n.Data == "script" || n.Data == "style" {
			return
		}
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		textInto(sb, c)
	}
}

// TopLevel returns the matches of m under root that have no matching ancestor
// below root, so nested lists of the same kind are not flattened into the outer one.
func TopLevel(root *html.Node, m Predicate) []*html.Node {
	var out []*html.Node
	for _, n := range FindAll(root, m) {
		nested := false
		for p := n.Parent; p != nil && p != root; p = p.Parent {
			if m.Match(p) {
				nested = true
				break
			}
		}
		if !nested {
			out = append(out, n)
		}
	}
	return out
}

// HasElements reports whether the tree under n holds at least one element.
func HasElements(n *html.Node) bool {
	return FindFirst(n, Matcher{}) != nil
}

// Render serialises n back to HTML.
func Render(n *html.Node) (string, error) {
	if n == nil {
		return "", nil
	}
	var sb strings.Builder
	if err := html.Render(&sb, n); err != nil {
		return "", fmt.Errorf("render html: %w", err)
	}
	return sb.String(), nil
}
