package profile

import (
	"strings"

	"github.com/anatolykoptev/go_profile/internal/engine/dom"
	"golang.org/x/net/html"
)

// Shape is the resolved layout of an entry's sibling cluster.
type Shape int

const (
	ShapeEmpty        Shape = iota // no sub-nodes at all
	ShapeFour                      // title, organization, dates, location
	ShapeThreeDated                // title, organization, dates
	ShapeThreeUndated              // organization, dates, location
	ShapeSingle                    // organization
	ShapeOther                     // organization from the first sub-node
)

func (s Shape) String() string {
	switch s {
	case ShapeEmpty:
		return "empty"
	case ShapeFour:
		return "four"
	case ShapeThreeDated:
		return "three-dated"
	case ShapeThreeUndated:
		return "three-undated"
	case ShapeSingle:
		return "single"
	case ShapeOther:
		return "other"
	}
	return "unknown"
}

// Cluster is the projection of a resolved cluster into named fields.
type Cluster struct {
	Shape        Shape
	Title        string
	Organization string
	Dates        string
	Location     string
}

// ClassifyCluster picks the shape of a cluster from its sub-node texts.
// The rules are ordered and the first match wins.
func ClassifyCluster(texts []string, separator string) Shape {
	switch {
	case len(texts) == 0:
		return ShapeEmpty
	case len(texts) == 4:
		return ShapeFour
	case len(texts) == 3 && separator != "" && strings.Contains(texts[2], separator):
		return ShapeThreeDated
	case len(texts) == 3:
		return ShapeThreeUndated
	case len(texts) == 1:
		return ShapeSingle
	default:
		return ShapeOther
	}
}

// ResolveCluster projects sub-node texts into fields according to their shape.
func ResolveCluster(texts []string, separator string) Cluster {
	c := Cluster{Shape: ClassifyCluster(texts, separator)}
	switch c.Shape {
	case ShapeFour:
		c.Title, c.Organization, c.Dates, c.Location = texts[0], texts[1], texts[2], texts[3]
	case ShapeThreeDated:
		c.Title, c.Organization, c.Dates = texts[0], texts[1], texts[2]
	case ShapeThreeUndated:
		c.Organization, c.Dates, c.Location = texts[0], texts[1], texts[2]
	case ShapeSingle, ShapeOther:
		c.Organization = texts[0]
	}
	return c
}

// hyphens are the range tokens between "from" and "to".
var hyphens = map[string]bool{"-": true, "–": true, "—": true}

// ParseDateRange splits "Jan 2019 - Present · 3 yrs" into its parts.
// Text after the separator is the duration. In the part before it, the tokens
// preceding the first hyphen token are From and every token following it is To.
// Without a hyphen the whole part is From.
func ParseDateRange(s, separator string) DateRange {
	s = strings.TrimSpace(s)
	if s == "" {
		return DateRange{}
	}

	var dr DateRange
	times := s
	if separator != "" {
		if before, after, found := strings.Cut(s, separator); found {
			times = strings.TrimSpace(before)
			dr.Duration = strings.TrimSpace(after)
		}
	}

	tokens := strings.Fields(times)
	for i, tok := range tokens {
		if hyphens[tok] {
			dr.From = strings.Join(tokens[:i], " ")
			dr.To = strings.Join(tokens[i+1:], " ")
			return dr
		}
	}
	dr.From = times
	return dr
}

// leafText returns the display text of a cluster sub-node: the screen-visible span
// when the markup duplicates text for screen readers, else the first span, else the
// node's own text.
func leafText(n *html.Node, v Vocabulary) string {
	if !v.VisibleText.IsZero() {
		if span := dom.FindFirst(n, v.VisibleText); span != nil {
			return dom.Text(span)
		}
	}
	if span := dom.FindFirst(n, dom.Tag("span")); span != nil {
		return dom.Text(span)
	}
	return dom.Text(n)
}

// clusterTexts returns the leaf text of every direct child of the cluster node.
func clusterTexts(cluster *html.Node, v Vocabulary) []string {
	kids := dom.Children(cluster)
	texts := make([]string, len(kids))
	for i, k := range kids {
		texts[i] = leafText(k, v)
	}
	return texts
}

// ResolveDescription returns the free text of an entry's detail node. A nested list
// (marked by the list-container class) is flattened to one item per line.
func ResolveDescription(detail *html.Node, v Vocabulary) string {
	if detail == nil {
		return ""
	}
	if items := nestedItems(detail, v); len(items) > 0 {
		lines := make([]string, 0, len(items))
		for _, it := range items {
			if t := dom.Text(it); t != "" {
				lines = append(lines, t)
			}
		}
		return strings.Join(lines, "\n")
	}
	return dom.Text(detail)
}

// nestedItems returns the list items under the detail node's list container, or nil
// when the detail is plain text.
func nestedItems(detail *html.Node, v Vocabulary) []*html.Node {
	if v.ListContainer == "" {
		return nil
	}
	container := dom.FindFirst(detail, dom.Class(v.ListContainer))
	if container == nil {
		return nil
	}
	if items := dom.TopLevel(container, v.ListItem); len(items) > 0 {
		return items
	}
	return dom.TopLevel(container, dom.Tag("li"))
}
