package dom

import (
	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"
)

// Select returns the descendants of root matching a CSS selector, in document order.
// An invalid selector matches nothing.
func Select(root *html.Node, css string) []*html.Node {
	if root == nil || css == "" {
		return nil
	}
	sel := goquery.NewDocumentFromNode(root).Find(css)
	return sel.Nodes
}

// SelectFirst returns the first descendant matching css, or nil.
func SelectFirst(root *html.Node, css string) *html.Node {
	nodes := Select(root, css)
	if len(nodes) == 0 {
		return nil
	}
	return nodes[0]
}
