package profile

import (
	"fmt"
	"strings"
	"testing"

	"github.com/anatolykoptev/go_profile/internal/engine/dom"
	"golang.org/x/net/html"
)

func parse(t *testing.T, s string) *html.Node {
	t.Helper()
	n, err := dom.ParseString(s)
	if err != nil {
		t.Fatalf("ParseString() error = %v", err)
	}
	return n
}

// leaf renders one cluster sub-node the way LinkedIn does: a visible span plus a
// screen-reader duplicate.
func leaf(text string) string {
	return fmt.Sprintf(`<span><span aria-hidden="true">%s</span><span class="visually-hidden">%s</span></span>`, text, text)
}

// entityItem builds a list item with a logo link, a cluster of leaves and an optional
// detail node.
func entityItem(orgURL string, leaves []string, detail string) string {
	var cluster strings.Builder
	for _, l := range leaves {
		cluster.WriteString(leaf(l))
	}
	detailHTML := ""
	if detail != "" {
		detailHTML = "<div>" + detail + "</div>"
	}
	return fmt.Sprintf(`<li class="pvs-list__paged-list-item">
<div data-view-name="profile-component-entity">
  <div><a href="%s"><img alt="logo"></a></div>
  <div>
    <div><div>%s</div></div>
    %s
  </div>
</div>
</li>`, orgURL, cluster.String(), detailHTML)
}

// brokenItem is a list item whose entity has lost its details node entirely.
func brokenItem() string {
	return `<li class="pvs-list__paged-list-item">
<div data-view-name="profile-component-entity">
  <div><a href="https://www.linkedin.com/company/ghost/"><img alt="logo"></a></div>
</div>
</li>`
}

// detailsPage wraps list items the way /details/<section>/ pages do.
func detailsPage(items ...string) string {
	return `<html><body><main><section><div class="pvs-list__container"><ul>` +
		strings.Join(items, "\n") +
		`</ul></div></section></main></body></html>`
}

const mainPage = `<html><body><main>
<section class="artdeco-card">
  <img class="pv-top-card-profile-picture__image--show" title="Jane Doe #OPEN_TO_WORK" src="x.jpg">
  <h1 class="text-heading-xlarge">Jane Doe</h1>
  <div class="text-body-medium break-words">Staff Engineer at Acme</div>
  <span class="text-body-small inline t-black--light break-words">Berlin, Germany</span>
</section>
<section class="artdeco-card">
  <div id="about" class="pv-profile-card__anchor"></div>
  <div><h2><span aria-hidden="true">About</span><span class="visually-hidden">About</span></h2></div>
  <div class="inline-show-more-text"><span aria-hidden="true">I build distributed systems.</span></div>
</section>
</main></body></html>`

func newDoc(t *testing.T, main string) *dom.Document {
	t.Helper()
	return dom.NewDocument("https://www.linkedin.com/in/janedoe/", parse(t, main))
}
