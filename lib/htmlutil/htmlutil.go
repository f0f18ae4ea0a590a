package htmlutil

import (
	"net/url"
	"strings"
	"unicode"

	"cefetid-backend/lib/textutil"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"
)

// GetText returns the concatenated text content of a node subtree,
// the same text a browser would render for it.
func GetText(node *html.Node) string {
	var sb strings.Builder
	collectText(node, &sb)
	return sb.String()
}

func collectText(node *html.Node, sb *strings.Builder) {
	if node == nil {
		return
	}
	if node.Type == html.TextNode {
		sb.WriteString(node.Data)
		return
	}
	for child := node.FirstChild; child != nil; child = child.NextSibling {
		collectText(child, sb)
	}
}

type Anchor struct {
	Text string
	Href string
}

func stripNonPrintable(s string) string {
	var sb strings.Builder
	for _, c := range s {
		if unicode.IsPrint(c) {
			sb.WriteRune(c)
		}
	}
	return sb.String()
}

// GetAnchors collects every anchor in the selection, resolving relative
// hrefs against base when base is non-nil. Anchors with unparseable
// hrefs are dropped.
func GetAnchors(sel *goquery.Selection, base *url.URL) []Anchor {
	var anchors []Anchor
	for _, n := range sel.Nodes {
		href := ""
		for _, a := range n.Attr {
			if a.Key == "href" {
				href = a.Val
				break
			}
		}
		link, err := url.Parse(href)
		if err != nil {
			continue
		}
		if base != nil {
			link = base.ResolveReference(link)
		}

		// whitespace becomes spaces before the non-printable strip, so
		// tabs and newlines separate words instead of vanishing
		text := textutil.NormalizeText(GetText(n))
		text = stripNonPrintable(text)

		anchors = append(anchors, Anchor{
			Text: text,
			Href: link.String(),
		})
	}
	return anchors
}

// FindAnchorByText returns the first anchor in the selection whose
// visible text contains substr, case-insensitively.
func FindAnchorByText(sel *goquery.Selection, base *url.URL, substr string) (Anchor, bool) {
	substr = strings.ToLower(substr)
	for _, a := range GetAnchors(sel, base) {
		if strings.Contains(strings.ToLower(a.Text), substr) {
			return a, true
		}
	}
	return Anchor{}, false
}
