package htmlutil

import (
	"bytes"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"
)

// GetTextSeparated joins the document's text nodes with sep, so text from
// adjacent elements does not run together the way goquery's Text() does.
func GetTextSeparated(node *html.Node, sep string) string {
	var buffer bytes.Buffer
	getTextRecursive(node, &buffer, sep)
	return buffer.String()
}

func getTextRecursive(node *html.Node, buffer *bytes.Buffer, sep string) {
	if node == nil {
		return
	}
	if node.Type == html.TextNode {
		if sep != "" && buffer.Len() > 0 {
			buffer.WriteString(sep)
		}
		buffer.WriteString(node.Data)
		return
	}
	child := node.FirstChild
	for child != nil {
		getTextRecursive(child, buffer, sep)
		child = child.NextSibling
	}
}

type Anchor struct {
	Text string
	Href string
}

// Anchors collects the href and inner text of every anchor in the selection,
// in document order. Anchors without an href attribute come back with an
// empty Href rather than being skipped, so indexes line up with the page.
func Anchors(sel *goquery.Selection) []Anchor {
	var anchors []Anchor
	sel.Each(func(_ int, a *goquery.Selection) {
		anchors = append(anchors, Anchor{
			Text: a.Text(),
			Href: a.AttrOr("href", ""),
		})
	})
	return anchors
}

// StripScripts removes script and style subtrees in place.
func StripScripts(doc *goquery.Document) {
	doc.Find("script, style").Remove()
}
