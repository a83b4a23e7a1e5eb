package htmlutil

import (
	"bytes"
	"testing"

	"github.com/PuerkitoBio/goquery"
	"github.com/stretchr/testify/require"
)

func parseDoc(t testing.TB, html string) *goquery.Document {
	doc, err := goquery.NewDocumentFromReader(bytes.NewBufferString(html))
	require.NoError(t, err)
	return doc
}

func TestGetTextSeparated(t *testing.T) {
	doc := parseDoc(t, `<html><body><div>主文</div><div>被告應給付。</div><span>理由</span></body></html>`)

	text := GetTextSeparated(doc.Selection.Nodes[0], "\n")
	require.Equal(t, "主文\n被告應給付。\n理由", text)

	// an empty separator runs the fragments together, same as goquery's Text()
	require.Equal(t, doc.Text(), GetTextSeparated(doc.Selection.Nodes[0], ""))
}

func TestAnchors(t *testing.T) {
	doc := parseDoc(t, `<html><body>
		<a href="/FJUD/data.aspx?id=1">first</a>
		<a>no href</a>
		<a href="qryresultlst.aspx?q=ab12">third</a>
	</body></html>`)

	anchors := Anchors(doc.Find("a"))
	require.Equal(t, []Anchor{
		{Text: "first", Href: "/FJUD/data.aspx?id=1"},
		{Text: "no href", Href: ""},
		{Text: "third", Href: "qryresultlst.aspx?q=ab12"},
	}, anchors)
}

func TestStripScripts(t *testing.T) {
	doc := parseDoc(t, `<html><head><style>body{}</style></head><body><script>var x;</script><div>kept</div></body></html>`)

	StripScripts(doc)
	require.Equal(t, "kept", doc.Text())
	require.Zero(t, doc.Find("script, style").Length())
}
