package fjud

import (
	"bytes"
	"strings"
	"testing"

	_ "embed"

	"fjudcrawl/internal/components/telemetry"

	"github.com/PuerkitoBio/goquery"
	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"
)

//go:embed listing_table_test.html
var listingTableTest []byte

//go:embed listing_blocks_test.html
var listingBlocksTest []byte

func newTestClient(t testing.TB, opts ClientOptions) *Client {
	if opts.RequestsPerSecond == 0 {
		// tests should not be throttled like the real portal session
		opts.RequestsPerSecond = 1000
	}
	client, err := NewClient(opts, telemetry.NopAPI{})
	if err != nil {
		t.Fatal(err)
	}
	return client
}

func parseDoc(t testing.TB, html []byte) *goquery.Document {
	doc, err := goquery.NewDocumentFromReader(bytes.NewBuffer(html))
	if err != nil {
		t.Fatal(err)
	}
	return doc
}

func TestExtractFromTable(t *testing.T) {
	client := newTestClient(t, ClientOptions{})
	judgments := client.extractJudgments(parseDoc(t, listingTableTest))

	expected := []Judgment{
		{
			ID:        "臺灣臺北地方法院 108 年度 民字 第 100 號",
			Date:      "108.05.01",
			CaseType:  "侵權行為",
			SourceUrl: "https://judgment.judicial.gov.tw/FJUD/data.aspx?ty=JD&id=TPDV%2c108%2c%e6%b0%91%2c100%2c20190501%2c1",
		},
		{
			ID:        "臺灣基隆地方法院 108 年度 家繼訴字 第 12 號",
			Date:      "108.06.20",
			CaseType:  "分割遺產",
			SourceUrl: "https://judgment.judicial.gov.tw/FJUD/data.aspx?ty=JD&id=KLDV%2c108%2c%e5%ae%b6%e7%b9%bc%e8%a8%b4%2c12%2c20190620%2c1",
		},
	}
	if diff := cmp.Diff(expected, judgments); diff != "" {
		t.Errorf("table extraction mismatch (-want +got):\n%s", diff)
	}
}

// the synthetic case from the extraction contract: a header row plus one data
// row, parenthetical annotation stripped, identifier rebuilt canonically
func TestExtractFromTableSynthetic(t *testing.T) {
	page := `<html><body><table>
		<tr><td>序號</td><td>裁判字號</td><td>裁判日期</td><td>案由</td></tr>
		<tr><td>1</td><td>臺灣臺北地方法院 108 年度民字第 100 號 (歷史判決)</td><td>108.05.01</td><td>侵權行為</td></tr>
	</table></body></html>`

	client := newTestClient(t, ClientOptions{})
	judgments := client.extractJudgments(parseDoc(t, []byte(page)))

	require.Len(t, judgments, 1)
	require.Equal(t, "臺灣臺北地方法院 108 年度 民字 第 100 號", judgments[0].ID)
	require.Equal(t, "108.05.01", judgments[0].Date)
	require.Equal(t, "侵權行為", judgments[0].CaseType)
	require.Empty(t, judgments[0].SourceUrl)
}

func TestExtractFromBlocks(t *testing.T) {
	client := newTestClient(t, ClientOptions{})
	judgments := client.extractJudgments(parseDoc(t, listingBlocksTest))

	expected := []Judgment{
		{
			ID:        "臺灣桃園地方法院 109 年度 訴字 第 77 號",
			Date:      "109.11.30",
			SourceUrl: "https://judgment.judicial.gov.tw/FJUD/data.aspx?ty=JD&id=TYDV%2c109%2c%e8%a8%b4%2c77%2c20201130%2c1",
		},
		{
			ID:   "臺灣高等法院 110 年度 上易字 第 8 號",
			Date: "110.01.15",
		},
	}
	if diff := cmp.Diff(expected, judgments); diff != "" {
		t.Errorf("block extraction mismatch (-want +got):\n%s", diff)
	}
}

func TestExtractFromRawText(t *testing.T) {
	page := `<html><body><span>臺灣高雄地方法院 107 年度雄簡字第 42 號 107.03.09 其他</span></body></html>`

	client := newTestClient(t, ClientOptions{})
	judgments := client.extractJudgments(parseDoc(t, []byte(page)))

	require.Len(t, judgments, 1)
	require.Equal(t, "臺灣高雄地方法院 107 年度 雄簡字 第 42 號", judgments[0].ID)
	require.Equal(t, "107.03.09", judgments[0].Date)
	require.Empty(t, judgments[0].SourceUrl)
}

func TestDateWindowSpansCJKText(t *testing.T) {
	// 76 runes (228 bytes) of filler between identifier and date: still
	// inside the 100 rune window, far outside 100 bytes
	page := `<html><body><span>臺灣臺北地方法院 108 年度民字第 100 號` +
		strings.Repeat("理由略以當事人間因侵權行為損害賠償事件", 4) +
		`裁判日期 108.05.01</span></body></html>`

	client := newTestClient(t, ClientOptions{})
	judgments := client.extractJudgments(parseDoc(t, []byte(page)))

	require.Len(t, judgments, 1)
	require.Equal(t, "108.05.01", judgments[0].Date)
}

func TestExtractNothing(t *testing.T) {
	page := `<html><body><p>沒有任何結果</p></body></html>`

	client := newTestClient(t, ClientOptions{})
	judgments := client.extractJudgments(parseDoc(t, []byte(page)))
	require.Empty(t, judgments)
}

// every identifier produced by the extractor must survive a parse and
// recompose cycle unchanged
func TestExtractedIdentifiersRoundTrip(t *testing.T) {
	client := newTestClient(t, ClientOptions{})
	for _, fixture := range [][]byte{listingTableTest, listingBlocksTest} {
		for _, j := range client.extractJudgments(parseDoc(t, fixture)) {
			parsed, err := ParseJudgmentID(j.ID)
			require.NoError(t, err, j.ID)
			require.Equal(t, j.ID, parsed.RecomposeID())
		}
	}
}
