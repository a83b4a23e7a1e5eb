package fjud

import (
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/PuerkitoBio/goquery"
)

const (
	report_listing_table  = "listing.table"
	report_listing_blocks = "listing.blocks"
	report_listing_text   = "listing.raw-text"
)

// rocDateRegex matches a ROC calendar date token like "108.05.01".
var rocDateRegex = regexp.MustCompile(`\d{1,3}\.\d{1,2}\.\d{1,2}`)

// annotationRegex matches trailing parenthetical annotations on identifier
// cells, e.g. "（歷史判決）", in both half and full width parentheses.
var annotationRegex = regexp.MustCompile(`\s*（[^）]*）\s*|\s*\([^)]*\)\s*`)

// context window (in runes) around an identifier match in which to look for
// its date token when no table structure is available
const (
	dateWindowBefore = 50
	dateWindowAfter  = 100
)

// extractJudgments pulls judgment summaries out of a listing page. Three
// strategies of decreasing reliability run in order, stopping at the first
// one that yields anything: the listing table, block level elements, and
// finally a regex pass over the whole page text.
func (c *Client) extractJudgments(doc *goquery.Document) []Judgment {
	judgments := c.extractFromTable(doc)
	if len(judgments) > 0 {
		c.tel.ReportCount(report_listing_table, int64(len(judgments)))
		return judgments
	}

	c.tel.ReportWarning(report_listing_table, "no listing table matched, falling back to block extraction")
	judgments = c.extractFromBlocks(doc)
	if len(judgments) > 0 {
		c.tel.ReportCount(report_listing_blocks, int64(len(judgments)))
		return judgments
	}

	c.tel.ReportWarning(report_listing_blocks, "no blocks matched, falling back to raw text extraction")
	judgments = c.extractFromText(doc)
	c.tel.ReportCount(report_listing_text, int64(len(judgments)))
	return judgments
}

// findListingTable locates the result table by its id, or by the
// co-occurrence of the judgment id and judgment date header strings within
// the same table's text.
func findListingTable(doc *goquery.Document) *goquery.Selection {
	var table *goquery.Selection
	doc.Find("table").EachWithBreak(func(_ int, t *goquery.Selection) bool {
		if t.AttrOr("id", "") == "gvMain" {
			table = t
			return false
		}
		text := t.Text()
		if strings.Contains(text, "裁判字號") && strings.Contains(text, "裁判日期") {
			table = t
			return false
		}
		return true
	})
	return table
}

func (c *Client) extractFromTable(doc *goquery.Document) []Judgment {
	table := findListingTable(doc)
	if table == nil {
		return nil
	}

	var judgments []Judgment
	rows := table.Find("tr")
	rows.Each(func(i int, row *goquery.Selection) {
		if i == 0 {
			// header row
			return
		}

		cells := row.Find("td, th")
		if cells.Length() < 2 {
			return
		}

		idCell := cells.Eq(1)
		raw := annotationRegex.ReplaceAllString(strings.TrimSpace(idCell.Text()), "")
		groups := judgmentIDRegex.FindStringSubmatch(raw)
		if groups == nil {
			return
		}

		j := Judgment{
			ID: canonicalID(groups[1], groups[2], groups[3], groups[4]),
		}
		if cells.Length() > 2 {
			j.Date = strings.TrimSpace(cells.Eq(2).Text())
		}
		if cells.Length() > 3 {
			j.CaseType = strings.TrimSpace(cells.Eq(3).Text())
		}
		if href := idCell.Find("a").First().AttrOr("href", ""); href != "" {
			j.SourceUrl = c.absoluteUrl(href)
		}

		judgments = append(judgments, j)
	})
	return judgments
}

func (c *Client) extractFromBlocks(doc *goquery.Document) []Judgment {
	var judgments []Judgment
	doc.Find("p, div").Each(func(_ int, block *goquery.Selection) {
		text := strings.TrimSpace(block.Text())
		loc := judgmentIDRegex.FindStringSubmatchIndex(text)
		if loc == nil {
			return
		}
		groups := judgmentIDRegex.FindStringSubmatch(text)

		j := Judgment{
			ID:   canonicalID(groups[1], groups[2], groups[3], groups[4]),
			Date: dateNear(text, loc[0], loc[1]),
		}
		if href := block.Find("a").First().AttrOr("href", ""); href != "" {
			j.SourceUrl = c.absoluteUrl(href)
		}

		judgments = append(judgments, j)
	})
	return judgments
}

func (c *Client) extractFromText(doc *goquery.Document) []Judgment {
	text := doc.Text()
	var judgments []Judgment
	for _, loc := range judgmentIDRegex.FindAllStringSubmatchIndex(text, -1) {
		group := func(n int) string { return text[loc[2*n]:loc[2*n+1]] }
		judgments = append(judgments, Judgment{
			ID:   canonicalID(group(1), group(2), group(3), group(4)),
			Date: dateNear(text, loc[0], loc[1]),
		})
	}
	return judgments
}

// dateNear searches a bounded context window around an identifier match for
// a ROC date token. The window is measured in runes, not bytes, so its reach
// does not shrink on CJK text.
func dateNear(text string, start, end int) string {
	lo := runesBackward(text, start, dateWindowBefore)
	hi := runesForward(text, end, dateWindowAfter)
	return rocDateRegex.FindString(text[lo:hi])
}

// runesBackward walks a byte offset back by up to n runes.
func runesBackward(text string, i, n int) int {
	for n > 0 && i > 0 {
		_, size := utf8.DecodeLastRuneInString(text[:i])
		i -= size
		n--
	}
	return i
}

// runesForward walks a byte offset ahead by up to n runes.
func runesForward(text string, i, n int) int {
	for n > 0 && i < len(text) {
		_, size := utf8.DecodeRuneInString(text[i:])
		i += size
		n--
	}
	return i
}
