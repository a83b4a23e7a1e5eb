package fjud

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"net/url"
	"regexp"
	"strconv"
	"strings"
	"time"

	"fjudcrawl/lib/htmlutil"
	"fjudcrawl/lib/textutil"

	"github.com/PuerkitoBio/goquery"
)

const (
	report_plaintext_probe       = "plaintext.probe"
	report_plaintext_derive      = "plaintext.derive"
	report_plaintext_fetch       = "plaintext.fetch-content"
	report_plaintext_unconfirmed = "plaintext.unconfirmed-fallback"
)

// probe parameters: the export endpoint's version numbering and render flag
// are undocumented, validity can only be confirmed empirically per candidate
const (
	minDocVersion = 1
	maxDocVersion = 5
)

var renderFlags = [2]string{"1", "0"}

const probeTimeout = time.Second * 10

// maxContentChars caps fetched judgment text; the marker is appended when
// content is cut.
const (
	maxContentChars  = 500_000
	truncationMarker = "...(內容過長，已截斷)"
)

// ErrDerivationFailed means the identifier could not be decomposed into the
// parameters the export endpoint needs, so no candidate URL could be built.
var ErrDerivationFailed = errors.New("fjud: could not derive plain text url")

// idParamRegex pulls the raw (still percent-encoded) id parameter out of a
// query string. url.ParseQuery would decode it, and the export endpoint
// wants the token byte for byte as the portal issued it.
var idParamRegex = regexp.MustCompile(`(?:^|[?&])id=([^&]*)`)

func (c *Client) exportCandidateUrl(encodedID, renderFlag string) string {
	return fmt.Sprintf("%s?type=JD&id=%s&lawpara=&ispdf=%s", c.exportUrl, encodedID, renderFlag)
}

// DerivePlainTextURL finds a URL for the unformatted export of a judgment
// document.
//
// When the judgment's source URL already carries the portal's document id,
// it is rewritten against the export endpoint with the id kept verbatim.
// Otherwise a candidate id is synthesized from the decomposed identifier
// (court code, year, case type, number, Gregorian date) across document
// versions 1..5. Every candidate is validated with a live probe, render flag
// "1" before "0". If the whole candidate space fails, the last-tried flag-1
// URL comes back with Confirmed=false rather than nothing at all; callers
// decide whether an unverified guess is acceptable.
func (c *Client) DerivePlainTextURL(ctx context.Context, j Judgment) (PlainTextURL, error) {
	if strings.Contains(j.SourceUrl, "FJUD/data.aspx") {
		if groups := idParamRegex.FindStringSubmatch(j.SourceUrl); groups != nil && groups[1] != "" {
			for _, flag := range renderFlags {
				candidate := c.exportCandidateUrl(groups[1], flag)
				if c.probeExport(ctx, candidate) {
					c.tel.ReportDebug("plain text url from source rewrite", candidate)
					return PlainTextURL{Url: candidate, Confirmed: true}, nil
				}
			}
		}
	}

	parsed, err := ParseJudgmentID(j.ID)
	if err != nil {
		return PlainTextURL{}, fmt.Errorf("%w: %w", ErrDerivationFailed, err)
	}
	court, err := ResolveCourtCode(parsed.Court)
	if err != nil {
		return PlainTextURL{}, fmt.Errorf("%w: %w", ErrDerivationFailed, err)
	}
	if court.Match == MatchHeuristic {
		c.tel.ReportWarning(report_plaintext_derive, "court code is a heuristic guess", parsed.Court, court.Code)
	}
	date, err := ConvertROCDate(j.Date)
	if err != nil {
		return PlainTextURL{}, fmt.Errorf("%w: %w", ErrDerivationFailed, err)
	}

	lastCandidate := ""
	for version := minDocVersion; version <= maxDocVersion; version++ {
		idParam := strings.Join([]string{
			court.Code,
			strconv.Itoa(parsed.Year),
			parsed.CaseType,
			parsed.CaseNumber,
			date,
			strconv.Itoa(version),
		}, ",")
		encoded := url.QueryEscape(idParam)

		for _, flag := range renderFlags {
			candidate := c.exportCandidateUrl(encoded, flag)
			if flag == "1" {
				lastCandidate = candidate
			}
			if c.probeExport(ctx, candidate) {
				c.tel.ReportDebug("plain text url validated", candidate, version, flag)
				return PlainTextURL{Url: candidate, Confirmed: true}, nil
			}
		}
	}

	// known imprecision carried over from the portal's behavior: rather than
	// failing the record outright, hand back the last guess unvalidated
	c.tel.ReportWarning(report_plaintext_unconfirmed, j.ID, lastCandidate)
	return PlainTextURL{Url: lastCandidate, Confirmed: false}, nil
}

// probeExport issues a live request to test whether a speculative export URL
// is valid. A candidate counts as valid on HTTP 200 with a body longer than
// 100 bytes that carries neither the "no data" nor the "error" phrase.
// Transport failures just fail the candidate, the caller moves on to the
// next one.
func (c *Client) probeExport(ctx context.Context, candidate string) bool {
	ctx, cancel := context.WithTimeout(ctx, probeTimeout)
	defer cancel()

	res, err := c.http.R().
		SetContext(ctx).
		Get(candidate)
	if err != nil {
		c.tel.ReportWarning(report_plaintext_probe, err, candidate)
		return false
	}

	body := string(res.Body())
	return res.StatusCode() == 200 &&
		len(body) > 100 &&
		!strings.Contains(body, "查無資料") &&
		!strings.Contains(body, "錯誤")
}

// FetchContent retrieves the plain text judgment document and flattens it to
// normalized text: scripts and styles dropped, element text joined with
// newlines, whitespace runs collapsed, and the whole thing capped at
// maxContentChars with a truncation marker.
func (c *Client) FetchContent(ctx context.Context, link string) (string, error) {
	res, err := c.http.R().
		SetContext(ctx).
		Get(link)
	if err != nil {
		c.tel.ReportBroken(report_plaintext_fetch, fmt.Errorf("fetch document: %w", err))
		return "", err
	}

	doc, err := goquery.NewDocumentFromReader(bytes.NewBuffer(res.Body()))
	if err != nil {
		c.tel.ReportBroken(report_plaintext_fetch, fmt.Errorf("parse document: %w", err))
		return "", err
	}

	htmlutil.StripScripts(doc)

	var text string
	if len(doc.Selection.Nodes) > 0 {
		text = htmlutil.GetTextSeparated(doc.Selection.Nodes[0], "\n")
	}
	text = textutil.FlattenDocumentText(text)

	if utf8Len := len([]rune(text)); utf8Len > maxContentChars {
		c.tel.ReportWarning(report_plaintext_fetch, "document truncated", utf8Len)
		text = string([]rune(text)[:maxContentChars]) + truncationMarker
	}

	return text, nil
}
