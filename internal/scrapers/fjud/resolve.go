package fjud

import (
	"errors"
	"regexp"
	"strings"

	"fjudcrawl/lib/htmlutil"

	"github.com/PuerkitoBio/goquery"
)

// ErrTerminalNoResult means the portal explicitly answered with an error
// page: bad query syntax, no matching records, or a busy/errored backend.
// There is no listing to find and no point retrying other strategies.
var ErrTerminalNoResult = errors.New("fjud: portal reported a terminal no-result page")

// ErrNoListingUrl means no strategy could locate the listing page URL.
var ErrNoListingUrl = errors.New("fjud: no listing url found in search response")

// fixed phrases the portal renders on terminal error pages
var errorPhrases = []string{
	"檢索之檢索詞彙無效",
	"查無符合條件資料",
	"系統忙碌中",
	"系統發生錯誤",
}

var queryTokenRegex = regexp.MustCompile(`q=([a-f0-9]+)`)

var scriptRedirectRegexes = []*regexp.Regexp{
	regexp.MustCompile(`window\.location\.href\s*=\s*['"]?([^'"]+)['"]?`),
	regexp.MustCompile(`location\.href\s*=\s*['"]?([^'"]+)['"]?`),
	regexp.MustCompile(`window\.location\s*=\s*['"]?([^'"]+)['"]?`),
}

// resolveListingUrl locates the result listing page URL inside a search
// response that did not itself redirect to the listing. Strategies run in
// strict priority order, first success wins:
//
//  1. terminal error phrase scan (takes precedence over everything, error
//     pages can coincidentally contain link-like tokens)
//  2. anchors carrying the listing path plus a hex query token
//  3. inline script redirects targeting the listing path
//  4. a bare hex query token anywhere in the page text, from which the
//     listing URL is synthesized
func (c *Client) resolveListingUrl(body string, doc *goquery.Document) (string, error) {
	for _, phrase := range errorPhrases {
		if strings.Contains(body, phrase) {
			c.tel.ReportDebug("terminal error phrase", phrase)
			return "", ErrTerminalNoResult
		}
	}

	found := ""
	for _, anchor := range htmlutil.Anchors(doc.Find("a")) {
		if strings.Contains(anchor.Href, listingEndpoint) && queryTokenRegex.MatchString(anchor.Href) {
			found = c.absoluteUrl(anchor.Href)
			break
		}
	}
	if found != "" {
		c.tel.ReportDebug("listing url from anchor", found)
		return found, nil
	}

	doc.Find("script").EachWithBreak(func(_ int, script *goquery.Selection) bool {
		text := script.Text()
		for _, redirect := range scriptRedirectRegexes {
			groups := redirect.FindStringSubmatch(text)
			if len(groups) < 2 {
				continue
			}
			target := groups[1]
			if strings.Contains(target, listingEndpoint) {
				found = c.absoluteUrl(target)
				return false
			}
		}
		return true
	})
	if found != "" {
		c.tel.ReportDebug("listing url from script redirect", found)
		return found, nil
	}

	groups := queryTokenRegex.FindStringSubmatch(doc.Text())
	if len(groups) >= 2 {
		found = c.base.String() + listingEndpoint + "?ty=SIMJUDBOOK&q=" + groups[1]
		c.tel.ReportDebug("listing url synthesized from query token", found)
		return found, nil
	}

	return "", ErrNoListingUrl
}
