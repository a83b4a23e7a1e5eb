package fjud

import (
	"bytes"
	"context"
	"fmt"
	"net/http/cookiejar"
	"net/url"
	"strings"
	"time"

	"fjudcrawl/internal/components/telemetry"
	"fjudcrawl/lib/restyutil"

	cloudflarebp "github.com/DaRealFreak/cloudflare-bp-go"
	"github.com/PuerkitoBio/goquery"
	"github.com/go-resty/resty/v2"
	"golang.org/x/time/rate"
)

const (
	defaultBaseUrl   = "https://judgment.judicial.gov.tw/FJUD/"
	defaultExportUrl = "https://judgment.judicial.gov.tw/EXPORTFILE/reformat.aspx"

	searchEndpoint  = "qryresult.aspx"
	listingEndpoint = "qryresultlst.aspx"
)

const (
	report_client_search          = "client.search"
	report_client_resolve_listing = "client.resolve-listing"
	report_client_fetch_listing   = "client.fetch-listing"
	report_client_derive_url      = "client.derive-plain-text-url"
	report_client_fetch_content   = "client.fetch-content"
)

type ClientOptions struct {
	// BaseUrl overrides the portal search base (must end with a slash).
	BaseUrl string
	// ExportUrl overrides the plain text export endpoint.
	ExportUrl string
	// Timeout is the per-request deadline, 30s when zero.
	Timeout time.Duration
	// RequestsPerSecond throttles the client, 2/s when zero. The portal
	// rate limits and then blocks aggressive sessions.
	RequestsPerSecond float64
	// DebugOutput, when non-nil, receives a transcript of every HTTP
	// exchange the client makes.
	DebugOutput restyutil.InstrumentOutput
}

// Client scrapes the judicial judgment search portal. The underlying resty
// client carries a cookie jar, so the portal session is shared across every
// search made through one Client.
type Client struct {
	base      *url.URL
	exportUrl string
	http      *resty.Client
	tel       telemetry.API
}

func NewClient(opts ClientOptions, tel telemetry.API) (*Client, error) {
	tel = telemetry.NewScopedAPI("fjud_scraper", tel)

	baseUrl := opts.BaseUrl
	if baseUrl == "" {
		baseUrl = defaultBaseUrl
	}
	exportUrl := opts.ExportUrl
	if exportUrl == "" {
		exportUrl = defaultExportUrl
	}
	timeout := opts.Timeout
	if timeout == 0 {
		timeout = time.Second * 30
	}
	rps := opts.RequestsPerSecond
	if rps == 0 {
		rps = 2
	}

	parsedBaseUrl, err := url.Parse(baseUrl)
	if err != nil {
		return nil, err
	}

	httpClient := resty.New()
	jar, err := cookiejar.New(nil)
	if err != nil {
		return nil, err
	}
	httpClient.SetCookieJar(jar)
	httpClient.GetClient().Transport = cloudflarebp.AddCloudFlareByPass(httpClient.GetClient().Transport)

	httpClient.SetHeaders(map[string]string{
		"user-agent":      "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36",
		"accept":          "text/html,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8",
		"accept-language": "zh-TW,zh;q=0.9,en;q=0.8",
		"referer":         baseUrl + "Default.aspx",
		"origin":          parsedBaseUrl.Scheme + "://" + parsedBaseUrl.Host,
	})
	httpClient.SetRedirectPolicy(resty.DomainCheckRedirectPolicy(parsedBaseUrl.Hostname()))
	httpClient.SetTimeout(timeout)

	// max burst >= rate just means that no requests will be dropped
	rateLimiter := rate.NewLimiter(rate.Limit(rps), int(rps)+1)
	httpClient.OnBeforeRequest(func(_ *resty.Client, req *resty.Request) error {
		return rateLimiter.Wait(req.Context())
	})

	telemetry.InstrumentResty(httpClient, tel)
	restyutil.InstrumentClient(httpClient, opts.DebugOutput)

	return &Client{
		base:      parsedBaseUrl,
		exportUrl: exportUrl,
		http:      httpClient,
		tel:       tel,
	}, nil
}

// absoluteUrl resolves an href from the portal's markup against the portal
// host. Relative paths without a leading slash live under the search base.
func (c *Client) absoluteUrl(href string) string {
	if strings.HasPrefix(href, "http") {
		return href
	}
	if strings.HasPrefix(href, "/") {
		return c.base.Scheme + "://" + c.base.Host + href
	}
	return c.base.String() + href
}

// Search runs one query through the portal and returns the judgment
// summaries of the resolved listing page, in page order and with duplicates
// intact. A terminal "no results" answer from the portal, a failed listing
// resolution, and transport failures all come back as an empty (never nil)
// slice; failures are reported through telemetry rather than failing the
// caller, so one bad search never takes down a batch.
func (c *Client) Search(ctx context.Context, query string) []Judgment {
	searchUrl := c.base.String() + searchEndpoint + "?akw=" + url.QueryEscape(query)
	c.tel.ReportDebug("search", query, searchUrl)

	res, err := c.http.R().
		SetContext(ctx).
		Get(searchUrl)
	if err != nil {
		c.tel.ReportBroken(
			report_client_search,
			fmt.Errorf("fetch search page: %w", err),
		)
		return []Judgment{}
	}

	body := string(res.Body())
	finalUrl := res.Request.URL
	if res.RawResponse != nil && res.RawResponse.Request != nil {
		finalUrl = res.RawResponse.Request.URL.String()
	}

	// the portal sometimes redirects straight to the listing page, in which
	// case there is nothing to resolve
	if !strings.Contains(finalUrl, listingEndpoint) {
		doc, err := goquery.NewDocumentFromReader(bytes.NewBufferString(body))
		if err != nil {
			c.tel.ReportBroken(
				report_client_search,
				fmt.Errorf("parse search page: %w", err),
			)
			return []Judgment{}
		}

		listingUrl, err := c.resolveListingUrl(body, doc)
		if err == ErrTerminalNoResult {
			c.tel.ReportDebug("portal reported no results", query)
			return []Judgment{}
		}
		if err != nil {
			c.tel.ReportWarning(report_client_resolve_listing, err, query)
			return []Judgment{}
		}

		res, err = c.http.R().
			SetContext(ctx).
			Get(listingUrl)
		if err != nil {
			c.tel.ReportBroken(
				report_client_fetch_listing,
				fmt.Errorf("fetch listing page: %w", err),
			)
			return []Judgment{}
		}
		body = string(res.Body())
	}

	doc, err := goquery.NewDocumentFromReader(bytes.NewBufferString(body))
	if err != nil {
		c.tel.ReportBroken(
			report_client_fetch_listing,
			fmt.Errorf("parse listing page: %w", err),
		)
		return []Judgment{}
	}

	judgments := c.extractJudgments(doc)
	if judgments == nil {
		judgments = []Judgment{}
	}
	c.tel.ReportCount(report_client_search, int64(len(judgments)))
	return judgments
}

// SearchRecords is the full pipeline: search, then derive the plain text URL
// and fetch document content for every summary. Individual derivation or
// fetch failures keep the record, minus the missing fields.
func (c *Client) SearchRecords(ctx context.Context, query string) []Record {
	judgments := c.Search(ctx, query)

	records := make([]Record, 0, len(judgments))
	for _, j := range judgments {
		rec := Record{Judgment: j}

		ptu, err := c.DerivePlainTextURL(ctx, j)
		if err != nil {
			c.tel.ReportWarning(report_client_derive_url, err, j.ID)
			records = append(records, rec)
			continue
		}
		rec.PlainTextUrl = ptu.Url
		rec.Confirmed = ptu.Confirmed

		content, err := c.FetchContent(ctx, ptu.Url)
		if err != nil {
			c.tel.ReportWarning(report_client_fetch_content, err, ptu.Url)
		} else {
			rec.Content = content
		}
		records = append(records, rec)
	}
	return records
}
