package fjud

// Judgment is one row of a search result listing. Values are immutable once
// extracted; ID is always the canonical reconstruction, never the raw cell
// text.
type Judgment struct {
	// ID is the canonical judgment identifier,
	// e.g. "臺灣臺北地方法院 108 年度 民字 第 100 號".
	ID string
	// Date is the raw ROC-calendar date token as scraped ("108.05.01"),
	// not yet validated. May be empty.
	Date string
	// CaseType is the free-text case category label. May be empty.
	CaseType string
	// SourceUrl is the absolute URL of the portal's rendering of this
	// judgment. Empty when extraction fell back to raw text scanning.
	SourceUrl string
}

// ParsedID is the decomposition of a canonical judgment identifier.
// Year is in the ROC calendar (Gregorian year - 1911).
type ParsedID struct {
	Court      string
	Year       int
	CaseType   string
	CaseNumber string
}

// CourtMatch says how a court code was resolved. Heuristic codes are guesses
// and may be wrong for branch courts missing from the table.
type CourtMatch int

const (
	MatchExact CourtMatch = iota
	MatchContains
	MatchHeuristic
)

func (m CourtMatch) String() string {
	switch m {
	case MatchExact:
		return "exact"
	case MatchContains:
		return "contains"
	case MatchHeuristic:
		return "heuristic"
	}
	return "unknown"
}

// CourtCode is a short portal court code plus the provenance of the match.
type CourtCode struct {
	Code  string
	Match CourtMatch
}

// PlainTextURL is a derived URL for the unformatted judgment document.
// Confirmed is false when every probe candidate failed and the URL is the
// best-effort fallback, which may not be valid.
type PlainTextURL struct {
	Url       string
	Confirmed bool
}

// Record is a Judgment enriched with its plain text export URL and document
// content. PlainTextUrl is empty when derivation failed for the record;
// Content is empty when the document could not be fetched.
type Record struct {
	Judgment
	PlainTextUrl string
	Confirmed    bool
	Content      string
}
