package fjud

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"

	"fjudcrawl/lib/textutil"
)

// ErrBadJudgmentID means an identifier did not match the expected
// "<court> <year>年度<type>字第<number>號" shape.
var ErrBadJudgmentID = errors.New("fjud: judgment identifier does not match expected format")

// judgmentIDRegex matches a judgment identifier anywhere in text:
// court name, ROC year, case type label, case number. Court and case type
// are permissive word-character runs since the portal is not consistent
// about spacing or suffixes.
var judgmentIDRegex = regexp.MustCompile(
	`([\p{Han}][\p{Han}\w\s]*?)\s+(\d+)\s*年度\s*([\p{Han}\w\s]+?)\s*字\s*第\s*(\d+)\s*號`)

// canonicalID rebuilds the canonical identifier string from the four
// captured groups. Identifiers are always reconstructed through this
// template, never passed through verbatim, so spacing inconsistencies in the
// source normalize away.
func canonicalID(court, year, caseType, number string) string {
	return fmt.Sprintf(
		"%s %s 年度 %s字 第 %s 號",
		textutil.NormalizeSpace(court),
		textutil.NormalizeSpace(year),
		textutil.NormalizeSpace(caseType),
		textutil.NormalizeSpace(number),
	)
}

// ParseJudgmentID decomposes a judgment identifier into court name, ROC
// year, case type label and case number. Failure is expected to be non-fatal
// to callers: skip the record, not the batch.
func ParseJudgmentID(id string) (ParsedID, error) {
	groups := judgmentIDRegex.FindStringSubmatch(id)
	if groups == nil {
		return ParsedID{}, fmt.Errorf("%w: %q", ErrBadJudgmentID, id)
	}

	year, err := strconv.Atoi(textutil.NormalizeSpace(groups[2]))
	if err != nil {
		return ParsedID{}, fmt.Errorf("%w: %q", ErrBadJudgmentID, id)
	}

	return ParsedID{
		Court:      textutil.NormalizeSpace(groups[1]),
		Year:       year,
		CaseType:   textutil.NormalizeSpace(groups[3]),
		CaseNumber: textutil.NormalizeSpace(groups[4]),
	}, nil
}

// RecomposeID renders a ParsedID back into the canonical identifier string.
// For any identifier produced by the listing extractor,
// RecomposeID(ParseJudgmentID(id)) == id.
func (p ParsedID) RecomposeID() string {
	return canonicalID(p.Court, strconv.Itoa(p.Year), p.CaseType, p.CaseNumber)
}
