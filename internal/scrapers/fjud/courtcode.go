package fjud

import (
	"errors"
	"fmt"
	"strings"
)

// ErrUnknownCourt means the court name could not be mapped to a portal code
// by any strategy.
var ErrUnknownCourt = errors.New("fjud: no court code for name")

type courtEntry struct {
	name string
	code string
}

// courtCodes maps court names to portal court codes. Order matters: the
// substring and summary court strategies return the first entry that
// matches, so more specific names must come before more general ones.
var courtCodes = []courtEntry{
	{"臺灣基隆地方法院", "KLDV"},
	{"內湖簡易庭", "NHEV"},
	{"臺灣臺北地方法院", "TPDV"},
	{"士林地方法院", "SLDV"},
	{"臺灣新北地方法院", "PCDV"},
	{"臺灣桃園地方法院", "TYDV"},
	{"臺灣新竹地方法院", "SCDV"},
	{"臺灣苗栗地方法院", "MLDV"},
	{"臺灣臺中地方法院", "TCDV"},
	{"臺灣南投地方法院", "NTDV"},
	{"臺灣彰化地方法院", "CHDV"},
	{"臺灣雲林地方法院", "YLDV"},
	{"臺灣嘉義地方法院", "CYDV"},
	{"臺灣臺南地方法院", "TNDV"},
	{"臺灣高雄地方法院", "KSDV"},
	{"臺灣屏東地方法院", "PTDV"},
	{"臺灣臺東地方法院", "TTDV"},
	{"臺灣花蓮地方法院", "HLDV"},
	{"臺灣宜蘭地方法院", "ILDV"},
	{"臺灣高等法院", "TPHV"},
	{"羅東簡易庭", "LDEV"},
	{"宜蘭地方法院羅東簡易庭", "LDEV"},
	{"臺東簡易庭", "TTEV"},
	{"臺北簡易庭", "TPEV"},
	{"中壢簡易庭", "TYEV"},
	{"高雄簡易庭", "KSEV"},
}

// ResolveCourtCode maps a court name to its portal code.
//
// Strategies in order: exact table lookup, bidirectional substring
// containment (first table entry wins), and for summary courts (簡易庭) a
// heuristic that finds the parent district court and swaps the district
// suffix for the summary court one. The heuristic is a guess, not a verified
// mapping, which the provenance on the result makes explicit.
func ResolveCourtCode(name string) (CourtCode, error) {
	for _, entry := range courtCodes {
		if entry.name == name {
			return CourtCode{Code: entry.code, Match: MatchExact}, nil
		}
	}

	for _, entry := range courtCodes {
		if strings.Contains(name, entry.name) || strings.Contains(entry.name, name) {
			return CourtCode{Code: entry.code, Match: MatchContains}, nil
		}
	}

	if strings.Contains(name, "簡易庭") {
		for _, entry := range courtCodes {
			district := strings.ReplaceAll(entry.name, "地方法院", "")
			if district != "" && strings.Contains(name, district) {
				return CourtCode{
					Code:  strings.Replace(entry.code, "DV", "EV", 1),
					Match: MatchHeuristic,
				}, nil
			}
		}
	}

	return CourtCode{}, fmt.Errorf("%w: %q", ErrUnknownCourt, name)
}
