package export

import (
	"io"
	"time"

	"fjudcrawl/internal/scrapers/fjud"

	"github.com/jedib0t/go-pretty/v6/table"
)

// Summary is what one crawl run did, for the end-of-run report.
type Summary struct {
	Query       string
	Found       int
	Confirmed   int
	Unconfirmed int
	Fetched     int
	Elapsed     time.Duration
}

// Summarize tallies a record set into a Summary.
func Summarize(query string, records []fjud.Record, elapsed time.Duration) Summary {
	s := Summary{
		Query:   query,
		Found:   len(records),
		Elapsed: elapsed,
	}
	for _, rec := range records {
		if rec.PlainTextUrl == "" {
			continue
		}
		if rec.Confirmed {
			s.Confirmed++
		} else {
			s.Unconfirmed++
		}
		if rec.Content != "" {
			s.Fetched++
		}
	}
	return s
}

// Render writes the summary as a table.
func (s Summary) Render(w io.Writer) {
	t := table.NewWriter()
	t.SetStyle(table.StyleRounded)
	t.SetOutputMirror(w)

	t.AppendRows([]table.Row{
		{"query", s.Query},
		{"judgments found", s.Found},
		{"plain text urls confirmed", s.Confirmed},
		{"plain text urls unconfirmed", s.Unconfirmed},
		{"documents fetched", s.Fetched},
		{"elapsed", s.Elapsed.Round(time.Millisecond).String()},
	})
	t.Render()
}
