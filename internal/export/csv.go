// Package export renders crawl results for human consumption: the CSV file
// the portal's users expect and a run summary table.
package export

import (
	"encoding/csv"
	"io"

	"fjudcrawl/internal/scrapers/fjud"
)

// utf8BOM keeps spreadsheet software from mis-sniffing the encoding of a
// mostly CJK file.
const utf8BOM = "\ufeff"

var csvHeader = []string{"裁判字號", "裁判日期", "裁判案由", "URL", "內容"}

// WriteCSV writes records as UTF-8 CSV with a byte order mark.
func WriteCSV(w io.Writer, records []fjud.Record) error {
	_, err := io.WriteString(w, utf8BOM)
	if err != nil {
		return err
	}

	cw := csv.NewWriter(w)
	if err := cw.Write(csvHeader); err != nil {
		return err
	}
	for _, rec := range records {
		row := []string{rec.ID, rec.Date, rec.CaseType, rec.PlainTextUrl, rec.Content}
		if err := cw.Write(row); err != nil {
			return err
		}
	}

	cw.Flush()
	return cw.Error()
}
