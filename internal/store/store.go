// Package store persists crawl results to sqlite so repeated runs of the
// same query can be diffed or re-exported without hitting the portal again.
package store

import (
	"context"
	"database/sql"
	"time"

	"fjudcrawl/internal/scrapers/fjud"

	_ "embed"

	_ "modernc.org/sqlite"
)

//go:embed schema.sql
var Schema string

type Store struct {
	db *sql.DB
}

func NewStore(db *sql.DB) Store {
	return Store{db: db}
}

// Push replaces the stored records for a query with the given ones.
func (s Store) Push(ctx context.Context, query string, at time.Time, records []fjud.Record) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx, `DELETE FROM judgments WHERE query = ?`, query)
	if err != nil {
		return err
	}

	for _, rec := range records {
		confirmed := 0
		if rec.Confirmed {
			confirmed = 1
		}
		_, err = tx.ExecContext(ctx, `
			INSERT INTO judgments (
				query, judgment_id, judgment_date, case_type,
				source_url, plain_text_url, confirmed, content, scraped_at
			) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			query, rec.ID, rec.Date, rec.CaseType,
			rec.SourceUrl, rec.PlainTextUrl, confirmed, rec.Content, at.Unix(),
		)
		if err != nil {
			return err
		}
	}

	return tx.Commit()
}

// Pull returns the stored records for a query in insertion order.
func (s Store) Pull(ctx context.Context, query string) ([]fjud.Record, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT judgment_id, judgment_date, case_type,
		       source_url, plain_text_url, confirmed, content
		FROM judgments WHERE query = ? ORDER BY id`,
		query,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var records []fjud.Record
	for rows.Next() {
		var rec fjud.Record
		var confirmed int
		err := rows.Scan(
			&rec.ID, &rec.Date, &rec.CaseType,
			&rec.SourceUrl, &rec.PlainTextUrl, &confirmed, &rec.Content,
		)
		if err != nil {
			return nil, err
		}
		rec.Confirmed = confirmed != 0
		records = append(records, rec)
	}
	return records, rows.Err()
}
