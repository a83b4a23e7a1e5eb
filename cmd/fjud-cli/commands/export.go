package commands

import (
	"log/slog"
	"os"
	"time"

	"fjudcrawl/internal/export"
	"fjudcrawl/internal/store"
	"fjudcrawl/lib/serviceutil"
	"fjudcrawl/lib/sqliteutil"

	"github.com/spf13/cobra"
)

var (
	exportOut      *string
	exportDb       *string
	exportDebugDir *string
	exportLogFile  *string
)

func init() {
	exportOut = exportCmd.Flags().String("out", "judgment_results.csv", "The CSV file to write results to.")
	exportDb = exportCmd.Flags().String("db", "", "Also write results to an sqlite database at this path.")
	exportDebugDir = exportCmd.Flags().String("debug-dir", "", "Dump every HTTP exchange into this directory.")
	exportLogFile = exportCmd.Flags().String("log-file", "", "Also write logs to this file.")
	rootCmd.AddCommand(exportCmd)
}

var exportCmd = &cobra.Command{
	Use:   "export <query> [--out <path/to/results.csv>]",
	Short: "Searches judgments, fetches their full text, and writes a CSV.",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		if *exportLogFile != "" {
			logFile, err := os.OpenFile(*exportLogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
			if err != nil {
				serviceutil.Fatal("failed to open log file", err)
			}
			defer logFile.Close()
			initSlog(logFile)
		} else {
			initSlog(nil)
		}

		query := args[0]
		client := createClient(*exportDebugDir)

		t1 := time.Now()
		records := client.SearchRecords(cmd.Context(), query)
		elapsed := time.Since(t1)

		out, err := os.Create(*exportOut)
		if err != nil {
			serviceutil.Fatal("failed to create output file", err)
		}
		defer out.Close()
		if err := export.WriteCSV(out, records); err != nil {
			serviceutil.Fatal("failed to write csv", err)
		}
		slog.Info("wrote results", "file", *exportOut, "records", len(records))

		if *exportDb != "" {
			db, err := sqliteutil.OpenDB(store.Schema, *exportDb)
			if err != nil {
				serviceutil.Fatal("failed to open db", err)
			}
			defer db.Close()

			err = store.NewStore(db).Push(cmd.Context(), query, t1, records)
			if err != nil {
				serviceutil.Fatal("failed to store results", err)
			}
			slog.Info("stored results", "db", *exportDb)
		}

		export.Summarize(query, records, elapsed).Render(os.Stdout)
	},
}
