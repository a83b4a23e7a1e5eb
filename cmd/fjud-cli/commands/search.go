package commands

import (
	"encoding/json"
	"os"

	"github.com/spf13/cobra"
)

var searchUrls *bool

func init() {
	searchUrls = searchCmd.Flags().Bool("urls", false, "Include source URLs in the output.")
	rootCmd.AddCommand(searchCmd)
}

type judgmentWithUrl struct {
	Id  string `json:"id"`
	Url string `json:"url"`
}

var searchCmd = &cobra.Command{
	Use:   "search <query>",
	Short: "Searches judgments and prints a JSON array of identifiers to stdout.",
	Run: func(cmd *cobra.Command, args []string) {
		initSlog(nil)

		if len(args) == 0 {
			// still emit a well formed (empty) array for pipelines
			printJSON([]string{})
			os.Exit(1)
		}

		client := createClient("")
		judgments := client.Search(cmd.Context(), args[0])

		if *searchUrls {
			out := make([]judgmentWithUrl, 0, len(judgments))
			for _, j := range judgments {
				out = append(out, judgmentWithUrl{Id: j.ID, Url: j.SourceUrl})
			}
			printJSON(out)
			return
		}

		// identifiers only, deduplicated in first-seen order
		seen := make(map[string]bool)
		ids := make([]string, 0, len(judgments))
		for _, j := range judgments {
			if seen[j.ID] {
				continue
			}
			seen[j.ID] = true
			ids = append(ids, j.ID)
		}
		printJSON(ids)
	},
}

// printJSON pretty prints v to stdout, preserving non-ASCII characters.
func printJSON(v any) {
	enc := json.NewEncoder(os.Stdout)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	enc.Encode(v)
}
