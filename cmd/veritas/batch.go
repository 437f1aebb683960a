package veritas

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/devbrewai/veritas/internal/match"
)

var (
	batchEntriesFile string
	batchCountry     string
	batchFormat      string
)

// batchCmd represents the batch command
var batchCmd = &cobra.Command{
	Use:   "batch [names-file]",
	Short: "Screen many names from a file",
	Long: `Screen every name in a file (one per line) against the watchlist feed.
Results come back in input order regardless of worker completion order.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		logger := newLogger()
		defer logger.Sync()

		names, err := readNames(args[0])
		if err != nil {
			return err
		}

		_, snap, err := loadSnapshot(batchEntriesFile, logger)
		if err != nil {
			return err
		}

		engine, err := match.NewEngine(cfg)
		if err != nil {
			return err
		}

		queries := make([]match.Query, len(names))
		for i, name := range names {
			queries[i] = match.Query{Name: name, CountryHint: batchCountry}
		}

		items := engine.ScreenBatch(queries, snap)

		if batchFormat == "json" {
			results := make([]*match.Result, len(items))
			for i, item := range items {
				results[i] = item.Result
			}
			return outputJSON(results)
		}

		for i, item := range items {
			if item.Err != nil {
				fmt.Printf("%-30s ERROR: %v\n", names[i], item.Err)
				continue
			}
			fmt.Printf("%-30s %-9s top %.4f (%d candidates)\n",
				names[i], item.Result.Decision, item.Result.TopScore, len(item.Result.Candidates))
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(batchCmd)

	batchCmd.Flags().StringVar(&batchEntriesFile, "entries", "entries.json", "Watchlist entries feed (JSON)")
	batchCmd.Flags().StringVar(&batchCountry, "country", "", "Optional ISO country hint applied to every name")
	batchCmd.Flags().StringVar(&batchFormat, "format", "text", "Output format (text or json)")
}

// readNames reads one query name per line, skipping blanks.
func readNames(path string) ([]string, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open names file: %w", err)
	}
	defer file.Close()

	var names []string
	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		if name := strings.TrimSpace(scanner.Text()); name != "" {
			names = append(names, name)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read names file: %w", err)
	}

	return names, nil
}
