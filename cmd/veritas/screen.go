package veritas

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/devbrewai/veritas/internal/match"
)

var (
	entriesFile  string
	countryHint  string
	queryAliases []string
	topN         int
	outputFormat string
)

// screenCmd represents the screen command
var screenCmd = &cobra.Command{
	Use:   "screen [name]",
	Short: "Screen a name against the watchlist",
	Long: `Screen a single name against the watchlist feed, printing the ranked
candidate matches and the match/review/no_match decision.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		logger := newLogger()
		defer logger.Sync()

		_, snap, err := loadSnapshot(entriesFile, logger)
		if err != nil {
			return err
		}

		if topN > 0 {
			cfg.Screening.TopN = topN
		}

		engine, err := match.NewEngine(cfg)
		if err != nil {
			return err
		}

		var result *match.Result
		if len(queryAliases) > 0 {
			result, err = engine.ScreenProfile(args[0], queryAliases, countryHint, snap)
		} else {
			result, err = engine.Screen(args[0], countryHint, snap)
		}
		if err != nil {
			return fmt.Errorf("screening failed: %w", err)
		}

		if outputFormat == "json" {
			return outputJSON(result)
		}
		outputText(result)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(screenCmd)

	screenCmd.Flags().StringVar(&entriesFile, "entries", "entries.json", "Watchlist entries feed (JSON)")
	screenCmd.Flags().StringVar(&countryHint, "country", "", "Optional ISO country hint")
	screenCmd.Flags().StringSliceVar(&queryAliases, "alias", nil, "Additional spellings to screen alongside the name")
	screenCmd.Flags().IntVar(&topN, "limit", 0, "Maximum number of candidates to return")
	screenCmd.Flags().StringVar(&outputFormat, "format", "text", "Output format (text or json)")
}

func outputJSON(v any) error {
	encoder := json.NewEncoder(os.Stdout)
	encoder.SetIndent("", "  ")
	return encoder.Encode(v)
}

func outputText(result *match.Result) {
	fmt.Printf("Query: %s (normalized: %s)\n", result.QueryName, result.NormalizedQuery)
	fmt.Printf("Decision: %s (top score %.4f)\n\n", result.Decision, result.TopScore)

	if len(result.Candidates) == 0 {
		fmt.Println("No candidates found.")
		return
	}

	for i, c := range result.Candidates {
		fmt.Printf("%d. %s (ID: %s, %s)\n", i+1, c.PrimaryName, c.EntryID, c.ListSource)
		if c.MatchedVariant != c.PrimaryName {
			fmt.Printf("   Matched variant: %s\n", c.MatchedVariant)
		}
		fmt.Printf("   Composite: %.4f (edit %.3f, tokens %.3f, phonetic %.3f)\n",
			c.Scores.Composite, c.Scores.Edit, c.Scores.TokenOverlap, c.Scores.Phonetic)
		if c.CountryFiltered {
			fmt.Printf("   Country-filtered (hint did not match %v)\n", c.Countries)
		}
		fmt.Println()
	}
}
