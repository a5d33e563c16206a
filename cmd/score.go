package cmd

import (
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/hackerhouse/hhboard/internal/scoring"
)

var (
	scoreCategory string
	scoreRole     string
	scoreEvidence string
	scoreStreak   int
)

var scoreCmd = &cobra.Command{
	Use:   "score <description...>",
	Short: "Score one activity",
	Long: `Score one activity the way the dashboard does when it is logged.

The description is matched against the category's keyword rules, an evidence
link adds a bonus per recognised host, the total is capped, scaled by the
role multiplier and topped up by the weekly streak bonus.

Examples:
  hhboard score "Fixed the login bug" --category code --role coder
  hhboard score "Launch thread" -c content --role content -e https://twitter.com/x/status/1 -s 14`,
	Args: cobra.MinimumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		if err := runScore(strings.Join(args, " ")); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			exitFunc(1)
		}
	},
}

func init() {
	scoreCmd.Flags().StringVarP(&scoreCategory, "category", "c", "", "Activity category (code|biz|design|content|misc)")
	scoreCmd.Flags().StringVar(&scoreRole, "role", "", "Builder role (coder|biz|design|content|misc)")
	scoreCmd.Flags().StringVarP(&scoreEvidence, "evidence", "e", "", "Evidence link")
	scoreCmd.Flags().IntVarP(&scoreStreak, "streak", "s", 0, "Current streak in days")
	_ = scoreCmd.MarkFlagRequired("category")
	rootCmd.AddCommand(scoreCmd)
}

func runScore(description string) error {
	if scoreStreak < 0 {
		return fmt.Errorf("streak must not be negative: %d", scoreStreak)
	}

	s, err := setup()
	if err != nil {
		return err
	}
	defer s.Close()

	in := scoring.ActivityInput{
		Category:     scoring.ParseCategory(scoreCategory),
		Description:  description,
		EvidenceLink: scoreEvidence,
		Role:         scoring.ParseRole(scoreRole),
		StreakDays:   scoreStreak,
	}
	if !in.Category.Known() {
		slog.Warn("cmd.score.unknown_category", "category", scoreCategory, "base", s.table.DefaultPoints(in.Category))
	}
	if scoreRole != "" && !in.Role.Known() {
		slog.Warn("cmd.score.unknown_role", "role", scoreRole)
	}

	b := s.table.Score(in)
	slog.Debug("cmd.score", "category", in.Category, "role", in.Role, "final", b.Final)

	if err := s.formatter.Score(b); err != nil {
		return fmt.Errorf("error formatting output: %w", err)
	}
	return nil
}
