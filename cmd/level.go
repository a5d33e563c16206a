package cmd

import (
	"fmt"
	"os"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/hackerhouse/hhboard/internal/scoring"
)

var levelCmd = &cobra.Command{
	Use:   "level <points>",
	Short: "Show the level for a point total",
	Long: `Show the level, title and progress toward the next level for a
cumulative point total.

Levels: Newbie 0, Builder 50, Hustler 150, Achiever 300, Legend 500,
Unicorn 800, Mythical 1200.`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		if err := runLevel(args[0]); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			exitFunc(1)
		}
	},
}

func init() {
	rootCmd.AddCommand(levelCmd)
}

func runLevel(arg string) error {
	points, err := strconv.Atoi(arg)
	if err != nil {
		return fmt.Errorf("invalid point total %q: must be a whole number", arg)
	}

	s, err := setup()
	if err != nil {
		return err
	}
	defer s.Close()

	if err := s.formatter.Level(scoring.LevelFor(points)); err != nil {
		return fmt.Errorf("error formatting output: %w", err)
	}
	return nil
}
