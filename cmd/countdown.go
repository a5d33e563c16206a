package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/hackerhouse/hhboard/internal/countdown"
	"github.com/hackerhouse/hhboard/internal/output"
)

var countdownCmd = &cobra.Command{
	Use:   "countdown",
	Short: "Show the time left until demo day",
	Long: `Show the days, hours, minutes and seconds left until demo day and how
much of the sprint since kickoff has elapsed.

Set demoDay and kickoff (RFC 3339) in .hhboardrc to move the dates.`,
	Run: func(cmd *cobra.Command, args []string) {
		if err := runCountdown(); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			exitFunc(1)
		}
	},
}

func init() {
	rootCmd.AddCommand(countdownCmd)
}

func runCountdown() error {
	s, err := setup()
	if err != nil {
		return err
	}
	defer s.Close()

	now := nowFunc()
	demoDay := s.cfg.DemoDayTime()
	kickoff := s.cfg.KickoffTime()

	report := &output.CountdownReport{
		Now:       now,
		Kickoff:   kickoff,
		DemoDay:   demoDay,
		Remaining: countdown.Until(demoDay, now),
		Progress:  countdown.Progress(kickoff, demoDay, now),
	}
	if err := s.formatter.Countdown(report); err != nil {
		return fmt.Errorf("error formatting output: %w", err)
	}
	return nil
}
