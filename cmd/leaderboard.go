package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/hackerhouse/hhboard/internal/leaderboard"
	"github.com/hackerhouse/hhboard/internal/output"
	"github.com/hackerhouse/hhboard/internal/snapshot"
	"github.com/hackerhouse/hhboard/internal/source"
)

var (
	sortBy           string
	snapshotPath     string
	saveSnapshotPath string
	userID           string
)

var leaderboardCmd = &cobra.Command{
	Use:     "leaderboard",
	Aliases: []string{"board"},
	Short:   "Rank builders by points or streak",
	Long: `Rank builders by total points or streak length, highest first.

Entries come from data files under the root (data/**/*.yaml, *.yml, *.json by
default) or, with --demo, from the built-in demo board. Data files hold either
pre-aggregated "entries" or raw "activities", which are scored and summed.

Use --save-snapshot to record today's positions and --snapshot to show how
builders moved since then.`,
	Run: func(cmd *cobra.Command, args []string) {
		if err := runLeaderboard(); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			exitFunc(1)
		}
	},
}

func init() {
	leaderboardCmd.Flags().StringVar(&sortBy, "sort", "points", "Sort key (points|streak)")
	leaderboardCmd.Flags().StringVar(&snapshotPath, "snapshot", "", "Compare positions against a saved snapshot")
	leaderboardCmd.Flags().StringVar(&saveSnapshotPath, "save-snapshot", "", "Save the current positions to a snapshot file")
	leaderboardCmd.Flags().StringVar(&userID, "user", "", "Show only this builder's row")
	_ = viper.BindPFlag("sortBy", leaderboardCmd.Flags().Lookup("sort"))
	rootCmd.AddCommand(leaderboardCmd)
}

func runLeaderboard() error {
	s, err := setup()
	if err != nil {
		return err
	}
	defer s.Close()

	entries, err := source.New(s.cfg, s.table).Entries(context.Background())
	if err != nil {
		return fmt.Errorf("error loading leaderboard: %w", err)
	}

	key := s.cfg.SortKey()
	ranked := leaderboard.Rank(entries, key)
	slog.Debug("cmd.leaderboard", "entries", len(entries), "sort", key)

	report := &output.LeaderboardReport{
		GeneratedAt: nowFunc(),
		SortKey:     key,
		Rows:        ranked,
		Stats:       leaderboard.Stats(entries),
	}

	if snapshotPath != "" {
		snap, err := snapshot.Load(snapshotPath)
		if err != nil {
			return fmt.Errorf("error loading snapshot: %w", err)
		}
		if snap.SortKey != string(key) {
			slog.Warn("cmd.leaderboard.snapshot_sort_mismatch", "snapshot", snap.SortKey, "current", key)
		}
		if !snap.Changed(ranked) {
			slog.Info("cmd.leaderboard.unchanged", "snapshot", snapshotPath, "created_at", snap.CreatedAt)
		}
		report.Moves = snap.Movement(ranked)
	}

	if saveSnapshotPath != "" {
		snap := snapshot.Create(ranked, key)
		snap.CreatedAt = nowFunc().UTC().Format(time.RFC3339)
		if err := snap.Save(saveSnapshotPath); err != nil {
			return fmt.Errorf("error saving snapshot: %w", err)
		}
		slog.Info("cmd.leaderboard.snapshot_saved", "path", saveSnapshotPath, "builders", len(ranked))
	}

	if userID != "" {
		row, ok := leaderboard.Find(ranked, userID)
		if !ok {
			return fmt.Errorf("builder %q is not on the leaderboard", userID)
		}
		report.Rows = []leaderboard.Ranked{row}
	}

	if err := s.formatter.Leaderboard(report); err != nil {
		return fmt.Errorf("error formatting output: %w", err)
	}
	return nil
}
