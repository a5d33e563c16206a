package snapshot

import (
	"crypto/sha256"
	"encoding/json"
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/hackerhouse/hhboard/internal/leaderboard"
)

// Snapshot records leaderboard positions at a point in time so later
// rankings can show who moved up or down
type Snapshot struct {
	Version     string         `json:"version"`
	CreatedAt   string         `json:"created_at"`
	SortKey     string         `json:"sort_key"`
	Fingerprint string         `json:"fingerprint"`
	Positions   map[string]int `json:"positions"`
}

// Move is one builder's change in position since the snapshot.
type Move struct {
	UserID string
	Delta  int  // positive means moved up
	New    bool // not on the snapshot
}

// Create builds a snapshot from a ranked leaderboard
func Create(ranked []leaderboard.Ranked, key leaderboard.SortKey) *Snapshot {
	positions := make(map[string]int, len(ranked))
	for _, r := range ranked {
		positions[r.Entry.UserID] = r.Position
	}

	return &Snapshot{
		Version:     "1.0",
		SortKey:     string(key),
		Fingerprint: fingerprint(ranked),
		Positions:   positions,
	}
}

// Load reads a snapshot from a JSON file
func Load(path string) (*Snapshot, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read snapshot file: %w", err)
	}

	var s Snapshot
	if err := json.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("failed to parse snapshot file: %w", err)
	}
	if s.Positions == nil {
		s.Positions = map[string]int{}
	}

	return &s, nil
}

// Save writes the snapshot to a JSON file
func (s *Snapshot) Save(path string) error {
	data, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal snapshot: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write snapshot file: %w", err)
	}

	return nil
}

// Changed reports whether ranked differs from the snapshot in order or points.
func (s *Snapshot) Changed(ranked []leaderboard.Ranked) bool {
	return s.Fingerprint != fingerprint(ranked)
}

// Movement compares ranked against the snapshot, keyed by user ID.
// Builders who dropped off the board are not reported.
func (s *Snapshot) Movement(ranked []leaderboard.Ranked) map[string]Move {
	moves := make(map[string]Move, len(ranked))
	for _, r := range ranked {
		id := r.Entry.UserID
		prev, ok := s.Positions[id]
		if !ok {
			moves[id] = Move{UserID: id, New: true}
			continue
		}
		moves[id] = Move{UserID: id, Delta: prev - r.Position}
	}
	return moves
}

// String renders a move as shown next to a leaderboard row.
func (m Move) String() string {
	switch {
	case m.New:
		return "new"
	case m.Delta > 0:
		return fmt.Sprintf("+%d", m.Delta)
	case m.Delta < 0:
		return fmt.Sprintf("%d", m.Delta)
	default:
		return "="
	}
}

// fingerprint hashes the ordered user IDs and their points and streaks.
func fingerprint(ranked []leaderboard.Ranked) string {
	rows := make([]string, 0, len(ranked))
	for _, r := range ranked {
		rows = append(rows, fmt.Sprintf("%d|%s|%d|%d", r.Position, r.Entry.UserID, r.Entry.TotalPoints, r.Entry.StreakDays))
	}
	sort.Strings(rows)

	hash := sha256.Sum256([]byte(strings.Join(rows, "\n")))
	return fmt.Sprintf("%x", hash)
}
