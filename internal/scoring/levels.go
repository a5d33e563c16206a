package scoring

// LevelTier is a named milestone unlocked at a cumulative point threshold.
type LevelTier struct {
	Level     int    `json:"level"`
	Title     string `json:"title"`
	Threshold int    `json:"threshold"`
}

//nolint:gochecknoglobals // Level thresholds, ascending
var levelTiers = [...]LevelTier{
	{1, "Newbie", 0},
	{2, "Builder", 50},
	{3, "Hustler", 150},
	{4, "Achiever", 300},
	{5, "Legend", 500},
	{6, "Unicorn", 800},
	{7, "Mythical", 1200},
}

// LevelTiers returns the level tiers in ascending threshold order.
func LevelTiers() []LevelTier {
	return append([]LevelTier(nil), levelTiers[:]...)
}

// LevelInfo is where a cumulative point total sits on the level ladder.
type LevelInfo struct {
	Level        int    `json:"level"`
	Title        string `json:"title"`
	Points       int    `json:"points"`
	Threshold    int    `json:"threshold"`
	PointsToNext int    `json:"points_to_next"` // 0 at max level
}

// MaxLevel reports whether no higher tier exists.
func (l LevelInfo) MaxLevel() bool {
	return l.PointsToNext == 0
}

// Progress is the fraction of the way from the current tier to the next,
// 1 at max level.
func (l LevelInfo) Progress() float64 {
	if l.MaxLevel() {
		return 1
	}
	span := l.Points - l.Threshold + l.PointsToNext
	if span <= 0 {
		return 0
	}
	return float64(l.Points-l.Threshold) / float64(span)
}

// LevelFor returns the highest tier totalPoints qualifies for and how many
// points remain until the next one. Negative totals count as zero.
func LevelFor(totalPoints int) LevelInfo {
	if totalPoints < 0 {
		totalPoints = 0
	}
	current := 0
	for i, tier := range levelTiers {
		if totalPoints >= tier.Threshold {
			current = i
		}
	}

	info := LevelInfo{
		Level:     levelTiers[current].Level,
		Title:     levelTiers[current].Title,
		Points:    totalPoints,
		Threshold: levelTiers[current].Threshold,
	}
	if current+1 < len(levelTiers) {
		info.PointsToNext = levelTiers[current+1].Threshold - totalPoints
	}
	return info
}
