package models

// LevelThresholds are the minimum points for each level, ascending
var LevelThresholds = []int{0, 500, 1200, 2500, 5000, 10000}

// Ranks are the display names indexed by level-1
var Ranks = []string{"Little Scout", "Junior Explorer", "Word Wizard", "Language Legend", "Island Master"}

// levelStepBeyondTable is the span used for progress once points exceed the table
const levelStepBeyondTable = 5000

// LevelForPoints counts the thresholds at or below points.
func LevelForPoints(points int) int {
	level := 0
	for _, t := range LevelThresholds {
		if points >= t {
			level++
		}
	}
	return level
}

// RankForLevel clamps into the rank table
func RankForLevel(level int) string {
	idx := level - 1
	if idx < 0 {
		idx = 0
	}
	if idx >= len(Ranks) {
		idx = len(Ranks) - 1
	}
	return Ranks[idx]
}

// LevelProgress describes how far points are through the current level
type LevelProgress struct {
	Level       int     `json:"level"`
	Rank        string  `json:"rank"`
	LevelStart  int     `json:"level_start"`
	NextLevelAt int     `json:"next_level_at"`
	Percent     float64 `json:"percent"`
}

// ProgressForPoints derives level, rank and in-level progress from points
func ProgressForPoints(points int) LevelProgress {
	level := LevelForPoints(points)
	start := 0
	if level > 0 {
		start = LevelThresholds[level-1]
	}
	next := LevelThresholds[len(LevelThresholds)-1] + levelStepBeyondTable
	if level < len(LevelThresholds) {
		next = LevelThresholds[level]
	}

	percent := float64(points-start) / float64(next-start) * 100
	if percent > 100 {
		percent = 100
	}
	if percent < 0 {
		percent = 0
	}

	return LevelProgress{
		Level:       level,
		Rank:        RankForLevel(level),
		LevelStart:  start,
		NextLevelAt: next,
		Percent:     percent,
	}
}

// CompanionStage is the growth tier of the word-eating companion creature
type CompanionStage string

const (
	CompanionEgg    CompanionStage = "egg"
	CompanionBaby   CompanionStage = "baby"
	CompanionJunior CompanionStage = "junior"
	CompanionMaster CompanionStage = "master"
)

// CompanionStageForPoints grows the companion with the player's points
func CompanionStageForPoints(points int) CompanionStage {
	switch {
	case points >= 5000:
		return CompanionMaster
	case points >= 2500:
		return CompanionJunior
	case points >= 500:
		return CompanionBaby
	default:
		return CompanionEgg
	}
}
