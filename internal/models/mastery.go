package models

// MasteryMax caps every activity's mastery value
const MasteryMax = 100

// MasteryTier is the display tier for a mastery value
type MasteryTier struct {
	Label      string `json:"label"`
	LocalLabel string `json:"idnLabel"`
	Color      string `json:"color"`
}

var (
	TierMaster   = MasteryTier{Label: "Master", LocalLabel: "Guru", Color: "#FACC15"}
	TierExpert   = MasteryTier{Label: "Expert", LocalLabel: "Ahli", Color: "#A855F7"}
	TierExplorer = MasteryTier{Label: "Explorer", LocalLabel: "Penjelajah", Color: "#3B82F6"}
	TierNovice   = MasteryTier{Label: "Novice", LocalLabel: "Pemula", Color: "#22C55E"}
)

// MasteryTierFor maps a mastery value to its tier
func MasteryTierFor(value int) MasteryTier {
	switch {
	case value >= 100:
		return TierMaster
	case value >= 70:
		return TierExpert
	case value >= 35:
		return TierExplorer
	default:
		return TierNovice
	}
}

// ClampMastery keeps a mastery value within [0, MasteryMax]
func ClampMastery(value int) int {
	if value < 0 {
		return 0
	}
	if value > MasteryMax {
		return MasteryMax
	}
	return value
}

// IslandMastery maps activities to mastery values in [0, 100]
type IslandMastery map[Activity]int

// Value returns the mastery for a, zero when unset
func (m IslandMastery) Value(a Activity) int {
	return m[a]
}
