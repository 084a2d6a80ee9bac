package models

// Facts are the raw achievement counters badge rules are evaluated against
type Facts struct {
	Launches         int `json:"launches"`
	VocabSets        int `json:"vocabSets"`
	Drawings         int `json:"drawings"`
	LettersTraced    int `json:"lettersTraced"`
	SongsSung        int `json:"songsSung"`
	ActivityComplete int `json:"activityComplete"`
}
