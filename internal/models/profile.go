package models

import "time"

// Avatar is a selectable player picture
type Avatar struct {
	Emoji string `json:"emoji"`
	Name  string `json:"name"`
}

// Avatars lists the pictures a player can choose from
var Avatars = []Avatar{
	{Emoji: "🐯", Name: "Cool Tiger"},
	{Emoji: "🐼", Name: "Happy Panda"},
	{Emoji: "🐨", Name: "Sleepy Koala"},
	{Emoji: "🦊", Name: "Smart Fox"},
	{Emoji: "🐸", Name: "Jumping Frog"},
	{Emoji: "🦁", Name: "Brave Lion"},
	{Emoji: "🦄", Name: "Magic Unicorn"},
	{Emoji: "🐵", Name: "Cheeky Monkey"},
}

// IsAvatar reports whether emoji is one of the selectable avatars
func IsAvatar(emoji string) bool {
	for _, a := range Avatars {
		if a.Emoji == emoji {
			return true
		}
	}
	return false
}

// PlayerProfile is the player's identity and collected words
type PlayerProfile struct {
	Name             string    `json:"name"`
	Avatar           string    `json:"avatar"`
	JoinedDate       time.Time `json:"joinedDate"`
	PetName          string    `json:"petName,omitempty"`
	LearnedWords     []string  `json:"learnedWords"`
	EatenWords       []string  `json:"eatenWords"`
	TutorialComplete bool      `json:"tutorialComplete"`
}

// HasLearned reports whether word is already in the word bag
func (p *PlayerProfile) HasLearned(word string) bool {
	return containsWord(p.LearnedWords, word)
}

// HasEaten reports whether word has been fed to the companion
func (p *PlayerProfile) HasEaten(word string) bool {
	return containsWord(p.EatenWords, word)
}

func containsWord(words []string, word string) bool {
	for _, w := range words {
		if w == word {
			return true
		}
	}
	return false
}
