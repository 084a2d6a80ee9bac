package models

// Activity identifies one island mini-game
type Activity string

const (
	ActivityVocab       Activity = "VOCAB"
	ActivityChat        Activity = "CHAT"
	ActivityImageQuest  Activity = "IMAGE_QUEST"
	ActivityCameraQuest Activity = "CAMERA_QUEST"
	ActivityMatching    Activity = "MATCHING"
	ActivityScramble    Activity = "SCRAMBLE"
	ActivityCinema      Activity = "CINEMA"
	ActivitySinging     Activity = "SINGING"
	ActivityRoleplay    Activity = "ROLEPLAY"
	ActivityMimic       Activity = "MIMIC"
	ActivityScavenger   Activity = "SCAVENGER"
	ActivityPet         Activity = "PET"
	ActivityTracing     Activity = "TRACING"
	ActivitySimonSays   Activity = "SIMON_SAYS"
	ActivityISpy        Activity = "I_SPY"
	ActivityGreeting    Activity = "GREETING"
)

// AllActivities lists every activity in display order
var AllActivities = []Activity{
	ActivityVocab,
	ActivityChat,
	ActivityImageQuest,
	ActivityCameraQuest,
	ActivityMatching,
	ActivityScramble,
	ActivityCinema,
	ActivitySinging,
	ActivityRoleplay,
	ActivityMimic,
	ActivityScavenger,
	ActivityPet,
	ActivityTracing,
	ActivitySimonSays,
	ActivityISpy,
	ActivityGreeting,
}

func (a Activity) Valid() bool {
	for _, known := range AllActivities {
		if a == known {
			return true
		}
	}
	return false
}

// DefaultMasteryWeights is the mastery increment each activity grants per
// success.
var DefaultMasteryWeights = map[Activity]int{
	ActivityVocab:       5,
	ActivityChat:        2,
	ActivityImageQuest:  10,
	ActivityCameraQuest: 10,
	ActivityMatching:    8,
	ActivityScramble:    8,
	ActivityCinema:      15,
	ActivitySinging:     12,
	ActivityRoleplay:    10,
	ActivityMimic:       10,
	ActivityScavenger:   15,
	ActivityPet:         10,
	ActivityTracing:     10,
	ActivitySimonSays:   10,
	ActivityISpy:        15,
	ActivityGreeting:    10,
}

// QuestType returns the daily quest category an activity reports under, or
// the empty type when the activity has none.
func (a Activity) QuestType() QuestType {
	switch a {
	case ActivityVocab:
		return QuestTypeVocab
	case ActivityChat:
		return QuestTypeChat
	case ActivityScramble:
		return QuestTypeScramble
	case ActivityScavenger:
		return QuestTypeScavenger
	case ActivitySinging:
		return QuestTypeSinging
	case ActivityTracing:
		return QuestTypeTracing
	default:
		return ""
	}
}
