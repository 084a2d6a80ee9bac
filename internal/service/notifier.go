package service

// Notifier receives presentation signals. Implementations must not block.
type Notifier interface {
	ShowReward(amount int, reason string)
	ShowLevelUp(level int, rank string)
	ShowStreakSplash(streak, bonus int)
}

type nopNotifier struct{}

func (nopNotifier) ShowReward(int, string)    {}
func (nopNotifier) ShowLevelUp(int, string)   {}
func (nopNotifier) ShowStreakSplash(int, int) {}

// NopNotifier discards every signal
var NopNotifier Notifier = nopNotifier{}
