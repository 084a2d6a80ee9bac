package models

const (
	LoginBaseBonus      = 50
	LoginStreakBonus    = 25
	StreakMilestoneDays = 7
	MilestoneBonus      = 500
)

// LoginOutcome is the result of evaluating a player's first visit of a day
type LoginOutcome struct {
	// AlreadyEvaluated is set when today has been evaluated before; nothing else applies.
	AlreadyEvaluated bool `json:"already_evaluated"`
	NewStreak        int  `json:"new_streak"`
	BaseBonus        int  `json:"base_bonus"`
	StreakBonus      int  `json:"streak_bonus"`
	MilestoneBonus   int  `json:"milestone_bonus"`
}

// IsMilestone reports whether the new streak lands on a multiple of seven days
func (o LoginOutcome) IsMilestone() bool {
	return o.MilestoneBonus > 0
}

// DailyBonus is the first award: base plus streak bonus
func (o LoginOutcome) DailyBonus() int {
	return o.BaseBonus + o.StreakBonus
}

func (o LoginOutcome) TotalBonus() int {
	return o.DailyBonus() + o.MilestoneBonus
}

// EvaluateDailyLogin decides the streak and login bonuses for today given the
// last evaluated day and the streak stored alongside it. The streak continues
// only when lastLogin is exactly yesterday.
func EvaluateDailyLogin(today, yesterday, lastLogin Date, currentStreak int) LoginOutcome {
	if !lastLogin.IsZero() && lastLogin == today {
		return LoginOutcome{AlreadyEvaluated: true, NewStreak: currentStreak}
	}

	streak := 1
	if !lastLogin.IsZero() && lastLogin == yesterday {
		streak = currentStreak + 1
	}

	out := LoginOutcome{
		NewStreak:   streak,
		BaseBonus:   LoginBaseBonus,
		StreakBonus: streak * LoginStreakBonus,
	}
	if streak%StreakMilestoneDays == 0 {
		out.MilestoneBonus = MilestoneBonus
	}
	return out
}
