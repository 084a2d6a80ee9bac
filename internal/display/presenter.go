// Package display holds the transient presentation signals a player's client
// polls for: reward toasts, level-up celebrations and the daily streak splash.
// None of it is persisted.
package display

import (
	"sync"
	"time"
)

// Toast announces a points award
type Toast struct {
	Amount int       `json:"amount"`
	Reason string    `json:"reason"`
	Shown  time.Time `json:"shown_at"`
}

// LevelUp celebrates reaching a new level
type LevelUp struct {
	Level int       `json:"level"`
	Rank  string    `json:"rank"`
	Shown time.Time `json:"shown_at"`
}

// StreakSplash stays visible until the player dismisses it
type StreakSplash struct {
	Streak int `json:"streak"`
	Bonus  int `json:"bonus"`
}

// State is what should currently be on screen
type State struct {
	Toast        *Toast        `json:"toast,omitempty"`
	LevelUp      *LevelUp      `json:"level_up,omitempty"`
	StreakSplash *StreakSplash `json:"streak_splash,omitempty"`
}

// Durations controls how long self-expiring signals stay up
type Durations struct {
	Toast   time.Duration
	LevelUp time.Duration
}

// Presenter tracks one player's display signals. A new toast replaces the
// current one and restarts its expiry.
type Presenter struct {
	mu        sync.Mutex
	durations Durations
	now       func() time.Time

	toast      *Toast
	toastTimer *time.Timer
	toastGen   uint64

	levelUp    *LevelUp
	levelTimer *time.Timer
	levelGen   uint64

	splash *StreakSplash
}

func NewPresenter(d Durations) *Presenter {
	return &Presenter{durations: d, now: time.Now}
}

// ShowReward displays a toast for amount and reason
func (p *Presenter) ShowReward(amount int, reason string) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.toastTimer != nil {
		p.toastTimer.Stop()
	}
	p.toastGen++
	gen := p.toastGen
	p.toast = &Toast{Amount: amount, Reason: reason, Shown: p.now()}
	p.toastTimer = time.AfterFunc(p.durations.Toast, func() {
		p.mu.Lock()
		defer p.mu.Unlock()
		if p.toastGen == gen {
			p.toast = nil
		}
	})
}

// ShowLevelUp displays the level-up celebration
func (p *Presenter) ShowLevelUp(level int, rank string) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.levelTimer != nil {
		p.levelTimer.Stop()
	}
	p.levelGen++
	gen := p.levelGen
	p.levelUp = &LevelUp{Level: level, Rank: rank, Shown: p.now()}
	p.levelTimer = time.AfterFunc(p.durations.LevelUp, func() {
		p.mu.Lock()
		defer p.mu.Unlock()
		if p.levelGen == gen {
			p.levelUp = nil
		}
	})
}

// ShowStreakSplash displays the streak overlay until DismissStreakSplash
func (p *Presenter) ShowStreakSplash(streak, bonus int) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.splash = &StreakSplash{Streak: streak, Bonus: bonus}
}

func (p *Presenter) DismissStreakSplash() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.splash = nil
}

// Snapshot returns a copy of what is currently showing
func (p *Presenter) Snapshot() State {
	p.mu.Lock()
	defer p.mu.Unlock()

	var s State
	if p.toast != nil {
		t := *p.toast
		s.Toast = &t
	}
	if p.levelUp != nil {
		l := *p.levelUp
		s.LevelUp = &l
	}
	if p.splash != nil {
		sp := *p.splash
		s.StreakSplash = &sp
	}
	return s
}

// Close stops pending expiry timers
func (p *Presenter) Close() {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.toastTimer != nil {
		p.toastTimer.Stop()
	}
	if p.levelTimer != nil {
		p.levelTimer.Stop()
	}
}

// Hub hands out one Presenter per player
type Hub struct {
	mu         sync.Mutex
	durations  Durations
	presenters map[string]*Presenter
}

func NewHub(d Durations) *Hub {
	return &Hub{durations: d, presenters: make(map[string]*Presenter)}
}

// For returns the player's presenter, creating it on first use
func (h *Hub) For(playerID string) *Presenter {
	h.mu.Lock()
	defer h.mu.Unlock()
	p, ok := h.presenters[playerID]
	if !ok {
		p = NewPresenter(h.durations)
		h.presenters[playerID] = p
	}
	return p
}

// Close stops every presenter's timers
func (h *Hub) Close() {
	h.mu.Lock()
	defer h.mu.Unlock()
	for _, p := range h.presenters {
		p.Close()
	}
}
