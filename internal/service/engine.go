package service

import (
	"context"
	"sync"

	"wordisland/internal/models"
	"wordisland/internal/store"
	"wordisland/internal/utils"
)

// NotifierSource hands out the notifier for a player
type NotifierSource func(playerID string) Notifier

// Engine owns the Player instances sharing one store
type Engine struct {
	st        store.Store
	opts      PlayerOptions
	notifiers NotifierSource

	mu      sync.Mutex
	players map[string]*Player
}

// NewEngine builds players lazily over st. notifiers may be nil.
func NewEngine(st store.Store, opts PlayerOptions, notifiers NotifierSource) *Engine {
	return &Engine{st: st, opts: opts, notifiers: notifiers, players: make(map[string]*Player)}
}

// Player returns the engine for playerID, creating it on first use
func (e *Engine) Player(playerID string) *Player {
	e.mu.Lock()
	defer e.mu.Unlock()
	if p, ok := e.players[playerID]; ok {
		return p
	}
	opts := e.opts
	if e.notifiers != nil {
		opts.Notifier = e.notifiers(playerID)
	}
	p := NewPlayer(e.st, playerID, opts)
	e.players[playerID] = p
	return p
}

// CreatePlayer allocates a new player id and stores its profile
func (e *Engine) CreatePlayer(ctx context.Context, name, avatar string) (string, *models.PlayerProfile, error) {
	id := utils.GeneratePlayerID()
	profile, err := e.Player(id).CreateProfile(ctx, name, avatar)
	if err != nil {
		e.mu.Lock()
		delete(e.players, id)
		e.mu.Unlock()
		return "", nil, err
	}
	return id, profile, nil
}

// PlayerIDs lists every player with stored state
func (e *Engine) PlayerIDs(ctx context.Context) ([]string, error) {
	return store.PlayerIDs(ctx, e.st)
}
