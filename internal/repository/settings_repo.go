package repository

import (
	"context"
	"encoding/json"
	"fmt"

	"wordisland/internal/store"
)

// SettingsRepository holds UI preferences that are not part of progression
type SettingsRepository struct {
	st store.Store
}

func NewSettingsRepository(st store.Store) *SettingsRepository {
	return &SettingsRepository{st: st}
}

// IsMuted reports the sound preference. Defaults to sound on.
func (r *SettingsRepository) IsMuted(ctx context.Context) (bool, error) {
	raw, ok, err := r.st.Get(ctx, KeyIsMuted)
	if err != nil {
		return false, fmt.Errorf("failed to read %s: %w", KeyIsMuted, err)
	}
	if !ok {
		return false, nil
	}
	var muted bool
	if err := json.Unmarshal(raw, &muted); err != nil {
		return false, nil
	}
	return muted, nil
}

// SetMuted stores the sound preference
func (r *SettingsRepository) SetMuted(ctx context.Context, muted bool) error {
	raw, _ := json.Marshal(muted)
	if err := r.st.Set(ctx, KeyIsMuted, raw); err != nil {
		return fmt.Errorf("failed to write %s: %w", KeyIsMuted, err)
	}
	return nil
}
