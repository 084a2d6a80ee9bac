package store

import (
	"context"
	"strings"
)

// Store is durable key/value persistence with synchronous read/write
// semantics. Values are opaque serialized documents.
type Store interface {
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Set(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
	// Keys lists every key starting with prefix, in ascending order.
	Keys(ctx context.Context, prefix string) ([]string, error)
	Close() error
}

// Batcher is implemented by stores that can write several keys atomically.
type Batcher interface {
	SetMany(ctx context.Context, values map[string][]byte) error
}

// SetMany writes values atomically when st supports it and one by one otherwise.
func SetMany(ctx context.Context, st Store, values map[string][]byte) error {
	if b, ok := st.(Batcher); ok {
		return b.SetMany(ctx, values)
	}
	for key, value := range values {
		if err := st.Set(ctx, key, value); err != nil {
			return err
		}
	}
	return nil
}

const namespaceSeparator = "/"

// PlayerPrefix returns the key prefix owning all of a player's state
func PlayerPrefix(playerID string) string {
	return "player" + namespaceSeparator + playerID + namespaceSeparator
}

// Scoped is a view of a Store whose keys are transparently prefixed.
type Scoped struct {
	inner  Store
	prefix string
}

// ForPlayer scopes st to a single player's namespace
func ForPlayer(st Store, playerID string) *Scoped {
	return &Scoped{inner: st, prefix: PlayerPrefix(playerID)}
}

func (s *Scoped) Get(ctx context.Context, key string) ([]byte, bool, error) {
	return s.inner.Get(ctx, s.prefix+key)
}

func (s *Scoped) Set(ctx context.Context, key string, value []byte) error {
	return s.inner.Set(ctx, s.prefix+key, value)
}

func (s *Scoped) Delete(ctx context.Context, key string) error {
	return s.inner.Delete(ctx, s.prefix+key)
}

func (s *Scoped) Keys(ctx context.Context, prefix string) ([]string, error) {
	keys, err := s.inner.Keys(ctx, s.prefix+prefix)
	if err != nil {
		return nil, err
	}
	out := make([]string, 0, len(keys))
	for _, k := range keys {
		out = append(out, strings.TrimPrefix(k, s.prefix))
	}
	return out, nil
}

func (s *Scoped) SetMany(ctx context.Context, values map[string][]byte) error {
	prefixed := make(map[string][]byte, len(values))
	for k, v := range values {
		prefixed[s.prefix+k] = v
	}
	return SetMany(ctx, s.inner, prefixed)
}

// Close is a no-op; the underlying store is owned by the caller.
func (s *Scoped) Close() error {
	return nil
}

// PlayerIDs lists the distinct player namespaces present in st
func PlayerIDs(ctx context.Context, st Store) ([]string, error) {
	keys, err := st.Keys(ctx, "player"+namespaceSeparator)
	if err != nil {
		return nil, err
	}
	seen := make(map[string]struct{})
	var ids []string
	for _, k := range keys {
		rest := strings.TrimPrefix(k, "player"+namespaceSeparator)
		id, _, ok := strings.Cut(rest, namespaceSeparator)
		if !ok || id == "" {
			continue
		}
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}
		ids = append(ids, id)
	}
	return ids, nil
}
