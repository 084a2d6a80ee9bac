package service

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"go.uber.org/zap"

	"wordisland/internal/store"
)

const backupVersion = "1.0"

// BackupData is the complete backup document
type BackupData struct {
	Version     string         `json:"version"`
	ExportedAt  time.Time      `json:"exported_at"`
	StoreEngine string         `json:"store_engine"`
	Players     []PlayerBackup `json:"players"`
}

// PlayerBackup holds every stored value of one player. Values are kept as
// raw JSON documents.
type PlayerBackup struct {
	PlayerID string                     `json:"player_id"`
	Entries  map[string]json.RawMessage `json:"entries"`
}

// BackupService exports and restores player state
type BackupService struct {
	st     store.Store
	engine string
	logger *zap.Logger
}

// NewBackupService creates a backup service over st; engine is recorded in exports
func NewBackupService(st store.Store, engine string, logger *zap.Logger) *BackupService {
	return &BackupService{st: st, engine: engine, logger: logger}
}

// Export writes a backup of playerID, or of every player when playerID is
// empty, to outputPath.
func (s *BackupService) Export(ctx context.Context, outputPath, playerID string) (*BackupData, error) {
	file, err := os.Create(outputPath)
	if err != nil {
		return nil, fmt.Errorf("failed to create output file: %w", err)
	}
	defer file.Close()

	backup, err := s.ExportToWriter(ctx, file, playerID)
	if err != nil {
		return nil, err
	}
	s.logger.Info("store exported", zap.String("path", outputPath), zap.Int("players", len(backup.Players)))
	return backup, nil
}

// ExportToWriter encodes the backup document to w
func (s *BackupService) ExportToWriter(ctx context.Context, w io.Writer, playerID string) (*BackupData, error) {
	backup := &BackupData{
		Version:     backupVersion,
		ExportedAt:  time.Now().UTC(),
		StoreEngine: s.engine,
	}

	ids := []string{playerID}
	if playerID == "" {
		var err error
		if ids, err = store.PlayerIDs(ctx, s.st); err != nil {
			return nil, fmt.Errorf("failed to list players: %w", err)
		}
	}

	for _, id := range ids {
		pb, err := s.exportPlayer(ctx, id)
		if err != nil {
			return nil, fmt.Errorf("failed to export player %s: %w", id, err)
		}
		backup.Players = append(backup.Players, pb)
	}

	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(backup); err != nil {
		return nil, fmt.Errorf("failed to encode backup: %w", err)
	}
	return backup, nil
}

func (s *BackupService) exportPlayer(ctx context.Context, playerID string) (PlayerBackup, error) {
	scoped := store.ForPlayer(s.st, playerID)
	keys, err := scoped.Keys(ctx, "")
	if err != nil {
		return PlayerBackup{}, err
	}

	pb := PlayerBackup{PlayerID: playerID, Entries: make(map[string]json.RawMessage, len(keys))}
	for _, key := range keys {
		raw, ok, err := scoped.Get(ctx, key)
		if err != nil {
			return PlayerBackup{}, err
		}
		if !ok {
			continue
		}
		if !json.Valid(raw) {
			// legacy bare strings are kept as JSON strings
			quoted, _ := json.Marshal(string(raw))
			raw = quoted
		}
		pb.Entries[key] = raw
	}
	return pb, nil
}

// Import restores a backup file. With clearFirst set, existing state of each
// imported player is removed first.
func (s *BackupService) Import(ctx context.Context, inputPath string, clearFirst bool) (*BackupData, error) {
	file, err := os.Open(inputPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open input file: %w", err)
	}
	defer file.Close()
	return s.ImportFromReader(ctx, file, clearFirst)
}

// ImportFromReader restores a backup document read from r
func (s *BackupService) ImportFromReader(ctx context.Context, r io.Reader, clearFirst bool) (*BackupData, error) {
	var backup BackupData
	if err := json.NewDecoder(r).Decode(&backup); err != nil {
		return nil, fmt.Errorf("failed to decode backup: %w", err)
	}
	s.logger.Info("importing backup",
		zap.String("version", backup.Version),
		zap.Time("exported_at", backup.ExportedAt),
		zap.Int("players", len(backup.Players)))

	for _, pb := range backup.Players {
		if strings.TrimSpace(pb.PlayerID) == "" || strings.Contains(pb.PlayerID, "/") {
			return nil, fmt.Errorf("invalid player id %q in backup", pb.PlayerID)
		}
		scoped := store.ForPlayer(s.st, pb.PlayerID)
		if clearFirst {
			if err := s.clearPlayer(ctx, scoped); err != nil {
				return nil, fmt.Errorf("failed to clear player %s: %w", pb.PlayerID, err)
			}
		}
		values := make(map[string][]byte, len(pb.Entries))
		for key, raw := range pb.Entries {
			values[key] = []byte(raw)
		}
		if err := scoped.SetMany(ctx, values); err != nil {
			return nil, fmt.Errorf("failed to import player %s: %w", pb.PlayerID, err)
		}
	}
	return &backup, nil
}

func (s *BackupService) clearPlayer(ctx context.Context, scoped *store.Scoped) error {
	keys, err := scoped.Keys(ctx, "")
	if err != nil {
		return err
	}
	for _, key := range keys {
		if err := scoped.Delete(ctx, key); err != nil {
			return err
		}
	}
	return nil
}
