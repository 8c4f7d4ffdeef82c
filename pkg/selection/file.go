package selection

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/matzehuels/vehiclelookup/pkg/integrations/vehicles"
)

// FileStore is a file-based selection store for CLI use.
// Each profile is stored as <dir>/<profile>.json.
type FileStore struct {
	mu      sync.RWMutex
	baseDir string
}

// NewFileStore creates a file-based selection store.
// If baseDir is empty, defaults to ~/.config/vehiclelookup/selections/
func NewFileStore(baseDir string) (*FileStore, error) {
	if baseDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("get home dir: %w", err)
		}
		baseDir = filepath.Join(home, ".config", "vehiclelookup", "selections")
	}
	if err := os.MkdirAll(baseDir, 0o700); err != nil {
		return nil, fmt.Errorf("create selection dir: %w", err)
	}
	return &FileStore{baseDir: baseDir}, nil
}

// Dir returns the directory selections are stored in.
func (s *FileStore) Dir() string { return s.baseDir }

func (s *FileStore) path(profile string) string {
	return filepath.Join(s.baseDir, profile+".json")
}

func (s *FileStore) Get(ctx context.Context, profile string) (*vehicles.VehicleState, error) {
	if err := checkProfile(profile); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()

	data, err := os.ReadFile(s.path(profile))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("read selection file: %w", err)
	}

	var st vehicles.VehicleState
	if err := json.Unmarshal(data, &st); err != nil {
		return nil, fmt.Errorf("parse selection: %w", err)
	}
	return &st, nil
}

func (s *FileStore) Set(ctx context.Context, profile string, st *vehicles.VehicleState) error {
	if err := checkSet(profile, st); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := json.MarshalIndent(st, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal selection: %w", err)
	}
	if err := os.WriteFile(s.path(profile), data, 0o600); err != nil {
		return fmt.Errorf("write selection file: %w", err)
	}
	return nil
}

func (s *FileStore) Delete(ctx context.Context, profile string) error {
	if err := checkProfile(profile); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	err := os.Remove(s.path(profile))
	if os.IsNotExist(err) {
		return nil
	}
	return err
}

func (s *FileStore) Close() error { return nil }

var _ Store = (*FileStore)(nil)
