package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
)

// FileStore keeps the save in a JSON file.
type FileStore struct {
	path   string
	logger *slog.Logger
}

var _ Store = (*FileStore)(nil)

// DefaultPath returns ~/.config/petsim/pet.json.
func DefaultPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to find home directory: %w", err)
	}
	return filepath.Join(home, ".config", "petsim", "pet.json"), nil
}

// NewFileStore creates a store at path.
func NewFileStore(path string, logger *slog.Logger) *FileStore {
	return &FileStore{path: path, logger: logger}
}

// Path returns the save file location.
func (f *FileStore) Path() string {
	return f.path
}

func (f *FileStore) Load(ctx context.Context) (*Save, error) {
	data, err := os.ReadFile(f.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, ErrNoSave
		}
		f.logger.Error("Failed to read save file", "path", f.path, "error", err)
		return nil, fmt.Errorf("failed to read save file: %w", err)
	}

	var s Save
	if err := json.Unmarshal(data, &s); err != nil {
		f.logger.Error("Failed to unmarshal save", "path", f.path, "error", err)
		return nil, fmt.Errorf("failed to unmarshal save: %w", err)
	}
	s.normalize()
	return &s, nil
}

// Save writes through a temporary file so a crash never leaves half a save.
func (f *FileStore) Save(ctx context.Context, s *Save) error {
	if err := os.MkdirAll(filepath.Dir(f.path), 0755); err != nil {
		return fmt.Errorf("failed to create save directory: %w", err)
	}

	data, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		f.logger.Error("Failed to marshal save", "error", err)
		return fmt.Errorf("failed to marshal save: %w", err)
	}

	tmp := f.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0644); err != nil {
		f.logger.Error("Failed to write save file", "path", tmp, "error", err)
		return fmt.Errorf("failed to write save file: %w", err)
	}
	if err := os.Rename(tmp, f.path); err != nil {
		return fmt.Errorf("failed to replace save file: %w", err)
	}
	return nil
}

func (f *FileStore) Close() error {
	return nil
}
