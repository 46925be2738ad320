package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync"

	"iotexsetup/config/storage"
)

// ErrDocumentNotFound is returned by Read when the document is absent on disk
var ErrDocumentNotFound = errors.New("document does not exist")

// Store gives locked access to one JSON document owned by OpenClaw.
// Reads take a shared flock; writes go through an atomic temp-file rename
// with a timestamped backup of the previous content.
type Store struct {
	path string
	mu   sync.Mutex // Mutex to protect concurrent access
}

// NewStore creates a Store for the document at path
func NewStore(path string) *Store {
	return &Store{path: path}
}

// Path returns the document path
func (s *Store) Path() string {
	return s.path
}

// Read returns the raw JSON text of the document
func (s *Store) Read() (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	file, err := os.OpenFile(s.path, os.O_RDONLY, 0600)
	if err != nil {
		if os.IsNotExist(err) {
			return "", fmt.Errorf("%w: %s", ErrDocumentNotFound, s.path)
		}
		return "", fmt.Errorf("failed to open %s: %w", s.path, err)
	}
	defer file.Close()

	// Lock the file for shared read access (LOCK_SH)
	if err := lockFileShared(file); err != nil {
		return "", fmt.Errorf("failed to lock %s: %w", s.path, err)
	}
	defer func() {
		if err := unlockFile(file); err != nil {
			fmt.Printf("⚠️  Failed to unlock file: %v\n", err)
		}
	}()

	data, err := io.ReadAll(file)
	if err != nil {
		return "", fmt.Errorf("failed to read %s: %w", s.path, err)
	}
	return string(data), nil
}

// Write replaces the document content atomically. A backup of the prior
// content is created first; if the update fails after that point the latest
// backup is restored.
func (s *Store) Write(content string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := os.MkdirAll(filepath.Dir(s.path), 0755); err != nil {
		return fmt.Errorf("failed to create directory for %s: %w", s.path, err)
	}

	// Only back up when there is something to back up
	createBackup := storage.FileExists(s.path)

	// Hold an exclusive lock on the current file while it is replaced so
	// concurrent writers on the same document serialize across processes
	if createBackup {
		file, err := os.OpenFile(s.path, os.O_RDWR, 0600)
		if err != nil {
			return fmt.Errorf("failed to open %s: %w", s.path, err)
		}
		defer file.Close()

		if err := lockFileExclusive(file); err != nil {
			return fmt.Errorf("failed to lock %s: %w", s.path, err)
		}
		defer func() {
			if err := unlockFile(file); err != nil {
				fmt.Printf("⚠️  Failed to unlock file: %v\n", err)
			}
		}()
	}

	if err := storage.AtomicFileUpdate(s.path, content, createBackup); err != nil {
		if !createBackup {
			return fmt.Errorf("failed to write %s: %w", s.path, err)
		}
		// Attempt to restore from backup if update fails
		restoreErr := storage.NewBackupManager(storage.DefaultBackupRetention).RestoreFromLatestBackup(s.path)
		if restoreErr != nil {
			return fmt.Errorf("failed to write %s and restore from backup: update error=%v, restore error=%v", s.path, err, restoreErr)
		}
		return fmt.Errorf("failed to write %s but restored from backup: %w", s.path, err)
	}

	return nil
}
