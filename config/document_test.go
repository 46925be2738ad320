package config

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestStoreReadMissingDocument(t *testing.T) {
	store := NewStore(filepath.Join(t.TempDir(), "openclaw.json"))

	_, err := store.Read()
	if !errors.Is(err, ErrDocumentNotFound) {
		t.Fatalf("expected ErrDocumentNotFound, got %v", err)
	}
}

func TestStoreWriteThenRead(t *testing.T) {
	store := NewStore(filepath.Join(t.TempDir(), "openclaw.json"))

	if err := store.Write(`{"a":1}`); err != nil {
		t.Fatalf("Write failed: %v", err)
	}

	got, err := store.Read()
	if err != nil {
		t.Fatalf("Read failed: %v", err)
	}
	if got != `{"a":1}` {
		t.Errorf("Read = %q, want the written content", got)
	}
}

func TestStoreWriteCreatesParentDirectories(t *testing.T) {
	path := filepath.Join(t.TempDir(), "credentials", "auth-profiles.json")
	store := NewStore(path)

	if err := store.Write(`{"version":1}`); err != nil {
		t.Fatalf("Write failed: %v", err)
	}
	if _, err := os.Stat(path); err != nil {
		t.Fatalf("document was not created: %v", err)
	}
}

func TestStoreWriteBacksUpPreviousContent(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "openclaw.json")
	store := NewStore(path)

	if err := store.Write(`{"rev":1}`); err != nil {
		t.Fatalf("first Write failed: %v", err)
	}
	if err := store.Write(`{"rev":2}`); err != nil {
		t.Fatalf("second Write failed: %v", err)
	}

	backups, err := filepath.Glob(path + ".backup-*")
	if err != nil {
		t.Fatalf("glob failed: %v", err)
	}
	if len(backups) != 1 {
		t.Fatalf("expected 1 backup after the second write, got %d", len(backups))
	}

	data, err := os.ReadFile(backups[0])
	if err != nil {
		t.Fatalf("failed to read backup: %v", err)
	}
	if string(data) != `{"rev":1}` {
		t.Errorf("backup content = %q, want the previous revision", data)
	}
}

func TestStoreWriteKeepsBackupRetention(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "openclaw.json")
	store := NewStore(path)

	for i := 0; i < 8; i++ {
		if err := store.Write(`{"rev":` + strings.Repeat("1", i+1) + `}`); err != nil {
			t.Fatalf("Write %d failed: %v", i, err)
		}
	}

	backups, err := filepath.Glob(path + ".backup-*")
	if err != nil {
		t.Fatalf("glob failed: %v", err)
	}
	if len(backups) > 4 {
		t.Errorf("backup retention not applied, %d backups remain", len(backups))
	}
}

func TestStoreFirstWriteCreatesNoBackup(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "openclaw.json")

	if err := NewStore(path).Write(`{}`); err != nil {
		t.Fatalf("Write failed: %v", err)
	}

	backups, err := filepath.Glob(path + ".backup-*")
	if err != nil {
		t.Fatalf("glob failed: %v", err)
	}
	if len(backups) != 0 {
		t.Errorf("first write should not create a backup, got %d", len(backups))
	}
}

func TestStoreWritePermissions(t *testing.T) {
	path := filepath.Join(t.TempDir(), "auth-profiles.json")
	if err := NewStore(path).Write(`{"version":1}`); err != nil {
		t.Fatalf("Write failed: %v", err)
	}

	info, err := os.Stat(path)
	if err != nil {
		t.Fatalf("stat failed: %v", err)
	}
	if perm := info.Mode().Perm(); perm != 0600 {
		t.Errorf("document permissions = %o, want 0600", perm)
	}
}
