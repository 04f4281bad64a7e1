package ledger

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
)

// Store persists the full ledger document to a single JSON file. Writes go to
// a temp file first and are renamed over the canonical path, so a crash
// mid-write never leaves a truncated ledger behind. The previous good copy is
// kept at <path>.backup and restored if the write path itself fails.
type Store struct {
	path                string
	startEmptyOnCorrupt bool
}

func NewStore(path string, startEmptyOnCorrupt bool) *Store {
	return &Store{
		path:                path,
		startEmptyOnCorrupt: startEmptyOnCorrupt,
	}
}

func (s *Store) Path() string { return s.path }

func (s *Store) backupPath() string { return s.path + ".backup" }
func (s *Store) tempPath() string   { return s.path + ".tmp" }

// Load reads the persisted ledger. A missing file is a normal first run and
// yields an empty ledger. An unreadable or malformed file only degrades to an
// empty ledger when the store was configured to allow it; otherwise the error
// is returned so the operator can intervene instead of silently losing data.
func (s *Store) Load() (*Ledger, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			slog.Info("No ledger file found, starting empty",
				slog.String("type", "store"),
				slog.String("path", s.path))
			return NewLedger(), nil
		}
		return s.degrade(fmt.Errorf("failed to read ledger file: %w", err))
	}

	var l Ledger
	if err := json.Unmarshal(data, &l); err != nil {
		return s.degrade(fmt.Errorf("ledger file is corrupt: %w", err))
	}

	l.normalize()
	return &l, nil
}

func (s *Store) degrade(err error) (*Ledger, error) {
	if !s.startEmptyOnCorrupt {
		return nil, err
	}
	slog.Error("Discarding unreadable ledger file and starting empty",
		slog.String("type", "store"),
		slog.String("path", s.path),
		slog.Any("error", err))
	return NewLedger(), nil
}

// Save writes the full document. The sequence is: copy the current file to
// the backup path, write the new document to a temp file, then atomically
// rename the temp file over the canonical path. On any write failure the
// backup is copied back so the on-disk state stays consistent.
func (s *Store) Save(l *Ledger) error {
	data, err := json.MarshalIndent(l, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode ledger: %w", err)
	}

	if _, err := os.Stat(s.path); err == nil {
		if err := copyFile(s.path, s.backupPath()); err != nil {
			// Backup is best effort only.
			slog.Warn("Failed to back up ledger file",
				slog.String("type", "store"),
				slog.Any("error", err))
		}
	}

	if err := os.WriteFile(s.tempPath(), data, 0o644); err != nil {
		s.restoreBackup()
		return fmt.Errorf("failed to write ledger temp file: %w", err)
	}
	if err := os.Rename(s.tempPath(), s.path); err != nil {
		s.restoreBackup()
		return fmt.Errorf("failed to replace ledger file: %w", err)
	}
	return nil
}

func (s *Store) restoreBackup() {
	if _, err := os.Stat(s.backupPath()); err != nil {
		return
	}
	if err := copyFile(s.backupPath(), s.path); err != nil {
		slog.Error("Failed to restore ledger from backup",
			slog.String("type", "store"),
			slog.Any("error", err))
		return
	}
	slog.Info("Restored ledger from backup",
		slog.String("type", "store"),
		slog.String("path", s.path))
}

func copyFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := os.Create(dst)
	if err != nil {
		return err
	}
	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		return err
	}
	return out.Close()
}
