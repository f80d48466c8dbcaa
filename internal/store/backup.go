package store

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
)

// ErrBackupExists is returned when the backup target already exists.
var ErrBackupExists = errors.New("backup file already exists")

// Backup writes a consistent copy of the database to path using
// VACUUM INTO. The target must not exist.
func (s *Store) Backup(ctx context.Context, path string) error {
	if _, err := os.Stat(path); err == nil {
		return fmt.Errorf("backup to %s: %w", path, ErrBackupExists)
	}
	if err := EnsureDir(path); err != nil {
		return fmt.Errorf("backup to %s: %w", path, err)
	}
	if _, err := s.db.ExecContext(ctx, "VACUUM INTO ?", path); err != nil {
		return fmt.Errorf("backup to %s: %w", path, err)
	}
	return nil
}

// Restore replaces the database file at dst with the backup at src.
// The backup is opened first to make sure it is a usable question bank.
// No store may hold dst open while Restore runs.
func Restore(src, dst string) (int, error) {
	backup, err := Open(src)
	if err != nil {
		return 0, fmt.Errorf("restore from %s: %w", src, err)
	}
	n, err := backup.Count(context.Background())
	backup.Close()
	if err != nil {
		return 0, fmt.Errorf("restore from %s: %w", src, err)
	}

	if err := EnsureDir(dst); err != nil {
		return 0, fmt.Errorf("restore to %s: %w", dst, err)
	}
	if err := copyFile(src, dst); err != nil {
		return 0, fmt.Errorf("restore to %s: %w", dst, err)
	}
	for _, suffix := range []string{"-wal", "-shm"} {
		if err := os.Remove(dst + suffix); err != nil && !errors.Is(err, os.ErrNotExist) {
			return 0, fmt.Errorf("restore to %s: %w", dst, err)
		}
	}
	return n, nil
}

func copyFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	tmp, err := os.CreateTemp(filepath.Dir(dst), ".restore-*")
	if err != nil {
		return err
	}
	defer os.Remove(tmp.Name())

	if _, err := io.Copy(tmp, in); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	return os.Rename(tmp.Name(), dst)
}
