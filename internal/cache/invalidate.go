package cache

import (
	"encoding/json"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// ClearDir removes the directory and all contents, then recreates it empty.
func ClearDir(dir string) error {
	if strings.TrimSpace(dir) == "" {
		return errors.New("empty dir")
	}
	if err := os.RemoveAll(dir); err != nil {
		return err
	}
	return os.MkdirAll(dir, 0o755)
}

// PurgeByAge removes entries older than maxAge. Age comes from the entry's
// SavedAt, or the file modification time when the entry cannot be decoded.
func PurgeByAge(dir string, maxAge time.Duration) (int, error) {
	if maxAge <= 0 {
		return 0, nil
	}
	if _, err := os.Stat(dir); errors.Is(err, os.ErrNotExist) {
		return 0, nil
	}
	now := time.Now().UTC()
	removed := 0
	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || !strings.HasSuffix(d.Name(), ".json") {
			return nil
		}
		saved, ok := savedAt(path, d)
		if !ok || now.Sub(saved) <= maxAge {
			return nil
		}
		if err := os.Remove(path); err == nil {
			removed++
		}
		return nil
	})
	return removed, err
}

func savedAt(path string, d fs.DirEntry) (time.Time, bool) {
	if b, err := os.ReadFile(path); err == nil {
		var e Entry
		if json.Unmarshal(b, &e) == nil && !e.SavedAt.IsZero() {
			return e.SavedAt.UTC(), true
		}
	}
	info, err := d.Info()
	if err != nil {
		return time.Time{}, false
	}
	return info.ModTime().UTC(), true
}
