// Package files manages the download directory: listing, lookup and deletion
// of finished media files.
package files

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"
)

// DefaultDirPermissions is used when creating download directories
const DefaultDirPermissions = 0o755

// partial and metadata files left behind by interrupted downloads
var skippedExtensions = []string{".part", ".ytdl", ".tmp"}

// Info describes a single downloaded file
type Info struct {
	Name       string    `json:"filename"`
	Size       int64     `json:"size"`
	SizeHuman  string    `json:"size_human"`
	ModifiedAt time.Time `json:"modified_at"`
}

// EnsureDir creates the directory if it does not exist
func EnsureDir(dir string) error {
	if _, err := os.Stat(dir); os.IsNotExist(err) {
		return os.MkdirAll(dir, DefaultDirPermissions)
	}
	return nil
}

// HomeDownloadsDir returns the user's standard Downloads directory
func HomeDownloadsDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get user home directory: %w", err)
	}
	return filepath.Join(home, "Downloads"), nil
}

// List returns downloaded files sorted by modification time, newest first.
// Directories, dotfiles and partial downloads are skipped.
func List(dir string) ([]Info, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return []Info{}, nil
		}
		return nil, fmt.Errorf("failed to read directory %s: %w", dir, err)
	}

	out := make([]Info, 0, len(entries))
	for _, entry := range entries {
		if entry.IsDir() || skipName(entry.Name()) {
			continue
		}
		fi, err := entry.Info()
		if err != nil {
			continue
		}
		out = append(out, Info{
			Name:       entry.Name(),
			Size:       fi.Size(),
			SizeHuman:  humanSize(fi.Size()),
			ModifiedAt: fi.ModTime(),
		})
	}

	sort.Slice(out, func(i, j int) bool {
		return out[i].ModifiedAt.After(out[j].ModifiedAt)
	})
	return out, nil
}

// Stat returns info for a single file inside dir
func Stat(dir, name string) (Info, error) {
	path, err := SafeJoin(dir, name)
	if err != nil {
		return Info{}, err
	}
	fi, err := os.Stat(path)
	if err != nil {
		return Info{}, err
	}
	if fi.IsDir() {
		return Info{}, fmt.Errorf("%s is a directory", name)
	}
	return Info{
		Name:       fi.Name(),
		Size:       fi.Size(),
		SizeHuman:  humanSize(fi.Size()),
		ModifiedAt: fi.ModTime(),
	}, nil
}

// Delete removes a single file inside dir
func Delete(dir, name string) error {
	path, err := SafeJoin(dir, name)
	if err != nil {
		return err
	}
	fi, err := os.Stat(path)
	if err != nil {
		return err
	}
	if fi.IsDir() {
		return fmt.Errorf("%s is a directory", name)
	}
	return os.Remove(path)
}

// SafeJoin joins name onto dir and rejects names that escape it
func SafeJoin(dir, name string) (string, error) {
	if name == "" {
		return "", fmt.Errorf("empty file name")
	}
	if strings.Contains(name, "/") || strings.Contains(name, "\\") || name == ".." {
		return "", fmt.Errorf("invalid file name: %s", name)
	}
	path := filepath.Join(dir, name)
	cleanDir := filepath.Clean(dir)
	if filepath.Dir(path) != cleanDir {
		return "", fmt.Errorf("invalid file name: %s", name)
	}
	return path, nil
}

func skipName(name string) bool {
	if strings.HasPrefix(name, ".") {
		return true
	}
	for _, ext := range skippedExtensions {
		if strings.HasSuffix(name, ext) {
			return true
		}
	}
	return false
}

func humanSize(n int64) string {
	const unit = 1024
	if n < unit {
		return fmt.Sprintf("%d B", n)
	}
	div, exp := int64(unit), 0
	for v := n / unit; v >= unit; v /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.1f %cB", float64(n)/float64(div), "KMGTPE"[exp])
}
