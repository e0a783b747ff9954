package files

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func writeFile(t *testing.T, dir, name string, mtime time.Time) {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte("data"), 0o644); err != nil {
		t.Fatalf("writing %s: %v", name, err)
	}
	if !mtime.IsZero() {
		if err := os.Chtimes(path, mtime, mtime); err != nil {
			t.Fatalf("setting mtime on %s: %v", name, err)
		}
	}
}

func TestEnsureDir(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "downloads")
	if err := EnsureDir(dir); err != nil {
		t.Fatalf("EnsureDir() error = %v", err)
	}
	fi, err := os.Stat(dir)
	if err != nil || !fi.IsDir() {
		t.Fatalf("expected directory at %s", dir)
	}
	// second call is a no-op
	if err := EnsureDir(dir); err != nil {
		t.Errorf("EnsureDir() on existing dir error = %v", err)
	}
}

func TestList(t *testing.T) {
	dir := t.TempDir()
	now := time.Now()
	writeFile(t, dir, "older.mp4", now.Add(-time.Hour))
	writeFile(t, dir, "newer.mp4", now)
	writeFile(t, dir, "partial.mp4.part", now)
	writeFile(t, dir, ".hidden", now)
	if err := os.Mkdir(filepath.Join(dir, "subdir"), 0o755); err != nil {
		t.Fatal(err)
	}

	got, err := List(dir)
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("List() returned %d files, want 2", len(got))
	}
	if got[0].Name != "newer.mp4" || got[1].Name != "older.mp4" {
		t.Errorf("List() order = [%s, %s], want newest first", got[0].Name, got[1].Name)
	}
}

func TestListMissingDir(t *testing.T) {
	got, err := List(filepath.Join(t.TempDir(), "nope"))
	if err != nil {
		t.Fatalf("List() on missing dir error = %v", err)
	}
	if len(got) != 0 {
		t.Errorf("List() on missing dir returned %d files, want 0", len(got))
	}
}

func TestDelete(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "video.mp4", time.Time{})

	if err := Delete(dir, "video.mp4"); err != nil {
		t.Fatalf("Delete() error = %v", err)
	}
	if _, err := os.Stat(filepath.Join(dir, "video.mp4")); !os.IsNotExist(err) {
		t.Error("file still exists after Delete()")
	}

	if err := Delete(dir, "missing.mp4"); err == nil {
		t.Error("Delete() on missing file returned nil error")
	}
}

func TestSafeJoinRejectsTraversal(t *testing.T) {
	dir := t.TempDir()
	bad := []string{"", "..", "../etc/passwd", "a/b.mp4", "a\\b.mp4"}
	for _, name := range bad {
		if _, err := SafeJoin(dir, name); err == nil {
			t.Errorf("SafeJoin(%q) accepted unsafe name", name)
		}
	}

	path, err := SafeJoin(dir, "video.mp4")
	if err != nil {
		t.Fatalf("SafeJoin() error = %v", err)
	}
	if path != filepath.Join(dir, "video.mp4") {
		t.Errorf("SafeJoin() = %q", path)
	}
}

func TestStat(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "video.mp4", time.Time{})

	info, err := Stat(dir, "video.mp4")
	if err != nil {
		t.Fatalf("Stat() error = %v", err)
	}
	if info.Name != "video.mp4" || info.Size != 4 {
		t.Errorf("Stat() = %+v", info)
	}
	if info.SizeHuman != "4 B" {
		t.Errorf("Stat().SizeHuman = %q, want %q", info.SizeHuman, "4 B")
	}
}
