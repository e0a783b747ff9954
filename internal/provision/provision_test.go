package provision

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func testProvisioner(t *testing.T) (*Provisioner, *bytes.Buffer) {
	t.Helper()
	var out bytes.Buffer
	p := New(filepath.Join(t.TempDir(), ".smd-env"))
	p.Out = &out
	p.InstallEngine = func(ctx context.Context) (string, error) {
		return "/fake/bin/yt-dlp", nil
	}
	p.VerifyEngine = func(ctx context.Context, executable string) error {
		return nil
	}
	p.ProbeExtras = func(ctx context.Context) ([]string, error) {
		return []string{"ffmpeg", "ffprobe"}, nil
	}
	return p, &out
}

func TestRunCreatesEnvDir(t *testing.T) {
	p, out := testProvisioner(t)

	if err := p.Run(context.Background()); err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	fi, err := os.Stat(p.EnvDir)
	if err != nil || !fi.IsDir() {
		t.Fatalf("environment directory missing after Run(): %v", err)
	}
	if _, err := os.Stat(filepath.Join(p.EnvDir, "bin")); err != nil {
		t.Errorf("bin directory missing: %v", err)
	}
	if !strings.Contains(out.String(), "Setup complete") {
		t.Errorf("final banner missing from output: %s", out.String())
	}
}

func TestRunIsIdempotent(t *testing.T) {
	p, _ := testProvisioner(t)

	if err := p.Run(context.Background()); err != nil {
		t.Fatalf("first Run() error = %v", err)
	}

	// plant a marker to prove the directory is not recreated
	marker := filepath.Join(p.EnvDir, "marker")
	if err := os.WriteFile(marker, []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}

	var out bytes.Buffer
	p.Out = &out
	if err := p.Run(context.Background()); err != nil {
		t.Fatalf("second Run() error = %v", err)
	}

	if _, err := os.Stat(marker); err != nil {
		t.Error("environment directory was recreated on second run")
	}
	if !strings.Contains(out.String(), "already exists") {
		t.Errorf("skip message missing: %s", out.String())
	}
}

func TestRunWritesManifest(t *testing.T) {
	p, _ := testProvisioner(t)

	if err := p.Run(context.Background()); err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	m, err := p.ReadManifest()
	if err != nil {
		t.Fatalf("ReadManifest() error = %v", err)
	}
	if m.Package != "smd" || m.Mode != "editable" {
		t.Errorf("manifest = %+v", m)
	}
	if m.Engine != "/fake/bin/yt-dlp" {
		t.Errorf("manifest engine = %q", m.Engine)
	}
	if m.SourceDir == "" {
		t.Error("manifest source dir empty")
	}
	if len(m.Extras) != 2 {
		t.Errorf("manifest extras = %v", m.Extras)
	}
	if m.InstalledAt.IsZero() {
		t.Error("manifest install time not set")
	}
}

func TestRunActivatesEnvironment(t *testing.T) {
	p, _ := testProvisioner(t)

	oldPath := os.Getenv("PATH")
	t.Cleanup(func() { os.Setenv("PATH", oldPath) })

	if err := p.Run(context.Background()); err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	bin, _ := filepath.Abs(filepath.Join(p.EnvDir, "bin"))
	if !strings.HasPrefix(os.Getenv("PATH"), bin) {
		t.Errorf("PATH does not start with %s: %s", bin, os.Getenv("PATH"))
	}
}

func TestExtrasFailureIsNotFatal(t *testing.T) {
	p, out := testProvisioner(t)
	p.ProbeExtras = func(ctx context.Context) ([]string, error) {
		return nil, errors.New("not installed")
	}

	if err := p.Run(context.Background()); err != nil {
		t.Fatalf("Run() error = %v, extras failure must not be fatal", err)
	}
	if !strings.Contains(out.String(), "Setup complete") {
		t.Error("final banner missing despite successful mandatory steps")
	}
}

func TestEngineInstallFailureIsFatal(t *testing.T) {
	p, out := testProvisioner(t)
	p.InstallEngine = func(ctx context.Context) (string, error) {
		return "", errors.New("download failed")
	}

	err := p.Run(context.Background())
	if err == nil {
		t.Fatal("Run() error = nil, want engine install failure")
	}
	if strings.Contains(out.String(), "Setup complete") {
		t.Error("final banner printed despite fatal failure")
	}
}

func TestPrimaryInstallFailureIsFatal(t *testing.T) {
	p, out := testProvisioner(t)
	p.VerifyEngine = func(ctx context.Context, executable string) error {
		return errors.New("engine does not run")
	}

	err := p.Run(context.Background())
	if err == nil {
		t.Fatal("Run() error = nil, want primary install failure")
	}
	if strings.Contains(out.String(), "Setup complete") {
		t.Error("final banner printed despite fatal failure")
	}
	if _, merr := p.ReadManifest(); merr == nil {
		t.Error("manifest written despite failed install")
	}
}

func TestEnvDirBlockedByFile(t *testing.T) {
	p, _ := testProvisioner(t)

	// occupy the env dir path with a regular file
	if err := os.WriteFile(p.EnvDir, []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}

	if err := p.Run(context.Background()); err == nil {
		t.Error("Run() error = nil, want failure when env path is a file")
	}
}

func TestNewDefaults(t *testing.T) {
	p := New("")
	if p.EnvDir != DefaultEnvDir {
		t.Errorf("EnvDir = %q, want %q", p.EnvDir, DefaultEnvDir)
	}
	if p.InstallEngine == nil || p.VerifyEngine == nil || p.ProbeExtras == nil {
		t.Error("step functions not initialized")
	}
}
