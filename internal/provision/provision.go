// Package provision bootstraps the runtime environment: a dedicated tool
// directory, a managed yt-dlp binary and an install manifest linking the
// working copy. Optional media extras (ffmpeg, ffprobe) are best effort.
package provision

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/ytget/smd/internal/download"
	"github.com/ytget/smd/internal/logging"
)

const (
	// DefaultEnvDir is the environment directory created next to the checkout
	DefaultEnvDir = ".smd-env"

	// ManifestName is the install manifest written into the environment
	ManifestName = "manifest.yaml"

	binDir      = "bin"
	dirPerms    = 0o755
	installMode = "editable"
	packageName = "smd"
)

// Manifest records what the provisioner installed and where it points
type Manifest struct {
	Package     string    `yaml:"package"`
	Mode        string    `yaml:"mode"`
	SourceDir   string    `yaml:"source_dir"`
	Engine      string    `yaml:"engine"`
	Extras      []string  `yaml:"extras,omitempty"`
	InstalledAt time.Time `yaml:"installed_at"`
}

// Provisioner runs the five setup steps in order. The step functions are
// fields so tests can substitute them.
type Provisioner struct {
	EnvDir string
	Out    io.Writer

	// InstallEngine fetches or upgrades the yt-dlp binary and returns its path
	InstallEngine func(ctx context.Context) (string, error)
	// VerifyEngine checks that the installed engine actually runs
	VerifyEngine func(ctx context.Context, executable string) error
	// ProbeExtras checks for the optional media tools
	ProbeExtras func(ctx context.Context) ([]string, error)
}

// New returns a provisioner with the production step implementations
func New(envDir string) *Provisioner {
	if envDir == "" {
		envDir = DefaultEnvDir
	}
	return &Provisioner{
		EnvDir:        envDir,
		Out:           os.Stdout,
		InstallEngine: download.Install,
		VerifyEngine:  verifyEngine,
		ProbeExtras:   probeExtras,
	}
}

// Run executes the setup sequence. Mandatory step failures abort the run and
// propagate; the extras step never fails the run.
func (p *Provisioner) Run(ctx context.Context) error {
	p.banner("Setting up Social Media Downloader")

	// Step 1: environment directory
	created, err := p.ensureEnvDir()
	if err != nil {
		return fmt.Errorf("failed to create environment directory: %w", err)
	}
	if created {
		p.step("Created environment directory %s", p.EnvDir)
	} else {
		p.step("Environment directory %s already exists, skipping creation", p.EnvDir)
	}

	// Step 2: activate for the rest of this process
	if err := p.activate(); err != nil {
		return fmt.Errorf("failed to activate environment: %w", err)
	}
	p.step("Activated environment")

	// Step 3: install or upgrade the download engine
	p.step("Installing download engine (this may take a moment)")
	executable, err := p.InstallEngine(ctx)
	if err != nil {
		return fmt.Errorf("failed to install download engine: %w", err)
	}

	// Step 4: install the package in editable mode
	if err := p.installPrimary(ctx, executable); err != nil {
		return fmt.Errorf("failed to install package: %w", err)
	}
	p.step("Installed %s in editable mode", packageName)

	// Step 5: optional extras, never fatal
	extras, err := p.ProbeExtras(ctx)
	if err != nil {
		logging.UserWarning("optional media tools unavailable: %v", err)
	} else if len(extras) > 0 {
		p.step("Found optional media tools: %v", extras)
		if werr := p.recordExtras(extras); werr != nil {
			logging.Warn("failed to record extras in manifest", "error", werr)
		}
	}

	p.banner("Setup complete")
	p.usage()
	return nil
}

// ensureEnvDir creates the environment directory when absent. Returns true
// when the directory was created by this call.
func (p *Provisioner) ensureEnvDir() (bool, error) {
	if fi, err := os.Stat(p.EnvDir); err == nil {
		if !fi.IsDir() {
			return false, fmt.Errorf("%s exists and is not a directory", p.EnvDir)
		}
		return false, nil
	} else if !os.IsNotExist(err) {
		return false, err
	}

	if err := os.MkdirAll(filepath.Join(p.EnvDir, binDir), dirPerms); err != nil {
		return false, err
	}
	return true, nil
}

// activate prepends the environment's bin directory to PATH. The effect is
// process-local and not persisted.
func (p *Provisioner) activate() error {
	bin, err := filepath.Abs(filepath.Join(p.EnvDir, binDir))
	if err != nil {
		return err
	}
	return os.Setenv("PATH", bin+string(os.PathListSeparator)+os.Getenv("PATH"))
}

// installPrimary verifies the engine and writes the manifest linking the
// current working directory as the package source.
func (p *Provisioner) installPrimary(ctx context.Context, executable string) error {
	if p.VerifyEngine != nil {
		if err := p.VerifyEngine(ctx, executable); err != nil {
			return err
		}
	}

	sourceDir, err := os.Getwd()
	if err != nil {
		return err
	}

	return p.writeManifest(Manifest{
		Package:     packageName,
		Mode:        installMode,
		SourceDir:   sourceDir,
		Engine:      executable,
		InstalledAt: time.Now(),
	})
}

// recordExtras rewrites the manifest with the discovered extras
func (p *Provisioner) recordExtras(extras []string) error {
	m, err := p.ReadManifest()
	if err != nil {
		return err
	}
	m.Extras = extras
	return p.writeManifest(*m)
}

func (p *Provisioner) writeManifest(m Manifest) error {
	data, err := yaml.Marshal(m)
	if err != nil {
		return err
	}
	return os.WriteFile(filepath.Join(p.EnvDir, ManifestName), data, 0o644)
}

// ReadManifest loads the install manifest from the environment directory
func (p *Provisioner) ReadManifest() (*Manifest, error) {
	data, err := os.ReadFile(filepath.Join(p.EnvDir, ManifestName))
	if err != nil {
		return nil, err
	}
	var m Manifest
	if err := yaml.Unmarshal(data, &m); err != nil {
		return nil, err
	}
	return &m, nil
}

func (p *Provisioner) banner(format string, args ...any) {
	fmt.Fprintln(p.Out, "==========================================")
	fmt.Fprintf(p.Out, format+"\n", args...)
	fmt.Fprintln(p.Out, "==========================================")
}

func (p *Provisioner) step(format string, args ...any) {
	fmt.Fprintf(p.Out, "✓ "+format+"\n", args...)
}

func (p *Provisioner) usage() {
	fmt.Fprintln(p.Out, "")
	fmt.Fprintln(p.Out, "Usage:")
	fmt.Fprintln(p.Out, "  smd serve                        start the web server")
	fmt.Fprintln(p.Out, "  smd download <url>               download a video")
	fmt.Fprintln(p.Out, "  smd info <url>                   show video metadata")
	fmt.Fprintln(p.Out, "  smd qualities                    list quality presets")
}

// verifyEngine runs the engine with --version to prove it starts
func verifyEngine(ctx context.Context, executable string) error {
	if executable == "" {
		return fmt.Errorf("engine executable path is empty")
	}
	cmd := exec.CommandContext(ctx, executable, "--version")
	cmd.Stdout = io.Discard
	cmd.Stderr = io.Discard
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("engine %s failed to run: %w", executable, err)
	}
	return nil
}

// probeExtras looks for the optional media processing tools on PATH
func probeExtras(_ context.Context) ([]string, error) {
	tools := []string{"ffmpeg", "ffprobe"}
	found := make([]string, 0, len(tools))
	for _, tool := range tools {
		if _, err := exec.LookPath(tool); err == nil {
			found = append(found, tool)
		}
	}
	if len(found) == 0 {
		return nil, fmt.Errorf("ffmpeg and ffprobe not found on PATH")
	}
	return found, nil
}
