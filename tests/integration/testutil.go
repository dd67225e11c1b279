// Package integration provides CLI integration tests for shadowcopy.
package integration

import (
	"bytes"
	"os"
	"os/exec"
	"path/filepath"
	"testing"
)

var (
	// shadowcopyBin is the path to the built shadowcopy binary.
	shadowcopyBin string
	// buildErr captures any build error.
	buildErr error
)

// BuildError wraps a build error with output.
type BuildError struct {
	Err    error
	Output string
}

func (e *BuildError) Error() string {
	return e.Err.Error() + ": " + e.Output
}

// FindProjectRoot finds the project root by walking up and looking for go.mod.
func FindProjectRoot() (string, error) {
	dir, err := os.Getwd()
	if err != nil {
		return "", err
	}

	for {
		goModPath := filepath.Join(dir, "go.mod")
		if _, err := os.Stat(goModPath); err == nil {
			return dir, nil
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			return "", os.ErrNotExist
		}
		dir = parent
	}
}

// SetShadowcopyBin sets the path to the shadowcopy binary (called from TestMain).
func SetShadowcopyBin(path string) {
	shadowcopyBin = path
}

// SetBuildErr sets the build error (called from TestMain).
func SetBuildErr(err error) {
	buildErr = err
}

// TestEnv provides an isolated test environment with its own config and data directory.
type TestEnv struct {
	t       *testing.T
	TempDir string
	Config  string
	DataDir string
}

// NewTestEnv creates a new isolated test environment.
func NewTestEnv(t *testing.T) *TestEnv {
	t.Helper()

	if buildErr != nil {
		t.Fatalf("failed to build shadowcopy: %v", buildErr)
	}
	if shadowcopyBin == "" {
		t.Fatal("shadowcopy binary not built (shadowcopyBin is empty)")
	}

	tempDir := t.TempDir()
	dataDir := filepath.Join(tempDir, "data")
	configDir := filepath.Join(tempDir, "config")

	if err := os.MkdirAll(configDir, 0755); err != nil {
		t.Fatalf("failed to create config dir: %v", err)
	}
	configContent := "log_level: warn\njournal: false\ndata_dir: " + dataDir + "\n"
	if err := os.WriteFile(filepath.Join(configDir, "config.yaml"), []byte(configContent), 0644); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}

	return &TestEnv{
		t:       t,
		TempDir: tempDir,
		Config:  configDir,
		DataDir: dataDir,
	}
}

// CmdResult holds the result of a shadowcopy command execution.
type CmdResult struct {
	Stdout   string
	Stderr   string
	ExitCode int
}

// RunShadowcopy executes the shadowcopy CLI with the given arguments.
// Returns stdout, stderr, and exit code.
func (e *TestEnv) RunShadowcopy(args ...string) CmdResult {
	e.t.Helper()

	allArgs := append([]string{"--config-dir", e.Config, "--data-dir", e.DataDir}, args...)
	cmd := exec.Command(shadowcopyBin, allArgs...)

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()
	exitCode := 0
	if err != nil {
		if exitErr, ok := err.(*exec.ExitError); ok {
			exitCode = exitErr.ExitCode()
		} else {
			e.t.Fatalf("failed to run shadowcopy: %v", err)
		}
	}

	return CmdResult{
		Stdout:   stdout.String(),
		Stderr:   stderr.String(),
		ExitCode: exitCode,
	}
}

// MustRunShadowcopy executes the shadowcopy CLI and fails the test if it returns non-zero.
func (e *TestEnv) MustRunShadowcopy(args ...string) CmdResult {
	e.t.Helper()
	result := e.RunShadowcopy(args...)
	if result.ExitCode != 0 {
		e.t.Fatalf("shadowcopy %v failed with exit code %d:\nstdout: %s\nstderr: %s",
			args, result.ExitCode, result.Stdout, result.Stderr)
	}
	return result
}

// WriteTree creates files under root from a map of relative path to content.
func (e *TestEnv) WriteTree(root string, files map[string]string) {
	e.t.Helper()
	for rel, content := range files {
		path := filepath.Join(root, filepath.FromSlash(rel))
		if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
			e.t.Fatalf("failed to create dir for %s: %v", rel, err)
		}
		if err := os.WriteFile(path, []byte(content), 0644); err != nil {
			e.t.Fatalf("failed to write %s: %v", rel, err)
		}
	}
}

// ReadTreeFile reads a file written by a mirror run and returns its content.
func (e *TestEnv) ReadTreeFile(root, rel string) string {
	e.t.Helper()
	data, err := os.ReadFile(filepath.Join(root, filepath.FromSlash(rel)))
	if err != nil {
		e.t.Fatalf("failed to read %s: %v", rel, err)
	}
	return string(data)
}
