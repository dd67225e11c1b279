// CLI integration tests for shadowcopy.
package integration

import (
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

// TestMain builds the shadowcopy binary once before running tests.
func TestMain(m *testing.M) {
	projectRoot, err := FindProjectRoot()
	if err != nil {
		SetBuildErr(err)
		os.Exit(1)
	}

	tmpDir, err := os.MkdirTemp("", "shadowcopy-test-*")
	if err != nil {
		SetBuildErr(err)
		os.Exit(1)
	}
	binPath := filepath.Join(tmpDir, "shadowcopy")
	SetShadowcopyBin(binPath)

	cmd := exec.Command("go", "build", "-o", binPath, "./cmd/shadowcopy")
	cmd.Dir = projectRoot
	if output, err := cmd.CombinedOutput(); err != nil {
		SetBuildErr(&BuildError{
			Err:    err,
			Output: string(output),
		})
		os.Exit(1)
	}

	code := m.Run()

	os.RemoveAll(tmpDir)

	os.Exit(code)
}

func TestVersion(t *testing.T) {
	env := NewTestEnv(t)

	result := env.MustRunShadowcopy("version")

	if !strings.HasPrefix(result.Stdout, "shadowcopy ") {
		t.Errorf("unexpected version output %q", result.Stdout)
	}
}

func TestMirrorCopiesTree(t *testing.T) {
	env := NewTestEnv(t)

	src := filepath.Join(env.TempDir, "src")
	dst := filepath.Join(env.TempDir, "dst")
	env.WriteTree(src, map[string]string{
		"top.txt":             "top",
		"nested/inner.txt":    "inner",
		"nested/deep/leaf.go": "package leaf",
	})

	result := env.MustRunShadowcopy("mirror", src, dst)

	if !strings.Contains(result.Stdout, "3 copied") {
		t.Errorf("expected 3 copied in %q", result.Stdout)
	}
	if got := env.ReadTreeFile(dst, "nested/deep/leaf.go"); got != "package leaf" {
		t.Errorf("leaf.go content = %q", got)
	}
	if got := env.ReadTreeFile(dst, "top.txt"); got != "top" {
		t.Errorf("top.txt content = %q", got)
	}
}

func TestMirrorSkipsUpToDateFiles(t *testing.T) {
	env := NewTestEnv(t)

	src := filepath.Join(env.TempDir, "src")
	dst := filepath.Join(env.TempDir, "dst")
	env.WriteTree(src, map[string]string{
		"a.txt": "a",
		"b.txt": "b",
	})

	env.MustRunShadowcopy("mirror", src, dst)
	result := env.MustRunShadowcopy("mirror", src, dst)

	if !strings.Contains(result.Stdout, "0 copied") {
		t.Errorf("expected 0 copied on second run, got %q", result.Stdout)
	}
	if !strings.Contains(result.Stdout, "2 skipped") {
		t.Errorf("expected 2 skipped on second run, got %q", result.Stdout)
	}
}

func TestMirrorRecopiesModifiedFile(t *testing.T) {
	env := NewTestEnv(t)

	src := filepath.Join(env.TempDir, "src")
	dst := filepath.Join(env.TempDir, "dst")
	env.WriteTree(src, map[string]string{"a.txt": "old"})

	env.MustRunShadowcopy("mirror", src, dst)

	env.WriteTree(src, map[string]string{"a.txt": "new"})
	future := time.Now().Add(time.Hour)
	if err := os.Chtimes(filepath.Join(src, "a.txt"), future, future); err != nil {
		t.Fatalf("failed to bump mtime: %v", err)
	}

	env.MustRunShadowcopy("mirror", src, dst)

	if got := env.ReadTreeFile(dst, "a.txt"); got != "new" {
		t.Errorf("a.txt content = %q, want %q", got, "new")
	}
}

func TestMirrorCleanRemovesStaleFiles(t *testing.T) {
	env := NewTestEnv(t)

	src := filepath.Join(env.TempDir, "src")
	dst := filepath.Join(env.TempDir, "dst")
	env.WriteTree(src, map[string]string{"keep.txt": "keep"})
	env.WriteTree(dst, map[string]string{"stale.txt": "stale"})

	env.MustRunShadowcopy("mirror", "--clean", src, dst)

	if _, err := os.Stat(filepath.Join(dst, "stale.txt")); !os.IsNotExist(err) {
		t.Error("stale.txt should have been removed by --clean")
	}
	if got := env.ReadTreeFile(dst, "keep.txt"); got != "keep" {
		t.Errorf("keep.txt content = %q", got)
	}
}

func TestMirrorRejectsSelfCopy(t *testing.T) {
	env := NewTestEnv(t)

	src := filepath.Join(env.TempDir, "src")
	env.WriteTree(src, map[string]string{"a.txt": "a"})

	result := env.RunShadowcopy("mirror", src, filepath.Join(src, "sub"))

	if result.ExitCode == 0 {
		t.Error("expected non-zero exit code for self-copy")
	}
	if !strings.Contains(result.Stderr, "inside") && !strings.Contains(result.Stderr, "itself") {
		t.Errorf("expected self-copy error message, got %q", result.Stderr)
	}
	if _, err := os.Stat(filepath.Join(src, "sub")); !os.IsNotExist(err) {
		t.Error("destination should not have been created")
	}
}

func TestMirrorJournalRecordsRuns(t *testing.T) {
	env := NewTestEnv(t)

	src := filepath.Join(env.TempDir, "src")
	dst := filepath.Join(env.TempDir, "dst")
	env.WriteTree(src, map[string]string{"a.txt": "a"})

	env.MustRunShadowcopy("mirror", "--journal", src, dst)
	result := env.MustRunShadowcopy("runs")

	if !strings.Contains(result.Stdout, src) {
		t.Errorf("expected run listing to contain source %q, got %q", src, result.Stdout)
	}
	if !strings.Contains(result.Stdout, "1 copied") {
		t.Errorf("expected run listing to report 1 copied, got %q", result.Stdout)
	}
}

func TestRunsEmptyJournal(t *testing.T) {
	env := NewTestEnv(t)

	result := env.MustRunShadowcopy("runs")

	if !strings.Contains(result.Stdout, "no runs recorded") {
		t.Errorf("expected empty-journal message, got %q", result.Stdout)
	}
}

func TestEnvGet(t *testing.T) {
	env := NewTestEnv(t)

	t.Setenv("SHADOWCOPY_ITEST_VALUE", "hello")
	result := env.MustRunShadowcopy("env", "get", "SHADOWCOPY_ITEST_VALUE")

	if strings.TrimSpace(result.Stdout) != "hello" {
		t.Errorf("env get output = %q", result.Stdout)
	}
}

func TestEnvGetUnset(t *testing.T) {
	env := NewTestEnv(t)

	result := env.RunShadowcopy("env", "get", "SHADOWCOPY_ITEST_DOES_NOT_EXIST")

	if result.ExitCode == 0 {
		t.Error("expected non-zero exit code for unset variable")
	}
}

func TestEnvExpand(t *testing.T) {
	env := NewTestEnv(t)

	t.Setenv("SHADOWCOPY_ITEST_NAME", "world")
	result := env.MustRunShadowcopy("env", "expand", "hello %SHADOWCOPY_ITEST_NAME%")

	if strings.TrimSpace(result.Stdout) != "hello world" {
		t.Errorf("env expand output = %q", result.Stdout)
	}
}

func TestEnvCwd(t *testing.T) {
	env := NewTestEnv(t)

	result := env.MustRunShadowcopy("env", "cwd")

	if strings.TrimSpace(result.Stdout) == "" {
		t.Error("expected a working directory on stdout")
	}
}
