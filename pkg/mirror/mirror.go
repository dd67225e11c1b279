package mirror

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-git/go-billy/v5"
	"github.com/go-git/go-billy/v5/util"
	"github.com/rs/zerolog"
)

// ErrSelfCopy is returned when the destination is the source directory or
// nested anywhere under it. Mirroring into itself would recurse forever, so
// the run is rejected before any filesystem mutation.
var ErrSelfCopy = errors.New("destination is inside source")

// Stats counts what a run did. Per-file copy failures and directory
// creation failures do not fail the run; they are logged and show up here.
type Stats struct {
	DirsCreated  int
	DirsFailed   int
	FilesCopied  int
	FilesSkipped int
	FilesFailed  int
}

// Mirror copies directory trees on a single filesystem.
type Mirror struct {
	fs  billy.Filesystem
	log zerolog.Logger
}

// New creates a Mirror over fsys. One message per copied or failed file goes
// to log.
func New(fsys billy.Filesystem, log zerolog.Logger) *Mirror {
	return &Mirror{fs: fsys, log: log}
}

// Run mirrors source into destination. With clean set, an existing
// destination tree is deleted first. The returned error is non-nil only for
// the self-copy precondition and for a failed clean; everything after that
// is best effort, reported through the log and the returned Stats.
func (m *Mirror) Run(source, destination string, clean bool) (Stats, error) {
	var st Stats

	if withinTree(source, destination) {
		return st, fmt.Errorf("mirror %s into %s: %w", source, destination, ErrSelfCopy)
	}

	if clean {
		if _, err := m.fs.Stat(destination); err == nil {
			if err := util.RemoveAll(m.fs, destination); err != nil {
				return st, fmt.Errorf("clean destination %s: %w", destination, err)
			}
			m.log.Debug().Str("dir", destination).Msg("cleaned destination")
		}
	}

	m.copyTree(source, destination, &st)
	return st, nil
}

// withinTree reports whether p is root itself or nested under it. Paths are
// compared cleaned and separator aware; no symlink resolution happens, the
// filesystem may be virtual.
func withinTree(root, p string) bool {
	root = filepath.Clean(root)
	p = filepath.Clean(p)
	if p == root {
		return true
	}
	return strings.HasPrefix(p, root+string(filepath.Separator))
}

// copyTree mirrors one directory level and recurses into subdirectories.
// Children are visited in filesystem iteration order; no order is promised.
func (m *Mirror) copyTree(sourceDir, targetDir string, st *Stats) {
	if info, err := m.fs.Stat(targetDir); err != nil || !info.IsDir() {
		if err := m.fs.MkdirAll(targetDir, 0o755); err != nil {
			m.log.Error().Err(err).Str("dir", targetDir).Msg("create directory failed")
			st.DirsFailed++
			return
		}
		st.DirsCreated++
	}

	entries, err := m.fs.ReadDir(sourceDir)
	if err != nil {
		m.log.Error().Err(err).Str("dir", sourceDir).Msg("read source directory failed")
		return
	}

	for _, entry := range entries {
		src := m.fs.Join(sourceDir, entry.Name())
		dst := m.fs.Join(targetDir, entry.Name())
		switch {
		case entry.Mode().IsRegular():
			m.copyFile(src, dst, entry, st)
		case entry.IsDir():
			m.copyTree(src, dst, st)
		default:
			// Symlinks and special files are not mirrored.
			m.log.Debug().Str("path", src).Msg("skipping irregular entry")
		}
	}
}

// copyFile copies one regular file unless the destination copy is already at
// least as new. Equal timestamps count as up to date: only a strictly newer
// source wins.
func (m *Mirror) copyFile(src, dst string, srcInfo os.FileInfo, st *Stats) {
	if dstInfo, err := m.fs.Stat(dst); err == nil {
		if !srcInfo.ModTime().After(dstInfo.ModTime()) {
			st.FilesSkipped++
			return
		}
	}

	if err := m.copyContents(src, dst); err != nil {
		m.log.Warn().Err(err).Str("from", src).Str("to", dst).Msg("file copy failed")
		st.FilesFailed++
		return
	}
	m.log.Info().Str("from", src).Str("to", dst).Msg("file copied")
	st.FilesCopied++
}

func (m *Mirror) copyContents(src, dst string) error {
	in, err := m.fs.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := m.fs.Create(dst)
	if err != nil {
		return err
	}
	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		return err
	}
	return out.Close()
}
