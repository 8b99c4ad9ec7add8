package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/mattn/go-isatty"
	"github.com/spf13/afero"

	"github.com/revelaction/fgcrel/storage"
	"github.com/revelaction/fgcrel/storage/filesystem"
	"github.com/revelaction/fgcrel/storage/sqlite/zombiezen"
)

var splitName = regexp.MustCompile(`^[A-Za-z0-9_-]+$`)

// isDB reports whether path names a SQLite database instead of a JSON lines
// directory.
func isDB(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".db", ".sqlite", ".sqlite3":
		return true
	}
	return false
}

// NewSplitRepository opens the repository at path. With mustExist the path
// has to point to an existing directory or database.
func NewSplitRepository(ctx context.Context, fs afero.Fs, path string, mustExist bool) (storage.SplitRepository, func() error, error) {
	if isDB(path) {
		if mustExist {
			if _, err := os.Stat(path); err != nil {
				return nil, nil, fmt.Errorf("repository not found: %s", path)
			}
		}

		pool, err := zombiezen.Open(ctx, path)
		if err != nil {
			return nil, nil, err
		}
		return zombiezen.NewSplitStore(pool), pool.Close, nil
	}

	if mustExist {
		ok, err := afero.DirExists(fs, path)
		if err != nil || !ok {
			return nil, nil, fmt.Errorf("repository not found: %s", path)
		}
	}

	return filesystem.NewSplitStore(fs, path), func() error { return nil }, nil
}

func validateSplits(splits []string) error {
	for _, s := range splits {
		if !splitName.MatchString(s) {
			return fmt.Errorf("invalid split name %q", s)
		}
	}
	return nil
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}
