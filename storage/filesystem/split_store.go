package filesystem

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/spf13/afero"

	"github.com/revelaction/fgcrel/relation"
	"github.com/revelaction/fgcrel/storage"
)

const (
	// DefaultDir is the folder where converted splits are written.
	DefaultDir = "data/relation/fgcr"

	Ext = ".jsonlines"
)

// SplitStore keeps each split in <root>/<split>.jsonlines, one instance per
// line.
type SplitStore struct {
	fs   afero.Fs
	root string
}

var _ storage.SplitRepository = (*SplitStore)(nil)

func NewSplitStore(fs afero.Fs, root string) *SplitStore {
	return &SplitStore{fs: fs, root: root}
}

// Path returns the file of a split.
func (s *SplitStore) Path(split string) string {
	return filepath.Join(s.root, split+Ext)
}

func (s *SplitStore) Splits() ([]string, error) {
	files, err := afero.ReadDir(s.fs, s.root)
	if err != nil {
		return nil, err
	}

	names := []string{}
	for _, file := range files {
		if file.IsDir() || filepath.Ext(file.Name()) != Ext {
			continue
		}

		names = append(names, strings.TrimSuffix(file.Name(), Ext))
	}

	return names, nil
}

func (s *SplitStore) Read(ctx context.Context, split string) (relation.Library, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	f, err := s.fs.Open(s.Path(split))
	if err != nil {
		return nil, fmt.Errorf("IO error: %w", err)
	}
	defer f.Close()

	lib, err := Decode(f)
	if err != nil {
		return nil, fmt.Errorf("JSON decoding error in %s: %w", s.Path(split), err)
	}

	return lib, nil
}

// Write encodes the split in memory and then moves it into place, so a
// failing run never leaves a truncated split behind.
func (s *SplitStore) Write(ctx context.Context, split string, lib relation.Library) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	var buf bytes.Buffer
	if err := Encode(&buf, lib); err != nil {
		return err
	}

	if err := s.fs.MkdirAll(s.root, 0755); err != nil {
		return err
	}

	tmp := s.Path(split) + ".tmp"
	if err := afero.WriteFile(s.fs, tmp, buf.Bytes(), 0644); err != nil {
		return fmt.Errorf("IO error: %w", err)
	}

	if err := s.fs.Rename(tmp, s.Path(split)); err != nil {
		_ = s.fs.Remove(tmp)
		return fmt.Errorf("IO error: %w", err)
	}

	return nil
}

// Encode writes one JSON object per line.
func Encode(w io.Writer, lib relation.Library) error {
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)

	for _, inst := range lib {
		if err := enc.Encode(inst); err != nil {
			return err
		}
	}

	return nil
}

// Decode reads JSON lines until EOF.
func Decode(r io.Reader) (relation.Library, error) {
	dec := json.NewDecoder(r)

	lib := relation.Library{}
	for {
		var inst relation.Instance
		err := dec.Decode(&inst)
		if errors.Is(err, io.EOF) {
			return lib, nil
		}
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", len(lib)+1, err)
		}

		lib = append(lib, inst)
	}
}
