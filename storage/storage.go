package storage

import (
	"context"

	"github.com/revelaction/fgcrel/relation"
)

// SplitReader defines read operations for converted splits
type SplitReader interface {
	// Splits returns the names of the stored splits, sorted alphabetically.
	Splits() ([]string, error)

	// Read returns the instances of a split in conversion order
	Read(ctx context.Context, split string) (relation.Library, error)
}

// SplitWriter defines write operations for converted splits
type SplitWriter interface {
	// Write persists all instances of a split, replacing a previous
	// version of the same split.
	Write(ctx context.Context, split string, lib relation.Library) error
}

// SplitRepository combines read and write operations
type SplitRepository interface {
	SplitReader
	SplitWriter
}
