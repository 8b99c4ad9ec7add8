package zombiezen

import (
	"context"
	"fmt"
	"runtime"

	"zombiezen.com/go/sqlite/sqlitex"
)

// Open creates a connection pool on the database at dbPath (WAL mode, one
// connection per CPU) and makes sure the split tables exist.
func Open(ctx context.Context, dbPath string) (*sqlitex.Pool, error) {
	pool, err := sqlitex.NewPool("file:"+dbPath, sqlitex.PoolOptions{
		PoolSize: runtime.NumCPU(),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to open sqlite pool at %s: %w", dbPath, err)
	}

	if err := CreateSchemas(ctx, pool, SplitsSchema); err != nil {
		pool.Close()
		return nil, err
	}

	return pool, nil
}
