package zombiezen

import (
	"context"
	"encoding/json"
	"fmt"

	"zombiezen.com/go/sqlite"
	"zombiezen.com/go/sqlite/sqlitex"

	"github.com/revelaction/fgcrel/relation"
	"github.com/revelaction/fgcrel/storage"
)

// SplitStore keeps converted splits in three tables: instances (tokens are
// stored as a JSON array), spans and span_pairs. Rows are keyed by split and
// by the position of the instance in the split.
type SplitStore struct {
	pool *sqlitex.Pool
}

var _ storage.SplitRepository = (*SplitStore)(nil)

func NewSplitStore(pool *sqlitex.Pool) *SplitStore {
	return &SplitStore{pool: pool}
}

func (s *SplitStore) Splits() ([]string, error) {
	conn, err := s.pool.Take(context.TODO())
	if err != nil {
		return nil, err
	}
	defer s.pool.Put(conn)

	names := []string{}
	err = sqlitex.Execute(conn, "SELECT DISTINCT split FROM instances ORDER BY split", &sqlitex.ExecOptions{
		ResultFunc: func(stmt *sqlite.Stmt) error {
			names = append(names, stmt.ColumnText(0))
			return nil
		},
	})
	if err != nil {
		return nil, err
	}

	return names, nil
}

func (s *SplitStore) Read(ctx context.Context, split string) (relation.Library, error) {
	conn, err := s.pool.Take(ctx)
	if err != nil {
		return nil, err
	}
	defer s.pool.Put(conn)

	lib := relation.Library{}
	err = sqlitex.Execute(conn, "SELECT id, tokens FROM instances WHERE split = ? ORDER BY position", &sqlitex.ExecOptions{
		Args: []interface{}{split},
		ResultFunc: func(stmt *sqlite.Stmt) error {
			inst := relation.Instance{
				Id:    stmt.ColumnText(0),
				Pairs: []relation.SpanPair{},
				Spans: []relation.Span{},
			}
			if err := json.Unmarshal([]byte(stmt.ColumnText(1)), &inst.Tokens); err != nil {
				return fmt.Errorf("instance %s: %w", inst.Id, err)
			}
			lib = append(lib, inst)
			return nil
		},
	})
	if err != nil {
		return nil, err
	}

	err = sqlitex.Execute(conn, "SELECT position, type, start_offset, end_offset FROM spans WHERE split = ? ORDER BY position, idx", &sqlitex.ExecOptions{
		Args: []interface{}{split},
		ResultFunc: func(stmt *sqlite.Stmt) error {
			pos := stmt.ColumnInt(0)
			if pos < 0 || pos >= len(lib) {
				return fmt.Errorf("span of unknown instance position %d", pos)
			}
			lib[pos].Spans = append(lib[pos].Spans, relation.Span{
				Type:  stmt.ColumnText(1),
				Start: stmt.ColumnInt(2),
				End:   stmt.ColumnInt(3),
			})
			return nil
		},
	})
	if err != nil {
		return nil, err
	}

	err = sqlitex.Execute(conn, "SELECT position, type, head, tail FROM span_pairs WHERE split = ? ORDER BY position, idx", &sqlitex.ExecOptions{
		Args: []interface{}{split},
		ResultFunc: func(stmt *sqlite.Stmt) error {
			pos := stmt.ColumnInt(0)
			if pos < 0 || pos >= len(lib) {
				return fmt.Errorf("span pair of unknown instance position %d", pos)
			}
			lib[pos].Pairs = append(lib[pos].Pairs, relation.SpanPair{
				Type: stmt.ColumnText(1),
				Head: stmt.ColumnInt(2),
				Tail: stmt.ColumnInt(3),
			})
			return nil
		},
	})
	if err != nil {
		return nil, err
	}

	return lib, nil
}

// Write replaces the rows of split in a single transaction.
func (s *SplitStore) Write(ctx context.Context, split string, lib relation.Library) (err error) {
	conn, err := s.pool.Take(ctx)
	if err != nil {
		return err
	}
	defer s.pool.Put(conn)

	defer sqlitex.Save(conn)(&err)

	for _, table := range []string{"instances", "spans", "span_pairs"} {
		err = sqlitex.Execute(conn, "DELETE FROM "+table+" WHERE split = ?", &sqlitex.ExecOptions{
			Args: []interface{}{split},
		})
		if err != nil {
			return fmt.Errorf("failed to clear %s: %w", table, err)
		}
	}

	for pos, inst := range lib {
		if err = ctx.Err(); err != nil {
			return err
		}

		tokens, marshalErr := json.Marshal(inst.Tokens)
		if marshalErr != nil {
			return marshalErr
		}

		err = sqlitex.Execute(conn, "INSERT INTO instances (split, position, id, tokens) VALUES (?, ?, ?, ?)", &sqlitex.ExecOptions{
			Args: []interface{}{split, pos, inst.Id, string(tokens)},
		})
		if err != nil {
			return fmt.Errorf("failed to insert instance %s: %w", inst.Id, err)
		}

		for idx, span := range inst.Spans {
			err = sqlitex.Execute(conn, "INSERT INTO spans (split, position, idx, type, start_offset, end_offset) VALUES (?, ?, ?, ?, ?, ?)", &sqlitex.ExecOptions{
				Args: []interface{}{split, pos, idx, span.Type, span.Start, span.End},
			})
			if err != nil {
				return fmt.Errorf("failed to insert span of %s: %w", inst.Id, err)
			}
		}

		for idx, pair := range inst.Pairs {
			err = sqlitex.Execute(conn, "INSERT INTO span_pairs (split, position, idx, type, head, tail) VALUES (?, ?, ?, ?, ?, ?)", &sqlitex.ExecOptions{
				Args: []interface{}{split, pos, idx, pair.Type, pair.Head, pair.Tail},
			})
			if err != nil {
				return fmt.Errorf("failed to insert span pair of %s: %w", inst.Id, err)
			}
		}
	}

	return nil
}
