package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"iter"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite"

	"pet-tracker/internal/adapters/storage/sqlbuild"
	"pet-tracker/internal/domain/pets"
	"pet-tracker/internal/platform/logger"
)

const schema = `
	CREATE TABLE IF NOT EXISTS pets (
		id     INTEGER PRIMARY KEY AUTOINCREMENT,
		name   TEXT    NOT NULL CHECK (name <> ''),
		breed  TEXT,
		gender INTEGER NOT NULL CHECK (gender IN (0, 1, 2)),
		weight INTEGER CHECK (weight IS NULL OR weight >= 0)
	);
`

// Store implementa pets.Store sobre SQLite embebido (modernc, sin cgo).
type Store struct {
	db  *sql.DB
	log logger.Logger
}

var _ pets.Store = (*Store)(nil)

// Open abre (o crea) la base en path y asegura el schema.
// Crea los directorios padre si hace falta.
func Open(path string, log logger.Logger) (*Store, error) {
	if log == nil {
		log = logger.Nop()
	}
	log = log.With(logger.Fields{"component": "store", "driver": "sqlite"})

	if path != ":memory:" {
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return nil, fmt.Errorf("creating database directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	if path == ":memory:" {
		// cada conexión tendría su propia base en memoria
		db.SetMaxOpenConns(1)
	} else if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("enabling WAL mode: %w", err)
	}

	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}

	log.Info("sqlite store initialized", logger.Fields{"path": path})
	return &Store{db: db, log: log}, nil
}

// DB expone el handle (p.ej. para tests).
func (s *Store) DB() *sql.DB { return s.db }

func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) Insert(ctx context.Context, v pets.Values) (int64, error) {
	q, args := sqlbuild.Insert(v)
	res, err := s.db.ExecContext(ctx, q, args...)
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}

func (s *Store) Query(ctx context.Context, q pets.Query) iter.Seq2[pets.Pet, error] {
	return func(yield func(pets.Pet, error) bool) {
		stmt, args, cols := sqlbuild.Select(q)

		rows, err := s.db.QueryContext(ctx, stmt, args...)
		if err != nil {
			yield(pets.Pet{}, err)
			return
		}
		defer rows.Close()

		for rows.Next() {
			row := sqlbuild.NewRow(cols)
			if err := rows.Scan(row.Dest()...); err != nil {
				yield(pets.Pet{}, err)
				return
			}
			if !yield(row.Pet(), nil) {
				return
			}
		}
		if err := rows.Err(); err != nil {
			yield(pets.Pet{}, err)
		}
	}
}

func (s *Store) Update(ctx context.Context, v pets.Values, sel pets.Selection) (int64, error) {
	q, args := sqlbuild.Update(v, sel)
	res, err := s.db.ExecContext(ctx, q, args...)
	if err != nil {
		return -1, err
	}
	return res.RowsAffected()
}

func (s *Store) Delete(ctx context.Context, sel pets.Selection) (int64, error) {
	q, args := sqlbuild.Delete(sel)
	res, err := s.db.ExecContext(ctx, q, args...)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}
