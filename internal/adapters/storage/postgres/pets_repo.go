package postgres

import (
	"context"
	"iter"

	"pet-tracker/internal/adapters/storage/sqlbuild"
	"pet-tracker/internal/domain/pets"
)

const petsSchema = `CREATE TABLE IF NOT EXISTS pets (
	id     BIGSERIAL PRIMARY KEY,
	name   TEXT      NOT NULL CHECK (name <> ''),
	breed  TEXT,
	gender SMALLINT  NOT NULL CHECK (gender IN (0, 1, 2)),
	weight BIGINT    CHECK (weight IS NULL OR weight >= 0)
)`

type PetsRepo struct {
	db DB
}

var _ pets.Store = (*PetsRepo)(nil)

func NewPetsRepo(db DB) *PetsRepo {
	return &PetsRepo{db: db}
}

// EnsureSchema crea la tabla si no existe.
func (r *PetsRepo) EnsureSchema(ctx context.Context) error {
	_, err := r.db.Exec(ctx, petsSchema)
	return err
}

func (r *PetsRepo) Insert(ctx context.Context, v pets.Values) (int64, error) {
	q, args := sqlbuild.Insert(v)

	var id int64
	if err := r.db.QueryRow(ctx, sqlbuild.Rebind(q+" RETURNING id"), args...).Scan(&id); err != nil {
		return 0, err
	}
	return id, nil
}

func (r *PetsRepo) Query(ctx context.Context, q pets.Query) iter.Seq2[pets.Pet, error] {
	return func(yield func(pets.Pet, error) bool) {
		stmt, args, cols := sqlbuild.Select(q)

		rows, err := r.db.Query(ctx, sqlbuild.Rebind(stmt), args...)
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

func (r *PetsRepo) Update(ctx context.Context, v pets.Values, sel pets.Selection) (int64, error) {
	q, args := sqlbuild.Update(v, sel)
	tag, err := r.db.Exec(ctx, sqlbuild.Rebind(q), args...)
	if err != nil {
		return -1, err
	}
	return tag.RowsAffected(), nil
}

func (r *PetsRepo) Delete(ctx context.Context, sel pets.Selection) (int64, error) {
	q, args := sqlbuild.Delete(sel)
	tag, err := r.db.Exec(ctx, sqlbuild.Rebind(q), args...)
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}
