// Package sqlbuild arma las sentencias SQL de la tabla pets con placeholders '?'.
// Postgres las pasa por Rebind para usar $n.
package sqlbuild

import (
	"database/sql"
	"strconv"
	"strings"

	"pet-tracker/internal/domain/pets"
)

// Insert arma el INSERT solo con las columnas presentes en v.
func Insert(v pets.Values) (string, []any) {
	cols, args := assignments(v)
	if len(cols) == 0 {
		return "INSERT INTO " + pets.Table + " DEFAULT VALUES", nil
	}

	marks := strings.TrimSuffix(strings.Repeat("?, ", len(cols)), ", ")
	return "INSERT INTO " + pets.Table + " (" + strings.Join(cols, ", ") + ") VALUES (" + marks + ")", args
}

// Update arma el UPDATE; los args del SET van antes que los del WHERE.
func Update(v pets.Values, sel pets.Selection) (string, []any) {
	cols, args := assignments(v)

	sets := make([]string, 0, len(cols))
	for _, c := range cols {
		sets = append(sets, c+" = ?")
	}

	q := "UPDATE " + pets.Table + " SET " + strings.Join(sets, ", ")
	q, args = where(q, args, sel)
	return q, args
}

func Delete(sel pets.Selection) (string, []any) {
	return where("DELETE FROM "+pets.Table, nil, sel)
}

// Select devuelve la sentencia y las columnas proyectadas, en el orden del SELECT.
// Asume que la Query ya fue validada por el servicio.
func Select(q pets.Query) (string, []any, []string) {
	cols := q.Columns
	if len(cols) == 0 {
		cols = pets.Columns
	}

	stmt := "SELECT " + strings.Join(cols, ", ") + " FROM " + pets.Table
	stmt, args := where(stmt, nil, q.Selection)

	terms, _ := pets.ParseSortOrder(q.SortOrder)
	if len(terms) > 0 {
		parts := make([]string, 0, len(terms))
		for _, t := range terms {
			if t.Desc {
				parts = append(parts, t.Column+" DESC")
			} else {
				parts = append(parts, t.Column+" ASC")
			}
		}
		stmt += " ORDER BY " + strings.Join(parts, ", ")
	}
	return stmt, args, cols
}

// Rebind convierte '?' en $1..$n, ignorando los que están dentro de literales '...'.
func Rebind(q string) string {
	var b strings.Builder
	b.Grow(len(q) + 8)

	n := 0
	inQuote := false
	for i := 0; i < len(q); i++ {
		c := q[i]
		switch {
		case c == '\'':
			inQuote = !inQuote
			b.WriteByte(c)
		case c == '?' && !inQuote:
			n++
			b.WriteByte('$')
			b.WriteString(strconv.Itoa(n))
		default:
			b.WriteByte(c)
		}
	}
	return b.String()
}

// Row guarda los destinos de Scan para una proyección.
type Row struct {
	cols   []string
	id     int64
	name   sql.NullString
	breed  sql.NullString
	gender int64
	weight sql.NullInt64
}

func NewRow(cols []string) *Row {
	return &Row{cols: cols}
}

// Dest devuelve los punteros para Scan, en el orden de cols.
func (r *Row) Dest() []any {
	dest := make([]any, 0, len(r.cols))
	for _, c := range r.cols {
		switch c {
		case pets.ColumnID:
			dest = append(dest, &r.id)
		case pets.ColumnName:
			dest = append(dest, &r.name)
		case pets.ColumnBreed:
			dest = append(dest, &r.breed)
		case pets.ColumnGender:
			dest = append(dest, &r.gender)
		case pets.ColumnWeight:
			dest = append(dest, &r.weight)
		}
	}
	return dest
}

// Pet convierte lo escaneado. NULL en breed o weight queda como nil.
func (r *Row) Pet() pets.Pet {
	p := pets.Pet{
		ID:     r.id,
		Name:   r.name.String,
		Gender: pets.Gender(r.gender),
	}
	if r.breed.Valid {
		b := r.breed.String
		p.Breed = &b
	}
	if r.weight.Valid {
		w := r.weight.Int64
		p.Weight = &w
	}
	return p
}

func assignments(v pets.Values) ([]string, []any) {
	cols := make([]string, 0, 4)
	args := make([]any, 0, 4)
	if v.Name != nil {
		cols = append(cols, pets.ColumnName)
		args = append(args, *v.Name)
	}
	if v.Breed != nil {
		cols = append(cols, pets.ColumnBreed)
		args = append(args, *v.Breed)
	}
	if v.Gender != nil {
		cols = append(cols, pets.ColumnGender)
		args = append(args, int64(*v.Gender))
	}
	if v.Weight != nil {
		cols = append(cols, pets.ColumnWeight)
		args = append(args, *v.Weight)
	}
	return cols, args
}

func where(q string, args []any, sel pets.Selection) (string, []any) {
	w := strings.TrimSpace(sel.Where)
	if w == "" {
		return q, args
	}
	return q + " WHERE " + w, append(args, sel.Args...)
}
