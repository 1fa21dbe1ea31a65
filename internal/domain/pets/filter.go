package pets

import "strings"

// FilterSelection arma el WHERE para los filtros simples por raza y género.
// Vacío = sin filtro.
func FilterSelection(breed, gender string) (Selection, error) {
	var (
		conds []string
		args  []any
	)
	if breed != "" {
		conds = append(conds, ColumnBreed+" = ?")
		args = append(args, breed)
	}
	if gender != "" {
		g, err := ParseGender(gender)
		if err != nil {
			return Selection{}, err
		}
		conds = append(conds, ColumnGender+" = ?")
		args = append(args, int64(g))
	}
	return Selection{Where: strings.Join(conds, " AND "), Args: args}, nil
}

// SplitColumns parsea una lista "name, breed" de columnas para proyectar.
func SplitColumns(raw string) []string {
	var out []string
	for _, f := range strings.Split(raw, ",") {
		if f = strings.TrimSpace(f); f != "" {
			out = append(out, f)
		}
	}
	return out
}
