package pets

import (
	"fmt"
	"strings"
)

// validateInsert: name y gender obligatorios; weight opcional pero >= 0.
func validateInsert(v Values) error {
	if v.Name == nil || *v.Name == "" {
		return fmt.Errorf("%w: pet requires a name", ErrInvalidArgument)
	}
	if v.Weight != nil && *v.Weight < 0 {
		return fmt.Errorf("%w: pet requires a valid weight", ErrInvalidArgument)
	}
	if v.Gender == nil || !v.Gender.Valid() {
		return fmt.Errorf("%w: pet requires a valid gender", ErrInvalidArgument)
	}
	return nil
}

// validateUpdate solo revisa los campos presentes.
func validateUpdate(v Values) error {
	if v.Name != nil && *v.Name == "" {
		return fmt.Errorf("%w: pet requires a name", ErrInvalidArgument)
	}
	if v.Weight != nil && *v.Weight < 0 {
		return fmt.Errorf("%w: pet requires a valid weight", ErrInvalidArgument)
	}
	if v.Gender != nil && !v.Gender.Valid() {
		return fmt.Errorf("%w: pet requires a valid gender", ErrInvalidArgument)
	}
	return nil
}

func validateQuery(q Query) error {
	for _, c := range q.Columns {
		if !IsColumn(c) {
			return fmt.Errorf("%w: unknown column %q", ErrInvalidArgument, c)
		}
	}
	if _, err := ParseSortOrder(q.SortOrder); err != nil {
		return err
	}
	return nil
}

// SortTerm es un término de ORDER BY ya validado.
type SortTerm struct {
	Column string
	Desc   bool
}

// ParseSortOrder valida "col [ASC|DESC], ..." contra las columnas de la tabla.
// String vacío = sin orden.
func ParseSortOrder(s string) ([]SortTerm, error) {
	if strings.TrimSpace(s) == "" {
		return nil, nil
	}

	parts := strings.Split(s, ",")
	out := make([]SortTerm, 0, len(parts))
	for _, p := range parts {
		fields := strings.Fields(p)
		if len(fields) == 0 || len(fields) > 2 {
			return nil, fmt.Errorf("%w: invalid sort term %q", ErrInvalidArgument, strings.TrimSpace(p))
		}

		col := strings.ToLower(fields[0])
		if !IsColumn(col) {
			return nil, fmt.Errorf("%w: unknown sort column %q", ErrInvalidArgument, fields[0])
		}

		term := SortTerm{Column: col}
		if len(fields) == 2 {
			switch strings.ToUpper(fields[1]) {
			case "ASC":
			case "DESC":
				term.Desc = true
			default:
				return nil, fmt.Errorf("%w: invalid sort direction %q", ErrInvalidArgument, fields[1])
			}
		}
		out = append(out, term)
	}
	return out, nil
}
