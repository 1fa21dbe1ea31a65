package pets

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// Gender define el género de la mascota. Se persiste como entero.
// @Enum unknown, male, female
type Gender int

const (
	GenderUnknown Gender = 0
	GenderMale    Gender = 1
	GenderFemale  Gender = 2
)

// Valid indica si g es uno de los valores definidos.
func (g Gender) Valid() bool {
	switch g {
	case GenderUnknown, GenderMale, GenderFemale:
		return true
	default:
		return false
	}
}

func (g Gender) String() string {
	switch g {
	case GenderUnknown:
		return "unknown"
	case GenderMale:
		return "male"
	case GenderFemale:
		return "female"
	default:
		return "invalid(" + strconv.Itoa(int(g)) + ")"
	}
}

// ParseGender acepta el nombre ("male") o el código ("1").
func ParseGender(s string) (Gender, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	switch s {
	case "unknown":
		return GenderUnknown, nil
	case "male":
		return GenderMale, nil
	case "female":
		return GenderFemale, nil
	}

	n, err := strconv.Atoi(s)
	if err == nil && Gender(n).Valid() {
		return Gender(n), nil
	}
	return 0, fmt.Errorf("%w: unknown gender %q", ErrInvalidArgument, s)
}

func (g Gender) MarshalJSON() ([]byte, error) {
	if !g.Valid() {
		return json.Marshal(int(g))
	}
	return json.Marshal(g.String())
}

// UnmarshalJSON acepta string o número. Un valor desconocido no es error de JSON:
// queda como Gender inválido y lo rechaza la validación.
func (g *Gender) UnmarshalJSON(b []byte) error {
	var n int
	if err := json.Unmarshal(b, &n); err == nil {
		*g = Gender(n)
		return nil
	}

	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return fmt.Errorf("gender must be a string or integer")
	}
	parsed, err := ParseGender(s)
	if err != nil {
		*g = Gender(-1)
		return nil
	}
	*g = parsed
	return nil
}

// Columnas de la tabla pets.
const (
	Table = "pets"

	ColumnID     = "id"
	ColumnName   = "name"
	ColumnBreed  = "breed"
	ColumnGender = "gender"
	ColumnWeight = "weight"
)

// Columns es la proyección por defecto, en orden de tabla.
var Columns = []string{ColumnID, ColumnName, ColumnBreed, ColumnGender, ColumnWeight}

func IsColumn(name string) bool {
	for _, c := range Columns {
		if c == name {
			return true
		}
	}
	return false
}

// Pet es una fila de la tabla pets.
// Con proyección parcial, los campos no pedidos quedan en su zero value.
type Pet struct {
	ID     int64
	Name   string
	Breed  *string // nil = sin raza
	Gender Gender
	Weight *int64 // nil = sin peso registrado
}

// Values es un set parcial de campos. nil = ausente (no se toca / no se valida).
type Values struct {
	Name   *string
	Breed  *string
	Gender *Gender
	Weight *int64
}

// Empty indica que no hay ningún campo presente.
func (v Values) Empty() bool {
	return v.Name == nil && v.Breed == nil && v.Gender == nil && v.Weight == nil
}

// Len devuelve la cantidad de campos presentes.
func (v Values) Len() int {
	n := 0
	for _, present := range []bool{v.Name != nil, v.Breed != nil, v.Gender != nil, v.Weight != nil} {
		if present {
			n++
		}
	}
	return n
}

// Selection es el filtro del caller: fragmento WHERE con placeholders '?' y sus args.
type Selection struct {
	Where string
	Args  []any
}

// Query describe una lectura. Columns vacío = todas.
type Query struct {
	Columns   []string
	Selection Selection
	SortOrder string // "name ASC, weight DESC"
}

// ContentKind es el token que devuelve TypeOf.
type ContentKind string

const (
	ContentKindList ContentKind = "list-of-pets"
	ContentKindItem ContentKind = "single-pet"
)
