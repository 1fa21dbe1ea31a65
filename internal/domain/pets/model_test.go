package pets

import (
	"encoding/json"
	"errors"
	"testing"
)

func TestParseGender(t *testing.T) {
	cases := map[string]Gender{
		"male":    GenderMale,
		" Female": GenderFemale,
		"unknown": GenderUnknown,
		"1":       GenderMale,
		"0":       GenderUnknown,
	}
	for in, want := range cases {
		got, err := ParseGender(in)
		if err != nil {
			t.Fatalf("ParseGender(%q) error: %v", in, err)
		}
		if got != want {
			t.Fatalf("ParseGender(%q) = %s, want %s", in, got, want)
		}
	}

	for _, bad := range []string{"", "dragon", "3", "-1"} {
		if _, err := ParseGender(bad); !errors.Is(err, ErrInvalidArgument) {
			t.Fatalf("ParseGender(%q) expected ErrInvalidArgument, got %v", bad, err)
		}
	}
}

func TestGender_JSON(t *testing.T) {
	b, err := json.Marshal(GenderFemale)
	if err != nil || string(b) != `"female"` {
		t.Fatalf("marshal female: %s %v", b, err)
	}

	var req struct {
		Gender *Gender `json:"gender"`
	}

	if err := json.Unmarshal([]byte(`{"gender":"male"}`), &req); err != nil || *req.Gender != GenderMale {
		t.Fatalf("unmarshal name: %v %v", req.Gender, err)
	}
	if err := json.Unmarshal([]byte(`{"gender":2}`), &req); err != nil || *req.Gender != GenderFemale {
		t.Fatalf("unmarshal code: %v %v", req.Gender, err)
	}

	// desconocido: no falla el JSON, falla la validación
	if err := json.Unmarshal([]byte(`{"gender":"dragon"}`), &req); err != nil || req.Gender.Valid() {
		t.Fatalf("unknown gender should decode as invalid value, got %v %v", req.Gender, err)
	}
	if err := json.Unmarshal([]byte(`{"gender":true}`), &req); err == nil {
		t.Fatalf("expected error for bool gender")
	}
}

func TestValues_EmptyAndLen(t *testing.T) {
	if !(Values{}).Empty() {
		t.Fatalf("zero Values should be empty")
	}
	name := "Rex"
	v := Values{Name: &name}
	if v.Empty() || v.Len() != 1 {
		t.Fatalf("expected one present field, got %d", v.Len())
	}
}

func TestParseSortOrder(t *testing.T) {
	terms, err := ParseSortOrder("name desc, ID")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(terms) != 2 || terms[0] != (SortTerm{Column: "name", Desc: true}) || terms[1] != (SortTerm{Column: "id"}) {
		t.Fatalf("unexpected terms: %+v", terms)
	}

	for _, bad := range []string{"owner", "name,", "name up", "name ASC extra"} {
		if _, err := ParseSortOrder(bad); !errors.Is(err, ErrInvalidArgument) {
			t.Fatalf("ParseSortOrder(%q) expected ErrInvalidArgument, got %v", bad, err)
		}
	}
}

func TestFilterSelection(t *testing.T) {
	sel, err := FilterSelection("Lab", "female")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if sel.Where != "breed = ? AND gender = ?" || len(sel.Args) != 2 || sel.Args[1] != int64(GenderFemale) {
		t.Fatalf("unexpected selection: %+v", sel)
	}

	if sel, _ := FilterSelection("", ""); sel.Where != "" || len(sel.Args) != 0 {
		t.Fatalf("expected empty selection, got %+v", sel)
	}
	if _, err := FilterSelection("", "dragon"); !errors.Is(err, ErrInvalidArgument) {
		t.Fatalf("expected ErrInvalidArgument, got %v", err)
	}

	if cols := SplitColumns(" name, ,breed "); len(cols) != 2 || cols[0] != "name" || cols[1] != "breed" {
		t.Fatalf("unexpected columns: %v", cols)
	}
}
