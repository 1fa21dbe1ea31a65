package router_test

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"pet-tracker/internal/adapters/storage/sqlite"
	"pet-tracker/internal/domain/pets"
	"pet-tracker/internal/router"
)

type petBody struct {
	ID     int64   `json:"id"`
	URI    string  `json:"uri"`
	Name   string  `json:"name"`
	Breed  *string `json:"breed"`
	Gender string  `json:"gender"`
	Weight *int64  `json:"weight"`
}

func newServer(t *testing.T) *httptest.Server {
	t.Helper()

	store, err := sqlite.Open(filepath.Join(t.TempDir(), "shelter.db"), nil)
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() { _ = store.Close() })

	ts := httptest.NewServer(router.NewRouter(router.Options{Store: store}))
	t.Cleanup(ts.Close)
	return ts
}

func TestHTTP_EndToEnd_PetLifecycle(t *testing.T) {
	ts := newServer(t)

	// 1) Alta válida sin peso ni raza
	rex := createPet(t, ts.URL, map[string]any{"name": "Rex", "gender": "male"})
	if rex.Weight != nil {
		t.Fatalf("expected null weight, got %d", *rex.Weight)
	}
	if rex.Breed != nil {
		t.Fatalf("expected null breed, got %q", *rex.Breed)
	}
	if rex.URI != "/pets/"+itoa(rex.ID) {
		t.Fatalf("unexpected uri %q", rex.URI)
	}

	// 2) Alta inválida => 400 y no se crea nada
	for _, payload := range []map[string]any{
		{"name": "", "gender": "male"},
		{"gender": "female"},
		{"name": "Luna", "gender": "dragon"},
		{"name": "Luna", "gender": "female", "weight": -1},
		{"name": "Luna", "gender": "female", "owner": "Ana"},
	} {
		st, body := doReq(t, ts.URL, "POST", "/pets", payload)
		if st != http.StatusBadRequest {
			t.Fatalf("expected 400 for %v, got %d body=%s", payload, st, string(body))
		}
	}
	if n := len(listPets(t, ts.URL, "")); n != 1 {
		t.Fatalf("expected 1 pet after rejected inserts, got %d", n)
	}

	// 3) Get por id
	{
		st, body := doReq(t, ts.URL, "GET", rex.URI, nil)
		if st != http.StatusOK {
			t.Fatalf("expected 200 get pet, got %d body=%s", st, string(body))
		}
	}

	// 4) Update parcial
	{
		st, body := doReq(t, ts.URL, "PUT", rex.URI, map[string]any{"weight": 12, "breed": "Boxer"})
		if st != http.StatusOK {
			t.Fatalf("expected 200 update, got %d body=%s", st, string(body))
		}
		var got petBody
		_ = json.Unmarshal(body, &got)
		if got.Name != "Rex" || got.Breed == nil || *got.Breed != "Boxer" || got.Weight == nil || *got.Weight != 12 {
			t.Fatalf("unexpected updated pet: %+v", got)
		}
	}

	// 5) Update inválido no toca la fila
	{
		st, _ := doReq(t, ts.URL, "PATCH", rex.URI, map[string]any{"weight": -3})
		if st != http.StatusBadRequest {
			t.Fatalf("expected 400 negative weight, got %d", st)
		}
		st, body := doReq(t, ts.URL, "GET", rex.URI, nil)
		var got petBody
		_ = json.Unmarshal(body, &got)
		if st != http.StatusOK || got.Weight == nil || *got.Weight != 12 {
			t.Fatalf("row changed after rejected update: %d %+v", st, got)
		}
	}

	// 6) Delete del item y luego 404
	{
		st, body := doReq(t, ts.URL, "DELETE", rex.URI, nil)
		if st != http.StatusOK || !strings.Contains(string(body), `"deleted":1`) {
			t.Fatalf("expected deleted 1, got %d body=%s", st, string(body))
		}
		st, _ = doReq(t, ts.URL, "GET", rex.URI, nil)
		if st != http.StatusNotFound {
			t.Fatalf("expected 404 after delete, got %d", st)
		}
		st, body = doReq(t, ts.URL, "DELETE", rex.URI, nil)
		if st != http.StatusOK || !strings.Contains(string(body), `"deleted":0`) {
			t.Fatalf("expected deleted 0 on missing item, got %d body=%s", st, string(body))
		}
	}
}

func TestHTTP_ListFiltersSortAndDeleteCollection(t *testing.T) {
	ts := newServer(t)

	createPet(t, ts.URL, map[string]any{"name": "Rex", "breed": "Lab", "gender": "male"})
	createPet(t, ts.URL, map[string]any{"name": "Ace", "breed": "Lab", "gender": 1})
	createPet(t, ts.URL, map[string]any{"name": "Luna", "breed": "Pug", "gender": "female", "weight": 6})

	labs := listPets(t, ts.URL, "?breed=Lab&sort=name")
	if len(labs) != 2 || labs[0].Name != "Ace" || labs[1].Name != "Rex" {
		t.Fatalf("unexpected filtered list: %+v", labs)
	}

	females := listPets(t, ts.URL, "?gender=female")
	if len(females) != 1 || females[0].Gender != "female" {
		t.Fatalf("unexpected gender filter: %+v", females)
	}

	{
		st, _ := doReq(t, ts.URL, "GET", "/pets?sort=owner", nil)
		if st != http.StatusBadRequest {
			t.Fatalf("expected 400 for unknown sort column, got %d", st)
		}
	}

	{
		st, body := doReq(t, ts.URL, "DELETE", "/pets", nil)
		if st != http.StatusOK || !strings.Contains(string(body), `"deleted":3`) {
			t.Fatalf("expected deleted 3, got %d body=%s", st, string(body))
		}
	}
	if n := len(listPets(t, ts.URL, "")); n != 0 {
		t.Fatalf("expected empty collection, got %d", n)
	}
}

func TestHTTP_ContentKindHeaderAndUnknownPaths(t *testing.T) {
	ts := newServer(t)
	p := createPet(t, ts.URL, map[string]any{"name": "Rex", "gender": "unknown"})

	res := mustGet(t, ts.URL+"/pets")
	if got := res.Header.Get(pets.HeaderContentKind); got != string(pets.ContentKindList) {
		t.Fatalf("expected list content kind, got %q", got)
	}
	res = mustGet(t, ts.URL+p.URI)
	if got := res.Header.Get(pets.HeaderContentKind); got != string(pets.ContentKindItem) {
		t.Fatalf("expected item content kind, got %q", got)
	}

	for _, path := range []string{"/pets/abc", "/pets/1/toys"} {
		st, _ := doReq(t, ts.URL, "GET", path, nil)
		if st != http.StatusNotFound {
			t.Fatalf("expected 404 for %s, got %d", path, st)
		}
	}

	// POST sobre un item no está soportado
	st, _ := doReq(t, ts.URL, "POST", p.URI, map[string]any{"name": "Rex", "gender": "male"})
	if st != http.StatusMethodNotAllowed {
		t.Fatalf("expected 405 posting to item, got %d", st)
	}
}

func TestHTTP_UpdateMissingPetIs404(t *testing.T) {
	ts := newServer(t)

	st, _ := doReq(t, ts.URL, "PUT", "/pets/999", map[string]any{"name": "Ghost"})
	if st != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", st)
	}
	st, _ = doReq(t, ts.URL, "PATCH", "/pets/999", map[string]any{"owner": "x"})
	if st != http.StatusBadRequest {
		t.Fatalf("expected 400 for unknown field, got %d", st)
	}
}

func TestHTTP_ChangesStream(t *testing.T) {
	ts := newServer(t)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, "GET", ts.URL+"/changes?path=/pets", nil)
	if err != nil {
		t.Fatalf("new request: %v", err)
	}
	res, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("open stream: %v", err)
	}
	defer res.Body.Close()

	if ct := res.Header.Get("Content-Type"); ct != "text/event-stream" {
		t.Fatalf("unexpected content type %q", ct)
	}

	p := createPet(t, ts.URL, map[string]any{"name": "Rex", "gender": "male"})
	_, _ = doReq(t, ts.URL, "PATCH", p.URI, map[string]any{"breed": "Boxer"})

	sc := bufio.NewScanner(res.Body)
	var got []string
	for len(got) < 2 && sc.Scan() {
		line := sc.Text()
		if strings.HasPrefix(line, "data: ") {
			got = append(got, strings.TrimPrefix(line, "data: "))
		}
	}
	if len(got) != 2 || got[0] != "/pets" || got[1] != p.URI {
		t.Fatalf("unexpected change events: %v (scan err=%v)", got, sc.Err())
	}
}

func TestHTTP_Health(t *testing.T) {
	ts := newServer(t)

	st, body := doReq(t, ts.URL, "GET", "/health", nil)
	if st != http.StatusOK || string(body) != "ok" {
		t.Fatalf("unexpected health response: %d %s", st, string(body))
	}
}

func createPet(t *testing.T, baseURL string, payload map[string]any) petBody {
	t.Helper()

	st, body := doReq(t, baseURL, "POST", "/pets", payload)
	if st != http.StatusCreated {
		t.Fatalf("expected 201 create pet, got %d body=%s", st, string(body))
	}

	var resp petBody
	_ = json.Unmarshal(body, &resp)
	if resp.ID == 0 {
		t.Fatalf("create pet: missing id body=%s", string(body))
	}
	return resp
}

func listPets(t *testing.T, baseURL, query string) []petBody {
	t.Helper()

	st, body := doReq(t, baseURL, "GET", "/pets"+query, nil)
	if st != http.StatusOK {
		t.Fatalf("expected 200 list pets, got %d body=%s", st, string(body))
	}
	var out []petBody
	if err := json.Unmarshal(body, &out); err != nil {
		t.Fatalf("decode list: %v body=%s", err, string(body))
	}
	return out
}

func mustGet(t *testing.T, url string) *http.Response {
	t.Helper()
	res, err := http.Get(url)
	if err != nil {
		t.Fatalf("get %s: %v", url, err)
	}
	_, _ = io.Copy(io.Discard, res.Body)
	res.Body.Close()
	return res
}

func doReq(t *testing.T, baseURL, method, path string, body any) (int, []byte) {
	t.Helper()

	var rdr io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("json marshal: %v", err)
		}
		rdr = bytes.NewReader(b)
	}

	req, err := http.NewRequest(method, baseURL+path, rdr)
	if err != nil {
		t.Fatalf("new request: %v", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	res, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("do request: %v", err)
	}
	defer res.Body.Close()

	respBody, _ := io.ReadAll(res.Body)
	return res.StatusCode, bytes.TrimSpace(respBody)
}

func itoa(n int64) string {
	b, _ := json.Marshal(n)
	return string(b)
}
