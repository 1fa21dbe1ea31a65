package pets

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"pet-tracker/internal/resource"
)

// HeaderContentKind lleva el resultado de TypeOf en cada respuesta de pets.
const HeaderContentKind = "X-Content-Kind"

func RegisterRoutes(r chi.Router, svc *Service) {
	r.Route("/pets", func(pr chi.Router) {
		pr.Get("/", listPetsHandler(svc))
		pr.Post("/", createPetHandler(svc))
		pr.Delete("/", deletePetsHandler(svc))

		pr.Get("/{petID}", getPetHandler(svc))
		pr.Put("/{petID}", updatePetHandler(svc))
		pr.Patch("/{petID}", updatePetHandler(svc))
		pr.Delete("/{petID}", deletePetsHandler(svc))
	})

	r.Get("/changes", changesHandler(svc))
}

// petRequest usa punteros: nil = campo no enviado.
type petRequest struct {
	Name   *string `json:"name"`
	Breed  *string `json:"breed"`
	Gender *Gender `json:"gender" swaggertype:"string" enums:"unknown,male,female"`
	Weight *int64  `json:"weight"`
}

type petResponse struct {
	ID     int64   `json:"id"`
	URI    string  `json:"uri"`
	Name   string  `json:"name"`
	Breed  *string `json:"breed"`
	Gender Gender  `json:"gender" swaggertype:"string" enums:"unknown,male,female"`
	Weight *int64  `json:"weight"`
}

type deleteResponse struct {
	Deleted int64 `json:"deleted"`
}

func (req petRequest) values() Values {
	return Values{
		Name:   req.Name,
		Breed:  req.Breed,
		Gender: req.Gender,
		Weight: req.Weight,
	}
}

// listPetsHandler godoc
// @Summary Listar mascotas
// @Description Lista la colección. Filtros opcionales por raza y género; orden por columna.
// @Tags pets
// @Produce json
// @Param breed query string false "Raza exacta"
// @Param gender query string false "unknown, male o female"
// @Param sort query string false "Orden, p.ej. 'name DESC, id'"
// @Param fields query string false "Columnas separadas por coma"
// @Success 200 {array} petResponse
// @Failure 400 {string} string "filtro u orden inválido"
// @Router /pets [get]
func listPetsHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ref := svc.Match(r.URL.Path)

		sel, err := selectionFromQuery(r)
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}

		cur, err := svc.Query(r.Context(), ref, Query{
			Columns:   fieldsFromQuery(r),
			Selection: sel,
			SortOrder: r.URL.Query().Get("sort"),
		})
		if err != nil {
			writeError(w, err)
			return
		}

		items, err := cur.All(r.Context())
		if err != nil {
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}

		out := make([]petResponse, 0, len(items))
		for _, p := range items {
			out = append(out, toPetResponse(ref, p))
		}

		setContentKind(w, svc, ref)
		writeJSON(w, http.StatusOK, out)
	}
}

// getPetHandler godoc
// @Summary Obtener mascota
// @Tags pets
// @Produce json
// @Param petID path int true "ID de la mascota"
// @Success 200 {object} petResponse
// @Failure 404 {string} string "pet not found"
// @Router /pets/{petID} [get]
func getPetHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ref := svc.Match(r.URL.Path)
		if ref.Kind != resource.Item {
			http.Error(w, "pet not found", http.StatusNotFound)
			return
		}

		p, ok, err := getOne(r, svc, ref)
		if err != nil {
			writeError(w, err)
			return
		}
		if !ok {
			http.Error(w, "pet not found", http.StatusNotFound)
			return
		}

		setContentKind(w, svc, ref)
		writeJSON(w, http.StatusOK, toPetResponse(ref, p))
	}
}

// createPetHandler godoc
// @Summary Registrar mascota
// @Description name y gender son obligatorios; weight, si viene, debe ser >= 0.
// @Tags pets
// @Accept json
// @Produce json
// @Param payload body petRequest true "Datos de la mascota"
// @Success 201 {object} petResponse
// @Failure 400 {string} string "invalid json / validación"
// @Failure 500 {string} string "failed to insert pet"
// @Router /pets [post]
func createPetHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req petRequest
		if err := decodePetRequest(r, &req); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}

		ref := svc.Match(r.URL.Path)
		item, err := svc.Insert(r.Context(), ref, req.values())
		if err != nil {
			writeError(w, err)
			return
		}
		if item == nil {
			// el store falló; el servicio ya lo logueó
			http.Error(w, "failed to insert pet", http.StatusInternalServerError)
			return
		}

		p, ok, err := getOne(r, svc, *item)
		if err != nil || !ok {
			http.Error(w, "failed to insert pet", http.StatusInternalServerError)
			return
		}

		w.Header().Set("Location", item.Path)
		setContentKind(w, svc, *item)
		writeJSON(w, http.StatusCreated, toPetResponse(*item, p))
	}
}

// updatePetHandler godoc
// @Summary Actualizar mascota
// @Description Actualización parcial: solo se validan y escriben los campos enviados.
// @Tags pets
// @Accept json
// @Produce json
// @Param petID path int true "ID de la mascota"
// @Param payload body petRequest true "Campos a modificar"
// @Success 200 {object} petResponse
// @Failure 400 {string} string "invalid json / validación"
// @Failure 404 {string} string "pet not found"
// @Router /pets/{petID} [put]
// @Router /pets/{petID} [patch]
func updatePetHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ref := svc.Match(r.URL.Path)
		if ref.Kind != resource.Item {
			http.Error(w, "pet not found", http.StatusNotFound)
			return
		}

		var req petRequest
		if err := decodePetRequest(r, &req); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}

		if _, err := svc.Update(r.Context(), ref, req.values(), Selection{}); err != nil {
			writeError(w, err)
			return
		}

		// 0 filas puede ser "no existe" o un fallo ya logueado; se responde con el estado actual
		p, ok, err := getOne(r, svc, ref)
		if err != nil {
			writeError(w, err)
			return
		}
		if !ok {
			http.Error(w, "pet not found", http.StatusNotFound)
			return
		}

		setContentKind(w, svc, ref)
		writeJSON(w, http.StatusOK, toPetResponse(ref, p))
	}
}

// deletePetsHandler godoc
// @Summary Borrar mascotas
// @Description Sobre /pets borra lo que coincida con los filtros (o todo); sobre /pets/{petID} solo ese item.
// @Tags pets
// @Produce json
// @Param breed query string false "Raza exacta (solo colección)"
// @Param gender query string false "unknown, male o female (solo colección)"
// @Success 200 {object} deleteResponse
// @Failure 400 {string} string "filtro inválido"
// @Failure 404 {string} string "unsupported uri"
// @Router /pets [delete]
// @Router /pets/{petID} [delete]
func deletePetsHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ref := svc.Match(r.URL.Path)

		sel, err := selectionFromQuery(r)
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}

		n, err := svc.Delete(r.Context(), ref, sel)
		if err != nil {
			writeError(w, err)
			return
		}

		setContentKind(w, svc, ref)
		writeJSON(w, http.StatusOK, deleteResponse{Deleted: n})
	}
}

// decodePetRequest rechaza campos desconocidos, igual en alta y en update.
func decodePetRequest(r *http.Request, req *petRequest) error {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	return dec.Decode(req)
}

func getOne(r *http.Request, svc *Service, ref resource.Ref) (Pet, bool, error) {
	cur, err := svc.Query(r.Context(), ref, Query{})
	if err != nil {
		return Pet{}, false, err
	}
	return cur.First(r.Context())
}

func selectionFromQuery(r *http.Request) (Selection, error) {
	q := r.URL.Query()
	return FilterSelection(q.Get("breed"), q.Get("gender"))
}

func fieldsFromQuery(r *http.Request) []string {
	return SplitColumns(r.URL.Query().Get("fields"))
}

func setContentKind(w http.ResponseWriter, svc *Service, ref resource.Ref) {
	if kind, err := svc.TypeOf(ref); err == nil {
		w.Header().Set(HeaderContentKind, string(kind))
	}
}

func writeError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, ErrInvalidArgument):
		http.Error(w, err.Error(), http.StatusBadRequest)
	case errors.Is(err, ErrUnsupportedReference):
		http.Error(w, err.Error(), http.StatusNotFound)
	default:
		http.Error(w, "internal error", http.StatusInternalServerError)
	}
}

func toPetResponse(ref resource.Ref, p Pet) petResponse {
	uri := ref.Path
	if ref.Kind == resource.Collection && p.ID > 0 {
		uri = ref.WithID(p.ID).Path
	}
	return petResponse{
		ID:     p.ID,
		URI:    uri,
		Name:   p.Name,
		Breed:  p.Breed,
		Gender: p.Gender,
		Weight: p.Weight,
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
