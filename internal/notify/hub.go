package notify

import (
	"strings"
	"sync"

	"github.com/google/uuid"
)

// Observer recibe el path que cambió.
type Observer func(path string)

type registration struct {
	path        string
	descendants bool
	fn          Observer
}

// Hub entrega notificaciones de cambio a observers registrados por path.
// La entrega es síncrona, en la goroutine que notifica.
type Hub struct {
	mu        sync.RWMutex
	observers map[uuid.UUID]registration
}

func NewHub() *Hub {
	return &Hub{observers: make(map[uuid.UUID]registration)}
}

// Register agrega un observer para path. Con descendants=true también recibe
// cambios de paths hijos (p.ej. "/pets" recibe "/pets/3").
// Devuelve la función para desregistrarlo; es idempotente.
func (h *Hub) Register(path string, descendants bool, fn func(path string)) (cancel func()) {
	if fn == nil {
		return func() {}
	}

	id := uuid.New()
	h.mu.Lock()
	h.observers[id] = registration{
		path:        Clean(path),
		descendants: descendants,
		fn:          fn,
	}
	h.mu.Unlock()

	return func() {
		h.mu.Lock()
		delete(h.observers, id)
		h.mu.Unlock()
	}
}

// NotifyChange avisa a:
// - observers del mismo path
// - observers de un ancestro registrados con descendants
// - observers de paths hijos del que cambió
func (h *Hub) NotifyChange(path string) {
	path = Clean(path)

	h.mu.RLock()
	targets := make([]Observer, 0, len(h.observers))
	for _, reg := range h.observers {
		if reg.wants(path) {
			targets = append(targets, reg.fn)
		}
	}
	h.mu.RUnlock()

	for _, fn := range targets {
		fn(path)
	}
}

// Len devuelve la cantidad de observers registrados.
func (h *Hub) Len() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.observers)
}

func (r registration) wants(changed string) bool {
	switch {
	case r.path == changed:
		return true
	case isUnder(changed, r.path):
		return r.descendants
	case isUnder(r.path, changed):
		return true
	default:
		return false
	}
}

// Clean normaliza un path a "/a/b" (sin slash final).
func Clean(path string) string {
	return "/" + strings.Trim(strings.TrimSpace(path), "/")
}

func isUnder(child, parent string) bool {
	if parent == "/" {
		return child != "/"
	}
	return strings.HasPrefix(child, parent+"/")
}
