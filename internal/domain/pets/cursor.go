package pets

import (
	"context"
	"iter"
)

// Cursor es el resultado de Service.Query: secuencia lazy, finita y reiniciable.
// Queda asociado al path consultado para escuchar cambios posteriores.
type Cursor struct {
	path     string
	query    Query
	store    Store
	notifier Notifier
}

// NotificationPath es el path al que quedó atado el cursor.
func (c *Cursor) NotificationPath() string { return c.path }

// Rows ejecuta la consulta al iterar. Cada llamada vuelve a leer del store.
func (c *Cursor) Rows(ctx context.Context) iter.Seq2[Pet, error] {
	return c.store.Query(ctx, c.query)
}

// All materializa el cursor.
func (c *Cursor) All(ctx context.Context) ([]Pet, error) {
	out := make([]Pet, 0)
	for p, err := range c.Rows(ctx) {
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, nil
}

// First devuelve la primera fila; ok=false si no hay filas.
func (c *Cursor) First(ctx context.Context) (Pet, bool, error) {
	for p, err := range c.Rows(ctx) {
		if err != nil {
			return Pet{}, false, err
		}
		return p, true, nil
	}
	return Pet{}, false, nil
}

// Count recorre el cursor completo.
func (c *Cursor) Count(ctx context.Context) (int, error) {
	n := 0
	for _, err := range c.Rows(ctx) {
		if err != nil {
			return 0, err
		}
		n++
	}
	return n, nil
}

// Observe avisa a fn cuando cambia algo bajo el path del cursor.
func (c *Cursor) Observe(fn func(path string)) (cancel func()) {
	if c.notifier == nil {
		return func() {}
	}
	return c.notifier.Register(c.path, true, fn)
}
