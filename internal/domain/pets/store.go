package pets

import (
	"context"
	"iter"
)

// Store es el acceso a la tabla pets. Los adapters (sqlite, postgres) no validan:
// eso lo hace Service antes de llegar acá.
type Store interface {
	// Insert devuelve el id generado.
	Insert(ctx context.Context, v Values) (int64, error)
	// Query es lazy: la consulta corre al iterar y se vuelve a ejecutar en cada iteración.
	Query(ctx context.Context, q Query) iter.Seq2[Pet, error]
	Update(ctx context.Context, v Values, sel Selection) (int64, error)
	Delete(ctx context.Context, sel Selection) (int64, error)
}

// Notifier entrega notificaciones de cambio por path.
type Notifier interface {
	NotifyChange(path string)
	Register(path string, descendants bool, fn func(path string)) (cancel func())
}
