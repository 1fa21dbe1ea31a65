package pets

import (
	"context"
	"errors"
	"fmt"

	"pet-tracker/internal/platform/logger"
	"pet-tracker/internal/resource"
)

var (
	ErrUnsupportedReference = errors.New("unsupported resource reference")
	ErrInvalidArgument      = errors.New("invalid argument")
)

// PathPets es el segmento base de la colección.
const PathPets = "pets"

// NewMatcher registra los dos patrones del recurso: colección e item.
func NewMatcher(authority string) *resource.Matcher {
	m := resource.NewMatcher(authority)
	m.Add(PathPets, resource.Collection)
	m.Add(PathPets+"/#", resource.Item)
	return m
}

// Service es el gateway CRUD sobre la tabla pets.
// Clasifica la referencia, valida, delega en Store y notifica los cambios.
type Service struct {
	store    Store
	matcher  *resource.Matcher
	notifier Notifier
	log      logger.Logger
}

func NewService(store Store, matcher *resource.Matcher, notifier Notifier, log logger.Logger) *Service {
	if log == nil {
		log = logger.Nop()
	}
	return &Service{
		store:    store,
		matcher:  matcher,
		notifier: notifier,
		log:      log.With(logger.Fields{"component": "pets"}),
	}
}

// Match clasifica un path o URI con el matcher del servicio.
func (s *Service) Match(uri string) resource.Ref {
	return s.matcher.Match(uri)
}

func (s *Service) Query(ctx context.Context, ref resource.Ref, q Query) (*Cursor, error) {
	switch ref.Kind {
	case resource.Collection:
	case resource.Item:
		q.Selection = byID(ref.ID)
	default:
		return nil, fmt.Errorf("%w: cannot query %s", ErrUnsupportedReference, ref)
	}

	if err := validateQuery(q); err != nil {
		return nil, err
	}

	return &Cursor{
		path:     ref.Path,
		query:    q,
		store:    s.store,
		notifier: s.notifier,
	}, nil
}

func (s *Service) TypeOf(ref resource.Ref) (ContentKind, error) {
	switch ref.Kind {
	case resource.Collection:
		return ContentKindList, nil
	case resource.Item:
		return ContentKindItem, nil
	default:
		return "", fmt.Errorf("%w: unknown uri %s", ErrUnsupportedReference, ref)
	}
}

// Insert devuelve la referencia del nuevo item.
// Si falla el store se loguea y devuelve (nil, nil): no es un error para el caller.
func (s *Service) Insert(ctx context.Context, ref resource.Ref, v Values) (*resource.Ref, error) {
	// primero se validan los campos, después la referencia
	if err := validateInsert(v); err != nil {
		return nil, err
	}
	if ref.Kind != resource.Collection {
		return nil, fmt.Errorf("%w: insertion is not supported for %s", ErrUnsupportedReference, ref)
	}

	id, err := s.store.Insert(ctx, v)
	if err != nil || id <= 0 {
		s.log.Error("failed to insert row", logger.Fields{"uri": ref.Path, "error": err})
		return nil, nil
	}

	s.notify(ref.Path)
	item := ref.WithID(id)
	return &item, nil
}

func (s *Service) Delete(ctx context.Context, ref resource.Ref, sel Selection) (int64, error) {
	switch ref.Kind {
	case resource.Collection:
	case resource.Item:
		sel = byID(ref.ID)
	default:
		return 0, fmt.Errorf("%w: deletion is not supported for %s", ErrUnsupportedReference, ref)
	}

	n, err := s.store.Delete(ctx, sel)
	if err != nil {
		return 0, fmt.Errorf("delete %s: %w", ref.Path, err)
	}
	if n > 0 {
		s.notify(ref.Path)
	}
	return n, nil
}

// Update aplica un PATCH: solo se validan y escriben los campos presentes.
// Un fallo del store se loguea y devuelve 0.
func (s *Service) Update(ctx context.Context, ref resource.Ref, v Values, sel Selection) (int64, error) {
	switch ref.Kind {
	case resource.Collection:
	case resource.Item:
		sel = byID(ref.ID)
	default:
		return 0, fmt.Errorf("%w: update is not supported for %s", ErrUnsupportedReference, ref)
	}

	if v.Empty() {
		return 0, nil
	}
	if err := validateUpdate(v); err != nil {
		return 0, err
	}

	n, err := s.store.Update(ctx, v, sel)
	if err != nil || n < 0 {
		s.log.Error("failed to update row", logger.Fields{"uri": ref.Path, "error": err})
		return 0, nil
	}
	if n > 0 {
		s.notify(ref.Path)
	}
	return n, nil
}

// Observe registra fn para cambios bajo path (incluye descendientes).
func (s *Service) Observe(path string, fn func(path string)) (cancel func()) {
	if s.notifier == nil {
		return func() {}
	}
	return s.notifier.Register(path, true, fn)
}

func (s *Service) notify(path string) {
	if s.notifier != nil {
		s.notifier.NotifyChange(path)
	}
}

func byID(id int64) Selection {
	return Selection{Where: ColumnID + " = ?", Args: []any{id}}
}
