package resource

import (
	"net/url"
	"strconv"
	"strings"
)

// Kind clasifica una referencia de recurso.
type Kind int

const (
	Unmatched Kind = iota
	Collection
	Item
)

func (k Kind) String() string {
	switch k {
	case Collection:
		return "collection"
	case Item:
		return "item"
	default:
		return "unmatched"
	}
}

// Scheme es el esquema aceptado para URIs completas (content://authority/pets/3).
const Scheme = "content"

// Ref es el resultado de clasificar un path.
// Path es la forma canónica ("/pets", "/pets/3") y es la clave de notificación.
type Ref struct {
	Kind Kind
	ID   int64
	Path string
}

func (r Ref) String() string {
	if r.Path == "" {
		return r.Kind.String()
	}
	return r.Path
}

// WithID deriva la referencia de item para un id generado bajo esta colección.
func (r Ref) WithID(id int64) Ref {
	return Ref{
		Kind: Item,
		ID:   id,
		Path: strings.TrimRight(r.Path, "/") + "/" + strconv.FormatInt(id, 10),
	}
}

type route struct {
	segments []string
	kind     Kind
}

// Matcher mantiene una tabla ordenada de patrones.
// Se registra al arrancar; después solo se lee.
type Matcher struct {
	authority string
	routes    []route
}

// NewMatcher crea un matcher vacío. authority vacío acepta cualquier host en URIs content://.
func NewMatcher(authority string) *Matcher {
	return &Matcher{authority: strings.TrimSpace(authority)}
}

func (m *Matcher) Authority() string { return m.authority }

// Add registra un patrón ("pets", "pets/#"). '#' = segmento numérico, '*' = cualquier segmento.
// Gana el primer patrón registrado que coincida.
func (m *Matcher) Add(pattern string, kind Kind) {
	m.routes = append(m.routes, route{
		segments: splitPath(pattern),
		kind:     kind,
	})
}

// Match clasifica uri. Nunca falla: lo que no coincide es Unmatched.
func (m *Matcher) Match(uri string) Ref {
	segs, ok := m.segmentsOf(uri)
	if !ok {
		return Ref{Kind: Unmatched}
	}

	for _, rt := range m.routes {
		id, canon, ok := rt.match(segs)
		if !ok {
			continue
		}
		ref := Ref{
			Kind: rt.kind,
			Path: "/" + strings.Join(canon, "/"),
		}
		if rt.kind == Item {
			ref.ID = id
		}
		return ref
	}
	return Ref{Kind: Unmatched}
}

func (m *Matcher) segmentsOf(uri string) ([]string, bool) {
	u, err := url.Parse(strings.TrimSpace(uri))
	if err != nil {
		return nil, false
	}

	if u.Scheme != "" {
		if !strings.EqualFold(u.Scheme, Scheme) {
			return nil, false
		}
		if m.authority != "" && u.Host != m.authority {
			return nil, false
		}
	} else if u.Host != "" {
		return nil, false
	}

	segs := splitPath(u.Path)
	for _, s := range segs {
		if s == "" {
			return nil, false
		}
	}
	return segs, true
}

// match devuelve además los segmentos canónicos: "#" se reescribe desde el
// número parseado, así "/pets/007" y "/pets/7" notifican al mismo path.
func (rt route) match(segs []string) (int64, []string, bool) {
	if len(segs) != len(rt.segments) {
		return 0, nil, false
	}

	var id int64
	canon := make([]string, len(segs))
	copy(canon, segs)
	for i, pat := range rt.segments {
		seg := segs[i]
		switch pat {
		case "#":
			if !isDigits(seg) {
				return 0, nil, false
			}
			n, err := strconv.ParseInt(seg, 10, 64)
			if err != nil {
				return 0, nil, false
			}
			id = n
			canon[i] = strconv.FormatInt(n, 10)
		case "*":
			// cualquier texto
		default:
			if seg != pat {
				return 0, nil, false
			}
		}
	}
	return id, canon, true
}

func splitPath(p string) []string {
	p = strings.Trim(p, "/")
	if p == "" {
		return nil
	}
	return strings.Split(p, "/")
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, c := range s {
		if c < '0' || c > '9' {
			return false
		}
	}
	return true
}
