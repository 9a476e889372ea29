package memory

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/gpelletier0/firestore-data-seeder/internal/domain/repository"
)

var _ repository.DocumentStore = (*Store)(nil)

// Store es un almacén de documentos en memoria. El orden de streaming de cada
// colección es el orden de inserción.
type Store struct {
	collections map[string]*collection
}

// NewStore construye un almacén vacío.
func NewStore() *Store {
	return &Store{collections: make(map[string]*collection)}
}

// Collection devuelve la colección, creándola vacía si no existe.
func (s *Store) Collection(name string) repository.Collection {
	col, ok := s.collections[name]
	if !ok {
		col = &collection{docs: make(map[string]map[string]any)}
		s.collections[name] = col
	}
	return col
}

type collection struct {
	docs  map[string]map[string]any
	order []string // orden de inserción
}

func (c *collection) Count(_ context.Context) (int, error) {
	return len(c.order), nil
}

func (c *collection) Documents(_ context.Context) ([]repository.Document, error) {
	out := make([]repository.Document, 0, len(c.order))
	for _, id := range c.order {
		out = append(out, repository.Document{ID: id, Data: cloneMap(c.docs[id])})
	}
	return out, nil
}

func (c *collection) NewDoc() repository.DocumentRef {
	return &docRef{col: c, id: uuid.NewString()}
}

func (c *collection) Doc(id string) repository.DocumentRef {
	return &docRef{col: c, id: id}
}

type docRef struct {
	col *collection
	id  string
}

func (r *docRef) ID() string { return r.id }

func (r *docRef) Get(_ context.Context) (repository.Document, bool, error) {
	data, ok := r.col.docs[r.id]
	if !ok {
		return repository.Document{}, false, nil
	}
	return repository.Document{ID: r.id, Data: cloneMap(data)}, true, nil
}

func (r *docRef) Set(_ context.Context, data map[string]any) error {
	if _, exists := r.col.docs[r.id]; !exists {
		r.col.order = append(r.col.order, r.id)
	}
	r.col.docs[r.id] = cloneMap(data)
	return nil
}

func (r *docRef) Update(_ context.Context, data map[string]any) error {
	doc, exists := r.col.docs[r.id]
	if !exists {
		return fmt.Errorf("update sobre documento inexistente %s", r.id)
	}
	for k, v := range cloneMap(data) {
		doc[k] = v
	}
	return nil
}

func (r *docRef) ArrayUnion(_ context.Context, field string, elems ...string) error {
	doc, exists := r.col.docs[r.id]
	if !exists {
		return fmt.Errorf("array-union sobre documento inexistente %s", r.id)
	}
	current, err := stringSlice(doc[field])
	if err != nil {
		return fmt.Errorf("campo %s: %w", field, err)
	}
	seen := make(map[string]struct{}, len(current))
	for _, e := range current {
		seen[e] = struct{}{}
	}
	for _, e := range elems {
		if _, dup := seen[e]; dup {
			continue
		}
		seen[e] = struct{}{}
		current = append(current, e)
	}
	doc[field] = current
	return nil
}

func stringSlice(v any) ([]string, error) {
	switch s := v.(type) {
	case nil:
		return nil, nil
	case []string:
		out := make([]string, len(s))
		copy(out, s)
		return out, nil
	case []any:
		out := make([]string, 0, len(s))
		for _, e := range s {
			str, ok := e.(string)
			if !ok {
				return nil, fmt.Errorf("elemento no string %T", e)
			}
			out = append(out, str)
		}
		return out, nil
	default:
		return nil, fmt.Errorf("no es un arreglo: %T", v)
	}
}

// cloneMap copia superficialmente el documento y en profundidad sus arreglos
// de strings, para que el caller no comparta referencias con el almacén.
func cloneMap(m map[string]any) map[string]any {
	out := make(map[string]any, len(m))
	for k, v := range m {
		if s, ok := v.([]string); ok {
			c := make([]string, len(s))
			copy(c, s)
			out[k] = c
			continue
		}
		out[k] = v
	}
	return out
}
