package firebase

import (
	"context"
	"fmt"

	"cloud.google.com/go/firestore"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/gpelletier0/firestore-data-seeder/internal/domain/repository"
)

var _ repository.DocumentStore = (*Store)(nil)

// Store implementación del puerto DocumentStore sobre Cloud Firestore.
type Store struct {
	client *firestore.Client
}

// NewStore construye el adaptador sobre un cliente ya inicializado.
func NewStore(client *firestore.Client) *Store {
	return &Store{client: client}
}

// Collection referencia una colección por nombre.
func (s *Store) Collection(name string) repository.Collection {
	return &collection{ref: s.client.Collection(name)}
}

type collection struct {
	ref *firestore.CollectionRef
}

// Count materializa solo las referencias (Select sin campos) para la guarda
// de existencia.
func (c *collection) Count(ctx context.Context) (int, error) {
	snaps, err := c.ref.Select().Documents(ctx).GetAll()
	if err != nil {
		return 0, fmt.Errorf("contar %s: %w", c.ref.ID, err)
	}
	return len(snaps), nil
}

// Documents devuelve la colección en el orden natural de streaming de
// Firestore (no garantizado ordenado).
func (c *collection) Documents(ctx context.Context) ([]repository.Document, error) {
	snaps, err := c.ref.Documents(ctx).GetAll()
	if err != nil {
		return nil, fmt.Errorf("recorrer %s: %w", c.ref.ID, err)
	}
	docs := make([]repository.Document, 0, len(snaps))
	for _, snap := range snaps {
		docs = append(docs, repository.Document{ID: snap.Ref.ID, Data: snap.Data()})
	}
	return docs, nil
}

func (c *collection) NewDoc() repository.DocumentRef {
	return &docRef{ref: c.ref.NewDoc()}
}

func (c *collection) Doc(id string) repository.DocumentRef {
	return &docRef{ref: c.ref.Doc(id)}
}

type docRef struct {
	ref *firestore.DocumentRef
}

func (r *docRef) ID() string { return r.ref.ID }

func (r *docRef) Get(ctx context.Context) (repository.Document, bool, error) {
	snap, err := r.ref.Get(ctx)
	if status.Code(err) == codes.NotFound {
		return repository.Document{}, false, nil
	}
	if err != nil {
		return repository.Document{}, false, fmt.Errorf("leer %s: %w", r.ref.ID, err)
	}
	return repository.Document{ID: snap.Ref.ID, Data: snap.Data()}, true, nil
}

func (r *docRef) Set(ctx context.Context, data map[string]any) error {
	_, err := r.ref.Set(ctx, data)
	return err
}

func (r *docRef) Update(ctx context.Context, data map[string]any) error {
	updates := make([]firestore.Update, 0, len(data))
	for field, value := range data {
		updates = append(updates, firestore.Update{Path: field, Value: value})
	}
	_, err := r.ref.Update(ctx, updates)
	return err
}

// ArrayUnion usa la primitiva nativa de Firestore: agrega sin duplicar.
func (r *docRef) ArrayUnion(ctx context.Context, field string, elems ...string) error {
	values := make([]any, len(elems))
	for i, e := range elems {
		values[i] = e
	}
	_, err := r.ref.Update(ctx, []firestore.Update{
		{Path: field, Value: firestore.ArrayUnion(values...)},
	})
	return err
}
