// Package mongodb implementa el puerto DocumentStore sobre MongoDB, como
// backend alternativo para entornos de staging sin acceso a GCP. La primitiva
// de unión es $addToSet/$each y los ids de documento son ObjectIDs en hex.
package mongodb

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/gpelletier0/firestore-data-seeder/internal/domain/repository"
)

var _ repository.DocumentStore = (*Store)(nil)

// Store implementación del puerto DocumentStore sobre una base MongoDB.
type Store struct {
	db *mongo.Database
}

// NewStore construye el adaptador sobre una base ya conectada.
func NewStore(db *mongo.Database) *Store {
	return &Store{db: db}
}

// Collection referencia una colección por nombre.
func (s *Store) Collection(name string) repository.Collection {
	return &collection{col: s.db.Collection(name)}
}

type collection struct {
	col *mongo.Collection
}

func (c *collection) Count(ctx context.Context) (int, error) {
	n, err := c.col.CountDocuments(ctx, bson.D{})
	if err != nil {
		return 0, fmt.Errorf("contar %s: %w", c.col.Name(), err)
	}
	return int(n), nil
}

// Documents devuelve la colección en el orden natural del cursor.
func (c *collection) Documents(ctx context.Context) ([]repository.Document, error) {
	cursor, err := c.col.Find(ctx, bson.D{})
	if err != nil {
		return nil, fmt.Errorf("recorrer %s: %w", c.col.Name(), err)
	}
	var raw []bson.M
	if err := cursor.All(ctx, &raw); err != nil {
		return nil, fmt.Errorf("materializar %s: %w", c.col.Name(), err)
	}
	docs := make([]repository.Document, 0, len(raw))
	for _, m := range raw {
		docs = append(docs, toDocument(m))
	}
	return docs, nil
}

func (c *collection) NewDoc() repository.DocumentRef {
	return &docRef{col: c.col, id: primitive.NewObjectID().Hex()}
}

func (c *collection) Doc(id string) repository.DocumentRef {
	return &docRef{col: c.col, id: id}
}

type docRef struct {
	col *mongo.Collection
	id  string
}

func (r *docRef) ID() string { return r.id }

func (r *docRef) filter() bson.M { return bson.M{"_id": r.id} }

func (r *docRef) Get(ctx context.Context) (repository.Document, bool, error) {
	var m bson.M
	err := r.col.FindOne(ctx, r.filter()).Decode(&m)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return repository.Document{}, false, nil
	}
	if err != nil {
		return repository.Document{}, false, fmt.Errorf("leer %s: %w", r.id, err)
	}
	return toDocument(m), true, nil
}

func (r *docRef) Set(ctx context.Context, data map[string]any) error {
	_, err := r.col.ReplaceOne(ctx, r.filter(), bson.M(data), options.Replace().SetUpsert(true))
	return err
}

func (r *docRef) Update(ctx context.Context, data map[string]any) error {
	res, err := r.col.UpdateOne(ctx, r.filter(), bson.M{"$set": bson.M(data)})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return fmt.Errorf("update sobre documento inexistente %s", r.id)
	}
	return nil
}

// ArrayUnion agrega sin duplicar vía $addToSet con $each.
func (r *docRef) ArrayUnion(ctx context.Context, field string, elems ...string) error {
	res, err := r.col.UpdateOne(ctx, r.filter(),
		bson.M{"$addToSet": bson.M{field: bson.M{"$each": elems}}})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return fmt.Errorf("array-union sobre documento inexistente %s", r.id)
	}
	return nil
}

// toDocument separa el _id del resto de los campos.
func toDocument(m bson.M) repository.Document {
	id, _ := m["_id"].(string)
	data := make(map[string]any, len(m))
	for k, v := range m {
		if k == "_id" {
			continue
		}
		if a, ok := v.(bson.A); ok {
			data[k] = []any(a)
			continue
		}
		data[k] = v
	}
	return repository.Document{ID: id, Data: data}
}
