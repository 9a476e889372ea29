package repository

import "context"

// Nombres de colección sembrados por el orquestador.
const (
	CollectionCompanies = "Companies"
	CollectionUsers     = "Users"
)

// Document es un documento materializado: id de almacén más sus campos.
type Document struct {
	ID   string
	Data map[string]any
}

// DocumentStore define el puerto hacia la base de documentos (DIP).
// Implementaciones: Firestore, MongoDB y memoria (dry-run / tests).
type DocumentStore interface {
	Collection(name string) Collection
}

// Collection agrupa documentos bajo un nombre.
type Collection interface {
	// Count devuelve la cantidad de documentos (chequeo de existencia para
	// las guardas de idempotencia; advisory, no transaccional).
	Count(ctx context.Context) (int, error)
	// Documents materializa la colección completa en el orden natural de
	// streaming del almacén (no garantiza orden estable entre backends).
	Documents(ctx context.Context) ([]Document, error)
	// NewDoc crea una referencia con id asignado por el almacén.
	NewDoc() DocumentRef
	// Doc referencia el documento con el id dado (exista o no).
	Doc(id string) DocumentRef
}

// DocumentRef referencia un documento puntual.
type DocumentRef interface {
	ID() string
	// Get devuelve el documento y si existe.
	Get(ctx context.Context) (Document, bool, error)
	// Set crea o reemplaza el documento completo.
	Set(ctx context.Context, data map[string]any) error
	// Update aplica una actualización de campos sobre un documento existente.
	Update(ctx context.Context, data map[string]any) error
	// ArrayUnion agrega elementos a un campo arreglo sin duplicar los ya
	// presentes (primitiva de unión del almacén).
	ArrayUnion(ctx context.Context, field string, elems ...string) error
}
