package seeding

import (
	"context"
	"fmt"
	"math/rand"

	"github.com/gpelletier0/firestore-data-seeder/internal/domain"
	"github.com/gpelletier0/firestore-data-seeder/internal/domain/entity"
	"github.com/gpelletier0/firestore-data-seeder/internal/domain/repository"
)

// Assignment es un par empresa/usuario producido por una corrida del motor.
type Assignment struct {
	Company string
	UserUID string
}

// AssignmentEngine reparte los usuarios del servicio de identidad entre las
// empresas del almacén. Solo corre en la ruta de éxito de SeedUsers (misma
// condición de colección Users vacía); no tiene guarda propia.
type AssignmentEngine struct {
	store    repository.DocumentStore
	reporter Reporter
	rnd      *rand.Rand
}

// NewAssignmentEngine construye el motor con su fuente de aleatoriedad propia.
func NewAssignmentEngine(store repository.DocumentStore, reporter Reporter, seed int64) *AssignmentEngine {
	return &AssignmentEngine{store: store, reporter: reporter, rnd: rand.New(rand.NewSource(seed))}
}

// Assign consume el pool destructivamente empresa por empresa, en el orden de
// streaming de la colección Companies, y persiste cada extracción como una
// actualización de unión sobre el campo Users de la empresa (una llamada por
// usuario, sin batching). Devuelve el pool restante y los pares asignados.
// La mutación del pool es estrictamente secuencial: paralelizarla cambiaría la
// distribución y está prohibido.
func (e *AssignmentEngine) Assign(ctx context.Context, pool []entity.IdentityUser) (remaining []entity.IdentityUser, assigned []Assignment, err error) {
	if e.store == nil {
		return pool, nil, domain.ErrStoreUnavailable
	}

	col := e.store.Collection(repository.CollectionCompanies)
	docs, err := col.Documents(ctx)
	if err != nil {
		return pool, nil, fmt.Errorf("recorrer colección %s: %w", repository.CollectionCompanies, err)
	}

	companies := make([]entity.StoreCompany, 0, len(docs))
	for _, doc := range docs {
		company, err := entity.StoreCompanyFromMap(doc.Data)
		if err != nil {
			return pool, nil, err
		}
		companies = append(companies, company)
	}

	remaining, draws := partition(companies, pool, e.rnd)

	for i, company := range companies {
		for _, user := range draws[i] {
			if err := col.Doc(company.UID).ArrayUnion(ctx, entity.CompanyFieldUsers, user.UID); err != nil {
				return remaining, assigned, fmt.Errorf("%w: asignar %s a %q: %v",
					domain.ErrRemoteWrite, user.UID, company.Name, err)
			}
			assigned = append(assigned, Assignment{Company: company.Name, UserUID: user.UID})
		}
	}

	if len(assigned) > 0 {
		rows := make([][]string, 0, len(assigned))
		for _, a := range assigned {
			rows = append(rows, []string{a.Company, a.UserUID})
		}
		e.reporter.Publish("Usuarios asignados a empresas", "assignments.tsv",
			[]string{"company", "user uid"}, rows)
	}
	return remaining, assigned, nil
}

// partition reparte el pool entre las empresas sin tocar I/O: por empresa
// extrae k ∈ [0, ⌊r/2⌋] usuarios de la cola del pool, con r el tamaño restante
// en ese momento. El sesgo hacia la cola y la cobertura no exhaustiva son
// comportamiento contractual: la cota decae con el pool y deja usuarios sin
// asignar a propósito. El pool de entrada no se modifica; se devuelve el
// restante junto con la extracción por empresa (alineada por índice).
func partition(companies []entity.StoreCompany, pool []entity.IdentityUser, rnd *rand.Rand) (remaining []entity.IdentityUser, draws [][]entity.IdentityUser) {
	remaining = make([]entity.IdentityUser, len(pool))
	copy(remaining, pool)

	draws = make([][]entity.IdentityUser, len(companies))
	for i := range companies {
		r := len(remaining)
		if r == 0 {
			continue
		}
		k := rnd.Intn(r/2 + 1)
		draw := make([]entity.IdentityUser, 0, k)
		for j := 0; j < k; j++ {
			last := len(remaining) - 1
			draw = append(draw, remaining[last])
			remaining = remaining[:last]
		}
		draws[i] = draw
	}
	return remaining, draws
}
