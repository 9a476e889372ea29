package seeding

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/gpelletier0/firestore-data-seeder/internal/domain"
	"github.com/gpelletier0/firestore-data-seeder/internal/domain/entity"
	"github.com/gpelletier0/firestore-data-seeder/internal/domain/repository"
)

// StoreSeedUseCase siembra las colecciones Companies y Users del almacén de
// documentos. Cada colección tiene su propia guarda de idempotencia (advisory,
// no transaccional): si ya contiene algún documento, la fase es un no-op que
// reporta lo existente.
type StoreSeedUseCase struct {
	store    repository.DocumentStore // nil si el cliente no pudo construirse
	identity repository.IdentityRepository
	gen      DatasetGenerator
	reporter Reporter
}

// NewStoreSeedUseCase construye el caso de uso con sus puertos.
func NewStoreSeedUseCase(store repository.DocumentStore, identity repository.IdentityRepository, gen DatasetGenerator, reporter Reporter) *StoreSeedUseCase {
	return &StoreSeedUseCase{store: store, identity: identity, gen: gen, reporter: reporter}
}

// SeedCompanies crea quantity documentos de empresa con uid asignado por el
// almacén y lista de usuarios vacía.
func (uc *StoreSeedUseCase) SeedCompanies(ctx context.Context, quantity int) error {
	if uc.store == nil {
		return domain.ErrStoreUnavailable
	}

	col := uc.store.Collection(repository.CollectionCompanies)
	count, err := col.Count(ctx)
	if err != nil {
		return fmt.Errorf("consultar colección %s: %w", repository.CollectionCompanies, err)
	}
	if count > 0 {
		uc.reportExistingCompanies(ctx, col)
		return nil
	}

	names, err := uc.gen.CompanyNames(quantity)
	if err != nil {
		return err
	}

	companies := make([]entity.StoreCompany, 0, len(names))
	for _, name := range names {
		ref := col.NewDoc()
		company := entity.NewStoreCompany(name)
		company.UID = ref.ID()
		if err := ref.Set(ctx, company.ToMap()); err != nil {
			return fmt.Errorf("%w: crear empresa %q: %v", domain.ErrRemoteWrite, name, err)
		}
		companies = append(companies, company)
	}

	uc.reporter.Publish("Empresas creadas en el almacén", "store_companies.tsv",
		[]string{"Uid", "Name", "Users"}, companyRows(companies))
	return nil
}

// SeedUsers mapea el listado completo del servicio de identidad a documentos
// de usuario (upsert por uid). Devuelve seeded=true solo cuando la colección
// estaba vacía y se sembró en esta corrida: esa misma condición habilita la
// fase de asignación.
func (uc *StoreSeedUseCase) SeedUsers(ctx context.Context) (seeded bool, err error) {
	if uc.store == nil {
		return false, domain.ErrStoreUnavailable
	}

	col := uc.store.Collection(repository.CollectionUsers)
	count, err := col.Count(ctx)
	if err != nil {
		return false, fmt.Errorf("consultar colección %s: %w", repository.CollectionUsers, err)
	}
	if count > 0 {
		uc.reportExistingUsers(ctx, col)
		return false, nil
	}

	identityUsers, err := uc.identity.ListUsers(ctx)
	if err != nil {
		return false, fmt.Errorf("listar usuarios de identidad: %w", err)
	}

	users := make([]entity.StoreUser, 0, len(identityUsers))
	for _, iu := range identityUsers {
		users = append(users, entity.NewStoreUser(iu.UID, iu.DisplayName, uc.gen.XP()))
	}

	for _, user := range users {
		ref := col.Doc(user.UID)
		_, exists, err := ref.Get(ctx)
		if err != nil {
			return false, fmt.Errorf("leer usuario %s: %w", user.UID, err)
		}
		if exists {
			err = ref.Update(ctx, user.ToMap())
		} else {
			err = ref.Set(ctx, user.ToMap())
		}
		if err != nil {
			return false, fmt.Errorf("%w: upsert usuario %s: %v", domain.ErrRemoteWrite, user.UID, err)
		}
	}

	uc.reporter.Publish("Usuarios creados en el almacén", "store_users.tsv",
		[]string{"Uid", "FirstName", "LastName", "Xp", "Achievements"}, storeUserRows(users))
	return true, nil
}

// reportExistingCompanies lista lo ya sembrado; un fallo de lectura aquí no
// aborta la corrida (la guarda ya decidió el no-op).
func (uc *StoreSeedUseCase) reportExistingCompanies(ctx context.Context, col repository.Collection) {
	docs, err := col.Documents(ctx)
	if err != nil {
		return
	}
	rows := make([][]string, 0, len(docs))
	for _, doc := range docs {
		company, err := entity.StoreCompanyFromMap(doc.Data)
		if err != nil {
			continue
		}
		rows = append(rows, []string{company.Name, company.UID})
	}
	uc.reporter.Render("Empresas existentes en el almacén", []string{"Name", "Uid"}, rows)
}

func (uc *StoreSeedUseCase) reportExistingUsers(ctx context.Context, col repository.Collection) {
	docs, err := col.Documents(ctx)
	if err != nil {
		return
	}
	rows := make([][]string, 0, len(docs))
	for _, doc := range docs {
		user, err := entity.StoreUserFromMap(doc.Data)
		if err != nil {
			continue
		}
		rows = append(rows, []string{user.FullName(), user.UID})
	}
	uc.reporter.Render("Usuarios existentes en el almacén", []string{"Name", "Uid"}, rows)
}

func companyRows(companies []entity.StoreCompany) [][]string {
	rows := make([][]string, 0, len(companies))
	for _, c := range companies {
		rows = append(rows, []string{c.UID, c.Name, strings.Join(c.Users, ",")})
	}
	return rows
}

func storeUserRows(users []entity.StoreUser) [][]string {
	rows := make([][]string, 0, len(users))
	for _, u := range users {
		rows = append(rows, []string{
			u.UID, u.FirstName, u.LastName, strconv.Itoa(u.XP), strings.Join(u.Achievements, ","),
		})
	}
	return rows
}
