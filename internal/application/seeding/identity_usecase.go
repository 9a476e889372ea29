package seeding

import (
	"context"
	"fmt"
	"strconv"

	"github.com/gpelletier0/firestore-data-seeder/internal/domain/entity"
	"github.com/gpelletier0/firestore-data-seeder/internal/domain/repository"
)

// bootstrapThreshold tolera una cuenta admin/bootstrap preexistente: con más
// usuarios que esto, el servicio se considera ya sembrado.
const bootstrapThreshold = 1

// IdentitySeedUseCase siembra usuarios sintéticos en el servicio de identidad.
type IdentitySeedUseCase struct {
	identity repository.IdentityRepository
	gen      DatasetGenerator
	reporter Reporter
}

// NewIdentitySeedUseCase construye el caso de uso con sus puertos.
func NewIdentitySeedUseCase(identity repository.IdentityRepository, gen DatasetGenerator, reporter Reporter) *IdentitySeedUseCase {
	return &IdentitySeedUseCase{identity: identity, gen: gen, reporter: reporter}
}

// SeedUsers crea quantity usuarios en el servicio de identidad. Guarda de
// idempotencia (advisory, no transaccional): si el listado supera el umbral de
// bootstrap, la llamada es un no-op que reporta los usuarios existentes.
// Dentro de la fase, el primer error de creación la aborta; no hay rollback de
// los usuarios ya creados.
func (uc *IdentitySeedUseCase) SeedUsers(ctx context.Context, quantity int) error {
	existing, err := uc.identity.ListUsers(ctx)
	if err != nil {
		return fmt.Errorf("listar usuarios de identidad: %w", err)
	}

	if len(existing) > bootstrapThreshold {
		uc.reporter.Render("Usuarios existentes en identidad", []string{"display_name", "uid"}, identityRows(existing))
		return nil
	}

	users, err := uc.gen.AuthUsers(quantity)
	if err != nil {
		return err
	}

	for _, user := range users {
		if err := uc.identity.CreateUser(ctx, user); err != nil {
			return fmt.Errorf("crear usuario %s: %w", user.Email, err)
		}
	}

	uc.reporter.Publish("Usuarios de identidad creados", "auth_users.tsv",
		[]string{"email", "email_verified", "phone_number", "password", "display_name", "photo_url", "disabled"},
		authUserRows(users))
	return nil
}

func identityRows(users []entity.IdentityUser) [][]string {
	rows := make([][]string, 0, len(users))
	for _, u := range users {
		rows = append(rows, []string{u.DisplayName, u.UID})
	}
	return rows
}

func authUserRows(users []entity.AuthUser) [][]string {
	rows := make([][]string, 0, len(users))
	for _, u := range users {
		rows = append(rows, []string{
			u.Email,
			strconv.FormatBool(u.EmailVerified),
			u.PhoneNumber,
			u.Password,
			u.DisplayName,
			u.PhotoURL,
			strconv.FormatBool(u.Disabled),
		})
	}
	return rows
}
