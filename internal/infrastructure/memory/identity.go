// Package memory implementa los puertos de identidad y almacén sobre
// estructuras en memoria. Es el backend del modo dry-run y el doble de los
// tests de casos de uso. Sin locking: la corrida es secuencial por diseño.
package memory

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/gpelletier0/firestore-data-seeder/internal/domain"
	"github.com/gpelletier0/firestore-data-seeder/internal/domain/entity"
	"github.com/gpelletier0/firestore-data-seeder/internal/domain/repository"
)

var _ repository.IdentityRepository = (*IdentityRepo)(nil)

// IdentityRepo es un servicio de identidad en memoria.
type IdentityRepo struct {
	users  []entity.IdentityUser
	emails map[string]struct{}
	phones map[string]struct{}
}

// NewIdentityRepository construye el servicio, opcionalmente poblado con
// usuarios preexistentes (p. ej. la cuenta bootstrap de un entorno real).
func NewIdentityRepository(existing ...entity.IdentityUser) *IdentityRepo {
	repo := &IdentityRepo{
		emails: make(map[string]struct{}),
		phones: make(map[string]struct{}),
	}
	repo.users = append(repo.users, existing...)
	return repo
}

// ListUsers devuelve los usuarios en orden de creación.
func (r *IdentityRepo) ListUsers(_ context.Context) ([]entity.IdentityUser, error) {
	out := make([]entity.IdentityUser, len(r.users))
	copy(out, r.users)
	return out, nil
}

// CreateUser registra el usuario asignándole un uid; email y teléfono deben
// ser únicos, como en el servicio real.
func (r *IdentityRepo) CreateUser(_ context.Context, user entity.AuthUser) error {
	if _, dup := r.emails[user.Email]; dup {
		return fmt.Errorf("%w: %s", domain.ErrEmailExists, user.Email)
	}
	if _, dup := r.phones[user.PhoneNumber]; dup {
		return fmt.Errorf("%w: teléfono %s", domain.ErrEmailExists, user.PhoneNumber)
	}
	r.emails[user.Email] = struct{}{}
	r.phones[user.PhoneNumber] = struct{}{}
	r.users = append(r.users, entity.IdentityUser{
		UID:         uuid.NewString(),
		DisplayName: user.DisplayName,
	})
	return nil
}
