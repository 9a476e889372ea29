package repository

import (
	"context"

	"github.com/gpelletier0/firestore-data-seeder/internal/domain/entity"
)

// IdentityRepository define el puerto hacia el servicio de identidad (DIP).
// La implementación vive en infrastructure (Firebase Auth o memoria).
type IdentityRepository interface {
	// ListUsers devuelve todos los usuarios registrados, en el orden de
	// paginación del servicio.
	ListUsers(ctx context.Context) ([]entity.IdentityUser, error)
	// CreateUser registra un usuario nuevo; el servicio asigna el uid (no
	// visible aquí, se descubre listando). Falla con ErrEmailExists ante
	// email o teléfono duplicado.
	CreateUser(ctx context.Context, user entity.AuthUser) error
}
