// Package firebase adapta el Admin SDK de Firebase a los puertos del dominio:
// Firebase Auth como servicio de identidad y Cloud Firestore como almacén de
// documentos.
package firebase

import (
	"context"
	"fmt"

	"firebase.google.com/go/v4/auth"
	"google.golang.org/api/iterator"

	"github.com/gpelletier0/firestore-data-seeder/internal/domain"
	"github.com/gpelletier0/firestore-data-seeder/internal/domain/entity"
	"github.com/gpelletier0/firestore-data-seeder/internal/domain/repository"
)

var _ repository.IdentityRepository = (*AuthRepo)(nil)

// AuthRepo implementación del puerto IdentityRepository sobre Firebase Auth.
type AuthRepo struct {
	client *auth.Client
}

// NewAuthRepository construye el adaptador sobre un cliente ya inicializado.
func NewAuthRepository(client *auth.Client) *AuthRepo {
	return &AuthRepo{client: client}
}

// ListUsers recorre el iterador de exportación completo del servicio.
func (r *AuthRepo) ListUsers(ctx context.Context) ([]entity.IdentityUser, error) {
	var users []entity.IdentityUser
	it := r.client.Users(ctx, "")
	for {
		record, err := it.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("iterar usuarios de auth: %w", err)
		}
		users = append(users, entity.IdentityUser{
			UID:         record.UID,
			DisplayName: record.DisplayName,
		})
	}
	return users, nil
}

// CreateUser registra el usuario; el uid lo asigna el servicio y se descubre
// después listando.
func (r *AuthRepo) CreateUser(ctx context.Context, user entity.AuthUser) error {
	params := (&auth.UserToCreate{}).
		Email(user.Email).
		EmailVerified(user.EmailVerified).
		PhoneNumber(user.PhoneNumber).
		Password(user.Password).
		DisplayName(user.DisplayName).
		PhotoURL(user.PhotoURL).
		Disabled(user.Disabled)

	if _, err := r.client.CreateUser(ctx, params); err != nil {
		if auth.IsEmailAlreadyExists(err) || auth.IsPhoneNumberAlreadyExists(err) {
			return fmt.Errorf("%w: %v", domain.ErrEmailExists, err)
		}
		return fmt.Errorf("%w: %v", domain.ErrRemoteWrite, err)
	}
	return nil
}
