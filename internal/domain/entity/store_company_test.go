package entity_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gpelletier0/firestore-data-seeder/internal/domain"
	"github.com/gpelletier0/firestore-data-seeder/internal/domain/entity"
)

func TestStoreCompany_RoundTrip(t *testing.T) {
	original := entity.StoreCompany{
		UID:   "comp-1",
		Name:  "Tremblay et Fils",
		Users: []string{"uid-a", "uid-b"},
	}

	decoded, err := entity.StoreCompanyFromMap(original.ToMap())
	require.NoError(t, err)
	assert.Equal(t, original, decoded, "from_dict(to_dict(x)) debe devolver x")
}

func TestStoreCompany_NuevaSinPersistir(t *testing.T) {
	c := entity.NewStoreCompany("Gagnon Inc")

	assert.Empty(t, c.UID, "el uid lo asigna el almacén al insertar")
	assert.Empty(t, c.Users)
	assert.NotNil(t, c.ToMap()["Users"], "Users se serializa como lista vacía, no nil")
}

func TestStoreCompanyFromMap_UsersComoInterfaz(t *testing.T) {
	// Los backends devuelven arreglos como []any.
	source := map[string]any{
		"Uid":   "comp-2",
		"Name":  "Roy SA",
		"Users": []any{"uid-1", "uid-2"},
	}

	c, err := entity.StoreCompanyFromMap(source)
	require.NoError(t, err)
	assert.Equal(t, []string{"uid-1", "uid-2"}, c.Users)
}

func TestStoreCompanyFromMap_ClaveFaltante(t *testing.T) {
	casos := []map[string]any{
		{"Name": "X", "Users": []string{}}, // sin Uid
		{"Uid": "u", "Users": []string{}},  // sin Name
	}
	for _, source := range casos {
		_, err := entity.StoreCompanyFromMap(source)
		assert.ErrorIs(t, err, domain.ErrMalformedRecord)
	}
}

func TestStoreCompanyFromMap_UsersAusente(t *testing.T) {
	// Users ausente equivale a lista vacía (documento recién creado a mano).
	c, err := entity.StoreCompanyFromMap(map[string]any{"Uid": "u", "Name": "X"})
	require.NoError(t, err)
	assert.Empty(t, c.Users)
}
