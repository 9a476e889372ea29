package entity

import (
	"fmt"

	"github.com/gpelletier0/firestore-data-seeder/internal/domain"
)

// Claves canónicas del documento Companies. Exportadas porque la actualización
// de unión del motor de asignación referencia el campo Users por nombre.
const (
	CompanyFieldUID   = "Uid"
	CompanyFieldName  = "Name"
	CompanyFieldUsers = "Users"
)

// StoreCompany representa una empresa en la colección Companies. El Uid lo
// asigna el almacén al insertar (vacío hasta entonces). Users crece solo por
// actualizaciones de unión; nunca se eliminan entradas.
type StoreCompany struct {
	UID   string
	Name  string
	Users []string // uids del servicio de identidad, sin duplicados
}

// NewStoreCompany construye una empresa aún no persistida (sin uid).
func NewStoreCompany(name string) StoreCompany {
	return StoreCompany{Name: name, Users: []string{}}
}

// ToMap serializa la empresa con el conjunto fijo de claves del documento.
func (c StoreCompany) ToMap() map[string]any {
	users := c.Users
	if users == nil {
		users = []string{}
	}
	return map[string]any{
		CompanyFieldUID:   c.UID,
		CompanyFieldName:  c.Name,
		CompanyFieldUsers: users,
	}
}

// StoreCompanyFromMap deserializa un documento Companies validando el conjunto
// de claves requerido; retorna ErrMalformedRecord ante claves faltantes.
func StoreCompanyFromMap(source map[string]any) (StoreCompany, error) {
	var c StoreCompany

	uid, ok := asString(source[CompanyFieldUID])
	if !ok {
		return c, fmt.Errorf("%w: companies.%s", domain.ErrMalformedRecord, CompanyFieldUID)
	}
	name, ok := asString(source[CompanyFieldName])
	if !ok {
		return c, fmt.Errorf("%w: companies.%s", domain.ErrMalformedRecord, CompanyFieldName)
	}
	users, ok := asStringSlice(source[CompanyFieldUsers])
	if !ok {
		return c, fmt.Errorf("%w: companies.%s", domain.ErrMalformedRecord, CompanyFieldUsers)
	}

	c = StoreCompany{UID: uid, Name: name, Users: users}
	return c, nil
}
