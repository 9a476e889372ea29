package entity

import (
	"fmt"
	"strings"

	"github.com/gpelletier0/firestore-data-seeder/internal/domain"
)

// Claves canónicas del documento Users.
const (
	userKeyUID          = "Uid"
	userKeyFirstName    = "FirstName"
	userKeyLastName     = "LastName"
	userKeyXP           = "Xp"
	userKeyAchievements = "Achievements"
	// Alias histórico aceptado solo en lectura.
	userKeyAchievementsLegacy = "AchievementsList"
)

// StoreUser representa un usuario en la colección Users del almacén de
// documentos. El Uid es clave foránea hacia el servicio de identidad.
type StoreUser struct {
	UID          string
	FirstName    string
	LastName     string
	XP           int // nunca negativo
	Achievements []string
}

// NewStoreUser construye un StoreUser partiendo el displayName en nombre y
// apellido. Con cero o un token, el apellido queda vacío; nunca falla por
// índice fuera de rango.
func NewStoreUser(uid, displayName string, xp int) StoreUser {
	first, last := splitDisplayName(displayName)
	return StoreUser{
		UID:          uid,
		FirstName:    first,
		LastName:     last,
		XP:           xp,
		Achievements: []string{},
	}
}

func splitDisplayName(displayName string) (first, last string) {
	tokens := strings.Fields(displayName)
	switch len(tokens) {
	case 0:
		return "", ""
	case 1:
		return tokens[0], ""
	default:
		return tokens[0], strings.Join(tokens[1:], " ")
	}
}

// FullName devuelve "FirstName LastName" para reportes.
func (u StoreUser) FullName() string {
	return strings.TrimSpace(u.FirstName + " " + u.LastName)
}

// ToMap serializa el usuario con el conjunto fijo de claves del documento.
// Siempre escribe Achievements, nunca el alias histórico.
func (u StoreUser) ToMap() map[string]any {
	achievements := u.Achievements
	if achievements == nil {
		achievements = []string{}
	}
	return map[string]any{
		userKeyUID:          u.UID,
		userKeyFirstName:    u.FirstName,
		userKeyLastName:     u.LastName,
		userKeyXP:           u.XP,
		userKeyAchievements: achievements,
	}
}

// StoreUserFromMap deserializa un documento Users validando el conjunto de
// claves requerido. Documentos incompletos retornan ErrMalformedRecord en vez
// de provocar un acceso a clave inexistente.
func StoreUserFromMap(source map[string]any) (StoreUser, error) {
	var u StoreUser

	uid, ok := asString(source[userKeyUID])
	if !ok {
		return u, fmt.Errorf("%w: users.%s", domain.ErrMalformedRecord, userKeyUID)
	}
	first, ok := asString(source[userKeyFirstName])
	if !ok {
		return u, fmt.Errorf("%w: users.%s", domain.ErrMalformedRecord, userKeyFirstName)
	}
	last, ok := asString(source[userKeyLastName])
	if !ok {
		return u, fmt.Errorf("%w: users.%s", domain.ErrMalformedRecord, userKeyLastName)
	}
	xp, ok := asInt(source[userKeyXP])
	if !ok || xp < 0 {
		return u, fmt.Errorf("%w: users.%s", domain.ErrMalformedRecord, userKeyXP)
	}

	// Achievements es opcional; se acepta también el alias AchievementsList
	// que escribían versiones anteriores del seeder.
	raw, found := source[userKeyAchievements]
	if !found {
		raw = source[userKeyAchievementsLegacy]
	}
	achievements, ok := asStringSlice(raw)
	if !ok {
		return u, fmt.Errorf("%w: users.%s", domain.ErrMalformedRecord, userKeyAchievements)
	}

	u = StoreUser{UID: uid, FirstName: first, LastName: last, XP: xp, Achievements: achievements}
	return u, nil
}

func asString(v any) (string, bool) {
	s, ok := v.(string)
	return s, ok
}

// asInt acepta los tipos numéricos con que cada backend devuelve enteros
// (int en memoria, int64 en Firestore, int32/int64/float64 en Mongo).
func asInt(v any) (int, bool) {
	switch n := v.(type) {
	case int:
		return n, true
	case int32:
		return int(n), true
	case int64:
		return int(n), true
	case float64:
		return int(n), true
	default:
		return 0, false
	}
}

func asStringSlice(v any) ([]string, bool) {
	switch s := v.(type) {
	case nil:
		return []string{}, true
	case []string:
		out := make([]string, len(s))
		copy(out, s)
		return out, true
	case []any:
		out := make([]string, 0, len(s))
		for _, e := range s {
			str, ok := e.(string)
			if !ok {
				return nil, false
			}
			out = append(out, str)
		}
		return out, true
	default:
		return nil, false
	}
}
