// Package fake adapta gofakeit al puerto DatasetGenerator: datos sintéticos
// verosímiles, con semilla fija para que corridas repetidas contra un entorno
// vacío produzcan el mismo dataset.
package fake

import (
	"fmt"
	"strings"
	"unicode"

	"github.com/brianvoe/gofakeit/v6"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"

	"github.com/gpelletier0/firestore-data-seeder/internal/application/seeding"
	"github.com/gpelletier0/firestore-data-seeder/internal/domain"
	"github.com/gpelletier0/firestore-data-seeder/internal/domain/entity"
)

// Probabilidades de los booleanos del perfil, en porciento.
const (
	chanceEmailVerified = 50
	chanceDisabled      = 25
)

const maxEmailAttempts = 100

var _ seeding.DatasetGenerator = (*Generator)(nil)

// Generator produce entidades sintéticas. No es seguro para uso concurrente;
// la corrida del seeder es secuencial.
type Generator struct {
	faker  *gofakeit.Faker
	fold   transform.Transformer
	emails map[string]struct{}
	phones map[string]struct{}
}

// NewGenerator construye el generador con la semilla dada. Con gofakeit una
// semilla 0 significa aleatoria; para reproducibilidad usar una fija (>0).
func NewGenerator(seed int64) *Generator {
	return &Generator{
		faker: gofakeit.New(seed),
		// NFD + supresión de marcas diacríticas + NFC: pliega los nombres
		// acentuados a ASCII para formar casillas de correo.
		fold:   transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC),
		emails: make(map[string]struct{}),
		phones: make(map[string]struct{}),
	}
}

// AuthUsers genera n usuarios con campos falsos independientes. Emails y
// teléfonos son únicos dentro de la vida del generador: el servicio de
// identidad rechaza duplicados y un dataset sintético no debe provocarlos.
func (g *Generator) AuthUsers(n int) ([]entity.AuthUser, error) {
	users := make([]entity.AuthUser, 0, n)
	for i := 0; i < n; i++ {
		name := g.faker.Name()
		email, err := g.email(name)
		if err != nil {
			return nil, err
		}
		phone, err := g.phone()
		if err != nil {
			return nil, err
		}
		users = append(users, entity.AuthUser{
			Email:         email,
			EmailVerified: g.chance(chanceEmailVerified),
			PhoneNumber:   phone,
			Password:      g.faker.Password(true, true, true, true, false, 12),
			DisplayName:   name,
			PhotoURL:      g.faker.ImageURL(640, 480),
			Disabled:      g.chance(chanceDisabled),
		})
	}
	return users, nil
}

// CompanyNames genera n nombres de empresa.
func (g *Generator) CompanyNames(n int) ([]string, error) {
	names := make([]string, 0, n)
	for i := 0; i < n; i++ {
		names = append(names, g.faker.Company())
	}
	return names, nil
}

// XP devuelve un entero aleatorio en [0, 9999].
func (g *Generator) XP() int {
	return g.faker.Number(0, 9999)
}

// email forma la casilla a partir del nombre visible plegado a ASCII.
func (g *Generator) email(displayName string) (string, error) {
	folded, _, err := transform.String(g.fold, displayName)
	if err != nil {
		return "", fmt.Errorf("%w: plegar nombre %q: %v", domain.ErrGeneration, displayName, err)
	}
	local := mailboxLocal(folded)
	if local == "" {
		return "", fmt.Errorf("%w: nombre %q no produce casilla de correo", domain.ErrGeneration, displayName)
	}

	domainName := g.faker.DomainName()
	email := local + "@" + domainName
	for attempt := 0; ; attempt++ {
		if _, taken := g.emails[email]; !taken {
			break
		}
		if attempt == maxEmailAttempts {
			return "", fmt.Errorf("%w: sin email único para %q", domain.ErrGeneration, displayName)
		}
		email = fmt.Sprintf("%s%d@%s", local, g.faker.Number(1, 9999), domainName)
	}
	g.emails[email] = struct{}{}
	return email, nil
}

// phone devuelve un número E.164 del plan norteamericano (+1).
func (g *Generator) phone() (string, error) {
	for attempt := 0; attempt < maxEmailAttempts; attempt++ {
		phone := "+1" + g.faker.Phone()
		if _, taken := g.phones[phone]; taken {
			continue
		}
		g.phones[phone] = struct{}{}
		return phone, nil
	}
	return "", fmt.Errorf("%w: sin teléfono único", domain.ErrGeneration)
}

// chance devuelve true con la probabilidad pct (en porciento).
func (g *Generator) chance(pct int) bool {
	return g.faker.Number(1, 100) <= pct
}

// mailboxLocal reduce el nombre plegado a la parte local del email:
// minúsculas, tokens unidos por punto, solo [a-z0-9.].
func mailboxLocal(folded string) string {
	tokens := strings.Fields(strings.ToLower(folded))
	joined := strings.Join(tokens, ".")
	var b strings.Builder
	for _, r := range joined {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') || r == '.' {
			b.WriteRune(r)
		}
	}
	return strings.Trim(b.String(), ".")
}
