package seeding

import "github.com/gpelletier0/firestore-data-seeder/internal/domain/entity"

// DatasetGenerator produce entidades sintéticas con semilla fija para que
// corridas repetidas contra un entorno vacío sean reproducibles.
type DatasetGenerator interface {
	// AuthUsers genera n usuarios con campos falsos independientes.
	AuthUsers(n int) ([]entity.AuthUser, error)
	// CompanyNames genera n nombres de empresa.
	CompanyNames(n int) ([]string, error)
	// XP devuelve un entero aleatorio no negativo para el perfil de usuario.
	XP() int
}

// Reporter es el sumidero de reportes tabulares. Sus fallos son no fatales:
// la implementación los registra y no los propaga.
type Reporter interface {
	// Render imprime la tabla en la salida estándar.
	Render(title string, headers []string, rows [][]string)
	// Publish imprime la tabla y además la persiste como archivo delimitado.
	Publish(title, filename string, headers []string, rows [][]string)
}
