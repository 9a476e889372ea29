package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/viper"

	"github.com/gpelletier0/firestore-data-seeder/internal/domain"
)

// Backends de almacén soportados.
const (
	BackendFirestore = "firestore"
	BackendMongoDB   = "mongodb"
	BackendMemory    = "memory" // dry-run, sin escrituras remotas
)

// Variables de entorno que consume el Admin SDK de Google.
const (
	EnvCredentials = "GOOGLE_APPLICATION_CREDENTIALS"
	EnvProject     = "GCLOUD_PROJECT"
)

// Config agrupa la configuración del seeder (lectura vía Viper desde
// config.json y variables de entorno).
type Config struct {
	App        AppConfig
	Store      StoreConfig
	Quantities Quantities
	Report     ReportConfig
	Seeds      Seeds
}

// AppConfig configuración general.
type AppConfig struct {
	Env      string // development, staging, production
	Name     string
	LogLevel string
}

// StoreConfig selección de backend del almacén de documentos.
type StoreConfig struct {
	Backend       string // firestore, mongodb, memory
	MongoURI      string
	MongoDatabase string
}

// Quantities cantidades a sembrar. La asignación no tiene cantidad propia:
// consume el listado completo de identidad.
type Quantities struct {
	Users     int
	Companies int
}

// ReportConfig destino de los exports tabulados.
type ReportConfig struct {
	Dir string
}

// Seeds semillas de aleatoriedad. Generation fija el dataset sintético
// (reproducible); Assignment en 0 significa semilla por reloj.
type Seeds struct {
	Generation int64
	Assignment int64
}

// Load lee config.json desde dir, exporta su bloque "environment" al entorno
// del proceso (el Admin SDK lee las credenciales de ahí) y aplica overrides
// SEEDER_* de variables de entorno. Archivo ausente -> ErrConfigMissing;
// credenciales sin definir (salvo backend memory) -> ErrCredentialsUnset.
func Load(dir string) (*Config, error) {
	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("json")
	v.AddConfigPath(dir)
	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrConfigMissing, err)
	}

	// Exportar el bloque environment antes de cualquier inicialización de SDK.
	for key, value := range v.GetStringMapString("environment") {
		if err := os.Setenv(strings.ToUpper(key), value); err != nil {
			return nil, fmt.Errorf("exportar %s: %w", key, err)
		}
	}

	v.SetEnvPrefix("SEEDER")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	cfg := &Config{
		App: AppConfig{
			Env:      getString(v, "app.env", "development"),
			Name:     getString(v, "app.name", "firestore-data-seeder"),
			LogLevel: getString(v, "app.log_level", "info"),
		},
		Store: StoreConfig{
			Backend:       getString(v, "store.backend", BackendFirestore),
			MongoURI:      getString(v, "store.mongo_uri", "mongodb://localhost:27017"),
			MongoDatabase: getString(v, "store.mongo_database", "seeder"),
		},
		Quantities: Quantities{
			Users:     getInt(v, "quantities.users", 0),
			Companies: getInt(v, "quantities.companies", 0),
		},
		Report: ReportConfig{
			Dir: getString(v, "report.dir", "."),
		},
		Seeds: Seeds{
			Generation: int64(getInt(v, "seeds.generation", 1)),
			Assignment: int64(getInt(v, "seeds.assignment", 0)),
		},
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) validate() error {
	switch c.Store.Backend {
	case BackendFirestore, BackendMongoDB, BackendMemory:
	default:
		return fmt.Errorf("backend de almacén desconocido: %q", c.Store.Backend)
	}
	if c.Quantities.Users < 0 || c.Quantities.Companies < 0 {
		return fmt.Errorf("las cantidades no pueden ser negativas: users=%d companies=%d",
			c.Quantities.Users, c.Quantities.Companies)
	}
	// El backend memory no toca servicios remotos; solo entonces se toleran
	// credenciales ausentes.
	if c.Store.Backend != BackendMemory {
		if os.Getenv(EnvCredentials) == "" || os.Getenv(EnvProject) == "" {
			return fmt.Errorf("%w: se requieren %s y %s", domain.ErrCredentialsUnset, EnvCredentials, EnvProject)
		}
	}
	return nil
}

func getString(v *viper.Viper, key, def string) string {
	if v.IsSet(key) {
		return v.GetString(key)
	}
	return def
}

func getInt(v *viper.Viper, key string, def int) int {
	if v.IsSet(key) {
		return v.GetInt(key)
	}
	return def
}
