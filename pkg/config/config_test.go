package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gpelletier0/firestore-data-seeder/internal/domain"
	"github.com/gpelletier0/firestore-data-seeder/pkg/config"
)

// writeConfig deja un config.json en un directorio temporal.
func writeConfig(t *testing.T, body string) string {
	t.Helper()
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.json"), []byte(body), 0o644))
	return dir
}

// limpiarEntorno registra la restauración de las variables que Load exporta.
func limpiarEntorno(t *testing.T) {
	t.Helper()
	t.Setenv(config.EnvCredentials, "")
	t.Setenv(config.EnvProject, "")
}

func TestLoad_ArchivoAusente(t *testing.T) {
	limpiarEntorno(t)

	_, err := config.Load(t.TempDir())

	assert.ErrorIs(t, err, domain.ErrConfigMissing)
}

func TestLoad_ExportaEntornoYLeeCantidades(t *testing.T) {
	limpiarEntorno(t)
	dir := writeConfig(t, `{
		"environment": {
			"GOOGLE_APPLICATION_CREDENTIALS": "/tmp/cred.json",
			"GCLOUD_PROJECT": "demo-project"
		},
		"quantities": {"users": 5, "companies": 3}
	}`)

	cfg, err := config.Load(dir)
	require.NoError(t, err)

	assert.Equal(t, "/tmp/cred.json", os.Getenv(config.EnvCredentials),
		"el bloque environment se exporta antes de inicializar SDKs")
	assert.Equal(t, "demo-project", os.Getenv(config.EnvProject))
	assert.Equal(t, 5, cfg.Quantities.Users)
	assert.Equal(t, 3, cfg.Quantities.Companies)
	assert.Equal(t, config.BackendFirestore, cfg.Store.Backend, "firestore es el backend por defecto")
}

func TestLoad_CredencialesAusentes(t *testing.T) {
	limpiarEntorno(t)
	dir := writeConfig(t, `{"quantities": {"users": 2, "companies": 1}}`)

	_, err := config.Load(dir)

	assert.ErrorIs(t, err, domain.ErrCredentialsUnset)
}

func TestLoad_BackendMemoryNoExigeCredenciales(t *testing.T) {
	limpiarEntorno(t)
	dir := writeConfig(t, `{
		"store": {"backend": "memory"},
		"quantities": {"users": 2, "companies": 1}
	}`)

	cfg, err := config.Load(dir)
	require.NoError(t, err)
	assert.Equal(t, config.BackendMemory, cfg.Store.Backend)
}

func TestLoad_BackendDesconocido(t *testing.T) {
	limpiarEntorno(t)
	dir := writeConfig(t, `{"store": {"backend": "dynamo"}}`)

	_, err := config.Load(dir)

	assert.Error(t, err)
}

func TestLoad_CantidadesNegativas(t *testing.T) {
	limpiarEntorno(t)
	dir := writeConfig(t, `{
		"store": {"backend": "memory"},
		"quantities": {"users": -1, "companies": 3}
	}`)

	_, err := config.Load(dir)

	assert.Error(t, err)
}

func TestLoad_OverridePorVariableDeEntorno(t *testing.T) {
	limpiarEntorno(t)
	t.Setenv("SEEDER_STORE_BACKEND", "memory")
	dir := writeConfig(t, `{
		"store": {"backend": "firestore"},
		"quantities": {"users": 1, "companies": 1}
	}`)

	cfg, err := config.Load(dir)
	require.NoError(t, err)
	assert.Equal(t, config.BackendMemory, cfg.Store.Backend,
		"las variables SEEDER_* pisan al archivo")
}

func TestLoad_Defaults(t *testing.T) {
	limpiarEntorno(t)
	dir := writeConfig(t, `{"store": {"backend": "memory"}}`)

	cfg, err := config.Load(dir)
	require.NoError(t, err)

	assert.Equal(t, "development", cfg.App.Env)
	assert.Equal(t, "info", cfg.App.LogLevel)
	assert.Equal(t, 0, cfg.Quantities.Users)
	assert.Equal(t, ".", cfg.Report.Dir)
	assert.EqualValues(t, 1, cfg.Seeds.Generation, "semilla de generación fija por defecto")
	assert.EqualValues(t, 0, cfg.Seeds.Assignment, "0 = asignación con semilla por reloj")
}
