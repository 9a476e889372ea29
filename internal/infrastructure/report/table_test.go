package report_test

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gpelletier0/firestore-data-seeder/internal/infrastructure/report"
	"github.com/gpelletier0/firestore-data-seeder/pkg/logger"
)

func testLogger() *logger.Logger {
	return logger.New(logger.Config{Env: "production", Level: "error"})
}

func TestRender_ImprimeTituloYFilas(t *testing.T) {
	var out bytes.Buffer
	r := report.New(&out, t.TempDir(), testLogger())

	r.Render("Usuarios existentes", []string{"display_name", "uid"}, [][]string{
		{"Marie Tremblay", "uid-1"},
		{"Luc Gagnon", "uid-2"},
	})

	s := out.String()
	assert.Contains(t, s, "Usuarios existentes:")
	assert.Contains(t, s, "Marie Tremblay")
	assert.Contains(t, s, "uid-2")
}

func TestPublish_ExportaTSV(t *testing.T) {
	dir := t.TempDir()
	var out bytes.Buffer
	r := report.New(&out, dir, testLogger())

	r.Publish("Empresas creadas", "companies.tsv", []string{"Uid", "Name"}, [][]string{
		{"c1", "Tremblay et Fils"},
		{"c2", "Roy SA"},
	})

	raw, err := os.ReadFile(filepath.Join(dir, "companies.tsv"))
	require.NoError(t, err)
	assert.Equal(t, "Uid\tName\nc1\tTremblay et Fils\nc2\tRoy SA\n", string(raw))
}

func TestPublish_FalloDeExportNoEsFatal(t *testing.T) {
	// Directorio imposible de crear: el error se registra y no se propaga.
	var out bytes.Buffer
	devNullFile := filepath.Join(t.TempDir(), "ocupado")
	require.NoError(t, os.WriteFile(devNullFile, []byte("x"), 0o644))

	r := report.New(&out, filepath.Join(devNullFile, "sub"), testLogger())

	assert.NotPanics(t, func() {
		r.Publish("Reporte", "a.tsv", []string{"h"}, [][]string{{"v"}})
	})
	assert.Contains(t, out.String(), "Reporte:", "la tabla igual se imprime")
}
