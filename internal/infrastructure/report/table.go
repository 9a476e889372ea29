// Package report implementa el puerto Reporter: tabla en la salida estándar y
// export a archivo tabulado. Los fallos del sumidero se registran y se
// descartan; un reporte perdido nunca aborta una fase de seeding.
package report

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/olekukonko/tablewriter"

	"github.com/gpelletier0/firestore-data-seeder/internal/application/seeding"
	"github.com/gpelletier0/firestore-data-seeder/pkg/logger"
)

var _ seeding.Reporter = (*TableReporter)(nil)

// TableReporter renderiza tablas y persiste copias TSV bajo un directorio.
type TableReporter struct {
	out io.Writer
	dir string
	log *logger.Logger
}

// New construye el reporter. dir es el directorio destino de los TSV.
func New(out io.Writer, dir string, log *logger.Logger) *TableReporter {
	return &TableReporter{out: out, dir: dir, log: log}
}

// Render imprime la tabla con encabezados.
func (r *TableReporter) Render(title string, headers []string, rows [][]string) {
	fmt.Fprintf(r.out, "\n%s:\n", title)
	table := tablewriter.NewWriter(r.out)
	table.SetHeader(headers)
	table.AppendBulk(rows)
	table.Render()
}

// Publish imprime la tabla y la exporta como TSV. El error de export solo se
// registra.
func (r *TableReporter) Publish(title, filename string, headers []string, rows [][]string) {
	r.Render(title, headers, rows)
	if err := r.export(filename, headers, rows); err != nil {
		r.log.Warn().Err(err).Str("archivo", filename).Msg("no se pudo exportar el reporte")
	}
}

func (r *TableReporter) export(filename string, headers []string, rows [][]string) error {
	if err := os.MkdirAll(r.dir, 0o755); err != nil {
		return fmt.Errorf("crear directorio de reportes: %w", err)
	}
	path := filepath.Join(r.dir, filename)
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("crear %s: %w", path, err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	w.Comma = '\t'
	if err := w.Write(headers); err != nil {
		return fmt.Errorf("escribir encabezados: %w", err)
	}
	if err := w.WriteAll(rows); err != nil {
		return fmt.Errorf("escribir filas: %w", err)
	}
	w.Flush()
	return w.Error()
}
