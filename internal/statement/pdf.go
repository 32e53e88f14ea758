package statement

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-pdf/fpdf"
	"github.com/rs/zerolog/log"
)

// PDFWriter saves documents as <dir>/<kind>/<Name>_<dd-MM-yyyy>_<HH-mm-ss>.pdf.
type PDFWriter struct {
	dir string
}

func NewPDFWriter(dir string) *PDFWriter {
	return &PDFWriter{dir: dir}
}

func (w *PDFWriter) Path(doc Document) string {
	t := doc.CreatedAt.UTC()
	name := fmt.Sprintf("%s_%s_%s.pdf", filePrefix[doc.Kind], t.Format("02-01-2006"), t.Format("15-04-05"))
	return filepath.Join(w.dir, string(doc.Kind), name)
}

// Write renders the text in a monospaced font, line for line, and returns the file path.
func (w *PDFWriter) Write(doc Document) (string, error) {
	path := w.Path(doc)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return "", fmt.Errorf("failed to create directory: %w", err)
	}

	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetFont("Courier", "", 10)
	pdf.AddPage()
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	for _, line := range strings.Split(strings.TrimRight(doc.Text, "\n"), "\n") {
		pdf.CellFormat(0, 4.5, tr(line), "", 1, "L", false, 0, "")
	}

	if err := pdf.OutputFileAndClose(path); err != nil {
		return "", fmt.Errorf("failed to write pdf: %w", err)
	}
	log.Info().Str("path", path).Str("kind", string(doc.Kind)).Msg("document saved")
	return path, nil
}
