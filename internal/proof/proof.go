// Package proof renders a PDF contact sheet of freshly generated assets so a
// reviewer can eyeball a run's output in one file.
package proof

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/jung-kurt/gofpdf"
)

// Asset pairs a generated file with the URL it will be published under.
type Asset struct {
	Path string
	URL  string
}

// WriteSheet renders a contact sheet at path: a title line followed by each
// asset's filename, published URL, and the image itself, scaled to a fixed
// width with its aspect ratio kept.
func WriteSheet(path, title string, assets []Asset) error {
	if len(assets) == 0 {
		return errors.New("no assets to render")
	}
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetTitle(title, true)
	pdf.AddPage()
	pdf.SetFont("Helvetica", "B", 16)
	pdf.Cell(0, 10, title)
	pdf.Ln(14)

	for i, a := range assets {
		data, err := os.ReadFile(a.Path)
		if err != nil {
			return fmt.Errorf("read asset %s: %w", a.Path, err)
		}
		name := fmt.Sprintf("asset-%d", i)
		opts := gofpdf.ImageOptions{ImageType: "PNG"}
		pdf.RegisterImageOptionsReader(name, opts, bytes.NewReader(data))
		pdf.SetFont("Helvetica", "B", 11)
		pdf.Cell(0, 6, filepath.Base(a.Path))
		pdf.Ln(7)
		if a.URL != "" {
			pdf.SetFont("Helvetica", "", 9)
			pdf.Cell(0, 5, a.URL)
			pdf.Ln(6)
		}
		pdf.ImageOptions(name, 10, pdf.GetY(), 60, 0, true, opts, 0, "")
		pdf.Ln(8)
	}
	if err := pdf.Error(); err != nil {
		return fmt.Errorf("render proof sheet: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("mkdir %s: %w", filepath.Dir(path), err)
	}
	if err := pdf.OutputFileAndClose(path); err != nil {
		return fmt.Errorf("write proof sheet: %w", err)
	}
	return nil
}
