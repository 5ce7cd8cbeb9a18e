package liasse

import (
	"archive/zip"
	"bytes"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// RenderBundle produces a ZIP archive holding one PDF per form, the liasse
// XML and the fiche récapitulative, using the LMNP_<year>_<name> convention.
func RenderBundle(l Liasse, prop PropertyInfo, acquisitionDate time.Time, totalPrice decimal.Decimal) ([]byte, error) {
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	year := l.Form2031.Year

	add := func(name string, data []byte) error {
		w, err := zw.Create(name)
		if err != nil {
			return fmt.Errorf("creating zip entry %s: %w", name, err)
		}
		if _, err := w.Write(data); err != nil {
			return fmt.Errorf("writing %s: %w", name, err)
		}
		return nil
	}

	for _, id := range FormIDs {
		pdfData, err := RenderFormPDF(l, id)
		if err != nil {
			return nil, fmt.Errorf("rendering %s: %w", id, err)
		}
		if err := add(fmt.Sprintf("LMNP_%d_%s.pdf", year, id), pdfData); err != nil {
			return nil, err
		}
	}

	xmlData, err := EncodeXML(l, prop)
	if err != nil {
		return nil, err
	}
	if err := add(fmt.Sprintf("LMNP_%d_liasse.xml", year), xmlData); err != nil {
		return nil, err
	}

	fiche, err := RenderSummarySheetPDF(prop, l, acquisitionDate, totalPrice)
	if err != nil {
		return nil, fmt.Errorf("rendering fiche récapitulative: %w", err)
	}
	if err := add(fmt.Sprintf("LMNP_%d_fiche_recapitulative.pdf", year), fiche); err != nil {
		return nil, err
	}

	if err := zw.Close(); err != nil {
		return nil, fmt.Errorf("finalizing zip: %w", err)
	}
	return buf.Bytes(), nil
}
