package liasse

import (
	"bytes"
	"fmt"
	"time"

	"github.com/go-pdf/fpdf"
	"github.com/shopspring/decimal"
)

// PDF layout constants. The header blue matches the impots.gouv.fr palette.
const (
	headerR, headerG, headerB = 0x00, 0x31, 0x89
	lightR, lightG, lightB    = 0xF5, 0xF5, 0xF5
	pageWidth                 = 170.0 // A4 width minus 20mm margins
)

type pdfDoc struct {
	*fpdf.Fpdf
	tr func(string) string
}

func newDoc() *pdfDoc {
	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(20, 20, 20)
	pdf.SetAutoPageBreak(true, 20)
	doc := &pdfDoc{Fpdf: pdf, tr: pdf.UnicodeTranslatorFromDescriptor("")}
	doc.AddPage()
	return doc
}

func (d *pdfDoc) header(title string, year int) {
	d.SetFillColor(headerR, headerG, headerB)
	d.SetTextColor(255, 255, 255)
	d.SetFont("Helvetica", "B", 13)
	d.CellFormat(pageWidth, 10, d.tr("FORMULAIRE "+title), "", 1, "L", true, 0, "")
	d.SetFont("Helvetica", "", 8)
	d.CellFormat(pageWidth, 6, d.tr(fmt.Sprintf("Exercice %d / Régime réel simplifié BIC - LMNP", year)), "", 1, "L", true, 0, "")
	d.SetTextColor(0x33, 0x33, 0x33)
	d.Ln(4)
}

func (d *pdfDoc) section(title string) {
	d.SetFont("Helvetica", "B", 10)
	d.SetTextColor(headerR, headerG, headerB)
	d.CellFormat(pageWidth, 7, d.tr(title), "", 1, "L", false, 0, "")
	d.SetTextColor(0x33, 0x33, 0x33)
}

func (d *pdfDoc) kvRows(rows [][2]string) {
	d.SetFont("Helvetica", "", 8)
	for i, row := range rows {
		fill := i%2 == 1
		if fill {
			d.SetFillColor(lightR, lightG, lightB)
		}
		d.CellFormat(pageWidth*0.55, 6, d.tr(row[0]), "1", 0, "L", fill, 0, "")
		d.CellFormat(pageWidth*0.45, 6, d.tr(row[1]), "1", 1, "R", fill, 0, "")
	}
	d.Ln(3)
}

func (d *pdfDoc) disclaimer() {
	d.Ln(3)
	d.SetFont("Helvetica", "I", 7)
	d.SetTextColor(128, 128, 128)
	msg := fmt.Sprintf("Document généré le %s. À titre indicatif, non substitut d'un conseil fiscal professionnel.",
		time.Now().Format("02/01/2006"))
	d.MultiCell(pageWidth, 4, d.tr(msg), "", "L", false)
}

func (d *pdfDoc) bytes() ([]byte, error) {
	var buf bytes.Buffer
	if err := d.Output(&buf); err != nil {
		return nil, fmt.Errorf("rendering PDF: %w", err)
	}
	return buf.Bytes(), nil
}

func euro(v decimal.Decimal) string {
	return v.StringFixed(2) + " €"
}

// Render2031PDF renders the déclaration de résultats.
func Render2031PDF(f Form2031) ([]byte, error) {
	d := newDoc()
	d.header("2031 - Déclaration de résultats BIC", f.Year)

	siret := f.SIRET
	if siret == "" {
		siret = "Non renseigné"
	}
	d.section("CADRE A - IDENTIFICATION")
	d.kvRows([][2]string{
		{"Désignation", f.RaisonSociale},
		{"Adresse", f.Adresse},
		{"SIRET", siret},
		{"Régime", f.Regime},
	})

	d.section("CADRE B - RÉSULTATS")
	d.kvRows([][2]string{
		{"Total produits (FL)", euro(f.TotalProduits)},
		{"Total charges (GM)", euro(f.TotalCharges)},
		{"Dotations aux amortissements (HA)", euro(f.DotationsAmortissements)},
		{"Résultat comptable (HN)", euro(f.ResultatComptable)},
		{"Bénéfice", euro(f.Benefice)},
		{"Déficit reportable", euro(f.Deficit)},
	})

	d.section("CADRE C - RENSEIGNEMENTS DIVERS")
	d.kvRows([][2]string{
		{"Membre d'un CGA", ouiNon(f.MembreCGA)},
		{"Option TVA", ouiNon(f.OptionTVA)},
	})

	d.disclaimer()
	return d.bytes()
}

// Render2033APDF renders the bilan simplifié.
func Render2033APDF(f Form2033A) ([]byte, error) {
	d := newDoc()
	d.header("2033-A - Bilan simplifié", f.Year)

	d.section("ACTIF")
	d.kvRows([][2]string{
		{"Immobilisations brutes (AA)", euro(f.ImmobilisationsBrutes)},
		{"Amortissements cumulés (AB)", euro(f.AmortissementsCumules)},
		{"Immobilisations nettes (AC)", euro(f.ImmobilisationsNettes)},
		{"Disponibilités (BH)", euro(f.Disponibilites)},
		{"TOTAL ACTIF (BJ)", euro(f.TotalActif)},
	})

	d.section("PASSIF")
	d.kvRows([][2]string{
		{"Capitaux propres (DA)", euro(f.CapitauxPropres)},
		{"TOTAL PASSIF (EE)", euro(f.TotalPassif)},
	})

	d.disclaimer()
	return d.bytes()
}

// Render2033BPDF renders the compte de résultat simplifié.
func Render2033BPDF(f Form2033B) ([]byte, error) {
	d := newDoc()
	d.header("2033-B - Compte de résultat simplifié", f.Year)

	d.section("PRODUITS D'EXPLOITATION")
	d.kvRows([][2]string{
		{"Prestations de services (FA)", euro(f.PrestationsServices)},
		{"Total produits (FY)", euro(f.TotalProduitsExploitation)},
	})

	d.section("CHARGES D'EXPLOITATION")
	d.kvRows([][2]string{
		{"Charges externes (GA)", euro(f.ChargesExternes)},
		{"Dotations amortissements (GQ)", euro(f.DotationsAmortissements)},
		{"Total charges (GY)", euro(f.TotalChargesExploitation)},
	})

	d.section("RÉSULTAT")
	d.kvRows([][2]string{
		{"Résultat d'exploitation (HN)", euro(f.ResultatExploitation)},
		{"Résultat net (HN)", euro(f.ResultatNet)},
	})

	d.disclaimer()
	return d.bytes()
}

// Render2033CPDF renders the depreciation table.
func Render2033CPDF(f Form2033C) ([]byte, error) {
	d := newDoc()
	d.header("2033-C - Immobilisations et amortissements", f.Year)

	widths := []float64{pageWidth * 0.40, pageWidth * 0.20, pageWidth * 0.20, pageWidth * 0.20}
	headers := []string{"Désignation", "Val. brute N", "Dotation N", "Amort. cumulé N"}

	d.SetFillColor(headerR, headerG, headerB)
	d.SetTextColor(255, 255, 255)
	d.SetFont("Helvetica", "B", 8)
	for i, h := range headers {
		d.CellFormat(widths[i], 7, d.tr(h), "1", 0, "L", true, 0, "")
	}
	d.Ln(-1)

	d.SetTextColor(0x33, 0x33, 0x33)
	d.SetFont("Helvetica", "", 8)
	for i, line := range f.Lines {
		fill := i%2 == 1
		if fill {
			d.SetFillColor(lightR, lightG, lightB)
		}
		d.CellFormat(widths[0], 6, d.tr(line.Designation), "1", 0, "L", fill, 0, "")
		d.CellFormat(widths[1], 6, d.tr(euro(line.ValeurBruteFin)), "1", 0, "R", fill, 0, "")
		d.CellFormat(widths[2], 6, d.tr(euro(line.DotationExercice)), "1", 0, "R", fill, 0, "")
		d.CellFormat(widths[3], 6, d.tr(euro(line.AmortFin)), "1", 1, "R", fill, 0, "")
	}

	d.SetFillColor(0xE8, 0xE8, 0xE8)
	d.SetFont("Helvetica", "B", 8)
	d.CellFormat(widths[0], 6, "TOTAL", "1", 0, "L", true, 0, "")
	d.CellFormat(widths[1], 6, "", "1", 0, "R", true, 0, "")
	d.CellFormat(widths[2], 6, d.tr(euro(f.TotalDotations)), "1", 0, "R", true, 0, "")
	d.CellFormat(widths[3], 6, "", "1", 1, "R", true, 0, "")

	d.disclaimer()
	return d.bytes()
}

var annexeTitles = map[string]string{
	"2033-D": "2033-D - Provisions et amortissements dérogatoires",
	"2033-E": "2033-E - Détermination de la valeur ajoutée",
	"2033-F": "2033-F - Composition du capital",
	"2033-G": "2033-G - Filiales et participations",
}

// RenderAnnexePDF renders the 2033-D through 2033-G annexes.
func RenderAnnexePDF(l Liasse, formID string) ([]byte, error) {
	title, ok := annexeTitles[formID]
	if !ok {
		return nil, fmt.Errorf("unknown annexe form %q", formID)
	}
	d := newDoc()
	d.header(title, l.Form2031.Year)

	switch formID {
	case "2033-D":
		d.kvRows([][2]string{
			{"Provisions", fmt.Sprintf("%d ligne(s)", len(l.Form2033D.Provisions))},
			{"Amortissements dérogatoires", fmt.Sprintf("%d ligne(s)", len(l.Form2033D.AmortDerogatoires))},
			{"Total provisions", euro(l.Form2033D.TotalProvisions)},
			{"Total reprises", euro(l.Form2033D.TotalRepriseProvisions)},
		})
	case "2033-E":
		d.kvRows([][2]string{
			{"Production", euro(l.Form2033E.Production)},
			{"Consommations externes", euro(l.Form2033E.ConsommationsExternes)},
			{"Valeur ajoutée", euro(l.Form2033E.ValeurAjoutee)},
		})
	case "2033-F":
		for _, a := range l.Form2033F.Associes {
			d.kvRows([][2]string{
				{"Associé", a.Nom},
				{"Quote-part", a.QuotePart.StringFixed(2) + " %"},
				{"Montant", euro(a.Montant)},
			})
		}
	case "2033-G":
		if len(l.Form2033G.Participations) == 0 {
			d.SetFont("Helvetica", "", 8)
			d.CellFormat(pageWidth, 6, d.tr("Aucune donnée à déclarer."), "", 1, "L", false, 0, "")
		}
	}

	d.disclaimer()
	return d.bytes()
}

// RenderFormPDF dispatches on the form identifier.
func RenderFormPDF(l Liasse, formID string) ([]byte, error) {
	switch formID {
	case "2031":
		return Render2031PDF(l.Form2031)
	case "2033-A":
		return Render2033APDF(l.Form2033A)
	case "2033-B":
		return Render2033BPDF(l.Form2033B)
	case "2033-C":
		return Render2033CPDF(l.Form2033C)
	case "2033-D", "2033-E", "2033-F", "2033-G":
		return RenderAnnexePDF(l, formID)
	default:
		return nil, fmt.Errorf("unknown form %q", formID)
	}
}

// RenderSummarySheetPDF renders the one-page archival fiche récapitulative.
func RenderSummarySheetPDF(prop PropertyInfo, l Liasse, acquisitionDate time.Time, totalPrice decimal.Decimal) ([]byte, error) {
	d := newDoc()
	d.header(fmt.Sprintf("Fiche récapitulative LMNP %d", l.Form2031.Year), l.Form2031.Year)

	d.section("BIEN IMMOBILIER")
	d.kvRows([][2]string{
		{"Nom", prop.Name},
		{"Adresse", prop.Address},
		{"Date d'acquisition", acquisitionDate.Format("02/01/2006")},
		{"Prix total", euro(totalPrice)},
	})

	d.section("RÉSULTATS FISCAUX")
	d.kvRows([][2]string{
		{"Total revenus", euro(l.Form2031.TotalProduits)},
		{"Total charges", euro(l.Form2031.TotalCharges)},
		{"Amortissements déduits", euro(l.Form2031.DotationsAmortissements)},
		{"Résultat fiscal", euro(l.Form2031.ResultatComptable)},
	})

	d.disclaimer()
	return d.bytes()
}

func ouiNon(b bool) string {
	if b {
		return "Oui"
	}
	return "Non"
}
