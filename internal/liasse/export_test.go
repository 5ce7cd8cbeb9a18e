package liasse

import (
	"archive/zip"
	"bytes"
	"strings"
	"testing"
	"time"
)

func TestEncodeXMLZones(t *testing.T) {
	components, details := sampleDetails()
	l := Build(sampleSummary(), sampleProperty(), components, details)

	out, err := EncodeXML(l, sampleProperty())
	if err != nil {
		t.Fatalf("EncodeXML: %v", err)
	}
	s := string(out)

	for _, want := range []string{
		`<LiasseFiscale xmlns="urn:lmnp:liasse:1.0" exercice="2025" regime="reel_simplifie"`,
		`<Zone code="SRET" libelle="SIRET">12345678900012</Zone>`,
		`<Zone code="FL" libelle="Total produits">9000.00</Zone>`,
		`<Zone code="HA" libelle="Dotations amortissements">4550.00</Zone>`,
		`<Formulaire id="2033-A">`,
		`<Zone code="BJ" libelle="Total actif">225000.00</Zone>`,
		`<Ligne num="1">`,
		`<Zone code="DOT" libelle="Dotation exercice">2520.00</Zone>`,
		`<Formulaire id="2033-G" note="voir_annexe">`,
	} {
		if !strings.Contains(s, want) {
			t.Errorf("XML missing %q\n%s", want, s)
		}
	}
	if !strings.HasPrefix(s, `<?xml version="1.0" encoding="UTF-8"?>`) {
		t.Error("missing XML declaration")
	}
}

func TestRenderFormPDF(t *testing.T) {
	components, details := sampleDetails()
	l := Build(sampleSummary(), sampleProperty(), components, details)

	for _, id := range FormIDs {
		out, err := RenderFormPDF(l, id)
		if err != nil {
			t.Fatalf("RenderFormPDF(%s): %v", id, err)
		}
		if !bytes.HasPrefix(out, []byte("%PDF")) {
			t.Errorf("form %s: output is not a PDF", id)
		}
	}

	if _, err := RenderFormPDF(l, "2042"); err == nil {
		t.Error("unknown form should error")
	}
}

func TestRenderBundle(t *testing.T) {
	components, details := sampleDetails()
	l := Build(sampleSummary(), sampleProperty(), components, details)

	out, err := RenderBundle(l, sampleProperty(),
		time.Date(2022, 6, 15, 0, 0, 0, 0, time.UTC), dec("225000"))
	if err != nil {
		t.Fatalf("RenderBundle: %v", err)
	}
	zr, err := zip.NewReader(bytes.NewReader(out), int64(len(out)))
	if err != nil {
		t.Fatalf("reading bundle: %v", err)
	}

	names := make(map[string]bool)
	for _, f := range zr.File {
		names[f.Name] = true
	}
	// 8 form PDFs + liasse.xml + fiche récapitulative
	if len(zr.File) != len(FormIDs)+2 {
		t.Errorf("bundle has %d entries, want %d", len(zr.File), len(FormIDs)+2)
	}
	for _, want := range []string{
		"LMNP_2025_liasse.xml",
		"LMNP_2025_2031.pdf",
		"LMNP_2025_2033-G.pdf",
		"LMNP_2025_fiche_recapitulative.pdf",
	} {
		if !names[want] {
			t.Errorf("bundle missing %s", want)
		}
	}
}
