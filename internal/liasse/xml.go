package liasse

import (
	"bytes"
	"encoding/xml"
	"fmt"

	"github.com/shopspring/decimal"
)

// The XML schema follows the EDI-TDFC zone layout: each declared value is a
// Zone element carrying its CERFA zone code, grouped under a Formulaire per
// form. Forms without declarable zones ship as a stub with note="voir_annexe".

type xmlZone struct {
	XMLName xml.Name `xml:"Zone"`
	Code    string   `xml:"code,attr"`
	Libelle string   `xml:"libelle,attr,omitempty"`
	Value   string   `xml:",chardata"`
}

type xmlLigne struct {
	XMLName xml.Name  `xml:"Ligne"`
	Num     int       `xml:"num,attr"`
	Zones   []xmlZone `xml:"Zone"`
}

type xmlFormulaire struct {
	XMLName xml.Name   `xml:"Formulaire"`
	ID      string     `xml:"id,attr"`
	Note    string     `xml:"note,attr,omitempty"`
	Zones   []xmlZone  `xml:"Zone,omitempty"`
	Lignes  []xmlLigne `xml:"Ligne,omitempty"`
}

type xmlIdentification struct {
	XMLName xml.Name  `xml:"Identification"`
	Zones   []xmlZone `xml:"Zone"`
}

type xmlLiasse struct {
	XMLName     xml.Name          `xml:"LiasseFiscale"`
	Xmlns       string            `xml:"xmlns,attr"`
	Exercice    int               `xml:"exercice,attr"`
	Regime      string            `xml:"regime,attr"`
	Generator   string            `xml:"generator,attr"`
	Ident       xmlIdentification `xml:"Identification"`
	Formulaires []xmlFormulaire   `xml:"Formulaire"`
}

func zone(code, libelle string, value decimal.Decimal) xmlZone {
	return xmlZone{Code: code, Libelle: libelle, Value: value.StringFixed(2)}
}

func zoneText(code, libelle, value string) xmlZone {
	return xmlZone{Code: code, Libelle: libelle, Value: value}
}

// EncodeXML renders the liasse as EDI-TDFC-like XML suitable for archival or
// transmission to a télédéclaration partner.
func EncodeXML(l Liasse, prop PropertyInfo) ([]byte, error) {
	doc := xmlLiasse{
		Xmlns:     "urn:lmnp:liasse:1.0",
		Exercice:  l.Form2031.Year,
		Regime:    "reel_simplifie",
		Generator: "lmnp-ledger",
		Ident: xmlIdentification{Zones: []xmlZone{
			zoneText("RAIS", "Désignation", prop.Name),
			zoneText("ADRE", "Adresse", prop.Address),
			zoneText("SRET", "SIRET", prop.SIRET),
		}},
	}

	doc.Formulaires = append(doc.Formulaires, xmlFormulaire{
		ID: "2031",
		Zones: []xmlZone{
			zone("FL", "Total produits", l.Form2031.TotalProduits),
			zone("GM", "Total charges", l.Form2031.TotalCharges),
			zone("HA", "Dotations amortissements", l.Form2031.DotationsAmortissements),
			zone("HN", "Bénéfice", l.Form2031.Benefice),
			zone("HO", "Déficit", l.Form2031.Deficit),
		},
	})

	doc.Formulaires = append(doc.Formulaires, xmlFormulaire{
		ID: "2033-A",
		Zones: []xmlZone{
			zone("AA", "Immobilisations brutes", l.Form2033A.ImmobilisationsBrutes),
			zone("AB", "Amortissements cumulés", l.Form2033A.AmortissementsCumules),
			zone("AC", "Immobilisations nettes", l.Form2033A.ImmobilisationsNettes),
			zone("BH", "Disponibilités", l.Form2033A.Disponibilites),
			zone("BJ", "Total actif", l.Form2033A.TotalActif),
			zone("DA", "Capitaux propres", l.Form2033A.CapitauxPropres),
			zone("EE", "Total passif", l.Form2033A.TotalPassif),
		},
	})

	doc.Formulaires = append(doc.Formulaires, xmlFormulaire{
		ID: "2033-B",
		Zones: []xmlZone{
			zone("FA", "Prestations de services", l.Form2033B.PrestationsServices),
			zone("FY", "Total produits", l.Form2033B.TotalProduitsExploitation),
			zone("GA", "Charges externes", l.Form2033B.ChargesExternes),
			zone("GQ", "Dotations amortissements", l.Form2033B.DotationsAmortissements),
			zone("GY", "Total charges", l.Form2033B.TotalChargesExploitation),
			zone("HN", "Résultat net", l.Form2033B.ResultatNet),
		},
	})

	fc := xmlFormulaire{ID: "2033-C"}
	for i, line := range l.Form2033C.Lines {
		fc.Lignes = append(fc.Lignes, xmlLigne{
			Num: i + 1,
			Zones: []xmlZone{
				zoneText("DESIG", "Désignation", line.Designation),
				zone("VBF", "Valeur brute fin", line.ValeurBruteFin),
				zone("DOT", "Dotation exercice", line.DotationExercice),
				zone("ACF", "Amort. cumulé fin", line.AmortFin),
			},
		})
	}
	doc.Formulaires = append(doc.Formulaires, fc)

	for _, id := range []string{"2033-D", "2033-E", "2033-F", "2033-G"} {
		doc.Formulaires = append(doc.Formulaires, xmlFormulaire{ID: id, Note: "voir_annexe"})
	}

	var buf bytes.Buffer
	buf.WriteString(xml.Header)
	enc := xml.NewEncoder(&buf)
	enc.Indent("", "  ")
	if err := enc.Encode(doc); err != nil {
		return nil, fmt.Errorf("encoding liasse XML for %d: %w", l.Form2031.Year, err)
	}
	buf.WriteByte('\n')
	return buf.Bytes(), nil
}
