// Package liasse maps a computed fiscal year onto the CERFA forms of the
// liasse fiscale for the régime réel simplifié (2031 plus the 2033-A..G
// annexes) and renders them as XML, PDF and a bundled ZIP archive.
package liasse

import (
	"github.com/shopspring/decimal"

	"lmnp-ledger/internal/fiscal"
)

// PropertyInfo carries the identification fields the forms need. The liasse
// layer has no database access; callers populate this from their records.
type PropertyInfo struct {
	Name      string `json:"name"`
	Address   string `json:"address"`
	SIRET     string `json:"siret"`
	OwnerName string `json:"owner_name,omitempty"`
}

// Form2031 is the déclaration de résultats BIC (CERFA 2031-SD).
type Form2031 struct {
	Form string `json:"form"`
	Year int    `json:"year"`

	// Cadre A — identification
	RaisonSociale string `json:"raison_sociale"`
	Adresse       string `json:"adresse"`
	SIRET         string `json:"siret"`
	Regime        string `json:"regime"`

	// Cadre B — résultats
	TotalProduits           decimal.Decimal `json:"total_produits"`            // ligne FL
	TotalCharges            decimal.Decimal `json:"total_charges"`             // ligne GM
	DotationsAmortissements decimal.Decimal `json:"dotations_amortissements"`  // ligne HA
	ResultatComptable       decimal.Decimal `json:"resultat_comptable"`        // ligne HN, signé
	Benefice                decimal.Decimal `json:"benefice"`                  // ligne HN
	Deficit                 decimal.Decimal `json:"deficit"`                   // ligne HO

	// Cadre C — renseignements divers
	MembreCGA bool `json:"membre_cga"`
	OptionTVA bool `json:"option_tva"`
}

// Form2033A is the bilan simplifié.
type Form2033A struct {
	Form string `json:"form"`
	Year int    `json:"year"`

	ImmobilisationsBrutes decimal.Decimal `json:"immobilisations_brutes"` // ligne AA
	AmortissementsCumules decimal.Decimal `json:"amortissements_cumules"` // ligne AB
	ImmobilisationsNettes decimal.Decimal `json:"immobilisations_nettes"` // ligne AC
	Disponibilites        decimal.Decimal `json:"disponibilites"`         // ligne BH
	TotalActif            decimal.Decimal `json:"total_actif"`            // ligne BJ

	CapitauxPropres decimal.Decimal `json:"capitaux_propres"` // ligne DA
	TotalPassif     decimal.Decimal `json:"total_passif"`     // ligne EE
}

// Form2033B is the compte de résultat simplifié.
type Form2033B struct {
	Form string `json:"form"`
	Year int    `json:"year"`

	PrestationsServices        decimal.Decimal `json:"prestations_services"`         // ligne FA
	TotalProduitsExploitation  decimal.Decimal `json:"total_produits_exploitation"`  // ligne FY
	ChargesExternes            decimal.Decimal `json:"charges_externes"`             // ligne GA
	DotationsAmortissements    decimal.Decimal `json:"dotations_amortissements"`     // ligne GQ
	TotalChargesExploitation   decimal.Decimal `json:"total_charges_exploitation"`   // ligne GY
	ResultatExploitation       decimal.Decimal `json:"resultat_exploitation"`        // ligne HN
	ResultatNet                decimal.Decimal `json:"resultat_net"`
}

// AmortLine is one immobilisation row on form 2033-C.
type AmortLine struct {
	Designation      string          `json:"designation"`
	ValeurBruteDebut decimal.Decimal `json:"valeur_brute_debut"`
	Acquisitions     decimal.Decimal `json:"acquisitions"`
	Cessions         decimal.Decimal `json:"cessions"`
	ValeurBruteFin   decimal.Decimal `json:"valeur_brute_fin"`
	AmortDebut       decimal.Decimal `json:"amort_debut"`
	DotationExercice decimal.Decimal `json:"dotation_exercice"`
	AmortFin         decimal.Decimal `json:"amort_fin"`
}

// Form2033C lists immobilisations et amortissements.
type Form2033C struct {
	Form           string          `json:"form"`
	Year           int             `json:"year"`
	Lines          []AmortLine     `json:"lines"`
	TotalDotations decimal.Decimal `json:"total_dotations"`
}

// Form2033D covers provisions et amortissements dérogatoires. LMNP au réel
// simplifié carries none, so the form ships empty but present.
type Form2033D struct {
	Form                   string          `json:"form"`
	Year                   int             `json:"year"`
	Provisions             []AmortLine     `json:"provisions"`
	AmortDerogatoires      []AmortLine     `json:"amort_derogatoires"`
	TotalProvisions        decimal.Decimal `json:"total_provisions"`
	TotalRepriseProvisions decimal.Decimal `json:"total_reprise_provisions"`
}

// Form2033E is the détermination de la valeur ajoutée.
type Form2033E struct {
	Form                   string          `json:"form"`
	Year                   int             `json:"year"`
	Production             decimal.Decimal `json:"production"`
	ConsommationsExternes  decimal.Decimal `json:"consommations_externes"`
	ValeurAjoutee          decimal.Decimal `json:"valeur_ajoutee"`
}

// Associe is one capital holder row on form 2033-F.
type Associe struct {
	Nom       string          `json:"nom"`
	QuotePart decimal.Decimal `json:"quote_part"`
	Montant   decimal.Decimal `json:"montant"`
}

// Form2033F is the composition du capital. A sole LMNP owner holds 100%.
type Form2033F struct {
	Form     string    `json:"form"`
	Year     int       `json:"year"`
	Associes []Associe `json:"associes"`
}

// Form2033G lists filiales et participations, empty for LMNP.
type Form2033G struct {
	Form           string    `json:"form"`
	Year           int       `json:"year"`
	Participations []Associe `json:"participations"`
}

// Liasse is the complete set of forms for one fiscal year.
type Liasse struct {
	Form2031  Form2031  `json:"2031"`
	Form2033A Form2033A `json:"2033-A"`
	Form2033B Form2033B `json:"2033-B"`
	Form2033C Form2033C `json:"2033-C"`
	Form2033D Form2033D `json:"2033-D"`
	Form2033E Form2033E `json:"2033-E"`
	Form2033F Form2033F `json:"2033-F"`
	Form2033G Form2033G `json:"2033-G"`
}

// Build2031 maps the summary onto the déclaration de résultats.
func Build2031(summary fiscal.FiscalSummary, prop PropertyInfo) Form2031 {
	return Form2031{
		Form:                    "2031",
		Year:                    summary.Year,
		RaisonSociale:           prop.Name,
		Adresse:                 prop.Address,
		SIRET:                   prop.SIRET,
		Regime:                  "Réel simplifié",
		TotalProduits:           summary.TotalRevenue,
		TotalCharges:            summary.TotalExpenses,
		DotationsAmortissements: summary.TotalDepreciationDeductible,
		ResultatComptable:       summary.FiscalResult,
		Benefice:                decimal.Max(decimal.Zero, summary.FiscalResult),
		Deficit:                 decimal.Max(decimal.Zero, summary.FiscalResult.Neg()),
	}
}

// Build2033A maps the simplified balance sheet.
func Build2033A(summary fiscal.FiscalSummary) Form2033A {
	return Form2033A{
		Form:                  "2033-A",
		Year:                  summary.Year,
		ImmobilisationsBrutes: summary.AssetGross,
		AmortissementsCumules: summary.AssetDepreciationCumul,
		ImmobilisationsNettes: summary.AssetNet,
		Disponibilites:        summary.Cash,
		TotalActif:            summary.TotalAssets,
		CapitauxPropres:       summary.Equity,
		TotalPassif:           summary.TotalLiabilitiesEquity,
	}
}

// Build2033B maps the simplified income statement.
func Build2033B(summary fiscal.FiscalSummary) Form2033B {
	return Form2033B{
		Form:                      "2033-B",
		Year:                      summary.Year,
		PrestationsServices:       summary.TotalRevenue,
		TotalProduitsExploitation: summary.TotalRevenue,
		ChargesExternes:           summary.TotalExpenses,
		DotationsAmortissements:   summary.TotalDepreciationDeductible,
		TotalChargesExploitation:  summary.TotalExpenses.Add(summary.TotalDepreciationDeductible),
		ResultatExploitation:      summary.FiscalResult,
		ResultatNet:               summary.FiscalResult,
	}
}

// Build2033C maps the per-component depreciation table. Gross values are
// taken per component; opening cumulative depreciation is not tracked at
// component granularity, so amort_debut stays zero and amort_fin equals the
// year's dotation.
func Build2033C(summary fiscal.FiscalSummary, components []fiscal.DepreciableComponent, details []fiscal.AllocationDetail) Form2033C {
	lines := make([]AmortLine, 0, len(details))
	for i, d := range details {
		var gross decimal.Decimal
		if i < len(components) {
			gross = components[i].Value
		}
		lines = append(lines, AmortLine{
			Designation:      d.ComponentLabel,
			ValeurBruteDebut: gross,
			Acquisitions:     decimal.Zero,
			Cessions:         decimal.Zero,
			ValeurBruteFin:   gross,
			AmortDebut:       decimal.Zero,
			DotationExercice: d.DeductibleAmount,
			AmortFin:         d.DeductibleAmount,
		})
	}
	return Form2033C{
		Form:           "2033-C",
		Year:           summary.Year,
		Lines:          lines,
		TotalDotations: summary.TotalDepreciationDeductible,
	}
}

// Build2033D returns the (empty) provisions form.
func Build2033D(summary fiscal.FiscalSummary) Form2033D {
	return Form2033D{
		Form:                   "2033-D",
		Year:                   summary.Year,
		Provisions:             []AmortLine{},
		AmortDerogatoires:      []AmortLine{},
		TotalProvisions:        decimal.Zero,
		TotalRepriseProvisions: decimal.Zero,
	}
}

// Build2033E maps the valeur ajoutée computation.
func Build2033E(summary fiscal.FiscalSummary) Form2033E {
	return Form2033E{
		Form:                  "2033-E",
		Year:                  summary.Year,
		Production:            summary.TotalRevenue,
		ConsommationsExternes: summary.TotalExpenses,
		ValeurAjoutee:         summary.TotalRevenue.Sub(summary.TotalExpenses),
	}
}

// Build2033F maps the capital composition with the owner as sole associé.
func Build2033F(summary fiscal.FiscalSummary, prop PropertyInfo) Form2033F {
	owner := prop.OwnerName
	if owner == "" {
		owner = "Propriétaire"
	}
	return Form2033F{
		Form: "2033-F",
		Year: summary.Year,
		Associes: []Associe{
			{Nom: owner, QuotePart: decimal.NewFromInt(100), Montant: summary.Equity},
		},
	}
}

// Build2033G returns the (empty) participations form.
func Build2033G(summary fiscal.FiscalSummary) Form2033G {
	return Form2033G{
		Form:           "2033-G",
		Year:           summary.Year,
		Participations: []Associe{},
	}
}

// Build assembles the full liasse for one fiscal year.
func Build(summary fiscal.FiscalSummary, prop PropertyInfo, components []fiscal.DepreciableComponent, details []fiscal.AllocationDetail) Liasse {
	return Liasse{
		Form2031:  Build2031(summary, prop),
		Form2033A: Build2033A(summary),
		Form2033B: Build2033B(summary),
		Form2033C: Build2033C(summary, components, details),
		Form2033D: Build2033D(summary),
		Form2033E: Build2033E(summary),
		Form2033F: Build2033F(summary, prop),
		Form2033G: Build2033G(summary),
	}
}

// FormIDs lists the forms of the liasse in declaration order.
var FormIDs = []string{"2031", "2033-A", "2033-B", "2033-C", "2033-D", "2033-E", "2033-F", "2033-G"}
