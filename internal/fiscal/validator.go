package fiscal

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

var (
	balanceTolerance = decimal.NewFromInt(1)
	expenseRatioMax  = decimal.NewFromInt(3)
)

// ValidateSummary runs every diagnostic rule over the summary and its raw
// inputs and returns all applicable issues. Rules are independent: none
// short-circuits another, and evaluation order does not affect the result
// set. Issues are first-class output, not an error channel — a summary with
// errors still validates successfully.
func ValidateSummary(
	summary FiscalSummary,
	revenues []RevenueRecord,
	expenses []ExpenseRecord,
	details []AllocationDetail,
	hasComponents bool,
) ValidationResult {
	var result ValidationResult

	// Balance sheet check (±1 € tolerance).
	balanceDiff := summary.TotalAssets.Sub(summary.TotalLiabilitiesEquity).Abs()
	if balanceDiff.GreaterThan(balanceTolerance) {
		result.Issues = append(result.Issues, ValidationIssue{
			Level:   LevelError,
			Code:    "BALANCE_UNBALANCED",
			Message: fmt.Sprintf("Bilan déséquilibré : écart de %s €.", balanceDiff.StringFixed(2)),
			Field:   "bilan",
		})
	}

	// Negative revenues.
	for _, rev := range revenues {
		if rev.Amount.IsNegative() {
			result.Issues = append(result.Issues, ValidationIssue{
				Level:   LevelError,
				Code:    "NEGATIVE_REVENUE",
				Message: fmt.Sprintf("Revenu négatif détecté : %s € (mois %d).", rev.Amount.StringFixed(2), rev.Month),
				Field:   "revenues",
			})
		}
	}

	// Expenses above 300 % of revenue.
	if summary.TotalRevenue.IsPositive() {
		ratio := summary.TotalExpenses.Div(summary.TotalRevenue)
		if ratio.GreaterThan(expenseRatioMax) {
			result.Issues = append(result.Issues, ValidationIssue{
				Level: LevelWarning,
				Code:  "EXPENSES_HIGH_RATIO",
				Message: fmt.Sprintf(
					"Les charges (%s €) représentent %s %% des revenus. Vérifiez qu'aucune charge n'est doublement saisie.",
					summary.TotalExpenses.StringFixed(2), ratio.Mul(hundred).Round(0),
				),
				Field: "expenses",
			})
		}
	}

	// Months without any revenue record.
	seen := make(map[int]bool, 12)
	for _, rev := range revenues {
		seen[rev.Month] = true
	}
	var missing []string
	for m := 1; m <= 12; m++ {
		if !seen[m] {
			missing = append(missing, strconv.Itoa(m))
		}
	}
	if len(missing) > 0 {
		result.Issues = append(result.Issues, ValidationIssue{
			Level: LevelWarning,
			Code:  "INCOMPLETE_YEAR",
			Message: fmt.Sprintf(
				"Mois sans revenu saisi : %s. Si le bien était vacant, saisissez 0 €.",
				strings.Join(missing, ", "),
			),
			Field: "revenues",
		})
	}

	// No depreciation plan at all.
	if len(details) == 0 {
		result.Issues = append(result.Issues, ValidationIssue{
			Level:   LevelWarning,
			Code:    "NO_DEPRECIATION",
			Message: "Aucun plan d'amortissement trouvé. Avez-vous saisi la décomposition du bien ?",
			Field:   "depreciation",
			CGIRef:  "art. 39 CGI",
		})
	}

	// Suggest decomposing the property into components.
	if !hasComponents {
		result.Issues = append(result.Issues, ValidationIssue{
			Level: LevelInfo,
			Code:  "SUGGEST_COMPONENTS",
			Message: "Optimisation : décomposez votre bien en composants (structure, toiture, " +
				"façade, équipements, mobilier) pour maximiser vos amortissements annuels.",
			CGIRef: "art. 39 A CGI",
		})
	}

	// Suggest the acquisition-costs component.
	hasAcqCosts := false
	for _, d := range details {
		if d.Component == "acquisition_costs" {
			hasAcqCosts = true
			break
		}
	}
	if !hasAcqCosts {
		result.Issues = append(result.Issues, ValidationIssue{
			Level: LevelInfo,
			Code:  "SUGGEST_ACQUISITION_COSTS",
			Message: "Les frais d'acquisition (notaire, agence) sont amortissables sur 5 ans. " +
				"Avez-vous bien saisi ce composant ?",
			CGIRef: "art. 39 quinquies CGI",
		})
	}

	return result
}
