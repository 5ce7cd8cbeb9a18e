package fiscal

import "github.com/shopspring/decimal"

// RegimeConstants are the year-versioned micro-BIC parameters for one regime
// kind. Abatement is the flat-rate fraction (0.50 = 50 %). The lookup itself
// lives in the constants package; the comparator stays pure.
type RegimeConstants struct {
	Threshold decimal.Decimal
	Abatement decimal.Decimal
}

// CompareRegimes computes the taxable base under the micro-BIC flat-rate
// regime and under the régime réel, and recommends one.
// Reference: CGI art. 50-0 (micro-BIC), art. 39 C (réel).
//
// Revenue above the micro-BIC threshold forces the réel regime regardless of
// the comparison. A tie in taxable bases resolves to micro-BIC.
func CompareRegimes(year int, totalRevenue, reelFiscalResult decimal.Decimal, kind RegimeKind, rc RegimeConstants) ComparisonResult {
	aboveThreshold := totalRevenue.GreaterThan(rc.Threshold)

	microBICTaxable := decimal.Max(
		decimal.Zero,
		totalRevenue.Mul(decimal.NewFromInt(1).Sub(rc.Abatement)),
	)

	// Negative réel result: taxable base is 0, the déficit carries forward.
	reelTaxable := decimal.Max(decimal.Zero, reelFiscalResult)
	reelDeficit := decimal.Max(decimal.Zero, reelFiscalResult.Neg())

	// Positive saving = micro-BIC base is higher, so réel wins.
	saving := microBICTaxable.Sub(reelTaxable)

	recommended := RecommendMicroBIC
	if aboveThreshold || saving.IsPositive() {
		recommended = RecommendReel
	}

	return ComparisonResult{
		Year:                 year,
		TotalRevenue:         totalRevenue,
		RegimeKind:           kind,
		MicroBICThreshold:    rc.Threshold,
		MicroBICAbatementPct: rc.Abatement.Mul(hundred),
		MicroBICTaxableBase:  microBICTaxable,
		ReelTaxableBase:      reelTaxable,
		ReelDeficit:          reelDeficit,
		MicroBICSaving:       saving,
		RecommendedRegime:    recommended,
		AboveThreshold:       aboveThreshold,
	}
}
