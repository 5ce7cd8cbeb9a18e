package fiscal_test

import (
	"testing"

	"lmnp-ledger/internal/fiscal"

	"github.com/shopspring/decimal"
)

func standard2025() fiscal.RegimeConstants {
	return fiscal.RegimeConstants{Threshold: dec("77700"), Abatement: dec("0.50")}
}

func TestCompareRegimes_ReelBetterWhenResultLower(t *testing.T) {
	res := fiscal.CompareRegimes(2025, dec("10600"), decimal.Zero, fiscal.RegimeStandard, standard2025())
	if res.RecommendedRegime != fiscal.RecommendReel {
		t.Errorf("RecommendedRegime = %s, want reel", res.RecommendedRegime)
	}
	if !res.ReelTaxableBase.IsZero() {
		t.Errorf("ReelTaxableBase = %s, want 0", res.ReelTaxableBase)
	}
	if !res.MicroBICTaxableBase.Equal(dec("5300.00")) {
		t.Errorf("MicroBICTaxableBase = %s, want 5300.00", res.MicroBICTaxableBase)
	}
}

func TestCompareRegimes_MicroBICBetterWhenFewExpenses(t *testing.T) {
	res := fiscal.CompareRegimes(2025, dec("10000"), dec("6000"), fiscal.RegimeStandard, standard2025())
	if res.RecommendedRegime != fiscal.RecommendMicroBIC {
		t.Errorf("RecommendedRegime = %s, want micro_bic", res.RecommendedRegime)
	}
	if !res.MicroBICTaxableBase.Equal(dec("5000.00")) {
		t.Errorf("MicroBICTaxableBase = %s, want 5000.00", res.MicroBICTaxableBase)
	}
}

func TestCompareRegimes_TieResolvesToMicroBIC(t *testing.T) {
	// 10000 × (1 − 0.50) = 5000 == réel base 5000: strict comparison keeps micro-BIC.
	res := fiscal.CompareRegimes(2025, dec("10000"), dec("5000"), fiscal.RegimeStandard, standard2025())
	if res.RecommendedRegime != fiscal.RecommendMicroBIC {
		t.Errorf("RecommendedRegime = %s, want micro_bic on tie", res.RecommendedRegime)
	}
}

func TestCompareRegimes_AboveThresholdForcesReel(t *testing.T) {
	res := fiscal.CompareRegimes(2025, dec("100000"), dec("50000"), fiscal.RegimeStandard, standard2025())
	if !res.AboveThreshold {
		t.Error("AboveThreshold = false, want true")
	}
	if res.RecommendedRegime != fiscal.RecommendReel {
		t.Errorf("RecommendedRegime = %s, want reel (forced)", res.RecommendedRegime)
	}
}

func TestCompareRegimes_DeficitInReel(t *testing.T) {
	res := fiscal.CompareRegimes(2025, dec("10000"), dec("-2000"), fiscal.RegimeStandard, standard2025())
	if !res.ReelTaxableBase.IsZero() {
		t.Errorf("ReelTaxableBase = %s, want 0", res.ReelTaxableBase)
	}
	if !res.ReelDeficit.Equal(dec("2000")) {
		t.Errorf("ReelDeficit = %s, want 2000", res.ReelDeficit)
	}
	if res.RecommendedRegime != fiscal.RecommendReel {
		t.Errorf("RecommendedRegime = %s, want reel", res.RecommendedRegime)
	}
}

func TestCompareRegimes_AbatementPctReported(t *testing.T) {
	res := fiscal.CompareRegimes(2025, dec("20000"), dec("5000"), fiscal.RegimeStandard, standard2025())
	if !res.MicroBICAbatementPct.Equal(dec("50.00")) {
		t.Errorf("MicroBICAbatementPct = %s, want 50.00", res.MicroBICAbatementPct)
	}
	if !res.MicroBICTaxableBase.Equal(dec("10000.00")) {
		t.Errorf("MicroBICTaxableBase = %s, want 10000.00", res.MicroBICTaxableBase)
	}
}

func TestCompareRegimes_AbatementMonotonicity(t *testing.T) {
	revenue := dec("30000")
	prev := decimal.NewFromInt(1 << 30)
	for _, ab := range []string{"0.30", "0.50", "0.71", "0.92"} {
		rc := fiscal.RegimeConstants{Threshold: dec("77700"), Abatement: dec(ab)}
		res := fiscal.CompareRegimes(2025, revenue, decimal.Zero, fiscal.RegimeStandard, rc)
		if !res.MicroBICTaxableBase.LessThan(prev) {
			t.Errorf("abatement %s: base %s not strictly below previous %s", ab, res.MicroBICTaxableBase, prev)
		}
		prev = res.MicroBICTaxableBase
	}
}
