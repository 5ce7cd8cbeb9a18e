package fiscal_test

import (
	"testing"

	"lmnp-ledger/internal/fiscal"

	"github.com/shopspring/decimal"
)

func hasIssue(r fiscal.ValidationResult, code string) bool {
	for _, i := range r.Issues {
		if i.Code == code {
			return true
		}
	}
	return false
}

func cleanSummary() fiscal.FiscalSummary {
	alloc := fiscal.Allocate(sampleComponents(2025), dec("4550"), decimal.Zero)
	return fiscal.Summarize(1, 2025, sampleRevenues(), sampleExpenses(), alloc, dec("225000"), decimal.Zero)
}

func TestValidateSummary_CleanYear(t *testing.T) {
	s := cleanSummary()
	alloc := fiscal.Allocate(sampleComponents(2025), dec("4550"), decimal.Zero)
	res := fiscal.ValidateSummary(s, sampleRevenues(), sampleExpenses(), alloc.Details, true)

	if res.HasErrors() {
		t.Errorf("unexpected errors: %+v", res.Errors())
	}
	for _, code := range []string{"INCOMPLETE_YEAR", "NO_DEPRECIATION", "SUGGEST_COMPONENTS", "SUGGEST_ACQUISITION_COSTS"} {
		if hasIssue(res, code) {
			t.Errorf("unexpected issue %s", code)
		}
	}
}

func TestValidateSummary_BalanceMismatch(t *testing.T) {
	s := cleanSummary()
	s.TotalLiabilitiesEquity = s.TotalAssets.Add(dec("5"))
	res := fiscal.ValidateSummary(s, sampleRevenues(), sampleExpenses(), nil, true)
	if !hasIssue(res, "BALANCE_UNBALANCED") {
		t.Error("missing BALANCE_UNBALANCED")
	}
	if !res.HasErrors() {
		t.Error("HasErrors = false, want true")
	}
}

func TestValidateSummary_BalanceWithinTolerance(t *testing.T) {
	s := cleanSummary()
	s.TotalLiabilitiesEquity = s.TotalAssets.Add(dec("0.80"))
	res := fiscal.ValidateSummary(s, sampleRevenues(), sampleExpenses(), nil, true)
	if hasIssue(res, "BALANCE_UNBALANCED") {
		t.Error("±1 € difference should not flag BALANCE_UNBALANCED")
	}
}

func TestValidateSummary_NegativeRevenue(t *testing.T) {
	revenues := append(sampleRevenues(), fiscal.RevenueRecord{Month: 6, Amount: dec("-100"), Kind: fiscal.RevenueRent})
	res := fiscal.ValidateSummary(cleanSummary(), revenues, nil, nil, true)
	if !hasIssue(res, "NEGATIVE_REVENUE") {
		t.Error("missing NEGATIVE_REVENUE")
	}
}

func TestValidateSummary_HighExpenseRatio(t *testing.T) {
	s := cleanSummary()
	s.TotalRevenue = dec("1000")
	s.TotalExpenses = dec("3500")
	res := fiscal.ValidateSummary(s, sampleRevenues(), nil, nil, true)
	if !hasIssue(res, "EXPENSES_HIGH_RATIO") {
		t.Error("missing EXPENSES_HIGH_RATIO")
	}
}

func TestValidateSummary_HighRatioSkippedWithoutRevenue(t *testing.T) {
	s := cleanSummary()
	s.TotalRevenue = decimal.Zero
	s.TotalExpenses = dec("3500")
	res := fiscal.ValidateSummary(s, nil, nil, nil, true)
	if hasIssue(res, "EXPENSES_HIGH_RATIO") {
		t.Error("EXPENSES_HIGH_RATIO must not fire with zero revenue")
	}
}

func TestValidateSummary_IncompleteYear(t *testing.T) {
	revenues := []fiscal.RevenueRecord{{Month: 1, Amount: dec("750")}, {Month: 2, Amount: dec("750")}}
	res := fiscal.ValidateSummary(cleanSummary(), revenues, nil, nil, true)
	if !hasIssue(res, "INCOMPLETE_YEAR") {
		t.Error("missing INCOMPLETE_YEAR")
	}
}

func TestValidateSummary_NoDepreciationPlan(t *testing.T) {
	res := fiscal.ValidateSummary(cleanSummary(), sampleRevenues(), nil, nil, false)
	if !hasIssue(res, "NO_DEPRECIATION") {
		t.Error("missing NO_DEPRECIATION")
	}
	if !hasIssue(res, "SUGGEST_COMPONENTS") {
		t.Error("missing SUGGEST_COMPONENTS")
	}
}

func TestValidateSummary_SuggestAcquisitionCosts(t *testing.T) {
	details := []fiscal.AllocationDetail{
		{Component: "structure", ComponentLabel: "Structure", AnnualAmount: dec("2520")},
	}
	res := fiscal.ValidateSummary(cleanSummary(), sampleRevenues(), nil, details, true)
	if !hasIssue(res, "SUGGEST_ACQUISITION_COSTS") {
		t.Error("missing SUGGEST_ACQUISITION_COSTS")
	}

	details = append(details, fiscal.AllocationDetail{Component: "acquisition_costs", ComponentLabel: "Frais d'acquisition"})
	res = fiscal.ValidateSummary(cleanSummary(), sampleRevenues(), nil, details, true)
	if hasIssue(res, "SUGGEST_ACQUISITION_COSTS") {
		t.Error("SUGGEST_ACQUISITION_COSTS must not fire when the component exists")
	}
}

func TestValidateSummary_CollectsAllIssues(t *testing.T) {
	// A thoroughly broken year: every rule should report, none short-circuits.
	s := cleanSummary()
	s.TotalLiabilitiesEquity = s.TotalAssets.Add(dec("50"))
	s.TotalRevenue = dec("100")
	s.TotalExpenses = dec("900")
	revenues := []fiscal.RevenueRecord{{Month: 1, Amount: dec("-10")}}

	res := fiscal.ValidateSummary(s, revenues, nil, nil, false)
	for _, code := range []string{
		"BALANCE_UNBALANCED", "NEGATIVE_REVENUE", "EXPENSES_HIGH_RATIO",
		"INCOMPLETE_YEAR", "NO_DEPRECIATION", "SUGGEST_COMPONENTS", "SUGGEST_ACQUISITION_COSTS",
	} {
		if !hasIssue(res, code) {
			t.Errorf("missing issue %s", code)
		}
	}
	if len(res.Errors()) != 2 || len(res.Warnings()) != 3 || len(res.Suggestions()) != 2 {
		t.Errorf("level split = %d/%d/%d, want 2/3/2",
			len(res.Errors()), len(res.Warnings()), len(res.Suggestions()))
	}
}
