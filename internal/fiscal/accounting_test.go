package fiscal_test

import (
	"testing"

	"lmnp-ledger/internal/fiscal"

	"github.com/shopspring/decimal"
)

func sampleRevenues() []fiscal.RevenueRecord {
	revs := make([]fiscal.RevenueRecord, 0, 12)
	for m := 1; m <= 12; m++ {
		revs = append(revs, fiscal.RevenueRecord{Month: m, Amount: dec("750"), Kind: fiscal.RevenueRent})
	}
	return revs
}

func sampleExpenses() []fiscal.ExpenseRecord {
	return []fiscal.ExpenseRecord{
		{Date: date(2025, 2, 10), Amount: dec("1200"), DeductiblePct: dec("100"), Category: "copropriete", Description: "Charges de copropriété"},
		{Date: date(2025, 3, 5), Amount: dec("450"), DeductiblePct: dec("100"), Category: "assurance"},
		{Date: date(2025, 6, 30), Amount: dec("2800"), DeductiblePct: dec("100"), Category: "interets_emprunt"},
	}
}

func TestSummarize_Totals(t *testing.T) {
	revenues := sampleRevenues()
	expenses := sampleExpenses()
	// 9000 revenue − 4450 expenses = 4550 before depreciation.
	alloc := fiscal.Allocate(sampleComponents(2025), dec("4550"), decimal.Zero)

	s := fiscal.Summarize(1, 2025, revenues, expenses, alloc, dec("225000"), decimal.Zero)

	if !s.TotalRevenue.Equal(dec("9000.00")) {
		t.Errorf("TotalRevenue = %s, want 9000.00", s.TotalRevenue)
	}
	if !s.TotalExpenses.Equal(dec("4450.00")) {
		t.Errorf("TotalExpenses = %s, want 4450.00", s.TotalExpenses)
	}
	if !s.ResultBeforeDepreciation.Equal(dec("4550.00")) {
		t.Errorf("ResultBeforeDepreciation = %s, want 4550.00", s.ResultBeforeDepreciation)
	}
	wantFiscal := s.ResultBeforeDepreciation.Sub(s.TotalDepreciationDeductible)
	if !s.FiscalResult.Equal(wantFiscal) {
		t.Errorf("FiscalResult = %s, want %s", s.FiscalResult, wantFiscal)
	}
	// Cap binds: everything above 4550 carries over, result is zero.
	if !s.FiscalResult.IsZero() {
		t.Errorf("FiscalResult = %s, want 0 (cap binds)", s.FiscalResult)
	}
}

func TestSummarize_PartialDeductiblePercentage(t *testing.T) {
	expenses := []fiscal.ExpenseRecord{
		{Date: date(2025, 5, 1), Amount: dec("1000"), DeductiblePct: dec("50"), Category: "travaux"},
	}
	s := fiscal.Summarize(1, 2025, sampleRevenues(), expenses, fiscal.AllocationResult{}, dec("225000"), decimal.Zero)
	if !s.TotalExpenses.Equal(dec("500.00")) {
		t.Errorf("TotalExpenses = %s, want 500.00", s.TotalExpenses)
	}
}

func TestSummarize_BalanceSheet(t *testing.T) {
	alloc := fiscal.Allocate(sampleComponents(2025), dec("4550"), decimal.Zero)
	s := fiscal.Summarize(1, 2025, sampleRevenues(), sampleExpenses(), alloc, dec("225000"), dec("10000"))

	if !s.AssetGross.Equal(dec("225000")) {
		t.Errorf("AssetGross = %s, want 225000", s.AssetGross)
	}
	wantCumul := dec("10000").Add(s.TotalDepreciationDeductible)
	if !s.AssetDepreciationCumul.Equal(wantCumul) {
		t.Errorf("AssetDepreciationCumul = %s, want %s", s.AssetDepreciationCumul, wantCumul)
	}
	if !s.AssetNet.Equal(s.AssetGross.Sub(s.AssetDepreciationCumul)) {
		t.Errorf("AssetNet = %s", s.AssetNet)
	}
	if !s.Cash.Equal(s.TotalRevenue.Sub(s.TotalExpenses)) {
		t.Errorf("Cash = %s", s.Cash)
	}
	if !s.TotalAssets.Equal(s.AssetNet.Add(s.Cash)) {
		t.Errorf("TotalAssets = %s", s.TotalAssets)
	}
	if !s.Equity.Equal(s.AssetGross) || !s.TotalLiabilitiesEquity.Equal(s.Equity) {
		t.Errorf("Equity = %s, TotalLiabilitiesEquity = %s", s.Equity, s.TotalLiabilitiesEquity)
	}
}

func TestSummarize_PureFunction(t *testing.T) {
	alloc := fiscal.Allocate(sampleComponents(2025), dec("4550"), decimal.Zero)
	a := fiscal.Summarize(1, 2025, sampleRevenues(), sampleExpenses(), alloc, dec("225000"), decimal.Zero)
	b := fiscal.Summarize(1, 2025, sampleRevenues(), sampleExpenses(), alloc, dec("225000"), decimal.Zero)
	if !a.FiscalResult.Equal(b.FiscalResult) || !a.TotalAssets.Equal(b.TotalAssets) || len(a.Journal) != len(b.Journal) {
		t.Fatal("identical inputs produced different summaries")
	}
}

func TestBuildJournal_Balances(t *testing.T) {
	alloc := fiscal.Allocate(sampleComponents(2025), dec("4550"), decimal.Zero)
	s := fiscal.Summarize(1, 2025, sampleRevenues(), sampleExpenses(), alloc, dec("225000"), decimal.Zero)

	totalDebit, totalCredit := decimal.Zero, decimal.Zero
	for _, e := range s.Journal {
		totalDebit = totalDebit.Add(e.Debit)
		totalCredit = totalCredit.Add(e.Credit)
	}
	diff := totalDebit.Sub(totalCredit).Abs()
	if diff.GreaterThan(dec("0.02")) {
		t.Errorf("journal imbalance: debits %s, credits %s", totalDebit, totalCredit)
	}
}

func TestBuildJournal_PairedEntries(t *testing.T) {
	revenues := []fiscal.RevenueRecord{{Month: 3, Amount: dec("750"), Kind: fiscal.RevenueRent}}
	expenses := []fiscal.ExpenseRecord{{Date: date(2025, 4, 2), Amount: dec("200"), DeductiblePct: dec("100"), Category: "assurance"}}
	alloc := fiscal.Allocate(sampleComponents(2025), dec("550"), decimal.Zero)

	entries := fiscal.BuildJournal(2025, revenues, expenses, alloc.Details)

	// One pair per revenue, one per expense, one per component with a
	// positive deduction. Cap 550 covers only the first component.
	positive := 0
	for _, d := range alloc.Details {
		if d.DeductibleAmount.IsPositive() {
			positive++
		}
	}
	want := 2*1 + 2*1 + 2*positive
	if len(entries) != want {
		t.Fatalf("len(entries) = %d, want %d", len(entries), want)
	}

	rev := entries[0]
	if rev.Account != fiscal.AccountReceivable || !rev.Debit.Equal(dec("750")) {
		t.Errorf("revenue debit entry = %+v", rev)
	}
	if entries[1].Account != fiscal.AccountRentalIncome || !entries[1].Credit.Equal(dec("750")) {
		t.Errorf("revenue credit entry = %+v", entries[1])
	}

	// Depreciation pairs are dated December 31.
	last := entries[len(entries)-1]
	if last.Account != fiscal.AccountAmortCumul {
		t.Errorf("last entry account = %s, want %s", last.Account, fiscal.AccountAmortCumul)
	}
	if last.Date.Month() != 12 || last.Date.Day() != 31 {
		t.Errorf("depreciation entry dated %s, want December 31", last.Date)
	}
}

func TestBuildJournal_SkipsZeroDeduction(t *testing.T) {
	// Zero pre-depreciation result: no component deducts anything, so no
	// 681/281 pairs appear.
	alloc := fiscal.Allocate(sampleComponents(2025), decimal.Zero, decimal.Zero)
	entries := fiscal.BuildJournal(2025, nil, nil, alloc.Details)
	if len(entries) != 0 {
		t.Errorf("len(entries) = %d, want 0", len(entries))
	}
}
