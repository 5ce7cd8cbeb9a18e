package fiscal

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// Simplified Plan Comptable Général accounts used by the journal.
const (
	AccountReceivable   = "411" // Clients
	AccountRentalIncome = "706" // Prestations de services
	AccountSupplier     = "401" // Fournisseurs
	AccountExpenseMisc  = "627" // Services bancaires et assimilés (default)
	AccountDepreciation = "681" // Dotations aux amortissements
	AccountAmortCumul   = "281" // Amortissements des immobilisations
)

var hundred = decimal.NewFromInt(100)

// DeductibleAmount returns the expense's deductible contribution,
// Amount × DeductiblePct / 100, unrounded.
func (e ExpenseRecord) DeductibleAmount() decimal.Decimal {
	return e.Amount.Mul(e.DeductiblePct).Div(hundred)
}

// Summarize computes the fiscal summary for one property / one fiscal year.
//
// The depreciation totals are copied from allocation, never recomputed: the
// caller must pass an allocation computed against the same pre-depreciation
// result, or the deductible figure will not reflect the cap.
func Summarize(
	propertyID, year int,
	revenues []RevenueRecord,
	expenses []ExpenseRecord,
	allocation AllocationResult,
	propertyGrossValue decimal.Decimal,
	previousDepreciationCumul decimal.Decimal,
) FiscalSummary {
	s := FiscalSummary{PropertyID: propertyID, Year: year}

	totalRevenue := decimal.Zero
	for _, r := range revenues {
		totalRevenue = totalRevenue.Add(r.Amount)
	}
	totalExpenses := decimal.Zero
	for _, e := range expenses {
		totalExpenses = totalExpenses.Add(e.DeductibleAmount())
	}
	s.TotalRevenue = Round2(totalRevenue)
	s.TotalExpenses = Round2(totalExpenses)
	s.ResultBeforeDepreciation = s.TotalRevenue.Sub(s.TotalExpenses)

	s.TotalDepreciationAnnual = allocation.TotalAnnual
	s.TotalDepreciationDeductible = allocation.TotalDeductible
	s.TotalDepreciationCarried = allocation.TotalCarriedOver
	s.FiscalResult = s.ResultBeforeDepreciation.Sub(s.TotalDepreciationDeductible)

	// Simplified balance sheet.
	s.AssetGross = propertyGrossValue
	s.AssetDepreciationCumul = previousDepreciationCumul.Add(s.TotalDepreciationDeductible)
	s.AssetNet = s.AssetGross.Sub(s.AssetDepreciationCumul)
	s.Cash = s.TotalRevenue.Sub(s.TotalExpenses)
	s.TotalAssets = s.AssetNet.Add(s.Cash)
	s.Equity = s.AssetGross // approximation: acquisition value
	s.TotalLiabilitiesEquity = s.Equity

	s.Journal = BuildJournal(year, revenues, expenses, allocation.Details)
	return s
}

// BuildJournal emits the paired debit/credit entries for the fiscal year:
// one 411/706 pair per revenue record, one 6xx/401 pair per expense (net
// deductible amount), and one year-end 681/281 pair per component with a
// positive deductible depreciation. The journal is audit output only; nothing
// downstream reads it back.
func BuildJournal(year int, revenues []RevenueRecord, expenses []ExpenseRecord, details []AllocationDetail) []JournalEntry {
	var entries []JournalEntry

	for _, rev := range revenues {
		month := rev.Month
		if month < 1 || month > 12 {
			month = 12
		}
		date := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.UTC)
		label := fmt.Sprintf("Loyer — Mois %d", rev.Month)
		entries = append(entries,
			JournalEntry{Date: date, Account: AccountReceivable, Label: label, Debit: rev.Amount, Credit: decimal.Zero},
			JournalEntry{Date: date, Account: AccountRentalIncome, Label: label, Debit: decimal.Zero, Credit: rev.Amount},
		)
	}

	for _, exp := range expenses {
		net := exp.DeductibleAmount()
		account := exp.Account
		if account == "" {
			account = AccountExpenseMisc
		}
		label := exp.Description
		if label == "" {
			label = exp.Category
		}
		date := exp.Date
		if date.IsZero() {
			date = time.Date(year, time.December, 31, 0, 0, 0, 0, time.UTC)
		}
		entries = append(entries,
			JournalEntry{Date: date, Account: account, Label: label, Debit: net, Credit: decimal.Zero},
			JournalEntry{Date: date, Account: AccountSupplier, Label: label, Debit: decimal.Zero, Credit: net},
		)
	}

	yearEnd := time.Date(year, time.December, 31, 0, 0, 0, 0, time.UTC)
	for _, d := range details {
		if !d.DeductibleAmount.IsPositive() {
			continue
		}
		entries = append(entries,
			JournalEntry{
				Date:    yearEnd,
				Account: AccountDepreciation,
				Label:   "Dotation amortissement — " + d.ComponentLabel,
				Debit:   d.DeductibleAmount,
				Credit:  decimal.Zero,
			},
			JournalEntry{
				Date:    yearEnd,
				Account: AccountAmortCumul,
				Label:   "Amortissement — " + d.ComponentLabel,
				Debit:   decimal.Zero,
				Credit:  d.DeductibleAmount,
			},
		)
	}

	return entries
}
