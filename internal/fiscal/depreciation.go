package fiscal

import (
	"time"

	"github.com/shopspring/decimal"
)

// Reference: CGI art. 39 C — land is never depreciable, excess depreciation
// is carried over without time limit.

var days365 = decimal.NewFromInt(365)

// ProrataFraction returns the fraction of fiscalYear during which an asset
// acquired on startDate was held. Assets acquired in a prior year count as
// held the full year (1). Assets acquired during fiscalYear count the
// acquisition day itself, over a fixed 365-day denominator (no leap-year
// adjustment).
func ProrataFraction(startDate time.Time, fiscalYear int) decimal.Decimal {
	if startDate.Year() < fiscalYear {
		return decimal.NewFromInt(1)
	}

	yearEnd := time.Date(fiscalYear, time.December, 31, 0, 0, 0, 0, time.UTC)
	start := time.Date(startDate.Year(), startDate.Month(), startDate.Day(), 0, 0, 0, 0, time.UTC)
	daysHeld := int64(yearEnd.Sub(start).Hours()/24) + 1 // inclusive of the acquisition day
	return decimal.NewFromInt(daysHeld).Div(days365)
}

// AnnualAmount computes a component's linear depreciation charge for its
// fiscal year, with prorata temporis in the acquisition year. Returns zero for
// degenerate inputs (non-positive value or duration) and for years outside the
// component's depreciable window, on either side.
//
// The two multiplications are rounded independently — value×rate first, then
// ×prorata. Collapsing them into one rounding changes cent-level results for
// mid-year acquisitions.
func AnnualAmount(c DepreciableComponent) decimal.Decimal {
	if c.Value.LessThanOrEqual(decimal.Zero) || c.DurationYears <= 0 {
		return decimal.Zero
	}
	if c.FiscalYear < c.StartDate.Year() || c.FiscalYear > c.LastDepreciableYear() {
		return decimal.Zero
	}

	rate := decimal.NewFromInt(1).Div(decimal.NewFromInt(int64(c.DurationYears)))
	fullAnnual := Round2(c.Value.Mul(rate))

	prorata := ProrataFraction(c.StartDate, c.FiscalYear)
	return Round2(fullAnnual.Mul(prorata))
}

// Allocate computes the deductible depreciation for a fiscal year under the
// CGI art. 39 C cap: the deduction cannot exceed the pre-depreciation result,
// and the excess (plus any previousCarriedOver) carries forward.
//
// The deductible total is distributed across components in input order, each
// component absorbing up to its own annual amount before the next. Input
// ordering is a caller contract.
func Allocate(components []DepreciableComponent, resultBeforeDepreciation, previousCarriedOver decimal.Decimal) AllocationResult {
	totalAnnual := decimal.Zero
	details := make([]AllocationDetail, 0, len(components))

	for _, c := range components {
		amount := AnnualAmount(c)
		totalAnnual = totalAnnual.Add(amount)
		details = append(details, AllocationDetail{
			Component:        c.Component,
			ComponentLabel:   c.ComponentLabel,
			AnnualAmount:     amount,
			DeductibleAmount: decimal.Zero,
			CarriedOver:      decimal.Zero,
		})
	}

	totalAvailable := totalAnnual.Add(previousCarriedOver)
	cap := decimal.Max(decimal.Zero, resultBeforeDepreciation)
	totalDeductible := decimal.Min(totalAvailable, cap)
	totalCarriedOver := totalAvailable.Sub(totalDeductible)

	remaining := totalDeductible
	for i := range details {
		alloc := decimal.Min(details[i].AnnualAmount, remaining)
		details[i].DeductibleAmount = alloc
		details[i].CarriedOver = details[i].AnnualAmount.Sub(alloc)
		remaining = remaining.Sub(alloc)
	}

	return AllocationResult{
		TotalAnnual:      totalAnnual,
		TotalDeductible:  totalDeductible,
		TotalCarriedOver: totalCarriedOver,
		Details:          details,
	}
}
