package store

import "lmnp-ledger/internal/fiscal"

// Record converts a stored revenue row to the engine's input type.
func (r Revenue) Record() fiscal.RevenueRecord {
	return fiscal.RevenueRecord{
		Month:  r.Month,
		Amount: r.Amount,
		Kind:   fiscal.RevenueKind(r.Kind),
	}
}

// Record converts a stored expense row to the engine's input type.
func (e Expense) Record() fiscal.ExpenseRecord {
	return fiscal.ExpenseRecord{
		Date:          e.Date,
		Amount:        e.Amount,
		DeductiblePct: e.DeductiblePct,
		Category:      e.Category,
		Description:   e.Description,
	}
}

// ComponentFor converts a stored plan to an allocator input computed for the
// given fiscal year.
func (p DepreciationPlan) ComponentFor(year int) fiscal.DepreciableComponent {
	return fiscal.DepreciableComponent{
		Component:      p.Component,
		ComponentLabel: p.ComponentLabel,
		Value:          p.Value,
		DurationYears:  p.DurationYears,
		StartDate:      p.StartDate,
		FiscalYear:     year,
	}
}

// RevenueRecords converts a slice of rows, preserving order.
func RevenueRecords(rows []Revenue) []fiscal.RevenueRecord {
	out := make([]fiscal.RevenueRecord, len(rows))
	for i, r := range rows {
		out[i] = r.Record()
	}
	return out
}

// ExpenseRecords converts a slice of rows, preserving order.
func ExpenseRecords(rows []Expense) []fiscal.ExpenseRecord {
	out := make([]fiscal.ExpenseRecord, len(rows))
	for i, e := range rows {
		out[i] = e.Record()
	}
	return out
}

// ComponentsFor converts a slice of plans, preserving the id ordering the
// allocator's greedy distribution depends on.
func ComponentsFor(rows []DepreciationPlan, year int) []fiscal.DepreciableComponent {
	out := make([]fiscal.DepreciableComponent, len(rows))
	for i, p := range rows {
		out[i] = p.ComponentFor(year)
	}
	return out
}
