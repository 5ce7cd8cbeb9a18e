package app

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreatePropertyRequest is the input for registering a property. The cost
// basis split (land, building, furniture, acquisition costs) feeds the
// depreciation plans; land is never depreciable.
type CreatePropertyRequest struct {
	Name             string
	Address          string
	SIRET            string
	AcquisitionDate  time.Time
	TotalPrice       decimal.Decimal
	LandValue        decimal.Decimal
	BuildingValue    decimal.Decimal
	FurnitureValue   decimal.Decimal
	AcquisitionCosts decimal.Decimal
}

// AddRevenueRequest is the input for recording one month's income.
type AddRevenueRequest struct {
	PropertyID int
	FiscalYear int
	Month      int // 1-12
	Amount     decimal.Decimal
	Kind       string // loyer, charges_recuperables, indemnite_assurance
}

// AddExpenseRequest is the input for recording a deductible expense.
type AddExpenseRequest struct {
	PropertyID    int
	FiscalYear    int
	Date          time.Time
	Amount        decimal.Decimal
	DeductiblePct decimal.Decimal // zero means fully deductible
	Category      string
	Description   string
}

// AddPlanRequest is the input for registering a depreciable component.
type AddPlanRequest struct {
	PropertyID     int
	FiscalYear     int
	Component      string // catalog key, e.g. "structure"
	ComponentLabel string // optional; defaults from the catalog
	Value          decimal.Decimal
	DurationYears  int // zero means "use catalog default"
	StartDate      time.Time
}

// ComputeRequest is the input for the full fiscal pipeline. The carry-over
// fields are supplied by the caller; they default to zero for a first year.
type ComputeRequest struct {
	PropertyID                int
	Year                      int
	PreviousCarriedOver       decimal.Decimal
	PreviousDepreciationCumul decimal.Decimal
}
