// Package store is the persistence collaborator: it loads and saves the raw
// records the fiscal engine consumes and the snapshots it produces. The
// engine itself never touches the database.
package store

import (
	"errors"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
)

// ErrNotFound is returned when a requested row does not exist.
var ErrNotFound = errors.New("not found")

// Property is one furnished-rental property and its cost basis.
type Property struct {
	ID               int             `json:"id"`
	Name             string          `json:"name"`
	Address          string          `json:"address,omitempty"`
	SIRET            string          `json:"siret,omitempty"`
	AcquisitionDate  time.Time       `json:"acquisition_date"`
	TotalPrice       decimal.Decimal `json:"total_price"`
	LandValue        decimal.Decimal `json:"land_value"`
	BuildingValue    decimal.Decimal `json:"building_value"`
	FurnitureValue   decimal.Decimal `json:"furniture_value"`
	AcquisitionCosts decimal.Decimal `json:"acquisition_costs"`
	IsActive         bool            `json:"is_active"`
	CreatedAt        time.Time       `json:"created_at"`
	UpdatedAt        time.Time       `json:"updated_at"`
}

// Revenue is one stored monthly revenue record.
type Revenue struct {
	ID         int             `json:"id"`
	PropertyID int             `json:"property_id"`
	FiscalYear int             `json:"fiscal_year"`
	Month      int             `json:"month"`
	Amount     decimal.Decimal `json:"amount"`
	Kind       string          `json:"kind"`
	Notes      string          `json:"notes,omitempty"`
}

// Expense is one stored deductible expense record.
type Expense struct {
	ID            int             `json:"id"`
	PropertyID    int             `json:"property_id"`
	FiscalYear    int             `json:"fiscal_year"`
	Date          time.Time       `json:"date"`
	Amount        decimal.Decimal `json:"amount"`
	Category      string          `json:"category"`
	Description   string          `json:"description,omitempty"`
	DeductiblePct decimal.Decimal `json:"deductible_pct"`
}

// DepreciationPlan is one stored component of a property for one fiscal year,
// including the last computed allocation figures.
type DepreciationPlan struct {
	ID               int             `json:"id"`
	PropertyID       int             `json:"property_id"`
	Component        string          `json:"component"`
	ComponentLabel   string          `json:"component_label"`
	Value            decimal.Decimal `json:"value"`
	DurationYears    int             `json:"duration_years"`
	StartDate        time.Time       `json:"start_date"`
	Method           string          `json:"method"`
	FiscalYear       int             `json:"fiscal_year"`
	AnnualAmount     decimal.Decimal `json:"annual_amount"`
	DeductibleAmount decimal.Decimal `json:"deductible_amount"`
	CarriedOver      decimal.Decimal `json:"carried_over"`
}

// FiscalYearSnapshot is the persisted result of one engine run for
// (property, year). It is replaced wholesale on every recomputation.
type FiscalYearSnapshot struct {
	ID                          int             `json:"id"`
	PropertyID                  int             `json:"property_id"`
	Year                        int             `json:"year"`
	TotalRevenue                decimal.Decimal `json:"total_revenue"`
	TotalExpenses               decimal.Decimal `json:"total_expenses"`
	TotalDepreciationAnnual     decimal.Decimal `json:"total_depreciation_annual"`
	TotalDepreciationDeductible decimal.Decimal `json:"total_depreciation_deductible"`
	TotalDepreciationCarried    decimal.Decimal `json:"total_depreciation_carried"`
	FiscalResult                decimal.Decimal `json:"fiscal_result"`
	Locked                      bool            `json:"locked"`
}

// Store wraps the connection pool with typed accessors for each record kind.
type Store struct {
	pool *pgxpool.Pool
}

// New constructs a Store backed by the given pool.
func New(pool *pgxpool.Pool) *Store {
	return &Store{pool: pool}
}
