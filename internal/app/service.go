package app

import (
	"context"

	"lmnp-ledger/internal/ai"
	"lmnp-ledger/internal/constants"
	"lmnp-ledger/internal/fiscal"
	"lmnp-ledger/internal/store"
)

// ApplicationService is the single interface adapters call. It decouples the
// HTTP layer from business logic; implementations contain no display logic.
type ApplicationService interface {
	// CreateProperty registers a furnished rental property with its cost basis.
	CreateProperty(ctx context.Context, req CreatePropertyRequest) (*store.Property, error)

	// GetProperty returns one property by ID, active or not.
	GetProperty(ctx context.Context, id int) (*store.Property, error)

	// ListProperties returns all active properties.
	ListProperties(ctx context.Context) ([]store.Property, error)

	// UpdateProperty overwrites the editable fields of a property.
	UpdateProperty(ctx context.Context, id int, req CreatePropertyRequest) (*store.Property, error)

	// DeactivateProperty soft-deletes a property; its history stays queryable.
	DeactivateProperty(ctx context.Context, id int) error

	// AddRevenue records one month's rental income.
	AddRevenue(ctx context.Context, req AddRevenueRequest) (*store.Revenue, error)

	// ListRevenues returns a property's revenues for one fiscal year, month order.
	ListRevenues(ctx context.Context, propertyID, year int) ([]store.Revenue, error)

	// DeleteRevenue removes one revenue row.
	DeleteRevenue(ctx context.Context, id int) error

	// AddExpense records one deductible expense.
	AddExpense(ctx context.Context, req AddExpenseRequest) (*store.Expense, error)

	// ListExpenses returns a property's expenses for one fiscal year, date order.
	ListExpenses(ctx context.Context, propertyID, year int) ([]store.Expense, error)

	// DeleteExpense removes one expense row.
	DeleteExpense(ctx context.Context, id int) error

	// AddDepreciationPlan registers one depreciable component for a fiscal year.
	AddDepreciationPlan(ctx context.Context, req AddPlanRequest) (*store.DepreciationPlan, error)

	// ListDepreciationPlans returns a property's plans for one fiscal year, in
	// the insertion order the allocator distributes in.
	ListDepreciationPlans(ctx context.Context, propertyID, year int) ([]store.DepreciationPlan, error)

	// DeleteDepreciationPlan removes one plan row.
	DeleteDepreciationPlan(ctx context.Context, id int) error

	// ComputeSummary runs the full pipeline for one property/year: totals,
	// depreciation allocation under the statutory cap, journal, balance sheet.
	// The allocation and a snapshot are persisted atomically; a locked year
	// rejects the write with store.ErrYearLocked.
	ComputeSummary(ctx context.Context, req ComputeRequest) (*SummaryResult, error)

	// CompareRegimes contrasts micro-BIC against the régime réel for the year.
	CompareRegimes(ctx context.Context, propertyID, year int, kind fiscal.RegimeKind) (*fiscal.ComparisonResult, error)

	// ValidateYear runs every diagnostic rule over the year's data.
	ValidateYear(ctx context.Context, propertyID, year int) (*fiscal.ValidationResult, error)

	// LockYear marks a declared year immutable (or unlocks it).
	LockYear(ctx context.Context, propertyID, year int, locked bool) error

	// BuildLiasse maps the computed year onto the CERFA 2031 + 2033 forms.
	BuildLiasse(ctx context.Context, propertyID, year int) (*LiasseResult, error)

	// ExportXML renders the liasse as EDI-TDFC-like XML.
	ExportXML(ctx context.Context, propertyID, year int) ([]byte, error)

	// ExportFormPDF renders one form ("2031", "2033-A" .. "2033-G") or the
	// "summary" fiche récapitulative as PDF.
	ExportFormPDF(ctx context.Context, propertyID, year int, formID string) ([]byte, error)

	// ExportBundle renders the complete liasse as a ZIP of PDFs plus XML.
	ExportBundle(ctx context.Context, propertyID, year int) ([]byte, error)

	// ComponentCatalog returns the depreciable component catalog for a year.
	ComponentCatalog(year int) (map[string]constants.Component, error)

	// ExpenseCategories returns the known expense categories for a year.
	ExpenseCategories(year int) (map[string]string, error)

	// AskAssistant forwards a question to the AI fiscal assistant.
	AskAssistant(ctx context.Context, question string, fiscalContext map[string]any) (*ai.Response, error)

	// FAQ returns the curated question list; works without an API key.
	FAQ() []ai.FAQEntry
}
