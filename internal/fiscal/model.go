package fiscal

import (
	"time"

	"github.com/shopspring/decimal"
)

type RevenueKind string

const (
	RevenueRent               RevenueKind = "loyer"
	RevenueRecoverableCharges RevenueKind = "charges_recuperables"
	RevenueInsuranceIndemnity RevenueKind = "indemnite_assurance"
)

// RevenueRecord is one month's rental income for a property.
type RevenueRecord struct {
	Month  int             `json:"month"` // 1-12
	Amount decimal.Decimal `json:"amount"`
	Kind   RevenueKind     `json:"kind"`
}

// ExpenseRecord is one deductible expense. DeductiblePct is 0-100; the
// deductible contribution is Amount × DeductiblePct / 100.
type ExpenseRecord struct {
	Date          time.Time       `json:"date"`
	Amount        decimal.Decimal `json:"amount"`
	DeductiblePct decimal.Decimal `json:"deductible_pct"`
	Category      string          `json:"category"`
	Description   string          `json:"description,omitempty"`
	Account       string          `json:"account,omitempty"` // PCG account, defaults to 627
}

// DepreciableComponent is one depreciable part of the property's cost basis
// (structure, roofing, furniture, acquisition costs, ...). Land is never a
// component. Inputs to the allocator are immutable; derived figures live in
// AllocationDetail.
type DepreciableComponent struct {
	Component      string          `json:"component"` // catalog key, e.g. "structure"
	ComponentLabel string          `json:"component_label"`
	Value          decimal.Decimal `json:"value"`
	DurationYears  int             `json:"duration_years"`
	StartDate      time.Time       `json:"start_date"`
	FiscalYear     int             `json:"fiscal_year"` // year being computed for
}

// LastDepreciableYear is the final year this component produces depreciation.
func (c DepreciableComponent) LastDepreciableYear() int {
	return c.StartDate.Year() + c.DurationYears - 1
}

// AllocationDetail is the per-component, per-year depreciation outcome.
// DeductibleAmount + CarriedOver == AnnualAmount, to the cent.
type AllocationDetail struct {
	Component        string          `json:"component"`
	ComponentLabel   string          `json:"component_label"`
	AnnualAmount     decimal.Decimal `json:"annual_amount"`
	DeductibleAmount decimal.Decimal `json:"deductible_amount"`
	CarriedOver      decimal.Decimal `json:"carried_over"`
}

// AllocationResult is the allocator's output for one fiscal year.
type AllocationResult struct {
	TotalAnnual      decimal.Decimal    `json:"total_annual"`
	TotalDeductible  decimal.Decimal    `json:"total_deductible"`
	TotalCarriedOver decimal.Decimal    `json:"total_carried_over"`
	Details          []AllocationDetail `json:"details"`
}

// JournalEntry is one side of a double-entry posting in the simplified PCG
// journal. Every economic event emits a debit entry and a matching credit
// entry, so the full journal always balances.
type JournalEntry struct {
	Date    time.Time       `json:"date"`
	Account string          `json:"account"`
	Label   string          `json:"label"`
	Debit   decimal.Decimal `json:"debit"`
	Credit  decimal.Decimal `json:"credit"`
}

// FiscalSummary is the computed result for one property / one fiscal year.
// It is recomputed wholesale on every run and never mutated in place.
type FiscalSummary struct {
	PropertyID int `json:"property_id"`
	Year       int `json:"year"`

	TotalRevenue             decimal.Decimal `json:"total_revenue"`
	TotalExpenses            decimal.Decimal `json:"total_expenses"`
	ResultBeforeDepreciation decimal.Decimal `json:"result_before_depreciation"`

	TotalDepreciationAnnual     decimal.Decimal `json:"total_depreciation_annual"`
	TotalDepreciationDeductible decimal.Decimal `json:"total_depreciation_deductible"`
	TotalDepreciationCarried    decimal.Decimal `json:"total_depreciation_carried"`

	// FiscalResult = ResultBeforeDepreciation − TotalDepreciationDeductible.
	// Negative means a déficit.
	FiscalResult decimal.Decimal `json:"fiscal_result"`

	// Simplified balance sheet. Equity is deliberately approximated by the
	// acquisition value; this is not a balanced double-entry bilan.
	AssetGross             decimal.Decimal `json:"asset_gross"`
	AssetDepreciationCumul decimal.Decimal `json:"asset_depreciation_cumul"`
	AssetNet               decimal.Decimal `json:"asset_net"`
	Cash                   decimal.Decimal `json:"cash"`
	TotalAssets            decimal.Decimal `json:"total_assets"`
	Equity                 decimal.Decimal `json:"equity"`
	TotalLiabilitiesEquity decimal.Decimal `json:"total_liabilities_equity"`

	Journal []JournalEntry `json:"journal,omitempty"`
}

type RegimeKind string

const (
	RegimeStandard            RegimeKind = "standard"
	RegimeTourismClassified   RegimeKind = "tourism_classified"
	RegimeTourismUnclassified RegimeKind = "tourism_unclassified"
)

const (
	RecommendMicroBIC = "micro_bic"
	RecommendReel     = "reel"
)

// ComparisonResult compares the micro-BIC flat-rate regime against the
// régime réel for one year.
type ComparisonResult struct {
	Year         int             `json:"year"`
	TotalRevenue decimal.Decimal `json:"total_revenue"`
	RegimeKind   RegimeKind      `json:"regime_kind"`

	MicroBICThreshold    decimal.Decimal `json:"micro_bic_threshold"`
	MicroBICAbatementPct decimal.Decimal `json:"micro_bic_abatement_pct"`
	MicroBICTaxableBase  decimal.Decimal `json:"micro_bic_taxable_base"`

	ReelTaxableBase decimal.Decimal `json:"reel_taxable_base"`
	ReelDeficit     decimal.Decimal `json:"reel_deficit"`

	// MicroBICSaving = micro-BIC base − réel base. Positive means the
	// micro-BIC base is higher, so the réel regime is more favorable.
	MicroBICSaving    decimal.Decimal `json:"micro_bic_saving"`
	RecommendedRegime string          `json:"recommended_regime"`
	AboveThreshold    bool            `json:"above_threshold"`
}

type IssueLevel string

const (
	LevelError   IssueLevel = "error"
	LevelWarning IssueLevel = "warning"
	LevelInfo    IssueLevel = "info"
)

// ValidationIssue is one diagnostic about the fiscal data itself. Issues are
// results, not errors: a summary with issues still computes successfully.
type ValidationIssue struct {
	Level   IssueLevel `json:"level"`
	Code    string     `json:"code"`
	Message string     `json:"message"`
	Field   string     `json:"field,omitempty"`
	CGIRef  string     `json:"cgi_ref,omitempty"`
}

// ValidationResult is the ordered list of issues for one summary.
type ValidationResult struct {
	Issues []ValidationIssue `json:"issues"`
}

// HasErrors reports whether any issue is level error.
func (r ValidationResult) HasErrors() bool {
	for _, i := range r.Issues {
		if i.Level == LevelError {
			return true
		}
	}
	return false
}

// Errors returns the error-level issues only.
func (r ValidationResult) Errors() []ValidationIssue {
	return r.filter(LevelError)
}

// Warnings returns the warning-level issues only.
func (r ValidationResult) Warnings() []ValidationIssue {
	return r.filter(LevelWarning)
}

// Suggestions returns the info-level issues only.
func (r ValidationResult) Suggestions() []ValidationIssue {
	return r.filter(LevelInfo)
}

func (r ValidationResult) filter(level IssueLevel) []ValidationIssue {
	var out []ValidationIssue
	for _, i := range r.Issues {
		if i.Level == level {
			out = append(out, i)
		}
	}
	return out
}
