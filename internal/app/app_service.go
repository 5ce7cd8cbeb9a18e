package app

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"

	"lmnp-ledger/internal/ai"
	"lmnp-ledger/internal/constants"
	"lmnp-ledger/internal/fiscal"
	"lmnp-ledger/internal/liasse"
	"lmnp-ledger/internal/store"
)

// ErrAssistantUnavailable is returned when no OpenAI API key is configured.
var ErrAssistantUnavailable = fmt.Errorf("assistant not configured")

type appService struct {
	store     *store.Store
	constants *constants.Library
	assistant ai.AssistantService // nil when no API key is configured
}

// NewAppService constructs an appService that satisfies ApplicationService.
// assistant may be nil; AskAssistant then returns ErrAssistantUnavailable.
func NewAppService(st *store.Store, lib *constants.Library, assistant ai.AssistantService) ApplicationService {
	return &appService{store: st, constants: lib, assistant: assistant}
}

func (s *appService) CreateProperty(ctx context.Context, req CreatePropertyRequest) (*store.Property, error) {
	return s.store.CreateProperty(ctx, &store.Property{
		Name:             req.Name,
		Address:          req.Address,
		SIRET:            req.SIRET,
		AcquisitionDate:  req.AcquisitionDate,
		TotalPrice:       req.TotalPrice,
		LandValue:        req.LandValue,
		BuildingValue:    req.BuildingValue,
		FurnitureValue:   req.FurnitureValue,
		AcquisitionCosts: req.AcquisitionCosts,
	})
}

func (s *appService) GetProperty(ctx context.Context, id int) (*store.Property, error) {
	return s.store.GetProperty(ctx, id)
}

func (s *appService) ListProperties(ctx context.Context) ([]store.Property, error) {
	return s.store.ListProperties(ctx)
}

func (s *appService) UpdateProperty(ctx context.Context, id int, req CreatePropertyRequest) (*store.Property, error) {
	return s.store.UpdateProperty(ctx, &store.Property{
		ID:               id,
		Name:             req.Name,
		Address:          req.Address,
		SIRET:            req.SIRET,
		AcquisitionDate:  req.AcquisitionDate,
		TotalPrice:       req.TotalPrice,
		LandValue:        req.LandValue,
		BuildingValue:    req.BuildingValue,
		FurnitureValue:   req.FurnitureValue,
		AcquisitionCosts: req.AcquisitionCosts,
	})
}

func (s *appService) DeactivateProperty(ctx context.Context, id int) error {
	return s.store.DeactivateProperty(ctx, id)
}

func (s *appService) AddRevenue(ctx context.Context, req AddRevenueRequest) (*store.Revenue, error) {
	if req.Month < 1 || req.Month > 12 {
		return nil, fmt.Errorf("month %d out of range", req.Month)
	}
	kind := req.Kind
	if kind == "" {
		kind = string(fiscal.RevenueRent)
	}
	return s.store.CreateRevenue(ctx, &store.Revenue{
		PropertyID: req.PropertyID,
		FiscalYear: req.FiscalYear,
		Month:      req.Month,
		Amount:     req.Amount,
		Kind:       kind,
	})
}

func (s *appService) ListRevenues(ctx context.Context, propertyID, year int) ([]store.Revenue, error) {
	return s.store.ListRevenues(ctx, propertyID, year)
}

func (s *appService) DeleteRevenue(ctx context.Context, id int) error {
	return s.store.DeleteRevenue(ctx, id)
}

func (s *appService) AddExpense(ctx context.Context, req AddExpenseRequest) (*store.Expense, error) {
	pct := req.DeductiblePct
	if pct.IsZero() {
		pct = decimal.NewFromInt(100)
	}
	return s.store.CreateExpense(ctx, &store.Expense{
		PropertyID:    req.PropertyID,
		FiscalYear:    req.FiscalYear,
		Date:          req.Date,
		Amount:        req.Amount,
		DeductiblePct: pct,
		Category:      req.Category,
		Description:   req.Description,
	})
}

func (s *appService) ListExpenses(ctx context.Context, propertyID, year int) ([]store.Expense, error) {
	return s.store.ListExpenses(ctx, propertyID, year)
}

func (s *appService) DeleteExpense(ctx context.Context, id int) error {
	return s.store.DeleteExpense(ctx, id)
}

func (s *appService) AddDepreciationPlan(ctx context.Context, req AddPlanRequest) (*store.DepreciationPlan, error) {
	label, duration := req.ComponentLabel, req.DurationYears

	// Catalog fills in the label and duration when the caller omits them.
	consts, err := s.constants.Load(req.FiscalYear)
	if err != nil {
		return nil, err
	}
	if entry, ok := consts.Depreciation.Components[req.Component]; ok {
		if label == "" {
			label = entry.Label
		}
		if duration == 0 {
			duration = entry.DefaultDuration
		}
	}
	if label == "" {
		label = req.Component
	}
	if duration <= 0 {
		return nil, fmt.Errorf("component %q: no duration given and none in catalog", req.Component)
	}

	return s.store.CreatePlan(ctx, &store.DepreciationPlan{
		PropertyID:     req.PropertyID,
		FiscalYear:     req.FiscalYear,
		Component:      req.Component,
		ComponentLabel: label,
		Value:          req.Value,
		DurationYears:  duration,
		StartDate:      req.StartDate,
	})
}

func (s *appService) ListDepreciationPlans(ctx context.Context, propertyID, year int) ([]store.DepreciationPlan, error) {
	return s.store.ListPlans(ctx, propertyID, year)
}

func (s *appService) DeleteDepreciationPlan(ctx context.Context, id int) error {
	return s.store.DeletePlan(ctx, id)
}

// loadFiscalData loads everything the pipeline needs for one property/year.
func (s *appService) loadFiscalData(ctx context.Context, propertyID, year int) (*store.Property, []store.Revenue, []store.Expense, []store.DepreciationPlan, error) {
	prop, err := s.store.GetProperty(ctx, propertyID)
	if err != nil {
		return nil, nil, nil, nil, err
	}
	revenues, err := s.store.ListRevenues(ctx, propertyID, year)
	if err != nil {
		return nil, nil, nil, nil, err
	}
	expenses, err := s.store.ListExpenses(ctx, propertyID, year)
	if err != nil {
		return nil, nil, nil, nil, err
	}
	plans, err := s.store.ListPlans(ctx, propertyID, year)
	if err != nil {
		return nil, nil, nil, nil, err
	}
	return prop, revenues, expenses, plans, nil
}

// compute runs the pure pipeline without touching the database again.
func compute(prop *store.Property, year int, revenues []store.Revenue, expenses []store.Expense, plans []store.DepreciationPlan, prevCarried, prevCumul decimal.Decimal) (fiscal.FiscalSummary, fiscal.AllocationResult) {
	revRecords := store.RevenueRecords(revenues)
	expRecords := store.ExpenseRecords(expenses)
	components := store.ComponentsFor(plans, year)

	totalRevenue := decimal.Zero
	for _, r := range revRecords {
		totalRevenue = totalRevenue.Add(r.Amount)
	}
	totalExpenses := decimal.Zero
	for _, e := range expRecords {
		totalExpenses = totalExpenses.Add(e.DeductibleAmount())
	}
	resultBeforeDep := fiscal.Round2(totalRevenue).Sub(fiscal.Round2(totalExpenses))

	allocation := fiscal.Allocate(components, resultBeforeDep, prevCarried)
	summary := fiscal.Summarize(prop.ID, year, revRecords, expRecords, allocation, prop.TotalPrice, prevCumul)
	return summary, allocation
}

func (s *appService) ComputeSummary(ctx context.Context, req ComputeRequest) (*SummaryResult, error) {
	prop, revenues, expenses, plans, err := s.loadFiscalData(ctx, req.PropertyID, req.Year)
	if err != nil {
		return nil, err
	}

	summary, allocation := compute(prop, req.Year, revenues, expenses, plans,
		req.PreviousCarriedOver, req.PreviousDepreciationCumul)

	if _, err := s.store.SaveComputation(ctx, summary, allocation.Details); err != nil {
		return nil, fmt.Errorf("persisting computation: %w", err)
	}

	return &SummaryResult{Summary: summary, Details: allocation.Details}, nil
}

func (s *appService) CompareRegimes(ctx context.Context, propertyID, year int, kind fiscal.RegimeKind) (*fiscal.ComparisonResult, error) {
	prop, revenues, expenses, plans, err := s.loadFiscalData(ctx, propertyID, year)
	if err != nil {
		return nil, err
	}
	consts, err := s.constants.Load(year)
	if err != nil {
		return nil, err
	}
	if kind == "" {
		kind = fiscal.RegimeStandard
	}

	summary, _ := compute(prop, year, revenues, expenses, plans, decimal.Zero, decimal.Zero)
	result := fiscal.CompareRegimes(year, summary.TotalRevenue, summary.FiscalResult, kind, consts.MicroBICFor(kind))
	return &result, nil
}

func (s *appService) ValidateYear(ctx context.Context, propertyID, year int) (*fiscal.ValidationResult, error) {
	prop, revenues, expenses, plans, err := s.loadFiscalData(ctx, propertyID, year)
	if err != nil {
		return nil, err
	}

	summary, allocation := compute(prop, year, revenues, expenses, plans, decimal.Zero, decimal.Zero)
	hasComponents := len(plans) >= 2
	result := fiscal.ValidateSummary(summary,
		store.RevenueRecords(revenues), store.ExpenseRecords(expenses),
		allocation.Details, hasComponents)
	return &result, nil
}

func (s *appService) LockYear(ctx context.Context, propertyID, year int, locked bool) error {
	return s.store.SetYearLocked(ctx, propertyID, year, locked)
}

func (s *appService) buildLiasse(ctx context.Context, propertyID, year int) (*store.Property, liasse.Liasse, error) {
	prop, revenues, expenses, plans, err := s.loadFiscalData(ctx, propertyID, year)
	if err != nil {
		return nil, liasse.Liasse{}, err
	}
	summary, allocation := compute(prop, year, revenues, expenses, plans, decimal.Zero, decimal.Zero)
	info := liasse.PropertyInfo{Name: prop.Name, Address: prop.Address, SIRET: prop.SIRET}
	l := liasse.Build(summary, info, store.ComponentsFor(plans, year), allocation.Details)
	return prop, l, nil
}

func (s *appService) BuildLiasse(ctx context.Context, propertyID, year int) (*LiasseResult, error) {
	_, l, err := s.buildLiasse(ctx, propertyID, year)
	if err != nil {
		return nil, err
	}
	return &LiasseResult{Liasse: l}, nil
}

func (s *appService) ExportXML(ctx context.Context, propertyID, year int) ([]byte, error) {
	prop, l, err := s.buildLiasse(ctx, propertyID, year)
	if err != nil {
		return nil, err
	}
	info := liasse.PropertyInfo{Name: prop.Name, Address: prop.Address, SIRET: prop.SIRET}
	return liasse.EncodeXML(l, info)
}

func (s *appService) ExportFormPDF(ctx context.Context, propertyID, year int, formID string) ([]byte, error) {
	prop, l, err := s.buildLiasse(ctx, propertyID, year)
	if err != nil {
		return nil, err
	}
	if formID == "summary" {
		info := liasse.PropertyInfo{Name: prop.Name, Address: prop.Address, SIRET: prop.SIRET}
		return liasse.RenderSummarySheetPDF(info, l, prop.AcquisitionDate, prop.TotalPrice)
	}
	return liasse.RenderFormPDF(l, formID)
}

func (s *appService) ExportBundle(ctx context.Context, propertyID, year int) ([]byte, error) {
	prop, l, err := s.buildLiasse(ctx, propertyID, year)
	if err != nil {
		return nil, err
	}
	info := liasse.PropertyInfo{Name: prop.Name, Address: prop.Address, SIRET: prop.SIRET}
	return liasse.RenderBundle(l, info, prop.AcquisitionDate, prop.TotalPrice)
}

func (s *appService) ComponentCatalog(year int) (map[string]constants.Component, error) {
	consts, err := s.constants.Load(year)
	if err != nil {
		return nil, err
	}
	return consts.Depreciation.Components, nil
}

func (s *appService) ExpenseCategories(year int) (map[string]string, error) {
	consts, err := s.constants.Load(year)
	if err != nil {
		return nil, err
	}
	return consts.ExpenseCategories, nil
}

func (s *appService) AskAssistant(ctx context.Context, question string, fiscalContext map[string]any) (*ai.Response, error) {
	if s.assistant == nil {
		return nil, ErrAssistantUnavailable
	}
	return s.assistant.Ask(ctx, question, fiscalContext)
}

func (s *appService) FAQ() []ai.FAQEntry {
	return ai.FAQ()
}
