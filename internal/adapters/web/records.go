package web

import (
	"net/http"
	"time"

	"github.com/shopspring/decimal"

	"lmnp-ledger/internal/app"
)

func (h *Handler) addRevenue(w http.ResponseWriter, r *http.Request) {
	propertyID, ok := pathInt(w, r, "id")
	if !ok {
		return
	}
	var payload struct {
		FiscalYear int             `json:"fiscal_year"`
		Month      int             `json:"month"`
		Amount     decimal.Decimal `json:"amount"`
		Kind       string          `json:"kind"`
	}
	if !decodeJSON(w, r, &payload) {
		return
	}
	rev, err := h.svc.AddRevenue(r.Context(), app.AddRevenueRequest{
		PropertyID: propertyID,
		FiscalYear: payload.FiscalYear,
		Month:      payload.Month,
		Amount:     payload.Amount,
		Kind:       payload.Kind,
	})
	if err != nil {
		writeDomainError(w, r, err)
		return
	}
	writeJSONStatus(w, http.StatusCreated, rev)
}

func (h *Handler) listRevenues(w http.ResponseWriter, r *http.Request) {
	propertyID, year, ok := propertyYear(w, r)
	if !ok {
		return
	}
	revenues, err := h.svc.ListRevenues(r.Context(), propertyID, year)
	if err != nil {
		writeDomainError(w, r, err)
		return
	}
	writeJSON(w, revenues)
}

func (h *Handler) deleteRevenue(w http.ResponseWriter, r *http.Request) {
	id, ok := pathInt(w, r, "id")
	if !ok {
		return
	}
	if err := h.svc.DeleteRevenue(r.Context(), id); err != nil {
		writeDomainError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) addExpense(w http.ResponseWriter, r *http.Request) {
	propertyID, ok := pathInt(w, r, "id")
	if !ok {
		return
	}
	var payload struct {
		FiscalYear    int             `json:"fiscal_year"`
		Date          string          `json:"date"` // YYYY-MM-DD
		Amount        decimal.Decimal `json:"amount"`
		DeductiblePct decimal.Decimal `json:"deductible_pct"`
		Category      string          `json:"category"`
		Description   string          `json:"description"`
	}
	if !decodeJSON(w, r, &payload) {
		return
	}
	date, err := time.Parse("2006-01-02", payload.Date)
	if err != nil {
		writeError(w, r, "date must be YYYY-MM-DD", "BAD_REQUEST", http.StatusBadRequest)
		return
	}
	exp, err := h.svc.AddExpense(r.Context(), app.AddExpenseRequest{
		PropertyID:    propertyID,
		FiscalYear:    payload.FiscalYear,
		Date:          date,
		Amount:        payload.Amount,
		DeductiblePct: payload.DeductiblePct,
		Category:      payload.Category,
		Description:   payload.Description,
	})
	if err != nil {
		writeDomainError(w, r, err)
		return
	}
	writeJSONStatus(w, http.StatusCreated, exp)
}

func (h *Handler) listExpenses(w http.ResponseWriter, r *http.Request) {
	propertyID, year, ok := propertyYear(w, r)
	if !ok {
		return
	}
	expenses, err := h.svc.ListExpenses(r.Context(), propertyID, year)
	if err != nil {
		writeDomainError(w, r, err)
		return
	}
	writeJSON(w, expenses)
}

func (h *Handler) deleteExpense(w http.ResponseWriter, r *http.Request) {
	id, ok := pathInt(w, r, "id")
	if !ok {
		return
	}
	if err := h.svc.DeleteExpense(r.Context(), id); err != nil {
		writeDomainError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) addPlan(w http.ResponseWriter, r *http.Request) {
	propertyID, ok := pathInt(w, r, "id")
	if !ok {
		return
	}
	var payload struct {
		FiscalYear     int             `json:"fiscal_year"`
		Component      string          `json:"component"`
		ComponentLabel string          `json:"component_label"`
		Value          decimal.Decimal `json:"value"`
		DurationYears  int             `json:"duration_years"`
		StartDate      string          `json:"start_date"` // YYYY-MM-DD
	}
	if !decodeJSON(w, r, &payload) {
		return
	}
	start, err := time.Parse("2006-01-02", payload.StartDate)
	if err != nil {
		writeError(w, r, "start_date must be YYYY-MM-DD", "BAD_REQUEST", http.StatusBadRequest)
		return
	}
	plan, err := h.svc.AddDepreciationPlan(r.Context(), app.AddPlanRequest{
		PropertyID:     propertyID,
		FiscalYear:     payload.FiscalYear,
		Component:      payload.Component,
		ComponentLabel: payload.ComponentLabel,
		Value:          payload.Value,
		DurationYears:  payload.DurationYears,
		StartDate:      start,
	})
	if err != nil {
		writeDomainError(w, r, err)
		return
	}
	writeJSONStatus(w, http.StatusCreated, plan)
}

func (h *Handler) listPlans(w http.ResponseWriter, r *http.Request) {
	propertyID, year, ok := propertyYear(w, r)
	if !ok {
		return
	}
	plans, err := h.svc.ListDepreciationPlans(r.Context(), propertyID, year)
	if err != nil {
		writeDomainError(w, r, err)
		return
	}
	writeJSON(w, plans)
}

func (h *Handler) deletePlan(w http.ResponseWriter, r *http.Request) {
	id, ok := pathInt(w, r, "id")
	if !ok {
		return
	}
	if err := h.svc.DeleteDepreciationPlan(r.Context(), id); err != nil {
		writeDomainError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
