package web

import (
	"fmt"
	"net/http"

	"github.com/shopspring/decimal"

	"lmnp-ledger/internal/app"
	"lmnp-ledger/internal/fiscal"

	"github.com/go-chi/chi/v5"
)

// knownForms lists the exportable PDF identifiers, "summary" being the fiche
// récapitulative rather than an official CERFA form.
var knownForms = map[string]bool{
	"2031": true, "2033-A": true, "2033-B": true, "2033-C": true,
	"2033-D": true, "2033-E": true, "2033-F": true, "2033-G": true,
	"summary": true,
}

func (h *Handler) computeSummary(w http.ResponseWriter, r *http.Request) {
	propertyID, year, ok := propertyYear(w, r)
	if !ok {
		return
	}
	// Body is optional; carry-over fields default to zero.
	var payload struct {
		PreviousCarriedOver       decimal.Decimal `json:"previous_carried_over"`
		PreviousDepreciationCumul decimal.Decimal `json:"previous_depreciation_cumul"`
	}
	if r.ContentLength > 0 && !decodeJSON(w, r, &payload) {
		return
	}

	result, err := h.svc.ComputeSummary(r.Context(), app.ComputeRequest{
		PropertyID:                propertyID,
		Year:                      year,
		PreviousCarriedOver:       payload.PreviousCarriedOver,
		PreviousDepreciationCumul: payload.PreviousDepreciationCumul,
	})
	if err != nil {
		writeDomainError(w, r, err)
		return
	}
	writeJSON(w, result)
}

func (h *Handler) compareRegimes(w http.ResponseWriter, r *http.Request) {
	propertyID, year, ok := propertyYear(w, r)
	if !ok {
		return
	}
	kind := fiscal.RegimeKind(r.URL.Query().Get("regime_type"))
	switch kind {
	case "", fiscal.RegimeStandard, fiscal.RegimeTourismClassified, fiscal.RegimeTourismUnclassified:
	default:
		writeError(w, r, "unknown regime_type", "BAD_REQUEST", http.StatusBadRequest)
		return
	}

	result, err := h.svc.CompareRegimes(r.Context(), propertyID, year, kind)
	if err != nil {
		writeDomainError(w, r, err)
		return
	}
	writeJSON(w, result)
}

func (h *Handler) validateYear(w http.ResponseWriter, r *http.Request) {
	propertyID, year, ok := propertyYear(w, r)
	if !ok {
		return
	}
	result, err := h.svc.ValidateYear(r.Context(), propertyID, year)
	if err != nil {
		writeDomainError(w, r, err)
		return
	}

	type response struct {
		HasErrors bool                     `json:"has_errors"`
		Issues    []fiscal.ValidationIssue `json:"issues"`
	}
	writeJSON(w, response{HasErrors: result.HasErrors(), Issues: result.Issues})
}

func (h *Handler) lockYear(w http.ResponseWriter, r *http.Request) {
	propertyID, year, ok := propertyYear(w, r)
	if !ok {
		return
	}
	var payload struct {
		Locked bool `json:"locked"`
	}
	if !decodeJSON(w, r, &payload) {
		return
	}
	if err := h.svc.LockYear(r.Context(), propertyID, year, payload.Locked); err != nil {
		writeDomainError(w, r, err)
		return
	}
	writeJSON(w, map[string]bool{"locked": payload.Locked})
}

func (h *Handler) getLiasse(w http.ResponseWriter, r *http.Request) {
	propertyID, year, ok := propertyYear(w, r)
	if !ok {
		return
	}
	result, err := h.svc.BuildLiasse(r.Context(), propertyID, year)
	if err != nil {
		writeDomainError(w, r, err)
		return
	}
	writeJSON(w, result.Liasse)
}

func (h *Handler) exportXML(w http.ResponseWriter, r *http.Request) {
	propertyID, year, ok := propertyYear(w, r)
	if !ok {
		return
	}
	data, err := h.svc.ExportXML(r.Context(), propertyID, year)
	if err != nil {
		writeDomainError(w, r, err)
		return
	}
	w.Header().Set("Content-Type", "application/xml")
	w.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="LMNP_%d_liasse.xml"`, year))
	_, _ = w.Write(data)
}

func (h *Handler) exportPDF(w http.ResponseWriter, r *http.Request) {
	propertyID, year, ok := propertyYear(w, r)
	if !ok {
		return
	}
	formID := chi.URLParam(r, "form")
	if !knownForms[formID] {
		writeError(w, r, fmt.Sprintf("formulaire %s non supporté", formID), "NOT_FOUND", http.StatusNotFound)
		return
	}
	data, err := h.svc.ExportFormPDF(r.Context(), propertyID, year, formID)
	if err != nil {
		writeDomainError(w, r, err)
		return
	}
	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="LMNP_%d_%s.pdf"`, year, formID))
	_, _ = w.Write(data)
}

func (h *Handler) exportZip(w http.ResponseWriter, r *http.Request) {
	propertyID, year, ok := propertyYear(w, r)
	if !ok {
		return
	}
	data, err := h.svc.ExportBundle(r.Context(), propertyID, year)
	if err != nil {
		writeDomainError(w, r, err)
		return
	}
	w.Header().Set("Content-Type", "application/zip")
	w.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="LMNP_%d_liasse_complete.zip"`, year))
	_, _ = w.Write(data)
}

func (h *Handler) componentCatalog(w http.ResponseWriter, r *http.Request) {
	year, ok := pathInt(w, r, "year")
	if !ok {
		return
	}
	catalog, err := h.svc.ComponentCatalog(year)
	if err != nil {
		writeDomainError(w, r, err)
		return
	}
	writeJSON(w, catalog)
}

func (h *Handler) expenseCategories(w http.ResponseWriter, r *http.Request) {
	year, ok := pathInt(w, r, "year")
	if !ok {
		return
	}
	categories, err := h.svc.ExpenseCategories(year)
	if err != nil {
		writeDomainError(w, r, err)
		return
	}
	writeJSON(w, categories)
}
