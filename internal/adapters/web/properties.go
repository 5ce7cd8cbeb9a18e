package web

import (
	"net/http"
	"time"

	"github.com/shopspring/decimal"

	"lmnp-ledger/internal/app"
)

// propertyPayload is the JSON body for creating or updating a property.
type propertyPayload struct {
	Name             string          `json:"name"`
	Address          string          `json:"address"`
	SIRET            string          `json:"siret"`
	AcquisitionDate  string          `json:"acquisition_date"` // YYYY-MM-DD
	TotalPrice       decimal.Decimal `json:"total_price"`
	LandValue        decimal.Decimal `json:"land_value"`
	BuildingValue    decimal.Decimal `json:"building_value"`
	FurnitureValue   decimal.Decimal `json:"furniture_value"`
	AcquisitionCosts decimal.Decimal `json:"acquisition_costs"`
}

func (p propertyPayload) toRequest(w http.ResponseWriter, r *http.Request) (app.CreatePropertyRequest, bool) {
	if p.Name == "" {
		writeError(w, r, "name is required", "BAD_REQUEST", http.StatusBadRequest)
		return app.CreatePropertyRequest{}, false
	}
	acquired, err := time.Parse("2006-01-02", p.AcquisitionDate)
	if err != nil {
		writeError(w, r, "acquisition_date must be YYYY-MM-DD", "BAD_REQUEST", http.StatusBadRequest)
		return app.CreatePropertyRequest{}, false
	}
	return app.CreatePropertyRequest{
		Name:             p.Name,
		Address:          p.Address,
		SIRET:            p.SIRET,
		AcquisitionDate:  acquired,
		TotalPrice:       p.TotalPrice,
		LandValue:        p.LandValue,
		BuildingValue:    p.BuildingValue,
		FurnitureValue:   p.FurnitureValue,
		AcquisitionCosts: p.AcquisitionCosts,
	}, true
}

func (h *Handler) createProperty(w http.ResponseWriter, r *http.Request) {
	var payload propertyPayload
	if !decodeJSON(w, r, &payload) {
		return
	}
	req, ok := payload.toRequest(w, r)
	if !ok {
		return
	}
	prop, err := h.svc.CreateProperty(r.Context(), req)
	if err != nil {
		writeDomainError(w, r, err)
		return
	}
	writeJSONStatus(w, http.StatusCreated, prop)
}

func (h *Handler) getProperty(w http.ResponseWriter, r *http.Request) {
	id, ok := pathInt(w, r, "id")
	if !ok {
		return
	}
	prop, err := h.svc.GetProperty(r.Context(), id)
	if err != nil {
		writeDomainError(w, r, err)
		return
	}
	writeJSON(w, prop)
}

func (h *Handler) listProperties(w http.ResponseWriter, r *http.Request) {
	props, err := h.svc.ListProperties(r.Context())
	if err != nil {
		writeDomainError(w, r, err)
		return
	}
	writeJSON(w, props)
}

func (h *Handler) updateProperty(w http.ResponseWriter, r *http.Request) {
	id, ok := pathInt(w, r, "id")
	if !ok {
		return
	}
	var payload propertyPayload
	if !decodeJSON(w, r, &payload) {
		return
	}
	req, ok := payload.toRequest(w, r)
	if !ok {
		return
	}
	prop, err := h.svc.UpdateProperty(r.Context(), id, req)
	if err != nil {
		writeDomainError(w, r, err)
		return
	}
	writeJSON(w, prop)
}

func (h *Handler) deactivateProperty(w http.ResponseWriter, r *http.Request) {
	id, ok := pathInt(w, r, "id")
	if !ok {
		return
	}
	if err := h.svc.DeactivateProperty(r.Context(), id); err != nil {
		writeDomainError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
