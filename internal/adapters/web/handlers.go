package web

import (
	"net/http"
	"strconv"

	"lmnp-ledger/internal/app"

	"github.com/go-chi/chi/v5"
)

// Handler holds the ApplicationService and the chi router.
type Handler struct {
	svc         app.ApplicationService
	jwtSecret   string
	appPassword string
}

// NewHandler creates and wires the chi router with all routes.
func NewHandler(svc app.ApplicationService, allowedOrigins, jwtSecret, appPassword string) http.Handler {
	h := &Handler{svc: svc, jwtSecret: jwtSecret, appPassword: appPassword}

	r := chi.NewRouter()
	r.Use(RequestID)
	r.Use(Logger)
	r.Use(Recoverer)
	r.Use(CORS(allowedOrigins))

	// Health and auth are public.
	r.Get("/api/health", h.health)
	r.Post("/api/auth/login", h.login)
	r.Post("/api/auth/logout", h.logout)

	r.Group(func(r chi.Router) {
		r.Use(h.RequireAuth)
		r.Use(RequestBodyLimit(1 << 20)) // 1 MB

		// Properties
		r.Get("/api/properties", h.listProperties)
		r.Post("/api/properties", h.createProperty)
		r.Get("/api/properties/{id}", h.getProperty)
		r.Put("/api/properties/{id}", h.updateProperty)
		r.Delete("/api/properties/{id}", h.deactivateProperty)

		// Revenues / expenses / depreciation plans
		r.Get("/api/properties/{id}/revenues/{year}", h.listRevenues)
		r.Post("/api/properties/{id}/revenues", h.addRevenue)
		r.Delete("/api/revenues/{id}", h.deleteRevenue)
		r.Get("/api/properties/{id}/expenses/{year}", h.listExpenses)
		r.Post("/api/properties/{id}/expenses", h.addExpense)
		r.Delete("/api/expenses/{id}", h.deleteExpense)
		r.Get("/api/properties/{id}/depreciation/{year}", h.listPlans)
		r.Post("/api/properties/{id}/depreciation", h.addPlan)
		r.Delete("/api/depreciation/{id}", h.deletePlan)

		// Fiscal pipeline
		r.Post("/api/fiscal/{id}/{year}/summary", h.computeSummary)
		r.Get("/api/fiscal/{id}/{year}/compare", h.compareRegimes)
		r.Get("/api/fiscal/{id}/{year}/validate", h.validateYear)
		r.Post("/api/fiscal/{id}/{year}/lock", h.lockYear)
		r.Get("/api/fiscal/{id}/{year}/liasse", h.getLiasse)
		r.Get("/api/fiscal/{id}/{year}/export/xml", h.exportXML)
		r.Get("/api/fiscal/{id}/{year}/export/pdf/{form}", h.exportPDF)
		r.Get("/api/fiscal/{id}/{year}/export/zip", h.exportZip)

		// Reference data
		r.Get("/api/constants/{year}/components", h.componentCatalog)
		r.Get("/api/constants/{year}/expense-categories", h.expenseCategories)

		// Assistant
		r.Post("/api/assistant/ask", h.askAssistant)
		r.Get("/api/assistant/faq", h.faq)
	})

	return r
}

// health returns service status.
func (h *Handler) health(w http.ResponseWriter, r *http.Request) {
	type response struct {
		Status string `json:"status"`
	}
	writeJSON(w, response{Status: "ok"})
}

// pathInt extracts a numeric URL parameter; writes 400 and returns false on
// a non-numeric value.
func pathInt(w http.ResponseWriter, r *http.Request, name string) (int, bool) {
	v, err := strconv.Atoi(chi.URLParam(r, name))
	if err != nil {
		writeError(w, r, "invalid "+name+" parameter", "BAD_REQUEST", http.StatusBadRequest)
		return 0, false
	}
	return v, true
}

// propertyYear extracts the {id} and {year} URL parameters.
func propertyYear(w http.ResponseWriter, r *http.Request) (propertyID, year int, ok bool) {
	propertyID, ok = pathInt(w, r, "id")
	if !ok {
		return 0, 0, false
	}
	year, ok = pathInt(w, r, "year")
	if !ok {
		return 0, 0, false
	}
	return propertyID, year, true
}
