package httpapi

import "net/http"

func registerSystemRoutes(mux *http.ServeMux, handler *Handler, swaggerEnabled bool) {
	mux.HandleFunc("GET /healthz", handler.Healthz)
	if !swaggerEnabled {
		return
	}

	mux.HandleFunc("GET /openapi.yaml", handler.OpenAPI)
	mux.HandleFunc("GET /docs", handler.SwaggerUI)
	mux.HandleFunc("GET /docs/", handler.SwaggerUI)
}

func registerReconcileRoutes(mux *http.ServeMux, handler *Handler) {
	mux.HandleFunc("POST /v1/reconcile", handler.Reconcile)
	// Reconciles the configured dataset for one competition season.
	mux.HandleFunc("GET /v1/competitions/{code}/seasons/{season}/reconcile", handler.ReconcileCompetition)
}
