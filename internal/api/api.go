package api

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"stablefi/pkg/stablefi"
)

// NewRouter builds the HTTP API router.
func NewRouter(core *stablefi.Core) http.Handler {
	return NewRouterWithLogger(core, slog.Default())
}

// NewRouterWithLogger builds the HTTP API router with an explicit logger.
func NewRouterWithLogger(core *stablefi.Core, logger *slog.Logger) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(requestLoggingMiddleware(logger))
	r.Use(recoveryLoggingMiddleware(logger))
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: true,
	}))

	h := &handler{core: core, logger: logger}

	r.Get("/api/health", h.health)

	// Dashboard
	r.Get("/api/dashboard/summary", h.getDashboardSummary)
	r.Get("/api/dashboard/breakdown", h.getDashboardBreakdown)
	r.Get("/api/dashboard/trend", h.getDashboardTrend)

	// Wallets & holdings
	r.Get("/api/wallets", h.getWallets)
	r.Post("/api/wallets", h.connectWallet)
	r.Post("/api/wallets/manual", h.addManualWallet)
	r.Delete("/api/wallets/{id}", h.removeWallet)
	r.Get("/api/holdings", h.getHoldings)

	// Product catalog
	r.Get("/api/products", h.getProducts)
	r.Get("/api/products/{id}", h.getProduct)
	r.Post("/api/products/{id}/favorite", h.toggleFavorite)
	r.Get("/api/favorites", h.getFavorites)

	// Categories
	r.Get("/api/categories", h.getCategories)

	// Onboarding & preferences
	r.Get("/api/onboarding", h.getOnboarding)
	r.Post("/api/onboarding", h.setOnboarding)
	r.Get("/api/preferences/language", h.getLanguage)
	r.Put("/api/preferences/language", h.setLanguage)

	// Assistant
	r.Post("/api/assistant/messages", h.postAssistantMessage)
	r.Get("/api/assistant/quick-replies", h.getQuickReplies)
	r.Get("/api/assistant/settings", h.getAssistantSettings)
	r.Put("/api/assistant/settings", h.setAssistantSettings)
	r.Get("/api/assistant/ws", h.assistantWebsocket)

	// Account opening
	r.Get("/api/account-opening/checklist", h.getOpeningChecklist)
	r.Get("/api/account-opening/applications", h.getApplications)
	r.Post("/api/account-opening/applications", h.createApplication)
	r.Get("/api/account-opening/applications/{id}", h.getApplication)
	r.Put("/api/account-opening/applications/{id}", h.updateApplication)

	// Activity logs
	r.Get("/api/activity-logs", h.getActivityLogs)

	return r
}

type handler struct {
	core   *stablefi.Core
	logger *slog.Logger
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

func writeError(w http.ResponseWriter, status int, message string) {
	setErrorMessage(w, message)
	writeJSON(w, status, map[string]string{"error": message})
}

// setErrorMessage records the error on the logging response writer so the
// request log carries it.
func setErrorMessage(w http.ResponseWriter, message string) {
	if setter, ok := w.(interface{ SetErrorMessage(string) }); ok {
		setter.SetErrorMessage(message)
	}
}
