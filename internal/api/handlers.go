package api

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"stablefi/pkg/stablefi"
)

func (h *handler) health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (h *handler) getDashboardSummary(w http.ResponseWriter, r *http.Request) {
	summary, err := h.core.GetDashboardSummary(r.URL.Query().Get("wallet_id"))
	if err != nil {
		writeErrorResponse(w, http.StatusInternalServerError, err)
		return
	}
	writeJSON(w, http.StatusOK, summary)
}

func (h *handler) getDashboardBreakdown(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	by := query.Get("by")
	if by == "" {
		by = "category"
	}
	entries, err := h.core.GetBreakdown(by, query.Get("wallet_id"))
	if err != nil {
		writeErrorResponse(w, http.StatusInternalServerError, err)
		return
	}
	writeJSON(w, http.StatusOK, entries)
}

func (h *handler) getDashboardTrend(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	view := query.Get("view")
	if view == "" {
		view = "category"
	}
	result, err := h.core.BuildTrend(stablefi.TrendQuery{
		View:     stablefi.TrendView(view),
		Days:     parseIntDefault(query.Get("days"), 30),
		WalletID: query.Get("wallet_id"),
	})
	if err != nil {
		writeErrorResponse(w, http.StatusInternalServerError, err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}

func (h *handler) getWallets(w http.ResponseWriter, r *http.Request) {
	wallets, err := h.core.GetWallets()
	if err != nil {
		writeErrorResponse(w, http.StatusInternalServerError, err)
		return
	}
	writeJSON(w, http.StatusOK, wallets)
}

func (h *handler) connectWallet(w http.ResponseWriter, r *http.Request) {
	var payload connectWalletPayload
	if err := decodeJSON(r, &payload); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	wallet, err := h.core.ConnectWallet(stablefi.ConnectWalletRequest{
		Name:     payload.Name,
		Address:  payload.Address,
		Kind:     payload.Kind,
		Chains:   payload.Chains,
		Platform: payload.Platform,
	})
	if err != nil {
		writeErrorResponse(w, http.StatusBadRequest, err)
		return
	}
	writeJSON(w, http.StatusOK, wallet)
}

func (h *handler) addManualWallet(w http.ResponseWriter, r *http.Request) {
	var payload manualWalletPayload
	if err := decodeJSON(r, &payload); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	wallet, err := h.core.AddManualWallet(payload.Name, payload.Address, stablefi.ManualAssetInput{
		Token:         payload.Token,
		Category:      stablefi.Category(payload.Category),
		Quantity:      payload.Quantity,
		PurchasePrice: payload.PurchasePrice,
		PurchaseTime:  payload.PurchaseTime,
	})
	if err != nil {
		writeErrorResponse(w, http.StatusBadRequest, err)
		return
	}
	writeJSON(w, http.StatusOK, wallet)
}

func (h *handler) removeWallet(w http.ResponseWriter, r *http.Request) {
	if err := h.core.RemoveWallet(chi.URLParam(r, "id")); err != nil {
		writeErrorResponse(w, http.StatusBadRequest, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]bool{"removed": true})
}

func (h *handler) getHoldings(w http.ResponseWriter, r *http.Request) {
	holdings, err := h.core.GetHoldings(r.URL.Query().Get("wallet_id"))
	if err != nil {
		writeErrorResponse(w, http.StatusInternalServerError, err)
		return
	}
	writeJSON(w, http.StatusOK, holdings)
}

func (h *handler) getProducts(w http.ResponseWriter, r *http.Request) {
	products, err := h.core.GetProducts()
	if err != nil {
		writeErrorResponse(w, http.StatusInternalServerError, err)
		return
	}
	writeJSON(w, http.StatusOK, products)
}

func (h *handler) getProduct(w http.ResponseWriter, r *http.Request) {
	product, err := h.core.GetProduct(chi.URLParam(r, "id"))
	if err != nil {
		writeErrorResponse(w, http.StatusNotFound, err)
		return
	}
	writeJSON(w, http.StatusOK, product)
}

func (h *handler) toggleFavorite(w http.ResponseWriter, r *http.Request) {
	favorite, err := h.core.ToggleFavorite(chi.URLParam(r, "id"))
	if err != nil {
		writeErrorResponse(w, http.StatusBadRequest, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]bool{"favorite": favorite})
}

func (h *handler) getFavorites(w http.ResponseWriter, r *http.Request) {
	ids, err := h.core.GetFavorites()
	if err != nil {
		writeErrorResponse(w, http.StatusInternalServerError, err)
		return
	}
	if ids == nil {
		ids = []string{}
	}
	writeJSON(w, http.StatusOK, ids)
}

func (h *handler) getCategories(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, stablefi.Categories())
}

func (h *handler) getOnboarding(w http.ResponseWriter, r *http.Request) {
	profile, err := h.core.GetInstitutionProfile()
	if err != nil {
		writeErrorResponse(w, http.StatusInternalServerError, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"onboarded": profile != nil,
		"profile":   profile,
	})
}

func (h *handler) setOnboarding(w http.ResponseWriter, r *http.Request) {
	var payload onboardingPayload
	if err := decodeJSON(r, &payload); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	err := h.core.SaveInstitutionProfile(stablefi.InstitutionProfile{
		CompanyName:        payload.CompanyName,
		ExpectedInvestment: payload.ExpectedInvestment,
		ExpectedYield:      payload.ExpectedYield,
		InvestmentPeriod:   payload.InvestmentPeriod,
		HasOwnWallet:       payload.HasOwnWallet,
		WalletPlatform:     payload.WalletPlatform,
	})
	if err != nil {
		writeErrorResponse(w, http.StatusBadRequest, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]bool{"onboarded": true})
}

func (h *handler) getLanguage(w http.ResponseWriter, r *http.Request) {
	lang, err := h.core.GetLanguage()
	if err != nil {
		writeErrorResponse(w, http.StatusInternalServerError, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"language": lang})
}

func (h *handler) setLanguage(w http.ResponseWriter, r *http.Request) {
	var payload languagePayload
	if err := decodeJSON(r, &payload); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if err := h.core.SetLanguage(payload.Language); err != nil {
		writeErrorResponse(w, http.StatusBadRequest, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"language": payload.Language})
}

func (h *handler) postAssistantMessage(w http.ResponseWriter, r *http.Request) {
	var payload assistantMessagePayload
	if err := decodeJSON(r, &payload); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	lang := h.resolveLanguage(payload.Language)
	reply, err := h.core.Reply(r.Context(), payload.Message, lang)
	if err != nil {
		writeErrorResponse(w, http.StatusBadRequest, err)
		return
	}
	writeJSON(w, http.StatusOK, stablefi.AssistantMessage{Role: "assistant", Content: reply})
}

func (h *handler) getQuickReplies(w http.ResponseWriter, r *http.Request) {
	lang := h.resolveLanguage(r.URL.Query().Get("language"))
	writeJSON(w, http.StatusOK, map[string]any{
		"greeting":      stablefi.AssistantGreeting(lang),
		"quick_replies": stablefi.QuickReplies(lang),
	})
}

func (h *handler) getAssistantSettings(w http.ResponseWriter, r *http.Request) {
	settings, err := h.core.GetAssistantSettings()
	if err != nil {
		writeErrorResponse(w, http.StatusInternalServerError, err)
		return
	}
	writeJSON(w, http.StatusOK, settings)
}

func (h *handler) setAssistantSettings(w http.ResponseWriter, r *http.Request) {
	var payload assistantSettingsPayload
	if err := decodeJSON(r, &payload); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	err := h.core.SetAssistantSettings(stablefi.AssistantSettings{
		Provider: payload.Provider,
		BaseURL:  payload.BaseURL,
		Model:    payload.Model,
	}, payload.APIKey)
	if err != nil {
		writeErrorResponse(w, http.StatusBadRequest, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]bool{"saved": true})
}

func (h *handler) getOpeningChecklist(w http.ResponseWriter, r *http.Request) {
	steps, documents := stablefi.OpeningChecklist()
	writeJSON(w, http.StatusOK, map[string]any{
		"steps":     steps,
		"documents": documents,
	})
}

func (h *handler) getApplications(w http.ResponseWriter, r *http.Request) {
	apps, err := h.core.GetApplications()
	if err != nil {
		writeErrorResponse(w, http.StatusInternalServerError, err)
		return
	}
	writeJSON(w, http.StatusOK, apps)
}

func (h *handler) createApplication(w http.ResponseWriter, r *http.Request) {
	var payload applicationPayload
	if err := decodeJSON(r, &payload); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	app, err := h.core.CreateApplication(payload.ProductID, payload.CompanyName)
	if err != nil {
		writeErrorResponse(w, http.StatusBadRequest, err)
		return
	}
	writeJSON(w, http.StatusOK, app)
}

func (h *handler) getApplication(w http.ResponseWriter, r *http.Request) {
	app, err := h.core.GetApplication(chi.URLParam(r, "id"))
	if err != nil {
		writeErrorResponse(w, http.StatusNotFound, err)
		return
	}
	writeJSON(w, http.StatusOK, app)
}

func (h *handler) updateApplication(w http.ResponseWriter, r *http.Request) {
	var payload applicationUpdatePayload
	if err := decodeJSON(r, &payload); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	app, err := h.core.UpdateApplication(chi.URLParam(r, "id"), payload.Step, payload.CheckedDocs)
	if err != nil {
		writeErrorResponse(w, http.StatusBadRequest, err)
		return
	}
	writeJSON(w, http.StatusOK, app)
}

func (h *handler) getActivityLogs(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	logs, err := h.core.GetActivityLogs(parseIntDefault(query.Get("limit"), 50), parseIntDefault(query.Get("offset"), 0))
	if err != nil {
		writeErrorResponse(w, http.StatusInternalServerError, err)
		return
	}
	writeJSON(w, http.StatusOK, logs)
}

// resolveLanguage prefers the request's language and falls back to the
// stored preference.
func (h *handler) resolveLanguage(lang string) string {
	if lang != "" {
		return lang
	}
	stored, err := h.core.GetLanguage()
	if err != nil {
		return "zh"
	}
	return stored
}

func decodeJSON(r *http.Request, dst any) error {
	defer r.Body.Close()
	return json.NewDecoder(r.Body).Decode(dst)
}

func parseIntDefault(value string, fallback int) int {
	if value == "" {
		return fallback
	}
	parsed, err := strconv.Atoi(value)
	if err != nil {
		return fallback
	}
	return parsed
}
