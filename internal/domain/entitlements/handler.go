package entitlements

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
)

func RegisterRoutes(r chi.Router, svc *Service) {
	r.Route("/entitlements", func(er chi.Router) {
		er.Get("/", getStatusHandler(svc))
		er.Post("/refresh", refreshHandler(svc))
		er.Post("/redeem", redeemHandler(svc))
		er.Put("/override", overrideHandler(svc))
	})
}

type limitsResponse struct {
	MaxPets      int `json:"max_pets"`
	MaxCareItems int `json:"max_care_items"`
	MaxReminders int `json:"max_reminders"`
}

// statusResponse describe el estado premium y los techos del tier gratuito.
type statusResponse struct {
	Premium    bool           `json:"premium"`
	Source     Source         `json:"source"`
	CheckedAt  *time.Time     `json:"checked_at,omitempty"`
	FreeLimits limitsResponse `json:"free_limits"`
}

type redeemRequest struct {
	Code string `json:"code"`
}

type overrideRequest struct {
	Enabled bool `json:"enabled"`
}

// getStatusHandler godoc
// @Summary Estado premium
// @Tags entitlements
// @Produce json
// @Success 200 {object} statusResponse
// @Router /entitlements [get]
func getStatusHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, toStatusResponse(svc.Status(), svc.Limits()))
	}
}

// refreshHandler godoc
// @Summary Restaurar compras
// @Description Vuelve a consultar al proveedor de compras. Si falla, se conserva el estado anterior.
// @Tags entitlements
// @Produce json
// @Success 200 {object} statusResponse
// @Failure 502 {string} string "purchase provider unavailable"
// @Router /entitlements/refresh [post]
func refreshHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		st, err := svc.Refresh(r.Context())
		if err != nil {
			if errors.Is(err, ErrNoResolver) {
				http.Error(w, "purchase provider not configured", http.StatusServiceUnavailable)
				return
			}
			http.Error(w, "purchase provider unavailable", http.StatusBadGateway)
			return
		}
		writeJSON(w, http.StatusOK, toStatusResponse(st, svc.Limits()))
	}
}

// redeemHandler godoc
// @Summary Canjear cupón
// @Tags entitlements
// @Accept json
// @Produce json
// @Param payload body redeemRequest true "Código de cupón"
// @Success 200 {object} statusResponse
// @Failure 400 {string} string "invalid coupon code"
// @Router /entitlements/redeem [post]
func redeemHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req redeemRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}

		st, err := svc.Redeem(r.Context(), req.Code)
		if err != nil {
			if errors.Is(err, ErrInvalidCoupon) {
				http.Error(w, err.Error(), http.StatusBadRequest)
				return
			}
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}
		writeJSON(w, http.StatusOK, toStatusResponse(st, svc.Limits()))
	}
}

// overrideHandler es tooling de desarrollo: fuerza premium sin compra.
func overrideHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req overrideRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}
		writeJSON(w, http.StatusOK, toStatusResponse(svc.SetAdminOverride(req.Enabled), svc.Limits()))
	}
}

func toStatusResponse(st Status, l Limits) statusResponse {
	return statusResponse{
		Premium:   st.Premium,
		Source:    st.Source,
		CheckedAt: st.CheckedAt,
		FreeLimits: limitsResponse{
			MaxPets:      l.MaxPets,
			MaxCareItems: l.MaxCareItems,
			MaxReminders: l.MaxReminders,
		},
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
