package tracker

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"petcare-tracker/internal/domain/care"
	"petcare-tracker/internal/domain/pets"
	"petcare-tracker/internal/domain/reminders"

	"github.com/go-chi/chi/v5"
)

const dateLayout = "2006-01-02"

// RegisterRoutes monta todas las rutas del core sobre r.
func RegisterRoutes(r chi.Router, s *Store) {
	r.Post("/refresh", refreshHandler(s))

	r.Route("/pets", func(pr chi.Router) {
		pr.Get("/", listPetsHandler(s))
		pr.Post("/", createPetHandler(s))
		pr.Patch("/{petID}", updatePetHandler(s))
		pr.Delete("/{petID}", deletePetHandler(s))
		pr.Get("/{petID}/next-care", nextCareHandler(s))
	})
	r.Post("/onboarding", onboardingHandler(s))

	r.Route("/care-items", func(cr chi.Router) {
		cr.Get("/", listCareItemsHandler(s))
		cr.Post("/", createCareItemHandler(s))
		cr.Patch("/{itemID}", updateCareItemHandler(s))
		cr.Delete("/{itemID}", deleteCareItemHandler(s))
	})

	r.Route("/reminders", func(rr chi.Router) {
		rr.Get("/", listRemindersHandler(s))
		rr.Post("/", createReminderHandler(s))
		rr.Patch("/{reminderID}", updateReminderHandler(s))
		rr.Delete("/{reminderID}", deleteReminderHandler(s))
		rr.Post("/{reminderID}/toggle", toggleReminderHandler(s))
	})

	r.Get("/limits", limitsHandler(s))
	r.Get("/upcoming", upcomingHandler(s))
	r.Get("/settings", getSettingsHandler(s))
	r.Put("/settings/upcoming-care-days", putUpcomingDaysHandler(s))
}

// limitResponse es el cuerpo del 402: la UI lo usa para mostrar el paywall.
type limitResponse struct {
	Error    string   `json:"error"`
	Resource Resource `json:"resource"`
	Limit    int      `json:"limit"`
	Current  int      `json:"current"`
}

type capacityResponse struct {
	Count  int  `json:"count"`
	Limit  int  `json:"limit"`
	CanAdd bool `json:"can_add"`
}

type limitsStatusResponse struct {
	Premium   bool             `json:"premium"`
	Pets      capacityResponse `json:"pets"`
	CareItems capacityResponse `json:"care_items"`
	Reminders capacityResponse `json:"reminders"`
}

type stateResponse struct {
	State     LoadState `json:"state"`
	Pets      int       `json:"pets"`
	CareItems int       `json:"care_items"`
	Reminders int       `json:"reminders"`
}

// refreshHandler godoc
// @Summary Recargar estado
// @Description Vuelve a leer mascotas, cuidados, recordatorios y configuración desde el almacenamiento.
// @Tags tracker
// @Produce json
// @Success 200 {object} stateResponse
// @Router /refresh [post]
func refreshHandler(s *Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		s.Refresh(r.Context())
		writeJSON(w, http.StatusOK, stateResponse{
			State:     s.State(),
			Pets:      len(s.Pets()),
			CareItems: len(s.CareItems()),
			Reminders: len(s.Reminders()),
		})
	}
}

// limitsHandler godoc
// @Summary Capacidad del tier
// @Description can_add indica si se puede crear uno más antes de abrir el formulario.
// @Tags tracker
// @Produce json
// @Success 200 {object} limitsStatusResponse
// @Router /limits [get]
func limitsHandler(s *Store) http.HandlerFunc {
	return func(w http.ResponseWriter, _ *http.Request) {
		u := s.Usage()
		writeJSON(w, http.StatusOK, limitsStatusResponse{
			Premium:   u.Premium,
			Pets:      capacityResponse(u.Pets),
			CareItems: capacityResponse(u.CareItems),
			Reminders: capacityResponse(u.Reminders),
		})
	}
}

// writeError traduce errores del core a status HTTP.
func writeError(w http.ResponseWriter, err error) {
	var le *LimitError
	switch {
	case errors.As(err, &le):
		writeJSON(w, http.StatusPaymentRequired, limitResponse{
			Error:    err.Error(),
			Resource: le.Resource,
			Limit:    le.Limit,
			Current:  le.Current,
		})
	case errors.Is(err, ErrInvalidInput), errors.Is(err, ErrPetNotFound):
		http.Error(w, err.Error(), http.StatusBadRequest)
	case errors.Is(err, pets.ErrNotFound), errors.Is(err, care.ErrNotFound), errors.Is(err, reminders.ErrNotFound):
		http.Error(w, "not found", http.StatusNotFound)
	default:
		http.Error(w, "internal error", http.StatusInternalServerError)
	}
}

func decodeJSON(r *http.Request, v any) error {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	return dec.Decode(v)
}

// decodePatch devuelve el cuerpo crudo para detectar campos enviados como null.
func decodePatch(r *http.Request, v any) (map[string]json.RawMessage, error) {
	var raw map[string]json.RawMessage
	if err := json.NewDecoder(r.Body).Decode(&raw); err != nil {
		return nil, err
	}
	b, _ := json.Marshal(raw)
	dec := json.NewDecoder(bytes.NewReader(b))
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		return nil, err
	}
	return raw, nil
}

func parseDate(s string) (time.Time, error) {
	return time.Parse(dateLayout, strings.TrimSpace(s))
}

func errBadDate(field string) error {
	return fmt.Errorf("%s must be YYYY-MM-DD", field)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
