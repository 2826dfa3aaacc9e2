package tracker

import (
	"net/http"
	"strconv"
	"time"

	"petcare-tracker/internal/domain/settings"
)

type upcomingItemResponse struct {
	Kind     ItemKind          `json:"kind"`
	PetID    string            `json:"pet_id"`
	PetName  string            `json:"pet_name"`
	At       time.Time         `json:"at"`
	Care     *careItemResponse `json:"care,omitempty"`
	Reminder *reminderResponse `json:"reminder,omitempty"`
}

type upcomingResponse struct {
	Days  int                    `json:"days"`
	Items []upcomingItemResponse `json:"items"`
}

type settingsResponse struct {
	UpcomingCareDays int   `json:"upcoming_care_days"`
	AllowedDays      []int `json:"allowed_days"`
}

type upcomingDaysRequest struct {
	Days int `json:"days"`
}

// upcomingHandler godoc
// @Summary Próximos cuidados y recordatorios
// @Description Sin days usa la ventana configurada.
// @Tags upcoming
// @Produce json
// @Param days query int false "Ventana en días"
// @Success 200 {object} upcomingResponse
// @Failure 400 {string} string "days must be a positive integer"
// @Router /upcoming [get]
func upcomingHandler(s *Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		days := s.UpcomingCareDays()
		if v := r.URL.Query().Get("days"); v != "" {
			n, err := strconv.Atoi(v)
			if err != nil || n <= 0 {
				http.Error(w, "days must be a positive integer", http.StatusBadRequest)
				return
			}
			days = n
		}

		now := s.now()
		names := make(map[string]string)
		for _, p := range s.Pets() {
			names[p.ID] = p.Name
		}

		feed := s.ListUpcoming(now, days)
		out := upcomingResponse{Days: days, Items: make([]upcomingItemResponse, 0, len(feed))}
		for _, u := range feed {
			item := upcomingItemResponse{
				Kind:    u.Kind,
				PetID:   u.PetID(),
				PetName: names[u.PetID()],
				At:      u.At(now.Location()),
			}
			switch u.Kind {
			case KindCare:
				c := toCareItemResponse(*u.Care)
				item.Care = &c
			case KindReminder:
				rem := toReminderResponse(*u.Reminder)
				item.Reminder = &rem
			}
			out.Items = append(out.Items, item)
		}
		writeJSON(w, http.StatusOK, out)
	}
}

// getSettingsHandler godoc
// @Summary Configuración
// @Tags settings
// @Produce json
// @Success 200 {object} settingsResponse
// @Router /settings [get]
func getSettingsHandler(s *Store) http.HandlerFunc {
	return func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, settingsResponse{
			UpcomingCareDays: s.UpcomingCareDays(),
			AllowedDays:      settings.AllowedUpcomingCareDays,
		})
	}
}

// putUpcomingDaysHandler godoc
// @Summary Cambiar ventana de próximos cuidados
// @Tags settings
// @Accept json
// @Produce json
// @Param payload body upcomingDaysRequest true "7, 14, 30 o 60"
// @Success 200 {object} settingsResponse
// @Failure 400 {string} string "invalid input"
// @Router /settings/upcoming-care-days [put]
func putUpcomingDaysHandler(s *Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req upcomingDaysRequest
		if err := decodeJSON(r, &req); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}
		if err := s.SetUpcomingCareDays(r.Context(), req.Days); err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, settingsResponse{
			UpcomingCareDays: s.UpcomingCareDays(),
			AllowedDays:      settings.AllowedUpcomingCareDays,
		})
	}
}
