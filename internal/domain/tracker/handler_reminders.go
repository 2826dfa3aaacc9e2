package tracker

import (
	"net/http"
	"time"

	"petcare-tracker/internal/domain/reminders"

	"github.com/go-chi/chi/v5"
)

// createReminderRequest: con pet_ids se crea uno por mascota; si no, pet_id.
type createReminderRequest struct {
	PetID           string    `json:"pet_id"`
	PetIDs          []string  `json:"pet_ids"`
	Title           string    `json:"title"`
	Message         string    `json:"message"`
	DateTime        time.Time `json:"date_time"` // RFC3339
	Repeat          string    `json:"repeat"`
	Enabled         *bool     `json:"enabled"` // default true
	CalendarEventID string    `json:"calendar_event_id"`
}

type updateReminderRequest struct {
	Title           *string    `json:"title"`
	Message         *string    `json:"message"`
	DateTime        *time.Time `json:"date_time"`
	Repeat          *string    `json:"repeat"`
	Enabled         *bool      `json:"enabled"`
	CalendarEventID *string    `json:"calendar_event_id"`
}

type reminderResponse struct {
	ID              string               `json:"id"`
	PetID           string               `json:"pet_id"`
	Title           string               `json:"title"`
	Message         string               `json:"message,omitempty"`
	DateTime        time.Time            `json:"date_time"`
	Repeat          reminders.RepeatType `json:"repeat"`
	Enabled         bool                 `json:"enabled"`
	Scheduled       bool                 `json:"scheduled"`
	CalendarEventID string               `json:"calendar_event_id,omitempty"`
	CreatedAt       time.Time            `json:"created_at"`
	UpdatedAt       time.Time            `json:"updated_at"`
}

type batchReminderResponse struct {
	Reminders []reminderResponse `json:"reminders"`
	Error     string             `json:"error,omitempty"`
}

// listRemindersHandler godoc
// @Summary Listar recordatorios
// @Tags reminders
// @Produce json
// @Param pet_id query string false "Filtrar por mascota"
// @Success 200 {array} reminderResponse
// @Router /reminders [get]
func listRemindersHandler(s *Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		petID := r.URL.Query().Get("pet_id")

		items := s.Reminders()
		out := make([]reminderResponse, 0, len(items))
		for _, rem := range items {
			if petID != "" && rem.PetID != petID {
				continue
			}
			out = append(out, toReminderResponse(rem))
		}
		writeJSON(w, http.StatusOK, out)
	}
}

// createReminderHandler godoc
// @Summary Crear recordatorio
// @Description Con pet_ids crea el mismo recordatorio para varias mascotas (sin rollback parcial).
// @Tags reminders
// @Accept json
// @Produce json
// @Param payload body createReminderRequest true "Recordatorio"
// @Success 201 {object} reminderResponse
// @Failure 400 {string} string "invalid input"
// @Failure 402 {object} limitResponse
// @Router /reminders [post]
func createReminderHandler(s *Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req createReminderRequest
		if err := decodeJSON(r, &req); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}

		in := reminders.CreateInput{
			PetID:           req.PetID,
			Title:           req.Title,
			Message:         req.Message,
			DateTime:        req.DateTime,
			Repeat:          reminders.RepeatType(req.Repeat),
			Enabled:         true,
			CalendarEventID: req.CalendarEventID,
		}
		if req.Enabled != nil {
			in.Enabled = *req.Enabled
		}

		if len(req.PetIDs) > 0 {
			created, err := s.AddReminderForPets(r.Context(), req.PetIDs, in)
			if err != nil && len(created) == 0 {
				writeError(w, err)
				return
			}
			resp := batchReminderResponse{Reminders: make([]reminderResponse, 0, len(created))}
			for _, rem := range created {
				resp.Reminders = append(resp.Reminders, toReminderResponse(rem))
			}
			if err != nil {
				resp.Error = err.Error()
			}
			writeJSON(w, http.StatusCreated, resp)
			return
		}

		rem, err := s.AddReminder(r.Context(), in)
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusCreated, toReminderResponse(rem))
	}
}

// updateReminderHandler godoc
// @Summary Actualizar recordatorio
// @Description Reprograma la notificación según el resultado.
// @Tags reminders
// @Accept json
// @Produce json
// @Param reminderID path string true "Reminder ID"
// @Param payload body updateReminderRequest true "Campos a modificar"
// @Success 200 {object} reminderResponse
// @Failure 400 {string} string "invalid input"
// @Failure 404 {string} string "reminder not found"
// @Router /reminders/{reminderID} [patch]
func updateReminderHandler(s *Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req updateReminderRequest
		if err := decodeJSON(r, &req); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}

		in := reminders.UpdateInput{
			Title:           req.Title,
			Message:         req.Message,
			DateTime:        req.DateTime,
			Enabled:         req.Enabled,
			CalendarEventID: req.CalendarEventID,
		}
		if req.Repeat != nil {
			rt := reminders.RepeatType(*req.Repeat)
			in.Repeat = &rt
		}

		rem, ok, err := s.UpdateReminder(r.Context(), chi.URLParam(r, "reminderID"), in)
		writeReminderResult(w, rem, ok, err)
	}
}

// toggleReminderHandler godoc
// @Summary Activar/desactivar recordatorio
// @Tags reminders
// @Produce json
// @Param reminderID path string true "Reminder ID"
// @Success 200 {object} reminderResponse
// @Failure 404 {string} string "reminder not found"
// @Router /reminders/{reminderID}/toggle [post]
func toggleReminderHandler(s *Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		rem, ok, err := s.ToggleReminder(r.Context(), chi.URLParam(r, "reminderID"))
		writeReminderResult(w, rem, ok, err)
	}
}

// deleteReminderHandler godoc
// @Summary Eliminar recordatorio
// @Tags reminders
// @Param reminderID path string true "Reminder ID"
// @Success 204
// @Failure 404 {string} string "reminder not found"
// @Router /reminders/{reminderID} [delete]
func deleteReminderHandler(s *Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ok, err := s.DeleteReminder(r.Context(), chi.URLParam(r, "reminderID"))
		if err != nil {
			writeError(w, err)
			return
		}
		if !ok {
			http.Error(w, "reminder not found", http.StatusNotFound)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

func writeReminderResult(w http.ResponseWriter, rem reminders.Reminder, ok bool, err error) {
	if err != nil {
		writeError(w, err)
		return
	}
	if !ok {
		http.Error(w, "reminder not found", http.StatusNotFound)
		return
	}
	writeJSON(w, http.StatusOK, toReminderResponse(rem))
}

func toReminderResponse(r reminders.Reminder) reminderResponse {
	return reminderResponse{
		ID:              r.ID,
		PetID:           r.PetID,
		Title:           r.Title,
		Message:         r.Message,
		DateTime:        r.DateTime,
		Repeat:          r.Repeat,
		Enabled:         r.Enabled,
		Scheduled:       r.NotificationID != "",
		CalendarEventID: r.CalendarEventID,
		CreatedAt:       r.CreatedAt,
		UpdatedAt:       r.UpdatedAt,
	}
}
