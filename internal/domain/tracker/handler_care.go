package tracker

import (
	"net/http"
	"time"

	"petcare-tracker/internal/domain/care"

	"github.com/go-chi/chi/v5"
)

type createCareItemRequest struct {
	PetID           string `json:"pet_id"`
	Type            string `json:"type"`
	Title           string `json:"title"`
	DueDate         string `json:"due_date"` // YYYY-MM-DD
	Notes           string `json:"notes"`
	CalendarEventID string `json:"calendar_event_id"`
}

type updateCareItemRequest struct {
	Type            *string `json:"type"`
	Title           *string `json:"title"`
	DueDate         *string `json:"due_date"`
	Notes           *string `json:"notes"`
	CalendarEventID *string `json:"calendar_event_id"`
}

type careItemResponse struct {
	ID              string    `json:"id"`
	PetID           string    `json:"pet_id"`
	Type            care.Type `json:"type"`
	Title           string    `json:"title"`
	DueDate         string    `json:"due_date"`
	Notes           string    `json:"notes,omitempty"`
	CalendarEventID string    `json:"calendar_event_id,omitempty"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

// listCareItemsHandler godoc
// @Summary Listar cuidados
// @Tags care
// @Produce json
// @Param pet_id query string false "Filtrar por mascota"
// @Success 200 {array} careItemResponse
// @Router /care-items [get]
func listCareItemsHandler(s *Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		petID := r.URL.Query().Get("pet_id")

		items := s.CareItems()
		out := make([]careItemResponse, 0, len(items))
		for _, it := range items {
			if petID != "" && it.PetID != petID {
				continue
			}
			out = append(out, toCareItemResponse(it))
		}
		writeJSON(w, http.StatusOK, out)
	}
}

// createCareItemHandler godoc
// @Summary Crear cuidado
// @Tags care
// @Accept json
// @Produce json
// @Param payload body createCareItemRequest true "Cuidado"
// @Success 201 {object} careItemResponse
// @Failure 400 {string} string "invalid input"
// @Failure 402 {object} limitResponse
// @Router /care-items [post]
func createCareItemHandler(s *Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req createCareItemRequest
		if err := decodeJSON(r, &req); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}

		in, err := req.toInput()
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}

		it, err := s.AddCareItem(r.Context(), in)
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusCreated, toCareItemResponse(it))
	}
}

// updateCareItemHandler godoc
// @Summary Actualizar cuidado
// @Tags care
// @Accept json
// @Produce json
// @Param itemID path string true "Care item ID"
// @Param payload body updateCareItemRequest true "Campos a modificar"
// @Success 200 {object} careItemResponse
// @Failure 400 {string} string "invalid input"
// @Failure 404 {string} string "care item not found"
// @Router /care-items/{itemID} [patch]
func updateCareItemHandler(s *Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req updateCareItemRequest
		if err := decodeJSON(r, &req); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}

		in := care.UpdateInput{
			Title:           req.Title,
			Notes:           req.Notes,
			CalendarEventID: req.CalendarEventID,
		}
		if req.Type != nil {
			t := care.Type(*req.Type)
			in.Type = &t
		}
		if req.DueDate != nil {
			d, err := parseDate(*req.DueDate)
			if err != nil {
				http.Error(w, errBadDate("due_date").Error(), http.StatusBadRequest)
				return
			}
			in.DueDate = &d
		}

		it, ok, err := s.UpdateCareItem(r.Context(), chi.URLParam(r, "itemID"), in)
		if err != nil {
			writeError(w, err)
			return
		}
		if !ok {
			http.Error(w, "care item not found", http.StatusNotFound)
			return
		}
		writeJSON(w, http.StatusOK, toCareItemResponse(it))
	}
}

// deleteCareItemHandler godoc
// @Summary Eliminar cuidado
// @Tags care
// @Param itemID path string true "Care item ID"
// @Success 204
// @Failure 404 {string} string "care item not found"
// @Router /care-items/{itemID} [delete]
func deleteCareItemHandler(s *Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ok, err := s.DeleteCareItem(r.Context(), chi.URLParam(r, "itemID"))
		if err != nil {
			writeError(w, err)
			return
		}
		if !ok {
			http.Error(w, "care item not found", http.StatusNotFound)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

func (req createCareItemRequest) toInput() (care.CreateInput, error) {
	due, err := parseDate(req.DueDate)
	if err != nil {
		return care.CreateInput{}, errBadDate("due_date")
	}
	return care.CreateInput{
		PetID:           req.PetID,
		Type:            care.Type(req.Type),
		Title:           req.Title,
		DueDate:         due,
		Notes:           req.Notes,
		CalendarEventID: req.CalendarEventID,
	}, nil
}

func toCareItemResponse(it care.Item) careItemResponse {
	return careItemResponse{
		ID:              it.ID,
		PetID:           it.PetID,
		Type:            it.Type,
		Title:           it.Title,
		DueDate:         it.DueDate.Format(dateLayout),
		Notes:           it.Notes,
		CalendarEventID: it.CalendarEventID,
		CreatedAt:       it.CreatedAt,
		UpdatedAt:       it.UpdatedAt,
	}
}
