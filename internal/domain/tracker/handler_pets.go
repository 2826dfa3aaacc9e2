package tracker

import (
	"net/http"
	"time"

	"petcare-tracker/internal/domain/care"
	"petcare-tracker/internal/domain/pets"

	"github.com/go-chi/chi/v5"
)

type createPetRequest struct {
	Name          string   `json:"name"`
	Species       string   `json:"species"`
	CustomSpecies string   `json:"custom_species"`
	BirthDate     string   `json:"birth_date"` // YYYY-MM-DD opcional
	WeightKg      *float64 `json:"weight_kg"`
	PhotoRef      string   `json:"photo_ref"`
	Breed         string   `json:"breed"`
	MicrochipID   string   `json:"microchip_id"`
	Allergies     string   `json:"allergies"`
	VetName       string   `json:"vet_name"`
	VetPhone      string   `json:"vet_phone"`
	Notes         string   `json:"notes"`
}

// updatePetRequest: nil = no tocar. birth_date y weight_kg aceptan null para limpiar.
type updatePetRequest struct {
	Name          *string  `json:"name"`
	Species       *string  `json:"species"`
	CustomSpecies *string  `json:"custom_species"`
	BirthDate     *string  `json:"birth_date"`
	WeightKg      *float64 `json:"weight_kg"`
	PhotoRef      *string  `json:"photo_ref"`
	Breed         *string  `json:"breed"`
	MicrochipID   *string  `json:"microchip_id"`
	Allergies     *string  `json:"allergies"`
	VetName       *string  `json:"vet_name"`
	VetPhone      *string  `json:"vet_phone"`
	Notes         *string  `json:"notes"`
}

type petResponse struct {
	ID            string            `json:"id"`
	Name          string            `json:"name"`
	Species       pets.Species      `json:"species"`
	CustomSpecies string            `json:"custom_species,omitempty"`
	BirthDate     *string           `json:"birth_date,omitempty"`
	WeightKg      *float64          `json:"weight_kg,omitempty"`
	PhotoRef      string            `json:"photo_ref,omitempty"`
	Breed         string            `json:"breed,omitempty"`
	MicrochipID   string            `json:"microchip_id,omitempty"`
	Allergies     string            `json:"allergies,omitempty"`
	VetName       string            `json:"vet_name,omitempty"`
	VetPhone      string            `json:"vet_phone,omitempty"`
	Notes         string            `json:"notes,omitempty"`
	NextCare      *careItemResponse `json:"next_care,omitempty"`
	CreatedAt     time.Time         `json:"created_at"`
	UpdatedAt     time.Time         `json:"updated_at"`
}

type onboardingRequest struct {
	Pet       createPetRequest        `json:"pet"`
	CareItems []createCareItemRequest `json:"care_items"`
}

type onboardingResponse struct {
	Pet       petResponse        `json:"pet"`
	CareItems []careItemResponse `json:"care_items"`
	Error     string             `json:"error,omitempty"`
}

type nextCareResponse struct {
	PetID string            `json:"pet_id"`
	Item  *careItemResponse `json:"item"`
}

// listPetsHandler godoc
// @Summary Listar mascotas
// @Description Incluye el próximo cuidado pendiente de cada mascota.
// @Tags pets
// @Produce json
// @Success 200 {array} petResponse
// @Router /pets [get]
func listPetsHandler(s *Store) http.HandlerFunc {
	return func(w http.ResponseWriter, _ *http.Request) {
		next := s.NextCareItems(s.now())

		items := s.Pets()
		out := make([]petResponse, 0, len(items))
		for _, p := range items {
			resp := toPetResponse(p)
			if it, ok := next[p.ID]; ok {
				c := toCareItemResponse(it)
				resp.NextCare = &c
			}
			out = append(out, resp)
		}
		writeJSON(w, http.StatusOK, out)
	}
}

// createPetHandler godoc
// @Summary Crear mascota
// @Tags pets
// @Accept json
// @Produce json
// @Param payload body createPetRequest true "Datos de la mascota"
// @Success 201 {object} petResponse
// @Failure 400 {string} string "invalid input"
// @Failure 402 {object} limitResponse
// @Router /pets [post]
func createPetHandler(s *Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req createPetRequest
		if err := decodeJSON(r, &req); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}

		in, err := req.toInput()
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}

		p, err := s.AddPet(r.Context(), in)
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusCreated, toPetResponse(p))
	}
}

// updatePetHandler godoc
// @Summary Actualizar mascota
// @Tags pets
// @Accept json
// @Produce json
// @Param petID path string true "Pet ID"
// @Param payload body updatePetRequest true "Campos a modificar"
// @Success 200 {object} petResponse
// @Failure 400 {string} string "invalid input"
// @Failure 404 {string} string "pet not found"
// @Router /pets/{petID} [patch]
func updatePetHandler(s *Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req updatePetRequest
		raw, err := decodePatch(r, &req)
		if err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}

		in := pets.UpdateInput{
			Name:          req.Name,
			CustomSpecies: req.CustomSpecies,
			PhotoRef:      req.PhotoRef,
			Breed:         req.Breed,
			MicrochipID:   req.MicrochipID,
			Allergies:     req.Allergies,
			VetName:       req.VetName,
			VetPhone:      req.VetPhone,
			Notes:         req.Notes,
		}
		if req.Species != nil {
			sp := pets.Species(*req.Species)
			in.Species = &sp
		}

		// Presencia del campo: null = limpiar.
		if _, ok := raw["birth_date"]; ok {
			in.BirthDate = pets.Clear[time.Time]()
			if req.BirthDate != nil {
				t, err := parseDate(*req.BirthDate)
				if err != nil {
					http.Error(w, "birth_date must be YYYY-MM-DD or null", http.StatusBadRequest)
					return
				}
				in.BirthDate = pets.Set(t)
			}
		}
		if _, ok := raw["weight_kg"]; ok {
			in.WeightKg = pets.Clear[float64]()
			if req.WeightKg != nil {
				in.WeightKg = pets.Set(*req.WeightKg)
			}
		}

		p, ok, err := s.UpdatePet(r.Context(), chi.URLParam(r, "petID"), in)
		if err != nil {
			writeError(w, err)
			return
		}
		if !ok {
			http.Error(w, "pet not found", http.StatusNotFound)
			return
		}
		writeJSON(w, http.StatusOK, toPetResponse(p))
	}
}

// deletePetHandler godoc
// @Summary Eliminar mascota
// @Description Borra también sus cuidados y recordatorios.
// @Tags pets
// @Param petID path string true "Pet ID"
// @Success 204
// @Failure 404 {string} string "pet not found"
// @Router /pets/{petID} [delete]
func deletePetHandler(s *Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ok, err := s.DeletePet(r.Context(), chi.URLParam(r, "petID"))
		if err != nil {
			writeError(w, err)
			return
		}
		if !ok {
			http.Error(w, "pet not found", http.StatusNotFound)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

// nextCareHandler godoc
// @Summary Próximo cuidado de una mascota
// @Tags pets
// @Produce json
// @Param petID path string true "Pet ID"
// @Success 200 {object} nextCareResponse
// @Failure 404 {string} string "pet not found"
// @Router /pets/{petID}/next-care [get]
func nextCareHandler(s *Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		petID := chi.URLParam(r, "petID")
		if !s.hasPet(petID) {
			http.Error(w, "pet not found", http.StatusNotFound)
			return
		}

		resp := nextCareResponse{PetID: petID}
		if it, ok := s.NextCareItemForPet(petID, s.now()); ok {
			c := toCareItemResponse(it)
			resp.Item = &c
		}
		writeJSON(w, http.StatusOK, resp)
	}
}

// onboardingHandler godoc
// @Summary Alta guiada
// @Description Crea la mascota y sus primeros cuidados. Si un cuidado falla, los demás quedan guardados.
// @Tags pets
// @Accept json
// @Produce json
// @Param payload body onboardingRequest true "Mascota y cuidados"
// @Success 201 {object} onboardingResponse
// @Failure 400 {string} string "invalid input"
// @Failure 402 {object} limitResponse
// @Router /onboarding [post]
func onboardingHandler(s *Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req onboardingRequest
		if err := decodeJSON(r, &req); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}

		in, err := req.Pet.toInput()
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		items := make([]care.CreateInput, 0, len(req.CareItems))
		for _, ci := range req.CareItems {
			c, err := ci.toInput()
			if err != nil {
				http.Error(w, err.Error(), http.StatusBadRequest)
				return
			}
			items = append(items, c)
		}

		p, created, err := s.AddPetWithCareItems(r.Context(), in, items)
		if err != nil && p.ID == "" {
			writeError(w, err)
			return
		}

		resp := onboardingResponse{
			Pet:       toPetResponse(p),
			CareItems: make([]careItemResponse, 0, len(created)),
		}
		for _, it := range created {
			resp.CareItems = append(resp.CareItems, toCareItemResponse(it))
		}
		if err != nil {
			resp.Error = err.Error()
		}
		writeJSON(w, http.StatusCreated, resp)
	}
}

func (req createPetRequest) toInput() (pets.CreateInput, error) {
	in := pets.CreateInput{
		Name:          req.Name,
		Species:       pets.Species(req.Species),
		CustomSpecies: req.CustomSpecies,
		WeightKg:      req.WeightKg,
		PhotoRef:      req.PhotoRef,
		Breed:         req.Breed,
		MicrochipID:   req.MicrochipID,
		Allergies:     req.Allergies,
		VetName:       req.VetName,
		VetPhone:      req.VetPhone,
		Notes:         req.Notes,
	}
	if req.BirthDate != "" {
		t, err := parseDate(req.BirthDate)
		if err != nil {
			return pets.CreateInput{}, errBadDate("birth_date")
		}
		in.BirthDate = &t
	}
	return in, nil
}

func toPetResponse(p pets.Pet) petResponse {
	var bd *string
	if p.BirthDate != nil {
		v := p.BirthDate.Format(dateLayout)
		bd = &v
	}
	return petResponse{
		ID:            p.ID,
		Name:          p.Name,
		Species:       p.Species,
		CustomSpecies: p.CustomSpecies,
		BirthDate:     bd,
		WeightKg:      p.WeightKg,
		PhotoRef:      p.PhotoRef,
		Breed:         p.Breed,
		MicrochipID:   p.MicrochipID,
		Allergies:     p.Allergies,
		VetName:       p.VetName,
		VetPhone:      p.VetPhone,
		Notes:         p.Notes,
		CreatedAt:     p.CreatedAt,
		UpdatedAt:     p.UpdatedAt,
	}
}
