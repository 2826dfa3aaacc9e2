package pets

import (
	"fmt"
	"strings"
	"time"

	"petcare-tracker/internal/platform/sanitize"
)

type CreateInput struct {
	Name          string
	Species       Species
	CustomSpecies string
	BirthDate     *time.Time
	WeightKg      *float64
	PhotoRef      string
	Breed         string
	MicrochipID   string
	Allergies     string
	VetName       string
	VetPhone      string
	Notes         string
}

// UpdateInput lista solo los campos editables después de crear la mascota.
// Punteros nil = no tocar. ID y CreatedAt no son editables.
type UpdateInput struct {
	Name          *string
	Species       *Species
	CustomSpecies *string
	BirthDate     Nullable[time.Time]
	WeightKg      Nullable[float64]
	PhotoRef      *string
	Breed         *string
	MicrochipID   *string
	Allergies     *string
	VetName       *string
	VetPhone      *string
	Notes         *string
}

// New valida el input y arma la mascota con la identidad ya asignada.
func New(id string, now time.Time, in CreateInput) (Pet, error) {
	if strings.TrimSpace(id) == "" {
		return Pet{}, fmt.Errorf("%w: id required", ErrInvalidInput)
	}

	p := Pet{
		ID:            id,
		Name:          sanitize.Text(in.Name),
		Species:       in.Species,
		CustomSpecies: sanitize.Text(in.CustomSpecies),
		BirthDate:     in.BirthDate,
		WeightKg:      in.WeightKg,
		PhotoRef:      strings.TrimSpace(in.PhotoRef),
		Breed:         sanitize.Text(in.Breed),
		MicrochipID:   sanitize.Text(in.MicrochipID),
		Allergies:     sanitize.Text(in.Allergies),
		VetName:       sanitize.Text(in.VetName),
		VetPhone:      sanitize.Text(in.VetPhone),
		Notes:         sanitize.Text(in.Notes),
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	if err := p.validate(); err != nil {
		return Pet{}, err
	}
	return p, nil
}

// Apply devuelve una copia con los cambios aplicados. p no se modifica.
func (p Pet) Apply(in UpdateInput, now time.Time) (Pet, error) {
	out := p

	if in.Name != nil {
		out.Name = sanitize.Text(*in.Name)
	}
	if in.Species != nil {
		out.Species = *in.Species
	}
	if in.CustomSpecies != nil {
		out.CustomSpecies = sanitize.Text(*in.CustomSpecies)
	}
	if in.BirthDate.Present {
		out.BirthDate = in.BirthDate.Value
	}
	if in.WeightKg.Present {
		out.WeightKg = in.WeightKg.Value
	}
	if in.PhotoRef != nil {
		out.PhotoRef = strings.TrimSpace(*in.PhotoRef)
	}
	setText(&out.Breed, in.Breed)
	setText(&out.MicrochipID, in.MicrochipID)
	setText(&out.Allergies, in.Allergies)
	setText(&out.VetName, in.VetName)
	setText(&out.VetPhone, in.VetPhone)
	setText(&out.Notes, in.Notes)

	if err := out.validate(); err != nil {
		return Pet{}, err
	}
	out.UpdatedAt = now
	return out, nil
}

func (p *Pet) validate() error {
	if p.Name == "" {
		return fmt.Errorf("%w: name required", ErrInvalidInput)
	}
	if !p.Species.Valid() {
		return fmt.Errorf("%w: unknown species %q", ErrInvalidInput, p.Species)
	}
	if p.Species != SpeciesOther {
		p.CustomSpecies = ""
	}
	if p.WeightKg != nil && *p.WeightKg <= 0 {
		return fmt.Errorf("%w: weight must be positive", ErrInvalidInput)
	}
	return nil
}

func setText(dst *string, v *string) {
	if v == nil {
		return
	}
	*dst = sanitize.Text(*v)
}
