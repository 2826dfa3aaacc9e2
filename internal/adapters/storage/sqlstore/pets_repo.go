package sqlstore

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"petcare-tracker/internal/domain/pets"

	"github.com/jmoiron/sqlx"
)

type petRow struct {
	ID            string          `db:"id"`
	Name          string          `db:"name"`
	Species       string          `db:"species"`
	CustomSpecies string          `db:"custom_species"`
	BirthDate     sql.NullTime    `db:"birth_date"`
	WeightKg      sql.NullFloat64 `db:"weight_kg"`
	PhotoRef      string          `db:"photo_ref"`
	Breed         string          `db:"breed"`
	MicrochipID   string          `db:"microchip_id"`
	Allergies     string          `db:"allergies"`
	VetName       string          `db:"vet_name"`
	VetPhone      string          `db:"vet_phone"`
	Notes         string          `db:"notes"`
	CreatedAt     time.Time       `db:"created_at"`
	UpdatedAt     time.Time       `db:"updated_at"`
}

const petColumns = `id, name, species, custom_species, birth_date, weight_kg, photo_ref,
	breed, microchip_id, allergies, vet_name, vet_phone, notes, created_at, updated_at`

type PetsRepo struct {
	db *sqlx.DB
}

func NewPetsRepo(db *sqlx.DB) *PetsRepo {
	return &PetsRepo{db: db}
}

func (r *PetsRepo) Create(ctx context.Context, p pets.Pet) error {
	_, err := r.db.NamedExecContext(ctx, `
		INSERT INTO pets (`+petColumns+`)
		VALUES (:id, :name, :species, :custom_species, :birth_date, :weight_kg, :photo_ref,
			:breed, :microchip_id, :allergies, :vet_name, :vet_phone, :notes, :created_at, :updated_at)
	`, toPetRow(p))
	return err
}

func (r *PetsRepo) Update(ctx context.Context, p pets.Pet) error {
	res, err := r.db.NamedExecContext(ctx, `
		UPDATE pets SET
			name = :name,
			species = :species,
			custom_species = :custom_species,
			birth_date = :birth_date,
			weight_kg = :weight_kg,
			photo_ref = :photo_ref,
			breed = :breed,
			microchip_id = :microchip_id,
			allergies = :allergies,
			vet_name = :vet_name,
			vet_phone = :vet_phone,
			notes = :notes,
			updated_at = :updated_at
		WHERE id = :id
	`, toPetRow(p))
	return affectedOrNotFound(res, err, pets.ErrNotFound)
}

func (r *PetsRepo) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, r.db.Rebind(`DELETE FROM pets WHERE id = ?`), id)
	return affectedOrNotFound(res, err, pets.ErrNotFound)
}

func (r *PetsRepo) GetByID(ctx context.Context, id string) (pets.Pet, error) {
	var row petRow
	err := r.db.GetContext(ctx, &row, r.db.Rebind(`SELECT `+petColumns+` FROM pets WHERE id = ?`), id)
	if errors.Is(err, sql.ErrNoRows) {
		return pets.Pet{}, pets.ErrNotFound
	}
	if err != nil {
		return pets.Pet{}, err
	}
	return row.toPet(), nil
}

func (r *PetsRepo) List(ctx context.Context) ([]pets.Pet, error) {
	var rows []petRow
	if err := r.db.SelectContext(ctx, &rows, `SELECT `+petColumns+` FROM pets ORDER BY created_at ASC, id ASC`); err != nil {
		return nil, err
	}

	out := make([]pets.Pet, 0, len(rows))
	for _, row := range rows {
		out = append(out, row.toPet())
	}
	return out, nil
}

func toPetRow(p pets.Pet) petRow {
	row := petRow{
		ID:            p.ID,
		Name:          p.Name,
		Species:       string(p.Species),
		CustomSpecies: p.CustomSpecies,
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
	if p.BirthDate != nil {
		row.BirthDate = sql.NullTime{Time: *p.BirthDate, Valid: true}
	}
	if p.WeightKg != nil {
		row.WeightKg = sql.NullFloat64{Float64: *p.WeightKg, Valid: true}
	}
	return row
}

func (row petRow) toPet() pets.Pet {
	p := pets.Pet{
		ID:            row.ID,
		Name:          row.Name,
		Species:       pets.Species(row.Species),
		CustomSpecies: row.CustomSpecies,
		PhotoRef:      row.PhotoRef,
		Breed:         row.Breed,
		MicrochipID:   row.MicrochipID,
		Allergies:     row.Allergies,
		VetName:       row.VetName,
		VetPhone:      row.VetPhone,
		Notes:         row.Notes,
		CreatedAt:     row.CreatedAt,
		UpdatedAt:     row.UpdatedAt,
	}
	if row.BirthDate.Valid {
		t := row.BirthDate.Time
		p.BirthDate = &t
	}
	if row.WeightKg.Valid {
		w := row.WeightKg.Float64
		p.WeightKg = &w
	}
	return p
}

// affectedOrNotFound traduce "0 filas afectadas" al sentinel del dominio.
func affectedOrNotFound(res sql.Result, err, notFound error) error {
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return notFound
	}
	return nil
}
