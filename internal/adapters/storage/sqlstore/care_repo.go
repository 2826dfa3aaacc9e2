package sqlstore

import (
	"context"
	"time"

	"petcare-tracker/internal/domain/care"

	"github.com/jmoiron/sqlx"
)

type careRow struct {
	ID              string    `db:"id"`
	PetID           string    `db:"pet_id"`
	Type            string    `db:"type"`
	Title           string    `db:"title"`
	DueDate         time.Time `db:"due_date"`
	Notes           string    `db:"notes"`
	CalendarEventID string    `db:"calendar_event_id"`
	CreatedAt       time.Time `db:"created_at"`
	UpdatedAt       time.Time `db:"updated_at"`
}

const careColumns = `id, pet_id, type, title, due_date, notes, calendar_event_id, created_at, updated_at`

type CareRepo struct {
	db *sqlx.DB
}

func NewCareRepo(db *sqlx.DB) *CareRepo {
	return &CareRepo{db: db}
}

func (r *CareRepo) Create(ctx context.Context, it care.Item) error {
	_, err := r.db.NamedExecContext(ctx, `
		INSERT INTO care_items (`+careColumns+`)
		VALUES (:id, :pet_id, :type, :title, :due_date, :notes, :calendar_event_id, :created_at, :updated_at)
	`, toCareRow(it))
	return err
}

func (r *CareRepo) Update(ctx context.Context, it care.Item) error {
	res, err := r.db.NamedExecContext(ctx, `
		UPDATE care_items SET
			type = :type,
			title = :title,
			due_date = :due_date,
			notes = :notes,
			calendar_event_id = :calendar_event_id,
			updated_at = :updated_at
		WHERE id = :id
	`, toCareRow(it))
	return affectedOrNotFound(res, err, care.ErrNotFound)
}

func (r *CareRepo) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, r.db.Rebind(`DELETE FROM care_items WHERE id = ?`), id)
	return affectedOrNotFound(res, err, care.ErrNotFound)
}

func (r *CareRepo) DeleteByPet(ctx context.Context, petID string) (int, error) {
	res, err := r.db.ExecContext(ctx, r.db.Rebind(`DELETE FROM care_items WHERE pet_id = ?`), petID)
	if err != nil {
		return 0, err
	}
	n, err := res.RowsAffected()
	return int(n), err
}

func (r *CareRepo) List(ctx context.Context) ([]care.Item, error) {
	var rows []careRow
	if err := r.db.SelectContext(ctx, &rows, `SELECT `+careColumns+` FROM care_items ORDER BY due_date ASC, created_at ASC, id ASC`); err != nil {
		return nil, err
	}

	out := make([]care.Item, 0, len(rows))
	for _, row := range rows {
		out = append(out, care.Item{
			ID:              row.ID,
			PetID:           row.PetID,
			Type:            care.Type(row.Type),
			Title:           row.Title,
			DueDate:         care.DateOnly(row.DueDate),
			Notes:           row.Notes,
			CalendarEventID: row.CalendarEventID,
			CreatedAt:       row.CreatedAt,
			UpdatedAt:       row.UpdatedAt,
		})
	}
	return out, nil
}

func toCareRow(it care.Item) careRow {
	return careRow{
		ID:              it.ID,
		PetID:           it.PetID,
		Type:            string(it.Type),
		Title:           it.Title,
		DueDate:         it.DueDate,
		Notes:           it.Notes,
		CalendarEventID: it.CalendarEventID,
		CreatedAt:       it.CreatedAt,
		UpdatedAt:       it.UpdatedAt,
	}
}
