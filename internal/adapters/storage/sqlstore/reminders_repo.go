package sqlstore

import (
	"context"
	"time"

	"petcare-tracker/internal/domain/reminders"

	"github.com/jmoiron/sqlx"
)

type reminderRow struct {
	ID              string    `db:"id"`
	PetID           string    `db:"pet_id"`
	Title           string    `db:"title"`
	Message         string    `db:"message"`
	DateTime        time.Time `db:"date_time"`
	Repeat          string    `db:"repeat"`
	Enabled         bool      `db:"enabled"`
	NotificationID  string    `db:"notification_id"`
	CalendarEventID string    `db:"calendar_event_id"`
	CreatedAt       time.Time `db:"created_at"`
	UpdatedAt       time.Time `db:"updated_at"`
}

const reminderColumns = `id, pet_id, title, message, date_time, repeat, enabled,
	notification_id, calendar_event_id, created_at, updated_at`

type RemindersRepo struct {
	db *sqlx.DB
}

func NewRemindersRepo(db *sqlx.DB) *RemindersRepo {
	return &RemindersRepo{db: db}
}

func (r *RemindersRepo) Create(ctx context.Context, rem reminders.Reminder) error {
	_, err := r.db.NamedExecContext(ctx, `
		INSERT INTO reminders (`+reminderColumns+`)
		VALUES (:id, :pet_id, :title, :message, :date_time, :repeat, :enabled,
			:notification_id, :calendar_event_id, :created_at, :updated_at)
	`, toReminderRow(rem))
	return err
}

func (r *RemindersRepo) Update(ctx context.Context, rem reminders.Reminder) error {
	res, err := r.db.NamedExecContext(ctx, `
		UPDATE reminders SET
			title = :title,
			message = :message,
			date_time = :date_time,
			repeat = :repeat,
			enabled = :enabled,
			notification_id = :notification_id,
			calendar_event_id = :calendar_event_id,
			updated_at = :updated_at
		WHERE id = :id
	`, toReminderRow(rem))
	return affectedOrNotFound(res, err, reminders.ErrNotFound)
}

func (r *RemindersRepo) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, r.db.Rebind(`DELETE FROM reminders WHERE id = ?`), id)
	return affectedOrNotFound(res, err, reminders.ErrNotFound)
}

func (r *RemindersRepo) DeleteByPet(ctx context.Context, petID string) (int, error) {
	res, err := r.db.ExecContext(ctx, r.db.Rebind(`DELETE FROM reminders WHERE pet_id = ?`), petID)
	if err != nil {
		return 0, err
	}
	n, err := res.RowsAffected()
	return int(n), err
}

func (r *RemindersRepo) List(ctx context.Context) ([]reminders.Reminder, error) {
	var rows []reminderRow
	if err := r.db.SelectContext(ctx, &rows, `SELECT `+reminderColumns+` FROM reminders ORDER BY date_time ASC, id ASC`); err != nil {
		return nil, err
	}

	out := make([]reminders.Reminder, 0, len(rows))
	for _, row := range rows {
		out = append(out, reminders.Reminder{
			ID:              row.ID,
			PetID:           row.PetID,
			Title:           row.Title,
			Message:         row.Message,
			DateTime:        row.DateTime,
			Repeat:          reminders.RepeatType(row.Repeat),
			Enabled:         row.Enabled,
			NotificationID:  row.NotificationID,
			CalendarEventID: row.CalendarEventID,
			CreatedAt:       row.CreatedAt,
			UpdatedAt:       row.UpdatedAt,
		})
	}
	return out, nil
}

func toReminderRow(rem reminders.Reminder) reminderRow {
	return reminderRow{
		ID:              rem.ID,
		PetID:           rem.PetID,
		Title:           rem.Title,
		Message:         rem.Message,
		DateTime:        rem.DateTime,
		Repeat:          string(rem.Repeat),
		Enabled:         rem.Enabled,
		NotificationID:  rem.NotificationID,
		CalendarEventID: rem.CalendarEventID,
		CreatedAt:       rem.CreatedAt,
		UpdatedAt:       rem.UpdatedAt,
	}
}
