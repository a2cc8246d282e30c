package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/lib/pq"

	"conferencecentral/internal/domain"
	"conferencecentral/internal/query"
)

const conferenceColumns = `id, organizer_id, name, description, city, topics, start_date, end_date, month, max_attendees, seats_available, created_at, updated_at`

type conferenceRepository struct {
	DB *sql.DB
}

func NewConferenceRepository(db *sql.DB) domain.ConferenceRepository {
	return &conferenceRepository{
		DB: db,
	}
}

func (r *conferenceRepository) Create(ctx context.Context, c *domain.Conference) error {
	q := `
		INSERT INTO conferences (organizer_id, name, description, city, topics, start_date, end_date, month, max_attendees, seats_available, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
		RETURNING id
	`
	return r.DB.QueryRowContext(ctx, q,
		c.OrganizerID, c.Name, c.Description, c.City, pq.Array(c.Topics),
		nullTime(c.StartDate), nullTime(c.EndDate), c.Month,
		c.MaxAttendees, c.SeatsAvailable, c.CreatedAt, c.UpdatedAt,
	).Scan(&c.ID)
}

func (r *conferenceRepository) GetByID(ctx context.Context, id string) (*domain.Conference, error) {
	q := `SELECT ` + conferenceColumns + ` FROM conferences WHERE id = $1`
	c, err := scanConference(r.DB.QueryRowContext(ctx, q, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return c, nil
}

func (r *conferenceRepository) ListByOrganizerID(ctx context.Context, organizerID string) ([]*domain.Conference, error) {
	q := `SELECT ` + conferenceColumns + ` FROM conferences WHERE organizer_id = $1 ORDER BY created_at DESC`
	return r.list(ctx, q, organizerID)
}

func (r *conferenceRepository) ListByIDs(ctx context.Context, ids []string) ([]*domain.Conference, error) {
	if len(ids) == 0 {
		return []*domain.Conference{}, nil
	}
	q := `SELECT ` + conferenceColumns + ` FROM conferences WHERE id = ANY ($1)`
	return r.list(ctx, q, pq.Array(ids))
}

func (r *conferenceRepository) Query(ctx context.Context, compiled *query.Compiled) ([]*domain.Conference, error) {
	q := `SELECT ` + conferenceColumns + ` FROM conferences`
	if len(compiled.Where) > 0 {
		q += ` WHERE ` + strings.Join(compiled.Where, " AND ")
	}
	q += ` ORDER BY ` + compiled.OrderBy
	return r.list(ctx, q, compiled.Args...)
}

func (r *conferenceRepository) ListNearlySoldOut(ctx context.Context) ([]*domain.Conference, error) {
	q := `SELECT ` + conferenceColumns + ` FROM conferences WHERE seats_available > 0 AND seats_available <= 5 ORDER BY name ASC`
	return r.list(ctx, q)
}

// Update applies the non-nil fields inside a transaction that locks the
// conference row, so concurrent edits of the same conference serialize.
// Month is re-derived whenever StartDate changes.
func (r *conferenceRepository) Update(ctx context.Context, id string, upd *domain.ConferenceUpdate) (*domain.Conference, error) {
	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("begin: %w", err)
	}
	defer tx.Rollback()

	row := tx.QueryRowContext(ctx, `SELECT `+conferenceColumns+` FROM conferences WHERE id = $1 FOR UPDATE`, id)
	c, err := scanConference(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}

	setClauses := []string{"updated_at = NOW()"}
	args := []interface{}{}
	n := 1
	add := func(column string, value interface{}) {
		setClauses = append(setClauses, fmt.Sprintf("%s = $%d", column, n))
		args = append(args, value)
		n++
	}
	if upd.Name != nil {
		add("name", *upd.Name)
	}
	if upd.Description != nil {
		add("description", *upd.Description)
	}
	if upd.City != nil {
		add("city", *upd.City)
	}
	if upd.Topics != nil {
		add("topics", pq.Array(upd.Topics))
	}
	if upd.StartDate != nil {
		add("start_date", *upd.StartDate)
		add("month", int(upd.StartDate.Month()))
	}
	if upd.EndDate != nil {
		add("end_date", *upd.EndDate)
	}
	if upd.MaxAttendees != nil {
		add("max_attendees", *upd.MaxAttendees)
	}
	if n == 1 {
		// Nothing to change; return the locked row as-is.
		return c, tx.Commit()
	}
	args = append(args, id)
	q := fmt.Sprintf(`UPDATE conferences SET %s WHERE id = $%d RETURNING %s`,
		strings.Join(setClauses, ", "), n, conferenceColumns)
	c, err = scanConference(tx.QueryRowContext(ctx, q, args...))
	if err != nil {
		// The seats check trips when max_attendees is lowered below the
		// seats already taken; that is caller input, not a server fault.
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == "23514" {
			return nil, fmt.Errorf("%w: max attendees cannot be lower than seats already taken", domain.ErrInvalidInput)
		}
		return nil, err
	}
	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("commit: %w", err)
	}
	return c, nil
}

func (r *conferenceRepository) list(ctx context.Context, q string, args ...interface{}) ([]*domain.Conference, error) {
	rows, err := r.DB.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	confs := make([]*domain.Conference, 0)
	for rows.Next() {
		c, err := scanConference(rows)
		if err != nil {
			return nil, err
		}
		confs = append(confs, c)
	}
	return confs, rows.Err()
}

// rowScanner is satisfied by both *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanConference(row rowScanner) (*domain.Conference, error) {
	c := &domain.Conference{}
	var startNull, endNull sql.NullTime
	err := row.Scan(
		&c.ID, &c.OrganizerID, &c.Name, &c.Description, &c.City, pq.Array(&c.Topics),
		&startNull, &endNull, &c.Month, &c.MaxAttendees, &c.SeatsAvailable,
		&c.CreatedAt, &c.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	if startNull.Valid {
		c.StartDate = &startNull.Time
	}
	if endNull.Valid {
		c.EndDate = &endNull.Time
	}
	return c, nil
}

func nullTime(t *time.Time) sql.NullTime {
	if t == nil {
		return sql.NullTime{}
	}
	return sql.NullTime{Time: *t, Valid: true}
}
