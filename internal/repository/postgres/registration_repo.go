package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"conferencecentral/internal/domain"
)

type registrationLedger struct {
	DB *sql.DB
}

// NewRegistrationLedger returns the transactional seat-accounting
// implementation. Each call runs a single transaction that locks the
// conference row, so concurrent registrations for the same conference
// serialize and the seat counter can neither go negative nor exceed
// max_attendees.
func NewRegistrationLedger(db *sql.DB) domain.RegistrationLedger {
	return &registrationLedger{
		DB: db,
	}
}

func (r *registrationLedger) Register(ctx context.Context, conferenceID, profileID string) (bool, error) {
	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return false, fmt.Errorf("begin: %w", err)
	}
	defer tx.Rollback()

	seats, err := lockSeats(ctx, tx, conferenceID)
	if err != nil {
		return false, err
	}

	registered, err := isRegistered(ctx, tx, conferenceID, profileID)
	if err != nil {
		return false, err
	}
	if registered {
		return false, domain.ErrAlreadyRegistered
	}
	if seats <= 0 {
		return false, domain.ErrNoSeatsAvailable
	}

	if _, err := tx.ExecContext(ctx,
		`INSERT INTO registrations (conference_id, profile_id, created_at) VALUES ($1, $2, $3)`,
		conferenceID, profileID, time.Now(),
	); err != nil {
		return false, fmt.Errorf("insert registration: %w", err)
	}
	if _, err := tx.ExecContext(ctx,
		`UPDATE conferences SET seats_available = seats_available - 1, updated_at = NOW() WHERE id = $1`,
		conferenceID,
	); err != nil {
		return false, fmt.Errorf("take seat: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return false, fmt.Errorf("commit: %w", err)
	}
	return true, nil
}

func (r *registrationLedger) Unregister(ctx context.Context, conferenceID, profileID string) (bool, error) {
	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return false, fmt.Errorf("begin: %w", err)
	}
	defer tx.Rollback()

	if _, err := lockSeats(ctx, tx, conferenceID); err != nil {
		return false, err
	}

	registered, err := isRegistered(ctx, tx, conferenceID, profileID)
	if err != nil {
		return false, err
	}
	if !registered {
		// Idempotent no-op: not an error, nothing to roll back.
		return false, tx.Commit()
	}

	if _, err := tx.ExecContext(ctx,
		`DELETE FROM registrations WHERE conference_id = $1 AND profile_id = $2`,
		conferenceID, profileID,
	); err != nil {
		return false, fmt.Errorf("delete registration: %w", err)
	}
	if _, err := tx.ExecContext(ctx,
		`UPDATE conferences SET seats_available = seats_available + 1, updated_at = NOW() WHERE id = $1`,
		conferenceID,
	); err != nil {
		return false, fmt.Errorf("return seat: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return false, fmt.Errorf("commit: %w", err)
	}
	return true, nil
}

func (r *registrationLedger) ListConferenceIDs(ctx context.Context, profileID string) ([]string, error) {
	rows, err := r.DB.QueryContext(ctx,
		`SELECT conference_id FROM registrations WHERE profile_id = $1 ORDER BY created_at ASC`,
		profileID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	ids := make([]string, 0)
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

// lockSeats reads the conference's seat counter under FOR UPDATE,
// blocking concurrent ledger transactions on the same conference until
// this one commits or rolls back.
func lockSeats(ctx context.Context, tx *sql.Tx, conferenceID string) (int, error) {
	var seats int
	err := tx.QueryRowContext(ctx,
		`SELECT seats_available FROM conferences WHERE id = $1 FOR UPDATE`,
		conferenceID,
	).Scan(&seats)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return 0, domain.ErrNotFound
		}
		return 0, fmt.Errorf("lock conference: %w", err)
	}
	return seats, nil
}

func isRegistered(ctx context.Context, tx *sql.Tx, conferenceID, profileID string) (bool, error) {
	var registered bool
	err := tx.QueryRowContext(ctx,
		`SELECT EXISTS (SELECT 1 FROM registrations WHERE conference_id = $1 AND profile_id = $2)`,
		conferenceID, profileID,
	).Scan(&registered)
	if err != nil {
		return false, fmt.Errorf("check registration: %w", err)
	}
	return registered, nil
}
