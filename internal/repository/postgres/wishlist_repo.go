package postgres

import (
	"context"
	"database/sql"
	"errors"

	"conferencecentral/internal/domain"
)

type wishlistRepository struct {
	DB *sql.DB
}

func NewWishlistRepository(db *sql.DB) domain.WishlistRepository {
	return &wishlistRepository{
		DB: db,
	}
}

func (r *wishlistRepository) Create(ctx context.Context, wl *domain.Wishlist) error {
	q := `INSERT INTO wishlists (profile_id) VALUES ($1) RETURNING id`
	return r.DB.QueryRowContext(ctx, q, wl.ProfileID).Scan(&wl.ID)
}

func (r *wishlistRepository) GetByProfileID(ctx context.Context, profileID string) (*domain.Wishlist, error) {
	wl := &domain.Wishlist{}
	err := r.DB.QueryRowContext(ctx,
		`SELECT id, profile_id FROM wishlists WHERE profile_id = $1`,
		profileID,
	).Scan(&wl.ID, &wl.ProfileID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}

	rows, err := r.DB.QueryContext(ctx,
		`SELECT session_key FROM wishlist_sessions WHERE wishlist_id = $1 ORDER BY id ASC`,
		wl.ID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	wl.SessionKeys = make([]string, 0)
	for rows.Next() {
		var key string
		if err := rows.Scan(&key); err != nil {
			return nil, err
		}
		wl.SessionKeys = append(wl.SessionKeys, key)
	}
	return wl, rows.Err()
}

func (r *wishlistRepository) AppendSessionKey(ctx context.Context, wishlistID, sessionKey string) error {
	q := `INSERT INTO wishlist_sessions (wishlist_id, session_key) VALUES ($1, $2)`
	_, err := r.DB.ExecContext(ctx, q, wishlistID, sessionKey)
	return err
}

func (r *wishlistRepository) RemoveSessionKey(ctx context.Context, wishlistID, sessionKey string) error {
	// Remove only the earliest occurrence; duplicates stay.
	q := `
		DELETE FROM wishlist_sessions
		WHERE id = (
			SELECT id FROM wishlist_sessions
			WHERE wishlist_id = $1 AND session_key = $2
			ORDER BY id ASC
			LIMIT 1
		)
	`
	result, err := r.DB.ExecContext(ctx, q, wishlistID, sessionKey)
	if err != nil {
		return err
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return domain.ErrNotFound
	}
	return nil
}
