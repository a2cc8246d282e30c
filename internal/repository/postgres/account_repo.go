package postgres

import (
	"context"
	"database/sql"
	"errors"

	"github.com/lib/pq"

	"conferencecentral/internal/domain"
)

type accountRepository struct {
	DB *sql.DB
}

func NewAccountRepository(db *sql.DB) domain.AccountRepository {
	return &accountRepository{
		DB: db,
	}
}

func (r *accountRepository) Create(ctx context.Context, a *domain.Account) error {
	q := `
		INSERT INTO accounts (email, password_hash, salt, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id
	`
	err := r.DB.QueryRowContext(ctx, q, a.Email, a.PasswordHash, a.Salt, a.CreatedAt, a.UpdatedAt).Scan(&a.ID)
	var pqErr *pq.Error
	if errors.As(err, &pqErr) && pqErr.Code.Name() == "unique_violation" {
		return domain.ErrDuplicateEmail
	}
	return err
}

func (r *accountRepository) GetByEmail(ctx context.Context, email string) (*domain.Account, error) {
	q := `
		SELECT id, email, password_hash, salt, created_at, updated_at
		FROM accounts
		WHERE email = $1
	`
	return r.scan(r.DB.QueryRowContext(ctx, q, email))
}

func (r *accountRepository) GetByID(ctx context.Context, id string) (*domain.Account, error) {
	q := `
		SELECT id, email, password_hash, salt, created_at, updated_at
		FROM accounts
		WHERE id = $1
	`
	return r.scan(r.DB.QueryRowContext(ctx, q, id))
}

func (r *accountRepository) scan(row *sql.Row) (*domain.Account, error) {
	a := &domain.Account{}
	err := row.Scan(&a.ID, &a.Email, &a.PasswordHash, &a.Salt, &a.CreatedAt, &a.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return a, nil
}
