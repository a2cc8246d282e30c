package postgres

import (
	"context"
	"testing"
	"time"

	"conferencecentral/internal/domain"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/lib/pq"
	"github.com/stretchr/testify/require"
)

func accountRow(id, email string, at time.Time) *sqlmock.Rows {
	return sqlmock.NewRows([]string{"id", "email", "password_hash", "salt", "created_at", "updated_at"}).
		AddRow(id, email, "hash", "salt", at, at)
}

func TestAccountRepository_Create(t *testing.T) {
	ctx := context.Background()
	now := time.Now()

	t.Run("assigns the generated id", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		mock.ExpectQuery(`INSERT INTO accounts \(email, password_hash, salt, created_at, updated_at\)`).
			WithArgs("alice@example.com", "hash", "salt", now, now).
			WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow("acc-1"))

		repo := NewAccountRepository(db)
		a := &domain.Account{Email: "alice@example.com", PasswordHash: "hash", Salt: "salt", CreatedAt: now, UpdatedAt: now}
		require.NoError(t, repo.Create(ctx, a))
		require.Equal(t, "acc-1", a.ID)
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("duplicate email maps to the sentinel", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		mock.ExpectQuery(`INSERT INTO accounts`).
			WithArgs("alice@example.com", "hash", "salt", now, now).
			WillReturnError(&pq.Error{Code: "23505", Constraint: "accounts_email_key"})

		repo := NewAccountRepository(db)
		a := &domain.Account{Email: "alice@example.com", PasswordHash: "hash", Salt: "salt", CreatedAt: now, UpdatedAt: now}
		require.ErrorIs(t, repo.Create(ctx, a), domain.ErrDuplicateEmail)
		require.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestAccountRepository_GetByEmail(t *testing.T) {
	ctx := context.Background()
	now := time.Now()

	t.Run("found", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		mock.ExpectQuery(`SELECT id, email, password_hash, salt, created_at, updated_at FROM accounts WHERE email = \$1`).
			WithArgs("alice@example.com").
			WillReturnRows(accountRow("acc-1", "alice@example.com", now))

		repo := NewAccountRepository(db)
		a, err := repo.GetByEmail(ctx, "alice@example.com")
		require.NoError(t, err)
		require.Equal(t, "acc-1", a.ID)
		require.Equal(t, "alice@example.com", a.Email)
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("not found", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		mock.ExpectQuery(`SELECT id, email, password_hash, salt, created_at, updated_at FROM accounts WHERE email = \$1`).
			WithArgs("nobody@example.com").
			WillReturnRows(sqlmock.NewRows([]string{"id", "email", "password_hash", "salt", "created_at", "updated_at"}))

		repo := NewAccountRepository(db)
		_, err = repo.GetByEmail(ctx, "nobody@example.com")
		require.ErrorIs(t, err, domain.ErrNotFound)
		require.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestAccountRepository_GetByID(t *testing.T) {
	ctx := context.Background()
	now := time.Now()

	t.Run("found", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		mock.ExpectQuery(`SELECT id, email, password_hash, salt, created_at, updated_at FROM accounts WHERE id = \$1`).
			WithArgs("acc-1").
			WillReturnRows(accountRow("acc-1", "alice@example.com", now))

		repo := NewAccountRepository(db)
		a, err := repo.GetByID(ctx, "acc-1")
		require.NoError(t, err)
		require.Equal(t, "alice@example.com", a.Email)
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("not found", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		mock.ExpectQuery(`SELECT id, email, password_hash, salt, created_at, updated_at FROM accounts WHERE id = \$1`).
			WithArgs("ghost").
			WillReturnRows(sqlmock.NewRows([]string{"id", "email", "password_hash", "salt", "created_at", "updated_at"}))

		repo := NewAccountRepository(db)
		_, err = repo.GetByID(ctx, "ghost")
		require.ErrorIs(t, err, domain.ErrNotFound)
		require.NoError(t, mock.ExpectationsWereMet())
	})
}
