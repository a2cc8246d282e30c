package services

import (
	"context"
	"testing"
	"time"

	"conferencecentral/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProfileService_GetOrCreate(t *testing.T) {
	now := time.Now()
	existing := domain.NewProfile("u1", "alice", "alice@example.com", "M_W", now, now)

	t.Run("returns existing profile", func(t *testing.T) {
		profileRepo := &mockProfileRepository{profiles: map[string]*domain.Profile{"u1": existing}}
		wishlistRepo := &mockWishlistRepository{}
		svc := NewProfileService(profileRepo, wishlistRepo, &mockAccountRepository{})

		p, err := svc.GetOrCreate(context.Background(), "u1")
		require.NoError(t, err)
		assert.Same(t, existing, p)
		assert.Empty(t, profileRepo.created)
	})

	t.Run("creates profile and wishlist on first access", func(t *testing.T) {
		accountRepo := &mockAccountRepository{accounts: map[string]*domain.Account{
			"u1": {ID: "u1", Email: "bob.smith@example.com"},
		}}
		profileRepo := &mockProfileRepository{}
		wishlistRepo := &mockWishlistRepository{}
		svc := NewProfileService(profileRepo, wishlistRepo, accountRepo)

		p, err := svc.GetOrCreate(context.Background(), "u1")
		require.NoError(t, err)
		assert.Equal(t, "bob.smith", p.DisplayName)
		assert.Equal(t, "bob.smith@example.com", p.MainEmail)
		assert.Equal(t, domain.TeeShirtSizeNotSpecified, p.TeeShirtSize)
		assert.Len(t, profileRepo.created, 1)
		wl, ok := wishlistRepo.wishlists["u1"]
		require.True(t, ok, "expected a wishlist to be created alongside the profile")
		assert.Empty(t, wl.SessionKeys)
	})

	t.Run("unknown account", func(t *testing.T) {
		svc := NewProfileService(&mockProfileRepository{}, &mockWishlistRepository{}, &mockAccountRepository{})
		_, err := svc.GetOrCreate(context.Background(), "ghost")
		require.ErrorIs(t, err, domain.ErrNotFound)
	})
}

func TestProfileService_Save(t *testing.T) {
	now := time.Now()

	tests := []struct {
		name         string
		displayName  string
		teeShirtSize string
		wantName     string
		wantSize     string
		wantErr      error
	}{
		{
			name:         "updates both fields",
			displayName:  "Alice B",
			teeShirtSize: "L_W",
			wantName:     "Alice B",
			wantSize:     "L_W",
		},
		{
			name:     "empty fields leave profile unchanged",
			wantName: "alice",
			wantSize: "M_W",
		},
		{
			name:         "invalid shirt size",
			teeShirtSize: "GIGANTIC",
			wantErr:      domain.ErrInvalidInput,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			profileRepo := &mockProfileRepository{profiles: map[string]*domain.Profile{
				"u1": domain.NewProfile("u1", "alice", "alice@example.com", "M_W", now, now),
			}}
			svc := NewProfileService(profileRepo, &mockWishlistRepository{}, &mockAccountRepository{})

			p, err := svc.Save(context.Background(), "u1", tt.displayName, tt.teeShirtSize)
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantName, p.DisplayName)
			assert.Equal(t, tt.wantSize, p.TeeShirtSize)
			assert.Len(t, profileRepo.updated, 1)
		})
	}
}
