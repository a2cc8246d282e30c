package services

import (
	"context"
	"testing"

	"conferencecentral/internal/domain"
	"conferencecentral/internal/keys"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWishlistService_AddSession(t *testing.T) {
	sess := &domain.Session{ID: "s1", ConferenceID: "conf-1", Name: "Intro"}
	sessKey := keys.ForSession("conf-1", "s1").Encode()

	tests := []struct {
		name    string
		key     string
		wantErr error
	}{
		{
			name: "adds a resolvable session",
			key:  sessKey,
		},
		{
			name:    "undecodable key",
			key:     "???",
			wantErr: domain.ErrNotFound,
		},
		{
			name:    "session does not exist",
			key:     keys.ForSession("conf-1", "missing").Encode(),
			wantErr: domain.ErrNotFound,
		},
		{
			name:    "key names the wrong conference",
			key:     keys.ForSession("other-conf", "s1").Encode(),
			wantErr: domain.ErrNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			wishlistRepo := &mockWishlistRepository{wishlists: map[string]*domain.Wishlist{
				"u1": {ID: "wl-u1", ProfileID: "u1"},
			}}
			sessionRepo := &mockSessionRepository{sessions: map[string]*domain.Session{"s1": sess}}
			svc := NewWishlistService(wishlistRepo, sessionRepo)

			wl, err := svc.AddSession(context.Background(), "u1", tt.key)
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, []string{sessKey}, wl.SessionKeys)
			assert.Len(t, wishlistRepo.appended, 1)
		})
	}

	t.Run("duplicates are allowed", func(t *testing.T) {
		wishlistRepo := &mockWishlistRepository{wishlists: map[string]*domain.Wishlist{
			"u1": {ID: "wl-u1", ProfileID: "u1", SessionKeys: []string{sessKey}},
		}}
		sessionRepo := &mockSessionRepository{sessions: map[string]*domain.Session{"s1": sess}}
		svc := NewWishlistService(wishlistRepo, sessionRepo)

		wl, err := svc.AddSession(context.Background(), "u1", sessKey)
		require.NoError(t, err)
		assert.Len(t, wl.SessionKeys, 2)
	})

	t.Run("missing wishlist", func(t *testing.T) {
		svc := NewWishlistService(&mockWishlistRepository{}, &mockSessionRepository{})
		_, err := svc.AddSession(context.Background(), "ghost", sessKey)
		require.ErrorIs(t, err, domain.ErrNotFound)
	})
}

func TestWishlistService_DeleteSession(t *testing.T) {
	sessKey := keys.ForSession("conf-1", "s1").Encode()

	t.Run("removes only the first occurrence", func(t *testing.T) {
		wishlistRepo := &mockWishlistRepository{wishlists: map[string]*domain.Wishlist{
			"u1": {ID: "wl-u1", ProfileID: "u1", SessionKeys: []string{sessKey, sessKey}},
		}}
		svc := NewWishlistService(wishlistRepo, &mockSessionRepository{})

		wl, err := svc.DeleteSession(context.Background(), "u1", sessKey)
		require.NoError(t, err)
		assert.Len(t, wl.SessionKeys, 1)
	})

	t.Run("key not in wishlist", func(t *testing.T) {
		wishlistRepo := &mockWishlistRepository{
			wishlists: map[string]*domain.Wishlist{"u1": {ID: "wl-u1", ProfileID: "u1"}},
			removeErr: domain.ErrNotFound,
		}
		svc := NewWishlistService(wishlistRepo, &mockSessionRepository{})
		_, err := svc.DeleteSession(context.Background(), "u1", sessKey)
		require.ErrorIs(t, err, domain.ErrNotFound)
	})

	t.Run("undecodable key", func(t *testing.T) {
		wishlistRepo := &mockWishlistRepository{
			wishlists: map[string]*domain.Wishlist{"u1": {ID: "wl-u1", ProfileID: "u1"}},
		}
		svc := NewWishlistService(wishlistRepo, &mockSessionRepository{})
		_, err := svc.DeleteSession(context.Background(), "u1", "%%%")
		require.ErrorIs(t, err, domain.ErrNotFound)
	})
}

func TestWishlistService_Get(t *testing.T) {
	wishlistRepo := &mockWishlistRepository{wishlists: map[string]*domain.Wishlist{
		"u1": {ID: "wl-u1", ProfileID: "u1", SessionKeys: []string{"k1"}},
	}}
	svc := NewWishlistService(wishlistRepo, &mockSessionRepository{})

	wl, err := svc.Get(context.Background(), "u1")
	require.NoError(t, err)
	assert.Equal(t, []string{"k1"}, wl.SessionKeys)

	_, err = svc.Get(context.Background(), "ghost")
	require.ErrorIs(t, err, domain.ErrNotFound)
}
