package services

import (
	"context"
	"errors"
	"fmt"

	"conferencecentral/internal/domain"
	"conferencecentral/internal/keys"
)

type wishlistService struct {
	wishlistRepo domain.WishlistRepository
	sessionRepo  domain.SessionRepository
}

func NewWishlistService(wishlistRepo domain.WishlistRepository, sessionRepo domain.SessionRepository) domain.WishlistService {
	return &wishlistService{
		wishlistRepo: wishlistRepo,
		sessionRepo:  sessionRepo,
	}
}

func (s *wishlistService) AddSession(ctx context.Context, userID, websafeSessionKey string) (*domain.Wishlist, error) {
	wl, err := s.wishlistRepo.GetByProfileID(ctx, userID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get wishlist: %w", err)
	}

	// A key that does not resolve to an existing session is treated the
	// same as a missing session.
	confID, sessID, err := keys.DecodeSession(websafeSessionKey)
	if err != nil {
		return nil, fmt.Errorf("%w: no session found for key", domain.ErrNotFound)
	}
	sess, err := s.sessionRepo.GetByID(ctx, sessID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, fmt.Errorf("%w: no session found for key", domain.ErrNotFound)
		}
		return nil, fmt.Errorf("get session: %w", err)
	}
	if sess.ConferenceID != confID {
		return nil, fmt.Errorf("%w: no session found for key", domain.ErrNotFound)
	}

	// Stored keys are canonical; duplicates are allowed.
	canonical := keys.ForSession(sess.ConferenceID, sess.ID).Encode()
	if err := s.wishlistRepo.AppendSessionKey(ctx, wl.ID, canonical); err != nil {
		return nil, fmt.Errorf("append session key: %w", err)
	}
	wl.SessionKeys = append(wl.SessionKeys, canonical)
	return wl, nil
}

func (s *wishlistService) DeleteSession(ctx context.Context, userID, websafeSessionKey string) (*domain.Wishlist, error) {
	wl, err := s.wishlistRepo.GetByProfileID(ctx, userID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get wishlist: %w", err)
	}

	confID, sessID, err := keys.DecodeSession(websafeSessionKey)
	if err != nil {
		return nil, fmt.Errorf("%w: session key not in wishlist", domain.ErrNotFound)
	}
	canonical := keys.ForSession(confID, sessID).Encode()

	// Removes the first occurrence only; a duplicated key stays listed.
	if err := s.wishlistRepo.RemoveSessionKey(ctx, wl.ID, canonical); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, fmt.Errorf("%w: session key not in wishlist", domain.ErrNotFound)
		}
		return nil, fmt.Errorf("remove session key: %w", err)
	}
	for i, k := range wl.SessionKeys {
		if k == canonical {
			wl.SessionKeys = append(wl.SessionKeys[:i], wl.SessionKeys[i+1:]...)
			break
		}
	}
	return wl, nil
}

func (s *wishlistService) Get(ctx context.Context, userID string) (*domain.Wishlist, error) {
	wl, err := s.wishlistRepo.GetByProfileID(ctx, userID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get wishlist: %w", err)
	}
	return wl, nil
}
