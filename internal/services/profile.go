package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"conferencecentral/internal/domain"
)

type profileService struct {
	profileRepo  domain.ProfileRepository
	wishlistRepo domain.WishlistRepository
	accountRepo  domain.AccountRepository
}

// NewProfileService creates a ProfileService. The wishlist repository is
// needed because a profile's empty wishlist is created alongside it.
func NewProfileService(profileRepo domain.ProfileRepository, wishlistRepo domain.WishlistRepository, accountRepo domain.AccountRepository) domain.ProfileService {
	return &profileService{
		profileRepo:  profileRepo,
		wishlistRepo: wishlistRepo,
		accountRepo:  accountRepo,
	}
}

func (s *profileService) GetOrCreate(ctx context.Context, userID string) (*domain.Profile, error) {
	profile, err := s.profileRepo.GetByID(ctx, userID)
	if err == nil {
		return profile, nil
	}
	if !errors.Is(err, domain.ErrNotFound) {
		return nil, fmt.Errorf("get profile: %w", err)
	}

	account, err := s.accountRepo.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get account: %w", err)
	}

	// First profile access: seed display name from the email's local part.
	displayName, _, _ := strings.Cut(account.Email, "@")
	now := time.Now()
	profile = domain.NewProfile(userID, displayName, account.Email, domain.TeeShirtSizeNotSpecified, now, now)
	if err := s.profileRepo.Create(ctx, profile); err != nil {
		return nil, fmt.Errorf("create profile: %w", err)
	}
	if err := s.wishlistRepo.Create(ctx, &domain.Wishlist{ProfileID: userID}); err != nil {
		return nil, fmt.Errorf("create wishlist: %w", err)
	}
	return profile, nil
}

func (s *profileService) Save(ctx context.Context, userID, displayName, teeShirtSize string) (*domain.Profile, error) {
	profile, err := s.GetOrCreate(ctx, userID)
	if err != nil {
		return nil, err
	}

	if displayName != "" {
		profile.DisplayName = displayName
	}
	if teeShirtSize != "" {
		if !domain.ValidTeeShirtSize(teeShirtSize) {
			return nil, fmt.Errorf("%w: unknown tee shirt size %q", domain.ErrInvalidInput, teeShirtSize)
		}
		profile.TeeShirtSize = teeShirtSize
	}
	profile.UpdatedAt = time.Now()

	if err := s.profileRepo.Update(ctx, profile); err != nil {
		return nil, fmt.Errorf("update profile: %w", err)
	}
	return profile, nil
}
