package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/citypulse/connect"
)

// AwardInput carries everything needed to mint a stamp for a check-in.
type AwardInput struct {
	UserID        string
	VenueID       string
	VenueType     string
	VenueName     string
	VenueAddress  string
	Category      string
	Region        string
	Icon          string
	SourceCheckIn string
}

type CredibilityUsecase struct {
	stamps   StampRepository
	profiles ProfileRepository
}

func NewCredibilityUsecase(stamps StampRepository, profiles ProfileRepository) *CredibilityUsecase {
	return &CredibilityUsecase{
		stamps:   stamps,
		profiles: profiles,
	}
}

// AwardStamp mints at most one stamp per (user, venue). The idempotency
// guard is an existence query before the insert, not a transaction: two
// concurrent awards for the same pair can both pass the check. Known gap,
// kept as the documented contract.
func (uc *CredibilityUsecase) AwardStamp(ctx context.Context, input AwardInput) (*connect.Stamp, error) {
	exists, err := uc.stamps.ExistsForUserVenue(ctx, input.UserID, input.VenueID)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, nil
	}

	icon := input.Icon
	if icon == "" {
		icon = connect.DefaultIconFor(input.VenueType)
	}

	stamp := connect.Stamp{
		ID:            uuid.New().String(),
		UserID:        input.UserID,
		VenueID:       input.VenueID,
		VenueType:     input.VenueType,
		VenueName:     input.VenueName,
		VenueAddress:  input.VenueAddress,
		Category:      input.Category,
		Region:        input.Region,
		Icon:          icon,
		EarnedAt:      time.Now(),
		SourceCheckIn: input.SourceCheckIn,
	}

	if err := uc.stamps.Create(ctx, stamp); err != nil {
		return nil, err
	}

	if err := uc.updateCredibility(ctx, input.UserID, 1); err != nil {
		return nil, err
	}

	return &stamp, nil
}

// updateCredibility bumps the score counter atomically, then writes the
// rank computed from the score read BEFORE the increment. Concurrent
// awards can leave the rank behind the true score until the next award;
// the counter itself never drifts.
func (uc *CredibilityUsecase) updateCredibility(ctx context.Context, userID string, delta int) error {
	profile, err := uc.profiles.Get(ctx, userID)
	if err != nil {
		return err
	}

	if profile == nil {
		return uc.profiles.Create(ctx, connect.CredibilityProfile{
			UserID:           userID,
			CredibilityScore: delta,
			TotalStamps:      1,
			Rank:             connect.RankOf(delta),
			LastUpdated:      time.Now(),
		})
	}

	if err := uc.profiles.AddScore(ctx, userID, delta); err != nil {
		return err
	}
	return uc.profiles.SetRank(ctx, userID, connect.RankOf(profile.CredibilityScore+delta))
}

// IncrementCheckInCount tracks raw check-in volume, independent of stamps.
// It never touches score or rank.
func (uc *CredibilityUsecase) IncrementCheckInCount(ctx context.Context, userID string) error {
	profile, err := uc.profiles.Get(ctx, userID)
	if err != nil {
		return err
	}

	if profile == nil {
		return uc.profiles.Create(ctx, connect.CredibilityProfile{
			UserID:        userID,
			TotalCheckIns: 1,
			Rank:          connect.RankOf(0),
			LastUpdated:   time.Now(),
		})
	}
	return uc.profiles.AddCheckInCount(ctx, userID)
}

// Profile returns nil for users with no profile yet; that is a valid
// state, not an error.
func (uc *CredibilityUsecase) Profile(ctx context.Context, userID string) (*connect.CredibilityProfile, error) {
	return uc.profiles.Get(ctx, userID)
}

func (uc *CredibilityUsecase) Stamps(ctx context.Context, userID string) ([]connect.Stamp, error) {
	return uc.stamps.ListByUser(ctx, userID)
}
