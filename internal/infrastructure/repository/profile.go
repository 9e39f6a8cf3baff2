package repository

import (
	"context"
	"time"

	"github.com/pkg/errors"
	"gorm.io/gorm"

	"github.com/citypulse/connect"
	"github.com/citypulse/connect/internal/infrastructure/database/models"
)

type ProfileRepository struct {
	db *gorm.DB
}

func NewProfileRepository(db *gorm.DB) *ProfileRepository {
	return &ProfileRepository{db: db}
}

// Get returns nil when no profile exists; "no profile yet" is a valid
// state, not an error.
func (r *ProfileRepository) Get(ctx context.Context, userID string) (*connect.CredibilityProfile, error) {
	var row models.CredibilityProfile
	err := r.db.WithContext(ctx).First(&row, "user_id = ?", userID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, errors.Wrap(err, "failed to get credibility profile")
	}

	profile := profileFromModel(row)
	return &profile, nil
}

func (r *ProfileRepository) Create(ctx context.Context, p connect.CredibilityProfile) error {
	row := models.CredibilityProfile{
		UserID:           p.UserID,
		CredibilityScore: p.CredibilityScore,
		TotalCheckIns:    p.TotalCheckIns,
		TotalStamps:      p.TotalStamps,
		Rank:             string(p.Rank),
		LastUpdated:      p.LastUpdated,
	}
	if err := r.db.WithContext(ctx).Create(&row).Error; err != nil {
		return errors.Wrap(err, "failed to create credibility profile")
	}
	return nil
}

// AddScore applies the score and stamp-count deltas as a single atomic SQL
// increment. The rank is NOT touched here; see SetRank.
func (r *ProfileRepository) AddScore(ctx context.Context, userID string, delta int) error {
	err := r.db.WithContext(ctx).
		Model(&models.CredibilityProfile{}).
		Where("user_id = ?", userID).
		Updates(map[string]any{
			"credibility_score": gorm.Expr("credibility_score + ?", delta),
			"total_stamps":      gorm.Expr("total_stamps + 1"),
			"last_updated":      time.Now(),
		}).Error
	if err != nil {
		return errors.Wrap(err, "failed to increment credibility score")
	}
	return nil
}

// SetRank writes the rank independently of the counter increment. Callers
// compute it from a score read before the increment, so concurrent awards
// can leave it stale; that write pattern is the documented contract.
func (r *ProfileRepository) SetRank(ctx context.Context, userID string, rank connect.Rank) error {
	err := r.db.WithContext(ctx).
		Model(&models.CredibilityProfile{}).
		Where("user_id = ?", userID).
		Update("rank", string(rank)).Error
	if err != nil {
		return errors.Wrap(err, "failed to set rank")
	}
	return nil
}

// AddCheckInCount bumps the raw check-in counter atomically without
// touching score or rank.
func (r *ProfileRepository) AddCheckInCount(ctx context.Context, userID string) error {
	err := r.db.WithContext(ctx).
		Model(&models.CredibilityProfile{}).
		Where("user_id = ?", userID).
		Updates(map[string]any{
			"total_check_ins": gorm.Expr("total_check_ins + 1"),
			"last_updated":    time.Now(),
		}).Error
	if err != nil {
		return errors.Wrap(err, "failed to increment checkin count")
	}
	return nil
}

func profileFromModel(row models.CredibilityProfile) connect.CredibilityProfile {
	return connect.CredibilityProfile{
		UserID:           row.UserID,
		CredibilityScore: row.CredibilityScore,
		TotalCheckIns:    row.TotalCheckIns,
		TotalStamps:      row.TotalStamps,
		Rank:             connect.Rank(row.Rank),
		LastUpdated:      row.LastUpdated,
	}
}
