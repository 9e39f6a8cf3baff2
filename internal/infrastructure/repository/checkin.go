package repository

import (
	"context"
	"time"

	"github.com/pkg/errors"
	"gorm.io/gorm"

	"github.com/citypulse/connect"
	"github.com/citypulse/connect/internal/infrastructure/database/models"
)

type CheckInRepository struct {
	db *gorm.DB
}

func NewCheckInRepository(db *gorm.DB) *CheckInRepository {
	return &CheckInRepository{db: db}
}

func (r *CheckInRepository) Create(ctx context.Context, c connect.CheckIn) error {
	row := models.CheckIn{
		ID:              c.ID,
		VenueID:         c.VenueID,
		VenueType:       c.VenueType,
		UserID:          c.UserID,
		UserDisplayName: c.UserDisplayName,
		UserAvatarURL:   c.UserAvatarURL,
		RecordedAt:      c.RecordedAt,
		ExpiresAt:       c.ExpiresAt,
	}
	if err := r.db.WithContext(ctx).Create(&row).Error; err != nil {
		return errors.Wrap(err, "failed to create checkin")
	}
	return nil
}

// Active returns unexpired check-ins, newest window first.
func (r *CheckInRepository) Active(ctx context.Context, now time.Time, limit int) ([]connect.CheckIn, error) {
	var rows []models.CheckIn
	err := r.db.WithContext(ctx).
		Where("expires_at > ?", now).
		Order("expires_at DESC").
		Limit(limit).
		Find(&rows).Error
	if err != nil {
		return nil, errors.Wrap(err, "failed to query active checkins")
	}
	return checkInsFromModels(rows), nil
}

// ActiveSince returns check-ins recorded at or after windowStart.
func (r *CheckInRepository) ActiveSince(ctx context.Context, windowStart time.Time, limit int) ([]connect.CheckIn, error) {
	var rows []models.CheckIn
	err := r.db.WithContext(ctx).
		Where("recorded_at >= ?", windowStart).
		Order("recorded_at DESC").
		Limit(limit).
		Find(&rows).Error
	if err != nil {
		return nil, errors.Wrap(err, "failed to query checkins since window start")
	}
	return checkInsFromModels(rows), nil
}

func checkInsFromModels(rows []models.CheckIn) []connect.CheckIn {
	result := make([]connect.CheckIn, 0, len(rows))
	for _, row := range rows {
		result = append(result, connect.CheckIn{
			ID:              row.ID,
			VenueID:         row.VenueID,
			VenueType:       row.VenueType,
			UserID:          row.UserID,
			UserDisplayName: row.UserDisplayName,
			UserAvatarURL:   row.UserAvatarURL,
			RecordedAt:      row.RecordedAt,
			ExpiresAt:       row.ExpiresAt,
		})
	}
	return result
}
