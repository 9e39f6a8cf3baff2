package repository

import (
	"context"

	"github.com/pkg/errors"
	"gorm.io/gorm"

	"github.com/citypulse/connect"
	"github.com/citypulse/connect/internal/infrastructure/database/models"
)

type StampRepository struct {
	db *gorm.DB
}

func NewStampRepository(db *gorm.DB) *StampRepository {
	return &StampRepository{db: db}
}

// ExistsForUserVenue reports whether the user already holds a stamp for the
// venue. This is the pre-write idempotency check; there is deliberately no
// uniqueness constraint backing it.
func (r *StampRepository) ExistsForUserVenue(ctx context.Context, userID, venueID string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.Stamp{}).
		Where("user_id = ? AND venue_id = ?", userID, venueID).
		Count(&count).Error
	if err != nil {
		return false, errors.Wrap(err, "failed to check stamp existence")
	}
	return count > 0, nil
}

// Create persists the stamp as awarded, EarnedAt included; the stored row
// must match what the caller already handed out.
func (r *StampRepository) Create(ctx context.Context, s connect.Stamp) error {
	row := stampToModel(s)
	if err := r.db.WithContext(ctx).Create(&row).Error; err != nil {
		return errors.Wrap(err, "failed to create stamp")
	}
	return nil
}

func (r *StampRepository) ListByUser(ctx context.Context, userID string) ([]connect.Stamp, error) {
	var rows []models.Stamp
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("earned_at DESC").
		Find(&rows).Error
	if err != nil {
		return nil, errors.Wrap(err, "failed to list stamps")
	}

	result := make([]connect.Stamp, 0, len(rows))
	for _, row := range rows {
		result = append(result, stampFromModel(row))
	}
	return result, nil
}

func stampToModel(s connect.Stamp) models.Stamp {
	return models.Stamp{
		ID:            s.ID,
		UserID:        s.UserID,
		VenueID:       s.VenueID,
		VenueType:     s.VenueType,
		VenueName:     s.VenueName,
		VenueAddress:  s.VenueAddress,
		Category:      s.Category,
		Region:        s.Region,
		Icon:          s.Icon,
		EarnedAt:      s.EarnedAt,
		SourceCheckIn: s.SourceCheckIn,
	}
}

func stampFromModel(row models.Stamp) connect.Stamp {
	return connect.Stamp{
		ID:            row.ID,
		UserID:        row.UserID,
		VenueID:       row.VenueID,
		VenueType:     row.VenueType,
		VenueName:     row.VenueName,
		VenueAddress:  row.VenueAddress,
		Category:      row.Category,
		Region:        row.Region,
		Icon:          row.Icon,
		EarnedAt:      row.EarnedAt,
		SourceCheckIn: row.SourceCheckIn,
	}
}
