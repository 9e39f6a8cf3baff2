package repository

import (
	"context"
	"time"

	"github.com/pkg/errors"
	"gorm.io/gorm"

	"github.com/citypulse/connect"
	"github.com/citypulse/connect/internal/domain"
	"github.com/citypulse/connect/internal/infrastructure/database/models"
)

type ActivityRepository struct {
	db *gorm.DB
}

func NewActivityRepository(db *gorm.DB) *ActivityRepository {
	return &ActivityRepository{db: db}
}

func (r *ActivityRepository) Create(ctx context.Context, a connect.UserActivity) error {
	row := models.UserActivity{
		ID:              a.ID,
		HostUserID:      a.HostUserID,
		Title:           a.Title,
		Description:     a.Description,
		Category:        a.Category,
		Region:          a.Region,
		Address:         a.Address,
		StartTime:       a.StartTime,
		EndTime:         a.EndTime,
		Visibility:      a.Visibility,
		Going:           a.Going,
		GoingCount:      a.GoingCount,
		Interested:      a.Interested,
		InterestedCount: a.InterestedCount,
	}
	if err := r.db.WithContext(ctx).Create(&row).Error; err != nil {
		return errors.Wrap(err, "failed to create activity")
	}
	return nil
}

func (r *ActivityRepository) Get(ctx context.Context, id string) (connect.UserActivity, error) {
	var row models.UserActivity
	err := r.db.WithContext(ctx).First(&row, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return connect.UserActivity{}, domain.NewNotFound("activity")
		}
		return connect.UserActivity{}, errors.Wrap(err, "failed to get activity")
	}
	return activityFromModel(row), nil
}

// StartingBetween returns public activities whose start time falls inside
// the window, optionally narrowed to a region, ordered by start ascending.
func (r *ActivityRepository) StartingBetween(ctx context.Context, start, end time.Time, region string) ([]connect.UserActivity, error) {
	query := r.db.WithContext(ctx).
		Where("visibility = ?", domain.VisibilityPublic).
		Where("start_time >= ? AND start_time <= ?", start, end)
	if region != "" {
		query = query.Where("region = ?", region)
	}

	var rows []models.UserActivity
	if err := query.Order("start_time ASC").Find(&rows).Error; err != nil {
		return nil, errors.Wrap(err, "failed to query activities in window")
	}

	result := make([]connect.UserActivity, 0, len(rows))
	for _, row := range rows {
		result = append(result, activityFromModel(row))
	}
	return result, nil
}

// AddGoing appends the user to the going set, bumps the counter atomically,
// and drops the user from interested; the two sets are mutually exclusive.
func (r *ActivityRepository) AddGoing(ctx context.Context, activityID, userID string) error {
	err := r.db.WithContext(ctx).
		Model(&models.UserActivity{}).
		Where("id = ?", activityID).
		Updates(map[string]any{
			"going":            gorm.Expr("array_append(coalesce(going, '{}'), ?)", userID),
			"going_count":      gorm.Expr("going_count + 1"),
			"interested":       gorm.Expr("array_remove(coalesce(interested, '{}'), ?)", userID),
			"interested_count": gorm.Expr("greatest(interested_count - (case when ? = any(coalesce(interested, '{}')) then 1 else 0 end), 0)", userID),
		}).Error
	if err != nil {
		return errors.Wrap(err, "failed to add going")
	}
	return nil
}

func (r *ActivityRepository) RemoveGoing(ctx context.Context, activityID, userID string) error {
	err := r.db.WithContext(ctx).
		Model(&models.UserActivity{}).
		Where("id = ?", activityID).
		Updates(map[string]any{
			"going":       gorm.Expr("array_remove(coalesce(going, '{}'), ?)", userID),
			"going_count": gorm.Expr("greatest(going_count - 1, 0)"),
		}).Error
	if err != nil {
		return errors.Wrap(err, "failed to remove going")
	}
	return nil
}

func (r *ActivityRepository) AddInterested(ctx context.Context, activityID, userID string) error {
	err := r.db.WithContext(ctx).
		Model(&models.UserActivity{}).
		Where("id = ?", activityID).
		Updates(map[string]any{
			"interested":       gorm.Expr("array_append(coalesce(interested, '{}'), ?)", userID),
			"interested_count": gorm.Expr("interested_count + 1"),
		}).Error
	if err != nil {
		return errors.Wrap(err, "failed to add interested")
	}
	return nil
}

func (r *ActivityRepository) RemoveInterested(ctx context.Context, activityID, userID string) error {
	err := r.db.WithContext(ctx).
		Model(&models.UserActivity{}).
		Where("id = ?", activityID).
		Updates(map[string]any{
			"interested":       gorm.Expr("array_remove(coalesce(interested, '{}'), ?)", userID),
			"interested_count": gorm.Expr("greatest(interested_count - 1, 0)"),
		}).Error
	if err != nil {
		return errors.Wrap(err, "failed to remove interested")
	}
	return nil
}

func activityFromModel(row models.UserActivity) connect.UserActivity {
	return connect.UserActivity{
		ID:              row.ID,
		HostUserID:      row.HostUserID,
		Title:           row.Title,
		Description:     row.Description,
		Category:        row.Category,
		Region:          row.Region,
		Address:         row.Address,
		StartTime:       row.StartTime,
		EndTime:         row.EndTime,
		Visibility:      row.Visibility,
		Going:           row.Going,
		GoingCount:      row.GoingCount,
		Interested:      row.Interested,
		InterestedCount: row.InterestedCount,
		CreatedAt:       row.CDate,
	}
}
