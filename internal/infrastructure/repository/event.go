package repository

import (
	"context"
	"time"

	"github.com/pkg/errors"
	"gorm.io/gorm"

	"github.com/citypulse/connect"
	"github.com/citypulse/connect/internal/infrastructure/database/models"
)

type EventRepository struct {
	db *gorm.DB
}

func NewEventRepository(db *gorm.DB) *EventRepository {
	return &EventRepository{db: db}
}

func (r *EventRepository) StartingBetween(ctx context.Context, start, end time.Time, region string) ([]connect.EventRecord, error) {
	query := r.db.WithContext(ctx).
		Where("start_time >= ? AND start_time <= ?", start, end)
	if region != "" {
		query = query.Where("region = ?", region)
	}

	var rows []models.Event
	if err := query.Order("start_time ASC").Find(&rows).Error; err != nil {
		return nil, errors.Wrap(err, "failed to query events in window")
	}

	result := make([]connect.EventRecord, 0, len(rows))
	for _, row := range rows {
		result = append(result, eventFromModel(row))
	}
	return result, nil
}

// Join appends the user to the event's going set and bumps the counter in
// one atomic update.
func (r *EventRepository) Join(ctx context.Context, eventID, userID string) error {
	err := r.db.WithContext(ctx).
		Model(&models.Event{}).
		Where("id = ?", eventID).
		Updates(map[string]any{
			"going":       gorm.Expr("array_append(coalesce(going, '{}'), ?)", userID),
			"going_count": gorm.Expr("going_count + 1"),
		}).Error
	if err != nil {
		return errors.Wrap(err, "failed to join event")
	}
	return nil
}

func eventFromModel(row models.Event) connect.EventRecord {
	var coords *connect.GeoPoint
	if row.Lat != nil && row.Lng != nil {
		coords = &connect.GeoPoint{Lat: *row.Lat, Lng: *row.Lng}
	}
	return connect.EventRecord{
		ID:          row.ID,
		Title:       row.Title,
		Description: row.Description,
		Category:    row.Category,
		Region:      row.Region,
		Address:     row.Address,
		Organizer:   row.Organizer,
		StartTime:   row.StartTime,
		EndTime:     row.EndTime,
		GoingCount:  row.GoingCount,
		Images:      row.Images,
		Coordinates: coords,
	}
}
