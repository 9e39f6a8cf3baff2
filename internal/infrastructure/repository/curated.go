package repository

import (
	"context"

	"github.com/pkg/errors"
	"gorm.io/gorm"

	"github.com/citypulse/connect"
	"github.com/citypulse/connect/internal/infrastructure/database/models"
)

type CuratedRepository struct {
	db *gorm.DB
}

func NewCuratedRepository(db *gorm.DB) *CuratedRepository {
	return &CuratedRepository{db: db}
}

// BySection returns curated entries for a feed section, highest priority
// first. Entries without a region apply everywhere; entries with one only
// match the requested region.
func (r *CuratedRepository) BySection(ctx context.Context, section, region string) ([]connect.CuratedEntry, error) {
	query := r.db.WithContext(ctx).Where("section = ?", section)
	if region != "" {
		query = query.Where("(region = '' OR region = ?)", region)
	}

	var rows []models.CuratedEntry
	if err := query.Order("priority DESC").Find(&rows).Error; err != nil {
		return nil, errors.Wrap(err, "failed to query curated entries")
	}

	result := make([]connect.CuratedEntry, 0, len(rows))
	for _, row := range rows {
		result = append(result, connect.CuratedEntry{
			ID:          row.ID,
			Section:     row.Section,
			Title:       row.Title,
			Description: row.Description,
			Category:    row.Category,
			Region:      row.Region,
			Address:     row.Address,
			Images:      row.Images,
			Priority:    row.Priority,
			StartTime:   row.StartTime,
			EndTime:     row.EndTime,
		})
	}
	return result, nil
}
