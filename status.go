package connect

import (
	"time"
)

// StatusAt derives an item's lifecycle status from its time window. Items
// without a start time are always upcoming; items without an end time stay
// live once started.
func StatusAt(start, end *time.Time, now time.Time) ItemStatus {
	if start == nil || now.Before(*start) {
		return StatusUpcoming
	}
	if end != nil && now.After(*end) {
		return StatusEnded
	}
	return StatusLive
}

// NewUserActivityItem builds the userActivity variant of the feed union.
func NewUserActivityItem(a UserActivity, now time.Time) FeedItem {
	start := a.StartTime
	end := a.EndTime
	return FeedItem{
		ID:          a.ID,
		Type:        FeedItemUserActivity,
		Title:       a.Title,
		Description: a.Description,
		Category:    a.Category,
		Region:      a.Region,
		Address:     a.Address,
		StartTime:   &start,
		EndTime:     &end,
		Status:      StatusAt(&start, &end, now),
		Badges:      []string{},
		HostUserID:  a.HostUserID,
		GoingCount:  a.GoingCount,
		Visibility:  a.Visibility,
	}
}

// EventRecord is a venue-hosted event as stored.
type EventRecord struct {
	ID          string
	Title       string
	Description string
	Category    string
	Region      string
	Address     string
	Organizer   string
	StartTime   time.Time
	EndTime     time.Time
	GoingCount  int
	Images      []string
	Coordinates *GeoPoint
}

// NewEventItem builds the event variant of the feed union.
func NewEventItem(e EventRecord, now time.Time) FeedItem {
	start := e.StartTime
	end := e.EndTime
	return FeedItem{
		ID:          e.ID,
		Type:        FeedItemEvent,
		Title:       e.Title,
		Description: e.Description,
		Category:    e.Category,
		Region:      e.Region,
		Address:     e.Address,
		Images:      e.Images,
		Coordinates: e.Coordinates,
		StartTime:   &start,
		EndTime:     &end,
		Status:      StatusAt(&start, &end, now),
		Badges:      []string{},
		Organizer:   e.Organizer,
		GoingCount:  e.GoingCount,
	}
}

// CuratedEntry is a manually authored feed entry.
type CuratedEntry struct {
	ID          string
	Section     string
	Title       string
	Description string
	Category    string
	Region      string
	Address     string
	Images      []string
	Priority    int
	StartTime   *time.Time
	EndTime     *time.Time
}

// NewCuratedItem builds the curated variant of the feed union.
func NewCuratedItem(e CuratedEntry, now time.Time) FeedItem {
	return FeedItem{
		ID:          e.ID,
		Type:        FeedItemCurated,
		Title:       e.Title,
		Description: e.Description,
		Category:    e.Category,
		Region:      e.Region,
		Address:     e.Address,
		Images:      e.Images,
		StartTime:   e.StartTime,
		EndTime:     e.EndTime,
		Status:      StatusAt(e.StartTime, e.EndTime, now),
		Badges:      []string{},
		Section:     e.Section,
		Priority:    e.Priority,
	}
}
