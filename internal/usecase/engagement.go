package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/citypulse/connect"
	"github.com/citypulse/connect/internal/domain"
)

// ErrMissingTimes rejects timed activities without explicit start and end.
var ErrMissingTimes = fmt.Errorf("timed activity requires start and end times")

// CreateActivityInput describes a new user-authored activity. Either
// AllDay with Date, or explicit StartTime/EndTime.
type CreateActivityInput struct {
	HostUserID  string
	Title       string
	Description string
	Category    string
	Region      string
	Address     string
	AllDay      bool
	Date        time.Time
	StartTime   *time.Time
	EndTime     *time.Time
	Visibility  string
}

type EngagementUsecase struct {
	activities ActivityRepository
	events     EventRepository
}

func NewEngagementUsecase(activities ActivityRepository, events EventRepository) *EngagementUsecase {
	return &EngagementUsecase{
		activities: activities,
		events:     events,
	}
}

// JoinEvent records the user on the event's going set and bumps the
// counter atomically.
func (uc *EngagementUsecase) JoinEvent(ctx context.Context, userID, eventID string) error {
	return uc.events.Join(ctx, eventID, userID)
}

// ToggleGoing flips the user's going state. Adding to going also removes
// the user from interested; the two sets are mutually exclusive.
func (uc *EngagementUsecase) ToggleGoing(ctx context.Context, activityID, userID string, isCurrentlyGoing bool) error {
	if isCurrentlyGoing {
		return uc.activities.RemoveGoing(ctx, activityID, userID)
	}
	return uc.activities.AddGoing(ctx, activityID, userID)
}

// ToggleInterested flips the user's interested state, independent of
// going.
func (uc *EngagementUsecase) ToggleInterested(ctx context.Context, activityID, userID string, isCurrentlyInterested bool) error {
	if isCurrentlyInterested {
		return uc.activities.RemoveInterested(ctx, activityID, userID)
	}
	return uc.activities.AddInterested(ctx, activityID, userID)
}

// CreateActivity normalizes an all-day vs timed activity into explicit
// start and end times, defaults visibility to public, and seeds the
// creator into the going set.
func (uc *EngagementUsecase) CreateActivity(ctx context.Context, input CreateActivityInput) (connect.UserActivity, error) {
	var start, end time.Time
	if input.AllDay {
		d := input.Date
		start = time.Date(d.Year(), d.Month(), d.Day(), 0, 0, 0, 0, d.Location())
		end = time.Date(d.Year(), d.Month(), d.Day(), 23, 59, 59, 999000000, d.Location())
	} else {
		if input.StartTime == nil || input.EndTime == nil {
			return connect.UserActivity{}, ErrMissingTimes
		}
		start = *input.StartTime
		end = *input.EndTime
	}

	visibility := input.Visibility
	if visibility == "" {
		visibility = domain.VisibilityPublic
	}

	activity := connect.UserActivity{
		ID:          uuid.New().String(),
		HostUserID:  input.HostUserID,
		Title:       input.Title,
		Description: input.Description,
		Category:    input.Category,
		Region:      input.Region,
		Address:     input.Address,
		StartTime:   start,
		EndTime:     end,
		Visibility:  visibility,
		Going:       []string{input.HostUserID},
		GoingCount:  1,
		Interested:  []string{},
		CreatedAt:   time.Now(),
	}

	if err := uc.activities.Create(ctx, activity); err != nil {
		return connect.UserActivity{}, err
	}
	return activity, nil
}
