package usecase

import (
	"context"
	"time"

	"github.com/citypulse/connect"
)

// CheckInRepository is the presence ledger's storage. Append-only; reads
// are filtered by expiry or recording time, never by deletion.
type CheckInRepository interface {
	Create(ctx context.Context, c connect.CheckIn) error
	Active(ctx context.Context, now time.Time, limit int) ([]connect.CheckIn, error)
	ActiveSince(ctx context.Context, windowStart time.Time, limit int) ([]connect.CheckIn, error)
}

// StampRepository defines storage for awarded stamps.
type StampRepository interface {
	ExistsForUserVenue(ctx context.Context, userID, venueID string) (bool, error)
	Create(ctx context.Context, s connect.Stamp) error
	ListByUser(ctx context.Context, userID string) ([]connect.Stamp, error)
}

// ProfileRepository defines storage for credibility profiles. Counter
// mutations must be atomic in the store; the rank write is separate.
type ProfileRepository interface {
	Get(ctx context.Context, userID string) (*connect.CredibilityProfile, error)
	Create(ctx context.Context, p connect.CredibilityProfile) error
	AddScore(ctx context.Context, userID string, delta int) error
	SetRank(ctx context.Context, userID string, rank connect.Rank) error
	AddCheckInCount(ctx context.Context, userID string) error
}

// ActivityRepository defines storage for user-authored activities and
// their going/interested engagement sets.
type ActivityRepository interface {
	Create(ctx context.Context, a connect.UserActivity) error
	Get(ctx context.Context, id string) (connect.UserActivity, error)
	StartingBetween(ctx context.Context, start, end time.Time, region string) ([]connect.UserActivity, error)
	AddGoing(ctx context.Context, activityID, userID string) error
	RemoveGoing(ctx context.Context, activityID, userID string) error
	AddInterested(ctx context.Context, activityID, userID string) error
	RemoveInterested(ctx context.Context, activityID, userID string) error
}

// EventRepository defines storage for venue-hosted events.
type EventRepository interface {
	StartingBetween(ctx context.Context, start, end time.Time, region string) ([]connect.EventRecord, error)
	Join(ctx context.Context, eventID, userID string) error
}

// CuratedRepository defines storage for manually authored feed entries.
type CuratedRepository interface {
	BySection(ctx context.Context, section, region string) ([]connect.CuratedEntry, error)
}

// CatalogGateway resolves venue display metadata owned by the external
// catalog service. ResolveVenue returns nil, nil for unknown venues.
type CatalogGateway interface {
	ResolveVenue(ctx context.Context, venueID, venueType string) (*connect.VenueMetadata, error)
	TopRated(ctx context.Context, region string, minRating float64, limit int) ([]connect.CatalogListing, error)
}

// SignalPublisher fans ledger change events out to realtime subscribers.
type SignalPublisher interface {
	Publish(ctx context.Context, channel string, event connect.Event) error
}
