package connect

import (
	"time"
)

// PresenceWindow is how long a check-in counts as "here now".
const PresenceWindow = 4 * time.Hour

const (
	ActiveCheckInLimit    = 100
	TrendingLookbackLimit = 200
)

const (
	BadgeHotSpot     = "Hot Spot"
	BadgeHotRightNow = "Hot Right Now"
	BadgeTopRated    = "Top Rated"
)

// CheckIn is a timestamped presence claim by a user at a venue. Immutable
// once written; it leaves the active set when ExpiresAt passes, it is never
// deleted here.
type CheckIn struct {
	ID              string    `json:"id"`
	VenueID         string    `json:"venueId"`
	VenueType       string    `json:"venueType"`
	UserID          string    `json:"userId"`
	UserDisplayName string    `json:"userDisplayName,omitempty"`
	UserAvatarURL   string    `json:"userAvatarUrl,omitempty"`
	RecordedAt      time.Time `json:"recordedAt"`
	ExpiresAt       time.Time `json:"expiresAt"`
}

// Stamp is a one-time-per-venue credential awarded for checking in.
type Stamp struct {
	ID            string    `json:"id"`
	UserID        string    `json:"userId"`
	VenueID       string    `json:"venueId"`
	VenueType     string    `json:"venueType"`
	VenueName     string    `json:"venueName"`
	VenueAddress  string    `json:"venueAddress,omitempty"`
	Category      string    `json:"category,omitempty"`
	Region        string    `json:"region,omitempty"`
	Icon          string    `json:"icon"`
	EarnedAt      time.Time `json:"earnedAt"`
	SourceCheckIn string    `json:"sourceCheckInId,omitempty"`
}

// CredibilityProfile rolls stamps and check-ins up into a per-user score.
type CredibilityProfile struct {
	UserID           string    `json:"userId"`
	CredibilityScore int       `json:"credibilityScore"`
	TotalCheckIns    int       `json:"totalCheckIns"`
	TotalStamps      int       `json:"totalStamps"`
	Rank             Rank      `json:"rank"`
	LastUpdated      time.Time `json:"lastUpdated"`
}

// FeedItemType discriminates the feed item union.
type FeedItemType string

const (
	FeedItemUserActivity FeedItemType = "userActivity"
	FeedItemEvent        FeedItemType = "event"
	FeedItemCurated      FeedItemType = "curated"
)

// ItemStatus is recomputed from the item's time window at read time and is
// never persisted.
type ItemStatus string

const (
	StatusUpcoming ItemStatus = "upcoming"
	StatusLive     ItemStatus = "live"
	StatusEnded    ItemStatus = "ended"
)

type GeoPoint struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// FeedItem is the tagged union of everything a feed channel can carry.
// Only the fields of the variant named by Type are populated; use the
// New*Item constructors rather than filling it by hand.
type FeedItem struct {
	ID          string       `json:"id"`
	Type        FeedItemType `json:"type"`
	Title       string       `json:"title"`
	Description string       `json:"description,omitempty"`
	Category    string       `json:"category,omitempty"`
	Region      string       `json:"region,omitempty"`
	StartTime   *time.Time   `json:"startTime,omitempty"`
	EndTime     *time.Time   `json:"endTime,omitempty"`
	Images      []string     `json:"images,omitempty"`
	Address     string       `json:"address,omitempty"`
	Coordinates *GeoPoint    `json:"coordinates,omitempty"`
	Status      ItemStatus   `json:"status"`
	Badges      []string     `json:"badges"`

	// userActivity only
	HostUserID string `json:"hostUserId,omitempty"`
	GoingCount int    `json:"goingCount,omitempty"`
	Visibility string `json:"visibility,omitempty"`

	// event only
	Organizer string `json:"organizer,omitempty"`

	// curated only
	Section  string `json:"section,omitempty"`
	Priority int    `json:"priority,omitempty"`
}

// LiveVenueView is a derived live-presence row, never persisted.
type LiveVenueView struct {
	VenueID        string    `json:"venueId"`
	Title          string    `json:"title"`
	Category       string    `json:"category,omitempty"`
	Region         string    `json:"region,omitempty"`
	Coordinates    *GeoPoint `json:"coordinates,omitempty"`
	Images         []string  `json:"images,omitempty"`
	CheckInCount   int       `json:"checkInCount"`
	RecentCheckIns []CheckIn `json:"recentCheckIns"`
	Badges         []string  `json:"badges"`
}

// TrendingVenueView is a derived trending row with its heat score.
type TrendingVenueView struct {
	VenueID      string    `json:"venueId"`
	Title        string    `json:"title"`
	Category     string    `json:"category,omitempty"`
	Region       string    `json:"region,omitempty"`
	Coordinates  *GeoPoint `json:"coordinates,omitempty"`
	Images       []string  `json:"images,omitempty"`
	CheckInCount int       `json:"checkInCount"`
	HeatScore    int       `json:"heatScore"`
	Badges       []string  `json:"badges"`
}

// ConnectFeedResult is the composed five-channel feed. Every slot is
// non-nil; a channel that failed to load is an empty slice.
type ConnectFeedResult struct {
	LiveNow       []LiveVenueView     `json:"liveNow"`
	TodayItems    []FeedItem          `json:"todayItems"`
	WeekItems     []FeedItem          `json:"weekItems"`
	TrendingItems []TrendingVenueView `json:"trendingItems"`
	FeaturedItems []FeedItem          `json:"featuredItems"`
}

// UserActivity is a user-authored happening with its engagement sets.
// Going and Interested are mutually exclusive for a given user.
type UserActivity struct {
	ID              string    `json:"id"`
	HostUserID      string    `json:"hostUserId"`
	Title           string    `json:"title"`
	Description     string    `json:"description,omitempty"`
	Category        string    `json:"category,omitempty"`
	Region          string    `json:"region,omitempty"`
	Address         string    `json:"address,omitempty"`
	StartTime       time.Time `json:"startTime"`
	EndTime         time.Time `json:"endTime"`
	Visibility      string    `json:"visibility"`
	Going           []string  `json:"going"`
	GoingCount      int       `json:"goingCount"`
	Interested      []string  `json:"interested"`
	InterestedCount int       `json:"interestedCount"`
	CreatedAt       time.Time `json:"createdAt"`
}

// VenueMetadata is display metadata owned by the external catalog service,
// referenced by (venueID, venueType) and never persisted here.
type VenueMetadata struct {
	Title       string    `json:"title"`
	Category    string    `json:"category,omitempty"`
	Region      string    `json:"region,omitempty"`
	Images      []string  `json:"images,omitempty"`
	Coordinates *GeoPoint `json:"coordinates,omitempty"`
	Address     string    `json:"address,omitempty"`
	Rating      float64   `json:"rating,omitempty"`
	ReviewCount int       `json:"reviewCount,omitempty"`
}

// CatalogListing is a catalog search result: a venue reference plus its
// display metadata.
type CatalogListing struct {
	ID        string `json:"id"`
	VenueType string `json:"venueType"`
	VenueMetadata
}

// Event is the envelope published on the signal bus when the ledger changes.
type Event struct {
	Channel   string    `json:"channel"`
	Type      string    `json:"type"`
	CheckIn   *CheckIn  `json:"checkIn,omitempty"`
	Timestamp time.Time `json:"timestamp"`
}
