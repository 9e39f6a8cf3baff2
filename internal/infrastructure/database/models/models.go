package models

import (
	"time"

	"github.com/lib/pq"
)

type CheckIn struct {
	ID              string    `json:"id" gorm:"primaryKey;type:text"`
	VenueID         string    `json:"venueId" gorm:"type:text;index;not null"`
	VenueType       string    `json:"venueType" gorm:"type:text;not null"`
	UserID          string    `json:"userId" gorm:"type:text;index;not null"`
	UserDisplayName string    `json:"userDisplayName" gorm:"type:text"`
	UserAvatarURL   string    `json:"userAvatarUrl" gorm:"type:text"`
	RecordedAt      time.Time `json:"recordedAt" gorm:"type:timestamp with time zone;index;not null"`
	ExpiresAt       time.Time `json:"expiresAt" gorm:"type:timestamp with time zone;index;not null"`
}

type Stamp struct {
	ID            string    `json:"id" gorm:"primaryKey;type:text"`
	UserID        string    `json:"userId" gorm:"type:text;index:idx_stamp_user_venue;not null"`
	VenueID       string    `json:"venueId" gorm:"type:text;index:idx_stamp_user_venue;not null"`
	VenueType     string    `json:"venueType" gorm:"type:text;not null"`
	VenueName     string    `json:"venueName" gorm:"type:text;not null"`
	VenueAddress  string    `json:"venueAddress" gorm:"type:text"`
	Category      string    `json:"category" gorm:"type:text"`
	Region        string    `json:"region" gorm:"type:text"`
	Icon          string    `json:"icon" gorm:"type:text"`
	EarnedAt      time.Time `json:"earnedAt" gorm:"->;<-:create;type:timestamp with time zone;not null;default:clock_timestamp()"`
	SourceCheckIn string    `json:"sourceCheckInId" gorm:"type:text"`
}

type CredibilityProfile struct {
	UserID           string    `json:"userId" gorm:"primaryKey;type:text"`
	CredibilityScore int       `json:"credibilityScore" gorm:"not null;default:0"`
	TotalCheckIns    int       `json:"totalCheckIns" gorm:"not null;default:0"`
	TotalStamps      int       `json:"totalStamps" gorm:"not null;default:0"`
	Rank             string    `json:"rank" gorm:"type:text;not null"`
	LastUpdated      time.Time `json:"lastUpdated" gorm:"type:timestamp with time zone;not null"`
}

type UserActivity struct {
	ID              string         `json:"id" gorm:"primaryKey;type:text"`
	HostUserID      string         `json:"hostUserId" gorm:"type:text;index;not null"`
	Title           string         `json:"title" gorm:"type:text;not null"`
	Description     string         `json:"description" gorm:"type:text"`
	Category        string         `json:"category" gorm:"type:text"`
	Region          string         `json:"region" gorm:"type:text;index"`
	Address         string         `json:"address" gorm:"type:text"`
	StartTime       time.Time      `json:"startTime" gorm:"type:timestamp with time zone;index;not null"`
	EndTime         time.Time      `json:"endTime" gorm:"type:timestamp with time zone;not null"`
	Visibility      string         `json:"visibility" gorm:"type:text;not null"`
	Going           pq.StringArray `json:"going" gorm:"type:text[]"`
	GoingCount      int            `json:"goingCount" gorm:"not null;default:0"`
	Interested      pq.StringArray `json:"interested" gorm:"type:text[]"`
	InterestedCount int            `json:"interestedCount" gorm:"not null;default:0"`
	CDate           time.Time      `json:"cdate" gorm:"->;<-:create;type:timestamp with time zone;not null;default:clock_timestamp()"`
}

type Event struct {
	ID          string         `json:"id" gorm:"primaryKey;type:text"`
	Title       string         `json:"title" gorm:"type:text;not null"`
	Description string         `json:"description" gorm:"type:text"`
	Category    string         `json:"category" gorm:"type:text"`
	Region      string         `json:"region" gorm:"type:text;index"`
	Address     string         `json:"address" gorm:"type:text"`
	Organizer   string         `json:"organizer" gorm:"type:text"`
	StartTime   time.Time      `json:"startTime" gorm:"type:timestamp with time zone;index;not null"`
	EndTime     time.Time      `json:"endTime" gorm:"type:timestamp with time zone;not null"`
	GoingCount  int            `json:"goingCount" gorm:"not null;default:0"`
	Going       pq.StringArray `json:"going" gorm:"type:text[]"`
	Images      pq.StringArray `json:"images" gorm:"type:text[]"`
	Lat         *float64       `json:"lat"`
	Lng         *float64       `json:"lng"`
	CDate       time.Time      `json:"cdate" gorm:"->;<-:create;type:timestamp with time zone;not null;default:clock_timestamp()"`
}

type CuratedEntry struct {
	ID          string         `json:"id" gorm:"primaryKey;type:text"`
	Section     string         `json:"section" gorm:"type:text;index;not null"`
	Title       string         `json:"title" gorm:"type:text;not null"`
	Description string         `json:"description" gorm:"type:text"`
	Category    string         `json:"category" gorm:"type:text"`
	Region      string         `json:"region" gorm:"type:text"`
	Address     string         `json:"address" gorm:"type:text"`
	Images      pq.StringArray `json:"images" gorm:"type:text[]"`
	Priority    int            `json:"priority" gorm:"not null;default:0"`
	StartTime   *time.Time     `json:"startTime" gorm:"type:timestamp with time zone"`
	EndTime     *time.Time     `json:"endTime" gorm:"type:timestamp with time zone"`
	CDate       time.Time      `json:"cdate" gorm:"->;<-:create;type:timestamp with time zone;not null;default:clock_timestamp()"`
}
