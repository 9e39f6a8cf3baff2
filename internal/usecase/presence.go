package usecase

import (
	"context"
	"sort"
	"time"

	"github.com/citypulse/connect"
)

const (
	hotSpotThreshold  = 5
	recentCheckInsCap = 5
)

// SkippedVenue records a venue dropped during hydration and why, so
// callers and tests can assert on what went missing instead of reading
// logs.
type SkippedVenue struct {
	VenueID string
	Reason  string
}

// PresenceUsecase aggregates the ledger's active set into live-venue
// views.
type PresenceUsecase struct {
	checkins CheckInRepository
	catalog  CatalogGateway
	now      func() time.Time
}

func NewPresenceUsecase(checkins CheckInRepository, catalog CatalogGateway) *PresenceUsecase {
	return &PresenceUsecase{
		checkins: checkins,
		catalog:  catalog,
		now:      time.Now,
	}
}

type venueGroup struct {
	venueID   string
	venueType string
	count     int
	recent    []connect.CheckIn
}

// groupByVenue buckets check-ins per venue, preserving arrival order so
// the recent slice keeps the freshest entries the ledger returned first.
func groupByVenue(checkins []connect.CheckIn, recentCap int) []venueGroup {
	index := make(map[string]int)
	groups := []venueGroup{}

	for _, c := range checkins {
		i, ok := index[c.VenueID]
		if !ok {
			i = len(groups)
			index[c.VenueID] = i
			groups = append(groups, venueGroup{venueID: c.VenueID, venueType: c.VenueType})
		}
		groups[i].count++
		if len(groups[i].recent) < recentCap {
			groups[i].recent = append(groups[i].recent, c)
		}
	}
	return groups
}

// LiveVenues resolves each active venue's metadata and ranks the venues by
// simultaneous check-in count. Venues whose catalog lookup fails or comes
// back empty are reported in skipped, not in the result: presence without
// a resolvable venue is not surfaced.
func (uc *PresenceUsecase) LiveVenues(ctx context.Context, region string) ([]connect.LiveVenueView, []SkippedVenue, error) {
	active, err := uc.checkins.Active(ctx, uc.now(), connect.ActiveCheckInLimit)
	if err != nil {
		return nil, nil, err
	}

	groups := groupByVenue(active, recentCheckInsCap)

	views := []connect.LiveVenueView{}
	skipped := []SkippedVenue{}

	for _, g := range groups {
		meta, err := uc.catalog.ResolveVenue(ctx, g.venueID, g.venueType)
		if err != nil {
			skipped = append(skipped, SkippedVenue{VenueID: g.venueID, Reason: err.Error()})
			continue
		}
		if meta == nil {
			skipped = append(skipped, SkippedVenue{VenueID: g.venueID, Reason: "no catalog metadata"})
			continue
		}
		if region != "" && meta.Region != region {
			continue
		}

		badges := []string{}
		if g.count >= hotSpotThreshold {
			badges = append(badges, connect.BadgeHotSpot)
		}

		views = append(views, connect.LiveVenueView{
			VenueID:        g.venueID,
			Title:          meta.Title,
			Category:       meta.Category,
			Region:         meta.Region,
			Coordinates:    meta.Coordinates,
			Images:         meta.Images,
			CheckInCount:   g.count,
			RecentCheckIns: g.recent,
			Badges:         badges,
		})
	}

	sort.SliceStable(views, func(i, j int) bool {
		return views[i].CheckInCount > views[j].CheckInCount
	})

	return views, skipped, nil
}
