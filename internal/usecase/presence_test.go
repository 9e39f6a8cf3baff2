package usecase

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/citypulse/connect"
)

func seedCheckIns(repo *mockCheckInRepo, venueID string, count int, now time.Time) {
	for i := 0; i < count; i++ {
		repo.checkins = append(repo.checkins, connect.CheckIn{
			ID:         fmt.Sprintf("%s-%d", venueID, i),
			VenueID:    venueID,
			VenueType:  "bar",
			UserID:     fmt.Sprintf("user-%d", i),
			RecordedAt: now.Add(-time.Duration(i) * time.Minute),
			ExpiresAt:  now.Add(connect.PresenceWindow),
		})
	}
}

func TestLiveVenuesOrderedByCountWithHotSpotBadge(t *testing.T) {
	now := time.Now()
	repo := &mockCheckInRepo{}
	seedCheckIns(repo, "v5", 5, now)
	seedCheckIns(repo, "v2", 2, now)
	seedCheckIns(repo, "v8", 8, now)

	catalog := newMockCatalog()
	catalog.venues["v5"] = &connect.VenueMetadata{Title: "Five"}
	catalog.venues["v2"] = &connect.VenueMetadata{Title: "Two"}
	catalog.venues["v8"] = &connect.VenueMetadata{Title: "Eight"}

	uc := NewPresenceUsecase(repo, catalog)

	views, skipped, err := uc.LiveVenues(context.Background(), "")
	if err != nil {
		t.Fatalf("live venues failed: %v", err)
	}
	if len(skipped) != 0 {
		t.Fatalf("nothing should be skipped, got %+v", skipped)
	}
	if len(views) != 3 {
		t.Fatalf("expected 3 venues, got %d", len(views))
	}

	counts := []int{views[0].CheckInCount, views[1].CheckInCount, views[2].CheckInCount}
	if counts[0] != 8 || counts[1] != 5 || counts[2] != 2 {
		t.Fatalf("order = %v, want [8 5 2]", counts)
	}

	if len(views[0].Badges) != 1 || views[0].Badges[0] != connect.BadgeHotSpot {
		t.Errorf("count-8 venue should carry Hot Spot, got %v", views[0].Badges)
	}
	if len(views[1].Badges) != 1 || views[1].Badges[0] != connect.BadgeHotSpot {
		t.Errorf("count-5 venue should carry Hot Spot, got %v", views[1].Badges)
	}
	if len(views[2].Badges) != 0 {
		t.Errorf("count-2 venue should carry no badge, got %v", views[2].Badges)
	}
}

func TestLiveVenuesExcludesExpired(t *testing.T) {
	now := time.Now()
	repo := &mockCheckInRepo{}
	seedCheckIns(repo, "open", 2, now)
	repo.checkins = append(repo.checkins, connect.CheckIn{
		ID:         "stale",
		VenueID:    "closed",
		VenueType:  "bar",
		UserID:     "u9",
		RecordedAt: now.Add(-5 * time.Hour),
		ExpiresAt:  now.Add(-time.Hour),
	})

	catalog := newMockCatalog()
	catalog.venues["open"] = &connect.VenueMetadata{Title: "Open"}
	catalog.venues["closed"] = &connect.VenueMetadata{Title: "Closed"}

	uc := NewPresenceUsecase(repo, catalog)

	views, _, err := uc.LiveVenues(context.Background(), "")
	if err != nil {
		t.Fatalf("live venues failed: %v", err)
	}
	if len(views) != 1 || views[0].VenueID != "open" {
		t.Fatalf("expired check-in leaked into live view: %+v", views)
	}
}

func TestLiveVenuesSkipsUnresolvable(t *testing.T) {
	now := time.Now()
	repo := &mockCheckInRepo{}
	seedCheckIns(repo, "good", 3, now)
	seedCheckIns(repo, "broken", 2, now)
	seedCheckIns(repo, "ghost", 1, now)

	catalog := newMockCatalog()
	catalog.venues["good"] = &connect.VenueMetadata{Title: "Good"}
	catalog.failures["broken"] = fmt.Errorf("catalog unavailable")
	// "ghost" resolves to nothing

	uc := NewPresenceUsecase(repo, catalog)

	views, skipped, err := uc.LiveVenues(context.Background(), "")
	if err != nil {
		t.Fatalf("live venues failed: %v", err)
	}
	if len(views) != 1 || views[0].VenueID != "good" {
		t.Fatalf("expected only the resolvable venue, got %+v", views)
	}
	if len(skipped) != 2 {
		t.Fatalf("expected 2 skipped venues, got %+v", skipped)
	}

	reasons := map[string]string{}
	for _, s := range skipped {
		reasons[s.VenueID] = s.Reason
	}
	if reasons["broken"] != "catalog unavailable" {
		t.Errorf("broken venue reason = %q", reasons["broken"])
	}
	if reasons["ghost"] != "no catalog metadata" {
		t.Errorf("ghost venue reason = %q", reasons["ghost"])
	}
}

func TestLiveVenuesRecentCheckInsCapped(t *testing.T) {
	now := time.Now()
	repo := &mockCheckInRepo{}
	seedCheckIns(repo, "busy", 9, now)

	catalog := newMockCatalog()
	catalog.venues["busy"] = &connect.VenueMetadata{Title: "Busy"}

	uc := NewPresenceUsecase(repo, catalog)

	views, _, err := uc.LiveVenues(context.Background(), "")
	if err != nil {
		t.Fatalf("live venues failed: %v", err)
	}
	if views[0].CheckInCount != 9 {
		t.Errorf("count = %d, want 9", views[0].CheckInCount)
	}
	if len(views[0].RecentCheckIns) != 5 {
		t.Errorf("recent = %d, want cap of 5", len(views[0].RecentCheckIns))
	}
}

func TestLiveVenuesRegionFilter(t *testing.T) {
	now := time.Now()
	repo := &mockCheckInRepo{}
	seedCheckIns(repo, "north", 2, now)
	seedCheckIns(repo, "south", 2, now)

	catalog := newMockCatalog()
	catalog.venues["north"] = &connect.VenueMetadata{Title: "North", Region: "north-side"}
	catalog.venues["south"] = &connect.VenueMetadata{Title: "South", Region: "south-side"}

	uc := NewPresenceUsecase(repo, catalog)

	views, skipped, err := uc.LiveVenues(context.Background(), "north-side")
	if err != nil {
		t.Fatalf("live venues failed: %v", err)
	}
	if len(views) != 1 || views[0].VenueID != "north" {
		t.Fatalf("region filter failed: %+v", views)
	}
	if len(skipped) != 0 {
		t.Errorf("region mismatch is a filter, not a skip: %+v", skipped)
	}
}
