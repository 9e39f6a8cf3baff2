package connect

import (
	"testing"
	"time"
)

func TestStatusAt(t *testing.T) {
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)
	before := now.Add(-2 * time.Hour)
	after := now.Add(2 * time.Hour)

	if got := StatusAt(&after, nil, now); got != StatusUpcoming {
		t.Errorf("future start = %s, want upcoming", got)
	}
	if got := StatusAt(&before, &after, now); got != StatusLive {
		t.Errorf("inside window = %s, want live", got)
	}
	earlier := now.Add(-4 * time.Hour)
	if got := StatusAt(&earlier, &before, now); got != StatusEnded {
		t.Errorf("past window = %s, want ended", got)
	}
	if got := StatusAt(nil, nil, now); got != StatusUpcoming {
		t.Errorf("no start time = %s, want upcoming", got)
	}
	if got := StatusAt(&before, nil, now); got != StatusLive {
		t.Errorf("started with no end = %s, want live", got)
	}
}

func TestNewUserActivityItemVariantFields(t *testing.T) {
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)
	activity := UserActivity{
		ID:         "a1",
		HostUserID: "u1",
		Title:      "Picnic",
		StartTime:  now.Add(time.Hour),
		EndTime:    now.Add(3 * time.Hour),
		Visibility: "public",
		GoingCount: 3,
	}

	item := NewUserActivityItem(activity, now)

	if item.Type != FeedItemUserActivity {
		t.Fatalf("type = %s, want userActivity", item.Type)
	}
	if item.Status != StatusUpcoming {
		t.Errorf("status = %s, want upcoming", item.Status)
	}
	if item.HostUserID != "u1" || item.GoingCount != 3 {
		t.Errorf("activity fields not carried over: %+v", item)
	}
	if item.Organizer != "" || item.Section != "" {
		t.Errorf("foreign variant fields must stay empty: %+v", item)
	}
	if item.Badges == nil {
		t.Errorf("badges must be non-nil")
	}
}

func TestNewEventItemVariantFields(t *testing.T) {
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)
	event := EventRecord{
		ID:        "e1",
		Title:     "Concert",
		Organizer: "The Venue",
		StartTime: now.Add(-time.Hour),
		EndTime:   now.Add(time.Hour),
	}

	item := NewEventItem(event, now)

	if item.Type != FeedItemEvent {
		t.Fatalf("type = %s, want event", item.Type)
	}
	if item.Status != StatusLive {
		t.Errorf("status = %s, want live", item.Status)
	}
	if item.Organizer != "The Venue" {
		t.Errorf("organizer not carried over")
	}
	if item.HostUserID != "" || item.Section != "" {
		t.Errorf("foreign variant fields must stay empty: %+v", item)
	}
}

func TestNewCuratedItemVariantFields(t *testing.T) {
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)
	entry := CuratedEntry{
		ID:       "c1",
		Section:  "featured",
		Title:    "Editor's pick",
		Priority: 7,
	}

	item := NewCuratedItem(entry, now)

	if item.Type != FeedItemCurated {
		t.Fatalf("type = %s, want curated", item.Type)
	}
	if item.Section != "featured" || item.Priority != 7 {
		t.Errorf("curated fields not carried over: %+v", item)
	}
	if item.Status != StatusUpcoming {
		t.Errorf("timeless curated item = %s, want upcoming", item.Status)
	}
	if item.HostUserID != "" || item.Organizer != "" {
		t.Errorf("foreign variant fields must stay empty: %+v", item)
	}
}
