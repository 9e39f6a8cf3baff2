package usecase

import (
	"context"
	"sort"
	"time"

	"github.com/citypulse/connect"
)

// --- shared mocks ---

type mockCheckInRepo struct {
	checkins  []connect.CheckIn
	createErr error
	queryErr  error
}

func (m *mockCheckInRepo) Create(ctx context.Context, c connect.CheckIn) error {
	if m.createErr != nil {
		return m.createErr
	}
	m.checkins = append(m.checkins, c)
	return nil
}

func (m *mockCheckInRepo) Active(ctx context.Context, now time.Time, limit int) ([]connect.CheckIn, error) {
	if m.queryErr != nil {
		return nil, m.queryErr
	}
	result := []connect.CheckIn{}
	for _, c := range m.checkins {
		if c.ExpiresAt.After(now) {
			result = append(result, c)
		}
	}
	sort.SliceStable(result, func(i, j int) bool {
		return result[i].ExpiresAt.After(result[j].ExpiresAt)
	})
	if len(result) > limit {
		result = result[:limit]
	}
	return result, nil
}

func (m *mockCheckInRepo) ActiveSince(ctx context.Context, windowStart time.Time, limit int) ([]connect.CheckIn, error) {
	if m.queryErr != nil {
		return nil, m.queryErr
	}
	result := []connect.CheckIn{}
	for _, c := range m.checkins {
		if !c.RecordedAt.Before(windowStart) {
			result = append(result, c)
		}
	}
	if len(result) > limit {
		result = result[:limit]
	}
	return result, nil
}

type mockStampRepo struct {
	stamps    []connect.Stamp
	existsErr error
	createErr error
}

func (m *mockStampRepo) ExistsForUserVenue(ctx context.Context, userID, venueID string) (bool, error) {
	if m.existsErr != nil {
		return false, m.existsErr
	}
	for _, s := range m.stamps {
		if s.UserID == userID && s.VenueID == venueID {
			return true, nil
		}
	}
	return false, nil
}

func (m *mockStampRepo) Create(ctx context.Context, s connect.Stamp) error {
	if m.createErr != nil {
		return m.createErr
	}
	m.stamps = append(m.stamps, s)
	return nil
}

func (m *mockStampRepo) ListByUser(ctx context.Context, userID string) ([]connect.Stamp, error) {
	result := []connect.Stamp{}
	for _, s := range m.stamps {
		if s.UserID == userID {
			result = append(result, s)
		}
	}
	return result, nil
}

type mockProfileRepo struct {
	profiles map[string]*connect.CredibilityProfile
	rankSets []connect.Rank
}

func newMockProfileRepo() *mockProfileRepo {
	return &mockProfileRepo{profiles: map[string]*connect.CredibilityProfile{}}
}

func (m *mockProfileRepo) Get(ctx context.Context, userID string) (*connect.CredibilityProfile, error) {
	p, ok := m.profiles[userID]
	if !ok {
		return nil, nil
	}
	clone := *p
	return &clone, nil
}

func (m *mockProfileRepo) Create(ctx context.Context, p connect.CredibilityProfile) error {
	clone := p
	m.profiles[p.UserID] = &clone
	return nil
}

func (m *mockProfileRepo) AddScore(ctx context.Context, userID string, delta int) error {
	p := m.profiles[userID]
	p.CredibilityScore += delta
	p.TotalStamps++
	return nil
}

func (m *mockProfileRepo) SetRank(ctx context.Context, userID string, rank connect.Rank) error {
	m.profiles[userID].Rank = rank
	m.rankSets = append(m.rankSets, rank)
	return nil
}

func (m *mockProfileRepo) AddCheckInCount(ctx context.Context, userID string) error {
	m.profiles[userID].TotalCheckIns++
	return nil
}

type mockActivityRepo struct {
	activities        map[string]*connect.UserActivity
	goingAdded        []string
	goingRemoved      []string
	interestedAdded   []string
	interestedRemoved []string
	queryErr          error
}

func newMockActivityRepo() *mockActivityRepo {
	return &mockActivityRepo{activities: map[string]*connect.UserActivity{}}
}

func (m *mockActivityRepo) Create(ctx context.Context, a connect.UserActivity) error {
	clone := a
	m.activities[a.ID] = &clone
	return nil
}

func (m *mockActivityRepo) Get(ctx context.Context, id string) (connect.UserActivity, error) {
	if a, ok := m.activities[id]; ok {
		return *a, nil
	}
	return connect.UserActivity{}, nil
}

func (m *mockActivityRepo) StartingBetween(ctx context.Context, start, end time.Time, region string) ([]connect.UserActivity, error) {
	if m.queryErr != nil {
		return nil, m.queryErr
	}
	result := []connect.UserActivity{}
	for _, a := range m.activities {
		if a.StartTime.Before(start) || a.StartTime.After(end) {
			continue
		}
		if region != "" && a.Region != region {
			continue
		}
		result = append(result, *a)
	}
	sort.SliceStable(result, func(i, j int) bool {
		return result[i].StartTime.Before(result[j].StartTime)
	})
	return result, nil
}

func (m *mockActivityRepo) AddGoing(ctx context.Context, activityID, userID string) error {
	m.goingAdded = append(m.goingAdded, activityID+"/"+userID)
	return nil
}

func (m *mockActivityRepo) RemoveGoing(ctx context.Context, activityID, userID string) error {
	m.goingRemoved = append(m.goingRemoved, activityID+"/"+userID)
	return nil
}

func (m *mockActivityRepo) AddInterested(ctx context.Context, activityID, userID string) error {
	m.interestedAdded = append(m.interestedAdded, activityID+"/"+userID)
	return nil
}

func (m *mockActivityRepo) RemoveInterested(ctx context.Context, activityID, userID string) error {
	m.interestedRemoved = append(m.interestedRemoved, activityID+"/"+userID)
	return nil
}

type mockEventRepo struct {
	events   []connect.EventRecord
	joined   []string
	queryErr error
}

func (m *mockEventRepo) StartingBetween(ctx context.Context, start, end time.Time, region string) ([]connect.EventRecord, error) {
	if m.queryErr != nil {
		return nil, m.queryErr
	}
	result := []connect.EventRecord{}
	for _, e := range m.events {
		if e.StartTime.Before(start) || e.StartTime.After(end) {
			continue
		}
		if region != "" && e.Region != region {
			continue
		}
		result = append(result, e)
	}
	sort.SliceStable(result, func(i, j int) bool {
		return result[i].StartTime.Before(result[j].StartTime)
	})
	return result, nil
}

func (m *mockEventRepo) Join(ctx context.Context, eventID, userID string) error {
	m.joined = append(m.joined, eventID+"/"+userID)
	return nil
}

type mockCuratedRepo struct {
	entries  map[string][]connect.CuratedEntry
	queryErr error
}

func (m *mockCuratedRepo) BySection(ctx context.Context, section, region string) ([]connect.CuratedEntry, error) {
	if m.queryErr != nil {
		return nil, m.queryErr
	}
	result := []connect.CuratedEntry{}
	for _, e := range m.entries[section] {
		if region != "" && e.Region != "" && e.Region != region {
			continue
		}
		result = append(result, e)
	}
	return result, nil
}

type mockCatalog struct {
	venues   map[string]*connect.VenueMetadata
	failures map[string]error
	listings []connect.CatalogListing
	topErr   error
}

func newMockCatalog() *mockCatalog {
	return &mockCatalog{
		venues:   map[string]*connect.VenueMetadata{},
		failures: map[string]error{},
	}
}

func (m *mockCatalog) ResolveVenue(ctx context.Context, venueID, venueType string) (*connect.VenueMetadata, error) {
	if err, ok := m.failures[venueID]; ok {
		return nil, err
	}
	return m.venues[venueID], nil
}

func (m *mockCatalog) TopRated(ctx context.Context, region string, minRating float64, limit int) ([]connect.CatalogListing, error) {
	if m.topErr != nil {
		return nil, m.topErr
	}
	if len(m.listings) > limit {
		return m.listings[:limit], nil
	}
	return m.listings, nil
}

type mockSignal struct {
	published []connect.Event
}

func (m *mockSignal) Publish(ctx context.Context, channel string, event connect.Event) error {
	m.published = append(m.published, event)
	return nil
}
