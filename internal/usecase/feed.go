package usecase

import (
	"context"
	"log/slog"
	"sort"
	"sync"
	"time"

	"go.opentelemetry.io/otel"

	"github.com/citypulse/connect"
	"github.com/citypulse/connect/internal/domain"
)

var tracer = otel.Tracer("feed")

const (
	trendingMinCheckIns  = 2
	trendingHotThreshold = 5
	trendingLimit        = 10
	featuredTarget       = 10
	featuredMinRating    = 4.0
)

// FeedUsecase composes the five-channel Connect feed.
type FeedUsecase struct {
	presence   *PresenceUsecase
	checkins   CheckInRepository
	activities ActivityRepository
	events     EventRepository
	curated    CuratedRepository
	catalog    CatalogGateway
	now        func() time.Time
}

func NewFeedUsecase(
	presence *PresenceUsecase,
	checkins CheckInRepository,
	activities ActivityRepository,
	events EventRepository,
	curated CuratedRepository,
	catalog CatalogGateway,
) *FeedUsecase {
	return &FeedUsecase{
		presence:   presence,
		checkins:   checkins,
		activities: activities,
		events:     events,
		curated:    curated,
		catalog:    catalog,
		now:        time.Now,
	}
}

// ComposeFeed fans the five channel queries out concurrently and joins
// them. It always returns a well-formed result: a channel that failed is
// logged and left as its empty slice, the others are unaffected.
func (uc *FeedUsecase) ComposeFeed(ctx context.Context, region string) connect.ConnectFeedResult {
	ctx, span := tracer.Start(ctx, "Feed.Compose")
	defer span.End()

	result := connect.ConnectFeedResult{
		LiveNow:       []connect.LiveVenueView{},
		TodayItems:    []connect.FeedItem{},
		WeekItems:     []connect.FeedItem{},
		TrendingItems: []connect.TrendingVenueView{},
		FeaturedItems: []connect.FeedItem{},
	}

	var wg sync.WaitGroup
	wg.Add(5)

	go func() {
		defer wg.Done()
		live, skipped, err := uc.presence.LiveVenues(ctx, region)
		if err != nil {
			logChannelFailure(ctx, "live", err)
			return
		}
		for _, s := range skipped {
			slog.WarnContext(ctx, "live venue dropped",
				slog.String("venue", s.VenueID),
				slog.String("reason", s.Reason),
				slog.String("module", "feed"),
			)
		}
		result.LiveNow = live
	}()

	go func() {
		defer wg.Done()
		items, err := uc.TodayItems(ctx, region)
		if err != nil {
			logChannelFailure(ctx, "today", err)
			return
		}
		result.TodayItems = items
	}()

	go func() {
		defer wg.Done()
		items, err := uc.WeekItems(ctx, region)
		if err != nil {
			logChannelFailure(ctx, "week", err)
			return
		}
		result.WeekItems = items
	}()

	go func() {
		defer wg.Done()
		items, skipped, err := uc.TrendingItems(ctx, region)
		if err != nil {
			logChannelFailure(ctx, "trending", err)
			return
		}
		for _, s := range skipped {
			slog.WarnContext(ctx, "trending venue dropped",
				slog.String("venue", s.VenueID),
				slog.String("reason", s.Reason),
				slog.String("module", "feed"),
			)
		}
		result.TrendingItems = items
	}()

	go func() {
		defer wg.Done()
		items, err := uc.FeaturedItems(ctx, region)
		if err != nil {
			logChannelFailure(ctx, "featured", err)
			return
		}
		result.FeaturedItems = items
	}()

	wg.Wait()
	return result
}

func logChannelFailure(ctx context.Context, channel string, err error) {
	slog.WarnContext(ctx, "feed channel failed",
		slog.String("channel", channel),
		slog.String("error", err.Error()),
		slog.String("module", "feed"),
	)
}

// TodayItems returns activities and events starting today plus curated
// today entries, sorted by start time ascending.
func (uc *FeedUsecase) TodayItems(ctx context.Context, region string) ([]connect.FeedItem, error) {
	now := uc.now()
	window := connect.TodayWindow(now)

	activities, err := uc.activities.StartingBetween(ctx, window.Start, window.End, region)
	if err != nil {
		return nil, err
	}

	events, err := uc.events.StartingBetween(ctx, window.Start, window.End, region)
	if err != nil {
		return nil, err
	}

	curated, err := uc.curated.BySection(ctx, domain.SectionToday, region)
	if err != nil {
		return nil, err
	}

	items := []connect.FeedItem{}
	for _, a := range activities {
		items = append(items, connect.NewUserActivityItem(a, now))
	}
	for _, e := range events {
		items = append(items, connect.NewEventItem(e, now))
	}
	for _, c := range curated {
		items = append(items, connect.NewCuratedItem(c, now))
	}

	sortByStartAscending(items)
	return items, nil
}

// WeekItems returns events in the week window plus curated week entries.
// Early in the week the window jumps to the coming weekend; see
// connect.WeekWindow.
func (uc *FeedUsecase) WeekItems(ctx context.Context, region string) ([]connect.FeedItem, error) {
	now := uc.now()
	window := connect.WeekWindow(now)

	events, err := uc.events.StartingBetween(ctx, window.Start, window.End, region)
	if err != nil {
		return nil, err
	}

	curated, err := uc.curated.BySection(ctx, domain.SectionWeek, region)
	if err != nil {
		return nil, err
	}

	items := []connect.FeedItem{}
	for _, e := range events {
		items = append(items, connect.NewEventItem(e, now))
	}
	for _, c := range curated {
		items = append(items, connect.NewCuratedItem(c, now))
	}

	sortByStartAscending(items)
	return items, nil
}

// TrendingItems ranks venues by heat over the last 24 hours of ledger
// activity. heat = checkInsInWindow*2 + externalReviewCount. Venues whose
// catalog lookup fails or comes back empty are reported in skipped, same
// contract as PresenceUsecase.LiveVenues.
func (uc *FeedUsecase) TrendingItems(ctx context.Context, region string) ([]connect.TrendingVenueView, []SkippedVenue, error) {
	now := uc.now()

	recent, err := uc.checkins.ActiveSince(ctx, connect.TrendingWindowStart(now), connect.TrendingLookbackLimit)
	if err != nil {
		return nil, nil, err
	}

	views := []connect.TrendingVenueView{}
	skipped := []SkippedVenue{}

	for _, g := range groupByVenue(recent, recentCheckInsCap) {
		if g.count < trendingMinCheckIns {
			continue
		}

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
		if g.count >= trendingHotThreshold {
			badges = append(badges, connect.BadgeHotRightNow)
		}

		views = append(views, connect.TrendingVenueView{
			VenueID:      g.venueID,
			Title:        meta.Title,
			Category:     meta.Category,
			Region:       meta.Region,
			Coordinates:  meta.Coordinates,
			Images:       meta.Images,
			CheckInCount: g.count,
			HeatScore:    g.count*2 + meta.ReviewCount,
			Badges:       badges,
		})
	}

	sort.SliceStable(views, func(i, j int) bool {
		return views[i].HeatScore > views[j].HeatScore
	})

	if len(views) > trendingLimit {
		views = views[:trendingLimit]
	}
	return views, skipped, nil
}

// FeaturedItems starts from curated featured entries and pads with
// top-rated catalog listings up to the target size. Curated entries always
// come first.
func (uc *FeedUsecase) FeaturedItems(ctx context.Context, region string) ([]connect.FeedItem, error) {
	now := uc.now()

	curated, err := uc.curated.BySection(ctx, domain.SectionFeatured, region)
	if err != nil {
		return nil, err
	}

	items := []connect.FeedItem{}
	for _, c := range curated {
		items = append(items, connect.NewCuratedItem(c, now))
	}

	if len(items) >= featuredTarget {
		return items[:featuredTarget], nil
	}

	listings, err := uc.catalog.TopRated(ctx, region, featuredMinRating, featuredTarget-len(items))
	if err != nil {
		// padding is best-effort; curated entries still go out
		slog.WarnContext(ctx, "featured padding failed",
			slog.String("error", err.Error()),
			slog.String("module", "feed"),
		)
		return items, nil
	}

	for _, l := range listings {
		if len(items) >= featuredTarget {
			break
		}
		items = append(items, connect.FeedItem{
			ID:          l.ID,
			Type:        connect.FeedItemCurated,
			Title:       l.Title,
			Category:    l.Category,
			Region:      l.Region,
			Address:     l.Address,
			Images:      l.Images,
			Coordinates: l.Coordinates,
			Status:      connect.StatusUpcoming,
			Badges:      []string{connect.BadgeTopRated},
		})
	}
	return items, nil
}

func sortByStartAscending(items []connect.FeedItem) {
	sort.SliceStable(items, func(i, j int) bool {
		a, b := items[i].StartTime, items[j].StartTime
		if a == nil {
			return false
		}
		if b == nil {
			return true
		}
		return a.Before(*b)
	})
}
