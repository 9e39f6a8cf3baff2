package usecase

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/citypulse/connect"
	"github.com/citypulse/connect/internal/domain"
)

// RecordInput is a user's presence claim at a venue.
type RecordInput struct {
	UserID          string
	VenueID         string
	VenueType       string
	UserDisplayName string
	UserAvatarURL   string
}

// LedgerUsecase owns the append-only presence ledger. Repeated check-ins
// are legal and simply add presence weight.
type LedgerUsecase struct {
	checkins    CheckInRepository
	credibility *CredibilityUsecase
	catalog     CatalogGateway
	signal      SignalPublisher
	now         func() time.Time
}

func NewLedgerUsecase(
	checkins CheckInRepository,
	credibility *CredibilityUsecase,
	catalog CatalogGateway,
	signal SignalPublisher,
) *LedgerUsecase {
	return &LedgerUsecase{
		checkins:    checkins,
		credibility: credibility,
		catalog:     catalog,
		signal:      signal,
		now:         time.Now,
	}
}

// Record writes one check-in valid for the presence window. The ledger
// write failure propagates; the downstream credibility award and the
// realtime signal are fire-and-forget relative to it.
func (uc *LedgerUsecase) Record(ctx context.Context, input RecordInput) (connect.CheckIn, error) {
	now := uc.now()

	checkin := connect.CheckIn{
		ID:              uuid.New().String(),
		VenueID:         input.VenueID,
		VenueType:       input.VenueType,
		UserID:          input.UserID,
		UserDisplayName: input.UserDisplayName,
		UserAvatarURL:   input.UserAvatarURL,
		RecordedAt:      now,
		ExpiresAt:       now.Add(connect.PresenceWindow),
	}

	if err := uc.checkins.Create(ctx, checkin); err != nil {
		return connect.CheckIn{}, err
	}

	if uc.signal != nil {
		event := connect.Event{
			Channel:   domain.SignalChannelCheckIns,
			Type:      domain.EventTypeCheckInRecorded,
			CheckIn:   &checkin,
			Timestamp: now,
		}
		if err := uc.signal.Publish(ctx, domain.SignalChannelCheckIns, event); err != nil {
			slog.WarnContext(ctx, "failed to publish checkin event",
				slog.String("error", err.Error()),
				slog.String("module", "ledger"),
			)
		}
	}

	uc.awardForCheckIn(ctx, input, checkin)

	return checkin, nil
}

// awardForCheckIn bumps the user's check-in counter and fires the stamp
// award. Failures here are logged, never surfaced to the check-in caller.
func (uc *LedgerUsecase) awardForCheckIn(ctx context.Context, input RecordInput, checkin connect.CheckIn) {
	if uc.credibility == nil {
		return
	}

	if err := uc.credibility.IncrementCheckInCount(ctx, input.UserID); err != nil {
		slog.WarnContext(ctx, "failed to increment checkin count",
			slog.String("error", err.Error()),
			slog.String("user", input.UserID),
			slog.String("module", "ledger"),
		)
	}

	award := AwardInput{
		UserID:        input.UserID,
		VenueID:       input.VenueID,
		VenueType:     input.VenueType,
		VenueName:     input.VenueID,
		SourceCheckIn: checkin.ID,
	}

	if uc.catalog != nil {
		meta, err := uc.catalog.ResolveVenue(ctx, input.VenueID, input.VenueType)
		if err == nil && meta != nil {
			award.VenueName = meta.Title
			award.VenueAddress = meta.Address
			award.Category = meta.Category
			award.Region = meta.Region
		}
	}

	if _, err := uc.credibility.AwardStamp(ctx, award); err != nil {
		slog.WarnContext(ctx, "failed to award stamp",
			slog.String("error", err.Error()),
			slog.String("user", input.UserID),
			slog.String("venue", input.VenueID),
			slog.String("module", "ledger"),
		)
	}
}

// Active returns the current unexpired check-ins, expiry-descending,
// capped to bound read cost.
func (uc *LedgerUsecase) Active(ctx context.Context) ([]connect.CheckIn, error) {
	return uc.checkins.Active(ctx, uc.now(), connect.ActiveCheckInLimit)
}

// ActiveSince returns check-ins recorded at or after windowStart, used by
// the trending channel.
func (uc *LedgerUsecase) ActiveSince(ctx context.Context, windowStart time.Time) ([]connect.CheckIn, error) {
	return uc.checkins.ActiveSince(ctx, windowStart, connect.TrendingLookbackLimit)
}
