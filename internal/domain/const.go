package domain

const (
	// SignalChannelCheckIns is the redis pubsub channel carrying ledger
	// change events for the realtime presence feed.
	SignalChannelCheckIns = "connect:checkins"

	EventTypeCheckInRecorded = "checkin.recorded"
)

const (
	SectionToday    = "today"
	SectionWeek     = "week"
	SectionFeatured = "featured"
)

const (
	VisibilityPublic  = "public"
	VisibilityPrivate = "private"
)
