package connect

// Rank is the discretized credibility tier.
type Rank string

const (
	RankExplorer   Rank = "Explorer"
	RankLocal      Rank = "Local"
	RankInsider    Rank = "Insider"
	RankAmbassador Rank = "Ambassador"
	RankLegend     Rank = "Legend"
)

// rankThresholds are inclusive lower bounds, ascending.
var rankThresholds = []struct {
	min  int
	rank Rank
}{
	{0, RankExplorer},
	{10, RankLocal},
	{25, RankInsider},
	{50, RankAmbassador},
	{100, RankLegend},
}

// RankOf returns the highest rank whose threshold does not exceed score.
func RankOf(score int) Rank {
	rank := RankExplorer
	for _, t := range rankThresholds {
		if score >= t.min {
			rank = t.rank
		}
	}
	return rank
}

// DefaultIconFor maps a venue type to its stamp icon default.
func DefaultIconFor(venueType string) string {
	switch venueType {
	case "restaurant", "cafe":
		return "🍽️"
	case "bar", "club":
		return "🍸"
	case "event":
		return "🎟️"
	case "activity":
		return "🎯"
	case "experience":
		return "✨"
	default:
		return "📍"
	}
}
