package connect

import (
	"testing"
)

func TestRankOfBoundaries(t *testing.T) {
	cases := []struct {
		score int
		want  Rank
	}{
		{0, RankExplorer},
		{9, RankExplorer},
		{10, RankLocal},
		{24, RankLocal},
		{25, RankInsider},
		{49, RankInsider},
		{50, RankAmbassador},
		{99, RankAmbassador},
		{100, RankLegend},
		{150, RankLegend},
	}

	for _, tc := range cases {
		if got := RankOf(tc.score); got != tc.want {
			t.Errorf("RankOf(%d) = %s, want %s", tc.score, got, tc.want)
		}
	}
}

func TestDefaultIconForFallback(t *testing.T) {
	if got := DefaultIconFor("submarine"); got != "📍" {
		t.Errorf("unknown venue type should fall back to pin, got %s", got)
	}
	if got := DefaultIconFor("restaurant"); got == "📍" {
		t.Errorf("restaurant should have its own icon")
	}
}
