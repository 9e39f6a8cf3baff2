package gateway

import (
	"context"
	"encoding/json"
	"time"

	"github.com/bradfitz/gomemcache/memcache"

	"github.com/citypulse/connect"
	"github.com/citypulse/connect/client"
)

const metadataTTL = 5 * time.Minute

// CatalogGateway resolves venue metadata through the catalog client, with
// a shared memcached layer in front so the per-venue N-lookup pattern of
// feed hydration stays cheap across processes.
type CatalogGateway struct {
	client *client.Client
	mc     *memcache.Client
}

func NewCatalogGateway(cl *client.Client, mc *memcache.Client) *CatalogGateway {
	return &CatalogGateway{
		client: cl,
		mc:     mc,
	}
}

// ResolveVenue returns nil, nil when the catalog has no entry.
func (g *CatalogGateway) ResolveVenue(ctx context.Context, venueID, venueType string) (*connect.VenueMetadata, error) {
	cacheKey := "venue:" + venueType + ":" + venueID

	if g.mc != nil {
		if item, err := g.mc.Get(cacheKey); err == nil {
			var meta connect.VenueMetadata
			if err := json.Unmarshal(item.Value, &meta); err == nil {
				return &meta, nil
			}
		}
	}

	meta, err := g.client.GetVenue(ctx, venueID, venueType)
	if err != nil {
		return nil, err
	}
	if meta == nil {
		return nil, nil
	}

	if g.mc != nil {
		if encoded, err := json.Marshal(meta); err == nil {
			g.mc.Set(&memcache.Item{
				Key:        cacheKey,
				Value:      encoded,
				Expiration: int32(metadataTTL.Seconds()),
			})
		}
	}

	return meta, nil
}

// TopRated returns catalog listings at or above minRating.
func (g *CatalogGateway) TopRated(ctx context.Context, region string, minRating float64, limit int) ([]connect.CatalogListing, error) {
	return g.client.SearchListings(ctx, region, minRating, limit)
}
