// Package geo ranks companies by distance for the "nearby" strip on
// company pages.
package geo

import (
	"sort"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geo"

	"huangye/pkg/model"
)

// Neighbor is a company with its distance from the reference point.
type Neighbor struct {
	Company   model.Company
	DistanceM float64
}

// Point returns the company location as an orb point (lng, lat order).
func Point(c *model.Company) orb.Point {
	return orb.Point{c.Lng, c.Lat}
}

// Nearby returns up to limit companies closest to origin, ascending by
// great-circle distance. Companies without coordinates and origin itself
// are excluded.
func Nearby(origin *model.Company, all []model.Company, limit int) []Neighbor {
	if !origin.HasCoords() || limit <= 0 {
		return nil
	}

	from := Point(origin)

	var neighbors []Neighbor
	for _, c := range all {
		if c.Slug == origin.Slug || !c.HasCoords() {
			continue
		}
		neighbors = append(neighbors, Neighbor{
			Company:   c,
			DistanceM: geo.Distance(from, Point(&c)),
		})
	}

	sort.SliceStable(neighbors, func(i, j int) bool {
		return neighbors[i].DistanceM < neighbors[j].DistanceM
	})

	if len(neighbors) > limit {
		neighbors = neighbors[:limit]
	}
	return neighbors
}
