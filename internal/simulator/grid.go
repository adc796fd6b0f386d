package simulator

import (
	"fmt"
	"math"
	"math/rand"

	"github.com/jaswdr/faker"
	"github.com/smartcitydata/trafficdatasim/internal/models"
)

const (
	// One lattice step is roughly 0.01 degrees, about 1.1 km.
	cellDegrees = 0.01
)

var laneChoices = []int{2, 3, 4}

// District distance bands, in grid-cell units from the lattice center cell.
const (
	downtownRadius    = 3.0
	residentialRadius = 5.0
	industrialRadius  = 7.0
)

// GridBuilder lays out the city's sensor grid. It is pure with respect to its
// random source: the same seed yields the same grid.
type GridBuilder struct {
	center models.Location
	size   int
	rng    *rand.Rand
	fake   faker.Faker
}

func NewGridBuilder(cfg *models.Config, rng *rand.Rand) *GridBuilder {
	return &GridBuilder{
		center: models.Location{Lat: cfg.CityLat, Lon: cfg.CityLon},
		size:   cfg.GridSize,
		rng:    rng,
		fake:   faker.NewWithSeed(rng),
	}
}

// Build returns the size×size lattice of intersections around the configured
// city center.
func (g *GridBuilder) Build() ([]*models.Intersection, error) {
	if g.size < 1 {
		return nil, fmt.Errorf("%w: grid size must be at least 1, got %d", models.ErrInvalidConfiguration, g.size)
	}

	// Street names are fixed per row so every intersection on a row shares
	// its cross street, like a real grid city.
	streets := make([]string, g.size)
	for i := range streets {
		streets[i] = g.fake.Address().StreetName()
	}

	half := float64(g.size) / 2
	intersections := make([]*models.Intersection, 0, g.size*g.size)

	for i := 0; i < g.size; i++ {
		for j := 0; j < g.size; j++ {
			lat := g.center.Lat + (float64(i)-half)*cellDegrees
			lon := g.center.Lon + (float64(j)-half)*cellDegrees

			district := districtForCell(float64(i)-half, float64(j)-half)
			profile := DistrictProfiles[district]

			intersections = append(intersections, &models.Intersection{
				ID:   fmt.Sprintf("INT-%02d%02d", i, j),
				Name: fmt.Sprintf("%s & %d Ave", streets[i], j+1),
				Location: models.Location{
					Lat: roundTo(lat, 6),
					Lon: roundTo(lon, 6),
				},
				LanesNorthSouth: laneChoices[g.rng.Intn(len(laneChoices))],
				LanesEastWest:   laneChoices[g.rng.Intn(len(laneChoices))],
				HasCamera:       g.rng.Float64() < profile.CameraProbability,
				District:        district,
			})
		}
	}

	return intersections, nil
}

// districtForCell assigns a district from the cell's Euclidean distance to
// the lattice center, partitioned into four concentric bands.
func districtForCell(di, dj float64) string {
	distance := math.Hypot(di, dj)
	switch {
	case distance < downtownRadius:
		return models.DistrictDowntown
	case distance < residentialRadius:
		return models.DistrictResidential
	case distance < industrialRadius:
		return models.DistrictIndustrial
	default:
		return models.DistrictSuburban
	}
}
