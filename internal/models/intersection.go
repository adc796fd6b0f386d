package models

// Intersection is a single sensor site on the city grid. Instances are
// created once by the grid builder and never mutated afterwards.
type Intersection struct {
	ID              string
	Name            string
	Location        Location
	LanesNorthSouth int
	LanesEastWest   int
	HasCamera       bool
	District        string
}

// BaseCapacity is the nominal vehicle throughput of the intersection per
// sensing interval, derived from its lane counts.
func (i *Intersection) BaseCapacity(vehiclesPerLane int) int {
	return (i.LanesNorthSouth + i.LanesEastWest) * vehiclesPerLane
}
