// Package report turns a network model into per-region summaries and a
// deduplicated transmission edge set.
package report

import (
	"github.com/teranos/gridmap/logger"
	"github.com/teranos/gridmap/network"
)

// Options controls report construction
type Options struct {
	// Fallback map center when no region is selected
	FallbackLat float64
	FallbackLon float64
}

// Report is everything the map renderer needs. It is built once and not
// modified afterwards.
type Report struct {
	Regions    []Region `json:"regions"`
	Edges      []Edge   `json:"edges"`
	Suppressed int      `json:"suppressed_lines"`

	// TimestepHours is the step used for energy conversion
	TimestepHours float64 `json:"timestep_hours"`

	// Center of the map as latitude, longitude
	CenterLat float64 `json:"center_lat"`
	CenterLon float64 `json:"center_lon"`
}

// Build runs the normalizer, region selector, aggregator and edge resolver
// over net
func Build(net *network.Network, opts Options) *Report {
	log := logger.ComponentLogger("report")

	dt, err := ParseTimestep(net.Snapshots)
	if err != nil {
		log.Debugw("Using default timestep",
			logger.FieldSnapshots, len(net.Snapshots),
			"reason", err.Error())
		dt = DefaultTimestepHours
	}

	sel := SelectRegions(net.Buses)
	regions := Aggregate(net, sel, dt)
	edges := ResolveEdges(net.Lines, net.Links, sel)
	lat, lon := sel.Center(opts.FallbackLat, opts.FallbackLon)

	log.Debugw("Report built",
		logger.FieldTimestep, dt,
		logger.FieldRegions, len(regions),
		logger.FieldEdges, len(edges.Edges),
		logger.FieldSuppressed, edges.Suppressed)

	return &Report{
		Regions:       regions,
		Edges:         edges.Edges,
		Suppressed:    edges.Suppressed,
		TimestepHours: dt,
		CenterLat:     lat,
		CenterLon:     lon,
	}
}

// Region returns the region with the given id
func (r *Report) Region(id string) (Region, bool) {
	for _, region := range r.Regions {
		if region.ID == id {
			return region, true
		}
	}
	return Region{}, false
}

// Totals returns the summed energy (TWh) and capacity (GW) over all regions
func (r *Report) Totals() (energy, capacity float64) {
	for _, region := range r.Regions {
		energy += region.Energy
		capacity += region.Capacity
	}
	return round(energy), round(capacity)
}
