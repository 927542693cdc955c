package report

import (
	"math"
	"sort"

	"github.com/teranos/gridmap/network"
)

// Unit scales from the network's native units
const (
	MWhPerTWh = 1e6
	MWPerGW   = 1000.0
)

// Precision is the number of decimals region metrics are rounded to
const Precision = 6

// Region is the per-bus summary handed to the map renderer. All metrics are
// zero when the source data is absent.
type Region struct {
	ID string  `json:"id"`
	X  float64 `json:"x"`
	Y  float64 `json:"y"`

	// Energy is total load demand in TWh
	Energy float64 `json:"energy_twh"`

	// Capacity is installed generation plus storage in GW
	Capacity float64 `json:"capacity_gw"`

	// Generation and Storage map technology label to GW
	Generation map[string]float64 `json:"generation_gw"`
	Storage    map[string]float64 `json:"storage_gw"`
}

// TechCapacity is one technology row of a region breakdown
type TechCapacity struct {
	Label string
	GW    float64
}

// SortedGeneration returns the generation breakdown sorted by label
func (r Region) SortedGeneration() []TechCapacity {
	return sortedTech(r.Generation)
}

// SortedStorage returns the storage breakdown sorted by label
func (r Region) SortedStorage() []TechCapacity {
	return sortedTech(r.Storage)
}

// Aggregate computes the summary of every selected region, in selection order
func Aggregate(net *network.Network, sel Selection, dt float64) []Region {
	energy := energyByBus(net, dt)

	genByBus, genTotal := capacityByBus(net.Generators, DefaultGenerationLabel)
	storByBus, storTotal := capacityByBus(net.StorageUnits, DefaultStorageLabel)

	regions := make([]Region, 0, sel.Len())
	for _, id := range sel.IDs {
		c := sel.Coords[id]
		regions = append(regions, Region{
			ID:         id,
			X:          c.X,
			Y:          c.Y,
			Energy:     round(energy[id] / MWhPerTWh),
			Capacity:   round((genTotal[id] + storTotal[id]) / MWPerGW),
			Generation: toGW(genByBus[id]),
			Storage:    toGW(storByBus[id]),
		})
	}
	return regions
}

// energyByBus sums each load's series energy (MWh) onto its bus.
// Series without a matching load row are skipped.
func energyByBus(net *network.Network, dt float64) map[string]float64 {
	out := make(map[string]float64)
	for _, load := range net.Loads {
		series, ok := net.LoadSeries[load.Name]
		if !ok {
			continue
		}
		out[load.Bus] += Energy(series, dt)
	}
	return out
}

// capacityByBus returns MW per bus per label and MW per bus in total.
// Missing p_nom counts as zero.
func capacityByBus(table network.AssetTable, defaultLabel string) (map[string]map[string]float64, map[string]float64) {
	byLabel := make(map[string]map[string]float64)
	total := make(map[string]float64)

	column := ResolveLabelColumn(table, LabelKeys)
	for _, asset := range table.Assets {
		var mw float64
		if asset.PNom != nil {
			mw = *asset.PNom
		}

		label := defaultLabel
		if column != "" && asset.Attrs[column] != "" {
			label = asset.Attrs[column]
		}

		if byLabel[asset.Bus] == nil {
			byLabel[asset.Bus] = make(map[string]float64)
		}
		byLabel[asset.Bus][label] += mw
		total[asset.Bus] += mw
	}
	return byLabel, total
}

func toGW(mw map[string]float64) map[string]float64 {
	out := make(map[string]float64, len(mw))
	for label, v := range mw {
		out[label] = round(v / MWPerGW)
	}
	return out
}

func sortedTech(m map[string]float64) []TechCapacity {
	out := make([]TechCapacity, 0, len(m))
	for label, gw := range m {
		out = append(out, TechCapacity{Label: label, GW: gw})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Label < out[j].Label })
	return out
}

// round rounds to Precision decimals
func round(v float64) float64 {
	scale := math.Pow(10, Precision)
	r := math.Round(v*scale) / scale
	if r == 0 {
		// drop negative zero
		return 0
	}
	return r
}
