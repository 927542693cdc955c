package report

import (
	"sort"
	"unicode/utf8"

	"github.com/teranos/gridmap/network"
)

// RegionIDLength is the identifier length that marks a bus as a reporting region
const RegionIDLength = 2

// Coord is a bus position: X is longitude, Y is latitude
type Coord struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Selection is the sorted set of reporting regions and their coordinates
type Selection struct {
	IDs    []string
	Coords map[string]Coord
}

// IsRegionID reports whether a bus name follows the region naming convention
func IsRegionID(name string) bool {
	return utf8.RuneCountInString(name) == RegionIDLength
}

// SelectRegions keeps buses whose name is a region identifier.
// An empty selection is valid.
func SelectRegions(buses []network.Bus) Selection {
	sel := Selection{Coords: make(map[string]Coord)}
	for _, bus := range buses {
		if !IsRegionID(bus.Name) {
			continue
		}
		if _, dup := sel.Coords[bus.Name]; !dup {
			sel.IDs = append(sel.IDs, bus.Name)
		}
		sel.Coords[bus.Name] = Coord{X: bus.X, Y: bus.Y}
	}
	sort.Strings(sel.IDs)
	return sel
}

// Contains reports whether id is a selected region
func (s Selection) Contains(id string) bool {
	_, ok := s.Coords[id]
	return ok
}

// Len returns the number of selected regions
func (s Selection) Len() int {
	return len(s.IDs)
}

// Center returns the mean latitude and longitude of the selection, or the
// fallback when nothing is selected
func (s Selection) Center(fallbackLat, fallbackLon float64) (lat, lon float64) {
	if len(s.IDs) == 0 {
		return fallbackLat, fallbackLon
	}
	for _, id := range s.IDs {
		c := s.Coords[id]
		lat += c.Y
		lon += c.X
	}
	n := float64(len(s.IDs))
	return lat / n, lon / n
}
