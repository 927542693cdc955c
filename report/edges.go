package report

import (
	"sort"
	"strconv"

	"github.com/teranos/gridmap/network"
)

// Kind is the transmission element class of an edge
type Kind string

const (
	// KindLine is a passive AC line (s_nom or capacity)
	KindLine Kind = "line"
	// KindLink is a controllable link (p_nom). Links win over lines on a shared pair.
	KindLink Kind = "link"
)

// Title returns the capitalised kind for display
func (k Kind) Title() string {
	switch k {
	case KindLine:
		return "Line"
	case KindLink:
		return "Link"
	default:
		return string(k)
	}
}

// NotAvailable is the display text for an unknown transfer capacity
const NotAvailable = "n/a"

// Pair is an unordered region pair in canonical form (A <= B)
type Pair struct {
	A string `json:"a"`
	B string `json:"b"`
}

// NewPair returns the canonical pair of two endpoints
func NewPair(bus0, bus1 string) Pair {
	if bus1 < bus0 {
		return Pair{A: bus1, B: bus0}
	}
	return Pair{A: bus0, B: bus1}
}

// Capacity is a transfer capacity in MW that may be unknown. Unknown is not zero.
type Capacity struct {
	MW    float64 `json:"mw"`
	Known bool    `json:"known"`
}

// KnownCapacity returns a known capacity of mw
func KnownCapacity(mw float64) Capacity {
	return Capacity{MW: mw, Known: true}
}

// capacityOf turns an optional attribute into a Capacity
func capacityOf(v *float64) Capacity {
	if v == nil {
		return Capacity{}
	}
	return KnownCapacity(*v)
}

// Label renders "500 MW", or "n/a" when unknown
func (c Capacity) Label() string {
	if !c.Known {
		return NotAvailable
	}
	return strconv.FormatFloat(c.MW, 'f', -1, 64) + " MW"
}

// Edge is one transmission element to draw between two selected regions
type Edge struct {
	Kind     Kind     `json:"kind"`
	Name     string   `json:"name"`
	Bus0     string   `json:"bus0"`
	Bus1     string   `json:"bus1"`
	Capacity Capacity `json:"capacity"`
}

// Pair returns the edge's canonical region pair
func (e Edge) Pair() Pair {
	return NewPair(e.Bus0, e.Bus1)
}

// EdgeSet is the resolved edges plus the number of lines dropped because a
// link covers the same pair
type EdgeSet struct {
	Edges      []Edge
	Suppressed int
}

// ResolveEdges keeps lines and links whose both endpoints are selected,
// drops every line whose pair a link also covers, and resolves display
// capacities. Lines come first, then links, each sorted by pair and name.
func ResolveEdges(lines []network.Line, links []network.Link, sel Selection) EdgeSet {
	var linkEdges []Edge
	linkPairs := make(map[Pair]bool)
	for _, l := range links {
		if !sel.Contains(l.Bus0) || !sel.Contains(l.Bus1) {
			continue
		}
		e := Edge{
			Kind:     KindLink,
			Name:     l.Name,
			Bus0:     l.Bus0,
			Bus1:     l.Bus1,
			Capacity: capacityOf(l.PNom),
		}
		linkPairs[e.Pair()] = true
		linkEdges = append(linkEdges, e)
	}

	var lineEdges []Edge
	suppressed := 0
	for _, l := range lines {
		if !sel.Contains(l.Bus0) || !sel.Contains(l.Bus1) {
			continue
		}
		if linkPairs[NewPair(l.Bus0, l.Bus1)] {
			suppressed++
			continue
		}
		lineEdges = append(lineEdges, Edge{
			Kind:     KindLine,
			Name:     l.Name,
			Bus0:     l.Bus0,
			Bus1:     l.Bus1,
			Capacity: lineCapacity(l),
		})
	}

	sortEdges(lineEdges)
	sortEdges(linkEdges)

	return EdgeSet{
		Edges:      append(lineEdges, linkEdges...),
		Suppressed: suppressed,
	}
}

// lineCapacity prefers s_nom, then capacity
func lineCapacity(l network.Line) Capacity {
	if l.SNom != nil {
		return KnownCapacity(*l.SNom)
	}
	return capacityOf(l.Capacity)
}

func sortEdges(edges []Edge) {
	sort.SliceStable(edges, func(i, j int) bool {
		pi, pj := edges[i].Pair(), edges[j].Pair()
		if pi != pj {
			if pi.A != pj.A {
				return pi.A < pj.A
			}
			return pi.B < pj.B
		}
		return edges[i].Name < edges[j].Name
	})
}
