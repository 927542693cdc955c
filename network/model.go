// Package network holds the in-memory power-system network model and the
// readers that load it from an exported CSV folder or a SQLite database.
package network

// Network is a read-only snapshot of the tables the map report needs.
// Numeric attributes that are absent or unparseable are nil, never zero.
type Network struct {
	// Snapshots are the time index labels in file order
	Snapshots []string

	Buses []Bus
	Loads []Load

	// LoadSeries maps a load name to its p_set values, one per snapshot
	LoadSeries map[string][]float64

	Generators   AssetTable
	StorageUnits AssetTable

	Lines []Line
	Links []Link
}

// Bus is a network node. X is longitude, Y is latitude.
type Bus struct {
	Name string
	X    float64
	Y    float64
}

// Load is a demand component attached to a bus
type Load struct {
	Name string
	Bus  string
}

// AssetTable is a generator or storage-unit table. Columns records which
// attributes the source table carries, so label probing can tell an absent
// column from an empty cell.
type AssetTable struct {
	Columns []string
	Assets  []Asset
}

// Asset is one generator or storage unit
type Asset struct {
	Name  string
	Bus   string
	PNom  *float64
	Attrs map[string]string
}

// HasColumn reports whether the source table carried the named column
func (t AssetTable) HasColumn(name string) bool {
	for _, c := range t.Columns {
		if c == name {
			return true
		}
	}
	return false
}

// Line is a passive AC branch limited by apparent power
type Line struct {
	Name     string
	Bus0     string
	Bus1     string
	SNom     *float64
	Capacity *float64
}

// Link is a controllable branch limited by nominal power
type Link struct {
	Name string
	Bus0 string
	Bus1 string
	PNom *float64
}

// Stats summarises table sizes for logging and the inspect command
type Stats struct {
	Snapshots    int `json:"snapshots"`
	Buses        int `json:"buses"`
	Loads        int `json:"loads"`
	Generators   int `json:"generators"`
	StorageUnits int `json:"storage_units"`
	Lines        int `json:"lines"`
	Links        int `json:"links"`
}

// Stats returns the row count of every table
func (n *Network) Stats() Stats {
	return Stats{
		Snapshots:    len(n.Snapshots),
		Buses:        len(n.Buses),
		Loads:        len(n.Loads),
		Generators:   len(n.Generators.Assets),
		StorageUnits: len(n.StorageUnits.Assets),
		Lines:        len(n.Lines),
		Links:        len(n.Links),
	}
}
