package network

// FromFrames assembles a Network from raw tables. Both readers go through
// here so a column is "present" under the same rules for every format.
func FromFrames(frames Frames) *Network {
	n := &Network{
		LoadSeries: make(map[string][]float64),
	}

	n.Buses = buildBuses(frames[TableBuses])
	n.Loads = buildLoads(frames[TableLoads])
	n.Snapshots, n.LoadSeries = buildSeries(frames[TableSnapshots], frames[TableLoadsPSet])
	n.Generators = buildAssets(frames[TableGenerators])
	n.StorageUnits = buildAssets(frames[TableStorageUnits])
	n.Lines = buildLines(frames[TableLines])
	n.Links = buildLinks(frames[TableLinks])

	return n
}

func buildBuses(f *Frame) []Bus {
	if f.Len() == 0 {
		return nil
	}
	xi, yi := f.Index("x"), f.Index("y")
	buses := make([]Bus, 0, f.Len())
	for _, row := range f.Rows {
		bus := Bus{Name: f.Key(row)}
		if x := parseFloat(f.Cell(row, xi)); x != nil {
			bus.X = *x
		}
		if y := parseFloat(f.Cell(row, yi)); y != nil {
			bus.Y = *y
		}
		buses = append(buses, bus)
	}
	return buses
}

func buildLoads(f *Frame) []Load {
	if f.Len() == 0 {
		return nil
	}
	bi := f.Index("bus")
	loads := make([]Load, 0, f.Len())
	for _, row := range f.Rows {
		loads = append(loads, Load{Name: f.Key(row), Bus: f.Cell(row, bi)})
	}
	return loads
}

// buildSeries reads the snapshot × load p_set table. The snapshot index comes
// from the snapshots table when present, else from the series row keys.
// Missing cells contribute zero to the series.
func buildSeries(snapshots, pset *Frame) ([]string, map[string][]float64) {
	series := make(map[string][]float64)

	var labels []string
	if snapshots.Len() > 0 {
		labels = make([]string, 0, snapshots.Len())
		for _, row := range snapshots.Rows {
			labels = append(labels, snapshots.Key(row))
		}
	}

	if pset.Len() == 0 {
		return labels, series
	}

	if labels == nil {
		labels = make([]string, 0, pset.Len())
		for _, row := range pset.Rows {
			labels = append(labels, pset.Key(row))
		}
	}

	for col := 1; col < len(pset.Columns); col++ {
		name := pset.Columns[col]
		values := make([]float64, 0, pset.Len())
		for _, row := range pset.Rows {
			var v float64
			if p := parseFloat(pset.Cell(row, col)); p != nil {
				v = *p
			}
			values = append(values, v)
		}
		series[name] = values
	}

	return labels, series
}

func buildAssets(f *Frame) AssetTable {
	if f == nil {
		return AssetTable{}
	}
	table := AssetTable{Columns: append([]string(nil), f.Columns...)}
	if f.Len() == 0 {
		return table
	}

	bi, pi := f.Index("bus"), f.Index("p_nom")
	table.Assets = make([]Asset, 0, f.Len())
	for _, row := range f.Rows {
		asset := Asset{
			Name:  f.Key(row),
			Bus:   f.Cell(row, bi),
			PNom:  parseFloat(f.Cell(row, pi)),
			Attrs: make(map[string]string, len(f.Columns)),
		}
		for i, col := range f.Columns {
			if i == 0 {
				continue
			}
			asset.Attrs[col] = f.Cell(row, i)
		}
		table.Assets = append(table.Assets, asset)
	}
	return table
}

func buildLines(f *Frame) []Line {
	if f.Len() == 0 {
		return nil
	}
	b0, b1 := f.Index("bus0"), f.Index("bus1")
	si, ci := f.Index("s_nom"), f.Index("capacity")
	lines := make([]Line, 0, f.Len())
	for _, row := range f.Rows {
		lines = append(lines, Line{
			Name:     f.Key(row),
			Bus0:     f.Cell(row, b0),
			Bus1:     f.Cell(row, b1),
			SNom:     parseFloat(f.Cell(row, si)),
			Capacity: parseFloat(f.Cell(row, ci)),
		})
	}
	return lines
}

func buildLinks(f *Frame) []Link {
	if f.Len() == 0 {
		return nil
	}
	b0, b1 := f.Index("bus0"), f.Index("bus1")
	pi := f.Index("p_nom")
	links := make([]Link, 0, f.Len())
	for _, row := range f.Rows {
		links = append(links, Link{
			Name: f.Key(row),
			Bus0: f.Cell(row, b0),
			Bus1: f.Cell(row, b1),
			PNom: parseFloat(f.Cell(row, pi)),
		})
	}
	return links
}
