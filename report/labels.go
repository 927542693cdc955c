package report

import "github.com/teranos/gridmap/network"

// LabelKeys is the ordered list of asset columns probed for a technology label
var LabelKeys = []string{"carrier", "type", "technology"}

// Default labels when an asset table carries none of LabelKeys
const (
	DefaultGenerationLabel = "generator"
	DefaultStorageLabel    = "storage"
)

// ResolveLabelColumn returns the first key the table carries, or "" if none is
func ResolveLabelColumn(table network.AssetTable, keys []string) string {
	for _, k := range keys {
		if table.HasColumn(k) {
			return k
		}
	}
	return ""
}
