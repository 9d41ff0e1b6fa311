// Package tiles holds the tile-provider URL table: process-wide constant
// configuration, never mutated after init.
package tiles

import (
	"fmt"
	"sort"
)

var providers = map[string]string{
	"osm":       "https://c.tile.openstreetmap.org/{z}/{x}/{y}.png",
	"osmbw":     "https://tiles.wmflabs.org/bw-mapnik/{z}/{x}/{y}.png",
	"esri":      "https://server.arcgisonline.com/ArcGIS/rest/services/World_Imagery/MapServer/tile/{z}/{y}/{x}.jpg",
	"wikipedia": "https://maps.wikimedia.org/osm-intl/{z}/{x}/{y}@2x.png",
	"cartodb":   "https://tiles.basemaps.cartocdn.com/rastertiles/voyager/{z}/{x}/{y}@2x.png",
}

// Default is the provider used when none is configured.
const Default = "cartodb"

// URL returns the tile URL template for a provider name.
func URL(name string) (string, error) {
	if name == "" {
		name = Default
	}
	u, ok := providers[name]
	if !ok {
		return "", fmt.Errorf("unknown tile provider %q (valid: %v)", name, Names())
	}
	return u, nil
}

// Names lists the known provider names, sorted.
func Names() []string {
	names := make([]string, 0, len(providers))
	for name := range providers {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
