// Package geo holds the spatial helpers of the hotspot map.
package geo

import (
	"math"

	"github.com/golang/geo/s2"

	"github.com/Zachdehooge/fireguard-dashboard/internal/fetcher"
)

// EarthRadiusKm is the mean Earth radius.
const EarthRadiusKm = 6371.0088

// Bounding box of the hotspot source, west,south,east,north.
const (
	AreaWest  = 102.14
	AreaSouth = 8.61
	AreaEast  = 109.47
	AreaNorth = 23.39
)

// Map defaults.
const (
	CenterLat   = 16.0
	CenterLon   = 106.0
	DefaultZoom = 6
)

// ServiceArea is the region covered by the hotspot feed.
var ServiceArea = s2.RectFromLatLng(s2.LatLngFromDegrees(AreaSouth, AreaWest)).
	AddPoint(s2.LatLngFromDegrees(AreaNorth, AreaEast))

// Contains reports whether a point is inside the service area.
func Contains(lat, lon float64) bool {
	return ServiceArea.ContainsLatLng(s2.LatLngFromDegrees(lat, lon))
}

// DistanceKm returns the great-circle distance between two points.
func DistanceKm(lat1, lon1, lat2, lon2 float64) float64 {
	p1 := s2.LatLngFromDegrees(lat1, lon1)
	p2 := s2.LatLngFromDegrees(lat2, lon2)
	return p1.Distance(p2).Radians() * EarthRadiusKm
}

// Nearest returns the hotspot closest to a point and its distance in km.
// ok is false when hotspots is empty.
func Nearest(lat, lon float64, hotspots []fetcher.Hotspot) (nearest fetcher.Hotspot, km float64, ok bool) {
	km = math.Inf(1)
	for _, h := range hotspots {
		if d := DistanceKm(lat, lon, h.Lat, h.Lon); d < km {
			nearest, km, ok = h, d, true
		}
	}
	if !ok {
		km = 0
	}
	return nearest, km, ok
}
