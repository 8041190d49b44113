package models

import (
	"math/rand"
	"strings"

	"github.com/Sanenelisiwe1975/Baxela/storage"
)

// Continental-US bounding box used when no known city matches.
const (
	boundingBoxMinLat = 24.5
	boundingBoxMaxLat = 49.4
	boundingBoxMinLng = -124.8
	boundingBoxMaxLng = -66.9
)

var knownCities = map[string]storage.Coordinates{
	"new york":     {Lat: 40.7128, Lng: -74.0060},
	"los angeles":  {Lat: 34.0522, Lng: -118.2437},
	"chicago":      {Lat: 41.8781, Lng: -87.6298},
	"houston":      {Lat: 29.7604, Lng: -95.3698},
	"phoenix":      {Lat: 33.4484, Lng: -112.0740},
	"philadelphia": {Lat: 39.9526, Lng: -75.1652},
	"san antonio":  {Lat: 29.4241, Lng: -98.4936},
	"san diego":    {Lat: 32.7157, Lng: -117.1611},
	"dallas":       {Lat: 32.7767, Lng: -96.7970},
	"atlanta":      {Lat: 33.7490, Lng: -84.3880},
	"miami":        {Lat: 25.7617, Lng: -80.1918},
	"seattle":      {Lat: 47.6062, Lng: -122.3321},
	"denver":       {Lat: 39.7392, Lng: -104.9903},
	"detroit":      {Lat: 42.3314, Lng: -83.0458},
}

// MockGeocode resolves a free-text location to coordinates. Known city
// names match by substring, anything else gets a random point inside the
// continental-US bounding box. Stand-in for a real geocoding service.
func MockGeocode(location string) storage.Coordinates {
	lowered := strings.ToLower(location)
	for city, coords := range knownCities {
		if strings.Contains(lowered, city) {
			return coords
		}
	}
	return storage.Coordinates{
		Lat: boundingBoxMinLat + rand.Float64()*(boundingBoxMaxLat-boundingBoxMinLat),
		Lng: boundingBoxMinLng + rand.Float64()*(boundingBoxMaxLng-boundingBoxMinLng),
	}
}
