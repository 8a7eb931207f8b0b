// Copyright 2026 the original author or authors.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package projection converts geographic coordinates into a local planar
// frame measured in meters.
//
// The projection is an equirectangular approximation around a single
// reference point.  It is accurate to a few meters over spans of a few
// kilometers and is not valid near the poles or across the antimeridian.
package projection

import (
	"math"

	"github.com/paulmach/orb"

	"m4o.io/mapbridge/model"
)

// EarthRadius is the radius, in meters, used to scale angular offsets.
const EarthRadius = 6378137.0

// Projector maps latitude and longitude to meters relative to a fixed
// reference point.  Points projected by the same Projector share an origin
// and can be compared or combined; points from different Projectors cannot.
type Projector struct {
	refLat model.Degrees
	refLon model.Degrees
	cosLat float64
}

// New returns a Projector whose origin is the given reference point.
func New(lat, lon model.Degrees) Projector {
	return Projector{
		refLat: lat,
		refLon: lon,
		cosLat: math.Cos(lat.Angle().Radians()),
	}
}

// ForBoundingBox returns a Projector centered on the bounding box.
func ForBoundingBox(b model.BoundingBox) Projector {
	return New(b.Center())
}

// Reference returns the origin of the projection.
func (p Projector) Reference() (lat model.Degrees, lon model.Degrees) {
	return p.refLat, p.refLon
}

// Project converts a point to planar meters.  X grows eastward, Y northward.
func (p Projector) Project(pt model.GeoPoint) orb.Point {
	return p.ProjectLatLon(pt.Lat, pt.Lon)
}

// ProjectLatLon converts a latitude/longitude pair to planar meters.
func (p Projector) ProjectLatLon(lat, lon model.Degrees) orb.Point {
	x := (lon - p.refLon).Angle().Radians() * EarthRadius * p.cosLat
	y := (lat - p.refLat).Angle().Radians() * EarthRadius

	return orb.Point{x, y}
}

// Inverse converts planar meters back to a latitude/longitude pair.
func (p Projector) Inverse(pt orb.Point) (lat model.Degrees, lon model.Degrees) {
	lat = p.refLat + model.DegreesFromRadians(pt.Y()/EarthRadius)
	lon = p.refLon + model.DegreesFromRadians(pt.X()/(EarthRadius*p.cosLat))

	return lat, lon
}
