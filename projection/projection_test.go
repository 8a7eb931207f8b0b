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

package projection_test

import (
	"math"
	"testing"

	"github.com/paulmach/orb"
	"github.com/stretchr/testify/assert"

	"m4o.io/mapbridge/model"
	"m4o.io/mapbridge/projection"
)

// metersPerDegree is the length of one degree of latitude.
const metersPerDegree = math.Pi / 180 * projection.EarthRadius

func TestProjectReferenceIsOrigin(t *testing.T) {
	p := projection.New(43.7230, 10.3945)

	assert.Equal(t, orb.Point{0, 0}, p.Project(model.GeoPoint{Lat: 43.7230, Lon: 10.3945}))
}

func TestForBoundingBox(t *testing.T) {
	bbox := model.NewBoundingBox(43.7220, 10.3920, 43.7240, 10.3970)
	p := projection.ForBoundingBox(bbox)

	lat, lon := p.Reference()
	assert.True(t, model.Degrees(43.7230).EqualWithin(lat, model.E9))
	assert.True(t, model.Degrees(10.3945).EqualWithin(lon, model.E9))

	origin := p.ProjectLatLon(lat, lon)
	assert.InDelta(t, 0, origin.X(), 1e-9)
	assert.InDelta(t, 0, origin.Y(), 1e-9)
}

func TestProjectScale(t *testing.T) {
	p := projection.New(0, 0)

	north := p.ProjectLatLon(1, 0)
	assert.InDelta(t, 0, north.X(), 1e-9)
	assert.InDelta(t, metersPerDegree, north.Y(), 1e-6)

	east := p.ProjectLatLon(0, 1)
	assert.InDelta(t, metersPerDegree, east.X(), 1e-6)
	assert.InDelta(t, 0, east.Y(), 1e-9)

	// longitude shrinks with the cosine of the reference latitude
	p60 := projection.New(60, 0)
	east60 := p60.ProjectLatLon(60, 1)
	assert.InDelta(t, metersPerDegree/2, east60.X(), 1e-6)
}

func TestProjectAxes(t *testing.T) {
	p := projection.New(43.7230, 10.3945)

	ne := p.ProjectLatLon(43.7240, 10.3970)
	sw := p.ProjectLatLon(43.7220, 10.3920)

	assert.Greater(t, ne.X(), 0.0)
	assert.Greater(t, ne.Y(), 0.0)
	assert.Less(t, sw.X(), 0.0)
	assert.Less(t, sw.Y(), 0.0)
	assert.InDelta(t, -ne.X(), sw.X(), 1e-6)
	assert.InDelta(t, -ne.Y(), sw.Y(), 1e-6)
}

func TestProjectRoundTrip(t *testing.T) {
	p := projection.New(43.7230, 10.3945)

	test_cases := []struct {
		name string
		lat  model.Degrees
		lon  model.Degrees
	}{
		{"reference", 43.7230, 10.3945},
		{"north east", 43.7240, 10.3970},
		{"south west", 43.7220, 10.3920},
		{"five km", 43.7680, 10.4570},
		{"minus five km", 43.6780, 10.3320},
	}

	// a few centimeters expressed in degrees
	const tolerance = 0.03 / metersPerDegree

	for _, tc := range test_cases {
		t.Run(tc.name, func(t *testing.T) {
			lat, lon := p.Inverse(p.ProjectLatLon(tc.lat, tc.lon))

			assert.InDelta(t, float64(tc.lat), float64(lat), tolerance)
			assert.InDelta(t, float64(tc.lon), float64(lon), tolerance)
		})
	}
}

func TestProjectIsDeterministic(t *testing.T) {
	a := projection.New(43.7230, 10.3945)
	b := projection.New(43.7230, 10.3945)
	pt := model.GeoPoint{ID: 7, Lat: 43.7231, Lon: 10.3951}

	assert.Equal(t, a.Project(pt), b.Project(pt))
	assert.Equal(t, a.Project(pt), a.Project(pt))
}
