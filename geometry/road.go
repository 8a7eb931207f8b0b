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

package geometry

import (
	"fmt"

	"github.com/paulmach/orb"

	"m4o.io/mapbridge/model"
)

// Ribbon offsets a centerline by half of width to each side and joins the
// two boundaries with quads.  Vertices are the left boundary followed by the
// right boundary, all at elevation; faces are one quad per segment with no
// end caps.
//
// Consecutive duplicate points are dropped first.  Where the central
// difference vanishes because the line doubles back, the previous point's
// tangent is reused so the turn stays on one side of the ribbon.
func Ribbon(centerline orb.LineString, width, elevation float64) ([]model.Vertex, []model.Face, error) {
	line := dedupe(centerline)
	if len(line) < 2 {
		return nil, nil, ErrTooFewPoints
	}

	n := len(line)
	half := width / 2

	vertices := make([]model.Vertex, 2*n)

	var prev orb.Point
	for i, c := range line {
		t := tangent(line, i)
		if norm(t) == 0 && i > 0 {
			t = prev
		}
		prev = t

		l := norm(t)
		if l == 0 {
			return nil, nil, fmt.Errorf("%w: zero tangent at point %d", ErrDegenerateGeometry, i)
		}

		// left-hand normal of the unit tangent
		nx, ny := -t.Y()/l, t.X()/l

		vertices[i] = model.Vertex{X: c.X() + nx*half, Y: c.Y() + ny*half, Z: elevation}
		vertices[n+i] = model.Vertex{X: c.X() - nx*half, Y: c.Y() - ny*half, Z: elevation}
	}

	faces := make([]model.Face, n-1)
	for i := 0; i < n-1; i++ {
		faces[i] = model.Face{i, i + 1, n + i + 1, n + i}
	}

	return vertices, faces, nil
}

// tangent estimates the direction of the line at point i.  It is zero at
// an interior point where the line doubles back.
func tangent(line []orb.Point, i int) orb.Point {
	n := len(line)

	switch i {
	case 0:
		return sub(line[1], line[0])
	case n - 1:
		return sub(line[n-1], line[n-2])
	}

	return sub(line[i+1], line[i-1])
}
