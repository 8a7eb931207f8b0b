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
	"github.com/paulmach/orb"

	"m4o.io/mapbridge/model"
)

// Polyline lifts a projected line to control points at elevation 0.
// Consecutive duplicate points are dropped first.
func Polyline(centerline orb.LineString) ([]model.Vertex, error) {
	line := dedupe(centerline)
	if len(line) < 2 {
		return nil, ErrTooFewPoints
	}

	points := make([]model.Vertex, len(line))
	for i, p := range line {
		points[i] = model.Vertex{X: p.X(), Y: p.Y()}
	}

	return points, nil
}
