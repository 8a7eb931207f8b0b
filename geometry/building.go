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
	"strconv"
	"strings"

	"github.com/paulmach/orb"

	"m4o.io/mapbridge/model"
)

const (
	tagHeight = "height"
	tagLevels = "building:levels"
)

// Footprint reduces the projected points of a building way to its ring:
// consecutive duplicates and the closing point are removed.
func Footprint(points []orb.Point) (orb.Ring, error) {
	ring := orb.Ring(dedupe(points))
	if len(ring) > 1 && ring.Closed() {
		ring = ring[:len(ring)-1]
	}

	if distinct(ring) < 3 {
		return nil, ErrTooFewPoints
	}

	return ring, nil
}

// Extrude builds a prism from a flat ring of at least three points.  The
// ring is placed at elevation 0 and duplicated at height.  The mesh has the
// bottom face, the top face with reversed winding and one quad per ring edge,
// including the edge closing the ring.
//
// Concave or self-intersecting rings are not triangulated; their caps are
// emitted as a single, possibly invalid, polygon.
func Extrude(ring orb.Ring, height float64) model.Mesh {
	n := len(ring)

	vertices := make([]model.Vertex, 2*n)
	for i, p := range ring {
		vertices[i] = model.Vertex{X: p.X(), Y: p.Y()}
		vertices[n+i] = model.Vertex{X: p.X(), Y: p.Y(), Z: height}
	}

	faces := make([]model.Face, 0, n+2)

	bottom := make(model.Face, n)
	top := make(model.Face, n)

	for i := 0; i < n; i++ {
		bottom[i] = i
		top[i] = 2*n - 1 - i
	}

	faces = append(faces, bottom, top)

	for i := 0; i < n; i++ {
		j := (i + 1) % n
		faces = append(faces, model.Face{i, j, n + j, n + i})
	}

	return model.Mesh{Vertices: vertices, Faces: faces}
}

// buildingHeight derives the extrusion height from the height or
// building:levels tags.  ok is false when neither is usable.
func buildingHeight(tags map[string]string, levelHeight float64) (h float64, ok bool) {
	if v, found := tags[tagHeight]; found {
		v = strings.TrimSpace(strings.TrimSuffix(strings.TrimSpace(v), "m"))
		if h, err := strconv.ParseFloat(v, 64); err == nil && h > 0 {
			return h, true
		}
	}

	if v, found := tags[tagLevels]; found {
		if l, err := strconv.ParseFloat(strings.TrimSpace(v), 64); err == nil && l > 0 {
			return l * levelHeight, true
		}
	}

	return 0, false
}
