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
	"errors"
	"math"

	"github.com/paulmach/orb"
)

var (
	// ErrTooFewPoints is returned when a way has fewer usable points than its
	// feature kind needs.  The way is skipped.
	ErrTooFewPoints = errors.New("too few points")

	// ErrDegenerateGeometry is returned when no direction can be derived at a
	// point of a centerline.  The way is skipped.
	ErrDegenerateGeometry = errors.New("degenerate geometry")

	// ErrIgnoredFeature is returned when asked to build an ignored way.
	ErrIgnoredFeature = errors.New("ignored feature")
)

// dedupe drops consecutive duplicate points.
func dedupe(points []orb.Point) []orb.Point {
	out := make([]orb.Point, 0, len(points))

	for _, p := range points {
		if len(out) > 0 && out[len(out)-1].Equal(p) {
			continue
		}

		out = append(out, p)
	}

	return out
}

// distinct counts the distinct points of a sequence.
func distinct(points []orb.Point) int {
	seen := make(map[orb.Point]struct{}, len(points))
	for _, p := range points {
		seen[p] = struct{}{}
	}

	return len(seen)
}

func sub(a, b orb.Point) orb.Point {
	return orb.Point{a.X() - b.X(), a.Y() - b.Y()}
}

func norm(p orb.Point) float64 {
	return math.Hypot(p.X(), p.Y())
}
