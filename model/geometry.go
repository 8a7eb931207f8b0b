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

package model

// Vertex is a point in the local Cartesian frame, in meters.  Z is up.
type Vertex struct {
	X float64
	Y float64
	Z float64
}

// Face is a polygon given as indices into a mesh's vertices.  Faces have at
// least three indices; consistent winding across faces is not guaranteed.
type Face []int

// Geometry is the finished output for one way, either a Mesh or a Curve.
type Geometry interface {
	isGeometry() // prevents extensions

	GetName() string

	GetWayID() ID
}

// Mesh is a named polygon mesh.  It is never mutated once built.
type Mesh struct {
	Name     string
	WayID    ID
	Kind     FeatureKind
	Vertices []Vertex
	Faces    []Face
}

var _ Geometry = Mesh{}

func (m Mesh) isGeometry() {}

func (m Mesh) GetName() string {
	return m.Name
}

func (m Mesh) GetWayID() ID {
	return m.WayID
}

// Curve is a named polyline thickened by the host renderer with BevelRadius.
type Curve struct {
	Name        string
	WayID       ID
	Points      []Vertex
	BevelRadius float64
}

var _ Geometry = Curve{}

func (c Curve) isGeometry() {}

func (c Curve) GetName() string {
	return c.Name
}

func (c Curve) GetWayID() ID {
	return c.WayID
}
