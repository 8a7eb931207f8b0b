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

// Builder builds the geometry of classified ways.  It holds no mutable state
// and is safe for concurrent use.
type Builder struct {
	cfg Config
}

// NewBuilder returns a Builder using the given dimensions.
func NewBuilder(cfg Config) *Builder {
	return &Builder{cfg: cfg}
}

// Build dispatches on the feature kind.  points are the projected, resolved
// points of the way in order.
func (b *Builder) Build(way model.Way, kind model.FeatureKind, points []orb.Point) (model.Geometry, error) {
	var (
		g   model.Geometry
		err error
	)

	switch kind.Type {
	case model.Building:
		g, err = b.Building(way, points)
	case model.Road:
		g, err = b.Road(way, kind.Highway, points)
	case model.Sidewalk:
		g, err = b.Sidewalk(way, points)
	default:
		err = fmt.Errorf("way %d: %w", way.ID, ErrIgnoredFeature)
	}

	if err != nil {
		return nil, err
	}

	return g, nil
}

// Building extrudes a building footprint.
func (b *Builder) Building(way model.Way, points []orb.Point) (model.Mesh, error) {
	ring, err := Footprint(points)
	if err != nil {
		return model.Mesh{}, fmt.Errorf("building %d: %w", way.ID, err)
	}

	height := b.cfg.BuildingHeight
	if b.cfg.HeightFromTags {
		if h, ok := buildingHeight(way.Tags, b.cfg.LevelHeight); ok {
			height = h
		}
	}

	mesh := Extrude(ring, height)
	mesh.Name = fmt.Sprintf("Building_%d", way.ID)
	mesh.WayID = way.ID
	mesh.Kind = model.FeatureKind{Type: model.Building}

	return mesh, nil
}

// Road builds a ribbon as wide as the highway type requires.
func (b *Builder) Road(way model.Way, highway string, points []orb.Point) (model.Mesh, error) {
	vertices, faces, err := Ribbon(points, b.cfg.Width(highway), b.cfg.RoadElevation)
	if err != nil {
		return model.Mesh{}, fmt.Errorf("road %d: %w", way.ID, err)
	}

	return model.Mesh{
		Name:     fmt.Sprintf("Road_%s_%d", highway, way.ID),
		WayID:    way.ID,
		Kind:     model.FeatureKind{Type: model.Road, Highway: highway},
		Vertices: vertices,
		Faces:    faces,
	}, nil
}

// Sidewalk builds a bevelled curve along the way.
func (b *Builder) Sidewalk(way model.Way, points []orb.Point) (model.Curve, error) {
	controls, err := Polyline(points)
	if err != nil {
		return model.Curve{}, fmt.Errorf("sidewalk %d: %w", way.ID, err)
	}

	return model.Curve{
		Name:        fmt.Sprintf("Sidewalk_%d", way.ID),
		WayID:       way.ID,
		Points:      controls,
		BevelRadius: b.cfg.SidewalkBevel(),
	}, nil
}
