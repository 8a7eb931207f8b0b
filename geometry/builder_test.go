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

package geometry_test

import (
	"math"
	"testing"

	"github.com/paulmach/orb"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"m4o.io/mapbridge/geometry"
	"m4o.io/mapbridge/model"
)

func ribbonWidth(m model.Mesh) float64 {
	n := len(m.Vertices) / 2
	l, r := m.Vertices[0], m.Vertices[n]

	return math.Hypot(l.X-r.X, l.Y-r.Y)
}

func TestConfigWidth(t *testing.T) {
	cfg := geometry.DefaultConfig()

	assert.Equal(t, 4.0, cfg.Width("residential"))
	assert.Equal(t, 10.0, cfg.Width("motorway"))
	assert.Equal(t, geometry.DefaultRoadWidth, cfg.Width("unknown_type"))
	assert.Equal(t, 2.0, cfg.Width(""))
	assert.Equal(t, 1.0, cfg.SidewalkBevel())

	for highway, w := range cfg.Widths {
		assert.GreaterOrEqual(t, w, 1.5, highway)
		assert.LessOrEqual(t, w, 10.0, highway)
	}
}

func TestConfigValidate(t *testing.T) {
	assert.NoError(t, geometry.DefaultConfig().Validate())

	cfg := geometry.DefaultConfig()
	cfg.BuildingHeight = 0
	assert.ErrorIs(t, cfg.Validate(), geometry.ErrInvalidConfig)

	cfg = geometry.DefaultConfig()
	cfg.Widths["residential"] = -1
	assert.ErrorIs(t, cfg.Validate(), geometry.ErrInvalidConfig)

	cfg = geometry.DefaultConfig()
	cfg.SidewalkWidth = 0
	assert.ErrorIs(t, cfg.Validate(), geometry.ErrInvalidConfig)
}

func TestBuildBuilding(t *testing.T) {
	b := geometry.NewBuilder(geometry.DefaultConfig())
	way := model.Way{ID: 42, Tags: map[string]string{"building": "yes"}}

	g, err := b.Build(way, model.FeatureKind{Type: model.Building}, []orb.Point{{0, 0}, {4, 0}, {0, 3}})
	require.NoError(t, err)

	mesh, ok := g.(model.Mesh)
	require.True(t, ok)

	assert.Equal(t, "Building_42", mesh.GetName())
	assert.Equal(t, model.ID(42), mesh.GetWayID())
	assert.Len(t, mesh.Vertices, 6)
	assert.Len(t, mesh.Faces, 5)
	assert.Equal(t, geometry.DefaultBuildingHeight, mesh.Vertices[5].Z)
}

func TestBuildBuildingTooFewPoints(t *testing.T) {
	b := geometry.NewBuilder(geometry.DefaultConfig())

	g, err := b.Build(model.Way{ID: 1}, model.FeatureKind{Type: model.Building}, []orb.Point{{0, 0}, {4, 0}})

	assert.Nil(t, g)
	assert.ErrorIs(t, err, geometry.ErrTooFewPoints)
}

func TestBuildBuildingHeightFromTags(t *testing.T) {
	cfg := geometry.DefaultConfig()
	cfg.HeightFromTags = true
	b := geometry.NewBuilder(cfg)

	tall := model.Way{ID: 1, Tags: map[string]string{"building": "yes", "building:levels": "5"}}
	mesh, err := b.Building(tall, []orb.Point{{0, 0}, {4, 0}, {0, 3}})
	require.NoError(t, err)
	assert.Equal(t, 15.0, mesh.Vertices[3].Z)

	plain := model.Way{ID: 2, Tags: map[string]string{"building": "yes"}}
	mesh, err = b.Building(plain, []orb.Point{{0, 0}, {4, 0}, {0, 3}})
	require.NoError(t, err)
	assert.Equal(t, geometry.DefaultBuildingHeight, mesh.Vertices[3].Z)
}

func TestBuildRoad(t *testing.T) {
	b := geometry.NewBuilder(geometry.DefaultConfig())
	line := []orb.Point{{0, 0}, {10, 0}, {20, 0}, {30, 0}}

	test_cases := []struct {
		highway string
		name    string
		width   float64
	}{
		{"residential", "Road_residential_7", 4.0},
		{"motorway", "Road_motorway_7", 10.0},
		{"unknown_type", "Road_unknown_type_7", 2.0},
	}

	for _, tc := range test_cases {
		t.Run(tc.highway, func(t *testing.T) {
			g, err := b.Build(model.Way{ID: 7}, model.FeatureKind{Type: model.Road, Highway: tc.highway}, line)
			require.NoError(t, err)

			mesh := g.(model.Mesh)
			assert.Equal(t, tc.name, mesh.Name)
			assert.Equal(t, model.FeatureKind{Type: model.Road, Highway: tc.highway}, mesh.Kind)
			assert.Len(t, mesh.Vertices, 8)
			assert.Len(t, mesh.Faces, 3)
			assert.InDelta(t, tc.width, ribbonWidth(mesh), 1e-9)
		})
	}
}

func TestBuildRoadTooFewPoints(t *testing.T) {
	b := geometry.NewBuilder(geometry.DefaultConfig())

	_, err := b.Road(model.Way{ID: 3}, "residential", []orb.Point{{0, 0}})
	assert.ErrorIs(t, err, geometry.ErrTooFewPoints)
}

func TestBuildSidewalk(t *testing.T) {
	b := geometry.NewBuilder(geometry.DefaultConfig())

	g, err := b.Build(model.Way{ID: 9}, model.FeatureKind{Type: model.Sidewalk}, []orb.Point{{0, 0}, {5, 5}, {10, 5}})
	require.NoError(t, err)

	curve, ok := g.(model.Curve)
	require.True(t, ok)

	assert.Equal(t, "Sidewalk_9", curve.Name)
	assert.Equal(t, 1.0, curve.BevelRadius)
	assert.Equal(t, []model.Vertex{{X: 0, Y: 0}, {X: 5, Y: 5}, {X: 10, Y: 5}}, curve.Points)

	_, err = b.Build(model.Way{ID: 10}, model.FeatureKind{Type: model.Sidewalk}, []orb.Point{{0, 0}})
	assert.ErrorIs(t, err, geometry.ErrTooFewPoints)

	_, err = b.Sidewalk(model.Way{ID: 12}, []orb.Point{{0, 0}, {0, 0}})
	assert.ErrorIs(t, err, geometry.ErrTooFewPoints)
}

func TestBuildIgnored(t *testing.T) {
	b := geometry.NewBuilder(geometry.DefaultConfig())

	_, err := b.Build(model.Way{ID: 11}, model.FeatureKind{Type: model.Ignored}, []orb.Point{{0, 0}, {1, 1}})
	assert.ErrorIs(t, err, geometry.ErrIgnoredFeature)
}
