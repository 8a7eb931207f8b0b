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

// Package geometry turns projected point sequences into meshes and curves:
// extruded building prisms, road ribbons and sidewalk curves.
package geometry

import (
	"errors"
	"fmt"
)

const (
	// DefaultBuildingHeight is the extrusion height of building footprints.
	DefaultBuildingHeight = 10.0

	// DefaultLevelHeight is the height of one storey when deriving building
	// heights from building:levels.
	DefaultLevelHeight = 3.0

	// DefaultRoadElevation lifts road surfaces off the ground plane to avoid
	// z-fighting with terrain.
	DefaultRoadElevation = 0.1

	// DefaultRoadWidth is used for highway types missing from the width table.
	DefaultRoadWidth = 2.0

	// DefaultSidewalkWidth is the width reserved for sidewalks.  Sidewalk
	// curves are bevelled with half of it.
	DefaultSidewalkWidth = 2.0
)

var ErrInvalidConfig = errors.New("invalid geometry configuration")

// DefaultWidths maps highway types to road widths in meters.
func DefaultWidths() map[string]float64 {
	return map[string]float64{
		"motorway":      10.0,
		"trunk":         9.0,
		"primary":       8.0,
		"secondary":     7.0,
		"tertiary":      6.0,
		"motorway_link": 5.0,
		"trunk_link":    5.0,
		"primary_link":  5.0,
		"unclassified":  4.0,
		"residential":   4.0,
		"living_street": 3.5,
		"service":       3.0,
		"pedestrian":    3.0,
		"track":         2.5,
		"cycleway":      2.0,
		"bridleway":     1.5,
		"footway":       1.5,
		"path":          1.5,
		"steps":         1.5,
	}
}

// Config holds the fixed dimensions used by the builders.
type Config struct {
	BuildingHeight float64            `yaml:"building_height"`
	HeightFromTags bool               `yaml:"height_from_tags"`
	LevelHeight    float64            `yaml:"level_height"`
	RoadElevation  float64            `yaml:"road_elevation"`
	DefaultWidth   float64            `yaml:"default_width"`
	SidewalkWidth  float64            `yaml:"sidewalk_width"`
	Widths         map[string]float64 `yaml:"widths"`
}

// DefaultConfig returns the standard dimensions.
func DefaultConfig() Config {
	return Config{
		BuildingHeight: DefaultBuildingHeight,
		LevelHeight:    DefaultLevelHeight,
		RoadElevation:  DefaultRoadElevation,
		DefaultWidth:   DefaultRoadWidth,
		SidewalkWidth:  DefaultSidewalkWidth,
		Widths:         DefaultWidths(),
	}
}

// Width returns the road width for a highway type, falling back to the
// default width for unknown types.
func (c Config) Width(highway string) float64 {
	if w, ok := c.Widths[highway]; ok {
		return w
	}

	return c.DefaultWidth
}

// SidewalkBevel returns the bevel radius applied to sidewalk curves.
func (c Config) SidewalkBevel() float64 {
	return c.SidewalkWidth / 2
}

// Validate checks that every dimension is positive.
func (c Config) Validate() error {
	switch {
	case c.BuildingHeight <= 0:
		return fmt.Errorf("%w: building height %v", ErrInvalidConfig, c.BuildingHeight)
	case c.HeightFromTags && c.LevelHeight <= 0:
		return fmt.Errorf("%w: level height %v", ErrInvalidConfig, c.LevelHeight)
	case c.RoadElevation < 0:
		return fmt.Errorf("%w: road elevation %v", ErrInvalidConfig, c.RoadElevation)
	case c.DefaultWidth <= 0:
		return fmt.Errorf("%w: default width %v", ErrInvalidConfig, c.DefaultWidth)
	case c.SidewalkWidth <= 0:
		return fmt.Errorf("%w: sidewalk width %v", ErrInvalidConfig, c.SidewalkWidth)
	}

	for highway, w := range c.Widths {
		if w <= 0 {
			return fmt.Errorf("%w: width %v for highway %q", ErrInvalidConfig, w, highway)
		}
	}

	return nil
}
