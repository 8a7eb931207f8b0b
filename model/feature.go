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

// FeatureType is the closed set of feature kinds a way can be assigned.
type FeatureType int

const (
	// Ignored ways match none of the recognised tags and produce no geometry.
	Ignored FeatureType = iota

	// Building ways are extruded into prisms.
	Building

	// Road ways are turned into ribbons whose width depends on the highway type.
	Road

	// Sidewalk ways are emitted as bevelled curves.
	Sidewalk
)

func (t FeatureType) String() string {
	switch t {
	case Building:
		return "building"
	case Road:
		return "road"
	case Sidewalk:
		return "sidewalk"
	default:
		return "ignored"
	}
}

// FeatureKind is the classification of a way.  Highway is only set for Road.
type FeatureKind struct {
	Type    FeatureType
	Highway string
}

func (k FeatureKind) String() string {
	if k.Type == Road {
		return k.Type.String() + "(" + k.Highway + ")"
	}

	return k.Type.String()
}

// Tag keys and values that drive classification.
const (
	TagBuilding = "building"
	TagHighway  = "highway"
	TagFootway  = "footway"

	valueNo       = "no"
	valueSidewalk = "sidewalk"
)

// Classify assigns a feature kind to a way's tags.  Precedence is fixed:
// building (any value but "no"), then highway, then footway=sidewalk.
func Classify(tags map[string]string) FeatureKind {
	if v, ok := tags[TagBuilding]; ok && v != valueNo {
		return FeatureKind{Type: Building}
	}

	if v, ok := tags[TagHighway]; ok {
		return FeatureKind{Type: Road, Highway: v}
	}

	if tags[TagFootway] == valueSidewalk {
		return FeatureKind{Type: Sidewalk}
	}

	return FeatureKind{Type: Ignored}
}
