// Copyright 2017-26 the original author or authors.
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

// Package model contains the shared model of the map import pipeline: the
// geographic records read from vector-map data and the geometry built from
// them.
package model

// ID is the primary key of a point or way.
type ID int64

// GeoPoint represents a specific point on the earth's surface defined by its
// latitude and longitude.
type GeoPoint struct {
	ID  ID
	Lat Degrees
	Lon Degrees
}

// Way is an ordered list of point references that define a polyline or,
// when the first and last reference match, a closed ring.
type Way struct {
	ID      ID
	NodeIDs []ID
	Tags    map[string]string
}

// Dataset holds everything parsed from one vector-map document.  It lives for
// the duration of a single import.
type Dataset struct {
	Points map[ID]GeoPoint
	Ways   []Way

	// Bounds is the extent declared by the document, if any.
	Bounds *BoundingBox

	Header Header
}

// NewDataset returns an empty Dataset ready to be filled by a parser.
func NewDataset() *Dataset {
	return &Dataset{
		Points: make(map[ID]GeoPoint),
		Ways:   make([]Way, 0),
	}
}

// Extent computes the bounding box of all points in the dataset.  ok is
// false when the dataset has no points.
func (d *Dataset) Extent() (bbox BoundingBox, ok bool) {
	if len(d.Points) == 0 {
		return BoundingBox{}, false
	}

	b := InitialBoundingBox()
	for _, p := range d.Points {
		b.ExpandWithLatLng(p.Lat, p.Lon)
	}

	return *b, true
}
