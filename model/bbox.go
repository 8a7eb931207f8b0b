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

package model

import (
	"errors"
	"fmt"
	"strings"
)

const (
	MaxLat Degrees = 90.0
	MaxLon Degrees = 180.0
	MinLat Degrees = -90.0
	MinLon Degrees = -180.0
)

var (
	ErrInvalidBoundingBox = errors.New("invalid bounding box")
	ErrEmptyBoundingBox   = errors.New("empty bounding box")
)

// BoundingBox is the rectangular lat/lon region of one import run.
type BoundingBox struct {
	Top    Degrees `json:"top"`
	Left   Degrees `json:"left"`
	Bottom Degrees `json:"bottom"`
	Right  Degrees `json:"right"`
}

// NewBoundingBox creates a BoundingBox from its minimum and maximum
// latitude and longitude.
func NewBoundingBox(minLat, minLon, maxLat, maxLon Degrees) BoundingBox {
	return BoundingBox{
		Top:    maxLat,
		Left:   minLon,
		Bottom: minLat,
		Right:  maxLon,
	}
}

// ParseBoundingBox parses "minLat,minLon,maxLat,maxLon" in decimal degrees.
func ParseBoundingBox(s string) (BoundingBox, error) {
	parts := strings.Split(s, ",")
	if len(parts) != 4 {
		return BoundingBox{}, fmt.Errorf("%w: expected minLat,minLon,maxLat,maxLon but got %q",
			ErrInvalidBoundingBox, s)
	}

	var vals [4]Degrees

	for i, p := range parts {
		d, err := ParseDegrees(strings.TrimSpace(p))
		if err != nil {
			return BoundingBox{}, fmt.Errorf("%w: %w", ErrInvalidBoundingBox, err)
		}

		vals[i] = d
	}

	b := NewBoundingBox(vals[0], vals[1], vals[2], vals[3])

	return b, b.Validate()
}

// InitialBoundingBox creates a BoundingBox that is meant to be expanded.
func InitialBoundingBox() *BoundingBox {
	return &BoundingBox{
		Top:    MinLat,
		Left:   MaxLon,
		Bottom: MaxLat,
		Right:  MinLon,
	}
}

// Validate checks that the box lies within the valid coordinate ranges and
// has a positive extent along both axes.
func (b BoundingBox) Validate() error {
	switch {
	case b.Bottom < MinLat || b.Top > MaxLat:
		return fmt.Errorf("%w: latitude outside [%s, %s]", ErrInvalidBoundingBox, ftoa(float64(MinLat)), ftoa(float64(MaxLat)))
	case b.Left < MinLon || b.Right > MaxLon:
		return fmt.Errorf("%w: longitude outside [%s, %s]", ErrInvalidBoundingBox, ftoa(float64(MinLon)), ftoa(float64(MaxLon)))
	case b.Bottom >= b.Top || b.Left >= b.Right:
		return fmt.Errorf("%w: %s", ErrEmptyBoundingBox, b)
	}

	return nil
}

// Center returns the latitude and longitude of the middle of the box.
func (b BoundingBox) Center() (lat Degrees, lon Degrees) {
	return (b.Top + b.Bottom) * Half, (b.Left + b.Right) * Half
}

// EqualWithin checks if two bounding boxes are within a specific epsilon.
func (b BoundingBox) EqualWithin(o BoundingBox, eps Epsilon) bool {
	return b.Left.EqualWithin(o.Left, eps) &&
		b.Right.EqualWithin(o.Right, eps) &&
		b.Top.EqualWithin(o.Top, eps) &&
		b.Bottom.EqualWithin(o.Bottom, eps)
}

// Contains checks if the bounding box contains the lat lng point.
func (b BoundingBox) Contains(lat Degrees, lng Degrees) bool {
	return b.Left <= lng && lng <= b.Right && b.Bottom <= lat && lat <= b.Top
}

func (b *BoundingBox) ExpandWithLatLng(lat, lng Degrees) {
	if b.Top < lat {
		b.Top = lat
	}

	if b.Bottom > lat {
		b.Bottom = lat
	}

	if b.Left > lng {
		b.Left = lng
	}

	if b.Right < lng {
		b.Right = lng
	}
}

// QueryParam renders the box the way map APIs expect it in a bbox query
// parameter: longitude before latitude, "minLon,minLat,maxLon,maxLat".
func (b BoundingBox) QueryParam() string {
	return strings.Join([]string{
		ftoa(float64(b.Left)), ftoa(float64(b.Bottom)),
		ftoa(float64(b.Right)), ftoa(float64(b.Top)),
	}, ",")
}

func (b BoundingBox) String() string {
	return fmt.Sprintf("[(%s, %s) (%s, %s)]",
		ftoa(float64(b.Top)), ftoa(float64(b.Left)),
		ftoa(float64(b.Bottom)), ftoa(float64(b.Right)))
}
