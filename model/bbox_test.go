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

package model_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"m4o.io/mapbridge/model"
)

func TestInitialBoundingBox(t *testing.T) {
	initial := model.InitialBoundingBox()
	assert.Equal(t, initial.Top, model.MinLat)
	assert.Equal(t, initial.Bottom, model.MaxLat)
	assert.Equal(t, initial.Right, model.MinLon)
	assert.Equal(t, initial.Left, model.MaxLon)
}

func TestNewBoundingBox(t *testing.T) {
	bbox := model.NewBoundingBox(43.7220, 10.3920, 43.7240, 10.3970)

	assert.Equal(t, model.Degrees(43.7240), bbox.Top)
	assert.Equal(t, model.Degrees(43.7220), bbox.Bottom)
	assert.Equal(t, model.Degrees(10.3920), bbox.Left)
	assert.Equal(t, model.Degrees(10.3970), bbox.Right)
	assert.NoError(t, bbox.Validate())
}

func TestBoundingBox_Center(t *testing.T) {
	bbox := model.NewBoundingBox(43.7220, 10.3920, 43.7240, 10.3970)

	lat, lon := bbox.Center()

	assert.True(t, model.Degrees(43.7230).EqualWithin(lat, model.E9))
	assert.True(t, model.Degrees(10.3945).EqualWithin(lon, model.E9))
}

func TestBoundingBox_QueryParam(t *testing.T) {
	bbox := model.NewBoundingBox(43.722, 10.392, 43.724, 10.397)

	assert.Equal(t, "10.392,43.722,10.397,43.724", bbox.QueryParam())
}

func TestBoundingBox_Validate(t *testing.T) {
	test_cases := []struct {
		name     string
		bbox     model.BoundingBox
		expected error
	}{
		{"valid", model.NewBoundingBox(-1, -1, 1, 1), nil},
		{"inverted latitude", model.NewBoundingBox(1, -1, -1, 1), model.ErrEmptyBoundingBox},
		{"inverted longitude", model.NewBoundingBox(-1, 1, 1, -1), model.ErrEmptyBoundingBox},
		{"degenerate", model.NewBoundingBox(1, 1, 1, 1), model.ErrEmptyBoundingBox},
		{"latitude out of range", model.NewBoundingBox(-91, 0, 0, 1), model.ErrInvalidBoundingBox},
		{"longitude out of range", model.NewBoundingBox(0, 0, 1, 181), model.ErrInvalidBoundingBox},
	}

	for _, tc := range test_cases {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.bbox.Validate()
			if tc.expected == nil {
				assert.NoError(t, err)
			} else {
				assert.ErrorIs(t, err, tc.expected)
			}
		})
	}
}

func TestParseBoundingBox(t *testing.T) {
	bbox, err := model.ParseBoundingBox("43.7220, 10.3920,43.7240,10.3970")
	require.NoError(t, err)
	assert.True(t, bbox.EqualWithin(model.NewBoundingBox(43.7220, 10.3920, 43.7240, 10.3970), model.E9))

	_, err = model.ParseBoundingBox("43.7220,10.3920,43.7240")
	assert.ErrorIs(t, err, model.ErrInvalidBoundingBox)

	_, err = model.ParseBoundingBox("43.7220,abc,43.7240,10.3970")
	assert.ErrorIs(t, err, model.ErrInvalidBoundingBox)

	_, err = model.ParseBoundingBox("43.7240,10.3920,43.7220,10.3970")
	assert.ErrorIs(t, err, model.ErrEmptyBoundingBox)
}

func TestBoundingBox_EqualWithin(t *testing.T) {
	bbox_1 := model.BoundingBox{Top: 51.69344, Left: -0.511482, Bottom: 51.28554, Right: 0.335437}
	bbox_2 := model.BoundingBox{
		Top:    bbox_1.Top + model.Degrees(model.E6),
		Left:   bbox_1.Left + model.Degrees(model.E6),
		Bottom: bbox_1.Bottom + model.Degrees(model.E6),
		Right:  bbox_1.Right + model.Degrees(model.E6),
	}

	assert.True(t, bbox_1.EqualWithin(bbox_2, model.E5))
	assert.False(t, bbox_1.EqualWithin(bbox_2, model.E7))
}

func TestBoundingBox_Contains(t *testing.T) {
	bbox_1 := model.BoundingBox{Top: 51.69344, Left: -0.511482, Bottom: 51.28554, Right: 0.335437}

	test_cases := []struct {
		name     string
		lat      model.Degrees
		lng      model.Degrees
		expected bool
	}{
		{"bottom/left", bbox_1.Bottom, bbox_1.Left, true},
		{"top/right", bbox_1.Top, bbox_1.Right, true},

		{"bottom/left-E5", bbox_1.Bottom, bbox_1.Left - model.Degrees(model.E5), false},
		{"bottom-E5/left", bbox_1.Bottom - model.Degrees(model.E5), bbox_1.Left, false},
		{"top/right+E5", bbox_1.Top, bbox_1.Right + model.Degrees(model.E5), false},
		{"top-E5/right", bbox_1.Top - model.Degrees(model.E5), bbox_1.Right, true},
	}

	for _, tc := range test_cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, bbox_1.Contains(tc.lat, tc.lng))
		})
	}
}

func TestBoundingBox_ExpandWithLatLng(t *testing.T) {
	bbox := model.InitialBoundingBox()
	bbox.ExpandWithLatLng(-45, 90)
	bbox.ExpandWithLatLng(45, -90)

	assert.True(t, bbox.Contains(-45, 90))
	assert.True(t, bbox.Contains(45, -90))
	assert.True(t, bbox.Contains(-45, -90))
	assert.True(t, bbox.Contains(45, 90))
}

func TestBoundingBoxString(t *testing.T) {
	bbox := model.BoundingBox{Top: 51.69344, Left: -0.511482, Bottom: 51.28554, Right: 0.335437}
	assert.Equal(t, "[(51.69344, -0.511482) (51.28554, 0.335437)]", bbox.String())
}
