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
	"math"
	"testing"

	"github.com/stretchr/testify/assert"

	"m4o.io/mapbridge/model"
)

func TestDegreesAngle(t *testing.T) {
	assert.True(t, model.Angle(0.78539816).EqualWithin(model.Degrees(45.0).Angle(), model.E7))
	assert.InDelta(t, math.Pi, model.Degrees(180).Angle().Radians(), 1e-12)
}

func TestDegreesFromRadians(t *testing.T) {
	assert.True(t, model.Degrees(45).EqualWithin(model.DegreesFromRadians(math.Pi/4), model.E9))
	assert.True(t, model.Degrees(-90).EqualWithin(model.DegreesFromRadians(-math.Pi/2), model.E9))
}

func TestDegreesParse(t *testing.T) {
	d, err := model.ParseDegrees("53.123450")
	if err != nil {
		t.Error(err)
	}

	assert.True(t, model.Degrees(53.123450).EqualWithin(d, model.E5))

	_, err = model.ParseDegrees("abc")
	if err == nil {
		t.Error("Parsing should have failed")
	}

	_, err = model.ParseDegrees("NaN")
	assert.Error(t, err)
}

func TestDegreesEqualWithin(t *testing.T) {
	assert.True(t, model.Degrees(53.123450).EqualWithin(model.Degrees(53.123454), model.E5))
	assert.False(t, model.Degrees(53.123450).EqualWithin(model.Degrees(53.123455), model.E5))
}

func TestDegreesString(t *testing.T) {
	assert.Equal(t, "53° 7' 24.42\"", model.Degrees(53.123450).String())
	assert.Equal(t, "-10° 30' 0\"", model.Degrees(-10.5).String())
}
