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

package cli

import (
	"os"

	"github.com/spf13/pflag"

	"m4o.io/mapbridge/model"
)

// -- *os.File Value
type fileValue struct {
	value    **os.File
	typename string
}

// NewFileValue creates a pflag Value that opens the named file for reading.
// The caller closes the file.
func NewFileValue(def *os.File, p **os.File, typename string) pflag.Value {
	fv := &fileValue{
		value:    p,
		typename: typename,
	}
	*fv.value = def

	return fv
}

func (f *fileValue) Set(val string) error {
	if val == "-" {
		*f.value = os.Stdin
		return nil
	}

	file, err := os.Open(val)
	if err != nil {
		return err
	}

	*f.value = file

	return nil
}

func (f *fileValue) Type() string {
	return f.typename
}

func (f *fileValue) String() string {
	if *f.value == nil {
		return ""
	}

	return (*f.value).Name()
}

// -- *model.BoundingBox Value
type bboxValue struct {
	value **model.BoundingBox
}

// NewBoundingBoxValue creates a pflag Value parsing
// "minLat,minLon,maxLat,maxLon".  p stays nil until the flag is set.
func NewBoundingBoxValue(p **model.BoundingBox) pflag.Value {
	return &bboxValue{value: p}
}

func (b *bboxValue) Set(val string) error {
	bbox, err := model.ParseBoundingBox(val)
	if err != nil {
		return err
	}

	*b.value = &bbox

	return nil
}

func (b *bboxValue) Type() string {
	return "bbox"
}

func (b *bboxValue) String() string {
	if *b.value == nil {
		return ""
	}

	return (*b.value).String()
}
