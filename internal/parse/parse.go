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

// Package parse reads vector-map documents into a model.Dataset.
package parse

import (
	"fmt"
	"path/filepath"
	"strings"

	"m4o.io/mapbridge/internal/codec"
)

// Error reports malformed vector-map data.  It aborts the whole import; no
// partial dataset is returned alongside it.
type Error struct {
	Format Format
	Offset int64
	Err    error
}

func (e *Error) Error() string {
	if e.Offset > 0 {
		return fmt.Sprintf("parse %s at offset %d: %v", e.Format, e.Offset, e.Err)
	}

	return fmt.Sprintf("parse %s: %v", e.Format, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Format is an enumeration of vector-map encodings.
type Format int

const (
	// FormatXML is the OpenStreetMap XML format returned by the map API.
	FormatXML Format = iota

	// FormatPBF is the OpenStreetMap protocol buffer format used by extracts.
	FormatPBF
)

func (f Format) String() string {
	if f == FormatPBF {
		return "pbf"
	}

	return "xml"
}

// Detect determines the format and compression of a file from its name,
// e.g. "pisa.osm", "tuscany.osm.pbf" or "pisa.osm.gz".
func Detect(name string) (Format, codec.Compression) {
	c, rest := codec.FromExtension(name)

	if strings.EqualFold(filepath.Ext(rest), ".pbf") {
		return FormatPBF, c
	}

	return FormatXML, c
}
