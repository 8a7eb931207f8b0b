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

package parse

import (
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strconv"

	"m4o.io/mapbridge/model"
)

var ErrMissingRoot = errors.New("missing <osm> root element")

type xmlBounds struct {
	MinLat string `xml:"minlat,attr"`
	MinLon string `xml:"minlon,attr"`
	MaxLat string `xml:"maxlat,attr"`
	MaxLon string `xml:"maxlon,attr"`
}

type xmlNode struct {
	ID  string `xml:"id,attr"`
	Lat string `xml:"lat,attr"`
	Lon string `xml:"lon,attr"`
}

type xmlRef struct {
	Ref string `xml:"ref,attr"`
}

type xmlTag struct {
	Key   *string `xml:"k,attr"`
	Value *string `xml:"v,attr"`
}

type xmlWay struct {
	ID   string   `xml:"id,attr"`
	Refs []xmlRef `xml:"nd"`
	Tags []xmlTag `xml:"tag"`
}

// stats counts what was dropped while reading a document.
type stats struct {
	nodes int
	ways  int
	refs  int
	tags  int
}

// XML reads an OpenStreetMap XML document.  Structural errors abort with an
// *Error.  Nodes missing an id or coordinates, way references without a
// usable ref and tags missing a key or value are skipped individually; ways
// left without references are dropped.
func XML(r io.Reader) (*model.Dataset, error) {
	d := xml.NewDecoder(r)
	ds := model.NewDataset()

	var (
		root    bool
		skipped stats
	)

	for {
		tok, err := d.Token()
		if errors.Is(err, io.EOF) {
			break
		} else if err != nil {
			return nil, &Error{Format: FormatXML, Offset: d.InputOffset(), Err: err}
		}

		se, ok := tok.(xml.StartElement)
		if !ok {
			continue
		}

		if !root {
			if se.Name.Local != "osm" {
				return nil, &Error{Format: FormatXML, Offset: d.InputOffset(), Err: fmt.Errorf("%w: found <%s>", ErrMissingRoot, se.Name.Local)}
			}

			root = true
			ds.Header = decodeHeader(se.Attr)

			continue
		}

		switch se.Name.Local {
		case "node":
			var n xmlNode
			if err := d.DecodeElement(&n, &se); err != nil {
				return nil, &Error{Format: FormatXML, Offset: d.InputOffset(), Err: err}
			}

			if p, ok := decodeNode(n); ok {
				ds.Points[p.ID] = p
			} else {
				skipped.nodes++
			}
		case "way":
			var w xmlWay
			if err := d.DecodeElement(&w, &se); err != nil {
				return nil, &Error{Format: FormatXML, Offset: d.InputOffset(), Err: err}
			}

			if way, ok := decodeWay(w, &skipped); ok {
				ds.Ways = append(ds.Ways, way)
			} else {
				skipped.ways++
			}
		case "bounds":
			var b xmlBounds
			if err := d.DecodeElement(&b, &se); err != nil {
				return nil, &Error{Format: FormatXML, Offset: d.InputOffset(), Err: err}
			}

			if bbox, ok := decodeBounds(b); ok {
				ds.Bounds = &bbox
			}
		default:
			if err := d.Skip(); err != nil {
				return nil, &Error{Format: FormatXML, Offset: d.InputOffset(), Err: err}
			}
		}
	}

	if !root {
		return nil, &Error{Format: FormatXML, Err: ErrMissingRoot}
	}

	slog.Debug("parsed xml", "points", len(ds.Points), "ways", len(ds.Ways),
		"skippedNodes", skipped.nodes, "skippedWays", skipped.ways,
		"skippedRefs", skipped.refs, "skippedTags", skipped.tags)

	return ds, nil
}

func decodeHeader(attrs []xml.Attr) model.Header {
	var h model.Header

	for _, a := range attrs {
		switch a.Name.Local {
		case "version":
			h.Version = a.Value
		case "generator":
			h.Generator = a.Value
		case "copyright":
			h.Copyright = a.Value
		case "attribution":
			h.Attribution = a.Value
		case "license":
			h.License = a.Value
		}
	}

	return h
}

func decodeNode(n xmlNode) (model.GeoPoint, bool) {
	id, err := strconv.ParseInt(n.ID, 10, 64)
	if err != nil {
		return model.GeoPoint{}, false
	}

	lat, err := model.ParseDegrees(n.Lat)
	if err != nil || lat < model.MinLat || lat > model.MaxLat {
		return model.GeoPoint{}, false
	}

	lon, err := model.ParseDegrees(n.Lon)
	if err != nil || lon < model.MinLon || lon > model.MaxLon {
		return model.GeoPoint{}, false
	}

	return model.GeoPoint{ID: model.ID(id), Lat: lat, Lon: lon}, true
}

func decodeWay(w xmlWay, skipped *stats) (model.Way, bool) {
	id, err := strconv.ParseInt(w.ID, 10, 64)
	if err != nil {
		return model.Way{}, false
	}

	way := model.Way{
		ID:      model.ID(id),
		NodeIDs: make([]model.ID, 0, len(w.Refs)),
		Tags:    make(map[string]string, len(w.Tags)),
	}

	for _, r := range w.Refs {
		ref, err := strconv.ParseInt(r.Ref, 10, 64)
		if err != nil {
			skipped.refs++
			continue
		}

		way.NodeIDs = append(way.NodeIDs, model.ID(ref))
	}

	if len(way.NodeIDs) == 0 {
		return model.Way{}, false
	}

	for _, t := range w.Tags {
		if t.Key == nil || t.Value == nil {
			skipped.tags++
			continue
		}

		// keys are unique; the first occurrence wins
		if _, dup := way.Tags[*t.Key]; !dup {
			way.Tags[*t.Key] = *t.Value
		}
	}

	return way, true
}

func decodeBounds(b xmlBounds) (model.BoundingBox, bool) {
	var vals [4]model.Degrees

	for i, s := range []string{b.MinLat, b.MinLon, b.MaxLat, b.MaxLon} {
		d, err := model.ParseDegrees(s)
		if err != nil {
			return model.BoundingBox{}, false
		}

		vals[i] = d
	}

	bbox := model.NewBoundingBox(vals[0], vals[1], vals[2], vals[3])
	if bbox.Validate() != nil {
		return model.BoundingBox{}, false
	}

	return bbox, true
}
