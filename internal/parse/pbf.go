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
	"context"
	"io"
	"log/slog"

	"github.com/paulmach/osm"
	"github.com/paulmach/osm/osmpbf"

	"m4o.io/mapbridge/model"
)

// PBF reads an OpenStreetMap PBF extract using procs decoding goroutines.
// Relations are not needed and are skipped.
func PBF(ctx context.Context, r io.Reader, procs int) (*model.Dataset, error) {
	if procs < 1 {
		procs = 1
	}

	scanner := osmpbf.New(ctx, r, procs)
	defer scanner.Close()

	scanner.SkipRelations = true

	ds := model.NewDataset()

	var dropped int

	for scanner.Scan() {
		switch o := scanner.Object().(type) {
		case *osm.Node:
			ds.Points[model.ID(o.ID)] = model.GeoPoint{
				ID:  model.ID(o.ID),
				Lat: model.Degrees(o.Lat),
				Lon: model.Degrees(o.Lon),
			}
		case *osm.Way:
			if way, ok := convertWay(o); ok {
				ds.Ways = append(ds.Ways, way)
			} else {
				dropped++
			}
		}
	}

	if err := scanner.Err(); err != nil {
		slog.Error("unable to scan pbf", "error", err)

		return nil, &Error{Format: FormatPBF, Err: err}
	}

	slog.Debug("parsed pbf", "points", len(ds.Points), "ways", len(ds.Ways), "skippedWays", dropped)

	return ds, nil
}

func convertWay(w *osm.Way) (model.Way, bool) {
	if len(w.Nodes) == 0 {
		return model.Way{}, false
	}

	way := model.Way{
		ID:      model.ID(w.ID),
		NodeIDs: make([]model.ID, len(w.Nodes)),
		Tags:    make(map[string]string, len(w.Tags)),
	}

	for i, n := range w.Nodes {
		way.NodeIDs[i] = model.ID(n.ID)
	}

	for _, t := range w.Tags {
		if _, dup := way.Tags[t.Key]; !dup {
			way.Tags[t.Key] = t.Value
		}
	}

	return way, true
}
