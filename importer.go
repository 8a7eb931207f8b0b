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

// Package mapbridge imports the buildings, roads and sidewalks of a map
// region as 3D geometry in a local Cartesian frame.
//
// An import fetches the region's OpenStreetMap data, parses it, projects
// every point relative to the center of the region, classifies every way and
// emits one mesh or curve per usable way to a sink.Sink.
package mapbridge

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/destel/rill"
	"github.com/paulmach/orb"

	"m4o.io/mapbridge/geometry"
	"m4o.io/mapbridge/internal/codec"
	"m4o.io/mapbridge/internal/fetch"
	"m4o.io/mapbridge/internal/parse"
	"m4o.io/mapbridge/model"
	"m4o.io/mapbridge/projection"
	"m4o.io/mapbridge/sink"
)

const regionFileName = "region.osm"

// Fetcher downloads the vector map data of a region, writing the
// uncompressed document to w.
type Fetcher interface {
	Fetch(ctx context.Context, bbox model.BoundingBox, w io.Writer) (int64, error)
}

// Summary tallies the outcome of an import.
type Summary struct {
	Points    int   `json:"points"`
	Ways      int   `json:"ways"`
	Buildings int   `json:"buildings"`
	Roads     int   `json:"roads"`
	Sidewalks int   `json:"sidewalks"`
	Ignored   int   `json:"ignored"`
	Skipped   int   `json:"skipped"`
	Outside   int   `json:"outside"`
	Bytes     int64 `json:"bytes"`
}

// Emitted returns the number of meshes and curves written to the sink.
func (s Summary) Emitted() int {
	return s.Buildings + s.Roads + s.Sidewalks
}

// Importer converts map regions into geometry.  It is safe for concurrent
// use; every import has its own temp directory and projection.
type Importer struct {
	cfg     importerOptions
	fetcher Fetcher
	builder *geometry.Builder
}

// NewImporter returns a new importer configured with options.
func NewImporter(opts ...ImporterOption) (*Importer, error) {
	cfg := defaultImporterConfig

	for _, opt := range opts {
		opt(&cfg)
	}

	if err := cfg.geometry.Validate(); err != nil {
		return nil, err
	}

	if cfg.concurrency < 1 {
		cfg.concurrency = 1
	}

	fetcher := cfg.fetcher
	if fetcher == nil {
		fetcher = fetch.New(cfg.endpoint, cfg.timeout, cfg.userAgent)
	}

	return &Importer{
		cfg:     cfg,
		fetcher: fetcher,
		builder: geometry.NewBuilder(cfg.geometry),
	}, nil
}

// Import fetches the region bbox and emits its geometry to s, projected
// relative to the center of bbox.  The fetched document is staged in a temp
// directory that is removed before Import returns, whether or not the
// import succeeded.
func (i *Importer) Import(ctx context.Context, bbox model.BoundingBox, s sink.Sink) (Summary, error) {
	if err := bbox.Validate(); err != nil {
		return Summary{}, err
	}

	dir, err := os.MkdirTemp(i.cfg.tempDir, "mapbridge")
	if err != nil {
		return Summary{}, fmt.Errorf("cannot create temporary directory: %w", err)
	}

	defer func() {
		if err := os.RemoveAll(dir); err != nil {
			slog.Error("error removing temp store", "error", err)
		}
	}()

	path := filepath.Join(dir, regionFileName)

	n, err := i.stage(ctx, bbox, path)
	if err != nil {
		return Summary{Bytes: n}, err
	}

	slog.Info("fetched region", "bbox", bbox, "bytes", n)

	f, err := os.Open(path)
	if err != nil {
		return Summary{Bytes: n}, fmt.Errorf("cannot open %s: %w", path, err)
	}
	defer f.Close()

	ds, err := parse.XML(bufio.NewReader(f))
	if err != nil {
		slog.Error("unable to parse region", "bbox", bbox, "error", err)

		return Summary{Bytes: n}, err
	}

	summary, err := i.Convert(ctx, ds, &bbox, s)
	summary.Bytes = n

	return summary, err
}

// stage writes the fetched region to path.
func (i *Importer) stage(ctx context.Context, bbox model.BoundingBox, path string) (int64, error) {
	f, err := os.Create(path)
	if err != nil {
		return 0, fmt.Errorf("cannot create temporary file %s: %w", path, err)
	}

	w := bufio.NewWriter(f)

	n, err := i.fetcher.Fetch(ctx, bbox, w)
	if err == nil {
		err = w.Flush()
	}

	if cerr := f.Close(); err == nil {
		err = cerr
	}

	return n, err
}

// ImportFile emits the geometry of a local extract.  The format and the
// compression are determined from the file name, e.g. "pisa.osm",
// "pisa.osm.gz" or "tuscany.osm.pbf".  See ImportReader for how the
// projection reference is chosen.
func (i *Importer) ImportFile(ctx context.Context, path string, bbox *model.BoundingBox, s sink.Sink) (Summary, error) {
	f, err := os.Open(path)
	if err != nil {
		return Summary{}, fmt.Errorf("cannot open %s: %w", path, err)
	}
	defer f.Close()

	return i.ImportReader(ctx, f, filepath.Base(path), bbox, s)
}

// ImportReader emits the geometry of an extract read from r; name is only
// used to determine the format and compression.  The projection reference
// is the center of bbox when given, else the center of the extract's
// declared bounds, else the center of the extent of its points.
func (i *Importer) ImportReader(ctx context.Context, r io.Reader, name string, bbox *model.BoundingBox, s sink.Sink) (Summary, error) {
	if bbox != nil {
		if err := bbox.Validate(); err != nil {
			return Summary{}, err
		}
	}

	format, compression := parse.Detect(name)

	rdr, err := codec.NewReader(bufio.NewReader(r), compression)
	if err != nil {
		return Summary{}, fmt.Errorf("cannot decompress %s: %w", name, err)
	}
	defer rdr.Close()

	var ds *model.Dataset

	switch format {
	case parse.FormatPBF:
		ds, err = parse.PBF(ctx, rdr, i.cfg.concurrency)
	default:
		ds, err = parse.XML(rdr)
	}

	if err != nil {
		slog.Error("unable to parse extract", "name", name, "format", format, "error", err)

		return Summary{}, err
	}

	return i.Convert(ctx, ds, bbox, s)
}

// built is the outcome of building a single way.
type built struct {
	way  model.Way
	kind model.FeatureKind
	geom model.Geometry
	err  error
}

// Convert emits the geometry of a parsed dataset.  Ways are built in
// parallel but emitted strictly in dataset order.  Ways that are ignored or
// lack enough resolvable points are counted, not reported; an error is
// returned only when the sink fails or ctx is done.  When bbox is given,
// points that fall outside it are still converted but counted in
// Summary.Outside.
func (i *Importer) Convert(ctx context.Context, ds *model.Dataset, bbox *model.BoundingBox, s sink.Sink) (Summary, error) {
	summary := Summary{Points: len(ds.Points), Ways: len(ds.Ways)}

	if err := ctx.Err(); err != nil {
		return summary, err
	}

	proj := projection.ForBoundingBox(reference(ds, bbox))

	projected := make(map[model.ID]orb.Point, len(ds.Points))
	for id, p := range ds.Points {
		projected[id] = proj.Project(p)

		if bbox != nil && !bbox.Contains(p.Lat, p.Lon) {
			summary.Outside++
		}
	}

	if summary.Outside > 0 {
		slog.Warn("points outside region", "count", summary.Outside, "bbox", bbox)
	}

	results := rill.OrderedMap(rill.FromSlice(ds.Ways, nil), i.cfg.concurrency, func(way model.Way) (built, error) {
		kind := model.Classify(way.Tags)
		if kind.Type == model.Ignored {
			return built{way: way, kind: kind}, nil
		}

		g, err := i.builder.Build(way, kind, resolve(way, projected))

		return built{way: way, kind: kind, geom: g, err: err}, nil
	})
	defer rill.DrainNB(results)

	for result := range results {
		if err := ctx.Err(); err != nil {
			return summary, err
		}

		if result.Error != nil {
			return summary, result.Error
		}

		b := result.Value

		switch {
		case b.kind.Type == model.Ignored:
			summary.Ignored++
		case b.err != nil:
			summary.Skipped++

			slog.Debug("skipped way", "way", b.way.ID, "kind", b.kind, "error", b.err)
		default:
			if err := sink.Emit(s, b.geom); err != nil {
				slog.Error("unable to emit geometry", "name", b.geom.GetName(), "error", err)

				return summary, fmt.Errorf("cannot emit %s: %w", b.geom.GetName(), err)
			}

			switch b.kind.Type {
			case model.Building:
				summary.Buildings++
			case model.Road:
				summary.Roads++
			case model.Sidewalk:
				summary.Sidewalks++
			}
		}
	}

	slog.Info("converted region",
		"buildings", summary.Buildings, "roads", summary.Roads, "sidewalks", summary.Sidewalks,
		"ignored", summary.Ignored, "skipped", summary.Skipped, "outside", summary.Outside)

	return summary, nil
}

// reference picks the box whose center anchors the projection.
func reference(ds *model.Dataset, bbox *model.BoundingBox) model.BoundingBox {
	if bbox != nil {
		return *bbox
	}

	if ds.Bounds != nil {
		return *ds.Bounds
	}

	if extent, ok := ds.Extent(); ok {
		return extent
	}

	return model.BoundingBox{}
}

// resolve returns the projected points of a way in order, skipping
// references to points that are not in the dataset.
func resolve(way model.Way, projected map[model.ID]orb.Point) []orb.Point {
	points := make([]orb.Point, 0, len(way.NodeIDs))

	for _, id := range way.NodeIDs {
		if p, ok := projected[id]; ok {
			points = append(points, p)
		}
	}

	return points
}
