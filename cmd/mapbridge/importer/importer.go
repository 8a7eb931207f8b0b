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

// Package importer provides the import subcommand.
package importer

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	humanize "github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"m4o.io/mapbridge"
	"m4o.io/mapbridge/cmd/mapbridge/cli"
	"m4o.io/mapbridge/internal/codec"
	"m4o.io/mapbridge/model"
	"m4o.io/mapbridge/sink"
)

var out io.Writer = os.Stderr

var ErrNoRegion = errors.New("one of --bbox or --input is required")

var (
	bbox  *model.BoundingBox
	input *os.File
)

func init() {
	cli.RootCmd.AddCommand(importCmd)

	flags := importCmd.Flags()
	flags.Var(cli.NewBoundingBoxValue(&bbox), "bbox", "region to fetch as minLat,minLon,maxLat,maxLon")
	flags.VarP(cli.NewFileValue(nil, &input, "file"), "input", "i", "local extract (.osm, .osm.pbf, optionally compressed) instead of fetching")
	flags.StringP("output", "o", "-", "OBJ file to write, - for stdout")
	flags.IntP("cpu", "c", mapbridge.DefaultConcurrency(), "number of CPUs to use for building geometry")
	flags.BoolP("json", "j", false, "format the summary in JSON")
	flags.Bool("no-progress", false, "do not show a progress bar while reading --input")
}

var importCmd = &cobra.Command{
	Use:   "import",
	Short: "Import a region as Wavefront OBJ",
	Long: `Import the buildings, roads and sidewalks of a region as Wavefront OBJ.

The region is either fetched from the map API (--bbox) or read from a local
extract (--input).  With --input, --bbox only sets the projection reference.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		flags := cmd.Flags()

		cfg, err := cli.LoadConfig(cmd)
		if err != nil {
			return err
		}

		if flags.Changed("cpu") {
			if cfg.Concurrency, err = flags.GetInt("cpu"); err != nil {
				return err
			}
		}

		output, err := flags.GetString("output")
		if err != nil {
			return err
		}

		jsonfmt, err := flags.GetBool("json")
		if err != nil {
			return err
		}

		noProgress, err := flags.GetBool("no-progress")
		if err != nil {
			return err
		}

		importer, err := mapbridge.NewImporter(cfg.Options()...)
		if err != nil {
			return err
		}

		summary, err := writeScene(cmd.Context(), importer, region{bbox: bbox, input: input, progress: !noProgress}, output)
		if err != nil {
			return err
		}

		if jsonfmt {
			return renderJSON(summary)
		}

		renderTxt(summary)

		return nil
	},
}

// writeScene imports r into the OBJ file named output.  A file left
// incomplete by a failed import is removed.
func writeScene(ctx context.Context, importer *mapbridge.Importer, r region, output string) (mapbridge.Summary, error) {
	w, err := createOutput(output)
	if err != nil {
		return mapbridge.Summary{}, err
	}

	summary, err := runImport(ctx, importer, r, w)

	if cerr := w.Close(); err == nil {
		err = cerr
	}

	if err != nil && output != "-" {
		if rerr := os.Remove(output); rerr != nil {
			slog.Warn("unable to remove incomplete output", "path", output, "error", rerr)
		}
	}

	return summary, err
}

// createOutput opens the OBJ destination, compressing it when the name ends
// in a compression extension such as ".gz" or ".zst".
func createOutput(name string) (io.WriteCloser, error) {
	if name == "-" {
		return nopCloser{os.Stdout}, nil
	}

	f, err := os.Create(name)
	if err != nil {
		return nil, err
	}

	c, _ := codec.FromExtension(name)

	w, err := codec.NewWriter(f, c)
	if err != nil {
		_ = f.Close()

		return nil, err
	}

	return &compressedFile{WriteCloser: w, f: f}, nil
}

// compressedFile closes the compressor before the file underneath it.
type compressedFile struct {
	io.WriteCloser
	f *os.File
}

func (o *compressedFile) Close() error {
	err := o.WriteCloser.Close()

	if cerr := o.f.Close(); err == nil {
		err = cerr
	}

	return err
}

type nopCloser struct {
	io.Writer
}

func (nopCloser) Close() error {
	return nil
}

// region is what to import: a fetched bbox or a local extract.
type region struct {
	bbox     *model.BoundingBox
	input    *os.File
	progress bool
}

func runImport(ctx context.Context, importer *mapbridge.Importer, r region, w io.Writer) (mapbridge.Summary, error) {
	obj := sink.NewOBJ(w)

	var (
		summary mapbridge.Summary
		err     error
	)

	switch {
	case r.input != nil:
		in, werr := cli.WrapInputFile(r.input, r.progress)
		if werr != nil {
			return summary, werr
		}

		summary, err = importer.ImportReader(ctx, in, r.input.Name(), r.bbox, obj)

		if cerr := in.Close(); err == nil {
			err = cerr
		}
	case r.bbox != nil:
		summary, err = importer.Import(ctx, *r.bbox, obj)
	default:
		return summary, ErrNoRegion
	}

	if err != nil {
		return summary, err
	}

	return summary, obj.Flush()
}

func renderJSON(summary mapbridge.Summary) error {
	b, err := json.Marshal(summary)
	if err != nil {
		return err
	}

	_, err = fmt.Fprintln(out, string(b))

	return err
}

func renderTxt(summary mapbridge.Summary) {
	fmt.Fprintf(out, "Points: %s\n", humanize.Comma(int64(summary.Points)))
	fmt.Fprintf(out, "Ways: %s\n", humanize.Comma(int64(summary.Ways)))
	fmt.Fprintf(out, "Buildings: %s\n", humanize.Comma(int64(summary.Buildings)))
	fmt.Fprintf(out, "Roads: %s\n", humanize.Comma(int64(summary.Roads)))
	fmt.Fprintf(out, "Sidewalks: %s\n", humanize.Comma(int64(summary.Sidewalks)))
	fmt.Fprintf(out, "Ignored: %s\n", humanize.Comma(int64(summary.Ignored)))
	fmt.Fprintf(out, "Skipped: %s\n", humanize.Comma(int64(summary.Skipped)))

	if summary.Outside > 0 {
		fmt.Fprintf(out, "Outside: %s\n", humanize.Comma(int64(summary.Outside)))
	}

	if summary.Bytes > 0 {
		fmt.Fprintf(out, "Fetched: %s\n", humanize.Bytes(uint64(summary.Bytes)))
	}
}
