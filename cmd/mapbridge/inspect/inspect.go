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

// Package inspect provides the inspect subcommand.
package inspect

import (
	"cmp"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"runtime"
	"slices"
	"strings"

	humanize "github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"m4o.io/mapbridge/cmd/mapbridge/cli"
	"m4o.io/mapbridge/internal/codec"
	"m4o.io/mapbridge/internal/parse"
	"m4o.io/mapbridge/model"
)

var out io.Writer = os.Stdout

// report describes what an import of an extract would produce.
type report struct {
	Header    model.Header       `json:"header"`
	Bounds    *model.BoundingBox `json:"bounds,omitempty"`
	Extent    *model.BoundingBox `json:"extent,omitempty"`
	Points    int64              `json:"points"`
	Ways      int64              `json:"ways"`
	Buildings int64              `json:"buildings"`
	Roads     int64              `json:"roads"`
	Sidewalks int64              `json:"sidewalks"`
	Ignored   int64              `json:"ignored"`
	Highways  map[string]int64   `json:"highways,omitempty"`
}

func init() {
	cli.RootCmd.AddCommand(inspectCmd)

	flags := inspectCmd.Flags()
	flags.BoolP("json", "j", false, "format information in JSON")
	flags.IntP("cpu", "c", runtime.GOMAXPROCS(-1), "number of CPUs to use for scanning")
}

var inspectCmd = &cobra.Command{
	Use:   "inspect [<OSM file>]",
	Short: "Print what an OSM extract contains",
	Long:  "Print the bounds, element counts and feature classification of an OSM extract",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		f := os.Stdin
		if len(args) == 1 {
			var err error

			if f, err = os.Open(args[0]); err != nil {
				return err
			}
		}

		flags := cmd.Flags()

		jsonfmt, err := flags.GetBool("json")
		if err != nil {
			return err
		}

		ncpu, err := flags.GetInt("cpu")
		if err != nil {
			return err
		}

		in, err := cli.WrapInputFile(f, !jsonfmt)
		if err != nil {
			return err
		}

		info, err := runInspect(cmd.Context(), in, f.Name(), ncpu)

		if cerr := in.Close(); err == nil {
			err = cerr
		}

		if err != nil {
			return err
		}

		if jsonfmt {
			return renderJSON(info)
		}

		renderTxt(info)

		return nil
	},
}

func runInspect(ctx context.Context, in io.Reader, name string, ncpu int) (*report, error) {
	format, compression := parse.Detect(name)

	r, err := codec.NewReader(in, compression)
	if err != nil {
		return nil, err
	}
	defer r.Close()

	var ds *model.Dataset

	if format == parse.FormatPBF {
		ds, err = parse.PBF(ctx, r, ncpu)
	} else {
		ds, err = parse.XML(r)
	}

	if err != nil {
		return nil, err
	}

	info := &report{
		Header:   ds.Header,
		Bounds:   ds.Bounds,
		Points:   int64(len(ds.Points)),
		Ways:     int64(len(ds.Ways)),
		Highways: make(map[string]int64),
	}

	if extent, ok := ds.Extent(); ok {
		info.Extent = &extent
	}

	for _, w := range ds.Ways {
		kind := model.Classify(w.Tags)

		switch kind.Type {
		case model.Building:
			info.Buildings++
		case model.Road:
			info.Roads++
			info.Highways[kind.Highway]++
		case model.Sidewalk:
			info.Sidewalks++
		default:
			info.Ignored++
		}
	}

	return info, nil
}

func renderJSON(info *report) error {
	b, err := json.Marshal(info)
	if err != nil {
		return err
	}

	_, err = fmt.Fprint(out, string(b))

	return err
}

func renderTxt(info *report) {
	if info.Header.Version != "" {
		fmt.Fprintf(out, "Version: %s\n", info.Header.Version)
	}

	if info.Header.Generator != "" {
		fmt.Fprintf(out, "Generator: %s\n", info.Header.Generator)
	}

	if info.Bounds != nil {
		fmt.Fprintf(out, "Bounds: %s\n", info.Bounds)
	}

	if info.Extent != nil {
		fmt.Fprintf(out, "Extent: %s\n", info.Extent)
	}

	fmt.Fprintf(out, "Points: %s\n", humanize.Comma(info.Points))
	fmt.Fprintf(out, "Ways: %s\n", humanize.Comma(info.Ways))
	fmt.Fprintf(out, "Buildings: %s\n", humanize.Comma(info.Buildings))
	fmt.Fprintf(out, "Roads: %s\n", humanize.Comma(info.Roads))
	fmt.Fprintf(out, "Sidewalks: %s\n", humanize.Comma(info.Sidewalks))
	fmt.Fprintf(out, "Ignored: %s\n", humanize.Comma(info.Ignored))

	if len(info.Highways) > 0 {
		fmt.Fprintf(out, "Highways: %s\n", highways(info.Highways))
	}
}

// highways lists highway types by descending count, then by name.
func highways(counts map[string]int64) string {
	types := make([]string, 0, len(counts))
	for t := range counts {
		types = append(types, t)
	}

	slices.SortFunc(types, func(a, b string) int {
		if c := cmp.Compare(counts[b], counts[a]); c != 0 {
			return c
		}

		return strings.Compare(a, b)
	})

	parts := make([]string, len(types))
	for i, t := range types {
		parts[i] = fmt.Sprintf("%s (%s)", t, humanize.Comma(counts[t]))
	}

	return strings.Join(parts, ", ")
}
