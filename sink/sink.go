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

// Package sink defines the destination of the geometry produced by an
// import, along with in-memory and Wavefront OBJ implementations.
package sink

import (
	"sync"

	"m4o.io/mapbridge/model"
)

// Sink accepts finished geometry.  It is write-only and append-only for the
// duration of an import; the importer never reads back from it.
type Sink interface {
	AddMesh(mesh model.Mesh) error
	AddCurve(curve model.Curve) error
}

// Collector is a Sink that keeps everything in memory, in emission order.
type Collector struct {
	mu       sync.Mutex
	geometry []model.Geometry
}

var _ Sink = &Collector{}

// NewCollector returns an empty Collector.
func NewCollector() *Collector {
	return &Collector{}
}

func (c *Collector) AddMesh(mesh model.Mesh) error {
	c.add(mesh)

	return nil
}

func (c *Collector) AddCurve(curve model.Curve) error {
	c.add(curve)

	return nil
}

func (c *Collector) add(g model.Geometry) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.geometry = append(c.geometry, g)
}

// Geometry returns everything collected so far, in emission order.
func (c *Collector) Geometry() []model.Geometry {
	c.mu.Lock()
	defer c.mu.Unlock()

	return append([]model.Geometry(nil), c.geometry...)
}

// Meshes returns the collected meshes in emission order.
func (c *Collector) Meshes() []model.Mesh {
	return collect[model.Mesh](c)
}

// Curves returns the collected curves in emission order.
func (c *Collector) Curves() []model.Curve {
	return collect[model.Curve](c)
}

func collect[T model.Geometry](c *Collector) []T {
	var out []T

	for _, g := range c.Geometry() {
		if v, ok := g.(T); ok {
			out = append(out, v)
		}
	}

	return out
}

// Emit hands a piece of geometry to the matching Sink method.
func Emit(s Sink, g model.Geometry) error {
	switch v := g.(type) {
	case model.Mesh:
		return s.AddMesh(v)
	case model.Curve:
		return s.AddCurve(v)
	default:
		panic("unrecognized geometry type")
	}
}
