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

package sink

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"
	"sync"

	"m4o.io/mapbridge/model"
)

// OBJ is a Sink writing Wavefront OBJ.  Each mesh or curve becomes a named
// object; curves are written as polylines with their bevel radius recorded
// in a comment for the importing host.  Coordinates are written as built:
// meters, Z up.
//
// Output is buffered; call Flush once the import has finished.
type OBJ struct {
	mu     sync.Mutex
	w      *bufio.Writer
	offset int
}

var _ Sink = &OBJ{}

// NewOBJ returns an OBJ sink writing to w.
func NewOBJ(w io.Writer) *OBJ {
	return &OBJ{w: bufio.NewWriter(w)}
}

func (o *OBJ) AddMesh(mesh model.Mesh) error {
	o.mu.Lock()
	defer o.mu.Unlock()

	if _, err := fmt.Fprintf(o.w, "o %s\n", objName(mesh.Name)); err != nil {
		return err
	}

	if err := o.writeVertices(mesh.Vertices); err != nil {
		return err
	}

	for _, f := range mesh.Faces {
		if err := o.writeIndices("f", f); err != nil {
			return err
		}
	}

	o.offset += len(mesh.Vertices)

	return nil
}

func (o *OBJ) AddCurve(curve model.Curve) error {
	o.mu.Lock()
	defer o.mu.Unlock()

	if _, err := fmt.Fprintf(o.w, "o %s\n# bevel %s\n", objName(curve.Name), ftoa(curve.BevelRadius)); err != nil {
		return err
	}

	if err := o.writeVertices(curve.Points); err != nil {
		return err
	}

	line := make([]int, len(curve.Points))
	for i := range line {
		line[i] = i
	}

	if err := o.writeIndices("l", line); err != nil {
		return err
	}

	o.offset += len(curve.Points)

	return nil
}

// Flush writes any buffered data to the underlying writer.
func (o *OBJ) Flush() error {
	o.mu.Lock()
	defer o.mu.Unlock()

	return o.w.Flush()
}

func (o *OBJ) writeVertices(vertices []model.Vertex) error {
	for _, v := range vertices {
		if _, err := fmt.Fprintf(o.w, "v %s %s %s\n", ftoa(v.X), ftoa(v.Y), ftoa(v.Z)); err != nil {
			return err
		}
	}

	return nil
}

// writeIndices writes an element line; OBJ indices are 1-based and global
// to the file.
func (o *OBJ) writeIndices(element string, indices []int) error {
	var sb strings.Builder

	sb.WriteString(element)

	for _, idx := range indices {
		sb.WriteByte(' ')
		sb.WriteString(strconv.Itoa(o.offset + idx + 1))
	}

	sb.WriteByte('\n')

	_, err := o.w.WriteString(sb.String())

	return err
}

// objName replaces whitespace, which OBJ does not allow in object names.
func objName(name string) string {
	return strings.Join(strings.Fields(name), "_")
}

func ftoa(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}
