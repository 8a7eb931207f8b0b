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

// Package codec compresses and uncompresses vector-map data and scene
// output, for local extracts, HTTP responses and output files.
package codec

import (
	"compress/bzip2"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zstd"
	"github.com/pierrec/lz4"
	"github.com/ulikunitz/xz"
)

// Compression is an enumeration of supported compression formats.
type Compression int

const (
	None Compression = iota
	Gzip
	Zstd
	Lz4
	Xz
	Bzip2
)

var ErrUnknownCompressionType = errors.New("unknown compression type")

var extensions = map[string]Compression{
	".gz":  Gzip,
	".zst": Zstd,
	".lz4": Lz4,
	".xz":  Xz,
	".bz2": Bzip2,
}

func (c Compression) String() string {
	switch c {
	case None:
		return "none"
	case Gzip:
		return "gzip"
	case Zstd:
		return "zstd"
	case Lz4:
		return "lz4"
	case Xz:
		return "xz"
	case Bzip2:
		return "bzip2"
	default:
		return fmt.Sprintf("Compression(%d)", int(c))
	}
}

// FromExtension determines the compression of a file from its name.  The
// name is returned with the compression extension removed, so that the
// underlying format can be determined from what remains.
func FromExtension(name string) (Compression, string) {
	ext := strings.ToLower(filepath.Ext(name))
	if c, ok := extensions[ext]; ok {
		return c, name[:len(name)-len(ext)]
	}

	return None, name
}

// FromContentEncoding maps an HTTP Content-Encoding header onto a Compression.
func FromContentEncoding(encoding string) (Compression, error) {
	switch strings.ToLower(strings.TrimSpace(encoding)) {
	case "", "identity":
		return None, nil
	case "gzip", "x-gzip":
		return Gzip, nil
	case "zstd":
		return Zstd, nil
	default:
		return None, fmt.Errorf("%w: content encoding %q", ErrUnknownCompressionType, encoding)
	}
}

// NewReader wraps r so that reads return uncompressed data.  Closing the
// returned reader releases decoder resources but does not close r.
func NewReader(r io.Reader, c Compression) (io.ReadCloser, error) {
	var factory func(r io.Reader) (io.ReadCloser, error)

	switch c {
	case None:
		return io.NopCloser(r), nil
	case Gzip:
		factory = func(r io.Reader) (io.ReadCloser, error) {
			return gzip.NewReader(r)
		}
	case Zstd:
		factory = func(r io.Reader) (io.ReadCloser, error) {
			d, err := zstd.NewReader(r)
			if err != nil {
				return nil, err
			}

			return d.IOReadCloser(), nil
		}
	case Lz4:
		factory = func(r io.Reader) (io.ReadCloser, error) {
			return io.NopCloser(lz4.NewReader(r)), nil
		}
	case Xz:
		factory = func(r io.Reader) (io.ReadCloser, error) {
			xr, err := xz.NewReader(r)
			if err != nil {
				return nil, err
			}

			return io.NopCloser(xr), nil
		}
	case Bzip2:
		factory = func(r io.Reader) (io.ReadCloser, error) {
			return io.NopCloser(bzip2.NewReader(r)), nil
		}
	default:
		return nil, ErrUnknownCompressionType
	}

	rdr, err := factory(r)
	if err != nil {
		return nil, fmt.Errorf("decompressor factory error: %w", err)
	}

	return rdr, nil
}
