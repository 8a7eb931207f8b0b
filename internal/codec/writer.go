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

package codec

import (
	"errors"
	"fmt"
	"io"

	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zstd"
	"github.com/pierrec/lz4"
	"github.com/ulikunitz/xz"
)

var ErrUnsupportedCompression = errors.New("compression not supported for writing")

type nopCloserWriter struct {
	io.Writer
}

func (w nopCloserWriter) Close() error {
	return nil
}

// NewWriter wraps w so that written data is compressed.  Close must be
// called to flush the compressed stream; it does not close w.
func NewWriter(w io.Writer, c Compression) (io.WriteCloser, error) {
	var (
		wc  io.WriteCloser
		err error
	)

	switch c {
	case None:
		wc = nopCloserWriter{w}
	case Gzip:
		wc = gzip.NewWriter(w)
	case Zstd:
		wc, err = zstd.NewWriter(w)
	case Lz4:
		wc = lz4.NewWriter(w)
	case Xz:
		wc, err = xz.NewWriter(w)
	case Bzip2:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedCompression, c)
	default:
		return nil, ErrUnknownCompressionType
	}

	if err != nil {
		return nil, fmt.Errorf("compressor factory error: %w", err)
	}

	return wc, nil
}
