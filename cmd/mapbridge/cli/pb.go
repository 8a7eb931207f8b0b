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

package cli

import (
	"fmt"
	"io"
	"os"

	pb "gopkg.in/cheggaaa/pb.v1"
)

// progressReader is an instance of ReadCloser with an associated
// ProgressBar.  Closing it closes the delegate and clears the terminal line
// of progress output.
type progressReader struct {
	r   io.ReadCloser
	bar *pb.ProgressBar
}

// WrapInputFile tracks the bytes read from f relative to its size with a
// progress bar on stderr.  Stdin, and f when show is false, are returned
// unwrapped.
func WrapInputFile(f *os.File, show bool) (io.ReadCloser, error) {
	if f == os.Stdin || !show {
		return f, nil
	}

	fi, err := f.Stat()
	if err != nil {
		return nil, err
	}

	bar := pb.New64(fi.Size()).SetUnits(pb.U_BYTES_DEC).SetWidth(79)
	bar.Output = os.Stderr
	bar.Prefix(fi.Name() + " ")
	bar.Start()

	return progressReader{
		r:   bar.NewProxyReader(f),
		bar: bar,
	}, nil
}

func (p progressReader) Read(b []byte) (int, error) {
	return p.r.Read(b)
}

// Close closes the delegate and clears the progress output.
func (p progressReader) Close() error {
	// make sure newline is not printed by Finish()
	p.bar.Output = nil
	p.bar.NotPrint = true

	p.bar.Finish()

	fmt.Fprintf(os.Stderr, "\033[2K\r")

	return p.r.Close()
}
