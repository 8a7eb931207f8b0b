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

package mapbridge

import (
	"runtime"
	"time"

	"m4o.io/mapbridge/geometry"
	"m4o.io/mapbridge/internal/fetch"
)

// DefaultConcurrency provides the default number of geometry builders.
func DefaultConcurrency() int {
	return max(runtime.GOMAXPROCS(-1)-1, 1)
}

// importerOptions provides optional configuration parameters for Importer
// construction.
type importerOptions struct {
	fetcher     Fetcher         // overrides the HTTP client built from the fields below
	endpoint    string          // map API endpoint
	timeout     time.Duration   // whole-request fetch timeout
	userAgent   string          // User-Agent sent to the map API
	tempDir     string          // parent of the per-import temp directory
	concurrency int             // number of geometry builders
	geometry    geometry.Config // dimensions of the generated geometry
}

// ImporterOption configures how we set up the importer.
type ImporterOption func(*importerOptions)

// WithFetcher replaces the HTTP fetcher, e.g. with a canned region in tests.
func WithFetcher(f Fetcher) ImporterOption {
	return func(o *importerOptions) {
		o.fetcher = f
	}
}

// WithEndpoint lets you set the map API endpoint.
func WithEndpoint(endpoint string) ImporterOption {
	return func(o *importerOptions) {
		o.endpoint = endpoint
	}
}

// WithTimeout lets you bound how long a fetch may take.
func WithTimeout(d time.Duration) ImporterOption {
	return func(o *importerOptions) {
		o.timeout = d
	}
}

// WithUserAgent lets you set the User-Agent sent to the map API.
func WithUserAgent(ua string) ImporterOption {
	return func(o *importerOptions) {
		o.userAgent = ua
	}
}

// WithTempDir lets you set the directory in which fetched regions are
// staged.  The default is os.TempDir().
func WithTempDir(dir string) ImporterOption {
	return func(o *importerOptions) {
		o.tempDir = dir
	}
}

// WithConcurrency lets you set the number of ways built in parallel.
func WithConcurrency(n int) ImporterOption {
	return func(o *importerOptions) {
		o.concurrency = n
	}
}

// WithGeometry lets you set the dimensions of buildings, roads and
// sidewalks.
func WithGeometry(cfg geometry.Config) ImporterOption {
	return func(o *importerOptions) {
		o.geometry = cfg
	}
}

// defaultImporterConfig provides a default configuration for importers.
var defaultImporterConfig = importerOptions{
	endpoint:    fetch.DefaultEndpoint,
	timeout:     fetch.DefaultTimeout,
	userAgent:   fetch.DefaultUserAgent,
	concurrency: DefaultConcurrency(),
	geometry:    geometry.DefaultConfig(),
}
