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

// Package fetch downloads the vector map data of a region from an
// OpenStreetMap compatible map API.
package fetch

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"m4o.io/mapbridge/internal/codec"
	"m4o.io/mapbridge/model"
)

const (
	// DefaultEndpoint is the public OpenStreetMap API.
	DefaultEndpoint = "https://api.openstreetmap.org/api/0.6"

	// DefaultTimeout bounds a whole request including reading the body.
	DefaultTimeout = 2 * time.Minute

	// DefaultUserAgent identifies the importer to the map API.
	DefaultUserAgent = "m4o.io/mapbridge"

	// maxErrorBody caps how much of a failed response is kept in an Error.
	maxErrorBody = 4 << 10
)

// Error reports a failed fetch: a transport failure, a timeout or a non-2xx
// response.  Nothing is imported when a fetch fails.
type Error struct {
	URL        string
	StatusCode int
	Status     string
	Body       string
	Err        error
}

func (e *Error) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("fetch %s: %s: %s", e.URL, e.Status, e.Body)
	}

	return fmt.Sprintf("fetch %s: %v", e.URL, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Client fetches regions from a map API.
type Client struct {
	endpoint  string
	userAgent string
	http      *http.Client
}

// New creates a client for the map API at endpoint.  A non-positive timeout
// selects DefaultTimeout.
func New(endpoint string, timeout time.Duration, userAgent string) *Client {
	if endpoint == "" {
		endpoint = DefaultEndpoint
	}

	if timeout <= 0 {
		timeout = DefaultTimeout
	}

	if userAgent == "" {
		userAgent = DefaultUserAgent
	}

	return &Client{
		endpoint:  strings.TrimRight(endpoint, "/"),
		userAgent: userAgent,
		http:      &http.Client{Timeout: timeout},
	}
}

// URL returns the request URL for the region bbox.
func (c *Client) URL(bbox model.BoundingBox) string {
	return c.endpoint + "/map?bbox=" + bbox.QueryParam()
}

// Fetch issues a single GET for the region bbox and copies the uncompressed
// response body to w, returning the number of bytes written.  There is no
// retry.
func (c *Client) Fetch(ctx context.Context, bbox model.BoundingBox, w io.Writer) (int64, error) {
	url := c.URL(bbox)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return 0, &Error{URL: url, Err: err}
	}

	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set("Accept-Encoding", "gzip")

	resp, err := c.http.Do(req)
	if err != nil {
		slog.Error("unable to fetch region", "url", url, "error", err)

		return 0, &Error{URL: url, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		body, err := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		if err != nil {
			body = nil
		}

		return 0, &Error{
			URL:        url,
			StatusCode: resp.StatusCode,
			Status:     resp.Status,
			Body:       strings.TrimSpace(string(body)),
		}
	}

	compression, err := codec.FromContentEncoding(resp.Header.Get("Content-Encoding"))
	if err != nil {
		return 0, &Error{URL: url, Err: err}
	}

	body, err := codec.NewReader(resp.Body, compression)
	if err != nil {
		return 0, &Error{URL: url, Err: err}
	}
	defer body.Close()

	n, err := io.Copy(w, body)
	if err != nil {
		slog.Error("unable to read region", "url", url, "error", err)

		return n, &Error{URL: url, Err: err}
	}

	slog.Debug("fetched region", "url", url, "bytes", n, "compression", compression)

	return n, nil
}
