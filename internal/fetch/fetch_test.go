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

package fetch

import (
	"bytes"
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/klauspost/compress/gzip"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"m4o.io/mapbridge/model"
)

const doc = `<osm version="0.6"><node id="1" lat="43.7230" lon="10.3945"/></osm>`

var pisa = model.NewBoundingBox(43.7220, 10.3920, 43.7240, 10.3970)

func TestFetch(t *testing.T) {
	var (
		path, query, agent, accept string
	)

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		path = r.URL.Path
		query = r.URL.Query().Get("bbox")
		agent = r.Header.Get("User-Agent")
		accept = r.Header.Get("Accept-Encoding")

		_, _ = w.Write([]byte(doc))
	}))
	defer srv.Close()

	var buf bytes.Buffer

	n, err := New(srv.URL+"/api/0.6/", time.Second, "mapbridge-test").Fetch(context.Background(), pisa, &buf)
	require.NoError(t, err)

	assert.Equal(t, int64(len(doc)), n)
	assert.Equal(t, doc, buf.String())
	assert.Equal(t, "/api/0.6/map", path)
	assert.Equal(t, "10.392,43.722,10.397,43.724", query)
	assert.Equal(t, "mapbridge-test", agent)
	assert.Equal(t, "gzip", accept)
}

func TestFetchGzip(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Encoding", "gzip")

		zw := gzip.NewWriter(w)
		_, _ = zw.Write([]byte(doc))
		_ = zw.Close()
	}))
	defer srv.Close()

	var buf bytes.Buffer

	n, err := New(srv.URL, 0, "").Fetch(context.Background(), pisa, &buf)
	require.NoError(t, err)

	assert.Equal(t, int64(len(doc)), n)
	assert.Equal(t, doc, buf.String())
}

func TestFetchStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "You requested too many nodes (limit is 50000).", http.StatusBadRequest)
	}))
	defer srv.Close()

	var buf bytes.Buffer

	_, err := New(srv.URL, time.Second, "").Fetch(context.Background(), pisa, &buf)

	var ferr *Error
	require.True(t, errors.As(err, &ferr), "expected *fetch.Error but got %v", err)
	assert.Equal(t, http.StatusBadRequest, ferr.StatusCode)
	assert.Equal(t, "You requested too many nodes (limit is 50000).", ferr.Body)
	assert.Contains(t, err.Error(), "400 Bad Request")
	assert.Zero(t, buf.Len())
}

func TestFetchUnknownEncoding(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Encoding", "br")
		_, _ = w.Write([]byte("not really brotli"))
	}))
	defer srv.Close()

	_, err := New(srv.URL, time.Second, "").Fetch(context.Background(), pisa, &bytes.Buffer{})

	var ferr *Error
	require.True(t, errors.As(err, &ferr))
	assert.Zero(t, ferr.StatusCode)
}

func TestFetchTimeout(t *testing.T) {
	release := make(chan struct{})

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-release:
		case <-r.Context().Done():
		}
	}))
	defer srv.Close()
	defer close(release)

	_, err := New(srv.URL, 50*time.Millisecond, "").Fetch(context.Background(), pisa, &bytes.Buffer{})

	var ferr *Error
	require.True(t, errors.As(err, &ferr), "expected *fetch.Error but got %v", err)
	assert.Zero(t, ferr.StatusCode)
	assert.Error(t, ferr.Err)
}

func TestFetchCancelled(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(doc))
	}))
	defer srv.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := New(srv.URL, time.Second, "").Fetch(ctx, pisa, &bytes.Buffer{})

	assert.ErrorIs(t, err, context.Canceled)
}

func TestFetchUnreachable(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	_, err := New(url, time.Second, "").Fetch(context.Background(), pisa, &bytes.Buffer{})

	var ferr *Error
	require.True(t, errors.As(err, &ferr))
	assert.Equal(t, url+"/map?bbox=10.392,43.722,10.397,43.724", ferr.URL)
}
