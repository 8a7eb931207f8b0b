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

// Package config loads importer settings from a YAML file, .env files and
// MAPBRIDGE_* environment variables, in increasing order of precedence.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"m4o.io/mapbridge"
	"m4o.io/mapbridge/geometry"
	"m4o.io/mapbridge/internal/fetch"
)

// EnvPrefix prefixes every environment variable read by Load.
const EnvPrefix = "MAPBRIDGE_"

var ErrInvalidConfig = errors.New("invalid configuration")

// Config holds everything needed to construct an importer.
type Config struct {
	Endpoint    string          `yaml:"endpoint"`
	Timeout     time.Duration   `yaml:"timeout"`
	UserAgent   string          `yaml:"user_agent"`
	Concurrency int             `yaml:"concurrency"`
	TempDir     string          `yaml:"temp_dir"`
	Geometry    geometry.Config `yaml:"geometry"`
}

// Default returns the configuration used when nothing is overridden.
func Default() Config {
	return Config{
		Endpoint:    fetch.DefaultEndpoint,
		Timeout:     fetch.DefaultTimeout,
		UserAgent:   fetch.DefaultUserAgent,
		Concurrency: mapbridge.DefaultConcurrency(),
		Geometry:    geometry.DefaultConfig(),
	}
}

// LoadDotEnv adds the variables of the given .env files to the environment
// without overriding variables that are already set.  Missing files are not
// an error.
func LoadDotEnv(files ...string) {
	for _, f := range files {
		if err := godotenv.Load(f); err != nil {
			slog.Debug("no dotenv", "file", f, "error", err)
		}
	}
}

// Load reads the YAML file at path, if path is not empty, over the defaults
// and then applies MAPBRIDGE_* environment overrides.
func Load(path string) (Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return Config{}, fmt.Errorf("cannot read config %s: %w", path, err)
		}

		if err := cfg.decode(bytes.NewReader(data)); err != nil {
			return Config{}, fmt.Errorf("cannot parse config %s: %w", path, err)
		}
	}

	if err := cfg.applyEnv(os.LookupEnv); err != nil {
		return Config{}, err
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}

	return cfg, nil
}

// decode merges a YAML document into c.  Unknown keys are rejected so that
// typos do not go unnoticed.
func (c *Config) decode(r io.Reader) error {
	d := yaml.NewDecoder(r)
	d.KnownFields(true)

	if err := d.Decode(c); err != nil && !errors.Is(err, io.EOF) {
		return err
	}

	return nil
}

func (c *Config) applyEnv(lookup func(string) (string, bool)) error {
	str := func(name string, dst *string) {
		if v, ok := lookup(EnvPrefix + name); ok {
			*dst = v
		}
	}

	str("ENDPOINT", &c.Endpoint)
	str("USER_AGENT", &c.UserAgent)
	str("TEMP_DIR", &c.TempDir)

	if v, ok := lookup(EnvPrefix + "TIMEOUT"); ok {
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("%w: %sTIMEOUT: %w", ErrInvalidConfig, EnvPrefix, err)
		}

		c.Timeout = d
	}

	if v, ok := lookup(EnvPrefix + "CONCURRENCY"); ok {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("%w: %sCONCURRENCY: %w", ErrInvalidConfig, EnvPrefix, err)
		}

		c.Concurrency = n
	}

	if v, ok := lookup(EnvPrefix + "BUILDING_HEIGHT"); ok {
		h, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return fmt.Errorf("%w: %sBUILDING_HEIGHT: %w", ErrInvalidConfig, EnvPrefix, err)
		}

		c.Geometry.BuildingHeight = h
	}

	if v, ok := lookup(EnvPrefix + "HEIGHT_FROM_TAGS"); ok {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("%w: %sHEIGHT_FROM_TAGS: %w", ErrInvalidConfig, EnvPrefix, err)
		}

		c.Geometry.HeightFromTags = b
	}

	return nil
}

// Validate checks the settings an importer cannot work without.
func (c Config) Validate() error {
	switch {
	case c.Endpoint == "":
		return fmt.Errorf("%w: empty endpoint", ErrInvalidConfig)
	case c.Timeout <= 0:
		return fmt.Errorf("%w: timeout %v", ErrInvalidConfig, c.Timeout)
	case c.Concurrency < 1:
		return fmt.Errorf("%w: concurrency %d", ErrInvalidConfig, c.Concurrency)
	}

	return c.Geometry.Validate()
}

// Options converts the configuration into importer options.
func (c Config) Options() []mapbridge.ImporterOption {
	return []mapbridge.ImporterOption{
		mapbridge.WithEndpoint(c.Endpoint),
		mapbridge.WithTimeout(c.Timeout),
		mapbridge.WithUserAgent(c.UserAgent),
		mapbridge.WithTempDir(c.TempDir),
		mapbridge.WithConcurrency(c.Concurrency),
		mapbridge.WithGeometry(c.Geometry),
	}
}
