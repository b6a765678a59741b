// Copyright 2022 someonegg. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"

	"github.com/someonegg/seatmatch/exam"
)

const (
	formatJSON = "json"
	formatCBOR = "cbor"
)

// Config holds the assign settings. Values come from Default, then the
// config file, then SEATGEN_* environment variables, then explicit flags.
type Config struct {
	// Algorithm is "hopcroft-karp" or "greedy".
	Algorithm string `yaml:"algorithm"`

	// WarmStart seeds Hopcroft-Karp with a greedy matching.
	WarmStart bool `yaml:"warm_start"`

	// Verify checks the matching is valid and maximum before writing it.
	Verify bool `yaml:"verify"`

	// Format is "json" or "cbor".
	Format string `yaml:"format"`

	// Indent pretty-prints JSON output. Unset: indent only on a terminal.
	Indent *bool `yaml:"indent,omitempty"`

	// MetricsFile receives the run metrics in Prometheus text format.
	MetricsFile string `yaml:"metrics_file"`
}

func Default() *Config {
	return &Config{
		Algorithm: exam.AlgorithmHopcroftKarp,
		Format:    formatJSON,
	}
}

// LoadConfig reads path over the defaults. An empty path returns the
// defaults.
func LoadConfig(path string) (*Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}
	defer f.Close()

	decoder := yaml.NewDecoder(f)
	decoder.KnownFields(true)
	if err := decoder.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("parsing config %s: %w", path, err)
	}
	return cfg, nil
}

func (c *Config) applyEnv(getenv func(string) string) error {
	if v := getenv("SEATGEN_ALGORITHM"); v != "" {
		c.Algorithm = v
	}
	if v := getenv("SEATGEN_FORMAT"); v != "" {
		c.Format = v
	}
	if v := getenv("SEATGEN_METRICS_FILE"); v != "" {
		c.MetricsFile = v
	}
	for name, dst := range map[string]*bool{
		"SEATGEN_VERIFY":     &c.Verify,
		"SEATGEN_WARM_START": &c.WarmStart,
	} {
		v := getenv(name)
		if v == "" {
			continue
		}
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("invalid %s: %w", name, err)
		}
		*dst = b
	}
	return nil
}

func (c *Config) validate() error {
	switch c.Algorithm {
	case exam.AlgorithmHopcroftKarp, exam.AlgorithmGreedy:
	default:
		return fmt.Errorf("invalid algorithm %q", c.Algorithm)
	}
	switch c.Format {
	case formatJSON, formatCBOR:
	default:
		return fmt.Errorf("invalid format %q", c.Format)
	}
	return nil
}
