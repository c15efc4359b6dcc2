// Package config reads reindex runtime settings from the environment.
//
//   - BORN_REINDEX_CHECKED: validate metadata and buffers before every dispatch (default false)
//   - BORN_REINDEX_WORKERS: goroutines used by the CPU executor (default NumCPU)
//   - BORN_REINDEX_MIN_CHUNK: minimum workgroups handed to one goroutine (default 1)
package config

import (
	"os"
	"strconv"
	"strings"

	"k8s.io/klog/v2"

	"github.com/born-ml/reindex/internal/parallel"
)

// Config is the resolved runtime configuration of a reindex context.
type Config struct {
	// Checked enables host-side validation of metadata before dispatch.
	Checked bool
	// Parallel controls how the CPU executor fans workgroups out.
	Parallel parallel.Config
}

// Default returns the configuration used when no environment overrides are set.
func Default() Config {
	return Config{Parallel: parallel.DefaultConfig()}
}

// Load builds a Config from the environment on top of Default.
func Load() Config {
	cfg := Default()
	cfg.Checked = Checked()
	cfg.Parallel.NumWorkers = Workers()
	cfg.Parallel.MinChunkSize = MinChunk()
	cfg.Parallel.Enabled = cfg.Parallel.NumWorkers > 1
	return cfg
}

var (
	// Checked enables metadata validation before dispatch (BORN_REINDEX_CHECKED).
	Checked = Bool("BORN_REINDEX_CHECKED")
	// Workers is the CPU executor goroutine count (BORN_REINDEX_WORKERS).
	Workers = Int("BORN_REINDEX_WORKERS", parallel.DefaultConfig().NumWorkers)
	// MinChunk is the minimum number of workgroups per goroutine (BORN_REINDEX_MIN_CHUNK).
	MinChunk = Int("BORN_REINDEX_MIN_CHUNK", 1)
)

// Var returns an environment variable stripped of whitespace and quotes.
func Var(key string) string {
	return strings.Trim(strings.TrimSpace(os.Getenv(key)), "\"'")
}

// Bool returns a getter reading key as a bool. Unset means false; a set but
// unparsable value counts as true and logs a warning.
func Bool(key string) func() bool {
	return func() bool {
		if s := Var(key); s != "" {
			b, err := strconv.ParseBool(s)
			if err != nil {
				klog.Warningf("invalid environment variable %s=%q, treating it as true", key, s)
				return true
			}
			return b
		}
		return false
	}
}

// Int returns a getter reading key as a positive int with a default.
func Int(key string, defaultValue int) func() int {
	return func() int {
		if s := Var(key); s != "" {
			n, err := strconv.Atoi(s)
			if err != nil || n <= 0 {
				klog.Warningf("invalid environment variable %s=%q, using default %d", key, s, defaultValue)
				return defaultValue
			}
			return n
		}
		return defaultValue
	}
}
