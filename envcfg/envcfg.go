// Package envcfg resolves a [dispatch.Config] from environment variables.
//
// The dispatch core never reads the environment itself; it only accepts a
// resolved Config. This package is the launch-time collaborator that builds
// one from DISPATCH_* variables, so the same binary can run serial under a
// debugger, shuffled in CI and parallel in production without recompiling.
//
// Variables override the base Config only when present:
//
//	DISPATCH_SCHED      backend name: serial, shuffle, checked or parallel
//	DISPATCH_THREADS    execution width for parallel, 0 means one per core
//	DISPATCH_VERBOSE    trace volume: 0, 1 or 2
//	DISPATCH_RAND_SEED  seed for the shuffled backends
//	DISPATCH_RAND_REV   true mirrors the shuffled order
//
// Parsing stops at syntax: range rules such as the verbosity bounds are
// enforced by [dispatch.New] on the resolved value.
package envcfg

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/baxromumarov/dispatch"
)

// Environment variable names consulted by [Load] and [LoadEnv].
const (
	EnvSched   = "DISPATCH_SCHED"
	EnvThreads = "DISPATCH_THREADS"
	EnvVerbose = "DISPATCH_VERBOSE"
	EnvSeed    = "DISPATCH_RAND_SEED"
	EnvReverse = "DISPATCH_RAND_REV"
)

// Load returns base with every DISPATCH_* variable present in the process
// environment applied on top. Unset variables leave the base field alone,
// and an empty value counts as unset.
func Load(base dispatch.Config) (dispatch.Config, error) {
	return LoadEnv(base, nil)
}

// LoadEnv is [Load] with an override map consulted before the process
// environment, which lets tests and embedding programs pin individual
// variables without mutating global state. An empty override masks the
// process variable of the same name.
func LoadEnv(base dispatch.Config, overrides map[string]string) (dispatch.Config, error) {
	cfg := base
	if v, ok := lookup(overrides, EnvSched); ok {
		backend, err := ParseBackend(v)
		if err != nil {
			return dispatch.Config{}, err
		}
		cfg.Backend = backend
	}
	if v, ok := lookup(overrides, EnvThreads); ok {
		n, err := strconv.Atoi(v)
		if err != nil {
			return dispatch.Config{}, fmt.Errorf("envcfg: %s must be an integer, got %q", EnvThreads, v)
		}
		cfg.Threads = n
	}
	if v, ok := lookup(overrides, EnvVerbose); ok {
		n, err := strconv.Atoi(v)
		if err != nil {
			return dispatch.Config{}, fmt.Errorf("envcfg: %s must be an integer, got %q", EnvVerbose, v)
		}
		cfg.Verbose = n
	}
	if v, ok := lookup(overrides, EnvSeed); ok {
		seed, err := strconv.ParseUint(v, 10, 64)
		if err != nil {
			return dispatch.Config{}, fmt.Errorf("envcfg: %s must be an unsigned integer, got %q", EnvSeed, v)
		}
		cfg.Seed = seed
	}
	if v, ok := lookup(overrides, EnvReverse); ok {
		rev, err := strconv.ParseBool(v)
		if err != nil {
			return dispatch.Config{}, fmt.Errorf("envcfg: %s must be a boolean, got %q", EnvReverse, v)
		}
		cfg.Reverse = rev
	}
	return cfg, nil
}

// ParseBackend maps a backend name to its [dispatch.Backend] value. Names
// are case-insensitive, surrounding whitespace is ignored, and the accepted
// set matches [dispatch.Backend.String].
func ParseBackend(s string) (dispatch.Backend, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "serial":
		return dispatch.Serial, nil
	case "shuffle":
		return dispatch.Shuffle, nil
	case "checked":
		return dispatch.Checked, nil
	case "parallel":
		return dispatch.Parallel, nil
	default:
		return 0, fmt.Errorf("envcfg: unknown backend %q", s)
	}
}

func lookup(overrides map[string]string, key string) (string, bool) {
	v, ok := overrides[key]
	if !ok {
		v, ok = os.LookupEnv(key)
	}
	if v == "" {
		return "", false
	}
	return v, ok
}
