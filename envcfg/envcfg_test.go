package envcfg_test

import (
	"testing"

	"github.com/baxromumarov/dispatch"
	"github.com/baxromumarov/dispatch/envcfg"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// maskAll hides any DISPATCH_* variables leaking in from the test
// environment, so each case sees only what it sets.
func maskAll() map[string]string {
	return map[string]string{
		envcfg.EnvSched:   "",
		envcfg.EnvThreads: "",
		envcfg.EnvVerbose: "",
		envcfg.EnvSeed:    "",
		envcfg.EnvReverse: "",
	}
}

func TestLoadAppliesEnvironment(t *testing.T) {
	t.Setenv(envcfg.EnvSched, "parallel")
	t.Setenv(envcfg.EnvThreads, "6")
	t.Setenv(envcfg.EnvVerbose, "2")
	t.Setenv(envcfg.EnvSeed, "12345")
	t.Setenv(envcfg.EnvReverse, "true")

	cfg, err := envcfg.Load(dispatch.Config{})
	require.NoError(t, err)
	assert.Equal(t, dispatch.Config{
		Backend: dispatch.Parallel,
		Threads: 6,
		Verbose: 2,
		Seed:    12345,
		Reverse: true,
	}, cfg)
}

func TestLoadEnvKeepsBaseWhenUnset(t *testing.T) {
	base := dispatch.Config{
		Backend: dispatch.Shuffle,
		Threads: 4,
		Verbose: 1,
		Seed:    99,
		Reverse: true,
	}
	cfg, err := envcfg.LoadEnv(base, maskAll())
	require.NoError(t, err)
	assert.Equal(t, base, cfg)
}

func TestLoadEnvOverridesBeatProcessEnvironment(t *testing.T) {
	t.Setenv(envcfg.EnvThreads, "3")

	overrides := maskAll()
	overrides[envcfg.EnvThreads] = "9"
	cfg, err := envcfg.LoadEnv(dispatch.Config{}, overrides)
	require.NoError(t, err)
	assert.Equal(t, 9, cfg.Threads)
}

func TestLoadEnvEmptyOverrideMasksProcessVariable(t *testing.T) {
	t.Setenv(envcfg.EnvSched, "parallel")

	cfg, err := envcfg.LoadEnv(dispatch.Config{}, maskAll())
	require.NoError(t, err)
	assert.Equal(t, dispatch.Serial, cfg.Backend)
}

func TestLoadEnvRejectsMalformedValues(t *testing.T) {
	cases := []struct {
		name    string
		key     string
		value   string
		wantErr string
	}{
		{"unknown backend", envcfg.EnvSched, "quantum", `unknown backend "quantum"`},
		{"threads not a number", envcfg.EnvThreads, "many", "must be an integer"},
		{"verbose not a number", envcfg.EnvVerbose, "loud", "must be an integer"},
		{"seed negative", envcfg.EnvSeed, "-1", "must be an unsigned integer"},
		{"seed not a number", envcfg.EnvSeed, "0xg", "must be an unsigned integer"},
		{"reverse not a bool", envcfg.EnvReverse, "maybe", "must be a boolean"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			overrides := maskAll()
			overrides[tc.key] = tc.value
			_, err := envcfg.LoadEnv(dispatch.Config{}, overrides)
			assert.ErrorContains(t, err, tc.wantErr)
		})
	}
}

func TestParseBackend(t *testing.T) {
	cases := []struct {
		in   string
		want dispatch.Backend
	}{
		{"serial", dispatch.Serial},
		{"shuffle", dispatch.Shuffle},
		{"checked", dispatch.Checked},
		{"parallel", dispatch.Parallel},
		{" Parallel ", dispatch.Parallel},
		{"SHUFFLE", dispatch.Shuffle},
	}
	for _, tc := range cases {
		got, err := envcfg.ParseBackend(tc.in)
		require.NoError(t, err, "input %q", tc.in)
		assert.Equal(t, tc.want, got, "input %q", tc.in)
	}

	_, err := envcfg.ParseBackend("openmp")
	assert.ErrorContains(t, err, `unknown backend "openmp"`)
}

func TestLoadFeedsRuntime(t *testing.T) {
	t.Setenv(envcfg.EnvSched, "shuffle")
	t.Setenv(envcfg.EnvSeed, "42")
	t.Setenv(envcfg.EnvThreads, "")
	t.Setenv(envcfg.EnvVerbose, "")
	t.Setenv(envcfg.EnvReverse, "")

	cfg, err := envcfg.Load(dispatch.Config{})
	require.NoError(t, err)

	rt, err := dispatch.New(cfg)
	require.NoError(t, err)
	defer rt.Close()

	assert.Equal(t, dispatch.Shuffle, rt.Config().Backend)
	assert.Equal(t, uint64(42), rt.Config().Seed)
}
