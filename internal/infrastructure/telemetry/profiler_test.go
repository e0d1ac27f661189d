package telemetry

import (
	"testing"

	"github.com/grafana/pyroscope-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

func TestNewProfiler_Disabled(t *testing.T) {
	cfg := ProfilerConfig{Enabled: false, ServerAddress: "http://localhost:4040", ApplicationName: "vendorhub"}

	p, err := NewProfiler(cfg, zaptest.NewLogger(t))
	require.NoError(t, err)

	assert.False(t, p.IsEnabled())
	assert.Equal(t, "vendorhub", p.GetConfig().ApplicationName)
	assert.NoError(t, p.Stop())
	assert.NoError(t, p.Stop())
}

func TestNewProfiler_RequiresServerAndName(t *testing.T) {
	tests := []struct {
		name string
		cfg  ProfilerConfig
		want string
	}{
		{"no server", ProfilerConfig{Enabled: true, ApplicationName: "vendorhub"}, "server address is required"},
		{"no name", ProfilerConfig{Enabled: true, ServerAddress: "http://localhost:4040"}, "application name is required"},
		{"unknown type", ProfilerConfig{
			Enabled: true, ServerAddress: "http://localhost:4040", ApplicationName: "vendorhub",
			ProfileTypes: []string{"cpu", "heap"},
		}, `unknown profile type "heap"`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, err := NewProfiler(tt.cfg, zaptest.NewLogger(t))
			require.Error(t, err)
			assert.Nil(t, p)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestResolveProfileTypes(t *testing.T) {
	types, err := resolveProfileTypes(nil)
	require.NoError(t, err)
	assert.Equal(t, []pyroscope.ProfileType{
		pyroscope.ProfileCPU, pyroscope.ProfileAllocSpace, pyroscope.ProfileInuseSpace, pyroscope.ProfileGoroutines,
	}, types)

	types, err = resolveProfileTypes([]string{"mutex_count", "cpu", "mutex_count"})
	require.NoError(t, err)
	assert.Equal(t, []pyroscope.ProfileType{pyroscope.ProfileMutexCount, pyroscope.ProfileCPU}, types)
}

func TestOrDefault(t *testing.T) {
	assert.Equal(t, defaultContentionRate, orDefault(0))
	assert.Equal(t, defaultContentionRate, orDefault(-1))
	assert.Equal(t, 10, orDefault(10))
}
