package config

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLoadReturnsDefaultsWhenFileAbsent(t *testing.T) {
	t.Setenv("HOME", t.TempDir())

	cfg, err := Load()
	require.NoError(t, err)
	require.Equal(t, "0.0.0.0", cfg.ServiceHost)
	require.Equal(t, uint16(8989), cfg.ServicePort)
	require.Equal(t, 8, cfg.MaxConnections)
	require.Equal(t, 2.0, cfg.TickRateHz)
}

func TestSaveThenLoadRoundTrips(t *testing.T) {
	t.Setenv("HOME", t.TempDir())

	want := &AppConfig{
		ServiceHost:    "192.168.1.50",
		ServicePort:    9001,
		MaxConnections: 16,
		TickRateHz:     5.0,
		MetricsAddr:    ":9999",
		ChunkSize:      2_000_000,
	}
	require.NoError(t, Save(want))

	got, err := Load()
	require.NoError(t, err)
	require.Equal(t, want, got)
}

func TestLoadSurfacesUnresolvableHomeDir(t *testing.T) {
	t.Setenv("HOME", "")
	_, err := Load()
	require.Error(t, err)
}

func TestLoadClampsOutOfRangeValues(t *testing.T) {
	t.Setenv("HOME", t.TempDir())

	require.NoError(t, Save(&AppConfig{
		ServiceHost:    "0.0.0.0",
		ServicePort:    8989,
		MaxConnections: 0,
		TickRateHz:     1000,
		MetricsAddr:    ":9090",
		ChunkSize:      1,
	}))

	got, err := Load()
	require.NoError(t, err)
	require.Equal(t, 1, got.MaxConnections)
	require.Equal(t, 100.0, got.TickRateHz)
	require.Equal(t, 4096, got.ChunkSize)
}

func TestSaveClampsBeforeWritingWithoutMutatingCaller(t *testing.T) {
	t.Setenv("HOME", t.TempDir())

	cfg := &AppConfig{
		ServiceHost:    "0.0.0.0",
		ServicePort:    8989,
		MaxConnections: 999,
		TickRateHz:     2.0,
		MetricsAddr:    ":9090",
		ChunkSize:      1_000_000,
	}
	require.NoError(t, Save(cfg))
	require.Equal(t, 999, cfg.MaxConnections, "Save must not mutate the caller's config")

	got, err := Load()
	require.NoError(t, err)
	require.Equal(t, 64, got.MaxConnections)
}
