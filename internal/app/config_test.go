package app

import (
	"testing"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConfigBind(t *testing.T) {
	cfg := NewConfig()
	fs := pflag.NewFlagSet("ca", pflag.ContinueOnError)
	cfg.Bind(fs)

	require.NoError(t, fs.Parse([]string{"--scenario", "ecology", "--scale", "5", "--seed", "9", "--set", "w=20", "--set", "grazers=3"}))
	assert.Equal(t, "ecology", cfg.Scenario)
	assert.Equal(t, 5, cfg.Scale)
	assert.Equal(t, 60, cfg.TPS)
	assert.Equal(t, int64(9), cfg.Seed)

	params, err := cfg.Params()
	require.NoError(t, err)
	assert.Equal(t, map[string]string{"w": "20", "grazers": "3"}, params)
}

func TestConfigRejectsBadOverride(t *testing.T) {
	cfg := NewConfig()
	cfg.Set = []string{"=1"}
	_, err := cfg.Params()
	assert.Error(t, err)
}
