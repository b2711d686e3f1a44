package server

import (
	"io/ioutil"
	"os"
	"path/filepath"
	"testing"

	"github.com/safeharbor/harbor/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, home, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Join(home, DirConfig), 0755))
	require.NoError(t, ioutil.WriteFile(ConfigPath(home), []byte(content), 0600))
}

func TestLoadConfig(t *testing.T) {
	home, err := ioutil.TempDir("", "harbor-config")
	require.NoError(t, err)
	defer os.RemoveAll(home)

	conf, err := LoadConfig(ConfigPath(home))
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), conf)

	writeConfig(t, home, `
bind = "tcp://0.0.0.0:26658"
debug = true
log_level = "error"
metrics_addr = "localhost:9100"
`)
	conf, err = LoadConfig(ConfigPath(home))
	require.NoError(t, err)
	assert.Equal(t, Config{
		Bind:        "tcp://0.0.0.0:26658",
		Debug:       true,
		LogLevel:    "error",
		MetricsAddr: "localhost:9100",
	}, conf)

	// keys that are not set keep their default
	writeConfig(t, home, `debug = true`)
	conf, err = LoadConfig(ConfigPath(home))
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig().Bind, conf.Bind)
	assert.True(t, conf.Debug)
}

func TestLoadConfigErrors(t *testing.T) {
	cases := map[string]string{
		"unknown key":     `min_fee = "1 USDC"`,
		"invalid syntax":  `bind = `,
		"wrong type":      `debug = "yes"`,
		"bad log level":   `log_level = "verbose"`,
		"empty bind addr": `bind = ""`,
	}
	for name, content := range cases {
		t.Run(name, func(t *testing.T) {
			home, err := ioutil.TempDir("", "harbor-config")
			require.NoError(t, err)
			defer os.RemoveAll(home)

			writeConfig(t, home, content)
			_, err = LoadConfig(ConfigPath(home))
			require.Error(t, err)
			assert.True(t, errors.ErrInput.Is(err) || errors.ErrEmpty.Is(err), "%+v", err)
		})
	}
}

func TestParseFlagsOverrideConfig(t *testing.T) {
	home, err := ioutil.TempDir("", "harbor-config")
	require.NoError(t, err)
	defer os.RemoveAll(home)

	writeConfig(t, home, `
bind = "tcp://localhost:1111"
metrics_addr = "localhost:9100"
`)

	conf, err := parseFlags(home, []string{"-bind", "tcp://localhost:2222", "-debug"})
	require.NoError(t, err)
	assert.Equal(t, "tcp://localhost:2222", conf.Bind)
	assert.True(t, conf.Debug)
	assert.Equal(t, "localhost:9100", conf.MetricsAddr)

	// an explicit empty value disables metrics
	conf, err = parseFlags(home, []string{"-metrics", ""})
	require.NoError(t, err)
	assert.Equal(t, "tcp://localhost:1111", conf.Bind)
	assert.Equal(t, "", conf.MetricsAddr)

	_, err = parseFlags(home, []string{"-unknown"})
	assert.True(t, errors.ErrInput.Is(err))
}
