package server

import (
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/safeharbor/harbor/errors"
	"github.com/tendermint/tendermint/libs/log"
)

// ConfigFile is the name of the node configuration inside DirConfig.
const ConfigFile = "harbord.toml"

// Config is the node configuration read from the home directory. Command
// line flags take precedence over the file.
type Config struct {
	// Bind is the address the ABCI server listens on.
	Bind string `toml:"bind"`
	// Debug returns stack traces in ABCI responses.
	Debug bool `toml:"debug"`
	// LogLevel is one of debug, info, error or none.
	LogLevel string `toml:"log_level"`
	// MetricsAddr serves prometheus metrics over HTTP. Empty disables it.
	MetricsAddr string `toml:"metrics_addr"`
}

// DefaultConfig is used when no configuration file exists.
func DefaultConfig() Config {
	return Config{
		Bind:     "tcp://localhost:26658",
		LogLevel: "info",
	}
}

// ConfigPath returns the default location of the configuration file.
func ConfigPath(home string) string {
	return filepath.Join(home, DirConfig, ConfigFile)
}

// LoadConfig reads the configuration at path on top of the defaults. A
// missing file is not an error. Unknown keys are rejected.
func LoadConfig(path string) (Config, error) {
	conf := DefaultConfig()
	if !fileExists(path) {
		return conf, nil
	}
	md, err := toml.DecodeFile(path, &conf)
	if err != nil {
		return conf, errors.Wrapf(errors.ErrInput, "config %q: %s", path, err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return conf, errors.Wrapf(errors.ErrInput, "config %q: unknown keys %s", path, strings.Join(keys, ", "))
	}
	if err := conf.Validate(); err != nil {
		return conf, errors.Wrapf(err, "config %q", path)
	}
	return conf, nil
}

// Validate checks the configuration values.
func (c Config) Validate() error {
	var errs error
	if c.Bind == "" {
		errs = errors.AppendField(errs, "Bind", errors.ErrEmpty)
	}
	if _, err := log.AllowLevel(c.LogLevel); err != nil {
		errs = errors.AppendField(errs, "LogLevel", errors.Wrap(errors.ErrInput, err.Error()))
	}
	return errs
}

// FilterLogger applies the configured level to logger.
func (c Config) FilterLogger(logger log.Logger) (log.Logger, error) {
	opt, err := log.AllowLevel(c.LogLevel)
	if err != nil {
		return nil, errors.Wrap(errors.ErrInput, err.Error())
	}
	return log.NewFilter(logger, opt), nil
}
