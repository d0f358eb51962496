package config

import (
	"os"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

// Connection level settings for the remote WHM instance.
type Settings struct {
	Host  string `env:"HOST" yaml:"host"`
	Port  int    `env:"PORT" yaml:"port"`
	User  string `env:"USER" yaml:"user"`
	Token string `env:"TOKEN" yaml:"token"`

	VerifySSL bool          `env:"VERIFY_SSL" yaml:"verify_ssl"`
	Timeout   time.Duration `env:"TIMEOUT" yaml:"timeout"`

	Debug bool `env:"DEBUG" yaml:"debug"`
}

// Environment variables are namespaced with this prefix, so WHM_HOST,
// WHM_TOKEN and so on.
const EnvPrefix = "WHM_"

func Defaults() Settings {
	return Settings{
		Port:      2087,
		User:      "root",
		VerifySSL: true,
		Timeout:   30 * time.Second,
	}
}

// Load the settings. The defaults are applied first, then the YAML file
// at path (if any), and finally the environment, which always wins.
func Load(path string) (Settings, error) {
	settings := Defaults()

	if path != "" {
		if err := settings.readFile(path); err != nil {
			return settings, err
		}
	}

	// Variables that are not set leave the current value alone, which
	// is what lets the file and the defaults survive this step.
	err := env.ParseWithOptions(&settings, env.Options{Prefix: EnvPrefix})
	if err != nil {
		return settings, errors.Wrap(err, "could not parse environment")
	}

	return settings, nil
}

func (s *Settings) readFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return errors.Wrap(err, "could not read config file")
	}

	if err := yaml.Unmarshal(data, s); err != nil {
		return errors.Wrapf(err, "could not parse config file %s", path)
	}

	return nil
}

// Validate checks the preconditions for talking to the API at all.
func (s Settings) Validate() error {
	if s.Host == "" {
		return errors.Errorf("host is not configured, set %sHOST or host in the config file", EnvPrefix)
	}
	if s.Token == "" {
		return errors.Errorf("token is not configured, set %sTOKEN or token in the config file", EnvPrefix)
	}
	if s.Port <= 0 || s.Port > 65535 {
		return errors.Errorf("port %d is out of range", s.Port)
	}
	if s.User == "" {
		return errors.New("user must not be empty")
	}
	if s.Timeout < 0 {
		return errors.New("timeout must not be negative")
	}
	return nil
}
