package widgetstore

import (
	"fmt"
	"io"

	"github.com/BurntSushi/toml"
	"github.com/charmbracelet/log"
)

// Config is the file representation of the store settings.
//
//	btree_degree = 32
//	log_level = "debug"
type Config struct {
	BTreeDegree int    `toml:"btree_degree"`
	LogLevel    string `toml:"log_level"`
}

// ParseConfig decodes TOML data into a Config.
func ParseConfig(data []byte) (Config, error) {
	var cfg Config
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("parse config: %w", err)
	}
	return cfg, nil
}

// LoadConfig reads and decodes the TOML file at path.
func LoadConfig(path string) (Config, error) {
	var cfg Config
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return Config{}, fmt.Errorf("load config %s: %w", path, err)
	}
	return cfg, nil
}

// Options turns the config into store options. Logs go to w.
func (c Config) Options(w io.Writer) ([]Option, error) {
	var opts []Option
	if c.BTreeDegree != 0 {
		opts = append(opts, WithDegree(c.BTreeDegree))
	}
	if c.LogLevel != "" {
		level, err := log.ParseLevel(c.LogLevel)
		if err != nil {
			return nil, fmt.Errorf("log_level: %w", err)
		}
		opts = append(opts, WithLogger(NewLogger(w, level)))
	}
	return opts, nil
}
