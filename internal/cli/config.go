package cli

import (
	"fmt"
	"strings"

	"github.com/BurntSushi/toml"
)

// FileConfig holds defaults read from a TOML config file.
//
//	database = "signed64.db"
//	format   = "json"
//	verbose  = true
//	session  = "nightly"
//	oracle   = false
type FileConfig struct {
	Database string `toml:"database"`
	Format   string `toml:"format"`
	Verbose  bool   `toml:"verbose"`
	Session  string `toml:"session"`
	Oracle   bool   `toml:"oracle"`

	meta toml.MetaData
}

// LoadConfig decodes a TOML config file. Unknown keys are an error so a
// misspelled key does not silently fall back to a default.
func LoadConfig(path string) (*FileConfig, error) {
	var cfg FileConfig
	md, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return nil, fmt.Errorf("decode config %s: %w", path, err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return nil, fmt.Errorf("config %s: unknown keys: %s", path, strings.Join(keys, ", "))
	}
	cfg.meta = md
	return &cfg, nil
}

// Has reports whether key was set in the file.
func (c *FileConfig) Has(key string) bool {
	return c.meta.IsDefined(key)
}

// Apply copies file values into opts, skipping any option whose flag was
// set on the command line.
func (c *FileConfig) Apply(opts *RootOptions, changed func(flag string) bool) {
	if c.Has("database") && !changed("db") {
		opts.Database = c.Database
	}
	if c.Has("format") && !changed("format") {
		opts.Format = c.Format
	}
	if c.Has("verbose") && !changed("verbose") {
		opts.Verbose = c.Verbose
	}
	if c.Has("session") && !changed("session") {
		opts.Session = c.Session
	}
	if c.Has("oracle") && !changed("oracle") {
		opts.Oracle = c.Oracle
	}
}
