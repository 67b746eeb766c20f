// Package config loads leapmeta configuration with koanf.
//
// Values are layered, lowest to highest: built-in defaults, leapmeta.yaml,
// LEAPMETA_* environment variables, then explicitly set CLI flags.
package config

import "github.com/leapstack-labs/leapmeta/pkg/core"

// Config holds all CLI configuration options.
type Config struct {
	// Datasource names the entry of Datasources used when none is given.
	Datasource   string                      `koanf:"datasource"`
	Datasources  map[string]DataSourceConfig `koanf:"datasources"`
	StatePath    string                      `koanf:"state_path"`
	DefsDir      string                      `koanf:"defs_dir"`
	Verbose      bool                        `koanf:"verbose"`
	OutputFormat string                      `koanf:"output"`
	Server       ServerConfig                `koanf:"server"`

	// ProjectRoot is the directory relative paths are resolved against.
	ProjectRoot string `koanf:"-"`

	// ConfigFile is the file that was loaded, if any.
	ConfigFile string `koanf:"-"`
}

// ServerConfig holds HTTP API settings.
type ServerConfig struct {
	Port  int  `koanf:"port"`
	Watch bool `koanf:"watch"`

	// MaxConnections caps concurrent API connections. Zero means no limit.
	MaxConnections int `koanf:"max_connections"`
}

// Default configuration values.
const (
	ConfigFileName    = "leapmeta.yaml"
	ConfigFileNameAlt = "leapmeta.yml"
	DefaultStateFile  = ".leapmeta/state.db"
	DefaultDefsDir    = "tables"
	DefaultOutput     = "auto" // table on a TTY, markdown otherwise
	DefaultPort       = 8780
)

// DataSourceConfig is an alias for the shared datasource settings.
type DataSourceConfig = core.DataSourceConfig
