package core

// DataSourceConfig holds the settings needed to connect to a database and
// read its catalog.
type DataSourceConfig struct {
	// Type is the driver code or alias (e.g., "PostgreSql", "mysql").
	Type string `koanf:"type" json:"type" yaml:"type"`

	// Path is the file path for file-based databases (SQLite, DuckDB).
	Path string `koanf:"path" json:"path,omitempty" yaml:"path,omitempty"`

	Host     string `koanf:"host" json:"host,omitempty" yaml:"host,omitempty"`
	Port     int    `koanf:"port" json:"port,omitempty" yaml:"port,omitempty"`
	Database string `koanf:"database" json:"database,omitempty" yaml:"database,omitempty"`
	Username string `koanf:"user" json:"user,omitempty" yaml:"user,omitempty"`
	Password string `koanf:"password" json:"-" yaml:"password,omitempty"`

	// Schema is the default schema used when a table reference is unqualified.
	Schema string `koanf:"schema" json:"schema,omitempty" yaml:"schema,omitempty"`

	// Options contains additional driver-specific DSN options.
	Options map[string]string `koanf:"options" json:"options,omitempty" yaml:"options,omitempty"`
}

// Option returns the named option or fallback when unset.
func (c DataSourceConfig) Option(name, fallback string) string {
	if v, ok := c.Options[name]; ok && v != "" {
		return v
	}
	return fallback
}
