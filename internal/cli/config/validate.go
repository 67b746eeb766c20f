package config

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/leapstack-labs/leapmeta/pkg/core"
)

// ErrNoDatasource is returned when a command needs a datasource and none is configured.
var ErrNoDatasource = errors.New("no datasource configured")

var validOutputs = map[string]bool{"auto": true, "table": true, "markdown": true, "json": true, "csv": true}

// Validate checks values that do not depend on the driver registry.
func (c *Config) Validate() error {
	if !validOutputs[c.OutputFormat] {
		return fmt.Errorf("invalid output format %q (expected auto, table, markdown, json or csv)", c.OutputFormat)
	}
	if c.Server.Port < 0 || c.Server.Port > 65535 {
		return fmt.Errorf("invalid server port %d", c.Server.Port)
	}
	if c.Server.MaxConnections < 0 {
		return fmt.Errorf("invalid server max_connections %d", c.Server.MaxConnections)
	}
	for name, ds := range c.Datasources {
		if strings.TrimSpace(ds.Type) == "" {
			return fmt.Errorf("datasource %q: type is required", name)
		}
	}
	if c.Datasource != "" && len(c.Datasources) > 0 {
		if _, ok := c.Datasources[c.Datasource]; !ok {
			return fmt.Errorf("default datasource %q is not defined\nAvailable: %v", c.Datasource, c.DatasourceNames())
		}
	}
	return nil
}

// DatasourceNames returns the configured datasource names, sorted.
func (c *Config) DatasourceNames() []string {
	names := make([]string, 0, len(c.Datasources))
	for name := range c.Datasources {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// DataSource returns the named datasource. An empty name selects the
// default datasource, or the only one when exactly one is configured.
func (c *Config) DataSource(name string) (core.DataSourceConfig, error) {
	if name == "" {
		name = c.Datasource
	}
	if name == "" {
		switch len(c.Datasources) {
		case 0:
			return core.DataSourceConfig{}, fmt.Errorf("%w\nHint: add a datasources section to %s", ErrNoDatasource, ConfigFileName)
		case 1:
			name = c.DatasourceNames()[0]
		default:
			return core.DataSourceConfig{}, fmt.Errorf("several datasources configured, choose one with --datasource\nAvailable: %v", c.DatasourceNames())
		}
	}

	ds, ok := c.Datasources[name]
	if !ok {
		return core.DataSourceConfig{}, fmt.Errorf("datasource %q is not defined\nAvailable: %v", name, c.DatasourceNames())
	}
	return ds, nil
}
