// Package tabledef loads table definitions from YAML files.
//
// A file holds one table, a document with a "tables" list, or several YAML
// documents separated by "---". Column positions default to file order.
package tabledef

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"sort"

	"gopkg.in/yaml.v3"

	"github.com/leapstack-labs/leapmeta/pkg/core"
)

type document struct {
	core.Table `yaml:",inline"`
	Tables     []*core.Table `yaml:"tables,omitempty"`
}

// Parse decodes and validates the table definitions in data.
// defaultSchema fills tables that leave the schema out.
func Parse(data []byte, defaultSchema string) ([]*core.Table, error) {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)

	var tables []*core.Table
	for {
		var doc document
		err := dec.Decode(&doc)
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to parse table definition: %w", err)
		}

		if len(doc.Tables) > 0 {
			tables = append(tables, doc.Tables...)
		}
		if doc.Name != "" || len(doc.Columns) > 0 {
			t := doc.Table
			tables = append(tables, &t)
		}
	}

	for _, t := range tables {
		if t.Schema == "" {
			t.Schema = defaultSchema
		}
		for i := range t.Columns {
			if t.Columns[i].Position == 0 {
				t.Columns[i].Position = i + 1
			}
		}
		if err := t.Validate(); err != nil {
			return nil, err
		}
	}
	return tables, nil
}

// Load reads a definition file, or every .yaml/.yml file under a directory
// in lexical order.
func Load(path, defaultSchema string) ([]*core.Table, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, err
	}
	if !info.IsDir() {
		return loadFile(path, defaultSchema)
	}

	var files []string
	err = filepath.WalkDir(path, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() && isDefinition(p) {
			files = append(files, p)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to scan %s: %w", path, err)
	}
	sort.Strings(files)

	var tables []*core.Table
	for _, f := range files {
		ts, err := loadFile(f, defaultSchema)
		if err != nil {
			return nil, err
		}
		tables = append(tables, ts...)
	}
	return tables, nil
}

func loadFile(path, defaultSchema string) ([]*core.Table, error) {
	data, err := os.ReadFile(path) //nolint:gosec // path is supplied by the user
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}
	tables, err := Parse(data, defaultSchema)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return tables, nil
}

func isDefinition(path string) bool {
	ext := filepath.Ext(path)
	return ext == ".yaml" || ext == ".yml"
}
