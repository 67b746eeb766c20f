package cli

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	clitestutil "github.com/leapstack-labs/leapmeta/internal/cli/testutil"
)

func execute(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	var out, errOut bytes.Buffer
	root := NewRootCmd()
	root.SetOut(&out)
	root.SetErr(&errOut)
	root.SetArgs(args)
	err := root.Execute()
	return out.String(), errOut.String(), err
}

func TestRoot_Subcommands(t *testing.T) {
	root := NewRootCmd()
	for _, name := range []string{"version", "drivers", "types", "schema", "ddl", "select", "query", "tables", "snapshot", "serve", "completion"} {
		cmd, _, err := root.Find([]string{name})
		require.NoError(t, err, name)
		assert.Equal(t, name, cmd.Name())
	}

	for _, flag := range []string{"config", "datasource", "state", "defs-dir", "verbose", "output"} {
		assert.NotNil(t, root.PersistentFlags().Lookup(flag), "flag %q should exist", flag)
	}
}

func TestRoot_ConfigWiring(t *testing.T) {
	dir := clitestutil.SetupTestProject(t)
	t.Chdir(dir)

	out, _, err := execute(t, "tables", "-o", "json")
	require.NoError(t, err)

	var rows []map[string]any
	require.NoError(t, json.Unmarshal([]byte(out), &rows), out)
	require.Len(t, rows, 1)
	assert.Equal(t, "orders", rows[0]["name"])

	out, _, err = execute(t, "types", "VARCHAR(10)", "-o", "csv")
	require.NoError(t, err)
	assert.Equal(t, "native,canonical,flink\nVARCHAR(10),string,STRING\n", out)
}

func TestRoot_Errors(t *testing.T) {
	t.Chdir(t.TempDir())

	_, _, err := execute(t, "drivers", "--config", "missing.yaml")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "missing.yaml")

	_, _, err = execute(t, "drivers", "-o", "yaml")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid output format")

	_, _, err = execute(t, "ddl", "--driver", "oracle", "--file", "x.yaml")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Available drivers")
}

func TestRoot_Verbose(t *testing.T) {
	dir := clitestutil.SetupTestProject(t)
	t.Chdir(dir)

	_, errOut, err := execute(t, "drivers", "-v", "-o", "json")
	require.NoError(t, err)
	assert.Contains(t, errOut, "using config file")
}

func TestCompletion(t *testing.T) {
	out, _, err := execute(t, "completion", "bash")
	require.NoError(t, err)
	assert.Contains(t, out, "leapmeta")
}
