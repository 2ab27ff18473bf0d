package cli

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRootCommandWiring(t *testing.T) {
	root := NewRootCommand()

	var names []string
	for _, sub := range root.Commands() {
		names = append(names, sub.Name())
	}
	assert.Contains(t, names, "ask")
	assert.Contains(t, names, "explore")
	assert.Contains(t, names, "compare")
	assert.Contains(t, names, "test")
	assert.Contains(t, names, "shell")

	flag := root.PersistentFlags().Lookup("config")
	require.NotNil(t, flag)
	assert.Equal(t, "config.yaml", flag.DefValue)
}

func TestExploreListsDatabases(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("SPIDER_DB_PATH", dir)

	root := NewRootCommand()
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs([]string{"explore", "--list", "--config", "does-not-exist.yaml"})

	require.NoError(t, root.Execute())
	assert.Contains(t, out.String(), "Found 0 Spider databases")
}
