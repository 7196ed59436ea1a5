package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/FabricCore/yarn-wrapper-gen/config"
	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func mappingDir(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "net", "World.mapping")
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
	require.NoError(t, os.WriteFile(path, []byte("CLASS a net/minecraft/World\n\tCOMMENT The world.\n\tFIELD a time J\n"), 0644))
	return dir
}

func TestLogVerbosity(t *testing.T) {
	assert.Equal(t, -2, logVerbosity(0))
	assert.Equal(t, 1, logVerbosity(1))
	assert.Equal(t, 2, logVerbosity(2))
	assert.Equal(t, 2, logVerbosity(5))
}

func TestPositionalArgs(t *testing.T) {
	f := &generateFlags{}
	cmd := &cobra.Command{}

	assert.NoError(t, f.positionalArgs(cmd, []string{"src", "out", "pkg"}))
	assert.NoError(t, f.positionalArgs(cmd, []string{"src", "out", "pkg", "a", "b"}))
	assert.ErrorIs(t, f.positionalArgs(cmd, []string{"src", "out", "pkg", "a"}), config.ErrOddRepackageArgs)
	assert.Error(t, f.positionalArgs(cmd, nil))

	f.configPath = "wrapgen.yaml"
	assert.NoError(t, f.positionalArgs(cmd, nil))
}

func TestGenerate(t *testing.T) {
	source := mappingDir(t)
	output := t.TempDir()

	out, err := run(t, source, output, "com.example", "com.example.net.minecraft", "mc")
	require.NoError(t, err)
	assert.Contains(t, out, "Generated 1 wrappers")

	data, err := os.ReadFile(filepath.Join(output, "mc", "World.java"))
	require.NoError(t, err)
	assert.Contains(t, string(data), "package mc;")
	assert.Contains(t, string(data), " * The world.")
}

func TestGenerateSubcommandFlags(t *testing.T) {
	source := mappingDir(t)
	output := t.TempDir()

	out, err := run(t, "generate", "--no-javadoc", "--dry-run", source, output, "com.example")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(output, "com", "example", "net", "minecraft", "World.java"), strings.TrimSpace(out))
	assert.NoDirExists(t, filepath.Join(output, "com"))
}

func TestGenerateFromConfig(t *testing.T) {
	source := mappingDir(t)
	output := t.TempDir()
	cfgPath := filepath.Join(t.TempDir(), "wrapgen.yaml")
	require.NoError(t, os.WriteFile(cfgPath, []byte(
		"source: "+source+"\n"+
			"output: "+output+"\n"+
			"package: com.example\n"+
			"javadoc: false\n"), 0644))

	_, err := run(t, "generate", "--config", cfgPath)
	require.NoError(t, err)

	data, err := os.ReadFile(filepath.Join(output, "com", "example", "net", "minecraft", "World.java"))
	require.NoError(t, err)
	assert.NotContains(t, string(data), "/**")
}

func TestGenerateRejectsBadPackage(t *testing.T) {
	_, err := run(t, mappingDir(t), t.TempDir(), "not a package")
	assert.ErrorContains(t, err, "dotted Java name")
}

func TestDump(t *testing.T) {
	source := mappingDir(t)
	out, err := run(t, "dump", filepath.Join(source, "net", "World.mapping"))
	require.NoError(t, err)
	assert.Equal(t, "class\ta\tnet.minecraft.World\tThe world.\nfield\ta\ttime\tJ\t-\n", out)

	_, err = run(t, "dump", "--format", "xml", filepath.Join(source, "net", "World.mapping"))
	assert.Error(t, err)
}
