package wrapper

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/FabricCore/yarn-wrapper-gen/mapping"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

func writeMapping(t *testing.T, root, rel, text string) {
	t.Helper()
	path := filepath.Join(root, rel)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
	require.NoError(t, os.WriteFile(path, []byte(text), 0644))
}

func TestRun(t *testing.T) {
	defer goleak.VerifyNone(t)

	source := filepath.Join(t.TempDir(), "mappings")
	output := t.TempDir()
	writeMapping(t, source, "a/b/C.mapping", "CLASS a/b/C d/e/F\nFIELD x y I;\n")
	writeMapping(t, source, "net/minecraft/World.mapping",
		"CLASS b net/minecraft/world/World\n"+
			"\tMETHOD a owner ()La/b/C;\n"+
			"\tMETHOD b spawn (Lc;)V\n"+
			"\t\tARG 1 entity\n")
	writeMapping(t, source, "net/minecraft/Entity.mapping", "CLASS c net/minecraft/entity/Entity\n")

	result, err := Run(context.Background(), RunOptions{
		Options: Options{
			Package:   "pkg",
			Namespace: minecraft,
			Repackage: []Rule{{From: "pkg.net.minecraft", To: "mc"}},
		},
		Source: source,
		Output: output,
		Jobs:   2,
	})
	require.NoError(t, err)
	assert.Equal(t, 3, result.Classes)
	assert.Len(t, result.Files, 3)

	field, err := os.ReadFile(filepath.Join(output, "pkg", "d", "e", "F.java"))
	require.NoError(t, err)
	assert.Contains(t, string(field), "public int y() { return wrapperContained.y; }")

	world, err := os.ReadFile(filepath.Join(output, "mc", "world", "World.java"))
	require.NoError(t, err)
	assert.Contains(t, string(world), "package mc.world;")
	assert.Contains(t, string(world), "public d.e.F owner() { return wrapperContained.owner(); }")
	assert.Contains(t, string(world), "public void spawn(mc.entity.Entity entity) { wrapperContained.spawn(entity.wrapperContained); }")

	assert.FileExists(t, filepath.Join(output, "mc", "entity", "Entity.java"))
}

func TestRunOverwrites(t *testing.T) {
	source := t.TempDir()
	output := t.TempDir()
	writeMapping(t, source, "A.mapping", "CLASS a A\n")
	stale := filepath.Join(output, "pkg", "A.java")
	writeMapping(t, output, filepath.Join("pkg", "A.java"), "stale contents that are much longer than the wrapper will be, stale stale stale stale stale stale stale stale stale stale stale stale stale stale stale")

	_, err := Run(context.Background(), RunOptions{Options: Options{Package: "pkg"}, Source: source, Output: output})
	require.NoError(t, err)

	data, err := os.ReadFile(stale)
	require.NoError(t, err)
	assert.NotContains(t, string(data), "stale")
}

func TestRunDryRun(t *testing.T) {
	source := t.TempDir()
	output := filepath.Join(t.TempDir(), "out")
	writeMapping(t, source, "A.mapping", "CLASS a x/A\n")

	result, err := Run(context.Background(), RunOptions{Options: Options{Package: "pkg"}, Source: source, Output: output, DryRun: true})
	require.NoError(t, err)
	assert.Equal(t, []string{filepath.Join(output, "pkg", "x", "A.java")}, result.Files)
	assert.NoDirExists(t, output)
}

func TestRunStopsBeforeWritingOnParseError(t *testing.T) {
	source := t.TempDir()
	output := filepath.Join(t.TempDir(), "out")
	writeMapping(t, source, "A.mapping", "CLASS a x/A\nFIELD a b I\n")
	writeMapping(t, source, "B.mapping", "CLASS b x/B\nWHAT\n")

	_, err := Run(context.Background(), RunOptions{Options: Options{Package: "pkg"}, Source: source, Output: output})
	require.Error(t, err)
	assert.ErrorIs(t, err, mapping.ErrUnrecognizedLineVariant)

	var perr *mapping.ParseError
	require.ErrorAs(t, err, &perr)
	assert.Equal(t, "b", perr.Unit)
	assert.Equal(t, 2, perr.Line)
	assert.NoDirExists(t, output)
}

func TestRunRejectsClashingOutputs(t *testing.T) {
	source := t.TempDir()
	writeMapping(t, source, "A.mapping", "CLASS a x/Same\n")
	writeMapping(t, source, "B.mapping", "CLASS b x/Same\n")

	_, err := Run(context.Background(), RunOptions{Options: Options{Package: "pkg"}, Source: source, Output: t.TempDir()})
	assert.ErrorContains(t, err, "both generate")
}
