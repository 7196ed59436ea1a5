package wrapper

import (
	"path/filepath"
	"testing"

	"github.com/FabricCore/yarn-wrapper-gen/mapping"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func generate(t *testing.T, opts Options, target string, units ...string) (string, *Generator) {
	t.Helper()
	x := buildIndex(t, units...)
	gen := NewGenerator(x, opts)
	out, err := gen.Generate(x.GetString(target))
	require.NoError(t, err)
	return string(out), gen
}

func TestGenerateField(t *testing.T) {
	out, gen := generate(t, Options{Package: "pkg", Namespace: minecraft}, "a/b/C",
		"CLASS a/b/C d/e/F\nFIELD x y I;\n")

	assert.Contains(t, out, "package pkg.d.e;")
	assert.Contains(t, out, "public class F {")
	assert.Contains(t, out, "public d.e.F wrapperContained;")
	assert.Contains(t, out, "public F(d.e.F wrapperContained) { this.wrapperContained = wrapperContained; }")
	assert.Contains(t, out, "public int y() { return wrapperContained.y; }")
	assert.Contains(t, out, "public void y(int value) { wrapperContained.y = value; }")

	c := gen.resolver.Lookup.GetString("a/b/C")
	assert.Equal(t, filepath.Join("pkg", "d", "e", "F.java"), gen.OutputPath(c))
}

func TestGenerateWrappedField(t *testing.T) {
	out, _ := generate(t, Options{Package: "pkg", Namespace: minecraft}, "b",
		"CLASS a net/minecraft/entity/Entity\n",
		"CLASS b net/minecraft/world/World\nFIELD a player La;\n",
	)

	assert.Contains(t, out, "public pkg.net.minecraft.entity.Entity player() { return new pkg.net.minecraft.entity.Entity(wrapperContained.player); }")
	assert.Contains(t, out, "public void player(pkg.net.minecraft.entity.Entity value) { wrapperContained.player = value.wrapperContained; }")
}

func TestGenerateVoidMethod(t *testing.T) {
	out, _ := generate(t, Options{Package: "pkg", Namespace: minecraft}, "a",
		"CLASS a net/minecraft/Counter\nMETHOD b setCount (I)V\nARG 0 count\n")

	assert.Contains(t, out, "public void setCount(int count) { wrapperContained.setCount(count); }")
}

func TestGenerateWrappedParametersAndReturn(t *testing.T) {
	out, _ := generate(t, Options{Package: "pkg", Namespace: minecraft}, "b",
		"CLASS a net/minecraft/entity/Entity\n",
		"CLASS b net/minecraft/world/World\n"+
			"METHOD a spawn (La;Ljava/lang/String;)La;\n"+
			"ARG 1 entity\n"+
			"ARG 2 reason\n"+
			"METHOD b count ([La;)I\n"+
			"ARG 1 entities\n",
	)

	assert.Contains(t, out,
		"public pkg.net.minecraft.entity.Entity spawn(pkg.net.minecraft.entity.Entity entity, java.lang.String reason) "+
			"{ return new pkg.net.minecraft.entity.Entity(wrapperContained.spawn(entity.wrapperContained, reason)); }")
	assert.Contains(t, out,
		"public int count(net.minecraft.entity.Entity[] entities) { return wrapperContained.count(entities); }")
}

func TestGenerateConstructor(t *testing.T) {
	out, _ := generate(t, Options{Package: "pkg", Namespace: minecraft}, "b",
		"CLASS a net/minecraft/entity/Entity\n",
		"CLASS b net/minecraft/world/World\nMETHOD <init> (La;I)V\nARG 1 owner\nARG 2 size\n",
	)

	assert.Contains(t, out,
		"public World(pkg.net.minecraft.entity.Entity owner, int size) { this.wrapperContained = new net.minecraft.world.World(owner.wrapperContained, size); }")
	assert.NotContains(t, out, "void <init>")
}

func TestGenerateConstructorSkipsReturnType(t *testing.T) {
	x := buildIndex(t, "CLASS a net/minecraft/Foo\n")
	c := x.GetString("a")
	ctor := &mapping.Method{Obfuscated: "<init>", Label: "<init>", Return: "not a descriptor"}

	text, err := NewGenerator(x, Options{Package: "pkg", Namespace: minecraft}).RenderMember(c, ctor)
	require.NoError(t, err)
	assert.Equal(t, "public Foo() { this.wrapperContained = new net.minecraft.Foo(); }", text)
}

func TestGenerateArgumentMismatch(t *testing.T) {
	x := buildIndex(t, "CLASS a net/minecraft/Foo\n")
	c := x.GetString("a")
	m := &mapping.Method{Label: "f", Params: "II", Return: "V", Parameters: []mapping.Parameter{{Name: "x"}}}

	_, err := NewGenerator(x, Options{Package: "pkg"}).RenderMember(c, m)
	assert.ErrorIs(t, err, mapping.ErrAmbiguousArgumentCount)
}

func TestGenerateJavadoc(t *testing.T) {
	unit := "CLASS a net/minecraft/Counter\n" +
		"COMMENT Counts things.\n" +
		"FIELD a value I\n" +
		"COMMENT current value\n" +
		"METHOD b add (I)V\n" +
		"ARG 1 amount\n" +
		"COMMENT how much */ to add\n"

	want := `package pkg.net.minecraft;

/**
 * Counts things.
 */
public class Counter {
    public net.minecraft.Counter wrapperContained;

    public Counter(net.minecraft.Counter wrapperContained) { this.wrapperContained = wrapperContained; }

    /**
     * current value
     */
    public int value() { return wrapperContained.value; }
    public void value(int value) { wrapperContained.value = value; }

    /**
     * @param amount how much *&#47; to add
     */
    public void add(int amount) { wrapperContained.add(amount); }
}
`
	out, _ := generate(t, Options{Package: "pkg", Namespace: minecraft, Javadoc: true}, "a", unit)
	assert.Equal(t, want, out)

	t.Run("disabled", func(t *testing.T) {
		out, _ := generate(t, Options{Package: "pkg", Namespace: minecraft}, "a", unit)
		assert.NotContains(t, out, "/**")
	})
}

func TestGenerateEmptyClass(t *testing.T) {
	out, _ := generate(t, Options{Package: "pkg"}, "a", "CLASS a Root\n")

	want := `package pkg;

public class Root {
    public Root wrapperContained;

    public Root(Root wrapperContained) { this.wrapperContained = wrapperContained; }
}
`
	assert.Equal(t, want, out)
}

func TestJavadoc(t *testing.T) {
	assert.Empty(t, javadoc(nil, []mapping.Parameter{{Name: "x"}}))

	got := javadoc([]string{"Summary.", "", "More."}, []mapping.Parameter{
		{Name: "x", Comment: []string{"first", "second"}},
		{Name: "y"},
		{Name: "z", Comment: []string{""}},
	})
	want := "/**\n" +
		" * Summary.\n" +
		" *\n" +
		" * More.\n" +
		" *\n" +
		" * @param x first\n" +
		" * second\n" +
		" * @param z\n" +
		" */"
	assert.Equal(t, want, got)
}
