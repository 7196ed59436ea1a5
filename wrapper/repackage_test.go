package wrapper

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRepackagerSubstring(t *testing.T) {
	r := NewRepackager([]Rule{
		{From: "wrapper.net.minecraft", To: "mc"},
		{From: "client", To: "cl"},
	}, false)

	assert.Equal(t, "mc.cl.gui.Screen", r.Apply("wrapper.net.minecraft.client.gui.Screen"))
	assert.Equal(t, "wrapper.com.mojang.Blaze", r.Apply("wrapper.com.mojang.Blaze"))
	// substring rules also fire inside segments
	assert.Equal(t, "mc.cls.Foo", r.Apply("wrapper.net.minecraft.clients.Foo"))
}

func TestRepackagerAppliesRulesInOrder(t *testing.T) {
	rules := []Rule{{From: "a", To: "b"}, {From: "b", To: "c"}}
	assert.Equal(t, "c.c", NewRepackager(rules, false).Apply("a.b"))

	reversed := []Rule{{From: "b", To: "c"}, {From: "a", To: "b"}}
	assert.Equal(t, "b.c", NewRepackager(reversed, false).Apply("a.b"))
}

func TestRepackagerSegments(t *testing.T) {
	r := NewRepackager([]Rule{
		{From: "net.minecraft", To: "mc"},
		{From: "client", To: "cl"},
	}, true)

	assert.Equal(t, "w.mc.cl.gui.Screen", r.Apply("w.net.minecraft.client.gui.Screen"))
	assert.Equal(t, "w.mc.clients.Foo", r.Apply("w.net.minecraft.clients.Foo"))
	assert.Equal(t, "w.net.minecraftx.Foo", r.Apply("w.net.minecraftx.Foo"))

	t.Run("empty replacement drops segments", func(t *testing.T) {
		r := NewRepackager([]Rule{{From: "net.minecraft", To: ""}}, true)
		assert.Equal(t, "w.Foo", r.Apply("w.net.minecraft.Foo"))
	})
}

func TestNilRepackager(t *testing.T) {
	var r *Repackager
	assert.Equal(t, "a.b", r.Apply("a.b"))
}
