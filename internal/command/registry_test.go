package command

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func noop(ctx *Context) error { return nil }

func TestRegisterAndResolve(t *testing.T) {
	reg := NewRegistry()
	cmd := &Command{Name: "ping", Aliases: []string{"p", "pong"}, Category: "general", Run: noop}
	require.NoError(t, reg.Register(cmd))

	for _, token := range []string{"ping", "p", "pong", "PING", "Pong"} {
		got, ok := reg.Resolve(token)
		require.True(t, ok, "token %q should resolve", token)
		require.Same(t, cmd, got)
	}

	_, ok := reg.Resolve("xyzzy")
	require.False(t, ok)
}

func TestRegisterDuplicateName(t *testing.T) {
	reg := NewRegistry()
	require.NoError(t, reg.Register(&Command{Name: "ping", Run: noop}))

	err := reg.Register(&Command{Name: "ping", Run: noop})
	var dup *DuplicateNameError
	require.ErrorAs(t, err, &dup)
	require.Equal(t, "ping", dup.Token)
}

func TestRegisterAliasCollidesWithName(t *testing.T) {
	reg := NewRegistry()
	require.NoError(t, reg.Register(&Command{Name: "kick", Run: noop}))

	err := reg.Register(&Command{Name: "boot", Aliases: []string{"kick"}, Run: noop})
	var dup *DuplicateNameError
	require.ErrorAs(t, err, &dup)
	require.Equal(t, "kick", dup.Token)
}

func TestRegisterFailureIsAtomic(t *testing.T) {
	reg := NewRegistry()
	require.NoError(t, reg.Register(&Command{Name: "warn", Run: noop}))

	// Second alias collides, so nothing of this command may survive,
	// including the non-colliding first alias.
	err := reg.Register(&Command{Name: "caution", Aliases: []string{"w", "warn"}, Run: noop})
	require.Error(t, err)

	_, ok := reg.Resolve("caution")
	require.False(t, ok)
	_, ok = reg.Resolve("w")
	require.False(t, ok)
	require.Len(t, reg.All(), 1)
}

func TestRegisterSelfDuplicateAlias(t *testing.T) {
	reg := NewRegistry()
	err := reg.Register(&Command{Name: "roll", Aliases: []string{"dice", "dice"}, Run: noop})
	require.Error(t, err)
	require.Empty(t, reg.All())
}

func TestListByCategory(t *testing.T) {
	reg := NewRegistry()
	a := &Command{Name: "ping", Category: "general", Run: noop}
	b := &Command{Name: "eval", Category: "general", Hidden: true, Run: noop}
	c := &Command{Name: "uptime", Category: "general", Run: noop}
	d := &Command{Name: "kick", Category: "admin", Run: noop}
	for _, cmd := range []*Command{a, b, c, d} {
		require.NoError(t, reg.Register(cmd))
	}

	general := reg.ListByCategory("general")
	require.Equal(t, []*Command{a, c}, general, "hidden commands excluded, registration order kept")
	require.Equal(t, []*Command{d}, reg.ListByCategory("admin"))
	require.Empty(t, reg.ListByCategory("nope"))
	require.Equal(t, []string{"general", "admin"}, reg.Categories())
}

func TestMustRegisterPanicsOnDuplicate(t *testing.T) {
	reg := NewRegistry()
	reg.MustRegister(&Command{Name: "ping", Run: noop})
	require.Panics(t, func() {
		reg.MustRegister(&Command{Name: "ping", Run: noop})
	})
}
