package rook_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/corvidae/rook"
)

func TestNewModule(t *testing.T) {
	t.Parallel()

	t.Run("records name", func(t *testing.T) {
		t.Parallel()

		m := rook.NewModule("names", rook.Supply("name", "Lain"))
		assert.Equal(t, "names", m.Name())
	})

	t.Run("skips nil options", func(t *testing.T) {
		t.Parallel()

		m := rook.NewModule("names", nil, rook.Supply("name", "Lain"))
		inj, err := rook.New(m)
		require.NoError(t, err)
		assert.Equal(t, []string{"name"}, inj.Names())
	})

	t.Run("empty name panics", func(t *testing.T) {
		t.Parallel()
		assert.Panics(t, func() { rook.NewModule("") })
	})
}

func TestProvide_Validation(t *testing.T) {
	t.Parallel()

	assert.Panics(t, func() { rook.Provide("", func(rook.Args) (any, error) { return nil, nil }) })
	assert.Panics(t, func() { rook.Provide("name", nil) })
	assert.Panics(t, func() { rook.Extends(nil) })
}

func TestModule_AncestorChain(t *testing.T) {
	t.Parallel()

	t.Run("grandparent bindings survive", func(t *testing.T) {
		t.Parallel()

		grandparent := rook.NewModule("grandparent", rook.Supply("a", 1))
		parent := rook.NewModule("parent", rook.Extends(grandparent), rook.Supply("b", 2))
		child := rook.NewModule("child", rook.Extends(parent), rook.Supply("c", 3))

		inj, err := rook.New(child)
		require.NoError(t, err)
		assert.ElementsMatch(t, []string{"a", "b", "c"}, inj.Names())
	})

	t.Run("nearest declaration wins through the chain", func(t *testing.T) {
		t.Parallel()

		grandparent := rook.NewModule("grandparent", rook.Supply("name", "grandparent"))
		parent := rook.NewModule("parent", rook.Extends(grandparent), rook.Supply("name", "parent"))
		child := rook.NewModule("child", rook.Extends(parent))

		inj, err := rook.New(child)
		require.NoError(t, err)

		v, err := inj.Resolve("name")
		require.NoError(t, err)
		assert.Equal(t, "parent", v)
	})

	t.Run("later declaration in one module wins", func(t *testing.T) {
		t.Parallel()

		m := rook.NewModule("names",
			rook.Supply("name", "first"),
			rook.Supply("name", "second"),
		)

		inj, err := rook.New(m)
		require.NoError(t, err)

		v, err := inj.Resolve("name")
		require.NoError(t, err)
		assert.Equal(t, "second", v)
	})
}

func TestSupply(t *testing.T) {
	t.Parallel()

	inj, err := rook.New(rook.NewModule("values",
		rook.Supply("answer", 42),
		rook.Supply("nothing", nil),
	))
	require.NoError(t, err)

	v, err := inj.Resolve("answer")
	require.NoError(t, err)
	assert.Equal(t, 42, v)

	v, err = inj.Resolve("nothing")
	require.NoError(t, err)
	assert.Nil(t, v)
}
