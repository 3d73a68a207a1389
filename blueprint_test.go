package rook_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/corvidae/rook"
)

func TestBlueprint_Validation(t *testing.T) {
	t.Parallel()

	assert.Panics(t, func() { rook.NewBlueprint("") })
	assert.Panics(t, func() { rook.Construct(nil) })
	assert.Panics(t, func() { rook.Method("", func(any, rook.Args) error { return nil }) })
	assert.Panics(t, func() { rook.Method("inject", nil) })
	assert.Panics(t, func() { rook.Prototype(nil) })
	assert.Panics(t, func() { rook.DerivesFrom(nil) })
}

func TestBlueprint_ConstructorInheritance(t *testing.T) {
	t.Parallel()

	type widget struct{ Origin string }

	parent := rook.NewBlueprint("Parent",
		rook.Construct(func(rook.Args) (any, error) {
			return &widget{Origin: "parent"}, nil
		}),
	)

	t.Run("child without constructor inherits", func(t *testing.T) {
		t.Parallel()

		child := rook.NewBlueprint("Child", rook.DerivesFrom(parent))

		inj, err := rook.New()
		require.NoError(t, err)

		v, err := inj.Create(child)
		require.NoError(t, err)
		assert.Equal(t, "parent", v.(*widget).Origin)
	})

	t.Run("child constructor shadows parent", func(t *testing.T) {
		t.Parallel()

		child := rook.NewBlueprint("Child",
			rook.DerivesFrom(parent),
			rook.Construct(func(rook.Args) (any, error) {
				return &widget{Origin: "child"}, nil
			}),
		)

		inj, err := rook.New()
		require.NoError(t, err)

		v, err := inj.Create(child)
		require.NoError(t, err)
		assert.Equal(t, "child", v.(*widget).Origin)
	})
}

func TestBlueprint_InjectionOrder(t *testing.T) {
	t.Parallel()

	type record struct{ Steps []string }

	step := func(name string) rook.InjectFunc {
		return func(v any, _ rook.Args) error {
			r := v.(*record)
			r.Steps = append(r.Steps, name)
			return nil
		}
	}

	grandparent := rook.NewBlueprint("Grandparent",
		rook.Method("setup", step("grandparent.setup")),
	)
	parent := rook.NewBlueprint("Parent",
		rook.DerivesFrom(grandparent),
		rook.Method("setup", step("parent.setup")),
		rook.Method("finish", step("parent.finish")),
	)
	child := rook.NewBlueprint("Child",
		rook.DerivesFrom(parent),
		rook.Construct(func(rook.Args) (any, error) { return &record{}, nil }),
		rook.Method("setup", step("child.setup")),
	)

	inj, err := rook.New()
	require.NoError(t, err)

	v, err := inj.Create(child)
	require.NoError(t, err)

	// Root ancestors run first; declaration order holds within each
	// blueprint; same-named methods all run.
	assert.Equal(t, []string{
		"grandparent.setup",
		"parent.setup",
		"parent.finish",
		"child.setup",
	}, v.(*record).Steps)
}
