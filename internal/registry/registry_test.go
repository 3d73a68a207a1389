package registry_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/corvidae/rook/internal/registry"
)

func TestSignature_IllegalShape(t *testing.T) {
	t.Parallel()

	t.Run("variadic with keyword-only is illegal", func(t *testing.T) {
		t.Parallel()

		sig := registry.NewSignature([]registry.Param{
			registry.NewVariadic("args"),
			registry.NewParam("name").KeywordOnly(),
		})

		assert.ErrorIs(t, sig.Err(), registry.ErrIllegalSignature)
	})

	t.Run("variadic alone is legal", func(t *testing.T) {
		t.Parallel()

		sig := registry.NewSignature([]registry.Param{registry.NewVariadic("args")})
		assert.NoError(t, sig.Err())
	})

	t.Run("keyword-only alone is legal", func(t *testing.T) {
		t.Parallel()

		sig := registry.NewSignature([]registry.Param{registry.NewParam("name").KeywordOnly()})
		assert.NoError(t, sig.Err())
	})
}

func TestParam_Builders(t *testing.T) {
	t.Parallel()

	p := registry.NewParam("last_name").Default("Supe").KeywordOnly()

	assert.Equal(t, "last_name", p.Name())
	assert.True(t, p.IsKeywordOnly())
	assert.False(t, p.IsVariadic())

	def, ok := p.DefaultValue()
	require.True(t, ok)
	assert.Equal(t, "Supe", def)

	_, ok = registry.NewParam("name").DefaultValue()
	assert.False(t, ok)

	assert.True(t, registry.NewVariadic("args").IsVariadic())
}

func TestSignature_ParamNames(t *testing.T) {
	t.Parallel()

	sig := registry.NewSignature([]registry.Param{
		registry.NewParam("a"),
		registry.NewVariadic("rest"),
		registry.NewParam("b"),
	})

	assert.Equal(t, []string{"a", "rest", "b"}, sig.ParamNames())
	assert.Len(t, sig.Params(), 3)
}

func binding(name, module string) *registry.Binding {
	return &registry.Binding{
		Name:   name,
		Module: module,
		Call:   func(registry.Args) (any, error) { return module, nil },
	}
}

func TestScan(t *testing.T) {
	t.Parallel()

	t.Run("derived overrides parent, keeps unrelated", func(t *testing.T) {
		t.Parallel()

		parent := &registry.Module{
			Name:     "parent",
			Bindings: []*registry.Binding{binding("first_name", "parent"), binding("last_name", "parent")},
		}
		child := &registry.Module{
			Name:     "child",
			Parents:  []*registry.Module{parent},
			Bindings: []*registry.Binding{binding("last_name", "child")},
		}

		m := registry.Scan([]*registry.Module{child})
		require.Equal(t, 2, m.Len())

		b, ok := m.Lookup("last_name")
		require.True(t, ok)
		assert.Equal(t, "child", b.Module)

		b, ok = m.Lookup("first_name")
		require.True(t, ok)
		assert.Equal(t, "parent", b.Module)
	})

	t.Run("later module wins across unrelated modules", func(t *testing.T) {
		t.Parallel()

		first := &registry.Module{Name: "first", Bindings: []*registry.Binding{binding("name", "first")}}
		second := &registry.Module{Name: "second", Bindings: []*registry.Binding{binding("name", "second")}}

		m := registry.Scan([]*registry.Module{first, second})

		b, ok := m.Lookup("name")
		require.True(t, ok)
		assert.Equal(t, "second", b.Module)
	})

	t.Run("overridden name keeps its original scan position", func(t *testing.T) {
		t.Parallel()

		first := &registry.Module{Name: "first", Bindings: []*registry.Binding{binding("a", "first"), binding("b", "first")}}
		second := &registry.Module{Name: "second", Bindings: []*registry.Binding{binding("a", "second")}}

		m := registry.Scan([]*registry.Module{first, second})
		assert.Equal(t, []string{"a", "b"}, m.Names())
	})

	t.Run("nil modules are skipped", func(t *testing.T) {
		t.Parallel()

		m := registry.Scan([]*registry.Module{nil, {Name: "only", Bindings: []*registry.Binding{binding("a", "only")}}})
		assert.Equal(t, 1, m.Len())
	})

	t.Run("scanning never invokes providers", func(t *testing.T) {
		t.Parallel()

		invoked := false
		mod := &registry.Module{Name: "lazy", Bindings: []*registry.Binding{{
			Name:   "value",
			Module: "lazy",
			Call: func(registry.Args) (any, error) {
				invoked = true
				return nil, nil
			},
		}}}

		registry.Scan([]*registry.Module{mod})
		assert.False(t, invoked)
	})
}

func TestArgs_Accessors(t *testing.T) {
	t.Parallel()

	args := registry.Args{"name": "Lain", "count": 3, "raw": []byte("x")}

	assert.Equal(t, "Lain", args.String("name"))
	assert.Equal(t, "", args.String("count"), "type mismatch yields zero value")
	assert.Equal(t, 3, args.Int("count"))
	assert.Equal(t, 0, args.Int("name"))
	assert.True(t, args.Has("raw"))
	assert.False(t, args.Has("missing"))
	assert.Equal(t, []byte("x"), args.Value("raw"))
	assert.Nil(t, args.Value("missing"))
}
