package rook

import "github.com/corvidae/rook/internal/registry"

// Module is a named collection of provider bindings. Modules may extend
// other modules, forming an ancestor chain: a binding declared by a
// more-derived module overrides a same-named binding inherited from a less
// derived one. Providers are captured as deferred bindings at scan time and
// are never invoked while the injector is being built.
type Module struct {
	spec *registry.Module
}

// ModuleOption is a registration action within a module.
type ModuleOption func(*registry.Module)

// NewModule creates a module from the given registration actions. Bindings
// keep their declaration order, so scan results are reproducible.
//
//	var Names = rook.NewModule("names",
//	    rook.Supply("name", "Lain"),
//	    rook.Provide("full_name", joinName, rook.Param("name"), rook.Param("last_name")),
//	)
func NewModule(name string, opts ...ModuleOption) *Module {
	if name == "" {
		panic("rook: module name cannot be empty")
	}

	spec := &registry.Module{Name: name}
	for _, opt := range opts {
		if opt == nil {
			continue
		}
		opt(spec)
	}

	return &Module{spec: spec}
}

// Name returns the module's name.
func (m *Module) Name() string {
	return m.spec.Name
}

// ProviderFunc produces a named resource value from its resolved dependency
// map. Resources a provider depends on are declared alongside it with
// Provide; the injector resolves them recursively before the call.
type ProviderFunc = registry.ProviderFunc

// Provide binds a named resource to a provider function with the given
// declared parameters.
func Provide(name string, fn ProviderFunc, params ...ParamSpec) ModuleOption {
	if name == "" {
		panic("rook: provider name cannot be empty")
	}
	if fn == nil {
		panic("rook: provider function cannot be nil")
	}

	return func(spec *registry.Module) {
		spec.Bindings = append(spec.Bindings, &registry.Binding{
			Name:   name,
			Module: spec.Name,
			Call:   fn,
			Sig:    registry.NewSignature(params),
		})
	}
}

// Supply binds a named resource to a constant value.
func Supply(name string, value any) ModuleOption {
	return Provide(name, func(Args) (any, error) {
		return value, nil
	})
}

// Extends records a parent module. The child inherits every parent binding
// and its own same-named bindings take precedence, matching conventional
// method-override rules. Multiple parents are walked in declaration order.
func Extends(parent *Module) ModuleOption {
	if parent == nil {
		panic("rook: parent module cannot be nil")
	}

	return func(spec *registry.Module) {
		spec.Parents = append(spec.Parents, parent.spec)
	}
}
