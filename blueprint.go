package rook

import (
	"reflect"

	"github.com/corvidae/rook/internal/registry"
)

// ConstructFunc builds a target instance from its resolved constructor
// parameters.
type ConstructFunc func(Args) (any, error)

// InjectFunc is a post-construction injection method. It receives the
// instance being injected and its resolved parameter map.
type InjectFunc func(instance any, args Args) error

// Blueprint is the registration table for a target type: its constructor
// binding, its injection methods, and its ancestor chain. It plays the role
// a class definition plays in a language with runtime signature
// introspection; here every dependency name is declared explicitly.
type Blueprint struct {
	name    string
	parents []*Blueprint
	ctor    *ctorBinding
	proto   reflect.Type
	methods []*methodBinding
}

type ctorBinding struct {
	fn  ConstructFunc
	sig registry.Signature
}

type methodBinding struct {
	name  string
	owner string
	fn    InjectFunc
	sig   registry.Signature
}

// BlueprintOption is a registration action within a blueprint.
type BlueprintOption func(*Blueprint)

// NewBlueprint creates a blueprint from the given registration actions.
//
//	var NamePrinter = rook.NewBlueprint("NamePrinter",
//	    rook.Construct(newNamePrinter, rook.Param("name")),
//	    rook.Method("set_last_name", setLastName, rook.Param("last_name")),
//	)
func NewBlueprint(name string, opts ...BlueprintOption) *Blueprint {
	if name == "" {
		panic("rook: blueprint name cannot be empty")
	}

	bp := &Blueprint{name: name}
	for _, opt := range opts {
		if opt == nil {
			continue
		}
		opt(bp)
	}

	return bp
}

// Name returns the blueprint's name.
func (bp *Blueprint) Name() string {
	return bp.name
}

// Construct binds the target's constructor with its declared parameters.
func Construct(fn ConstructFunc, params ...ParamSpec) BlueprintOption {
	if fn == nil {
		panic("rook: constructor function cannot be nil")
	}

	return func(bp *Blueprint) {
		bp.ctor = &ctorBinding{fn: fn, sig: registry.NewSignature(params)}
	}
}

// Prototype declares the target's type for default construction. When no
// constructor is bound anywhere on the ancestor chain, Create builds a zero
// value of the prototype's type with no resolved parameters, mirroring a
// class with no declared constructor. Pass a pointer to get pointer
// instances back.
func Prototype(v any) BlueprintOption {
	t := reflect.TypeOf(v)
	if t == nil {
		panic("rook: prototype cannot be nil")
	}

	return func(bp *Blueprint) {
		bp.proto = t
	}
}

// Method registers a post-construction injection method. Methods run after
// the constructor, root ancestor first, in declaration order within each
// blueprint. A same-named method on an ancestor is an independent injection
// point, not an override: both run.
func Method(name string, fn InjectFunc, params ...ParamSpec) BlueprintOption {
	if name == "" {
		panic("rook: injection method name cannot be empty")
	}
	if fn == nil {
		panic("rook: injection method function cannot be nil")
	}

	return func(bp *Blueprint) {
		bp.methods = append(bp.methods, &methodBinding{
			name:  name,
			owner: bp.name,
			fn:    fn,
			sig:   registry.NewSignature(params),
		})
	}
}

// DerivesFrom records a parent blueprint. The child inherits the parent's
// injection methods and, when it declares no constructor of its own, the
// nearest ancestor constructor. Multiple parents are walked in declaration
// order.
func DerivesFrom(parent *Blueprint) BlueprintOption {
	if parent == nil {
		panic("rook: parent blueprint cannot be nil")
	}

	return func(bp *Blueprint) {
		bp.parents = append(bp.parents, parent)
	}
}

// constructor returns the effective constructor binding: the blueprint's
// own, or the nearest one walking up the ancestor chain.
func (bp *Blueprint) constructor() *ctorBinding {
	if bp.ctor != nil {
		return bp.ctor
	}
	for _, parent := range bp.parents {
		if ctor := parent.constructor(); ctor != nil {
			return ctor
		}
	}
	return nil
}

// prototype returns the effective prototype type, nearest declaration first.
func (bp *Blueprint) prototype() reflect.Type {
	if bp.proto != nil {
		return bp.proto
	}
	for _, parent := range bp.parents {
		if t := parent.prototype(); t != nil {
			return t
		}
	}
	return nil
}

// injectionChain returns every injection method across the ancestor chain,
// root ancestors first, with no de-duplication by name.
func (bp *Blueprint) injectionChain() []*methodBinding {
	out := make([]*methodBinding, 0, len(bp.methods))
	for _, parent := range bp.parents {
		out = append(out, parent.injectionChain()...)
	}
	return append(out, bp.methods...)
}
