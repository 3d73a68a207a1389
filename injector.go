package rook

import (
	"io"
	"reflect"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/corvidae/rook/internal/graph"
	"github.com/corvidae/rook/internal/registry"
)

// Injector resolves named resources against the providers declared by its
// modules. The provider map and dependency graph are built once, here, and
// are immutable afterwards; resolved values are memoized for the injector's
// lifetime ("singleton per injector").
//
// Resolution is synchronous and single-threaded by design. Concurrent
// Create/Inject calls on the same injector must be serialized by the caller.
type Injector struct {
	id           string
	log          *zap.Logger
	providers    *registry.Map
	graph        *graph.DependencyGraph
	cache        map[string]any
	interceptors []Interceptor
}

// New constructs an injector from zero or more modules. Module scanning,
// graph construction, and cycle detection all complete before New returns:
// a cycle in the declared provider references fails construction wholesale
// with a CircularDependencyError, before any provider is ever invoked.
func New(opts ...Option) (*Injector, error) {
	cfg := injectorConfig{logger: zap.NewNop()}
	for _, opt := range opts {
		if opt == nil {
			continue
		}
		opt.applyOption(&cfg)
	}

	specs := make([]*registry.Module, 0, len(cfg.modules))
	for _, m := range cfg.modules {
		if m == nil {
			continue
		}
		specs = append(specs, m.spec)
	}

	inj := &Injector{
		id:        uuid.NewString(),
		log:       cfg.logger,
		providers: registry.Scan(specs),
		cache:     make(map[string]any),
	}

	inj.graph = graph.New()
	for _, name := range inj.providers.Names() {
		binding, _ := inj.providers.Lookup(name)

		// Only parameters that name another provider become edges;
		// anything else is an external input resolved at consumption
		// time.
		deps := make([]string, 0)
		for _, p := range binding.Sig.Params() {
			if p.IsVariadic() {
				continue
			}
			if _, ok := inj.providers.Lookup(p.Name()); ok {
				deps = append(deps, p.Name())
			}
		}

		inj.graph.Add(name, deps)
		inj.log.Debug("provider scanned",
			zap.String("injector", inj.id),
			zap.String("resource", name),
			zap.String("module", binding.Module),
			zap.Strings("dependencies", deps))
	}

	if err := inj.graph.DetectCycles(); err != nil {
		return nil, err
	}

	inj.log.Debug("injector constructed",
		zap.String("injector", inj.id),
		zap.Int("providers", inj.providers.Len()))

	return inj, nil
}

// Create resolves the blueprint's constructor parameters, constructs the
// instance, runs method injection across the blueprint's ancestor chain,
// and returns the instance. Overrides take precedence over providers and
// defaults for the target's own parameters.
func (inj *Injector) Create(bp *Blueprint, opts ...CreateOption) (any, error) {
	if bp == nil {
		return nil, InjectionError{Kind: KindConstructor, Consumer: "<nil>", Cause: ErrNilTarget}
	}

	var copts createOptions
	for _, opt := range opts {
		opt.applyCreateOption(&copts)
	}

	instance, err := inj.construct(bp, copts.overrides)
	if err != nil {
		return nil, err
	}

	if err := inj.runInjection(bp, instance, copts.overrides); err != nil {
		return nil, err
	}

	return instance, nil
}

// Inject runs method injection only, against an already-constructed
// instance. The constructor is never re-invoked.
func (inj *Injector) Inject(bp *Blueprint, instance any, opts ...CreateOption) error {
	if bp == nil || instance == nil {
		return InjectionError{Kind: KindInjectionMethod, Consumer: "<nil>", Cause: ErrNilTarget}
	}

	var copts createOptions
	for _, opt := range opts {
		opt.applyCreateOption(&copts)
	}

	return inj.runInjection(bp, instance, copts.overrides)
}

// Resolve returns the named resource, invoking its provider on first use
// and serving the memoized value afterwards. The raw cached value is
// returned; interceptors rewrite per-consumer parameter maps only.
func (inj *Injector) Resolve(name string) (any, error) {
	if _, ok := inj.providers.Lookup(name); !ok {
		return nil, InjectionError{
			Kind:     KindProvider,
			Consumer: name,
			Param:    name,
			Cause:    ErrUnresolvedDependency,
		}
	}
	return inj.resolveResource(name)
}

// Names returns every bound resource name in scan order.
func (inj *Injector) Names() []string {
	return inj.providers.Names()
}

// Dependencies returns the declared provider dependencies of a resource.
func (inj *Injector) Dependencies(name string) []string {
	return inj.graph.Dependencies(name)
}

// Dependents returns the resources whose providers consume the given one.
func (inj *Injector) Dependents(name string) []string {
	return inj.graph.Dependents(name)
}

// WriteDOT writes the provider dependency graph in Graphviz DOT format.
func (inj *Injector) WriteDOT(w io.Writer) error {
	return graph.NewVisualizer(inj.graph).WriteDOT(w)
}

// WriteGraph writes an indented text rendering of the provider graph.
func (inj *Injector) WriteGraph(w io.Writer) error {
	return graph.NewVisualizer(inj.graph).WriteText(w)
}

// construct builds the target instance through its effective constructor,
// falling back to prototype construction for blueprints with no declared
// constructor anywhere on the chain.
func (inj *Injector) construct(bp *Blueprint, overrides map[string]any) (any, error) {
	consumer := Consumer{Kind: KindConstructor, Name: bp.name}

	ctor := bp.constructor()
	if ctor == nil {
		proto := bp.prototype()
		if proto == nil {
			return nil, InjectionError{Kind: KindConstructor, Consumer: bp.name, Cause: ErrNoConstructor}
		}

		// No declared constructor: zero resolved parameters.
		inj.intercept(consumer, Args{})
		if proto.Kind() == reflect.Pointer {
			return reflect.New(proto.Elem()).Interface(), nil
		}
		return reflect.New(proto).Elem().Interface(), nil
	}

	consumer.Params = ctor.sig.ParamNames()
	args, err := inj.resolveArgs(consumer, ctor.sig, overrides)
	if err != nil {
		return nil, err
	}

	inj.log.Debug("constructing target",
		zap.String("injector", inj.id),
		zap.String("blueprint", bp.name))

	instance, err := ctor.fn(args)
	if err != nil {
		return nil, InjectionError{Kind: KindConstructor, Consumer: bp.name, Cause: err}
	}

	return instance, nil
}

// runInjection invokes every injection method across the ancestor chain,
// root ancestors first, each exactly once. Same-named methods on distinct
// ancestors are independent injection points; all of them run.
func (inj *Injector) runInjection(bp *Blueprint, instance any, overrides map[string]any) error {
	for _, m := range bp.injectionChain() {
		consumer := Consumer{
			Kind:   KindInjectionMethod,
			Name:   m.owner + "." + m.name,
			Params: m.sig.ParamNames(),
		}

		args, err := inj.resolveArgs(consumer, m.sig, overrides)
		if err != nil {
			return err
		}

		inj.log.Debug("running injection method",
			zap.String("injector", inj.id),
			zap.String("method", consumer.Name))

		if err := m.fn(instance, args); err != nil {
			return InjectionError{Kind: KindInjectionMethod, Consumer: consumer.Name, Cause: err}
		}
	}

	return nil
}

// resolveArgs resolves a full parameter map for one consumer and passes it
// through the interceptor chain. Each named parameter resolves
// independently: override first, then provider (recursively, through the
// cache), then declared default. Variadic parameters are never bound.
func (inj *Injector) resolveArgs(c Consumer, sig registry.Signature, overrides map[string]any) (Args, error) {
	if err := sig.Err(); err != nil {
		return nil, InjectionError{Kind: c.Kind, Consumer: c.Name, Cause: err}
	}

	args := make(Args, len(c.Params))
	for _, p := range sig.Params() {
		if p.IsVariadic() {
			continue
		}

		name := p.Name()

		if v, ok := overrides[name]; ok {
			args[name] = v
			continue
		}

		if _, ok := inj.providers.Lookup(name); ok {
			v, err := inj.resolveResource(name)
			if err != nil {
				return nil, err
			}
			args[name] = v
			continue
		}

		if def, ok := p.DefaultValue(); ok {
			args[name] = def
			continue
		}

		return nil, InjectionError{
			Kind:     c.Kind,
			Consumer: c.Name,
			Param:    name,
			Cause:    ErrUnresolvedDependency,
		}
	}

	return inj.intercept(c, args), nil
}

// resolveResource produces a named resource through its provider, memoizing
// the raw result for all later consumers within this injector.
func (inj *Injector) resolveResource(name string) (any, error) {
	if v, ok := inj.cache[name]; ok {
		inj.log.Debug("resolution cache hit",
			zap.String("injector", inj.id),
			zap.String("resource", name))
		return v, nil
	}

	binding, _ := inj.providers.Lookup(name)
	consumer := Consumer{
		Kind:   KindProvider,
		Name:   name,
		Params: binding.Sig.ParamNames(),
	}

	args, err := inj.resolveArgs(consumer, binding.Sig, nil)
	if err != nil {
		return nil, err
	}

	v, err := binding.Call(args)
	if err != nil {
		return nil, InjectionError{Kind: KindProvider, Consumer: name, Cause: err}
	}

	inj.cache[name] = v
	inj.log.Debug("resource resolved",
		zap.String("injector", inj.id),
		zap.String("resource", name),
		zap.String("module", binding.Module))

	return v, nil
}
