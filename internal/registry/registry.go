// Package registry holds the deferred provider bindings captured while
// scanning modules, and the scanner that merges them into a provider map.
package registry

import "errors"

// ErrIllegalSignature marks a parameter list that declares both a variadic
// catch-all and keyword-only parameters. Name-based injection cannot satisfy
// that combination, so the binding is rejected instead of silently mis-bound.
var ErrIllegalSignature = errors.New("signature mixes a variadic parameter with keyword-only parameters")

// Args is the resolved name-to-value map handed to a provider, constructor,
// or injection method.
type Args map[string]any

// Value returns the raw value bound to name, or nil.
func (a Args) Value(name string) any {
	return a[name]
}

// Has reports whether a value is bound to name.
func (a Args) Has(name string) bool {
	_, ok := a[name]
	return ok
}

// String returns the value bound to name if it is a string, or "".
func (a Args) String(name string) string {
	s, _ := a[name].(string)
	return s
}

// Int returns the value bound to name if it is an int, or 0.
func (a Args) Int(name string) int {
	i, _ := a[name].(int)
	return i
}

// ProviderFunc produces a resource value from its resolved dependencies.
type ProviderFunc func(Args) (any, error)

// Param describes one declared parameter of a provider, constructor, or
// injection method. Parameters are built with NewParam and the chained
// modifiers, then gathered into a Signature.
type Param struct {
	name        string
	def         any
	hasDefault  bool
	keywordOnly bool
	variadic    bool
}

// NewParam declares a required parameter resolved by name.
func NewParam(name string) Param {
	return Param{name: name}
}

// NewVariadic declares a variadic catch-all parameter. The injector never
// binds anything to it; it exists so that the shape of the underlying
// callable can be declared faithfully.
func NewVariadic(name string) Param {
	return Param{name: name, variadic: true}
}

// Default returns a copy of the parameter carrying a fallback value, used
// verbatim when no provider is registered for the name and the caller
// supplies no override.
func (p Param) Default(v any) Param {
	p.def = v
	p.hasDefault = true
	return p
}

// KeywordOnly returns a copy of the parameter marked as supplied by keyword
// only. Resolution treats it like any other named parameter, but a signature
// combining keyword-only parameters with a variadic catch-all is illegal.
func (p Param) KeywordOnly() Param {
	p.keywordOnly = true
	return p
}

// Name returns the parameter's resource name.
func (p Param) Name() string { return p.name }

// DefaultValue returns the declared fallback and whether one exists.
func (p Param) DefaultValue() (any, bool) { return p.def, p.hasDefault }

// IsVariadic reports whether this is a variadic catch-all.
func (p Param) IsVariadic() bool { return p.variadic }

// IsKeywordOnly reports whether the parameter is keyword-only.
func (p Param) IsKeywordOnly() bool { return p.keywordOnly }

// Signature is the ordered, declared parameter list of a callable. The
// illegal shape check happens when the signature is built; the recorded
// error is surfaced by the resolver the first time the callable would be
// invoked, never earlier.
type Signature struct {
	params []Param
	err    error
}

// NewSignature validates and captures a parameter list.
func NewSignature(params []Param) Signature {
	sig := Signature{params: append([]Param(nil), params...)}

	var variadic, keywordOnly bool
	for _, p := range sig.params {
		if p.variadic {
			variadic = true
		}
		if p.keywordOnly {
			keywordOnly = true
		}
	}

	if variadic && keywordOnly {
		sig.err = ErrIllegalSignature
	}

	return sig
}

// Params returns the declared parameters in order.
func (s Signature) Params() []Param {
	return append([]Param(nil), s.params...)
}

// ParamNames returns the declared parameter names in order, variadic
// parameters included.
func (s Signature) ParamNames() []string {
	names := make([]string, 0, len(s.params))
	for _, p := range s.params {
		names = append(names, p.name)
	}
	return names
}

// Err returns the illegal-shape error recorded at build time, if any.
func (s Signature) Err() error {
	return s.err
}

// Binding ties a resource name to a deferred provider. Bindings are captured
// at scan time and never invoked during scanning.
type Binding struct {
	// Name is the resource this binding produces.
	Name string

	// Module is the declaring module, for diagnostics.
	Module string

	// Call invokes the provider with its resolved dependency map.
	Call ProviderFunc

	// Sig is the provider's declared parameter list.
	Sig Signature
}

// Module is an ordered set of provider bindings with optional parent
// modules forming an ancestor chain.
type Module struct {
	Name     string
	Parents  []*Module
	Bindings []*Binding
}

// Flatten produces the module's effective bindings: ancestor declarations
// first (depth-first, in declaration order), own declarations last, so a
// more-derived module's binding for a name overrides a less-derived one
// when merged by Scan.
func (m *Module) Flatten() []*Binding {
	out := make([]*Binding, 0, len(m.Bindings))
	for _, parent := range m.Parents {
		out = append(out, parent.Flatten()...)
	}
	return append(out, m.Bindings...)
}

// Map is the immutable provider map produced by Scan: resource name to
// binding, plus a deterministic name order.
type Map struct {
	byName map[string]*Binding
	order  []string
}

// Scan merges the given modules into a provider map. Within one module's
// ancestor chain the most-derived declaration wins; across unrelated modules
// the later-registered module wins. Nil modules are skipped.
func Scan(modules []*Module) *Map {
	m := &Map{byName: make(map[string]*Binding)}

	for _, mod := range modules {
		if mod == nil {
			continue
		}
		for _, b := range mod.Flatten() {
			m.put(b)
		}
	}

	return m
}

// put records a binding, replacing any earlier binding for the same name
// while keeping the name's original position in the scan order.
func (m *Map) put(b *Binding) {
	if _, ok := m.byName[b.Name]; !ok {
		m.order = append(m.order, b.Name)
	}
	m.byName[b.Name] = b
}

// Lookup returns the binding for a resource name.
func (m *Map) Lookup(name string) (*Binding, bool) {
	b, ok := m.byName[name]
	return b, ok
}

// Names returns all bound resource names in scan order.
func (m *Map) Names() []string {
	return append([]string(nil), m.order...)
}

// Len returns the number of bound resources.
func (m *Map) Len() int {
	return len(m.byName)
}
