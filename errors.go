package rook

import (
	"errors"
	"fmt"

	"github.com/corvidae/rook/internal/graph"
	"github.com/corvidae/rook/internal/registry"
)

// Sentinel errors wrapped by InjectionError. Match them with errors.Is.
var (
	// ErrIllegalSignature is recorded when a parameter list declares both
	// a variadic catch-all and keyword-only parameters. It surfaces the
	// first time the offending callable would be invoked.
	ErrIllegalSignature = registry.ErrIllegalSignature

	// ErrUnresolvedDependency is returned when a required parameter has
	// no override, no provider, and no default.
	ErrUnresolvedDependency = errors.New("no provider, override, or default for required parameter")

	// ErrNoConstructor is returned by Create when neither the blueprint
	// nor any of its ancestors declares a constructor or a prototype.
	ErrNoConstructor = errors.New("blueprint declares no constructor")

	// ErrNilTarget is returned when a nil blueprint or nil instance is
	// handed to Create or Inject.
	ErrNilTarget = errors.New("target cannot be nil")
)

var (
	_ error = InjectionError{}
	_ error = CircularDependencyError{}
)

// CircularDependencyError reports a reference cycle in the provider graph.
// It is detected exactly once, while the injector is being constructed; a
// failed construction leaves no usable injector behind.
type CircularDependencyError = graph.CircularDependencyError

// ConsumerKind identifies what kind of callable a resolved parameter map is
// being prepared for.
type ConsumerKind int

const (
	// KindProvider marks resolution on behalf of a module provider.
	KindProvider ConsumerKind = iota

	// KindConstructor marks resolution on behalf of a target constructor.
	KindConstructor

	// KindInjectionMethod marks resolution on behalf of a
	// post-construction injection method.
	KindInjectionMethod
)

func (k ConsumerKind) String() string {
	switch k {
	case KindProvider:
		return "provider"
	case KindConstructor:
		return "constructor"
	case KindInjectionMethod:
		return "injection method"
	default:
		return fmt.Sprintf("ConsumerKind(%d)", int(k))
	}
}

// InjectionError reports a failure to invoke a provider, constructor, or
// injection method: an illegal signature, an unresolvable required
// parameter, or an error returned by the callable itself.
type InjectionError struct {
	// Kind is the consumer that could not be satisfied.
	Kind ConsumerKind

	// Consumer names the failing callable: a resource name for
	// providers, a blueprint name for constructors, or
	// "Blueprint.method" for injection methods.
	Consumer string

	// Param is the parameter that could not be resolved, when relevant.
	Param string

	// Cause is the underlying failure.
	Cause error
}

func (e InjectionError) Error() string {
	if e.Param != "" {
		return fmt.Sprintf("injection failed for %s %q: parameter %q: %v", e.Kind, e.Consumer, e.Param, e.Cause)
	}
	return fmt.Sprintf("injection failed for %s %q: %v", e.Kind, e.Consumer, e.Cause)
}

func (e InjectionError) Unwrap() error {
	return e.Cause
}
