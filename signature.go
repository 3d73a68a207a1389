package rook

import "github.com/corvidae/rook/internal/registry"

// Args is the resolved name-to-value map handed to providers, constructors,
// and injection methods, after the interceptor chain has run.
type Args = registry.Args

// ParamSpec declares one parameter of a provider, constructor, or injection
// method. The injector matches each declared name against caller overrides,
// the provider map, and the declared default, in that order.
type ParamSpec = registry.Param

// Param declares a required parameter resolved by resource name.
func Param(name string) ParamSpec {
	return registry.NewParam(name)
}

// Variadic declares a variadic catch-all parameter. Name-based injection
// never binds anything to it, and combining it with a keyword-only parameter
// makes the signature illegal.
func Variadic(name string) ParamSpec {
	return registry.NewVariadic(name)
}
