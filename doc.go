// Package rook is a name-keyed dependency injection container. Modules
// declare named resource providers; an injector built from those modules
// constructs arbitrary targets by resolving their declared constructor
// parameters — and designated post-construction injection methods — against
// the providers, recursively, with eager cycle detection and optional value
// interception.
//
// # Basic Usage
//
// Declare providers in a module, describe the target with a blueprint, and
// create:
//
//	names := rook.NewModule("names",
//	    rook.Supply("name", "Lain"),
//	    rook.Supply("last_name", "Supe"),
//	)
//
//	printer := rook.NewBlueprint("NamePrinter",
//	    rook.Construct(func(args rook.Args) (any, error) {
//	        return &NamePrinter{Name: args.String("name")}, nil
//	    }, rook.Param("name")),
//	    rook.Method("set_last_name", func(v any, args rook.Args) error {
//	        v.(*NamePrinter).LastName = args.String("last_name")
//	        return nil
//	    }, rook.Param("last_name")),
//	)
//
//	inj, err := rook.New(names)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	v, err := inj.Create(printer)
//
// # Resolution Rules
//
// Each declared parameter resolves independently, in precedence order:
//
//   - an explicit Override passed to Create or Inject,
//   - a provider registered under the parameter's name, resolved recursively
//     and memoized for the injector's lifetime,
//   - the parameter's declared default.
//
// A required parameter that none of these can satisfy fails with an
// InjectionError. A provider's value always beats a default for the same
// name. A signature that combines a variadic catch-all with keyword-only
// parameters is illegal and fails the first time it would be invoked.
//
// # Modules and Blueprints
//
// Modules extend other modules with Extends; a more-derived module's binding
// for a name overrides an inherited one. When two unrelated modules bind the
// same name, the module registered later with New wins. Blueprints derive
// from other blueprints with DerivesFrom; injection methods run root
// ancestor first, and same-named methods on distinct ancestors are
// independent injection points — all of them run.
//
// # Cycle Detection
//
// The provider reference graph is built and checked once, inside New, from
// the declared parameter names. A cycle fails construction wholesale with a
// CircularDependencyError before any provider runs.
//
// # Interceptors
//
// AddInjectionInterceptor appends a function that may rewrite any resolved
// parameter map before it reaches its consumer, including nested
// provider-to-provider resolution. Interceptors run in registration order,
// each seeing the previous one's output.
//
// # Concurrency
//
// Resolution is synchronous and single-threaded by design. Callers that
// share an injector across goroutines must serialize Create and Inject.
package rook
