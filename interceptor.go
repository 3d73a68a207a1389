package rook

// Consumer identifies the callable a resolved parameter map is about to be
// handed to. Interceptors receive it as context.
type Consumer struct {
	// Kind is the kind of callable being invoked.
	Kind ConsumerKind

	// Name names the callable: the resource name for providers, the
	// blueprint name for constructors, "Blueprint.method" for injection
	// methods.
	Name string

	// Params are the callable's declared parameter names, in order.
	Params []string
}

// Interceptor rewrites a resolved parameter map before it reaches its
// consumer. Interceptors run in registration order, each seeing the output
// of the previous one; the final map is what the consumer receives. They run
// for every resolution step, nested provider-to-provider resolution
// included. Returning nil leaves the map unchanged.
type Interceptor func(c Consumer, values Args) Args

// AddInjectionInterceptor appends an interceptor to the injector's chain.
// Interceptors cannot be removed.
func (inj *Injector) AddInjectionInterceptor(fn Interceptor) {
	if fn == nil {
		return
	}
	inj.interceptors = append(inj.interceptors, fn)
}

// intercept passes a resolved parameter map through the chain.
func (inj *Injector) intercept(c Consumer, args Args) Args {
	for _, fn := range inj.interceptors {
		if out := fn(c, args); out != nil {
			args = out
		}
	}
	return args
}
