// Package testutil provides shared fixtures for injector tests: canonical
// modules, blueprints, and recording targets.
package testutil

import (
	"sync"

	"github.com/google/uuid"

	"github.com/corvidae/rook"
)

// NamePrinter is the canonical injection target: one constructor parameter
// and one injected field.
type NamePrinter struct {
	Name     string
	LastName string
}

// NamePrinterBlueprint describes NamePrinter with a "name" constructor
// parameter and a "set_last_name" injection method consuming "last_name".
func NamePrinterBlueprint() *rook.Blueprint {
	return rook.NewBlueprint("NamePrinter",
		rook.Construct(func(args rook.Args) (any, error) {
			return &NamePrinter{Name: args.String("name")}, nil
		}, rook.Param("name")),
		rook.Method("set_last_name", func(v any, args rook.Args) error {
			v.(*NamePrinter).LastName = args.String("last_name")
			return nil
		}, rook.Param("last_name")),
	)
}

// NamesModule supplies the "name" and "last_name" resources.
func NamesModule() *rook.Module {
	return rook.NewModule("names",
		rook.Supply("name", "Lain"),
		rook.Supply("last_name", "Supe"),
	)
}

// CallCounter records provider invocations so memoization is observable.
type CallCounter struct {
	mu    sync.Mutex
	calls map[string]int
}

// NewCallCounter creates an empty counter.
func NewCallCounter() *CallCounter {
	return &CallCounter{calls: make(map[string]int)}
}

// Count returns how often the named provider ran.
func (c *CallCounter) Count(name string) int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.calls[name]
}

// Provider wraps fn so each invocation is counted under name.
func (c *CallCounter) Provider(name string, fn rook.ProviderFunc) rook.ProviderFunc {
	return func(args rook.Args) (any, error) {
		c.mu.Lock()
		c.calls[name]++
		c.mu.Unlock()
		return fn(args)
	}
}

// Session is a resource with a unique identity per provider invocation,
// used to observe caching across consumers.
type Session struct {
	ID string
}

// SessionModule provides a "session" resource with a fresh uuid per
// provider call.
func SessionModule(counter *CallCounter) *rook.Module {
	return rook.NewModule("session",
		rook.Provide("session", counter.Provider("session", func(rook.Args) (any, error) {
			return &Session{ID: uuid.NewString()}, nil
		})),
	)
}
