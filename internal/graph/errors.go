package graph

import (
	"fmt"
	"strings"
)

// CircularDependencyError reports a reference cycle between named resources.
// Path holds the resources forming the cycle in traversal order, starting
// and implicitly ending at Node.
type CircularDependencyError struct {
	Node string
	Path []string
}

func (e CircularDependencyError) Error() string {
	var b strings.Builder
	b.WriteString("circular dependency detected:\n\n")

	if len(e.Path) == 0 {
		fmt.Fprintf(&b, "    %s -> %s\n", e.Node, e.Node)
	} else {
		for _, name := range e.Path {
			fmt.Fprintf(&b, "    %s\n", name)
			b.WriteString("      |\n")
		}
		fmt.Fprintf(&b, "    %s (cycle)\n", e.Path[0])
	}

	b.WriteString("\nBreak the cycle by removing one of the references,")
	b.WriteString(" or by resolving one side lazily inside the provider body.\n")

	return b.String()
}
