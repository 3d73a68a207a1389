package graph

import (
	"fmt"
	"io"
	"sort"
)

// Visualizer renders a dependency graph for debugging.
type Visualizer struct {
	graph *DependencyGraph
}

// NewVisualizer creates a visualizer over the given graph.
func NewVisualizer(graph *DependencyGraph) *Visualizer {
	return &Visualizer{graph: graph}
}

// WriteDOT writes the graph in Graphviz DOT format.
func (v *Visualizer) WriteDOT(w io.Writer) error {
	if _, err := fmt.Fprintln(w, "digraph resources {"); err != nil {
		return err
	}
	fmt.Fprintln(w, "  rankdir=LR;")
	fmt.Fprintln(w, "  node [shape=box];")

	for _, name := range v.graph.order {
		fmt.Fprintf(w, "  %q;\n", name)
	}

	for _, from := range v.graph.order {
		for _, to := range v.graph.edges[from] {
			fmt.Fprintf(w, "  %q -> %q;\n", from, to)
		}
	}

	_, err := fmt.Fprintln(w, "}")
	return err
}

// WriteText writes an indented tree of the graph, one tree per root. Nodes
// already printed on the current branch are marked to keep shared subtrees
// from repeating indefinitely.
func (v *Visualizer) WriteText(w io.Writer) error {
	roots := v.graph.Roots()
	sort.Slice(roots, func(i, j int) bool { return roots[i].Name < roots[j].Name })

	var write func(name string, depth int, seen map[string]bool) error
	write = func(name string, depth int, seen map[string]bool) error {
		indent := ""
		for i := 0; i < depth; i++ {
			indent += "  "
		}

		if seen[name] {
			_, err := fmt.Fprintf(w, "%s%s (...)\n", indent, name)
			return err
		}

		if _, err := fmt.Fprintf(w, "%s%s\n", indent, name); err != nil {
			return err
		}

		seen[name] = true
		defer delete(seen, name)

		for _, dep := range v.graph.edges[name] {
			if err := write(dep, depth+1, seen); err != nil {
				return err
			}
		}

		return nil
	}

	for _, root := range roots {
		if err := write(root.Name, 0, make(map[string]bool)); err != nil {
			return err
		}
	}

	return nil
}
