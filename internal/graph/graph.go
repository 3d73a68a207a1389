package graph

// DependencyGraph tracks which named resources reference which other named
// resources. It is populated once, while the injector is being constructed,
// and is read-only afterwards; it therefore carries no locking.
type DependencyGraph struct {
	nodes map[string]*Node
	edges map[string][]string

	// order preserves insertion order so that traversals and error
	// reports are reproducible across runs.
	order []string
}

// Node represents a single named resource in the graph.
type Node struct {
	Name string

	// Dependencies are the resources this node's provider consumes.
	Dependencies []string

	// Dependents are the resources whose providers consume this node.
	Dependents []string
}

// New creates an empty dependency graph.
func New() *DependencyGraph {
	return &DependencyGraph{
		nodes: make(map[string]*Node),
		edges: make(map[string][]string),
	}
}

// Add inserts a resource and its outgoing edges. Dependencies that were never
// added as nodes themselves are created as leaf nodes. Adding the same name
// twice replaces its edges.
func (g *DependencyGraph) Add(name string, deps []string) {
	node, ok := g.nodes[name]
	if !ok {
		node = &Node{Name: name}
		g.nodes[name] = node
		g.order = append(g.order, name)
	}

	for _, old := range node.Dependencies {
		g.removeDependent(old, name)
	}

	node.Dependencies = append([]string(nil), deps...)
	g.edges[name] = node.Dependencies

	for _, dep := range deps {
		depNode, ok := g.nodes[dep]
		if !ok {
			depNode = &Node{Name: dep}
			g.nodes[dep] = depNode
			g.order = append(g.order, dep)
		}
		depNode.Dependents = append(depNode.Dependents, name)
	}
}

// removeDependent drops one reverse edge when a node's edges are replaced.
func (g *DependencyGraph) removeDependent(name, dependent string) {
	node, ok := g.nodes[name]
	if !ok {
		return
	}
	for i, d := range node.Dependents {
		if d == dependent {
			node.Dependents = append(node.Dependents[:i], node.Dependents[i+1:]...)
			return
		}
	}
}

// DetectCycles checks every node for membership in a reference cycle. It
// runs an iterative depth-first search with an explicit stack so that
// pathological graphs cannot exhaust goroutine stack space. The first cycle
// found is returned as a CircularDependencyError carrying the ordered cycle
// path; nil means the graph is acyclic.
func (g *DependencyGraph) DetectCycles() error {
	const (
		unvisited = iota
		visiting
		done
	)

	state := make(map[string]int, len(g.nodes))

	for _, start := range g.order {
		if state[start] != unvisited {
			continue
		}

		// Each frame holds a node and the index of the next edge to
		// follow, so the path slice always mirrors the DFS stack.
		type frame struct {
			name string
			next int
		}

		stack := []frame{{name: start}}
		state[start] = visiting
		path := []string{start}

		for len(stack) > 0 {
			top := &stack[len(stack)-1]
			deps := g.edges[top.name]

			if top.next >= len(deps) {
				state[top.name] = done
				stack = stack[:len(stack)-1]
				path = path[:len(path)-1]
				continue
			}

			dep := deps[top.next]
			top.next++

			switch state[dep] {
			case visiting:
				// The cycle is the portion of the current path
				// from the first occurrence of dep onward.
				at := 0
				for i, name := range path {
					if name == dep {
						at = i
						break
					}
				}
				cycle := append([]string(nil), path[at:]...)
				return &CircularDependencyError{Node: dep, Path: cycle}
			case unvisited:
				state[dep] = visiting
				stack = append(stack, frame{name: dep})
				path = append(path, dep)
			}
		}
	}

	return nil
}

// Dependencies returns the direct dependencies of a resource.
func (g *DependencyGraph) Dependencies(name string) []string {
	if node, ok := g.nodes[name]; ok {
		return append([]string(nil), node.Dependencies...)
	}
	return nil
}

// Dependents returns the resources that directly depend on the given one.
func (g *DependencyGraph) Dependents(name string) []string {
	if node, ok := g.nodes[name]; ok {
		return append([]string(nil), node.Dependents...)
	}
	return nil
}

// TransitiveDependencies returns all dependencies of a resource, direct and
// indirect, in discovery order.
func (g *DependencyGraph) TransitiveDependencies(name string) []string {
	visited := make(map[string]bool)
	result := make([]string, 0)

	var collect func(current string)
	collect = func(current string) {
		for _, dep := range g.edges[current] {
			if !visited[dep] {
				visited[dep] = true
				result = append(result, dep)
				collect(dep)
			}
		}
	}

	collect(name)
	return result
}

// HasNode reports whether a resource is present in the graph.
func (g *DependencyGraph) HasNode(name string) bool {
	_, ok := g.nodes[name]
	return ok
}

// Names returns all resource names in insertion order.
func (g *DependencyGraph) Names() []string {
	return append([]string(nil), g.order...)
}

// Roots returns all resources that nothing else depends on.
func (g *DependencyGraph) Roots() []*Node {
	roots := make([]*Node, 0)
	for _, name := range g.order {
		if node := g.nodes[name]; len(node.Dependents) == 0 {
			roots = append(roots, node)
		}
	}
	return roots
}

// Size returns the number of resources in the graph.
func (g *DependencyGraph) Size() int {
	return len(g.nodes)
}
