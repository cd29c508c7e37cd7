package core

import (
	"sort"

	"github.com/NREL-Distribution-Suites/shift/shiferr"
)

func pairKey(u, v string) (string, string) {
	if u <= v {
		return u, v
	}

	return v, u
}

func (g *Graph) hasEdgeBetween(u, v string) (string, bool) {
	nbrs, ok := g.adjacency[u]
	if !ok {
		return "", false
	}
	name, ok := nbrs[v]

	return name, ok
}

// validateEdge enforces the Transformer/length invariant from the spec:
// Kind==Transformer requires Length==nil; Kind==Branch requires
// Length!=nil.
func validateEdge(e Edge) error {
	if e.Name == "" {
		return shiferr.WithEntity(shiferr.ErrInvalidEdgeData, "<empty name>")
	}
	if e.Kind == Transformer && e.Length != nil {
		return shiferr.WithEntity(shiferr.ErrInvalidEdgeData, e.Name)
	}
	if e.Kind == Branch && e.Length == nil {
		return shiferr.WithEntity(shiferr.ErrInvalidEdgeData, e.Name)
	}

	return nil
}

// AddEdge connects the existing nodes u and v with edge. Both endpoints
// must already exist (shiferr.ErrNodeDoesNotExist otherwise); use
// AddEdgeWithNodes to auto-add full Node values. Fails
// shiferr.ErrEdgeAlreadyExists if u-v is already connected.
func (g *Graph) AddEdge(u, v string, edge Edge) error {
	if err := validateEdge(edge); err != nil {
		return err
	}
	if _, ok := g.nodes[u]; !ok {
		return shiferr.WithEntity(shiferr.ErrNodeDoesNotExist, u)
	}
	if _, ok := g.nodes[v]; !ok {
		return shiferr.WithEntity(shiferr.ErrNodeDoesNotExist, v)
	}
	if _, exists := g.hasEdgeBetween(u, v); exists {
		return shiferr.WithEntity(shiferr.ErrEdgeAlreadyExists, edge.Name)
	}
	if _, exists := g.edges[edge.Name]; exists {
		return shiferr.WithEntity(shiferr.ErrEdgeAlreadyExists, edge.Name)
	}

	cp := cloneEdge(&edge)
	cp.From, cp.To = u, v
	g.edges[edge.Name] = cp
	g.adjacency[u][v] = edge.Name
	g.adjacency[v][u] = edge.Name

	return nil
}

// AddEdgeWithNodes auto-adds u and/or v (per the spec's "given as full
// Node values and absent" rule) before connecting them with edge.
func (g *Graph) AddEdgeWithNodes(u, v Node, edge Edge) error {
	if !g.HasNode(u.Name) {
		if err := g.AddNode(u); err != nil {
			return err
		}
	}
	if !g.HasNode(v.Name) {
		if err := g.AddNode(v); err != nil {
			return err
		}
	}

	return g.AddEdge(u.Name, v.Name, edge)
}

// GetEdge returns a copy of the edge between u and v, or
// shiferr.ErrEdgeDoesNotExist.
func (g *Graph) GetEdge(u, v string) (Edge, error) {
	name, ok := g.hasEdgeBetween(u, v)
	if !ok {
		return Edge{}, shiferr.WithEntity(shiferr.ErrEdgeDoesNotExist, u+"-"+v)
	}

	return *cloneEdge(g.edges[name]), nil
}

// GetEdgeByName returns a copy of the edge named name, or
// shiferr.ErrEdgeDoesNotExist.
func (g *Graph) GetEdgeByName(name string) (Edge, error) {
	e, ok := g.edges[name]
	if !ok {
		return Edge{}, shiferr.WithEntity(shiferr.ErrEdgeDoesNotExist, name)
	}

	return *cloneEdge(e), nil
}

// GetEdges returns a stable-ordered (by Name) snapshot of every edge for
// which filter returns true. A nil filter matches every edge.
func (g *Graph) GetEdges(filter func(Edge) bool) []Edge {
	out := make([]Edge, 0, len(g.edges))
	for _, e := range g.edges {
		if filter == nil || filter(*e) {
			out = append(out, *cloneEdge(e))
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })

	return out
}

// RemoveEdge deletes the edge connecting u and v.
func (g *Graph) RemoveEdge(u, v string) error {
	name, ok := g.hasEdgeBetween(u, v)
	if !ok {
		return shiferr.WithEntity(shiferr.ErrEdgeDoesNotExist, u+"-"+v)
	}
	delete(g.edges, name)
	delete(g.adjacency[u], v)
	delete(g.adjacency[v], u)

	return nil
}

// Neighbors returns the names of nodes adjacent to name, sorted
// lexicographically.
func (g *Graph) Neighbors(name string) ([]string, error) {
	nbrs, ok := g.adjacency[name]
	if !ok {
		return nil, shiferr.WithEntity(shiferr.ErrNodeDoesNotExist, name)
	}
	out := make([]string, 0, len(nbrs))
	for nbr := range nbrs {
		out = append(out, nbr)
	}
	sort.Strings(out)

	return out, nil
}

// NodeCount and EdgeCount report current graph size; used by callers
// (e.g. topology synthesis) to detect an empty graph without allocating a
// snapshot via GetNodes/GetEdges.
func (g *Graph) NodeCount() int { return len(g.nodes) }
func (g *Graph) EdgeCount() int { return len(g.edges) }
