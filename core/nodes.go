package core

import (
	"sort"

	"github.com/NREL-Distribution-Suites/shift/geo"
	"github.com/NREL-Distribution-Suites/shift/shiferr"
)

// AddNode inserts node into the graph. Returns shiferr.ErrNodeAlreadyExists
// if the name is taken, or shiferr.ErrVsourceAlreadyExists if node carries
// the VoltageSource asset and a voltage-source node already exists.
// The first node carrying VoltageSource becomes Graph.VsourceNode.
func (g *Graph) AddNode(node Node) error {
	if node.Name == "" {
		return shiferr.WithEntity(shiferr.ErrInvalidNodeData, "<empty name>")
	}
	if _, exists := g.nodes[node.Name]; exists {
		return shiferr.WithEntity(shiferr.ErrNodeAlreadyExists, node.Name)
	}
	if node.HasAsset(geo.VoltageSource) && g.vsource != "" {
		return shiferr.WithEntity(shiferr.ErrVsourceAlreadyExists, node.Name)
	}

	cp := cloneNode(&node)
	g.nodes[node.Name] = cp
	if cp.Assets == nil {
		cp.Assets = make(map[geo.AssetKind]struct{})
	}
	g.adjacency[node.Name] = make(map[string]string)
	if node.HasAsset(geo.VoltageSource) {
		g.vsource = node.Name
	}

	return nil
}

// GetNode returns a copy of the node named name, or
// shiferr.ErrNodeDoesNotExist.
func (g *Graph) GetNode(name string) (Node, error) {
	n, ok := g.nodes[name]
	if !ok {
		return Node{}, shiferr.WithEntity(shiferr.ErrNodeDoesNotExist, name)
	}

	return *cloneNode(n), nil
}

// HasNode reports whether a node named name exists.
func (g *Graph) HasNode(name string) bool {
	_, ok := g.nodes[name]

	return ok
}

// GetNodes returns a stable-ordered (by Name) snapshot of every node for
// which filter returns true. A nil filter matches every node.
func (g *Graph) GetNodes(filter func(Node) bool) []Node {
	out := make([]Node, 0, len(g.nodes))
	for _, n := range g.nodes {
		if filter == nil || filter(*n) {
			out = append(out, *cloneNode(n))
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })

	return out
}

// AddAsset attaches kind to the asset set of the node named name,
// in place, without disturbing its incident edges. Fails
// shiferr.ErrNodeDoesNotExist if name is unknown, or
// shiferr.ErrVsourceAlreadyExists if kind is VoltageSource and a
// different voltage-source node already exists.
func (g *Graph) AddAsset(name string, kind geo.AssetKind) error {
	n, ok := g.nodes[name]
	if !ok {
		return shiferr.WithEntity(shiferr.ErrNodeDoesNotExist, name)
	}
	if kind == geo.VoltageSource && g.vsource != "" && g.vsource != name {
		return shiferr.WithEntity(shiferr.ErrVsourceAlreadyExists, name)
	}
	if n.Assets == nil {
		n.Assets = make(map[geo.AssetKind]struct{})
	}
	n.Assets[kind] = struct{}{}
	if kind == geo.VoltageSource {
		g.vsource = name
	}

	return nil
}

// RemoveNode deletes node name and every incident edge. If name is the
// current voltage-source node, Graph.VsourceNode is cleared.
func (g *Graph) RemoveNode(name string) error {
	if _, ok := g.nodes[name]; !ok {
		return shiferr.WithEntity(shiferr.ErrNodeDoesNotExist, name)
	}
	for nbr, edgeName := range g.adjacency[name] {
		delete(g.edges, edgeName)
		delete(g.adjacency[nbr], name)
	}
	delete(g.adjacency, name)
	delete(g.nodes, name)
	if g.vsource == name {
		g.vsource = ""
	}

	return nil
}
