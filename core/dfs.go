package core

import "github.com/NREL-Distribution-Suites/shift/shiferr"

// DFSTree is a directed spanning tree of one connected component,
// produced by a depth-first traversal starting at Root. Parent maps a
// node to its predecessor in the tree (absent for Root); Children is the
// reverse. Order is the preorder visitation sequence.
type DFSTree struct {
	Root     string
	Parent   map[string]string
	Children map[string][]string
	Order    []string
	Depth    map[string]int
}

// Successors returns node's direct children in the tree (depth+1),
// sorted lexicographically — this is the "head identification" relation
// the phase mapper uses: u is the head of edge (u,v) iff v appears in
// Successors(u).
func (t *DFSTree) Successors(node string) []string {
	return append([]string(nil), t.Children[node]...)
}

// Ancestors returns every node on the path from Root down to (but not
// including) node, ordered root-first. Empty for Root or an unknown node.
func (t *DFSTree) Ancestors(node string) []string {
	var rev []string
	for cur := t.Parent[node]; cur != ""; cur = t.Parent[cur] {
		rev = append(rev, cur)
		if cur == t.Root {
			break
		}
	}
	// rev is currently leaf-to-root (nearest ancestor first); reverse it
	// to root-first.
	out := make([]string, len(rev))
	for i, v := range rev {
		out[len(rev)-1-i] = v
	}

	return out
}

// Descendants returns every node in node's subtree, excluding node
// itself, in preorder.
func (t *DFSTree) Descendants(node string) []string {
	var out []string
	var walk func(string)
	walk = func(n string) {
		for _, c := range t.Children[n] {
			out = append(out, c)
			walk(c)
		}
	}
	walk(node)

	return out
}

// Contains reports whether node was visited by this tree (i.e. lies in
// the voltage source's connected component).
func (t *DFSTree) Contains(node string) bool {
	_, ok := t.Depth[node]

	return ok
}

// GetDFSTree performs a depth-first traversal of g rooted at
// g.VsourceNode(), returning a tree containing exactly the connected
// component of the source. Fails shiferr.ErrVsourceDoesNotExist if no
// voltage-source node has been set.
func (g *Graph) GetDFSTree() (*DFSTree, error) {
	if g.vsource == "" {
		return nil, shiferr.ErrVsourceDoesNotExist
	}

	tree := &DFSTree{
		Root:     g.vsource,
		Parent:   make(map[string]string),
		Children: make(map[string][]string),
		Depth:    make(map[string]int),
	}
	visited := make(map[string]bool)

	// Iterative DFS (explicit stack) so arbitrarily deep feeders never
	// risk a recursion-depth issue; order matches a preorder recursive
	// walk because a node is only claimed (visited, parented) when it is
	// popped, and each neighbor's whole subtree is explored before its
	// siblings are popped.
	type frame struct {
		name   string
		parent string
		depth  int
	}
	stack := []frame{{g.vsource, "", 0}}

	for len(stack) > 0 {
		top := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if visited[top.name] {
			continue
		}
		visited[top.name] = true
		tree.Depth[top.name] = top.depth
		if top.name != g.vsource {
			tree.Parent[top.name] = top.parent
			tree.Children[top.parent] = append(tree.Children[top.parent], top.name)
		}
		tree.Order = append(tree.Order, top.name)

		nbrs, _ := g.Neighbors(top.name)
		// Push in reverse so the smallest-named unvisited neighbor is
		// popped (and thus visited) first, keeping traversal order
		// deterministic and each node's tree.Children in ascending name
		// order.
		for i := len(nbrs) - 1; i >= 0; i-- {
			if !visited[nbrs[i]] {
				stack = append(stack, frame{nbrs[i], top.name, top.depth + 1})
			}
		}
	}

	return tree, nil
}
