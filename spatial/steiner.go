package spatial

import (
	"container/heap"
	"math"
	"sort"
	"strconv"

	"github.com/NREL-Distribution-Suites/shift/core"
	"github.com/NREL-Distribution-Suites/shift/shiferr"
)

// Steiner returns an approximate minimum Steiner tree connecting
// terminals within g, using the classic metric-closure-then-MST
// heuristic (Kou/Markowitz/Berman, the style Mehlhorn's refinement
// builds on): compute shortest-path distances between every pair of
// terminals, build an MST over the resulting complete graph, then expand
// each MST edge back into its real shortest path in g and union the
// paths. This is a 2-approximation of the true minimum Steiner tree and
// is the same two-phase shape as chaining the teacher's dijkstra and
// prim_kruskal packages, collapsed here into one pass purpose-built for
// terminal sets instead of generic weighted graphs.
//
// Returns ErrNoTerminals if terminals is empty, or, if any terminal
// cannot reach the others, a shiferr.ErrInvalidInput naming that
// terminal and wrapping ErrUnreachableTerminal.
func Steiner(g *core.Graph, terminals []string) (*core.Graph, error) {
	if len(terminals) == 0 {
		return nil, ErrNoTerminals
	}

	uniqueTerminals := dedupeStrings(terminals)
	if len(uniqueTerminals) == 1 {
		out := core.NewGraph()
		n, err := g.GetNode(uniqueTerminals[0])
		if err != nil {
			return nil, err
		}

		return out, out.AddNode(n)
	}

	dist := make(map[string]map[string]float64, len(uniqueTerminals))
	prev := make(map[string]map[string]string, len(uniqueTerminals))
	for _, t := range uniqueTerminals {
		d, p, err := dijkstra(g, t)
		if err != nil {
			return nil, err
		}
		dist[t] = d
		prev[t] = p
	}

	for _, t := range uniqueTerminals {
		for _, other := range uniqueTerminals {
			if t == other {
				continue
			}
			if math.IsInf(dist[t][other], 1) {
				return nil, shiferr.Wrap(shiferr.ErrInvalidInput, other, ErrUnreachableTerminal)
			}
		}
	}

	type termEdge struct {
		u, v   string
		weight float64
	}
	var complete []termEdge
	for i, u := range uniqueTerminals {
		for _, v := range uniqueTerminals[i+1:] {
			complete = append(complete, termEdge{u: u, v: v, weight: dist[u][v]})
		}
	}
	sort.Slice(complete, func(i, j int) bool {
		if complete[i].weight != complete[j].weight {
			return complete[i].weight < complete[j].weight
		}
		if complete[i].u != complete[j].u {
			return complete[i].u < complete[j].u
		}

		return complete[i].v < complete[j].v
	})

	uf := newUnionFind(uniqueTerminals)
	out := core.NewGraph()
	added := make(map[string]bool) // canonical "u|v" pair names already copied into out
	edgeSeq := 0

	addPath := func(path []string) error {
		for i := 0; i+1 < len(path); i++ {
			u, v := path[i], path[i+1]
			key := u + "|" + v
			keyRev := v + "|" + u
			if added[key] || added[keyRev] {
				continue
			}
			if !out.HasNode(u) {
				n, err := g.GetNode(u)
				if err != nil {
					return err
				}
				if err := out.AddNode(n); err != nil {
					return err
				}
			}
			if !out.HasNode(v) {
				n, err := g.GetNode(v)
				if err != nil {
					return err
				}
				if err := out.AddNode(n); err != nil {
					return err
				}
			}
			srcEdge, err := g.GetEdge(u, v)
			if err != nil {
				return err
			}
			edgeSeq++
			srcEdge.Name = srcEdge.Name + "-steiner" + strconv.Itoa(edgeSeq)
			if err := out.AddEdge(u, v, srcEdge); err != nil {
				return err
			}
			added[key] = true
		}

		return nil
	}

	for _, e := range complete {
		if uf.find(e.u) == uf.find(e.v) {
			continue
		}
		uf.union(e.u, e.v)

		path := reconstructPath(prev[e.u], e.u, e.v)
		if err := addPath(path); err != nil {
			return nil, err
		}
	}

	return out, nil
}

func dedupeStrings(in []string) []string {
	seen := make(map[string]bool, len(in))
	out := make([]string, 0, len(in))
	for _, s := range in {
		if !seen[s] {
			seen[s] = true
			out = append(out, s)
		}
	}
	sort.Strings(out)

	return out
}

// --- Dijkstra, single-source, non-negative weights ---

type pqItem struct {
	node string
	dist float64
}

type priorityQueue []pqItem

func (pq priorityQueue) Len() int           { return len(pq) }
func (pq priorityQueue) Less(i, j int) bool { return pq[i].dist < pq[j].dist }
func (pq priorityQueue) Swap(i, j int)      { pq[i], pq[j] = pq[j], pq[i] }
func (pq *priorityQueue) Push(x interface{}) { *pq = append(*pq, x.(pqItem)) }
func (pq *priorityQueue) Pop() interface{} {
	old := *pq
	n := len(old)
	item := old[n-1]
	*pq = old[:n-1]

	return item
}

func dijkstra(g *core.Graph, src string) (map[string]float64, map[string]string, error) {
	if !g.HasNode(src) {
		return nil, nil, shiferr.WithEntity(shiferr.ErrInvalidInput, src)
	}

	dist := make(map[string]float64)
	prev := make(map[string]string)
	for _, n := range g.GetNodes(nil) {
		dist[n.Name] = math.Inf(1)
	}
	dist[src] = 0

	pq := &priorityQueue{{node: src, dist: 0}}
	heap.Init(pq)
	visited := make(map[string]bool)

	for pq.Len() > 0 {
		top := heap.Pop(pq).(pqItem)
		if visited[top.node] {
			continue
		}
		visited[top.node] = true

		nbrs, err := g.Neighbors(top.node)
		if err != nil {
			return nil, nil, err
		}
		for _, nbr := range nbrs {
			e, err := g.GetEdge(top.node, nbr)
			if err != nil {
				return nil, nil, err
			}
			w := 0.0
			if e.Length != nil {
				w = e.Length.Meters()
			}
			if cand := dist[top.node] + w; cand < dist[nbr] {
				dist[nbr] = cand
				prev[nbr] = top.node
				heap.Push(pq, pqItem{node: nbr, dist: cand})
			}
		}
	}

	return dist, prev, nil
}

func reconstructPath(prev map[string]string, src, dst string) []string {
	var rev []string
	for cur := dst; cur != ""; cur = prev[cur] {
		rev = append(rev, cur)
		if cur == src {
			break
		}
	}
	out := make([]string, len(rev))
	for i, v := range rev {
		out[len(rev)-1-i] = v
	}

	return out
}

// --- union-find, used by the MST step over the terminal complete graph ---

type unionFind struct {
	parent map[string]string
	rank   map[string]int
}

func newUnionFind(ids []string) *unionFind {
	uf := &unionFind{parent: make(map[string]string, len(ids)), rank: make(map[string]int, len(ids))}
	for _, id := range ids {
		uf.parent[id] = id
	}

	return uf
}

func (uf *unionFind) find(x string) string {
	for uf.parent[x] != x {
		uf.parent[x] = uf.parent[uf.parent[x]]
		x = uf.parent[x]
	}

	return x
}

func (uf *unionFind) union(a, b string) {
	ra, rb := uf.find(a), uf.find(b)
	if ra == rb {
		return
	}
	if uf.rank[ra] < uf.rank[rb] {
		ra, rb = rb, ra
	}
	uf.parent[rb] = ra
	if uf.rank[ra] == uf.rank[rb] {
		uf.rank[ra]++
	}
}
