package spatial

import (
	"math"

	"github.com/NREL-Distribution-Suites/shift/core"
	"github.com/NREL-Distribution-Suites/shift/geo"
	"github.com/google/uuid"
)

// SplitEdges returns a new graph in which every Branch edge of g whose
// Length exceeds maxLength is subdivided by inserting fresh intermediate
// nodes (named with uuid.NewString(), since a split point has no natural
// name of its own) evenly spaced so that no resulting Branch edge
// exceeds maxLength. Transformer edges (Length==nil) are copied as-is,
// never split. g is not modified.
func SplitEdges(g *core.Graph, maxLength geo.Distance) (*core.Graph, error) {
	out := core.NewGraph()
	for _, n := range g.GetNodes(nil) {
		if err := out.AddNode(n); err != nil {
			return nil, err
		}
	}

	maxMeters := maxLength.Meters()
	for _, e := range g.GetEdges(nil) {
		if e.Kind != core.Branch || e.Length == nil || e.Length.Meters() <= maxMeters || maxMeters <= 0 {
			if err := out.AddEdge(e.From, e.To, e); err != nil {
				return nil, err
			}
			continue
		}

		from, err := out.GetNode(e.From)
		if err != nil {
			return nil, err
		}
		to, err := out.GetNode(e.To)
		if err != nil {
			return nil, err
		}

		segments := int(math.Ceil(e.Length.Meters() / maxMeters))
		segLength := geo.Meters(e.Length.Meters() / float64(segments))

		prevName := e.From
		for s := 1; s < segments; s++ {
			frac := float64(s) / float64(segments)
			mid := geo.Point{
				Lon: from.Location.Lon + frac*(to.Location.Lon-from.Location.Lon),
				Lat: from.Location.Lat + frac*(to.Location.Lat-from.Location.Lat),
			}
			midName := uuid.NewString()
			if err := out.AddNode(core.Node{Name: midName, Location: mid}); err != nil {
				return nil, err
			}
			segName := e.Name + "-split-" + midName
			length := segLength
			if err := out.AddEdge(prevName, midName, core.Edge{Name: segName, Kind: core.Branch, Length: &length}); err != nil {
				return nil, err
			}
			prevName = midName
		}

		length := segLength
		lastName := e.Name + "-split-final"
		if err := out.AddEdge(prevName, e.To, core.Edge{Name: lastName, Kind: core.Branch, Length: &length}); err != nil {
			return nil, err
		}
	}

	return out, nil
}
