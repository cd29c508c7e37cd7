package topology

import "github.com/NREL-Distribution-Suites/shift/shiferr"

// wrapEmpty returns shiferr.ErrEmptyGraph tagged with entity, used
// whenever a stage produces a graph with no nodes (an empty primary
// graph, an empty Steiner result, ...).
func wrapEmpty(entity string) error {
	return shiferr.WithEntity(shiferr.ErrEmptyGraph, entity)
}
