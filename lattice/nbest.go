package lattice

import "container/heap"

// cap is a partial path anchored at its tail, pending expansion toward
// BOS. Caps order by whole path cost; equal costs may pop in either
// order and downstream consumers must tolerate that.
type cap struct {
	tailPath      []Node
	tailPathCost  int32
	wholePathCost int32
}

type capHeap []cap

func (h capHeap) Len() int            { return len(h) }
func (h capHeap) Less(i, j int) bool  { return h[i].wholePathCost < h[j].wholePathCost }
func (h capHeap) Swap(i, j int)       { h[i], h[j] = h[j], h[i] }
func (h *capHeap) Push(x any)         { *h = append(*h, x.(cap)) }
func (h *capHeap) Pop() any {
	old := *h
	n := len(old)
	item := old[n-1]
	*h = old[:n-1]
	return item
}

// NBestIterator lazily enumerates BOS->EOS paths in non-decreasing total
// cost over a settled Lattice, via a min-heap of deviation caps.
type NBestIterator struct {
	lattice    *Lattice
	caps       capHeap
	constraint *Constraint
	index      int
}

// NewNBestIterator seeds an iterator from a Lattice and its Settle result.
// constraint may be nil to enumerate every path.
func NewNBestIterator(l *Lattice, eos Node, constraint *Constraint) *NBestIterator {
	it := &NBestIterator{lattice: l, constraint: constraint}
	heap.Init(&it.caps)
	heap.Push(&it.caps, cap{
		tailPath:      []Node{eos},
		tailPathCost:  eos.NodeCost,
		wholePathCost: eos.PathCost,
	})
	return it
}

// HasNext reports whether Next has any further path to return. When a
// constraint is set, leading caps whose path does not match are discarded
// here (their deviations still explored, as in Next) before answering.
func (it *NBestIterator) HasNext() bool {
	for it.constraint != nil && len(it.caps) > 0 {
		path := append([]Node{}, it.caps[0].tailPath...)
		for cur := path[len(path)-1]; !cur.IsBOS(); cur = path[len(path)-1] {
			precedingNodes, err := it.lattice.NodesAt(cur.PrecedingStep)
			if err != nil {
				return true
			}
			path = append(path, precedingNodes[cur.BestPrecedingNode])
		}
		reversePath(path)
		if it.constraint.Matches(path) {
			return true
		}
		it.expand(heap.Pop(&it.caps).(cap))
	}
	return len(it.caps) > 0
}

// Next returns the next cheapest BOS->EOS path. When a constraint is set,
// non-matching candidates are discarded but their deviations are still
// explored, so enumeration remains complete over the feasible set.
func (it *NBestIterator) Next() ([]Node, error) {
	for it.HasNext() {
		opened := heap.Pop(&it.caps).(cap)
		path, err := it.expand(opened)
		if err != nil {
			return nil, err
		}
		// path[0] is the tail's EOS node, carried over unmodified from
		// whichever cap produced it; its PathCost still holds the
		// lattice-wide best rather than this specific alternative's
		// total, so it's overwritten with the cost this cap actually paid.
		path[0].PathCost = opened.wholePathCost
		it.index++
		reversePath(path)
		if it.constraint == nil || it.constraint.Matches(path) {
			return path, nil
		}
	}
	return nil, ErrNoMorePaths
}

// expand walks opened's tail back to BOS via each node's best predecessor,
// pushing a new cap for every non-best alternative it passes, and returns
// the completed tail-to-BOS path (still in EOS-first order).
func (it *NBestIterator) expand(opened cap) ([]Node, error) {
	path := append([]Node{}, opened.tailPath...)
	tailCost := opened.tailPathCost

	for {
		cur := &path[len(path)-1]
		if cur.IsBOS() {
			break
		}
		precedingNodes, err := it.lattice.NodesAt(cur.PrecedingStep)
		if err != nil {
			return nil, err
		}
		for j, pn := range precedingNodes {
			if j == cur.BestPrecedingNode {
				continue
			}
			edgeCost := cur.PrecedingEdgeCosts[j]
			newTail := append(append([]Node{}, path...), pn)
			heap.Push(&it.caps, cap{
				tailPath:      newTail,
				tailPathCost:  tailCost + edgeCost + pn.NodeCost,
				wholePathCost: tailCost + edgeCost + pn.PathCost,
			})
		}

		bestEdgeCost := cur.PrecedingEdgeCosts[cur.BestPrecedingNode]
		bestNode := precedingNodes[cur.BestPrecedingNode]
		tailCost += bestEdgeCost + bestNode.NodeCost
		path = append(path, bestNode)
	}
	return path, nil
}

func reversePath(path []Node) {
	for i, j := 0, len(path)-1; i < j; i, j = i+1, j-1 {
		path[i], path[j] = path[j], path[i]
	}
}
