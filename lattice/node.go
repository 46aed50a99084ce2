package lattice

// noPreceding marks a node with no preceding step: the BOS node.
const noPreceding = -1

// Node is one candidate occupying a lattice step. Step is the absolute
// index of the step this node was pushed into (0 for BOS); PrecedingStep
// is the step index its best predecessor was drawn from, which may be
// earlier than Step-1 when this node's key spans more than one pushed
// step. PrecedingEdgeCosts has one entry per node at PrecedingStep;
// BestPrecedingNode indexes the argmin used to compute PathCost, with
// ties broken to the smallest index.
type Node struct {
	Key                []byte
	Value              any
	Step               int
	PrecedingStep      int
	PrecedingEdgeCosts []int32
	BestPrecedingNode  int
	NodeCost           int32
	PathCost           int32
}

// BOS returns the Beginning-of-Sequence node seeding step 0 of a lattice.
func BOS() Node {
	return Node{Step: 0, PrecedingStep: noPreceding}
}

// IsBOS reports whether n is the Beginning-of-Sequence node.
func (n Node) IsBOS() bool { return n.PrecedingStep == noPreceding }

// entryOf returns the Entry this node corresponds to for connection
// lookups: BOSEOS for the BOS node (and, by the same empty-key shape,
// for an EOS node), otherwise the node's own key/value/cost.
func entryOf(n Node) Entry {
	if n.IsBOS() {
		return BOSEOS
	}
	return Entry{Key: n.Key, Value: n.Value, Cost: n.NodeCost}
}
