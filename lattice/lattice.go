package lattice

import (
	"bytes"
	"fmt"
)

// Lattice is an ordered sequence of steps, each holding the candidate
// nodes that consume some span of the pushed step keys. Step 0 always
// holds a single BOS node with PathCost 0.
type Lattice struct {
	vocab      Vocabulary
	steps      [][]Node
	pushedKeys [][]byte
}

// New returns a Lattice seeded with a single BOS step, querying vocab for
// entries and connection costs as steps are pushed.
func New(vocab Vocabulary) *Lattice {
	return &Lattice{vocab: vocab, steps: [][]Node{{BOS()}}}
}

// StepCount returns the number of steps currently in the lattice,
// including the initial BOS step.
func (l *Lattice) StepCount() int { return len(l.steps) }

// NodesAt returns the nodes at step i. i must be within [0, StepCount()).
func (l *Lattice) NodesAt(i int) ([]Node, error) {
	if i < 0 || i >= len(l.steps) {
		return nil, fmt.Errorf("%w: step index %d out of range [0,%d)", ErrInvalidArgument, i, len(l.steps))
	}
	return l.steps[i], nil
}

// PushBack matches stepKey, and every concatenation of stepKey with some
// number of the immediately-preceding pushed keys (longest span first),
// against the vocabulary. Each matching span's entries become nodes
// anchored to the step that preceded the span, with their best
// predecessor and path cost computed against that step's nodes. It fails
// with ErrInvalidArgument if no span at all matches anything.
func (l *Lattice) PushBack(stepKey []byte) error {
	n := len(l.pushedKeys) + 1 // this push's 1-indexed position
	keyCopy := append([]byte{}, stepKey...)
	keys := append(append([][]byte{}, l.pushedKeys...), keyCopy)

	var newNodes []Node
	for span := n; span >= 1; span-- {
		anchorStep := n - span
		concatKey := bytes.Join(keys[n-span:n], nil)
		entries := l.vocab.FindEntries(concatKey)
		if len(entries) == 0 {
			continue
		}
		anchorNodes := l.steps[anchorStep]
		for _, e := range entries {
			costs, bestJ, bestTotal := bestPredecessor(l.vocab, anchorNodes, e)
			newNodes = append(newNodes, Node{
				Key:                e.Key,
				Value:              e.Value,
				Step:               n,
				PrecedingStep:      anchorStep,
				PrecedingEdgeCosts: costs,
				BestPrecedingNode:  bestJ,
				NodeCost:           e.Cost,
				PathCost:           int32(bestTotal + int64(e.Cost)),
			})
		}
	}
	if len(newNodes) == 0 {
		return fmt.Errorf("%w: unrecognized step key %q", ErrInvalidArgument, stepKey)
	}

	l.steps = append(l.steps, newNodes)
	l.pushedKeys = append(l.pushedKeys, append([]byte{}, stepKey...))
	return nil
}

// Settle computes a virtual EOS node over the current last step, without
// appending it to the step list; calling it repeatedly with no
// intervening PushBack yields equal results.
func (l *Lattice) Settle() Node {
	prevStepIndex := len(l.steps) - 1
	prevNodes := l.steps[prevStepIndex]
	costs, bestJ, bestTotal := bestPredecessor(l.vocab, prevNodes, BOSEOS)
	return Node{
		Step:               prevStepIndex + 1,
		PrecedingStep:      prevStepIndex,
		PrecedingEdgeCosts: costs,
		BestPrecedingNode:  bestJ,
		NodeCost:           0,
		PathCost:           int32(bestTotal),
	}
}

// bestPredecessor computes, for a candidate entry transitioning from
// prevNodes, the per-predecessor edge costs and the argmin predecessor
// (ties broken to the smallest index).
func bestPredecessor(vocab Vocabulary, prevNodes []Node, to Entry) ([]int32, int, int64) {
	costs := make([]int32, len(prevNodes))
	bestJ := 0
	bestTotal := int64(1) << 62
	for j, pn := range prevNodes {
		conn := vocab.FindConnection(entryOf(pn), to)
		costs[j] = conn.Cost
		total := int64(pn.PathCost) + int64(conn.Cost)
		if total < bestTotal {
			bestTotal = total
			bestJ = j
		}
	}
	return costs, bestJ, bestTotal
}
