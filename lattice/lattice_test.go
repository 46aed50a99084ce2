package lattice_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ari-shimizu/dalt/lattice"
)

// transferTrainsVocabulary reproduces the canonical transfer-trains
// fixture: a small railway-connection graph used to exercise Viterbi
// best-predecessor selection and N-best deviation search.
//
//	BOS--(Hakata)--kamome/local415--(Tosu)--local813--(Omuta)--local817--(Kumamoto)--EOS
//	                    \                        \                           /
//	                     ariake/rapid811-----------local815------------------
//	                          \_________________mizuho/sakura/tsubame________/
func transferTrainsVocabulary() lattice.Vocabulary {
	e := func(key, value string, cost int32) lattice.Entry {
		return lattice.Entry{Key: []byte(key), Value: value, Cost: cost}
	}

	groups := []lattice.EntryGroup{
		{StepKey: []byte("[HakataTosu][TosuOmuta][OmutaKumamoto]"), Entries: []lattice.Entry{
			e("Hakata-Tosu-Omuta-Kumamoto", "mizuho", 3670),
			e("Hakata-Tosu-Omuta-Kumamoto", "sakura", 2620),
			e("Hakata-Tosu-Omuta-Kumamoto", "tsubame", 2390),
		}},
		{StepKey: []byte("[HakataTosu][TosuOmuta]"), Entries: []lattice.Entry{
			e("Hakata-Tosu-Omuta", "ariake", 2150),
			e("Hakata-Tosu-Omuta", "rapid811", 1310),
		}},
		{StepKey: []byte("[HakataTosu]"), Entries: []lattice.Entry{
			e("Hakata-Tosu", "kamome", 840),
			e("Hakata-Tosu", "local415", 570),
		}},
		{StepKey: []byte("[TosuOmuta]"), Entries: []lattice.Entry{
			e("Tosu-Omuta", "local813", 860),
		}},
		{StepKey: []byte("[TosuOmuta][OmutaKumamoto]"), Entries: []lattice.Entry{
			e("Tosu-Omuta-Kumamoto", "local815", 1680),
		}},
		{StepKey: []byte("[OmutaKumamoto]"), Entries: []lattice.Entry{
			e("Omuta-Kumamoto", "local817", 950),
		}},
	}

	be := func(key string) lattice.Entry { return lattice.Entry{Key: []byte(key)} }
	conns := []lattice.ConnectionSpec{
		{From: lattice.BOSEOS, To: be("Hakata-Tosu-Omuta-Kumamoto"), Cost: 600},
		{From: lattice.BOSEOS, To: be("Hakata-Tosu-Omuta"), Cost: 700},
		{From: lattice.BOSEOS, To: be("Hakata-Tosu"), Cost: 800},
		{From: lattice.BOSEOS, To: lattice.BOSEOS, Cost: 8000},
		{From: be("Hakata-Tosu"), To: be("Tosu-Omuta-Kumamoto"), Cost: 500},
		{From: be("Hakata-Tosu"), To: be("Tosu-Omuta"), Cost: 600},
		{From: be("Hakata-Tosu"), To: lattice.BOSEOS, Cost: 6000},
		{From: be("Hakata-Tosu-Omuta"), To: be("Omuta-Kumamoto"), Cost: 200},
		{From: be("Hakata-Tosu-Omuta"), To: lattice.BOSEOS, Cost: 2000},
		{From: be("Tosu-Omuta"), To: be("Omuta-Kumamoto"), Cost: 300},
		{From: be("Tosu-Omuta"), To: lattice.BOSEOS, Cost: 3000},
		{From: be("Hakata-Tosu-Omuta-Kumamoto"), To: lattice.BOSEOS, Cost: 400},
		{From: be("Tosu-Omuta-Kumamoto"), To: lattice.BOSEOS, Cost: 500},
		{From: be("Omuta-Kumamoto"), To: lattice.BOSEOS, Cost: 600},
	}

	return lattice.NewMapVocabulary(groups, conns)
}

func buildTransferTrainsLattice(t *testing.T) (*lattice.Lattice, lattice.Node) {
	t.Helper()
	l := lattice.New(transferTrainsVocabulary())
	require.NoError(t, l.PushBack([]byte("[HakataTosu]")))
	require.NoError(t, l.PushBack([]byte("[TosuOmuta]")))
	require.NoError(t, l.PushBack([]byte("[OmutaKumamoto]")))
	return l, l.Settle()
}

func TestStepCountAndNodesAt(t *testing.T) {
	l, _ := buildTransferTrainsLattice(t)
	assert.Equal(t, 4, l.StepCount())

	bos, err := l.NodesAt(0)
	require.NoError(t, err)
	require.Len(t, bos, 1)
	assert.True(t, bos[0].IsBOS())
	assert.Equal(t, int32(0), bos[0].PathCost)

	step2, err := l.NodesAt(2)
	require.NoError(t, err)
	require.Len(t, step2, 3)
	assert.Equal(t, "ariake", step2[0].Value)
	assert.Equal(t, "rapid811", step2[1].Value)
	assert.Equal(t, "local813", step2[2].Value)

	_, err = l.NodesAt(4)
	assert.ErrorIs(t, err, lattice.ErrInvalidArgument)
}

// S3: the settled EOS cost and the first nine N-best path costs.
func TestSettleAndNBest(t *testing.T) {
	l, eos := buildTransferTrainsLattice(t)
	assert.Equal(t, int32(3390), eos.PathCost)

	it := lattice.NewNBestIterator(l, eos, nil)
	want := []int32{3390, 3620, 3760, 4050, 4320, 4600, 4670, 4680, 4950}
	for i, cost := range want {
		require.True(t, it.HasNext(), "expected a path at index %d", i)
		path, err := it.Next()
		require.NoError(t, err)
		assert.Equal(t, cost, path[len(path)-1].PathCost, "path %d", i)
		assert.True(t, path[0].IsBOS())
	}
}

func TestNBestPathCostsNonDecreasing(t *testing.T) {
	l, eos := buildTransferTrainsLattice(t)
	it := lattice.NewNBestIterator(l, eos, nil)

	prev := int32(-1)
	count := 0
	for it.HasNext() && count < 20 {
		path, err := it.Next()
		require.NoError(t, err)
		cost := path[len(path)-1].PathCost
		assert.GreaterOrEqual(t, cost, prev)
		prev = cost
		count++
	}
}

// S4: a wildcard constraint pinned to the Hakata-Tosu-Omuta-Kumamoto group
// accepts both mizuho and sakura (which share that group's key) but
// rejects a path anchored through the shorter ariake span instead.
func TestWildcardConstraint(t *testing.T) {
	l, eos := buildTransferTrainsLattice(t)

	groupKey := []byte("Hakata-Tosu-Omuta-Kumamoto")
	constraint := lattice.NewConstraint(
		lattice.NewBOSElement(),
		lattice.NewWildcardElement(0),
		lattice.NewNodeElement(3, groupKey),
		lattice.NewWildcardElement(lattice.MaxStep),
		lattice.NewEOSElement(),
	)

	it := lattice.NewNBestIterator(l, eos, constraint)
	seenValues := map[string]bool{}
	for it.HasNext() {
		path, err := it.Next()
		require.NoError(t, err)
		for _, n := range path {
			if !n.IsBOS() && n.Step == 3 {
				seenValues[n.Value.(string)] = true
			}
		}
	}

	assert.True(t, seenValues["mizuho"])
	assert.True(t, seenValues["sakura"])
	assert.True(t, seenValues["tsubame"])
}

// S6: an empty vocabulary rejects push_back but still settles to a valid,
// unreachable-cost EOS.
func TestEmptyVocabularyPushBackFails(t *testing.T) {
	empty := lattice.NewMapVocabulary(nil, nil)
	l := lattice.New(empty)

	err := l.PushBack([]byte("[HakataTosu]"))
	assert.ErrorIs(t, err, lattice.ErrInvalidArgument)
	assert.Equal(t, 1, l.StepCount())

	eos := l.Settle()
	assert.Equal(t, lattice.UnreachableCost, eos.PathCost)
}

func TestSettleIsIdempotent(t *testing.T) {
	l, _ := buildTransferTrainsLattice(t)
	first := l.Settle()
	second := l.Settle()
	assert.Equal(t, first, second)
}
