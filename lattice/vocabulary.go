package lattice

// Connection is the cost of transitioning from one entry to another.
type Connection struct {
	Cost int32
}

// Vocabulary maps a step key to its candidate entries, and an (from, to)
// entry pair to a connection cost.
type Vocabulary interface {
	FindEntries(stepKey []byte) []Entry
	FindConnection(from, to Entry) Connection
}

// EntryGroup associates a step key with the entries that may be matched
// against it.
type EntryGroup struct {
	StepKey []byte
	Entries []Entry
}

// ConnectionSpec is one (from, to) -> cost row of a vocabulary's
// connections table.
type ConnectionSpec struct {
	From, To Entry
	Cost     int32
}

type connKey struct{ from, to string }

// MapVocabulary is a Vocabulary backed by Go maps: an entries table keyed
// by step key and a connections table keyed by the (from, to) entry key
// pair. It is the counterpart of tetengo's unordered_map_vocabulary.
type MapVocabulary struct {
	entries     map[string][]Entry
	connections map[connKey]int32
}

// NewMapVocabulary builds a MapVocabulary from explicit entry groups and
// connection costs.
func NewMapVocabulary(groups []EntryGroup, conns []ConnectionSpec) *MapVocabulary {
	entries := make(map[string][]Entry, len(groups))
	for _, g := range groups {
		entries[string(g.StepKey)] = g.Entries
	}
	connections := make(map[connKey]int32, len(conns))
	for _, c := range conns {
		connections[connKey{string(c.From.Key), string(c.To.Key)}] = c.Cost
	}
	return &MapVocabulary{entries: entries, connections: connections}
}

func (v *MapVocabulary) FindEntries(stepKey []byte) []Entry {
	return v.entries[string(stepKey)]
}

func (v *MapVocabulary) FindConnection(from, to Entry) Connection {
	if cost, ok := v.connections[connKey{string(from.Key), string(to.Key)}]; ok {
		return Connection{Cost: cost}
	}
	return Connection{Cost: UnreachableCost}
}
