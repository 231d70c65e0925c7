package particles

// System owns one store per emitter, keyed by index. The frame loop calls
// EnsureStores with the document's emitter count, then advances each store
// against its emitter.
type System struct {
	stores      []*Store
	maxPerStore int
	nextSeed    int64
}

func NewSystem(maxPerStore int) *System {
	return &System{maxPerStore: maxPerStore, nextSeed: 1}
}

// EnsureStores grows or shrinks the store list to n. New stores start
// empty with a fresh random seed; removed stores are discarded.
func (sys *System) EnsureStores(n int) {
	for len(sys.stores) < n {
		sys.stores = append(sys.stores, NewStore(sys.maxPerStore, sys.nextSeed))
		sys.nextSeed++
	}
	if len(sys.stores) > n {
		sys.stores = sys.stores[:n]
	}
}

// Store returns the store at i, or nil when out of range.
func (sys *System) Store(i int) *Store {
	if i < 0 || i >= len(sys.stores) {
		return nil
	}
	return sys.stores[i]
}

func (sys *System) Len() int {
	return len(sys.stores)
}

// TotalActive sums live particles across all stores.
func (sys *System) TotalActive() int {
	n := 0
	for _, s := range sys.stores {
		n += s.ActiveCount()
	}
	return n
}

// Reset clears every store.
func (sys *System) Reset() {
	for _, s := range sys.stores {
		s.Reset()
	}
}
