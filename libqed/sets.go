package libqed

import (
	"sync"

	"github.com/dgraph-io/badger/v3"
)

// NewLSMSet returns a GraphAdder backed by an in-memory badger db, keyed by canonic key.
//
// It trades speed for a smaller heap than NewDropDupes when the number of unique graphs is large.
func NewLSMSet() GraphAdder {
	return &lsmSet{}
}

type lsmSet struct {
	db *badger.DB
}

func (set *lsmSet) autoOpen() {
	if set.db == nil {
		dbOpts := badger.DefaultOptions("").WithInMemory(true)
		dbOpts.Logger = nil
		dbOpts.MetricsEnabled = false

		var err error
		set.db, err = badger.Open(dbOpts)
		if err != nil {
			panic(err)
		}
	}
}

func (set *lsmSet) TryAddGraph(X *Graph) bool {
	return set.tryAdd(X.CanonicKey())
}

func (set *lsmSet) tryAdd(key []byte) bool {
	set.autoOpen()

	txn := set.db.NewTransaction(true)
	defer txn.Discard()

	added := false
	_, err := txn.Get(key)
	if err == nil {
		// no-op since the key is already in the db
	} else if err == badger.ErrKeyNotFound {
		err = txn.Set(key, nil)
		if err == nil {
			err = txn.Commit()
		}
		added = true
	}

	if err != nil {
		panic(err)
	}

	return added
}

func (set *lsmSet) Close() {
	if set.db != nil {
		set.db.Close()
		set.db = nil
	}
}

// NewSyncAdder returns a GraphAdder that serializes calls to the given GraphAdder.
func NewSyncAdder(target GraphAdder) GraphAdder {
	return &syncAdder{
		target: target,
	}
}

type syncAdder struct {
	mu     sync.Mutex
	target GraphAdder
}

func (sa *syncAdder) TryAddGraph(X *Graph) bool {
	sa.mu.Lock()
	defer sa.mu.Unlock()
	return sa.target.TryAddGraph(X)
}

func (sa *syncAdder) Close() {
	sa.mu.Lock()
	defer sa.mu.Unlock()
	sa.target.Close()
}
