// Package catalog persists canonical QED graphs in a badger db so that generation runs can be resumed, merged,
// and queried.
package catalog

import (
	"runtime"
	"sync"

	"github.com/dgraph-io/badger/v3"
	"github.com/fine-structures/qedgen/libqed"
	"github.com/fine-structures/qedgen/qedgen"
	proto "github.com/gogo/protobuf/proto"
	"github.com/pkg/errors"
	"github.com/plan-systems/klog"
)

/***

Catalog database format:

	gCatalogStateKey => CatalogState

	kGraphPrefix, Loops, FermionLegs, BosonLegs, CanonicKey => GraphRecord

Graphs are ordered by class and then by canonic key, so a Select over a range of loop numbers is a single
iterator pass.

***/

const (
	kGraphPrefix = 0x01
	kClassOfs    = 1
	kEncodingOfs = 4

	catalogMajorVers = 2026
	catalogMinorVers = 1
)

var (
	gCatalogStateKey = []byte{0x00, 0x00, 0x01}
)

// catalog is a db wrapper for a QED graph catalog
type catalog struct {
	mu         sync.Mutex
	readOnly   bool
	stateDirty bool
	counts     map[qedgen.GraphClass]int64
	db         *badger.DB
}

// OpenCatalog opens (or creates) the catalog at opts.DbPathName, or an in-memory catalog if no path is given.
func OpenCatalog(opts qedgen.CatalogOpts) (libqed.Catalog, error) {
	cat := &catalog{
		readOnly: opts.ReadOnly,
		counts:   make(map[qedgen.GraphClass]int64),
	}

	dbOpts := badger.DefaultOptions(opts.DbPathName)
	dbOpts.ReadOnly = opts.ReadOnly
	dbOpts.DetectConflicts = false // writes are serialized by cat.mu
	dbOpts.Logger = nil
	dbOpts.MetricsEnabled = false

	// Badger for windows currently does not support read-only mode
	if runtime.GOOS == "windows" {
		dbOpts.ReadOnly = false
	}

	if len(opts.DbPathName) == 0 {
		if opts.ReadOnly {
			return nil, errors.Wrap(qedgen.ErrBadCatalogParam, "DbPathName must be specified for read-only catalog")
		}
		dbOpts.InMemory = true
	}

	var err error
	cat.db, err = badger.Open(dbOpts)
	if err != nil {
		return nil, errors.Wrapf(qedgen.ErrBadCatalogParam, "opening %q: %v", opts.DbPathName, err)
	}

	var state CatalogState
	err = cat.loadState(&state)
	if err == badger.ErrKeyNotFound {
		err = nil
		state.MajorVers = catalogMajorVers
		state.MinorVers = catalogMinorVers
		cat.stateDirty = !cat.readOnly
	}
	if err == nil && (state.MajorVers != catalogMajorVers || state.MinorVers != catalogMinorVers) {
		err = errors.Wrapf(qedgen.ErrBadCatalogParam, "catalog version %d.%d is incompatible", state.MajorVers, state.MinorVers)
	}
	if err != nil {
		cat.Close()
		return nil, err
	}

	for _, cc := range state.Classes {
		class := qedgen.GraphClass{
			Loops:       byte(cc.Loops),
			FermionLegs: byte(cc.FermionLegs),
			BosonLegs:   byte(cc.BosonLegs),
		}
		cat.counts[class] = cc.NumGraphs
	}

	klog.V(2).Infof("opened catalog %q (read-only: %v, %d classes)", opts.DbPathName, cat.readOnly, len(cat.counts))
	return cat, nil
}

func (cat *catalog) loadState(state *CatalogState) error {
	return cat.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(gCatalogStateKey)
		if err != nil {
			return err
		}
		return item.Value(func(val []byte) error {
			if err := proto.Unmarshal(val, state); err != nil {
				return errors.Wrap(qedgen.ErrUnmarshal, err.Error())
			}
			return nil
		})
	})
}

func (cat *catalog) flushState() error {
	if !cat.stateDirty || cat.readOnly {
		return nil
	}

	state := CatalogState{
		MajorVers: catalogMajorVers,
		MinorVers: catalogMinorVers,
		Classes:   make([]*ClassCount, 0, len(cat.counts)),
	}
	for class, n := range cat.counts {
		state.Classes = append(state.Classes, &ClassCount{
			Loops:       uint32(class.Loops),
			FermionLegs: uint32(class.FermionLegs),
			BosonLegs:   uint32(class.BosonLegs),
			NumGraphs:   n,
		})
	}

	err := cat.db.Update(func(txn *badger.Txn) error {
		stateBuf, err := proto.Marshal(&state)
		if err != nil {
			return err
		}
		return txn.Set(gCatalogStateKey, stateBuf)
	})
	if err != nil {
		return err
	}
	cat.stateDirty = false
	return nil
}

func (cat *catalog) Close() {
	cat.mu.Lock()
	defer cat.mu.Unlock()

	if cat.db != nil {
		if err := cat.flushState(); err != nil {
			klog.Errorf("catalog: failed to write state: %v", err)
		}
		cat.db.Close()
		cat.db = nil
	}
}

func (cat *catalog) IsReadOnly() bool {
	return cat.readOnly
}

func (cat *catalog) NumGraphs(class qedgen.GraphClass) int64 {
	cat.mu.Lock()
	defer cat.mu.Unlock()
	return cat.counts[class]
}

func formGraphKey(key []byte, class qedgen.GraphClass, X *libqed.Graph) []byte {
	key = append(key, kGraphPrefix, class.Loops, class.FermionLegs, class.BosonLegs)
	return append(key, X.CanonicKey()...)
}

// TryAddGraph adds the canonical form of X under its GraphClass if it is not already present.
//
// If false is returned, X is already in the catalog, the catalog is read-only, or the write failed.
func (cat *catalog) TryAddGraph(X *libqed.Graph) bool {
	if cat.readOnly {
		return false
	}

	Xc := X.Canonize()
	info := Xc.GetInfo()
	class := info.Class()

	var keyBuf [256]byte
	key := formGraphKey(keyBuf[:0], class, Xc)

	cat.mu.Lock()
	defer cat.mu.Unlock()

	txn := cat.db.NewTransaction(true)
	defer txn.Discard()

	_, err := txn.Get(key)
	if err == nil {
		return false
	}
	if err != badger.ErrKeyNotFound {
		klog.Errorf("catalog: lookup failed: %v", err)
		return false
	}

	seqNum := cat.counts[class] + 1
	val, err := proto.Marshal(&GraphRecord{
		SeqNum: seqNum,
		Expr:   Xc.ExprString(),
	})
	if err == nil {
		// badger retains the key until commit, so it can't live on the stack
		err = txn.Set(append([]byte(nil), key...), val)
	}
	if err == nil {
		err = txn.Commit()
	}
	if err != nil {
		klog.Errorf("catalog: failed to add %q: %v", Xc.ExprString(), err)
		return false
	}

	cat.counts[class] = seqNum
	cat.stateDirty = true
	return true
}

// Select sends every catalog graph selected by sel to onHit, in class and then canonic key order.
func (cat *catalog) Select(sel qedgen.GraphSelector, onHit libqed.OnGraphHit) {
	txn := cat.db.NewTransaction(false)
	defer txn.Discard()

	it := txn.NewIterator(badger.IteratorOptions{
		PrefetchValues: false,
		Prefix:         []byte{kGraphPrefix},
	})
	defer it.Close()

	seekTo := []byte{kGraphPrefix, sel.Min.Loops}
	for it.Seek(seekTo); it.Valid(); it.Next() {
		curKey := it.Item().Key()
		if len(curKey) < kEncodingOfs || curKey[kClassOfs] > sel.Max.Loops {
			break
		}

		X, err := libqed.NewGraphFromEncoding(curKey[kEncodingOfs:])
		if err != nil {
			klog.Errorf("catalog: skipping bad entry: %v", err)
			continue
		}
		if libqed.SelectsGraph(&sel, X) {
			onHit <- X.Canonize()
		}
	}
}
