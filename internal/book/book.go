// Package book implements the opening-book adapter: a Zobrist-keyed
// lookup from position hash to a recommended reply move, consulted by
// the forced-opening phase (spec.md §4.8) before falling back to
// search. Storage follows hailam-chessplay's internal/storage use of
// badger/v4 (db.View/db.Update around one *badger.Txn, DefaultOptions,
// nil Logger), generalized from that package's JSON preference blobs
// to small binary move records, with a Ristretto cache in front for
// hot repeated lookups during a single process's lifetime.
package book

import (
	"encoding/binary"

	"github.com/dgraph-io/badger/v4"
	"github.com/dgraph-io/ristretto/v2"

	"github.com/uctgo/gouct/internal/engerr"
	"github.com/uctgo/gouct/internal/point"
)

// Book is a read-mostly Zobrist-keyed move table. A missing or
// unreadable on-disk store is not fatal: Open returns a DataLoadError
// that the caller logs as a warning and the engine proceeds without a
// book (spec.md §6/§7).
type Book struct {
	db    *badger.DB
	cache *ristretto.Cache[uint64, point.Point]
}

// Open opens (or creates) the badger store at dir and wraps it with an
// in-memory hot-lookup cache.
func Open(dir string) (*Book, error) {
	opts := badger.DefaultOptions(dir)
	opts.Logger = nil
	db, err := badger.Open(opts)
	if err != nil {
		return nil, &engerr.DataLoadError{Path: dir, Err: err, Fatal: false}
	}

	cache, err := ristretto.NewCache(&ristretto.Config[uint64, point.Point]{
		NumCounters: 10_000,
		MaxCost:     1 << 16,
		BufferItems: 64,
	})
	if err != nil {
		db.Close()
		return nil, &engerr.DataLoadError{Path: dir, Err: err, Fatal: false}
	}

	return &Book{db: db, cache: cache}, nil
}

// Close releases the underlying store.
func (b *Book) Close() error {
	b.cache.Close()
	return b.db.Close()
}

// Lookup returns the recorded reply for hash, if any.
func (b *Book) Lookup(hash uint64) (point.Point, bool) {
	if mv, ok := b.cache.Get(hash); ok {
		return mv, true
	}
	var mv point.Point
	found := false
	_ = b.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(encodeKey(hash))
		if err == badger.ErrKeyNotFound {
			return nil
		}
		if err != nil {
			return err
		}
		return item.Value(func(val []byte) error {
			mv = decodeMove(val)
			found = true
			return nil
		})
	})
	if found {
		b.cache.Set(hash, mv, 1)
	}
	return mv, found
}

// Record stores a reply move for hash, overwriting any previous entry.
// Used by the (optional, offline) book-building tooling; the search
// driver itself only ever reads.
func (b *Book) Record(hash uint64, move point.Point) error {
	b.cache.Del(hash)
	return b.db.Update(func(txn *badger.Txn) error {
		return txn.Set(encodeKey(hash), encodeMove(move))
	})
}

func encodeKey(hash uint64) []byte {
	var buf [8]byte
	binary.BigEndian.PutUint64(buf[:], hash)
	return buf[:]
}

func encodeMove(mv point.Point) []byte {
	var buf [4]byte
	binary.BigEndian.PutUint32(buf[:], uint32(int32(mv)))
	return buf[:]
}

func decodeMove(val []byte) point.Point {
	if len(val) < 4 {
		return point.NullMove
	}
	return point.Point(int32(binary.BigEndian.Uint32(val)))
}
