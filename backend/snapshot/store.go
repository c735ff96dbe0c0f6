// Copyright (c) 2024 Fantom Foundation
//
// Use of this software is governed by the Business Source License included
// in the LICENSE file and at fantom.foundation/bsl11.
//
// Change Date: 2028-4-16
//
// On the date above, in accordance with the Business Source License, use of
// this software will be governed by the GNU Lesser General Public License v3.

// Package snapshot persists frozen tries as named snapshots in a LevelDB
// instance. The core containers stay agnostic of durability; this package is
// the optional bridge between the in-memory structures and disk.
package snapshot

import (
	"fmt"
	"strings"

	"github.com/Fantom-foundation/Manon/common"
	"github.com/Fantom-foundation/Manon/hamt"
	"github.com/ethereum/go-ethereum/rlp"
	"github.com/syndtr/goleveldb/leveldb"
	"github.com/syndtr/goleveldb/leveldb/util"
)

const (
	// ErrSnapshotNotFound is returned when loading or removing a snapshot
	// name that was never saved.
	ErrSnapshotNotFound = common.ConstError("snapshot not found")

	// ErrInvalidName is returned for snapshot names the key layout cannot
	// represent.
	ErrInvalidName = common.ConstError("invalid snapshot name")
)

// Key namespaces of the store. A header record per snapshot carries its
// entry count; entry records carry the snapshot content.
const (
	headerSpace byte = 'h'
	entrySpace  byte = 'e'
)

// Store persists snapshots of tries with keys K and values V. Each snapshot
// is written as one atomic batch and restored through a batch-mutation
// session, so a load costs one path copy per entry at most.
//
// A Store is safe for concurrent use to the extent the underlying LevelDB
// instance is.
type Store[K comparable, V any] struct {
	db              common.LevelDB
	closer          func() error
	keySerializer   common.Serializer[K]
	valueSerializer common.Serializer[V]
}

// entryRecord is the RLP form of one trie entry. It embeds the serialized
// key so that a restore does not depend on the layout of the database keys.
type entryRecord struct {
	Key []byte
	Val []byte
}

// headerRecord is the RLP form of the per-snapshot header.
type headerRecord struct {
	Size uint64
}

// NewStore opens a snapshot store in the given directory, creating it if
// needed. The serializers define the byte form of keys and values.
func NewStore[K comparable, V any](
	directory string,
	keySerializer common.Serializer[K],
	valueSerializer common.Serializer[V],
) (*Store[K, V], error) {
	db, err := leveldb.OpenFile(directory, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to open snapshot database in %s: %w", directory, err)
	}
	store := newStore[K, V](db, keySerializer, valueSerializer)
	store.closer = db.Close
	return store, nil
}

func newStore[K comparable, V any](
	db common.LevelDB,
	keySerializer common.Serializer[K],
	valueSerializer common.Serializer[V],
) *Store[K, V] {
	return &Store[K, V]{
		db:              db,
		keySerializer:   keySerializer,
		valueSerializer: valueSerializer,
	}
}

// Save writes all entries of the given trie as one atomic batch under the
// given name, replacing any previous snapshot of that name.
func (s *Store[K, V]) Save(name string, trie *hamt.Trie[K, V]) error {
	if err := checkName(name); err != nil {
		return err
	}
	if err := s.dropEntries(name); err != nil {
		return err
	}

	batch := new(leveldb.Batch)
	var encodingErr error
	trie.ForEach(func(key K, value V) {
		keyBytes := s.keySerializer.ToBytes(key)
		record, err := rlp.EncodeToBytes(entryRecord{
			Key: keyBytes,
			Val: s.valueSerializer.ToBytes(value),
		})
		if err != nil {
			encodingErr = err
			return
		}
		batch.Put(entryKey(name, keyBytes), record)
	})
	if encodingErr != nil {
		return fmt.Errorf("failed to encode snapshot %s: %w", name, encodingErr)
	}

	header, err := rlp.EncodeToBytes(headerRecord{Size: uint64(trie.Size())})
	if err != nil {
		return fmt.Errorf("failed to encode snapshot header: %w", err)
	}
	batch.Put(headerKey(name), header)

	if err := s.db.Write(batch, nil); err != nil {
		return fmt.Errorf("failed to write snapshot %s: %w", name, err)
	}
	return nil
}

// Load restores the snapshot of the given name into a trie using the given
// hasher to place keys. It fails with ErrSnapshotNotFound for unknown names
// and reports corrupted snapshots as errors.
func (s *Store[K, V]) Load(name string, hasher common.Hasher[K]) (*hamt.Trie[K, V], error) {
	if err := checkName(name); err != nil {
		return nil, err
	}
	raw, err := s.db.Get(headerKey(name), nil)
	if err == leveldb.ErrNotFound {
		return nil, fmt.Errorf("%w: %s", ErrSnapshotNotFound, name)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read snapshot header of %s: %w", name, err)
	}
	var header headerRecord
	if err := rlp.DecodeBytes(raw, &header); err != nil {
		return nil, fmt.Errorf("corrupted snapshot header of %s: %w", name, err)
	}

	session := hamt.NewTrie[K, V](hasher).Transient()
	iter := s.db.NewIterator(util.BytesPrefix(entryPrefix(name)), nil)
	defer iter.Release()
	for iter.Next() {
		var record entryRecord
		if err := rlp.DecodeBytes(iter.Value(), &record); err != nil {
			return nil, fmt.Errorf("corrupted entry of snapshot %s: %w", name, err)
		}
		session.Set(s.keySerializer.FromBytes(record.Key), s.valueSerializer.FromBytes(record.Val))
	}
	if err := iter.Error(); err != nil {
		return nil, fmt.Errorf("failed to read snapshot %s: %w", name, err)
	}

	trie := session.Freeze()
	if got, want := trie.Size(), int(header.Size); got != want {
		return nil, fmt.Errorf("corrupted snapshot %s: %d entries, header says %d", name, got, want)
	}
	return trie, nil
}

// Contains returns whether a snapshot of the given name exists.
func (s *Store[K, V]) Contains(name string) (bool, error) {
	if err := checkName(name); err != nil {
		return false, err
	}
	return s.db.Has(headerKey(name), nil)
}

// Remove deletes the snapshot of the given name. It fails with
// ErrSnapshotNotFound for unknown names.
func (s *Store[K, V]) Remove(name string) error {
	exists, err := s.Contains(name)
	if err != nil {
		return err
	}
	if !exists {
		return fmt.Errorf("%w: %s", ErrSnapshotNotFound, name)
	}
	if err := s.dropEntries(name); err != nil {
		return err
	}
	if err := s.db.Delete(headerKey(name), nil); err != nil {
		return fmt.Errorf("failed to remove snapshot %s: %w", name, err)
	}
	return nil
}

// Snapshots lists the names of all stored snapshots.
func (s *Store[K, V]) Snapshots() ([]string, error) {
	iter := s.db.NewIterator(util.BytesPrefix([]byte{headerSpace}), nil)
	defer iter.Release()
	var names []string
	for iter.Next() {
		names = append(names, string(iter.Key()[1:]))
	}
	if err := iter.Error(); err != nil {
		return nil, fmt.Errorf("failed to list snapshots: %w", err)
	}
	return names, nil
}

// Close releases the underlying database if this store opened it.
func (s *Store[K, V]) Close() error {
	if s.closer == nil {
		return nil
	}
	return s.closer()
}

// dropEntries removes all entry records of the given name in one batch.
func (s *Store[K, V]) dropEntries(name string) error {
	iter := s.db.NewIterator(util.BytesPrefix(entryPrefix(name)), nil)
	defer iter.Release()
	batch := new(leveldb.Batch)
	for iter.Next() {
		key := make([]byte, len(iter.Key()))
		copy(key, iter.Key())
		batch.Delete(key)
	}
	if err := iter.Error(); err != nil {
		return fmt.Errorf("failed to scan snapshot %s: %w", name, err)
	}
	if batch.Len() == 0 {
		return nil
	}
	if err := s.db.Write(batch, nil); err != nil {
		return fmt.Errorf("failed to clear snapshot %s: %w", name, err)
	}
	return nil
}

// The zero byte terminates the name within entry keys, keeping snapshots
// with a common name prefix apart.
func checkName(name string) error {
	if name == "" || strings.ContainsRune(name, 0) {
		return fmt.Errorf("%w: %q", ErrInvalidName, name)
	}
	return nil
}

func headerKey(name string) []byte {
	key := make([]byte, 0, 1+len(name))
	key = append(key, headerSpace)
	return append(key, name...)
}

func entryPrefix(name string) []byte {
	prefix := make([]byte, 0, 2+len(name))
	prefix = append(prefix, entrySpace)
	prefix = append(prefix, name...)
	return append(prefix, 0)
}

func entryKey(name string, keyBytes []byte) []byte {
	return append(entryPrefix(name), keyBytes...)
}
