// Copyright (c) 2024 Fantom Foundation
//
// Use of this software is governed by the Business Source License included
// in the LICENSE file and at fantom.foundation/bsl11.
//
// Change Date: 2028-4-16
//
// On the date above, in accordance with the Business Source License, use of
// this software will be governed by the GNU Lesser General Public License v3.

package common

import (
	"github.com/syndtr/goleveldb/leveldb"
	"github.com/syndtr/goleveldb/leveldb/iterator"
	"github.com/syndtr/goleveldb/leveldb/opt"
	"github.com/syndtr/goleveldb/leveldb/util"
)

// LevelDB covers the key/value operations shared by plain and transactional
// LevelDB instances, allowing components to run on either transparently. It
// is the persistence seam of this module: storage components program against
// it, tests substitute it.
type LevelDB interface {

	// Get returns the value of the given key, or leveldb.ErrNotFound. The
	// returned slice is an own copy and safe to modify.
	Get(key []byte, ro *opt.ReadOptions) (value []byte, err error)

	// Has returns whether the given key is present.
	Has(key []byte, ro *opt.ReadOptions) (bool, error)

	// NewIterator returns an iterator over the latest snapshot of the
	// instance, restricted to the given key range. The iterator must be
	// released after use.
	NewIterator(slice *util.Range, ro *opt.ReadOptions) iterator.Iterator

	// Put sets the value of the given key, overwriting any previous one.
	Put(key, value []byte, wo *opt.WriteOptions) error

	// Delete removes the value of the given key.
	Delete(key []byte, wo *opt.WriteOptions) error

	// Write applies the records of the given batch atomically.
	Write(batch *leveldb.Batch, wo *opt.WriteOptions) error
}
