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
	"sync"

	"github.com/Fantom-foundation/Manon/common/immutable"
	"golang.org/x/crypto/sha3"
	"golang.org/x/exp/constraints"
)

const signBit = uint64(1) << 63

// IdentityHasher maps signed integer keys to their two's complement image
// with the sign bit flipped. The numeric order of keys thus matches the
// unsigned order of the produced hash codes, which makes tries keyed by dense
// indexes iterate in index order and keeps neighbouring indexes in
// neighbouring slots.
type IdentityHasher[I constraints.Signed] struct{}

func (h IdentityHasher[I]) Hash(key *I) uint64 {
	return uint64(int64(*key)) ^ signBit
}

// IntegerHasher hashes integer keys through a 64-bit finalizer (splitmix64),
// spreading consecutive keys over the whole hash space.
type IntegerHasher[I constraints.Integer] struct{}

func (h IntegerHasher[I]) Hash(key *I) uint64 {
	x := uint64(*key)
	x ^= x >> 30
	x *= 0xbf58476d1ce4e5b9
	x ^= x >> 27
	x *= 0x94d049bb133111eb
	x ^= x >> 31
	return x
}

// StringHasher hashes string keys using the Keccak-256 function.
type StringHasher struct{}

func (h StringHasher) Hash(key *string) uint64 {
	return keccak64([]byte(*key))
}

// BytesHasher hashes immutable byte-slice keys using the Keccak-256 function.
type BytesHasher struct{}

func (h BytesHasher) Hash(key *immutable.Bytes) uint64 {
	return keccak64(key.ToBytes())
}

var keccakHasherPool = sync.Pool{New: func() any { return sha3.NewLegacyKeccak256() }}

type keccakState interface {
	Reset()
	Write(in []byte) (int, error)
	Read(out []byte) (int, error)
}

// keccak64 computes the first 8 bytes of the Keccak-256 hash of the given
// data, interpreted as a big-endian integer.
func keccak64(data []byte) uint64 {
	hasher := keccakHasherPool.Get().(keccakState)
	hasher.Reset()
	hasher.Write(data)
	var res [8]byte
	hasher.Read(res[:])
	keccakHasherPool.Put(hasher)
	return uint64(res[0])<<56 | uint64(res[1])<<48 | uint64(res[2])<<40 | uint64(res[3])<<32 |
		uint64(res[4])<<24 | uint64(res[5])<<16 | uint64(res[6])<<8 | uint64(res[7])
}
