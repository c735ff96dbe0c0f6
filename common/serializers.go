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
	"encoding/binary"

	"github.com/Fantom-foundation/Manon/common/immutable"
)

// Serializer converts values of a type to and from their binary form.
type Serializer[T any] interface {
	// ToBytes serializes the value to a byte slice.
	ToBytes(T) []byte

	// FromBytes deserializes a value from the given byte slice.
	FromBytes([]byte) T
}

// Int64Serializer is a Serializer of signed 64-bit integers.
type Int64Serializer struct{}

func (a Int64Serializer) ToBytes(value int64) []byte {
	return binary.BigEndian.AppendUint64([]byte{}, uint64(value))
}
func (a Int64Serializer) FromBytes(bytes []byte) int64 {
	return int64(binary.BigEndian.Uint64(bytes))
}

// Uint64Serializer is a Serializer of unsigned 64-bit integers.
type Uint64Serializer struct{}

func (a Uint64Serializer) ToBytes(value uint64) []byte {
	return binary.BigEndian.AppendUint64([]byte{}, value)
}
func (a Uint64Serializer) FromBytes(bytes []byte) uint64 {
	return binary.BigEndian.Uint64(bytes)
}

// StringSerializer is a Serializer of strings.
type StringSerializer struct{}

func (a StringSerializer) ToBytes(value string) []byte {
	return []byte(value)
}
func (a StringSerializer) FromBytes(bytes []byte) string {
	return string(bytes)
}

// BytesSerializer is a Serializer of immutable byte slices.
type BytesSerializer struct{}

func (a BytesSerializer) ToBytes(value immutable.Bytes) []byte {
	return value.ToBytes()
}
func (a BytesSerializer) FromBytes(bytes []byte) immutable.Bytes {
	return immutable.NewBytes(bytes)
}
