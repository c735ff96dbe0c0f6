// Copyright (c) 2024 Fantom Foundation
//
// Use of this software is governed by the Business Source License included
// in the LICENSE file and at fantom.foundation/bsl11.
//
// Change Date: 2028-4-16
//
// On the date above, in accordance with the Business Source License, use of
// this software will be governed by the GNU Lesser General Public License v3.

package fuzzing

import (
	"testing"
)

// Fuzz runs a fuzzing campaign. The campaign provides seed sequences of
// operations, which are serialized and registered with the fuzzer. Each
// fuzzing loop deserializes the (possibly mutated) raw data back into
// operations and applies them to a fresh context created by the campaign.
//
//	func FuzzMyStruct(f *testing.F) {
//	   fuzzing.Fuzz[myContext](f, &myCampaign{})
//	}
func Fuzz[C any](f TestingF, campaign Campaign[C]) {
	for _, sequence := range campaign.Init() {
		raw := make([]byte, 0, len(sequence))
		for _, op := range sequence {
			raw = append(raw, op.Serialize()...)
		}
		f.Add(raw)
	}
	f.Fuzz(func(t *testing.T, rawData []byte) {
		context := campaign.CreateContext(t)
		for _, op := range campaign.Deserialize(rawData) {
			op.Apply(t, context)
		}
		campaign.Cleanup(t, context)
	})
}

// TestingF is an interface covering the methods of testing.F used by this
// framework. It allows for mocking the fuzzer in tests of the framework
// itself.
type TestingF interface {
	// Add adds seed values to the fuzzing corpus.
	Add(args ...any)
	// Fuzz runs the fuzzing loop with the given target function.
	Fuzz(ff any)
}

// TestingT is an interface covering the methods of testing.T used by fuzzing
// campaigns and their operations.
type TestingT interface {
	Errorf(format string, args ...any)
	Fatalf(format string, args ...any)
	TempDir() string
}

// Campaign drives one fuzzing scenario over a context C, which carries the
// system under test (and typically a shadow implementation to compare
// against) through one fuzzing loop.
type Campaign[C any] interface {
	// Init provides seed operation sequences to initialize the fuzzing
	// corpus with.
	Init() []OperationSequence[C]
	// CreateContext creates the context of one fuzzing loop, i.e. the
	// tested instances themselves.
	CreateContext(t TestingT) *C
	// Deserialize converts raw fuzzed data into a sequence of operations
	// to apply.
	Deserialize(rawData []byte) []Operation[C]
	// Cleanup releases resources at the end of one fuzzing loop.
	Cleanup(t TestingT, context *C)
}

// Operation is a single action applied to the campaign context. It knows how
// to serialize itself into the fuzzing corpus format.
type Operation[C any] interface {
	// Serialize converts the operation, including its payload, to bytes.
	Serialize() []byte
	// Apply executes the operation on the given context.
	Apply(t TestingT, context *C)
}

// OperationSequence is a chain of operations forming one seed of the fuzzing
// corpus.
type OperationSequence[C any] []Operation[C]

// Serializable is a payload that can serialize itself for the corpus.
type Serializable interface {
	Serialize() []byte
}

// EmptyPayload is the payload of operations carrying no data.
type EmptyPayload struct{}

func (EmptyPayload) Serialize() []byte { return nil }

// NewOp creates an operation with the given opcode and payload, applied via
// the given function.
func NewOp[T ~byte, D Serializable, C any](opType T, data D, apply func(data D, t TestingT, context *C)) Operation[C] {
	return &op[T, D, C]{opType, data, apply}
}

type op[T ~byte, D Serializable, C any] struct {
	opType T
	data   D
	apply  func(data D, t TestingT, context *C)
}

func (o *op[T, D, C]) Serialize() []byte {
	return append([]byte{byte(o.opType)}, o.data.Serialize()...)
}

func (o *op[T, D, C]) Apply(t TestingT, context *C) {
	o.apply(o.data, t, context)
}

// OpsFactoryRegistry maps opcodes to factories creating and deserializing
// their operations. It allows campaigns to define the corpus format
// declaratively: each opcode registers a serializer, a deserializer, and an
// apply function once, and the registry handles the conversion between
// operation streams and raw bytes.
type OpsFactoryRegistry[T ~byte, C any] map[T]opFactory[T, C]

type opFactory[T ~byte, C any] struct {
	create func(data any) Operation[C]
	read   func(raw []byte) (Operation[C], []byte)
}

// NewRegistry creates an empty operation registry.
func NewRegistry[T ~byte, C any]() OpsFactoryRegistry[T, C] {
	return OpsFactoryRegistry[T, C]{}
}

// RegisterDataOp registers an opcode whose operations carry a payload of
// type D. The serialise and deserialise functions define the corpus format
// of the payload; deserialise consumes a prefix of the raw data and returns
// the remainder.
func RegisterDataOp[T ~byte, C any, D any](
	registry OpsFactoryRegistry[T, C],
	opType T,
	serialise func(data D) []byte,
	deserialise func(raw []byte) (D, []byte),
	apply func(opType T, data D, t TestingT, context *C),
) {
	registry[opType] = opFactory[T, C]{
		create: func(data any) Operation[C] {
			return &dataOp[T, D, C]{opType, data.(D), serialise, apply}
		},
		read: func(raw []byte) (Operation[C], []byte) {
			data, rest := deserialise(raw)
			return &dataOp[T, D, C]{opType, data, serialise, apply}, rest
		},
	}
}

// RegisterNoDataOp registers an opcode whose operations carry no payload.
func RegisterNoDataOp[T ~byte, C any](
	registry OpsFactoryRegistry[T, C],
	opType T,
	apply func(opType T, t TestingT, context *C),
) {
	registry[opType] = opFactory[T, C]{
		create: func(any) Operation[C] {
			return &noDataOp[T, C]{opType, apply}
		},
		read: func(raw []byte) (Operation[C], []byte) {
			return &noDataOp[T, C]{opType, apply}, raw
		},
	}
}

// CreateDataOp creates an operation of a registered opcode with the given
// payload. The payload type must match the one the opcode was registered
// with.
func (r OpsFactoryRegistry[T, C]) CreateDataOp(opType T, data any) Operation[C] {
	return r[opType].create(data)
}

// CreateNoDataOp creates an operation of a registered payload-free opcode.
func (r OpsFactoryRegistry[T, C]) CreateNoDataOp(opType T) Operation[C] {
	return r[opType].create(nil)
}

// ReadNextOp deserializes one operation from the head of the raw data and
// returns its opcode, the operation, and the remaining data. Unregistered
// opcodes are skipped, returning a nil operation.
func (r OpsFactoryRegistry[T, C]) ReadNextOp(raw []byte) (T, Operation[C], []byte) {
	opType := T(raw[0])
	factory, exists := r[opType]
	if !exists {
		return opType, nil, raw[1:]
	}
	op, rest := factory.read(raw[1:])
	return opType, op, rest
}

// ReadAllOps deserializes the complete raw data into a sequence of
// operations, dropping unregistered opcodes.
func (r OpsFactoryRegistry[T, C]) ReadAllOps(raw []byte) []Operation[C] {
	ops := make([]Operation[C], 0, len(raw))
	for len(raw) > 0 {
		var op Operation[C]
		_, op, raw = r.ReadNextOp(raw)
		if op != nil {
			ops = append(ops, op)
		}
	}
	return ops
}

type dataOp[T ~byte, D any, C any] struct {
	opType    T
	data      D
	serialise func(D) []byte
	apply     func(T, D, TestingT, *C)
}

func (o *dataOp[T, D, C]) Serialize() []byte {
	return append([]byte{byte(o.opType)}, o.serialise(o.data)...)
}

func (o *dataOp[T, D, C]) Apply(t TestingT, context *C) {
	o.apply(o.opType, o.data, t, context)
}

type noDataOp[T ~byte, C any] struct {
	opType T
	apply  func(T, TestingT, *C)
}

func (o *noDataOp[T, C]) Serialize() []byte {
	return []byte{byte(o.opType)}
}

func (o *noDataOp[T, C]) Apply(t TestingT, context *C) {
	o.apply(o.opType, t, context)
}
