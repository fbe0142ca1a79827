// Copyright 2026 Streampack Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package decode

// Kind identifies the wire-level shape a Raw value was decoded from.
// It carries no hook or use_list policy - that belongs to the caller's
// value builder, which walks the finished tree.
type Kind int

const (
	KindNil Kind = iota
	KindBool
	KindInt
	KindUint
	KindFloat32
	KindFloat64
	KindBin
	KindStr
	KindArray
	KindMap
)

// Pair is one key-value entry of a decoded map, preserved in wire order.
type Pair struct {
	Key Raw
	Val Raw
}

// Raw is the neutral value tree the format decoder builds. It has no
// opinion on use_list, hooks, or text decoding - those are applied by
// the caller in a single post-order walk once a value is Complete, so
// that hook invocation order matches the post-order contract in the
// spec regardless of how many Step calls it took to arrive there.
type Raw struct {
	Kind    Kind
	Bool    bool
	Int     int64
	Uint    uint64
	Float32 float32
	Float64 float64
	Bytes   []byte
	Array   []Raw
	Pairs   []Pair
}
