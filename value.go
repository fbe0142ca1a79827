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

package msgpack

import (
	"strconv"
	"strings"
)

// Kind identifies which field of a Value holds its payload.
type Kind int

const (
	KindNil Kind = iota
	KindBool
	KindInt
	KindUint
	KindFloat32
	KindFloat64
	KindBytes
	KindText
	KindArray
	KindMap
)

// Pair is one key-value entry of a decoded map, in the order the
// builder emitted it: wire order when an ObjectPairsHook ran, or
// first-insertion order with later values winning otherwise.
type Pair struct {
	Key Value
	Val Value
}

// Value is a decoded MessagePack value. Exactly one field beyond Kind
// and Tuple is meaningful for any given Kind, except that a hook may
// have replaced an Array or Map's natural shape with anything at all -
// callers that install hooks are expected to know what their hooks
// return.
type Value struct {
	Kind    Kind
	Bool    bool
	Int     int64
	Uint    uint64
	Float32 float32
	Float64 float64
	Bytes   []byte
	Text    string
	Array   []Value
	// Tuple marks an Array decoded under WithUseList(false). Go has no
	// immutable slice type, so this is advisory only - a label carried
	// forward from the use_list directive rather than an enforced
	// restriction on the backing slice.
	Tuple bool
	Pairs []Pair
}

// Lookup scans Pairs for a key equal to key, by value rather than by
// Go identity (Value is not itself comparable since it may hold slices).
// It is only meaningful when Kind is KindMap.
func (v Value) Lookup(key Value) (Value, bool) {
	fp := fingerprint(key)
	for _, p := range v.Pairs {
		if fingerprint(p.Key) == fp {
			return p.Val, true
		}
	}
	return Value{}, false
}

// fingerprint renders a Value to a string unique to its content,
// standing in for Go's lack of a generic comparison over values that
// may contain slices - the same problem the teacher's cbor package
// solved by keeping a string copy of a value's encoded bytes alongside
// it purely so the type stays usable as a map key.
func fingerprint(v Value) string {
	var b strings.Builder
	writeFingerprint(&b, v)
	return b.String()
}

func writeFingerprint(b *strings.Builder, v Value) {
	switch v.Kind {
	case KindNil:
		b.WriteString("n")
	case KindBool:
		if v.Bool {
			b.WriteString("bt")
		} else {
			b.WriteString("bf")
		}
	case KindInt:
		b.WriteString("i")
		b.WriteString(strconv.FormatInt(v.Int, 10))
	case KindUint:
		b.WriteString("u")
		b.WriteString(strconv.FormatUint(v.Uint, 10))
	case KindFloat32:
		b.WriteString("f")
		b.WriteString(strconv.FormatFloat(float64(v.Float32), 'b', -1, 32))
	case KindFloat64:
		b.WriteString("d")
		b.WriteString(strconv.FormatFloat(v.Float64, 'b', -1, 64))
	case KindBytes:
		b.WriteString("y")
		b.WriteString(strconv.Itoa(len(v.Bytes)))
		b.WriteString(":")
		b.Write(v.Bytes)
	case KindText:
		b.WriteString("t")
		b.WriteString(strconv.Itoa(len(v.Text)))
		b.WriteString(":")
		b.WriteString(v.Text)
	case KindArray:
		b.WriteString("a[")
		for _, e := range v.Array {
			writeFingerprint(b, e)
			b.WriteString(",")
		}
		b.WriteString("]")
	case KindMap:
		b.WriteString("m{")
		for _, p := range v.Pairs {
			writeFingerprint(b, p.Key)
			b.WriteString("=")
			writeFingerprint(b, p.Val)
			b.WriteString(",")
		}
		b.WriteString("}")
	}
}
