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

// Package decode is the resumable MessagePack format decoder. It is a
// pure function over (bytes, cursor, state): it owns no buffer of its
// own and performs no I/O. This keeps suspension explicit at exactly
// one boundary - a Step call returning NeedMore - in the style the
// teacher's hand-rolled protocol state machine used in preference to
// a generator/coroutine-based parser.
package decode

import (
	"encoding/binary"
	"fmt"
	"math"

	"github.com/streampack/msgpack/wire"
)

// Outcome is the trichotomy every Step call resolves to.
type Outcome int

const (
	NeedMore Outcome = iota
	Complete
	ErrorOutcome
)

// header names the container kind a header-only read expects at the
// outermost tag; KindNil is the sentinel meaning "no restriction",
// used by DecodeValue and SkipValue.
type header = Kind

const noHeader header = KindNil

// DecodeValue consumes the next complete MessagePack value from
// buf[cursor:], resuming from st. On Complete, st's container stack is
// empty again and val holds the decoded tree.
func DecodeValue(buf []byte, cursor int, st *State) (int, Outcome, Raw, error) {
	return step(buf, cursor, st, noHeader)
}

// SkipValue consumes and discards the next complete value. It shares
// the DecodeValue machinery rather than duplicating traversal, trading
// a throwaway allocation for the certainty that skip and decode never
// drift out of sync on tag coverage.
func SkipValue(buf []byte, cursor int, st *State) (int, Outcome, error) {
	newCursor, outcome, _, err := step(buf, cursor, st, noHeader)
	return newCursor, outcome, err
}

// ReadArrayHeader consumes only the header of the next value, which
// must be an array, and returns its declared length.
func ReadArrayHeader(buf []byte, cursor int, st *State) (int, Outcome, uint32, error) {
	newCursor, outcome, val, err := step(buf, cursor, st, KindArray)
	return newCursor, outcome, uint32(val.Uint), err
}

// ReadMapHeader is the map-header-only symmetric counterpart of
// ReadArrayHeader. The caller is responsible for issuing 2N subsequent
// DecodeValue calls for the key/value pairs.
func ReadMapHeader(buf []byte, cursor int, st *State) (int, Outcome, uint32, error) {
	newCursor, outcome, val, err := step(buf, cursor, st, KindMap)
	return newCursor, outcome, uint32(val.Uint), err
}

// ReadRaw consumes exactly n unframed bytes without interpreting a tag
// byte, for callers that already know a length out-of-band. It reuses
// State's collector field directly; callers must not interleave a
// ReadRaw resumption with a DecodeValue resumption on the same State.
func ReadRaw(buf []byte, cursor int, st *State, n int) (int, Outcome, []byte, error) {
	if !st.collector.active {
		st.collector.start(0, KindBin, n, thenPayload)
	}
	newCursor, full := st.collector.fill(buf, cursor)
	if !full {
		return newCursor, NeedMore, nil, nil
	}
	data := st.collector.buf
	st.collector.reset()
	return newCursor, Complete, data, nil
}

// step is the shared engine behind every entry point. headerOnly
// restricts the very first tag of this call to the named container
// kind (or noHeader for no restriction); it never applies to nested
// tags, since only the outermost value of a call can be header-only.
func step(buf []byte, cursor int, st *State, headerOnly header) (int, Outcome, Raw, error) {
	for {
		if st.collector.active {
			var full bool
			cursor, full = st.collector.fill(buf, cursor)
			if !full {
				return cursor, NeedMore, Raw{}, nil
			}
			done, result, err := resolveCollector(st, headerOnly)
			if err != nil {
				return cursor, ErrorOutcome, Raw{}, err
			}
			if done {
				return cursor, Complete, result, nil
			}
			continue
		}

		if cursor >= len(buf) {
			return cursor, NeedMore, Raw{}, nil
		}
		tag := buf[cursor]
		cursor++

		if headerOnly != noHeader && len(st.stack) == 0 {
			if err := checkHeaderExpectation(tag, headerOnly); err != nil {
				return cursor, ErrorOutcome, Raw{}, err
			}
		}

		switch {
		case wire.IsPositiveFixint(tag):
			done, result, err := attach(st, Raw{Kind: KindUint, Uint: uint64(tag)})
			if err != nil {
				return cursor, ErrorOutcome, Raw{}, err
			}
			if done {
				return cursor, Complete, result, nil
			}
			continue

		case wire.IsNegativeFixint(tag):
			done, result, err := attach(st, Raw{Kind: KindInt, Int: wire.NegativeFixintValue(tag)})
			if err != nil {
				return cursor, ErrorOutcome, Raw{}, err
			}
			if done {
				return cursor, Complete, result, nil
			}
			continue

		case wire.IsFixmap(tag):
			n := uint32(tag & wire.FixmapMask)
			done, result, err := pushOrComplete(st, frameMap, n, headerOnly)
			if err != nil {
				return cursor, ErrorOutcome, Raw{}, err
			}
			if done {
				return cursor, Complete, result, nil
			}
			continue

		case wire.IsFixarray(tag):
			n := uint32(tag & wire.FixarrayMask)
			done, result, err := pushOrComplete(st, frameArray, n, headerOnly)
			if err != nil {
				return cursor, ErrorOutcome, Raw{}, err
			}
			if done {
				return cursor, Complete, result, nil
			}
			continue

		case wire.IsFixstr(tag):
			n := int(tag & wire.FixstrMask)
			if n == 0 {
				done, result, err := attach(st, Raw{Kind: KindStr, Bytes: []byte{}})
				if err != nil {
					return cursor, ErrorOutcome, Raw{}, err
				}
				if done {
					return cursor, Complete, result, nil
				}
				continue
			}
			st.collector.start(tag, KindStr, n, thenPayload)
			continue

		case tag == wire.Nil:
			done, result, err := attach(st, Raw{Kind: KindNil})
			if err != nil {
				return cursor, ErrorOutcome, Raw{}, err
			}
			if done {
				return cursor, Complete, result, nil
			}
			continue

		case tag == wire.False:
			done, result, err := attach(st, Raw{Kind: KindBool, Bool: false})
			if err != nil {
				return cursor, ErrorOutcome, Raw{}, err
			}
			if done {
				return cursor, Complete, result, nil
			}
			continue

		case tag == wire.True:
			done, result, err := attach(st, Raw{Kind: KindBool, Bool: true})
			if err != nil {
				return cursor, ErrorOutcome, Raw{}, err
			}
			if done {
				return cursor, Complete, result, nil
			}
			continue

		case tag == wire.Float32:
			st.collector.start(tag, KindFloat32, 4, thenFixedScalar)
			continue
		case tag == wire.Float64:
			st.collector.start(tag, KindFloat64, 8, thenFixedScalar)
			continue
		case tag == wire.Uint8:
			st.collector.start(tag, KindUint, 1, thenFixedScalar)
			continue
		case tag == wire.Uint16:
			st.collector.start(tag, KindUint, 2, thenFixedScalar)
			continue
		case tag == wire.Uint32:
			st.collector.start(tag, KindUint, 4, thenFixedScalar)
			continue
		case tag == wire.Uint64:
			st.collector.start(tag, KindUint, 8, thenFixedScalar)
			continue
		case tag == wire.Int8:
			st.collector.start(tag, KindInt, 1, thenFixedScalar)
			continue
		case tag == wire.Int16:
			st.collector.start(tag, KindInt, 2, thenFixedScalar)
			continue
		case tag == wire.Int32:
			st.collector.start(tag, KindInt, 4, thenFixedScalar)
			continue
		case tag == wire.Int64:
			st.collector.start(tag, KindInt, 8, thenFixedScalar)
			continue

		case tag == wire.Bin8:
			st.collector.start(tag, KindBin, 1, thenLengthPrefix)
			continue
		case tag == wire.Bin16:
			st.collector.start(tag, KindBin, 2, thenLengthPrefix)
			continue
		case tag == wire.Bin32:
			st.collector.start(tag, KindBin, 4, thenLengthPrefix)
			continue

		case tag == wire.Str8:
			st.collector.start(tag, KindStr, 1, thenLengthPrefix)
			continue
		case tag == wire.Str16:
			st.collector.start(tag, KindStr, 2, thenLengthPrefix)
			continue
		case tag == wire.Str32:
			st.collector.start(tag, KindStr, 4, thenLengthPrefix)
			continue

		case tag == wire.Array16:
			st.collector.start(tag, KindArray, 2, thenLengthPrefix)
			continue
		case tag == wire.Array32:
			st.collector.start(tag, KindArray, 4, thenLengthPrefix)
			continue
		case tag == wire.Map16:
			st.collector.start(tag, KindMap, 2, thenLengthPrefix)
			continue
		case tag == wire.Map32:
			st.collector.start(tag, KindMap, 4, thenLengthPrefix)
			continue

		default:
			return cursor, ErrorOutcome, Raw{}, fmt.Errorf("%w: 0x%02x", ErrUnrecognizedTag, tag)
		}
	}
}

// checkHeaderExpectation enforces that a header-only read's outermost
// tag is a container tag of the requested kind.
func checkHeaderExpectation(tag uint8, want header) error {
	isArrayTag := wire.IsFixarray(tag) || tag == wire.Array16 || tag == wire.Array32
	isMapTag := wire.IsFixmap(tag) || tag == wire.Map16 || tag == wire.Map32
	switch want {
	case KindArray:
		if !isArrayTag {
			return fmt.Errorf("%w: expected array header, got tag 0x%02x", ErrInvalidPayload, tag)
		}
	case KindMap:
		if !isMapTag {
			return fmt.Errorf("%w: expected map header, got tag 0x%02x", ErrInvalidPayload, tag)
		}
	}
	return nil
}

// resolveCollector interprets a just-filled collector and either
// produces a leaf to attach, arms a follow-up collector (length prefix
// found, payload still to come), or completes a header-only read.
func resolveCollector(st *State, headerOnly header) (done bool, result Raw, err error) {
	c := &st.collector
	switch c.then {
	case thenFixedScalar:
		leaf, err := decodeFixedScalar(c.kind, c.buf)
		c.reset()
		if err != nil {
			return false, Raw{}, err
		}
		return attach(st, leaf)

	case thenPayload:
		data := make([]byte, len(c.buf))
		copy(data, c.buf)
		leafKind := c.kind
		c.reset()
		return attach(st, Raw{Kind: leafKind, Bytes: data})

	case thenLengthPrefix:
		length := decodeLengthBE(c.buf)
		targetKind := c.kind
		c.reset()
		switch targetKind {
		case KindBin, KindStr:
			if length == 0 {
				return attach(st, Raw{Kind: targetKind, Bytes: []byte{}})
			}
			c.start(0, targetKind, int(length), thenPayload)
			return false, Raw{}, nil
		case KindArray:
			if headerOnly == KindArray && len(st.stack) == 0 {
				return true, Raw{Kind: KindUint, Uint: uint64(length)}, nil
			}
			return pushOrComplete(st, frameArray, length, noHeader)
		case KindMap:
			if headerOnly == KindMap && len(st.stack) == 0 {
				return true, Raw{Kind: KindUint, Uint: uint64(length)}, nil
			}
			return pushOrComplete(st, frameMap, length, noHeader)
		}
	}
	return false, Raw{}, fmt.Errorf("%w: unreachable collector state", ErrInvalidPayload)
}

// pushOrComplete either returns the declared length directly (when
// headerOnly matches the container kind being opened at depth 0), or
// pushes a new frame (closing it immediately, cascading, if empty).
func pushOrComplete(st *State, kind frameKind, n uint32, headerOnly header) (bool, Raw, error) {
	if len(st.stack) == 0 {
		if (headerOnly == KindArray && kind == frameArray) || (headerOnly == KindMap && kind == frameMap) {
			return true, Raw{Kind: KindUint, Uint: uint64(n)}, nil
		}
	}
	if n == 0 {
		if kind == frameArray {
			return attach(st, Raw{Kind: KindArray, Array: []Raw{}})
		}
		return attach(st, Raw{Kind: KindMap, Pairs: []Pair{}})
	}
	st.pushFrame(frame{kind: kind, declared: n})
	return false, Raw{}, nil
}

// attach adds a completed leaf (which may itself be a just-closed
// container) to the top frame, cascading closed containers upward, or
// reports it as the top-level result once the stack empties.
func attach(st *State, leaf Raw) (bool, Raw, error) {
	if len(st.stack) == 0 {
		return true, leaf, nil
	}
	f := st.topFrame()
	switch f.kind {
	case frameArray:
		f.elements = append(f.elements, leaf)
		if uint32(len(f.elements)) < f.declared {
			return false, Raw{}, nil
		}
		completed := st.popFrame()
		return attach(st, Raw{Kind: KindArray, Array: completed.elements})
	case frameMap:
		if f.pendingKey == nil {
			keyCopy := leaf
			f.pendingKey = &keyCopy
			return false, Raw{}, nil
		}
		pair := Pair{Key: *f.pendingKey, Val: leaf}
		f.pendingKey = nil
		f.pairs = append(f.pairs, pair)
		if uint32(len(f.pairs)) < f.declared {
			return false, Raw{}, nil
		}
		completed := st.popFrame()
		return attach(st, Raw{Kind: KindMap, Pairs: completed.pairs})
	}
	return false, Raw{}, fmt.Errorf("%w: corrupt frame", ErrInvalidPayload)
}

func decodeLengthBE(buf []byte) uint32 {
	switch len(buf) {
	case 1:
		return uint32(buf[0])
	case 2:
		return uint32(binary.BigEndian.Uint16(buf))
	case 4:
		return binary.BigEndian.Uint32(buf)
	default:
		return 0
	}
}

func decodeFixedScalar(kind Kind, buf []byte) (Raw, error) {
	switch kind {
	case KindFloat32:
		return Raw{Kind: KindFloat32, Float32: math.Float32frombits(binary.BigEndian.Uint32(buf))}, nil
	case KindFloat64:
		return Raw{Kind: KindFloat64, Float64: math.Float64frombits(binary.BigEndian.Uint64(buf))}, nil
	case KindUint:
		switch len(buf) {
		case 1:
			return Raw{Kind: KindUint, Uint: uint64(buf[0])}, nil
		case 2:
			return Raw{Kind: KindUint, Uint: uint64(binary.BigEndian.Uint16(buf))}, nil
		case 4:
			return Raw{Kind: KindUint, Uint: uint64(binary.BigEndian.Uint32(buf))}, nil
		case 8:
			return Raw{Kind: KindUint, Uint: binary.BigEndian.Uint64(buf)}, nil
		}
	case KindInt:
		switch len(buf) {
		case 1:
			return Raw{Kind: KindInt, Int: int64(int8(buf[0]))}, nil
		case 2:
			return Raw{Kind: KindInt, Int: int64(int16(binary.BigEndian.Uint16(buf)))}, nil
		case 4:
			return Raw{Kind: KindInt, Int: int64(int32(binary.BigEndian.Uint32(buf)))}, nil
		case 8:
			return Raw{Kind: KindInt, Int: int64(binary.BigEndian.Uint64(buf))}, nil
		}
	}
	return Raw{}, fmt.Errorf("%w: unrecognized fixed scalar width %d for kind %d", ErrInvalidPayload, len(buf), kind)
}
