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

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// decodeAllByteAtATime feeds buf a byte at a time, exercising
// resumability at every possible split point, and returns the final
// decoded value.
func decodeAllByteAtATime(t *testing.T, buf []byte) Raw {
	t.Helper()
	var st State
	cursor := 0
	for end := 1; end <= len(buf); end++ {
		var outcome Outcome
		var val Raw
		var err error
		cursor, outcome, val, err = DecodeValue(buf[:end], cursor, &st)
		require.NoError(t, err)
		if outcome == Complete {
			require.Equal(t, end, cursor)
			return val
		}
		require.Equal(t, NeedMore, outcome)
	}
	t.Fatalf("value never completed across %d bytes", len(buf))
	return Raw{}
}

func TestDecodeValue_Fixint(t *testing.T) {
	var st State
	cursor, outcome, val, err := DecodeValue([]byte{0x05}, 0, &st)
	require.NoError(t, err)
	assert.Equal(t, Complete, outcome)
	assert.Equal(t, 1, cursor)
	assert.Equal(t, KindUint, val.Kind)
	assert.Equal(t, uint64(5), val.Uint)
}

func TestDecodeValue_NegativeFixint(t *testing.T) {
	var st State
	_, outcome, val, err := DecodeValue([]byte{0xff}, 0, &st)
	require.NoError(t, err)
	assert.Equal(t, Complete, outcome)
	assert.Equal(t, KindInt, val.Kind)
	assert.Equal(t, int64(-1), val.Int)
}

func TestDecodeValue_NilFalseTrue(t *testing.T) {
	cases := []struct {
		tag  byte
		kind Kind
		b    bool
	}{
		{0xc0, KindNil, false},
		{0xc2, KindBool, false},
		{0xc3, KindBool, true},
	}
	for _, c := range cases {
		var st State
		_, outcome, val, err := DecodeValue([]byte{c.tag}, 0, &st)
		require.NoError(t, err)
		assert.Equal(t, Complete, outcome)
		assert.Equal(t, c.kind, val.Kind)
		if c.kind == KindBool {
			assert.Equal(t, c.b, val.Bool)
		}
	}
}

func TestDecodeValue_Uint64BigEndian(t *testing.T) {
	buf := []byte{0xcf, 0x00, 0x00, 0x00, 0x01, 0x00, 0x00, 0x00, 0x00}
	var st State
	_, outcome, val, err := DecodeValue(buf, 0, &st)
	require.NoError(t, err)
	assert.Equal(t, Complete, outcome)
	assert.Equal(t, KindUint, val.Kind)
	assert.Equal(t, uint64(1)<<32, val.Uint)
}

func TestDecodeValue_Int8Negative(t *testing.T) {
	buf := []byte{0xd0, 0x80} // int8 -128
	var st State
	_, outcome, val, err := DecodeValue(buf, 0, &st)
	require.NoError(t, err)
	assert.Equal(t, Complete, outcome)
	assert.Equal(t, KindInt, val.Kind)
	assert.Equal(t, int64(-128), val.Int)
}

func TestDecodeValue_Float64(t *testing.T) {
	buf := []byte{0xcb, 0x3f, 0xf0, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00} // 1.0
	var st State
	_, outcome, val, err := DecodeValue(buf, 0, &st)
	require.NoError(t, err)
	assert.Equal(t, Complete, outcome)
	assert.Equal(t, KindFloat64, val.Kind)
	assert.Equal(t, float64(1), val.Float64)
}

func TestDecodeValue_FixstrEmpty(t *testing.T) {
	var st State
	_, outcome, val, err := DecodeValue([]byte{0xa0}, 0, &st)
	require.NoError(t, err)
	assert.Equal(t, Complete, outcome)
	assert.Equal(t, KindStr, val.Kind)
	assert.Empty(t, val.Bytes)
}

func TestDecodeValue_FixstrPayload(t *testing.T) {
	buf := append([]byte{0xa3}, []byte("abc")...)
	var st State
	_, outcome, val, err := DecodeValue(buf, 0, &st)
	require.NoError(t, err)
	assert.Equal(t, Complete, outcome)
	assert.Equal(t, KindStr, val.Kind)
	assert.Equal(t, []byte("abc"), val.Bytes)
}

func TestDecodeValue_Bin8(t *testing.T) {
	buf := []byte{0xc4, 0x02, 0xde, 0xad}
	var st State
	_, outcome, val, err := DecodeValue(buf, 0, &st)
	require.NoError(t, err)
	assert.Equal(t, Complete, outcome)
	assert.Equal(t, KindBin, val.Kind)
	assert.Equal(t, []byte{0xde, 0xad}, val.Bytes)
}

func TestDecodeValue_FixarrayNested(t *testing.T) {
	// [1, [2, 3]]
	buf := []byte{0x92, 0x01, 0x92, 0x02, 0x03}
	var st State
	_, outcome, val, err := DecodeValue(buf, 0, &st)
	require.NoError(t, err)
	assert.Equal(t, Complete, outcome)
	require.Equal(t, KindArray, val.Kind)
	require.Len(t, val.Array, 2)
	assert.Equal(t, uint64(1), val.Array[0].Uint)
	require.Len(t, val.Array[1].Array, 2)
	assert.Equal(t, uint64(2), val.Array[1].Array[0].Uint)
	assert.Equal(t, uint64(3), val.Array[1].Array[1].Uint)
}

func TestDecodeValue_FixmapDuplicateKeysPreservedInRawOrder(t *testing.T) {
	// {1: "a", 1: "b"} - two pairs, both present, in wire order
	buf := []byte{0x82, 0x01, 0xa1, 'a', 0x01, 0xa1, 'b'}
	var st State
	_, outcome, val, err := DecodeValue(buf, 0, &st)
	require.NoError(t, err)
	assert.Equal(t, Complete, outcome)
	require.Equal(t, KindMap, val.Kind)
	require.Len(t, val.Pairs, 2)
	assert.Equal(t, []byte("a"), val.Pairs[0].Val.Bytes)
	assert.Equal(t, []byte("b"), val.Pairs[1].Val.Bytes)
}

func TestDecodeValue_EmptyFixmapAndFixarray(t *testing.T) {
	var st State
	_, outcome, val, err := DecodeValue([]byte{0x80}, 0, &st)
	require.NoError(t, err)
	assert.Equal(t, Complete, outcome)
	assert.Equal(t, KindMap, val.Kind)
	assert.Empty(t, val.Pairs)

	st = State{}
	_, outcome, val, err = DecodeValue([]byte{0x90}, 0, &st)
	require.NoError(t, err)
	assert.Equal(t, Complete, outcome)
	assert.Equal(t, KindArray, val.Kind)
	assert.Empty(t, val.Array)
}

func TestDecodeValue_UnrecognizedTag(t *testing.T) {
	var st State
	_, outcome, _, err := DecodeValue([]byte{0xc1}, 0, &st)
	assert.ErrorIs(t, err, ErrUnrecognizedTag)
	assert.Equal(t, ErrorOutcome, outcome)
}

func TestDecodeValue_ResumesAcrossEveryByteBoundary(t *testing.T) {
	// map16 with one string key/value pair, long enough that every field
	// (tag, 2-byte length, key length, key bytes, value length, value
	// bytes) spans a split point when fed one byte at a time.
	buf := []byte{0xde, 0x00, 0x01, 0xa5, 'h', 'e', 'l', 'l', 'o', 0xa5, 'w', 'o', 'r', 'l', 'd'}
	val := decodeAllByteAtATime(t, buf)
	require.Equal(t, KindMap, val.Kind)
	require.Len(t, val.Pairs, 1)
	assert.Equal(t, []byte("hello"), val.Pairs[0].Key.Bytes)
	assert.Equal(t, []byte("world"), val.Pairs[0].Val.Bytes)
}

func TestDecodeValue_NeedMoreLeavesStateIntactForResumption(t *testing.T) {
	buf := []byte{0xcf, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x2a}
	var st State
	cursor, outcome, _, err := DecodeValue(buf[:4], 0, &st)
	require.NoError(t, err)
	assert.Equal(t, NeedMore, outcome)
	assert.Equal(t, 4, cursor)

	cursor2, outcome2, val, err := DecodeValue(buf[4:], 0, &st)
	require.NoError(t, err)
	assert.Equal(t, Complete, outcome2)
	assert.Equal(t, 5, cursor2)
	assert.Equal(t, uint64(0x2a), val.Uint)
}

func TestSkipValue_MatchesDecodeValueCursor(t *testing.T) {
	buf := []byte{0x92, 0x01, 0x92, 0x02, 0x03, 0xc0}
	var stSkip State
	cursor, outcome, err := SkipValue(buf, 0, &stSkip)
	require.NoError(t, err)
	assert.Equal(t, Complete, outcome)
	assert.Equal(t, 5, cursor)

	var stDecode State
	cursor2, outcome2, _, err := DecodeValue(buf, 0, &stDecode)
	require.NoError(t, err)
	assert.Equal(t, Complete, outcome2)
	assert.Equal(t, cursor, cursor2)
}

func TestReadArrayHeader(t *testing.T) {
	buf := []byte{0x93, 0x01, 0x02, 0x03}
	var st State
	cursor, outcome, n, err := ReadArrayHeader(buf, 0, &st)
	require.NoError(t, err)
	assert.Equal(t, Complete, outcome)
	assert.Equal(t, 1, cursor)
	assert.Equal(t, uint32(3), n)
}

func TestReadArrayHeader_WrongKindIsInvalidPayload(t *testing.T) {
	var st State
	_, outcome, _, err := ReadArrayHeader([]byte{0x80}, 0, &st)
	assert.Equal(t, ErrorOutcome, outcome)
	assert.ErrorIs(t, err, ErrInvalidPayload)
}

func TestReadMapHeader(t *testing.T) {
	buf := []byte{0xde, 0x00, 0x02}
	var st State
	cursor, outcome, n, err := ReadMapHeader(buf, 0, &st)
	require.NoError(t, err)
	assert.Equal(t, Complete, outcome)
	assert.Equal(t, 3, cursor)
	assert.Equal(t, uint32(2), n)
}

func TestReadRaw_ResumesOverMultipleCalls(t *testing.T) {
	buf := []byte{0xde, 0xad, 0xbe, 0xef}
	var st State
	cursor, outcome, data, err := ReadRaw(buf[:2], 0, &st, 4)
	require.NoError(t, err)
	assert.Equal(t, NeedMore, outcome)
	assert.Equal(t, 2, cursor)
	assert.Nil(t, data)

	cursor2, outcome2, data2, err := ReadRaw(buf[2:], 0, &st, 4)
	require.NoError(t, err)
	assert.Equal(t, Complete, outcome2)
	assert.Equal(t, 2, cursor2)
	assert.Equal(t, buf, data2)
}
