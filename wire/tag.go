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

// Package wire holds the MessagePack tag byte constants and the small
// amount of bit-masking logic needed to classify a tag into a family.
// It mirrors the role the teacher's cbor package played for CBOR's
// major-type byte: a single place that names every wire constant so
// the decoder never hard-codes a magic byte.
package wire

// Fixed single-byte families, identified by masking the tag.
const (
	PositiveFixintMax uint8 = 0x7f
	NegativeFixintMin uint8 = 0xe0

	FixmapMin  uint8 = 0x80
	FixmapMax  uint8 = 0x8f
	FixmapMask uint8 = 0x0f

	FixarrayMin  uint8 = 0x90
	FixarrayMax  uint8 = 0x9f
	FixarrayMask uint8 = 0x0f

	FixstrMin  uint8 = 0xa0
	FixstrMax  uint8 = 0xbf
	FixstrMask uint8 = 0x1f
)

// Explicit tag bytes.
const (
	Nil     uint8 = 0xc0
	Unused  uint8 = 0xc1 // reserved, never valid
	False   uint8 = 0xc2
	True    uint8 = 0xc3
	Bin8    uint8 = 0xc4
	Bin16   uint8 = 0xc5
	Bin32   uint8 = 0xc6
	Ext8    uint8 = 0xc7
	Ext16   uint8 = 0xc8
	Ext32   uint8 = 0xc9
	Float32 uint8 = 0xca
	Float64 uint8 = 0xcb
	Uint8   uint8 = 0xcc
	Uint16  uint8 = 0xcd
	Uint32  uint8 = 0xce
	Uint64  uint8 = 0xcf
	Int8    uint8 = 0xd0
	Int16   uint8 = 0xd1
	Int32   uint8 = 0xd2
	Int64   uint8 = 0xd3
	FixExt1 uint8 = 0xd4
	FixExt2 uint8 = 0xd5
	FixExt4 uint8 = 0xd6
	FixExt8 uint8 = 0xd7
	FixExt16 uint8 = 0xd8
	Str8    uint8 = 0xd9
	Str16   uint8 = 0xda
	Str32   uint8 = 0xdb
	Array16 uint8 = 0xdc
	Array32 uint8 = 0xdd
	Map16   uint8 = 0xde
	Map32   uint8 = 0xdf
)

// IsPositiveFixint reports whether tag encodes a positive fixint (0x00..0x7f).
func IsPositiveFixint(tag uint8) bool {
	return tag <= PositiveFixintMax
}

// IsNegativeFixint reports whether tag encodes a negative fixint (0xe0..0xff).
func IsNegativeFixint(tag uint8) bool {
	return tag >= NegativeFixintMin
}

// IsFixmap reports whether tag encodes a fixmap (0x80..0x8f).
func IsFixmap(tag uint8) bool {
	return tag >= FixmapMin && tag <= FixmapMax
}

// IsFixarray reports whether tag encodes a fixarray (0x90..0x9f).
func IsFixarray(tag uint8) bool {
	return tag >= FixarrayMin && tag <= FixarrayMax
}

// IsFixstr reports whether tag encodes a fixstr (0xa0..0xbf).
func IsFixstr(tag uint8) bool {
	return tag >= FixstrMin && tag <= FixstrMax
}

// NegativeFixintValue returns the signed value of a negative fixint tag.
func NegativeFixintValue(tag uint8) int64 {
	return int64(tag) - 0x100
}
