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

package textenc

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecode_EmptyNameIsUTF8(t *testing.T) {
	s, err := Decode([]byte("héllo"), "", Strict)
	require.NoError(t, err)
	assert.Equal(t, "héllo", s)
}

func TestDecode_UTF8CaseInsensitiveName(t *testing.T) {
	s, err := Decode([]byte("abc"), "UTF-8", Strict)
	require.NoError(t, err)
	assert.Equal(t, "abc", s)
}

func TestDecode_InvalidUTF8StrictFails(t *testing.T) {
	_, err := Decode([]byte{0xff, 0xfe}, "utf-8", Strict)
	assert.Error(t, err)
}

func TestDecode_InvalidUTF8IgnoreDropsBadBytes(t *testing.T) {
	raw := append([]byte("ab"), 0xff)
	raw = append(raw, []byte("cd")...)
	s, err := Decode(raw, "utf-8", Ignore)
	require.NoError(t, err)
	assert.Equal(t, "abcd", s)
}

func TestDecode_InvalidUTF8ReplacePolicy(t *testing.T) {
	raw := append([]byte("ab"), 0xff)
	s, err := Decode(raw, "utf-8", Replace)
	require.NoError(t, err)
	assert.Contains(t, s, "ab")
	assert.NotEqual(t, "ab", s)
}

func TestDecode_UnknownEncodingName(t *testing.T) {
	_, err := Decode([]byte("abc"), "not-a-real-encoding", Strict)
	assert.Error(t, err)
}

func TestDecode_NamedEncoding(t *testing.T) {
	// "café" in ISO-8859-1: the trailing e-acute is a single byte 0xe9.
	raw := []byte{'c', 'a', 'f', 0xe9}
	s, err := Decode(raw, "ISO-8859-1", Strict)
	require.NoError(t, err)
	assert.Equal(t, "café", s)
}
