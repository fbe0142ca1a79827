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

// Package textenc realizes the decoder's string_encoding/decoding_errors
// directive: decoding a str-family payload's raw bytes to text under a
// named encoding, with a policy for invalid byte sequences. It is built
// on golang.org/x/text/encoding, the ecosystem's named-encoding registry
// in place of the standard library's fixed set of encoding/* packages.
package textenc

import (
	"strings"
	"unicode/utf8"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/ianaindex"
)

// ErrorPolicy names how invalid bytes under the configured encoding
// are handled, mirroring Python's codecs "errors" argument.
type ErrorPolicy string

const (
	// Strict fails the decode on the first invalid byte sequence.
	Strict ErrorPolicy = "strict"
	// Ignore drops invalid byte sequences from the output.
	Ignore ErrorPolicy = "ignore"
	// Replace substitutes the Unicode replacement character for
	// invalid byte sequences.
	Replace ErrorPolicy = "replace"
)

// Decode converts raw bytes to text under the named encoding and
// policy. An empty name is treated as "utf-8".
func Decode(raw []byte, name string, policy ErrorPolicy) (string, error) {
	if name == "" || strings.EqualFold(name, "utf-8") || strings.EqualFold(name, "utf8") {
		return decodeUTF8(raw, policy)
	}
	enc, err := ianaindex.IANA.Encoding(name)
	if err != nil {
		return "", err
	}
	if enc == nil {
		return "", &unknownEncodingError{name: name}
	}
	return decodeWith(enc, raw, policy)
}

func decodeUTF8(raw []byte, policy ErrorPolicy) (string, error) {
	if utf8.Valid(raw) {
		return string(raw), nil
	}
	switch policy {
	case Strict, "":
		return "", errInvalidUTF8(raw)
	case Ignore:
		return stripInvalidUTF8(raw), nil
	case Replace:
		return strings.ToValidUTF8(string(raw), string(utf8.RuneError)), nil
	default:
		return "", errInvalidUTF8(raw)
	}
}

func decodeWith(enc encoding.Encoding, raw []byte, policy ErrorPolicy) (string, error) {
	dec := enc.NewDecoder()
	out, err := dec.Bytes(raw)
	if err == nil {
		s := string(out)
		if policy == Ignore {
			s = strings.ReplaceAll(s, string(utf8.RuneError), "")
		}
		return s, nil
	}
	switch policy {
	case Strict, "":
		return "", err
	case Ignore, Replace:
		// golang.org/x/text decoders already substitute the Unicode
		// replacement character for undecodable bytes by default;
		// Ignore additionally strips those runes.
		s := string(out)
		if policy == Ignore {
			s = strings.ReplaceAll(s, string(utf8.RuneError), "")
		}
		return s, nil
	default:
		return "", err
	}
}

func stripInvalidUTF8(raw []byte) string {
	var b strings.Builder
	for len(raw) > 0 {
		r, size := utf8.DecodeRune(raw)
		if r == utf8.RuneError && size == 1 {
			raw = raw[1:]
			continue
		}
		b.WriteRune(r)
		raw = raw[size:]
	}
	return b.String()
}

type invalidUTF8Error struct {
	n int
}

func (e *invalidUTF8Error) Error() string {
	return "textenc: invalid UTF-8 byte sequence"
}

func errInvalidUTF8(raw []byte) error {
	return &invalidUTF8Error{n: len(raw)}
}

type unknownEncodingError struct {
	name string
}

func (e *unknownEncodingError) Error() string {
	return "textenc: unknown encoding " + e.name
}
