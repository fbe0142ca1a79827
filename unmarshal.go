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

// Unmarshal decodes exactly one top-level value from data. It returns
// *ExtraDataError if bytes remain after that value, and ErrOutOfData
// if data ends before a complete value does. opts must not include
// WithByteProducer; Unmarshal feeds data itself.
func Unmarshal(data []byte, opts ...Option) (Value, error) {
	dec, err := NewDecoder(opts...)
	if err != nil {
		return Value{}, err
	}
	if err := dec.Feed(data); err != nil {
		return Value{}, err
	}
	val, err := dec.Decode()
	if err != nil {
		return Value{}, err
	}
	if rest := dec.stream.Readable(); len(rest) > 0 {
		remainder := make([]byte, len(rest))
		copy(remainder, rest)
		return val, &ExtraDataError{Value: val, Remainder: remainder}
	}
	return val, nil
}
