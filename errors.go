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
	"errors"
	"fmt"
)

// Sentinel errors, one per entry of the decoder's error taxonomy.
// Callers distinguish them with errors.Is; a failed call usually wraps
// one of these with call-specific detail via fmt.Errorf("%w: ...", ...).
var (
	// ErrOutOfData means the buffered bytes end mid-value. The decoder
	// is untouched and resumable once more bytes are fed or pulled.
	ErrOutOfData = errors.New("msgpack: out of data")

	// ErrExtraData means Unmarshal's input held bytes after a complete
	// top-level value. See ExtraDataError for the trailing bytes.
	ErrExtraData = errors.New("msgpack: extra data after value")

	// ErrBufferFull means a Feed or a producer Pull would grow the
	// stream buffer's unread content past its configured maximum.
	ErrBufferFull = errors.New("msgpack: buffer full")

	// ErrUnrecognizedTag means a byte outside the MessagePack tag
	// table, or an ext-family tag, appeared where a tag was expected.
	ErrUnrecognizedTag = errors.New("msgpack: unrecognized tag")

	// ErrInvalidPayload means a malformed scalar payload, a header-only
	// read that found the wrong container kind, or text that failed to
	// decode under a strict string_encoding policy.
	ErrInvalidPayload = errors.New("msgpack: invalid payload")

	// ErrConfigError means the options passed to NewDecoder are
	// contradictory or out of range.
	ErrConfigError = errors.New("msgpack: config error")

	// ErrHookFailed means a user-supplied hook returned an error. The
	// Decoder that produced it must not be reused.
	ErrHookFailed = errors.New("msgpack: hook failed")

	// ErrAllocationFailed means the stream buffer could not grow to
	// make room for incoming bytes.
	ErrAllocationFailed = errors.New("msgpack: allocation failed")

	// ErrStopIteration names the end-of-values condition. Next does not
	// return it: Next reports that condition as ok=false, err=nil.
	ErrStopIteration = errors.New("msgpack: stop iteration")
)

// wrapf wraps a sentinel error with a formatted detail message.
func wrapf(sentinel error, format string, args ...any) error {
	return fmt.Errorf("%w: %s", sentinel, fmt.Sprintf(format, args...))
}

// ExtraDataError is returned by Unmarshal when the input holds bytes
// after a complete top-level value.
type ExtraDataError struct {
	// Value is the successfully decoded leading value.
	Value Value
	// Remainder is the unconsumed trailing bytes.
	Remainder []byte
}

func (e *ExtraDataError) Error() string {
	return fmt.Sprintf("msgpack: %d byte(s) remain after decoded value", len(e.Remainder))
}

func (e *ExtraDataError) Unwrap() error {
	return ErrExtraData
}

// poisonedError is returned by every Decoder method once the Decoder
// has observed any error other than ErrOutOfData. The spec's error
// taxonomy requires a Decoder's state be treated as unspecified after
// such an error; poisonedError enforces that by construction instead
// of leaving it to caller discipline.
type poisonedError struct {
	cause error
}

func (e *poisonedError) Error() string {
	return fmt.Sprintf("msgpack: decoder unusable after previous error: %v", e.cause)
}

func (e *poisonedError) Unwrap() error {
	return e.cause
}
