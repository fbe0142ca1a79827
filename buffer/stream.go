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

// Package buffer implements the decoder's bounded stream buffer: a
// single contiguous byte region with a read cursor (head), a write
// cursor (tail), and a compact-or-grow policy that bounds memory use.
//
// This plays the role the teacher's muxer package played for the wire
// read buffer: muxer.Muxer owned a fixed-header framing loop over a
// net.Conn; Stream owns the equivalent read-side bytes for a decoder
// that has no framing of its own and must be resumable instead of
// blocking.
package buffer

import (
	"math"
)

// Producer yields up to maxLen additional bytes on demand, or signals
// end-of-stream by returning a nil/empty slice with a nil error.
type Producer func(maxLen int) ([]byte, error)

// Stream is the owned byte region described in the package doc. It is
// either producer-backed (pulls bytes on demand) or push-fed (bytes
// arrive via Feed); the two modes are mutually exclusive for the life
// of a Stream, set at construction.
type Stream struct {
	buf      []byte
	head     int
	tail     int
	maxSize  int
	readSize int
	producer Producer
	exhausted bool
}

// unboundedSize is the effective cap used when MaxSize is given as 0,
// resolving the "max_buffer_size == 0 means platform INT_MAX" sentinel
// named in the spec's open question.
const unboundedSize = math.MaxInt32

// New creates a push-fed Stream. Bytes are supplied by calling Feed.
func New(maxSize, readSize int) *Stream {
	return newStream(nil, maxSize, readSize)
}

// NewWithProducer creates a producer-backed Stream. Bytes are supplied
// by calling Pull, which in turn calls producer.
func NewWithProducer(producer Producer, maxSize, readSize int) *Stream {
	return newStream(producer, maxSize, readSize)
}

func newStream(producer Producer, maxSize, readSize int) *Stream {
	effMax := maxSize
	if effMax <= 0 {
		effMax = unboundedSize
	}
	if readSize <= 0 || readSize > effMax {
		readSize = effMax
	}
	return &Stream{
		maxSize:  effMax,
		readSize: readSize,
		producer: producer,
	}
}

// Readable returns the unread bytes buf[head:tail]. The slice aliases
// Stream's internal storage and is only valid until the next Feed,
// Pull, or Advance call.
func (s *Stream) Readable() []byte {
	return s.buf[s.head:s.tail]
}

// Advance moves head forward by n, which must be no greater than the
// number of currently readable bytes.
func (s *Stream) Advance(n int) {
	s.head += n
	if s.head == s.tail {
		// Nothing left to read; reset to the front so the next Feed or
		// Pull never has to compact or grow to make room.
		s.head = 0
		s.tail = 0
	}
}

// Exhausted reports whether a producer-backed Stream's producer has
// signaled end-of-stream.
func (s *Stream) Exhausted() bool {
	return s.exhausted
}

// ProducerBacked reports whether this Stream pulls its own bytes,
// as opposed to waiting for the caller to push them via Feed.
func (s *Stream) ProducerBacked() bool {
	return s.producer != nil
}

// Feed appends data for a push-fed Stream. It is a ConfigError to call
// Feed on a producer-backed Stream.
func (s *Stream) Feed(data []byte) error {
	if s.producer != nil {
		return ErrConfigError
	}
	return s.append(data)
}

// Pull requests up to readSize bytes (bounded by remaining capacity)
// from the producer and appends them. It is a ConfigError to call Pull
// on a push-fed Stream. If the producer returns no bytes, the Stream
// is marked Exhausted and Pull returns (0, nil).
func (s *Stream) Pull() (int, error) {
	if s.producer == nil {
		return 0, ErrConfigError
	}
	remaining := s.maxSize - (s.tail - s.head)
	want := s.readSize
	if remaining < want {
		want = remaining
	}
	if want <= 0 {
		return 0, ErrBufferFull
	}
	data, err := s.producer(want)
	if err != nil {
		return 0, err
	}
	if len(data) == 0 {
		s.exhausted = true
		return 0, nil
	}
	if err := s.append(data); err != nil {
		return 0, err
	}
	return len(data), nil
}

// append implements the compact-or-grow policy: compact in place when
// the unread content plus the new bytes still fits in the current
// region, otherwise allocate a new region sized to min(2x required,
// maxSize), preserving the old region intact on failure.
func (s *Stream) append(data []byte) (err error) {
	l := len(data)
	if s.tail+l > len(s.buf) {
		unread := s.tail - s.head
		if unread+l <= len(s.buf) {
			copy(s.buf, s.buf[s.head:s.tail])
			s.head = 0
			s.tail = unread
		} else {
			required := unread + l
			if required > s.maxSize {
				return ErrBufferFull
			}
			newCap := required * 2
			if newCap > s.maxSize {
				newCap = s.maxSize
			}
			var newBuf []byte
			func() {
				defer func() {
					if r := recover(); r != nil {
						err = ErrAllocationFailed
					}
				}()
				newBuf = make([]byte, newCap)
			}()
			if err != nil {
				return err
			}
			copy(newBuf, s.buf[s.head:s.tail])
			s.buf = newBuf
			s.head = 0
			s.tail = unread
		}
	}
	copy(s.buf[s.tail:], data)
	s.tail += l
	return nil
}
