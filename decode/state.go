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

// frameKind distinguishes the two container shapes a State frame can hold.
//
// This plays the role the teacher's protocol.State/StateMap played for
// mini-protocol state transitions, narrowed to the two shapes MessagePack
// containers can take.
type frameKind int

const (
	frameArray frameKind = iota
	frameMap
)

// frame is a container-in-progress on the decoder's stack.
type frame struct {
	kind      frameKind
	declared  uint32
	elements  []Raw // array elements; map frames collect into pairs instead
	pairs     []Pair
	pendingKey *Raw // set while a map frame awaits its value
}

// then describes what should happen once the active collector has
// gathered all the bytes it was asked for.
type then int

const (
	thenFixedScalar   then = iota // buf holds the complete scalar payload
	thenLengthPrefix              // buf holds a length field; decide payload size next
	thenPayload                   // buf holds the str/bin payload bytes
)

// collector accumulates a multi-byte scalar, length field, or payload
// across possibly many Step calls. It is the "scalar-in-progress" field
// named in the spec's decoder state.
type collector struct {
	active bool
	tag    uint8
	kind   Kind // target Kind once complete (KindBin/KindStr/KindFloat32 etc.)
	want   int
	buf    []byte
	then   then
}

func (c *collector) reset() {
	c.active = false
	c.buf = nil
}

// start arms the collector to gather want bytes for tag, to be
// interpreted as purpose once full.
func (c *collector) start(tag uint8, kind Kind, want int, purpose then) {
	c.active = true
	c.tag = tag
	c.kind = kind
	c.want = want
	c.buf = make([]byte, 0, want)
	c.then = purpose
}

// fill appends as many bytes as are available from buf[cursor:] up to
// the remaining want, and reports whether the collector is now full.
func (c *collector) fill(buf []byte, cursor int) (newCursor int, full bool) {
	need := c.want - len(c.buf)
	avail := len(buf) - cursor
	n := need
	if avail < n {
		n = avail
	}
	if n > 0 {
		c.buf = append(c.buf, buf[cursor:cursor+n]...)
		cursor += n
	}
	return cursor, len(c.buf) == c.want
}

// State is the decoder's persistent, resumable state. A zero State is
// ready to decode the next top-level value.
type State struct {
	stack     []frame
	collector collector
}

// Reset clears State back to its zero value, as happens after every
// Complete outcome (the container stack is always empty post-Complete
// per the spec's invariant).
func (s *State) Reset() {
	s.stack = s.stack[:0]
	s.collector.reset()
}

func (s *State) pushFrame(f frame) {
	s.stack = append(s.stack, f)
}

func (s *State) topFrame() *frame {
	if len(s.stack) == 0 {
		return nil
	}
	return &s.stack[len(s.stack)-1]
}

func (s *State) popFrame() frame {
	f := s.stack[len(s.stack)-1]
	s.stack = s.stack[:len(s.stack)-1]
	return f
}
