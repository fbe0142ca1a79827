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

// Package msgpack is a streaming MessagePack decoder. A Decoder binds
// three independently testable parts - a resumable format decoder
// (package decode), a value builder with hook customization points
// (this package's build method), and a bounded stream buffer (package
// buffer) - behind a single pull-style API that supports both one-shot
// decoding (Unmarshal) and incremental decoding of bytes that arrive
// over time (Feed/Next, or a byte producer supplied at construction).
package msgpack

import (
	"errors"

	"github.com/streampack/msgpack/buffer"
	"github.com/streampack/msgpack/decode"
)

// Decoder is the coordinator described in the package doc comment. A
// Decoder is not safe for concurrent use; it has no internal locking,
// matching the single-threaded cooperative model the whole package is
// built around.
type Decoder struct {
	cfg     config
	stream  *buffer.Stream
	state   decode.State
	poisons error
}

// NewDecoder builds a Decoder from opts. It returns ErrConfigError if
// the accumulated options are contradictory.
func NewDecoder(opts ...Option) (*Decoder, error) {
	cfg := defaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}
	if err := cfg.resolve(); err != nil {
		return nil, err
	}
	var stream *buffer.Stream
	if cfg.producer != nil {
		stream = buffer.NewWithProducer(cfg.producer, cfg.maxBufferSize, cfg.readSize)
	} else {
		stream = buffer.New(cfg.maxBufferSize, cfg.readSize)
	}
	return &Decoder{cfg: cfg, stream: stream}, nil
}

// Feed appends data to a push-fed Decoder's buffer. It is a
// ErrConfigError to call Feed on a Decoder built with WithByteProducer.
func (d *Decoder) Feed(data []byte) error {
	if err := d.checkUsable(); err != nil {
		return err
	}
	if err := d.stream.Feed(data); err != nil {
		return d.poison(translateBufferErr(err))
	}
	return nil
}

// Decode decodes the next top-level value, pulling from a
// producer-backed Decoder's byte producer as needed, or returning
// ErrOutOfData for a push-fed Decoder that needs more bytes via Feed.
func (d *Decoder) Decode() (Value, error) {
	if err := d.checkUsable(); err != nil {
		return Value{}, err
	}
	return d.unpackOnce()
}

// Next is the iterator-style counterpart of Decode: ok is false with a
// nil error exactly when the Decoder cleanly ran out of values to
// decode (the spec's STOP_ITERATION), and false with a non-nil error
// for every other failure.
func (d *Decoder) Next() (Value, bool, error) {
	v, err := d.Decode()
	if err == nil {
		return v, true, nil
	}
	if errors.Is(err, ErrOutOfData) {
		return Value{}, false, nil
	}
	return Value{}, false, err
}

// Skip discards the next top-level value without building a Value for
// it, pulling or waiting for bytes exactly as Decode does.
func (d *Decoder) Skip() error {
	if err := d.checkUsable(); err != nil {
		return err
	}
	for {
		readable := d.stream.Readable()
		cursor, outcome, err := decode.SkipValue(readable, 0, &d.state)
		if err != nil {
			return d.poison(translateDecodeErr(err))
		}
		d.traceAndAdvance(readable, cursor)
		switch outcome {
		case decode.Complete:
			d.state.Reset()
			return nil
		case decode.NeedMore:
			if cont, err := d.awaitMore(); err != nil {
				return err
			} else if !cont {
				return ErrOutOfData
			}
		}
	}
}

// ReadArrayHeader consumes only the next value's array header and
// returns its declared element count. The caller must then issue count
// further Decode/Skip/etc. calls for the elements themselves.
func (d *Decoder) ReadArrayHeader() (uint32, error) {
	return d.readHeader(decode.KindArray)
}

// ReadMapHeader is ReadArrayHeader's map counterpart; the caller must
// issue 2*count further calls, alternating key and value.
func (d *Decoder) ReadMapHeader() (uint32, error) {
	return d.readHeader(decode.KindMap)
}

func (d *Decoder) readHeader(want decode.Kind) (uint32, error) {
	if err := d.checkUsable(); err != nil {
		return 0, err
	}
	for {
		readable := d.stream.Readable()
		var cursor int
		var outcome decode.Outcome
		var n uint32
		var err error
		if want == decode.KindArray {
			cursor, outcome, n, err = decode.ReadArrayHeader(readable, 0, &d.state)
		} else {
			cursor, outcome, n, err = decode.ReadMapHeader(readable, 0, &d.state)
		}
		if err != nil {
			return 0, d.poison(translateDecodeErr(err))
		}
		d.traceAndAdvance(readable, cursor)
		switch outcome {
		case decode.Complete:
			d.state.Reset()
			return n, nil
		case decode.NeedMore:
			if cont, err := d.awaitMore(); err != nil {
				return 0, err
			} else if !cont {
				return 0, ErrOutOfData
			}
		}
	}
}

// ReadRaw consumes exactly n unframed bytes, for callers that already
// know a length out-of-band (for example, a bin payload's length read
// via a prior protocol, not via this package's own tags).
func (d *Decoder) ReadRaw(n int) ([]byte, error) {
	if err := d.checkUsable(); err != nil {
		return nil, err
	}
	for {
		readable := d.stream.Readable()
		cursor, outcome, data, err := decode.ReadRaw(readable, 0, &d.state, n)
		if err != nil {
			return nil, d.poison(translateDecodeErr(err))
		}
		d.traceAndAdvance(readable, cursor)
		switch outcome {
		case decode.Complete:
			d.state.Reset()
			return data, nil
		case decode.NeedMore:
			if cont, err := d.awaitMore(); err != nil {
				return nil, err
			} else if !cont {
				return nil, ErrOutOfData
			}
		}
	}
}

func (d *Decoder) unpackOnce() (Value, error) {
	for {
		readable := d.stream.Readable()
		cursor, outcome, raw, err := decode.DecodeValue(readable, 0, &d.state)
		if err != nil {
			return Value{}, d.poison(translateDecodeErr(err))
		}
		d.traceAndAdvance(readable, cursor)
		switch outcome {
		case decode.Complete:
			d.state.Reset()
			val, err := d.build(raw)
			if err != nil {
				return Value{}, d.poison(err)
			}
			return val, nil
		case decode.NeedMore:
			cont, err := d.awaitMore()
			if err != nil {
				return Value{}, err
			}
			if !cont {
				return Value{}, ErrOutOfData
			}
		}
	}
}

// awaitMore tries to make more bytes available to a producer-backed
// Decoder and reports whether the caller should retry decoding.
// Push-fed Decoders have no way to get more bytes themselves, so they
// always report false, leaving ErrOutOfData to the caller.
func (d *Decoder) awaitMore() (bool, error) {
	if !d.stream.ProducerBacked() {
		return false, nil
	}
	if d.stream.Exhausted() {
		return false, nil
	}
	n, err := d.stream.Pull()
	if err != nil {
		return false, d.poison(translateBufferErr(err))
	}
	if n == 0 {
		return false, nil
	}
	return true, nil
}

func (d *Decoder) traceAndAdvance(readable []byte, cursor int) {
	if cursor <= 0 {
		return
	}
	if d.cfg.traceSink != nil {
		d.cfg.traceSink(readable[:cursor])
	}
	d.stream.Advance(cursor)
}

func (d *Decoder) checkUsable() error {
	if d.poisons != nil {
		return &poisonedError{cause: d.poisons}
	}
	return nil
}

// poison marks the Decoder unusable for every future call except the
// one already unwinding, and returns err unchanged for convenience at
// call sites.
func (d *Decoder) poison(err error) error {
	if err != nil {
		d.poisons = err
	}
	return err
}

func translateDecodeErr(err error) error {
	switch {
	case errors.Is(err, decode.ErrUnrecognizedTag):
		return wrapf(ErrUnrecognizedTag, "%v", err)
	case errors.Is(err, decode.ErrInvalidPayload):
		return wrapf(ErrInvalidPayload, "%v", err)
	default:
		return err
	}
}

func translateBufferErr(err error) error {
	switch {
	case errors.Is(err, buffer.ErrBufferFull):
		return wrapf(ErrBufferFull, "%v", err)
	case errors.Is(err, buffer.ErrAllocationFailed):
		return wrapf(ErrAllocationFailed, "%v", err)
	case errors.Is(err, buffer.ErrConfigError):
		return wrapf(ErrConfigError, "%v", err)
	default:
		return err
	}
}
