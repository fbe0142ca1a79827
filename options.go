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
	"github.com/streampack/msgpack/buffer"
	"github.com/streampack/msgpack/textenc"
)

// defaultReadSize is the read_size fallback when none is configured,
// clamped down to max_buffer_size at construction time.
const defaultReadSize = 1 << 20 // 1 MiB

// config collects every Option's effect. It is unexported: callers
// shape it only through the With* functions, the way the teacher's
// ConnectionConfig is only ever built through ConnectionOptionFunc.
type config struct {
	producer        buffer.Producer
	readSize        int
	readSizeSet     bool
	maxBufferSize   int
	useList         bool
	objectHook      ObjectHook
	objectPairsHook ObjectPairsHook
	listHook        ListHook
	stringEncoding  string
	decodingErrors  textenc.ErrorPolicy
	traceSink       func(consumed []byte)
}

func defaultConfig() config {
	return config{
		useList:        true,
		decodingErrors: textenc.Strict,
	}
}

// Option configures a Decoder. Options are applied in the order given
// to NewDecoder.
type Option func(*config)

// WithByteProducer makes the Decoder producer-backed: it pulls bytes
// from p itself instead of waiting for Feed calls. Mutually exclusive
// with ever calling Feed on the resulting Decoder.
func WithByteProducer(p buffer.Producer) Option {
	return func(c *config) { c.producer = p }
}

// WithReadSize sets how many bytes a producer-backed Decoder asks for
// per Pull. It has no effect on a push-fed Decoder, whose buffer grows
// to fit each Feed. The default is min(1 MiB, max_buffer_size).
func WithReadSize(n int) Option {
	return func(c *config) { c.readSize = n; c.readSizeSet = true }
}

// WithMaxBufferSize bounds the stream buffer's unread-content size. 0
// (the default) sets the bound to math.MaxInt32.
func WithMaxBufferSize(n int) Option {
	return func(c *config) { c.maxBufferSize = n }
}

// WithUseList controls whether decoded arrays are tagged as ordinary
// lists (true, the default) or as tuples (false). See Value.Tuple.
func WithUseList(use bool) Option {
	return func(c *config) { c.useList = use }
}

// WithObjectHook installs a hook run on every decoded map's collapsed
// Value. Mutually exclusive with WithObjectPairsHook.
func WithObjectHook(h ObjectHook) Option {
	return func(c *config) { c.objectHook = h }
}

// WithObjectPairsHook installs a hook run on every decoded map's raw
// wire-order pairs, before last-wins collapsing would occur. Mutually
// exclusive with WithObjectHook.
func WithObjectPairsHook(h ObjectPairsHook) Option {
	return func(c *config) { c.objectPairsHook = h }
}

// WithListHook installs a hook run on every decoded array's Value.
func WithListHook(h ListHook) Option {
	return func(c *config) { c.listHook = h }
}

// WithStringEncoding names the text encoding str-family payloads are
// decoded under. Unset (the default) leaves str payloads as KindBytes,
// undecoded.
func WithStringEncoding(name string) Option {
	return func(c *config) { c.stringEncoding = name }
}

// WithDecodingErrors sets the policy for byte sequences that are
// invalid under the configured string encoding. Only meaningful
// together with WithStringEncoding; the default is textenc.Strict.
func WithDecodingErrors(policy textenc.ErrorPolicy) Option {
	return func(c *config) { c.decodingErrors = policy }
}

// WithTraceSink installs a callback invoked with exactly the bytes
// consumed by each completed Step of the underlying format decoder,
// in consumption order. It is for observability only; fn must not
// retain the slice past the call.
func WithTraceSink(fn func(consumed []byte)) Option {
	return func(c *config) { c.traceSink = fn }
}

// resolve validates the accumulated config and fills in defaults that
// depend on more than one option, returning ErrConfigError wrapped
// with detail on any contradiction.
func (c *config) resolve() error {
	if c.objectHook != nil && c.objectPairsHook != nil {
		return wrapf(ErrConfigError, "object_hook and object_pairs_hook are mutually exclusive")
	}
	if c.readSizeSet && c.readSize <= 0 {
		return wrapf(ErrConfigError, "read_size must be positive")
	}
	if c.readSizeSet && c.maxBufferSize > 0 && c.readSize > c.maxBufferSize {
		return wrapf(ErrConfigError, "read_size %d exceeds max_buffer_size %d", c.readSize, c.maxBufferSize)
	}
	if !c.readSizeSet {
		c.readSize = defaultReadSize
		if c.maxBufferSize > 0 && c.readSize > c.maxBufferSize {
			c.readSize = c.maxBufferSize
		}
	}
	return nil
}
