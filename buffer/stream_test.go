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

package buffer

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStream_FeedAndReadable(t *testing.T) {
	s := New(0, 16)
	require.NoError(t, s.Feed([]byte("hello")))
	assert.Equal(t, []byte("hello"), s.Readable())
}

func TestStream_AdvanceDrainsToFrontOnEmpty(t *testing.T) {
	s := New(0, 16)
	require.NoError(t, s.Feed([]byte("hello")))
	s.Advance(5)
	assert.Empty(t, s.Readable())
	require.NoError(t, s.Feed([]byte("world")))
	assert.Equal(t, []byte("world"), s.Readable())
}

func TestStream_CompactsInPlaceWhenRoomPermits(t *testing.T) {
	s := New(0, 4)
	require.NoError(t, s.Feed([]byte("abcd")))
	require.NoError(t, s.Feed([]byte("efgh"))) // fills the region to capacity
	s.Advance(6)                               // "gh" unread
	require.NoError(t, s.Feed([]byte("ij")))   // must compact, not grow, to fit
	assert.Equal(t, []byte("ghij"), s.Readable())
}

func TestStream_GrowsWhenCompactionIsNotEnough(t *testing.T) {
	s := New(0, 4)
	require.NoError(t, s.Feed([]byte("abcd")))
	require.NoError(t, s.Feed([]byte("efgh")))
	assert.Equal(t, []byte("abcdefgh"), s.Readable())
}

func TestStream_ErrBufferFullWhenMaxSizeExceeded(t *testing.T) {
	s := New(4, 4)
	require.NoError(t, s.Feed([]byte("abcd")))
	err := s.Feed([]byte("e"))
	assert.ErrorIs(t, err, ErrBufferFull)
}

func TestStream_ZeroMaxSizeMeansUnbounded(t *testing.T) {
	s := New(0, 16)
	big := make([]byte, 1<<20)
	require.NoError(t, s.Feed(big))
	assert.Len(t, s.Readable(), len(big))
}

func TestStream_FeedOnProducerBackedIsConfigError(t *testing.T) {
	s := NewWithProducer(func(maxLen int) ([]byte, error) { return nil, nil }, 0, 16)
	err := s.Feed([]byte("x"))
	assert.ErrorIs(t, err, ErrConfigError)
}

func TestStream_PullOnPushFedIsConfigError(t *testing.T) {
	s := New(0, 16)
	_, err := s.Pull()
	assert.ErrorIs(t, err, ErrConfigError)
}

func TestStream_PullAppendsProducerBytes(t *testing.T) {
	calls := 0
	s := NewWithProducer(func(maxLen int) ([]byte, error) {
		calls++
		return []byte("xy"), nil
	}, 0, 16)
	n, err := s.Pull()
	require.NoError(t, err)
	assert.Equal(t, 2, n)
	assert.Equal(t, []byte("xy"), s.Readable())
	assert.Equal(t, 1, calls)
}

func TestStream_PullSetsExhaustedOnEmptyProducerReturn(t *testing.T) {
	s := NewWithProducer(func(maxLen int) ([]byte, error) { return nil, nil }, 0, 16)
	n, err := s.Pull()
	require.NoError(t, err)
	assert.Equal(t, 0, n)
	assert.True(t, s.Exhausted())
}

func TestStream_PullPropagatesProducerError(t *testing.T) {
	boom := errors.New("boom")
	s := NewWithProducer(func(maxLen int) ([]byte, error) { return nil, boom }, 0, 16)
	_, err := s.Pull()
	assert.ErrorIs(t, err, boom)
}

func TestStream_ProducerBacked(t *testing.T) {
	s1 := New(0, 16)
	s2 := NewWithProducer(func(maxLen int) ([]byte, error) { return nil, nil }, 0, 16)
	assert.False(t, s1.ProducerBacked())
	assert.True(t, s2.ProducerBacked())
}
