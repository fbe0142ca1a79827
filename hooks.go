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

// ObjectHook, given the default map Value the builder collapsed from a
// map's wire-order pairs (duplicate keys already resolved last-wins),
// returns a replacement Value. It runs after ObjectPairsHook would have
// run, and the two are mutually exclusive on a single Decoder.
type ObjectHook func(m Value) (Value, error)

// ObjectPairsHook receives a map's pairs exactly as they appeared on
// the wire, duplicates and all, and returns a replacement Value. When
// set, the builder never collapses the pairs itself and ObjectHook
// does not run.
type ObjectPairsHook func(pairs []Pair) (Value, error)

// ListHook receives a built array Value and returns a replacement.
type ListHook func(a Value) (Value, error)
