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
	"fmt"

	"github.com/streampack/msgpack/decode"
	"github.com/streampack/msgpack/textenc"
)

// build walks a completed decode.Raw tree post-order, turning it into
// a Value and applying use_list, hooks, and string_encoding exactly
// once per node - the value builder half of the decoder described in
// this package's doc comment.
func (d *Decoder) build(r decode.Raw) (Value, error) {
	switch r.Kind {
	case decode.KindNil:
		return Value{Kind: KindNil}, nil
	case decode.KindBool:
		return Value{Kind: KindBool, Bool: r.Bool}, nil
	case decode.KindInt:
		return Value{Kind: KindInt, Int: r.Int}, nil
	case decode.KindUint:
		return Value{Kind: KindUint, Uint: r.Uint}, nil
	case decode.KindFloat32:
		return Value{Kind: KindFloat32, Float32: r.Float32}, nil
	case decode.KindFloat64:
		return Value{Kind: KindFloat64, Float64: r.Float64}, nil
	case decode.KindBin:
		return Value{Kind: KindBytes, Bytes: r.Bytes}, nil
	case decode.KindStr:
		return d.buildStr(r)
	case decode.KindArray:
		return d.buildArray(r)
	case decode.KindMap:
		return d.buildMap(r)
	default:
		return Value{}, wrapf(ErrInvalidPayload, "unrecognized builder kind %d", r.Kind)
	}
}

func (d *Decoder) buildStr(r decode.Raw) (Value, error) {
	if d.cfg.stringEncoding == "" {
		return Value{Kind: KindBytes, Bytes: r.Bytes}, nil
	}
	policy := d.cfg.decodingErrors
	if policy == "" {
		policy = textenc.Strict
	}
	text, err := textenc.Decode(r.Bytes, d.cfg.stringEncoding, policy)
	if err != nil {
		return Value{}, wrapf(ErrInvalidPayload, "string_encoding: %v", err)
	}
	return Value{Kind: KindText, Text: text}, nil
}

func (d *Decoder) buildArray(r decode.Raw) (Value, error) {
	elems := make([]Value, len(r.Array))
	for i, c := range r.Array {
		v, err := d.build(c)
		if err != nil {
			return Value{}, err
		}
		elems[i] = v
	}
	arr := Value{Kind: KindArray, Array: elems, Tuple: !d.cfg.useList}
	if d.cfg.listHook == nil {
		return arr, nil
	}
	hooked, err := d.cfg.listHook(arr)
	if err != nil {
		return Value{}, fmt.Errorf("%w: list_hook: %w", ErrHookFailed, err)
	}
	return hooked, nil
}

func (d *Decoder) buildMap(r decode.Raw) (Value, error) {
	pairs := make([]Pair, len(r.Pairs))
	for i, p := range r.Pairs {
		k, err := d.build(p.Key)
		if err != nil {
			return Value{}, err
		}
		v, err := d.build(p.Val)
		if err != nil {
			return Value{}, err
		}
		pairs[i] = Pair{Key: k, Val: v}
	}

	if d.cfg.objectPairsHook != nil {
		hooked, err := d.cfg.objectPairsHook(pairs)
		if err != nil {
			return Value{}, fmt.Errorf("%w: object_pairs_hook: %w", ErrHookFailed, err)
		}
		return hooked, nil
	}

	m := Value{Kind: KindMap, Pairs: collapseLastWins(pairs)}
	if d.cfg.objectHook == nil {
		return m, nil
	}
	hooked, err := d.cfg.objectHook(m)
	if err != nil {
		return Value{}, fmt.Errorf("%w: object_hook: %w", ErrHookFailed, err)
	}
	return hooked, nil
}

// collapseLastWins resolves duplicate keys the way a dict literal
// would: a repeated key keeps its first position but takes the value
// of its last occurrence.
func collapseLastWins(pairs []Pair) []Pair {
	order := make([]string, 0, len(pairs))
	keyByFP := make(map[string]Value, len(pairs))
	valByFP := make(map[string]Value, len(pairs))
	for _, p := range pairs {
		fp := fingerprint(p.Key)
		if _, seen := keyByFP[fp]; !seen {
			order = append(order, fp)
			keyByFP[fp] = p.Key
		}
		valByFP[fp] = p.Val
	}
	result := make([]Pair, len(order))
	for i, fp := range order {
		result[i] = Pair{Key: keyByFP[fp], Val: valByFP[fp]}
	}
	return result
}
