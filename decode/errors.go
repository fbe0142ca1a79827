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

import "errors"

// ErrUnrecognizedTag is returned when a byte not in the MessagePack tag
// table appears where a tag was expected.
var ErrUnrecognizedTag = errors.New("decode: unrecognized tag")

// ErrInvalidPayload is returned for malformed scalar payloads, or when
// a header-only read finds a tag of the wrong container kind.
var ErrInvalidPayload = errors.New("decode: invalid payload")
