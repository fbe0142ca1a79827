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

import "errors"

// ErrBufferFull is returned when a single Feed or producer pull would
// cause the unread-content size to exceed MaxSize.
var ErrBufferFull = errors.New("buffer: required capacity exceeds max buffer size")

// ErrAllocationFailed is returned when growth cannot allocate a new
// region. The old region is left intact (strong exception safety).
var ErrAllocationFailed = errors.New("buffer: allocation failed")

// ErrConfigError is returned when a Stream is asked to mix push-fed
// and producer-backed operation.
var ErrConfigError = errors.New("buffer: producer-backed and push-fed modes are mutually exclusive")
