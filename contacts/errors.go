// Copyright 2025 Poiesic Systems
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


package contacts

import "errors"

var (
	// ErrStoreRequired indicates that no key-value store was provided.
	ErrStoreRequired = errors.New("key-value store is required")

	// ErrRepositoryClosed indicates the repository was used after Close.
	// It is raised as a panic: using a closed repository is a programming
	// error, not a runtime condition.
	ErrRepositoryClosed = errors.New("contacts repository used after Close")
)
