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


// Package storage provides the persistence layer for caretrack.
//
// The layer is a durable string-keyed byte store (KeyValueStore) plus a
// typed Binding that keeps one logical collection per key as JSON text.
// Backends live in subpackages (badger, redis) and can be used
// interchangeably.
//
// # Layout
//
// Two collections are stored under fixed keys:
//
//   - "contacts": JSON array of core.Contact
//   - "conversations": JSON array of core.Conversation
//
// Each value is accompanied by a BLAKE2b checksum under "<key>:sum" and
// written in the same atomic Put. The "schema_version" key holds the layout
// version as a varint; Migrate upgrades older layouts on open.
//
// # Failure Model
//
// Binding.Load never fails: a missing, corrupted or undecodable value
// yields the caller's default. Binding.Save logs and returns write errors
// without touching the previously stored value, so memory and storage may
// diverge until the next successful write of the same key.
//
// # Usage
//
//	store, err := badger.OpenBackend("/path/to/db", false)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer store.Close()
//
//	contacts := storage.NewBinding[[]core.Contact](store, nil)
//	list := contacts.Load(ctx, storage.ContactsKey, nil)
//
// # Thread Safety
//
// All KeyValueStore implementations must be thread-safe and support
// concurrent access from multiple goroutines.
package storage
