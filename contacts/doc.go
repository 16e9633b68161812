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


// Package contacts holds the contact and conversation repository.
//
// A Repository is constructed once per process with Open and handed to
// every consumer explicitly. It mirrors two collections kept in a
// storage.KeyValueStore:
//
//   - contacts: profile records (core.Contact)
//   - conversations: one timeline per contact (core.Conversation)
//
// and tracks which contact is currently selected.
//
// # Write Path
//
// Each mutation updates memory first, then writes the whole affected
// collection through a storage.Binding. Write failures are logged and
// leave storage behind memory until the next successful write of the same
// key; there is no background reconciliation.
//
// # Missing Identifiers
//
// Looking up or mutating an unknown ID is not an error. Lookups return
// false, mutations are no-ops that report false. AddMessage deliberately
// does not check that the contact exists and repairs a missing
// conversation through EnsureConversation.
//
// # Notifications
//
// Adding, updating and deleting contacts, changing an avatar and sending
// media are reported to the configured notify.Notifier after the change
// has been applied and the repository lock released.
package contacts
