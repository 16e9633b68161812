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


package storage

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/poiesic/caretrack/core"
)

// CurrentSchemaVersion is the layout version written by this build.
//
// Version history:
//   - 1: assistance levels labelled low/medium/high, messages without an
//     activity type. Data without a schema_version key is version 1.
//   - 2: canonical assistance levels (leve/moderado/severo), every message
//     carries an activity type.
const CurrentSchemaVersion uint64 = 2

// Migrate brings the data held in store up to CurrentSchemaVersion and
// returns the version it found. An empty store is stamped with the current
// version. Collections that cannot be decoded are left as they are; the
// binding falls back to its default when it meets them.
func Migrate(ctx context.Context, store KeyValueStore, logger *slog.Logger) (uint64, error) {
	if logger == nil {
		logger = slog.Default()
	}

	version, err := readSchemaVersion(ctx, store)
	if err != nil {
		return 0, err
	}

	if version > CurrentSchemaVersion {
		return version, fmt.Errorf("%w: found %d, supported %d", ErrSchemaTooNew, version, CurrentSchemaVersion)
	}
	if version == CurrentSchemaVersion {
		return version, nil
	}

	var entries []Entry
	if version == 1 {
		logger.Info("migrating stored data", "from", version, "to", CurrentSchemaVersion)
		migrated, err := migrateV1(ctx, store, logger)
		if err != nil {
			return version, err
		}
		entries = append(entries, migrated...)
	}
	entries = append(entries, Entry{Key: SchemaVersionKey, Value: MarshalSchemaVersion(CurrentSchemaVersion)})

	if err := store.Put(ctx, entries...); err != nil {
		return version, fmt.Errorf("writing migrated data: %w", err)
	}
	return version, nil
}

// readSchemaVersion returns the stored schema version. A store without a
// version key but with contacts predates versioning; a store with neither
// is new.
func readSchemaVersion(ctx context.Context, store KeyValueStore) (uint64, error) {
	data, err := store.Get(ctx, SchemaVersionKey)
	if err == nil {
		return UnmarshalSchemaVersion(data)
	}
	if !errors.Is(err, ErrNotFound) {
		return 0, err
	}

	if _, err := store.Get(ctx, ContactsKey); err != nil {
		if errors.Is(err, ErrNotFound) {
			return 0, nil
		}
		return 0, err
	}
	return 1, nil
}

func migrateV1(ctx context.Context, store KeyValueStore, logger *slog.Logger) ([]Entry, error) {
	var entries []Entry

	var contacts []core.Contact
	ok, err := readLegacy(ctx, store, ContactsKey, &contacts, logger)
	if err != nil {
		return nil, err
	}
	if ok {
		for i := range contacts {
			contacts[i].AssistanceLevel = core.CanonicalAssistanceLevel(contacts[i].AssistanceLevel)
		}
		encoded, err := EncodeValue(ContactsKey, contacts)
		if err != nil {
			return nil, err
		}
		entries = append(entries, encoded...)
	}

	var conversations []core.Conversation
	ok, err = readLegacy(ctx, store, ConversationsKey, &conversations, logger)
	if err != nil {
		return nil, err
	}
	if ok {
		for i := range conversations {
			for j := range conversations[i].Messages {
				if conversations[i].Messages[j].ActivityType == "" {
					conversations[i].Messages[j].ActivityType = core.ActivityGeneral
				}
			}
		}
		encoded, err := EncodeValue(ConversationsKey, conversations)
		if err != nil {
			return nil, err
		}
		entries = append(entries, encoded...)
	}

	return entries, nil
}

// readLegacy decodes the value under key into out. It reports false when
// the key is missing or its value can't be decoded.
func readLegacy(ctx context.Context, store KeyValueStore, key string, out any, logger *slog.Logger) (bool, error) {
	data, err := store.Get(ctx, key)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return false, nil
		}
		return false, err
	}

	sum, err := store.Get(ctx, ChecksumKey(key))
	if err != nil {
		if !errors.Is(err, ErrNotFound) {
			return false, err
		}
		sum = nil
	}

	if err := DecodeValue(key, data, sum, out); err != nil {
		logger.Warn("skipping migration of unreadable value", "key", key, "err", err)
		return false, nil
	}
	return true, nil
}
