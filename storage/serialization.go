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
	"encoding/hex"
	"encoding/json"
	"fmt"

	"github.com/go-crypt/x/blake2b"
	"github.com/mus-format/mus-go/varint"
)

// Fixed keys of the persisted layout.
const (
	ContactsKey      = "contacts"
	ConversationsKey = "conversations"
	SchemaVersionKey = "schema_version"

	checksumSuffix = ":sum"
)

// ChecksumKey returns the key the checksum of key is stored under.
func ChecksumKey(key string) string {
	return key + checksumSuffix
}

// Checksum returns the hex encoded 64-bit BLAKE2b digest of data.
func Checksum(data []byte) string {
	h, _ := blake2b.New(8, nil) // 8 bytes = 64 bits
	h.Write(data)
	return hex.EncodeToString(h.Sum(nil))
}

// EncodeValue serializes value to JSON text and returns the entries that
// store it under key together with its checksum.
func EncodeValue(key string, value any) ([]Entry, error) {
	data, err := json.Marshal(value)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrSerializationFailed, key, err)
	}
	return []Entry{
		{Key: key, Value: data},
		{Key: ChecksumKey(key), Value: []byte(Checksum(data))},
	}, nil
}

// DecodeValue verifies data against sum and deserializes it into out.
// A nil sum skips verification; values written without a checksum are
// accepted as they are.
func DecodeValue(key string, data, sum []byte, out any) error {
	if sum != nil && string(sum) != Checksum(data) {
		return fmt.Errorf("%w: %s", ErrChecksumMismatch, key)
	}
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("%w: %s: %w", ErrSerializationFailed, key, err)
	}
	return nil
}

// MarshalSchemaVersion serializes a schema version to bytes.
func MarshalSchemaVersion(version uint64) []byte {
	buf := make([]byte, varint.Uint64.Size(version))
	varint.Uint64.Marshal(version, buf)
	return buf
}

// UnmarshalSchemaVersion deserializes a schema version from bytes.
func UnmarshalSchemaVersion(data []byte) (uint64, error) {
	version, _, err := varint.Uint64.Unmarshal(data)
	if err != nil {
		return 0, fmt.Errorf("%w: %s: %w", ErrSerializationFailed, SchemaVersionKey, err)
	}
	return version, nil
}
