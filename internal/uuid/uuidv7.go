// Package uuid generates the time-ordered identifiers used as primary keys.
package uuid

import (
	"crypto/rand"
	"encoding/binary"
	"time"

	googleuuid "github.com/google/uuid"
)

// New generates a UUIDv7 for the current time.
func New() string {
	return NewAt(time.Now())
}

// NewAt generates a UUIDv7 whose 48-bit timestamp prefix is t in Unix
// milliseconds, so identifiers sort in creation order.
//
// Layout: 48 bits timestamp | 4 bits version (7) | 12 bits random |
// 2 bits variant (10) | 62 bits random.
func NewAt(t time.Time) string {
	var id googleuuid.UUID

	binary.BigEndian.PutUint64(id[0:8], uint64(t.UnixMilli())<<16)

	if _, err := rand.Read(id[6:]); err != nil {
		// Fallback to standard UUIDv4 if random generation fails
		return googleuuid.New().String()
	}

	id[6] = (id[6] & 0x0f) | 0x70
	id[8] = (id[8] & 0x3f) | 0x80

	return id.String()
}

// IsValid checks if a string is a valid UUID
func IsValid(s string) bool {
	_, err := googleuuid.Parse(s)
	return err == nil
}
