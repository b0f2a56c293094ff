package services

import (
	"time"

	"github.com/google/uuid"
)

// Clock abstracts time retrieval so business logic is deterministic in tests.
type Clock interface {
	Now() time.Time
}

// RealClock returns the actual current time.
type RealClock struct{}

func (RealClock) Now() time.Time { return time.Now() }

// IDGenerator abstracts unique ID generation so tests are deterministic.
// Generated ids carry a short prefix naming the entity kind.
type IDGenerator interface {
	New(prefix string) string
}

// UUIDGenerator produces prefixed random UUIDs, e.g. "doc-5f2c…".
type UUIDGenerator struct{}

func (UUIDGenerator) New(prefix string) string {
	if prefix == "" {
		return uuid.New().String()
	}
	return prefix + "-" + uuid.New().String()
}
