package dependencies

import (
	"context"
	"encoding/binary"
	"fmt"
	"sync/atomic"

	"github.com/google/uuid"
)

// UUIDGenerator produces identifiers.
type UUIDGenerator func() uuid.UUID

// UUID generates random (version 4) identifiers when live.
// Its test value is unimplemented: tests must override it.
var UUID = NewKey[UUIDGenerator]("uuid", uuid.New,
	WithTestValue(unimplementedUUID()),
)

// NewUUID draws one identifier from the generator in ctx.
func NewUUID(ctx context.Context) uuid.UUID {
	return Get(ctx, UUID)()
}

// IncrementingUUID yields UUIDFromInt(0), UUIDFromInt(1), ... and is safe for concurrent use.
func IncrementingUUID() UUIDGenerator {
	var next atomic.Uint64
	return func() uuid.UUID {
		return UUIDFromInt(next.Add(1) - 1)
	}
}

// ConstantUUID always yields u.
func ConstantUUID(u uuid.UUID) UUIDGenerator {
	return func() uuid.UUID { return u }
}

// UUIDFromInt stores n big-endian in the low 8 bytes, so UUIDFromInt(1) is
// 00000000-0000-0000-0000-000000000001.
func UUIDFromInt(n uint64) uuid.UUID {
	var u uuid.UUID
	binary.BigEndian.PutUint64(u[8:], n)
	return u
}

func unimplementedUUID() UUIDGenerator {
	return func() uuid.UUID {
		panic(fmt.Errorf("%w: %s", ErrUnimplemented, "uuid"))
	}
}
