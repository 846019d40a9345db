package redis

import (
	"time"

	"github.com/bidhaus/goapi/base/ctx"
	"golang.org/x/xerrors"
)

// Forever means the key never expires
const Forever = time.Duration(-1)

var (
	// ErrNotFound is returned when the key does not exist
	ErrNotFound = xerrors.Errorf("key not found")

	// ErrGapTime is returned when no pool is available to serve the command
	ErrGapTime = xerrors.Errorf("no available pool")
)

// Service abstract the redis layer
type Service interface {
	// Get the value of key. Return ErrNotFound if the key does not exist.
	Get(context ctx.Ctx, key string) (val []byte, err error)

	// Set key to hold the value with an expiration. Pass Forever to keep
	// the key without expiration.
	Set(context ctx.Ctx, key string, val []byte, expire time.Duration) error

	// SetNX sets the key only when it does not exist yet. Returns
	// ErrNotFound when the key already holds a value.
	SetNX(context ctx.Ctx, key string, val []byte, expire time.Duration) error

	// Del removes the given keys and returns the number of removed keys
	Del(context ctx.Ctx, ks ...string) (int, error)

	// TTL returns the remaining time to live of a key in seconds.
	// Returns -2 when the key does not exist, -1 when the key has no
	// associated expire.
	TTL(context ctx.Ctx, key string) (int, error)

	// Ping checks the connection to redis
	Ping(context ctx.Ctx) error
}
