package library

import (
	"io"
	"time"

	"github.com/pkg/errors"
)

// StoreOptions selects and configures a Slot implementation.
type StoreOptions struct {
	// Driver is one of sqlite, file, redis or memory.
	Driver string
	Path   string
	Slot   string

	RedisAddr     string
	RedisPassword string
	RedisDB       int
	RedisTimeout  time.Duration
}

// OpenSlot builds the Slot named by opts.Driver. Callers release it with
// CloseSlot.
func OpenSlot(opts StoreOptions) (Slot, error) {
	switch opts.Driver {
	case "sqlite":
		return NewSQLiteSlot(opts.Path, opts.Slot)
	case "file":
		return NewFileSlot(opts.Path), nil
	case "redis":
		client := NewRedisClient(opts.RedisAddr, opts.RedisPassword, opts.RedisDB)
		return NewRedisSlot(client, opts.Slot, opts.RedisTimeout), nil
	case "memory":
		return NewMemorySlot(), nil
	default:
		return nil, errors.Errorf("unknown store driver %q", opts.Driver)
	}
}

// CloseSlot closes slots that hold a connection.
func CloseSlot(s Slot) error {
	if c, ok := s.(io.Closer); ok {
		return c.Close()
	}
	return nil
}
