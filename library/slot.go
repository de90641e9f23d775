package library

import (
	"sync"

	"github.com/pkg/errors"
	"github.com/segmentio/encoding/json"
)

// DefaultSlot is the name of the persisted slot holding the collection.
const DefaultSlot = "libraryBooks"

// Slot persists the whole collection as a single blob. LoadAll on a slot that
// has never been written returns an empty collection and no error.
type Slot interface {
	LoadAll() ([]Book, error)
	SaveAll(books []Book) error
}

// encodeBooks serializes the collection. A nil collection is written as an
// empty array so the slot always holds a JSON array.
func encodeBooks(books []Book) ([]byte, error) {
	if books == nil {
		books = []Book{}
	}
	data, err := json.Marshal(books)
	if err != nil {
		return nil, errors.WithStack(err)
	}
	return data, nil
}

// decodeBooks parses a stored blob. Undecodable data yields a CorruptStore
// error rather than an empty collection, so a later save cannot silently wipe
// what is there.
func decodeBooks(slot string, data []byte) ([]Book, error) {
	books := []Book{}
	if err := json.Unmarshal(data, &books); err != nil {
		return nil, CorruptStore(slot, err)
	}
	if books == nil {
		// "null" decodes to a nil slice.
		books = []Book{}
	}
	return books, nil
}

// MemorySlot keeps the encoded blob in memory. It is the in-process fake used
// by tests and by the "memory" store driver.
type MemorySlot struct {
	mu   sync.Mutex
	data []byte
	// Saves counts SaveAll calls.
	Saves int
}

func NewMemorySlot() *MemorySlot {
	return &MemorySlot{}
}

// NewMemorySlotWithData starts the slot with a raw blob, e.g. to exercise
// corrupt-data handling.
func NewMemorySlotWithData(data []byte) *MemorySlot {
	return &MemorySlot{data: data}
}

func (s *MemorySlot) LoadAll() ([]Book, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.data == nil {
		return []Book{}, nil
	}
	return decodeBooks(DefaultSlot, s.data)
}

func (s *MemorySlot) SaveAll(books []Book) error {
	data, err := encodeBooks(books)
	if err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data = data
	s.Saves++
	return nil
}

// Raw returns a copy of the stored blob.
func (s *MemorySlot) Raw() []byte {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]byte(nil), s.data...)
}
