package library

import (
	"fmt"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/robinjoseph08/golib/logger"
)

// dateLayout matches the millisecond UTC timestamps already present in
// persisted collections.
const dateLayout = "2006-01-02T15:04:05.000Z07:00"

// LibraryManager owns every read and write of the collection. It keeps no
// copy of the books between calls: each operation loads the slot, works on
// that snapshot and, for mutations, writes the whole collection back.
type LibraryManager struct {
	slot Slot
	norm *Normalizer
	log  logger.Logger

	now   func() time.Time
	newID func() string

	// mu serializes load-mutate-save so concurrent callers can't lose updates.
	mu sync.Mutex
}

// Option configures a LibraryManager.
type Option func(*LibraryManager)

func WithLogger(log logger.Logger) Option {
	return func(lm *LibraryManager) { lm.log = log }
}

// WithClock replaces time.Now for dateAdded stamps.
func WithClock(now func() time.Time) Option {
	return func(lm *LibraryManager) { lm.now = now }
}

// WithIDGenerator replaces the default UUIDv7 generator.
func WithIDGenerator(newID func() string) Option {
	return func(lm *LibraryManager) { lm.newID = newID }
}

// NewLibraryManager wraps slot with the catalog operations.
func NewLibraryManager(slot Slot, opts ...Option) *LibraryManager {
	lm := &LibraryManager{
		slot:  slot,
		norm:  NewNormalizer(),
		log:   logger.New(),
		now:   time.Now,
		newID: newID,
	}
	for _, opt := range opts {
		opt(lm)
	}
	return lm
}

// newID returns a UUIDv7: a millisecond timestamp followed by random bits, so
// ids stay unique across restarts without any bookkeeping. Collisions are not
// checked.
func newID() string {
	id, err := uuid.NewV7()
	if err != nil {
		return uuid.NewString()
	}
	return id.String()
}

// ------------------ Records ------------------

// AddBook normalizes in, appends the new record and persists the collection.
func (lm *LibraryManager) AddBook(in BookInput) (*Book, error) {
	if err := lm.norm.Input(&in); err != nil {
		return nil, err
	}

	lm.mu.Lock()
	defer lm.mu.Unlock()

	books, err := lm.slot.LoadAll()
	if err != nil {
		return nil, err
	}

	book := newBook(lm.newID(), lm.now().UTC().Format(dateLayout), in)
	books = append(books, book)
	if err := lm.slot.SaveAll(books); err != nil {
		return nil, err
	}

	lm.log.Debug("book added", logger.Data{"book_id": book.ID, "total": len(books)})
	return &book, nil
}

// UpdateBook merges the present patch fields over the first book with id.
// Nothing is written when the id is unknown.
func (lm *LibraryManager) UpdateBook(id string, patch BookPatch) (*Book, error) {
	if err := lm.norm.Patch(&patch); err != nil {
		return nil, err
	}

	lm.mu.Lock()
	defer lm.mu.Unlock()

	books, err := lm.slot.LoadAll()
	if err != nil {
		return nil, err
	}

	idx := indexOf(books, id)
	if idx == -1 {
		return nil, NotFound("Book " + id)
	}

	patch.apply(&books[idx])
	if err := lm.slot.SaveAll(books); err != nil {
		return nil, err
	}

	updated := books[idx]
	lm.log.Debug("book updated", logger.Data{"book_id": id})
	return &updated, nil
}

// DeleteBook removes every record with id and returns what is left. An unknown
// id still rewrites the unchanged collection.
func (lm *LibraryManager) DeleteBook(id string) ([]Book, error) {
	lm.mu.Lock()
	defer lm.mu.Unlock()

	books, err := lm.slot.LoadAll()
	if err != nil {
		return nil, err
	}

	kept := make([]Book, 0, len(books))
	for _, b := range books {
		if b.ID != id {
			kept = append(kept, b)
		}
	}
	if err := lm.slot.SaveAll(kept); err != nil {
		return nil, err
	}

	lm.log.Debug("book deleted", logger.Data{"book_id": id, "removed": len(books) - len(kept)})
	return kept, nil
}

// GetBook returns the first book with id. ok is false when there is none.
func (lm *LibraryManager) GetBook(id string) (book *Book, ok bool, err error) {
	books, err := lm.GetAllBooks()
	if err != nil {
		return nil, false, err
	}
	idx := indexOf(books, id)
	if idx == -1 {
		return nil, false, nil
	}
	return &books[idx], true, nil
}

// GetAllBooks returns a fresh snapshot of the collection in insertion order.
func (lm *LibraryManager) GetAllBooks() ([]Book, error) {
	lm.mu.Lock()
	defer lm.mu.Unlock()
	return lm.slot.LoadAll()
}

// Reset replaces the collection with an empty one.
func (lm *LibraryManager) Reset() error {
	lm.mu.Lock()
	defer lm.mu.Unlock()
	return lm.slot.SaveAll(nil)
}

// ResolveID turns a user-typed id into a full one. An exact match wins;
// otherwise ref must be the suffix of exactly one id, which is how ids are
// shortened in listings.
func (lm *LibraryManager) ResolveID(ref string) (string, error) {
	ref = strings.TrimSpace(ref)
	if ref == "" {
		return "", ValidationError(`"id" is required`)
	}

	books, err := lm.GetAllBooks()
	if err != nil {
		return "", err
	}
	if indexOf(books, ref) != -1 {
		return ref, nil
	}

	var matches []string
	for _, b := range books {
		if strings.HasSuffix(b.ID, ref) && !slices.Contains(matches, b.ID) {
			matches = append(matches, b.ID)
		}
	}
	switch len(matches) {
	case 0:
		return "", NotFound("Book " + ref)
	case 1:
		return matches[0], nil
	default:
		return "", ValidationError(fmt.Sprintf("id %q is ambiguous: matches %d books", ref, len(matches)))
	}
}

func indexOf(books []Book, id string) int {
	for i := range books {
		if books[i].ID == id {
			return i
		}
	}
	return -1
}
