package library

import (
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/pkg/errors"
	"github.com/robinjoseph08/golib/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testNow = time.Date(2024, 1, 2, 3, 4, 5, 678000000, time.UTC)

// fixedClock returns testNow, advancing one second per call.
func fixedClock() func() time.Time {
	var mu sync.Mutex
	next := testNow
	return func() time.Time {
		mu.Lock()
		defer mu.Unlock()
		t := next
		next = next.Add(time.Second)
		return t
	}
}

func newManager(t *testing.T, opts ...Option) (*LibraryManager, *MemorySlot) {
	t.Helper()
	slot := NewMemorySlot()
	opts = append([]Option{WithClock(fixedClock()), WithLogger(logger.NewWithLevel("error"))}, opts...)
	return NewLibraryManager(slot, opts...), slot
}

func seedBooks(t *testing.T, slot Slot, books ...Book) {
	t.Helper()
	require.NoError(t, slot.SaveAll(books))
}

func TestAddBook_Defaults(t *testing.T) {
	t.Parallel()
	mgr, slot := newManager(t)

	book, err := mgr.AddBook(BookInput{Title: "  Dune ", Author: "Frank Herbert", Category: "Science Fiction"})
	require.NoError(t, err)

	assert.NotEmpty(t, book.ID)
	assert.Equal(t, "Dune", book.Title)
	assert.Equal(t, "Frank Herbert", book.Author)
	assert.Equal(t, "Science Fiction", book.Category)
	assert.Equal(t, DefaultCover, book.CoverURL)
	assert.Equal(t, 0, book.Rating)
	assert.Equal(t, StatusToRead, book.Status)
	assert.Equal(t, "2024-01-02T03:04:05.678Z", book.DateAdded)

	books, err := slot.LoadAll()
	require.NoError(t, err)
	require.Len(t, books, 1)
	assert.Equal(t, *book, books[0])
}

func TestAddBook_KeepsGivenFields(t *testing.T) {
	t.Parallel()
	mgr, _ := newManager(t)

	book, err := mgr.AddBook(BookInput{
		Title:    "Clean Code",
		Author:   "Robert C. Martin",
		CoverURL: "https://example.com/cc.jpg",
		Rating:   4,
		Status:   "abandoned",
	})
	require.NoError(t, err)

	assert.Equal(t, "https://example.com/cc.jpg", book.CoverURL)
	assert.Equal(t, 4, book.Rating)
	assert.Equal(t, "abandoned", book.Status, "unknown statuses are stored as given")
}

func TestAddBook_AppendsInOrder(t *testing.T) {
	t.Parallel()
	mgr, _ := newManager(t)

	for _, title := range []string{"A", "B", "C"} {
		_, err := mgr.AddBook(BookInput{Title: title, Author: "X"})
		require.NoError(t, err)
	}

	books, err := mgr.GetAllBooks()
	require.NoError(t, err)
	require.Len(t, books, 3)
	assert.Equal(t, "A", books[0].Title)
	assert.Equal(t, "B", books[1].Title)
	assert.Equal(t, "C", books[2].Title)
}

func TestAddBook_Validation(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		input   BookInput
		message string
	}{
		{"missing title", BookInput{Author: "Someone"}, `"title" is required`},
		{"blank title", BookInput{Title: "   ", Author: "Someone"}, `"title" is required`},
		{"missing author", BookInput{Title: "Something"}, `"author" is required`},
		{"rating too high", BookInput{Title: "T", Author: "A", Rating: 6}, `"rating" must be less than or equal to 5`},
		{"negative rating", BookInput{Title: "T", Author: "A", Rating: -1}, `"rating" must be greater than or equal to 0`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			mgr, slot := newManager(t)

			_, err := mgr.AddBook(tt.input)
			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrValidation))
			assert.Equal(t, tt.message, err.Error())
			assert.Equal(t, 0, slot.Saves, "nothing is persisted on invalid input")
		})
	}
}

func TestAddBook_UniqueIDs(t *testing.T) {
	t.Parallel()
	mgr := NewLibraryManager(NewMemorySlot(), WithLogger(logger.NewWithLevel("error")))

	seen := map[string]bool{}
	for i := 0; i < 200; i++ {
		book, err := mgr.AddBook(BookInput{Title: fmt.Sprintf("Book %d", i), Author: "A"})
		require.NoError(t, err)
		assert.False(t, seen[book.ID], "duplicate id %s", book.ID)
		seen[book.ID] = true
	}
	assert.Len(t, seen, 200)
}

func TestAddBook_Concurrent(t *testing.T) {
	t.Parallel()
	mgr, _ := newManager(t)

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, err := mgr.AddBook(BookInput{Title: fmt.Sprintf("Book %d", i), Author: "A"})
			assert.NoError(t, err)
		}(i)
	}
	wg.Wait()

	books, err := mgr.GetAllBooks()
	require.NoError(t, err)
	assert.Len(t, books, 20, "no update may be lost")
}

func TestUpdateBook_PartialMerge(t *testing.T) {
	t.Parallel()
	mgr, slot := newManager(t)
	seedBooks(t, slot, Book{ID: "x", Title: "Dune", Author: "Frank Herbert", Rating: 3, Status: StatusToRead, DateAdded: "2024-01-01T00:00:00.000Z"})

	rating := 5
	book, err := mgr.UpdateBook("x", BookPatch{Rating: &rating})
	require.NoError(t, err)

	assert.Equal(t, Book{ID: "x", Title: "Dune", Author: "Frank Herbert", Rating: 5, Status: StatusToRead, DateAdded: "2024-01-01T00:00:00.000Z"}, *book)

	stored, ok, err := mgr.GetBook("x")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, *book, *stored)
}

func TestUpdateBook_FalsyValuesOverwrite(t *testing.T) {
	t.Parallel()
	mgr, slot := newManager(t)
	seedBooks(t, slot, Book{ID: "x", Title: "Dune", Author: "Frank Herbert", Category: "Fiction", Rating: 4, Status: StatusReading})

	empty, zero := "", 0
	book, err := mgr.UpdateBook("x", BookPatch{Category: &empty, Rating: &zero})
	require.NoError(t, err)

	assert.Equal(t, "", book.Category)
	assert.Equal(t, 0, book.Rating)
	assert.Equal(t, StatusReading, book.Status)
}

func TestUpdateBook_KeepsIDAndDate(t *testing.T) {
	t.Parallel()
	mgr, _ := newManager(t)

	created, err := mgr.AddBook(BookInput{Title: "Dune", Author: "Frank Herbert"})
	require.NoError(t, err)

	title, status := "Dune Messiah", StatusFinished
	updated, err := mgr.UpdateBook(created.ID, BookPatch{Title: &title, Status: &status})
	require.NoError(t, err)

	assert.Equal(t, created.ID, updated.ID)
	assert.Equal(t, created.DateAdded, updated.DateAdded)
	assert.Equal(t, "Dune Messiah", updated.Title)
}

func TestUpdateBook_FirstMatchOnly(t *testing.T) {
	t.Parallel()
	mgr, slot := newManager(t)
	seedBooks(t, slot,
		Book{ID: "dup", Title: "First", Author: "A"},
		Book{ID: "dup", Title: "Second", Author: "A"},
	)

	title := "Changed"
	_, err := mgr.UpdateBook("dup", BookPatch{Title: &title})
	require.NoError(t, err)

	books, err := slot.LoadAll()
	require.NoError(t, err)
	assert.Equal(t, "Changed", books[0].Title)
	assert.Equal(t, "Second", books[1].Title)
}

func TestUpdateBook_NotFound(t *testing.T) {
	t.Parallel()
	mgr, slot := newManager(t)
	seedBooks(t, slot, Book{ID: "x", Title: "Dune", Author: "A"})
	saves := slot.Saves

	rating := 2
	book, err := mgr.UpdateBook("missing", BookPatch{Rating: &rating})
	assert.Nil(t, book)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrNotFound))
	assert.Equal(t, saves, slot.Saves, "no save when the id is unknown")
}

func TestUpdateBook_LeavesCallerStrings(t *testing.T) {
	t.Parallel()
	mgr, slot := newManager(t)
	seedBooks(t, slot, Book{ID: "x", Title: "Old", Author: "A"})

	title := "  New  "
	book, err := mgr.UpdateBook("x", BookPatch{Title: &title})
	require.NoError(t, err)

	assert.Equal(t, "New", book.Title)
	assert.Equal(t, "  New  ", title)
}

func TestUpdateBook_Validation(t *testing.T) {
	t.Parallel()
	mgr, slot := newManager(t)
	seedBooks(t, slot, Book{ID: "x", Title: "Dune", Author: "A", Rating: 3})

	blank := "  "
	_, err := mgr.UpdateBook("x", BookPatch{Title: &blank})
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrValidation))

	tooHigh := 9
	_, err = mgr.UpdateBook("x", BookPatch{Rating: &tooHigh})
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrValidation))

	book, _, err := mgr.GetBook("x")
	require.NoError(t, err)
	assert.Equal(t, "Dune", book.Title)
	assert.Equal(t, 3, book.Rating)
}

func TestDeleteBook(t *testing.T) {
	t.Parallel()
	mgr, slot := newManager(t)
	seedBooks(t, slot,
		Book{ID: "id1", Title: "One", Author: "A"},
		Book{ID: "id2", Title: "Two", Author: "A"},
		Book{ID: "id3", Title: "Three", Author: "A"},
	)

	remaining, err := mgr.DeleteBook("id2")
	require.NoError(t, err)
	require.Len(t, remaining, 2)
	assert.Equal(t, "id1", remaining[0].ID)
	assert.Equal(t, "id3", remaining[1].ID)

	stored, err := slot.LoadAll()
	require.NoError(t, err)
	assert.Equal(t, remaining, stored)
}

func TestDeleteBook_RemovesDuplicates(t *testing.T) {
	t.Parallel()
	mgr, slot := newManager(t)
	seedBooks(t, slot,
		Book{ID: "dup", Title: "One", Author: "A"},
		Book{ID: "keep", Title: "Two", Author: "A"},
		Book{ID: "dup", Title: "Three", Author: "A"},
	)

	remaining, err := mgr.DeleteBook("dup")
	require.NoError(t, err)
	require.Len(t, remaining, 1)
	assert.Equal(t, "keep", remaining[0].ID)
}

func TestDeleteBook_UnknownIDStillSaves(t *testing.T) {
	t.Parallel()
	mgr, slot := newManager(t)
	seedBooks(t, slot, Book{ID: "id1", Title: "One", Author: "A"})
	saves := slot.Saves

	remaining, err := mgr.DeleteBook("nope")
	require.NoError(t, err)
	assert.Len(t, remaining, 1)
	assert.Equal(t, saves+1, slot.Saves)
}

func TestGetBook(t *testing.T) {
	t.Parallel()
	mgr, slot := newManager(t)
	seedBooks(t, slot, Book{ID: "id1", Title: "One", Author: "A"})

	book, ok, err := mgr.GetBook("id1")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "One", book.Title)

	book, ok, err = mgr.GetBook("missing")
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Nil(t, book)
}

func TestGetAllBooks_EmptySlot(t *testing.T) {
	t.Parallel()
	mgr, _ := newManager(t)

	books, err := mgr.GetAllBooks()
	require.NoError(t, err)
	assert.NotNil(t, books)
	assert.Empty(t, books)
}

func TestManager_CorruptStore(t *testing.T) {
	t.Parallel()
	slot := NewMemorySlotWithData([]byte(`{"not": "an array"`))
	mgr := NewLibraryManager(slot, WithLogger(logger.NewWithLevel("error")))

	_, err := mgr.GetAllBooks()
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrCorruptStore))

	_, err = mgr.AddBook(BookInput{Title: "T", Author: "A"})
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrCorruptStore))
	assert.Equal(t, `{"not": "an array"`, string(slot.Raw()), "corrupt data is not overwritten")
}

func TestResolveID(t *testing.T) {
	t.Parallel()
	mgr, slot := newManager(t)
	seedBooks(t, slot,
		Book{ID: "0190aaaa-1111", Title: "One", Author: "A"},
		Book{ID: "0190bbbb-2222", Title: "Two", Author: "A"},
		Book{ID: "0190cccc-3222", Title: "Three", Author: "A"},
	)

	id, err := mgr.ResolveID("0190aaaa-1111")
	require.NoError(t, err)
	assert.Equal(t, "0190aaaa-1111", id)

	id, err = mgr.ResolveID("1111")
	require.NoError(t, err)
	assert.Equal(t, "0190aaaa-1111", id)

	_, err = mgr.ResolveID("222")
	assert.True(t, errors.Is(err, ErrValidation), "suffix shared by two books")

	_, err = mgr.ResolveID("9999")
	assert.True(t, errors.Is(err, ErrNotFound))

	_, err = mgr.ResolveID(" ")
	assert.True(t, errors.Is(err, ErrValidation))
}

func TestReset(t *testing.T) {
	t.Parallel()
	mgr, slot := newManager(t)
	seedBooks(t, slot, Book{ID: "id1", Title: "One", Author: "A"})

	require.NoError(t, mgr.Reset())

	books, err := mgr.GetAllBooks()
	require.NoError(t, err)
	assert.Empty(t, books)
	assert.Equal(t, "[]", string(slot.Raw()))
}

func TestWithIDGenerator(t *testing.T) {
	t.Parallel()
	n := 0
	mgr, _ := newManager(t, WithIDGenerator(func() string {
		n++
		return fmt.Sprintf("book-%d", n)
	}))

	a, err := mgr.AddBook(BookInput{Title: "A", Author: "X"})
	require.NoError(t, err)
	b, err := mgr.AddBook(BookInput{Title: "B", Author: "X"})
	require.NoError(t, err)

	assert.Equal(t, "book-1", a.ID)
	assert.Equal(t, "book-2", b.ID)
}
