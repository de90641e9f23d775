package library

import (
	"cmp"
	"slices"
	"strings"
	"time"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// Sort keys understood by SortBooks.
const (
	SortTitleAsc   = "title-asc"
	SortTitleDesc  = "title-desc"
	SortRatingHigh = "rating-high"
	SortRatingLow  = "rating-low"
	SortDateNew    = "date-new"
	SortDateOld    = "date-old"
)

// SortKeys lists the recognized sort keys in display order.
var SortKeys = []string{SortTitleAsc, SortTitleDesc, SortRatingHigh, SortRatingLow, SortDateNew, SortDateOld}

// SortLanguage drives the collation used for title sorting.
var SortLanguage = language.English

// ------------------ Snapshot queries ------------------

// SearchBooks matches q case-insensitively against title or author. A blank
// query matches everything.
func (lm *LibraryManager) SearchBooks(q string) ([]Book, error) {
	books, err := lm.GetAllBooks()
	if err != nil {
		return nil, err
	}
	return Search(books, q), nil
}

func (lm *LibraryManager) FilterByCategory(category string) ([]Book, error) {
	books, err := lm.GetAllBooks()
	if err != nil {
		return nil, err
	}
	return ByCategory(books, category), nil
}

func (lm *LibraryManager) FilterByStatus(status string) ([]Book, error) {
	books, err := lm.GetAllBooks()
	if err != nil {
		return nil, err
	}
	return ByStatus(books, status), nil
}

// CombineFilters loads the collection and applies CombinedFilter.
func (lm *LibraryManager) CombineFilters(q, category, status string) ([]Book, error) {
	books, err := lm.GetAllBooks()
	if err != nil {
		return nil, err
	}
	return CombinedFilter(books, q, category, status), nil
}

// ------------------ Pure filters ------------------

// Search returns the books whose title or author contains q, ignoring case.
func Search(books []Book, q string) []Book {
	if strings.TrimSpace(q) == "" {
		return slices.Clone(books)
	}
	q = strings.ToLower(q)
	return filter(books, func(b Book) bool {
		return strings.Contains(strings.ToLower(b.Title), q) ||
			strings.Contains(strings.ToLower(b.Author), q)
	})
}

// ByCategory keeps exact, case-sensitive category matches. "all" keeps
// everything.
func ByCategory(books []Book, category string) []Book {
	if category == FilterAll {
		return slices.Clone(books)
	}
	return filter(books, func(b Book) bool { return b.Category == category })
}

// ByStatus keeps exact status matches. "all" keeps everything.
func ByStatus(books []Book, status string) []Book {
	if status == FilterAll {
		return slices.Clone(books)
	}
	return filter(books, func(b Book) bool { return b.Status == status })
}

// CombinedFilter narrows books by search, then category, then status. Empty
// or "all" category and status are skipped, as is a blank query.
func CombinedFilter(books []Book, q, category, status string) []Book {
	result := slices.Clone(books)
	if strings.TrimSpace(q) != "" {
		result = Search(result, q)
	}
	if category != "" && category != FilterAll {
		result = ByCategory(result, category)
	}
	if status != "" && status != FilterAll {
		result = ByStatus(result, status)
	}
	return result
}

func filter(books []Book, keep func(Book) bool) []Book {
	out := make([]Book, 0, len(books))
	for _, b := range books {
		if keep(b) {
			out = append(out, b)
		}
	}
	return out
}

// ------------------ Sorting ------------------

// SortBooks returns a sorted copy of books; the input is never reordered.
// Equal keys keep their input order, and an unknown key returns the books in
// input order.
func SortBooks(books []Book, key string) []Book {
	sorted := slices.Clone(books)
	if sorted == nil {
		sorted = []Book{}
	}

	var compare func(a, b Book) int
	switch key {
	case SortTitleAsc, SortTitleDesc:
		col := collate.New(SortLanguage)
		compare = func(a, b Book) int { return col.CompareString(a.Title, b.Title) }
		if key == SortTitleDesc {
			compare = reverse(compare)
		}
	case SortRatingHigh:
		compare = func(a, b Book) int { return cmp.Compare(b.Rating, a.Rating) }
	case SortRatingLow:
		compare = func(a, b Book) int { return cmp.Compare(a.Rating, b.Rating) }
	case SortDateNew:
		compare = func(a, b Book) int { return parseDate(b.DateAdded).Compare(parseDate(a.DateAdded)) }
	case SortDateOld:
		compare = func(a, b Book) int { return parseDate(a.DateAdded).Compare(parseDate(b.DateAdded)) }
	default:
		return sorted
	}

	slices.SortStableFunc(sorted, compare)
	return sorted
}

func reverse(compare func(a, b Book) int) func(a, b Book) int {
	return func(a, b Book) int { return compare(b, a) }
}

// parseDate reads an ISO-8601 timestamp. Unparseable values sort as the zero
// time.
func parseDate(s string) time.Time {
	t, err := time.Parse(time.RFC3339Nano, s)
	if err != nil {
		return time.Time{}
	}
	return t
}
