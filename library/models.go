package library

// DefaultCover is used when a book is added without a cover image, and as the
// fallback when the cover cannot be loaded.
const DefaultCover = "https://images.unsplash.com/photo-1543002588-bfa74002ed7e?w=400&h=600&fit=crop"

// Reading statuses. Any other string is stored as-is and shown verbatim.
const (
	StatusToRead   = "to-read"
	StatusReading  = "reading"
	StatusFinished = "finished"
)

// FilterAll disables a category or status filter.
const FilterAll = "all"

// Book is a single catalog entry. Field names match the persisted JSON layout.
type Book struct {
	ID        string `json:"id"`
	Title     string `json:"title"`
	Author    string `json:"author"`
	Category  string `json:"category"`
	CoverURL  string `json:"coverUrl"`
	Rating    int    `json:"rating"`
	Status    string `json:"status"`
	DateAdded string `json:"dateAdded"`
}

// BookInput holds the fields supplied when adding a book. Zero fields take the
// values from the default tags.
type BookInput struct {
	Title    string `json:"title"    mod:"trim" validate:"required"`
	Author   string `json:"author"   mod:"trim" validate:"required"`
	Category string `json:"category" mod:"trim"`
	CoverURL string `json:"coverUrl" mod:"trim" default:"https://images.unsplash.com/photo-1543002588-bfa74002ed7e?w=400&h=600&fit=crop"`
	Rating   int    `json:"rating"   validate:"min=0,max=5"`
	Status   string `json:"status"   mod:"trim" default:"to-read"`
}

// BookPatch is a partial update. Nil fields are left untouched; non-nil fields
// overwrite, including with empty strings or zero.
type BookPatch struct {
	Title    *string `json:"title"`
	Author   *string `json:"author"`
	Category *string `json:"category"`
	CoverURL *string `json:"coverUrl"`
	Rating   *int    `json:"rating"`
	Status   *string `json:"status"`
}

// Empty reports whether the patch carries no fields.
func (p BookPatch) Empty() bool {
	return p.Title == nil && p.Author == nil && p.Category == nil &&
		p.CoverURL == nil && p.Rating == nil && p.Status == nil
}

// Stats counts the collection by reading status. Books with an unrecognized
// status only count towards Total.
type Stats struct {
	Total    int `json:"total"`
	ToRead   int `json:"toRead"`
	Reading  int `json:"reading"`
	Finished int `json:"finished"`
}
