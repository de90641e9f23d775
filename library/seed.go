package library

// SampleBooks is the starter shelf added on first run.
var SampleBooks = []BookInput{
	{
		Title:    "The Great Gatsby",
		Author:   "F. Scott Fitzgerald",
		Category: "Fiction",
		CoverURL: "https://images.unsplash.com/photo-1544947950-fa07a98d237f?w=400&h=600&fit=crop",
		Rating:   5,
		Status:   StatusFinished,
	},
	{
		Title:    "To Kill a Mockingbird",
		Author:   "Harper Lee",
		Category: "Fiction",
		CoverURL: "https://images.unsplash.com/photo-1512820790803-83ca734da794?w=400&h=600&fit=crop",
		Rating:   5,
		Status:   StatusFinished,
	},
	{
		Title:    "Clean Code",
		Author:   "Robert C. Martin",
		Category: "Technical",
		CoverURL: "https://images.unsplash.com/photo-1532012197267-da84d127e765?w=400&h=600&fit=crop",
		Rating:   4,
		Status:   StatusReading,
	},
	{
		Title:    "Dune",
		Author:   "Frank Herbert",
		Category: "Science Fiction",
		CoverURL: "https://images.unsplash.com/photo-1495640388908-05fa85288e61?w=400&h=600&fit=crop",
		Rating:   5,
		Status:   StatusToRead,
	},
	{
		Title:    "The Hobbit",
		Author:   "J.R.R. Tolkien",
		Category: "Fiction",
		CoverURL: "https://images.unsplash.com/photo-1621351183012-e2f9972dd9bf?w=400&h=600&fit=crop",
		Rating:   5,
		Status:   StatusFinished,
	},
	{
		Title:    "Sapiens",
		Author:   "Yuval Noah Harari",
		Category: "History",
		CoverURL: "https://images.unsplash.com/photo-1589829085413-56de8ae18c73?w=400&h=600&fit=crop",
		Rating:   4,
		Status:   StatusReading,
	},
}

// SeedSampleData adds SampleBooks when the collection is empty and returns how
// many books were added. A non-empty collection is left alone.
func SeedSampleData(lm *LibraryManager) (int, error) {
	books, err := lm.GetAllBooks()
	if err != nil {
		return 0, err
	}
	if len(books) > 0 {
		return 0, nil
	}

	added := 0
	for _, in := range SampleBooks {
		if _, err := lm.AddBook(in); err != nil {
			return added, err
		}
		added++
	}
	return added, nil
}
