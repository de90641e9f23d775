package library

// Stats counts the collection by status.
func (lm *LibraryManager) Stats() (Stats, error) {
	books, err := lm.GetAllBooks()
	if err != nil {
		return Stats{}, err
	}
	return CountByStatus(books), nil
}

// CountByStatus tallies books in a single pass. Unknown statuses only add to
// Total.
func CountByStatus(books []Book) Stats {
	s := Stats{Total: len(books)}
	for _, b := range books {
		switch b.Status {
		case StatusToRead:
			s.ToRead++
		case StatusReading:
			s.Reading++
		case StatusFinished:
			s.Finished++
		}
	}
	return s
}
