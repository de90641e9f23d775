package main

import (
	"bufio"
	"strconv"
	"strings"

	"bookshelf/library"
)

const shellHelp = `Available commands:
  Books: add book, list books, search book, show book, update book, delete book
  Views: filter books, sort books, stats
  System: help, exit`

// runShell reads commands line by line until "exit" or end of input.
func (a *app) runShell() error {
	sc := bufio.NewScanner(a.in)
	prompts := a.interactive()

	if prompts {
		a.println("Welcome to your bookshelf!")
		a.println(shellHelp)
	}

	for {
		if prompts {
			a.printf("\n> ")
		}
		if !sc.Scan() {
			break
		}
		cmd := strings.TrimSpace(sc.Text())

		switch cmd {
		case "":
			continue
		case "add book":
			a.handleAddBook(sc)
		case "list books":
			a.handleListBooks()
		case "search book":
			a.handleSearchBooks(sc)
		case "show book":
			a.handleShowBook(sc)
		case "update book":
			a.handleUpdateBook(sc)
		case "delete book":
			a.handleDeleteBook(sc)
		case "filter books":
			a.handleFilterBooks(sc)
		case "sort books":
			a.handleSortBooks(sc)
		case "stats":
			a.handleStats()
		case "help":
			a.println(shellHelp)
		case "exit":
			a.println("Goodbye!")
			return nil
		default:
			a.println("Unknown command. Type 'help' to see the available commands.")
		}
	}
	return sc.Err()
}

// ask prints prompt and returns the trimmed reply; ok is false at end of input.
func (a *app) ask(sc *bufio.Scanner, prompt string) (string, bool) {
	a.printf("%s", prompt)
	if !sc.Scan() {
		return "", false
	}
	return strings.TrimSpace(sc.Text()), true
}

func (a *app) handleAddBook(sc *bufio.Scanner) {
	var in library.BookInput
	var ok bool
	if in.Title, ok = a.ask(sc, "Title: "); !ok {
		return
	}
	if in.Author, ok = a.ask(sc, "Author: "); !ok {
		return
	}
	if in.Category, ok = a.ask(sc, "Category: "); !ok {
		return
	}
	if in.CoverURL, ok = a.ask(sc, "Cover URL (optional): "); !ok {
		return
	}
	ratingStr, ok := a.ask(sc, "Rating 0-5 (optional): ")
	if !ok {
		return
	}
	if ratingStr != "" {
		rating, err := strconv.Atoi(ratingStr)
		if err != nil {
			a.printf("Invalid rating: %s\n", ratingStr)
			return
		}
		in.Rating = rating
	}
	if in.Status, ok = a.ask(sc, "Status [to-read|reading|finished] (optional): "); !ok {
		return
	}

	book, err := a.mgr.AddBook(in)
	if err != nil {
		a.printf("Error adding book: %v\n", err)
		return
	}
	a.printf("Added '%s' with ID %s\n", book.Title, book.ID)
}

func (a *app) handleListBooks() {
	books, err := a.mgr.GetAllBooks()
	if err != nil {
		a.printf("Error: %v\n", err)
		return
	}
	if len(books) == 0 {
		a.println("No books in library.")
		return
	}
	a.printBooks(books)
}

func (a *app) handleSearchBooks(sc *bufio.Scanner) {
	query, ok := a.ask(sc, "Query: ")
	if !ok {
		return
	}

	books, err := a.mgr.SearchBooks(query)
	if err != nil {
		a.printf("Error: %v\n", err)
		return
	}
	if len(books) == 0 {
		a.printf("No books found matching '%s'.\n", query)
		return
	}

	a.printf("Found %d book(s) matching '%s':\n", len(books), query)
	a.printBooks(books)
}

// readID asks for a book id and resolves shortened ids.
func (a *app) readID(sc *bufio.Scanner) (string, bool) {
	ref, ok := a.ask(sc, "Book ID: ")
	if !ok {
		return "", false
	}
	id, err := a.mgr.ResolveID(ref)
	if err != nil {
		a.printf("Error: %v\n", err)
		return "", false
	}
	return id, true
}

func (a *app) handleShowBook(sc *bufio.Scanner) {
	id, ok := a.readID(sc)
	if !ok {
		return
	}
	book, found, err := a.mgr.GetBook(id)
	if err != nil {
		a.printf("Error: %v\n", err)
		return
	}
	if !found {
		a.printf("Book %s not found.\n", id)
		return
	}
	a.printDetails(*book)
}

// handleUpdateBook prompts for every field; blank answers leave the field as
// it is.
func (a *app) handleUpdateBook(sc *bufio.Scanner) {
	id, ok := a.readID(sc)
	if !ok {
		return
	}

	var patch library.BookPatch
	for _, f := range []struct {
		prompt string
		dst    **string
	}{
		{"New title (blank to keep): ", &patch.Title},
		{"New author (blank to keep): ", &patch.Author},
		{"New category (blank to keep): ", &patch.Category},
		{"New cover URL (blank to keep): ", &patch.CoverURL},
		{"New status (blank to keep): ", &patch.Status},
	} {
		v, ok := a.ask(sc, f.prompt)
		if !ok {
			return
		}
		if v != "" {
			*f.dst = &v
		}
	}

	ratingStr, ok := a.ask(sc, "New rating 0-5 (blank to keep): ")
	if !ok {
		return
	}
	if ratingStr != "" {
		rating, err := strconv.Atoi(ratingStr)
		if err != nil {
			a.printf("Invalid rating: %s\n", ratingStr)
			return
		}
		patch.Rating = &rating
	}

	if patch.Empty() {
		a.println("Nothing to update.")
		return
	}

	book, err := a.mgr.UpdateBook(id, patch)
	if err != nil {
		a.printf("Error updating book: %v\n", err)
		return
	}
	a.printf("Updated '%s'\n", book.Title)
}

func (a *app) handleDeleteBook(sc *bufio.Scanner) {
	id, ok := a.readID(sc)
	if !ok {
		return
	}
	confirm, ok := a.ask(sc, "Delete this book? [y/N]: ")
	if !ok {
		return
	}
	if !strings.EqualFold(confirm, "y") && !strings.EqualFold(confirm, "yes") {
		a.println("Cancelled.")
		return
	}

	remaining, err := a.mgr.DeleteBook(id)
	if err != nil {
		a.printf("Error deleting book: %v\n", err)
		return
	}
	a.printf("Deleted. %d book(s) left.\n", len(remaining))
}

func (a *app) handleFilterBooks(sc *bufio.Scanner) {
	query, ok := a.ask(sc, "Query (blank for any): ")
	if !ok {
		return
	}
	category, ok := a.ask(sc, "Category (blank or 'all' for any): ")
	if !ok {
		return
	}
	status, ok := a.ask(sc, "Status (blank or 'all' for any): ")
	if !ok {
		return
	}

	books, err := a.mgr.CombineFilters(query, category, status)
	if err != nil {
		a.printf("Error: %v\n", err)
		return
	}
	if len(books) == 0 {
		a.println("No matching books.")
		return
	}
	a.printBooks(books)
}

func (a *app) handleSortBooks(sc *bufio.Scanner) {
	key, ok := a.ask(sc, "Sort by ("+strings.Join(library.SortKeys, ", ")+"): ")
	if !ok {
		return
	}

	books, err := a.mgr.GetAllBooks()
	if err != nil {
		a.printf("Error: %v\n", err)
		return
	}
	if len(books) == 0 {
		a.println("No books in library.")
		return
	}
	a.printBooks(library.SortBooks(books, key))
}

func (a *app) handleStats() {
	stats, err := a.mgr.Stats()
	if err != nil {
		a.printf("Error: %v\n", err)
		return
	}
	a.printStats(stats)
}
