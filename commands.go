package main

import (
	"strings"

	"bookshelf/library"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

// bookFlags binds the editable book fields to a command.
type bookFlags struct {
	title, author, category, cover, status string
	rating                                  int
}

func (f *bookFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.title, "title", "", "book title")
	cmd.Flags().StringVar(&f.author, "author", "", "book author")
	cmd.Flags().StringVar(&f.category, "category", "", "category label")
	cmd.Flags().StringVar(&f.cover, "cover", "", "cover image URL")
	cmd.Flags().IntVar(&f.rating, "rating", 0, "rating from 0 to 5")
	cmd.Flags().StringVar(&f.status, "status", "", "to-read, reading or finished")
}

func (f *bookFlags) input() library.BookInput {
	return library.BookInput{
		Title:    f.title,
		Author:   f.author,
		Category: f.category,
		CoverURL: f.cover,
		Rating:   f.rating,
		Status:   f.status,
	}
}

// patch includes only the flags given on the command line.
func (f *bookFlags) patch(cmd *cobra.Command) library.BookPatch {
	var p library.BookPatch
	changed := cmd.Flags().Changed
	if changed("title") {
		p.Title = &f.title
	}
	if changed("author") {
		p.Author = &f.author
	}
	if changed("category") {
		p.Category = &f.category
	}
	if changed("cover") {
		p.CoverURL = &f.cover
	}
	if changed("rating") {
		p.Rating = &f.rating
	}
	if changed("status") {
		p.Status = &f.status
	}
	return p
}

// filterFlags binds the list filters.
type filterFlags struct {
	query, category, status, sort string
}

func (f *filterFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&f.query, "query", "q", "", "match title or author")
	cmd.Flags().StringVar(&f.category, "category", library.FilterAll, "exact category, or all")
	cmd.Flags().StringVar(&f.status, "status", library.FilterAll, "exact status, or all")
	cmd.Flags().StringVar(&f.sort, "sort", "", "one of "+strings.Join(library.SortKeys, ", "))
}

func (f *filterFlags) books(mgr *library.LibraryManager) ([]library.Book, error) {
	books, err := mgr.CombineFilters(f.query, f.category, f.status)
	if err != nil {
		return nil, err
	}
	return library.SortBooks(books, f.sort), nil
}

func newAddCmd(a *app) *cobra.Command {
	var flags bookFlags
	cmd := &cobra.Command{
		Use:   "add",
		Short: "Add a book",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			book, err := a.mgr.AddBook(flags.input())
			if err != nil {
				return err
			}
			a.printf("Added book %s\n", book.ID)
			a.printBooks([]library.Book{*book})
			return nil
		},
	}
	flags.register(cmd)
	return cmd
}

func newListCmd(a *app) *cobra.Command {
	var filters filterFlags
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List books, optionally filtered and sorted",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			books, err := filters.books(a.mgr)
			if err != nil {
				return err
			}
			if len(books) == 0 {
				a.println("No books found.")
				return nil
			}
			a.printBooks(books)
			return nil
		},
	}
	filters.register(cmd)
	return cmd
}

func newShowCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "show <id>",
		Short: "Show a single book",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := a.mgr.ResolveID(args[0])
			if err != nil {
				return err
			}
			book, ok, err := a.mgr.GetBook(id)
			if err != nil {
				return err
			}
			if !ok {
				return library.NotFound("Book " + id)
			}
			a.printDetails(*book)
			return nil
		},
	}
}

func newUpdateCmd(a *app) *cobra.Command {
	var flags bookFlags
	cmd := &cobra.Command{
		Use:   "update <id>",
		Short: "Change the given fields of a book",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			patch := flags.patch(cmd)
			if patch.Empty() {
				return errors.New("nothing to update: pass at least one field flag")
			}
			id, err := a.mgr.ResolveID(args[0])
			if err != nil {
				return err
			}
			book, err := a.mgr.UpdateBook(id, patch)
			if err != nil {
				return err
			}
			a.printf("Updated book %s\n", book.ID)
			a.printDetails(*book)
			return nil
		},
	}
	flags.register(cmd)
	return cmd
}

func newDeleteCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a book",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := a.mgr.ResolveID(args[0])
			if err != nil {
				return err
			}
			remaining, err := a.mgr.DeleteBook(id)
			if err != nil {
				return err
			}
			a.printf("Deleted book %s (%d remaining)\n", id, len(remaining))
			return nil
		},
	}
}

func newStatsCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Count books by status",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			stats, err := a.mgr.Stats()
			if err != nil {
				return err
			}
			a.printStats(stats)
			return nil
		},
	}
}

func newRenderCmd(a *app) *cobra.Command {
	var (
		filters filterFlags
		actions bool
	)
	cmd := &cobra.Command{
		Use:   "render",
		Short: "Print books as HTML cards",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			books, err := filters.books(a.mgr)
			if err != nil {
				return err
			}
			for _, b := range books {
				a.println(library.BookCard(b, actions))
			}
			return nil
		},
	}
	filters.register(cmd)
	cmd.Flags().BoolVar(&actions, "actions", false, "include edit and delete buttons")
	return cmd
}

func newShellCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "shell",
		Short: "Manage the catalog interactively",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runShell()
		},
	}
}

// ------------------ Output ------------------

func (a *app) printBooks(books []library.Book) {
	cols := a.columns()
	header := library.PrettyHeader(cols)
	a.println(header)
	a.println(strings.Repeat("-", len([]rune(header))))
	for _, b := range books {
		a.println(library.PrettyBook(b, cols))
	}
}

func (a *app) printDetails(b library.Book) {
	a.printf("ID:        %s\n", b.ID)
	a.printf("Title:     %s\n", b.Title)
	a.printf("Author:    %s\n", b.Author)
	a.printf("Category:  %s\n", b.Category)
	a.printf("Status:    %s\n", library.StatusLabel(b.Status))
	a.printf("Rating:    %s (%d)\n", library.TextStars(b.Rating), b.Rating)
	a.printf("Cover:     %s\n", b.CoverURL)
	a.printf("Added:     %s\n", b.DateAdded)
}

func (a *app) printStats(s library.Stats) {
	a.printf("Total:              %d\n", s.Total)
	a.printf("To Read:            %d\n", s.ToRead)
	a.printf("Currently Reading:  %d\n", s.Reading)
	a.printf("Finished:           %d\n", s.Finished)
}
