package library

import (
	"fmt"
	"strings"
	"unicode/utf8"
)

var htmlEscaper = strings.NewReplacer(
	"&", "&amp;",
	"<", "&lt;",
	">", "&gt;",
	`"`, "&quot;",
	"'", "&#039;",
)

// EscapeHTML escapes the five characters significant in HTML text and
// attribute values.
func EscapeHTML(s string) string {
	return htmlEscaper.Replace(s)
}

// StatusLabel is the human-readable name of a status. Unknown statuses are
// shown as-is.
func StatusLabel(status string) string {
	switch status {
	case StatusToRead:
		return "To Read"
	case StatusReading:
		return "Currently Reading"
	case StatusFinished:
		return "Finished"
	default:
		return status
	}
}

func StatusBadgeClass(status string) string {
	switch status {
	case StatusToRead:
		return "badge-to-read"
	case StatusReading:
		return "badge-reading"
	case StatusFinished:
		return "badge-finished"
	default:
		return "badge-primary"
	}
}

// filledStars clamps rating to the 0-5 star range.
func filledStars(rating int) int {
	return min(max(rating, 0), 5)
}

// StarRating renders five stars with the first rating of them filled.
func StarRating(rating int, interactive bool) string {
	filled := filledStars(rating)

	var sb strings.Builder
	sb.WriteString(`<div class="stars`)
	if interactive {
		sb.WriteString(` interactive`)
	}
	sb.WriteString(`">`)
	for i := 1; i <= 5; i++ {
		if i <= filled {
			fmt.Fprintf(&sb, `<span class="star filled" data-rating="%d">★</span>`, i)
		} else {
			fmt.Fprintf(&sb, `<span class="star empty" data-rating="%d">☆</span>`, i)
		}
	}
	sb.WriteString(`</div>`)
	return sb.String()
}

// BookCard renders a book as an HTML card fragment. With showActions the card
// carries Edit and Delete buttons bound to the book id.
func BookCard(b Book, showActions bool) string {
	id := EscapeHTML(b.ID)
	cover := b.CoverURL
	if cover == "" {
		cover = DefaultCover
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, `<div class="book-card" data-id="%s">`, id)
	fmt.Fprintf(&sb, `<img src="%s" alt="%s" class="book-cover" onerror="this.src='%s'">`,
		EscapeHTML(cover), EscapeHTML(b.Title), EscapeHTML(DefaultCover))
	sb.WriteString(`<div class="book-info">`)
	fmt.Fprintf(&sb, `<h3 class="book-title">%s</h3>`, EscapeHTML(b.Title))
	fmt.Fprintf(&sb, `<p class="book-author">by %s</p>`, EscapeHTML(b.Author))
	sb.WriteString(`<div class="book-meta">`)
	fmt.Fprintf(&sb, `<span class="badge badge-primary">%s</span>`, EscapeHTML(b.Category))
	fmt.Fprintf(&sb, `<span class="badge %s">%s</span>`, StatusBadgeClass(b.Status), EscapeHTML(StatusLabel(b.Status)))
	sb.WriteString(`</div>`)
	sb.WriteString(StarRating(b.Rating, false))
	if showActions {
		sb.WriteString(`<div class="mt-2 flex gap-2">`)
		fmt.Fprintf(&sb, `<button class="btn btn-sm btn-primary" onclick="editBook('%s')">Edit</button>`, id)
		fmt.Fprintf(&sb, `<button class="btn btn-sm btn-danger" onclick="confirmDelete('%s')">Delete</button>`, id)
		sb.WriteString(`</div>`)
	}
	sb.WriteString(`</div></div>`)
	return sb.String()
}

// ------------------ Terminal output ------------------

// TextStars renders the rating as five ★/☆ glyphs.
func TextStars(rating int) string {
	filled := filledStars(rating)
	return strings.Repeat("★", filled) + strings.Repeat("☆", 5-filled)
}

// TableColumns are the widths used by PrettyBook for id, title, author,
// category and status.
type TableColumns struct {
	ID, Title, Author, Category, Status int
}

// DefaultColumns fit an 80+ column terminal.
var DefaultColumns = TableColumns{ID: 8, Title: 28, Author: 20, Category: 14, Status: 17}

// ColumnsForWidth grows the title and author columns to use a wider terminal.
func ColumnsForWidth(width int) TableColumns {
	cols := DefaultColumns
	extra := width - 100
	if extra > 0 {
		cols.Title += extra / 2
		cols.Author += extra - extra/2
	}
	return cols
}

// PrettyBook formats a book for lists.
func PrettyBook(b Book, cols TableColumns) string {
	return fmt.Sprintf("%-*s %-*s %-*s %-*s %-*s %s",
		cols.ID, TruncateString(shortID(b.ID), cols.ID),
		cols.Title, TruncateString(b.Title, cols.Title),
		cols.Author, TruncateString(b.Author, cols.Author),
		cols.Category, TruncateString(b.Category, cols.Category),
		cols.Status, TruncateString(StatusLabel(b.Status), cols.Status),
		TextStars(b.Rating))
}

// PrettyHeader is the header line matching PrettyBook.
func PrettyHeader(cols TableColumns) string {
	return fmt.Sprintf("%-*s %-*s %-*s %-*s %-*s %s",
		cols.ID, "ID", cols.Title, "Title", cols.Author, "Author",
		cols.Category, "Category", cols.Status, "Status", "Rating")
}

// shortID shows the trailing random part of an id, which is what tells ids
// created in the same millisecond apart.
func shortID(id string) string {
	if len(id) <= 8 {
		return id
	}
	return id[len(id)-8:]
}

// TruncateString cuts s to maxLength runes, marking the cut with "...".
func TruncateString(s string, maxLength int) string {
	if utf8.RuneCountInString(s) <= maxLength {
		return s
	}
	r := []rune(s)
	if maxLength <= 3 {
		return string(r[:maxLength])
	}
	return string(r[:maxLength-3]) + "..."
}
