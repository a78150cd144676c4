package library

import (
	"fmt"
	"log/slog"
	"strings"
	"sync"
)

// firstBookID is where catalog ids start; ids grow monotonically from here.
const firstBookID = 1001

// SearchField selects which book attribute a search matches against.
type SearchField string

// Search fields. Title, author and genre match case-insensitive substrings;
// ISBN matches exactly and case-sensitively.
const (
	SearchByTitle  SearchField = "title"
	SearchByAuthor SearchField = "author"
	SearchByISBN   SearchField = "isbn"
	SearchByGenre  SearchField = "genre"
)

// Catalog owns the collection of book records and their copy counts.
// Books are kept in an id-indexed map with a separate insertion-order index
// so listings and search results come back in the order books were added.
type Catalog struct {
	mu     sync.RWMutex
	books  map[int64]*Book
	order  []int64
	nextID int64
}

// NewCatalog returns an empty catalog.
func NewCatalog() *Catalog {
	return &Catalog{
		books:  make(map[int64]*Book),
		nextID: firstBookID,
	}
}

// AddBook registers a new title with the given number of copies, all of them
// initially available, and returns its assigned id. Copies must not be
// negative. Duplicate ISBNs are not checked; two records may share one.
func (c *Catalog) AddBook(title, author, isbn, genre string, copies int, price float64, pubDate string) (int64, error) {
	if copies < 0 {
		return 0, fmt.Errorf("%w: negative copy count %d", ErrInvalidInput, copies)
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	id := c.nextID
	c.nextID++
	c.books[id] = &Book{
		ID:              id,
		Title:           title,
		Author:          author,
		ISBN:            isbn,
		Genre:           genre,
		TotalCopies:     copies,
		AvailableCopies: copies,
		Price:           price,
		PublicationDate: pubDate,
	}
	c.order = append(c.order, id)
	return id, nil
}

// Get returns a copy of the book record, reporting absence via the bool.
// A missing id is a not-found condition for the caller, not an error.
func (c *Catalog) Get(id int64) (Book, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	b, ok := c.books[id]
	if !ok {
		return Book{}, false
	}
	return *b, true
}

// Books returns all book records in insertion order.
func (c *Catalog) Books() []Book {
	c.mu.RLock()
	defer c.mu.RUnlock()

	out := make([]Book, 0, len(c.order))
	for _, id := range c.order {
		out = append(out, *c.books[id])
	}
	return out
}

// Search returns the books matching term on the given field, in insertion
// order. No match yields an empty slice, as does an unknown field.
func (c *Catalog) Search(term string, field SearchField) []Book {
	c.mu.RLock()
	defer c.mu.RUnlock()

	lower := strings.ToLower(term)

	results := []Book{}
	for _, id := range c.order {
		b := c.books[id]

		var match bool
		switch field {
		case SearchByTitle:
			match = strings.Contains(strings.ToLower(b.Title), lower)
		case SearchByAuthor:
			match = strings.Contains(strings.ToLower(b.Author), lower)
		case SearchByISBN:
			match = b.ISBN == term
		case SearchByGenre:
			match = strings.Contains(strings.ToLower(b.Genre), lower)
		}

		if match {
			results = append(results, *b)
		}
	}
	return results
}

// IssueCopy takes one available copy of the book out of circulation.
func (c *Catalog) IssueCopy(id int64) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	b, ok := c.books[id]
	if !ok {
		return fmt.Errorf("book %d: %w", id, ErrNotFound)
	}
	if b.AvailableCopies <= 0 {
		return fmt.Errorf("book %d: %w", id, ErrNoCopiesAvailable)
	}
	b.AvailableCopies--
	return nil
}

// ReturnCopy puts one copy of the book back in circulation, clamped at the
// total. A return that would exceed TotalCopies is a no-op rather than an
// error, but it signals a bookkeeping bug somewhere, so it is logged.
func (c *Catalog) ReturnCopy(id int64) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	b, ok := c.books[id]
	if !ok {
		return fmt.Errorf("book %d: %w", id, ErrNotFound)
	}
	if b.AvailableCopies >= b.TotalCopies {
		slog.Warn("return would exceed total copies, ignoring",
			"book_id", id, "total_copies", b.TotalCopies)
		return nil
	}
	b.AvailableCopies++
	return nil
}
