// Package book defines the book record managed by the inventory.
package book

// Book represents one title held in stock.
type Book struct {
	ID       int64
	Title    string
	Author   string
	Quantity int64
}

// Update carries replacement values for a book's mutable fields.
// A nil field means "keep the existing value".
type Update struct {
	Title    *string
	Author   *string
	Quantity *int64
}

// Merge returns a copy of b with the set fields of upd applied.
// The ID never changes.
func (b Book) Merge(upd Update) Book {
	merged := b
	if upd.Title != nil {
		merged.Title = *upd.Title
	}
	if upd.Author != nil {
		merged.Author = *upd.Author
	}
	if upd.Quantity != nil {
		merged.Quantity = *upd.Quantity
	}
	return merged
}

// IsZero reports whether upd changes nothing.
func (u Update) IsZero() bool {
	return u.Title == nil && u.Author == nil && u.Quantity == nil
}
