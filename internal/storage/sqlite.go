// Package storage persists book records in a local SQLite database.
package storage

import (
	"database/sql"
	"fmt"
	"os"

	"github.com/VictoriaairotciV/ebookstore/internal/book"
	_ "modernc.org/sqlite"
)

// Store wraps the SQLite database holding the books table.
type Store struct {
	db *sql.DB
}

// selectBookFields contains the standard field list for SELECT queries.
const selectBookFields = `id, title, author, quantity`

// seedBooks is the initial inventory, inserted once when the database
// file is first created.
var seedBooks = []book.Book{
	{ID: 3001, Title: "A Tale of Two Cities", Author: "Charles Dickens", Quantity: 30},
	{ID: 3002, Title: "Harry Potter and the Philosopher's Stone", Author: "J. K. Rowling", Quantity: 40},
	{ID: 3003, Title: "The Lion, the Witch, and the Warderobe", Author: "C. S. Lewis", Quantity: 25},
	{ID: 3004, Title: "The Lord of the Rings", Author: "J. R. R. Tolkien", Quantity: 37},
	{ID: 3005, Title: "Alice in Wonderland", Author: "Lewis Carroll", Quantity: 12},
}

// Open opens or creates a SQLite database at the given path. When the
// file does not exist yet, the books table is created and seeded with
// the initial inventory.
func Open(path string) (*Store, error) {
	_, statErr := os.Stat(path)
	fresh := os.IsNotExist(statErr)

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	db.SetMaxOpenConns(1) // SQLite doesn't support concurrent writes

	if err := createSchema(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}

	s := &Store{db: db}
	if fresh {
		if err := s.seed(); err != nil {
			db.Close()
			return nil, fmt.Errorf("seeding books: %w", err)
		}
	}

	return s, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// createSchema creates the database schema if it doesn't exist.
func createSchema(db *sql.DB) error {
	schema := `
		CREATE TABLE IF NOT EXISTS books (
			id INTEGER NOT NULL,
			title TEXT,
			author TEXT,
			quantity INTEGER DEFAULT 0,
			PRIMARY KEY(id AUTOINCREMENT)
		);
	`

	_, err := db.Exec(schema)
	return err
}

// seed inserts the initial inventory in a single transaction.
func (s *Store) seed() error {
	tx, err := s.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	stmt, err := tx.Prepare(`INSERT INTO books (id, title, author, quantity) VALUES (?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("preparing seed insert: %w", err)
	}
	defer stmt.Close()

	for _, b := range seedBooks {
		if _, err := stmt.Exec(b.ID, b.Title, b.Author, b.Quantity); err != nil {
			return fmt.Errorf("seeding book %d: %w", b.ID, err)
		}
	}

	return tx.Commit()
}

// FindMatching returns all books whose title or author contains the
// given pattern. The pattern uses SQL LIKE syntax, so callers supply
// their own % wildcards. Matching is case-insensitive for ASCII, which
// is SQLite's LIKE default. Results are ordered by id ascending.
func (s *Store) FindMatching(pattern string) ([]book.Book, error) {
	rows, err := s.db.Query(`
		SELECT `+selectBookFields+`
		FROM books
		WHERE title LIKE ? OR author LIKE ?
		ORDER BY id`, pattern, pattern)
	if err != nil {
		return nil, fmt.Errorf("searching books: %w", err)
	}
	defer rows.Close()

	return scanBooks(rows)
}

// GetByID retrieves a book by its id. Returns nil, nil when no book
// with that id exists.
func (s *Store) GetByID(id int64) (*book.Book, error) {
	row := s.db.QueryRow(`SELECT `+selectBookFields+` FROM books WHERE id = ?`, id)
	return scanBook(row)
}

// Insert appends a new book and returns the id the store assigned.
func (s *Store) Insert(title, author string, quantity int64) (int64, error) {
	res, err := s.db.Exec(`
		INSERT INTO books (title, author, quantity)
		VALUES (?, ?, ?)`, title, author, quantity)
	if err != nil {
		return 0, fmt.Errorf("inserting book: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("reading inserted id: %w", err)
	}
	return id, nil
}

// Update overwrites the mutable fields of the book with b's id.
// Updating an id that does not exist affects zero rows and is not an
// error.
func (s *Store) Update(b book.Book) error {
	_, err := s.db.Exec(`
		UPDATE books
		SET title = ?, author = ?, quantity = ?
		WHERE id = ?`, b.Title, b.Author, b.Quantity, b.ID)
	if err != nil {
		return fmt.Errorf("updating book %d: %w", b.ID, err)
	}
	return nil
}

// Delete removes the book with the given id. Deleting an absent id is
// a silent no-op.
func (s *Store) Delete(id int64) error {
	_, err := s.db.Exec(`DELETE FROM books WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("deleting book %d: %w", id, err)
	}
	return nil
}

// ListAll returns every book, ordered by id.
func (s *Store) ListAll() ([]book.Book, error) {
	rows, err := s.db.Query(`SELECT ` + selectBookFields + ` FROM books ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("listing books: %w", err)
	}
	defer rows.Close()

	return scanBooks(rows)
}

// Count returns the total number of books.
func (s *Store) Count() (int, error) {
	var count int
	err := s.db.QueryRow(`SELECT COUNT(*) FROM books`).Scan(&count)
	return count, err
}

// scanner interface for sql.Row and sql.Rows
type scanner interface {
	Scan(dest ...interface{}) error
}

func scanBook(s scanner) (*book.Book, error) {
	var b book.Book
	var title, author sql.NullString
	var quantity sql.NullInt64

	err := s.Scan(&b.ID, &title, &author, &quantity)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}

	b.Title = title.String
	b.Author = author.String
	b.Quantity = quantity.Int64

	return &b, nil
}

func scanBooks(rows *sql.Rows) ([]book.Book, error) {
	var books []book.Book
	for rows.Next() {
		b, err := scanBook(rows)
		if err != nil {
			return nil, err
		}
		if b != nil {
			books = append(books, *b)
		}
	}
	return books, rows.Err()
}
